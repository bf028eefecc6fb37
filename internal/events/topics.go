package events

import (
	"fmt"
	"strings"
)

// Outbound topic prefixes.
const (
	TopicPrefixRoom   = "room/"
	TopicPrefixTyping = "typing/"
)

// Inbound destination prefixes.
const (
	DestinationSendMessage = "send-message/"
	DestinationTyping      = "typing/"
	DestinationJoin        = "join/"
	DestinationLeave       = "leave/"
)

// TopicPatterns are the broker patterns a bridge listens on.
var TopicPatterns = []string{TopicPrefixRoom + "*", TopicPrefixTyping + "*"}

func RoomTopic(roomID string) string {
	return fmt.Sprintf("%s%s", TopicPrefixRoom, roomID)
}

func TypingTopic(roomID string) string {
	return fmt.Sprintf("%s%s", TopicPrefixTyping, roomID)
}

// ParseDestination splits an inbound destination such as "send-message/general"
// into its prefix and room id.
func ParseDestination(destination string) (prefix string, roomID string, ok bool) {
	for _, p := range []string{DestinationSendMessage, DestinationTyping, DestinationJoin, DestinationLeave} {
		if strings.HasPrefix(destination, p) {
			roomID = strings.TrimPrefix(destination, p)
			if roomID == "" {
				return "", "", false
			}
			return p, roomID, true
		}
	}
	return "", "", false
}

// IsSubscribableTopic reports whether clients may subscribe to topic.
func IsSubscribableTopic(topic string) bool {
	for _, p := range []string{TopicPrefixRoom, TopicPrefixTyping} {
		if strings.HasPrefix(topic, p) && len(topic) > len(p) {
			return true
		}
	}
	return false
}
