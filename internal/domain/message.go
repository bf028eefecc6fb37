package domain

import (
	"time"
)

// Message is immutable once appended to a room.
type Message struct {
	Sender      string      `json:"sender"`
	Content     string      `json:"content"`
	TimeStamp   time.Time   `json:"timeStamp"`
	MessageType MessageType `json:"messageType"`
}

func NewTextMessage(sender, content string, at time.Time) Message {
	return Message{
		Sender:      sender,
		Content:     content,
		TimeStamp:   at,
		MessageType: MessageTypeText,
	}
}

func NewSystemMessage(messageType MessageType, content string, at time.Time) Message {
	return Message{
		Sender:      SystemSender,
		Content:     content,
		TimeStamp:   at,
		MessageType: messageType,
	}
}

// TypingIndicator only ever exists on the wire.
type TypingIndicator struct {
	Username string `json:"username"`
	IsTyping bool   `json:"isTyping"`
}
