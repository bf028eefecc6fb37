package domain

type MessageType string

const (
	MessageTypeText  MessageType = "TEXT"
	MessageTypeJoin  MessageType = "JOIN"
	MessageTypeLeave MessageType = "LEAVE"
)

func (t MessageType) IsValid() bool {
	switch t {
	case MessageTypeText, MessageTypeJoin, MessageTypeLeave:
		return true
	}
	return false
}

// Limits enforced at the API boundary.
const (
	MaxMessageLength  = 2000
	MaxRoomIDLength   = 50
	MaxUsernameLength = 30

	DefaultPageSize = 50
	MaxPageSize     = 100
)

// SystemSender is the sender name of presence messages.
const SystemSender = "System"
