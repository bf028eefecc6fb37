package domain

// Room is a named message history. Messages are kept in insertion order,
// which is also chronological order.
type Room struct {
	RoomID   string    `json:"roomId"`
	Messages []Message `json:"messages"`
}

func NewRoom(roomID string) Room {
	return Room{RoomID: roomID, Messages: []Message{}}
}

// Append returns a copy of the room with msg appended. The receiver's slice is
// never shared with the result.
func (r Room) Append(msg Message) Room {
	messages := make([]Message, len(r.Messages), len(r.Messages)+1)
	copy(messages, r.Messages)
	return Room{RoomID: r.RoomID, Messages: append(messages, msg)}
}

func (r Room) MessageCount() int {
	return len(r.Messages)
}
