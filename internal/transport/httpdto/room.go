package httpdto

import (
	"encoding/json"
	"strings"
)

const (
	RoomAlreadyExistsMessage = "Room already exists!"
	RoomDeletedMessage       = "Room deleted successfully"
)

// ParseRoomIDBody accepts either a bare room id or a JSON string literal.
func ParseRoomIDBody(body []byte) string {
	raw := strings.TrimSpace(string(body))
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal([]byte(raw), &s); err == nil {
			return s
		}
	}
	return raw
}
