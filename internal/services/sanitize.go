package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"chatroom/internal/domain"
	chatroom_errors "chatroom/pkg/errors"
)

var htmlEscaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

// SanitizeText escapes HTML metacharacters and trims surrounding whitespace.
// Ampersands are left alone, so already escaped entities are not escaped again.
func SanitizeText(s string) string {
	return strings.TrimSpace(htmlEscaper.Replace(s))
}

// NormalizeRoomID trims roomID and checks its length.
func NormalizeRoomID(roomID string) (string, error) {
	trimmed := strings.TrimSpace(roomID)
	if trimmed == "" {
		return "", fmt.Errorf("%w: room id is required", chatroom_errors.ErrInvalidArgument)
	}
	if utf8.RuneCountInString(trimmed) > domain.MaxRoomIDLength {
		return "", fmt.Errorf("%w: room id exceeds %d characters", chatroom_errors.ErrInvalidArgument, domain.MaxRoomIDLength)
	}
	return trimmed, nil
}
