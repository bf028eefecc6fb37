package services

import (
	"strings"
	"testing"

	chatroom_errors "chatroom/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"script tag", "Hello <script>", "Hello &lt;script&gt;"},
		{"quotes", `say "hi" it's`, "say &quot;hi&quot; it&#x27;s"},
		{"mixed", "<b>'hi'</b>", "&lt;b&gt;&#x27;hi&#x27;&lt;/b&gt;"},
		{"trims", "  spaced out \n", "spaced out"},
		{"empty", "", ""},
		{"ampersand untouched", "a & b", "a & b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeText(tt.in))
		})
	}
}

func TestSanitizeText_EscapesExactlyOnce(t *testing.T) {
	once := SanitizeText("<b>'hi'</b>")
	twice := SanitizeText(once)

	assert.Equal(t, once, twice)
	for _, raw := range []string{"<", ">", `"`, "'"} {
		assert.NotContains(t, once, raw)
	}
	assert.Equal(t, 2, strings.Count(once, "&lt;"))
	assert.Equal(t, 2, strings.Count(once, "&gt;"))
	assert.Equal(t, 2, strings.Count(once, "&#x27;"))
}

func TestNormalizeRoomID(t *testing.T) {
	id, err := NormalizeRoomID("  general  ")
	require.NoError(t, err)
	assert.Equal(t, "general", id)

	_, err = NormalizeRoomID("   ")
	assert.ErrorIs(t, err, chatroom_errors.ErrInvalidArgument)

	_, err = NormalizeRoomID(strings.Repeat("r", 51))
	assert.ErrorIs(t, err, chatroom_errors.ErrInvalidArgument)

	id, err = NormalizeRoomID(strings.Repeat("é", 50))
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("é", 50), id)
}
