package repository

import (
	"encoding/json"
	"fmt"

	"chatroom/internal/domain"
)

func encodeMessages(messages []domain.Message) ([]byte, error) {
	data, err := json.Marshal(messages)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal messages: %w", err)
	}
	return data, nil
}
