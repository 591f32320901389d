package keyboard

import (
	"fmt"
	"strings"
)

const ActionReview = "review"

// CallbackData represents parsed callback data
type CallbackData struct {
	Action string
	Value  string
}

// ParseCallback parses "action:value" callback data
func ParseCallback(data string) (*CallbackData, error) {
	action, value, ok := strings.Cut(data, ":")
	if !ok || action == "" || value == "" {
		return nil, fmt.Errorf("invalid callback format: %q", data)
	}

	return &CallbackData{
		Action: action,
		Value:  value,
	}, nil
}

// EncodeCallback creates callback data string
func EncodeCallback(action, value string) string {
	return action + ":" + value
}
