package keyboard

import (
	"errors"
	"fmt"
	"strings"
)

// PayloadLimitBytes is the Telegram limit for callback data.
const PayloadLimitBytes = 64

// Encode joins an action prefix and a discriminator into a callback
// payload of the form "action_<discriminator>".
func Encode(prefix, discriminator string) (string, error) {
	payload := prefix + discriminator
	if err := ValidatePayload(payload); err != nil {
		return "", err
	}
	return payload, nil
}

// Decode splits a callback payload produced by Encode back into its
// discriminator, reporting whether the payload carries the prefix.
func Decode(payload, prefix string) (string, bool) {
	if !strings.HasPrefix(payload, prefix) {
		return "", false
	}
	return strings.TrimPrefix(payload, prefix), true
}

// ValidatePayload enforces the Telegram callback data constraints.
func ValidatePayload(payload string) error {
	if payload == "" {
		return errors.New("callback payload is empty")
	}
	if len(payload) > PayloadLimitBytes {
		return fmt.Errorf("callback payload exceeds %d byte limit: got %d", PayloadLimitBytes, len(payload))
	}
	return nil
}
