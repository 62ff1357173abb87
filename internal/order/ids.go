package order

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"github.com/google/uuid"
	"strings"
)

const trackingBytes = 8

func NewTransactionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NewTrackingNumber doubles as the confirmation number shown to the buyer.
func NewTrackingNumber() (string, error) {
	buf := make([]byte, trackingBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate tracking number: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
