package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateSecureToken creates a random, URL-safe string.
func GenerateSecureToken(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand.Read failed: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// trackingAlphabet is the symbol set for human-shareable order codes.
const trackingAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// TrackingCodeLength is the fixed length of generated codes.
const TrackingCodeLength = 5

// GenerateTrackingCode draws TrackingCodeLength characters uniformly
// from [0-9A-Z]. With 36^5 possible codes no uniqueness check is made;
// the collision probability is accepted. Rejection sampling keeps every
// symbol equally likely.
func GenerateTrackingCode() (string, error) {
	code := make([]byte, TrackingCodeLength)
	buf := make([]byte, 1)
	for i := 0; i < TrackingCodeLength; {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("rand.Read failed: %w", err)
		}
		// 252 is the largest multiple of 36 that fits in a byte;
		// rejecting bytes past it avoids modulo bias.
		if buf[0] >= 252 {
			continue
		}
		code[i] = trackingAlphabet[int(buf[0])%len(trackingAlphabet)]
		i++
	}
	return string(code), nil
}
