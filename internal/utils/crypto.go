// internal/utils/crypto.go
package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

func HashString(input string) string {
	hasher := sha256.New()
	hasher.Write([]byte(input))
	return hex.EncodeToString(hasher.Sum(nil))
}

// SignHMACSHA256 returns base64(HMAC-SHA256(secret, message)).
func SignHMACSHA256(secret, message string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func VerifyHMACSHA256(secret, message, signature string) bool {
	expected := SignHMACSHA256(secret, message)
	return hmac.Equal([]byte(expected), []byte(signature))
}
