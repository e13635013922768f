// internal/utils/jwt.go
package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const tokenIssuer = "soundwave"

// CallbackClaims bind a payment callback to the order and the cart session
// that started it.
type CallbackClaims struct {
	OrderID   string `json:"order_id"`
	SessionID string `json:"session_id"`
	Provider  string `json:"provider"`
	jwt.RegisteredClaims
}

var jwtSecret = []byte("your-secret-key-change-in-production")

func SetJWTSecret(secret string) {
	jwtSecret = []byte(secret)
}

func GenerateCallbackToken(orderID uuid.UUID, sessionID, provider string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := CallbackClaims{
		OrderID:   orderID.String(),
		SessionID: sessionID,
		Provider:  provider,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   orderID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ValidateCallbackToken(tokenString string) (*CallbackClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CallbackClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*CallbackClaims); ok && token.Valid && claims.Issuer == tokenIssuer {
		return claims, nil
	}

	return nil, errors.New("invalid callback token")
}
