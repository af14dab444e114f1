package transport

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
)

var errInvalidToken = errors.New("transport: invalid token")

type claims struct {
	Username string `json:"username"`
	jwt.StandardClaims
}

// generateToken issues a signed token carrying the username. The token is
// the player's ticket from the HTTP login endpoint to the websocket upgrade.
func generateToken(secret []byte, username string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Username: username,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(ttl).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	})
	return token.SignedString(secret)
}

func validateToken(secret []byte, tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		return "", err
	}

	if parsed, ok := token.Claims.(*claims); ok && token.Valid && parsed.Username != "" {
		return parsed.Username, nil
	}
	return "", errInvalidToken
}
