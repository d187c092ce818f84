package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateSessionToken создаёт JWT для сессионной куки.
func GenerateSessionToken(secret string, userID int, isAdmin bool, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userID,
		"is_admin": isAdmin,
		"exp":      time.Now().Add(duration).Unix(),
		"iat":      time.Now().Unix(), // issued at — доп. уникальность
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSessionToken проверяет подпись и срок действия сессионного JWT.
func ParseSessionToken(secret, tokenString string) (userID int, isAdmin bool, err error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, false, errors.New("invalid session token")
	}

	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, false, errors.New("invalid session payload")
	}
	admin, _ := claims["is_admin"].(bool)

	return int(id), admin, nil
}
