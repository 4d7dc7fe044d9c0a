package utils // package utils provides helper functions for access token handling

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// AccessToken represents a signed JWT access token along with its expiry.
type AccessToken struct {
	Token string
	Exp   time.Time
}

// Claims carried by an access token: the internal user id in `sub`,
// the Telegram id, and the role (ADMIN for allowlisted operators).
type Claims struct {
	TelegramID int64  `json:"tg_id"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// NewAccessToken signs an HS256 token for the given user.
func NewAccessToken(secret, userID string, telegramID int64, role string, ttlMin int) (AccessToken, error) {
	exp := time.Now().Add(time.Duration(ttlMin) * time.Minute)
	claims := Claims{
		TelegramID: telegramID,
		Role:       role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ErrInvalidToken is returned for tokens that fail signature or
// expiry checks.
var ErrInvalidToken = errors.New("invalid token")

// ParseAccess validates a signed token and returns its claims.
func ParseAccess(secret, raw string) (Claims, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
