package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/Dauletnazarr/donation-project/config"

	"github.com/golang-jwt/jwt/v5"
)

type Kind string

const (
	Access  Kind = "access"
	Refresh Kind = "refresh"
)

var (
	ErrNoSecret  = errors.New("JWT secret not configured")
	ErrInvalid   = errors.New("token is invalid or expired")
	ErrWrongKind = errors.New("token has wrong type")
)

type Claims struct {
	UserID   uint
	Username string
	Kind     Kind
}

func secret() ([]byte, error) {
	if config.JWT_SECRET == "" {
		return nil, ErrNoSecret
	}
	return []byte(config.JWT_SECRET), nil
}

// Issue signs an HS256 token of the given kind for the user.
func Issue(userID uint, username string, kind Kind) (string, error) {
	key, err := secret()
	if err != nil {
		return "", err
	}

	ttl := config.ACCESS_TOKEN_TTL
	if kind == Refresh {
		ttl = config.REFRESH_TOKEN_TTL
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    userID,
		"username":   username,
		"token_type": string(kind),
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
	})

	s, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", kind, err)
	}
	return s, nil
}

// Parse validates tokenString and requires it to be of kind want.
func Parse(tokenString string, want Kind) (Claims, error) {
	key, err := secret()
	if err != nil {
		return Claims{}, err
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return key, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalid
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalid
	}

	var out Claims
	if id, ok := mc["user_id"].(float64); ok && id > 0 {
		out.UserID = uint(id)
	} else {
		return Claims{}, ErrInvalid
	}
	out.Username, _ = mc["username"].(string)
	kind, _ := mc["token_type"].(string)
	out.Kind = Kind(kind)

	if out.Kind != want {
		return Claims{}, ErrWrongKind
	}
	return out, nil
}
