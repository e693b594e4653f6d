package lib

import (
	"fmt"
	"net/http"
	"stockmate_server/structs"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	SessionCookieName = "sm_session"
	CSRFCookieName    = "sm_csrf"

	AdminSubject = "admin"
	AdminRole    = "admin"
)

// SignSessionToken issues an HMAC-signed admin session token.
func SignSessionToken(secret string, expiry time.Duration) (string, *structs.SessionClaims, error) {
	now := time.Now()
	claims := &structs.SessionClaims{
		Sub:  AdminSubject,
		Role: AdminRole,
		Iat:  now,
		Exp:  now.Add(expiry),
		Jti:  uuid.New(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  claims.Sub,
		"role": claims.Role,
		"iat":  claims.Iat.Unix(),
		"exp":  claims.Exp.Unix(),
		"jti":  claims.Jti.String(),
	})

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, claims, nil
}

// ParseSessionToken parses and validates a session token string and returns the claims.
func ParseSessionToken(tokenStr string, secret string) (*structs.SessionClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid sub claim")
	}

	role, ok := claims["role"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid role claim")
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid iat claim")
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid exp claim")
	}

	jtiStr, ok := claims["jti"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid jti claim")
	}

	jti, err := uuid.Parse(jtiStr)
	if err != nil {
		return nil, fmt.Errorf("invalid UUID in jti claim: %w", err)
	}

	return &structs.SessionClaims{
		Sub:  sub,
		Role: role,
		Iat:  time.Unix(int64(iat), 0),
		Exp:  time.Unix(int64(exp), 0),
		Jti:  jti,
	}, nil
}

// ExtractSessionClaims reads the session cookie from the request and validates it.
func ExtractSessionClaims(r *http.Request, secret string) (*structs.SessionClaims, error) {
	sessionToken, err := GetCookieValue(SessionCookieName, r)
	if err != nil {
		return nil, err
	}
	return ParseSessionToken(sessionToken, secret)
}
