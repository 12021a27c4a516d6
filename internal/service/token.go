package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/equiledger/backend/internal/apperr"
	"github.com/equiledger/backend/internal/model"
)

const (
	sessionTokenTTL = 168 * time.Hour
	resetTokenTTL   = time.Hour
	inviteTokenTTL  = 48 * time.Hour
)

// SessionClaims ride in login and registration tokens. Validity is
// purely cryptographic: there is no revocation list, a token stays
// valid until expiry regardless of later account changes.
type SessionClaims struct {
	UserID int64      `json:"userId"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

type ResetClaims struct {
	UserID int64 `json:"userId"`
	jwt.RegisteredClaims
}

type InviteClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Tokens struct {
	secret []byte
}

func NewTokens(secret string) *Tokens {
	return &Tokens{
		secret: []byte(secret),
	}
}

func (t *Tokens) IssueSession(userID int64, role model.Role) (string, error) {
	claims := SessionClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTokenTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("service.Tokens, sign session token error: %v", err)
	}
	return signed, nil
}

func (t *Tokens) IssueReset(userID int64) (string, error) {
	claims := ResetClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(resetTokenTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("service.Tokens, sign reset token error: %v", err)
	}
	return signed, nil
}

func (t *Tokens) IssueInvite(email string) (string, error) {
	claims := InviteClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(inviteTokenTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("service.Tokens, sign invite token error: %v", err)
	}
	return signed, nil
}

func (t *Tokens) VerifySession(token string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := t.verify(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (t *Tokens) VerifyReset(token string) (*ResetClaims, error) {
	claims := &ResetClaims{}
	if err := t.verify(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (t *Tokens) VerifyInvite(token string) (*InviteClaims, error) {
	claims := &InviteClaims{}
	if err := t.verify(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (t *Tokens) verify(token string, claims jwt.Claims) error {
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return apperr.ErrInvalidToken
	}
	return nil
}
