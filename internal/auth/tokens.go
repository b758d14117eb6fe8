package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token kinds. The refresh endpoint only accepts refresh tokens and the API
// middleware only accepts access tokens; the kind claim keeps them from being
// swapped.
const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

// ErrInvalidToken covers expired, malformed, badly signed, and wrong-kind
// tokens uniformly so handlers don't leak which check failed.
var ErrInvalidToken = errors.New("auth: invalid token")

// Claims carried by both token kinds.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	Kind   string `json:"kind"`
}

// Tokens issues and verifies the HMAC-signed access/refresh token pair.
type Tokens struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokens constructs a token issuer.
func NewTokens(secret string, accessTTL, refreshTTL time.Duration) *Tokens {
	if secret == "" {
		panic("auth: jwt secret required")
	}
	return &Tokens{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// IssuePair returns a fresh access+refresh token pair for the user.
func (t *Tokens) IssuePair(userID uuid.UUID, role string) (access, refresh string, err error) {
	access, err = t.issue(userID, role, KindAccess, t.accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = t.issue(userID, role, KindRefresh, t.refreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// IssueAccess returns a fresh access token, used by the refresh endpoint.
func (t *Tokens) IssueAccess(userID uuid.UUID, role string) (string, error) {
	return t.issue(userID, role, KindAccess, t.accessTTL)
}

func (t *Tokens) issue(userID uuid.UUID, role, kind string, ttl time.Duration) (string, error) {
	now := t.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID.String(),
		Role:   role,
		Kind:   kind,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign %s token: %w", kind, err)
	}
	return signed, nil
}

// VerifyAccess validates an access token and returns the caller identity.
// It satisfies the API middleware's TokenVerifier interface.
func (t *Tokens) VerifyAccess(tokenString string) (uuid.UUID, string, error) {
	claims, err := t.Verify(tokenString, KindAccess)
	if err != nil {
		return uuid.Nil, "", err
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, "", ErrInvalidToken
	}
	return id, claims.Role, nil
}

// Verify parses the token and checks its signature, expiry, and kind.
func (t *Tokens) Verify(tokenString, wantKind string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return t.now() }))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Kind != wantKind {
		return nil, ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
