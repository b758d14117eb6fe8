package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestTokens() *Tokens {
	return NewTokens("test-secret", 15*time.Minute, 24*time.Hour)
}

func TestIssuePairRoundTrip(t *testing.T) {
	tokens := newTestTokens()
	userID := uuid.New()

	access, refresh, err := tokens.IssuePair(userID, RolePatient)
	if err != nil {
		t.Fatalf("issue pair: %v", err)
	}

	gotID, role, err := tokens.VerifyAccess(access)
	if err != nil {
		t.Fatalf("verify access: %v", err)
	}
	if gotID != userID || role != RolePatient {
		t.Fatalf("identity %s/%s, want %s/%s", gotID, role, userID, RolePatient)
	}

	claims, err := tokens.Verify(refresh, KindRefresh)
	if err != nil {
		t.Fatalf("verify refresh: %v", err)
	}
	if claims.UserID != userID.String() {
		t.Fatalf("refresh user %s", claims.UserID)
	}
}

func TestKindsAreNotInterchangeable(t *testing.T) {
	tokens := newTestTokens()
	access, refresh, err := tokens.IssuePair(uuid.New(), RoleTherapist)
	if err != nil {
		t.Fatalf("issue pair: %v", err)
	}

	if _, _, err := tokens.VerifyAccess(refresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("refresh token accepted as access: %v", err)
	}
	if _, err := tokens.Verify(access, KindRefresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("access token accepted as refresh: %v", err)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	tokens := newTestTokens()
	issued := time.Now()
	tokens.now = func() time.Time { return issued }

	access, err := tokens.IssueAccess(uuid.New(), RolePatient)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tokens.now = func() time.Time { return issued.Add(16 * time.Minute) }
	if _, _, err := tokens.VerifyAccess(access); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token accepted: %v", err)
	}
}

func TestForeignSignatureRejected(t *testing.T) {
	access, _, err := newTestTokens().IssuePair(uuid.New(), RolePatient)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	other := NewTokens("different-secret", 15*time.Minute, 24*time.Hour)
	if _, _, err := other.VerifyAccess(access); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("foreign signature accepted: %v", err)
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	tokens := newTestTokens()
	for _, bad := range []string{"", "not.a.jwt", "a.b"} {
		if _, _, err := tokens.VerifyAccess(bad); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("%q accepted: %v", bad, err)
		}
	}
}
