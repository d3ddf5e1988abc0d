package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-signing-secret")

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenManager_IssueAndVerify(t *testing.T) {
	issued := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	m := NewTokenManager(testSecret, 0).WithClock(fixedClock(issued))

	token, exp, err := m.Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" {
		t.Fatal("token empty")
	}
	if !exp.Equal(issued.Add(24 * time.Hour)) {
		t.Errorf("expiresAt = %v, want %v", exp, issued.Add(24*time.Hour))
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !claims.Admin {
		t.Error("expected admin claim")
	}
	if claims.Timestamp != issued.UnixMilli() {
		t.Errorf("timestamp = %d, want %d", claims.Timestamp, issued.UnixMilli())
	}
}

func TestTokenManager_ExpiryWindow(t *testing.T) {
	issued := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	token, _, err := NewTokenManager(testSecret, 24*time.Hour).WithClock(fixedClock(issued)).Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	before := NewTokenManager(testSecret, 24*time.Hour).WithClock(fixedClock(issued.Add(23*time.Hour + 59*time.Minute)))
	if _, err := before.Verify(token); err != nil {
		t.Errorf("token should be valid at T+23h59m, got %v", err)
	}

	after := NewTokenManager(testSecret, 24*time.Hour).WithClock(fixedClock(issued.Add(24*time.Hour + time.Minute)))
	if _, err := after.Verify(token); err != ErrInvalidToken {
		t.Errorf("token should be rejected at T+24h01m, got %v", err)
	}
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, _, err := NewTokenManager(testSecret, 0).Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := NewTokenManager([]byte("other"), 0).Verify(token); err != ErrInvalidToken {
		t.Errorf("want ErrInvalidToken, got %v", err)
	}
}

func TestTokenManager_Garbage(t *testing.T) {
	m := NewTokenManager(testSecret, 0)
	for _, tok := range []string{"", "invalid-token", "a.b.c"} {
		if _, err := m.Verify(tok); err != ErrInvalidToken {
			t.Errorf("Verify(%q): want ErrInvalidToken, got %v", tok, err)
		}
	}
}

func signClaims(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestTokenManager_RequiresAdminClaim(t *testing.T) {
	now := time.Now()
	token := signClaims(t, jwt.SigningMethodHS256, testSecret, AdminClaims{
		Admin: false,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	})
	if _, err := NewTokenManager(testSecret, 0).Verify(token); err != ErrInvalidToken {
		t.Errorf("want ErrInvalidToken for admin=false, got %v", err)
	}
}

func TestTokenManager_RequiresExpiry(t *testing.T) {
	token := signClaims(t, jwt.SigningMethodHS256, testSecret, AdminClaims{Admin: true})
	if _, err := NewTokenManager(testSecret, 0).Verify(token); err != ErrInvalidToken {
		t.Errorf("want ErrInvalidToken without exp, got %v", err)
	}
}

func TestTokenManager_RejectsOtherAlgorithms(t *testing.T) {
	claims := AdminClaims{
		Admin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	hs512 := signClaims(t, jwt.SigningMethodHS512, testSecret, claims)
	if _, err := NewTokenManager(testSecret, 0).Verify(hs512); err != ErrInvalidToken {
		t.Errorf("HS512: want ErrInvalidToken, got %v", err)
	}
	none := signClaims(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, claims)
	if _, err := NewTokenManager(testSecret, 0).Verify(none); err != ErrInvalidToken {
		t.Errorf("none: want ErrInvalidToken, got %v", err)
	}
}
