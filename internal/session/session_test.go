package session

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)

	token, exp, err := iss.Issue("table_abc")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Errorf("Expiry %v is not in the future", exp)
	}

	id, err := iss.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id != "table_abc" {
		t.Errorf("Table ID = %q, want table_abc", id)
	}
	if err := iss.Authorize(token, "table_abc"); err != nil {
		t.Errorf("Authorize: %v", err)
	}
	if err := iss.Authorize(token, "table_other"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Token for another table accepted: %v", err)
	}
}

func TestVerifyRejects(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	good, _, _ := iss.Issue("table_abc")

	expired := NewIssuer("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, _ := expired.Issue("table_abc")

	other, _, _ := NewIssuer("different", time.Hour).Issue("table_abc")

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"table_id": "table_abc"})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	cases := map[string]string{
		"expired":      old,
		"wrong secret": other,
		"alg none":     unsigned,
		"garbage":      "not.a.token",
		"truncated":    good[:len(good)-4],
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := iss.Verify(token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
