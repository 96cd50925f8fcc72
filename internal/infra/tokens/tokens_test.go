package tokens

import (
	"errors"
	"testing"
	"time"

	"github.com/Dauletnazarr/donation-project/config"
)

func withSecret(t *testing.T, s string) {
	t.Helper()
	prev := config.JWT_SECRET
	config.JWT_SECRET = s
	t.Cleanup(func() { config.JWT_SECRET = prev })
}

func TestIssueParseRoundTrip(t *testing.T) {
	withSecret(t, "test-secret")

	tok, err := Issue(42, "alice", Access)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	c, err := Parse(tok, Access)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.UserID != 42 || c.Username != "alice" || c.Kind != Access {
		t.Fatalf("claims = %+v", c)
	}
}

func TestParseRejectsWrongKind(t *testing.T) {
	withSecret(t, "test-secret")

	tok, _ := Issue(1, "bob", Access)
	if _, err := Parse(tok, Refresh); !errors.Is(err, ErrWrongKind) {
		t.Fatalf("got %v, want ErrWrongKind", err)
	}
}

func TestParseRejectsForeignSecretAndExpiry(t *testing.T) {
	withSecret(t, "one")
	tok, _ := Issue(1, "bob", Access)

	config.JWT_SECRET = "two"
	if _, err := Parse(tok, Access); !errors.Is(err, ErrInvalid) {
		t.Fatalf("foreign secret: got %v", err)
	}

	prevTTL := config.ACCESS_TOKEN_TTL
	config.ACCESS_TOKEN_TTL = -time.Minute
	defer func() { config.ACCESS_TOKEN_TTL = prevTTL }()

	expired, _ := Issue(1, "bob", Access)
	if _, err := Parse(expired, Access); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expired: got %v", err)
	}
}

func TestNoSecret(t *testing.T) {
	withSecret(t, "")
	if _, err := Issue(1, "x", Access); !errors.Is(err, ErrNoSecret) {
		t.Fatalf("got %v", err)
	}
}
