package types

import (
	"context"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req_abc")
	if got := GetRequestID(ctx); got != "req_abc" {
		t.Errorf("GetRequestID() = %q, want %q", got, "req_abc")
	}
	if got := GetRequestID(context.Background()); got != "" {
		t.Errorf("empty context should yield empty request ID, got %q", got)
	}
}

func TestSecretStringRedacts(t *testing.T) {
	s := SecretString("postgres://user:pw@host/db")
	if s.String() != redacted {
		t.Errorf("String() leaked the secret")
	}
	b, _ := s.MarshalJSON()
	if string(b) != `"`+redacted+`"` {
		t.Errorf("MarshalJSON() = %s", b)
	}
	if s.Unmask() != "postgres://user:pw@host/db" {
		t.Errorf("Unmask() did not return the plaintext")
	}
}
