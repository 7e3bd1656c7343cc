package session

import (
	"context"
	"testing"
)

func TestStatic(t *testing.T) {
	t.Run("with a token", func(t *testing.T) {
		s := NewStatic("abc", "user@example.com")

		if !s.IsAuthenticated() {
			t.Error("expected authenticated")
		}
		if s.Credential() != "abc" || s.Email() != "user@example.com" {
			t.Error("expected the token and email exposed as-is")
		}
		if s.IsLoading() || s.Err() != nil {
			t.Error("static sessions never load and never fail")
		}
	})

	t.Run("without a token", func(t *testing.T) {
		s := NewStatic("", "")

		if s.IsAuthenticated() {
			t.Error("expected unauthenticated without a credential")
		}
	})

	t.Run("sign-out discards the credential", func(t *testing.T) {
		s := NewStatic("abc", "user@example.com")

		if err := s.SignOut(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.IsAuthenticated() || s.Credential() != "" {
			t.Error("expected the credential discarded")
		}
	})
}
