package security

import (
	"errors"
	"strings"
	"testing"

	"github.com/verto-labs/verto-inventory/pkg/config"
)

var testConfig = config.PasswordConfig{
	ArgonMemoryKB:    8,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     8,
	ArgonKeyLen:      16,
}

func TestHashAndVerifyRoundTrip(t *testing.T) {
	hash, err := HashPassword("Str0ngP@ss", testConfig)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$") {
		t.Fatalf("unexpected hash format %q", hash)
	}

	match, err := VerifyPassword("Str0ngP@ss", hash)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !match {
		t.Fatalf("expected password to match its own hash")
	}

	match, err = VerifyPassword("Wr0ngP@ssw", hash)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if match {
		t.Fatalf("wrong password must not match")
	}
}

func TestHashIsSalted(t *testing.T) {
	first, err := HashPassword("Str0ngP@ss", testConfig)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := HashPassword("Str0ngP@ss", testConfig)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same password must differ")
	}
}

func TestHashRejectsEmptyPassword(t *testing.T) {
	if _, err := HashPassword("", testConfig); err == nil {
		t.Fatalf("expected error for empty password")
	}
}

func TestHashClampsParams(t *testing.T) {
	hash, err := HashPassword("Str0ngP@ss", config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash with zero config: %v", err)
	}
	match, err := VerifyPassword("Str0ngP@ss", hash)
	if err != nil || !match {
		t.Fatalf("expected clamped-parameter hash to verify, match=%v err=%v", match, err)
	}
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	malformed := []string{
		"",
		"plain-text",
		"$argon2i$v=19$m=8,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=8,t=1$c2FsdA",
		"$argon2id$v=19$m=8,t=1,p=1$!!!$aGFzaA",
	}
	for _, encoded := range malformed {
		if _, err := VerifyPassword("whatever", encoded); !errors.Is(err, ErrInvalidHash) {
			t.Fatalf("expected ErrInvalidHash for %q, got %v", encoded, err)
		}
	}
}
