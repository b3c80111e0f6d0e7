package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestJWT_GenerateAndValidate(t *testing.T) {
	j := NewJWT("my-secret-key", time.Hour)

	userID := int64(123)
	email := "test@example.com"

	token, err := j.Generate(userID, email)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if token == "" {
		t.Fatal("Generate() returned empty token")
	}

	claims, err := j.Validate(token)
	if err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("Validate() got UserID %d, want %d", claims.UserID, userID)
	}
	if claims.Email != email {
		t.Errorf("Validate() got Email %s, want %s", claims.Email, email)
	}
}

func TestJWT_TamperedSignature(t *testing.T) {
	j := NewJWT("my-secret-key", time.Hour)

	token, err := j.Generate(1, "test@example.com")
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + "." + "invalid-signature"
	if _, err := j.Validate(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate() error = %v, want ErrInvalidToken", err)
	}
}

func TestJWT_WrongSecret(t *testing.T) {
	token, err := NewJWT("secret-one", time.Hour).Generate(1, "test@example.com")
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	if _, err := NewJWT("secret-two", time.Hour).Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate() error = %v, want ErrInvalidToken", err)
	}
}

func TestJWT_Expired(t *testing.T) {
	j := &JWT{secret: []byte("my-secret-key"), ttl: -time.Hour}

	token, err := j.Generate(1, "test@example.com")
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	if _, err := j.Validate(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("Validate() error = %v, want ErrExpiredToken", err)
	}
}

func TestJWT_MalformedToken(t *testing.T) {
	j := NewJWT("my-secret-key", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		if _, err := j.Validate(token); err == nil {
			t.Errorf("Validate(%q) accepted malformed token", token)
		}
	}
}
