package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessTokenClaims(t *testing.T) {
	at, err := NewAccessToken("secret", 42, "admin", 5)
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}
	if remaining := time.Until(at.Exp); remaining <= 0 || remaining > 5*time.Minute {
		t.Errorf("unexpected expiry %v", at.Exp)
	}

	tok, err := jwt.Parse(at.Token, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := tok.Claims.(jwt.MapClaims)
	if sub, ok := claims["sub"].(float64); !ok || uint64(sub) != 42 {
		t.Errorf("sub claim = %v", claims["sub"])
	}
	if claims["role"] != "admin" {
		t.Errorf("role claim = %v", claims["role"])
	}
}

func TestNewAccessTokenRejectsWrongSecret(t *testing.T) {
	at, err := NewAccessToken("secret", 42, "student", 5)
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}
	_, err = jwt.Parse(at.Token, func(*jwt.Token) (interface{}, error) {
		return []byte("other"), nil
	})
	if err == nil {
		t.Fatal("expected verification failure with a different secret")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse", 4)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "correct horse" {
		t.Fatal("password stored in the clear")
	}
	if !VerifyPassword(hash, "correct horse") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hash, "battery staple") {
		t.Error("wrong password accepted")
	}
}
