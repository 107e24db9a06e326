package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/SSHRIHARI006/GyanForge/internal/domain"
)

type memoryUsers struct {
	nextID int64
	byID   map[int64]domain.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{nextID: 1, byID: map[int64]domain.User{}}
}

func (m *memoryUsers) Create(_ context.Context, user *domain.User) error {
	for _, u := range m.byID {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	user.ID = m.nextID
	m.nextID++
	m.byID[user.ID] = *user
	return nil
}

func (m *memoryUsers) ByEmail(_ context.Context, email string) (domain.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (m *memoryUsers) ByID(_ context.Context, id int64) (domain.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func TestRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(newMemoryUsers(), "test-secret", time.Hour)

	user, token, err := svc.Register(context.Background(), "Ada@Example.com", "hunter22", "Ada Lovelace")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Fatalf("expected lowercased email, got %q", user.Email)
	}
	if user.HashedPassword == "hunter22" {
		t.Fatal("password stored in plaintext")
	}
	if token == "" {
		t.Fatal("expected a token on registration")
	}

	logged, token2, err := svc.Login(context.Background(), "ada@example.com", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.ID != user.ID {
		t.Fatalf("login returned user %d, want %d", logged.ID, user.ID)
	}
	if token2 == "" {
		t.Fatal("expected a token on login")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newMemoryUsers(), "test-secret", time.Hour)

	if _, _, err := svc.Register(context.Background(), "dup@example.com", "password", ""); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, _, err := svc.Register(context.Background(), "dup@example.com", "password", "")
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterRejectsBadInput(t *testing.T) {
	svc := NewAuthService(newMemoryUsers(), "test-secret", time.Hour)

	if _, _, err := svc.Register(context.Background(), "not-an-email", "password", ""); !errors.Is(err, domain.ErrValidationFailed) {
		t.Fatalf("expected validation error for email, got %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "ok@example.com", "short", ""); !errors.Is(err, domain.ErrValidationFailed) {
		t.Fatalf("expected validation error for password, got %v", err)
	}
}

func TestLoginWrongCredentials(t *testing.T) {
	svc := NewAuthService(newMemoryUsers(), "test-secret", time.Hour)
	if _, _, err := svc.Register(context.Background(), "u@example.com", "correct-horse", ""); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "u@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	users := newMemoryUsers()
	svc := NewAuthService(users, "test-secret", time.Hour)

	user, token, err := svc.Register(context.Background(), "t@example.com", "password", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	id, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if id != user.ID {
		t.Fatalf("token subject %d, want %d", id, user.ID)
	}

	loaded, err := svc.UserFromToken(context.Background(), token)
	if err != nil {
		t.Fatalf("user from token: %v", err)
	}
	if loaded.Email != user.Email {
		t.Fatalf("loaded %q, want %q", loaded.Email, user.Email)
	}
}

func TestTokenRejection(t *testing.T) {
	svc := NewAuthService(newMemoryUsers(), "test-secret", time.Hour)

	if _, err := svc.ParseToken("not.a.token"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("garbage token: expected ErrUnauthorized, got %v", err)
	}

	other := NewAuthService(newMemoryUsers(), "another-secret", time.Hour)
	_, token, err := other.Register(context.Background(), "x@example.com", "password", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.ParseToken(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("foreign signature: expected ErrUnauthorized, got %v", err)
	}
}

func TestExpiredToken(t *testing.T) {
	svc := NewAuthService(newMemoryUsers(), "test-secret", time.Hour)
	svc.tokenTTL = -time.Minute

	_, token, err := svc.Register(context.Background(), "e@example.com", "password", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.ParseToken(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expired token: expected ErrUnauthorized, got %v", err)
	}
	if !strings.Contains(token, ".") {
		t.Fatal("token is not a JWT")
	}
}
