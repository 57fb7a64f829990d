package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/votemart/votemart/internal/domain/errors"
	"github.com/votemart/votemart/internal/test"
)

func TestAuthRegisterSuccess(t *testing.T) {
	users := test.NewUserRepositoryStub()
	uc := NewAuthUseCase(users, test.HasherStub{}, test.StrategyStub{
		IssueFn: func(id int64) (string, error) { return "token-1", nil },
	})

	user, token, err := uc.Register(context.Background(), " alice ", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Login != "alice" {
		t.Errorf("expected trimmed login, got %q", user.Login)
	}
	if token != "token-1" {
		t.Errorf("expected issued token, got %q", token)
	}
}

func TestAuthRegisterDuplicate(t *testing.T) {
	users := test.NewUserRepositoryStub()
	uc := NewAuthUseCase(users, test.HasherStub{}, test.StrategyStub{})

	if _, _, err := uc.Register(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, _, err := uc.Register(context.Background(), "alice", "other")
	if !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAuthRegisterEmptyCredentials(t *testing.T) {
	uc := NewAuthUseCase(test.NewUserRepositoryStub(), test.HasherStub{}, test.StrategyStub{})

	for _, tc := range []struct{ login, password string }{
		{"", "secret"},
		{"alice", ""},
		{"   ", "secret"},
	} {
		if _, _, err := uc.Register(context.Background(), tc.login, tc.password); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
			t.Errorf("login=%q password=%q: expected ErrInvalidCredentials, got %v", tc.login, tc.password, err)
		}
	}
}

func TestAuthAuthenticate(t *testing.T) {
	users := test.NewUserRepositoryStub()
	uc := NewAuthUseCase(users, test.HasherStub{}, test.StrategyStub{})

	if _, _, err := uc.Register(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, _, err := uc.Authenticate(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, _, err := uc.Authenticate(context.Background(), "alice", "wrong"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}

	if _, _, err := uc.Authenticate(context.Background(), "ghost", "secret"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}
