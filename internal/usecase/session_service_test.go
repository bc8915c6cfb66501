package usecase

import (
	"context"
	"errors"
	"testing"
)

func TestLoginRoles(t *testing.T) {
	t.Parallel()

	svc := NewSessionService("FRIDAY", "ADMIN123", &seqIDGen{}, nil)

	player, err := svc.Login(context.Background(), "FRIDAY")
	if err != nil {
		t.Fatalf("player login: %v", err)
	}
	if player.Role != RolePlayer || player.IsAdmin() {
		t.Fatalf("unexpected player principal: %+v", player)
	}

	admin, err := svc.Login(context.Background(), "ADMIN123")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if !admin.IsAdmin() {
		t.Fatalf("unexpected admin principal: %+v", admin)
	}
	if admin.Token == player.Token {
		t.Fatal("tokens should be distinct")
	}
}

func TestLoginRejectsUnknownCode(t *testing.T) {
	t.Parallel()

	svc := NewSessionService("FRIDAY", "ADMIN123", &seqIDGen{}, nil)

	if _, err := svc.Login(context.Background(), "WRONG"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank code, got %v", err)
	}
}

func TestVerifyAccessToken(t *testing.T) {
	t.Parallel()

	svc := NewSessionService("FRIDAY", "ADMIN123", &seqIDGen{}, nil)

	p, err := svc.Login(context.Background(), "FRIDAY")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	got, err := svc.VerifyAccessToken(context.Background(), p.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.Role != RolePlayer {
		t.Fatalf("unexpected role: %s", got.Role)
	}

	if _, err := svc.VerifyAccessToken(context.Background(), "bogus"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestLogoutInvalidatesToken(t *testing.T) {
	t.Parallel()

	svc := NewSessionService("FRIDAY", "ADMIN123", &seqIDGen{}, nil)

	p, err := svc.Login(context.Background(), "ADMIN123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := svc.Logout(context.Background(), p.Token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.VerifyAccessToken(context.Background(), p.Token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized after logout, got %v", err)
	}
}
