package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/KaushikNaik2/Schedulix/config"
	"github.com/KaushikNaik2/Schedulix/internal/dto"
	"github.com/KaushikNaik2/Schedulix/internal/model"
	"github.com/KaushikNaik2/Schedulix/pkg/jwt"
)

func newTestAuthService(env *testEnv, blacklist TokenBlacklist) (AuthService, *jwt.Manager) {
	mgr := jwt.NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-0123456789",
		AccessTokenTTL: time.Hour,
	})
	return NewAuthService(env.repo, mgr, blacklist, env.availability(), env.clock, env.logger), mgr
}

func registerRequest(username, role string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Username:              username,
		Email:                 username + "@college.edu",
		Password:              "Passw0rd",
		Role:                  role,
		FullName:              "  Test User ",
		SecurityQuestionIndex: 3,
		SecurityAnswer:        "Fluffy",
	}
}

// ── Register ──

func TestRegister_Success(t *testing.T) {
	env := newTestEnv()
	svc, _ := newTestAuthService(env, nil)

	resp, err := svc.Register(context.Background(), registerRequest("prof1", "FACULTY"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.Role != model.RoleFaculty || resp.Username != "prof1" || resp.ID == "" {
		t.Errorf("unexpected response: %+v", resp)
	}

	stored := env.users.users[resp.ID]
	if stored.PasswordHash == "Passw0rd" {
		t.Error("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Passw0rd")); err != nil {
		t.Errorf("password hash mismatch: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.SecurityAnswerHash), []byte("fluffy")); err != nil {
		t.Errorf("answer should be stored normalised: %v", err)
	}
	if stored.FullName == nil || *stored.FullName != "Test User" {
		t.Errorf("full name = %v", stored.FullName)
	}
}

func TestRegister_Conflicts(t *testing.T) {
	env := newTestEnv()
	svc, _ := newTestAuthService(env, nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerRequest("alice", "student")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Register(ctx, registerRequest("alice", "student")); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}

	req := registerRequest("alice2", "student")
	req.Email = "alice@college.edu"
	if _, err := svc.Register(ctx, req); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}

	if _, err := svc.Register(ctx, registerRequest("bob", "admin")); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
}

// ── Login / Logout ──

func TestLogin(t *testing.T) {
	env := newTestEnv()
	svc, mgr := newTestAuthService(env, nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerRequest("prof1", "faculty")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	resp, err := svc.Login(ctx, &dto.LoginRequest{Username: "prof1", Password: "Passw0rd"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.TokenType != "Bearer" || resp.ExpiresIn != 3600 {
		t.Errorf("unexpected token meta: %+v", resp)
	}
	claims, err := mgr.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Username != "prof1" || claims.Role != model.RoleFaculty {
		t.Errorf("unexpected claims: %+v", claims)
	}
	// Monday 09:30 with an empty timetable
	if resp.User.CurrentStatus != StatusAvailable || resp.User.CurrentLocation != LocationCabin {
		t.Errorf("login profile availability = (%q, %q)", resp.User.CurrentStatus, resp.User.CurrentLocation)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := newTestEnv()
	svc, _ := newTestAuthService(env, nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerRequest("prof1", "faculty")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Login(ctx, &dto.LoginRequest{Username: "prof1", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Username: "nobody", Password: "Passw0rd"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogout(t *testing.T) {
	env := newTestEnv()
	blacklist := &mockBlacklist{}
	svc, _ := newTestAuthService(env, blacklist)

	if err := svc.Logout(context.Background(), "jti-1", monday0930.Add(30*time.Minute)); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if ttl := blacklist.revoked["jti-1"]; ttl != 30*time.Minute {
		t.Errorf("blacklist ttl = %v, want 30m", ttl)
	}

	noCache, _ := newTestAuthService(env, nil)
	if err := noCache.Logout(context.Background(), "jti-2", monday0930.Add(time.Minute)); err != nil {
		t.Errorf("logout without blacklist should succeed, got %v", err)
	}
}

// ── Forgot password ──

func TestForgotPassword(t *testing.T) {
	env := newTestEnv()
	svc, _ := newTestAuthService(env, nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerRequest("alice", "student")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	q, err := svc.ForgotPasswordStart(ctx, "alice")
	if err != nil {
		t.Fatalf("ForgotPasswordStart: %v", err)
	}
	if q.SecurityQuestionIndex != 3 {
		t.Errorf("question index = %d, want 3", q.SecurityQuestionIndex)
	}

	err = svc.ForgotPasswordReset(ctx, &dto.ForgotPasswordResetRequest{
		Username: "alice", SecurityAnswer: "cat", NewPassword: "N3wPassword",
	})
	if !errors.Is(err, ErrSecurityAnswerMismatch) {
		t.Errorf("expected ErrSecurityAnswerMismatch, got %v", err)
	}

	err = svc.ForgotPasswordReset(ctx, &dto.ForgotPasswordResetRequest{
		Username: "alice", SecurityAnswer: "  FLUFFY ", NewPassword: "N3wPassword",
	})
	if err != nil {
		t.Fatalf("ForgotPasswordReset: %v", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "N3wPassword"}); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "Passw0rd"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("old password should no longer work, got %v", err)
	}
}

func TestForgotPassword_Errors(t *testing.T) {
	env := newTestEnv()
	env.addUser("legacy", model.RoleStudent)
	svc, _ := newTestAuthService(env, nil)
	ctx := context.Background()

	if _, err := svc.ForgotPasswordStart(ctx, "nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.ForgotPasswordStart(ctx, "legacy"); !errors.Is(err, ErrSecurityQuestionNotSet) {
		t.Errorf("expected ErrSecurityQuestionNotSet, got %v", err)
	}
	err := svc.ForgotPasswordReset(ctx, &dto.ForgotPasswordResetRequest{Username: "legacy", SecurityAnswer: "x", NewPassword: "N3wPassword"})
	if !errors.Is(err, ErrSecurityQuestionNotSet) {
		t.Errorf("expected ErrSecurityQuestionNotSet, got %v", err)
	}
}
