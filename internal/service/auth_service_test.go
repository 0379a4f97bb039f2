package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/pharmadirect/internal/config"
	"github.com/pharmadirect/internal/models"
	"github.com/pharmadirect/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newAuthTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}, &models.User{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func authTestConfig() *config.Config {
	return &config.Config{
		JWT:     config.JWTConfig{SecretKey: "unit-test-secret-key-0123456789ab", ExpireHours: 24},
		UserJWT: config.JWTConfig{SecretKey: "unit-test-user-secret-0123456789", ExpireHours: 72},
	}
}

func TestAuthServicePasswordRoundTrip(t *testing.T) {
	svc := NewAuthService(authTestConfig(), nil)

	hash, err := svc.HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if hash == "correct horse battery" {
		t.Fatalf("hash should not equal plaintext")
	}
	if err := svc.VerifyPassword(hash, "correct horse battery"); err != nil {
		t.Fatalf("verify error: %v", err)
	}
	if err := svc.VerifyPassword(hash, "wrong password"); err == nil {
		t.Fatalf("expected verify failure for wrong password")
	}
}

func TestAuthServiceJWTRoundTrip(t *testing.T) {
	svc := NewAuthService(authTestConfig(), nil)
	admin := &models.Admin{ID: 3, Username: "pharmacist"}

	token, expiresAt, err := svc.GenerateJWT(admin)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("expected future expiry, got %s", expiresAt)
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if claims.AdminID != 3 || claims.Username != "pharmacist" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	other := NewAuthService(&config.Config{
		JWT: config.JWTConfig{SecretKey: "another-secret-key-0123456789abcd", ExpireHours: 24},
	}, nil)
	if _, err := other.ParseJWT(token); err == nil {
		t.Fatalf("expected parse failure with different secret")
	}
}

func TestAuthServiceLogin(t *testing.T) {
	db := newAuthTestDB(t, "auth_login")
	svc := NewAuthService(authTestConfig(), repository.NewAdminRepository(db))

	hash, err := svc.HashPassword("admin-pass-123")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if err := db.Create(&models.Admin{Username: "root", PasswordHash: hash}).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}

	admin, token, _, err := svc.Login("root", "admin-pass-123")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if admin.LastLoginAt == nil {
		t.Fatalf("expected last login time to be recorded")
	}

	if _, _, _, err := svc.Login("root", "bad-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, _, err := svc.Login("ghost", "admin-pass-123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestUserAuthServiceRegisterAndLogin(t *testing.T) {
	db := newAuthTestDB(t, "user_auth")
	svc := NewUserAuthService(authTestConfig(), repository.NewUserRepository(db))

	user, token, _, err := svc.Register(" Patient@Example.com ", "patient-pass", "Pat")
	if err != nil {
		t.Fatalf("register error: %v", err)
	}
	if user.Email != "patient@example.com" {
		t.Fatalf("expected lower-cased email, got %q", user.Email)
	}
	if token == "" {
		t.Fatalf("expected token on register")
	}

	if _, _, _, err := svc.Register("patient@example.com", "another-pass", ""); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != "patient@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, _, _, err := svc.Login("patient@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Update("status", "disabled").Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}
	if _, _, _, err := svc.Login("patient@example.com", "patient-pass"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("expected ErrUserDisabled, got %v", err)
	}
}
