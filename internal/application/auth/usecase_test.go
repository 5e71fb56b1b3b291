package auth_test

import (
	"context"
	"testing"

	"github.com/shyakx/erp-system/internal/application/auth"
	"github.com/shyakx/erp-system/internal/application/dto"
	"github.com/shyakx/erp-system/internal/domain"
	"github.com/shyakx/erp-system/internal/domain/entity"
	"github.com/shyakx/erp-system/internal/infrastructure/memory"
	"github.com/shyakx/erp-system/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth(t *testing.T, status string) *auth.AuthUseCase {
	t.Helper()
	s := memory.NewStore()
	hash, err := auth.HashPassword("secreto123")
	require.NoError(t, err)
	require.NoError(t, memory.NewUserRepository(s).Create(context.Background(), &entity.User{
		ID: "u-1", CompanyID: "c-1", Email: "hr@demo.local", PasswordHash: hash,
		Name: "HR", Role: entity.RoleHR, Status: status,
	}))
	return auth.NewAuthUseCase(memory.NewUserRepository(s), auth.JWTConfig{Secret: "k", ExpMinutes: 5, Issuer: "erp"})
}

func TestLogin_OK(t *testing.T) {
	uc := newAuth(t, entity.UserStatusActive)
	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: " HR@demo.local ", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleHR, out.User.Role)

	userID, companyID, role, err := jwt.Parse("k", out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "c-1", companyID)
	assert.Equal(t, entity.RoleHR, role)
}

func TestLogin_Failures(t *testing.T) {
	uc := newAuth(t, entity.UserStatusActive)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "hr@demo.local", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@demo.local", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	suspended := newAuth(t, entity.UserStatusSuspended)
	_, err = suspended.Login(context.Background(), dto.LoginRequest{Email: "hr@demo.local", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
