package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Manufactura-api/internal/application/auth"
	"github.com/jhoicas/Manufactura-api/internal/application/dto"
	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/infrastructure/memory"
)

func newAuthUseCase() *auth.AuthUseCase {
	store := memory.NewStore()
	return auth.NewAuthUseCase(memory.NewUserRepository(store), auth.JWTConfig{
		Secret:     "secreto-de-test",
		ExpMinutes: 60,
		Issuer:     "manufactura-api",
	})
}

func TestRegisterUser_YLogin(t *testing.T) {
	uc := newAuthUseCase()

	user, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "operario@planta.com",
		Password: "password123",
		Name:     "Operario Uno",
	})
	require.NoError(t, err)
	assert.Equal(t, "operario", user.Role, "rol por defecto")
	assert.Equal(t, "active", user.Status)

	resp, err := uc.Login(dto.LoginRequest{Email: "operario@planta.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc := newAuthUseCase()

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "dup@planta.com", Password: "password123"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "dup@planta.com", Password: "otraclave456"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newAuthUseCase()
	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "sup@planta.com", Password: "password123", Role: "supervisor"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "sup@planta.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Email: "nadie@planta.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
