package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/coursemap/internal/app/models"
	"github.com/yigit/coursemap/internal/app/models/dto"
	"github.com/yigit/coursemap/internal/app/repositories"
	"github.com/yigit/coursemap/internal/db/dbtest"
	"github.com/yigit/coursemap/internal/pkg/apperrors"
	"github.com/yigit/coursemap/internal/pkg/auth"
)

func newAuthFixture(t *testing.T) (AuthService, *auth.JWTService) {
	t.Helper()
	auth.BcryptCost = bcrypt.MinCost

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		Algorithm:      "HS256",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "coursemap-test",
	})
	repos := repositories.NewRepositories(dbtest.Open(t))
	return NewAuthService(repos.UserRepository, jwtService, zerolog.Nop()), jwtService
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, jwtService := newAuthFixture(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &dto.RegisterRequest{Email: "student@uni.edu", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", registered.TokenType)

	claims, err := jwtService.ValidateToken(registered.AccessToken)
	require.NoError(t, err)
	userID := claims.UserID()

	loggedIn, err := svc.Login(ctx, &dto.LoginRequest{Username: "student@uni.edu", Password: "secret123"})
	require.NoError(t, err)
	claims, err = jwtService.ValidateToken(loggedIn.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID())

	user, err := svc.CurrentUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "student@uni.edu", user.Email)
	assert.NotEqual(t, "secret123", user.PasswordHash)
}

func TestAuthService_DuplicateRegistration(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Email: "dup@uni.edu", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &dto.RegisterRequest{Email: "dup@uni.edu", Password: "another1"})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	assert.Equal(t, "Email already registered", apperrors.MessageOf(err, ""))
}

func TestAuthService_LoginFailures(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Email: "student@uni.edu", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "student@uni.edu", Password: "wrong-pass"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "nobody@uni.edu", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_CurrentUserMissing(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.CurrentUser(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

// racingUserStore reports the email as free but loses the insert race.
type racingUserStore struct {
	UserStore
}

func (racingUserStore) EmailExists(context.Context, string) (bool, error) { return false, nil }

func (racingUserStore) Create(context.Context, *models.User) error {
	return fmt.Errorf("error creating user: %w", apperrors.ErrEmailAlreadyExists)
}

func TestAuthService_DuplicateRegistrationRace(t *testing.T) {
	auth.BcryptCost = bcrypt.MinCost
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", Algorithm: "HS256", AccessTokenExp: time.Hour})
	svc := NewAuthService(racingUserStore{}, jwtService, zerolog.Nop())

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{Email: "dup@uni.edu", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	assert.Equal(t, "Email already registered", apperrors.MessageOf(err, ""))
}
