package service

import (
	"context"
	"testing"

	"github.com/feedloop/feedloop/internal/config"
	"github.com/feedloop/feedloop/internal/modules/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func authTestConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthCfg{
			JWTSecret:     "test-secret",
			TokenTTLHours: 1,
			BcryptCost:    bcrypt.MinCost,
		},
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with hashed password", func(t *testing.T) {
		users := new(mockUserRepo)
		svc := NewAuthService(users, authTestConfig(), zap.NewNop())

		users.On("GetByEmail", ctx, "dana@example.com").Return(nil, gorm.ErrRecordNotFound)
		users.On("Create", ctx, mock.AnythingOfType("*model.User")).Return(nil)

		user, err := svc.Register(ctx, RegisterInput{
			Email:     "  Dana@Example.COM ",
			Password:  "hunter2hunter2",
			FirstName: "Dana",
			LastName:  "Smith",
		})
		require.NoError(t, err)

		assert.Equal(t, "dana@example.com", user.Email)
		assert.NotEqual(t, "hunter2hunter2", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter2hunter2")))
		users.AssertExpectations(t)
	})

	t.Run("rejects taken email", func(t *testing.T) {
		users := new(mockUserRepo)
		svc := NewAuthService(users, authTestConfig(), zap.NewNop())

		users.On("GetByEmail", ctx, "dana@example.com").Return(&model.User{Email: "dana@example.com"}, nil)

		_, err := svc.Register(ctx, RegisterInput{Email: "dana@example.com", Password: "hunter2hunter2"})
		assert.ErrorIs(t, err, ErrEmailTaken)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	user := &model.User{ID: uuid.New(), Email: "dana@example.com", PasswordHash: string(hash)}

	t.Run("returns parseable session token", func(t *testing.T) {
		users := new(mockUserRepo)
		svc := NewAuthService(users, authTestConfig(), zap.NewNop())

		users.On("GetByEmail", ctx, "dana@example.com").Return(user, nil)
		users.On("TouchLastLogin", ctx, user.ID).Return(nil)

		token, got, err := svc.Login(ctx, "Dana@Example.com", "hunter2hunter2")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)

		id, err := svc.ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, id)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(mockUserRepo)
		svc := NewAuthService(users, authTestConfig(), zap.NewNop())

		users.On("GetByEmail", ctx, "dana@example.com").Return(user, nil)

		_, _, err := svc.Login(ctx, "dana@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		users := new(mockUserRepo)
		svc := NewAuthService(users, authTestConfig(), zap.NewNop())

		users.On("GetByEmail", ctx, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

		_, _, err := svc.Login(ctx, "nobody@example.com", "hunter2hunter2")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("login survives last_login_at write failure", func(t *testing.T) {
		users := new(mockUserRepo)
		svc := NewAuthService(users, authTestConfig(), zap.NewNop())

		users.On("GetByEmail", ctx, "dana@example.com").Return(user, nil)
		users.On("TouchLastLogin", ctx, user.ID).Return(gorm.ErrInvalidDB)

		token, _, err := svc.Login(ctx, "dana@example.com", "hunter2hunter2")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})
}

func TestParseToken(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewAuthService(users, authTestConfig(), zap.NewNop())

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ParseToken("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := authTestConfig()
		other.Auth.JWTSecret = "different-secret"
		otherSvc := NewAuthService(users, other, zap.NewNop())

		ctx := context.Background()
		hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
		user := &model.User{ID: uuid.New(), Email: "dana@example.com", PasswordHash: string(hash)}
		users.On("GetByEmail", ctx, "dana@example.com").Return(user, nil)
		users.On("TouchLastLogin", ctx, user.ID).Return(nil)

		token, _, err := otherSvc.Login(ctx, "dana@example.com", "hunter2hunter2")
		require.NoError(t, err)

		_, err = svc.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
