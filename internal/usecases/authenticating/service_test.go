package authenticating

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-quest-api/infrastructure/repository"
	"github.com/vfg2006/sales-quest-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-quest-api/internal/config"
	"github.com/vfg2006/sales-quest-api/internal/domain"
	"github.com/vfg2006/sales-quest-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "segredo-de-teste"

func newTestService(t *testing.T) (*Service, *mocks.MockUserRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUserRepository(ctrl)

	return &Service{
		userRepo: repo,
		cfg:      &config.Config{SecretKey: testSecret},
		now:      time.Now,
	}, repo
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestService_LoginUser(t *testing.T) {
	ctx := context.Background()

	t.Run("login válido gera token verificável", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().GetUserByEmail(ctx, "ana@example.com").Return(&domain.User{
			ID:           7,
			Name:         "Ana",
			Email:        "ana@example.com",
			PasswordHash: hashed(t, "Senha123"),
			Active:       true,
			RoleID:       RoleAdmin,
		}, nil)

		token, err := service.LoginUser(ctx, " Ana@Example.com ", "Senha123")
		require.NoError(t, err)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, 7, claims.UserID)
		assert.Equal(t, RoleAdmin, claims.UserRoleID)
		assert.WithinDuration(t, time.Now().Add(tokenTTL), claims.ExpiresAt.Time, time.Minute)
	})

	t.Run("senha incorreta", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().GetUserByEmail(ctx, "ana@example.com").Return(&domain.User{
			ID:           7,
			PasswordHash: hashed(t, "Senha123"),
			Active:       true,
		}, nil)

		_, err := service.LoginUser(ctx, "ana@example.com", "errada")

		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, apiErrors.ErrInvalidCredentials, authErr.Code)
		assert.Equal(t, 7, authErr.UserID)
		assert.True(t, IsCredentialsError(err))
	})

	t.Run("usuário desativado", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().GetUserByEmail(ctx, "ana@example.com").Return(&domain.User{ID: 7}, nil)

		_, err := service.LoginUser(ctx, "ana@example.com", "Senha123")
		assert.ErrorIs(t, err, ErrUserDisabled)
	})

	t.Run("usuário inexistente", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().GetUserByEmail(ctx, "ninguem@example.com").Return(nil, nil)

		_, err := service.LoginUser(ctx, "ninguem@example.com", "Senha123")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("campos vazios", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.LoginUser(ctx, "", "")
		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})
}

func TestService_ValidateToken(t *testing.T) {
	service, _ := newTestService(t)

	t.Run("token expirado", func(t *testing.T) {
		token, err := generateJWT(&domain.User{ID: 1}, testSecret, time.Now().Add(-48*time.Hour))
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("assinatura com outro segredo", func(t *testing.T) {
		token, err := generateJWT(&domain.User{ID: 1}, "outro", time.Now())
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.Error(t, err)
	})
}

func TestService_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("cria usuário ativo com senha hasheada", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().GetUserByEmail(ctx, "bruno@example.com").Return(nil, nil)
		repo.EXPECT().
			CreateUser(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, user *domain.User) (*domain.User, error) {
				assert.True(t, user.Active)
				assert.Equal(t, RoleClient, user.RoleID)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Senha123")))
				user.ID = 2
				return user, nil
			})

		user, err := service.CreateUser(ctx, &domain.User{
			Name:         "Bruno",
			Email:        "Bruno@Example.com",
			PasswordHash: "Senha123",
		})
		require.NoError(t, err)
		assert.Equal(t, 2, user.ID)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("email duplicado", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().GetUserByEmail(ctx, "bruno@example.com").Return(&domain.User{ID: 2}, nil)

		_, err := service.CreateUser(ctx, &domain.User{Name: "Bruno", Email: "bruno@example.com", PasswordHash: "Senha123"})
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("email duplicado na inserção", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().GetUserByEmail(ctx, "bruno@example.com").Return(nil, nil)
		repo.EXPECT().CreateUser(ctx, gomock.Any()).Return(nil, repository.ErrDuplicateUser)

		_, err := service.CreateUser(ctx, &domain.User{Name: "Bruno", Email: "bruno@example.com", PasswordHash: "Senha123"})
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("senha fraca", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.CreateUser(ctx, &domain.User{Name: "Bruno", Email: "bruno@example.com", PasswordHash: "fraca"})
		assert.ErrorIs(t, err, ErrWeakPassword)
	})

	t.Run("perfil inválido", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.CreateUser(ctx, &domain.User{Name: "Bruno", Email: "b@example.com", PasswordHash: "Senha123", RoleID: 9})
		assert.ErrorIs(t, err, ErrInvalidRole)
	})
}

func TestService_ValidatePasswordStrength(t *testing.T) {
	service, _ := newTestService(t)

	assert.NoError(t, service.ValidatePasswordStrength("Senha123"))
	assert.Error(t, service.ValidatePasswordStrength("Sh0rt"))
	assert.Error(t, service.ValidatePasswordStrength("semmaiuscula1"))
	assert.Error(t, service.ValidatePasswordStrength("SEMMINUSCULA1"))
	assert.Error(t, service.ValidatePasswordStrength("SemNumeros"))
}
