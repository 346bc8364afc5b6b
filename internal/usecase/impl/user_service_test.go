package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	mockRepo "storefront/internal/mocks/repository"
	mockService "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service          usecase.UserUsecase
	txManager        *mockRepo.MockTransactionManager
	userRepo         *mockRepo.MockUserRepository
	refreshTokenRepo *mockRepo.MockRefreshTokenRepository
	hasher           *mockService.MockPasswordHasher
	tokenService     *mockService.MockTokenService
}

func createTestUserService(t *testing.T) userServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	refreshTokenRepo := mockRepo.NewMockRefreshTokenRepository(t)
	hasher := mockService.NewMockPasswordHasher(t)
	tokenService := mockService.NewMockTokenService(t)
	svc := NewUserService(UserServiceParams{
		TxManager:        txManager,
		UserRepo:         userRepo,
		RefreshTokenRepo: refreshTokenRepo,
		Hasher:           hasher,
		TokenService:     tokenService,
		Config:           &config.Config{PasswordStrength: &config.PasswordStrengthConfig{MinLength: 8, MaxLength: 72}},
		Logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return userServiceFixtures{
		service:          svc,
		txManager:        txManager,
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		hasher:           hasher,
		tokenService:     tokenService,
	}
}

func registeredUser() *entity.User {
	return &entity.User{
		ID:           uuid.New(),
		FullName:     "王小明",
		Email:        "buyer@example.com",
		PasswordHash: "$2a$10$stored",
		Role:         entity.RoleUser,
	}
}

func TestUserService_Register_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()

	fx.userRepo.EXPECT().
		FindByEmail(ctx, "buyer@example.com").
		Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().Hash("Sup3rSecret!").Return("$2a$10$hashed", nil)
	fx.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Return(nil)

	user, err := fx.service.Register(ctx, usecase.RegisterInput{
		FullName: "王小明",
		Email:    "  Buyer@Example.COM ",
		Password: "Sup3rSecret!",
	})
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", user.Email)
	assert.Equal(t, entity.RoleUser, user.Role)
	assert.Equal(t, "$2a$10$hashed", user.PasswordHash)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()

	fx.userRepo.EXPECT().
		FindByEmail(ctx, "buyer@example.com").
		Return(registeredUser(), nil)

	_, err := fx.service.Register(ctx, usecase.RegisterInput{
		FullName: "王小明",
		Email:    "buyer@example.com",
		Password: "Sup3rSecret!",
	})
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestUserService_Register_DuplicateRaceOnInsert(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()

	fx.userRepo.EXPECT().
		FindByEmail(ctx, "buyer@example.com").
		Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().Hash("Sup3rSecret!").Return("$2a$10$hashed", nil)
	fx.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Return(repository.ErrDuplicateUser)

	_, err := fx.service.Register(ctx, usecase.RegisterInput{
		FullName: "王小明",
		Email:    "buyer@example.com",
		Password: "Sup3rSecret!",
	})
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestUserService_Register_WeakPassword(t *testing.T) {
	fx := createTestUserService(t)

	_, err := fx.service.Register(context.Background(), usecase.RegisterInput{
		FullName: "王小明",
		Email:    "buyer@example.com",
		Password: "short",
	})
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), appErr.ErrorCode())
}

func TestUserService_CreateAdmin_AssignsAdminRole(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()

	fx.userRepo.EXPECT().
		FindByEmail(ctx, "ops@example.com").
		Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().Hash("Sup3rSecret!").Return("$2a$10$hashed", nil)
	fx.userRepo.EXPECT().
		Create(ctx, mock.MatchedBy(func(user *entity.User) bool {
			return user.Role == entity.RoleAdmin
		})).
		Return(nil)

	user, err := fx.service.CreateAdmin(ctx, usecase.RegisterInput{
		FullName: "營運人員",
		Email:    "ops@example.com",
		Password: "Sup3rSecret!",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, user.Role)
}

func TestUserService_Login_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	user := registeredUser()

	fx.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
	fx.hasher.EXPECT().Check("Sup3rSecret!", user.PasswordHash).Return(true)
	fx.tokenService.EXPECT().
		GenerateTokens(user.ID, entity.RoleUser.String()).
		Return("access-token", "refresh-token", nil)
	fx.tokenService.EXPECT().HashToken("refresh-token").Return("hashed-refresh")
	fx.tokenService.EXPECT().GetRefreshTokenDuration().Return(7 * 24 * time.Hour)
	fx.refreshTokenRepo.EXPECT().
		CreateRefreshToken(ctx, mock.MatchedBy(func(session *entity.RefreshToken) bool {
			return session.UserID == user.ID && session.TokenHash == "hashed-refresh"
		})).
		Return(nil)

	out, err := fx.service.Login(ctx, usecase.LoginInput{Email: user.Email, Password: "Sup3rSecret!"})
	require.NoError(t, err)
	assert.Equal(t, "access-token", out.AccessToken)
	assert.Equal(t, "refresh-token", out.RefreshToken)
	assert.Equal(t, user, out.User)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	user := registeredUser()

	fx.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
	fx.hasher.EXPECT().Check("wrong", user.PasswordHash).Return(false)

	_, err := fx.service.Login(ctx, usecase.LoginInput{Email: user.Email, Password: "wrong"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_Login_UnknownEmailMatchesWrongPassword(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()

	fx.userRepo.EXPECT().
		FindByEmail(ctx, "nobody@example.com").
		Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.Login(ctx, usecase.LoginInput{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_Login_DeletedAccount(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	user := registeredUser()
	user.IsDeleted = true

	fx.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)

	_, err := fx.service.Login(ctx, usecase.LoginInput{Email: user.Email, Password: "Sup3rSecret!"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_RefreshToken_RotatesSession(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	user := registeredUser()
	session := &entity.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: "hashed-old",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	fx.tokenService.EXPECT().
		ValidateToken("old-refresh").
		Return(&service.Claims{UserID: user.ID, Role: user.Role.String(), Type: "refresh"}, nil)
	fx.tokenService.EXPECT().HashToken("old-refresh").Return("hashed-old")
	fx.refreshTokenRepo.EXPECT().FindRefreshTokenByHash(ctx, "hashed-old").Return(session, nil)
	fx.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)
	fx.tokenService.EXPECT().
		GenerateTokens(user.ID, user.Role.String()).
		Return("new-access", "new-refresh", nil)
	fx.tokenService.EXPECT().HashToken("new-refresh").Return("hashed-new")
	fx.tokenService.EXPECT().GetRefreshTokenDuration().Return(7 * 24 * time.Hour)

	factory := mockRepo.NewMockRepositoryFactory(t)
	txTokenRepo := mockRepo.NewMockRefreshTokenRepository(t)
	factory.EXPECT().NewRefreshTokenRepository().Return(txTokenRepo)
	txTokenRepo.EXPECT().DeleteRefreshTokenByHash(ctx, "hashed-old").Return(nil)
	txTokenRepo.EXPECT().
		CreateRefreshToken(ctx, mock.MatchedBy(func(next *entity.RefreshToken) bool {
			return next.UserID == user.ID && next.TokenHash == "hashed-new"
		})).
		Return(nil)
	fx.txManager.EXPECT().
		Execute(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})

	out, err := fx.service.RefreshToken(ctx, usecase.RefreshTokenInput{RefreshToken: "old-refresh"})
	require.NoError(t, err)
	assert.Equal(t, "new-access", out.AccessToken)
	assert.Equal(t, "new-refresh", out.RefreshToken)
}

func TestUserService_RefreshToken_RejectsAccessToken(t *testing.T) {
	fx := createTestUserService(t)

	fx.tokenService.EXPECT().
		ValidateToken("an-access-token").
		Return(&service.Claims{UserID: uuid.New(), Type: "access"}, nil)

	_, err := fx.service.RefreshToken(context.Background(), usecase.RefreshTokenInput{RefreshToken: "an-access-token"})
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestUserService_RefreshToken_UnknownSession(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()

	fx.tokenService.EXPECT().
		ValidateToken("stolen-refresh").
		Return(&service.Claims{UserID: uuid.New(), Type: "refresh"}, nil)
	fx.tokenService.EXPECT().HashToken("stolen-refresh").Return("hashed-stolen")
	fx.refreshTokenRepo.EXPECT().
		FindRefreshTokenByHash(ctx, "hashed-stolen").
		Return(nil, repository.ErrRefreshTokenNotFound)

	_, err := fx.service.RefreshToken(ctx, usecase.RefreshTokenInput{RefreshToken: "stolen-refresh"})
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestUserService_Logout_UnknownTokenSucceeds(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()

	fx.tokenService.EXPECT().HashToken("gone-refresh").Return("hashed-gone")
	fx.refreshTokenRepo.EXPECT().
		DeleteRefreshTokenByHash(ctx, "hashed-gone").
		Return(repository.ErrRefreshTokenNotFound)

	err := fx.service.Logout(ctx, usecase.RefreshTokenInput{RefreshToken: "gone-refresh"})
	assert.NoError(t, err)
}

func TestUserService_ChangePassword_RevokesAllSessions(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	user := registeredUser()

	fx.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)
	fx.hasher.EXPECT().Check("Sup3rSecret!", "$2a$10$stored").Return(true)
	fx.hasher.EXPECT().Hash("N3wSecret!!").Return("$2a$10$renewed", nil)

	factory := mockRepo.NewMockRepositoryFactory(t)
	txUserRepo := mockRepo.NewMockUserRepository(t)
	txTokenRepo := mockRepo.NewMockRefreshTokenRepository(t)
	factory.EXPECT().NewUserRepository().Return(txUserRepo)
	factory.EXPECT().NewRefreshTokenRepository().Return(txTokenRepo)
	txUserRepo.EXPECT().
		Update(ctx, mock.MatchedBy(func(updated *entity.User) bool {
			return updated.PasswordHash == "$2a$10$renewed"
		})).
		Return(nil)
	txTokenRepo.EXPECT().DeleteRefreshTokensByUserID(ctx, user.ID).Return(nil)
	fx.txManager.EXPECT().
		Execute(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})

	err := fx.service.ChangePassword(ctx, user.ID, usecase.ChangePasswordInput{
		CurrentPassword: "Sup3rSecret!",
		NewPassword:     "N3wSecret!!",
	})
	assert.NoError(t, err)
}

func TestUserService_ChangePassword_WrongCurrentPassword(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	user := registeredUser()

	fx.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)
	fx.hasher.EXPECT().Check("wrong", "$2a$10$stored").Return(false)

	err := fx.service.ChangePassword(ctx, user.ID, usecase.ChangePasswordInput{
		CurrentPassword: "wrong",
		NewPassword:     "N3wSecret!!",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_UpdateProfile_CreatesProfileLazily(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	user := registeredUser()
	require.Nil(t, user.Profile)

	fx.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)
	fx.userRepo.EXPECT().Update(ctx, user).Return(nil)

	phone := "0912345678"
	address := testAddress()
	updated, err := fx.service.UpdateProfile(ctx, user.ID, usecase.UpdateProfileInput{
		PhoneNumber: &phone,
		Address:     &address,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Profile)
	assert.Equal(t, phone, updated.Profile.PhoneNumber)
	assert.Equal(t, address, updated.Profile.Address)
}
