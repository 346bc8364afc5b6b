package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager        repository.TransactionManager
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	hasher           service.PasswordHasher
	tokenService     service.TokenService
	passwordStrength *config.PasswordStrengthConfig
	logger           *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	UserRepo         repository.UserRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	Hasher           service.PasswordHasher
	TokenService     service.TokenService
	Config           *config.Config
	Logger           *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	var strength *config.PasswordStrengthConfig
	if params.Config != nil {
		strength = params.Config.PasswordStrength
	}

	return &userService{
		txManager:        params.TxManager,
		userRepo:         params.UserRepo,
		refreshTokenRepo: params.RefreshTokenRepo,
		hasher:           params.Hasher,
		tokenService:     params.TokenService,
		passwordStrength: strength,
		logger:           params.Logger,
	}
}

// validatePassword checks the password against the configured strength rules.
func (s *userService) validatePassword(password string) error {
	cfg := s.passwordStrength
	if cfg == nil {
		cfg = &config.PasswordStrengthConfig{MinLength: 8, MaxLength: 72}
	}

	if len(password) < cfg.MinLength {
		return domainerrors.ErrValidationFailed.WithDetails("密碼長度不足")
	}
	if cfg.MaxLength > 0 && len(password) > cfg.MaxLength {
		return domainerrors.ErrValidationFailed.WithDetails("密碼長度超過上限")
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if cfg.RequireUppercase && !hasUpper {
		return domainerrors.ErrValidationFailed.WithDetails("密碼必須包含大寫字母")
	}
	if cfg.RequireLowercase && !hasLower {
		return domainerrors.ErrValidationFailed.WithDetails("密碼必須包含小寫字母")
	}
	if cfg.RequireNumbers && !hasNumber {
		return domainerrors.ErrValidationFailed.WithDetails("密碼必須包含數字")
	}
	if cfg.RequireSpecial && !hasSpecial {
		return domainerrors.ErrValidationFailed.WithDetails("密碼必須包含特殊符號")
	}

	return nil
}

// register creates an account with the given role after checking email uniqueness.
func (s *userService) register(ctx context.Context, input usecase.RegisterInput, role entity.Role) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.FullName == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("姓名與信箱不可為空")
	}
	if err := s.validatePassword(input.Password); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, domainerrors.ErrUserAlreadyExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check email uniqueness")
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed
	}

	user := &entity.User{
		ID:           uuid.New(),
		FullName:     input.FullName,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, domainerrors.ErrUserAlreadyExists
		}

		return nil, errors.Wrap(err, "failed to create user")
	}

	return user, nil
}

// Register creates a regular shopper account.
func (s *userService) Register(ctx context.Context, input usecase.RegisterInput) (*entity.User, error) {
	return s.register(ctx, input, entity.RoleUser)
}

// CreateAdmin creates an administrator account. The delivery layer restricts
// this to superadmin callers.
func (s *userService) CreateAdmin(ctx context.Context, input usecase.RegisterInput) (*entity.User, error) {
	return s.register(ctx, input, entity.RoleAdmin)
}

// createSession stores the hashed refresh token as a new session.
func (s *userService) createSession(ctx context.Context, userID uuid.UUID, refreshToken string) error {
	session := &entity.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: s.tokenService.HashToken(refreshToken),
		ExpiresAt: time.Now().Add(s.tokenService.GetRefreshTokenDuration()),
	}

	if err := s.refreshTokenRepo.CreateRefreshToken(ctx, session); err != nil {
		return errors.Wrap(err, "failed to create refresh token")
	}

	return nil
}

// Login verifies the credentials and opens a session.
func (s *userService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if user.IsDeleted {
		return nil, domainerrors.ErrInvalidCredentials
	}

	if !s.hasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.tokenService.GenerateTokens(user.ID, user.Role.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	if err := s.createSession(ctx, user.ID, refreshToken); err != nil {
		return nil, err
	}

	return &usecase.AuthOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// RefreshToken rotates a valid refresh token: the presented session is
// revoked and a fresh pair is issued in its place, in one transaction.
func (s *userService) RefreshToken(ctx context.Context, input usecase.RefreshTokenInput) (*usecase.AuthOutput, error) {
	claims, err := s.tokenService.ValidateToken(input.RefreshToken)
	if err != nil || claims.Type != "refresh" {
		return nil, domainerrors.ErrRefreshTokenInvalid
	}

	tokenHash := s.tokenService.HashToken(input.RefreshToken)

	session, err := s.refreshTokenRepo.FindRefreshTokenByHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) || errors.Is(err, repository.ErrRefreshTokenExpired) {
			return nil, domainerrors.ErrRefreshTokenInvalid
		}

		return nil, errors.Wrap(err, "failed to find refresh token")
	}

	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find session user")
	}
	if user.IsDeleted {
		return nil, domainerrors.ErrRefreshTokenInvalid
	}

	accessToken, newRefreshToken, err := s.tokenService.GenerateTokens(user.ID, user.Role.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	err = s.txManager.Execute(ctx, func(txRepoFactory repository.RepositoryFactory) error {
		txTokenRepo := txRepoFactory.NewRefreshTokenRepository()

		if err := txTokenRepo.DeleteRefreshTokenByHash(ctx, tokenHash); err != nil {
			return errors.Wrap(err, "failed to revoke old refresh token")
		}

		newSession := &entity.RefreshToken{
			ID:        uuid.New(),
			UserID:    user.ID,
			TokenHash: s.tokenService.HashToken(newRefreshToken),
			ExpiresAt: time.Now().Add(s.tokenService.GetRefreshTokenDuration()),
		}

		if err := txTokenRepo.CreateRefreshToken(ctx, newSession); err != nil {
			return errors.Wrap(err, "failed to create refresh token")
		}

		return nil
	})
	if err != nil {
		return nil, domainerrors.ErrTransactionFailed.WrapMessage(err.Error())
	}

	return &usecase.AuthOutput{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		User:         user,
	}, nil
}

// Logout ends the session carried by the refresh token. Logging out an
// unknown token succeeds; the session is gone either way.
func (s *userService) Logout(ctx context.Context, input usecase.RefreshTokenInput) error {
	tokenHash := s.tokenService.HashToken(input.RefreshToken)

	if err := s.refreshTokenRepo.DeleteRefreshTokenByHash(ctx, tokenHash); err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to delete refresh token")
	}

	return nil
}

// GetProfile returns the user's own account.
func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

// UpdateProfile applies optional profile field updates.
func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, input usecase.UpdateProfileInput) (*entity.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.PhoneNumber != nil || input.Address != nil {
		if user.Profile == nil {
			user.Profile = &entity.UserProfile{}
		}
		if input.PhoneNumber != nil {
			user.Profile.PhoneNumber = *input.PhoneNumber
		}
		if input.Address != nil {
			user.Profile.Address = *input.Address
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update user")
	}

	return user, nil
}

// ChangePassword verifies the current password, stores the new hash and
// revokes every open session so stolen refresh tokens die with the change.
func (s *userService) ChangePassword(ctx context.Context, userID uuid.UUID, input usecase.ChangePasswordInput) error {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}

	if !s.hasher.Check(input.CurrentPassword, user.PasswordHash) {
		return domainerrors.ErrInvalidCredentials
	}

	if err := s.validatePassword(input.NewPassword); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(input.NewPassword)
	if err != nil {
		return domainerrors.ErrPasswordHashFailed
	}
	user.PasswordHash = hash

	err = s.txManager.Execute(ctx, func(txRepoFactory repository.RepositoryFactory) error {
		if err := txRepoFactory.NewUserRepository().Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update password")
		}

		if err := txRepoFactory.NewRefreshTokenRepository().DeleteRefreshTokensByUserID(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to revoke sessions")
		}

		return nil
	})
	if err != nil {
		return domainerrors.ErrTransactionFailed.WrapMessage(err.Error())
	}

	return nil
}

// DeleteAccount soft-deletes the account and revokes every open session.
func (s *userService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}

	user.IsDeleted = true

	err = s.txManager.Execute(ctx, func(txRepoFactory repository.RepositoryFactory) error {
		if err := txRepoFactory.NewUserRepository().Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to soft delete user")
		}

		if err := txRepoFactory.NewRefreshTokenRepository().DeleteRefreshTokensByUserID(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to revoke sessions")
		}

		return nil
	})
	if err != nil {
		return domainerrors.ErrTransactionFailed.WrapMessage(err.Error())
	}

	return nil
}

// ListUsers returns all accounts, newest first.
func (s *userService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return users, nil
}

// GetUser returns one account by ID.
func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return s.GetProfile(ctx, id)
}
