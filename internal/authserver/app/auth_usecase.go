// Package app содержит прикладную логику сервиса авторизации.
package app

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.uber.org/zap"

	"loginapp/internal/authserver/domain/entities"
	"loginapp/internal/authserver/domain/services"
	"loginapp/internal/authserver/ports/api"
	cachePort "loginapp/internal/authserver/ports/cache"
	"loginapp/internal/authserver/ports/repositories"
	svc "loginapp/internal/authserver/ports/services"
	"loginapp/pkg/logger"
)

const (
	methodCheckUser = "CheckUser"
	methodLogin     = "Login"
	methodRegister  = "Register"
	methodProfile   = "Profile"

	msgCheckingUser        = "checking user existence"
	msgLoginAttempt        = "login attempt"
	msgLoginNonExistent    = "login attempt with non-existent phone"
	msgInvalidPasswordAuth = "invalid password provided"
	msgUserLoggedIn        = "user logged in successfully"
	msgStartRegistration   = "starting user registration"
	msgUserRegistered      = "user registered successfully"
	msgProfileFromCache    = "user profile found in cache"
	msgProfileCached       = "user profile cached successfully"

	msgErrFindingUser      = "error finding user by phone"
	msgErrFindingUserByID  = "error finding user by id"
	msgErrCheckEmail       = "failed to check existing email"
	msgErrHashPassword     = "failed to hash password"
	msgErrCreateUser       = "failed to create user"
	msgErrGenerateToken    = "failed to generate token"
	msgErrVerifyPassword   = "error verifying password"
	warnFailedCacheProfile = "failed to cache user profile"

	errCtxValidatingPhone    = "validating phone"
	errCtxValidatingEmail    = "validating email"
	errCtxFindingUser        = "finding user"
	errCtxInvalidCredentials = "invalid credentials"
	errCtxVerifyingPassword  = "verifying password"
	errCtxPhoneRegistered    = "phone already registered"
	errCtxEmailRegistered    = "email already registered"
	errCtxHashingPassword    = "hashing password"
	errCtxCreatingUser       = "creating user"
	errCtxGeneratingToken    = "generating token"
	errCtxVerifyingToken     = "verifying token"
)

// Константы кэширования профилей.
const (
	profileCacheKeyPrefix = "profile:"
	profileCacheTTL       = 15 * time.Minute
)

// Валидация соответствует проверкам сервиса: E.164 для телефона,
// обычная форма для email.
var (
	phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// AuthUseCaseImpl реализует интерфейс api.AuthUseCase.
type AuthUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
	cache       cachePort.Cache
}

// NewAuthUseCase создает новый экземпляр сервиса авторизации.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
	cache cachePort.Cache,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		cache:       cache,
	}
}

// CheckUser сообщает, зарегистрирован ли номер телефона.
func (a *AuthUseCaseImpl) CheckUser(ctx context.Context, phone string) (bool, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCheckUser))
	log.Debug(ctx, msgCheckingUser)

	if !phoneRegex.MatchString(phone) {
		return false, fmt.Errorf("%s: %w", errCtxValidatingPhone, entities.ErrInvalidPhone)
	}

	_, err := a.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return false, nil
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return false, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	return true, nil
}

// Login аутентифицирует пользователя по телефону и паролю. Несуществующий
// номер и неверный пароль неразличимы для вызывающей стороны.
func (a *AuthUseCaseImpl) Login(ctx context.Context, phone, password string) (*services.AuthResult, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin))
	log.Debug(ctx, msgLoginAttempt)

	user, err := a.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyPassword, zap.Error(err), zap.Int64("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgInvalidPasswordAuth, zap.Int64("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	token, err := a.tokenSvc.Generate(ctx, user.ID)
	if err != nil {
		log.Error(ctx, msgErrGenerateToken, zap.Error(err), zap.Int64("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingToken, services.ErrTokenGenerationFailed)
	}

	log.Info(ctx, msgUserLoggedIn, zap.Int64("userID", user.ID))
	return &services.AuthResult{Token: token, User: user}, nil
}

// Register создает нового пользователя с предоставленными данными.
func (a *AuthUseCaseImpl) Register(ctx context.Context, input *api.RegisterInput) (*services.AuthResult, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("phone", input.Phone))
	log.Debug(ctx, msgStartRegistration)

	if !phoneRegex.MatchString(input.Phone) {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingPhone, entities.ErrInvalidPhone)
	}
	if !emailRegex.MatchString(input.Email) {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingEmail, entities.ErrInvalidEmail)
	}

	if _, err := a.userRepo.FindByPhone(ctx, input.Phone); err == nil {
		return nil, fmt.Errorf("%s: %w", errCtxPhoneRegistered, entities.ErrPhoneAlreadyRegistered)
	} else if !errors.Is(err, entities.ErrUserNotFound) {
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	if _, err := a.userRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, fmt.Errorf("%s: %w", errCtxEmailRegistered, entities.ErrEmailAlreadyRegistered)
	} else if !errors.Is(err, entities.ErrUserNotFound) {
		log.Error(ctx, msgErrCheckEmail, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	hashedPassword, err := a.passwordSvc.Hash(ctx, input.Password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	birthDate := input.BirthDate
	newUser := &entities.User{
		Phone:        input.Phone,
		FullName:     input.FullName,
		Email:        input.Email,
		BirthDate:    &birthDate,
		PasswordHash: hashedPassword,
	}

	createdUser, err := a.userRepo.Create(ctx, newUser)
	if err != nil {
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	token, err := a.tokenSvc.Generate(ctx, createdUser.ID)
	if err != nil {
		log.Error(ctx, msgErrGenerateToken, zap.Error(err), zap.Int64("userID", createdUser.ID))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingToken, services.ErrTokenGenerationFailed)
	}

	log.Info(ctx, msgUserRegistered, zap.Int64("userID", createdUser.ID))
	return &services.AuthResult{Token: token, User: createdUser}, nil
}

// Profile возвращает пользователя по токену сессии. Профиль кэшируется
// по хэшу токена; кэш - best effort и не влияет на исход запроса.
func (a *AuthUseCaseImpl) Profile(ctx context.Context, token string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodProfile))

	cacheKey := profileCacheKeyPrefix + hashToken(token)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil && cached != "" {
		var user entities.User
		if err := json.Unmarshal([]byte(cached), &user); err == nil {
			log.Debug(ctx, msgProfileFromCache)
			return &user, nil
		}
	}

	userID, err := a.tokenSvc.Verify(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingToken, services.ErrInvalidToken)
	}

	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, fmt.Errorf("%s: %w", errCtxVerifyingToken, services.ErrInvalidToken)
		}
		log.Error(ctx, msgErrFindingUserByID, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	if encoded, err := json.Marshal(user); err == nil {
		if err := a.cache.Set(ctx, cacheKey, string(encoded), profileCacheTTL); err != nil {
			log.Warn(ctx, warnFailedCacheProfile, zap.Error(err))
		} else {
			log.Debug(ctx, msgProfileCached)
		}
	}

	return user, nil
}

// hashToken создает хэш токена для использования в качестве ключа кэша.
func hashToken(token string) string {
	h := sha256.New()
	h.Write([]byte(token))
	return fmt.Sprintf("%x", h.Sum(nil))
}
