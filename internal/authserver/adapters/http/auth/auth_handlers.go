// Package auth содержит HTTP обработчики сервиса авторизации.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"loginapp/internal/authserver/domain/entities"
	"loginapp/internal/authserver/domain/services"
	"loginapp/internal/authserver/ports/api"
	"loginapp/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerCheckUser = "auth handler: check user"
	LogHandlerLogin     = "auth handler: login"
	LogHandlerRegister  = "auth handler: register"
	LogHandlerProfile   = "auth handler: profile"

	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"
)

// Сообщения об ошибках, отправляемые клиенту.
const (
	MsgInvalidPhoneNumber     = "Invalid phone number"
	MsgInvalidEmailAddress    = "Invalid email address"
	MsgInvalidBirthDate       = "Invalid birth date"
	MsgPhonePasswordRequired  = "Phone and password are required"
	MsgInvalidPhoneOrPassword = "Invalid phone or password"
	MsgPhoneAlreadyRegistered = "Phone number already registered"
	MsgEmailAlreadyRegistered = "Email already registered"
	MsgTokenRequired          = "Token is required"
	MsgInvalidToken           = "Invalid token"
	MsgInternalServerError    = "Internal server error"
)

const birthDateLayout = "2006-01-02"

type checkUserRequest struct {
	Phone string `json:"phone"`
}

type checkUserResponse struct {
	Exists           bool `json:"exists"`
	RequiresPassword bool `json:"requiresPassword"`
}

type loginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type registerRequest struct {
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	BirthDate string `json:"birth_date"`
}

// Необязательные поля сериализуются как null, когда они не заполнены.
type userPayload struct {
	ID       int64   `json:"id"`
	Phone    string  `json:"phone"`
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
}

// profileUserPayload дополняет профиль датой рождения, тоже допускающей null.
type profileUserPayload struct {
	userPayload
	BirthDate *string `json:"birth_date"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func newUserPayload(user *entities.User) userPayload {
	return userPayload{
		ID:       user.ID,
		Phone:    user.Phone,
		FullName: optionalString(user.FullName),
		Email:    optionalString(user.Email),
	}
}

func newProfilePayload(user *entities.User) profileUserPayload {
	payload := profileUserPayload{userPayload: newUserPayload(user)}
	if user.BirthDate != nil {
		formatted := user.BirthDate.Format(birthDateLayout)
		payload.BirthDate = &formatted
	}
	return payload
}

// Вспомогательная функция для отправки ошибок HTTP.
func sendErrorResponse(ctx fiber.Ctx, statusCode int, message string) error {
	if err := ctx.Status(statusCode).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// mapError переводит доменные ошибки в HTTP статус и сообщение клиенту.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, entities.ErrInvalidPhone):
		return http.StatusBadRequest, MsgInvalidPhoneNumber
	case errors.Is(err, entities.ErrInvalidEmail):
		return http.StatusBadRequest, MsgInvalidEmailAddress
	case errors.Is(err, entities.ErrPhoneAlreadyRegistered):
		return http.StatusBadRequest, MsgPhoneAlreadyRegistered
	case errors.Is(err, entities.ErrEmailAlreadyRegistered):
		return http.StatusBadRequest, MsgEmailAlreadyRegistered
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized, MsgInvalidPhoneOrPassword
	case errors.Is(err, services.ErrInvalidToken):
		return http.StatusUnauthorized, MsgInvalidToken
	default:
		return http.StatusInternalServerError, MsgInternalServerError
	}
}

// Handler содержит HTTP обработчики авторизации.
type Handler struct {
	useCase api.AuthUseCase
}

// NewHandler создает новый экземпляр обработчика авторизации.
func NewHandler(useCase api.AuthUseCase) *Handler {
	return &Handler{
		useCase: useCase,
	}
}

// CheckUser обрабатывает запрос проверки существования пользователя.
func (h *Handler) CheckUser(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerCheckUser)

	var req checkUserRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.Phone == "" {
		return sendErrorResponse(ctx, http.StatusBadRequest, MsgInvalidPhoneNumber)
	}

	exists, err := h.useCase.CheckUser(requestCtx, req.Phone)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		statusCode, message := mapError(err)
		return sendErrorResponse(ctx, statusCode, message)
	}

	if err := ctx.Status(http.StatusOK).JSON(checkUserResponse{
		Exists:           exists,
		RequiresPassword: exists,
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Login обрабатывает запрос на вход пользователя.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogin)

	var req loginRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.Phone == "" || req.Password == "" {
		return sendErrorResponse(ctx, http.StatusBadRequest, MsgPhonePasswordRequired)
	}

	result, err := h.useCase.Login(requestCtx, req.Phone, req.Password)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		statusCode, message := mapError(err)
		return sendErrorResponse(ctx, statusCode, message)
	}

	if err := ctx.Status(http.StatusOK).JSON(authResponse{
		Token: result.Token,
		User:  newUserPayload(result.User),
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRegister)

	var req registerRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	requiredFields := []struct {
		name  string
		value string
	}{
		{"phone", req.Phone},
		{"password", req.Password},
		{"full_name", req.FullName},
		{"email", req.Email},
		{"birth_date", req.BirthDate},
	}
	for _, field := range requiredFields {
		if field.value == "" {
			return sendErrorResponse(ctx, http.StatusBadRequest, field.name+" is required")
		}
	}

	birthDate, err := time.Parse(birthDateLayout, req.BirthDate)
	if err != nil {
		return sendErrorResponse(ctx, http.StatusBadRequest, MsgInvalidBirthDate)
	}

	result, err := h.useCase.Register(requestCtx, &api.RegisterInput{
		Phone:     req.Phone,
		Password:  req.Password,
		FullName:  req.FullName,
		Email:     req.Email,
		BirthDate: birthDate,
	})
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		statusCode, message := mapError(err)
		return sendErrorResponse(ctx, statusCode, message)
	}

	if err := ctx.Status(http.StatusCreated).JSON(authResponse{
		Token: result.Token,
		User:  newUserPayload(result.User),
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Profile обрабатывает запрос на получение профиля пользователя.
func (h *Handler) Profile(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerProfile)

	authHeader := ctx.Get("Authorization")
	if authHeader == "" {
		return sendErrorResponse(ctx, http.StatusUnauthorized, MsgTokenRequired)
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")

	user, err := h.useCase.Profile(requestCtx, token)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		statusCode, message := mapError(err)
		return sendErrorResponse(ctx, statusCode, message)
	}

	if err := ctx.Status(http.StatusOK).JSON(fiber.Map{
		"user": newProfilePayload(user),
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}
