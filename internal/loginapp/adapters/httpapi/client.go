// Package httpapi предоставляет HTTP реализацию клиента сервиса авторизации.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"loginapp/internal/loginapp/app/dto"
	"loginapp/internal/loginapp/config"
	apiPort "loginapp/internal/loginapp/ports/api"
	"loginapp/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodCheckUser = "CheckUser"
	LogMethodLogin     = "Login"
	LogMethodRegister  = "Register"

	ErrorFailedToCheckUser = "failed to check user"
	ErrorFailedToLogin     = "failed to login"
	ErrorFailedToRegister  = "failed to register user"
)

// Сообщения по умолчанию при неразбираемом теле ошибки.
const (
	DefaultLoginError    = "Login failed"
	DefaultRegisterError = "Registration failed"
)

const (
	pathCheckUser = "/check-user"
	pathLogin     = "/login"
	pathRegister  = "/register"

	headerContentType = "Content-Type"
	mimeJSON          = "application/json"

	errCtxEncodeRequest  = "encoding request body"
	errCtxBuildRequest   = "building request"
	errCtxReadResponse   = "reading response body"
	errCtxDecodeResponse = "decoding response body"
)

// Client реализует интерфейс api.Client поверх HTTP/JSON.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создает новый экземпляр HTTP клиента сервиса авторизации.
func NewClient(cfg *config.APIConfig) apiPort.Client {
	return &Client{
		baseURL:    cfg.GetBaseURL(),
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
	}
}

// CheckUser проверяет, зарегистрирован ли номер телефона.
// Любой статус кроме 200, как и транспортный сбой, считается сетевой ошибкой.
func (c *Client) CheckUser(ctx context.Context, phone string) (*dto.CheckUserResponse, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodCheckUser))

	status, body, err := c.postJSON(ctx, pathCheckUser, dto.CheckUserRequest{Phone: phone})
	if err != nil {
		log.Error(ctx, ErrorFailedToCheckUser, zap.Error(err))
		return nil, err
	}

	if status != http.StatusOK {
		log.Error(ctx, ErrorFailedToCheckUser, zap.Int("status", status))
		return nil, &apiPort.NetworkError{Err: fmt.Errorf("unexpected status %d", status)}
	}

	var resp dto.CheckUserResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		log.Error(ctx, ErrorFailedToCheckUser, zap.Error(err))
		return nil, &apiPort.NetworkError{Err: fmt.Errorf("%s: %w", errCtxDecodeResponse, err)}
	}

	return &resp, nil
}

// Login выполняет вход по номеру телефона и паролю.
func (c *Client) Login(ctx context.Context, phone, password string) (*dto.AuthResponse, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodLogin))

	resp, err := c.authExchange(ctx, pathLogin, dto.LoginRequest{
		Phone:    phone,
		Password: password,
	}, http.StatusOK, DefaultLoginError)
	if err != nil {
		log.Error(ctx, ErrorFailedToLogin, zap.Error(err))
		return nil, err
	}

	return resp, nil
}

// Register регистрирует нового пользователя.
// Успешным статусом считается 201: регистрация создает ресурс.
func (c *Client) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodRegister))

	resp, err := c.authExchange(ctx, pathRegister, req, http.StatusCreated, DefaultRegisterError)
	if err != nil {
		log.Error(ctx, ErrorFailedToRegister, zap.Error(err))
		return nil, err
	}

	return resp, nil
}

// authExchange выполняет обмен, общий для входа и регистрации: единственная
// точка ветвления - код статуса. Тело ошибки разбирается по возможности:
// неразбираемое тело не должно маскировать сам факт отказа.
func (c *Client) authExchange(ctx context.Context, path string, payload any, wantStatus int, defaultMsg string) (*dto.AuthResponse, error) {
	status, body, err := c.postJSON(ctx, path, payload)
	if err != nil {
		return nil, err
	}

	if status != wantStatus {
		message := defaultMsg
		var errResp dto.ErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			message = errResp.Error
		}
		return nil, &apiPort.AuthError{Message: message}
	}

	var resp dto.AuthResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &apiPort.NetworkError{Err: fmt.Errorf("%s: %w", errCtxDecodeResponse, err)}
	}

	return &resp, nil
}

// postJSON отправляет POST запрос с JSON телом и возвращает статус и сырое тело.
func (c *Client) postJSON(ctx context.Context, path string, payload any) (int, []byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, &apiPort.NetworkError{Err: fmt.Errorf("%s: %w", errCtxEncodeRequest, err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return 0, nil, &apiPort.NetworkError{Err: fmt.Errorf("%s: %w", errCtxBuildRequest, err)}
	}
	req.Header.Set(headerContentType, mimeJSON)

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &apiPort.NetworkError{Err: err}
	}
	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return 0, nil, &apiPort.NetworkError{Err: fmt.Errorf("%s: %w", errCtxReadResponse, err)}
	}

	return httpResp.StatusCode, body, nil
}
