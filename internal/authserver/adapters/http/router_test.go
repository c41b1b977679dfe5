package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpAdapter "loginapp/internal/authserver/adapters/http"
	"loginapp/internal/authserver/domain/entities"
	"loginapp/internal/authserver/domain/services"
	"loginapp/internal/authserver/ports/api"
)

type mockAuthUseCase struct {
	mock.Mock
}

func (m *mockAuthUseCase) CheckUser(ctx context.Context, phone string) (bool, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Error(1)
}

func (m *mockAuthUseCase) Login(ctx context.Context, phone, password string) (*services.AuthResult, error) {
	args := m.Called(ctx, phone, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AuthResult), args.Error(1)
}

func (m *mockAuthUseCase) Register(ctx context.Context, input *api.RegisterInput) (*services.AuthResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AuthResult), args.Error(1)
}

func (m *mockAuthUseCase) Profile(ctx context.Context, token string) (*entities.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func setupTestApp(useCase api.AuthUseCase) *fiber.App {
	app := fiber.New()
	httpAdapter.SetupRouter(app, useCase)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload any) (*http.Response, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	var decoded map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}

	return resp, decoded
}

func TestCheckUserEndpoint(t *testing.T) {
	t.Run("Существующий пользователь требует пароль", func(t *testing.T) {
		useCase := new(mockAuthUseCase)
		useCase.On("CheckUser", mock.Anything, "+15551234567").Return(true, nil)
		app := setupTestApp(useCase)

		resp, body := doJSON(t, app, fiber.MethodPost, "/api/check-user", map[string]string{"phone": "+15551234567"})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, true, body["exists"])
		assert.Equal(t, true, body["requiresPassword"])
		useCase.AssertExpectations(t)
	})

	t.Run("Незарегистрированный номер", func(t *testing.T) {
		useCase := new(mockAuthUseCase)
		useCase.On("CheckUser", mock.Anything, "+15550000001").Return(false, nil)
		app := setupTestApp(useCase)

		resp, body := doJSON(t, app, fiber.MethodPost, "/api/check-user", map[string]string{"phone": "+15550000001"})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, false, body["exists"])
		assert.Equal(t, false, body["requiresPassword"])
	})

	t.Run("Пустой номер телефона", func(t *testing.T) {
		useCase := new(mockAuthUseCase)
		app := setupTestApp(useCase)

		resp, body := doJSON(t, app, fiber.MethodPost, "/api/check-user", map[string]string{"phone": ""})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid phone number", body["error"])
		useCase.AssertNotCalled(t, "CheckUser")
	})

	t.Run("Невалидный номер телефона", func(t *testing.T) {
		useCase := new(mockAuthUseCase)
		useCase.On("CheckUser", mock.Anything, "not-a-phone").
			Return(false, entities.ErrInvalidPhone)
		app := setupTestApp(useCase)

		resp, body := doJSON(t, app, fiber.MethodPost, "/api/check-user", map[string]string{"phone": "not-a-phone"})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid phone number", body["error"])
	})
}

func TestLoginEndpoint(t *testing.T) {
	testUser := &entities.User{
		ID:       1,
		Phone:    "+15551234567",
		FullName: "Test User",
		Email:    "test@example.com",
	}

	t.Run("Успешный вход", func(t *testing.T) {
		useCase := new(mockAuthUseCase)
		useCase.On("Login", mock.Anything, "+15551234567", "secret").
			Return(&services.AuthResult{Token: "jwt-token", User: testUser}, nil)
		app := setupTestApp(useCase)

		resp, body := doJSON(t, app, fiber.MethodPost, "/api/login", map[string]string{
			"phone":    "+15551234567",
			"password": "secret",
		})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "jwt-token", body["token"])

		user, ok := body["user"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, float64(1), user["id"])
		assert.Equal(t, "+15551234567", user["phone"])
		assert.Equal(t, "Test User", user["full_name"])
		assert.Equal(t, "test@example.com", user["email"])
	})

	t.Run("Незаполненные поля профиля сериализуются как null", func(t *testing.T) {
		useCase := new(mockAuthUseCase)
		useCase.On("Login", mock.Anything, "+15551234567", "secret").
			Return(&services.AuthResult{
				Token: "jwt-token",
				User:  &entities.User{ID: 1, Phone: "+15551234567"},
			}, nil)
		app := setupTestApp(useCase)

		resp, body := doJSON(t, app, fiber.MethodPost, "/api/login", map[string]string{
			"phone":    "+15551234567",
			"password": "secret",
		})

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		user, ok := body["user"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, user, "full_name")
		assert.Nil(t, user["full_name"])
		assert.Contains(t, user, "email")
		assert.Nil(t, user["email"])
		assert.NotContains(t, user, "birth_date")
	})

	t.Run("Отсутствующие поля", func(t *testing.T) {
		useCase := new(mockAuthUseCase)
		app := setupTestApp(useCase)

		resp, body := doJSON(t, app, fiber.MethodPost, "/api/login", map[string]string{"phone": "+15551234567"})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Phone and password are required", body["error"])
		useCase.AssertNotCalled(t, "Login")
	})

	t.Run("Неверные учетные данные", func(t *testing.T) {
		useCase := new(mockAuthUseCase)
		useCase.On("Login", mock.Anything, "+15551234567", "wrong").
			Return(nil, services.ErrInvalidCredentials)
		app := setupTestApp(useCase)

		resp, body := doJSON(t, app, fiber.MethodPost, "/api/login", map[string]string{
			"phone":    "+15551234567",
			"password": "wrong",
		})

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid phone or password", body["error"])
	})
}

func TestRegisterEndpoint(t *testing.T) {
	registerBody := func() map[string]string {
		return map[string]string{
			"phone":      "+15551234567",
			"password":   "secret",
			"full_name":  "New User",
			"email":      "new@example.com",
			"birth_date": "2000-01-15",
		}
	}

	t.Run("Успешная регистрация возвращает 201", func(t *testing.T) {
		useCase := new(mockAuthUseCase)
		useCase.On("Register", mock.Anything, mock.MatchedBy(func(input *api.RegisterInput) bool {
			return input.Phone == "+15551234567" &&
				input.FullName == "New User" &&
				input.BirthDate.Equal(time.Date(2000, time.January, 15, 0, 0, 0, 0, time.UTC))
		})).Return(&services.AuthResult{
			Token: "jwt-token",
			User: &entities.User{
				ID:       2,
				Phone:    "+15551234567",
				FullName: "New User",
				Email:    "new@example.com",
			},
		}, nil)
		app := setupTestApp(useCase)

		resp, body := doJSON(t, app, fiber.MethodPost, "/api/register", registerBody())

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "jwt-token", body["token"])
		useCase.AssertExpectations(t)
	})

	t.Run("Отсутствующее поле называется в ошибке", func(t *testing.T) {
		useCase := new(mockAuthUseCase)
		app := setupTestApp(useCase)

		payload := registerBody()
		delete(payload, "full_name")
		resp, body := doJSON(t, app, fiber.MethodPost, "/api/register", payload)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "full_name is required", body["error"])
		useCase.AssertNotCalled(t, "Register")
	})

	t.Run("Невалидная дата рождения", func(t *testing.T) {
		useCase := new(mockAuthUseCase)
		app := setupTestApp(useCase)

		payload := registerBody()
		payload["birth_date"] = "15.01.2000"
		resp, body := doJSON(t, app, fiber.MethodPost, "/api/register", payload)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid birth date", body["error"])
		useCase.AssertNotCalled(t, "Register")
	})

	t.Run("Занятый номер телефона", func(t *testing.T) {
		useCase := new(mockAuthUseCase)
		useCase.On("Register", mock.Anything, mock.Anything).
			Return(nil, entities.ErrPhoneAlreadyRegistered)
		app := setupTestApp(useCase)

		resp, body := doJSON(t, app, fiber.MethodPost, "/api/register", registerBody())

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Phone number already registered", body["error"])
	})

	t.Run("Занятый email", func(t *testing.T) {
		useCase := new(mockAuthUseCase)
		useCase.On("Register", mock.Anything, mock.Anything).
			Return(nil, entities.ErrEmailAlreadyRegistered)
		app := setupTestApp(useCase)

		resp, body := doJSON(t, app, fiber.MethodPost, "/api/register", registerBody())

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Email already registered", body["error"])
	})
}

func TestProfileEndpoint(t *testing.T) {
	t.Run("Успешное получение профиля", func(t *testing.T) {
		birthDate := time.Date(2000, time.January, 15, 0, 0, 0, 0, time.UTC)
		useCase := new(mockAuthUseCase)
		useCase.On("Profile", mock.Anything, "jwt-token").Return(&entities.User{
			ID:        3,
			Phone:     "+15551234567",
			FullName:  "Test User",
			Email:     "test@example.com",
			BirthDate: &birthDate,
		}, nil)
		app := setupTestApp(useCase)

		req := httptest.NewRequest(fiber.MethodGet, "/api/profile", nil)
		req.Header.Set("Authorization", "Bearer jwt-token")

		resp, err := app.Test(req)
		require.NoError(t, err)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "2000-01-15", body["user"]["birth_date"])
		assert.Equal(t, "+15551234567", body["user"]["phone"])
	})

	t.Run("Профиль без даты рождения возвращает null", func(t *testing.T) {
		useCase := new(mockAuthUseCase)
		useCase.On("Profile", mock.Anything, "jwt-token").Return(&entities.User{
			ID:    4,
			Phone: "+15551234567",
		}, nil)
		app := setupTestApp(useCase)

		req := httptest.NewRequest(fiber.MethodGet, "/api/profile", nil)
		req.Header.Set("Authorization", "Bearer jwt-token")

		resp, err := app.Test(req)
		require.NoError(t, err)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Contains(t, body["user"], "birth_date")
		assert.Nil(t, body["user"]["birth_date"])
		assert.Nil(t, body["user"]["full_name"])
	})

	t.Run("Отсутствующий токен", func(t *testing.T) {
		useCase := new(mockAuthUseCase)
		app := setupTestApp(useCase)

		req := httptest.NewRequest(fiber.MethodGet, "/api/profile", nil)

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { require.NoError(t, resp.Body.Close()) }()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		useCase.AssertNotCalled(t, "Profile")
	})

	t.Run("Невалидный токен", func(t *testing.T) {
		useCase := new(mockAuthUseCase)
		useCase.On("Profile", mock.Anything, "bad-token").
			Return(nil, services.ErrInvalidToken)
		app := setupTestApp(useCase)

		req := httptest.NewRequest(fiber.MethodGet, "/api/profile", nil)
		req.Header.Set("Authorization", "Bearer bad-token")

		resp, body := func() (*http.Response, map[string]any) {
			resp, err := app.Test(req)
			require.NoError(t, err)
			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			require.NoError(t, resp.Body.Close())
			var decoded map[string]any
			require.NoError(t, json.Unmarshal(raw, &decoded))
			return resp, decoded
		}()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid token", body["error"])
	})

	t.Run("Несуществующий маршрут", func(t *testing.T) {
		useCase := new(mockAuthUseCase)
		app := setupTestApp(useCase)

		req := httptest.NewRequest(fiber.MethodGet, "/api/unknown", nil)

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { require.NoError(t, resp.Body.Close()) }()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
