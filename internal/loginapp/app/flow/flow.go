package flow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"loginapp/internal/loginapp/app/dto"
	"loginapp/internal/loginapp/domain/entities"
	apiPort "loginapp/internal/loginapp/ports/api"
	tokenPort "loginapp/internal/loginapp/ports/token"
	"loginapp/pkg/logger"
)

// Константы для логирования.
const (
	LogFlowCheckUser = "auth flow: check user"
	LogFlowLogin     = "auth flow: login"
	LogFlowRegister  = "auth flow: register"
	LogFlowBack      = "auth flow: back"

	WarnFailedToSaveToken = "failed to save session token"
)

// Префиксы сообщений об ошибках, видимых пользователю.
const (
	MsgFailedCheckUser    = "Failed to check user"
	MsgLoginFailed        = "Login failed"
	MsgRegistrationFailed = "Registration failed"
)

// birthDateLayout - формат сериализации даты рождения на проводе.
const birthDateLayout = "2006-01-02"

// Flow - машина состояний авторизации. Каждый экземпляр владеет своим
// черновиком полей и экраном; состояние между экземплярами не разделяется.
// Флаг занятости гарантирует не более одного исходящего запроса на экземпляр.
type Flow struct {
	mu     sync.Mutex
	client apiPort.Client
	tokens tokenPort.Store

	screen       Screen
	phone        string
	password     string
	fullName     string
	email        string
	birthDate    time.Time
	busy         bool
	errorMessage string
	session      *entities.Session
}

// New создает новую машину состояний на экране ввода телефона.
func New(client apiPort.Client, tokens tokenPort.Store) *Flow {
	return &Flow{
		client:    client,
		tokens:    tokens,
		screen:    ScreenPhone,
		birthDate: time.Now(),
	}
}

// State возвращает снимок текущего состояния.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot()
}

// SetPhone обновляет номер телефона в черновике.
func (f *Flow) SetPhone(phone string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.phone = phone
}

// SetPassword обновляет пароль в черновике.
func (f *Flow) SetPassword(password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.password = password
}

// SetFullName обновляет полное имя в черновике.
func (f *Flow) SetFullName(fullName string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fullName = fullName
}

// SetEmail обновляет email в черновике.
func (f *Flow) SetEmail(email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.email = email
}

// SetBirthDate обновляет дату рождения в черновике.
// В строку дата преобразуется только в момент отправки.
func (f *Flow) SetBirthDate(birthDate time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.birthDate = birthDate
}

// SubmitPhone проверяет существование пользователя и выбирает следующий экран:
// password, если номер зарегистрирован, иначе register. При отказе экран
// не меняется, ошибка попадает в ErrorMessage.
func (f *Flow) SubmitPhone(ctx context.Context) State {
	log := logger.Log(ctx)

	f.mu.Lock()
	if f.busy || f.phone == "" {
		defer f.mu.Unlock()
		return f.snapshot()
	}
	f.busy = true
	f.errorMessage = ""
	phone := f.phone
	f.mu.Unlock()

	log.Info(ctx, LogFlowCheckUser)
	resp, err := f.client.CheckUser(ctx, phone)

	f.mu.Lock()
	defer f.mu.Unlock()
	defer f.clearBusy()

	if err != nil {
		f.errorMessage = fmt.Sprintf("%s: %s", MsgFailedCheckUser, errorText(err))
		return f.snapshotAfterSettle()
	}

	if resp.Exists {
		f.screen = ScreenPassword
	} else {
		f.screen = ScreenRegister
	}
	return f.snapshotAfterSettle()
}

// SubmitPassword выполняет вход. При успехе сохраняет сессию и передает токен
// хранилищу; неудача сохранения не прерывает авторизацию.
func (f *Flow) SubmitPassword(ctx context.Context) State {
	log := logger.Log(ctx)

	f.mu.Lock()
	if f.busy || f.password == "" {
		defer f.mu.Unlock()
		return f.snapshot()
	}
	f.busy = true
	f.errorMessage = ""
	phone, password := f.phone, f.password
	f.mu.Unlock()

	log.Info(ctx, LogFlowLogin)
	resp, err := f.client.Login(ctx, phone, password)

	f.mu.Lock()
	defer f.mu.Unlock()
	defer f.clearBusy()

	if err != nil {
		f.errorMessage = fmt.Sprintf("%s: %s", MsgLoginFailed, errorText(err))
		return f.snapshotAfterSettle()
	}

	f.completeAuth(ctx, resp)
	return f.snapshotAfterSettle()
}

// SubmitRegistration регистрирует нового пользователя.
func (f *Flow) SubmitRegistration(ctx context.Context) State {
	log := logger.Log(ctx)

	f.mu.Lock()
	if f.busy || f.fullName == "" || f.email == "" || f.password == "" {
		defer f.mu.Unlock()
		return f.snapshot()
	}
	f.busy = true
	f.errorMessage = ""
	req := &dto.RegisterRequest{
		Phone:     f.phone,
		Password:  f.password,
		FullName:  f.fullName,
		Email:     f.email,
		BirthDate: f.birthDate.Format(birthDateLayout),
	}
	f.mu.Unlock()

	log.Info(ctx, LogFlowRegister)
	resp, err := f.client.Register(ctx, req)

	f.mu.Lock()
	defer f.mu.Unlock()
	defer f.clearBusy()

	if err != nil {
		f.errorMessage = fmt.Sprintf("%s: %s", MsgRegistrationFailed, errorText(err))
		return f.snapshotAfterSettle()
	}

	f.completeAuth(ctx, resp)
	return f.snapshotAfterSettle()
}

// Back возвращает на экран ввода телефона. С экрана пароля очищаются пароль
// и ошибка, с экрана регистрации - только ошибка; номер телефона сохраняется.
// Запрос в полете не отменяется: его обработчик применит переход к тому
// состоянию, которое будет текущим на момент ответа.
func (f *Flow) Back() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.screen {
	case ScreenPassword:
		f.password = ""
		f.errorMessage = ""
		f.screen = ScreenPhone
	case ScreenRegister:
		f.errorMessage = ""
		f.screen = ScreenPhone
	case ScreenPhone, ScreenAuthenticated:
	}

	return f.snapshot()
}

// completeAuth фиксирует успешную авторизацию. Вызывается под мьютексом.
// Сохранение токена - побочный эффект без повтора; его отказ не доходит
// до машины состояний, только в лог.
func (f *Flow) completeAuth(ctx context.Context, resp *dto.AuthResponse) {
	f.session = &entities.Session{
		Token: resp.Token,
		User:  resp.User,
	}

	if err := f.tokens.Save(ctx, resp.Token); err != nil {
		logger.Log(ctx).Warn(ctx, WarnFailedToSaveToken, zap.Error(err))
	}
}

// clearBusy снимает флаг занятости. Отложенный вызов гарантирует скобку
// busy=true/busy=false вокруг каждого запроса при любом исходе.
func (f *Flow) clearBusy() {
	f.busy = false
}

// snapshotAfterSettle возвращает снимок состояния, каким оно станет после
// снятия флага занятости отложенным clearBusy.
func (f *Flow) snapshotAfterSettle() State {
	state := f.snapshot()
	state.Busy = false
	return state
}

// errorText возвращает текст ошибки для пользователя: сообщение сервера
// для AuthError, иначе описание ошибки.
func errorText(err error) string {
	var authErr *apiPort.AuthError
	if errors.As(err, &authErr) {
		return authErr.Message
	}
	return err.Error()
}
