// Package flow реализует машину состояний авторизации: экраны, поля черновика,
// флаг занятости и сообщение об ошибке. Пакет не знает о слое отображения.
package flow

import (
	"time"

	"loginapp/internal/loginapp/domain/entities"
)

// Screen определяет текущий экран машины состояний.
type Screen string

// Экраны машины состояний. Authenticated - терминальное состояние.
const (
	ScreenPhone         Screen = "phone"
	ScreenPassword      Screen = "password"
	ScreenRegister      Screen = "register"
	ScreenAuthenticated Screen = "authenticated"
)

// State - наблюдаемый снимок машины состояний. Session не nil тогда и только
// тогда, когда Screen равен ScreenAuthenticated.
type State struct {
	Screen       Screen
	Phone        string
	Password     string
	FullName     string
	Email        string
	BirthDate    time.Time
	Busy         bool
	ErrorMessage string
	Session      *entities.Session
}

// Authenticated сообщает, завершена ли авторизация.
func (s State) Authenticated() bool {
	return s.Session != nil
}

// snapshot возвращает снимок текущего состояния. Вызывается под мьютексом.
// Экран authenticated выводится из наличия сессии, а не хранится: состояние
// "авторизован без пользователя" непредставимо.
func (f *Flow) snapshot() State {
	state := State{
		Screen:       f.screen,
		Phone:        f.phone,
		Password:     f.password,
		FullName:     f.fullName,
		Email:        f.email,
		BirthDate:    f.birthDate,
		Busy:         f.busy,
		ErrorMessage: f.errorMessage,
	}

	if f.session != nil {
		session := *f.session
		state.Session = &session
		state.Screen = ScreenAuthenticated
	}

	return state
}
