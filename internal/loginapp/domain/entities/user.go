// Package entities содержит доменные сущности клиента авторизации.
package entities

// User представляет учетную запись, возвращаемую сервисом авторизации.
// Значение неизменяемо после получения.
type User struct {
	ID        int64  `json:"id"`
	Phone     string `json:"phone"`
	FullName  string `json:"full_name,omitempty"`
	Email     string `json:"email,omitempty"`
	BirthDate string `json:"birth_date,omitempty"`
}

// Session представляет результат успешного входа или регистрации.
// Сессия создается ровно один раз и не мутируется.
type Session struct {
	Token string
	User  User
}
