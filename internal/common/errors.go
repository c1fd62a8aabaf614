// Package common — errors.go определяет ошибки, общие для всех модулей бота.
// Обработчики различают их через errors.Is и решают, что показать пользователю.
package common

import "errors"

// Ошибки хранилища отметок
var (
	// ErrStorageUnavailable — хранилище не смогло прочитать или записать запись.
	// Пробрасывается наверх, пользователь получает общее сообщение об ошибке.
	ErrStorageUnavailable = errors.New("хранилище отметок недоступно")
	// ErrMalformedState — сохранённая запись не разбирается как состояние пользователя.
	// Не фатально: движок подменяет её пустым состоянием.
	ErrMalformedState = errors.New("повреждённая запись отметок")
)

// Ошибки начисления баллов
var (
	// ErrLedgerUnavailable — не удалось начислить баллы после успешной отметки
	ErrLedgerUnavailable = errors.New("не удалось начислить баллы")
	// ErrInvalidAmount — некорректная сумма (ноль или отрицательная)
	ErrInvalidAmount = errors.New("сумма должна быть положительной")
	// ErrUserNotFound — пользователь не найден в базе
	ErrUserNotFound = errors.New("пользователь не найден")
)

// Ошибки админки
var (
	// ErrWrongPassword — неверный пароль
	ErrWrongPassword = errors.New("неверный пароль")
	// ErrTooManyAttempts — слишком много неудачных попыток входа
	ErrTooManyAttempts = errors.New("слишком много попыток, подождите 1 час")
)
