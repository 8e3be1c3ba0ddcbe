package capacity

import "errors"

var (
	// ErrOverrideNotFound возвращается, когда переопределение для кода не найдено
	ErrOverrideNotFound = errors.New("capacity override not found")

	// ErrInvalidInput возвращается при некорректном коде или вместимости
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
