package types

import (
	"errors"
	"fmt"
	"time"
)

// TimeString время в формате "HH:MM" (например, "18:00")
// Используется для хранения времени начала слота без привязки к дате
type TimeString string

var (
	// ErrInvalidTimeFormat возвращается при некорректном формате времени
	ErrInvalidTimeFormat = errors.New("invalid time string format, expected HH:MM")
)

const timeLayout = "15:04"

// NewTimeString создает TimeString из time.Time (отбрасывает дату и секунды)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// String возвращает строковое представление времени
func (t TimeString) String() string {
	return string(t)
}

// IsZero проверяет, что время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет корректность формата "HH:MM"
func (t TimeString) Validate() error {
	if _, err := time.Parse(timeLayout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	return nil
}

// Minutes возвращает количество минут с начала суток
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes возвращает новое время, сдвинутое на указанное число минут
// Переход через полночь не поддерживается - возвращает ошибку
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	current, err := t.Minutes()
	if err != nil {
		return "", err
	}

	total := current + minutes
	if total < 0 || total >= 24*60 {
		return "", fmt.Errorf("%w: %q + %d minutes crosses midnight", ErrInvalidTimeFormat, string(t), minutes)
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore проверяет, что время строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter проверяет, что время строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// At совмещает TimeString с датой в указанной временной зоне
func (t TimeString) At(date time.Time, loc *time.Location) (time.Time, error) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	return time.Date(date.Year(), date.Month(), date.Day(), parsed.Hour(), parsed.Minute(), 0, 0, loc), nil
}
