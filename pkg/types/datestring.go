package types

import (
	"errors"
	"fmt"
	"time"
)

// DateString дата в формате "YYYY-MM-DD" (например, "2025-06-01")
// Используется как ключ слота внутри агрегата площадки
type DateString string

var (
	// ErrInvalidDateFormat возвращается при некорректном формате даты
	ErrInvalidDateFormat = errors.New("invalid date string format, expected YYYY-MM-DD")
)

const dateLayout = "2006-01-02"

// NewDateString создает DateString из time.Time (отбрасывает время)
func NewDateString(t time.Time) DateString {
	return DateString(t.Format(dateLayout))
}

// NewDateStringFromString создает DateString из строки с валидацией формата
func NewDateStringFromString(s string) (DateString, error) {
	ds := DateString(s)
	if err := ds.Validate(); err != nil {
		return "", err
	}
	return ds, nil
}

// String возвращает строковое представление даты
func (d DateString) String() string {
	return string(d)
}

// IsZero проверяет, что дата не задана
func (d DateString) IsZero() bool {
	return d == ""
}

// Validate проверяет корректность формата "YYYY-MM-DD"
func (d DateString) Validate() error {
	if _, err := time.Parse(dateLayout, string(d)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDateFormat, string(d))
	}
	return nil
}

// Time возвращает начало суток в указанной временной зоне
func (d DateString) Time(loc *time.Location) (time.Time, error) {
	parsed, err := time.ParseInLocation(dateLayout, string(d), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, string(d))
	}
	return parsed, nil
}

// IsBefore проверяет, что дата строго раньше other
func (d DateString) IsBefore(other DateString) bool {
	return string(d) < string(other)
}

// Weekday возвращает день недели даты
func (d DateString) Weekday() (time.Weekday, error) {
	parsed, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return time.Sunday, fmt.Errorf("%w: %q", ErrInvalidDateFormat, string(d))
	}
	return parsed.Weekday(), nil
}
