package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeFormat возвращается при некорректном формате времени
// Ожидается строка вида "HH:MM" в 24-часовом формате
var ErrInvalidTimeFormat = errors.New("types: invalid time format, expected HH:MM")

// ErrTimeOutOfRange возвращается, когда результат арифметики выходит за пределы суток
var ErrTimeOutOfRange = errors.New("types: time out of range")

const minutesPerDay = 24 * 60

// TimeString время в формате "HH:MM" (без даты и таймзоны)
// Используется для рабочих часов и времени начала бронирований.
// Хранится в БД как TIME, в JSON как строка.
type TimeString string

// NewTimeString создает TimeString из time.Time (отбрасывая секунды)
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString парсит и валидирует строку "HH:MM"
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes создает TimeString из количества минут с начала суток
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= minutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOutOfRange, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// Validate проверяет формат "HH:MM"
// Никакого тихого поведения при мусоре на входе - только явная ошибка
func (t TimeString) Validate() error {
	s := string(t)
	if len(s) != 5 || s[2] != ':' {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
	}
	hours := int(s[0]-'0')*10 + int(s[1]-'0')
	mins := int(s[3]-'0')*10 + int(s[4]-'0')
	if hours > 23 || mins > 59 {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return nil
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// Minutes возвращает количество минут с начала суток
// Значение должно быть предварительно провалидировано
func (t TimeString) Minutes() int {
	s := string(t)
	hours := int(s[0]-'0')*10 + int(s[1]-'0')
	mins := int(s[3]-'0')*10 + int(s[4]-'0')
	return hours*60 + mins
}

// AddMinutes возвращает время через delta минут
// Возвращает ошибку, если результат выходит за пределы суток
func (t TimeString) AddMinutes(delta int) (TimeString, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(t.Minutes() + delta)
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// Equal возвращает true при совпадении времени
func (t TimeString) Equal(other TimeString) bool {
	return t.Minutes() == other.Minutes()
}

func (t TimeString) String() string {
	return string(t)
}

// Value реализует driver.Valuer для записи в колонку TIME
func (t TimeString) Value() (driver.Value, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t) + ":00", nil
}

// Scan реализует sql.Scanner для чтения колонки TIME
// Postgres возвращает TIME как "HH:MM:SS" (строкой или time.Time в зависимости от драйвера)
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported source type %T", ErrInvalidTimeFormat, src)
	}
}

func (t *TimeString) scanString(s string) error {
	if len(s) >= 5 {
		s = s[:5]
	}
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = ts
	return nil
}

// MarshalJSON сериализует время как строку "HH:MM"
func (t TimeString) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

// UnmarshalJSON десериализует и валидирует строку "HH:MM"
func (t *TimeString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = ts
	return nil
}
