package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Layout формат времени внутри дня
const Layout = "15:04"

// TimeString время внутри дня в формате "15:04" (например, "09:30").
// Используется для рабочих часов и времени слотов: хранится как строка
// в БД и в JSON, сравнивается в минутах от полуночи.
type TimeString string

// NewTimeString создает TimeString из time.Time, отбрасывая дату
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(Layout))
}

// NewTimeStringFromString создает TimeString из строки с проверкой формата
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// String возвращает строковое представление
func (s TimeString) String() string {
	return string(s)
}

// Validate проверяет, что значение соответствует формату "15:04"
func (s TimeString) Validate() error {
	if _, err := time.Parse(Layout, string(s)); err != nil {
		return fmt.Errorf("types: invalid time %q, expected format %s", string(s), Layout)
	}
	return nil
}

// Parse разбирает значение в time.Time на нулевой дате
func (s TimeString) Parse() (time.Time, error) {
	t, err := time.Parse(Layout, string(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("types: invalid time %q, expected format %s", string(s), Layout)
	}
	return t, nil
}

// MinutesFromMidnight возвращает количество минут от полуночи
func (s TimeString) MinutesFromMidnight() (int, error) {
	t, err := s.Parse()
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Value реализует driver.Valuer для записи в БД
func (s TimeString) Value() (driver.Value, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return string(s), nil
}

// Scan реализует sql.Scanner для чтения из БД
func (s *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = TimeString(v)
	case []byte:
		*s = TimeString(v)
	case time.Time:
		*s = NewTimeString(v)
	default:
		return fmt.Errorf("types: cannot scan %T into TimeString", src)
	}
	return nil
}
