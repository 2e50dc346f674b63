package timeutil

import (
	"fmt"
	"time"
)

// Время заезда/выезда. Сутки проживания считаются от полудня до полудня:
// заезд в 12:01, выезд в 11:59, чтобы стыкующиеся интервалы не пересекались.
const (
	CheckInHour    = 12
	CheckInMinute  = 1
	CheckOutHour   = 11
	CheckOutMinute = 59
)

// Границы окна доступности. Окно открывается за минуту до заезда и
// закрывается через минуту после выезда, чтобы бронь на те же даты
// целиком помещалась внутрь окна.
const (
	WindowOpenHour    = 11
	WindowOpenMinute  = 59
	WindowCloseHour   = 12
	WindowCloseMinute = 1
)

// DateFormat формат дат во внешнем API
const DateFormat = "2006-01-02"

// Clock источник текущего времени. Подменяется в тестах фиксированными
// часами.
type Clock interface {
	Now() time.Time
}

// SystemClock системные часы
type SystemClock struct{}

// Now возвращает текущее системное время
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Normalizer приводит временные метки к настроенной зоне по умолчанию.
// Наивные даты из форм всегда интерпретируются в этой зоне, никогда "как есть".
type Normalizer struct {
	loc *time.Location
}

// NewNormalizer создает нормализатор для указанной таймзоны (IANA имя)
func NewNormalizer(tzName string) (*Normalizer, error) {
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("timeutil: load location %q: %w", tzName, err)
	}
	return &Normalizer{loc: loc}, nil
}

// MustNormalizer как NewNormalizer, но паникует при ошибке. Для тестов.
func MustNormalizer(tzName string) *Normalizer {
	n, err := NewNormalizer(tzName)
	if err != nil {
		panic(err)
	}
	return n
}

// Location возвращает зону по умолчанию
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// InZone переводит метку в зону по умолчанию
func (n *Normalizer) InZone(t time.Time) time.Time {
	return t.In(n.loc)
}

// ParseDate парсит дату формата YYYY-MM-DD в зоне по умолчанию
func (n *Normalizer) ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, s, n.loc)
}

// CheckIn возвращает момент заезда (12:01) в день указанной даты
func (n *Normalizer) CheckIn(date time.Time) time.Time {
	return n.at(date, CheckInHour, CheckInMinute)
}

// CheckOut возвращает момент выезда (11:59) в день указанной даты
func (n *Normalizer) CheckOut(date time.Time) time.Time {
	return n.at(date, CheckOutHour, CheckOutMinute)
}

// WindowOpen возвращает момент открытия окна доступности (11:59)
// в день указанной даты
func (n *Normalizer) WindowOpen(date time.Time) time.Time {
	return n.at(date, WindowOpenHour, WindowOpenMinute)
}

// WindowClose возвращает момент закрытия окна доступности (12:01)
// в день указанной даты
func (n *Normalizer) WindowClose(date time.Time) time.Time {
	return n.at(date, WindowCloseHour, WindowCloseMinute)
}

// Noon нормализует метку к полудню того же дня в зоне по умолчанию.
// Используется при слиянии интервалов доступности, чтобы шум времени суток
// (11:59 против 12:01) не создавал ложных разрывов.
func (n *Normalizer) Noon(t time.Time) time.Time {
	return n.at(t, 12, 0)
}

// Never сентинель "никогда не заканчивается" для постоянной доступности
// комнат без владельца
func (n *Normalizer) Never() time.Time {
	return time.Date(2999, time.December, 31, 12, 0, 0, 0, n.loc)
}

func (n *Normalizer) at(t time.Time, hour, minute int) time.Time {
	local := t.In(n.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, n.loc)
}
