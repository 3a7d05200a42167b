package types

import "time"

// WallClock переинтерпретирует показания часов t в локальной зоне процесса.
// Колонки TIMESTAMP WITHOUT TIME ZONE драйвер возвращает в UTC, хотя хранится
// в них локальное время мойки.
func WallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.Local)
}

// WallClockPtr то же самое для nullable колонок
func WallClockPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := WallClock(*t)
	return &v
}
