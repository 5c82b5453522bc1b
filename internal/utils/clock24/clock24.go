// Package clock24 форматирует виртуальное 24-часовое игровое время.
package clock24

import "fmt"

// MinutesPerDay задает длину виртуальных суток в минутах
const MinutesPerDay = 24 * 60

// Format возвращает строку вида "HH:MM" для смещения в минутах от полуночи.
// Значение нормализуется по модулю суток, отрицательные смещения допустимы.
func Format(minutes int) string {
	m := ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// FormatFraction возвращает "HH:MM" для времени, заданного базовым смещением
// в минутах плюс доля span минут (progress обрезается в [0,1])
func FormatFraction(baseMinutes, spanMinutes int, progress float64) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	return Format(baseMinutes + int(float64(spanMinutes)*progress))
}
