package pgrepo

import (
	"math/rand/v2"
	"time"
)

// jitter возвращает интервал, случайно отклоненный от value не более чем на spread в обе стороны.
// Например, при spread=0.15 получим диапазон [0.85*value, 1.15*value]. spread вне [0, 1) заменяется на 0.15.
func jitter(value time.Duration, spread float64) time.Duration {
	if spread < 0 || spread >= 1 {
		spread = 0.15
	}
	factor := 1 - spread + rand.Float64()*2*spread //nolint:gosec
	return time.Duration(float64(value) * factor)
}
