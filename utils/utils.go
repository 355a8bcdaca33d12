package utils

import (
	"math"
	rndm "math/rand"
)

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyz0123456789_ABCDEFGHIJKLMNOPQRSTUVWXYZ")

func GenerateRandomString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rndm.Intn(len(letterRunes))]
	}
	return string(b)
}

// Round2 rounds to two decimal places. Totals are stored rounded so the
// recompute check compares stable numbers.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
