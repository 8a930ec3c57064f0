package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBeginningOfDay(t *testing.T) {
	in := time.Date(2025, 6, 15, 14, 30, 45, 123, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), BeginningOfDay(in))
}

func TestBeginningOfMonth(t *testing.T) {
	in := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), BeginningOfMonth(in))
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC)
	end := time.Date(2025, 6, 15, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 14, DaysBetween(start, end))
	assert.Equal(t, 0, DaysBetween(end, end))
}

func TestGenerateRandomStringLengthAndCharset(t *testing.T) {
	s := GenerateRandomString(8)
	assert.Len(t, s, 8)
	for _, r := range s {
		ok := (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		assert.True(t, ok, string(r))
	}

	// Two draws colliding would be astronomically unlikely
	assert.NotEqual(t, GenerateRandomString(16), GenerateRandomString(16))
}
