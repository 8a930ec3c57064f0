package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	valid := []string{
		"+15125551234",
		"15125551234",
		"(512) 555-1234",
		"512-555-1234",
	}
	for _, phone := range valid {
		assert.True(t, ValidatePhone(phone), phone)
	}

	invalid := []string{
		"",
		"abc",
		"+0123456789",
		"555-ABCD",
	}
	for _, phone := range invalid {
		assert.False(t, ValidatePhone(phone), phone)
	}
}

func TestValidateZipCode(t *testing.T) {
	assert.True(t, ValidateZipCode("78701"))
	assert.False(t, ValidateZipCode("7870"))
	assert.False(t, ValidateZipCode("787011"))
	assert.False(t, ValidateZipCode("78-01"))
	assert.False(t, ValidateZipCode(""))
}

func TestValidateISODate(t *testing.T) {
	assert.True(t, ValidateISODate("2025-06-15"))
	assert.False(t, ValidateISODate("06-15-2025"))
	assert.False(t, ValidateISODate("2025/06/15"))
	assert.False(t, ValidateISODate("2025-6-15"))
	assert.False(t, ValidateISODate(""))
}
