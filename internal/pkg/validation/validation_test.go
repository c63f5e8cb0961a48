package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("jane@x.com"))
	assert.False(t, IsValidEmail("jane@x"))
	assert.False(t, IsValidEmail("jane x@x.com"))
	assert.False(t, IsValidEmail(""))
}

func TestMissingFields(t *testing.T) {
	missing := MissingFields("name", "Jane", "email", "  ", "subject", "", "message", "Hello")
	assert.Equal(t, []string{"email", "subject"}, missing)
	assert.Empty(t, MissingFields("name", "Jane"))
}
