package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOneTimePassword(t *testing.T) {
	password := GenerateOneTimePassword("maria.silva@example.com")

	assert.True(t, strings.HasPrefix(password, "Maria.silva"))
	assert.True(t, strings.HasSuffix(password, "!"))
	// Prefix + four digits + bang.
	assert.Len(t, password, len("Maria.silva")+5)
}

func TestGenerateOneTimePassword_OddInputs(t *testing.T) {
	assert.True(t, strings.HasPrefix(GenerateOneTimePassword("semarroba"), "Semarroba"))
	assert.True(t, strings.HasPrefix(GenerateOneTimePassword("@dominio.com"), "Aluno"))
}
