package util

import (
	"testing"
	"time"

	"github.com/Cleverson128/METODO-VAP/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *model.User {
	user := &model.User{
		Name:  "Aluno Teste",
		Email: "aluno@example.com",
		Role:  model.Student,
	}
	user.ID = "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d"
	return user
}

func TestGenerateAndParseJWT(t *testing.T) {
	user := testUser()

	token, err := GenerateJWT(user, "segredo-de-teste", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token, "segredo-de-teste")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, model.Student, claims.Role)
}

func TestParseJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT(testUser(), "segredo-de-teste", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "outro-segredo")
	assert.Error(t, err)
}

func TestParseJWT_Expired(t *testing.T) {
	token, err := GenerateJWT(testUser(), "segredo-de-teste", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "segredo-de-teste")
	assert.Error(t, err)
}

func TestParseJWT_Garbage(t *testing.T) {
	_, err := ParseJWT("not-a-token", "segredo-de-teste")
	assert.Error(t, err)
}
