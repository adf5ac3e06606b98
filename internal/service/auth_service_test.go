package service

import (
	"testing"

	"github.com/Cleverson128/METODO-VAP/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvisionAccount_CreatesStudentWithOneTimePassword(t *testing.T) {
	env := newTestEnv(t)

	created, oneTimePassword, err := env.auth.ProvisionAccount("maria.silva@example.com", "Maria Silva")
	require.NoError(t, err)
	assert.True(t, created)
	require.NotEmpty(t, oneTimePassword)

	token, user, err := env.auth.Login("maria.silva@example.com", oneTimePassword)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "Maria Silva", user.Name)
	assert.True(t, user.TempPassword)
	assert.Equal(t, 1, user.Level)
}

func TestProvisionAccount_ExistingEmailIsANoOp(t *testing.T) {
	env := newTestEnv(t)

	created, _, err := env.auth.ProvisionAccount("joao@example.com", "João")
	require.NoError(t, err)
	require.True(t, created)

	created, oneTimePassword, err := env.auth.ProvisionAccount("joao@example.com", "João")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Empty(t, oneTimePassword)
}

func TestProvisionAccount_DefaultName(t *testing.T) {
	env := newTestEnv(t)

	_, oneTimePassword, err := env.auth.ProvisionAccount("semnome@example.com", "")
	require.NoError(t, err)

	_, user, err := env.auth.Login("semnome@example.com", oneTimePassword)
	require.NoError(t, err)
	assert.Equal(t, "Aluno VAP", user.Name)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	_, _, err := env.auth.Login(user.Email, "senha-errada")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.auth.Login("ninguem@example.com", "qualquer")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestLogin_DisabledAccount(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	user.Disabled = true
	require.NoError(t, env.users.Update(user))

	_, _, err := env.auth.Login(user.Email, "senha123!")
	assert.ErrorIs(t, err, util.ErrAccountDisabled)
}

func TestChangePassword_ClearsTempFlag(t *testing.T) {
	env := newTestEnv(t)

	_, oneTimePassword, err := env.auth.ProvisionAccount("troca@example.com", "Aluno")
	require.NoError(t, err)

	_, user, err := env.auth.Login("troca@example.com", oneTimePassword)
	require.NoError(t, err)

	err = env.auth.ChangePassword(user.ID, "senha-errada", "NovaSenha123!")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	require.NoError(t, env.auth.ChangePassword(user.ID, oneTimePassword, "NovaSenha123!"))

	_, updated, err := env.auth.Login("troca@example.com", "NovaSenha123!")
	require.NoError(t, err)
	assert.False(t, updated.TempPassword)

	_, _, err = env.auth.Login("troca@example.com", oneTimePassword)
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}
