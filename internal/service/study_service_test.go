package service

import (
	"testing"
	"time"

	"github.com/Cleverson128/METODO-VAP/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartSession_SecondStartRejected(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	modules, err := env.modules.FindAll()
	require.NoError(t, err)

	session, err := env.study.StartSession(user.ID, modules[0].ID)
	require.NoError(t, err)
	assert.True(t, session.Active())

	_, err = env.study.StartSession(user.ID, modules[0].ID)
	assert.ErrorIs(t, err, util.ErrSessionActive)
}

func TestStartSession_LockedModule(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	modules, err := env.modules.FindAll()
	require.NoError(t, err)

	_, err = env.study.StartSession(user.ID, modules[1].ID)
	assert.ErrorIs(t, err, util.ErrModuleLocked)
}

func TestEndSession_NoActiveSessionIsANoOp(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	session, err := env.study.EndSession(user.ID)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestEndSession_DurationsAccumulateAcrossSessions(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	modules, err := env.modules.FindAll()
	require.NoError(t, err)
	moduleID := modules[0].ID

	first, err := env.study.StartSession(user.ID, moduleID)
	require.NoError(t, err)
	env.backdateSession(t, first.ID, time.Now().Add(-20*time.Minute))

	ended, err := env.study.EndSession(user.ID)
	require.NoError(t, err)
	require.NotNil(t, ended)
	assert.Equal(t, 20, ended.Duration)

	second, err := env.study.StartSession(user.ID, moduleID)
	require.NoError(t, err)
	env.backdateSession(t, second.ID, time.Now().Add(-45*time.Minute))

	ended, err = env.study.EndSession(user.ID)
	require.NoError(t, err)
	require.NotNil(t, ended)
	assert.Equal(t, 45, ended.Duration)

	total, err := env.study.TotalTimeForModule(user.ID, moduleID)
	require.NoError(t, err)
	assert.Equal(t, 65, total)

	stored, err := env.users.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 65, stored.TotalTimeStudied)
}

func TestEndSession_PartialMinutesFloorAndClockSkewClamp(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	modules, err := env.modules.FindAll()
	require.NoError(t, err)
	moduleID := modules[0].ID

	// 90 seconds of elapsed time counts as one whole minute.
	session, err := env.study.StartSession(user.ID, moduleID)
	require.NoError(t, err)
	env.backdateSession(t, session.ID, time.Now().Add(-90*time.Second))

	ended, err := env.study.EndSession(user.ID)
	require.NoError(t, err)
	require.NotNil(t, ended)
	assert.Equal(t, 1, ended.Duration)

	// A start time in the future clamps to zero instead of going
	// negative.
	session, err = env.study.StartSession(user.ID, moduleID)
	require.NoError(t, err)
	env.backdateSession(t, session.ID, time.Now().Add(10*time.Minute))

	ended, err = env.study.EndSession(user.ID)
	require.NoError(t, err)
	require.NotNil(t, ended)
	assert.Equal(t, 0, ended.Duration)

	stored, err := env.users.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.TotalTimeStudied)
}

func TestEndSession_ReleasesTheSlot(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	modules, err := env.modules.FindAll()
	require.NoError(t, err)

	_, err = env.study.StartSession(user.ID, modules[0].ID)
	require.NoError(t, err)

	_, err = env.study.EndSession(user.ID)
	require.NoError(t, err)

	active, err := env.study.ActiveSession(user.ID)
	require.NoError(t, err)
	assert.Nil(t, active)

	_, err = env.study.StartSession(user.ID, modules[0].ID)
	assert.NoError(t, err)
}

func TestTouchStreak(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	now := time.Date(2026, time.March, 10, 14, 30, 0, 0, time.Local)

	// First ever study day.
	touchStreak(user, now)
	assert.Equal(t, 1, user.CurrentStreak)
	require.NotNil(t, user.LastStudyDate)

	// Same day keeps the streak.
	touchStreak(user, now.Add(3*time.Hour))
	assert.Equal(t, 1, user.CurrentStreak)

	// Next day increments.
	touchStreak(user, now.AddDate(0, 0, 1))
	assert.Equal(t, 2, user.CurrentStreak)

	// A gap resets to one.
	touchStreak(user, now.AddDate(0, 0, 5))
	assert.Equal(t, 1, user.CurrentStreak)
}
