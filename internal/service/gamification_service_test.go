package service

import (
	"testing"
	"time"

	"github.com/Cleverson128/METODO-VAP/internal/model"
	"github.com/Cleverson128/METODO-VAP/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFor(t *testing.T) {
	assert.Equal(t, 1, LevelFor(0))
	assert.Equal(t, 1, LevelFor(499))
	assert.Equal(t, 2, LevelFor(500))
	assert.Equal(t, 2, LevelFor(999))
	assert.Equal(t, 3, LevelFor(1000))
}

func TestCompleteModule_AwardsPointsAndUnlocksNext(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	modules, err := env.modules.FindAll()
	require.NoError(t, err)

	result, err := env.gamification.CompleteModule(user.ID, modules[0].ID)
	require.NoError(t, err)

	assert.Equal(t, modules[0].Points, result.PointsAwarded)
	// Module points plus the first-module achievement reward.
	assert.Equal(t, modules[0].Points+50, result.TotalPoints)
	require.NotNil(t, result.NextModuleID)
	assert.Equal(t, modules[1].ID, *result.NextModuleID)

	require.Len(t, result.UnlockedAchievement, 1)
	assert.Equal(t, "first-module", result.UnlockedAchievement[0].ID)

	stored, err := env.users.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, result.TotalPoints, stored.TotalPoints)
	assert.Equal(t, 1, stored.Level)
}

func TestCompleteModule_RepeatIsRejectedWithoutEffect(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	modules, err := env.modules.FindAll()
	require.NoError(t, err)

	_, err = env.gamification.CompleteModule(user.ID, modules[0].ID)
	require.NoError(t, err)

	before, err := env.users.FindByID(user.ID)
	require.NoError(t, err)

	_, err = env.gamification.CompleteModule(user.ID, modules[0].ID)
	assert.ErrorIs(t, err, util.ErrAlreadyCompleted)

	after, err := env.users.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, before.TotalPoints, after.TotalPoints)

	count, err := env.completions.CountByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCompleteModule_LockedUntilPredecessorsDone(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	modules, err := env.modules.FindAll()
	require.NoError(t, err)

	_, err = env.gamification.CompleteModule(user.ID, modules[2].ID)
	assert.ErrorIs(t, err, util.ErrModuleLocked)

	env.completeFirstModules(t, user.ID, 2)

	_, err = env.gamification.CompleteModule(user.ID, modules[2].ID)
	assert.NoError(t, err)
}

func TestCompleteModule_UnknownModule(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	_, err := env.gamification.CompleteModule(user.ID, 9999)
	assert.ErrorIs(t, err, util.ErrModuleNotFound)
}

func TestPointAccounting_ModuleAndAchievementRewards(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	// Modules 1-3 award 50+50+75 points; first-module (+50) fires on
	// the first completion and streak-3 (+100) on the third.
	env.completeFirstModules(t, user.ID, 3)

	stored, err := env.users.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 50+50+75+50+100, stored.TotalPoints)
	assert.Equal(t, 1, stored.Level)
}

func TestEvaluateAchievements_UnlocksAreMonotonicAndRewardedOnce(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	env.completeFirstModules(t, user.ID, 1)

	stored, err := env.users.FindByID(user.ID)
	require.NoError(t, err)
	pointsAfterUnlock := stored.TotalPoints

	// Re-evaluating with unchanged aggregates must not unlock or pay
	// anything again.
	newly, err := env.gamification.EvaluateAchievements(stored)
	require.NoError(t, err)
	assert.Empty(t, newly)
	assert.Equal(t, pointsAfterUnlock, stored.TotalPoints)
}

func TestEvaluateAchievements_StudyTimeCondition(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	user.TotalTimeStudied = 599
	newly, err := env.gamification.EvaluateAchievements(user)
	require.NoError(t, err)
	assert.Empty(t, newly)

	user.TotalTimeStudied = 600
	newly, err = env.gamification.EvaluateAchievements(user)
	require.NoError(t, err)
	require.Len(t, newly, 1)
	assert.Equal(t, "time-warrior", newly[0].ID)
	assert.Equal(t, 200, user.TotalPoints)
}

func TestEvaluateAchievements_StreakCondition(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	user.CurrentStreak = 7
	newly, err := env.gamification.EvaluateAchievements(user)
	require.NoError(t, err)
	require.Len(t, newly, 1)
	assert.Equal(t, "week-streak", newly[0].ID)
}

func TestEvaluateAchievements_SpeedConditionNeedsCompletedModule(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	modules, err := env.modules.FindAll()
	require.NoError(t, err)

	// A fast finalized session alone is not enough.
	now := time.Now()
	fastSession := &model.StudySession{UserID: user.ID, ModuleID: modules[0].ID, Duration: 20}
	fastSession.StartedAt = now.Add(-20 * time.Minute)
	fastSession.EndedAt = &now
	require.NoError(t, env.sessions.Create(fastSession))

	newly, err := env.gamification.EvaluateAchievements(user)
	require.NoError(t, err)
	for _, a := range newly {
		assert.NotEqual(t, "speed-learner", a.ID)
	}

	// Completing the module makes the fast session count.
	result, err := env.gamification.CompleteModule(user.ID, modules[0].ID)
	require.NoError(t, err)

	ids := make([]string, len(result.UnlockedAchievement))
	for i, a := range result.UnlockedAchievement {
		ids[i] = a.ID
	}
	assert.Contains(t, ids, "speed-learner")
}

func TestGetUserAchievements_CatalogWithUnlockState(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	env.completeFirstModules(t, user.ID, 1)

	summary, err := env.gamification.GetUserAchievements(user.ID)
	require.NoError(t, err)

	assert.Equal(t, 100, summary.TotalPoints)
	assert.Equal(t, 1, summary.Level)
	assert.Equal(t, 500, summary.NextLevelAt)
	assert.Len(t, summary.Achievements, 11)

	unlocked := 0
	for _, a := range summary.Achievements {
		if a.Unlocked {
			unlocked++
			assert.NotNil(t, a.UnlockedAt)
		} else {
			assert.Nil(t, a.UnlockedAt)
		}
	}
	assert.Equal(t, 1, unlocked)
}

func TestGetLeaderboard_OrdersByPoints(t *testing.T) {
	env := newTestEnv(t)

	first := env.createUser(t)
	second := env.createUser(t)
	third := env.createUser(t)

	first.TotalPoints = 300
	second.TotalPoints = 700
	third.TotalPoints = 100
	require.NoError(t, env.users.Update(first))
	require.NoError(t, env.users.Update(second))
	require.NoError(t, env.users.Update(third))

	entries, err := env.gamification.GetLeaderboard(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, second.Name, entries[0].Name)
	assert.Equal(t, 700, entries[0].Points)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, first.Name, entries[1].Name)
}
