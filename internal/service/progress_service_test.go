package service

import (
	"testing"

	"github.com/Cleverson128/METODO-VAP/internal/model"
	"github.com/Cleverson128/METODO-VAP/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordExerciseResult_PercentRounding(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	modules, err := env.modules.FindAll()
	require.NoError(t, err)

	result, err := env.progress.RecordExerciseResult(user.ID, modules[0].ID, 8, 10)
	require.NoError(t, err)
	assert.Equal(t, 80, result.PercentScore)

	// 2/3 rounds to the nearest integer, not down.
	result, err = env.progress.RecordExerciseResult(user.ID, modules[1].ID, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 67, result.PercentScore)
}

func TestRecordExerciseResult_LastWriteWins(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	modules, err := env.modules.FindAll()
	require.NoError(t, err)
	moduleID := modules[0].ID

	_, err = env.progress.RecordExerciseResult(user.ID, moduleID, 8, 10)
	require.NoError(t, err)

	_, err = env.progress.RecordExerciseResult(user.ID, moduleID, 10, 10)
	require.NoError(t, err)

	score, err := env.progress.ExerciseScoreForModule(user.ID, moduleID)
	require.NoError(t, err)
	require.NotNil(t, score)
	assert.Equal(t, 100, *score)

	// The replacement overwrote the row rather than adding one.
	var count int64
	require.NoError(t, env.db.Model(&model.ExerciseResult{}).
		Where("user_id = ? AND module_id = ?", user.ID, moduleID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRecordExerciseResult_RejectsInvalidScores(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	modules, err := env.modules.FindAll()
	require.NoError(t, err)
	moduleID := modules[0].ID

	_, err = env.progress.RecordExerciseResult(user.ID, moduleID, -1, 10)
	assert.ErrorIs(t, err, util.ErrInvalidScore)

	_, err = env.progress.RecordExerciseResult(user.ID, moduleID, 11, 10)
	assert.ErrorIs(t, err, util.ErrInvalidScore)

	_, err = env.progress.RecordExerciseResult(user.ID, moduleID, 0, 0)
	assert.ErrorIs(t, err, util.ErrInvalidScore)
}

func TestRecordExerciseResult_PerfectScoresUnlockAchievement(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	modules, err := env.modules.FindAll()
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := env.progress.RecordExerciseResult(user.ID, modules[i].ID, 10, 10)
		require.NoError(t, err)
	}

	stored, err := env.users.FindByID(user.ID)
	require.NoError(t, err)
	// perfectionist pays 250 points.
	assert.Equal(t, 250, stored.TotalPoints)
}

func TestExerciseScoreForModule_NilWhenMissing(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	modules, err := env.modules.FindAll()
	require.NoError(t, err)

	score, err := env.progress.ExerciseScoreForModule(user.ID, modules[0].ID)
	require.NoError(t, err)
	assert.Nil(t, score)
}

func TestModulesForUser_LockDerivation(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	views, err := env.progress.ModulesForUser(user.ID)
	require.NoError(t, err)
	require.Len(t, views, 12)

	assert.False(t, views[0].Locked)
	for _, v := range views[1:] {
		assert.True(t, v.Locked)
	}

	env.completeFirstModules(t, user.ID, 1)

	views, err = env.progress.ModulesForUser(user.ID)
	require.NoError(t, err)
	assert.True(t, views[0].Completed)
	assert.False(t, views[1].Locked)
	assert.True(t, views[2].Locked)
}

func TestSummaryForUser_TracksCompletionOrderAndNextModule(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	modules, err := env.modules.FindAll()
	require.NoError(t, err)

	summary, err := env.progress.SummaryForUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, summary.TotalModules)
	assert.Empty(t, summary.CompletedModules)
	require.NotNil(t, summary.NextModuleID)
	assert.Equal(t, modules[0].ID, *summary.NextModuleID)

	env.completeFirstModules(t, user.ID, 2)

	summary, err = env.progress.SummaryForUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{modules[0].ID, modules[1].ID}, summary.CompletedModules)
	require.NotNil(t, summary.NextModuleID)
	assert.Equal(t, modules[2].ID, *summary.NextModuleID)
}
