package badge

import (
	"fmt"
	"testing"

	"learnsphere/database"
	"learnsphere/models"
	courseModels "learnsphere/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDb(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:ledger_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestApplyQuizCompletionAwardsOnce(t *testing.T) {
	db := setupTestDb(t)

	user := models.User{Name: "Asha", Email: "asha@example.com", Role: "LEARNER"}
	require.NoError(t, db.Create(&user).Error)

	// First completion records the row, adds the points, and crosses the
	// 20-point threshold into Explorer
	result, err := ApplyQuizCompletion(db, user.ID, 1, 1, 20, 1)
	require.NoError(t, err)
	assert.False(t, result.AlreadyCompleted)
	assert.Equal(t, 20, result.PointsAwarded)
	assert.Equal(t, uint(20), result.TotalPoints)
	assert.Equal(t, "Explorer", result.BadgeLevel)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, uint(20), stored.TotalPoints)
	assert.Equal(t, "Explorer", stored.BadgeLevel)

	var completion courseModels.QuizCompletion
	require.NoError(t, db.Where("user_id = ? AND quiz_id = ?", user.ID, 1).First(&completion).Error)
	assert.Equal(t, 20, completion.PointsEarned)
	assert.Equal(t, 1, completion.AttemptNumber)

	// A retake of the same quiz is a benign no-op: no extra points, no
	// extra completion row
	again, err := ApplyQuizCompletion(db, user.ID, 1, 1, 15, 2)
	require.NoError(t, err)
	assert.True(t, again.AlreadyCompleted)
	assert.Equal(t, 0, again.PointsAwarded)
	assert.Equal(t, uint(20), again.TotalPoints)
	assert.Equal(t, "Explorer", again.BadgeLevel)

	var count int64
	require.NoError(t, db.Model(&courseModels.QuizCompletion{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestApplyQuizCompletionAccumulates(t *testing.T) {
	db := setupTestDb(t)

	user := models.User{Name: "Ravi", Email: "ravi@example.com", Role: "LEARNER"}
	require.NoError(t, db.Create(&user).Error)

	// Distinct quizzes each award; the badge level follows the running total
	first, err := ApplyQuizCompletion(db, user.ID, 1, 1, 20, 1)
	require.NoError(t, err)
	assert.Equal(t, "Explorer", first.BadgeLevel)

	second, err := ApplyQuizCompletion(db, user.ID, 2, 1, 20, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(40), second.TotalPoints)
	assert.Equal(t, "Achiever", second.BadgeLevel)
}

func TestApplyQuizCompletionExistenceCheckFailure(t *testing.T) {
	db := setupTestDb(t)

	user := models.User{Name: "Asha", Email: "asha@example.com", Role: "LEARNER"}
	require.NoError(t, db.Create(&user).Error)

	// A failing existence check must surface as an error, never fall through
	// to the insert path and award points
	require.NoError(t, db.Exec("DROP TABLE quiz_completions").Error)

	_, err := ApplyQuizCompletion(db, user.ID, 1, 1, 20, 1)
	assert.Error(t, err)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, uint(0), stored.TotalPoints)
}

func TestApplyQuizCompletionUnknownUser(t *testing.T) {
	db := setupTestDb(t)

	_, err := ApplyQuizCompletion(db, 42, 1, 1, 20, 1)
	assert.Error(t, err)
}
