package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"learnsphere/config"
	"learnsphere/database"
	"learnsphere/middleware"
	"learnsphere/models"
	courseModels "learnsphere/models/course"
	"learnsphere/quiz"
	"learnsphere/routers/courseRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// apiEnvelope mirrors the JSON response wrapper used by every handler
type apiEnvelope struct {
	Status  bool                   `json:"status"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

type testFixture struct {
	app    *fiber.App
	db     *gorm.DB
	token  string
	user   models.User
	course courseModels.Course
	topics []courseModels.Topic
	quiz   courseModels.Quiz
	option courseModels.QuestionOption // the correct option
	wrong  courseModels.QuestionOption
	q      courseModels.Question
}

// setupFlow wires a fiber app with the learner routes against an in-memory
// database seeded with one published course: one module, three topics, and a
// single-question quiz. Total progress items for the course is therefore 4.
func setupFlow(t *testing.T) *testFixture {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:    "test-secret",
		SaltRound: 4,
	}

	dsn := fmt.Sprintf("file:flow_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.Database = database.DbInstance{Db: db}

	f := &testFixture{db: db}

	f.user = models.User{Name: "Asha", Email: "asha@example.com", Role: "LEARNER"}
	require.NoError(t, db.Create(&f.user).Error)

	f.token, err = middleware.GenerateJWT(f.user.ID, f.user.Name, f.user.Role, f.user.Email)
	require.NoError(t, err)

	f.course = courseModels.Course{Title: "Go Fundamentals", Author: "Dev Team", Status: "ACTIVE", IsPublished: true}
	require.NoError(t, db.Create(&f.course).Error)

	module := courseModels.Module{CourseID: f.course.ID, Title: "Basics", OrderIndex: 1}
	require.NoError(t, db.Create(&module).Error)

	for i := 1; i <= 3; i++ {
		topic := courseModels.Topic{
			CourseID:    f.course.ID,
			ModuleID:    module.ID,
			Title:       fmt.Sprintf("Topic %d", i),
			ContentType: "VIDEO",
			OrderIndex:  i,
			IsPublished: true,
		}
		require.NoError(t, db.Create(&topic).Error)
		f.topics = append(f.topics, topic)
	}

	f.quiz = courseModels.Quiz{
		CourseID:     f.course.ID,
		ModuleID:     module.ID,
		Title:        "Basics Quiz",
		PassingScore: 70,
		Rewards:      datatypes.NewJSONType(quiz.DefaultRewards),
		IsPublished:  true,
	}
	require.NoError(t, db.Create(&f.quiz).Error)

	f.q = courseModels.Question{QuizID: f.quiz.ID, Text: "What does := do?", OrderIndex: 1}
	require.NoError(t, db.Create(&f.q).Error)

	f.option = courseModels.QuestionOption{QuestionID: f.q.ID, Text: "Declares and assigns", IsCorrect: true, OrderIndex: 1}
	require.NoError(t, db.Create(&f.option).Error)
	f.wrong = courseModels.QuestionOption{QuestionID: f.q.ID, Text: "Compares values", OrderIndex: 2}
	require.NoError(t, db.Create(&f.wrong).Error)

	f.app = fiber.New()
	courseRoutes.SetupCourseRoutes(f.app)

	return f
}

func (f *testFixture) request(t *testing.T, method, path string, body interface{}) (int, apiEnvelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+f.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)

	var envelope apiEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp.StatusCode, envelope
}

func TestCourseCompletionFlow(t *testing.T) {
	f := setupFlow(t)

	// Enroll
	code, env := f.request(t, http.MethodPost, fmt.Sprintf("/course/%d/enroll", f.course.ID), nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	assert.Equal(t, "ENROLLED", env.Data["status"])

	// Re-enrolling is a conflict
	code, _ = f.request(t, http.MethodPost, fmt.Sprintf("/course/%d/enroll", f.course.ID), nil)
	assert.Equal(t, http.StatusConflict, code)

	// Completing the three topics walks progress up in quarters: the quiz
	// is the fourth item
	expected := []float64{25, 50, 75}
	for i, topic := range f.topics {
		code, env = f.request(t, http.MethodPost, fmt.Sprintf("/course/%d/topic/%d/complete", f.course.ID, topic.ID), nil)
		require.Equal(t, http.StatusOK, code, env.Message)
		assert.Equal(t, false, env.Data["already_completed"])

		enrollment := env.Data["enrollment"].(map[string]interface{})
		assert.Equal(t, expected[i], enrollment["progress"])
		assert.Equal(t, "IN_PROGRESS", enrollment["status"])
	}

	// Re-marking a completed topic is a benign no-op
	code, env = f.request(t, http.MethodPost, fmt.Sprintf("/course/%d/topic/%d/complete", f.course.ID, f.topics[0].ID), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, env.Data["already_completed"])

	// Progress endpoint agrees with the stored aggregate
	code, env = f.request(t, http.MethodGet, fmt.Sprintf("/course/%d/progress", f.course.ID), nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	summary := env.Data["summary"].(map[string]interface{})
	assert.Equal(t, float64(75), summary["percentage"])
	assert.Equal(t, float64(3), summary["completed_items"])
	assert.Equal(t, float64(4), summary["total_items"])
	assert.Equal(t, false, summary["is_completed"])

	// Fetching the quiz never leaks correct-answer flags
	code, env = f.request(t, http.MethodGet, fmt.Sprintf("/course/%d/quiz/%d", f.course.ID, f.quiz.ID), nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	assert.Equal(t, false, env.Data["already_completed"])
	questions := env.Data["questions"].([]interface{})
	require.Len(t, questions, 1)
	options := questions[0].(map[string]interface{})["options"].([]interface{})
	for _, opt := range options {
		assert.Equal(t, false, opt.(map[string]interface{})["is_correct"])
	}

	// Start a session and answer the only question correctly
	code, env = f.request(t, http.MethodPost, fmt.Sprintf("/course/%d/quiz/%d/session/start", f.course.ID, f.quiz.ID), nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	sessionID := env.Data["session_id"].(string)
	assert.Equal(t, float64(1), env.Data["attempt_number"])

	code, env = f.request(t, http.MethodPost, "/quiz/session/"+sessionID+"/answer", fiber.Map{
		"question_id": f.q.ID,
		"option_id":   f.option.ID,
	})
	require.Equal(t, http.StatusOK, code, env.Message)

	result := env.Data["result"].(map[string]interface{})
	assert.Equal(t, true, result["passed"])
	assert.Equal(t, float64(100), result["percentage"])
	assert.Equal(t, float64(20), env.Data["points_awarded"])
	assert.Equal(t, false, env.Data["already_completed"])

	userData := env.Data["user"].(map[string]interface{})
	assert.Equal(t, float64(20), userData["total_points"])
	assert.Equal(t, "Explorer", userData["badge_level"])

	enrollment := env.Data["enrollment"].(map[string]interface{})
	assert.Equal(t, float64(100), enrollment["progress"])
	assert.Equal(t, "COMPLETED", enrollment["status"])
	assert.NotNil(t, enrollment["completed_at"])

	// The passed session is gone; it cannot be retried or re-answered
	code, _ = f.request(t, http.MethodPost, "/quiz/session/"+sessionID+"/retry", nil)
	assert.Equal(t, http.StatusNotFound, code)

	// Completion issued a certificate
	code, env = f.request(t, http.MethodGet, "/user/certificates", nil)
	require.Equal(t, http.StatusOK, code)
	certificates := env.Data["certificates"].([]interface{})
	require.Len(t, certificates, 1)
	assert.NotEmpty(t, certificates[0].(map[string]interface{})["certificate_number"])

	// Retaking the quiz passes again but awards nothing more
	code, env = f.request(t, http.MethodPost, fmt.Sprintf("/course/%d/quiz/%d/session/start", f.course.ID, f.quiz.ID), nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	sessionID = env.Data["session_id"].(string)

	code, env = f.request(t, http.MethodPost, "/quiz/session/"+sessionID+"/answer", fiber.Map{
		"question_id": f.q.ID,
		"option_id":   f.option.ID,
	})
	require.Equal(t, http.StatusOK, code, env.Message)
	assert.Equal(t, true, env.Data["already_completed"])
	assert.Equal(t, float64(0), env.Data["points_awarded"])
	assert.Equal(t, float64(20), env.Data["user"].(map[string]interface{})["total_points"])
}

func TestQuizFailThenRetry(t *testing.T) {
	f := setupFlow(t)

	code, env := f.request(t, http.MethodPost, fmt.Sprintf("/course/%d/enroll", f.course.ID), nil)
	require.Equal(t, http.StatusOK, code, env.Message)

	code, env = f.request(t, http.MethodPost, fmt.Sprintf("/course/%d/quiz/%d/session/start", f.course.ID, f.quiz.ID), nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	sessionID := env.Data["session_id"].(string)

	// Wrong answer: 0/1 fails the 70% threshold and awards nothing
	code, env = f.request(t, http.MethodPost, "/quiz/session/"+sessionID+"/answer", fiber.Map{
		"question_id": f.q.ID,
		"option_id":   f.wrong.ID,
	})
	require.Equal(t, http.StatusOK, code, env.Message)
	result := env.Data["result"].(map[string]interface{})
	assert.Equal(t, false, result["passed"])
	assert.Equal(t, float64(0), result["points"])
	_, hasAward := env.Data["points_awarded"]
	assert.False(t, hasAward)

	// Retry keeps the session but bumps the attempt counter
	code, env = f.request(t, http.MethodPost, "/quiz/session/"+sessionID+"/retry", nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	assert.Equal(t, float64(2), env.Data["attempt_number"])

	// Passing on the second attempt earns the second-try reward
	code, env = f.request(t, http.MethodPost, "/quiz/session/"+sessionID+"/answer", fiber.Map{
		"question_id": f.q.ID,
		"option_id":   f.option.ID,
	})
	require.Equal(t, http.StatusOK, code, env.Message)
	result = env.Data["result"].(map[string]interface{})
	assert.Equal(t, true, result["passed"])
	assert.Equal(t, float64(15), result["points"])
	assert.Equal(t, float64(15), env.Data["points_awarded"])
	assert.Equal(t, "Newbie", env.Data["user"].(map[string]interface{})["badge_level"])

	var stored models.User
	require.NoError(t, f.db.First(&stored, f.user.ID).Error)
	assert.Equal(t, uint(15), stored.TotalPoints)
}

func TestQuizRequiresEnrollment(t *testing.T) {
	f := setupFlow(t)

	code, _ := f.request(t, http.MethodGet, fmt.Sprintf("/course/%d/quiz/%d", f.course.ID, f.quiz.ID), nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = f.request(t, http.MethodPost, fmt.Sprintf("/course/%d/topic/%d/complete", f.course.ID, f.topics[0].ID), nil)
	assert.Equal(t, http.StatusForbidden, code)
}
