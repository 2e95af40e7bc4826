package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"academy/config"
	"academy/database"
	"academy/middleware"
	"academy/models"
	courseModels "academy/models/course"
	"academy/store"
	"academy/utils"
	courseValidator "academy/validators/course"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

var (
	setupOnce sync.Once
	testApp   *fiber.App
	userSeq   uint64
)

// newTestApp wires an app with the learner routes against the in-memory
// database and an in-memory cache, once per test binary.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	setupOnce.Do(func() {
		config.LoadConfig()
		database.ConnectTestDb()
		store.Init(store.NewMemoryKV())

		app := fiber.New()

		courseGroup := app.Group("/course")
		courseGroup.Get("/:id/states", middleware.JWTMiddleware, courseValidator.CourseID(), GetCourseStates)
		courseGroup.Get("/:id/progress", middleware.JWTMiddleware, courseValidator.CourseID(), GetProgress)
		courseGroup.Put("/:id/progress", middleware.JWTMiddleware, courseValidator.CourseID(), SaveProgress)
		courseGroup.Post("/:course_id/module/:module_id/video/complete", middleware.JWTMiddleware, courseValidator.CourseModule(), VideoComplete)
		courseGroup.Post("/:course_id/module/:module_id/video/time", middleware.JWTMiddleware, courseValidator.TimeUpdate(), VideoTimeUpdate)
		courseGroup.Post("/:course_id/module/:module_id/select", middleware.JWTMiddleware, courseValidator.CourseModule(), SelectModule)
		courseGroup.Post("/:course_id/module/:module_id/quiz/start", middleware.JWTMiddleware, courseValidator.CourseModule(), StartQuiz)
		courseGroup.Post("/:id/certificate/request", middleware.JWTMiddleware, courseValidator.CourseID(), RequestCertificate)

		quizGroup := app.Group("/quiz")
		quizGroup.Get("/:session_id", middleware.JWTMiddleware, courseValidator.SessionID(), QuizState)
		quizGroup.Post("/:session_id/select", middleware.JWTMiddleware, courseValidator.QuizSelection(), QuizSelect)
		quizGroup.Post("/:session_id/submit", middleware.JWTMiddleware, courseValidator.SessionID(), QuizSubmit)
		quizGroup.Post("/:session_id/advance", middleware.JWTMiddleware, courseValidator.SessionID(), QuizAdvance)
		quizGroup.Post("/:session_id/retry", middleware.JWTMiddleware, courseValidator.SessionID(), QuizRetry)

		testApp = app
	})

	return testApp
}

// seedStudent creates a student row and returns a bearer token for it.
func seedStudent(t *testing.T) (models.User, string) {
	t.Helper()

	n := atomic.AddUint64(&userSeq, 1)
	user := models.User{
		Name:     fmt.Sprintf("Student %d", n),
		Email:    fmt.Sprintf("student%d@example.com", n),
		Role:     "STUDENT",
		Password: "not-used-by-these-tests",
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return user, token
}

// seedCourse creates a published course with two ordered modules. The first
// module carries a two-question quiz, the second has no quiz at all.
func seedCourse(t *testing.T) (courseModels.Course, courseModels.Module, courseModels.Module) {
	t.Helper()
	db := database.Database.Db

	course := courseModels.Course{
		Title:       "Test Course",
		Description: "Gating walk-through",
		Author:      "QA",
		Status:      "ACTIVE",
		IsPublished: true,
	}
	require.NoError(t, db.Create(&course).Error)

	mod1 := courseModels.Module{CourseID: course.ID, Title: "Intro", OrderIndex: 1, VideoDuration: 60}
	mod2 := courseModels.Module{CourseID: course.ID, Title: "Outro", OrderIndex: 2, VideoDuration: 60}
	require.NoError(t, db.Create(&mod1).Error)
	require.NoError(t, db.Create(&mod2).Error)

	qz := courseModels.Quiz{ModuleID: mod1.ID, Title: "Intro Quiz", PassingScore: 70}
	require.NoError(t, db.Create(&qz).Error)

	// Correct answers: option 1 for the first question, option 0 for the second.
	for qi, correct := range []int{1, 0} {
		question := courseModels.Question{QuizID: qz.ID, Text: fmt.Sprintf("Question %d", qi+1), OrderIndex: qi + 1}
		require.NoError(t, db.Create(&question).Error)
		for oi, text := range []string{"Alpha", "Beta", "Gamma"} {
			opt := courseModels.QuestionOption{
				QuestionID: question.ID,
				OptionText: text,
				IsCorrect:  oi == correct,
				OrderIndex: oi + 1,
			}
			require.NoError(t, db.Create(&opt).Error)
		}
	}

	return course, mod1, mod2
}

type apiEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, apiEnvelope) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope apiEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp.StatusCode, envelope
}

type statesPayload struct {
	ModuleStates []struct {
		ModuleID string `json:"module_id"`
		Title    string `json:"title"`
		State    string `json:"state"`
	} `json:"module_states"`
	Summary struct {
		CompletedModules int  `json:"completed_modules"`
		TotalModules     int  `json:"total_modules"`
		Percent          int  `json:"percent"`
		CourseComplete   bool `json:"course_complete"`
	} `json:"summary"`
	CurrentModuleIndex int `json:"current_module_index"`
}

func fetchStates(t *testing.T, app *fiber.App, courseID uint, token string) statesPayload {
	t.Helper()

	status, envelope := doRequest(t, app, http.MethodGet, fmt.Sprintf("/course/%d/states", courseID), token, nil)
	require.Equal(t, http.StatusOK, status)

	var payload statesPayload
	require.NoError(t, json.Unmarshal(envelope.Data, &payload))
	return payload
}

type quizStatePayload struct {
	Phase          string `json:"phase"`
	QuestionIndex  int    `json:"question_index"`
	TotalQuestions int    `json:"total_questions"`
	IsCorrect      *bool  `json:"is_correct"`
	Score          *int   `json:"score"`
	Passed         *bool  `json:"passed"`
	CanRetry       bool   `json:"can_retry"`
}

func TestCourseGatingFlow(t *testing.T) {
	app := newTestApp(t)
	_, token := seedStudent(t)
	course, mod1, mod2 := seedCourse(t)

	// Fresh learner: first module open, second locked.
	states := fetchStates(t, app, course.ID, token)
	require.Len(t, states.ModuleStates, 2)
	require.Equal(t, "available", states.ModuleStates[0].State)
	require.Equal(t, "locked", states.ModuleStates[1].State)
	require.Equal(t, 0, states.Summary.CompletedModules)

	// Locked module rejects quiz start and navigation.
	status, _ := doRequest(t, app, http.MethodPost,
		fmt.Sprintf("/course/%d/module/%d/quiz/start", course.ID, mod2.ID), token, nil)
	require.Equal(t, http.StatusForbidden, status)
	status, _ = doRequest(t, app, http.MethodPost,
		fmt.Sprintf("/course/%d/module/%d/select", course.ID, mod2.ID), token, nil)
	require.Equal(t, http.StatusForbidden, status)

	// Watching the first video is not enough: the quiz still gates.
	status, _ = doRequest(t, app, http.MethodPost,
		fmt.Sprintf("/course/%d/module/%d/video/complete", course.ID, mod1.ID), token, nil)
	require.Equal(t, http.StatusOK, status)

	states = fetchStates(t, app, course.ID, token)
	require.Equal(t, "available", states.ModuleStates[0].State)
	require.Equal(t, "locked", states.ModuleStates[1].State)

	// Run the quiz with all correct answers.
	status, envelope := doRequest(t, app, http.MethodPost,
		fmt.Sprintf("/course/%d/module/%d/quiz/start", course.ID, mod1.ID), token, nil)
	require.Equal(t, http.StatusOK, status)

	var started struct {
		SessionID string           `json:"session_id"`
		State     quizStatePayload `json:"state"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &started))
	require.NotEmpty(t, started.SessionID)
	require.Equal(t, "answering", started.State.Phase)
	require.Equal(t, 2, started.State.TotalQuestions)

	var final quizStatePayload
	for _, answer := range []int{1, 0} {
		status, _ = doRequest(t, app, http.MethodPost, "/quiz/"+started.SessionID+"/select", token,
			fiber.Map{"option_index": answer})
		require.Equal(t, http.StatusOK, status)

		status, envelope = doRequest(t, app, http.MethodPost, "/quiz/"+started.SessionID+"/submit", token, nil)
		require.Equal(t, http.StatusOK, status)
		var fb quizStatePayload
		require.NoError(t, json.Unmarshal(envelope.Data, &fb))
		require.Equal(t, "feedback", fb.Phase)
		require.NotNil(t, fb.IsCorrect)
		require.True(t, *fb.IsCorrect)

		status, envelope = doRequest(t, app, http.MethodPost, "/quiz/"+started.SessionID+"/advance", token, nil)
		require.Equal(t, http.StatusOK, status)
		require.NoError(t, json.Unmarshal(envelope.Data, &final))
	}

	require.Equal(t, "results", final.Phase)
	require.NotNil(t, final.Score)
	require.Equal(t, 100, *final.Score)
	require.NotNil(t, final.Passed)
	require.True(t, *final.Passed)
	require.False(t, final.CanRetry)

	// Passing the quiz completes module one and unlocks module two.
	store.Progress.Flush()
	states = fetchStates(t, app, course.ID, token)
	require.Equal(t, "completed", states.ModuleStates[0].State)
	require.Equal(t, "available", states.ModuleStates[1].State)
	require.Equal(t, 1, states.Summary.CompletedModules)
	require.Equal(t, 50, states.Summary.Percent)

	// A passed quiz cannot be attempted again.
	status, _ = doRequest(t, app, http.MethodPost,
		fmt.Sprintf("/course/%d/module/%d/quiz/start", course.ID, mod1.ID), token, nil)
	require.Equal(t, http.StatusConflict, status)

	// The second module has no quiz: finishing its video completes the course.
	status, _ = doRequest(t, app, http.MethodPost,
		fmt.Sprintf("/course/%d/module/%d/video/complete", course.ID, mod2.ID), token, nil)
	require.Equal(t, http.StatusOK, status)

	store.Progress.Flush()
	states = fetchStates(t, app, course.ID, token)
	require.Equal(t, "completed", states.ModuleStates[1].State)
	require.True(t, states.Summary.CourseComplete)
	require.Equal(t, 100, states.Summary.Percent)

	// A finished course can request its certificate, exactly once.
	status, _ = doRequest(t, app, http.MethodPost,
		fmt.Sprintf("/course/%d/certificate/request", course.ID), token, nil)
	require.Equal(t, http.StatusCreated, status)
	status, _ = doRequest(t, app, http.MethodPost,
		fmt.Sprintf("/course/%d/certificate/request", course.ID), token, nil)
	require.Equal(t, http.StatusConflict, status)
}

func TestCertificateRequiresCompletion(t *testing.T) {
	app := newTestApp(t)
	_, token := seedStudent(t)
	course, _, _ := seedCourse(t)

	status, _ := doRequest(t, app, http.MethodPost,
		fmt.Sprintf("/course/%d/certificate/request", course.ID), token, nil)
	require.Equal(t, http.StatusForbidden, status)
}

func TestQuizSessionOwnership(t *testing.T) {
	app := newTestApp(t)
	_, ownerToken := seedStudent(t)
	_, otherToken := seedStudent(t)
	course, mod1, _ := seedCourse(t)

	status, envelope := doRequest(t, app, http.MethodPost,
		fmt.Sprintf("/course/%d/module/%d/quiz/start", course.ID, mod1.ID), ownerToken, nil)
	require.Equal(t, http.StatusOK, status)

	var started struct {
		SessionID string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &started))

	// Someone else's token cannot see or drive the session.
	status, _ = doRequest(t, app, http.MethodGet, "/quiz/"+started.SessionID, otherToken, nil)
	require.Equal(t, http.StatusNotFound, status)
	status, _ = doRequest(t, app, http.MethodPost, "/quiz/"+started.SessionID+"/submit", otherToken, nil)
	require.Equal(t, http.StatusNotFound, status)

	// The owner still can.
	status, _ = doRequest(t, app, http.MethodGet, "/quiz/"+started.SessionID, ownerToken, nil)
	require.Equal(t, http.StatusOK, status)
}

func TestQuizInvalidTransitionConflicts(t *testing.T) {
	app := newTestApp(t)
	_, token := seedStudent(t)
	course, mod1, _ := seedCourse(t)

	status, envelope := doRequest(t, app, http.MethodPost,
		fmt.Sprintf("/course/%d/module/%d/quiz/start", course.ID, mod1.ID), token, nil)
	require.Equal(t, http.StatusOK, status)

	var started struct {
		SessionID string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &started))

	// Submitting without a selection is rejected with the current state.
	status, _ = doRequest(t, app, http.MethodPost, "/quiz/"+started.SessionID+"/submit", token, nil)
	require.Equal(t, http.StatusConflict, status)

	// Retrying mid-attempt is rejected too.
	status, _ = doRequest(t, app, http.MethodPost, "/quiz/"+started.SessionID+"/retry", token, nil)
	require.Equal(t, http.StatusConflict, status)
}

func TestVideoTimeUpdateThreshold(t *testing.T) {
	app := newTestApp(t)
	_, token := seedStudent(t)
	course, mod1, _ := seedCourse(t)

	path := fmt.Sprintf("/course/%d/module/%d/video/time", course.ID, mod1.ID)

	status, envelope := doRequest(t, app, http.MethodPost, path, token,
		fiber.Map{"current_time": 30.0, "duration": 60.0})
	require.Equal(t, http.StatusOK, status)

	var below struct {
		VideoCompleted bool `json:"video_completed"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &below))
	require.False(t, below.VideoCompleted)

	status, envelope = doRequest(t, app, http.MethodPost, path, token,
		fiber.Map{"current_time": 55.0, "duration": 60.0})
	require.Equal(t, http.StatusOK, status)

	var above struct {
		VideoCompleted bool `json:"video_completed"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &above))
	require.True(t, above.VideoCompleted)

	// An unknown module is a 404 even when the position is below the
	// threshold, never a silent success.
	status, _ = doRequest(t, app, http.MethodPost,
		fmt.Sprintf("/course/%d/module/%d/video/time", course.ID, mod1.ID+100000), token,
		fiber.Map{"current_time": 10.0, "duration": 60.0})
	require.Equal(t, http.StatusNotFound, status)
}

func TestModuleKeepsFractionalVideoDuration(t *testing.T) {
	newTestApp(t)

	// The video host reports durations in fractional seconds; the module
	// row must carry them without truncation.
	asset := utils.VideoAsset{ID: "asset-fractional", Duration: 123.456, Status: "ready"}
	module := courseModels.Module{CourseID: 424242, Title: "Clip", OrderIndex: 1}
	module.VideoDuration = asset.Duration
	require.NoError(t, database.Database.Db.Create(&module).Error)

	var got courseModels.Module
	require.NoError(t, database.Database.Db.First(&got, module.ID).Error)
	require.InDelta(t, 123.456, got.VideoDuration, 1e-9)
}

func TestSaveAndGetProgressRoundTrip(t *testing.T) {
	app := newTestApp(t)
	_, token := seedStudent(t)
	course, mod1, _ := seedCourse(t)

	body := fiber.Map{
		"moduleProgress": []fiber.Map{
			{"moduleId": fmt.Sprint(mod1.ID), "videoCompleted": true},
		},
		"currentModuleIndex": 0,
	}
	status, _ := doRequest(t, app, http.MethodPut,
		fmt.Sprintf("/course/%d/progress", course.ID), token, body)
	require.Equal(t, http.StatusOK, status)

	status, envelope := doRequest(t, app, http.MethodGet,
		fmt.Sprintf("/course/%d/progress", course.ID), token, nil)
	require.Equal(t, http.StatusOK, status)

	var rec struct {
		ModuleProgress []struct {
			ModuleID       string `json:"moduleId"`
			VideoCompleted bool   `json:"videoCompleted"`
		} `json:"moduleProgress"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &rec))
	require.Len(t, rec.ModuleProgress, 1)
	require.Equal(t, fmt.Sprint(mod1.ID), rec.ModuleProgress[0].ModuleID)
	require.True(t, rec.ModuleProgress[0].VideoCompleted)
}
