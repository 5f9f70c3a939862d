package user

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Cryptoquest/internal/apperror"
	"github.com/lshigami/Cryptoquest/internal/dto"
	"github.com/lshigami/Cryptoquest/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockContestService struct {
	mock.Mock
}

func (m *mockContestService) CurrentQuestion(user *model.User) (*dto.CurrentQuestionResponse, error) {
	args := m.Called(user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CurrentQuestionResponse), args.Error(1)
}

func (m *mockContestService) SubmitAnswer(user *model.User, req dto.SubmitAnswerRequest) error {
	return m.Called(user, req).Error(0)
}

func (m *mockContestService) Leaderboard(skip, limit int) ([]dto.LeaderboardEntryResponse, error) {
	args := m.Called(skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.LeaderboardEntryResponse), args.Error(1)
}

// setUser stands in for the auth middleware.
func setUser(user *model.User) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set("currentUser", user)
		ctx.Next()
	}
}

func newContestRouter(svc *mockContestService, user *model.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := NewContestController(svc)

	r := gin.New()
	r.GET("/api/v1/users/me/question", setUser(user), ctrl.CurrentQuestion)
	r.POST("/api/v1/users/me/answer", setUser(user), ctrl.SubmitAnswer)
	r.GET("/api/v1/contest/completed", ctrl.Completed)
	return r
}

func TestContestController_CurrentQuestion(t *testing.T) {
	user := &model.User{ID: 7, QuestionNumber: 2}

	t.Run("JSONBody", func(t *testing.T) {
		svc := new(mockContestService)
		r := newContestRouter(svc, user)

		svc.On("CurrentQuestion", user).Return(&dto.CurrentQuestionResponse{
			QuestionNumber: 2,
			Content:        []byte{0x89, 0x50},
			ContentType:    "image/png",
		}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/users/me/question", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"question_number":2`)
		// []byte marshals as base64
		assert.Contains(t, w.Body.String(), `"content":"iVA="`)
	})

	t.Run("RawImage", func(t *testing.T) {
		svc := new(mockContestService)
		r := newContestRouter(svc, user)

		svc.On("CurrentQuestion", user).Return(&dto.CurrentQuestionResponse{
			QuestionNumber: 2,
			Content:        []byte{0x89, 0x50},
			ContentType:    "image/png",
		}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/users/me/question?image=true", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		assert.Equal(t, []byte{0x89, 0x50}, w.Body.Bytes())
	})

	t.Run("CompletedRedirectsPreservingMethod", func(t *testing.T) {
		svc := new(mockContestService)
		r := newContestRouter(svc, user)

		svc.On("CurrentQuestion", user).Return(nil, apperror.ErrContestCompleted)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/users/me/question", nil))

		assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
		assert.Equal(t, "/api/v1/contest/completed", w.Header().Get("Location"))
	})
}

func TestContestController_SubmitAnswer(t *testing.T) {
	user := &model.User{ID: 7, QuestionNumber: 2}

	post := func(r *gin.Engine, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/me/answer", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("Correct", func(t *testing.T) {
		svc := new(mockContestService)
		r := newContestRouter(svc, user)

		svc.On("SubmitAnswer", user, dto.SubmitAnswerRequest{Answer: "giraffe"}).Return(nil)

		w := post(r, `{"answer": "giraffe"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Correct answer")
	})

	t.Run("Incorrect", func(t *testing.T) {
		svc := new(mockContestService)
		r := newContestRouter(svc, user)

		svc.On("SubmitAnswer", user, dto.SubmitAnswerRequest{Answer: "zebra"}).Return(apperror.ErrIncorrectAnswer)

		w := post(r, `{"answer": "zebra"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Incorrect answer")
	})

	t.Run("CompletedRedirectsAsGet", func(t *testing.T) {
		svc := new(mockContestService)
		r := newContestRouter(svc, user)

		svc.On("SubmitAnswer", user, mock.Anything).Return(apperror.ErrContestCompleted)

		w := post(r, `{"answer": "giraffe"}`)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/api/v1/contest/completed", w.Header().Get("Location"))
	})

	t.Run("MissingAnswerField", func(t *testing.T) {
		svc := new(mockContestService)
		r := newContestRouter(svc, user)

		w := post(r, `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "SubmitAnswer", mock.Anything, mock.Anything)
	})
}

func TestContestController_Completed(t *testing.T) {
	r := newContestRouter(new(mockContestService), &model.User{ID: 7})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/contest/completed", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "completed the contest")
}
