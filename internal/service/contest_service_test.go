package service

import (
	"testing"
	"time"

	"github.com/lshigami/Cryptoquest/internal/apperror"
	"github.com/lshigami/Cryptoquest/internal/dto"
	"github.com/lshigami/Cryptoquest/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newContestFixture() (*MockQuestionOrderItemRepository, *MockQuestionRepository, *MockUserRepository, ContestService) {
	orderRepo := new(MockQuestionOrderItemRepository)
	questionRepo := new(MockQuestionRepository)
	userRepo := new(MockUserRepository)
	svc := NewContestService(orderRepo, questionRepo, userRepo, NewAnswerNormalizerService())
	return orderRepo, questionRepo, userRepo, svc
}

func TestContestService_CurrentQuestion(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		orderRepo, questionRepo, _, svc := newContestFixture()
		user := &model.User{ID: 7, QuestionNumber: 3}

		orderRepo.On("FindByQuestionNumber", 3).
			Return(&model.QuestionOrderItem{ID: 10, QuestionNumber: 3, QuestionID: 42}, nil)
		questionRepo.On("FindByID", uint(42)).
			Return(&model.Question{ID: 42, Answer: "giraffe", Content: []byte{0xFF, 0xD8}, ContentType: "image/jpeg"}, nil)

		resp, err := svc.CurrentQuestion(user)
		require.NoError(t, err)
		assert.Equal(t, 3, resp.QuestionNumber)
		assert.Equal(t, "image/jpeg", resp.ContentType)
		assert.Equal(t, []byte{0xFF, 0xD8}, resp.Content)
	})

	t.Run("NoOrderItemMeansCompleted", func(t *testing.T) {
		orderRepo, _, _, svc := newContestFixture()
		user := &model.User{ID: 7, QuestionNumber: 11}

		orderRepo.On("FindByQuestionNumber", 11).Return(nil, gorm.ErrRecordNotFound)

		resp, err := svc.CurrentQuestion(user)
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, apperror.ErrContestCompleted)
	})

	t.Run("OrderItemWithMissingQuestionMeansCompleted", func(t *testing.T) {
		orderRepo, questionRepo, _, svc := newContestFixture()
		user := &model.User{ID: 7, QuestionNumber: 2}

		orderRepo.On("FindByQuestionNumber", 2).
			Return(&model.QuestionOrderItem{ID: 5, QuestionNumber: 2, QuestionID: 99}, nil)
		questionRepo.On("FindByID", uint(99)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.CurrentQuestion(user)
		assert.ErrorIs(t, err, apperror.ErrContestCompleted)
	})
}

func TestContestService_SubmitAnswer(t *testing.T) {
	question := &model.Question{ID: 42, Answer: "giraffe", ContentType: "image/png"}
	orderItem := &model.QuestionOrderItem{ID: 10, QuestionNumber: 1, QuestionID: 42}

	t.Run("CorrectAnswerAdvances", func(t *testing.T) {
		orderRepo, questionRepo, userRepo, svc := newContestFixture()
		user := &model.User{ID: 7, QuestionNumber: 1}

		orderRepo.On("FindByQuestionNumber", 1).Return(orderItem, nil)
		questionRepo.On("FindByID", uint(42)).Return(question, nil)
		userRepo.On("Update", user, true).Return(nil)

		err := svc.SubmitAnswer(user, dto.SubmitAnswerRequest{Answer: "  GI-RAFFE "})
		require.NoError(t, err)
		assert.Equal(t, 2, user.QuestionNumber)
		userRepo.AssertCalled(t, "Update", user, true)
	})

	t.Run("IncorrectAnswerMutatesNothing", func(t *testing.T) {
		orderRepo, questionRepo, userRepo, svc := newContestFixture()
		user := &model.User{ID: 7, QuestionNumber: 1, QuestionNumberUpdatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}

		orderRepo.On("FindByQuestionNumber", 1).Return(orderItem, nil)
		questionRepo.On("FindByID", uint(42)).Return(question, nil)

		err := svc.SubmitAnswer(user, dto.SubmitAnswerRequest{Answer: "zebra"})
		assert.ErrorIs(t, err, apperror.ErrIncorrectAnswer)
		assert.Equal(t, 1, user.QuestionNumber)
		assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), user.QuestionNumberUpdatedAt)
		userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)

		// Resubmitting the same wrong answer behaves identically.
		err = svc.SubmitAnswer(user, dto.SubmitAnswerRequest{Answer: "zebra"})
		assert.ErrorIs(t, err, apperror.ErrIncorrectAnswer)
		assert.Equal(t, 1, user.QuestionNumber)
	})

	t.Run("CompletedContestRejectsSubmission", func(t *testing.T) {
		orderRepo, _, userRepo, svc := newContestFixture()
		user := &model.User{ID: 7, QuestionNumber: 11}

		orderRepo.On("FindByQuestionNumber", 11).Return(nil, gorm.ErrRecordNotFound)

		err := svc.SubmitAnswer(user, dto.SubmitAnswerRequest{Answer: "giraffe"})
		assert.ErrorIs(t, err, apperror.ErrContestCompleted)
		userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("UpdateFailurePropagates", func(t *testing.T) {
		orderRepo, questionRepo, userRepo, svc := newContestFixture()
		user := &model.User{ID: 7, QuestionNumber: 1}

		orderRepo.On("FindByQuestionNumber", 1).Return(orderItem, nil)
		questionRepo.On("FindByID", uint(42)).Return(question, nil)
		userRepo.On("Update", user, true).Return(gorm.ErrInvalidTransaction)

		err := svc.SubmitAnswer(user, dto.SubmitAnswerRequest{Answer: "giraffe"})
		assert.ErrorIs(t, err, gorm.ErrInvalidTransaction)
	})
}

func TestContestService_Leaderboard(t *testing.T) {
	_, _, userRepo, svc := newContestFixture()

	userRepo.On("Leaderboard", 0, 100).Return([]model.User{
		{ID: 1, FullName: "Alice", Username: "alice", QuestionNumber: 5, Rank: 1},
		{ID: 2, FullName: "Bob", Username: "bob", QuestionNumber: 5, Rank: 1},
		{ID: 3, FullName: "Carol", Username: "carol", QuestionNumber: 3, Rank: 2},
	}, nil)

	entries, err := svc.Leaderboard(0, 100)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "alice", entries[0].Username)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 1, entries[1].Rank)
	assert.Equal(t, 2, entries[2].Rank)
}
