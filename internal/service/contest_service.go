package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Cryptoquest/internal/apperror"
	"github.com/lshigami/Cryptoquest/internal/dto"
	"github.com/lshigami/Cryptoquest/internal/model"
	"github.com/lshigami/Cryptoquest/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ContestService covers the participant-facing game loop: resolving the
// current question, verifying submitted answers, advancing progression, and
// listing the leaderboard.
type ContestService interface {
	// CurrentQuestion resolves the question shown to the user, or
	// apperror.ErrContestCompleted when the user's question number has no
	// order item.
	CurrentQuestion(user *model.User) (*dto.CurrentQuestionResponse, error)
	// SubmitAnswer verifies the answer. On a correct answer the user's
	// question number advances by one and all ranks are recomputed; on an
	// incorrect one nothing changes and apperror.ErrIncorrectAnswer is
	// returned.
	SubmitAnswer(user *model.User, req dto.SubmitAnswerRequest) error
	Leaderboard(skip, limit int) ([]dto.LeaderboardEntryResponse, error)
}

type contestService struct {
	orderRepo    repository.QuestionOrderItemRepository
	questionRepo repository.QuestionRepository
	userRepo     repository.UserRepository
	normalizer   AnswerNormalizerService
}

func NewContestService(
	orderRepo repository.QuestionOrderItemRepository,
	questionRepo repository.QuestionRepository,
	userRepo repository.UserRepository,
	normalizer AnswerNormalizerService,
) ContestService {
	return &contestService{
		orderRepo:    orderRepo,
		questionRepo: questionRepo,
		userRepo:     userRepo,
		normalizer:   normalizer,
	}
}

// currentQuestion is the explicit two-step lookup: order item by the user's
// question number, then the question it points to. No implicit joins.
func (s *contestService) currentQuestion(user *model.User) (*model.Question, error) {
	item, err := s.orderRepo.FindByQuestionNumber(user.QuestionNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no question at number %d: %w", user.QuestionNumber, apperror.ErrContestCompleted)
		}
		return nil, err
	}

	question, err := s.questionRepo.FindByID(item.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Order item outlived its question; cascade should prevent this,
			// but the user is still done rather than broken.
			log.Warn().Uint("question_id", item.QuestionID).Int("question_number", item.QuestionNumber).
				Msg("Order item references a missing question")
			return nil, fmt.Errorf("question %d missing: %w", item.QuestionID, apperror.ErrContestCompleted)
		}
		return nil, err
	}
	return question, nil
}

func (s *contestService) CurrentQuestion(user *model.User) (*dto.CurrentQuestionResponse, error) {
	question, err := s.currentQuestion(user)
	if err != nil {
		return nil, err
	}

	return &dto.CurrentQuestionResponse{
		QuestionNumber: user.QuestionNumber,
		Content:        question.Content,
		ContentType:    question.ContentType,
	}, nil
}

func (s *contestService) SubmitAnswer(user *model.User, req dto.SubmitAnswerRequest) error {
	question, err := s.currentQuestion(user)
	if err != nil {
		return err
	}

	// Stored answers are already normalized; the submission gets the same
	// treatment so the comparison can't be defeated by case or punctuation.
	if s.normalizer.Normalize(req.Answer) != question.Answer {
		log.Info().Uint("user_id", user.ID).Int("question_number", user.QuestionNumber).Msg("Incorrect answer")
		return fmt.Errorf("answer for question %d: %w", user.QuestionNumber, apperror.ErrIncorrectAnswer)
	}

	user.QuestionNumber++
	if err := s.userRepo.Update(user, true); err != nil {
		log.Error().Err(err).Uint("user_id", user.ID).Msg("SubmitAnswer: failed to advance user")
		return err
	}

	log.Info().Uint("user_id", user.ID).Int("question_number", user.QuestionNumber).Int("rank", user.Rank).
		Msg("Correct answer, user advanced")
	return nil
}

func (s *contestService) Leaderboard(skip, limit int) ([]dto.LeaderboardEntryResponse, error) {
	users, err := s.userRepo.Leaderboard(skip, limit)
	if err != nil {
		log.Error().Err(err).Msg("Leaderboard: database error")
		return nil, err
	}

	entries := make([]dto.LeaderboardEntryResponse, len(users))
	for i := range users {
		copier.Copy(&entries[i], &users[i])
	}
	return entries, nil
}
