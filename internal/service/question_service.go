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

// allowedImageMIMETypes is the upload allow-list. Anything else is rejected
// before the payload reaches storage.
var allowedImageMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

type QuestionService interface {
	CreateQuestion(answer string, content []byte, contentType string) (*dto.QuestionResponse, error)
	GetQuestion(id uint) (*dto.QuestionDetailResponse, error)
	GetAllQuestions(skip, limit int) ([]dto.QuestionResponse, error)
	UpdateQuestion(id uint, req dto.UpdateQuestionRequest) (*dto.QuestionResponse, error)
	DeleteQuestion(id uint) error
}

type questionService struct {
	repo       repository.QuestionRepository
	normalizer AnswerNormalizerService
}

func NewQuestionService(repo repository.QuestionRepository, normalizer AnswerNormalizerService) QuestionService {
	return &questionService{repo: repo, normalizer: normalizer}
}

func (s *questionService) CreateQuestion(answer string, content []byte, contentType string) (*dto.QuestionResponse, error) {
	if !allowedImageMIMETypes[contentType] {
		log.Warn().Str("content_type", contentType).Msg("CreateQuestion: file rejected")
		return nil, fmt.Errorf("file is not a JPEG or a PNG image: %w", apperror.ErrValidation)
	}

	normalized := s.normalizer.Normalize(answer)
	if normalized == "" {
		return nil, fmt.Errorf("answer contains no alphanumeric characters: %w", apperror.ErrValidation)
	}

	if _, err := s.repo.FindByAnswer(normalized); err == nil {
		log.Warn().Str("answer", normalized).Msg("CreateQuestion: answer already exists")
		return nil, fmt.Errorf("a question with this answer already exists: %w", apperror.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	question := model.Question{
		Answer:      normalized,
		Content:     content,
		ContentType: contentType,
	}
	if err := s.repo.Create(&question); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the check-then-write race.
			return nil, fmt.Errorf("a question with this answer already exists: %w", apperror.ErrConflict)
		}
		log.Error().Err(err).Msg("CreateQuestion: database error")
		return nil, err
	}

	log.Info().Uint("question_id", question.ID).Msg("Question created")
	var resp dto.QuestionResponse
	copier.Copy(&resp, &question)
	return &resp, nil
}

func (s *questionService) GetQuestion(id uint) (*dto.QuestionDetailResponse, error) {
	question, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("question %d: %w", id, apperror.ErrNotFound)
		}
		return nil, err
	}

	var resp dto.QuestionDetailResponse
	copier.Copy(&resp, question)
	return &resp, nil
}

func (s *questionService) GetAllQuestions(skip, limit int) ([]dto.QuestionResponse, error) {
	questions, err := s.repo.FindAll(skip, limit)
	if err != nil {
		log.Error().Err(err).Msg("GetAllQuestions: database error")
		return nil, err
	}

	resp := make([]dto.QuestionResponse, len(questions))
	for i := range questions {
		copier.Copy(&resp[i], &questions[i])
	}
	return resp, nil
}

func (s *questionService) UpdateQuestion(id uint, req dto.UpdateQuestionRequest) (*dto.QuestionResponse, error) {
	question, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("question %d: %w", id, apperror.ErrNotFound)
		}
		return nil, err
	}

	normalized := s.normalizer.Normalize(req.Answer)
	if normalized == "" {
		return nil, fmt.Errorf("answer contains no alphanumeric characters: %w", apperror.ErrValidation)
	}

	if duplicate, err := s.repo.FindByAnswer(normalized); err == nil && duplicate.ID != question.ID {
		log.Warn().Str("answer", normalized).Msg("UpdateQuestion: answer already exists")
		return nil, fmt.Errorf("a question with this answer already exists: %w", apperror.ErrConflict)
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	question.Answer = normalized
	if err := s.repo.Update(question); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("a question with this answer already exists: %w", apperror.ErrConflict)
		}
		log.Error().Err(err).Uint("question_id", id).Msg("UpdateQuestion: database error")
		return nil, err
	}

	log.Info().Uint("question_id", id).Msg("Question answer updated")
	var resp dto.QuestionResponse
	copier.Copy(&resp, question)
	return &resp, nil
}

func (s *questionService) DeleteQuestion(id uint) error {
	if _, err := s.repo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("question %d: %w", id, apperror.ErrNotFound)
		}
		return err
	}

	// The order item referencing this question, if any, goes with it
	// (ON DELETE CASCADE).
	if err := s.repo.Delete(id); err != nil {
		log.Error().Err(err).Uint("question_id", id).Msg("DeleteQuestion: database error")
		return err
	}

	log.Info().Uint("question_id", id).Msg("Question deleted")
	return nil
}
