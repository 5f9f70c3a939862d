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

type QuestionOrderService interface {
	CreateOrderItem(req dto.CreateQuestionOrderItemRequest) (*dto.QuestionOrderItemResponse, error)
	GetOrderItem(id uint) (*dto.QuestionOrderItemResponse, error)
	GetAllOrderItems(skip, limit int) ([]dto.QuestionOrderItemResponse, error)
	UpdateOrderItem(id uint, req dto.UpdateQuestionOrderItemRequest) (*dto.QuestionOrderItemResponse, error)
	DeleteOrderItem(id uint) error
}

type questionOrderService struct {
	orderRepo    repository.QuestionOrderItemRepository
	questionRepo repository.QuestionRepository
}

func NewQuestionOrderService(
	orderRepo repository.QuestionOrderItemRepository,
	questionRepo repository.QuestionRepository,
) QuestionOrderService {
	return &questionOrderService{orderRepo: orderRepo, questionRepo: questionRepo}
}

func (s *questionOrderService) CreateOrderItem(req dto.CreateQuestionOrderItemRequest) (*dto.QuestionOrderItemResponse, error) {
	if _, err := s.questionRepo.FindByID(req.QuestionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("question %d: %w", req.QuestionID, apperror.ErrNotFound)
		}
		return nil, err
	}

	// Application-layer uniqueness checks. The unique indexes back these up:
	// losing the race surfaces as gorm.ErrDuplicatedKey below and maps to the
	// same conflict.
	if err := s.checkUnique(req.QuestionNumber, req.QuestionID, 0); err != nil {
		return nil, err
	}

	item := model.QuestionOrderItem{
		QuestionNumber: req.QuestionNumber,
		QuestionID:     req.QuestionID,
	}
	if err := s.orderRepo.Create(&item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("question number or question already in the sequence: %w", apperror.ErrConflict)
		}
		log.Error().Err(err).Msg("CreateOrderItem: database error")
		return nil, err
	}

	log.Info().Uint("order_item_id", item.ID).Int("question_number", item.QuestionNumber).Msg("Question order item created")
	return s.GetOrderItem(item.ID)
}

func (s *questionOrderService) GetOrderItem(id uint) (*dto.QuestionOrderItemResponse, error) {
	item, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("question order item %d: %w", id, apperror.ErrNotFound)
		}
		return nil, err
	}

	var resp dto.QuestionOrderItemResponse
	copier.Copy(&resp, item)
	return &resp, nil
}

func (s *questionOrderService) GetAllOrderItems(skip, limit int) ([]dto.QuestionOrderItemResponse, error) {
	items, err := s.orderRepo.FindAll(skip, limit)
	if err != nil {
		log.Error().Err(err).Msg("GetAllOrderItems: database error")
		return nil, err
	}

	resp := make([]dto.QuestionOrderItemResponse, len(items))
	for i := range items {
		copier.Copy(&resp[i], &items[i])
	}
	return resp, nil
}

func (s *questionOrderService) UpdateOrderItem(id uint, req dto.UpdateQuestionOrderItemRequest) (*dto.QuestionOrderItemResponse, error) {
	item, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("question order item %d: %w", id, apperror.ErrNotFound)
		}
		return nil, err
	}

	if req.QuestionID != nil {
		if _, err := s.questionRepo.FindByID(*req.QuestionID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("question %d: %w", *req.QuestionID, apperror.ErrNotFound)
			}
			return nil, err
		}
		item.QuestionID = *req.QuestionID
	}
	if req.QuestionNumber != nil {
		item.QuestionNumber = *req.QuestionNumber
	}

	// Uniqueness is checked against all rows except the one being updated,
	// so a no-op update doesn't collide with itself.
	if err := s.checkUnique(item.QuestionNumber, item.QuestionID, item.ID); err != nil {
		return nil, err
	}

	// Drop the preloaded association so a question_id change isn't overwritten
	// by the stale struct.
	item.Question = model.Question{}
	if err := s.orderRepo.Update(item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("question number or question already in the sequence: %w", apperror.ErrConflict)
		}
		log.Error().Err(err).Uint("order_item_id", id).Msg("UpdateOrderItem: database error")
		return nil, err
	}

	log.Info().Uint("order_item_id", id).Msg("Question order item updated")
	return s.GetOrderItem(id)
}

func (s *questionOrderService) DeleteOrderItem(id uint) error {
	if _, err := s.orderRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("question order item %d: %w", id, apperror.ErrNotFound)
		}
		return err
	}

	if err := s.orderRepo.Delete(id); err != nil {
		log.Error().Err(err).Uint("order_item_id", id).Msg("DeleteOrderItem: database error")
		return err
	}

	log.Info().Uint("order_item_id", id).Msg("Question order item deleted")
	return nil
}

// checkUnique rejects a (questionNumber, questionID) pair colliding with any
// existing row other than excludeID.
func (s *questionOrderService) checkUnique(questionNumber int, questionID, excludeID uint) error {
	if existing, err := s.orderRepo.FindByQuestionNumber(questionNumber); err == nil && existing.ID != excludeID {
		log.Warn().Int("question_number", questionNumber).Msg("Question number already in the sequence")
		return fmt.Errorf("another question is already associated with this question number: %w", apperror.ErrConflict)
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if existing, err := s.orderRepo.FindByQuestionID(questionID); err == nil && existing.ID != excludeID {
		log.Warn().Uint("question_id", questionID).Msg("Question already in the sequence")
		return fmt.Errorf("this question is already associated with a question number: %w", apperror.ErrConflict)
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return nil
}
