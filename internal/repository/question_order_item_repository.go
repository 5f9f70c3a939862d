package repository

import (
	"github.com/lshigami/Cryptoquest/internal/model"
	"gorm.io/gorm"
)

type QuestionOrderItemRepository interface {
	Create(item *model.QuestionOrderItem) error
	FindByID(id uint) (*model.QuestionOrderItem, error)
	FindByQuestionNumber(questionNumber int) (*model.QuestionOrderItem, error)
	FindByQuestionID(questionID uint) (*model.QuestionOrderItem, error)
	FindAll(offset, limit int) ([]model.QuestionOrderItem, error)
	Update(item *model.QuestionOrderItem) error
	Delete(id uint) error
}

type questionOrderItemRepository struct {
	db *gorm.DB
}

func NewQuestionOrderItemRepository(db *gorm.DB) QuestionOrderItemRepository {
	return &questionOrderItemRepository{db: db}
}

func (r *questionOrderItemRepository) Create(item *model.QuestionOrderItem) error {
	return r.db.Create(item).Error
}

func (r *questionOrderItemRepository) FindByID(id uint) (*model.QuestionOrderItem, error) {
	var item model.QuestionOrderItem
	if err := r.db.Preload("Question").First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *questionOrderItemRepository) FindByQuestionNumber(questionNumber int) (*model.QuestionOrderItem, error) {
	var item model.QuestionOrderItem
	if err := r.db.Where("question_number = ?", questionNumber).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *questionOrderItemRepository) FindByQuestionID(questionID uint) (*model.QuestionOrderItem, error) {
	var item model.QuestionOrderItem
	if err := r.db.Where("question_id = ?", questionID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *questionOrderItemRepository) FindAll(offset, limit int) ([]model.QuestionOrderItem, error) {
	var items []model.QuestionOrderItem
	err := r.db.Preload("Question").Order("question_number ASC").Offset(offset).Limit(limit).Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *questionOrderItemRepository) Update(item *model.QuestionOrderItem) error {
	return r.db.Save(item).Error
}

func (r *questionOrderItemRepository) Delete(id uint) error {
	return r.db.Delete(&model.QuestionOrderItem{}, id).Error
}
