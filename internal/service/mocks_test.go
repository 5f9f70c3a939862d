package service

import (
	"github.com/lshigami/Cryptoquest/internal/model"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(id uint) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(username string) (*model.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(offset, limit int) ([]model.User, error) {
	args := m.Called(offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *model.User, questionNumberChanged bool) error {
	args := m.Called(user, questionNumberChanged)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockUserRepository) Leaderboard(offset, limit int) ([]model.User, error) {
	args := m.Called(offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MockQuestionRepository is a mock implementation of repository.QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(question *model.Question) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuestionRepository) FindByID(id uint) (*model.Question, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Question), args.Error(1)
}

func (m *MockQuestionRepository) FindByAnswer(answer string) (*model.Question, error) {
	args := m.Called(answer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Question), args.Error(1)
}

func (m *MockQuestionRepository) FindAll(offset, limit int) ([]model.Question, error) {
	args := m.Called(offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Question), args.Error(1)
}

func (m *MockQuestionRepository) Update(question *model.Question) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuestionRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockQuestionOrderItemRepository is a mock implementation of repository.QuestionOrderItemRepository
type MockQuestionOrderItemRepository struct {
	mock.Mock
}

func (m *MockQuestionOrderItemRepository) Create(item *model.QuestionOrderItem) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockQuestionOrderItemRepository) FindByID(id uint) (*model.QuestionOrderItem, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QuestionOrderItem), args.Error(1)
}

func (m *MockQuestionOrderItemRepository) FindByQuestionNumber(questionNumber int) (*model.QuestionOrderItem, error) {
	args := m.Called(questionNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QuestionOrderItem), args.Error(1)
}

func (m *MockQuestionOrderItemRepository) FindByQuestionID(questionID uint) (*model.QuestionOrderItem, error) {
	args := m.Called(questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QuestionOrderItem), args.Error(1)
}

func (m *MockQuestionOrderItemRepository) FindAll(offset, limit int) ([]model.QuestionOrderItem, error) {
	args := m.Called(offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.QuestionOrderItem), args.Error(1)
}

func (m *MockQuestionOrderItemRepository) Update(item *model.QuestionOrderItem) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockQuestionOrderItemRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockEmailService is a mock implementation of EmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Enabled() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockEmailService) SendNewAccountEmail(to, username string) error {
	args := m.Called(to, username)
	return args.Error(0)
}

func (m *MockEmailService) SendResetPasswordEmail(to, token string) error {
	args := m.Called(to, token)
	return args.Error(0)
}

func (m *MockEmailService) SendTestEmail(to string) error {
	args := m.Called(to)
	return args.Error(0)
}
