package service

import (
	"testing"

	"github.com/lshigami/Cryptoquest/internal/apperror"
	"github.com/lshigami/Cryptoquest/internal/dto"
	"github.com/lshigami/Cryptoquest/internal/model"
	"github.com/lshigami/Cryptoquest/internal/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserService_CreateUser(t *testing.T) {
	req := dto.CreateUserRequest{
		FullName: "Alice Example",
		Email:    "alice@example.com",
		Username: "alice",
		Password: "supersecret",
	}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)

		var created *model.User
		repo.On("FindByEmail", "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
		repo.On("FindByUsername", "alice").Return(nil, gorm.ErrRecordNotFound)
		repo.On("Create", mock.AnythingOfType("*model.User")).Return(nil).Run(func(args mock.Arguments) {
			created = args.Get(0).(*model.User)
			created.ID = 1
			created.Rank = 1
		})

		resp, err := svc.CreateUser(req)
		require.NoError(t, err)
		assert.Equal(t, uint(1), resp.ID)
		assert.Equal(t, 1, resp.QuestionNumber, "new users start at question 1")
		assert.False(t, resp.IsSuperuser)

		require.NotNil(t, created)
		assert.NotEqual(t, "supersecret", created.HashedPassword)
		assert.True(t, security.VerifyPassword("supersecret", created.HashedPassword))
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)

		repo.On("FindByEmail", "alice@example.com").Return(&model.User{ID: 2, Email: "alice@example.com"}, nil)

		_, err := svc.CreateUser(req)
		assert.ErrorIs(t, err, apperror.ErrConflict)
		repo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)

		repo.On("FindByEmail", "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
		repo.On("FindByUsername", "alice").Return(&model.User{ID: 2, Username: "alice"}, nil)

		_, err := svc.CreateUser(req)
		assert.ErrorIs(t, err, apperror.ErrConflict)
		repo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("LostInsertRaceIsConflict", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)

		repo.On("FindByEmail", "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
		repo.On("FindByUsername", "alice").Return(nil, gorm.ErrRecordNotFound)
		repo.On("Create", mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)

		_, err := svc.CreateUser(req)
		assert.ErrorIs(t, err, apperror.ErrConflict)
	})
}

func TestUserService_UpdateUser(t *testing.T) {
	existing := func() *model.User {
		return &model.User{ID: 1, FullName: "Alice", Email: "alice@example.com", Username: "alice", QuestionNumber: 3}
	}

	t.Run("QuestionNumberChangeRecomputesRanks", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)
		newNumber := 5

		repo.On("FindByID", uint(1)).Return(existing(), nil)
		repo.On("Update", mock.AnythingOfType("*model.User"), true).Return(nil)

		resp, err := svc.UpdateUser(1, dto.UpdateUserRequest{QuestionNumber: &newNumber})
		require.NoError(t, err)
		assert.Equal(t, 5, resp.QuestionNumber)
		repo.AssertCalled(t, "Update", mock.AnythingOfType("*model.User"), true)
	})

	t.Run("SameQuestionNumberSkipsRecompute", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)
		sameNumber := 3

		repo.On("FindByID", uint(1)).Return(existing(), nil)
		repo.On("Update", mock.AnythingOfType("*model.User"), false).Return(nil)

		_, err := svc.UpdateUser(1, dto.UpdateUserRequest{QuestionNumber: &sameNumber})
		require.NoError(t, err)
		repo.AssertCalled(t, "Update", mock.AnythingOfType("*model.User"), false)
	})

	t.Run("EmailTakenByAnotherUser", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)
		newEmail := "bob@example.com"

		repo.On("FindByID", uint(1)).Return(existing(), nil)
		repo.On("FindByEmail", "bob@example.com").Return(&model.User{ID: 2, Email: "bob@example.com"}, nil)

		_, err := svc.UpdateUser(1, dto.UpdateUserRequest{Email: &newEmail})
		assert.ErrorIs(t, err, apperror.ErrConflict)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)

		repo.On("FindByID", uint(9)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.UpdateUser(9, dto.UpdateUserRequest{})
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}

func TestUserService_UpdateMe(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo)
	user := &model.User{ID: 1, FullName: "Alice", Email: "alice@example.com", QuestionNumber: 3}
	newName := "Alice B."

	repo.On("Update", user, false).Return(nil)

	resp, err := svc.UpdateMe(user, dto.UpdateMeRequest{FullName: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", resp.FullName)
	assert.Equal(t, 3, resp.QuestionNumber, "self-service update cannot touch progress")
	repo.AssertCalled(t, "Update", user, false)
}

func TestUserService_DeleteUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)

		repo.On("FindByID", uint(1)).Return(&model.User{ID: 1}, nil)
		repo.On("Delete", uint(1)).Return(nil)

		assert.NoError(t, svc.DeleteUser(1))
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)

		repo.On("FindByID", uint(9)).Return(nil, gorm.ErrRecordNotFound)

		err := svc.DeleteUser(9)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
		repo.AssertNotCalled(t, "Delete", mock.Anything)
	})
}
