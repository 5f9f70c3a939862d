package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Cryptoquest/internal/apperror"
	"github.com/lshigami/Cryptoquest/internal/dto"
	"github.com/lshigami/Cryptoquest/internal/model"
	"github.com/lshigami/Cryptoquest/internal/repository"
	"github.com/lshigami/Cryptoquest/internal/security"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type UserService interface {
	CreateUser(req dto.CreateUserRequest) (*dto.UserResponse, error)
	GetUser(id uint) (*dto.UserResponse, error)
	GetAllUsers(skip, limit int) ([]dto.UserResponse, error)
	UpdateUser(id uint, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	UpdateMe(user *model.User, req dto.UpdateMeRequest) (*dto.UserResponse, error)
	DeleteUser(id uint) error
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) CreateUser(req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if _, err := s.repo.FindByEmail(req.Email); err == nil {
		log.Warn().Str("email", req.Email).Msg("CreateUser: email already registered")
		return nil, fmt.Errorf("a user with this email address already exists: %w", apperror.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.repo.FindByUsername(req.Username); err == nil {
		log.Warn().Str("username", req.Username).Msg("CreateUser: username taken")
		return nil, fmt.Errorf("a user with this username already exists: %w", apperror.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := model.User{
		FullName:       req.FullName,
		Email:          req.Email,
		Username:       req.Username,
		HashedPassword: hashed,
		IsSuperuser:    req.IsSuperuser,
		QuestionNumber: 1,
	}
	if err := s.repo.Create(&user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("a user with this email address or username already exists: %w", apperror.ErrConflict)
		}
		log.Error().Err(err).Msg("CreateUser: database error")
		return nil, err
	}

	log.Info().Uint("user_id", user.ID).Str("username", user.Username).Msg("User created")
	var resp dto.UserResponse
	copier.Copy(&resp, &user)
	return &resp, nil
}

func (s *userService) GetUser(id uint) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", id, apperror.ErrNotFound)
		}
		return nil, err
	}

	var resp dto.UserResponse
	copier.Copy(&resp, user)
	return &resp, nil
}

func (s *userService) GetAllUsers(skip, limit int) ([]dto.UserResponse, error) {
	users, err := s.repo.FindAll(skip, limit)
	if err != nil {
		log.Error().Err(err).Msg("GetAllUsers: database error")
		return nil, err
	}

	resp := make([]dto.UserResponse, len(users))
	for i := range users {
		copier.Copy(&resp[i], &users[i])
	}
	return resp, nil
}

func (s *userService) UpdateUser(id uint, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", id, apperror.ErrNotFound)
		}
		return nil, err
	}

	return s.applyUpdate(user, req)
}

// UpdateMe restricts the update to the caller's own profile fields.
func (s *userService) UpdateMe(user *model.User, req dto.UpdateMeRequest) (*dto.UserResponse, error) {
	return s.applyUpdate(user, dto.UpdateUserRequest{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
}

func (s *userService) applyUpdate(user *model.User, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if req.Email != nil && *req.Email != user.Email {
		if existing, err := s.repo.FindByEmail(*req.Email); err == nil && existing.ID != user.ID {
			return nil, fmt.Errorf("a user with this email address already exists: %w", apperror.ErrConflict)
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *req.Email
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Password != nil {
		hashed, err := security.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		user.HashedPassword = hashed
	}
	if req.IsSuperuser != nil {
		user.IsSuperuser = *req.IsSuperuser
	}

	questionNumberChanged := req.QuestionNumber != nil && *req.QuestionNumber != user.QuestionNumber
	if questionNumberChanged {
		user.QuestionNumber = *req.QuestionNumber
	}

	if err := s.repo.Update(user, questionNumberChanged); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("a user with this email address already exists: %w", apperror.ErrConflict)
		}
		log.Error().Err(err).Uint("user_id", user.ID).Msg("UpdateUser: database error")
		return nil, err
	}

	log.Info().Uint("user_id", user.ID).Bool("rank_recomputed", questionNumberChanged).Msg("User updated")
	var resp dto.UserResponse
	copier.Copy(&resp, user)
	return &resp, nil
}

func (s *userService) DeleteUser(id uint) error {
	if _, err := s.repo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %d: %w", id, apperror.ErrNotFound)
		}
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		log.Error().Err(err).Uint("user_id", id).Msg("DeleteUser: database error")
		return err
	}

	log.Info().Uint("user_id", id).Msg("User deleted")
	return nil
}
