package service

import (
	"errors"
	"fmt"

	"github.com/lshigami/Cryptoquest/internal/apperror"
	"github.com/lshigami/Cryptoquest/internal/dto"
	"github.com/lshigami/Cryptoquest/internal/model"
	"github.com/lshigami/Cryptoquest/internal/repository"
	"github.com/lshigami/Cryptoquest/internal/security"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AuthService interface {
	// Login verifies the email/password pair and issues a bearer token.
	Login(req dto.LoginRequest) (*dto.TokenResponse, error)
	// RecoverPassword emails a reset link to the address, if registered.
	RecoverPassword(email string) error
	// ResetPassword sets a new password for the user identified by the reset token.
	ResetPassword(req dto.ResetPasswordRequest) error
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *security.TokenManager
	email    EmailService
}

func NewAuthService(userRepo repository.UserRepository, tokens *security.TokenManager, email EmailService) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens, email: email}
}

// authenticate resolves the email/password pair to a user. Wrong email and
// wrong password are indistinguishable to the caller.
func (s *authService) authenticate(email, password string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("incorrect email address or password: %w", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	if !security.VerifyPassword(password, user.HashedPassword) {
		return nil, fmt.Errorf("incorrect email address or password: %w", apperror.ErrUnauthorized)
	}
	return user, nil
}

func (s *authService) Login(req dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.authenticate(req.Username, req.Password)
	if err != nil {
		log.Warn().Str("email", req.Username).Msg("Login failed")
		return nil, err
	}

	token, err := s.tokens.CreateAccessToken(user.ID)
	if err != nil {
		log.Error().Err(err).Uint("user_id", user.ID).Msg("Login: failed to issue access token")
		return nil, err
	}

	log.Info().Uint("user_id", user.ID).Msg("User logged in")
	return &dto.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

func (s *authService) RecoverPassword(email string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user with email %s: %w", email, apperror.ErrNotFound)
		}
		return err
	}

	token, err := s.tokens.CreatePasswordResetToken(user.Email)
	if err != nil {
		log.Error().Err(err).Uint("user_id", user.ID).Msg("RecoverPassword: failed to issue reset token")
		return err
	}

	if err := s.email.SendResetPasswordEmail(user.Email, token); err != nil {
		log.Error().Err(err).Str("email", user.Email).Msg("RecoverPassword: failed to send email")
		return err
	}

	log.Info().Uint("user_id", user.ID).Msg("Password recovery email sent")
	return nil
}

func (s *authService) ResetPassword(req dto.ResetPasswordRequest) error {
	email, err := s.tokens.VerifyPasswordResetToken(req.Token)
	if err != nil {
		log.Warn().Err(err).Msg("ResetPassword: invalid token")
		return fmt.Errorf("invalid token: %w", apperror.ErrValidation)
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user with email %s: %w", email, apperror.ErrNotFound)
		}
		return err
	}

	hashed, err := security.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	user.HashedPassword = hashed

	if err := s.userRepo.Update(user, false); err != nil {
		log.Error().Err(err).Uint("user_id", user.ID).Msg("ResetPassword: database error")
		return err
	}

	log.Info().Uint("user_id", user.ID).Msg("Password updated")
	return nil
}
