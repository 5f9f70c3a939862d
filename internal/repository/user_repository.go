package repository

import (
	"time"

	"github.com/lshigami/Cryptoquest/internal/model"
	"gorm.io/gorm"
)

// rankUpdateSQL recomputes every non-superuser's rank in one statement using
// dense_rank over question_number alone: users on the same question share a
// rank, and question_number_updated_at only orders the leaderboard display.
const rankUpdateSQL = `
WITH ranked AS (
    SELECT id, DENSE_RANK() OVER (ORDER BY question_number DESC) AS contest_rank
    FROM users
    WHERE is_superuser = FALSE
)
UPDATE users SET rank = ranked.contest_rank
FROM ranked
WHERE users.id = ranked.id`

type UserRepository interface {
	// Create inserts the user and recomputes all ranks in one transaction.
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	FindAll(offset, limit int) ([]model.User, error)
	// Update saves the user. When questionNumberChanged is true the
	// progression timestamp is refreshed and all ranks are recomputed in the
	// same transaction as the save, so a reader never observes an advanced
	// question number next to a stale rank.
	Update(user *model.User, questionNumberChanged bool) error
	// Delete removes the user and recomputes all ranks in one transaction.
	Delete(id uint) error
	// Leaderboard lists non-superusers by question_number DESC, earliest
	// arrival first within a question.
	Leaderboard(offset, limit int) ([]model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if user.QuestionNumberUpdatedAt.IsZero() {
			user.QuestionNumberUpdatedAt = time.Now().UTC()
		}
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if err := tx.Exec(rankUpdateSQL).Error; err != nil {
			return err
		}
		// Reload so the caller sees the freshly computed rank.
		return tx.First(user, user.ID).Error
	})
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAll(offset, limit int) ([]model.User, error) {
	var users []model.User
	if err := r.db.Order("id ASC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Update(user *model.User, questionNumberChanged bool) error {
	if !questionNumberChanged {
		return r.db.Save(user).Error
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		user.QuestionNumberUpdatedAt = time.Now().UTC()
		if err := tx.Save(user).Error; err != nil {
			return err
		}
		if err := tx.Exec(rankUpdateSQL).Error; err != nil {
			return err
		}
		return tx.First(user, user.ID).Error
	})
}

func (r *userRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.User{}, id).Error; err != nil {
			return err
		}
		return tx.Exec(rankUpdateSQL).Error
	})
}

func (r *userRepository) Leaderboard(offset, limit int) ([]model.User, error) {
	var users []model.User
	err := r.db.
		Where("is_superuser = ?", false).
		Order("question_number DESC, question_number_updated_at ASC").
		Offset(offset).Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
