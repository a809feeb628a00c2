package database

import (
	"context"
	"errors"
	"fmt"

	"axelmotors/models"

	"gorm.io/gorm"
)

// UpsertUser creates the user with the default role when absent, otherwise
// sets only the supplied profile fields. It never writes the role of an
// existing user.
func (s *GormStore) UpsertUser(ctx context.Context, email string, profile models.Profile) (UpsertResult, error) {
	result, err := s.upsertUser(ctx, email, profile)
	if err != nil && isDuplicateKey(err) {
		// a concurrent upsert created the user first
		result, err = s.upsertUser(ctx, email, profile)
	}
	return result, err
}

func (s *GormStore) upsertUser(ctx context.Context, email string, profile models.Profile) (UpsertResult, error) {
	var result UpsertResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		err := tx.Where("email = ?", email).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = models.User{Email: email, Role: models.RoleUser}
			profile.Apply(&user)
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			result.UpsertedCount = 1
			result.UpsertedID = user.ID
			return nil
		}
		if err != nil {
			return err
		}

		result.MatchedCount = 1
		columns := profile.Columns()
		if len(columns) == 0 {
			return nil
		}
		res := tx.Model(&user).Updates(columns)
		if res.Error != nil {
			return res.Error
		}
		result.ModifiedCount = res.RowsAffected
		return nil
	})
	if err != nil {
		return UpsertResult{}, fmt.Errorf("upsert user %s: %w", email, err)
	}
	return result, nil
}

func (s *GormStore) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.db.WithContext(ctx).Order("created_at").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *GormStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// SetUserRole reports one match, and one modification only when the stored
// role actually changed.
func (s *GormStore) SetUserRole(ctx context.Context, email, role string) (UpsertResult, error) {
	var result UpsertResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Select("id", "role").Where("email = ?", email).First(&user).Error; err != nil {
			return notFound(err)
		}
		result.MatchedCount = 1
		if user.Role == role {
			return nil
		}
		res := tx.Model(&models.User{}).Where("id = ?", user.ID).Update("role", role)
		if res.Error != nil {
			return res.Error
		}
		result.ModifiedCount = res.RowsAffected
		return nil
	})
	if err != nil {
		return UpsertResult{}, err
	}
	return result, nil
}
