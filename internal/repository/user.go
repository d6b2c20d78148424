package repository

import (
	"context"
	"errors"

	"github.com/rithvisal/inksign/internal/apperror"
	constant "github.com/rithvisal/inksign/internal/constant"
	"github.com/rithvisal/inksign/internal/model"
	"gorm.io/gorm"
)

type UserRepository struct {
	*baseRepository
}

func (ur UserRepository) Create(ctx context.Context, tx *gorm.DB, user *model.User) (*model.User, error) {
	ur.logger.Debugf("Create user with email: %s \n", user.Email)

	db := ur.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Model(&model.User{}).Create(user).Error; err != nil {
		return user, err
	}

	return user, nil
}

func (ur UserRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*model.User, error) {
	db := ur.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var user model.User
	if err := db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}

	return &user, nil
}

func (ur UserRepository) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*model.User, error) {
	db := ur.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var user model.User
	if err := db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}

	return &user, nil
}

// GetOrCreateByEmail returns the user with the given email, creating the
// account first when it does not exist yet. Used by the OAuth callback.
func (ur UserRepository) GetOrCreateByEmail(ctx context.Context, tx *gorm.DB, user model.User) (*model.User, error) {
	existing, err := ur.GetByEmail(ctx, tx, user.Email)
	if err == nil {
		return existing, nil
	}
	if !apperror.IsKind(err, apperror.KindNotFound) {
		return nil, err
	}

	return ur.Create(ctx, tx, &user)
}
