package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/youthunion/union-go-api/internal/models"
)

// UserRepository persists portal accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (models.User, error)
	FindByIdentity(ctx context.Context, identity string) (models.User, error)
	FindStaffByIdentity(ctx context.Context, identity string) (models.User, error)
	EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error)
	StudentIDTaken(ctx context.Context, studentID string, excludeID uint) (bool, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateRole(ctx context.Context, id uint, role string) error
	SetLocked(ctx context.Context, id uint, locked bool) error
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	Delete(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository constructs the user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	return user, err
}

func (r *userRepository) FindByIdentity(ctx context.Context, identity string) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ? OR student_id = ?", identity, identity).
		First(&user).Error
	return user, err
}

func (r *userRepository) FindStaffByIdentity(ctx context.Context, identity string) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("(email = ? OR student_id = ?) AND role IN ?", identity, identity,
			[]string{models.RoleAdmin, models.RoleSecretary}).
		First(&user).Error
	return user, err
}

func (r *userRepository) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *userRepository) StudentIDTaken(ctx context.Context, studentID string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.User{}).Where("student_id = ?", studentID)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Order("id DESC").Find(&users).Error
	return users, err
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) UpdateRole(ctx context.Context, id uint, role string) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Update("role", role).Error
}

func (r *userRepository) SetLocked(ctx context.Context, id uint, locked bool) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Update("locked", locked).Error
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.User{}, id).Error
}
