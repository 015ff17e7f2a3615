package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"hechonl_backend/internal/events"
	"hechonl_backend/internal/logger"
	"hechonl_backend/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	// FetchUser looks up by normalized email.
	FetchUser(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	// CreateUser stores a new user; password must already be in its stored form.
	CreateUser(ctx context.Context, email, password, name string) (*models.User, error)
	DeleteUser(ctx context.Context, user *models.User) error
	Count(ctx context.Context) (int64, error)
}

type UserRepositoryImpl struct {
	db   *gorm.DB
	sink changeSink
}

func NewUserRepository(db *gorm.DB, bus *events.Bus) UserRepository {
	return &UserRepositoryImpl{db: db, sink: busSink{bus: bus}}
}

func (r *UserRepositoryImpl) FetchUser(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", models.NormalizeEmail(email)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) CreateUser(ctx context.Context, email, password, name string) (*models.User, error) {
	start := time.Now()
	email = models.NormalizeEmail(email)

	// Check if user already exists
	var existing models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &models.User{
		Email:    email,
		Password: password,
		Name:     name,
	}
	err = r.db.WithContext(ctx).Create(user).Error
	logger.DBLog("create_user", "INSERT users", time.Since(start), err)
	if err != nil {
		// the unique index catches a concurrent registration the lookup missed
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	r.sink.record(changed(events.EntityUser, events.ActionCreated, user.ID))
	return user, nil
}

func (r *UserRepositoryImpl) DeleteUser(ctx context.Context, user *models.User) error {
	result := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", user.ID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	r.sink.record(changed(events.EntityUser, events.ActionDeleted, user.ID))
	return nil
}

func (r *UserRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error
	return n, err
}
