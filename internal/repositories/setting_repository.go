package repositories

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hechonl_backend/internal/events"
	"hechonl_backend/internal/models"
)

type SettingRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	GetBool(ctx context.Context, key string) (bool, error)
	SetBool(ctx context.Context, key string, value bool) error
}

type SettingRepositoryImpl struct {
	db   *gorm.DB
	sink changeSink
}

func NewSettingRepository(db *gorm.DB, bus *events.Bus) SettingRepository {
	return &SettingRepositoryImpl{db: db, sink: busSink{bus: bus}}
}

func (r *SettingRepositoryImpl) Get(ctx context.Context, key string) (string, bool, error) {
	var setting models.AppSetting
	err := r.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: "key"}, Value: key}).
		First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return setting.Value, true, nil
}

func (r *SettingRepositoryImpl) Set(ctx context.Context, key, value string) error {
	setting := models.AppSetting{Key: key, Value: value}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return err
	}
	r.sink.record(changed(events.EntitySetting, events.ActionUpdated, key))
	return nil
}

// GetBool treats a missing key as false.
func (r *SettingRepositoryImpl) GetBool(ctx context.Context, key string) (bool, error) {
	v, ok, err := r.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, nil
	}
	return b, nil
}

func (r *SettingRepositoryImpl) SetBool(ctx context.Context, key string, value bool) error {
	return r.Set(ctx, key, strconv.FormatBool(value))
}
