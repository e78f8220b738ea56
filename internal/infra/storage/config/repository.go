package config

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ChatbotService/internal/domain"
	"github.com/m04kA/SMC-ChatbotService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ChatbotService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с конфигурацией бронирования бизнеса
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByBusinessID получает конфигурацию бизнеса
// Если конфигурация не задана, возвращает ErrConfigNotFound -
// решение о дефолтах принимает вызывающий код (domain.DefaultBusinessConfig)
func (r *Repository) GetByBusinessID(ctx context.Context, businessID int64) (*domain.BusinessConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"granularity_minutes",
		"min_booking_notice_minutes",
		"advance_booking_days",
		"use_default_hours",
		"default_windows",
		"created_at",
		"updated_at",
	).
		From("business_config").
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessID - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.BusinessConfig
	var defaultWindows []byte
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&cfg.BusinessID,
		&cfg.GranularityMinutes,
		&cfg.MinBookingNoticeMinutes,
		&cfg.AdvanceBookingDays,
		&cfg.UseDefaultHours,
		&defaultWindows,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessID - scan config: %v", ErrScanRow, err)
	}

	if len(defaultWindows) > 0 {
		if err := json.Unmarshal(defaultWindows, &cfg.DefaultWindows); err != nil {
			return nil, fmt.Errorf("%w: GetByBusinessID - unmarshal default_windows: %v", ErrScanRow, err)
		}
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

// Upsert создает или целиком заменяет конфигурацию бизнеса
func (r *Repository) Upsert(ctx context.Context, cfg *domain.BusinessConfig) (*domain.BusinessConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	defaultWindows, err := json.Marshal(cfg.DefaultWindows)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - marshal default_windows: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("business_config").
		Columns(
			"business_id",
			"granularity_minutes",
			"min_booking_notice_minutes",
			"advance_booking_days",
			"use_default_hours",
			"default_windows",
		).
		Values(
			cfg.BusinessID,
			cfg.GranularityMinutes,
			cfg.MinBookingNoticeMinutes,
			cfg.AdvanceBookingDays,
			cfg.UseDefaultHours,
			defaultWindows,
		).
		Suffix(`ON CONFLICT (business_id) DO UPDATE SET
			granularity_minutes = EXCLUDED.granularity_minutes,
			min_booking_notice_minutes = EXCLUDED.min_booking_notice_minutes,
			advance_booking_days = EXCLUDED.advance_booking_days,
			use_default_hours = EXCLUDED.use_default_hours,
			default_windows = EXCLUDED.default_windows,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}
