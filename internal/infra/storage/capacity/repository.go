package capacity

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/GMS-BookingService/pkg/psqlbuilder"
)

// Repository read-only репозиторий конфигурации вместимости залов
// Таблица tenant_capacity_config редактируется owner-сервисом, этот сервис
// её только читает
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByTenant получает конфигурацию вместимости зала
// Переопределения по слотам хранятся в jsonb как {"18:00-19:00": 25, ...}
func (r *Repository) GetByTenant(ctx context.Context, tenantID int64) (*domain.CapacityConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"tenant_id",
		"default_capacity",
		"per_slot_overrides",
		"crowd_feature_enabled",
		"created_at",
		"updated_at",
	).
		From("tenant_capacity_config").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenant - build select query: %v", ErrBuildQuery, err)
	}

	var (
		config               domain.CapacityConfig
		overridesRaw         []byte
		createdAt, updatedAt sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.TenantID,
		&config.DefaultCapacity,
		&overridesRaw,
		&config.CrowdFeatureEnabled,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenant - scan config: %v", ErrScanRow, err)
	}

	if len(overridesRaw) > 0 {
		overrides := make(map[domain.SlotID]int)
		if err := json.Unmarshal(overridesRaw, &overrides); err != nil {
			return nil, fmt.Errorf("%w: GetByTenant - decode per_slot_overrides: %v", ErrScanRow, err)
		}
		config.PerSlotOverrides = overrides
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}
