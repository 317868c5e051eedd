package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/sales-quest-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-quest-api/internal/domain"
)

const (
	settingsTable = "sales_settings"

	weightingsKey = "weightings"
)

//go:generate mockgen -source=settings.go -destination=mocks/mock_settings.go -package=mocks

type SettingsRepository interface {
	GetWeightings(ctx context.Context) (*domain.Weightings, error)
	SaveWeightings(ctx context.Context, weightings domain.Weightings) error
}

type settingsRepository struct {
	conn postgres.Conn
}

func NewSettingsRepository(conn postgres.Conn) SettingsRepository {
	return &settingsRepository{
		conn: conn,
	}
}

// GetWeightings retorna nil quando nenhum peso foi salvo ainda
func (r *settingsRepository) GetWeightings(ctx context.Context) (*domain.Weightings, error) {
	query, args, err := squirrel.
		Select("value").
		From(settingsTable).
		Where(squirrel.Eq{"key": weightingsKey}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var raw []byte
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar pesos: %w", err)
	}

	var weightings domain.Weightings
	if err := json.Unmarshal(raw, &weightings); err != nil {
		return nil, fmt.Errorf("erro ao desserializar pesos: %w", err)
	}

	return &weightings, nil
}

func (r *settingsRepository) SaveWeightings(ctx context.Context, weightings domain.Weightings) error {
	raw, err := json.Marshal(weightings)
	if err != nil {
		return fmt.Errorf("erro ao serializar pesos: %w", err)
	}

	query, args, err := squirrel.
		Insert(settingsTable).
		Columns("key", "value").
		Values(weightingsKey, raw).
		Suffix(`
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = CURRENT_TIMESTAMP
	`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao salvar pesos: %w", err)
	}

	return nil
}
