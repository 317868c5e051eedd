// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/sales-quest-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-quest-api/internal/domain"
)

const (
	snapshotsTable = "sales_snapshots"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:generate mockgen -source=snapshot.go -destination=mocks/mock_snapshot.go -package=mocks

type SnapshotRepository interface {
	Save(ctx context.Context, snapshot *domain.Snapshot) error
	Latest(ctx context.Context) (*domain.Snapshot, error)
	History(ctx context.Context, limit int) ([]domain.UploadHistoryEntry, error)
	DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)
}

type snapshotRepository struct {
	conn postgres.Conn
}

func NewSnapshotRepository(conn postgres.Conn) SnapshotRepository {
	return &snapshotRepository{
		conn: conn,
	}
}

func (r *snapshotRepository) Save(ctx context.Context, snapshot *domain.Snapshot) error {
	records, err := json.Marshal(snapshot.Records)
	if err != nil {
		return fmt.Errorf("erro ao serializar registros: %w", err)
	}

	query := squirrel.
		Insert(snapshotsTable).
		Columns("id", "title", "records", "record_count", "uploader", "status", "schema").
		Values(
			snapshot.ID,
			snapshot.Title,
			records,
			snapshot.RecordCount,
			snapshot.Uploader,
			string(snapshot.Status),
			string(snapshot.Schema),
		).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	err = r.conn.QueryRow(ctx, sqlQuery, args...).Scan(&snapshot.CreatedAt, &snapshot.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao executar query de inserção: %w", err)
	}

	return nil
}

func (r *snapshotRepository) Latest(ctx context.Context) (*domain.Snapshot, error) {
	query, args, err := squirrel.
		Select("id", "title", "records", "record_count", "uploader", "status", "schema", "created_at", "updated_at").
		From(snapshotsTable).
		OrderBy("created_at DESC", "id DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var (
		snapshot domain.Snapshot
		records  []byte
		status   string
		schema   string
	)

	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&snapshot.ID,
		&snapshot.Title,
		&records,
		&snapshot.RecordCount,
		&snapshot.Uploader,
		&status,
		&schema,
		&snapshot.CreatedAt,
		&snapshot.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear snapshot: %w", err)
	}

	snapshot.Status = domain.SnapshotStatus(status)
	snapshot.Schema = domain.CSVSchema(schema)

	if err := json.Unmarshal(records, &snapshot.Records); err != nil {
		return nil, fmt.Errorf("erro ao desserializar registros do snapshot %s: %w", snapshot.ID, err)
	}

	return &snapshot, nil
}

func (r *snapshotRepository) History(ctx context.Context, limit int) ([]domain.UploadHistoryEntry, error) {
	query, args, err := squirrel.
		Select("id", "title", "created_at", "record_count", "uploader", "status").
		From(snapshotsTable).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.UploadHistoryEntry, 0, limit)
	for rows.Next() {
		var (
			entry  domain.UploadHistoryEntry
			status string
		)

		if err := rows.Scan(
			&entry.ID,
			&entry.Title,
			&entry.Date,
			&entry.RecordCount,
			&entry.Uploader,
			&status,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear histórico: %w", err)
		}

		entry.Status = domain.SnapshotStatus(status)
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return entries, nil
}

// DeleteOlderThan remove snapshots criados antes de `before`, preservando sempre o mais recente
func (r *snapshotRepository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	latest := squirrel.
		Select("id").
		From(snapshotsTable).
		OrderBy("created_at DESC", "id DESC").
		Limit(1)

	latestSQL, _, err := latest.ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir subquery: %w", err)
	}

	query, args, err := squirrel.
		Delete(snapshotsTable).
		Where(squirrel.Lt{"created_at": before}).
		Where("id NOT IN (" + latestSQL + ")").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir query de remoção: %w", err)
	}

	var deleted int64
	err = r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		result, err := postgres.TxQueryer{Tx: tx}.Exec(ctx, query, args...)
		if err != nil {
			return err
		}

		deleted, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("erro ao remover snapshots antigos: %w", err)
	}

	return deleted, nil
}
