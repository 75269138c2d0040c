package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/indicator-dashboard/internal/domain"
	"github.com/indicator-dashboard/internal/domain/repository"
)

type queryRepository struct {
	db     *DB
	logger *zap.Logger
}

type queryRow struct {
	Name           string         `db:"name"`
	Indicators     pq.StringArray `db:"indicators"`
	Interpretation string         `db:"interpretation"`
	CreatedAt      time.Time      `db:"created_at"`
}

func (r *queryRow) toDomain() *domain.SavedQuery {
	indicators := []string(r.Indicators)
	if indicators == nil {
		indicators = []string{}
	}
	return &domain.SavedQuery{
		Name:           r.Name,
		Indicators:     indicators,
		Interpretation: r.Interpretation,
		CreatedAt:      r.CreatedAt,
	}
}

// NewQueryRepository создает новый экземпляр repository сохранённых запросов
func NewQueryRepository(db *DB, logger *zap.Logger) repository.QueryRepository {
	return &queryRepository{
		db:     db,
		logger: logger,
	}
}

func (r *queryRepository) Save(ctx context.Context, q *domain.SavedQuery) error {
	query := `
		INSERT INTO saved_queries (name, indicators, interpretation)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE
		SET indicators = EXCLUDED.indicators,
		    interpretation = EXCLUDED.interpretation
		RETURNING created_at
	`

	row := r.db.QueryRowxContext(ctx, query, q.Name, pq.Array(q.Indicators), q.Interpretation)
	if err := row.Scan(&q.CreatedAt); err != nil {
		r.logger.Error("failed to save query", zap.String("name", q.Name), zap.Error(err))
		return fmt.Errorf("save query: %w", err)
	}
	return nil
}

func (r *queryRepository) GetByName(ctx context.Context, name string) (*domain.SavedQuery, error) {
	query := `
		SELECT name, indicators, interpretation, created_at
		FROM saved_queries
		WHERE name = $1
	`

	var row queryRow
	if err := r.db.GetContext(ctx, &row, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to get query", zap.String("name", name), zap.Error(err))
		return nil, fmt.Errorf("get query: %w", err)
	}
	return row.toDomain(), nil
}

func (r *queryRepository) List(ctx context.Context) ([]*domain.SavedQuery, error) {
	query := `
		SELECT name, indicators, interpretation, created_at
		FROM saved_queries
		ORDER BY created_at DESC, name
	`

	var rows []queryRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		r.logger.Error("failed to list queries", zap.Error(err))
		return nil, fmt.Errorf("list queries: %w", err)
	}

	out := make([]*domain.SavedQuery, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

func (r *queryRepository) Delete(ctx context.Context, name string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM saved_queries WHERE name = $1`, name)
	if err != nil {
		r.logger.Error("failed to delete query", zap.String("name", name), zap.Error(err))
		return false, fmt.Errorf("delete query: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete query: %w", err)
	}
	return affected > 0, nil
}
