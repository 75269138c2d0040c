package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/indicator-dashboard/internal/domain"
	"github.com/indicator-dashboard/internal/domain/repository"
)

type scenarioRepository struct {
	db     *DB
	logger *zap.Logger
}

// scenarioRow - строка таблицы scenarios, вызовы хранятся в JSONB
type scenarioRow struct {
	Name       string    `db:"name"`
	Goal       string    `db:"goal"`
	Challenges []byte    `db:"challenges"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (r *scenarioRow) toDomain() (*domain.Scenario, error) {
	s := &domain.Scenario{
		Name:       r.Name,
		Goal:       r.Goal,
		Challenges: map[string][]string{},
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	if len(r.Challenges) > 0 {
		if err := json.Unmarshal(r.Challenges, &s.Challenges); err != nil {
			return nil, fmt.Errorf("decode challenges of %s: %w", r.Name, err)
		}
	}
	return s, nil
}

// NewScenarioRepository создает новый экземпляр scenario repository
func NewScenarioRepository(db *DB, logger *zap.Logger) repository.ScenarioRepository {
	return &scenarioRepository{
		db:     db,
		logger: logger,
	}
}

func (r *scenarioRepository) Save(ctx context.Context, scenario *domain.Scenario) error {
	challenges := scenario.Challenges
	if challenges == nil {
		challenges = map[string][]string{}
	}
	payload, err := json.Marshal(challenges)
	if err != nil {
		return fmt.Errorf("encode challenges: %w", err)
	}

	query := `
		INSERT INTO scenarios (name, goal, challenges)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE
		SET goal = EXCLUDED.goal,
		    challenges = EXCLUDED.challenges,
		    updated_at = now()
		RETURNING created_at, updated_at
	`

	row := r.db.QueryRowxContext(ctx, query, scenario.Name, scenario.Goal, payload)
	if err := row.Scan(&scenario.CreatedAt, &scenario.UpdatedAt); err != nil {
		r.logger.Error("failed to save scenario", zap.String("name", scenario.Name), zap.Error(err))
		return fmt.Errorf("save scenario: %w", err)
	}

	r.logger.Debug("scenario saved",
		zap.String("name", scenario.Name),
		zap.Int("challenges", len(challenges)))
	return nil
}

func (r *scenarioRepository) GetByName(ctx context.Context, name string) (*domain.Scenario, error) {
	query := `
		SELECT name, goal, challenges, created_at, updated_at
		FROM scenarios
		WHERE name = $1
	`

	var row scenarioRow
	if err := r.db.GetContext(ctx, &row, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to get scenario", zap.String("name", name), zap.Error(err))
		return nil, fmt.Errorf("get scenario: %w", err)
	}

	return row.toDomain()
}

func (r *scenarioRepository) List(ctx context.Context) ([]*domain.Scenario, error) {
	query := `
		SELECT name, goal, challenges, created_at, updated_at
		FROM scenarios
		ORDER BY name
	`

	var rows []scenarioRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		r.logger.Error("failed to list scenarios", zap.Error(err))
		return nil, fmt.Errorf("list scenarios: %w", err)
	}

	scenarios := make([]*domain.Scenario, 0, len(rows))
	for i := range rows {
		s, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

func (r *scenarioRepository) Delete(ctx context.Context, name string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM scenarios WHERE name = $1`, name)
	if err != nil {
		r.logger.Error("failed to delete scenario", zap.String("name", name), zap.Error(err))
		return false, fmt.Errorf("delete scenario: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete scenario: %w", err)
	}
	return affected > 0, nil
}
