package fixtures

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/matchday/go/internal/fixtures/db"
	"github.com/mcdev12/matchday/go/internal/models"
	"github.com/mcdev12/matchday/go/internal/sqlutil"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	GetFixture(ctx context.Context, id string) (db.Fixture, error)
	ListFixtures(ctx context.Context) ([]db.Fixture, error)
	UpsertFixture(ctx context.Context, arg db.UpsertFixtureParams) (db.Fixture, error)
	DeleteFixture(ctx context.Context, id string) error
}

// Repository implements fixture data access operations
type Repository struct {
	queries Querier
}

// NewRepository creates a new fixtures repository
func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

// GetFixture retrieves a stored fixture by id
func (r *Repository) GetFixture(ctx context.Context, id string) (*models.Fixture, error) {
	row, err := r.queries.GetFixture(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFixtureNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get fixture: %w", err)
	}
	return r.dbFixtureToModel(row), nil
}

// ListFixtures retrieves all stored fixtures ordered by kickoff
func (r *Repository) ListFixtures(ctx context.Context) ([]models.Fixture, error) {
	rows, err := r.queries.ListFixtures(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list fixtures: %w", err)
	}

	out := make([]models.Fixture, len(rows))
	for i, row := range rows {
		out[i] = *r.dbFixtureToModel(row)
	}
	return out, nil
}

// SaveFixture inserts or replaces a fixture
func (r *Repository) SaveFixture(ctx context.Context, f models.Fixture) (*models.Fixture, error) {
	params, err := r.modelToUpsertParams(f)
	if err != nil {
		return nil, err
	}

	row, err := r.queries.UpsertFixture(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to save fixture: %w", err)
	}
	return r.dbFixtureToModel(row), nil
}

// DeleteFixture removes a fixture
func (r *Repository) DeleteFixture(ctx context.Context, id string) error {
	if err := r.queries.DeleteFixture(ctx, id); err != nil {
		return fmt.Errorf("failed to delete fixture: %w", err)
	}
	return nil
}

// dbFixtureToModel converts a database row to the domain model. A malformed
// events column yields an empty timeline rather than an error.
func (r *Repository) dbFixtureToModel(row db.Fixture) *models.Fixture {
	f := &models.Fixture{
		ID:        row.ID,
		HomeTeam:  row.HomeTeam,
		AwayTeam:  row.AwayTeam,
		Venue:     sqlutil.FromSqlString(row.Venue, ""),
		League:    sqlutil.FromSqlString(row.League, ""),
		Timestamp: sqlutil.FromSqlInt64(row.KickoffTs),
		Date:      sqlutil.FromSqlString(row.KickoffDate, ""),
		Mock:      row.IsMock,
	}

	var events []models.MatchEvent
	if err := sqlutil.FromNullRawMessage(row.Events, &events); err != nil {
		log.Warn().Err(err).Str("match_id", row.ID).Msg("malformed fixture events, using empty timeline")
		events = nil
	}
	f.Events = events
	return f
}

func (r *Repository) modelToUpsertParams(f models.Fixture) (db.UpsertFixtureParams, error) {
	if f.ID == "" || f.HomeTeam == "" || f.AwayTeam == "" {
		return db.UpsertFixtureParams{}, fmt.Errorf("%w: id, home_team and away_team are required", ErrInvalidFixture)
	}

	var events interface{}
	if len(f.Events) > 0 {
		events = f.Events
	}
	raw, err := sqlutil.ToNullRawMessage(events)
	if err != nil {
		return db.UpsertFixtureParams{}, fmt.Errorf("failed to encode fixture events: %w", err)
	}

	return db.UpsertFixtureParams{
		ID:          f.ID,
		HomeTeam:    f.HomeTeam,
		AwayTeam:    f.AwayTeam,
		Venue:       sqlutil.ToSqlString(f.Venue),
		League:      sqlutil.ToSqlString(f.League),
		KickoffTs:   sqlutil.ToSqlInt64(f.Timestamp),
		KickoffDate: sqlutil.ToSqlString(f.Date),
		IsMock:      f.Mock,
		Events:      raw,
	}, nil
}
