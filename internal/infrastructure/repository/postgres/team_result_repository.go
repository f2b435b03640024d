package postgres

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/BrennanB/TBAscripts/internal/domain/team"
	qb "github.com/BrennanB/TBAscripts/internal/platform/querybuilder"
	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
)

const (
	teamResultsTable       = "team_results"
	defaultResultBatchSize = 100
)

var teamResultConflict = []string{"run_id", "team_key"}

// TeamResultRepository stores result rows in team_results. Rows are
// buffered and upserted in batches; Close flushes what is left. It does
// not close the database handle.
type TeamResultRepository struct {
	db        *sqlx.DB
	batchSize int

	mu      sync.Mutex
	pending []teamResultTableModel
}

func NewTeamResultRepository(db *sqlx.DB, batchSize int) *TeamResultRepository {
	if batchSize <= 0 {
		batchSize = defaultResultBatchSize
	}
	return &TeamResultRepository{db: db, batchSize: batchSize}
}

func (r *TeamResultRepository) Write(ctx context.Context, row team.ResultRow) error {
	model, err := toTeamResultModel(row)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = append(r.pending, model)
	if len(r.pending) < r.batchSize {
		return nil
	}
	return r.flushLocked(ctx)
}

func (r *TeamResultRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flushLocked(context.Background())
}

func (r *TeamResultRepository) ListByRun(ctx context.Context, runID string) ([]team.ResultRow, error) {
	var rows []teamResultTableModel
	query := `SELECT run_id, team_key, team_number, team_name, overall_first_two, overall_full_season, seasons::text AS seasons, created_at
FROM team_results
WHERE run_id = $1
ORDER BY team_key`
	if err := r.db.SelectContext(ctx, &rows, query, runID); err != nil {
		return nil, fmt.Errorf("select team results run_id=%s: %w", runID, err)
	}

	out := make([]team.ResultRow, 0, len(rows))
	for _, row := range rows {
		item, err := fromTeamResultModel(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *TeamResultRepository) flushLocked(ctx context.Context) error {
	if len(r.pending) == 0 {
		return nil
	}

	models := make([]any, 0, len(r.pending))
	for _, model := range r.pending {
		models = append(models, model)
	}
	query, args, err := qb.UpsertModels(teamResultsTable, teamResultConflict, models...)
	if err != nil {
		return fmt.Errorf("build upsert team results query: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert team results: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert %d team results: %w", len(r.pending), err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert team results tx: %w", err)
	}
	r.pending = r.pending[:0]
	return nil
}

func toTeamResultModel(row team.ResultRow) (teamResultTableModel, error) {
	if strings.TrimSpace(row.RunID) == "" {
		return teamResultTableModel{}, fmt.Errorf("run id is required for team=%s", row.TeamKey)
	}

	seasons := make([]seasonJSONModel, 0, len(row.Years))
	for _, yr := range row.Years {
		seasons = append(seasons, seasonJSONModel{
			Year:                   yr.Year,
			FirstTwoAverage:        team.Round1(yr.FirstTwoAverage),
			FullSeasonAverage:      team.Round1(yr.FullSeasonAverage),
			Impact:                 yr.Awards.Impact,
			EngineeringInspiration: yr.Awards.EngineeringInspiration,
			RobotDesign:            yr.Awards.RobotDesign,
			Sustainability:         yr.Awards.Sustainability,
		})
	}
	encoded, err := sonic.Marshal(seasons)
	if err != nil {
		return teamResultTableModel{}, fmt.Errorf("encode seasons team=%s: %w", row.TeamKey, err)
	}

	return teamResultTableModel{
		RunID:             row.RunID,
		TeamKey:           row.TeamKey,
		TeamNumber:        team.Number(row.TeamKey),
		TeamName:          row.Name,
		OverallFirstTwo:   team.Round1(row.OverallFirstTwo),
		OverallFullSeason: team.Round1(row.OverallFullSeason),
		Seasons:           string(encoded),
	}, nil
}

func fromTeamResultModel(model teamResultTableModel) (team.ResultRow, error) {
	var seasons []seasonJSONModel
	if raw := strings.TrimSpace(model.Seasons); raw != "" {
		if err := sonic.UnmarshalString(raw, &seasons); err != nil {
			return team.ResultRow{}, fmt.Errorf("decode seasons team=%s: %w", model.TeamKey, err)
		}
	}

	row := team.ResultRow{
		RunID:             model.RunID,
		TeamKey:           model.TeamKey,
		Name:              model.TeamName,
		OverallFirstTwo:   model.OverallFirstTwo,
		OverallFullSeason: model.OverallFullSeason,
		Years:             make([]team.YearResult, 0, len(seasons)),
	}
	for _, s := range seasons {
		yr := team.YearResult{
			Year:              s.Year,
			FirstTwoAverage:   s.FirstTwoAverage,
			FullSeasonAverage: s.FullSeasonAverage,
		}
		yr.Awards.Impact = s.Impact
		yr.Awards.EngineeringInspiration = s.EngineeringInspiration
		yr.Awards.RobotDesign = s.RobotDesign
		yr.Awards.Sustainability = s.Sustainability
		row.Years = append(row.Years, yr)
	}
	return row, nil
}
