// Package store persists match runs and their results to Postgres,
// a simulation-result persistence layer but
// scoped to cricket Match/MatchResult records.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store wraps a connection pool and the cricket-engine schema.
type Store struct {
	db *pgxpool.Pool
}

// New opens a pool against the given DSN and verifies connectivity.
func New(ctx context.Context, dsn string, maxConns, minConns int32) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}
	cfg.MaxConns = maxConns
	cfg.MinConns = minConns
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: pool}, nil
}

// Close releases the pool.
func (s *Store) Close() {
	s.db.Close()
}

// Ping is used by the health handler.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// CreateRun records a newly-started batch of matches.
func (s *Store) CreateRun(ctx context.Context, runID string, teamAName, teamBName string, totalMatches int) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO match_runs (id, team_a, team_b, total_matches, completed_matches, status, created_at)
		VALUES ($1, $2, $3, $4, 0, 'running', NOW())
	`, runID, teamAName, teamBName, totalMatches)
	if err != nil {
		return fmt.Errorf("create run: %w", err)
	}
	return nil
}

// UpdateRunStatus transitions a run's status (running, completed, error).
func (s *Store) UpdateRunStatus(ctx context.Context, runID, status string) {
	_, err := s.db.Exec(ctx, `UPDATE match_runs SET status = $2, updated_at = NOW() WHERE id = $1`, runID, status)
	if err != nil {
		log.Printf("update run status for %s: %v", runID, err)
	}
}

// UpdateProgress advances the completed-match counter.
func (s *Store) UpdateProgress(ctx context.Context, runID string, completed int) {
	_, err := s.db.Exec(ctx, `UPDATE match_runs SET completed_matches = $2, updated_at = NOW() WHERE id = $1`, runID, completed)
	if err != nil {
		log.Printf("update progress for %s: %v", runID, err)
	}
}

// MatchOutcome is the slice of a completed Match this store persists:
// enough to reconstruct win/margin statistics without keeping the full
// ball-by-ball transcript in the database.
type MatchOutcome struct {
	RunID       string
	MatchNumber int
	ResultKind  string
	Margin      int
	WinnerName  string
	Scorecard   string
}

// StoreMatchResult inserts one completed match's outcome.
func (s *Store) StoreMatchResult(ctx context.Context, outcome MatchOutcome) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO match_results (
			id, run_id, match_number, result_kind, margin, winner_name, scorecard, created_at
		) VALUES (
			gen_random_uuid(), $1, $2, $3, $4, $5, $6, NOW()
		)
	`, outcome.RunID, outcome.MatchNumber, outcome.ResultKind, outcome.Margin, outcome.WinnerName, outcome.Scorecard)
	if err != nil {
		return fmt.Errorf("store match result: %w", err)
	}
	return nil
}

// AggregatedResult summarizes every match in a run, analogous to the
// the same shape as an aggregated-results row, but keyed on cricket result kinds.
type AggregatedResult struct {
	RunID            string             `json:"run_id"`
	TotalMatches     int                `json:"total_matches"`
	WinCounts        map[string]int     `json:"win_counts"` // winner team name -> wins
	ResultKindCounts map[string]int     `json:"result_kind_counts"`
	Statistics       map[string]float64 `json:"statistics"`
}

// StoreAggregatedResult upserts the run-level summary.
func (s *Store) StoreAggregatedResult(ctx context.Context, result *AggregatedResult) error {
	winCountsJSON, err := json.Marshal(result.WinCounts)
	if err != nil {
		return fmt.Errorf("marshal win counts: %w", err)
	}
	kindCountsJSON, err := json.Marshal(result.ResultKindCounts)
	if err != nil {
		return fmt.Errorf("marshal result kind counts: %w", err)
	}
	statsJSON, err := json.Marshal(result.Statistics)
	if err != nil {
		return fmt.Errorf("marshal statistics: %w", err)
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO match_run_aggregates (
			run_id, total_matches, win_counts, result_kind_counts, statistics, created_at
		) VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (run_id) DO UPDATE SET
			total_matches = EXCLUDED.total_matches,
			win_counts = EXCLUDED.win_counts,
			result_kind_counts = EXCLUDED.result_kind_counts,
			statistics = EXCLUDED.statistics
	`, result.RunID, result.TotalMatches, winCountsJSON, kindCountsJSON, statsJSON)
	if err != nil {
		return fmt.Errorf("store aggregated result: %w", err)
	}
	return nil
}

// GetRunResult loads a run's aggregate for the result-polling endpoint.
func (s *Store) GetRunResult(ctx context.Context, runID string) (*AggregatedResult, error) {
	var result AggregatedResult
	var winCountsJSON, kindCountsJSON, statsJSON []byte
	err := s.db.QueryRow(ctx, `
		SELECT run_id, total_matches, win_counts, result_kind_counts, statistics
		FROM match_run_aggregates WHERE run_id = $1
	`, runID).Scan(&result.RunID, &result.TotalMatches, &winCountsJSON, &kindCountsJSON, &statsJSON)
	if err != nil {
		return nil, fmt.Errorf("load aggregated result: %w", err)
	}
	if err := json.Unmarshal(winCountsJSON, &result.WinCounts); err != nil {
		return nil, fmt.Errorf("unmarshal win counts: %w", err)
	}
	if err := json.Unmarshal(kindCountsJSON, &result.ResultKindCounts); err != nil {
		return nil, fmt.Errorf("unmarshal result kind counts: %w", err)
	}
	if err := json.Unmarshal(statsJSON, &result.Statistics); err != nil {
		return nil, fmt.Errorf("unmarshal statistics: %w", err)
	}
	return &result, nil
}
