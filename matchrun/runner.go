// Package matchrun orchestrates concurrent batches of Match simulations,
// a simulation-engine worker pool: a caller
// requests N independent matches for a fixture, matchrun fans them out
// across a fixed worker pool, persists each result, and aggregates.
package matchrun

import (
	"context"
	"hash/fnv"
	"log"
	"math/rand"
	"sync"
	"time"

	"cricket-engine/models"
	"cricket-engine/scorecard"
	"cricket-engine/simulation"
	"cricket-engine/store"
)

// RunStatus tracks one batch's progress, following the usual
// RunStatus shape.
type RunStatus struct {
	RunID            string
	TeamAName        string
	TeamBName        string
	TotalMatches     int
	CompletedMatches int
	Status           string
	StartTime        time.Time
	CompletedTime    *time.Time
	Results          []MatchOutcome
}

// MatchOutcome is one completed match's summary, kept in memory for the
// result endpoint alongside what's persisted to the store.
type MatchOutcome struct {
	MatchNumber int
	ResultKind  string
	Margin      int
	WinnerName  string
	Scorecard   string
}

// Runner holds the worker pool and in-memory status table.
type Runner struct {
	st      *store.Store
	workers int
	cfg     models.Config

	mu         sync.RWMutex
	activeRuns map[string]*RunStatus
}

// New constructs a Runner backed by st, fanning each batch across
// workers goroutines.
func New(st *store.Store, workers int, cfg models.Config) *Runner {
	if workers <= 0 {
		workers = 1
	}
	return &Runner{
		st:         st,
		workers:    workers,
		cfg:        cfg,
		activeRuns: make(map[string]*RunStatus),
	}
}

// GetRunStatus returns the in-memory status for a run, if still tracked.
func (r *Runner) GetRunStatus(runID string) (*RunStatus, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	status, ok := r.activeRuns[runID]
	return status, ok
}

// RunBatch executes totalMatches independent simulations of teamA v.
// teamB at venue, across the Runner's worker pool, persisting each
// result and the final aggregate. Intended to be launched with `go`.
func (r *Runner) RunBatch(runID string, teamA, teamB *models.Team, venue models.Venue, totalMatches int) {
	ctx := context.Background()

	r.mu.Lock()
	r.activeRuns[runID] = &RunStatus{
		RunID:        runID,
		TeamAName:    teamA.Name,
		TeamBName:    teamB.Name,
		TotalMatches: totalMatches,
		Status:       "running",
		StartTime:    time.Now(),
		Results:      make([]MatchOutcome, 0, totalMatches),
	}
	r.mu.Unlock()

	if r.st != nil {
		if err := r.st.CreateRun(ctx, runID, teamA.Name, teamB.Name, totalMatches); err != nil {
			log.Printf("matchrun: failed to create run %s: %v", runID, err)
			r.setStatus(runID, "error")
			return
		}
	}

	resultsChan := make(chan MatchOutcome, totalMatches)
	var wg sync.WaitGroup

	perWorker := totalMatches / r.workers
	remainder := totalMatches % r.workers
	matchNumber := 0

	for w := 0; w < r.workers; w++ {
		count := perWorker
		if w < remainder {
			count++
		}
		wg.Add(1)
		start := matchNumber
		matchNumber += count

		go func(startNumber, count int) {
			defer wg.Done()
			for j := 0; j < count; j++ {
				n := startNumber + j + 1
				resultsChan <- r.runOne(runID, n, teamA, teamB, venue)
				r.bumpProgress(ctx, runID)
			}
		}(start, count)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	var results []MatchOutcome
	for result := range resultsChan {
		results = append(results, result)
		if r.st != nil {
			err := r.st.StoreMatchResult(ctx, store.MatchOutcome{
				RunID: runID, MatchNumber: result.MatchNumber, ResultKind: result.ResultKind,
				Margin: result.Margin, WinnerName: result.WinnerName, Scorecard: result.Scorecard,
			})
			if err != nil {
				log.Printf("matchrun: failed to store match result: %v", err)
			}
		}
	}

	aggregate := aggregate(runID, results)
	if r.st != nil {
		if err := r.st.StoreAggregatedResult(ctx, aggregate); err != nil {
			log.Printf("matchrun: failed to store aggregate for %s: %v", runID, err)
		}
	}

	r.mu.Lock()
	if status, ok := r.activeRuns[runID]; ok {
		status.Status = "completed"
		status.CompletedMatches = totalMatches
		completed := time.Now()
		status.CompletedTime = &completed
		status.Results = results
	}
	r.mu.Unlock()

	if r.st != nil {
		r.st.UpdateRunStatus(ctx, runID, "completed")
	}
}

// matchSeed derives a per-match RNG seed from the run ID and match
// number, so re-running a persisted run ID reproduces the same N
// transcripts.
func matchSeed(runID string, matchNumber int) int64 {
	h := fnv.New64a()
	h.Write([]byte(runID))
	return int64(h.Sum64()) + int64(matchNumber)*2654435761
}

// runOne simulates a single match end to end with its own RNG stream so
// concurrent matches never share mutable sampling state.
func (r *Runner) runOne(runID string, matchNumber int, teamA, teamB *models.Team, venue models.Venue) MatchOutcome {
	rng := rand.New(rand.NewSource(matchSeed(runID, matchNumber)))

	match := simulation.NewMatch(teamA, teamB, venue, r.cfg, rng)
	result, err := match.Simulate()
	if err != nil {
		log.Printf("matchrun: run %s match %d failed: %v", runID, matchNumber, err)
		return MatchOutcome{MatchNumber: matchNumber, ResultKind: "error"}
	}

	winnerName := ""
	if result.Winner != nil {
		winnerName = result.Winner.Name
	}
	return MatchOutcome{
		MatchNumber: matchNumber,
		ResultKind:  result.Kind,
		Margin:      result.Margin,
		WinnerName:  winnerName,
		Scorecard:   scorecard.WriteMatch(match),
	}
}

func (r *Runner) setStatus(runID, status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.activeRuns[runID]; ok {
		s.Status = status
	}
}

func (r *Runner) bumpProgress(ctx context.Context, runID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.activeRuns[runID]
	if !ok {
		return
	}
	s.CompletedMatches++
	if r.st != nil && (s.CompletedMatches%10 == 0 || s.CompletedMatches == s.TotalMatches) {
		completed := s.CompletedMatches
		go r.st.UpdateProgress(ctx, runID, completed)
	}
}

func aggregate(runID string, results []MatchOutcome) *store.AggregatedResult {
	agg := &store.AggregatedResult{
		RunID:            runID,
		TotalMatches:     len(results),
		WinCounts:        make(map[string]int),
		ResultKindCounts: make(map[string]int),
		Statistics:       make(map[string]float64),
	}
	var totalMargin float64
	marginCount := 0
	for _, res := range results {
		agg.ResultKindCounts[res.ResultKind]++
		if res.WinnerName != "" {
			agg.WinCounts[res.WinnerName]++
		}
		if res.ResultKind != "error" {
			totalMargin += float64(res.Margin)
			marginCount++
		}
	}
	if marginCount > 0 {
		agg.Statistics["average_margin"] = totalMargin / float64(marginCount)
	}
	return agg
}
