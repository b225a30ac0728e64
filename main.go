package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"cricket-engine/matchrun"
	"cricket-engine/models"
	"cricket-engine/store"
)

// Server is the cricket engine's HTTP surface: it accepts match-batch
// requests, reports progress, and serves aggregated results once a run
// completes.
type Server struct {
	st         *store.Store
	router     *mux.Router
	httpServer *http.Server
	config     models.Config
	runner     *matchrun.Runner
}

// MatchRunRequest is the request body for POST /matches.
type MatchRunRequest struct {
	TeamA   models.Team  `json:"team_a"`
	TeamB   models.Team  `json:"team_b"`
	Venue   models.Venue `json:"venue"`
	Matches int          `json:"matches,omitempty"`
}

// MatchRunResponse acknowledges a started batch.
type MatchRunResponse struct {
	RunID     string    `json:"run_id"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// MatchRunStatusResponse reports a batch's progress.
type MatchRunStatusResponse struct {
	RunID            string     `json:"run_id"`
	Status           string     `json:"status"`
	TotalMatches     int        `json:"total_matches"`
	CompletedMatches int        `json:"completed_matches"`
	Progress         float64    `json:"progress"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

func NewServer(cfg models.Config) (*Server, error) {
	ctx := context.Background()

	dsn := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	st, err := store.New(ctx, dsn, int32(cfg.Workers*2), int32(cfg.Workers/2))
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	runner := matchrun.New(st, cfg.Workers, cfg)

	s := &Server{
		st:     st,
		config: cfg,
		router: mux.NewRouter(),
		runner: runner,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.healthHandler).Methods("GET")
	s.router.HandleFunc("/matches", s.createMatchRunHandler).Methods("POST")
	s.router.HandleFunc("/matches/{id}/status", s.matchRunStatusHandler).Methods("GET")
	s.router.HandleFunc("/matches/{id}/result", s.matchRunResultHandler).Methods("GET")

	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.recoveryMiddleware)
}

// Start wraps the router with CORS and gzip compression, then serves.
func (s *Server) Start() error {
	c := cors.New(cors.Options{
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Accept"},
		MaxAge:         600,
	})

	handler := handlers.CompressHandler(c.Handler(s.router))

	s.httpServer = &http.Server{
		Addr:         ":" + s.config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Starting cricket engine on port %s with %d workers", s.config.Port, s.config.Workers)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down cricket engine...")
	s.st.Close()
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":   "healthy",
		"time":     time.Now().UTC(),
		"workers":  s.config.Workers,
		"database": "connected",
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.st.Ping(ctx); err != nil {
		health["database"] = "disconnected"
		health["status"] = "unhealthy"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	writeJSON(w, health)
}

func (s *Server) createMatchRunHandler(w http.ResponseWriter, r *http.Request) {
	var req MatchRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.TeamA.Validate(); err != nil {
		http.Error(w, "team_a: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := req.TeamB.Validate(); err != nil {
		http.Error(w, "team_b: "+err.Error(), http.StatusBadRequest)
		return
	}

	matches := req.Matches
	if matches <= 0 {
		matches = 1
	}

	runID := uuid.New().String()
	go s.runner.RunBatch(runID, &req.TeamA, &req.TeamB, req.Venue, matches)

	writeJSON(w, MatchRunResponse{
		RunID:     runID,
		Status:    "started",
		Message:   fmt.Sprintf("match run started with %d matches", matches),
		CreatedAt: time.Now().UTC(),
	})
}

func (s *Server) matchRunStatusHandler(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["id"]

	status, ok := s.runner.GetRunStatus(runID)
	if !ok {
		http.Error(w, "match run not found", http.StatusNotFound)
		return
	}

	writeJSON(w, MatchRunStatusResponse{
		RunID:            status.RunID,
		Status:           status.Status,
		TotalMatches:     status.TotalMatches,
		CompletedMatches: status.CompletedMatches,
		Progress:         float64(status.CompletedMatches) / float64(status.TotalMatches),
		StartedAt:        status.StartTime,
		CompletedAt:      status.CompletedTime,
	})
}

func (s *Server) matchRunResultHandler(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["id"]

	if status, ok := s.runner.GetRunStatus(runID); ok && status.Status != "completed" {
		http.Error(w, "match run not yet complete", http.StatusAccepted)
		return
	}

	aggregate, err := s.st.GetRunResult(r.Context(), runID)
	if err != nil {
		http.Error(w, "results not available", http.StatusNotFound)
		return
	}
	writeJSON(w, aggregate)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf("%s %s %d %v", r.Method, r.RequestURI, lrw.statusCode, time.Since(start))
	})
}

func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("panic recovered: %v", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("error encoding JSON: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func main() {
	cfg := models.LoadConfig()

	server, err := NewServer(cfg)
	if err != nil {
		log.Fatal("Failed to create server:", err)
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Fatal("Server shutdown failed:", err)
		}
		log.Println("Server shutdown complete")
	}()

	if err := server.Start(); err != nil && err != http.ErrServerClosed {
		log.Fatal("Server failed to start:", err)
	}
}
