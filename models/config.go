package models

import (
	"fmt"
	"os"
	"runtime"
)

// Config is the engine's immutable configuration, constructed once and
// threaded through Match/Innings construction. Replaces the source's
// global mutable toggles (Innings::NO_INNS, AUSTRALIAN_STYLE) with a
// single passed-in struct.
type Config struct {
	// Simulation knobs.
	FollowOnDeficit   int     // minimum deficit (runs) to make follow-on eligible, default 200
	WicketkeeperProb  float64 // C_WK_PROB, default 0.5
	LegacyTakeOffRule bool    // reproduce the historical `r < 1/p_off` condition instead of the corrected default
	DeclareLeadMin    int     // minimum lead before a declaration becomes possible, default 350
	DeclareOversMin   int     // minimum overs batted before a declaration becomes possible, default 80
	MaxInningsOvers   int     // overs at which an innings is called a draw for time, default 150
	Fatigue           FatigueConfig

	// Service knobs (ambient HTTP/worker-pool layer).
	Port           string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	Workers        int
	AllowedOrigins []string
}

// DefaultConfig returns the engine's documented default policy.
func DefaultConfig() Config {
	return Config{
		FollowOnDeficit:   200,
		WicketkeeperProb:  0.5,
		LegacyTakeOffRule: false,
		DeclareLeadMin:    350,
		DeclareOversMin:   80,
		MaxInningsOvers:   150,
		Fatigue:           DefaultFatigueConfig(),
	}
}

// DeclarationLeadThreshold is the minimum lead before a declaration
// becomes possible.
func (c Config) DeclarationLeadThreshold() int {
	if c.DeclareLeadMin <= 0 {
		return 350
	}
	return c.DeclareLeadMin
}

// DeclarationMinOvers is the minimum overs batted before a declaration
// becomes possible.
func (c Config) DeclarationMinOvers() int {
	if c.DeclareOversMin <= 0 {
		return 80
	}
	return c.DeclareOversMin
}

// MaxOversPerInnings bounds an innings' length for time-exhausted draws.
func (c Config) MaxOversPerInnings() int {
	if c.MaxInningsOvers <= 0 {
		return 150
	}
	return c.MaxInningsOvers
}

// LoadConfig builds a Config from the process environment, mirroring
// a getEnv/NewConfig pattern, layered on top of
// DefaultConfig for the simulation knobs.
func LoadConfig() Config {
	cfg := DefaultConfig()

	workers := runtime.NumCPU()
	if envWorkers := os.Getenv("WORKERS"); envWorkers != "" {
		fmt.Sscanf(envWorkers, "%d", &workers)
	}
	cfg.Workers = workers

	cfg.Port = getEnv("PORT", "8081")
	cfg.DBHost = getEnv("DB_HOST", "localhost")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBUser = getEnv("DB_USER", "cricket_user")
	cfg.DBPassword = getEnv("DB_PASSWORD", "cricket_pass")
	cfg.DBName = getEnv("DB_NAME", "cricket_sim")

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = []string{origins}
	} else {
		cfg.AllowedOrigins = []string{"*"}
	}

	if envLegacy := os.Getenv("LEGACY_TAKE_OFF_RULE"); envLegacy == "true" {
		cfg.LegacyTakeOffRule = true
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
