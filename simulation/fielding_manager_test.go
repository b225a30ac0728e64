package simulation

import (
	"math/rand"
	"testing"

	"cricket-engine/models"
)

func newTestFieldingManager(t *testing.T) (*FieldingManager, *Sampler) {
	t.Helper()
	team := newTestTeam("Away")
	fm := NewFieldingManager(team, models.DefaultConfig())
	return fm, NewSampler(rand.New(rand.NewSource(11)))
}

func TestSelectCatcherNoFielderModes(t *testing.T) {
	fm, sampler := newTestFieldingManager(t)
	bowler := fm.Players[4]
	for _, mode := range []models.DismissalMode{models.Bowled, models.LBW, models.CaughtAndBowled} {
		fielder, err := fm.SelectCatcher(sampler, bowler, mode)
		if err != nil {
			t.Fatalf("SelectCatcher(%s): %v", mode, err)
		}
		if fielder != nil {
			t.Errorf("SelectCatcher(%s) = %s, want nil", mode, fielder.FullName)
		}
	}
}

func TestSelectCatcherStumpedIsKeeper(t *testing.T) {
	fm, sampler := newTestFieldingManager(t)
	fielder, err := fm.SelectCatcher(sampler, fm.Players[4], models.Stumped)
	if err != nil {
		t.Fatalf("SelectCatcher: %v", err)
	}
	if fielder != fm.Players[fm.KeeperIdx] {
		t.Errorf("stumping credited to %s, want the keeper", fielder.FullName)
	}
}

func TestSelectCatcherCaughtExcludesBowler(t *testing.T) {
	fm, sampler := newTestFieldingManager(t)
	bowler := fm.Players[4]
	for i := 0; i < 200; i++ {
		fielder, err := fm.SelectCatcher(sampler, bowler, models.Caught)
		if err != nil {
			t.Fatalf("SelectCatcher: %v", err)
		}
		if fielder == nil {
			t.Fatal("caught must credit a fielder")
		}
		if fielder == bowler {
			t.Fatal("caught must never credit the bowler (that is caught-and-bowled)")
		}
	}
}

func TestSelectCatcherRunOutMayIncludeBowler(t *testing.T) {
	fm, sampler := newTestFieldingManager(t)
	bowler := fm.Players[4]
	sawBowler := false
	for i := 0; i < 500; i++ {
		fielder, err := fm.SelectCatcher(sampler, bowler, models.RunOut)
		if err != nil {
			t.Fatalf("SelectCatcher: %v", err)
		}
		if fielder == nil {
			t.Fatal("run out must credit a fielder")
		}
		if fielder == bowler {
			sawBowler = true
		}
	}
	if !sawBowler {
		t.Error("run out should sometimes credit the bowler")
	}
}

func TestSelectCatcherKeeperWeighting(t *testing.T) {
	fm, sampler := newTestFieldingManager(t)
	bowler := fm.Players[4]
	keeper := fm.Players[fm.KeeperIdx]
	keeperCount := 0
	const n = 2000
	for i := 0; i < n; i++ {
		fielder, err := fm.SelectCatcher(sampler, bowler, models.Caught)
		if err != nil {
			t.Fatalf("SelectCatcher: %v", err)
		}
		if fielder == keeper {
			keeperCount++
		}
	}
	ratio := float64(keeperCount) / float64(n)
	if ratio < 0.44 || ratio > 0.56 {
		t.Errorf("keeper took %.3f of catches, want ~0.5", ratio)
	}
}

func TestSelectCatcherUnknownMode(t *testing.T) {
	fm, sampler := newTestFieldingManager(t)
	if _, err := fm.SelectCatcher(sampler, fm.Players[4], models.DismissalMode("hit_wicket")); err == nil {
		t.Fatal("expected InvalidInput for unknown dismissal mode")
	}
}

func TestSelectCatcherZeroKeeperWeightStillSelects(t *testing.T) {
	team := newTestTeam("Away")
	cfg := models.DefaultConfig()
	cfg.WicketkeeperProb = 0
	fm := NewFieldingManager(team, cfg)
	sampler := NewSampler(rand.New(rand.NewSource(13)))

	fielder, err := fm.SelectCatcher(sampler, fm.Players[4], models.Caught)
	if err != nil {
		t.Fatalf("SelectCatcher: %v", err)
	}
	if fielder == nil {
		t.Fatal("expected a fielder even with zero keeper weighting")
	}
}
