package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/waddle/config"
)

func loadDefaults(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

func TestParamVectorRoundTrip(t *testing.T) {
	cfg := loadDefaults(t)
	pv := NewParamVector(cfg)

	def := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(def))
	for i := range def {
		if math.Abs(back[i]-def[i]) > 1e-12 {
			t.Errorf("%s: round trip %v -> %v", pv.Specs[i].Name, def[i], back[i])
		}
	}

	got := pv.ExtractFromConfig(cfg)
	want := []float64{cfg.Character.InputSpeed, cfg.Character.BoostSpeed, cfg.Character.SlideDeceleration}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ExtractFromConfig[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestApplyToConfigClampsAndRefreshes(t *testing.T) {
	cfg := loadDefaults(t)
	pv := NewParamVector(cfg)
	before := cfg.Derived.MaxSlideTicks

	if err := pv.ApplyToConfig(cfg, []float64{100, 40, 0.5}); err != nil {
		t.Fatalf("ApplyToConfig: %v", err)
	}
	if cfg.Character.InputSpeed != 10 {
		t.Errorf("input_speed = %v, want clamped to 10", cfg.Character.InputSpeed)
	}
	if cfg.Derived.MaxSlideTicks >= before {
		t.Errorf("max slide ticks = %d, want fewer than %d after faster deceleration", cfg.Derived.MaxSlideTicks, before)
	}
}

func TestScenarioMeasuresMovement(t *testing.T) {
	cfg := loadDefaults(t)
	pv := NewParamVector(cfg)
	fe := NewFitnessEvaluator(pv, []int64{42}, cfg, Targets{WalkSpeed: 4, BoostSpeed: 25})

	fitness := fe.Evaluate(pv.DefaultVector())
	r := fe.LastResult()

	if math.Abs(r.walkSpeed-cfg.Character.InputSpeed) > 0.2 {
		t.Errorf("walk speed = %v, want ~%v", r.walkSpeed, cfg.Character.InputSpeed)
	}
	if math.Abs(r.boostSpeed-cfg.Character.BoostSpeed) > 1e-6 {
		t.Errorf("boost speed = %v, want %v", r.boostSpeed, cfg.Character.BoostSpeed)
	}
	if r.glideDistance <= 0 || r.glideTicks < 1 {
		t.Errorf("expected a glide after release, got %v over %d ticks", r.glideDistance, r.glideTicks)
	}
	if fitness > 0.01 {
		t.Errorf("fitness = %v, want near zero when targets match the tuning", fitness)
	}
}

func TestRelErr2(t *testing.T) {
	if got := relErr2(5, 4); math.Abs(got-0.0625) > 1e-12 {
		t.Errorf("relErr2(5, 4) = %v, want 0.0625", got)
	}
	if got := relErr2(5, 0); got != 0 {
		t.Errorf("relErr2 with no target = %v, want 0", got)
	}
}
