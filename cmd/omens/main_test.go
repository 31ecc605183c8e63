package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"path/filepath"
	"testing"
	"time"
)

func fixedClock() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }

func TestParseFlags_Chart(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("omens", flag.ContinueOnError)
	cfg, err := parseFlags(fs, []string{
		"chart",
		"-birth", "1990-07-15T14:30:00Z",
		"-lat", "40.7128",
		"-lon", "-74.006",
		"-recent", "general-well, love-tide,",
		"-seed", "alice",
		"-day", "2024-06-01",
		"-pretty",
	})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if cfg.Mode != modeChart {
		t.Fatalf("Mode=%q", cfg.Mode)
	}
	if cfg.BirthDateTime != "1990-07-15T14:30:00Z" {
		t.Fatalf("BirthDateTime=%q", cfg.BirthDateTime)
	}
	if cfg.Latitude != 40.7128 || cfg.Longitude != -74.006 {
		t.Fatalf("Latitude=%v Longitude=%v", cfg.Latitude, cfg.Longitude)
	}
	if len(cfg.Recent) != 2 || cfg.Recent[0] != "general-well" || cfg.Recent[1] != "love-tide" {
		t.Fatalf("Recent=%q", cfg.Recent)
	}
	if cfg.UserSeed != "alice" || cfg.DayKey != "2024-06-01" || !cfg.Pretty {
		t.Fatalf("UserSeed=%q DayKey=%q Pretty=%v", cfg.UserSeed, cfg.DayKey, cfg.Pretty)
	}
}

func TestParseFlags_DailyDefaults(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("omens", flag.ContinueOnError)
	cfg, err := parseFlags(fs, []string{"daily", "-profile", "sun:leo"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if cfg.Mode != modeDaily || cfg.AstroProfile != "sun:leo" || cfg.Cycle != "day" {
		t.Fatalf("cfg=%+v", cfg)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	if err := (Config{}).Validate(); err == nil {
		t.Fatalf("expected error for missing command")
	}
	if err := (Config{Mode: "horoscope"}).Validate(); err == nil {
		t.Fatalf("expected error for unknown command")
	}
	if err := (Config{Mode: modeChart}).Validate(); err == nil {
		t.Fatalf("expected error for missing -birth")
	}
	if err := (Config{Mode: modeChart, BirthDateTime: "1990-07-15", Latitude: 91}).Validate(); err == nil {
		t.Fatalf("expected error for latitude")
	}
	if err := (Config{Mode: modeDaily}).Validate(); err == nil {
		t.Fatalf("expected error for missing -profile")
	}
	if err := (Config{Mode: modeDaily, AstroProfile: "p"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRun_Chart(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg := Config{
		Mode:          modeChart,
		BirthDateTime: "1990-07-15T14:30:00Z",
		Latitude:      40.7128,
		Longitude:     -74.006,
		DBPath:        filepath.Join(t.TempDir(), "omens.db"),
	}
	if err := run(cfg, &out, fixedClock); err != nil {
		t.Fatalf("run: %v", err)
	}

	var got struct {
		DayKey  string `json:"dayKey"`
		Trinity []struct {
			Sign string `json:"sign"`
		} `json:"trinity"`
	}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.DayKey != "2024-06-01" {
		t.Fatalf("DayKey=%q", got.DayKey)
	}
	if len(got.Trinity) != 3 || got.Trinity[0].Sign != "cancer" {
		t.Fatalf("Trinity=%+v", got.Trinity)
	}
}

func TestRun_DailyRole(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg := Config{Mode: modeDaily, AstroProfile: "leo", UserSeed: "u1", DayKey: "2024-06-01", Cycle: "day", Role: "seer"}
	if err := run(cfg, &out, fixedClock); err != nil {
		t.Fatalf("run: %v", err)
	}

	var got struct {
		Omen    string `json:"omen"`
		Transit string `json:"transit"`
	}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Omen != "A bird crosses left to right. Trust the first instinct today." {
		t.Fatalf("Omen=%q", got.Omen)
	}

	cfg.Role = "oracle"
	if err := run(cfg, &out, fixedClock); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}

func TestRun_InvalidBirth(t *testing.T) {
	t.Parallel()

	cfg := Config{Mode: modeChart, BirthDateTime: "someday"}
	if err := run(cfg, &bytes.Buffer{}, fixedClock); err == nil {
		t.Fatalf("expected error")
	}
}
