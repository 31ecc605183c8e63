package main

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	modeChart = "chart"
	modeDaily = "daily"
)

type Config struct {
	Mode string

	// chart
	BirthDateTime string
	Latitude      float64
	Longitude     float64
	Recent        []string

	// daily
	AstroProfile string
	Cycle        string
	Role         string

	// shared
	UserSeed string
	DayKey   string
	DBPath   string
	Pretty   bool
}

func (c Config) Validate() error {
	switch c.Mode {
	case modeChart:
		if c.BirthDateTime == "" {
			return errors.New("missing -birth")
		}
		if math.IsNaN(c.Latitude) || c.Latitude < -90 || c.Latitude > 90 {
			return fmt.Errorf("-lat must be within [-90, 90], got %v", c.Latitude)
		}
		if math.IsNaN(c.Longitude) || c.Longitude < -180 || c.Longitude > 180 {
			return fmt.Errorf("-lon must be within [-180, 180], got %v", c.Longitude)
		}
	case modeDaily:
		if c.AstroProfile == "" {
			return errors.New("missing -profile")
		}
	case "":
		return errors.New("missing command: chart or daily")
	default:
		return fmt.Errorf("unknown command %q: want chart or daily", c.Mode)
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		Cycle: "day",
	}
}

func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
