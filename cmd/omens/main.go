// Command omens prints a chart reading or the daily lines as JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/talgya/star-omens/internal/astro"
	"github.com/talgya/star-omens/internal/daily"
	"github.com/talgya/star-omens/internal/engine"
	"github.com/talgya/star-omens/internal/ephemeris"
	"github.com/talgya/star-omens/internal/persistence"
)

func main() {
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	if err := run(cfg, os.Stdout, time.Now); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)

	if len(args) > 0 && (args[0] == modeChart || args[0] == modeDaily) {
		cfg.Mode = args[0]
		args = args[1:]
	}

	var recent string
	fs.StringVar(&cfg.BirthDateTime, "birth", "", "Birth date/time (ISO-8601 or e.g. 7/15/1990 2:30 PM); date only means time unknown")
	fs.Float64Var(&cfg.Latitude, "lat", 0, "Birth latitude in degrees, north positive")
	fs.Float64Var(&cfg.Longitude, "lon", 0, "Birth longitude in degrees, east positive")
	fs.StringVar(&recent, "recent", "", "Comma-separated template IDs to avoid")
	fs.StringVar(&cfg.AstroProfile, "profile", "", "Astro profile string for daily lines (e.g. sun:leo|moon:aries)")
	fs.StringVar(&cfg.Cycle, "cycle", cfg.Cycle, "Daily cycle: day, week, month or year")
	fs.StringVar(&cfg.Role, "role", "", "Only print this role's daily lines (seer, scribe, keeper, trickster)")
	fs.StringVar(&cfg.UserSeed, "seed", "", "User seed; defaults to a key derived from birth data")
	fs.StringVar(&cfg.DayKey, "day", "", "Day key override (YYYY-MM-DD); defaults to today in UTC")
	fs.StringVar(&cfg.DBPath, "db", "", "SQLite file for omen history (optional)")
	fs.BoolVar(&cfg.Pretty, "pretty", false, "Pretty-print JSON")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage:\n  %s chart|daily [flags]\n\nFlags:\n", filepath.Base(os.Args[0]))
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output(), "\nExamples:")
		fmt.Fprintln(fs.Output(), "  omens chart -birth 1990-07-15T14:30:00Z -lat 40.7128 -lon -74.006 -pretty")
		fmt.Fprintln(fs.Output(), "  omens daily -profile 'sun:cancer|moon:aries' -cycle week")
	}

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.Mode == "" && fs.NArg() > 0 {
		cfg.Mode = fs.Arg(0)
	}
	cfg.Recent = splitList(recent)
	if cfg.DBPath != "" {
		cfg.DBPath = filepath.Clean(cfg.DBPath)
	}
	return cfg, nil
}

func run(cfg Config, out io.Writer, now func() time.Time) error {
	opts := []engine.Option{engine.WithClock(now)}
	if cfg.DBPath != "" {
		db, err := persistence.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		opts = append(opts, engine.WithHistory(db), engine.WithChartStore(db))
	}
	eng := engine.New(astro.NewCalculator(ephemeris.NewKepler()), nil, nil, opts...)

	var result any
	switch cfg.Mode {
	case modeChart:
		reading, err := eng.Chart(engine.ChartRequest{
			BirthDateTime:     cfg.BirthDateTime,
			Latitude:          cfg.Latitude,
			Longitude:         cfg.Longitude,
			UserSeed:          cfg.UserSeed,
			DayKey:            cfg.DayKey,
			RecentTemplateIDs: cfg.Recent,
		})
		if err != nil {
			return err
		}
		result = reading
	case modeDaily:
		req := engine.DailyRequest{
			AstroProfile: cfg.AstroProfile,
			UserSeed:     cfg.UserSeed,
			DayKey:       cfg.DayKey,
			Cycle:        cfg.Cycle,
		}
		if cfg.Role == "" {
			result = eng.Daily(req)
			break
		}
		role, ok := daily.ParseRole(cfg.Role)
		if !ok {
			return fmt.Errorf("unknown role %q", cfg.Role)
		}
		result = eng.DailyRole(role, req)
	default:
		return fmt.Errorf("unknown command %q", cfg.Mode)
	}

	enc := json.NewEncoder(out)
	if cfg.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}
