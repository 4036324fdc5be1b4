package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mcdev12/matchday/go/internal/dbconfig"
	"github.com/mcdev12/matchday/go/internal/fixtures/db"
	"github.com/mcdev12/matchday/go/internal/models"
	"github.com/mcdev12/matchday/go/internal/schedule"
)

func main() {
	path := flag.String("file", "go/internal/assets/fixtures.json", "fixtures JSON snapshot")
	replace := flag.Bool("replace", false, "overwrite fixtures that already exist")
	flag.Parse()

	// 1) Load the JSON snapshot
	data, err := os.ReadFile(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read JSON: %v\n", err)
		os.Exit(1)
	}
	var fixtures []models.Fixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal JSON: %v\n", err)
		os.Exit(1)
	}

	// 2) Connect using shared dbconfig
	ctx := context.Background()
	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, db.Schema); err != nil {
		fmt.Fprintf(os.Stderr, "create schema: %v\n", err)
		os.Exit(1)
	}

	conflict := "ON CONFLICT (id) DO NOTHING"
	if *replace {
		conflict = `ON CONFLICT (id) DO UPDATE SET
              home_team = EXCLUDED.home_team, away_team = EXCLUDED.away_team,
              venue = EXCLUDED.venue, league = EXCLUDED.league,
              kickoff_ts = EXCLUDED.kickoff_ts, kickoff_date = EXCLUDED.kickoff_date,
              is_mock = EXCLUDED.is_mock, events = EXCLUDED.events, updated_at = NOW()`
	}

	// 3) Upsert and count
	var (
		total    = len(fixtures)
		inserted int
		skipped  int
		errs     int
	)

	for _, f := range fixtures {
		if f.ID == "" || f.HomeTeam == "" || f.AwayTeam == "" {
			fmt.Fprintf(os.Stderr, "skipping fixture without id or teams: %+v\n", f)
			errs++
			continue
		}
		if f.Timestamp <= 0 && f.Date != "" {
			if _, ok := schedule.ParseDate(f.Date); !ok {
				fmt.Fprintf(os.Stderr, "warning: fixture %s has unparseable date %q\n", f.ID, f.Date)
			}
		}

		var events []byte
		if len(f.Events) > 0 {
			if events, err = json.Marshal(f.Events); err != nil {
				fmt.Fprintf(os.Stderr, "error encoding events for fixture %s: %v\n", f.ID, err)
				errs++
				continue
			}
		}

		cmdTag, err := pool.Exec(ctx, `
            INSERT INTO fixtures (
              id, home_team, away_team, venue, league,
              kickoff_ts, kickoff_date, is_mock, events
            ) VALUES (
              $1, $2, $3, NULLIF($4, ''), NULLIF($5, ''),
              NULLIF($6::bigint, 0), NULLIF($7, ''), $8, $9
            )
            `+conflict,
			f.ID, f.HomeTeam, f.AwayTeam, f.Venue, f.League,
			f.Timestamp, f.Date, f.Mock, events,
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error inserting fixture %s: %v\n", f.ID, err)
			errs++
			continue
		}
		if cmdTag.RowsAffected() == 1 {
			inserted++
		} else {
			skipped++
		}
	}

	// 4) Print summary
	fmt.Printf(
		"Fixtures seed complete: %d total, %d upserted, %d skipped, %d errors\n",
		total, inserted, skipped, errs,
	)
}
