// table-stats prints the row count of every star-schema table and how many
// songplays resolved to a known song.
//
// Usage: go run ./scripts/table-stats
//
// Database connection: same config file and PG* environment variables as the loader
//
// Flags:
//
//	-config  Path to YAML config file (default: config.yaml, optional)
//	-json    Print the counts as a JSON object instead of a table
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/ekaya-inc/sparkify-etl/pkg/config"
	"github.com/ekaya-inc/sparkify-etl/pkg/database"
	"github.com/ekaya-inc/sparkify-etl/pkg/logging"
	"github.com/ekaya-inc/sparkify-etl/pkg/sql"
)

type stats struct {
	Tables        map[string]int64 `json:"tables"`
	ResolvedPlays int64            `json:"resolved_songplays"`
}

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "Path to YAML config file (optional)")
	asJSON := flag.Bool("json", false, "Print the counts as JSON")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := database.Connect(ctx, &database.Config{
		URL:            cfg.Database.ConnectionString(),
		ConnectTimeout: cfg.Database.ConnectTimeout,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %s\n", logging.SanitizeError(err))
		os.Exit(1)
	}
	defer db.Close(ctx)

	counts, err := database.TableCounts(ctx, db.Conn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to count rows: %v\n", err)
		os.Exit(1)
	}

	var resolved int64
	if err := db.Conn.QueryRow(ctx, "SELECT COUNT(*) FROM songplays WHERE song_id IS NOT NULL").Scan(&resolved); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to count resolved songplays: %v\n", err)
		os.Exit(1)
	}

	if *asJSON {
		out, err := json.MarshalIndent(stats{Tables: counts, ResolvedPlays: resolved}, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
		return
	}

	for _, table := range sql.TableNames {
		fmt.Printf("%-10s %d\n", table, counts[table])
	}
	plays := counts[sql.SongplaysTable]
	if plays > 0 {
		fmt.Printf("\nResolved songplays: %d of %d (%.1f%%)\n", resolved, plays, 100*float64(resolved)/float64(plays))
	} else {
		fmt.Println("\nResolved songplays: 0 of 0")
	}
}
