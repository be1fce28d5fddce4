package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/migrations"
)

func init() {
	_ = godotenv.Load()
}

// Usage:
//
//	go run ./cmd/migrate          apply pending migrations
//	go run ./cmd/migrate -status  list applied and pending migrations
func main() {
	status := flag.Bool("status", false, "list migrations instead of applying them")
	flag.Parse()

	config.InitLogger()
	defer config.Log.Sync()

	config.InitDB()
	defer config.CloseDB()

	ctx, cancel := config.WithCustomTimeout(config.MigrationTimeout)
	defer cancel()

	if *status {
		rows, err := migrations.StatusReport(ctx, config.Pool)
		if err != nil {
			config.Log.Fatal("[migrate] status failed", "error", err)
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "VERSION\tNAME\tSTATE\tAPPLIED AT")
		for _, r := range rows {
			state, at := "pending", "-"
			if r.Applied {
				state = "applied"
				at = r.AppliedAt.UTC().Format("2006-01-02 15:04:05")
			}
			if r.Drifted {
				state = "drifted"
			}
			fmt.Fprintf(w, "%04d\t%s\t%s\t%s\n", r.Version, r.Name, state, at)
		}
		_ = w.Flush()
		return
	}

	if err := migrations.Run(ctx, config.Pool, config.Log); err != nil {
		config.Log.Fatal("[migrate] failed", "error", err)
	}
}
