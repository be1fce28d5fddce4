// Package migrations applies the versioned SQL files under sql/ to Postgres.
package migrations

import (
	"context"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/online-bazar/bazar-backend/logger"
)

//go:embed sql/*.sql
var embedded embed.FS

// advisoryLockKey serializes runners across instances sharing a database.
const advisoryLockKey int64 = 0x0ba2a4_5eed

var fileNamePattern = regexp.MustCompile(`^(\d{4})_([a-z0-9_]+)\.sql$`)

type Migration struct {
	Version  int
	Name     string
	SQL      string
	Checksum string
}

type Applied struct {
	Version   int
	Name      string
	Checksum  string
	AppliedAt time.Time
}

// Status is one row of the -status listing.
type Status struct {
	Version   int
	Name      string
	Applied   bool
	AppliedAt *time.Time
	Drifted   bool
}

func checksum(sql string) string {
	sum := sha256.Sum256([]byte(sql))
	return hex.EncodeToString(sum[:])
}

// Embedded returns the migrations compiled into the binary.
func Embedded() ([]Migration, error) {
	sub, err := fs.Sub(embedded, "sql")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// Load reads NNNN_name.sql files from the root of fsys, ordered by version.
func Load(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}

	seen := map[int]string{}
	var out []Migration
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".sql" {
			continue
		}
		m := fileNamePattern.FindStringSubmatch(e.Name())
		if m == nil {
			return nil, fmt.Errorf("migrations: malformed file name %q (want NNNN_name.sql)", e.Name())
		}
		version, _ := strconv.Atoi(m[1])
		if version == 0 {
			return nil, fmt.Errorf("migrations: %q: version must start at 0001", e.Name())
		}
		if prev, dup := seen[version]; dup {
			return nil, fmt.Errorf("migrations: duplicate version %04d in %q and %q", version, prev, e.Name())
		}
		seen[version] = e.Name()

		body, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, err
		}
		out = append(out, Migration{
			Version:  version,
			Name:     m[2],
			SQL:      string(body),
			Checksum: checksum(string(body)),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// Plan splits migs into those still to apply and those whose file changed
// after being applied.
func Plan(migs []Migration, applied map[int]Applied) (pending, drifted []Migration) {
	for _, m := range migs {
		a, ok := applied[m.Version]
		if !ok {
			pending = append(pending, m)
			continue
		}
		if a.Checksum != m.Checksum {
			drifted = append(drifted, m)
		}
	}
	return pending, drifted
}

const createTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version    INTEGER PRIMARY KEY,
    name       TEXT        NOT NULL,
    checksum   TEXT        NOT NULL,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

func loadApplied(ctx context.Context, q interface {
	Query(context.Context, string, ...any) (pgx.Rows, error)
}) (map[int]Applied, error) {
	rows, err := q.Query(ctx, `SELECT version, name, checksum, applied_at FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	applied, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Applied, error) {
		var a Applied
		err := row.Scan(&a.Version, &a.Name, &a.Checksum, &a.AppliedAt)
		return a, err
	})
	if err != nil {
		return nil, err
	}
	out := make(map[int]Applied, len(applied))
	for _, a := range applied {
		out[a.Version] = a
	}
	return out, nil
}

// Run applies every pending migration, each in its own transaction, while
// holding a session advisory lock.
func Run(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error {
	if pool == nil {
		return errors.New("migrations: nil pool")
	}
	migs, err := Embedded()
	if err != nil {
		return err
	}

	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("migrations: acquire connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, `SELECT pg_advisory_lock($1)`, advisoryLockKey); err != nil {
		return fmt.Errorf("migrations: advisory lock: %w", err)
	}
	defer func() {
		// The parent context may already be cancelled.
		unlockCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := conn.Exec(unlockCtx, `SELECT pg_advisory_unlock($1)`, advisoryLockKey); err != nil {
			log.Warn("[migrations] advisory unlock failed", "error", err)
		}
	}()

	if _, err := conn.Exec(ctx, createTable); err != nil {
		return fmt.Errorf("migrations: create schema_migrations: %w", err)
	}
	applied, err := loadApplied(ctx, conn)
	if err != nil {
		return fmt.Errorf("migrations: read applied: %w", err)
	}

	pending, drifted := Plan(migs, applied)
	for _, m := range drifted {
		log.Warn("[migrations] applied migration changed on disk, not re-running",
			"version", m.Version, "name", m.Name,
			"applied_checksum", applied[m.Version].Checksum, "file_checksum", m.Checksum)
	}

	for _, m := range pending {
		start := time.Now()
		err := pgx.BeginFunc(ctx, conn, func(tx pgx.Tx) error {
			// No arguments: the simple protocol allows multi-statement files.
			if _, err := tx.Exec(ctx, m.SQL); err != nil {
				return err
			}
			_, err := tx.Exec(ctx,
				`INSERT INTO schema_migrations (version, name, checksum) VALUES ($1, $2, $3)`,
				m.Version, m.Name, m.Checksum)
			return err
		})
		if err != nil {
			return fmt.Errorf("migrations: %04d_%s: %w", m.Version, m.Name, err)
		}
		log.Info("[migrations] applied", "version", m.Version, "name", m.Name, "duration_ms", time.Since(start).Milliseconds())
	}

	if len(pending) == 0 {
		log.Info("[migrations] schema up to date", "version", latest(migs))
	}
	return nil
}

// StatusReport lists every known migration with its applied state.
func StatusReport(ctx context.Context, pool *pgxpool.Pool) ([]Status, error) {
	migs, err := Embedded()
	if err != nil {
		return nil, err
	}
	if _, err := pool.Exec(ctx, createTable); err != nil {
		return nil, err
	}
	applied, err := loadApplied(ctx, pool)
	if err != nil {
		return nil, err
	}
	return buildStatus(migs, applied), nil
}

func buildStatus(migs []Migration, applied map[int]Applied) []Status {
	out := make([]Status, 0, len(migs))
	for _, m := range migs {
		s := Status{Version: m.Version, Name: m.Name}
		if a, ok := applied[m.Version]; ok {
			at := a.AppliedAt
			s.Applied = true
			s.AppliedAt = &at
			s.Drifted = a.Checksum != m.Checksum
		}
		out = append(out, s)
	}
	return out
}

func latest(migs []Migration) int {
	if len(migs) == 0 {
		return 0
	}
	return migs[len(migs)-1].Version
}
