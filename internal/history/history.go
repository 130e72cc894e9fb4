// apps/go-solver/internal/history/history.go
//
// Session history for the solver.
// Responsibilities:
//   - Opening SQLite with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations from sql/*.sql (idempotent, recorded in _migrations).
//   - Recording finished sessions and keeping played/wins/streak totals.
//
// The win rate reported here replaces the statistic a web board shows after
// each game.

package history

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/session"
)

//go:embed sql/*.sql
var migrations embed.FS

// Store persists session results.
type Store struct {
	db *sql.DB
}

// Stats are running totals over every recorded session.
type Stats struct {
	GamesPlayed int     `json:"gamesPlayed"`
	Wins        int     `json:"wins"`
	Streak      int     `json:"streak"`
	BestStreak  int     `json:"bestStreak"`
	WinRate     float64 `json:"winRate"` // percent, two decimals
}

// Open opens (and creates if missing) the database at dsn and migrates it.
func Open(dsn string) (*Store, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error { return s.db.Close() }

// openDB opens a SQLite database file, creating its directory if needed.
func openDB(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	// SQLite allows one writer; keep a single connection so WAL pragmas stick.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies embedded migrations in lexical order, each in its own
// transaction, skipping those already listed in _migrations.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	var files []string
	if err := fs.WalkDir(migrations, "sql", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".sql") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("walk sql dir: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// Record stores a finished session and updates the totals.
// Sessions that did not end in a win or loss are ignored.
func (s *Store) Record(ctx context.Context, r session.Result) error {
	if !r.State.Terminal() {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
        INSERT OR IGNORE INTO sessions
            (id, state, rounds, solution, guesses, removed, learned, started_at, finished_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, string(r.State), r.Rounds, r.Solution,
		strings.Join(r.Guesses, ","), strings.Join(r.Removed, ","), r.Learned,
		r.StartedAt.UTC().Format(time.RFC3339Nano), r.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		log.Debug().Str("session", r.ID).Msg("session already recorded")
		return tx.Commit()
	}
	if err := bumpStats(ctx, tx, r.State == session.StateWin); err != nil {
		return fmt.Errorf("bump stats: %w", err)
	}
	return tx.Commit()
}

// bumpStats increments games played; updates wins and streak based on result (within tx).
func bumpStats(ctx context.Context, tx *sql.Tx, won bool) error {
	var gp, wins, streak, best int
	row := tx.QueryRowContext(ctx, `SELECT games_played, wins, streak, best_streak FROM stats WHERE id=1`)
	if err := row.Scan(&gp, &wins, &streak, &best); err != nil {
		return err
	}
	gp++
	if won {
		wins++
		streak++
	} else {
		streak = 0
	}
	if streak > best {
		best = streak
	}
	_, err := tx.ExecContext(ctx, `UPDATE stats SET games_played=?, wins=?, streak=?, best_streak=? WHERE id=1`,
		gp, wins, streak, best)
	return err
}

// Stats returns the running totals.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT games_played, wins, streak, best_streak FROM stats WHERE id=1`,
	).Scan(&st.GamesPlayed, &st.Wins, &st.Streak, &st.BestStreak)
	if err != nil {
		return st, err
	}
	if st.GamesPlayed > 0 {
		st.WinRate = math.Round(float64(st.Wins)*100*100/float64(st.GamesPlayed)) / 100
	}
	return st, nil
}

// Recent returns the latest sessions, newest first.
// A limit of 0 or less means 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]session.Result, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, state, rounds, solution, guesses, removed, learned, started_at, finished_at
        FROM sessions
        ORDER BY finished_at DESC, id DESC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]session.Result, 0, min(limit, 100))
	for rows.Next() {
		var (
			r                 session.Result
			state             string
			guesses, removed  string
			started, finished string
		)
		if err := rows.Scan(&r.ID, &state, &r.Rounds, &r.Solution, &guesses, &removed, &r.Learned, &started, &finished); err != nil {
			return nil, err
		}
		r.State = session.State(state)
		r.Guesses = splitList(guesses)
		r.Removed = splitList(removed)
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		r.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		out = append(out, r)
	}
	return out, rows.Err()
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
