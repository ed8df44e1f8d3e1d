// Package cache memoizes internal/types.Assign outcomes in a SQLite
// database via modernc.org/sqlite, a pure-Go driver. A cache sits outside
// the pure engine and is only ever allowed to change whether Assign runs,
// never the answer it returns: a lookup failure or I/O error always
// degrades to a cache miss, re-running the real check, rather than
// surfacing as an error to the caller.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/shapelang/shapec/internal/config"
	"github.com/shapelang/shapec/internal/types"
	"github.com/shapelang/shapec/internal/types/wire"
)

// Cache wraps a SQLite-backed key/value store of digest -> serialized
// AssignError (or empty string for success).
type Cache struct {
	db *sql.DB
}

// Open opens (creating if absent) a SQLite database at path and ensures
// its schema exists.
func Open(ctx context.Context, path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}
	const schema = `CREATE TABLE IF NOT EXISTS assign_cache (
		digest TEXT PRIMARY KEY,
		ok INTEGER NOT NULL,
		error_json TEXT NOT NULL
	)`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: migrate %s: %w", path, err)
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error { return c.db.Close() }

// Digest computes the cache key for a (left, right, cfg) query: the
// canonical string form of each operand plus the configuration flags that
// affect the outcome.
func Digest(l, r types.Type, cfg config.Config) string {
	h := sha256.New()
	fmt.Fprintf(h, "L=%s\nR=%s\nstrict=%t\ndepth=%d\n", l.String(), r.String(), cfg.StrictNullChecks, cfg.MaxRecursionDepth)
	return hex.EncodeToString(h.Sum(nil))
}

// CheckCached runs Assign, consulting and then populating the cache
// keyed on Digest(l, r, cfg). Any cache I/O error is treated as a miss:
// the real Assign call still runs and its outcome is what gets returned.
func (c *Cache) CheckCached(ctx context.Context, l, r types.Type, loc types.SourceLoc, cfg config.Config) error {
	digest := Digest(l, r, cfg)

	if cached, hit := c.lookup(ctx, digest); hit {
		if cached == nil {
			return nil
		}
		return cached
	}

	err := types.Assign(l, r, loc, cfg)
	c.store(ctx, digest, err)
	return err
}

func (c *Cache) lookup(ctx context.Context, digest string) (error, bool) {
	var ok int
	var errJSON string
	row := c.db.QueryRowContext(ctx, `SELECT ok, error_json FROM assign_cache WHERE digest = ?`, digest)
	if err := row.Scan(&ok, &errJSON); err != nil {
		return nil, false
	}
	if ok == 1 {
		return nil, true
	}
	decoded, err := wire.DecodeError(errJSON)
	if err != nil {
		return nil, false
	}
	return decoded, true
}

func (c *Cache) store(ctx context.Context, digest string, assignErr error) {
	ok := 0
	errJSON := ""
	if assignErr == nil {
		ok = 1
	} else {
		encoded, err := wire.EncodeError(assignErr)
		if err != nil {
			return
		}
		errJSON = encoded
	}
	c.db.ExecContext(ctx,
		`INSERT INTO assign_cache (digest, ok, error_json) VALUES (?, ?, ?)
		 ON CONFLICT(digest) DO UPDATE SET ok = excluded.ok, error_json = excluded.error_json`,
		digest, ok, errJSON)
}
