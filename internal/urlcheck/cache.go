package urlcheck

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/streamfold/docgen/internal/logfields"
)

// Cache stores URL liveness results. The default per-run cache is an
// in-memory map; a sqlite-backed cache can be swapped in when a calling tool
// wants results to survive across runs.
type Cache interface {
	Get(url string) (Result, bool)
	Put(url string, res Result)
	Close() error
}

// MemoryCache is the per-run cache. The run is single-threaded, so plain map
// access is fine.
type MemoryCache struct {
	entries map[string]Result
}

// NewMemoryCache returns an empty per-run cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: map[string]Result{}}
}

func (c *MemoryCache) Get(url string) (Result, bool) {
	res, ok := c.entries[url]
	return res, ok
}

func (c *MemoryCache) Put(url string, res Result) { c.entries[url] = res }

func (c *MemoryCache) Close() error { return nil }

// SQLiteCache persists liveness results across runs. Entries older than TTL
// are treated as misses so a fixed URL does not stay broken forever.
type SQLiteCache struct {
	db  *sql.DB
	ttl time.Duration
}

// NewSQLiteCache opens (and if needed initializes) the cache database.
func NewSQLiteCache(path string, ttl time.Duration) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening url cache: %w", err)
	}
	const schema = `CREATE TABLE IF NOT EXISTS url_cache (
		url        TEXT PRIMARY KEY,
		status     INTEGER NOT NULL,
		code       INTEGER NOT NULL,
		detail     TEXT NOT NULL DEFAULT '',
		checked_at TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing url cache: %w", err)
	}
	return &SQLiteCache{db: db, ttl: ttl}, nil
}

func (c *SQLiteCache) Get(url string) (Result, bool) {
	var (
		status, code int
		detail       string
		checkedAt    string
	)
	row := c.db.QueryRow(`SELECT status, code, detail, checked_at FROM url_cache WHERE url = ?`, url)
	if err := row.Scan(&status, &code, &detail, &checkedAt); err != nil {
		return Result{}, false
	}
	if c.ttl > 0 {
		at, err := time.Parse(time.RFC3339, checkedAt)
		if err != nil || time.Since(at) > c.ttl {
			return Result{}, false
		}
	}
	return Result{Status: Status(status), Code: code, Detail: detail}, true
}

func (c *SQLiteCache) Put(url string, res Result) {
	_, err := c.db.Exec(
		`INSERT INTO url_cache (url, status, code, detail, checked_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(url) DO UPDATE SET status = excluded.status, code = excluded.code,
		 detail = excluded.detail, checked_at = excluded.checked_at`,
		url, int(res.Status), res.Code, res.Detail, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		slog.Warn("URL cache write failed", logfields.URL(url), logfields.Error(err))
	}
}

func (c *SQLiteCache) Close() error { return c.db.Close() }
