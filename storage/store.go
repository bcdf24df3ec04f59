package storage

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// CachedReply is a persisted assistant answer.
type CachedReply struct {
	Text  string
	Model string
}

// ReplyCache defines the interface for assistant reply persistence.
type ReplyCache interface {
	Get(key string) (*CachedReply, error)
	Set(key string, reply *CachedReply) error
	Close() error
}

// SQLiteCache implements ReplyCache using SQLite.
type SQLiteCache struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteCache opens (or creates) the cache database at dbPath.
func NewSQLiteCache(dbPath string) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	cache := &SQLiteCache{db: db}
	if err := cache.init(); err != nil {
		db.Close()
		return nil, err
	}

	return cache, nil
}

func (c *SQLiteCache) init() error {
	query := `
	CREATE TABLE IF NOT EXISTS replies (
		key TEXT PRIMARY KEY,
		text TEXT NOT NULL,
		model TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := c.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create replies table: %w", err)
	}
	return nil
}

// Get retrieves a cached reply by key. Returns nil, nil on a cache miss.
func (c *SQLiteCache) Get(key string) (*CachedReply, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var reply CachedReply
	err := c.db.QueryRow(
		"SELECT text, model FROM replies WHERE key = ?",
		key,
	).Scan(&reply.Text, &reply.Model)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query reply: %w", err)
	}

	return &reply, nil
}

// Set stores or replaces a cached reply.
func (c *SQLiteCache) Set(key string, reply *CachedReply) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.db.Exec(`
		INSERT INTO replies (key, text, model)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			text = excluded.text,
			model = excluded.model,
			created_at = CURRENT_TIMESTAMP
	`, key, reply.Text, reply.Model)

	if err != nil {
		return fmt.Errorf("failed to save reply: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}
