package offline

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store is a local embedded mirror of remote entities, used to serve reads
// when the database is unreachable. One row per (entity, id), flat JSON
// payload, overwrite-by-id. There is no freshness guarantee beyond the last
// successful sync.
type Store struct {
	db *sql.DB
}

// PendingAction is a queued write captured while the database was down.
type PendingAction struct {
	ID        int64
	Entity    string
	Action    string
	Payload   []byte
	CreatedAt time.Time
}

// Open opens (or creates) the cache file and ensures its schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Single writer keeps interleaved async completions last-write-wins.
	db.SetMaxOpenConns(1)

	schema := `
	CREATE TABLE IF NOT EXISTS cached_entities (
		entity     TEXT NOT NULL,
		id         TEXT NOT NULL,
		payload    BLOB NOT NULL,
		synced_at  TIMESTAMP NOT NULL,
		PRIMARY KEY (entity, id)
	);
	CREATE TABLE IF NOT EXISTS pending_actions (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		entity     TEXT NOT NULL,
		action     TEXT NOT NULL,
		payload    BLOB NOT NULL,
		created_at TIMESTAMP NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Put upserts a single record into the cache.
func (s *Store) Put(ctx context.Context, entity, id string, payload []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cached_entities (entity, id, payload, synced_at)
		VALUES (?,?,?,?)
		ON CONFLICT(entity, id) DO UPDATE SET payload=excluded.payload, synced_at=excluded.synced_at`,
		entity, id, payload, time.Now().UTC())
	return err
}

// Snapshot replaces the cached set for an entity with the given rows.
func (s *Store) Snapshot(ctx context.Context, entity string, rows map[string][]byte) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cached_entities WHERE entity=?`, entity); err != nil {
		return err
	}
	now := time.Now().UTC()
	for id, payload := range rows {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO cached_entities (entity, id, payload, synced_at)
			VALUES (?,?,?,?)`, entity, id, payload, now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// List returns all cached payloads for an entity. A cache miss yields an
// empty slice, never an error; callers must tolerate empty on first run.
func (s *Store) List(ctx context.Context, entity string) ([][]byte, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM cached_entities WHERE entity=? ORDER BY id`, entity)
	if err != nil {
		return [][]byte{}, nil
	}
	defer rows.Close()

	payloads := [][]byte{}
	for rows.Next() {
		var p []byte
		if err := rows.Scan(&p); err != nil {
			return [][]byte{}, nil
		}
		payloads = append(payloads, p)
	}
	return payloads, nil
}

// Get returns one cached payload, or nil if absent.
func (s *Store) Get(ctx context.Context, entity, id string) ([]byte, error) {
	var p []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM cached_entities WHERE entity=? AND id=?`, entity, id).Scan(&p)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, nil
	}
	return p, nil
}

// Enqueue records a mutation to be replayed once connectivity returns.
func (s *Store) Enqueue(ctx context.Context, entity, action string, payload []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pending_actions (entity, action, payload, created_at)
		VALUES (?,?,?,?)`, entity, action, payload, time.Now().UTC())
	return err
}

// PendingActions returns queued mutations in insertion order.
func (s *Store) PendingActions(ctx context.Context) ([]*PendingAction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, entity, action, payload, created_at
		FROM pending_actions ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []*PendingAction
	for rows.Next() {
		a := &PendingAction{}
		if err := rows.Scan(&a.ID, &a.Entity, &a.Action, &a.Payload, &a.CreatedAt); err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, nil
}

// DeleteAction removes a replayed (or poisoned) action from the queue.
func (s *Store) DeleteAction(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM pending_actions WHERE id=?`, id)
	return err
}
