package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"
)

// Load returns every listing id the watcher has already notified
// about. An empty table (first run, fresh data dir) is normal.
func (d *DB) Load(ctx context.Context) (map[string]struct{}, error) {
	rows, err := d.Pool.QueryContext(ctx, `SELECT listing_id FROM seen;`)
	if err != nil {
		return nil, fmt.Errorf("load seen: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("load seen: %w", err)
		}
		seen[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load seen: %w", err)
	}
	return seen, nil
}

// MarkSeen records ids in one transaction. Called only after the
// notification went out (or there was nothing new), so a failed email
// leaves the set untouched and the listings get retried next run.
func (d *DB) MarkSeen(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := d.Pool.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("mark seen: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, id := range ids {
		if _, err := tx.ExecContext(ctx, `
INSERT OR IGNORE INTO seen (listing_id, first_seen) VALUES (?, ?);`, id, now); err != nil {
			return fmt.Errorf("mark seen %q: %w", id, err)
		}
	}
	return tx.Commit()
}

// ImportLegacyJSON pulls ids out of a seen.json left behind by the old
// script (a sorted JSON array of strings), but only into an empty
// table so it never clobbers real state. Missing file is a no-op.
func (d *DB) ImportLegacyJSON(ctx context.Context, path string) error {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("legacy seen: %w", err)
	}

	var n int
	if err := d.Pool.QueryRowContext(ctx, `SELECT COUNT(*) FROM seen;`).Scan(&n); err != nil {
		return fmt.Errorf("legacy seen: %w", err)
	}
	if n > 0 {
		return nil
	}

	var ids []string
	if err := json.Unmarshal(b, &ids); err != nil {
		return fmt.Errorf("legacy seen decode: %w", err)
	}
	if err := d.MarkSeen(ctx, ids); err != nil {
		return err
	}
	log.Printf("[store] imported %d ids from %s", len(ids), path)
	return nil
}
