package storage

import (
	"bytes"
	"database/sql"
	"fmt"
	"time"

	"github.com/vovakirdan/maztic-arcade/internal/maze"
	"github.com/vovakirdan/maztic-arcade/internal/maze/levels/formats"
)

// LevelRecord is the summary row of a saved level.
type LevelRecord struct {
	ID               string
	Seed             uint64
	Width            int
	Height           int
	Agents           int
	ConvergenceTicks int
	Score            int
	CreatedAt        time.Time
}

// SaveLevel stores a level. Saving the same level again is a no-op update;
// a different level under an existing ID fails with ErrConflict.
// The level body is kept in the YAML level file format.
func (s *Store) SaveLevel(l *maze.Level) error {
	data, err := formats.EncodeYAML(formats.Level{Level: l})
	if err != nil {
		return fmt.Errorf("storage: cannot encode level %s: %w", l.ID, err)
	}

	var existing []byte
	err = s.db.QueryRow("SELECT data FROM levels WHERE id = ?", l.ID).Scan(&existing)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return fmt.Errorf("storage: cannot query level %s: %w", l.ID, err)
	case !bytes.Equal(existing, data):
		return fmt.Errorf("%w: level %s already saved with different contents", ErrConflict, l.ID)
	}

	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO levels
		 (id, seed, width, height, agents, convergence_ticks, score, data)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, int64(l.Seed), l.Width(), l.Height(), len(l.Balls), l.ConvergenceTicks, l.Score, data,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save level %s: %w", l.ID, err)
	}
	return nil
}

// LoadLevel retrieves a saved level by ID.
// Returns ErrNotFound if no such level exists.
func (s *Store) LoadLevel(id string) (*maze.Level, error) {
	var data []byte
	err := s.db.QueryRow("SELECT data FROM levels WHERE id = ?", id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: level %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level %s: %w", id, err)
	}

	parsed, err := formats.ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot decode level %s: %w", id, err)
	}
	return parsed.Level, nil
}

// ListLevels returns the most recently saved levels first.
func (s *Store) ListLevels(limit int) ([]LevelRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, seed, width, height, agents, convergence_ticks, score, created_at
		 FROM levels
		 ORDER BY created_at DESC, id
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query levels: %w", err)
	}
	defer rows.Close()

	var records []LevelRecord
	for rows.Next() {
		var r LevelRecord
		var seed int64
		var createdAt any
		if err := rows.Scan(&r.ID, &seed, &r.Width, &r.Height, &r.Agents, &r.ConvergenceTicks, &r.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan level row: %w", err)
		}
		r.Seed = uint64(seed)
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// DeleteLevel removes a saved level.
func (s *Store) DeleteLevel(id string) error {
	if _, err := s.db.Exec("DELETE FROM levels WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete level %s: %w", id, err)
	}
	return nil
}
