package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// Progress is a player's position in the level sequence.
type Progress struct {
	Player     string
	LevelIndex int    // Levels cleared so far
	LevelID    string // Level in play when progress was saved
	Score      int
	UpdatedAt  time.Time
}

// SaveProgress stores a player's progress, replacing the previous entry.
func (s *Store) SaveProgress(p Progress) error {
	_, err := s.db.Exec(
		`INSERT INTO progress (player, level_index, level_id, score, updated_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(player) DO UPDATE SET
		   level_index = excluded.level_index,
		   level_id = excluded.level_id,
		   score = excluded.score,
		   updated_at = excluded.updated_at`,
		p.Player, p.LevelIndex, p.LevelID, p.Score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress for %s: %w", p.Player, err)
	}
	return nil
}

// LoadProgress returns a player's saved progress.
// The boolean is false if the player has none.
func (s *Store) LoadProgress(player string) (Progress, bool, error) {
	p := Progress{Player: player}
	var updatedAt any

	err := s.db.QueryRow(
		"SELECT level_index, level_id, score, updated_at FROM progress WHERE player = ?",
		player,
	).Scan(&p.LevelIndex, &p.LevelID, &p.Score, &updatedAt)
	if err == sql.ErrNoRows {
		return p, false, nil
	}
	if err != nil {
		return p, false, fmt.Errorf("storage: cannot load progress for %s: %w", player, err)
	}

	p.UpdatedAt = parseTime(updatedAt)
	return p, true, nil
}

// ResetProgress forgets a player's progress.
func (s *Store) ResetProgress(player string) error {
	if _, err := s.db.Exec("DELETE FROM progress WHERE player = ?", player); err != nil {
		return fmt.Errorf("storage: cannot reset progress for %s: %w", player, err)
	}
	return nil
}
