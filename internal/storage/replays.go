package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ReplayEntry is a stored playthrough. Data holds the encoded playthrough
// and is only filled by ReplayByID.
type ReplayEntry struct {
	ID         string
	GameID     string
	StartLevel int
	Score      int
	Ticks      uint64
	Digest     string
	Data       []byte
	CreatedAt  time.Time
}

// SaveReplay stores a playthrough. Saving the same ID twice replaces it.
func (s *Store) SaveReplay(r ReplayEntry) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO replays (id, game_id, start_level, score, ticks, digest, data)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.GameID, r.StartLevel, r.Score, int64(r.Ticks), r.Digest, r.Data,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save replay: %w", err)
	}
	return nil
}

// RecentReplays lists the newest replays without their data.
func (s *Store) RecentReplays(limit int) ([]ReplayEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, start_level, score, ticks, digest, created_at
		 FROM replays
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var out []ReplayEntry
	for rows.Next() {
		var r ReplayEntry
		var ticks int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.StartLevel, &r.Score, &ticks, &r.Digest, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Ticks = uint64(ticks)
		r.CreatedAt = parseTime(createdAt)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// ReplayByID loads a replay by its full ID or a unique prefix of it.
func (s *Store) ReplayByID(id string) (ReplayEntry, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return ReplayEntry{}, fmt.Errorf("replay %q: %w", id, ErrNotFound)
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, start_level, score, ticks, digest, data, created_at
		 FROM replays
		 WHERE id = ? OR id LIKE ? ESCAPE '\'
		 LIMIT 2`,
		id, escapeLike(id)+"%",
	)
	if err != nil {
		return ReplayEntry{}, fmt.Errorf("storage: cannot query replay: %w", err)
	}
	defer rows.Close()

	var found []ReplayEntry
	for rows.Next() {
		var r ReplayEntry
		var ticks int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.StartLevel, &r.Score, &ticks, &r.Digest, &r.Data, &createdAt); err != nil {
			return ReplayEntry{}, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Ticks = uint64(ticks)
		r.CreatedAt = parseTime(createdAt)
		if r.ID == id {
			return r, nil
		}
		found = append(found, r)
	}
	if err := rows.Err(); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return ReplayEntry{}, fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch len(found) {
	case 0:
		return ReplayEntry{}, fmt.Errorf("replay %q: %w", id, ErrNotFound)
	case 1:
		return found[0], nil
	default:
		return ReplayEntry{}, fmt.Errorf("storage: replay prefix %q is ambiguous", id)
	}
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
