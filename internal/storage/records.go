package storage

import (
	"fmt"
	"time"
)

// LevelRecord is one cleared level: how many moves and seconds it took
// and the score it earned.
type LevelRecord struct {
	ID        int64
	LevelID   string
	Moves     int
	Seconds   int
	Score     int
	CreatedAt time.Time
}

// SaveLevelRecord stores a cleared level.
func (s *Store) SaveLevelRecord(r LevelRecord) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO level_records (level_id, moves, seconds, score) VALUES (?, ?, ?, ?)",
		r.LevelID, r.Moves, r.Seconds, r.Score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save level record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// BestLevelRecord returns the highest scoring clear of a level, or
// ErrNotFound when it was never cleared. Ties go to the earliest clear.
func (s *Store) BestLevelRecord(levelID string) (LevelRecord, error) {
	recs, err := s.queryRecords(
		`SELECT id, level_id, moves, seconds, score, created_at
		 FROM level_records
		 WHERE level_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT 1`,
		levelID,
	)
	if err != nil {
		return LevelRecord{}, err
	}
	if len(recs) == 0 {
		return LevelRecord{}, fmt.Errorf("level %s: %w", levelID, ErrNotFound)
	}
	return recs[0], nil
}

// LevelBests returns the best clear of every level ever cleared, keyed by
// level ID.
func (s *Store) LevelBests() (map[string]LevelRecord, error) {
	recs, err := s.queryRecords(
		`SELECT id, level_id, moves, seconds, score, created_at
		 FROM level_records
		 ORDER BY level_id, score DESC, id ASC`,
	)
	if err != nil {
		return nil, err
	}

	best := make(map[string]LevelRecord)
	for _, r := range recs {
		if _, ok := best[r.LevelID]; !ok {
			best[r.LevelID] = r
		}
	}
	return best, nil
}

func (s *Store) queryRecords(query string, args ...any) ([]LevelRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level records: %w", err)
	}
	defer rows.Close()

	var out []LevelRecord
	for rows.Next() {
		var r LevelRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.LevelID, &r.Moves, &r.Seconds, &r.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}
