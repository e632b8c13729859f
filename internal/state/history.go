package state

import (
	"database/sql"
	"strings"
	"time"

	dbutil "github.com/llehouerou/tapedeck/internal/db"
)

// PlayStats summarizes the history of one song.
type PlayStats struct {
	Count      int
	LastPlayed time.Time
}

// RecordPlay stores one play of path.
func (m *Manager) RecordPlay(path string, at time.Time) error {
	_, err := m.db.Exec(`INSERT INTO plays (path, played_at) VALUES (?, ?)`, path, at.Unix())
	return err
}

// Stats returns the play statistics of each path. Paths never played are
// absent from the result.
func (m *Manager) Stats(paths []string) (map[string]PlayStats, error) {
	result := make(map[string]PlayStats, len(paths))
	if len(paths) == 0 {
		return result, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(paths)), ",")
	args := make([]any, len(paths))
	for i, p := range paths {
		args[i] = p
	}

	//nolint:gosec // placeholders are generated, values are bound
	rows, err := m.db.Query(`
		SELECT path, COUNT(*), MAX(played_at)
		FROM plays
		WHERE path IN (`+placeholders+`)
		GROUP BY path
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var path string
		var count int
		var last sql.NullInt64
		if err := rows.Scan(&path, &count, &last); err != nil {
			return nil, err
		}
		result[path] = PlayStats{Count: count, LastPlayed: dbutil.UnixTime(last)}
	}
	return result, rows.Err()
}
