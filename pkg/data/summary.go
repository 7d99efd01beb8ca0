package data

import (
	"database/sql"

	"github.com/pkg/errors"
)

const (
	selectLevelCountsSQL = `SELECT level, COUNT(*) FROM assessment GROUP BY level`

	selectScoreStatsSQL = `SELECT COUNT(*), COALESCE(AVG(score), 0), COALESCE(MAX(score), 0)
		FROM assessment
	`

	// Latest assessment per system, so re-assessed systems count once.
	selectSystemCountSQL = `SELECT COUNT(DISTINCT system_name) FROM assessment`
)

// Summary aggregates the stored assessment history.
type Summary struct {
	Assessments  int64            `json:"assessments"`
	Systems      int64            `json:"systems"`
	AverageScore float64          `json:"average_score"`
	MaxScore     int              `json:"max_score"`
	ByLevel      map[string]int64 `json:"by_level"`
}

// GetSummary returns aggregate counts over the assessment history.
func GetSummary(db *sql.DB) (*Summary, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}

	s := &Summary{
		ByLevel: make(map[string]int64),
	}

	row := db.QueryRow(selectScoreStatsSQL)
	if err := row.Scan(&s.Assessments, &s.AverageScore, &s.MaxScore); err != nil {
		return nil, errors.Wrap(err, "failed to scan score stats")
	}

	if err := db.QueryRow(selectSystemCountSQL).Scan(&s.Systems); err != nil {
		return nil, errors.Wrap(err, "failed to scan system count")
	}

	rows, err := db.Query(selectLevelCountsSQL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query level counts")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			level string
			count int64
		)
		if err := rows.Scan(&level, &count); err != nil {
			return nil, errors.Wrap(err, "failed to scan level count")
		}
		s.ByLevel[level] = count
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating level counts")
	}
	return s, nil
}
