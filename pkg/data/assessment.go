package data

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/aiscm/aictl/pkg/risk"
)

const (
	insertAssessmentSQL = `INSERT INTO assessment (
			created_at, system_name, model_type, deployment_env,
			score, level, multiplier, multiplier_provenance,
			factors, gaps, actions
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	selectAssessmentSQL = `SELECT
			id, created_at, system_name, model_type, deployment_env,
			score, level, multiplier, multiplier_provenance,
			factors, gaps, actions
		FROM assessment
		WHERE system_name = COALESCE(?, system_name)
		  AND level = COALESCE(?, level)
		ORDER BY id DESC
		LIMIT ?
	`

	defaultQueryLimit = 100
)

// AssessmentRecord is one persisted assessment row. The factor, gap, and
// action payloads are stored as JSON blobs and decoded on read.
type AssessmentRecord struct {
	ID                   int64             `json:"id"`
	CreatedAt            time.Time         `json:"created_at"`
	SystemName           string            `json:"system_name"`
	ModelType            string            `json:"model_type"`
	DeploymentEnv        string            `json:"deployment_environment"`
	Score                int               `json:"overall_risk_score"`
	Level                risk.Severity     `json:"risk_level"`
	Multiplier           float64           `json:"stress_multiplier"`
	MultiplierProvenance string            `json:"multiplier_provenance"`
	Factors              risk.FactorVector `json:"risk_factors"`
	Gaps                 []risk.Gap        `json:"csf_compliance_gaps"`
	Actions              risk.Plan         `json:"recommended_actions"`
}

// AssessmentQuery filters the assessment history. Zero values mean no filter.
type AssessmentQuery struct {
	SystemName string `json:"system_name,omitempty" form:"system"`
	Level      string `json:"level,omitempty" form:"level"`
	Limit      int    `json:"limit,omitempty" form:"limit"`
}

// SaveAssessment appends one assessment result to the history and returns
// its row ID. Rows are never updated or deleted.
func SaveAssessment(db *sql.DB, r *risk.Result) (int64, error) {
	if db == nil {
		return 0, errDBNotInitialized
	}
	if r == nil {
		return 0, errors.New("result required")
	}

	factors, err := json.Marshal(r.Factors)
	if err != nil {
		return 0, errors.Wrap(err, "failed to marshal factors")
	}
	gaps, err := json.Marshal(r.ComplianceGaps)
	if err != nil {
		return 0, errors.Wrap(err, "failed to marshal gaps")
	}
	actions, err := json.Marshal(r.RecommendedActions)
	if err != nil {
		return 0, errors.Wrap(err, "failed to marshal actions")
	}

	stmt, err := db.Prepare(insertAssessmentSQL)
	if err != nil {
		return 0, errors.Wrap(err, "failed to prepare assessment insert statement")
	}
	defer stmt.Close()

	res, err := stmt.Exec(
		time.Now().UTC().Format(time.RFC3339),
		r.SystemName,
		string(r.ModelType),
		string(r.DeploymentEnv),
		r.OverallRiskScore,
		string(r.RiskLevel),
		r.Multiplier,
		string(r.MultiplierProvenance),
		string(factors),
		string(gaps),
		string(actions),
	)
	if err != nil {
		return 0, errors.Wrap(err, "failed to insert assessment")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "failed to read inserted assessment id")
	}
	return id, nil
}

// GetAssessments returns history rows matching the query, newest first.
func GetAssessments(db *sql.DB, q *AssessmentQuery) ([]*AssessmentRecord, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}
	if q == nil {
		q = &AssessmentQuery{}
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}

	stmt, err := db.Prepare(selectAssessmentSQL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare assessment select statement")
	}
	defer stmt.Close()

	rows, err := stmt.Query(nullableString(q.SystemName), nullableString(q.Level), limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query assessments")
	}
	defer rows.Close()

	list := make([]*AssessmentRecord, 0)
	for rows.Next() {
		rec, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating assessment rows")
	}
	return list, nil
}

func scanAssessment(rows *sql.Rows) (*AssessmentRecord, error) {
	var (
		rec        AssessmentRecord
		createdAt  string
		factorsRaw string
		gapsRaw    string
		actionsRaw string
	)
	if err := rows.Scan(
		&rec.ID,
		&createdAt,
		&rec.SystemName,
		&rec.ModelType,
		&rec.DeploymentEnv,
		&rec.Score,
		&rec.Level,
		&rec.Multiplier,
		&rec.MultiplierProvenance,
		&factorsRaw,
		&gapsRaw,
		&actionsRaw,
	); err != nil {
		return nil, errors.Wrap(err, "failed to scan assessment row")
	}

	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid created_at in assessment %d", rec.ID)
	}
	rec.CreatedAt = ts

	if err := json.Unmarshal([]byte(factorsRaw), &rec.Factors); err != nil {
		return nil, errors.Wrapf(err, "invalid factors payload in assessment %d", rec.ID)
	}
	if err := json.Unmarshal([]byte(gapsRaw), &rec.Gaps); err != nil {
		return nil, errors.Wrapf(err, "invalid gaps payload in assessment %d", rec.ID)
	}
	if err := json.Unmarshal([]byte(actionsRaw), &rec.Actions); err != nil {
		return nil, errors.Wrapf(err, "invalid actions payload in assessment %d", rec.ID)
	}
	return &rec, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
