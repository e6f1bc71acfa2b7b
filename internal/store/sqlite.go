package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amishk599/wellplan/internal/model"
	_ "modernc.org/sqlite"
)

// Ensure SQLiteStore implements model.PlanStore.
var _ model.PlanStore = (*SQLiteStore)(nil)

// SQLiteStore archives generated plans in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

const schema = `CREATE TABLE IF NOT EXISTS plans (
	id                 TEXT PRIMARY KEY,
	name               TEXT NOT NULL,
	age                INTEGER NOT NULL,
	gender             TEXT NOT NULL,
	weight_kg          REAL NOT NULL,
	height_cm          REAL NOT NULL,
	fitness_goal       TEXT NOT NULL,
	dietary_preference TEXT NOT NULL,
	food_allergies     TEXT NOT NULL,
	local_cuisine      TEXT NOT NULL,
	month              INTEGER NOT NULL,
	include_ayurveda   INTEGER NOT NULL,
	bmi                REAL NOT NULL,
	health_status      TEXT NOT NULL,
	bmr                REAL NOT NULL,
	daily_calories     INTEGER NOT NULL,
	title              TEXT NOT NULL,
	prompt             TEXT NOT NULL,
	raw                TEXT NOT NULL,
	missing_days       TEXT NOT NULL,
	created_at         DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS plans_created_at ON plans (created_at);`

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures the
// plans table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating plans table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save inserts plan. Saving the same ID twice is an error.
func (s *SQLiteStore) Save(ctx context.Context, plan *model.Plan) error {
	p, m := plan.Profile, plan.Metrics
	_, err := s.db.ExecContext(ctx, `INSERT INTO plans (
		id, name, age, gender, weight_kg, height_cm, fitness_goal, dietary_preference,
		food_allergies, local_cuisine, month, include_ayurveda,
		bmi, health_status, bmr, daily_calories, title, prompt, raw, missing_days, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		plan.ID, p.Name, p.Age, string(p.Gender), p.WeightKG, p.HeightCM, string(p.FitnessGoal), string(p.DietaryPreference),
		p.FoodAllergies, p.LocalCuisine, int(p.Month), plan.IncludeAyurveda,
		m.BMI, string(m.HealthStatus), m.BMR, m.DailyCalories, plan.Title, plan.Prompt, plan.Raw,
		strings.Join(plan.MissingDays, ","), plan.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving plan %s: %w", plan.ID, err)
	}
	return nil
}

// Get loads one plan. Formatted is left empty; callers re-derive it from Raw.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*model.Plan, error) {
	var (
		plan                       model.Plan
		gender, goal, diet, status string
		month                      int
		missing                    string
	)
	err := s.db.QueryRowContext(ctx, `SELECT
		id, name, age, gender, weight_kg, height_cm, fitness_goal, dietary_preference,
		food_allergies, local_cuisine, month, include_ayurveda,
		bmi, health_status, bmr, daily_calories, title, prompt, raw, missing_days, created_at
		FROM plans WHERE id = ?`, id).Scan(
		&plan.ID, &plan.Profile.Name, &plan.Profile.Age, &gender, &plan.Profile.WeightKG, &plan.Profile.HeightCM,
		&goal, &diet, &plan.Profile.FoodAllergies, &plan.Profile.LocalCuisine, &month, &plan.IncludeAyurveda,
		&plan.Metrics.BMI, &status, &plan.Metrics.BMR, &plan.Metrics.DailyCalories,
		&plan.Title, &plan.Prompt, &plan.Raw, &missing, &plan.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("plan %s: %w", id, model.ErrPlanNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading plan %s: %w", id, err)
	}

	plan.Profile.Gender = model.Gender(gender)
	plan.Profile.FitnessGoal = model.FitnessGoal(goal)
	plan.Profile.DietaryPreference = model.DietaryPreference(diet)
	plan.Profile.Month = time.Month(month)
	plan.Metrics.HealthStatus = model.HealthStatus(status)
	if missing != "" {
		plan.MissingDays = strings.Split(missing, ",")
	}
	return &plan, nil
}

// List returns the most recent plans, newest first.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]model.PlanSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, fitness_goal, daily_calories, include_ayurveda, created_at
		FROM plans ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var out []model.PlanSummary
	for rows.Next() {
		var ps model.PlanSummary
		var goal string
		if err := rows.Scan(&ps.ID, &ps.Name, &goal, &ps.DailyCalories, &ps.IncludeAyurveda, &ps.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning plan row: %w", err)
		}
		ps.FitnessGoal = model.FitnessGoal(goal)
		out = append(out, ps)
	}
	return out, rows.Err()
}

// Cleanup deletes plans older than the given duration and reports how many
// were removed.
func (s *SQLiteStore) Cleanup(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan).UTC()
	res, err := s.db.ExecContext(ctx, "DELETE FROM plans WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleaning up plans older than %v: %w", olderThan, err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
