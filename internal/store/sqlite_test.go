package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/amishk599/wellplan/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func samplePlan(id string, createdAt time.Time) *model.Plan {
	return &model.Plan{
		ID: id,
		Profile: model.Profile{
			Name:              "Ravi Kumar",
			Age:               40,
			Gender:            model.GenderMale,
			WeightKG:          82,
			HeightCM:          176,
			FitnessGoal:       model.GoalWeightLoss,
			DietaryPreference: model.DietHalal,
			FoodAllergies:     "shellfish",
			LocalCuisine:      "Hyderabadi",
			Month:             time.November,
		},
		Metrics:         model.Metrics{BMI: 26.47, HealthStatus: model.StatusOverweight, BMR: 1715, DailyCalories: 2058},
		IncludeAyurveda: true,
		Title:           "🌺 Integrated Ayurvedic & Modern Wellness Plan",
		Prompt:          "prompt text",
		Raw:             "Day: Monday\n\nDay: Tuesday",
		MissingDays:     []string{"Wednesday", "Sunday"},
		CreatedAt:       createdAt,
	}
}

func TestSaveThenGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	want := samplePlan("plan-1", time.Now().Truncate(time.Second))

	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Get(ctx, "plan-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !reflect.DeepEqual(got.Profile, want.Profile) {
		t.Errorf("Profile = %+v, want %+v", got.Profile, want.Profile)
	}
	if got.Metrics != want.Metrics {
		t.Errorf("Metrics = %+v, want %+v", got.Metrics, want.Metrics)
	}
	if !got.IncludeAyurveda || got.Raw != want.Raw || got.Title != want.Title {
		t.Errorf("plan fields not round-tripped: %+v", got)
	}
	if !reflect.DeepEqual(got.MissingDays, want.MissingDays) {
		t.Errorf("MissingDays = %v", got.MissingDays)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, want.CreatedAt)
	}
}

func TestGetUnknownReturnsNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), "does-not-exist")
	if !errors.Is(err, model.ErrPlanNotFound) {
		t.Fatalf("err = %v, want ErrPlanNotFound", err)
	}
}

func TestSaveDuplicateIDFails(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, samplePlan("dup", time.Now())); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := s.Save(ctx, samplePlan("dup", time.Now())); err == nil {
		t.Fatal("expected error saving duplicate id")
	}
}

func TestListNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	for i, id := range []string{"a", "b", "c"} {
		if err := s.Save(ctx, samplePlan(id, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("Save %s: %v", id, err)
		}
	}

	got, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].ID != "c" || got[1].ID != "b" {
		t.Fatalf("List = %+v, want c, b", got)
	}
	if got[0].FitnessGoal != model.GoalWeightLoss || got[0].DailyCalories != 2058 {
		t.Errorf("summary fields = %+v", got[0])
	}
}

func TestCleanupRemovesOldKeepsFresh(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, samplePlan("old", time.Now().Add(-48*time.Hour))); err != nil {
		t.Fatalf("Save old: %v", err)
	}
	if err := s.Save(ctx, samplePlan("fresh", time.Now())); err != nil {
		t.Fatalf("Save fresh: %v", err)
	}

	n, err := s.Cleanup(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if n != 1 {
		t.Errorf("removed = %d, want 1", n)
	}

	if _, err := s.Get(ctx, "old"); !errors.Is(err, model.ErrPlanNotFound) {
		t.Errorf("expected old plan to be cleaned up, got %v", err)
	}
	if _, err := s.Get(ctx, "fresh"); err != nil {
		t.Errorf("expected fresh plan to survive cleanup: %v", err)
	}
}

func TestNopStore(t *testing.T) {
	s := NewNopStore()
	ctx := context.Background()
	if err := s.Save(ctx, samplePlan("x", time.Now())); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := s.Get(ctx, "x"); !errors.Is(err, model.ErrPlanNotFound) {
		t.Errorf("Get err = %v, want ErrPlanNotFound", err)
	}
}
