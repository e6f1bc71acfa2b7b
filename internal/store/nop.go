package store

import (
	"context"
	"fmt"
	"time"

	"github.com/amishk599/wellplan/internal/model"
)

// NopStore is used when the archive is disabled. Nothing is kept, so every
// lookup misses.
type NopStore struct{}

func NewNopStore() *NopStore { return &NopStore{} }

func (s *NopStore) Save(context.Context, *model.Plan) error { return nil }
func (s *NopStore) Get(_ context.Context, id string) (*model.Plan, error) {
	return nil, fmt.Errorf("plan %s: %w", id, model.ErrPlanNotFound)
}
func (s *NopStore) List(context.Context, int) ([]model.PlanSummary, error) { return nil, nil }
func (s *NopStore) Cleanup(context.Context, time.Duration) (int64, error) { return 0, nil }
