package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amishk599/wellplan/internal/ai"
	"github.com/amishk599/wellplan/internal/metrics"
	"github.com/amishk599/wellplan/internal/model"
	"github.com/amishk599/wellplan/internal/prompt"
)

// Planner owns the full generation pipeline for one request:
// compute → render → complete → format → validate → archive → notify.
type Planner struct {
	provider ai.LLMProvider
	store    model.PlanStore
	notifier model.Notifier
	logger   *slog.Logger

	now   func() time.Time
	newID func() string
}

// New creates a planner wired with all its dependencies.
func New(provider ai.LLMProvider, store model.PlanStore, notifier model.Notifier, logger *slog.Logger) *Planner {
	return &Planner{
		provider: provider,
		store:    store,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Preview computes metrics and renders the prompt without calling the model.
func (p *Planner) Preview(req model.PlanRequest) (model.Metrics, string, error) {
	m, err := metrics.Compute(req.Profile)
	if err != nil {
		return model.Metrics{}, "", err
	}
	text, err := prompt.Render(req.Profile, m, req.IncludeAyurveda)
	if err != nil {
		return model.Metrics{}, "", err
	}
	return m, text, nil
}

// Generate runs one attempt. Any failure before archiving aborts the attempt;
// archive and notification failures are logged only.
func (p *Planner) Generate(ctx context.Context, req model.PlanRequest) (*model.Plan, error) {
	m, text, err := p.Preview(req)
	if err != nil {
		return nil, err
	}

	start := p.now()
	raw, err := p.provider.Complete(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("model request: %w", err)
	}
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New("model returned an empty response")
	}

	plan := &model.Plan{
		ID:              p.newID(),
		Profile:         req.Profile,
		Metrics:         m,
		IncludeAyurveda: req.IncludeAyurveda,
		Title:           prompt.Title(req.IncludeAyurveda),
		Prompt:          text,
		Raw:             raw,
		Formatted:       prompt.Format(raw),
		MissingDays:     prompt.Validate(raw),
		CreatedAt:       p.now(),
	}

	if len(plan.MissingDays) > 0 {
		p.logger.Warn("plan is missing weekdays", "id", plan.ID, "missing", plan.MissingDays)
	}

	if err := p.store.Save(ctx, plan); err != nil {
		p.logger.Error("archiving plan failed", "id", plan.ID, "error", err)
	}
	if err := p.notifier.Notify(plan); err != nil {
		p.logger.Error("notifying plan failed", "id", plan.ID, "error", err)
	}

	p.logger.Info("generated plan",
		"id", plan.ID,
		"template", prompt.Name(req.IncludeAyurveda),
		"chars", len(raw),
		"duration", plan.CreatedAt.Sub(start).Round(time.Millisecond),
	)
	return plan, nil
}
