package notifier

import (
	"log/slog"

	"github.com/amishk599/wellplan/internal/model"
)

// Ensure LogNotifier implements model.Notifier.
var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier writes a structured line per generated plan.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs each plan via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the plan summary. Free-text fields are not logged.
func (n *LogNotifier) Notify(plan *model.Plan) error {
	if plan == nil {
		return nil
	}
	args := []any{
		"id", plan.ID,
		"goal", plan.Profile.FitnessGoal,
		"bmi", plan.Metrics.BMI,
		"daily_calories", plan.Metrics.DailyCalories,
		"ayurveda", plan.IncludeAyurveda,
	}
	if len(plan.MissingDays) > 0 {
		args = append(args, "missing_days", plan.MissingDays)
	}
	n.logger.Info("plan generated", args...)
	return nil
}
