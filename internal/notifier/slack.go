package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/amishk599/wellplan/internal/model"
	"github.com/amishk599/wellplan/internal/prompt"
)

// Ensure SlackNotifier implements model.Notifier.
var _ model.Notifier = (*SlackNotifier)(nil)

// SlackNotifier posts a plan summary to a Slack channel via Incoming Webhooks.
type SlackNotifier struct {
	webhookURL string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewSlackNotifier returns a notifier that posts each plan to Slack via webhook.
func NewSlackNotifier(webhookURL string, httpClient *http.Client, logger *slog.Logger) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Notify sends one Block Kit message for plan. A 429 is retried once after
// the advertised Retry-After.
func (s *SlackNotifier) Notify(plan *model.Plan) error {
	if plan == nil {
		return nil
	}

	body, err := json.Marshal(buildPayload(plan))
	if err != nil {
		return fmt.Errorf("marshal slack payload: %w", err)
	}

	status, retryAfter, err := s.post(body)
	if err != nil {
		return err
	}
	if status == http.StatusTooManyRequests {
		s.logger.Warn("slack rate limited, retrying", "retry_after", retryAfter)
		time.Sleep(retryAfter)
		status, _, err = s.post(body)
		if err != nil {
			return fmt.Errorf("post to slack (retry): %w", err)
		}
	}
	if status != http.StatusOK {
		return fmt.Errorf("slack returned %d", status)
	}

	s.logger.Info("slack message sent", "plan", plan.ID)
	return nil
}

func (s *SlackNotifier) post(body []byte) (int, time.Duration, error) {
	resp, err := s.httpClient.Post(s.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return 0, 0, fmt.Errorf("post to slack: %w", err)
	}
	defer resp.Body.Close()

	secs, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
	if secs <= 0 {
		secs = 1
	}
	return resp.StatusCode, time.Duration(secs) * time.Second, nil
}

// Block Kit payload types.

type slackPayload struct {
	Blocks []slackBlock `json:"blocks"`
}

type slackBlock struct {
	Type   string      `json:"type"`
	Text   *slackText  `json:"text,omitempty"`
	Fields []slackText `json:"fields,omitempty"`
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// SendTestMessage sends a dummy plan notification to verify the integration works.
func SendTestMessage(n model.Notifier) error {
	return n.Notify(&model.Plan{
		ID:    "test-001",
		Title: prompt.Title(false),
		Profile: model.Profile{
			Name:              "wellplan test",
			FitnessGoal:       model.GoalMaintenance,
			DietaryPreference: model.DietNone,
			Month:             time.Now().Month(),
		},
		Metrics:   model.Metrics{BMI: 22.5, HealthStatus: model.StatusNormal, DailyCalories: 2000},
		CreatedAt: time.Now(),
	})
}

func buildPayload(plan *model.Plan) slackPayload {
	blocks := []slackBlock{
		{
			Type: "header",
			Text: &slackText{Type: "plain_text", Text: fmt.Sprintf("%s for %s", plan.Title, plan.Profile.Month)},
		},
		{
			Type: "section",
			Fields: []slackText{
				{Type: "mrkdwn", Text: "*Goal:*\n" + string(plan.Profile.FitnessGoal)},
				{Type: "mrkdwn", Text: "*Diet:*\n" + string(plan.Profile.DietaryPreference)},
			},
		},
		{
			Type: "section",
			Fields: []slackText{
				{Type: "mrkdwn", Text: fmt.Sprintf("*BMI:*\n%.1f (%s)", plan.Metrics.BMI, plan.Metrics.HealthStatus)},
				{Type: "mrkdwn", Text: fmt.Sprintf("*Calories:*\n%d kcal", plan.Metrics.DailyCalories)},
			},
		},
	}

	if len(plan.MissingDays) > 0 {
		blocks = append(blocks, slackBlock{
			Type: "section",
			Text: &slackText{Type: "mrkdwn", Text: "⚠️ Missing days: " + strings.Join(plan.MissingDays, ", ")},
		})
	}

	blocks = append(blocks, slackBlock{Type: "divider"})
	return slackPayload{Blocks: blocks}
}
