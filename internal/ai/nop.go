package ai

import (
	"context"
	"fmt"
	"strings"
)

// NopProvider answers without any network call. It is used by --offline and
// in tests. The answer lists every weekday so it passes validation.
type NopProvider struct{}

// NewNopProvider returns a NopProvider.
func NewNopProvider() *NopProvider {
	return &NopProvider{}
}

// Complete returns a fixed seven-day skeleton plan.
func (n *NopProvider) Complete(ctx context.Context, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	days := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	sections := make([]string, 0, len(days)+1)
	sections = append(sections, "Offline plan: no model was called.")
	for _, d := range days {
		sections = append(sections, fmt.Sprintf(
			"Day: %s\n  - Breakfast: 08:00, seasonal fruit and whole grains\n  - Lunch: 13:00, balanced plate\n  - Dinner: 19:30, light meal\n  - Exercise: 30 min brisk walk", d))
	}
	return strings.Join(sections, "\n\n"), nil
}

// UnavailableProvider fails every call with the error that prevented
// initialisation so that front ends can report it inline.
type UnavailableProvider struct {
	err error
}

// NewUnavailableProvider returns a provider that always fails with err.
func NewUnavailableProvider(err error) *UnavailableProvider {
	return &UnavailableProvider{err: err}
}

// Complete returns the initialisation error.
func (u *UnavailableProvider) Complete(context.Context, string) (string, error) {
	return "", u.err
}
