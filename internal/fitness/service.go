// Package fitness implements the protected feature operations of the
// fittrack API: workout statistics and goals.
//
// Every call goes through the authenticated fetch helper; a 401 from the
// server surfaces as an ordinary API error and re-authentication is the
// caller's decision.
package fitness

import (
	"context"
	"net/http"
	"strings"

	"github.com/fittrackhq/fittrack-go/internal/api"
	"github.com/fittrackhq/fittrack-go/internal/domain"
)

// API endpoints, relative to the client base URL.
const (
	statsEndpoint = "/user/stats"
	goalsEndpoint = "/user/goals"
)

// Service performs protected-resource calls.
type Service struct {
	fetch *api.AuthedClient
}

// NewService creates a fitness service on top of the authed helper.
func NewService(fetch *api.AuthedClient) *Service {
	return &Service{fetch: fetch}
}

// GetStats fetches the user's workout statistics.
func (s *Service) GetStats(ctx context.Context) (*domain.Stats, error) {
	raw, err := s.fetch.FetchWithAuth(ctx, statsEndpoint, http.MethodGet, nil)
	if err != nil {
		return nil, err
	}

	var stats domain.Stats
	if err := api.Decode(raw, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ListGoals fetches the user's goals.
func (s *Service) ListGoals(ctx context.Context) ([]domain.Goal, error) {
	raw, err := s.fetch.FetchWithAuth(ctx, goalsEndpoint, http.MethodGet, nil)
	if err != nil {
		return nil, err
	}

	var goals []domain.Goal
	if err := api.Decode(raw, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// CreateGoal validates and submits a new goal. Name, target and unit are
// required; all fields are trimmed before transmission.
func (s *Service) CreateGoal(ctx context.Context, goal domain.NewGoal) error {
	goal.Name = strings.TrimSpace(goal.Name)
	goal.Description = strings.TrimSpace(goal.Description)
	goal.Target = strings.TrimSpace(goal.Target)
	goal.Unit = strings.TrimSpace(goal.Unit)

	if goal.Name == "" {
		return domain.NewValidationError("goal name cannot be empty")
	}
	if goal.Target == "" {
		return domain.NewValidationError("goal target cannot be empty")
	}
	if goal.Unit == "" {
		return domain.NewValidationError("goal unit cannot be empty")
	}

	_, err := s.fetch.FetchWithAuth(ctx, goalsEndpoint, http.MethodPost, goal)
	return err
}
