package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/templui/goalpace/internal/repository"
	"github.com/templui/goalpace/internal/storage"
)

// ReviewReport describes one batch review run.
type ReviewReport struct {
	Users     int           `json:"users"`
	Goals     int           `json:"goals"`
	Adjusted  int           `json:"adjusted"`
	Snapshots int           `json:"snapshots"`
	Failures  int           `json:"failures"`
	Duration  time.Duration `json:"duration"`
}

// ReviewService periodically applies compliance adjustments to every active
// goal and optionally exports each user's summary.
type ReviewService struct {
	repo        repository.GoalRepository
	goalService *GoalService
	snapshots   storage.Storage
	concurrency int
}

// NewReviewService accepts a nil snapshots store, which disables export.
func NewReviewService(
	repo repository.GoalRepository,
	goalService *GoalService,
	snapshots storage.Storage,
	concurrency int,
) *ReviewService {
	return &ReviewService{
		repo:        repo,
		goalService: goalService,
		snapshots:   snapshots,
		concurrency: max(1, concurrency),
	}
}

// Run reviews all users with active goals. A failing goal does not stop the
// rest of the user's review; Failures counts users with at least one error.
// Only a cancelled context or a failing user listing aborts the run.
func (s *ReviewService) Run(ctx context.Context) (*ReviewReport, error) {
	started := time.Now()

	users, err := s.repo.UsersWithActiveGoals()
	if err != nil {
		return nil, fmt.Errorf("failed to list users with active goals: %w", err)
	}

	var goals, adjusted, snapshots, failures atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, userID := range users {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			n, changed, exported, err := s.reviewUser(userID)
			goals.Add(int64(n))
			adjusted.Add(int64(changed))
			if exported {
				snapshots.Add(1)
			}
			if err != nil {
				failures.Add(1)
				slog.Error("review failed", "error", err, "userID", userID)
			}
			return nil
		})
	}

	err = g.Wait()
	report := &ReviewReport{
		Users:     len(users),
		Goals:     int(goals.Load()),
		Adjusted:  int(adjusted.Load()),
		Snapshots: int(snapshots.Load()),
		Failures:  int(failures.Load()),
		Duration:  time.Since(started),
	}
	if err != nil {
		return report, err
	}

	slog.Info("review finished",
		"users", report.Users,
		"goals", report.Goals,
		"adjusted", report.Adjusted,
		"snapshots", report.Snapshots,
		"failures", report.Failures,
		"duration", report.Duration,
	)

	return report, nil
}

func (s *ReviewService) reviewUser(userID string) (goals, adjusted int, exported bool, err error) {
	active, err := s.repo.ActiveGoals(userID)
	if err != nil {
		return 0, 0, false, err
	}

	var errs []error
	for _, goal := range active {
		updated, _, err := s.goalService.ApplyAdjustment(userID, goal.ID)
		if err != nil {
			slog.Error("goal adjustment failed", "error", err, "userID", userID, "goalID", goal.ID)
			errs = append(errs, fmt.Errorf("goal %s: %w", goal.ID, err))
			continue
		}
		goals++
		if updated.CalculatedTimelineWeeks != goal.CalculatedTimelineWeeks {
			adjusted++
		}
	}

	if s.snapshots != nil {
		err = s.export(userID)
		if err != nil {
			errs = append(errs, err)
		} else {
			exported = true
		}
	}

	return goals, adjusted, exported, errors.Join(errs...)
}

func (s *ReviewService) export(userID string) error {
	summary, err := s.goalService.Summary(userID)
	if err != nil {
		return err
	}

	body, err := json.Marshal(summary)
	if err != nil {
		return err
	}

	return s.snapshots.Save(storage.SnapshotKey(userID, summary.GeneratedAt), bytes.NewReader(body))
}
