package service

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/templui/goalpace/internal/compliance"
	"github.com/templui/goalpace/internal/model"
	"github.com/templui/goalpace/internal/progress"
	"github.com/templui/goalpace/internal/repository"
	"github.com/templui/goalpace/internal/timeline"
	"github.com/templui/goalpace/internal/validation"
)

var (
	ErrInvalidStatusTransition = errors.New("invalid goal status transition")
	ErrMilestoneNotFound       = errors.New("milestone not found")
)

const defaultPriority = 3

var transitions = map[model.GoalStatus][]model.GoalStatus{
	model.GoalStatusActive: {model.GoalStatusPaused, model.GoalStatusCompleted, model.GoalStatusCancelled},
	model.GoalStatusPaused: {model.GoalStatusActive, model.GoalStatusCancelled},
}

type GoalService struct {
	repo           repository.GoalRepository
	profileRepo    repository.ProfileRepository
	activityRepo   repository.ActivityRepository
	complianceRepo repository.ComplianceRepository
	progressRepo   repository.ProgressRepository
	transactor     repository.Transactor
	windowDays     int
	locks          *goalLocks
	now            func() time.Time
}

func NewGoalService(
	repo repository.GoalRepository,
	profileRepo repository.ProfileRepository,
	activityRepo repository.ActivityRepository,
	complianceRepo repository.ComplianceRepository,
	progressRepo repository.ProgressRepository,
	transactor repository.Transactor,
	windowDays int,
) *GoalService {
	if windowDays <= 0 {
		windowDays = compliance.WindowDays
	}
	return &GoalService{
		repo:           repo,
		profileRepo:    profileRepo,
		activityRepo:   activityRepo,
		complianceRepo: complianceRepo,
		progressRepo:   progressRepo,
		transactor:     transactor,
		windowDays:     windowDays,
		locks:          newGoalLocks(),
		now:            time.Now,
	}
}

// Estimate computes a timeline for a goal declaration without storing it.
func (s *GoalService) Estimate(userID string, goal model.HealthGoal) (*model.TimelineCalculation, error) {
	goal = withDefaults(goal)

	err := timeline.Validate(goal)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.ByUserID(userID)
	if err != nil {
		return nil, err
	}

	calc := s.estimate(goal, *profile)
	return &calc, nil
}

// Create validates the declaration, estimates its timeline and stores it as
// an active goal. A missing target date is derived from the estimate.
func (s *GoalService) Create(userID string, goal model.HealthGoal) (*model.HealthGoal, *model.TimelineCalculation, error) {
	goal = withDefaults(goal)

	err := validation.ValidateTitle(goal.Title)
	if err != nil {
		return nil, nil, err
	}

	err = timeline.Validate(goal)
	if err != nil {
		return nil, nil, err
	}

	profile, err := s.profileRepo.ByUserID(userID)
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	if goal.StartDate.IsZero() {
		goal.StartDate = truncateDay(now)
	}

	calc := s.estimate(goal, *profile)

	goal.ID = uuid.New().String()
	goal.UserID = userID
	goal.Status = model.GoalStatusActive
	goal.Barriers = model.NewStringSet(goal.Barriers...)
	goal.CalculatedTimelineWeeks = calc.RealisticWeeks
	goal.Milestones = calc.Milestones
	goal.ProgressPercentage = model.ClampProgress(goal.ProgressPercentage)
	if goal.TargetDate.IsZero() {
		goal.TargetDate = goal.StartDate.AddDate(0, 0, calc.RealisticWeeks*7)
	}
	goal.CreatedAt = now
	goal.UpdatedAt = now

	err = s.transactor.Transact(func(tx *sqlx.Tx) error {
		err := s.repo.WithTx(tx).Create(&goal)
		if err != nil {
			return fmt.Errorf("failed to create goal: %w", err)
		}

		return s.progressRepo.WithTx(tx).Append(model.ProgressRecord{
			GoalID:             goal.ID,
			Date:               now,
			CurrentValue:       goal.CurrentValue,
			ProgressPercentage: goal.ProgressPercentage,
		})
	})
	if err != nil {
		return nil, nil, err
	}

	slog.Info("goal created",
		"goalID", goal.ID,
		"userID", userID,
		"type", goal.GoalType,
		"weeks", calc.RealisticWeeks,
		"success", calc.SuccessProbability,
	)

	return &goal, &calc, nil
}

// Reestimate recomputes the timeline from the goal's current value and
// replaces the stored timeline and milestones.
func (s *GoalService) Reestimate(userID, goalID string) (*model.HealthGoal, *model.TimelineCalculation, error) {
	unlock := s.locks.lock(goalID)
	defer unlock()

	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, nil, err
	}

	if !goal.IsActive() {
		return nil, nil, fmt.Errorf("%w: goal is %s", ErrInvalidStatusTransition, goal.Status)
	}

	profile, err := s.profileRepo.ByUserID(userID)
	if err != nil {
		return nil, nil, err
	}

	draft := *goal
	draft.StartDate = truncateDay(s.now())
	err = timeline.Validate(draft)
	if err != nil {
		return nil, nil, err
	}

	calc := s.estimate(draft, *profile)

	goal.CalculatedTimelineWeeks = calc.RealisticWeeks
	goal.Milestones = calc.Milestones
	goal.TargetDate = draft.StartDate.AddDate(0, 0, calc.RealisticWeeks*7)

	err = s.repo.Update(goal)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to update goal: %w", err)
	}

	return goal, &calc, nil
}

func (s *GoalService) ByID(userID, goalID string) (*model.HealthGoal, error) {
	return s.repo.ByID(userID, goalID)
}

func (s *GoalService) Goals(userID, sortBy string) ([]*model.HealthGoal, error) {
	return s.repo.Goals(userID, sortBy)
}

func (s *GoalService) Delete(userID, goalID string) error {
	unlock := s.locks.lock(goalID)
	defer unlock()

	return s.repo.Delete(userID, goalID)
}

func (s *GoalService) Pause(userID, goalID string) (*model.HealthGoal, error) {
	return s.transition(userID, goalID, model.GoalStatusPaused)
}

func (s *GoalService) Resume(userID, goalID string) (*model.HealthGoal, error) {
	return s.transition(userID, goalID, model.GoalStatusActive)
}

func (s *GoalService) Complete(userID, goalID string) (*model.HealthGoal, error) {
	return s.transition(userID, goalID, model.GoalStatusCompleted)
}

func (s *GoalService) Cancel(userID, goalID string) (*model.HealthGoal, error) {
	return s.transition(userID, goalID, model.GoalStatusCancelled)
}

func (s *GoalService) transition(userID, goalID string, to model.GoalStatus) (*model.HealthGoal, error) {
	unlock := s.locks.lock(goalID)
	defer unlock()

	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	if !slices.Contains(transitions[goal.Status], to) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidStatusTransition, goal.Status, to)
	}

	goal.Status = to
	if to == model.GoalStatusCompleted {
		goal.ProgressPercentage = 100
	}

	err = s.repo.Update(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to update goal status: %w", err)
	}

	slog.Info("goal status changed", "goalID", goalID, "status", to)
	return goal, nil
}

// CompleteMilestone marks one milestone done. Completing it twice keeps the
// first completion date.
func (s *GoalService) CompleteMilestone(userID, goalID, milestoneID string) (*model.HealthGoal, error) {
	unlock := s.locks.lock(goalID)
	defer unlock()

	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	milestones := make(model.Milestones, len(goal.Milestones))
	copy(milestones, goal.Milestones)

	found := false
	for i := range milestones {
		if milestones[i].ID != milestoneID {
			continue
		}
		found = true
		if !milestones[i].Completed {
			done := s.now()
			milestones[i].Completed = true
			milestones[i].CompletedDate = &done
		}
	}
	if !found {
		return nil, ErrMilestoneNotFound
	}

	goal.Milestones = milestones
	err = s.repo.Update(goal)
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// RecordCompliance applies an activity outcome to the user's active goals
// linked to the activity and stores the event with the resulting history.
func (s *GoalService) RecordCompliance(userID, activityID, status, notes string) (*compliance.Result, error) {
	parsed, err := model.ParseComplianceStatus(status)
	if err != nil {
		return nil, err
	}

	activity, err := s.activityRepo.ByID(userID, activityID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(activity.RelatedGoals...)
	defer unlock()

	active, err := s.repo.ActiveGoals(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load active goals: %w", err)
	}

	goals := make([]model.HealthGoal, len(active))
	for i, g := range active {
		goals[i] = *g
	}

	res, err := compliance.Record(goals, *activity, parsed, notes, s.now())
	if err != nil {
		return nil, err
	}

	// goal progress, the event and its history commit together
	err = s.transactor.Transact(func(tx *sqlx.Tx) error {
		goalRepo := s.repo.WithTx(tx)
		for i := range res.Goals {
			goal := &res.Goals[i]
			if !activity.RelatedGoals.Contains(goal.ID) {
				continue
			}
			err := goalRepo.Update(goal)
			if err != nil {
				return fmt.Errorf("failed to update goal %s: %w", goal.ID, err)
			}
		}

		err := s.complianceRepo.WithTx(tx).Append(&res.Event)
		if err != nil {
			return fmt.Errorf("failed to store compliance event: %w", err)
		}

		err = s.progressRepo.WithTx(tx).Append(res.History...)
		if err != nil {
			return fmt.Errorf("failed to store progress history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("compliance recorded",
		"activityID", activityID,
		"status", parsed,
		"updated", len(res.Updated),
	)

	return &res, nil
}

// Adjustment evaluates the goal's trailing compliance window without
// changing the stored goal.
func (s *GoalService) Adjustment(userID, goalID string) (*compliance.Adjustment, error) {
	_, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	return s.adjustment(goalID)
}

// ApplyAdjustment evaluates the compliance window and rescales the stored
// timeline by the suggested multiplier. A window is applied at most once: when
// the timeline already moved inside the current window the goal is returned
// unchanged.
func (s *GoalService) ApplyAdjustment(userID, goalID string) (*model.HealthGoal, *compliance.Adjustment, error) {
	unlock := s.locks.lock(goalID)
	defer unlock()

	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, nil, err
	}

	if !goal.IsActive() {
		return nil, nil, fmt.Errorf("%w: goal is %s", ErrInvalidStatusTransition, goal.Status)
	}

	adj, err := s.adjustment(goalID)
	if err != nil {
		return nil, nil, err
	}

	last, err := s.progressRepo.LastAdjustment(goalID)
	if err != nil && !errors.Is(err, repository.ErrNoAdjustment) {
		return nil, nil, fmt.Errorf("failed to load last adjustment: %w", err)
	}
	if last != nil && last.Date.After(s.windowStart()) {
		slog.Debug("compliance window already applied", "goalID", goalID, "appliedAt", last.Date)
		return goal, adj, nil
	}

	updated, days := compliance.Apply(*goal, *adj)

	err = s.transactor.Transact(func(tx *sqlx.Tx) error {
		if days != 0 {
			err := s.repo.WithTx(tx).Update(&updated)
			if err != nil {
				return fmt.Errorf("failed to update goal timeline: %w", err)
			}
		}

		err := s.progressRepo.WithTx(tx).Append(model.ProgressRecord{
			GoalID:                 goalID,
			Date:                   s.now(),
			CurrentValue:           updated.CurrentValue,
			ProgressPercentage:     updated.ProgressPercentage,
			ComplianceRate:         adj.ComplianceRate,
			TimelineAdjustmentDays: days,
		})
		if err != nil {
			return fmt.Errorf("failed to store progress history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if days != 0 {
		slog.Info("goal timeline adjusted",
			"goalID", goalID,
			"rate", adj.ComplianceRate,
			"days", days,
			"weeks", updated.CalculatedTimelineWeeks,
		)
	}

	return &updated, adj, nil
}

// PlanActivity stores an activity linked to goals the user owns.
func (s *GoalService) PlanActivity(userID string, activity *model.Activity) error {
	activity.UserID = userID
	activity.RelatedGoals = model.NewStringSet(activity.RelatedGoals...)

	err := validation.ValidateActivity(activity)
	if err != nil {
		return err
	}

	for _, goalID := range activity.RelatedGoals {
		_, err := s.repo.ByID(userID, goalID)
		if err != nil {
			return fmt.Errorf("activity goal %s: %w", goalID, err)
		}
	}

	return s.activityRepo.Create(activity)
}

func (s *GoalService) adjustment(goalID string) (*compliance.Adjustment, error) {
	window, err := s.complianceRepo.Window(goalID, s.windowStart())
	if err != nil {
		return nil, fmt.Errorf("failed to load compliance window: %w", err)
	}

	adj := compliance.Adjust(goalID, window)
	return &adj, nil
}

// Summary aggregates every goal of the user.
func (s *GoalService) Summary(userID string) (*progress.Summary, error) {
	stored, err := s.repo.Goals(userID, repository.GoalSortPriority)
	if err != nil {
		return nil, err
	}

	goals := make([]model.HealthGoal, len(stored))
	for i, g := range stored {
		goals[i] = *g
	}

	summary := progress.Summarize(goals, s.now())
	return &summary, nil
}

func (s *GoalService) History(userID, goalID string) ([]model.ProgressRecord, error) {
	_, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	return s.progressRepo.History(goalID)
}

func (s *GoalService) windowStart() time.Time {
	return s.now().AddDate(0, 0, -s.windowDays)
}

func (s *GoalService) estimate(goal model.HealthGoal, profile model.UserProfile) model.TimelineCalculation {
	if !timeline.Recognized(goal.GoalType) {
		slog.Debug("unrecognized goal type, using generic timeline", "type", goal.GoalType)
	}
	return timeline.Estimate(goal, profile)
}

func withDefaults(goal model.HealthGoal) model.HealthGoal {
	if goal.Priority == 0 {
		goal.Priority = defaultPriority
	}
	if strings.TrimSpace(goal.Title) == "" {
		goal.Title = goal.GoalType.Label()
	}
	if goal.TimelinePreference == "" {
		goal.TimelinePreference = model.PreferenceModerate
	}
	return goal
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
