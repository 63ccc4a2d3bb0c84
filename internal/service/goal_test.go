package service

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/goalpace/internal/db"
	"github.com/templui/goalpace/internal/model"
	"github.com/templui/goalpace/internal/repository"
	"github.com/templui/goalpace/internal/timeline"
)

var testNow = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

type fixture struct {
	db       *sqlx.DB
	goals    *GoalService
	profiles *ProfileService
	repo     repository.GoalRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	database, err := db.Init(db.DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, db.RunMigrations(database.DB, db.DriverSQLite))

	goalRepo := repository.NewGoalRepository(database)
	profileRepo := repository.NewProfileRepository(database)

	goals := NewGoalService(
		goalRepo,
		profileRepo,
		repository.NewActivityRepository(database),
		repository.NewComplianceRepository(database),
		repository.NewProgressRepository(database),
		repository.NewTransactor(database),
		0,
	)
	goals.now = func() time.Time { return testNow }

	return &fixture{
		db:       database,
		goals:    goals,
		profiles: NewProfileService(profileRepo),
		repo:     goalRepo,
	}
}

func (f *fixture) profile(t *testing.T, userID string, level model.FitnessLevel) {
	t.Helper()
	require.NoError(t, f.profiles.Save(&model.UserProfile{UserID: userID, Age: 35, FitnessLevel: level}))
}

func (f *fixture) weightLossGoal(t *testing.T, userID string) *model.HealthGoal {
	t.Helper()

	goal, _, err := f.goals.Create(userID, model.HealthGoal{
		GoalType:     model.GoalTypeWeightLoss,
		CurrentValue: 80,
		TargetValue:  70,
		Unit:         "kg",
	})
	require.NoError(t, err)
	return goal
}

func (f *fixture) activity(t *testing.T, userID string, goalIDs ...string) *model.Activity {
	t.Helper()

	activity := &model.Activity{
		Title:            "Morning walk",
		DayNumber:        1,
		RelatedGoals:     model.NewStringSet(goalIDs...),
		ImpactScore:      0.5,
		ComplianceWeight: 0.8,
	}
	require.NoError(t, f.goals.PlanActivity(userID, activity))
	return activity
}

func TestCreateEstimatesAndStoresGoal(t *testing.T) {
	f := newFixture(t)
	f.profile(t, "u1", model.FitnessBeginner)

	goal, calc, err := f.goals.Create("u1", model.HealthGoal{
		GoalType:     model.GoalTypeWeightLoss,
		CurrentValue: 80,
		TargetValue:  70,
		Unit:         "kg",
		Barriers:     model.StringSet{"time", "time", "motivation"},
	})
	require.NoError(t, err)

	assert.Equal(t, 24, calc.RealisticWeeks)
	assert.Equal(t, 50, calc.SuccessProbability)
	assert.Equal(t, "Weight Loss", goal.Title)
	assert.Equal(t, 3, goal.Priority)
	assert.Equal(t, model.PreferenceModerate, goal.TimelinePreference)
	assert.Equal(t, model.StringSet{"time", "motivation"}, goal.Barriers)

	stored, err := f.goals.ByID("u1", goal.ID)
	require.NoError(t, err)
	assert.Equal(t, model.GoalStatusActive, stored.Status)
	assert.Equal(t, 24, stored.CalculatedTimelineWeeks)
	assert.True(t, stored.StartDate.Equal(time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)))
	assert.True(t, stored.TargetDate.Equal(stored.StartDate.AddDate(0, 0, 168)))
	assert.Len(t, stored.Milestones, len(calc.Milestones))

	history, err := f.goals.History("u1", goal.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Zero(t, history[0].ProgressPercentage)
}

func TestCreateKeepsExplicitTargetDate(t *testing.T) {
	f := newFixture(t)
	f.profile(t, "u1", model.FitnessIntermediate)

	target := time.Date(2026, time.December, 24, 0, 0, 0, 0, time.UTC)
	goal, calc, err := f.goals.Create("u1", model.HealthGoal{
		GoalType:     model.GoalTypeWeightLoss,
		CurrentValue: 80,
		TargetValue:  70,
		TargetDate:   target,
	})
	require.NoError(t, err)

	assert.Equal(t, 14, calc.RealisticWeeks)
	assert.True(t, goal.TargetDate.Equal(target))
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.goals.Create("u1", model.HealthGoal{GoalType: model.GoalTypeWeightLoss, CurrentValue: 80, TargetValue: 70})
	assert.ErrorIs(t, err, repository.ErrProfileNotFound)

	f.profile(t, "u1", model.FitnessBeginner)

	_, _, err = f.goals.Create("u1", model.HealthGoal{GoalType: model.GoalTypeWeightLoss, CurrentValue: 70, TargetValue: 80})
	assert.ErrorIs(t, err, timeline.ErrInvalidGoalDefinition)

	_, err = f.goals.Estimate("u1", model.HealthGoal{GoalType: model.GoalTypeWeightGain, CurrentValue: 70, TargetValue: 60})
	assert.ErrorIs(t, err, timeline.ErrInvalidGoalDefinition)
}

func TestEstimateDoesNotStore(t *testing.T) {
	f := newFixture(t)
	f.profile(t, "u1", model.FitnessBeginner)

	calc, err := f.goals.Estimate("u1", model.HealthGoal{GoalType: "meditation", TargetValue: 20})
	require.NoError(t, err)
	assert.Equal(t, 10, calc.RealisticWeeks)

	goals, err := f.goals.Goals("u1", repository.GoalSortRecent)
	require.NoError(t, err)
	assert.Empty(t, goals)
}

func TestStatusTransitions(t *testing.T) {
	f := newFixture(t)
	f.profile(t, "u1", model.FitnessBeginner)
	goal := f.weightLossGoal(t, "u1")

	paused, err := f.goals.Pause("u1", goal.ID)
	require.NoError(t, err)
	assert.Equal(t, model.GoalStatusPaused, paused.Status)

	_, err = f.goals.Complete("u1", goal.ID)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)

	_, err = f.goals.Resume("u1", goal.ID)
	require.NoError(t, err)

	done, err := f.goals.Complete("u1", goal.ID)
	require.NoError(t, err)
	assert.Equal(t, model.GoalStatusCompleted, done.Status)
	assert.InDelta(t, 100.0, done.ProgressPercentage, 1e-9)

	_, err = f.goals.Cancel("u1", goal.ID)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)

	_, err = f.goals.Pause("u2", goal.ID)
	assert.ErrorIs(t, err, repository.ErrGoalNotFound)
}

func TestCompleteMilestone(t *testing.T) {
	f := newFixture(t)
	f.profile(t, "u1", model.FitnessBeginner)
	goal := f.weightLossGoal(t, "u1")
	require.NotEmpty(t, goal.Milestones)

	first := goal.Milestones[0].ID
	updated, err := f.goals.CompleteMilestone("u1", goal.ID, first)
	require.NoError(t, err)
	assert.True(t, updated.Milestones[0].Completed)
	require.NotNil(t, updated.Milestones[0].CompletedDate)

	next := updated.NextMilestone()
	require.NotNil(t, next)
	assert.Equal(t, goal.Milestones[1].ID, next.ID)

	_, err = f.goals.CompleteMilestone("u1", goal.ID, "missing")
	assert.ErrorIs(t, err, ErrMilestoneNotFound)
}

func TestReestimateReplacesTimeline(t *testing.T) {
	f := newFixture(t)
	f.profile(t, "u1", model.FitnessBeginner)
	goal := f.weightLossGoal(t, "u1")

	goal.CurrentValue = 75
	require.NoError(t, f.repo.Update(goal))

	updated, calc, err := f.goals.Reestimate("u1", goal.ID)
	require.NoError(t, err)
	assert.Equal(t, calc.RealisticWeeks, updated.CalculatedTimelineWeeks)
	assert.Less(t, updated.CalculatedTimelineWeeks, 24)
	assert.True(t, updated.TargetDate.Equal(time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC).AddDate(0, 0, calc.RealisticWeeks*7)))
}

func TestRecordComplianceUpdatesLinkedGoals(t *testing.T) {
	f := newFixture(t)
	f.profile(t, "u1", model.FitnessBeginner)
	linked := f.weightLossGoal(t, "u1")
	other := f.weightLossGoal(t, "u1")
	activity := f.activity(t, "u1", linked.ID)

	res, err := f.goals.RecordCompliance("u1", activity.ID, "completed", "easy")
	require.NoError(t, err)
	assert.Equal(t, []string{linked.ID}, res.Updated)

	got, err := f.goals.ByID("u1", linked.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, got.ProgressPercentage, 1e-9)
	assert.Equal(t, 24, got.CalculatedTimelineWeeks)

	untouched, err := f.goals.ByID("u1", other.ID)
	require.NoError(t, err)
	assert.Zero(t, untouched.ProgressPercentage)

	history, err := f.goals.History("u1", linked.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	_, err = f.goals.RecordCompliance("u1", activity.ID, "forgot", "")
	assert.ErrorIs(t, err, model.ErrUnknownComplianceStatus)

	_, err = f.goals.RecordCompliance("u2", activity.ID, "completed", "")
	assert.ErrorIs(t, err, repository.ErrActivityNotFound)
}

func TestRecordComplianceRollsBackOnFailedWrite(t *testing.T) {
	f := newFixture(t)
	f.profile(t, "u1", model.FitnessBeginner)
	goal := f.weightLossGoal(t, "u1")
	activity := f.activity(t, "u1", goal.ID)

	_, err := f.db.Exec(`DROP TABLE compliance_event_goals`)
	require.NoError(t, err)

	_, err = f.goals.RecordCompliance("u1", activity.ID, "completed", "")
	require.Error(t, err)

	got, err := f.goals.ByID("u1", goal.ID)
	require.NoError(t, err)
	assert.Zero(t, got.ProgressPercentage)

	var events int
	require.NoError(t, f.db.Get(&events, `SELECT COUNT(*) FROM compliance_events`))
	assert.Zero(t, events)

	history, err := f.goals.History("u1", goal.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestPlanActivityRequiresOwnedGoals(t *testing.T) {
	f := newFixture(t)
	f.profile(t, "u1", model.FitnessBeginner)

	err := f.goals.PlanActivity("u1", &model.Activity{
		Title:            "Walk",
		RelatedGoals:     model.NewStringSet("not-mine"),
		ImpactScore:      0.5,
		ComplianceWeight: 0.5,
	})
	assert.ErrorIs(t, err, repository.ErrGoalNotFound)
}

func TestRecordComplianceSerializesConcurrentReports(t *testing.T) {
	f := newFixture(t)
	f.profile(t, "u1", model.FitnessBeginner)
	goal := f.weightLossGoal(t, "u1")
	activity := f.activity(t, "u1", goal.ID)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.goals.RecordCompliance("u1", activity.ID, "completed", "")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := f.goals.ByID("u1", goal.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, got.ProgressPercentage, 1e-9)
}

func TestApplyAdjustmentExtendsTimelineOnLowCompliance(t *testing.T) {
	f := newFixture(t)
	f.profile(t, "u1", model.FitnessBeginner)
	goal := f.weightLossGoal(t, "u1")
	activity := f.activity(t, "u1", goal.ID)

	for range 3 {
		_, err := f.goals.RecordCompliance("u1", activity.ID, "skipped", "")
		require.NoError(t, err)
	}

	adj, err := f.goals.Adjustment("u1", goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, adj.Events)
	assert.InDelta(t, 1.2, adj.TimelineMultiplier, 1e-9)

	stored, err := f.goals.ByID("u1", goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 24, stored.CalculatedTimelineWeeks, "evaluating must not change the goal")

	updated, _, err := f.goals.ApplyAdjustment("u1", goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 29, updated.CalculatedTimelineWeeks)
	assert.True(t, updated.TargetDate.Equal(goal.TargetDate.AddDate(0, 0, 35)))

	history, err := f.goals.History("u1", goal.ID)
	require.NoError(t, err)
	last := history[len(history)-1]
	assert.Equal(t, 35, last.TimelineAdjustmentDays)
	assert.Zero(t, last.ComplianceRate)
}

func TestApplyAdjustmentOncePerWindow(t *testing.T) {
	f := newFixture(t)
	f.profile(t, "u1", model.FitnessBeginner)
	goal := f.weightLossGoal(t, "u1")
	activity := f.activity(t, "u1", goal.ID)

	for range 3 {
		_, err := f.goals.RecordCompliance("u1", activity.ID, "skipped", "")
		require.NoError(t, err)
	}

	for range 3 {
		updated, adj, err := f.goals.ApplyAdjustment("u1", goal.ID)
		require.NoError(t, err)
		assert.Equal(t, 29, updated.CalculatedTimelineWeeks)
		assert.InDelta(t, 1.2, adj.TimelineMultiplier, 1e-9)
	}

	stored, err := f.goals.ByID("u1", goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 29, stored.CalculatedTimelineWeeks)
	assert.True(t, stored.TargetDate.Equal(goal.TargetDate.AddDate(0, 0, 35)))

	// a week later the old events have left the window
	f.goals.now = func() time.Time { return testNow.AddDate(0, 0, 8) }
	for range 3 {
		_, err := f.goals.RecordCompliance("u1", activity.ID, "skipped", "")
		require.NoError(t, err)
	}

	updated, _, err := f.goals.ApplyAdjustment("u1", goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 35, updated.CalculatedTimelineWeeks)

	history, err := f.goals.History("u1", goal.ID)
	require.NoError(t, err)
	var moved []int
	for _, rec := range history {
		if rec.TimelineAdjustmentDays != 0 {
			moved = append(moved, rec.TimelineAdjustmentDays)
		}
	}
	assert.Equal(t, []int{35, 42}, moved)
}

func TestApplyAdjustmentWithoutEventsKeepsTimeline(t *testing.T) {
	f := newFixture(t)
	f.profile(t, "u1", model.FitnessBeginner)
	goal := f.weightLossGoal(t, "u1")

	updated, adj, err := f.goals.ApplyAdjustment("u1", goal.ID)
	require.NoError(t, err)
	assert.Zero(t, adj.Events)
	assert.Equal(t, 24, updated.CalculatedTimelineWeeks)

	_, err = f.goals.Pause("u1", goal.ID)
	require.NoError(t, err)
	_, _, err = f.goals.ApplyAdjustment("u1", goal.ID)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestSummary(t *testing.T) {
	f := newFixture(t)
	f.profile(t, "u1", model.FitnessBeginner)
	active := f.weightLossGoal(t, "u1")
	done := f.weightLossGoal(t, "u1")
	_, err := f.goals.Complete("u1", done.ID)
	require.NoError(t, err)

	summary, err := f.goals.Summary("u1")
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalGoals)
	assert.Equal(t, 1, summary.ActiveGoals)
	assert.Equal(t, 1, summary.CompletedGoals)
	require.Len(t, summary.Goals, 1)
	assert.Equal(t, active.ID, summary.Goals[0].GoalID)
	assert.NotNil(t, summary.Goals[0].NextMilestone)
	assert.Equal(t, testNow, summary.GeneratedAt)
}
