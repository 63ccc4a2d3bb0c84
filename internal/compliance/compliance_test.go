package compliance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/goalpace/internal/model"
)

var now = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func activity(goalIDs ...string) model.Activity {
	return model.Activity{
		ID:               "walk",
		DayNumber:        3,
		RelatedGoals:     model.NewStringSet(goalIDs...),
		ImpactScore:      0.5,
		ComplianceWeight: 0.8,
	}
}

func TestRecordAppliesSignedDeltas(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status model.ComplianceStatus
		want   float64
	}{
		{model.ComplianceCompleted, 10.4},
		{model.CompliancePartial, 10.2},
		{model.ComplianceModified, 10.28},
		{model.ComplianceSkipped, 9.88},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			t.Parallel()

			goals := []model.HealthGoal{{ID: "g1", ProgressPercentage: 10, CalculatedTimelineWeeks: 12}}

			res, err := Record(goals, activity("g1"), tt.status, "", now)
			require.NoError(t, err)

			assert.InDelta(t, tt.want, res.Goals[0].ProgressPercentage, 1e-9)
			assert.Equal(t, 12, res.Goals[0].CalculatedTimelineWeeks)
			assert.InDelta(t, 10.0, goals[0].ProgressPercentage, 1e-9, "input must not change")
		})
	}
}

func TestRecordOnlyTouchesLinkedGoals(t *testing.T) {
	t.Parallel()

	goals := []model.HealthGoal{
		{ID: "g1", ProgressPercentage: 20, CurrentValue: 80},
		{ID: "g2", ProgressPercentage: 20},
	}

	res, err := Record(goals, activity("g1", "missing"), model.ComplianceCompleted, "felt good", now)
	require.NoError(t, err)

	require.Len(t, res.Goals, 2)
	assert.InDelta(t, 20.4, res.Goals[0].ProgressPercentage, 1e-9)
	assert.InDelta(t, 20.0, res.Goals[1].ProgressPercentage, 1e-9)
	assert.Equal(t, []string{"g1"}, res.Updated)

	require.Len(t, res.History, 1)
	record := res.History[0]
	assert.Equal(t, "g1", record.GoalID)
	assert.Equal(t, now, record.Date)
	assert.InDelta(t, 80.0, record.CurrentValue, 1e-9)
	assert.InDelta(t, 20.4, record.ProgressPercentage, 1e-9)
	assert.Zero(t, record.ComplianceRate)
	assert.Zero(t, record.TimelineAdjustmentDays)

	assert.NotEmpty(t, res.Event.ID)
	assert.Equal(t, "walk", res.Event.ActivityID)
	assert.Equal(t, model.StringSet{"g1", "missing"}, res.Event.GoalIDs)
	assert.Equal(t, 3, res.Event.DayNumber)
	assert.Equal(t, "felt good", res.Event.Notes)
}

func TestRecordClampsProgress(t *testing.T) {
	t.Parallel()

	big := model.Activity{ID: "a", RelatedGoals: model.NewStringSet("g"), ImpactScore: 1, ComplianceWeight: 1}
	goals := []model.HealthGoal{{ID: "g", ProgressPercentage: 99.5}}

	for i := 0; i < 5; i++ {
		res, err := Record(goals, big, model.ComplianceCompleted, "", now)
		require.NoError(t, err)
		goals = res.Goals
		assert.LessOrEqual(t, goals[0].ProgressPercentage, 100.0)
	}
	assert.InDelta(t, 100.0, goals[0].ProgressPercentage, 1e-9)

	goals[0].ProgressPercentage = 0.1
	res, err := Record(goals, big, model.ComplianceSkipped, "", now)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, res.Goals[0].ProgressPercentage, 1e-9)
}

func TestRecordRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	_, err := Record(nil, activity("g1"), "forgot", "", now)
	assert.ErrorIs(t, err, model.ErrUnknownComplianceStatus)
}

func events(completed, total int, at time.Time) []model.ComplianceEvent {
	var out []model.ComplianceEvent
	for i := 0; i < total; i++ {
		status := model.ComplianceSkipped
		if i < completed {
			status = model.ComplianceCompleted
		}
		out = append(out, model.ComplianceEvent{
			GoalIDs:   model.NewStringSet("g1"),
			Status:    status,
			Timestamp: at,
		})
	}
	return out
}

func TestAdjustThresholds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		completed     int
		total         int
		wantRate      float64
		wantTimeline  float64
		wantIntensity float64
	}{
		{"low", 2, 10, 0.2, 1.2, 0.8},
		{"steady", 6, 10, 0.6, 1.0, 1.0},
		{"exactly high threshold is steady", 8, 10, 0.8, 1.0, 1.0},
		{"high", 9, 10, 0.9, 0.9, 1.1},
		{"exactly low threshold is steady", 5, 10, 0.5, 1.0, 1.0},
		{"empty", 0, 0, 0, 1.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			adj := Adjust("g1", events(tt.completed, tt.total, now))

			assert.Equal(t, "g1", adj.GoalID)
			assert.InDelta(t, tt.wantRate, adj.ComplianceRate, 1e-9)
			assert.InDelta(t, tt.wantTimeline, adj.TimelineMultiplier, 1e-9)
			assert.InDelta(t, tt.wantIntensity, adj.IntensityMultiplier, 1e-9)
			assert.NotEmpty(t, adj.Recommendations)
		})
	}
}

func TestWindowKeepsTrailingSevenDays(t *testing.T) {
	t.Parallel()

	all := append(events(1, 1, now.Add(-time.Hour)), events(1, 1, now.AddDate(0, 0, -8))...)
	all = append(all, model.ComplianceEvent{GoalIDs: model.NewStringSet("other"), Status: model.ComplianceCompleted, Timestamp: now})

	assert.Len(t, Window(all, "g1", now), 1)
	assert.Len(t, Window(all, "", now), 2)
}

func TestApplyStretchesTimeline(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	done := start.AddDate(0, 0, 7)
	goal := model.HealthGoal{
		ID:                      "g1",
		CalculatedTimelineWeeks: 10,
		TargetDate:              start.AddDate(0, 0, 70),
		Milestones: model.Milestones{
			{ID: "m1", TargetDate: start.AddDate(0, 0, 14), Completed: true, CompletedDate: &done},
			{ID: "m2", TargetDate: start.AddDate(0, 0, 70)},
		},
	}

	updated, days := Apply(goal, Adjustment{TimelineMultiplier: 1.2})

	assert.Equal(t, 14, days)
	assert.Equal(t, 12, updated.CalculatedTimelineWeeks)
	assert.Equal(t, start.AddDate(0, 0, 84), updated.TargetDate)
	assert.Equal(t, start.AddDate(0, 0, 14), updated.Milestones[0].TargetDate)
	assert.Equal(t, start.AddDate(0, 0, 84), updated.Milestones[1].TargetDate)
	assert.Equal(t, start.AddDate(0, 0, 70), goal.Milestones[1].TargetDate, "input must not change")

	shortened, days := Apply(goal, Adjustment{TimelineMultiplier: 0.9})
	assert.Equal(t, -7, days)
	assert.Equal(t, 9, shortened.CalculatedTimelineWeeks)
	assert.Equal(t, start.AddDate(0, 0, 63), shortened.TargetDate)

	for weeks, want := range map[int]int{1: 1, 6: 5, 8: 7, 9: 8, 24: 21} {
		g := model.HealthGoal{CalculatedTimelineWeeks: weeks}
		got, days := Apply(g, Adjustment{TimelineMultiplier: 0.9})
		assert.Equal(t, want, got.CalculatedTimelineWeeks, "%d weeks", weeks)
		assert.Equal(t, (want-weeks)*7, days, "%d weeks", weeks)
	}

	same, days := Apply(goal, Adjustment{TimelineMultiplier: 1.0})
	assert.Zero(t, days)
	assert.Equal(t, goal, same)
}
