// Package progress aggregates a user's goals into a portfolio summary.
package progress

import (
	"time"

	"github.com/templui/goalpace/internal/model"
)

type TimelineStatus string

const (
	StatusOnTrack TimelineStatus = "on_track"
	StatusAhead   TimelineStatus = "ahead"
	StatusBehind  TimelineStatus = "behind"
)

type TimelineCounts struct {
	OnTrack int `json:"onTrack"`
	Ahead   int `json:"ahead"`
	Behind  int `json:"behind"`
}

type NextMilestone struct {
	Title      string    `json:"title"`
	TargetDate time.Time `json:"targetDate"`
}

type GoalProgress struct {
	GoalID           string         `json:"goalId"`
	Title            string         `json:"title"`
	GoalType         model.GoalType `json:"goalType"`
	ExpectedProgress float64        `json:"expectedProgress"`
	ActualProgress   float64        `json:"actualProgress"`
	Status           TimelineStatus `json:"status"`
	NextMilestone    *NextMilestone `json:"nextMilestone,omitempty"`
}

type Summary struct {
	TotalGoals      int            `json:"totalGoals"`
	ActiveGoals     int            `json:"activeGoals"`
	CompletedGoals  int            `json:"completedGoals"`
	AverageProgress float64        `json:"averageProgress"`
	TimelineStatus  TimelineCounts `json:"timelineStatus"`
	Goals           []GoalProgress `json:"goals"`
	GeneratedAt     time.Time      `json:"generatedAt"`
}

// Summarize counts goals by status and classifies every active goal by
// comparing its progress with the share of its timeline already elapsed.
func Summarize(goals []model.HealthGoal, now time.Time) Summary {
	s := Summary{
		TotalGoals:  len(goals),
		GeneratedAt: now,
	}

	var total float64
	for _, g := range goals {
		switch g.Status {
		case model.GoalStatusCompleted:
			s.CompletedGoals++
			continue
		case model.GoalStatusActive:
		default:
			continue
		}

		s.ActiveGoals++
		total += g.ProgressPercentage

		expected := ExpectedProgress(g.StartDate, g.TargetDate, now)
		status := Classify(expected, g.ProgressPercentage)
		switch status {
		case StatusAhead:
			s.TimelineStatus.Ahead++
		case StatusBehind:
			s.TimelineStatus.Behind++
		default:
			s.TimelineStatus.OnTrack++
		}

		gp := GoalProgress{
			GoalID:           g.ID,
			Title:            g.Title,
			GoalType:         g.GoalType,
			ExpectedProgress: expected,
			ActualProgress:   g.ProgressPercentage,
			Status:           status,
		}
		if m := g.NextMilestone(); m != nil {
			gp.NextMilestone = &NextMilestone{Title: m.Title, TargetDate: m.TargetDate}
		}
		s.Goals = append(s.Goals, gp)
	}

	if s.ActiveGoals > 0 {
		s.AverageProgress = total / float64(s.ActiveGoals)
	}
	return s
}

// ExpectedProgress is the elapsed share of the goal's timeline, in percent,
// measured in whole calendar days. A goal whose target date is not after its
// start date is expected to be complete.
func ExpectedProgress(start, target, now time.Time) float64 {
	totalDays := daysBetween(start, target)
	if totalDays <= 0 {
		return 100
	}
	ratio := float64(daysBetween(start, now)) / float64(totalDays)
	return min(1, max(0, ratio)) * 100
}

// Classify compares actual with expected progress using a 10% band. Before
// any progress is expected a goal is on track until it records some.
func Classify(expected, actual float64) TimelineStatus {
	switch {
	case expected <= 0 && actual <= 0:
		return StatusOnTrack
	case actual >= expected*1.1:
		return StatusAhead
	case actual < expected*0.9:
		return StatusBehind
	default:
		return StatusOnTrack
	}
}

func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
