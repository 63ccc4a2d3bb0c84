package timeline

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/templui/goalpace/internal/model"
)

type milestoneStep struct {
	index int // 1-based
	count int
	weeks int
	value float64
}

func (s milestoneStep) fraction() float64 {
	return float64(s.index) / float64(s.count)
}

func (s milestoneStep) percent() int {
	return int(math.Round(s.fraction() * 100))
}

func (s milestoneStep) week() int {
	return max(1, int(math.Round(float64(s.weeks)*s.fraction())))
}

// days is the offset from the start date, truncated to whole days.
func (s milestoneStep) days() int {
	return s.weeks * 7 * s.index / s.count
}

func buildMilestones(m goalModel, g model.HealthGoal, weeks int, start time.Time) []model.Milestone {
	prefix := strings.ReplaceAll(string(g.GoalType), "_", "-")
	if prefix == "" {
		prefix = string(model.GoalTypeCustom)
	}

	milestones := make([]model.Milestone, 0, m.checkpoints)
	for i := 1; i <= m.checkpoints; i++ {
		step := milestoneStep{index: i, count: m.checkpoints, weeks: weeks}
		step.value = milestoneValue(m.milestones, g, step)

		milestones = append(milestones, model.Milestone{
			ID:          fmt.Sprintf("%s-%d", prefix, i),
			Title:       m.title(g, step),
			TargetValue: step.value,
			TargetDate:  start.AddDate(0, 0, step.days()),
		})
	}
	return milestones
}

func milestoneValue(strategy milestoneStrategy, g model.HealthGoal, step milestoneStep) float64 {
	switch strategy {
	case fixedPercentage:
		return g.CurrentValue * (1 - cessationSteps[step.index-1].reduction)
	case repeatTarget:
		return g.TargetValue
	default:
		return g.CurrentValue + (g.TargetValue-g.CurrentValue)*step.fraction()
	}
}
