package model

// TimelineCalculation is the estimator output. It is not persisted on its
// own; a new estimate replaces the previous one wholesale.
type TimelineCalculation struct {
	RealisticWeeks           int         `json:"realistic_weeks"`
	RealisticMonths          int         `json:"realistic_months"`
	WeeklyTarget             float64     `json:"weekly_target"`
	DailyTarget              float64     `json:"daily_target"`
	Milestones               []Milestone `json:"milestones"`
	TimelinePreferenceImpact string      `json:"timeline_preference_impact"`
	SafetyConsiderations     []string    `json:"safety_considerations"`
	SuccessProbability       int         `json:"success_probability"`
}
