package model

import "time"

type FitnessLevel string

const (
	FitnessBeginner     FitnessLevel = "beginner"
	FitnessIntermediate FitnessLevel = "intermediate"
	FitnessAdvanced     FitnessLevel = "advanced"
)

const (
	SmokingCurrent = "current"
	ExerciseNone   = "none"
	ExerciseDaily  = "daily"
	StressHigh     = "high"
	StressLow      = "low"
)

type LifestyleFactors struct {
	SmokingStatus      string  `db:"smoking_status"`
	AlcoholConsumption string  `db:"alcohol_consumption"`
	ExerciseFrequency  string  `db:"exercise_frequency"`
	SleepHours         float64 `db:"sleep_hours"`
	StressLevel        string  `db:"stress_level"`
}

// UserProfile is the read-only snapshot the estimator consumes.
type UserProfile struct {
	UserID           string       `db:"user_id"`
	Age              int          `db:"age"`
	Gender           string       `db:"gender"`
	HeightCM         float64      `db:"height_cm"`
	WeightKG         float64      `db:"weight_kg"`
	FitnessLevel     FitnessLevel `db:"fitness_level"`
	HealthConditions StringSet    `db:"health_conditions"`
	LifestyleFactors
	UpdatedAt time.Time `db:"updated_at"`
}

func (p *UserProfile) IsCurrentSmoker() bool {
	return p.SmokingStatus == SmokingCurrent
}

func (p *UserProfile) ExercisesNever() bool {
	return p.ExerciseFrequency == ExerciseNone
}

func (p *UserProfile) ExercisesDaily() bool {
	return p.ExerciseFrequency == ExerciseDaily
}

func (p *UserProfile) HasHealthConditions() bool {
	return len(p.HealthConditions) > 0
}
