package validation

import (
	"errors"
	"fmt"

	"github.com/templui/goalpace/internal/model"
)

// ValidateProfile checks the ranges the timeline estimator relies on
func ValidateProfile(p *model.UserProfile) error {
	if p.UserID == "" {
		return errors.New("user id is required")
	}

	if p.Age < 0 || p.Age > 120 {
		return fmt.Errorf("age %d is out of range", p.Age)
	}

	switch p.FitnessLevel {
	case "", model.FitnessBeginner, model.FitnessIntermediate, model.FitnessAdvanced:
	default:
		return fmt.Errorf("unknown fitness level %q", p.FitnessLevel)
	}

	if p.SleepHours < 0 || p.SleepHours > 24 {
		return errors.New("sleep hours must be between 0 and 24")
	}

	if p.HeightCM < 0 || p.WeightKG < 0 {
		return errors.New("height and weight must not be negative")
	}

	return nil
}

// ValidateActivity checks the weights compliance tracking multiplies
func ValidateActivity(a *model.Activity) error {
	err := ValidateTitle(a.Title)
	if err != nil {
		return err
	}

	if a.ImpactScore < 0 || a.ImpactScore > 1 {
		return errors.New("impact score must be between 0 and 1")
	}

	if a.ComplianceWeight < 0 || a.ComplianceWeight > 1 {
		return errors.New("compliance weight must be between 0 and 1")
	}

	if len(a.RelatedGoals) == 0 {
		return errors.New("activity must relate to at least one goal")
	}

	return nil
}
