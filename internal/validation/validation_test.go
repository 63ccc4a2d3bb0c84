package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/templui/goalpace/internal/model"
)

func TestValidateTitle(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateTitle("Lose 10 kg"))
	assert.Error(t, ValidateTitle("   "))
	assert.Error(t, ValidateTitle(strings.Repeat("x", 201)))
}

func TestValidateProfile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		profile model.UserProfile
		wantErr bool
	}{
		{"valid", model.UserProfile{UserID: "u1", Age: 35, FitnessLevel: model.FitnessIntermediate}, false},
		{"missing user", model.UserProfile{Age: 35}, true},
		{"age out of range", model.UserProfile{UserID: "u1", Age: 130}, true},
		{"unknown fitness", model.UserProfile{UserID: "u1", FitnessLevel: "elite"}, true},
		{"sleep out of range", model.UserProfile{UserID: "u1", LifestyleFactors: model.LifestyleFactors{SleepHours: 25}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateProfile(&tt.profile)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateActivity(t *testing.T) {
	t.Parallel()

	valid := model.Activity{Title: "Walk", RelatedGoals: model.NewStringSet("g1"), ImpactScore: 0.5, ComplianceWeight: 0.8}
	assert.NoError(t, ValidateActivity(&valid))

	noGoals := valid
	noGoals.RelatedGoals = nil
	assert.Error(t, ValidateActivity(&noGoals))

	heavy := valid
	heavy.ImpactScore = 1.5
	assert.Error(t, ValidateActivity(&heavy))
}
