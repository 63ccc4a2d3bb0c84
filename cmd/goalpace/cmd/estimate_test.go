package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/goalpace/internal/model"
)

func TestEstimateCmd(t *testing.T) {
	t.Parallel()

	cmd := EstimateCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{
		"--type", "weight_loss",
		"--current", "80",
		"--target", "70",
		"--unit", "kg",
		"--fitness", "intermediate",
		"--start", "2026-01-05",
	})

	require.NoError(t, cmd.Execute())

	var calc model.TimelineCalculation
	require.NoError(t, json.Unmarshal(out.Bytes(), &calc))
	assert.Equal(t, 14, calc.RealisticWeeks)
	assert.Equal(t, 70, calc.SuccessProbability)
	assert.NotEmpty(t, calc.Milestones)
}

func TestEstimateCmdRejectsInvalidGoal(t *testing.T) {
	t.Parallel()

	cmd := EstimateCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--type", "weight_loss", "--current", "70", "--target", "80"})

	assert.Error(t, cmd.Execute())
}
