package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/goalpace/internal/service"
)

type countingReviewer struct {
	runs atomic.Int32
}

func (r *countingReviewer) Run(context.Context) (*service.ReviewReport, error) {
	r.runs.Add(1)
	return &service.ReviewReport{}, nil
}

func TestRegisterReviewRejectsInvalidSchedule(t *testing.T) {
	t.Parallel()

	m, err := NewManager()
	require.NoError(t, err)
	m.Start()
	defer m.Stop()

	err = m.RegisterReview("not a cron", &countingReviewer{})
	assert.Error(t, err)

	assert.Error(t, m.RunReviewNow())
}

func TestRunReviewNow(t *testing.T) {
	t.Parallel()

	m, err := NewManager()
	require.NoError(t, err)

	reviewer := &countingReviewer{}
	require.NoError(t, m.RegisterReview("0 3 * * 1", reviewer))

	m.Start()
	defer m.Stop()

	next, err := m.NextReview()
	require.NoError(t, err)
	assert.Equal(t, time.Monday, next.Weekday())

	require.NoError(t, m.RunReviewNow())
	assert.Eventually(t, func() bool {
		return reviewer.runs.Load() == 1
	}, 5*time.Second, 10*time.Millisecond)
}
