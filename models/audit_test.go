package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyStatusStampsSubmittedAtOnce(t *testing.T) {
	audit := &Audit{Status: StatusInProgress}

	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, audit.ApplyStatus(StatusSubmitted, first))
	require.NotNil(t, audit.SubmittedAt)
	assert.Equal(t, first, *audit.SubmittedAt)

	// Resending submitted must not overwrite the original timestamp.
	later := first.Add(2 * time.Hour)
	require.NoError(t, audit.ApplyStatus(StatusSubmitted, later))
	assert.Equal(t, first, *audit.SubmittedAt)
}

func TestApplyStatusStampsReviewedAtOnce(t *testing.T) {
	audit := &Audit{Status: StatusSubmitted}

	first := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	require.NoError(t, audit.ApplyStatus(StatusReviewed, first))
	require.NotNil(t, audit.ReviewedAt)
	assert.Equal(t, first, *audit.ReviewedAt)

	require.NoError(t, audit.ApplyStatus(StatusReviewed, first.Add(time.Hour)))
	assert.Equal(t, first, *audit.ReviewedAt)
}

func TestApplyStatusRejectsUnknownTarget(t *testing.T) {
	audit := &Audit{Status: StatusScheduled}

	err := audit.ApplyStatus("archived", time.Now())
	require.Error(t, err)
	assert.Equal(t, StatusScheduled, audit.Status)
	assert.Nil(t, audit.SubmittedAt)
}

func TestApplyStatusPlainTransitionsCarryNoTimestamps(t *testing.T) {
	audit := &Audit{Status: StatusScheduled}

	require.NoError(t, audit.ApplyStatus(StatusInProgress, time.Now()))
	assert.Equal(t, StatusInProgress, audit.Status)
	assert.Nil(t, audit.SubmittedAt)
	assert.Nil(t, audit.ReviewedAt)

	require.NoError(t, audit.ApplyStatus(StatusApproved, time.Now()))
	assert.Nil(t, audit.ReviewedAt)
}

func TestIsValidStatus(t *testing.T) {
	for _, status := range []string{StatusScheduled, StatusInProgress, StatusSubmitted, StatusReviewed, StatusApproved, StatusRejected} {
		assert.True(t, IsValidStatus(status), status)
	}
	assert.False(t, IsValidStatus("completed"))
	assert.False(t, IsValidStatus(""))
}
