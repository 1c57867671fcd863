package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/interview-manager/backend/internal/domain"
)

func newConfirmedInterview() *domain.Interview {
	scheduledAt := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	confirmedBy := domain.RoleApplicant

	return &domain.Interview{
		ID:              1,
		ApplicationID:   1,
		Status:          domain.InterviewStatusConfirmed,
		ScheduledAt:     &scheduledAt,
		ConfirmedBy:     &confirmedBy,
		DurationMinutes: 30,
	}
}

func TestRequestRescheduleReopensInterview(t *testing.T) {
	iv := newConfirmedInterview()

	require.NoError(t, RequestReschedule(iv, domain.RoleReviewer, "当天临时有事"))

	assert.Equal(t, domain.InterviewStatusAwaitingApplicantSlotSelection, iv.Status)
	assert.Nil(t, iv.ScheduledAt)
	assert.Nil(t, iv.ConfirmedBy)
	assert.Empty(t, iv.ProposedDates)
	assert.Equal(t, "当天临时有事", iv.Observations)
}

func TestRequestRescheduleIsIdempotentInEffect(t *testing.T) {
	iv := newConfirmedInterview()

	require.NoError(t, RequestReschedule(iv, domain.RoleReviewer, "第一次"))
	require.NoError(t, RequestReschedule(iv, domain.RoleReviewer, "第二次"))

	// 重复调用的结果状态不变，只更新备注
	assert.Equal(t, domain.InterviewStatusAwaitingApplicantSlotSelection, iv.Status)
	assert.Nil(t, iv.ScheduledAt)
	assert.Equal(t, "第二次", iv.Observations)
}

func TestRequestRescheduleRequiresConfirmedInterview(t *testing.T) {
	iv := newConfirmedInterview()
	iv.Status = domain.InterviewStatusAwaitingReviewerConfirmation

	err := RequestReschedule(iv, domain.RoleReviewer, "")
	var schedErr *Error
	require.ErrorAs(t, err, &schedErr)
	assert.Equal(t, KindConflict, schedErr.Kind)
	assert.Equal(t, domain.InterviewStatusAwaitingReviewerConfirmation, iv.Status)
}

func TestRequestRescheduleRejectsOutsider(t *testing.T) {
	iv := newConfirmedInterview()

	err := RequestReschedule(iv, domain.RoleAdmin, "")
	var schedErr *Error
	require.ErrorAs(t, err, &schedErr)
	assert.Equal(t, KindValidation, schedErr.Kind)
	assert.Equal(t, domain.InterviewStatusConfirmed, iv.Status)
}
