package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/interview-manager/backend/internal/domain"
)

func newBookingInterview() *domain.Interview {
	return &domain.Interview{
		ID:              1,
		ApplicationID:   1,
		Status:          domain.InterviewStatusAwaitingApplicantSlotSelection,
		DurationMinutes: 60,
	}
}

func newTestBooker(store *fakeRuleStore, now time.Time) *Booker {
	return NewBooker(newTestResolver(store, now))
}

func TestBookSlotConfirmsInterview(t *testing.T) {
	store := &fakeRuleStore{
		rules: []*domain.AvailabilityRule{mondayRule("09:00:00", "17:00:00", false)},
	}
	b := newTestBooker(store, monday)
	iv := newBookingInterview()

	chosen := monday.Add(10 * time.Hour)
	require.NoError(t, b.BookSlot(context.Background(), iv, 1, chosen, "已和审核官沟通"))

	assert.Equal(t, domain.InterviewStatusConfirmed, iv.Status)
	require.NotNil(t, iv.ScheduledAt)
	assert.True(t, iv.ScheduledAt.Equal(chosen))
	require.NotNil(t, iv.ConfirmedBy)
	assert.Equal(t, domain.RoleApplicant, *iv.ConfirmedBy)
	assert.Equal(t, "已和审核官沟通", iv.Observations)
}

func TestBookSlotRejectsMisalignedStart(t *testing.T) {
	store := &fakeRuleStore{
		rules: []*domain.AvailabilityRule{mondayRule("09:00:00", "17:00:00", false)},
	}
	b := newTestBooker(store, monday)
	iv := newBookingInterview()

	// 偏离任何时段开始时间一分钟都不允许，不做取整
	err := b.BookSlot(context.Background(), iv, 1, monday.Add(10*time.Hour+time.Minute), "")
	var schedErr *Error
	require.ErrorAs(t, err, &schedErr)
	assert.Equal(t, KindValidation, schedErr.Kind)

	assert.Equal(t, domain.InterviewStatusAwaitingApplicantSlotSelection, iv.Status)
	assert.Nil(t, iv.ScheduledAt)
	assert.Nil(t, iv.ConfirmedBy)
	assert.Empty(t, iv.Observations)
}

func TestBookSlotRejectsAlreadyBookedSlot(t *testing.T) {
	store := &fakeRuleStore{
		rules: []*domain.AvailabilityRule{mondayRule("09:00:00", "17:00:00", false)},
		booked: []domain.BookedInterval{
			{Start: monday.Add(10 * time.Hour), End: monday.Add(11 * time.Hour)},
		},
	}
	b := newTestBooker(store, monday)
	iv := newBookingInterview()

	err := b.BookSlot(context.Background(), iv, 1, monday.Add(10*time.Hour), "")
	var schedErr *Error
	require.ErrorAs(t, err, &schedErr)
	assert.Equal(t, KindValidation, schedErr.Kind)
	assert.Equal(t, domain.InterviewStatusAwaitingApplicantSlotSelection, iv.Status)
}

func TestBookSlotRequiresSlotSelectionStatus(t *testing.T) {
	store := &fakeRuleStore{
		rules: []*domain.AvailabilityRule{mondayRule("09:00:00", "17:00:00", false)},
	}
	b := newTestBooker(store, monday)

	iv := newBookingInterview()
	iv.Status = domain.InterviewStatusAwaitingReviewerConfirmation

	err := b.BookSlot(context.Background(), iv, 1, monday.Add(10*time.Hour), "")
	var schedErr *Error
	require.ErrorAs(t, err, &schedErr)
	assert.Equal(t, KindConflict, schedErr.Kind)
}
