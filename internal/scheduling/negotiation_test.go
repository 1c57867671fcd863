package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/interview-manager/backend/internal/domain"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestNegotiator() *Negotiator {
	n := NewNegotiator()
	n.now = func() time.Time { return testNow }
	return n
}

func newNegotiationInterview() *domain.Interview {
	return &domain.Interview{
		ID:              1,
		ApplicationID:   1,
		Status:          domain.InterviewStatusAwaitingReviewerProposedDates,
		DurationMinutes: 30,
	}
}

func TestNegotiationRoundTrip(t *testing.T) {
	n := newTestNegotiator()
	iv := newNegotiationInterview()

	d1 := testNow.AddDate(0, 0, 1)
	d2 := testNow.AddDate(0, 0, 2)
	d3 := testNow.AddDate(0, 0, 3)

	require.NoError(t, n.ProposeDates(iv, domain.RoleApplicant, []time.Time{d1, d2}, "下午都可以"))
	assert.Equal(t, domain.InterviewStatusAwaitingReviewerConfirmation, iv.Status)
	assert.Equal(t, []time.Time{d1, d2}, iv.ProposedDates)

	require.NoError(t, n.ProposeDates(iv, domain.RoleReviewer, []time.Time{d3}, "这两天不行，换一天"))
	assert.Equal(t, domain.InterviewStatusAwaitingApplicantConfirmation, iv.Status)
	assert.Equal(t, []time.Time{d3}, iv.ProposedDates)
	assert.Equal(t, "这两天不行，换一天", iv.Observations)

	require.NoError(t, n.ConfirmDate(iv, domain.RoleApplicant, d3))
	assert.Equal(t, domain.InterviewStatusConfirmed, iv.Status)
	require.NotNil(t, iv.ScheduledAt)
	assert.True(t, iv.ScheduledAt.Equal(d3))
	require.NotNil(t, iv.ConfirmedBy)
	assert.Equal(t, domain.RoleApplicant, *iv.ConfirmedBy)
	assert.Empty(t, iv.ProposedDates)
}

func TestProposeDatesTwiceBySamePartyConflicts(t *testing.T) {
	n := newTestNegotiator()
	iv := newNegotiationInterview()

	d1 := testNow.AddDate(0, 0, 1)
	require.NoError(t, n.ProposeDates(iv, domain.RoleApplicant, []time.Time{d1}, ""))

	err := n.ProposeDates(iv, domain.RoleApplicant, []time.Time{d1.Add(time.Hour)}, "")
	var schedErr *Error
	require.ErrorAs(t, err, &schedErr)
	assert.Equal(t, KindConflict, schedErr.Kind)
}

func TestReviewerCannotOpenNegotiation(t *testing.T) {
	n := newTestNegotiator()
	iv := newNegotiationInterview()

	err := n.ProposeDates(iv, domain.RoleReviewer, []time.Time{testNow.AddDate(0, 0, 1)}, "")
	var schedErr *Error
	require.ErrorAs(t, err, &schedErr)
	assert.Equal(t, KindConflict, schedErr.Kind)
	assert.Equal(t, domain.InterviewStatusAwaitingReviewerProposedDates, iv.Status)
}

func TestProposeDatesValidation(t *testing.T) {
	n := newTestNegotiator()
	d1 := testNow.AddDate(0, 0, 1)

	testCases := []struct {
		name  string
		dates []time.Time
	}{
		{name: "没有候选时间", dates: []time.Time{}},
		{name: "候选时间过多", dates: []time.Time{d1, d1.Add(time.Hour), d1.Add(2 * time.Hour), d1.Add(3 * time.Hour)}},
		{name: "候选时间在过去", dates: []time.Time{testNow.AddDate(0, 0, -1)}},
		{name: "候选时间重复", dates: []time.Time{d1, d1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			iv := newNegotiationInterview()
			err := n.ProposeDates(iv, domain.RoleApplicant, tc.dates, "")
			var schedErr *Error
			require.ErrorAs(t, err, &schedErr)
			assert.Equal(t, KindValidation, schedErr.Kind)
			assert.Equal(t, domain.InterviewStatusAwaitingReviewerProposedDates, iv.Status)
			assert.Empty(t, iv.ProposedDates)
		})
	}
}

func TestProposeDatesReplacesPreviousRound(t *testing.T) {
	n := newTestNegotiator()
	iv := newNegotiationInterview()

	d1 := testNow.AddDate(0, 0, 1)
	d2 := testNow.AddDate(0, 0, 2)
	d3 := testNow.AddDate(0, 0, 3)

	require.NoError(t, n.ProposeDates(iv, domain.RoleApplicant, []time.Time{d1, d2}, "第一轮"))
	require.NoError(t, n.ProposeDates(iv, domain.RoleReviewer, []time.Time{d3}, "第二轮"))

	// 新一轮提议完全替换之前的候选时间和备注，不做合并
	assert.Equal(t, []time.Time{d3}, iv.ProposedDates)
	assert.Equal(t, "第二轮", iv.Observations)
}

func TestConfirmDateNotInProposedDates(t *testing.T) {
	n := newTestNegotiator()
	iv := newNegotiationInterview()

	d1 := testNow.AddDate(0, 0, 1)
	require.NoError(t, n.ProposeDates(iv, domain.RoleApplicant, []time.Time{d1}, "备注"))

	err := n.ConfirmDate(iv, domain.RoleReviewer, d1.Add(time.Minute))
	var schedErr *Error
	require.ErrorAs(t, err, &schedErr)
	assert.Equal(t, KindValidation, schedErr.Kind)

	// 确认失败时不允许有任何改动
	assert.Equal(t, domain.InterviewStatusAwaitingReviewerConfirmation, iv.Status)
	assert.Equal(t, []time.Time{d1}, iv.ProposedDates)
	assert.Nil(t, iv.ScheduledAt)
	assert.Nil(t, iv.ConfirmedBy)
}

func TestConfirmDateByWrongParty(t *testing.T) {
	n := newTestNegotiator()
	iv := newNegotiationInterview()

	d1 := testNow.AddDate(0, 0, 1)
	require.NoError(t, n.ProposeDates(iv, domain.RoleApplicant, []time.Time{d1}, ""))

	// 提议方不能确认自己刚提出的时间，现在轮到审核官
	err := n.ConfirmDate(iv, domain.RoleApplicant, d1)
	var schedErr *Error
	require.ErrorAs(t, err, &schedErr)
	assert.Equal(t, KindValidation, schedErr.Kind)
	assert.Equal(t, domain.InterviewStatusAwaitingReviewerConfirmation, iv.Status)
}

func TestConfirmDateFromUnconfirmableStatus(t *testing.T) {
	n := newTestNegotiator()
	iv := newNegotiationInterview()

	err := n.ConfirmDate(iv, domain.RoleReviewer, testNow.AddDate(0, 0, 1))
	var schedErr *Error
	require.ErrorAs(t, err, &schedErr)
	assert.Equal(t, KindConflict, schedErr.Kind)
}

func TestNegotiationAllowsUnboundedRounds(t *testing.T) {
	n := newTestNegotiator()
	iv := newNegotiationInterview()

	// 双方来回反提议没有轮数限制
	for i := 0; i < 5; i++ {
		d := testNow.AddDate(0, 0, i+1)
		require.NoError(t, n.ProposeDates(iv, domain.RoleApplicant, []time.Time{d}, ""))
		require.NoError(t, n.ProposeDates(iv, domain.RoleReviewer, []time.Time{d.Add(time.Hour)}, ""))
	}

	assert.Equal(t, domain.InterviewStatusAwaitingApplicantConfirmation, iv.Status)
}
