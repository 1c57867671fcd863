package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/interview-manager/backend/internal/domain"
)

type fakeRuleStore struct {
	rules  []*domain.AvailabilityRule
	booked []domain.BookedInterval
}

func (s *fakeRuleStore) GetActiveRules(ctx context.Context, ownerID int64, ownerRole domain.Role, from time.Time, to time.Time) ([]*domain.AvailabilityRule, error) {
	return s.rules, nil
}

func (s *fakeRuleStore) GetBookedIntervals(ctx context.Context, ownerID int64, from time.Time, to time.Time) ([]domain.BookedInterval, error) {
	return s.booked, nil
}

// 2025-06-02 是周一
var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func newTestResolver(store *fakeRuleStore, now time.Time) *Resolver {
	r := NewResolver(store)
	r.now = func() time.Time { return now }
	return r
}

func mondayRule(startTime string, endTime string, isExclusion bool) *domain.AvailabilityRule {
	return &domain.AvailabilityRule{
		OwnerID:     1,
		OwnerRole:   domain.RoleReviewer,
		DayOfWeek:   1,
		StartTime:   startTime,
		EndTime:     endTime,
		ActiveFrom:  monday.AddDate(0, -1, 0),
		IsExclusion: isExclusion,
	}
}

func TestComputeFreeSlotsRejectsBadArguments(t *testing.T) {
	r := newTestResolver(&fakeRuleStore{}, monday)

	_, err := r.ComputeFreeSlots(context.Background(), 1, domain.RoleReviewer, monday, monday.AddDate(0, 0, 1), 0)
	var schedErr *Error
	require.ErrorAs(t, err, &schedErr)
	assert.Equal(t, KindValidation, schedErr.Kind)

	_, err = r.ComputeFreeSlots(context.Background(), 1, domain.RoleReviewer, monday.AddDate(0, 0, 1), monday, time.Hour)
	require.ErrorAs(t, err, &schedErr)
	assert.Equal(t, KindValidation, schedErr.Kind)
}

func TestComputeFreeSlotsCoversRuleWindow(t *testing.T) {
	store := &fakeRuleStore{
		rules: []*domain.AvailabilityRule{mondayRule("09:00:00", "17:00:00", false)},
	}
	r := newTestResolver(store, monday)

	slots, err := r.ComputeFreeSlots(context.Background(), 1, domain.RoleReviewer, monday, monday.AddDate(0, 0, 1), time.Hour)
	require.NoError(t, err)

	// 8 小时的窗口应该恰好切成 8 个首尾相接的时段
	require.Len(t, slots, 8)
	for i, slot := range slots {
		assert.Equal(t, monday.Add(time.Duration(9+i)*time.Hour), slot.Start)
		assert.Equal(t, slot.Start.Add(time.Hour), slot.End)
	}
}

func TestComputeFreeSlotsDiscardsTrailingRemainder(t *testing.T) {
	store := &fakeRuleStore{
		rules: []*domain.AvailabilityRule{mondayRule("09:00:00", "12:30:00", false)},
	}
	r := newTestResolver(store, monday)

	slots, err := r.ComputeFreeSlots(context.Background(), 1, domain.RoleReviewer, monday, monday.AddDate(0, 0, 1), time.Hour)
	require.NoError(t, err)

	// 3.5 小时只能切出 3 个完整时段，末尾的半小时被丢弃
	require.Len(t, slots, 3)
	assert.Equal(t, monday.Add(11*time.Hour), slots[2].Start)
}

func TestComputeFreeSlotsSubtractsExclusionWindow(t *testing.T) {
	store := &fakeRuleStore{
		rules: []*domain.AvailabilityRule{
			mondayRule("09:00:00", "17:00:00", false),
			mondayRule("12:00:00", "13:00:00", true),
		},
	}
	r := newTestResolver(store, monday)

	slots, err := r.ComputeFreeSlots(context.Background(), 1, domain.RoleReviewer, monday, monday.AddDate(0, 0, 1), time.Hour)
	require.NoError(t, err)

	// 排除窗口只应该去掉 12:00 ~ 13:00 这一个时段
	require.Len(t, slots, 7)
	for _, slot := range slots {
		assert.False(t, slot.Start.Equal(monday.Add(12*time.Hour)))
	}
}

func TestComputeFreeSlotsFullDayExclusion(t *testing.T) {
	store := &fakeRuleStore{
		rules: []*domain.AvailabilityRule{
			mondayRule("09:00:00", "17:00:00", false),
			mondayRule("", "", true), // 没有写明窗口的排除规则覆盖整天
		},
	}
	r := newTestResolver(store, monday)

	slots, err := r.ComputeFreeSlots(context.Background(), 1, domain.RoleReviewer, monday, monday.AddDate(0, 0, 1), time.Hour)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestComputeFreeSlotsSubtractsBookedIntervals(t *testing.T) {
	store := &fakeRuleStore{
		rules: []*domain.AvailabilityRule{mondayRule("09:00:00", "12:00:00", false)},
		booked: []domain.BookedInterval{
			{Start: monday.Add(10 * time.Hour), End: monday.Add(10*time.Hour + 30*time.Minute)},
		},
	}
	r := newTestResolver(store, monday)

	slots, err := r.ComputeFreeSlots(context.Background(), 1, domain.RoleReviewer, monday, monday.AddDate(0, 0, 1), time.Hour)
	require.NoError(t, err)

	// 与预约重叠的 10:00 时段被去掉，而 09:00 ~ 10:00 只与预约在边界上相接，应该保留
	require.Len(t, slots, 2)
	assert.Equal(t, monday.Add(9*time.Hour), slots[0].Start)
	assert.Equal(t, monday.Add(10*time.Hour+30*time.Minute), slots[1].Start)
}

func TestComputeFreeSlotsClampsFromToNow(t *testing.T) {
	store := &fakeRuleStore{
		rules: []*domain.AvailabilityRule{mondayRule("09:00:00", "17:00:00", false)},
	}
	// 当前时间是周一 10:30，从凌晨开始查询不应该返回过去的时段
	r := newTestResolver(store, monday.Add(10*time.Hour+30*time.Minute))

	slots, err := r.ComputeFreeSlots(context.Background(), 1, domain.RoleReviewer, monday, monday.AddDate(0, 0, 1), time.Hour)
	require.NoError(t, err)

	// 时段仍然从规则窗口的开始对齐切分，只是丢弃了开始于当前时间之前的那些
	require.NotEmpty(t, slots)
	assert.Equal(t, monday.Add(11*time.Hour), slots[0].Start)
}

func TestComputeFreeSlotsNoRulesYieldsEmptyResult(t *testing.T) {
	r := newTestResolver(&fakeRuleStore{}, monday)

	slots, err := r.ComputeFreeSlots(context.Background(), 42, domain.RoleReviewer, monday, monday.AddDate(0, 0, 1), time.Hour)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestComputeFreeSlotsIsIdempotent(t *testing.T) {
	store := &fakeRuleStore{
		rules: []*domain.AvailabilityRule{
			mondayRule("13:00:00", "17:00:00", false),
			mondayRule("09:00:00", "11:00:00", false),
		},
	}
	r := newTestResolver(store, monday)

	first, err := r.ComputeFreeSlots(context.Background(), 1, domain.RoleReviewer, monday, monday.AddDate(0, 0, 1), time.Hour)
	require.NoError(t, err)
	second, err := r.ComputeFreeSlots(context.Background(), 1, domain.RoleReviewer, monday, monday.AddDate(0, 0, 1), time.Hour)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	// 结果按开始时间升序
	for i := 1; i < len(first); i++ {
		assert.True(t, first[i-1].Start.Before(first[i].Start))
	}
}

func TestComputeFreeSlotsHonorsActiveRange(t *testing.T) {
	expired := mondayRule("09:00:00", "17:00:00", false)
	until := monday.AddDate(0, 0, -7)
	expired.ActiveUntil = &until

	store := &fakeRuleStore{rules: []*domain.AvailabilityRule{expired}}
	r := newTestResolver(store, monday)

	slots, err := r.ComputeFreeSlots(context.Background(), 1, domain.RoleReviewer, monday, monday.AddDate(0, 0, 1), time.Hour)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestMergeIntervalsOverlapping(t *testing.T) {
	merged := mergeIntervals([]interval{
		{start: monday.Add(13 * time.Hour), end: monday.Add(15 * time.Hour)},
		{start: monday.Add(9 * time.Hour), end: monday.Add(11 * time.Hour)},
		{start: monday.Add(10 * time.Hour), end: monday.Add(12 * time.Hour)},
	})

	require.Len(t, merged, 2)
	assert.Equal(t, monday.Add(9*time.Hour), merged[0].start)
	assert.Equal(t, monday.Add(12*time.Hour), merged[0].end)
	assert.Equal(t, monday.Add(13*time.Hour), merged[1].start)
}
