package scheduling

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/interview-manager/backend/internal/domain"
)

// Booker 实现直选模式：申请人直接从审核官当天的空闲时段中选择一个并确认
type Booker struct {
	resolver *Resolver
}

func NewBooker(resolver *Resolver) *Booker {
	return &Booker{
		resolver: resolver,
	}
}

// BookSlot 校验申请人所选的开始时间，并在校验通过后直接确认面试。
// 所选时间必须与重新解析出的某个时段的开始时间完全相等（不做任何取整），
// 校验失败时面试不会有任何改动。
func (b *Booker) BookSlot(ctx context.Context, iv *domain.Interview, reviewerID int64, chosenStart time.Time, observations string) error {
	if iv.Status != domain.InterviewStatusAwaitingApplicantSlotSelection {
		return NewConflictError("当前状态下不能选择面试时段")
	}

	// 只在所选时间所在的那一天内重新解析空闲时段
	chosenStart = chosenStart.UTC()
	day := truncateToDay(chosenStart)

	slotDuration := time.Duration(iv.DurationMinutes) * time.Minute
	slots, err := b.resolver.ComputeFreeSlots(ctx, reviewerID, domain.RoleReviewer, day, day.AddDate(0, 0, 1), slotDuration)
	if err != nil {
		return err
	}

	isFree := false
	for _, slot := range slots {
		if slot.Start.Equal(chosenStart) {
			isFree = true
			break
		}
	}
	if !isFree {
		return NewValidationError("所选时段不可预约")
	}

	scheduledAt := chosenStart
	confirmedBy := domain.RoleApplicant

	iv.Status = domain.InterviewStatusConfirmed
	iv.ScheduledAt = &scheduledAt
	iv.ConfirmedBy = &confirmedBy
	iv.ProposedDates = nil
	iv.Observations = observations

	return nil
}
