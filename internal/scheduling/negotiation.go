package scheduling

import (
	"time"

	"github.com/sysu-ecnc-dev/interview-manager/backend/internal/domain"
)

// proposeTransitions 枚举了协商模式下所有合法的提议转移：
// 参与方 × 当前状态 → 下一个状态。没有列出的组合一律不允许。
// 申请人发起第一轮提议，此后双方只能在轮到对方确认自己的提议时反提议。
var proposeTransitions = map[domain.Role]map[domain.InterviewStatus]domain.InterviewStatus{
	domain.RoleApplicant: {
		domain.InterviewStatusAwaitingReviewerProposedDates: domain.InterviewStatusAwaitingReviewerConfirmation,
		domain.InterviewStatusAwaitingApplicantConfirmation: domain.InterviewStatusAwaitingReviewerConfirmation,
	},
	domain.RoleReviewer: {
		domain.InterviewStatusAwaitingReviewerConfirmation: domain.InterviewStatusAwaitingApplicantConfirmation,
	},
}

// confirmExpectedParty 枚举了每个可确认状态所指定的确认方。
// 确认只对对方的提议合法，因此任何一方都不可能确认自己刚提出的时间。
var confirmExpectedParty = map[domain.InterviewStatus]domain.Role{
	domain.InterviewStatusAwaitingReviewerConfirmation:  domain.RoleReviewer,
	domain.InterviewStatusAwaitingApplicantConfirmation: domain.RoleApplicant,
}

// Negotiator 驱动申请人和审核官之间的候选时间协商
type Negotiator struct {
	now func() time.Time
}

func NewNegotiator() *Negotiator {
	return &Negotiator{
		now: time.Now,
	}
}

// ProposeDates 提交一轮新的候选时间（1 ~ 3 个，必须严格在未来），
// 完全替换之前的候选时间和备注。所有检查都在修改状态之前完成。
func (n *Negotiator) ProposeDates(iv *domain.Interview, party domain.Role, dates []time.Time, observations string) error {
	transitions, ok := proposeTransitions[party]
	if !ok {
		return NewValidationError("只有申请人和审核官可以提议面试时间")
	}

	next, ok := transitions[iv.Status]
	if !ok {
		return NewConflictError("当前状态下您不能提议面试时间")
	}

	if len(dates) == 0 {
		return NewValidationError("至少需要提议一个候选时间")
	}
	if len(dates) > domain.MaxProposedDates {
		return NewValidationError("一轮最多只能提议三个候选时间")
	}

	now := n.now()
	for i, date := range dates {
		if !date.After(now) {
			return NewValidationError("候选时间必须是未来的时间")
		}
		for j := i + 1; j < len(dates); j++ {
			if date.Equal(dates[j]) {
				return NewValidationError("候选时间不能重复")
			}
		}
	}

	iv.Status = next
	iv.ProposedDates = append([]time.Time{}, dates...)
	iv.Observations = observations

	return nil
}

// ConfirmDate 由当前状态指定的确认方从对方的候选时间中确定面试时间。
// chosenDate 必须与某个候选时间完全相等，否则不做任何修改。
func (n *Negotiator) ConfirmDate(iv *domain.Interview, party domain.Role, chosenDate time.Time) error {
	expected, ok := confirmExpectedParty[iv.Status]
	if !ok {
		return NewConflictError("当前状态下不能确认面试时间")
	}

	if party != expected {
		return NewValidationError("现在轮到对方确认面试时间")
	}

	isProposed := false
	for _, date := range iv.ProposedDates {
		if date.Equal(chosenDate) {
			isProposed = true
			break
		}
	}
	if !isProposed {
		return NewValidationError("所选时间不在候选时间之中")
	}

	scheduledAt := chosenDate
	confirmedBy := party

	iv.Status = domain.InterviewStatusConfirmed
	iv.ScheduledAt = &scheduledAt
	iv.ConfirmedBy = &confirmedBy
	iv.ProposedDates = nil

	return nil
}
