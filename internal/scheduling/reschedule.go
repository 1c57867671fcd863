package scheduling

import (
	"github.com/sysu-ecnc-dev/interview-manager/backend/internal/domain"
)

// RequestReschedule 把一场已确认的面试重新打开为直选模式，等待申请人重新选择时段。
// 重新安排的次数没有限制；对已经重新打开的面试再次调用只会更新备注，结果状态不变。
func RequestReschedule(iv *domain.Interview, party domain.Role, reason string) error {
	if party != domain.RoleApplicant && party != domain.RoleReviewer {
		return NewValidationError("只有申请人和审核官可以要求重新安排面试")
	}

	if iv.Status != domain.InterviewStatusConfirmed && iv.Status != domain.InterviewStatusAwaitingApplicantSlotSelection {
		return NewConflictError("只有已确认的面试才能重新安排")
	}

	iv.Status = domain.InterviewStatusAwaitingApplicantSlotSelection
	iv.ScheduledAt = nil
	iv.ConfirmedBy = nil
	iv.ProposedDates = nil
	iv.Observations = reason

	return nil
}
