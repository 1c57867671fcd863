package domain

import "time"

type InterviewStatus string

const (
	// 协商模式：申请人和审核官轮流提议候选时间，由对方确认
	InterviewStatusAwaitingReviewerProposedDates InterviewStatus = "待向审核官提议时间"
	InterviewStatusAwaitingReviewerConfirmation  InterviewStatus = "待审核官确认"
	InterviewStatusAwaitingApplicantConfirmation InterviewStatus = "待申请人确认"

	// 直选模式：申请人直接从审核官的空闲时段中选择
	InterviewStatusAwaitingApplicantSlotSelection InterviewStatus = "待申请人选择时段"

	InterviewStatusConfirmed InterviewStatus = "已确认"
)

// MaxProposedDates 是一轮提议中候选时间的最大数量
const MaxProposedDates = 3

type InterviewPlatform string

const (
	PlatformTencentMeeting InterviewPlatform = "腾讯会议"
	PlatformVoov           InterviewPlatform = "VooV"
	PlatformOnSite         InterviewPlatform = "线下"
)

// Interview 每个申请对应一场面试。
// ScheduledAt 和 ConfirmedBy 只在状态为已确认时非空，
// ProposedDates 在状态转移到已确认时会被清空，两者不会同时存在。
type Interview struct {
	ID              int64             `json:"id"`
	ApplicationID   int64             `json:"applicationID"`
	Status          InterviewStatus   `json:"status"`
	ProposedDates   []time.Time       `json:"proposedDates"`
	Observations    string            `json:"observations"`
	ScheduledAt     *time.Time        `json:"scheduledAt"`
	ConfirmedBy     *Role             `json:"confirmedBy"`
	Platform        InterviewPlatform `json:"platform"`
	DurationMinutes int32             `json:"durationMinutes"`
	CreatedAt       time.Time         `json:"createdAt"`
	Version         int32             `json:"-"`
}

// Counterpart 返回给定参与方的对方
func Counterpart(party Role) Role {
	if party == RoleApplicant {
		return RoleReviewer
	}
	return RoleApplicant
}
