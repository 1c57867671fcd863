package domain

import "time"

// AvailabilityRule 表示审核官在某个星期几的一个可用（或不可用）时间窗口。
// StartTime 和 EndTime 为 UTC 的当天时刻（格式 15:04:05），且 StartTime < EndTime。
// IsExclusion 为 true 时表示该窗口内不可用，且覆盖所有与之重叠的可用规则；
// 此时允许 StartTime 和 EndTime 为空，表示整天不可用。
type AvailabilityRule struct {
	ID          int64      `json:"id"`
	OwnerID     int64      `json:"ownerID"`
	OwnerRole   Role       `json:"ownerRole"`
	DayOfWeek   int32      `json:"dayOfWeek"` // 1 ~ 7，1 表示周一
	StartTime   string     `json:"startTime"`
	EndTime     string     `json:"endTime"`
	ActiveFrom  time.Time  `json:"activeFrom"`
	ActiveUntil *time.Time `json:"activeUntil"` // 为 nil 时表示无限期生效
	IsExclusion bool       `json:"isExclusion"`
	CreatedAt   time.Time  `json:"createdAt"`
	Version     int32      `json:"-"`
}

// BookedInterval 是由已确认的面试导出的只读时间段，左闭右开
type BookedInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// TimeSlot 是解析出来的一个可预约时段，不会被持久化
type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
