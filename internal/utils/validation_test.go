package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/sysu-ecnc-dev/interview-manager/backend/internal/domain"
)

func TestValidateAvailabilityRule(t *testing.T) {
	activeFrom := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	before := activeFrom.AddDate(0, 0, -1)

	testCases := []struct {
		name    string
		rule    domain.AvailabilityRule
		wantErr bool
	}{
		{
			name: "合法的可用规则",
			rule: domain.AvailabilityRule{DayOfWeek: 1, StartTime: "09:00:00", EndTime: "12:00:00", ActiveFrom: activeFrom},
		},
		{
			name: "合法的整天排除规则",
			rule: domain.AvailabilityRule{DayOfWeek: 3, ActiveFrom: activeFrom, IsExclusion: true},
		},
		{
			name:    "星期几越界",
			rule:    domain.AvailabilityRule{DayOfWeek: 8, StartTime: "09:00:00", EndTime: "12:00:00", ActiveFrom: activeFrom},
			wantErr: true,
		},
		{
			name:    "可用规则缺少时间窗口",
			rule:    domain.AvailabilityRule{DayOfWeek: 1, ActiveFrom: activeFrom},
			wantErr: true,
		},
		{
			name:    "开始时间格式错误",
			rule:    domain.AvailabilityRule{DayOfWeek: 1, StartTime: "9点", EndTime: "12:00:00", ActiveFrom: activeFrom},
			wantErr: true,
		},
		{
			name:    "开始时间不早于结束时间",
			rule:    domain.AvailabilityRule{DayOfWeek: 1, StartTime: "12:00:00", EndTime: "09:00:00", ActiveFrom: activeFrom},
			wantErr: true,
		},
		{
			name:    "生效范围颠倒",
			rule:    domain.AvailabilityRule{DayOfWeek: 1, StartTime: "09:00:00", EndTime: "12:00:00", ActiveFrom: activeFrom, ActiveUntil: &before},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateAvailabilityRule(&tc.rule)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
