package utils

import (
	"fmt"
	"time"

	"github.com/sysu-ecnc-dev/interview-manager/backend/internal/domain"
)

// ValidateAvailabilityRule 检查规则的时间窗口和生效范围是否合法。
// 时间窗口必须在同一天内且开始早于结束；
// 只有排除规则允许不写时间窗口（表示整天不可用），且此时开始和结束必须都为空。
func ValidateAvailabilityRule(rule *domain.AvailabilityRule) error {
	if rule.DayOfWeek < 1 || rule.DayOfWeek > 7 {
		return fmt.Errorf("星期几必须在 1 到 7 之间")
	}

	if rule.StartTime == "" && rule.EndTime == "" {
		if !rule.IsExclusion {
			return fmt.Errorf("可用规则必须写明时间窗口")
		}
	} else {
		startTime, err := time.Parse("15:04:05", rule.StartTime)
		if err != nil {
			return fmt.Errorf("开始时间格式错误")
		}
		endTime, err := time.Parse("15:04:05", rule.EndTime)
		if err != nil {
			return fmt.Errorf("结束时间格式错误")
		}
		if !startTime.Before(endTime) {
			return fmt.Errorf("开始时间必须早于结束时间")
		}
	}

	if rule.ActiveUntil != nil && rule.ActiveUntil.Before(rule.ActiveFrom) {
		return fmt.Errorf("生效结束日期不能早于生效开始日期")
	}

	return nil
}
