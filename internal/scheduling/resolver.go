package scheduling

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sysu-ecnc-dev/interview-manager/backend/internal/domain"
)

// RuleStore 提供解析空闲时段所需的可用性规则和已被占用的时间段
type RuleStore interface {
	GetActiveRules(ctx context.Context, ownerID int64, ownerRole domain.Role, from time.Time, to time.Time) ([]*domain.AvailabilityRule, error)
	GetBookedIntervals(ctx context.Context, ownerID int64, from time.Time, to time.Time) ([]domain.BookedInterval, error)
}

// Resolver 把某个审核官的可用性规则和已有的面试预约解析成具体的可预约时段。
// 解析结果只是调用时刻状态的纯函数，不做任何缓存。
type Resolver struct {
	store RuleStore
	now   func() time.Time
}

func NewResolver(store RuleStore) *Resolver {
	return &Resolver{
		store: store,
		now:   time.Now,
	}
}

type interval struct {
	start time.Time
	end   time.Time
}

// ComputeFreeSlots 计算 [from, to) 内所有长度恰好为 slotDuration 的可预约时段，按开始时间升序返回。
// from 早于当前时间时会被修正到当前时间（不会返回过去的时段）。
// 范围为空、规则不存在等情况都返回空列表而不是错误，只有参数本身非法才会报错。
func (r *Resolver) ComputeFreeSlots(ctx context.Context, ownerID int64, ownerRole domain.Role, from time.Time, to time.Time, slotDuration time.Duration) ([]domain.TimeSlot, error) {
	if slotDuration <= 0 {
		return nil, NewValidationError("时段长度必须大于 0")
	}
	if !from.Before(to) {
		return nil, NewValidationError("查询的开始时间必须早于结束时间")
	}

	from = from.UTC()
	to = to.UTC()

	// 不返回过去的时段
	if now := r.now().UTC(); from.Before(now) {
		from = now
	}
	if !from.Before(to) {
		return []domain.TimeSlot{}, nil
	}

	rules, err := r.store.GetActiveRules(ctx, ownerID, ownerRole, from, to)
	if err != nil {
		return nil, err
	}

	booked, err := r.store.GetBookedIntervals(ctx, ownerID, from, to)
	if err != nil {
		return nil, err
	}

	bookedIntervals := make([]interval, 0, len(booked))
	for _, b := range booked {
		bookedIntervals = append(bookedIntervals, interval{start: b.Start.UTC(), end: b.End.UTC()})
	}

	slots := []domain.TimeSlot{}

	// 逐天计算：先取可用规则窗口的并集，再减去排除规则窗口，最后减去已被预约的时间段
	for day := truncateToDay(from); day.Before(to); day = day.AddDate(0, 0, 1) {
		available := []interval{}
		excluded := []interval{}

		for _, rule := range rules {
			if !ruleAppliesOnDay(rule, day) {
				continue
			}

			window, err := ruleWindowOnDay(rule, day)
			if err != nil {
				return nil, err
			}

			if rule.IsExclusion {
				excluded = append(excluded, window)
			} else {
				available = append(available, window)
			}
		}

		free := subtractIntervals(mergeIntervals(available), excluded)
		free = subtractIntervals(free, bookedIntervals)

		// 把剩下的每个连续空闲区间切成首尾相接的时段，不足一个时段长度的尾部直接丢弃
		for _, f := range free {
			for start := f.start; !start.Add(slotDuration).After(f.end); start = start.Add(slotDuration) {
				if start.Before(from) || start.Add(slotDuration).After(to) {
					continue
				}
				slots = append(slots, domain.TimeSlot{Start: start, End: start.Add(slotDuration)})
			}
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})

	return slots, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// weekdayOf 返回 1 ~ 7，1 表示周一
func weekdayOf(t time.Time) int32 {
	wd := int32(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return wd
}

func ruleAppliesOnDay(rule *domain.AvailabilityRule, day time.Time) bool {
	if rule.DayOfWeek != weekdayOf(day) {
		return false
	}

	if day.Before(truncateToDay(rule.ActiveFrom.UTC())) {
		return false
	}

	// ActiveUntil 为 nil 时表示无限期生效
	if rule.ActiveUntil != nil && day.After(truncateToDay(rule.ActiveUntil.UTC())) {
		return false
	}

	return true
}

func ruleWindowOnDay(rule *domain.AvailabilityRule, day time.Time) (interval, error) {
	// 没有写明时间窗口的排除规则覆盖整天
	if rule.IsExclusion && rule.StartTime == "" && rule.EndTime == "" {
		return interval{start: day, end: day.AddDate(0, 0, 1)}, nil
	}

	start, err := time.Parse("15:04:05", rule.StartTime)
	if err != nil {
		return interval{}, fmt.Errorf("规则 %d 的开始时间格式错误: %w", rule.ID, err)
	}
	end, err := time.Parse("15:04:05", rule.EndTime)
	if err != nil {
		return interval{}, fmt.Errorf("规则 %d 的结束时间格式错误: %w", rule.ID, err)
	}

	return interval{
		start: day.Add(time.Duration(start.Hour())*time.Hour + time.Duration(start.Minute())*time.Minute + time.Duration(start.Second())*time.Second),
		end:   day.Add(time.Duration(end.Hour())*time.Hour + time.Duration(end.Minute())*time.Minute + time.Duration(end.Second())*time.Second),
	}, nil
}

// mergeIntervals 把若干时间段合并成互不重叠且升序的时间段
func mergeIntervals(intervals []interval) []interval {
	if len(intervals) == 0 {
		return []interval{}
	}

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].start.Before(intervals[j].start)
	})

	merged := []interval{intervals[0]}
	for _, iv := range intervals[1:] {
		last := &merged[len(merged)-1]
		if !iv.start.After(last.end) {
			if iv.end.After(last.end) {
				last.end = iv.end
			}
			continue
		}
		merged = append(merged, iv)
	}

	return merged
}

// subtractIntervals 从 base 中减去 subtrahends 覆盖的部分。
// 区间为左闭右开，因此只在边界上相接的时间段不会被减去。
func subtractIntervals(base []interval, subtrahends []interval) []interval {
	result := base

	for _, sub := range subtrahends {
		next := []interval{}
		for _, iv := range result {
			if !sub.start.Before(iv.end) || !iv.start.Before(sub.end) {
				// 没有重叠
				next = append(next, iv)
				continue
			}
			if iv.start.Before(sub.start) {
				next = append(next, interval{start: iv.start, end: sub.start})
			}
			if sub.end.Before(iv.end) {
				next = append(next, interval{start: sub.end, end: iv.end})
			}
		}
		result = next
	}

	return result
}
