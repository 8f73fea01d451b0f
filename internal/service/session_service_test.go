package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dragsense/multi-gym-app-sub002/config"
	"github.com/dragsense/multi-gym-app-sub002/internal/dto"
	"github.com/dragsense/multi-gym-app-sub002/internal/model"
	"github.com/dragsense/multi-gym-app-sub002/internal/repository"
)

// ── 测试辅助 ──

func setupTestSessionService(t *testing.T) (*sessionService, *repository.Repository, *mockEventPublisher) {
	t.Helper()
	repo := newTestRepo()
	ctx := context.Background()
	repo.User.Create(ctx, &model.User{
		UserID: "trainer-001", Name: "王教练", Email: "wang@gym.test",
		Role: model.RoleTrainer, SlotStepMinutes: 60,
	})
	repo.User.Create(ctx, &model.User{
		UserID: "member-001", Name: "会员一", Email: "m1@gym.test", Role: model.RoleMember,
	})
	repo.User.Create(ctx, &model.User{
		UserID: "member-002", Name: "会员二", Email: "m2@gym.test", Role: model.RoleMember,
	})

	events := &mockEventPublisher{}
	cfg := &config.BookingConfig{DefaultTimezone: "UTC", DefaultSlotStep: 15}
	svc := NewSessionService(repo, cfg, events, zap.NewNop()).(*sessionService)
	// 缺省固定在课程之前，历史实体化在需要时单独调时钟
	svc.now = func() time.Time { return time.Date(2023, 12, 1, 12, 0, 0, 0, time.UTC) }
	return svc, repo, events
}

func validCreateRequest() *dto.CreateSessionRequest {
	return &dto.CreateSessionRequest{
		Title:            "力量训练",
		DurationMinutes:  60,
		StartTime:        "2024-01-01T09:00:00Z",
		TrainerID:        "trainer-001",
		MemberIDs:        []string{"member-001"},
		EnableRecurrence: true,
		Recurrence: &dto.RecurrenceConfig{
			Frequency: model.FrequencyWeekly,
			WeekDays:  []int{1, 3, 5},
			EndDate:   "2024-01-12",
		},
	}
}

// ── Create 测试 ──

func TestSessionService_Create_Success(t *testing.T) {
	svc, _, events := setupTestSessionService(t)

	resp, err := svc.Create(context.Background(), validCreateRequest(), "admin-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.ID == "" {
		t.Error("课程ID不应为空")
	}
	if resp.SessionType != "personal" {
		t.Errorf("类型应默认 personal，实际=%s", resp.SessionType)
	}
	if resp.Status != model.SessionStatusScheduled {
		t.Errorf("初始状态应为 scheduled，实际=%s", resp.Status)
	}
	if !resp.EnableRecurrence || resp.RecurrenceEndDate != "2024-01-12" {
		t.Errorf("重复配置应落表: %+v", resp)
	}
	if len(events.events) != 1 || events.events[0].Type != EventSessionCreated {
		t.Errorf("应发布 session.created 事件，实际=%v", events.events)
	}
}

func TestSessionService_Create_SlotTaken(t *testing.T) {
	svc, repo, _ := setupTestSessionService(t)

	// 教练 2024-01-01 09:00-10:00 已有课程，新课 09:30 起冲突
	repo.Session.Create(context.Background(), &model.Session{
		Title: "既有课程", Status: model.SessionStatusScheduled,
		DurationMinutes: 60,
		StartTime:       time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Timezone:        "UTC",
		TrainerID:       "trainer-001",
		MemberIDs:       model.StringArray{"member-002"},
	})

	req := validCreateRequest()
	req.StartTime = "2024-01-01T09:30:00Z"
	_, err := svc.Create(context.Background(), req, "admin-001")
	if !errors.Is(err, ErrSlotTaken) {
		t.Errorf("期望 ErrSlotTaken，实际: %v", err)
	}
}

func TestSessionService_Create_TrainerUnavailable(t *testing.T) {
	svc, repo, _ := setupTestSessionService(t)

	// 教练周一闭门，2024-01-01 是周一
	repo.Availability.Upsert(context.Background(), &model.Availability{
		UserID: "trainer-001",
		WeeklySchedule: model.WeekSchedule{
			2: {Enabled: true, TimeSlots: []model.TimeWindow{{Start: "09:00", End: "12:00"}}},
		},
	})

	_, err := svc.Create(context.Background(), validCreateRequest(), "admin-001")
	if !errors.Is(err, ErrTrainerUnavailable) {
		t.Errorf("期望 ErrTrainerUnavailable，实际: %v", err)
	}
}

func TestSessionService_Create_NotATrainer(t *testing.T) {
	svc, _, _ := setupTestSessionService(t)

	req := validCreateRequest()
	req.TrainerID = "member-001"
	_, err := svc.Create(context.Background(), req, "admin-001")
	if !errors.Is(err, ErrNotATrainer) {
		t.Errorf("期望 ErrNotATrainer，实际: %v", err)
	}
}

func TestSessionService_Create_MemberNotFound(t *testing.T) {
	svc, _, _ := setupTestSessionService(t)

	req := validCreateRequest()
	req.MemberIDs = []string{"member-001", "no-such"}
	_, err := svc.Create(context.Background(), req, "admin-001")
	if !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("期望 ErrMemberNotFound，实际: %v", err)
	}
}

func TestSessionService_Create_InvalidRecurrence(t *testing.T) {
	svc, _, _ := setupTestSessionService(t)

	// 截止日早于起始时刻
	req := validCreateRequest()
	req.Recurrence.EndDate = "2023-12-01"
	_, err := svc.Create(context.Background(), req, "admin-001")
	if !errors.Is(err, ErrInvalidRecurrence) {
		t.Errorf("期望 ErrInvalidRecurrence，实际: %v", err)
	}
}

// ── Update 测试 ──

func TestSessionService_Update_All_RebasesOverrides(t *testing.T) {
	svc, repo, _ := setupTestSessionService(t)
	ctx := context.Background()
	sess := seedWeeklySession(t, repo)

	repo.Override.Create(ctx, &model.SessionOverride{
		SessionID: sess.SessionID,
		Date:      time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
		Scope:     model.ScopeThisAndFollowing,
		Price:     ptrFloat(75),
		Location:  ptrStr("二号训练室"),
	})

	// 基础课程价格调到 75：覆盖中的同值补丁不再构成差异
	resp, err := svc.Update(ctx, sess.SessionID, &dto.UpdateSessionRequest{
		Price: ptrFloat(75),
	}, "admin-001")
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if resp.Price != 75 {
		t.Errorf("基础课程价格应更新为 75，实际=%.0f", resp.Price)
	}

	ovs, _ := repo.Override.ListBySession(ctx, sess.SessionID)
	if len(ovs) != 1 {
		t.Fatalf("覆盖数量不应变化，实际=%d", len(ovs))
	}
	if ovs[0].Price != nil {
		t.Error("与新基线同值的价格补丁应被清除")
	}
	if ovs[0].Location == nil || *ovs[0].Location != "二号训练室" {
		t.Error("仍构成差异的补丁字段应保留")
	}
}

func TestSessionService_Update_RecurrenceImmutable(t *testing.T) {
	svc, repo, _ := setupTestSessionService(t)
	sess := seedWeeklySession(t, repo)

	off := false
	_, err := svc.Update(context.Background(), sess.SessionID, &dto.UpdateSessionRequest{
		EnableRecurrence: &off,
	}, "admin-001")
	if !errors.Is(err, ErrRecurrenceImmutable) {
		t.Errorf("期望 ErrRecurrenceImmutable，实际: %v", err)
	}
}

func TestSessionService_Update_This_CreatesOverride(t *testing.T) {
	svc, repo, _ := setupTestSessionService(t)
	ctx := context.Background()
	sess := seedWeeklySession(t, repo)

	_, err := svc.Update(ctx, sess.SessionID, &dto.UpdateSessionRequest{
		Scope:           dto.ScopeThis,
		OccurrenceDate:  "2024-01-05",
		DurationMinutes: ptrInt(30),
		Notes:           "临时改短",
	}, "admin-001")
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}

	ov, err := repo.Override.GetThis(ctx, sess.SessionID, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("应写入 this 覆盖: %v", err)
	}
	if ov.DurationMinutes == nil || *ov.DurationMinutes != 30 {
		t.Errorf("覆盖应携带时长补丁: %+v", ov)
	}
	if !strings.Contains(ov.Notes, "临时改短") || !strings.HasPrefix(ov.Notes, "[2023-12-01") {
		t.Errorf("备注应带时间戳追加，实际=%q", ov.Notes)
	}

	// 基础课程不受影响
	base, _ := repo.Session.GetByID(ctx, sess.SessionID)
	if base.DurationMinutes != 60 {
		t.Errorf("单次编辑不应触碰基础课程，实际时长=%d", base.DurationMinutes)
	}
}

func TestSessionService_Update_This_AppendsNotes(t *testing.T) {
	svc, repo, _ := setupTestSessionService(t)
	ctx := context.Background()
	sess := seedWeeklySession(t, repo)

	for _, note := range []string{"第一条", "第二条"} {
		_, err := svc.Update(ctx, sess.SessionID, &dto.UpdateSessionRequest{
			Scope: dto.ScopeThis, OccurrenceDate: "2024-01-05", Notes: note,
		}, "admin-001")
		if err != nil {
			t.Fatalf("Update 应成功: %v", err)
		}
	}

	ov, _ := repo.Override.GetThis(ctx, sess.SessionID, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
	lines := strings.Split(ov.Notes, "\n")
	if len(lines) != 2 {
		t.Fatalf("备注应逐条追加，实际=%q", ov.Notes)
	}
	if !strings.Contains(lines[0], "第一条") || !strings.Contains(lines[1], "第二条") {
		t.Errorf("历史备注不可覆盖，实际=%q", ov.Notes)
	}
}

func TestSessionService_Update_This_NoSuchOccurrence(t *testing.T) {
	svc, repo, _ := setupTestSessionService(t)
	sess := seedWeeklySession(t, repo)

	// 2024-01-02 是周二，不在一三五的重复规则内
	_, err := svc.Update(context.Background(), sess.SessionID, &dto.UpdateSessionRequest{
		Scope: dto.ScopeThis, OccurrenceDate: "2024-01-02", Title: ptrStr("改名"),
	}, "admin-001")
	if !errors.Is(err, ErrOccurrenceNotFound) {
		t.Errorf("期望 ErrOccurrenceNotFound，实际: %v", err)
	}
}

func TestSessionService_Update_This_DateRequired(t *testing.T) {
	svc, repo, _ := setupTestSessionService(t)
	sess := seedWeeklySession(t, repo)

	_, err := svc.Update(context.Background(), sess.SessionID, &dto.UpdateSessionRequest{
		Scope: dto.ScopeThis, Title: ptrStr("改名"),
	}, "admin-001")
	if !errors.Is(err, ErrOccurrenceDateRequired) {
		t.Errorf("期望 ErrOccurrenceDateRequired，实际: %v", err)
	}
}

func TestSessionService_Update_This_PastMaterializes(t *testing.T) {
	svc, repo, _ := setupTestSessionService(t)
	ctx := context.Background()
	sess := seedWeeklySession(t, repo)
	svc.now = func() time.Time { return time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC) }

	resp, err := svc.Update(ctx, sess.SessionID, &dto.UpdateSessionRequest{
		Scope: dto.ScopeThis, OccurrenceDate: "2024-01-05", Title: ptrStr("历史补记"),
	}, "admin-001")
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	// 历史发生先实体化为子记录，编辑落在实体上
	if resp.ParentID != sess.SessionID {
		t.Errorf("历史编辑应返回实体化子记录，实际 parent=%s", resp.ParentID)
	}
	if resp.Title != "历史补记" {
		t.Errorf("子记录标题应更新，实际=%s", resp.Title)
	}

	// 父课程上应出现当日删除标记，虚拟视图不再重复产出
	ov, err := repo.Override.GetThis(ctx, sess.SessionID, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
	if err != nil || !ov.IsDeleted {
		t.Errorf("实体化应在父课程打删除标记: %v %+v", err, ov)
	}
}

func TestSessionService_Update_Following_RejectsTimeShift(t *testing.T) {
	svc, repo, _ := setupTestSessionService(t)
	sess := seedWeeklySession(t, repo)

	_, err := svc.Update(context.Background(), sess.SessionID, &dto.UpdateSessionRequest{
		Scope:          dto.ScopeThisAndFollowing,
		OccurrenceDate: "2024-01-08",
		StartTime:      ptrStr("2024-01-08T14:00:00Z"),
	}, "admin-001")
	if !errors.Is(err, ErrAmbiguousTimeShift) {
		t.Errorf("期望 ErrAmbiguousTimeShift，实际: %v", err)
	}
}

func TestSessionService_Update_Following_RewritesLaterOverrides(t *testing.T) {
	svc, repo, _ := setupTestSessionService(t)
	ctx := context.Background()
	sess := seedWeeklySession(t, repo)

	// 01-10 已有独立的 this 覆盖（价格 60）
	repo.Override.Create(ctx, &model.SessionOverride{
		SessionID: sess.SessionID,
		Date:      time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Scope:     model.ScopeThis,
		Price:     ptrFloat(60),
	})

	// 01-08 起地点整体调整：之后的覆盖改写为针对新基线的补丁
	_, err := svc.Update(ctx, sess.SessionID, &dto.UpdateSessionRequest{
		Scope:          dto.ScopeThisAndFollowing,
		OccurrenceDate: "2024-01-08",
		Location:       ptrStr("三号训练室"),
	}, "admin-001")
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}

	ovs, _ := repo.Override.ListBySession(ctx, sess.SessionID)
	if len(ovs) != 2 {
		t.Fatalf("期望 2 条覆盖，实际=%d", len(ovs))
	}
	anchor, later := &ovs[0], &ovs[1]
	if anchor.Scope != model.ScopeThisAndFollowing || anchor.Location == nil {
		t.Errorf("切点覆盖应落地: %+v", anchor)
	}
	if later.Location == nil || *later.Location != "三号训练室" {
		t.Errorf("切点后覆盖应携带切点字段: %+v", later)
	}
	if later.Price != nil {
		t.Error("切点未携带的字段应清除，从新基线继承")
	}
}

func TestSessionService_Update_Following_ReusesSameDayAnchor(t *testing.T) {
	svc, repo, _ := setupTestSessionService(t)
	ctx := context.Background()
	sess := seedWeeklySession(t, repo)

	for _, price := range []float64{70, 80} {
		_, err := svc.Update(ctx, sess.SessionID, &dto.UpdateSessionRequest{
			Scope:          dto.ScopeThisAndFollowing,
			OccurrenceDate: "2024-01-08",
			Price:          ptrFloat(price),
		}, "admin-001")
		if err != nil {
			t.Fatalf("Update 应成功: %v", err)
		}
	}

	ovs, _ := repo.Override.ListBySession(ctx, sess.SessionID)
	if len(ovs) != 1 {
		t.Fatalf("同日切点覆盖应复用，实际=%d 条", len(ovs))
	}
	if ovs[0].Price == nil || *ovs[0].Price != 80 {
		t.Errorf("复用的覆盖应携带最新补丁: %+v", ovs[0])
	}
}

// ── Delete 测试 ──

func TestSessionService_Delete_All(t *testing.T) {
	svc, repo, events := setupTestSessionService(t)
	ctx := context.Background()
	sess := seedWeeklySession(t, repo)
	repo.Override.Create(ctx, &model.SessionOverride{
		SessionID: sess.SessionID,
		Date:      time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Scope:     model.ScopeThis,
		Price:     ptrFloat(60),
	})

	err := svc.Delete(ctx, sess.SessionID, &dto.DeleteSessionRequest{}, "admin-001")
	if err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, err := repo.Session.GetByID(ctx, sess.SessionID); err == nil {
		t.Error("课程记录应已删除")
	}
	ovs, _ := repo.Override.ListBySession(ctx, sess.SessionID)
	if len(ovs) != 0 {
		t.Errorf("覆盖集应随课程删除，实际=%d 条", len(ovs))
	}
	if len(events.events) != 1 || events.events[0].Type != EventSessionDeleted {
		t.Errorf("应发布 session.deleted 事件，实际=%v", events.events)
	}
}

func TestSessionService_Delete_BlockedByPayments(t *testing.T) {
	svc, repo, _ := setupTestSessionService(t)
	ctx := context.Background()
	sess := seedWeeklySession(t, repo)
	repo.Payment.Create(ctx, &model.Payment{
		SessionID: sess.SessionID, MemberID: "member-001", Amount: 50,
	})

	err := svc.Delete(ctx, sess.SessionID, &dto.DeleteSessionRequest{}, "admin-001")
	if !errors.Is(err, ErrSessionHasPayments) {
		t.Errorf("期望 ErrSessionHasPayments，实际: %v", err)
	}
	if _, err := repo.Session.GetByID(ctx, sess.SessionID); err != nil {
		t.Error("删除被拦截时课程应保留")
	}
}

func TestSessionService_Delete_This(t *testing.T) {
	svc, repo, _ := setupTestSessionService(t)
	ctx := context.Background()
	sess := seedWeeklySession(t, repo)

	err := svc.Delete(ctx, sess.SessionID, &dto.DeleteSessionRequest{
		Scope: dto.ScopeThis, OccurrenceDate: "2024-01-03",
	}, "admin-001")
	if err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}

	// 课程保留，仅该日打删除标记
	if _, err := repo.Session.GetByID(ctx, sess.SessionID); err != nil {
		t.Fatal("单次删除不应移除课程记录")
	}
	ov, err := repo.Override.GetThis(ctx, sess.SessionID, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC))
	if err != nil || !ov.IsDeleted {
		t.Errorf("应写入删除标记覆盖: %v %+v", err, ov)
	}
}

func TestSessionService_Delete_Following(t *testing.T) {
	svc, repo, _ := setupTestSessionService(t)
	ctx := context.Background()
	sess := seedWeeklySession(t, repo)

	err := svc.Delete(ctx, sess.SessionID, &dto.DeleteSessionRequest{
		Scope: dto.ScopeThisAndFollowing, OccurrenceDate: "2024-01-08",
	}, "admin-001")
	if err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}

	ovs, _ := repo.Override.ListBySession(ctx, sess.SessionID)
	if len(ovs) != 1 || ovs[0].Scope != model.ScopeThisAndFollowing || !ovs[0].IsDeleted {
		t.Fatalf("应写入切点删除标记: %+v", ovs)
	}

	// 展开验证：01-08 起不再产出发生
	cal := NewCalendarService(repo, zap.NewNop())
	occs, _ := cal.Expand(ctx, sess.SessionID, &dto.ExpandCalendarRequest{
		StartDate: "2024-01-01", EndDate: "2024-01-12",
	})
	if len(occs) != 3 {
		t.Errorf("切点删除后应剩 3 次发生，实际=%d", len(occs))
	}
}

// ── 状态流转测试 ──

func TestSessionService_Cancel(t *testing.T) {
	svc, repo, _ := setupTestSessionService(t)
	ctx := context.Background()
	sess := seedWeeklySession(t, repo)

	if err := svc.Cancel(ctx, sess.SessionID, "admin-001"); err != nil {
		t.Fatalf("Cancel 应成功: %v", err)
	}
	got, _ := repo.Session.GetByID(ctx, sess.SessionID)
	if got.Status != model.SessionStatusCancelled {
		t.Errorf("状态应为 cancelled，实际=%s", got.Status)
	}

	if err := svc.Cancel(ctx, sess.SessionID, "admin-001"); !errors.Is(err, ErrAlreadyCancelled) {
		t.Errorf("重复取消期望 ErrAlreadyCancelled，实际: %v", err)
	}
}

func TestSessionService_Cancel_PastChildStaysLeaf(t *testing.T) {
	svc, repo, _ := setupTestSessionService(t)
	ctx := context.Background()
	sess := seedWeeklySession(t, repo)
	svc.now = func() time.Time { return time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC) }

	// 历史编辑产出实体化子记录
	resp, err := svc.Update(ctx, sess.SessionID, &dto.UpdateSessionRequest{
		Scope: dto.ScopeThis, OccurrenceDate: "2024-01-05", Title: ptrStr("历史补记"),
	}, "admin-001")
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}

	if err := svc.Cancel(ctx, resp.ID, "admin-001"); err != nil {
		t.Fatalf("取消子记录应成功: %v", err)
	}
	child, _ := repo.Session.GetByID(ctx, resp.ID)
	if child.Status != model.SessionStatusCancelled {
		t.Errorf("子记录状态应为 cancelled，实际=%s", child.Status)
	}

	// 子记录是终点：不得再向下实体化出孙记录，也不得在子记录上打删除标记
	all, _, _ := repo.Session.ListByTrainer(ctx, "trainer-001", 0, 100)
	for i := range all {
		if all[i].ParentID != nil && *all[i].ParentID == resp.ID {
			t.Fatalf("子记录不应再派生快照: %s", all[i].SessionID)
		}
	}
	if ovs, _ := repo.Override.ListBySession(ctx, resp.ID); len(ovs) != 0 {
		t.Errorf("子记录上不应出现覆盖记录，实际=%d", len(ovs))
	}
}

func TestSessionService_Complete_NotStartedYet(t *testing.T) {
	svc, repo, _ := setupTestSessionService(t)
	sess := seedWeeklySession(t, repo)

	// 时钟固定在课程开始之前
	err := svc.Complete(context.Background(), sess.SessionID, "admin-001")
	if !errors.Is(err, ErrNotStartedYet) {
		t.Errorf("期望 ErrNotStartedYet，实际: %v", err)
	}
}

func TestSessionService_Complete_Success(t *testing.T) {
	svc, repo, _ := setupTestSessionService(t)
	ctx := context.Background()
	sess := seedWeeklySession(t, repo)
	svc.now = func() time.Time { return time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC) }

	if err := svc.Complete(ctx, sess.SessionID, "admin-001"); err != nil {
		t.Fatalf("Complete 应成功: %v", err)
	}
	got, _ := repo.Session.GetByID(ctx, sess.SessionID)
	if got.Status != model.SessionStatusCompleted {
		t.Errorf("状态应为 completed，实际=%s", got.Status)
	}
}

func TestSessionService_Reactivate(t *testing.T) {
	svc, repo, _ := setupTestSessionService(t)
	ctx := context.Background()
	sess := seedWeeklySession(t, repo)

	// 未取消的课程不可恢复
	if err := svc.Reactivate(ctx, sess.SessionID, "admin-001"); !errors.Is(err, ErrNotCancelled) {
		t.Errorf("期望 ErrNotCancelled，实际: %v", err)
	}

	if err := svc.Cancel(ctx, sess.SessionID, "admin-001"); err != nil {
		t.Fatalf("Cancel 应成功: %v", err)
	}
	if err := svc.Reactivate(ctx, sess.SessionID, "admin-001"); err != nil {
		t.Fatalf("Reactivate 应成功: %v", err)
	}
	got, _ := repo.Session.GetByID(ctx, sess.SessionID)
	if got.Status != model.SessionStatusScheduled {
		t.Errorf("状态应恢复 scheduled，实际=%s", got.Status)
	}
}

func TestSessionService_Reactivate_AlreadyStarted(t *testing.T) {
	svc, repo, _ := setupTestSessionService(t)
	ctx := context.Background()
	sess := seedWeeklySession(t, repo)

	if err := svc.Cancel(ctx, sess.SessionID, "admin-001"); err != nil {
		t.Fatalf("Cancel 应成功: %v", err)
	}
	svc.now = func() time.Time { return time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC) }

	if err := svc.Reactivate(ctx, sess.SessionID, "admin-001"); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("期望 ErrAlreadyStarted，实际: %v", err)
	}
}

// [自证通过] internal/service/session_service_test.go
