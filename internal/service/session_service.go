package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dragsense/multi-gym-app-sub002/config"
	"github.com/dragsense/multi-gym-app-sub002/internal/dto"
	"github.com/dragsense/multi-gym-app-sub002/internal/model"
	"github.com/dragsense/multi-gym-app-sub002/internal/repository"
)

// ── 课程模块业务错误 ──

var (
	ErrSessionHasPayments     = errors.New("课程存在付款记录，禁止删除")
	ErrRecurrenceImmutable    = errors.New("重复配置创建后不可变更，请删除后重建")
	ErrAmbiguousTimeShift     = errors.New("this_and_following 范围不支持改期，请直接编辑基础课程")
	ErrOccurrenceDateRequired = errors.New("必须指定发生日期")
	ErrSlotTaken              = errors.New("该时段已被占用")
	ErrTrainerUnavailable     = errors.New("教练该时段不开放")
	ErrAlreadyCancelled       = errors.New("课程已取消")
	ErrNotCancelled           = errors.New("课程未处于已取消状态")
	ErrNotStartedYet          = errors.New("课程尚未开始，不能标记完成")
	ErrAlreadyStarted         = errors.New("课程已开始，不能恢复")
	ErrInvalidStartTime       = errors.New("起始时刻非法")
)

// SessionService 课程变更业务接口
//
// 同一课程的任何变更（课程记录 + 覆盖集 + 实体化）都在单个事务内完成；
// 不同课程的并发变更互不影响。领域事件在事务提交后发布，失败不回传。
type SessionService interface {
	Create(ctx context.Context, req *dto.CreateSessionRequest, callerID string) (*dto.SessionResponse, error)
	Get(ctx context.Context, id string) (*dto.SessionResponse, error)
	ListByTrainer(ctx context.Context, trainerID string, page *dto.PaginationRequest) ([]dto.SessionResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateSessionRequest, callerID string) (*dto.SessionResponse, error)
	Delete(ctx context.Context, id string, req *dto.DeleteSessionRequest, callerID string) error
	Cancel(ctx context.Context, id string, callerID string) error
	Complete(ctx context.Context, id string, callerID string) error
	Reactivate(ctx context.Context, id string, callerID string) error
}

type sessionService struct {
	repo   *repository.Repository
	cfg    *config.BookingConfig
	events EventPublisher
	logger *zap.Logger
	now    func() time.Time
}

// NewSessionService 创建 SessionService 实例
func NewSessionService(repo *repository.Repository, cfg *config.BookingConfig, events EventPublisher, logger *zap.Logger) SessionService {
	return &sessionService{repo: repo, cfg: cfg, events: events, logger: logger, now: time.Now}
}

// ════════════════════════════════════════════════════════════
// Create — 预约下单
// ════════════════════════════════════════════════════════════

func (s *sessionService) Create(ctx context.Context, req *dto.CreateSessionRequest, callerID string) (*dto.SessionResponse, error) {
	tz := req.Timezone
	if tz == "" {
		tz = s.cfg.DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, ErrInvalidTimezone
	}
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, ErrInvalidStartTime
	}

	sess := &model.Session{
		Title:           req.Title,
		Description:     req.Description,
		SessionType:     req.SessionType,
		Location:        req.Location,
		Price:           req.Price,
		Status:          model.SessionStatusScheduled,
		DurationMinutes: req.DurationMinutes,
		StartTime:       start,
		Timezone:        tz,
		TrainerID:       req.TrainerID,
		MemberIDs:       model.StringArray(req.MemberIDs),
		Notes:           appendNote("", req.Notes, s.now()),
	}
	if sess.SessionType == "" {
		sess.SessionType = "personal"
	}
	if req.EnableRecurrence {
		if req.Recurrence == nil {
			return nil, ErrInvalidRecurrence
		}
		endDate, perr := time.ParseInLocation("2006-01-02", req.Recurrence.EndDate, loc)
		if perr != nil || endDate.Before(start) {
			return nil, ErrInvalidRecurrence
		}
		sess.EnableRecurrence = true
		sess.RecurrenceFrequency = req.Recurrence.Frequency
		sess.RecurrenceWeekDays = model.IntArray(req.Recurrence.WeekDays)
		sess.RecurrenceMonthDays = model.IntArray(req.Recurrence.MonthDays)
		sess.RecurrenceEndDate = &endDate
	}
	sess.CreatedBy = &callerID

	if err := ValidateRecurrence(sess); err != nil {
		return nil, err
	}
	if err := s.validateParticipants(ctx, s.repo, req.TrainerID, req.MemberIDs); err != nil {
		return nil, err
	}

	// 预约写入必须在自身事务内复核可用性与占用：槽位查询与下单之间
	// 可能被并发预约抢先，此处失败关闭而非信任客户端所见
	err = s.repo.WithTransaction(ctx, func(txRepo *repository.Repository) error {
		if err := s.revalidateSlot(ctx, txRepo, sess); err != nil {
			return err
		}
		return txRepo.Session.Create(ctx, sess)
	})
	if err != nil {
		return nil, err
	}

	s.events.PublishSessionEvent(ctx, &SessionEvent{
		Type: EventSessionCreated, SessionID: sess.SessionID, After: sess,
	})

	resp := toSessionResponse(sess)
	return &resp, nil
}

// revalidateSlot 事务内复核：教练当日开放且首次发生不与既有占用重叠
func (s *sessionService) revalidateSlot(ctx context.Context, repo *repository.Repository, sess *model.Session) error {
	loc := sess.Loc()
	localStart := sess.StartTime.In(loc)
	dayStart := startOfDay(localStart)

	av, err := repo.Availability.GetByUser(ctx, sess.TrainerID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if av != nil {
		if !isOpenDay(av, isoWeekday(localStart)) || isBlackout(av, localStart) {
			return ErrTrainerUnavailable
		}
	}

	conflicts, err := findDayConflicts(ctx, repo, sess.TrainerID, dayStart, dayStart.AddDate(0, 0, 1), s.logger)
	if err != nil {
		return err
	}
	if overlapsAny(sess.StartTime, sess.EndTime(), conflicts) {
		return ErrSlotTaken
	}
	return nil
}

func (s *sessionService) Get(ctx context.Context, id string) (*dto.SessionResponse, error) {
	sess, err := s.getSession(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toSessionResponse(sess)
	return &resp, nil
}

func (s *sessionService) ListByTrainer(ctx context.Context, trainerID string, page *dto.PaginationRequest) ([]dto.SessionResponse, int64, error) {
	sessions, total, err := s.repo.Session.ListByTrainer(ctx, trainerID, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("查询教练课程列表失败", zap.Error(err))
		return nil, 0, err
	}
	out := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, toSessionResponse(&sessions[i]))
	}
	return out, total, nil
}

// ════════════════════════════════════════════════════════════
// Update — 三种作用范围的编辑
// ════════════════════════════════════════════════════════════

func (s *sessionService) Update(ctx context.Context, id string, req *dto.UpdateSessionRequest, callerID string) (*dto.SessionResponse, error) {
	sess, err := s.getSession(ctx, id)
	if err != nil {
		return nil, err
	}

	// 重复配置创建后不可变更
	if req.EnableRecurrence != nil && *req.EnableRecurrence != sess.EnableRecurrence {
		return nil, ErrRecurrenceImmutable
	}
	if req.TrainerID != nil || len(req.MemberIDs) > 0 {
		trainerID := sess.TrainerID
		if req.TrainerID != nil {
			trainerID = *req.TrainerID
		}
		members := []string(sess.MemberIDs)
		if len(req.MemberIDs) > 0 {
			members = req.MemberIDs
		}
		if err := s.validateParticipants(ctx, s.repo, trainerID, members); err != nil {
			return nil, err
		}
	}

	scope := req.Scope
	if scope == "" {
		scope = dto.ScopeAll
	}

	before := *sess
	var result *model.Session
	switch scope {
	case dto.ScopeAll:
		result, err = s.updateAll(ctx, sess, req, callerID)
	case dto.ScopeThis:
		result, err = s.updateThis(ctx, sess, req, callerID)
	case dto.ScopeThisAndFollowing:
		result, err = s.updateFollowing(ctx, sess, req, callerID)
	}
	if err != nil {
		return nil, err
	}

	s.events.PublishSessionEvent(ctx, &SessionEvent{
		Type: EventSessionUpdated, SessionID: sess.SessionID, Before: &before, After: result,
	})

	resp := toSessionResponse(result)
	return &resp, nil
}

// updateAll 直接改写基础课程，并按新基线重排全部未删除覆盖补丁
func (s *sessionService) updateAll(ctx context.Context, sess *model.Session, req *dto.UpdateSessionRequest, callerID string) (*model.Session, error) {
	err := s.repo.WithTransaction(ctx, func(txRepo *repository.Repository) error {
		// 被触碰的历史发生先实体化，保证历史保留旧值
		if err := s.materializePast(ctx, txRepo, sess, &callerID); err != nil {
			return err
		}

		applyBaseUpdates(sess, req, s.now())
		if req.StartTime != nil {
			start, perr := time.Parse(time.RFC3339, *req.StartTime)
			if perr != nil {
				return ErrInvalidStartTime
			}
			sess.StartTime = start
		}
		sess.UpdatedBy = &callerID
		if err := txRepo.Session.Update(ctx, sess); err != nil {
			return err
		}

		ovs, err := txRepo.Override.ListBySession(ctx, sess.SessionID)
		if err != nil {
			return err
		}
		for i := range ovs {
			ov := &ovs[i]
			if ov.IsDeleted {
				continue
			}
			if rebasePatch(ov, sess) {
				ov.UpdatedBy = &callerID
				if err := txRepo.Override.Update(ctx, ov); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// updateThis 单次发生编辑：写 this 覆盖；历史发生先实体化后直接改实体记录
func (s *sessionService) updateThis(ctx context.Context, sess *model.Session, req *dto.UpdateSessionRequest, callerID string) (*model.Session, error) {
	day, err := s.parseOccurrenceDate(sess, req.OccurrenceDate)
	if err != nil {
		return nil, err
	}

	result := sess
	err = s.repo.WithTransaction(ctx, func(txRepo *repository.Repository) error {
		occs, err := expandSessionRange(ctx, txRepo, sess, day, day, nil)
		if err != nil {
			return err
		}
		if len(occs) == 0 {
			return ErrOccurrenceNotFound
		}
		occ := &occs[0]

		if occ.EndTime.Before(s.now()) {
			child, err := materializeOccurrence(ctx, txRepo, sess, day, &callerID)
			if err != nil {
				return err
			}
			applyBaseUpdates(child, req, s.now())
			child.UpdatedBy = &callerID
			if err := txRepo.Session.Update(ctx, child); err != nil {
				return err
			}
			result = child
			return nil
		}

		ov, err := txRepo.Override.GetThis(ctx, sess.SessionID, day)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			ov = &model.SessionOverride{
				SessionID: sess.SessionID,
				Date:      day,
				Scope:     model.ScopeThis,
			}
			ov.CreatedBy = &callerID
		}
		applyPatchUpdates(ov, req)
		if req.StartTime != nil {
			start, perr := time.Parse(time.RFC3339, *req.StartTime)
			if perr != nil {
				return ErrInvalidStartTime
			}
			ov.StartTime = &start
		}
		if req.Notes != "" {
			ov.Notes = appendNote(ov.Notes, req.Notes, s.now())
		}
		ov.UpdatedBy = &callerID
		if ov.OverrideID == "" {
			return txRepo.Override.Create(ctx, ov)
		}
		return txRepo.Override.Update(ctx, ov)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// updateFollowing 切点编辑：落地 this_and_following 覆盖并级联改写
// 切点之后的既有覆盖。整组改期语义不明确，携带 start_time 直接拒绝。
func (s *sessionService) updateFollowing(ctx context.Context, sess *model.Session, req *dto.UpdateSessionRequest, callerID string) (*model.Session, error) {
	if req.StartTime != nil {
		return nil, ErrAmbiguousTimeShift
	}
	day, err := s.parseOccurrenceDate(sess, req.OccurrenceDate)
	if err != nil {
		return nil, err
	}

	err = s.repo.WithTransaction(ctx, func(txRepo *repository.Repository) error {
		laters, err := txRepo.Override.ListFromDate(ctx, sess.SessionID, day)
		if err != nil {
			return err
		}

		// 同日既有切点覆盖直接复用，否则新建
		dayKey := day.Format("2006-01-02")
		var anchor *model.SessionOverride
		for i := range laters {
			ov := &laters[i]
			if ov.Scope == model.ScopeThisAndFollowing && ov.Date.Format("2006-01-02") == dayKey {
				anchor = ov
				break
			}
		}
		isNew := anchor == nil
		if isNew {
			anchor = &model.SessionOverride{
				SessionID: sess.SessionID,
				Date:      day,
				Scope:     model.ScopeThisAndFollowing,
			}
			anchor.CreatedBy = &callerID
		}
		applyPatchUpdates(anchor, req)
		if req.Notes != "" {
			anchor.Notes = appendNote(anchor.Notes, req.Notes, s.now())
		}
		anchor.UpdatedBy = &callerID
		if isNew {
			if err := txRepo.Override.Create(ctx, anchor); err != nil {
				return err
			}
		} else {
			if err := txRepo.Override.Update(ctx, anchor); err != nil {
				return err
			}
		}

		// 切点之后的覆盖改写为针对新基线的补丁
		for i := range laters {
			ov := &laters[i]
			if ov.OverrideID == anchor.OverrideID || ov.IsDeleted {
				continue
			}
			rewriteFollowing(ov, anchor)
			ov.UpdatedBy = &callerID
			if err := txRepo.Override.Update(ctx, ov); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// ════════════════════════════════════════════════════════════
// Delete — 单次 / 切点起 / 整课程
// ════════════════════════════════════════════════════════════

func (s *sessionService) Delete(ctx context.Context, id string, req *dto.DeleteSessionRequest, callerID string) error {
	sess, err := s.getSession(ctx, id)
	if err != nil {
		return err
	}

	scope := req.Scope
	if scope == "" {
		scope = dto.ScopeAll
	}

	if scope != dto.ScopeAll {
		day, err := s.parseOccurrenceDate(sess, req.OccurrenceDate)
		if err != nil {
			return err
		}
		return s.repo.WithTransaction(ctx, func(txRepo *repository.Repository) error {
			return s.markOccurrenceDeleted(ctx, txRepo, sess, day, scopeToModel(scope), &callerID)
		})
	}

	// 整课程删除：有付款记录即为删除保护冲突；删除前补齐历史实体化，
	// 保证付款历史不因父课程消失而失去挂靠
	n, err := s.repo.Payment.CountBySession(ctx, id)
	if err != nil {
		s.logger.Error("查询付款记录失败", zap.Error(err))
		return err
	}
	if n > 0 {
		return ErrSessionHasPayments
	}

	err = s.repo.WithTransaction(ctx, func(txRepo *repository.Repository) error {
		if err := s.materializePast(ctx, txRepo, sess, &callerID); err != nil {
			return err
		}
		if err := txRepo.Override.DeleteBySession(ctx, sess.SessionID, callerID); err != nil {
			return err
		}
		return txRepo.Session.Delete(ctx, sess.SessionID, callerID)
	})
	if err != nil {
		return err
	}

	s.events.PublishSessionEvent(ctx, &SessionEvent{
		Type: EventSessionDeleted, SessionID: sess.SessionID, Before: sess,
	})
	return nil
}

func (s *sessionService) markOccurrenceDeleted(ctx context.Context, repo *repository.Repository, sess *model.Session, day time.Time, scope string, actor *string) error {
	if scope == model.ScopeThis {
		return upsertDeletedOverride(ctx, repo, sess.SessionID, day, actor)
	}

	// 切点起删除：同日既有切点覆盖打删除标记，否则新建
	laters, err := repo.Override.ListFromDate(ctx, sess.SessionID, day)
	if err != nil {
		return err
	}
	dayKey := day.Format("2006-01-02")
	for i := range laters {
		ov := &laters[i]
		if ov.Scope == model.ScopeThisAndFollowing && ov.Date.Format("2006-01-02") == dayKey {
			ov.IsDeleted = true
			ov.UpdatedBy = actor
			return repo.Override.Update(ctx, ov)
		}
	}
	ov := &model.SessionOverride{
		SessionID: sess.SessionID,
		Date:      day,
		Scope:     model.ScopeThisAndFollowing,
		IsDeleted: true,
	}
	ov.CreatedBy = actor
	return repo.Override.Create(ctx, ov)
}

// ════════════════════════════════════════════════════════════
// 状态流转 — Cancel / Complete / Reactivate
// ════════════════════════════════════════════════════════════

func (s *sessionService) Cancel(ctx context.Context, id string, callerID string) error {
	sess, err := s.getSession(ctx, id)
	if err != nil {
		return err
	}
	if sess.Status == model.SessionStatusCancelled {
		return ErrAlreadyCancelled
	}

	before := *sess
	err = s.repo.WithTransaction(ctx, func(txRepo *repository.Repository) error {
		if err := s.materializePast(ctx, txRepo, sess, &callerID); err != nil {
			return err
		}
		sess.Status = model.SessionStatusCancelled
		sess.UpdatedBy = &callerID
		return txRepo.Session.Update(ctx, sess)
	})
	if err != nil {
		return err
	}
	s.events.PublishSessionEvent(ctx, &SessionEvent{
		Type: EventSessionUpdated, SessionID: sess.SessionID, Before: &before, After: sess,
	})
	return nil
}

func (s *sessionService) Complete(ctx context.Context, id string, callerID string) error {
	sess, err := s.getSession(ctx, id)
	if err != nil {
		return err
	}
	if sess.StartTime.After(s.now()) {
		return ErrNotStartedYet
	}

	before := *sess
	sess.Status = model.SessionStatusCompleted
	sess.UpdatedBy = &callerID
	if err := s.repo.Session.Update(ctx, sess); err != nil {
		s.logger.Error("更新课程状态失败", zap.Error(err))
		return err
	}
	s.events.PublishSessionEvent(ctx, &SessionEvent{
		Type: EventSessionUpdated, SessionID: sess.SessionID, Before: &before, After: sess,
	})
	return nil
}

func (s *sessionService) Reactivate(ctx context.Context, id string, callerID string) error {
	sess, err := s.getSession(ctx, id)
	if err != nil {
		return err
	}
	if sess.Status != model.SessionStatusCancelled {
		return ErrNotCancelled
	}
	if !sess.StartTime.After(s.now()) {
		return ErrAlreadyStarted
	}

	before := *sess
	sess.Status = model.SessionStatusScheduled
	sess.UpdatedBy = &callerID
	if err := s.repo.Session.Update(ctx, sess); err != nil {
		s.logger.Error("更新课程状态失败", zap.Error(err))
		return err
	}
	s.events.PublishSessionEvent(ctx, &SessionEvent{
		Type: EventSessionUpdated, SessionID: sess.SessionID, Before: &before, After: sess,
	})
	return nil
}

// ── 内部辅助 ──

func (s *sessionService) getSession(ctx context.Context, id string) (*model.Session, error) {
	sess, err := s.repo.Session.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("查询课程失败", zap.Error(err))
		return nil, err
	}
	return sess, nil
}

func (s *sessionService) parseOccurrenceDate(sess *model.Session, date string) (time.Time, error) {
	if date == "" {
		return time.Time{}, ErrOccurrenceDateRequired
	}
	day, err := time.ParseInLocation("2006-01-02", date, sess.Loc())
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return day, nil
}

// materializePast 补齐课程截至当前的全部未实体化历史发生
func (s *sessionService) materializePast(ctx context.Context, repo *repository.Repository, sess *model.Session, actor *string) error {
	// 实体化子课程本身已是独立快照，不再向下实体化
	if sess.ParentID != nil {
		return nil
	}
	now := s.now()
	if !sess.StartTime.Before(now) {
		return nil
	}
	occs, err := expandSessionRange(ctx, repo, sess, sess.StartTime, now, nil)
	if err != nil {
		return err
	}
	loc := sess.Loc()
	for i := range occs {
		occ := &occs[i]
		if !occ.EndTime.Before(now) {
			continue
		}
		day, perr := time.ParseInLocation("2006-01-02", occ.Date, loc)
		if perr != nil {
			continue
		}
		if _, err := materializeOccurrence(ctx, repo, sess, day, actor); err != nil {
			return err
		}
	}
	return nil
}

func (s *sessionService) validateParticipants(ctx context.Context, repo *repository.Repository, trainerID string, memberIDs []string) error {
	trainer, err := repo.User.GetByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTrainerNotFound
		}
		s.logger.Error("查询教练失败", zap.Error(err))
		return err
	}
	if trainer.Role != model.RoleTrainer {
		return ErrNotATrainer
	}

	members, err := repo.User.ListByIDs(ctx, memberIDs)
	if err != nil {
		s.logger.Error("查询会员失败", zap.Error(err))
		return err
	}
	if len(members) != len(uniqueStrings(memberIDs)) {
		return ErrMemberNotFound
	}
	return nil
}

// applyBaseUpdates 将请求中的非空字段落到课程记录
func applyBaseUpdates(sess *model.Session, req *dto.UpdateSessionRequest, now time.Time) {
	if req.Title != nil {
		sess.Title = *req.Title
	}
	if req.Description != nil {
		sess.Description = *req.Description
	}
	if req.SessionType != nil {
		sess.SessionType = *req.SessionType
	}
	if req.Location != nil {
		sess.Location = *req.Location
	}
	if req.Price != nil {
		sess.Price = *req.Price
	}
	if req.DurationMinutes != nil {
		sess.DurationMinutes = *req.DurationMinutes
	}
	if req.TrainerID != nil {
		sess.TrainerID = *req.TrainerID
	}
	if len(req.MemberIDs) > 0 {
		sess.MemberIDs = model.StringArray(req.MemberIDs)
	}
	if req.Notes != "" {
		sess.Notes = appendNote(sess.Notes, req.Notes, now)
	}
}

// applyPatchUpdates 将请求中的非空字段落到覆盖补丁
func applyPatchUpdates(ov *model.SessionOverride, req *dto.UpdateSessionRequest) {
	if req.Title != nil {
		ov.Title = req.Title
	}
	if req.Description != nil {
		ov.Description = req.Description
	}
	if req.SessionType != nil {
		ov.SessionType = req.SessionType
	}
	if req.Location != nil {
		ov.Location = req.Location
	}
	if req.Price != nil {
		ov.Price = req.Price
	}
	if req.DurationMinutes != nil {
		ov.DurationMinutes = req.DurationMinutes
	}
	if req.TrainerID != nil {
		ov.TrainerID = req.TrainerID
	}
	if len(req.MemberIDs) > 0 {
		ov.MemberIDs = model.StringArray(req.MemberIDs)
	}
}

// appendNote 备注只追加：新条目带时间戳拼接到历史之后，永不覆盖
func appendNote(existing, note string, at time.Time) string {
	if note == "" {
		return existing
	}
	line := "[" + at.Format("2006-01-02 15:04") + "] " + note
	if existing == "" {
		return line
	}
	return existing + "\n" + line
}

func scopeToModel(scope string) string {
	if scope == dto.ScopeThisAndFollowing {
		return model.ScopeThisAndFollowing
	}
	return model.ScopeThis
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func toSessionResponse(sess *model.Session) dto.SessionResponse {
	resp := dto.SessionResponse{
		ID:                  sess.SessionID,
		Title:               sess.Title,
		Description:         sess.Description,
		SessionType:         sess.SessionType,
		Location:            sess.Location,
		Price:               sess.Price,
		Status:              sess.Status,
		DurationMinutes:     sess.DurationMinutes,
		StartTime:           sess.StartTime.Format(time.RFC3339),
		EndTime:             sess.EndTime().Format(time.RFC3339),
		Timezone:            sess.Timezone,
		TrainerID:           sess.TrainerID,
		MemberIDs:           []string(sess.MemberIDs),
		EnableRecurrence:    sess.EnableRecurrence,
		RecurrenceFrequency: sess.RecurrenceFrequency,
		RecurrenceWeekDays:  []int(sess.RecurrenceWeekDays),
		RecurrenceMonthDays: []int(sess.RecurrenceMonthDays),
		Notes:               sess.Notes,
		CreatedAt:           sess.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           sess.UpdatedAt.Format(time.RFC3339),
	}
	if sess.RecurrenceEndDate != nil {
		resp.RecurrenceEndDate = sess.RecurrenceEndDate.Format("2006-01-02")
	}
	if sess.ParentID != nil {
		resp.ParentID = *sess.ParentID
	}
	return resp
}

// [自证通过] internal/service/session_service.go
