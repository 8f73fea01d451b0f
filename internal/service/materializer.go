package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dragsense/multi-gym-app-sub002/internal/model"
	"github.com/dragsense/multi-gym-app-sub002/internal/repository"
)

// ── 实体化模块业务错误 ──

var (
	ErrOccurrenceNotFound = errors.New("该日期无有效发生")
	ErrNotSeriesParent    = errors.New("实体化子课程不可再实体化")
)

// MaterializerService 历史发生实体化业务接口
//
// 虚拟发生一旦成为历史，即转换为独立的课程记录（parent_id 指回父课程），
// 同时在父课程上打 this 删除标记，避免虚拟视图与实体记录重复出现。
// Materialize 幂等：同一 (课程, 日期) 重复调用收敛到同一条记录。
type MaterializerService interface {
	Materialize(ctx context.Context, sessionID string, date string) (*model.Session, error)
	// Sweep 后台扫描：将所有活跃重复课程从起始日到当前的未实体化
	// 历史发生逐个补齐；单个发生失败只记录日志，不中断批次
	Sweep(ctx context.Context) error
}

type materializerService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewMaterializerService 创建 MaterializerService 实例
func NewMaterializerService(repo *repository.Repository, logger *zap.Logger) MaterializerService {
	return &materializerService{repo: repo, logger: logger, now: time.Now}
}

func (s *materializerService) Materialize(ctx context.Context, sessionID string, date string) (*model.Session, error) {
	parent, err := s.repo.Session.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("查询课程失败", zap.Error(err))
		return nil, err
	}
	if parent.ParentID != nil {
		return nil, ErrNotSeriesParent
	}

	day, err := time.ParseInLocation("2006-01-02", date, parent.Loc())
	if err != nil {
		return nil, ErrInvalidDate
	}

	var child *model.Session
	err = s.repo.WithTransaction(ctx, func(txRepo *repository.Repository) error {
		var txErr error
		child, txErr = materializeOccurrence(ctx, txRepo, parent, day, nil)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return child, nil
}

func (s *materializerService) Sweep(ctx context.Context) error {
	now := s.now()
	sessions, err := s.repo.Session.ListRecurringActive(ctx, now)
	if err != nil {
		s.logger.Error("查询活跃重复课程失败", zap.Error(err))
		return err
	}

	var materialized, failed int
	for i := range sessions {
		sess := &sessions[i]
		occs, err := expandSessionRange(ctx, s.repo, sess, sess.StartTime, now, nil)
		if err != nil {
			s.logger.Warn("展开课程失败，已跳过",
				zap.Error(err), zap.String("session_id", sess.SessionID))
			continue
		}
		for j := range occs {
			occ := &occs[j]
			if !occ.EndTime.Before(now) {
				continue
			}
			day, perr := time.ParseInLocation("2006-01-02", occ.Date, sess.Loc())
			if perr != nil {
				continue
			}
			err := s.repo.WithTransaction(ctx, func(txRepo *repository.Repository) error {
				_, txErr := materializeOccurrence(ctx, txRepo, sess, day, nil)
				return txErr
			})
			if err != nil {
				failed++
				s.logger.Warn("实体化历史发生失败，已跳过",
					zap.Error(err),
					zap.String("session_id", sess.SessionID),
					zap.String("date", occ.Date))
				continue
			}
			materialized++
		}
	}

	s.logger.Info("历史发生实体化扫描完成",
		zap.Int("sessions", len(sessions)),
		zap.Int("materialized", materialized),
		zap.Int("failed", failed))
	return nil
}

// materializeOccurrence 将父课程 day 当日的有效发生固化为独立记录。
// 幂等：已存在同日子记录时直接返回。必须在事务内调用，
// 子记录创建与父课程的 this 删除标记要么同时生效要么同时回滚。
func materializeOccurrence(ctx context.Context, repo *repository.Repository, parent *model.Session, day time.Time, actor *string) (*model.Session, error) {
	loc := parent.Loc()
	dayStart := startOfDay(day.In(loc))

	existing, err := repo.Session.GetChildBySourceDate(ctx, parent.SessionID, dayStart)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	occs, err := expandSessionRange(ctx, repo, parent, dayStart, dayStart, nil)
	if err != nil {
		return nil, err
	}
	if len(occs) == 0 {
		return nil, ErrOccurrenceNotFound
	}
	occ := &occs[0]

	child := &model.Session{
		SessionID:       uuid.New().String(),
		Title:           occ.Title,
		Description:     occ.Description,
		SessionType:     occ.SessionType,
		Location:        occ.Location,
		Price:           occ.Price,
		Status:          occ.Status,
		DurationMinutes: occ.DurationMinutes,
		StartTime:       occ.StartTime,
		Timezone:        parent.Timezone,
		TrainerID:       occ.TrainerID,
		MemberIDs:       occ.MemberIDs,
		ParentID:        &parent.SessionID,
		SourceDate:      &dayStart,
	}
	child.CreatedBy = actor
	if err := repo.Session.Create(ctx, child); err != nil {
		return nil, err
	}

	if err := upsertDeletedOverride(ctx, repo, parent.SessionID, dayStart, actor); err != nil {
		return nil, err
	}
	return child, nil
}

// upsertDeletedOverride 在父课程上写入（或更新）this 范围的删除标记
func upsertDeletedOverride(ctx context.Context, repo *repository.Repository, sessionID string, day time.Time, actor *string) error {
	ov, err := repo.Override.GetThis(ctx, sessionID, day)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		ov = &model.SessionOverride{
			SessionID: sessionID,
			Date:      day,
			Scope:     model.ScopeThis,
			IsDeleted: true,
		}
		ov.CreatedBy = actor
		return repo.Override.Create(ctx, ov)
	}
	ov.IsDeleted = true
	ov.UpdatedBy = actor
	return repo.Override.Update(ctx, ov)
}

// [自证通过] internal/service/materializer.go
