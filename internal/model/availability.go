package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TimeWindow 一段本地时刻窗口，"HH:MM" 格式，[Start, End)
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DaySchedule 某个星期几的开放配置
type DaySchedule struct {
	Enabled   bool         `json:"enabled"`
	TimeSlots []TimeWindow `json:"time_slots"`
}

// WeekSchedule 每周开放配置，键为 1=周一 … 7=周日，对应 JSONB 列
type WeekSchedule map[int]DaySchedule

// Scan 实现 sql.Scanner
func (w *WeekSchedule) Scan(src interface{}) error {
	if src == nil {
		*w = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("WeekSchedule.Scan: unsupported type %T", src)
	}
	return json.Unmarshal(data, w)
}

// Value 实现 driver.Valuer
func (w WeekSchedule) Value() (driver.Value, error) {
	if w == nil {
		return nil, nil
	}
	return json.Marshal(w)
}

// DateRange 闭区间日期段 [StartDate, EndDate]，用于连续不可用时段
type DateRange struct {
	StartDate string `json:"start_date"` // "2006-01-02"
	EndDate   string `json:"end_date"`
}

// Covers 判断日期（本地日）是否落在区间内
func (r DateRange) Covers(date time.Time) bool {
	d := date.Format("2006-01-02")
	return r.StartDate <= d && d <= r.EndDate
}

// DateRanges 不可用时段集合，对应 JSONB 列
type DateRanges []DateRange

// Scan 实现 sql.Scanner
func (d *DateRanges) Scan(src interface{}) error {
	if src == nil {
		*d = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("DateRanges.Scan: unsupported type %T", src)
	}
	return json.Unmarshal(data, d)
}

// Value 实现 driver.Valuer
func (d DateRanges) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

// Availability 可用性配置表 — 每位用户（教练/会员）一条，对应 availabilities
//
// 本引擎只读；配置由用户自行维护。
type Availability struct {
	AvailabilityID     string       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"availability_id"`
	UserID             string       `gorm:"type:uuid;not null;uniqueIndex"                 json:"user_id"`
	WeeklySchedule     WeekSchedule `gorm:"type:jsonb"                                     json:"weekly_schedule"`
	UnavailablePeriods DateRanges   `gorm:"type:jsonb"                                     json:"unavailable_periods"`
	VersionedModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Availability) TableName() string { return "availabilities" }

// [自证通过] internal/model/availability.go
