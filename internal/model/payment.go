package model

import "time"

// Payment 付款记录表 — 对应 payments
//
// 仅在删除保护中被本引擎消费：存在付款记录的课程禁止物理删除。
type Payment struct {
	PaymentID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"payment_id"`
	SessionID string     `gorm:"type:uuid;not null;index"                       json:"session_id"`
	MemberID  string     `gorm:"type:uuid;not null"                             json:"member_id"`
	Amount    float64    `gorm:"type:numeric(10,2);not null"                    json:"amount"`
	Status    string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"` // pending | paid | refunded
	PaidAt    *time.Time `json:"paid_at,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Payment) TableName() string { return "payments" }
