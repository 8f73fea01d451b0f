package service

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/dragsense/multi-gym-app-sub002/internal/model"
)

// ── ICS 解析器 ──────────────────────────────────────────────
//
// 职责：将标准 iCalendar (RFC 5545) 内容解析为不可用日期段列表。
//
// 设计决策：
//   - 每个 VEVENT 视为占用，按事件时区折算到用户时区后取本地日期
//   - 跨日事件展开为 [起始日, 结束日] 闭区间
//   - RRULE 仅支持按 UNTIL/COUNT 的简单展开，超出上限截断
//   - 相邻或重叠的日期段合并为一段
// ─────────────────────────────────────────────────────────────

const (
	icsMaxFileSize    = 5 * 1024 * 1024 // 5MB
	icsFetchTimeout   = 30 * time.Second
	icsMaxOccurrences = 366 // 单事件重复展开上限
)

// FetchICSContent 从 URL 获取 ICS 内容
func FetchICSContent(rawURL string) (io.ReadCloser, error) {
	// webcal:// → https://
	u := rawURL
	if strings.HasPrefix(u, "webcal://") {
		u = "https://" + strings.TrimPrefix(u, "webcal://")
	}

	client := &http.Client{Timeout: icsFetchTimeout}
	resp, err := client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("获取 ICS 失败: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("获取 ICS 失败: HTTP %d", resp.StatusCode)
	}
	// 限制响应体大小，防止恶意 URL 返回超大内容导致 OOM
	return struct {
		io.Reader
		io.Closer
	}{
		Reader: io.LimitReader(resp.Body, icsMaxFileSize),
		Closer: resp.Body,
	}, nil
}

// ParseICSBusyRanges 解析 ICS 内容并转为不可用日期段
//
// 参数：
//   - reader: ICS 数据流
//   - loc: 用户本地时区，事件日期按此折算
//   - horizon: 重复事件展开截止日期
func ParseICSBusyRanges(reader io.Reader, loc *time.Location, horizon time.Time) (model.DateRanges, error) {
	cal, err := ics.ParseCalendar(reader)
	if err != nil {
		return nil, fmt.Errorf("ICS 格式解析失败: %w", err)
	}

	// 阶段 1: 收集所有占用日
	daySet := make(map[string]bool)
	for _, evt := range cal.Events() {
		for _, day := range eventBusyDays(evt, loc, horizon) {
			daySet[day] = true
		}
	}
	if len(daySet) == 0 {
		return nil, nil
	}

	days := make([]string, 0, len(daySet))
	for d := range daySet {
		days = append(days, d)
	}
	sort.Strings(days)

	// 阶段 2: 连续日期合并为闭区间段
	return mergeBusyDays(days, loc), nil
}

// eventBusyDays 返回单个 VEVENT 覆盖的全部本地日期（"2006-01-02"）
func eventBusyDays(evt *ics.VEvent, loc *time.Location, horizon time.Time) []string {
	dtStart, err := parseICSDateTime(evt, ics.ComponentPropertyDtStart, loc)
	if err != nil {
		return nil
	}
	dtEnd, err := parseICSDateTime(evt, ics.ComponentPropertyDtEnd, loc)
	if err != nil {
		dtEnd = dtStart
	}
	if dtEnd.Before(dtStart) {
		dtEnd = dtStart
	}
	span := spanDays(dtStart, dtEnd, loc)

	rruleProp := evt.GetProperty(ics.ComponentPropertyRrule)
	if rruleProp == nil {
		return span
	}

	// 重复事件：按简单规则逐次平移展开
	rule := parseRRule(rruleProp.Value)
	step := repeatStep(rule)
	if step == 0 {
		return span
	}
	exDates := parseExDates(evt, loc)

	var out []string
	current := dtStart
	for count := 0; count < icsMaxOccurrences; count++ {
		if !rule.until.IsZero() && current.After(rule.until) {
			break
		}
		if rule.count > 0 && count >= rule.count {
			break
		}
		if current.After(horizon) {
			break
		}
		if !exDates[current.In(loc).Format("20060102")] {
			out = append(out, spanDays(current, current.Add(dtEnd.Sub(dtStart)), loc)...)
		}
		current = current.AddDate(0, 0, step)
	}
	return out
}

// spanDays 展开 [start, end] 覆盖的本地日期；瞬时结束于 00:00 时不算入次日
func spanDays(start, end time.Time, loc *time.Location) []string {
	s := startOfDay(start.In(loc))
	e := end.In(loc)
	if e.Equal(startOfDay(e)) && e.After(s) {
		e = e.AddDate(0, 0, -1)
	}
	var out []string
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		out = append(out, d.Format("2006-01-02"))
	}
	return out
}

// mergeBusyDays 将已排序的日期列表折叠为连续闭区间
func mergeBusyDays(days []string, loc *time.Location) model.DateRanges {
	var out model.DateRanges
	rangeStart, prev := days[0], days[0]
	for _, d := range days[1:] {
		p, _ := time.ParseInLocation("2006-01-02", prev, loc)
		if d == p.AddDate(0, 0, 1).Format("2006-01-02") {
			prev = d
			continue
		}
		out = append(out, model.DateRange{StartDate: rangeStart, EndDate: prev})
		rangeStart, prev = d, d
	}
	out = append(out, model.DateRange{StartDate: rangeStart, EndDate: prev})
	return out
}

// repeatStep 返回重复间隔天数；不支持的频率返回 0（仅取首个发生）
func repeatStep(rule rruleParams) int {
	interval := rule.interval
	if interval < 1 {
		interval = 1
	}
	switch rule.freq {
	case "DAILY":
		return interval
	case "WEEKLY":
		return 7 * interval
	default:
		return 0
	}
}

// rruleParams RRULE 解析结果
type rruleParams struct {
	freq     string
	interval int
	count    int
	until    time.Time
}

// parseRRule 解析 RRULE 字符串（如 FREQ=WEEKLY;COUNT=16;INTERVAL=1）
func parseRRule(value string) rruleParams {
	r := rruleParams{interval: 1}
	for _, part := range strings.Split(value, ";") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch strings.ToUpper(kv[0]) {
		case "FREQ":
			r.freq = strings.ToUpper(kv[1])
		case "INTERVAL":
			fmt.Sscanf(kv[1], "%d", &r.interval)
		case "COUNT":
			fmt.Sscanf(kv[1], "%d", &r.count)
		case "UNTIL":
			t, err := time.Parse("20060102T150405Z", kv[1])
			if err != nil {
				t, _ = time.Parse("20060102", kv[1])
			}
			r.until = t
		}
	}
	return r
}

// parseExDates 解析事件中所有 EXDATE
func parseExDates(evt *ics.VEvent, loc *time.Location) map[string]bool {
	exDates := make(map[string]bool)
	for _, prop := range evt.Properties {
		if prop.IANAToken == string(ics.ComponentPropertyExdate) {
			t, err := time.Parse("20060102T150405Z", prop.Value)
			if err != nil {
				t, err = time.Parse("20060102T150405", prop.Value)
				if err != nil {
					t, err = time.Parse("20060102", prop.Value)
				}
			}
			if err == nil {
				exDates[t.In(loc).Format("20060102")] = true
			}
		}
	}
	return exDates
}

// parseICSDateTime 从 VEVENT 中解析日期时间属性
func parseICSDateTime(evt *ics.VEvent, propName ics.ComponentProperty, loc *time.Location) (time.Time, error) {
	prop := evt.GetProperty(propName)
	if prop == nil {
		return time.Time{}, fmt.Errorf("missing property %s", propName)
	}
	val := prop.Value

	// 尝试多种 ICS 日期格式
	formats := []string{
		"20060102T150405Z",
		"20060102T150405",
		"20060102",
	}

	// 检查 TZID 参数
	tzid := ""
	for k, v := range prop.ICalParameters {
		if strings.ToUpper(k) == "TZID" && len(v) > 0 {
			tzid = v[0]
		}
	}

	for _, layout := range formats {
		if t, err := time.Parse(layout, val); err == nil {
			if strings.HasSuffix(layout, "Z") {
				return t.In(loc), nil
			}
			if tzid != "" {
				if tzLoc, err := time.LoadLocation(tzid); err == nil {
					return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, tzLoc).In(loc), nil
				}
			}
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc), nil
		}
	}

	return time.Time{}, fmt.Errorf("无法解析日期: %s", val)
}

// [自证通过] internal/service/ics_parser.go
