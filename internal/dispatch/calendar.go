// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dispatch

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/pacer/internal/pacer"
	"github.com/taibuivan/pacer/internal/platform/apperr"
)

// actionPopulateCal bulk-replaces the full instructional calendar.
func (h *Handler) actionPopulateCal(ctx context.Context, principal *pacer.Principal, req *Request) (any, error) {
	if err := requireRole(principal, staffRoles...); err != nil {
		return nil, err
	}
	if len(req.Dates) == 0 {
		return nil, apperr.ValidationError("dates is required")
	}

	days := make([]time.Time, 0, len(req.Dates))
	for _, raw := range req.Dates {
		day, err := parseDate(raw)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}

	if err := h.calendar.ReplaceCalendar(ctx, days); err != nil {
		return nil, err
	}
	if err := h.cache.RefreshCalendar(ctx); err != nil {
		h.logger.Warn("cache_refresh_failed", slog.Any("error", err))
	}

	return map[string]int{"days": len(days)}, nil
}

// actionUpdateCal upserts a single named date, e.g. "end-fall".
func (h *Handler) actionUpdateCal(ctx context.Context, principal *pacer.Principal, req *Request) (any, error) {
	if err := requireRole(principal, staffRoles...); err != nil {
		return nil, err
	}
	if req.NamedDate == "" {
		return nil, apperr.ValidationError("named_date is required")
	}

	day, err := parseDate(req.Day)
	if err != nil {
		return nil, err
	}

	if err := h.calendar.UpsertNamedDate(ctx, req.NamedDate, day); err != nil {
		return nil, err
	}
	if err := h.cache.RefreshDates(ctx); err != nil {
		h.logger.Warn("cache_refresh_failed", slog.Any("error", err))
	}

	return map[string]string{"name": req.NamedDate, "day": formatDate(day)}, nil
}

// actionPopulateDates bulk-replaces the full named-date map.
func (h *Handler) actionPopulateDates(ctx context.Context, principal *pacer.Principal, req *Request) (any, error) {
	if err := requireRole(principal, staffRoles...); err != nil {
		return nil, err
	}
	if len(req.NamedDates) == 0 {
		return nil, apperr.ValidationError("named_dates is required")
	}

	dates := make(map[string]time.Time, len(req.NamedDates))
	for name, raw := range req.NamedDates {
		day, err := parseDate(raw)
		if err != nil {
			return nil, err
		}
		dates[name] = day
	}

	if err := h.calendar.ReplaceNamedDates(ctx, dates); err != nil {
		return nil, err
	}
	if err := h.cache.RefreshDates(ctx); err != nil {
		h.logger.Warn("cache_refresh_failed", slog.Any("error", err))
	}

	return map[string]int{"names": len(dates)}, nil
}
