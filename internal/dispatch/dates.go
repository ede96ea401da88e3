// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dispatch

import (
	"time"

	"github.com/taibuivan/pacer/internal/platform/apperr"
)

const dateLayout = "2006-01-02"

func parseDate(raw string) (time.Time, error) {
	day, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, apperr.ValidationError("invalid date " + raw + ", expected YYYY-MM-DD")
	}
	return day, nil
}

func formatDate(day time.Time) string {
	return day.Format(dateLayout)
}
