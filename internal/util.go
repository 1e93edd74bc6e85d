/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseDateOrZero returns a parsed time or zero if input is empty or "null".
func ParseDateOrZero(s string) (time.Time, error) {
	if s == "" || s == "null" {
		return time.Time{}, nil
	}
	return dateparse.ParseAny(s)
}

// ScoreToString renders a game score the way wallcharts do: whole points as
// integers and half points with the ½ glyph, e.g. 3, 2½, ½.
func ScoreToString(score float64) string {
	whole := int(score)
	half := score-float64(whole) >= 0.5
	switch {
	case whole == 0 && half:
		return "½"
	case half:
		return fmt.Sprintf("%d½", whole)
	default:
		return fmt.Sprintf("%d", whole)
	}
}

// NormalizeName collapses runs of whitespace and normalizes "Last, First"
// ordering into display order.
func NormalizeName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if idx := strings.Index(name, ","); idx != -1 {
		last := strings.TrimSpace(name[:idx])
		first := strings.TrimSpace(name[idx+1:])
		if first != "" && last != "" {
			name = first + " " + last
		}
	}

	return name
}
