/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package engine

import (
	"fmt"
)

// Result represents the outcome of a single game.
type Result int

const (
	ResultNone Result = iota
	ResultWhiteWin
	ResultBlackWin
	ResultDraw
	ResultWhiteForfeitWin
	ResultBlackForfeitWin
	ResultDoubleForfeit
)

func (r Result) String() string {
	switch r {
	case ResultWhiteWin:
		return "1-0"
	case ResultBlackWin:
		return "0-1"
	case ResultDraw:
		return "1/2-1/2"
	case ResultWhiteForfeitWin:
		return "+/-"
	case ResultBlackForfeitWin:
		return "-/+"
	case ResultDoubleForfeit:
		return "0-0"
	default:
		return "*"
	}
}

// ParseResult converts a result token into a Result. Tokens follow the
// conventional arbiter notation; "*" denotes a game still in progress.
func ParseResult(token string) (Result, error) {
	switch token {
	case "1-0":
		return ResultWhiteWin, nil
	case "0-1":
		return ResultBlackWin, nil
	case "1/2-1/2", "½-½":
		return ResultDraw, nil
	case "+/-":
		return ResultWhiteForfeitWin, nil
	case "-/+":
		return ResultBlackForfeitWin, nil
	case "0-0":
		return ResultDoubleForfeit, nil
	case "*", "":
		return ResultNone, nil
	}

	return ResultNone, fmt.Errorf("unrecognized result token %q", token)
}

// Decided reports whether the game has a final outcome.
func (r Result) Decided() bool {
	return r != ResultNone
}

// WhitePoints returns the game points earned by the white side.
func (r Result) WhitePoints() float64 {
	switch r {
	case ResultWhiteWin, ResultWhiteForfeitWin:
		return 1.0
	case ResultDraw:
		return 0.5
	}

	return 0.0
}

// BlackPoints returns the game points earned by the black side.
func (r Result) BlackPoints() float64 {
	switch r {
	case ResultBlackWin, ResultBlackForfeitWin:
		return 1.0
	case ResultDraw:
		return 0.5
	}

	return 0.0
}

// Forfeit reports whether the result was decided without play. Forfeited
// games carry game points but are excluded from performance bookkeeping.
func (r Result) Forfeit() bool {
	return r == ResultWhiteForfeitWin || r == ResultBlackForfeitWin ||
		r == ResultDoubleForfeit
}

// MarshalText/UnmarshalText round Results through their arbiter tokens so
// persisted tournaments remain human readable.
func (r Result) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Result) UnmarshalText(data []byte) error {
	parsed, err := ParseResult(string(data))
	if err != nil {
		return err
	}
	*r = parsed

	return nil
}
