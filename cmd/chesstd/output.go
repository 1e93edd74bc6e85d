/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"fmt"
	"strings"

	"github.com/mikeb26/chesstd/engine"
	"github.com/mikeb26/chesstd/internal"
)

// buildPairingsOutput formats a round's pairings into an aligned table.
func buildPairingsOutput(t *engine.Tournament, rd *engine.Round) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Round %v Pairings:\n\n", rd.Number))

	describe := func(id string) string {
		p := t.PlayerByID(id)
		if p == nil {
			return id
		}
		return fmt.Sprintf("%s(%d %v)", p.Name, p.Rating,
			internal.ScoreToString(p.Score))
	}

	type row struct{ board, white, black string }
	var rows []row
	for _, pairing := range rd.Pairings {
		r := row{white: describe(pairing.WhiteID)}
		if pairing.IsBye() {
			r.board = "n/a"
			r.black = "BYE(1)"
		} else {
			r.board = fmt.Sprintf("%d.", pairing.BoardNumber)
			r.black = describe(pairing.BlackID)
		}
		rows = append(rows, r)
	}

	// Compute column widths
	maxB, maxW, maxBl := len("Board"), len("White"), len("Black")
	for _, r := range rows {
		if l := len(r.board); l > maxB {
			maxB = l
		}
		if l := len(r.white); l > maxW {
			maxW = l
		}
		if l := len(r.black); l > maxBl {
			maxBl = l
		}
	}

	sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s\n", maxB, "Board", maxW,
		"White", maxBl, "Black"))
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s\n", maxB, r.board,
			maxW, r.white, maxBl, r.black))
	}

	return sb.String()
}

// buildStandingsOutput formats computed standings into an aligned table
// with one column per configured tiebreak.
func buildStandingsOutput(t *engine.Tournament,
	entries []engine.StandingsEntry) string {

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Standings after Round %v:\n\n", t.CurrentRnd))

	headers := []string{"Place", "Name", "Score"}
	if len(entries) > 0 {
		for _, tb := range entries[0].Tiebreaks {
			headers = append(headers, tiebreakAbbrev(tb.System))
		}
	}

	var rows [][]string
	for _, entry := range entries {
		row := []string{
			fmt.Sprintf("%v.", entry.Rank),
			entry.Name,
			internal.ScoreToString(entry.Score),
		}
		for _, tb := range entry.Tiebreaks {
			row = append(row, fmt.Sprintf("%.2f", tb.Value))
		}
		rows = append(rows, row)
	}

	widths := make([]int, len(headers))
	for idx, h := range headers {
		widths[idx] = len(h)
	}
	for _, row := range rows {
		for idx, cell := range row {
			if len(cell) > widths[idx] {
				widths[idx] = len(cell)
			}
		}
	}

	writeRow := func(cells []string) {
		for idx, cell := range cells {
			if idx > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(fmt.Sprintf("%-*s", widths[idx], cell))
		}
		sb.WriteString("\n")
	}
	writeRow(headers)
	for _, row := range rows {
		writeRow(row)
	}

	return sb.String()
}

func tiebreakAbbrev(sys engine.TiebreakSystem) string {
	switch sys {
	case engine.TiebreakDirectEncounter:
		return "DE"
	case engine.TiebreakBuchholz:
		return "Buch"
	case engine.TiebreakBuchholzCut1:
		return "Buch-1"
	case engine.TiebreakBuchholzMedian:
		return "BuchMed"
	case engine.TiebreakSonnebornBerger:
		return "S-B"
	}

	return string(sys)
}
