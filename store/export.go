/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/mikeb26/chesstd/engine"
	"github.com/mikeb26/chesstd/internal"
)

// ExportStandingsCSV writes a spreadsheet-friendly standings table: one row
// per player with the configured tiebreaks as trailing columns.
func ExportStandingsCSV(t *engine.Tournament, w io.Writer) error {
	entries, err := engine.BuildStandings(t)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{"Rank", "Name", "Rating", "Score"}
	if len(entries) > 0 {
		for _, tb := range entries[0].Tiebreaks {
			header = append(header, string(tb.System))
		}
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("unable to write standings header: %w", err)
	}

	for _, entry := range entries {
		row := []string{
			strconv.Itoa(entry.Rank),
			entry.Name,
			strconv.Itoa(entry.Rating),
			internal.ScoreToString(entry.Score),
		}
		for _, tb := range entry.Tiebreaks {
			row = append(row, strconv.FormatFloat(tb.Value, 'f', 2, 64))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("unable to write standings row: %w", err)
		}
	}
	cw.Flush()

	return cw.Error()
}

// Report bundles a tournament with its computed standings for export to
// reporting collaborators.
type Report struct {
	Tournament *engine.Tournament      `json:"tournament"`
	Standings  []engine.StandingsEntry `json:"standings"`
}

// ExportReportJSON writes the full tournament report: the aggregate plus
// freshly computed standings.
func ExportReportJSON(t *engine.Tournament, w io.Writer) error {
	entries, err := engine.BuildStandings(t)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Report{Tournament: t, Standings: entries}); err != nil {
		return fmt.Errorf("unable to encode report: %w", err)
	}

	return nil
}
