/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package engine

import (
	"sort"
)

// StandingsEntry is one row of the ranked table, exposed as plain data with
// no embedded formatting.
type StandingsEntry struct {
	Rank         int             `json:"rank"`
	PlayerID     string          `json:"playerId"`
	Name         string          `json:"name"`
	Rating       int             `json:"rating"`
	StartRank    int             `json:"startRank"`
	Score        float64         `json:"score"`
	Tiebreaks    []TiebreakScore `json:"tiebreaks"`
	Games        int             `json:"games"`
	Wins         int             `json:"wins"`
	Draws        int             `json:"draws"`
	Losses       int             `json:"losses"`
	Byes         int             `json:"byes"`
	ColorBalance int             `json:"colorBalance"`
}

// BuildStandings computes the ranked standings from completed-round data.
// The sort key is score descending, then each configured tiebreak system in
// order descending, then starting rank ascending, which guarantees a strict
// total order: no two entries ever share a rank. Everything is recomputed
// from scratch on every call; tournament fields are small enough that
// correctness simplicity wins over incremental bookkeeping.
func BuildStandings(t *Tournament) ([]StandingsEntry, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}

	systems := t.Tiebreaks
	if len(systems) == 0 {
		systems = DefaultTiebreaks()
	}

	c := newTiebreakContext(t)
	entries := make([]StandingsEntry, 0, len(t.Players))
	for _, p := range t.Players {
		entry := StandingsEntry{
			PlayerID:  p.ID,
			Name:      p.Name,
			Rating:    p.Rating,
			StartRank: p.StartRank,
			Score:     c.scores[p.ID],
		}
		for _, g := range c.games[p.ID] {
			if g.bye {
				entry.Byes++
				continue
			}
			entry.Games++
			switch g.points {
			case 1.0:
				entry.Wins++
			case 0.5:
				entry.Draws++
			default:
				entry.Losses++
			}
		}
		entry.ColorBalance = completedColorBalance(t, p.ID)
		for _, sys := range systems {
			fn, ok := tiebreakFuncs[sys]
			if !ok {
				continue
			}
			entry.Tiebreaks = append(entry.Tiebreaks, TiebreakScore{
				System: sys,
				Value:  fn(c, p.ID),
			})
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		ei, ej := entries[i], entries[j]
		if ei.Score != ej.Score {
			return ei.Score > ej.Score
		}
		for idx := range ei.Tiebreaks {
			if ei.Tiebreaks[idx].Value != ej.Tiebreaks[idx].Value {
				return ei.Tiebreaks[idx].Value > ej.Tiebreaks[idx].Value
			}
		}
		return ei.StartRank < ej.StartRank
	})
	for idx := range entries {
		entries[idx].Rank = idx + 1
	}

	return entries, nil
}

// completedColorBalance is the signed white-minus-black game count over
// completed rounds.
func completedColorBalance(t *Tournament, playerID string) int {
	balance := 0
	for _, rd := range t.Rounds {
		if rd.Status != RoundCompleted {
			continue
		}
		for _, pairing := range rd.Pairings {
			if pairing.IsBye() {
				continue
			}
			if pairing.WhiteID == playerID {
				balance++
			} else if pairing.BlackID == playerID {
				balance--
			}
		}
	}

	return balance
}
