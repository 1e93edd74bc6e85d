/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package engine

import (
	"reflect"
	"testing"
)

func TestStandingsOrderAndCounts(t *testing.T) {
	tour := quadFixture(t)
	tour.Tiebreaks = []TiebreakSystem{TiebreakDirectEncounter,
		TiebreakBuchholz, TiebreakSonnebornBerger}

	entries, err := BuildStandings(tour)
	if err != nil {
		t.Fatalf("BuildStandings: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("got %v entries, want 4", len(entries))
	}

	// a and b tie on score and on every configured tiebreak; starting rank
	// breaks the tie deterministically.
	wantOrder := []string{"a", "b", "c", "d"}
	for idx, entry := range entries {
		if entry.PlayerID != wantOrder[idx] {
			t.Errorf("rank %v: got %v, want %v", idx+1, entry.PlayerID,
				wantOrder[idx])
		}
		if entry.Rank != idx+1 {
			t.Errorf("entry %v: rank %v, want %v", entry.PlayerID, entry.Rank,
				idx+1)
		}
	}

	top := entries[0]
	if top.Games != 3 || top.Wins != 2 || top.Draws != 1 || top.Losses != 0 {
		t.Errorf("a counts = %v games %v/%v/%v, want 3 games 2/1/0",
			top.Games, top.Wins, top.Draws, top.Losses)
	}
	// a had white in rounds 1 and 3, black in round 2
	if top.ColorBalance != 1 {
		t.Errorf("a color balance = %v, want 1", top.ColorBalance)
	}
	bottom := entries[3]
	if bottom.Losses != 3 || bottom.Score != 0 {
		t.Errorf("d should have 3 losses on 0 points, got %v losses on %v",
			bottom.Losses, bottom.Score)
	}
}

func TestStandingsStrictTotalOrder(t *testing.T) {
	tour := newTestTournament(t, FormatSwiss, 8, 5)
	playRound(t, tour, allDraws)
	playRound(t, tour, allDraws)

	entries, err := BuildStandings(tour)
	if err != nil {
		t.Fatalf("BuildStandings: %v", err)
	}

	seen := make(map[int]bool)
	for _, entry := range entries {
		if seen[entry.Rank] {
			t.Errorf("rank %v assigned twice", entry.Rank)
		}
		seen[entry.Rank] = true
	}
	for rank := 1; rank <= len(entries); rank++ {
		if !seen[rank] {
			t.Errorf("rank %v missing; ranks must be dense from 1", rank)
		}
	}
}

func TestStandingsIdempotent(t *testing.T) {
	tour := quadFixture(t)

	first, err := BuildStandings(tour)
	if err != nil {
		t.Fatalf("BuildStandings: %v", err)
	}
	second, err := BuildStandings(tour)
	if err != nil {
		t.Fatalf("BuildStandings: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical input produced different standings")
	}
}

func TestStandingsScoreConservation(t *testing.T) {
	tour := newTestTournament(t, FormatSwiss, 7, 3)
	for round := 1; round <= 3; round++ {
		playRound(t, tour, higherSeedWins)
	}

	entries, err := BuildStandings(tour)
	if err != nil {
		t.Fatalf("BuildStandings: %v", err)
	}

	total, games, byes := 0.0, 0, 0
	for _, entry := range entries {
		total += entry.Score
		games += entry.Games
		byes += entry.Byes
	}
	// every decided game distributes exactly one point; every bye adds one
	want := float64(games)/2 + float64(byes)
	if !almostEqual(total, want) {
		t.Errorf("score total %v, want %v (%v games, %v byes)", total, want,
			games, byes)
	}
}

func TestStandingsDefaultTiebreaks(t *testing.T) {
	tour := quadFixture(t)
	tour.Tiebreaks = nil

	entries, err := BuildStandings(tour)
	if err != nil {
		t.Fatalf("BuildStandings: %v", err)
	}
	want := DefaultTiebreaks()
	for _, entry := range entries {
		if len(entry.Tiebreaks) != len(want) {
			t.Fatalf("entry %v has %v tiebreaks, want %v", entry.PlayerID,
				len(entry.Tiebreaks), len(want))
		}
		for idx, tb := range entry.Tiebreaks {
			if tb.System != want[idx] {
				t.Errorf("tiebreak %v is %v, want %v", idx, tb.System,
					want[idx])
			}
		}
	}
}
