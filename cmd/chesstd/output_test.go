/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"strings"
	"testing"

	"github.com/mikeb26/chesstd/engine"
)

func TestSplitName(t *testing.T) {
	testCases := []struct {
		in          string
		first, last string
	}{
		{"Ann Novik", "Ann", "Novik"},
		{"Jose Maria Ruiz", "Jose Maria", "Ruiz"},
		{"Cher", "Cher", ""},
		{"", "", ""},
	}
	for _, tc := range testCases {
		first, last := splitName(tc.in)
		if first != tc.first || last != tc.last {
			t.Errorf("splitName(%q) = %q, %q; want %q, %q", tc.in, first,
				last, tc.first, tc.last)
		}
	}
}

func TestBuildPairingsOutput(t *testing.T) {
	tour := engine.NewTournament("t1", "Club Open", engine.FormatSwiss, 3)
	for _, p := range []struct {
		id     string
		name   string
		rating int
	}{
		{"a", "Ann Novik", 1900},
		{"b", "Bo Reyes", 1800},
		{"c", "Cam Ito", 1700},
	} {
		if err := tour.AddPlayer(engine.Player{ID: p.id, Name: p.name,
			Rating: p.rating}); err != nil {
			t.Fatalf("AddPlayer: %v", err)
		}
	}
	if err := tour.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	rd, err := engine.GeneratePairings(tour, 1)
	if err != nil {
		t.Fatalf("GeneratePairings: %v", err)
	}

	out := buildPairingsOutput(tour, rd)
	for _, want := range []string{"Round 1 Pairings:", "Board", "White",
		"Black", "BYE(1)", "Ann Novik(1900 0)"} {
		if !strings.Contains(out, want) {
			t.Errorf("pairings output missing %q:\n%v", want, out)
		}
	}
}

func TestBuildStandingsOutput(t *testing.T) {
	tour := engine.NewTournament("t1", "Club Open", engine.FormatSwiss, 1)
	for _, p := range []struct {
		id     string
		name   string
		rating int
	}{
		{"a", "Ann Novik", 1900},
		{"b", "Bo Reyes", 1800},
	} {
		if err := tour.AddPlayer(engine.Player{ID: p.id, Name: p.name,
			Rating: p.rating}); err != nil {
			t.Fatalf("AddPlayer: %v", err)
		}
	}
	if err := tour.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	rd, err := engine.GeneratePairings(tour, 1)
	if err != nil {
		t.Fatalf("GeneratePairings: %v", err)
	}
	if err := tour.AddRound(rd); err != nil {
		t.Fatalf("AddRound: %v", err)
	}
	if err := tour.RecordResult(1, 1, engine.ResultWhiteWin); err != nil {
		t.Fatalf("RecordResult: %v", err)
	}
	if err := tour.CompleteRound(1); err != nil {
		t.Fatalf("CompleteRound: %v", err)
	}

	entries, err := engine.BuildStandings(tour)
	if err != nil {
		t.Fatalf("BuildStandings: %v", err)
	}
	out := buildStandingsOutput(tour, entries)
	for _, want := range []string{"Standings after Round 1:", "Place",
		"Score", "Buch", "S-B", "1."} {
		if !strings.Contains(out, want) {
			t.Errorf("standings output missing %q:\n%v", want, out)
		}
	}
}
