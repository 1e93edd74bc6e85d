/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package engine

import (
	"fmt"
	"strings"
	"testing"
)

func TestRoundRobinEvenField(t *testing.T) {
	tour := newTestTournament(t, FormatRoundRobin, 6, 0)
	if tour.NumRounds != 5 {
		t.Fatalf("NumRounds = %v, want 5", tour.NumRounds)
	}

	games := make(map[string]int)
	for round := 1; round <= 5; round++ {
		rd := playRound(t, tour, allDraws)
		if len(rd.Pairings) != 3 {
			t.Fatalf("round %v has %v pairings, want 3", round,
				len(rd.Pairings))
		}
		for _, pairing := range rd.Pairings {
			if pairing.IsBye() {
				t.Fatalf("round %v has a bye in an even field", round)
			}
			games[pairKey(pairing.WhiteID, pairing.BlackID)]++
		}
	}

	if len(games) != 15 {
		t.Fatalf("expected 15 distinct pairs, got %v", len(games))
	}
	for key, count := range games {
		if count != 1 {
			t.Errorf("pair %v met %v times, want 1", key, count)
		}
	}
	for _, p := range tour.Players {
		if bal := colorBalance(p); bal > 1 || bal < -1 {
			t.Errorf("player %v color balance %v exceeds 1", p.ID, bal)
		}
	}
}

func TestRoundRobinOddField(t *testing.T) {
	tour := newTestTournament(t, FormatRoundRobin, 5, 0)
	if tour.NumRounds != 5 {
		t.Fatalf("NumRounds = %v, want 5", tour.NumRounds)
	}

	games := make(map[string]int)
	byes := make(map[string]int)
	for round := 1; round <= 5; round++ {
		rd := playRound(t, tour, allDraws)
		for _, pairing := range rd.Pairings {
			if pairing.IsBye() {
				byes[pairing.WhiteID]++
				continue
			}
			games[pairKey(pairing.WhiteID, pairing.BlackID)]++
		}
	}

	if len(games) != 10 {
		t.Fatalf("expected 10 distinct pairs, got %v", len(games))
	}
	if len(byes) != 5 {
		t.Fatalf("expected every player to receive a bye, got %v", byes)
	}
	for id, count := range byes {
		if count != 1 {
			t.Errorf("player %v received %v byes, want 1", id, count)
		}
	}
}

func TestRoundRobinDoubleCycle(t *testing.T) {
	tour := NewTournament("t1", "Double RR", FormatRoundRobin, 0)
	tour.DoubleCycle = true
	for idx := 1; idx <= 4; idx++ {
		err := tour.AddPlayer(Player{
			ID:     fmt.Sprintf("p%02d", idx),
			Name:   fmt.Sprintf("Player %02d", idx),
			Rating: 2000 - idx*50,
		})
		if err != nil {
			t.Fatalf("AddPlayer: %v", err)
		}
	}
	if err := tour.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if tour.NumRounds != 6 {
		t.Fatalf("NumRounds = %v, want 6", tour.NumRounds)
	}

	// key is the ordered white-black pair, so a color-reversed rematch
	// produces a distinct key
	ordered := make(map[string]int)
	for round := 1; round <= 6; round++ {
		rd := playRound(t, tour, allDraws)
		for _, pairing := range rd.Pairings {
			ordered[pairing.WhiteID+"-"+pairing.BlackID]++
		}
	}

	if len(ordered) != 12 {
		t.Fatalf("expected each pair once per orientation (12 keys), got %v",
			len(ordered))
	}
	for key, count := range ordered {
		if count != 1 {
			t.Errorf("orientation %v occurred %v times, want 1", key, count)
		}
	}
}

func TestRoundRobinDeterministic(t *testing.T) {
	build := func() *Round {
		tour := newTestTournament(t, FormatRoundRobin, 6, 0)
		playRound(t, tour, allDraws)
		playRound(t, tour, allDraws)
		rd, err := GeneratePairings(tour, 3)
		if err != nil {
			t.Fatalf("GeneratePairings: %v", err)
		}
		return rd
	}

	first, second := build(), build()
	if len(first.Pairings) != len(second.Pairings) {
		t.Fatalf("pairing counts differ: %v vs %v", len(first.Pairings),
			len(second.Pairings))
	}
	for idx := range first.Pairings {
		if first.Pairings[idx] != second.Pairings[idx] {
			t.Errorf("board %v differs between identical inputs: %+v vs %+v",
				idx+1, first.Pairings[idx], second.Pairings[idx])
		}
	}
}

func TestRoundRobinWithdrawalKeepsSeats(t *testing.T) {
	tour := newTestTournament(t, FormatRoundRobin, 6, 0)

	games := make(map[string]int)
	byes := make(map[string]int)
	collect := func(rd *Round) {
		for _, pairing := range rd.Pairings {
			if pairing.IsBye() {
				byes[pairing.WhiteID]++
				continue
			}
			games[pairKey(pairing.WhiteID, pairing.BlackID)]++
		}
	}

	collect(playRound(t, tour, allDraws))
	collect(playRound(t, tour, allDraws))
	if err := tour.Withdraw("p06"); err != nil {
		t.Fatalf("Withdraw: %v", err)
	}

	// The remaining schedule keeps every seat: p06's games become byes for
	// the active opponent and nobody else's label shifts.
	for round := 3; round <= 5; round++ {
		rd := playRound(t, tour, allDraws)
		gameTotal, byeTotal := 0, 0
		for _, pairing := range rd.Pairings {
			if pairing.IsBye() {
				byeTotal++
				if pairing.WhiteID == "p06" {
					t.Errorf("round %v granted a bye to withdrawn p06", round)
				}
			} else {
				gameTotal++
				if pairing.Has("p06") {
					t.Errorf("round %v paired withdrawn p06", round)
				}
			}
		}
		if gameTotal != 2 || byeTotal != 1 {
			t.Fatalf("round %v has %v games and %v byes, want 2 and 1",
				round, gameTotal, byeTotal)
		}
		collect(rd)
	}

	activeGames := 0
	for key, count := range games {
		if count != 1 {
			t.Errorf("pair %v met %v times, want 1", key, count)
		}
		if !strings.Contains(key, "p06") {
			activeGames++
		}
	}
	if activeGames != 10 {
		t.Errorf("active players met in %v distinct pairs, want all 10",
			activeGames)
	}

	p06 := tour.PlayerByID("p06")
	if len(p06.Opponents) != 2 {
		t.Errorf("p06 played %v rounds before withdrawing, want 2",
			len(p06.Opponents))
	}
}

func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "-" + b
}
