/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package engine

import (
	"errors"
	"testing"
)

func TestSwissFirstRoundFold(t *testing.T) {
	tour := newTestTournament(t, FormatSwiss, 8, 5)

	rd, err := GeneratePairings(tour, 1)
	if err != nil {
		t.Fatalf("GeneratePairings: %v", err)
	}
	if len(rd.Pairings) != 4 {
		t.Fatalf("expected 4 boards, got %v", len(rd.Pairings))
	}

	// Top half folds against bottom half; colors alternate by board in a
	// history-free first round.
	wantWhite := []string{"p01", "p06", "p03", "p08"}
	wantBlack := []string{"p05", "p02", "p07", "p04"}
	for idx, pairing := range rd.Pairings {
		if pairing.WhiteID != wantWhite[idx] || pairing.BlackID != wantBlack[idx] {
			t.Errorf("board %v: got %v-%v, want %v-%v", idx+1,
				pairing.WhiteID, pairing.BlackID, wantWhite[idx], wantBlack[idx])
		}
		if pairing.BoardNumber != idx+1 {
			t.Errorf("board %v: got board number %v", idx+1, pairing.BoardNumber)
		}
	}
}

func TestSwissOddFieldBye(t *testing.T) {
	tour := newTestTournament(t, FormatSwiss, 7, 5)

	rd, err := GeneratePairings(tour, 1)
	if err != nil {
		t.Fatalf("GeneratePairings: %v", err)
	}

	var byes []Pairing
	for _, pairing := range rd.Pairings {
		if pairing.IsBye() {
			byes = append(byes, pairing)
		}
	}
	if len(byes) != 1 {
		t.Fatalf("expected exactly one bye, got %v", len(byes))
	}
	// With identical histories the bye goes to the lowest-ranked player.
	if byes[0].WhiteID != "p07" {
		t.Errorf("expected p07 to receive the bye, got %v", byes[0].WhiteID)
	}
	if byes[0].BoardNumber != 0 {
		t.Errorf("bye should carry no board number, got %v",
			byes[0].BoardNumber)
	}
}

func TestSwissByeCreditsFullPoint(t *testing.T) {
	tour := newTestTournament(t, FormatSwiss, 5, 3)
	playRound(t, tour, allDraws)

	byePlayer := tour.PlayerByID("p05")
	if byePlayer.Score != 1.0 {
		t.Errorf("bye recipient score = %v, want 1.0", byePlayer.Score)
	}
	if byePlayer.ByeCount != 1 {
		t.Errorf("bye recipient ByeCount = %v, want 1", byePlayer.ByeCount)
	}
	if len(byePlayer.Colors) != 1 || byePlayer.Colors[0] != ColorNone {
		t.Errorf("bye should record ColorNone, got %v", byePlayer.Colors)
	}
}

func TestSwissNoRepeatOpponents(t *testing.T) {
	tour := newTestTournament(t, FormatSwiss, 8, 5)

	for round := 1; round <= 5; round++ {
		playRound(t, tour, higherSeedWins)
	}

	for _, p := range tour.Players {
		seen := make(map[string]bool)
		for _, opp := range p.Opponents {
			if opp == "" {
				continue
			}
			if seen[opp] {
				t.Errorf("player %v faced %v more than once", p.ID, opp)
			}
			seen[opp] = true
		}
		if len(p.Colors) != 5 {
			t.Errorf("player %v has %v history entries, want 5", p.ID,
				len(p.Colors))
		}
	}
}

func TestSwissColorConstraints(t *testing.T) {
	tour := newTestTournament(t, FormatSwiss, 8, 5)

	for round := 1; round <= 5; round++ {
		playRound(t, tour, higherSeedWins)

		for _, p := range tour.Players {
			if bal := colorBalance(p); bal > 2 || bal < -2 {
				t.Fatalf("round %v: player %v color balance %v out of range",
					round, p.ID, bal)
			}
			if streak := maxColorStreak(p); streak > 2 {
				t.Fatalf("round %v: player %v has %v consecutive same-color games",
					round, p.ID, streak)
			}
		}
	}
}

// maxColorStreak is the longest run of the same color in the player's
// history, skipping byes.
func maxColorStreak(p *TournamentPlayer) int {
	longest, run := 0, 0
	var prev Color
	for _, c := range p.Colors {
		if c == ColorNone {
			continue
		}
		if c == prev {
			run++
		} else {
			run = 1
			prev = c
		}
		if run > longest {
			longest = run
		}
	}

	return longest
}

func TestSwissByeFairness(t *testing.T) {
	tour := newTestTournament(t, FormatSwiss, 5, 3)

	byeRecipients := make(map[string]int)
	for round := 1; round <= 3; round++ {
		rd := playRound(t, tour, allDraws)
		for _, pairing := range rd.Pairings {
			if pairing.IsBye() {
				byeRecipients[pairing.WhiteID]++
			}
		}
	}

	if len(byeRecipients) != 3 {
		t.Fatalf("expected 3 distinct bye recipients, got %v", byeRecipients)
	}
	for id, count := range byeRecipients {
		if count != 1 {
			t.Errorf("player %v received %v byes before others had one", id,
				count)
		}
	}
}

func TestSwissPairsWithinScoreGroups(t *testing.T) {
	tour := newTestTournament(t, FormatSwiss, 8, 5)
	playRound(t, tour, higherSeedWins)

	// After round one the winners (seeds 1-4) form the 1.0 group; round two
	// should pair them against each other.
	rd, err := GeneratePairings(tour, 2)
	if err != nil {
		t.Fatalf("GeneratePairings: %v", err)
	}

	winners := map[string]bool{"p01": true, "p02": true, "p03": true,
		"p04": true}
	crossGroup := 0
	for _, pairing := range rd.Pairings {
		if winners[pairing.WhiteID] != winners[pairing.BlackID] {
			crossGroup++
		}
	}
	if crossGroup != 0 {
		t.Errorf("%v round-two pairings cross score groups", crossGroup)
	}
}

// addPlayedRound accepts a hand-built round and completes it with every game
// drawn.
func addPlayedRound(t *testing.T, tour *Tournament, rd *Round) {
	t.Helper()
	if err := tour.AddRound(rd); err != nil {
		t.Fatalf("AddRound round %v: %v", rd.Number, err)
	}
	for _, pairing := range rd.Pairings {
		if pairing.IsBye() {
			continue
		}
		if err := tour.RecordResult(rd.Number, pairing.BoardNumber,
			ResultDraw); err != nil {
			t.Fatalf("RecordResult round %v board %v: %v", rd.Number,
				pairing.BoardNumber, err)
		}
	}
	if err := tour.CompleteRound(rd.Number); err != nil {
		t.Fatalf("CompleteRound round %v: %v", rd.Number, err)
	}
}

func TestSwissByeReassignmentWhenPreferredLeavesNoMatching(t *testing.T) {
	// After these three rounds p01 has faced p02, p03, and p05, and the
	// zero-bye players are p04 and p01. Handing the fairness-preferred bye
	// to p04 strands p01 (p04 is p01's only remaining opponent), and giving
	// it to p01 strands p04 symmetrically; a legal round exists only with
	// the bye on one of p02/p03/p05.
	tour := newTestTournament(t, FormatSwiss, 5, 5)
	addPlayedRound(t, tour, &Round{Number: 1, Pairings: []Pairing{
		{RoundNumber: 1, BoardNumber: 1, WhiteID: "p01", BlackID: "p02"},
		{RoundNumber: 1, BoardNumber: 2, WhiteID: "p03", BlackID: "p04"},
		{RoundNumber: 1, WhiteID: "p05"},
	}})
	addPlayedRound(t, tour, &Round{Number: 2, Pairings: []Pairing{
		{RoundNumber: 2, BoardNumber: 1, WhiteID: "p05", BlackID: "p01"},
		{RoundNumber: 2, BoardNumber: 2, WhiteID: "p04", BlackID: "p02"},
		{RoundNumber: 2, WhiteID: "p03"},
	}})
	addPlayedRound(t, tour, &Round{Number: 3, Pairings: []Pairing{
		{RoundNumber: 3, BoardNumber: 1, WhiteID: "p01", BlackID: "p03"},
		{RoundNumber: 3, BoardNumber: 2, WhiteID: "p04", BlackID: "p05"},
		{RoundNumber: 3, WhiteID: "p02"},
	}})

	rd, err := GeneratePairings(tour, 4)
	if err != nil {
		t.Fatalf("GeneratePairings should reassign the bye, got %v", err)
	}

	var byeID string
	for _, pairing := range rd.Pairings {
		if pairing.IsBye() {
			byeID = pairing.WhiteID
			continue
		}
		white := tour.PlayerByID(pairing.WhiteID)
		black := tour.PlayerByID(pairing.BlackID)
		if playedBefore(white, black) {
			t.Errorf("round 4 rematches %v-%v", white.ID, black.ID)
		}
	}
	if byeID == "p04" || byeID == "p01" {
		t.Errorf("bye stayed on %v, which strands its last opponent", byeID)
	}
	if byeID == "" {
		t.Errorf("odd field produced no bye")
	}
	if got := gameCount(rd); got != 2 {
		t.Errorf("round 4 has %v games, want 2", got)
	}
}

// colorLockedQuad builds a tournament two rounds in where the only unplayed
// pairs are p01-p02 (both on two whites) and p03-p04 (both on two blacks),
// so every remaining pairing violates a color rule.
func colorLockedQuad(t *testing.T, numRounds int) *Tournament {
	t.Helper()
	tour := newTestTournament(t, FormatSwiss, 4, numRounds)
	for _, rd := range []*Round{
		{Number: 1, Pairings: []Pairing{
			{RoundNumber: 1, BoardNumber: 1, WhiteID: "p01", BlackID: "p03"},
			{RoundNumber: 1, BoardNumber: 2, WhiteID: "p02", BlackID: "p04"},
		}},
		{Number: 2, Pairings: []Pairing{
			{RoundNumber: 2, BoardNumber: 1, WhiteID: "p01", BlackID: "p04"},
			{RoundNumber: 2, BoardNumber: 2, WhiteID: "p02", BlackID: "p03"},
		}},
	} {
		if err := tour.AddRound(rd); err != nil {
			t.Fatalf("AddRound round %v: %v", rd.Number, err)
		}
		for board := 1; board <= 2; board++ {
			if err := tour.RecordResult(rd.Number, board,
				ResultWhiteWin); err != nil {
				t.Fatalf("RecordResult: %v", err)
			}
		}
		if err := tour.CompleteRound(rd.Number); err != nil {
			t.Fatalf("CompleteRound: %v", err)
		}
	}

	return tour
}

func TestSwissFinalRoundRelaxesColors(t *testing.T) {
	tour := colorLockedQuad(t, 3)

	rd, err := GeneratePairings(tour, 3)
	if err != nil {
		t.Fatalf("final round should trade color preference for a pairing, got %v",
			err)
	}
	if got := gameCount(rd); got != 2 {
		t.Fatalf("final round has %v games, want 2", got)
	}
	if !rd.Pairings[0].Has("p01") || !rd.Pairings[0].Has("p02") {
		t.Errorf("board 1 should pair p01-p02, got %v-%v",
			rd.Pairings[0].WhiteID, rd.Pairings[0].BlackID)
	}
	if !rd.Pairings[1].Has("p03") || !rd.Pairings[1].Has("p04") {
		t.Errorf("board 2 should pair p03-p04, got %v-%v",
			rd.Pairings[1].WhiteID, rd.Pairings[1].BlackID)
	}
}

func TestSwissMidTournamentKeepsColorRules(t *testing.T) {
	tour := colorLockedQuad(t, 5)

	_, err := GeneratePairings(tour, 3)
	if !errors.Is(err, ErrPairingInfeasible) {
		t.Fatalf("color rules bind before the final round, got %v", err)
	}
}

func TestSwissInfeasibleTinyField(t *testing.T) {
	// Two players who already met: no legal opponent remains and the engine
	// must refuse rather than rematch.
	tour := newTestTournament(t, FormatSwiss, 2, 3)
	playRound(t, tour, allDraws)

	_, err := GeneratePairings(tour, 2)
	var infErr *InfeasibleError
	if !errors.As(err, &infErr) {
		t.Fatalf("expected InfeasibleError, got %v", err)
	}
	if !errors.Is(err, ErrPairingInfeasible) {
		t.Fatalf("InfeasibleError should unwrap to ErrPairingInfeasible")
	}
}
