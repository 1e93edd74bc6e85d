/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package engine

import (
	"sort"
)

// pairRoundRobin computes round pairings by closed-form circle (Berger
// table) arithmetic. With an even field the top seed holds the fixed seat
// and the remaining players carry rotating labels 0..m-1 (m = n-1, odd);
// with an odd field every player carries a label (m = n) and the leftover
// label of each round takes the bye. Labels a and b meet in the round where
// a+b ≡ r (mod m), which guarantees every pair meets exactly once per cycle.
//
// Seating is frozen by starting rank for the whole tournament. A withdrawn
// player keeps their label and forfeits their remaining games: each
// scheduled game against one becomes a bye for the active side, so the
// labels of everyone else never shift and the meet-exactly-once guarantee
// holds for the players who finish.
//
// Colors: within a rotating pair the lower label is white when the label sum
// is even, otherwise the higher label; the fixed seat alternates by round
// parity. Summed over a full cycle this keeps every player's colors balanced
// within one game. A double cycle replays the schedule with colors reversed.
func pairRoundRobin(t *Tournament, roundNumber int) (*Round, error) {
	seats := make([]*TournamentPlayer, len(t.Players))
	copy(seats, t.Players)
	sort.Slice(seats, func(i, j int) bool {
		return seats[i].StartRank < seats[j].StartRank
	})

	active := 0
	for _, p := range seats {
		if p.Status == PlayerActive {
			active++
		}
	}
	if active < 2 {
		return nil, &InfeasibleError{RoundNumber: roundNumber,
			Reason: "fewer than two active players"}
	}

	n := len(seats)
	m := n
	var fixed *TournamentPlayer
	rotating := seats
	if n%2 == 0 {
		m = n - 1
		fixed = seats[0]
		rotating = seats[1:]
	}

	idx := (roundNumber - 1) % m
	reversed := t.DoubleCycle && (roundNumber-1)/m == 1

	// leftover solves 2k ≡ idx (mod m); m is odd so 2 is invertible.
	leftover := ((m + 1) / 2 * idx) % m

	rd := &Round{Number: roundNumber, Status: RoundPending}
	var byeIDs []string

	appendGame := func(white, black *TournamentPlayer) {
		if reversed {
			white, black = black, white
		}
		switch {
		case white.Status == PlayerActive && black.Status == PlayerActive:
			rd.Pairings = append(rd.Pairings, Pairing{
				RoundNumber: roundNumber,
				BoardNumber: len(rd.Pairings) + 1,
				WhiteID:     white.ID,
				BlackID:     black.ID,
			})
		case white.Status == PlayerActive:
			byeIDs = append(byeIDs, white.ID)
		case black.Status == PlayerActive:
			byeIDs = append(byeIDs, black.ID)
		}
	}

	if fixed != nil {
		opp := rotating[leftover]
		if idx%2 == 0 {
			appendGame(fixed, opp)
		} else {
			appendGame(opp, fixed)
		}
	} else if rotating[leftover].Status == PlayerActive {
		byeIDs = append(byeIDs, rotating[leftover].ID)
	}

	for a := 0; a < m; a++ {
		b := (idx - a + m) % m
		if b <= a {
			continue
		}
		if (a+b)%2 == 0 {
			appendGame(rotating[a], rotating[b])
		} else {
			appendGame(rotating[b], rotating[a])
		}
	}

	for _, id := range byeIDs {
		rd.Pairings = append(rd.Pairings, Pairing{
			RoundNumber: roundNumber,
			WhiteID:     id,
		})
	}

	return rd, nil
}
