/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package engine

// pairKnockout implements a seeded single-elimination bracket. Round one
// places seeds so the top seeds meet as late as possible, rounding the
// bracket up to the next power of two with byes auto-advancing real
// players. Later rounds pair the winners of the previous round in bracket
// order. Draws are not terminal for this format: resolving them
// (sudden-death, tiebreak games) is an arbiter concern, so an unresolved
// draw makes the next round infeasible rather than guessed.
func pairKnockout(t *Tournament, roundNumber int) (*Round, error) {
	if roundNumber == 1 {
		return knockoutFirstRound(t)
	}

	prev := t.Round(roundNumber - 1)
	winners, err := knockoutWinners(t, prev)
	if err != nil {
		return nil, err
	}
	if len(winners) < 2 {
		return nil, &InfeasibleError{RoundNumber: roundNumber,
			Reason: "fewer than two players remain in the bracket"}
	}

	rd := &Round{Number: roundNumber, Status: RoundPending}
	board := 0
	for idx := 0; idx+1 < len(winners); idx += 2 {
		board++
		white, black := assignColors(winners[idx], winners[idx+1], board)
		rd.Pairings = append(rd.Pairings, Pairing{
			RoundNumber: roundNumber,
			BoardNumber: board,
			WhiteID:     white.ID,
			BlackID:     black.ID,
		})
	}
	if len(winners)%2 == 1 {
		rd.Pairings = append(rd.Pairings, Pairing{
			RoundNumber: roundNumber,
			WhiteID:     winners[len(winners)-1].ID,
		})
	}

	return rd, nil
}

func knockoutFirstRound(t *Tournament) (*Round, error) {
	seeds := seedByRating(t.ActivePlayers())
	if len(seeds) < 2 {
		return nil, &InfeasibleError{RoundNumber: 1,
			Reason: "fewer than two active players"}
	}

	size := 1
	for size < len(seeds) {
		size *= 2
	}
	slots := seedOrder(size)

	rd := &Round{Number: 1, Status: RoundPending}
	board := 0
	for idx := 0; idx < size; idx += 2 {
		var a, b *TournamentPlayer
		if slots[idx] <= len(seeds) {
			a = seeds[slots[idx]-1]
		}
		if slots[idx+1] <= len(seeds) {
			b = seeds[slots[idx+1]-1]
		}
		switch {
		case a != nil && b != nil:
			board++
			white, black := assignColors(a, b, board)
			rd.Pairings = append(rd.Pairings, Pairing{
				RoundNumber: 1,
				BoardNumber: board,
				WhiteID:     white.ID,
				BlackID:     black.ID,
			})
		case a != nil:
			rd.Pairings = append(rd.Pairings, Pairing{RoundNumber: 1,
				WhiteID: a.ID})
		case b != nil:
			rd.Pairings = append(rd.Pairings, Pairing{RoundNumber: 1,
				WhiteID: b.ID})
		}
	}

	return rd, nil
}

// seedOrder returns seed numbers in bracket position order: seed 1 against
// the lowest seed, seed 2 against the second lowest, halving recursively.
// E.g. size 8 yields 1,8,4,5,2,7,3,6.
func seedOrder(size int) []int {
	order := []int{1}
	for len(order) < size {
		mirror := len(order)*2 + 1
		next := make([]int, 0, len(order)*2)
		for _, s := range order {
			next = append(next, s, mirror-s)
		}
		order = next
	}

	return order
}

// seedByRating orders players by rating descending with starting rank as
// the deterministic tie-break.
func seedByRating(players []*TournamentPlayer) []*TournamentPlayer {
	seeds := make([]*TournamentPlayer, len(players))
	copy(seeds, players)
	// ActivePlayers is already starting-rank ordered; a stable selection by
	// rating keeps rank order among equals.
	for i := 1; i < len(seeds); i++ {
		for j := i; j > 0 && seeds[j].Rating > seeds[j-1].Rating; j-- {
			seeds[j], seeds[j-1] = seeds[j-1], seeds[j]
		}
	}

	return seeds
}

// knockoutWinners extracts the advancing player of each previous-round
// pairing in bracket order. Byes advance their player; withdrawn players
// are excluded even after a win.
func knockoutWinners(t *Tournament, prev *Round) ([]*TournamentPlayer,
	error) {

	var winners []*TournamentPlayer
	for _, pairing := range prev.Pairings {
		var winnerID string
		switch {
		case pairing.IsBye():
			winnerID = pairing.WhiteID
		case pairing.Result == ResultWhiteWin ||
			pairing.Result == ResultWhiteForfeitWin:
			winnerID = pairing.WhiteID
		case pairing.Result == ResultBlackWin ||
			pairing.Result == ResultBlackForfeitWin:
			winnerID = pairing.BlackID
		case pairing.Result == ResultDraw:
			return nil, &InfeasibleError{
				RoundNumber: prev.Number + 1,
				PlayerID:    pairing.WhiteID,
				Reason:      "drawn game has no derived winner",
			}
		default:
			return nil, &InfeasibleError{
				RoundNumber: prev.Number + 1,
				PlayerID:    pairing.WhiteID,
				Reason:      "no winner to advance from previous round",
			}
		}

		winner := t.PlayerByID(winnerID)
		if winner == nil {
			return nil, &InfeasibleError{
				RoundNumber: prev.Number + 1,
				PlayerID:    winnerID,
				Reason:      "advancing player is missing from the field",
			}
		}
		if winner.Status == PlayerActive {
			winners = append(winners, winner)
		}
	}

	return winners, nil
}
