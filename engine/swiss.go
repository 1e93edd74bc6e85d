/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package engine

import (
	"sort"
)

// pairSwiss implements a Dutch-system derivative: players are folded within
// score groups, illegal candidates are repaired by minimal-perturbation
// swaps inside the group, and unplaceable players float down to the next
// group. On an odd field every bye candidate is tried in fairness order
// until one leaves a matchable remainder. The search is an explicit bounded
// iteration so worst-case behavior stays provable; it never silently
// relaxes the opponent-uniqueness constraint.
func pairSwiss(t *Tournament, roundNumber int) (*Round, error) {
	players := t.ActivePlayers()
	if len(players) < 2 {
		return nil, &InfeasibleError{RoundNumber: roundNumber,
			Reason: "fewer than two active players"}
	}
	sortByStanding(players)

	// Color rules become preferences in the final round, the way arbiters
	// run it; opponent uniqueness stays absolute in every round.
	relaxColors := roundNumber == t.NumRounds

	var byePlayer *TournamentPlayer
	var paired []swissPair
	if len(players)%2 == 1 {
		// The fairness-preferred bye recipient can leave an unpairable
		// remainder, so walk the candidates in fairness order and keep the
		// first whose remaining field admits a legal matching.
		var stranded *TournamentPlayer
		for _, cand := range byeCandidates(players) {
			pairs, s, ok := pairField(withoutPlayer(players, cand),
				relaxColors)
			if ok {
				byePlayer = cand
				paired = pairs
				break
			}
			if stranded == nil {
				stranded = s
			}
		}
		if byePlayer == nil {
			return nil, &InfeasibleError{
				RoundNumber: roundNumber,
				PlayerID:    stranded.ID,
				Reason:      "no legal opponent under any bye assignment",
			}
		}
	} else {
		pairs, stranded, ok := pairField(players, relaxColors)
		if !ok {
			return nil, &InfeasibleError{
				RoundNumber: roundNumber,
				PlayerID:    stranded.ID,
				Reason:      "no legal opponent after exhausting repair and floating",
			}
		}
		paired = pairs
	}

	rd := &Round{Number: roundNumber, Status: RoundPending}
	for idx, pair := range paired {
		white, black := assignColors(pair.upper, pair.lower, idx+1)
		rd.Pairings = append(rd.Pairings, Pairing{
			RoundNumber: roundNumber,
			BoardNumber: idx + 1,
			WhiteID:     white.ID,
			BlackID:     black.ID,
		})
	}
	if byePlayer != nil {
		rd.Pairings = append(rd.Pairings, Pairing{
			RoundNumber: roundNumber,
			WhiteID:     byePlayer.ID,
		})
	}

	return rd, nil
}

type swissPair struct {
	upper, lower *TournamentPlayer
}

// pairField pairs an even-sized, standing-ordered field: the score-group
// cascade with floating, then one whole-field retry when a bottom-group
// collision cannot float further down (only score-group preference is
// relaxed there, never opponent uniqueness). On failure it reports the
// player left without a legal opponent.
func pairField(players []*TournamentPlayer, relaxColors bool) ([]swissPair,
	*TournamentPlayer, bool) {

	var paired []swissPair
	var carry []*TournamentPlayer
	for _, group := range scoreGroups(players) {
		group = append(carry, group...)
		sortByStanding(group)
		pairs, floated := pairGroup(group, relaxColors)
		paired = append(paired, pairs...)
		carry = floated
	}
	if len(carry) == 0 {
		return paired, nil, true
	}
	if pairs, ok := matchGroup(players, relaxColors); ok {
		return pairs, nil, true
	}

	return nil, carry[0], false
}

// sortByStanding orders players by score descending with starting rank as
// the deterministic tie-break.
func sortByStanding(players []*TournamentPlayer) {
	sort.Slice(players, func(i, j int) bool {
		if players[i].Score != players[j].Score {
			return players[i].Score > players[j].Score
		}
		return players[i].StartRank < players[j].StartRank
	})
}

// scoreGroups splits standing-ordered players into contiguous runs of equal
// score.
func scoreGroups(players []*TournamentPlayer) [][]*TournamentPlayer {
	var groups [][]*TournamentPlayer
	start := 0
	for idx := 1; idx <= len(players); idx++ {
		if idx == len(players) || players[idx].Score != players[start].Score {
			groups = append(groups, players[start:idx])
			start = idx
		}
	}

	return groups
}

// byeCandidates orders the field by bye fairness: fewest byes first, then
// lowest score, then lowest rank. The pairer takes the first candidate whose
// removal leaves a matchable field.
func byeCandidates(players []*TournamentPlayer) []*TournamentPlayer {
	candidates := make([]*TournamentPlayer, len(players))
	copy(candidates, players)
	sort.Slice(candidates, func(i, j int) bool {
		ci, cj := candidates[i], candidates[j]
		if ci.ByeCount != cj.ByeCount {
			return ci.ByeCount < cj.ByeCount
		}
		if ci.Score != cj.Score {
			return ci.Score < cj.Score
		}
		return ci.StartRank > cj.StartRank
	})

	return candidates
}

func withoutPlayer(players []*TournamentPlayer,
	drop *TournamentPlayer) []*TournamentPlayer {

	out := make([]*TournamentPlayer, 0, len(players)-1)
	for _, p := range players {
		if p != drop {
			out = append(out, p)
		}
	}

	return out
}

// pairGroup pairs as much of one score group as legally possible. Players
// that cannot be placed float down, returned in float order; an odd-sized
// group always floats its lowest-ranked player first.
func pairGroup(group []*TournamentPlayer,
	relaxColors bool) ([]swissPair, []*TournamentPlayer) {

	var floated []*TournamentPlayer
	for {
		if len(group)%2 == 1 {
			floated = append(floated, group[len(group)-1])
			group = group[:len(group)-1]
		}
		if len(group) == 0 {
			return nil, floated
		}
		pairs, ok := matchGroup(group, relaxColors)
		if ok {
			return pairs, floated
		}
		// In-group repair failed: push the lowest-ranked player to the next
		// group down and retry what remains.
		floated = append(floated, group[len(group)-1])
		group = group[:len(group)-1]
	}
}

// matchGroup searches for a full legal matching of an even-sized group. The
// highest unpaired player is matched first, trying the fold-determined
// partner and then alternatives in order of increasing rank distance from
// it. The search is an explicit stack-based backtrack bounded by the square
// of the group size.
func matchGroup(group []*TournamentPlayer,
	relaxColors bool) ([]swissPair, bool) {

	type frame struct {
		remaining  []*TournamentPlayer
		candidates []*TournamentPlayer
		next       int
		pick       *TournamentPlayer
	}

	newFrame := func(remaining []*TournamentPlayer) *frame {
		return &frame{
			remaining:  remaining,
			candidates: orderCandidates(remaining, relaxColors),
		}
	}

	maxSteps := 4 * len(group) * len(group)
	steps := 0
	stack := []*frame{newFrame(group)}
	for len(stack) > 0 {
		steps++
		if steps > maxSteps {
			return nil, false
		}

		f := stack[len(stack)-1]
		if len(f.remaining) == 0 {
			var pairs []swissPair
			for _, done := range stack[:len(stack)-1] {
				pairs = append(pairs, swissPair{
					upper: done.remaining[0],
					lower: done.pick,
				})
			}
			return pairs, true
		}
		if f.next >= len(f.candidates) {
			stack = stack[:len(stack)-1]
			continue
		}
		f.pick = f.candidates[f.next]
		f.next++

		rest := make([]*TournamentPlayer, 0, len(f.remaining)-2)
		for _, p := range f.remaining[1:] {
			if p != f.pick {
				rest = append(rest, p)
			}
		}
		stack = append(stack, newFrame(rest))
	}

	return nil, false
}

// orderCandidates lists the legal opponents for remaining[0], fold partner
// first, then alternatives by increasing rank distance (higher-ranked
// alternative first on equal distance).
func orderCandidates(remaining []*TournamentPlayer,
	relaxColors bool) []*TournamentPlayer {

	if len(remaining) < 2 {
		return nil
	}
	top := remaining[0]
	others := remaining[1:]
	foldIdx := len(remaining)/2 - 1

	type scored struct {
		player *TournamentPlayer
		dist   int
		idx    int
	}
	var legal []scored
	for idx, cand := range others {
		if playedBefore(top, cand) {
			continue
		}
		if !relaxColors && !colorFeasible(top, cand) {
			continue
		}
		dist := idx - foldIdx
		if dist < 0 {
			dist = -dist
		}
		legal = append(legal, scored{player: cand, dist: dist, idx: idx})
	}
	sort.Slice(legal, func(i, j int) bool {
		if legal[i].dist != legal[j].dist {
			return legal[i].dist < legal[j].dist
		}
		return legal[i].idx < legal[j].idx
	})

	out := make([]*TournamentPlayer, len(legal))
	for idx, s := range legal {
		out[idx] = s.player
	}

	return out
}

// colorFeasible reports whether at least one color orientation keeps both
// players inside the color constraints.
func colorFeasible(a, b *TournamentPlayer) bool {
	return (colorOK(a, ColorWhite) && colorOK(b, ColorBlack)) ||
		(colorOK(a, ColorBlack) && colorOK(b, ColorWhite))
}

// colorOK reports whether assigning color c keeps the player's balance
// within ±2 and avoids a third consecutive same-color game. Byes are
// transparent to the consecutive-color check.
func colorOK(p *TournamentPlayer, c Color) bool {
	balance := colorBalance(p)
	if c == ColorWhite {
		balance++
	} else {
		balance--
	}
	if balance > 2 || balance < -2 {
		return false
	}

	streak := 0
	for idx := len(p.Colors) - 1; idx >= 0; idx-- {
		col := p.Colors[idx]
		if col == ColorNone {
			continue
		}
		if col != c {
			break
		}
		streak++
		if streak >= 2 {
			return false
		}
	}

	return true
}

// assignColors orients a finalized pairing: the more negative color balance
// gets white; an exact tie goes to whoever had black more recently; a fresh
// pairing with no usable history falls back to rank parity of the upper
// player's board position. If the preferred orientation would break a color
// constraint and the reverse would not, the reverse is used.
func assignColors(upper, lower *TournamentPlayer,
	upperPos int) (*TournamentPlayer, *TournamentPlayer) {

	balU, balL := colorBalance(upper), colorBalance(lower)
	var upperWhite bool
	switch {
	case balU < balL:
		upperWhite = true
	case balL < balU:
		upperWhite = false
	default:
		lastU, lastL := lastBlackRound(upper), lastBlackRound(lower)
		if lastU != lastL {
			upperWhite = lastU > lastL
		} else {
			upperWhite = upperPos%2 == 1
		}
	}

	straightOK := colorOK(upper, ColorWhite) && colorOK(lower, ColorBlack)
	reverseOK := colorOK(upper, ColorBlack) && colorOK(lower, ColorWhite)
	if upperWhite && !straightOK && reverseOK {
		upperWhite = false
	} else if !upperWhite && !reverseOK && straightOK {
		upperWhite = true
	}

	if upperWhite {
		return upper, lower
	}
	return lower, upper
}
