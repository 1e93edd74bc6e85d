/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package engine pairs opponents across the rounds of a chess tournament and
// computes tiebreak-ordered standings from recorded results. All operations
// are deterministic pure computations over a caller-supplied Tournament
// snapshot; the engine performs no I/O and holds no state across calls.
package engine

import (
	"fmt"
)

type strategyFunc func(t *Tournament, roundNumber int) (*Round, error)

var strategies = map[Format]strategyFunc{
	FormatSwiss:      pairSwiss,
	FormatRoundRobin: pairRoundRobin,
	FormatKnockout:   pairKnockout,
}

// GeneratePairings produces the pairing list for the given round. The
// returned round is not yet part of the tournament; the caller accepts it
// via Tournament.AddRound and persists it, so a rejected pairing leaves no
// trace in the state.
func GeneratePairings(t *Tournament, roundNumber int) (*Round, error) {
	if t.Status != TournamentActive {
		return nil, fmt.Errorf("%w: tournament %v is %v",
			ErrTournamentNotActive, t.ID, t.Status)
	}
	if roundNumber != t.CurrentRnd+1 {
		return nil, fmt.Errorf("%w: requested %v, next round is %v",
			ErrWrongRound, roundNumber, t.CurrentRnd+1)
	}
	if roundNumber > t.NumRounds {
		return nil, fmt.Errorf("%w: requested %v of %v",
			ErrRoundCountExceeded, roundNumber, t.NumRounds)
	}
	if t.CurrentRnd > 0 {
		prev := t.Round(t.CurrentRnd)
		if prev == nil {
			return nil, fmt.Errorf("%w: round %v missing",
				ErrDataInconsistency, t.CurrentRnd)
		}
		if prev.Status != RoundCompleted {
			return nil, fmt.Errorf("%w: round %v", ErrRoundIncomplete,
				prev.Number)
		}
	}
	if err := t.validate(); err != nil {
		return nil, err
	}

	strategy, ok := strategies[t.Format]
	if !ok {
		return nil, fmt.Errorf("no pairing strategy for format %q", t.Format)
	}

	rd, err := strategy(t, roundNumber)
	if err != nil {
		return nil, err
	}
	if err := checkRound(t, rd); err != nil {
		return nil, err
	}

	return rd, nil
}

// checkRound verifies the structural invariants of a freshly generated
// round before handing it to the caller: every paired player active and
// distinct, board numbers dense from 1.
func checkRound(t *Tournament, rd *Round) error {
	seen := make(map[string]bool)
	games := 0
	for _, pairing := range rd.Pairings {
		for _, id := range []string{pairing.WhiteID, pairing.BlackID} {
			if id == "" {
				continue
			}
			if seen[id] {
				return fmt.Errorf("%w: player %v paired twice in round %v",
					ErrDataInconsistency, id, rd.Number)
			}
			seen[id] = true
		}
		if !pairing.IsBye() {
			games++
			if pairing.BoardNumber != games {
				return fmt.Errorf(
					"%w: round %v board numbers are not dense from 1",
					ErrDataInconsistency, rd.Number)
			}
		}
	}

	return nil
}
