/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package engine

import (
	"errors"
	"fmt"
)

// Precondition violations. These are caller mistakes: surfaced, never
// retried, since retrying with unchanged input cannot succeed.
var (
	ErrTournamentNotActive = errors.New("tournament is not active")
	ErrWrongRound          = errors.New("requested round is not the next round")
	ErrRoundIncomplete     = errors.New("previous round has unreported results")
	ErrRoundCountExceeded  = errors.New("requested round exceeds the configured round count")
)

// ErrDataInconsistency marks a violated structural invariant (duplicate
// player in a round, dangling reference, non-dense boards). It indicates a
// bug in upstream mutation rather than a normal runtime condition.
var ErrDataInconsistency = errors.New("tournament state is inconsistent")

// ErrPairingInfeasible is the category sentinel for InfeasibleError;
// errors.Is(err, ErrPairingInfeasible) matches any infeasibility.
var ErrPairingInfeasible = errors.New("no legal pairing exists")

// InfeasibleError reports that no legal pairing exists under the current
// constraints. It carries enough context for an arbiter to manually
// override; the engine never silently relaxes a constraint.
type InfeasibleError struct {
	RoundNumber int
	PlayerID    string
	Reason      string
}

func (e *InfeasibleError) Error() string {
	if e.PlayerID == "" {
		return fmt.Sprintf("round %v pairing infeasible: %v", e.RoundNumber,
			e.Reason)
	}
	return fmt.Sprintf("round %v pairing infeasible: player %v: %v",
		e.RoundNumber, e.PlayerID, e.Reason)
}

func (e *InfeasibleError) Unwrap() error {
	return ErrPairingInfeasible
}
