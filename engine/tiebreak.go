/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package engine

import (
	"fmt"
	"sort"
)

// TiebreakSystem identifies one tiebreak formula. Each tournament configures
// an ordered subset; the set is extensible by registering a new system in
// tiebreakFuncs.
type TiebreakSystem string

const (
	TiebreakDirectEncounter TiebreakSystem = "DIRECT_ENCOUNTER"
	TiebreakBuchholz        TiebreakSystem = "BUCHHOLZ"
	TiebreakBuchholzCut1    TiebreakSystem = "BUCHHOLZ_CUT1"
	TiebreakBuchholzMedian  TiebreakSystem = "BUCHHOLZ_MEDIAN"
	TiebreakSonnebornBerger TiebreakSystem = "SONNEBORN_BERGER"
)

// DefaultTiebreaks is the order used when a tournament configures none.
func DefaultTiebreaks() []TiebreakSystem {
	return []TiebreakSystem{TiebreakBuchholz, TiebreakSonnebornBerger}
}

// ParseTiebreak converts a system identifier into a TiebreakSystem.
func ParseTiebreak(name string) (TiebreakSystem, error) {
	sys := TiebreakSystem(name)
	if _, ok := tiebreakFuncs[sys]; !ok {
		return "", fmt.Errorf("unrecognized tiebreak system %q", name)
	}

	return sys, nil
}

// TiebreakScore pairs a system with its computed value. Values are computed
// fresh on every standings request and never persisted as authoritative.
type TiebreakScore struct {
	System TiebreakSystem `json:"system"`
	Value  float64        `json:"value"`
}

type tiebreakFunc func(c *tiebreakContext, playerID string) float64

var tiebreakFuncs = map[TiebreakSystem]tiebreakFunc{
	TiebreakDirectEncounter: directEncounter,
	TiebreakBuchholz:        buchholzFull,
	TiebreakBuchholzCut1:    buchholzCut1,
	TiebreakBuchholzMedian:  buchholzMedian,
	TiebreakSonnebornBerger: sonnebornBerger,
}

type gameRec struct {
	opponentID string
	points     float64
	bye        bool
}

// tiebreakContext caches per-player game records and final scores derived
// from completed rounds only, so standings are reproducible for any
// completed prefix of the tournament.
type tiebreakContext struct {
	playerIDs []string
	games     map[string][]gameRec
	scores    map[string]float64
}

func newTiebreakContext(t *Tournament) *tiebreakContext {
	c := &tiebreakContext{
		games:  make(map[string][]gameRec),
		scores: make(map[string]float64),
	}
	for _, p := range t.Players {
		c.playerIDs = append(c.playerIDs, p.ID)
		c.scores[p.ID] = 0
	}

	for _, rd := range t.Rounds {
		if rd.Status != RoundCompleted {
			continue
		}
		for _, pairing := range rd.Pairings {
			if pairing.IsBye() {
				c.games[pairing.WhiteID] = append(c.games[pairing.WhiteID],
					gameRec{points: byePoints, bye: true})
				c.scores[pairing.WhiteID] += byePoints
				continue
			}
			if !pairing.Result.Decided() {
				continue
			}
			c.games[pairing.WhiteID] = append(c.games[pairing.WhiteID],
				gameRec{
					opponentID: pairing.BlackID,
					points:     pairing.Result.WhitePoints(),
				})
			c.games[pairing.BlackID] = append(c.games[pairing.BlackID],
				gameRec{
					opponentID: pairing.WhiteID,
					points:     pairing.Result.BlackPoints(),
				})
			c.scores[pairing.WhiteID] += pairing.Result.WhitePoints()
			c.scores[pairing.BlackID] += pairing.Result.BlackPoints()
		}
	}

	return c
}

// opponentScores lists the final scores of a player's real opponents; byes
// contribute no opponent.
func opponentScores(c *tiebreakContext, playerID string) []float64 {
	var scores []float64
	for _, g := range c.games[playerID] {
		if g.bye {
			continue
		}
		scores = append(scores, c.scores[g.opponentID])
	}

	return scores
}

// buchholzFull sums the final scores of all opponents.
func buchholzFull(c *tiebreakContext, playerID string) float64 {
	total := 0.0
	for _, s := range opponentScores(c, playerID) {
		total += s
	}

	return total
}

// buchholzCut1 is Buchholz with the single lowest opponent score dropped.
func buchholzCut1(c *tiebreakContext, playerID string) float64 {
	scores := opponentScores(c, playerID)
	if len(scores) == 0 {
		return 0
	}
	sort.Float64s(scores)
	total := 0.0
	for _, s := range scores[1:] {
		total += s
	}

	return total
}

// buchholzMedian is Buchholz with the highest and lowest opponent scores
// dropped.
func buchholzMedian(c *tiebreakContext, playerID string) float64 {
	scores := opponentScores(c, playerID)
	if len(scores) < 3 {
		return 0
	}
	sort.Float64s(scores)
	total := 0.0
	for _, s := range scores[1 : len(scores)-1] {
		total += s
	}

	return total
}

// sonnebornBerger sums own game points weighted by each opponent's final
// score, so wins contribute the opponent's full score and draws half of it.
func sonnebornBerger(c *tiebreakContext, playerID string) float64 {
	total := 0.0
	for _, g := range c.games[playerID] {
		if g.bye {
			continue
		}
		total += g.points * c.scores[g.opponentID]
	}

	return total
}

// directEncounter scores the games played against the players tied on main
// score. It applies only when every pair within the tie cohort has met;
// otherwise it yields zero for the whole cohort.
func directEncounter(c *tiebreakContext, playerID string) float64 {
	cohort := make(map[string]bool)
	for _, id := range c.playerIDs {
		if c.scores[id] == c.scores[playerID] {
			cohort[id] = true
		}
	}
	if len(cohort) < 2 {
		return 0
	}

	met := func(a, b string) bool {
		for _, g := range c.games[a] {
			if g.opponentID == b {
				return true
			}
		}
		return false
	}
	for a := range cohort {
		for b := range cohort {
			if a < b && !met(a, b) {
				return 0
			}
		}
	}

	total := 0.0
	for _, g := range c.games[playerID] {
		if !g.bye && cohort[g.opponentID] {
			total += g.points
		}
	}

	return total
}
