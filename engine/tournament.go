/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package engine

import (
	"fmt"
	"sort"
	"time"
)

// Color is the side a player was assigned for one round. ColorNone records a
// bye round.
type Color int

const (
	ColorNone Color = iota
	ColorWhite
	ColorBlack
)

func (c Color) String() string {
	switch c {
	case ColorWhite:
		return "white"
	case ColorBlack:
		return "black"
	}

	return "none"
}

// Format selects the pairing strategy used for a tournament.
type Format string

const (
	FormatSwiss      Format = "swiss"
	FormatRoundRobin Format = "roundrobin"
	FormatKnockout   Format = "knockout"
)

// ParseFormat converts a format name into a Format.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatSwiss, FormatRoundRobin, FormatKnockout:
		return Format(name), nil
	}

	return "", fmt.Errorf("unrecognized tournament format %q", name)
}

// PlayerStatus is a player's lifecycle state. Withdrawn and expelled players
// are excluded from future pairings but retained in history so tiebreaks
// remain correct.
type PlayerStatus string

const (
	PlayerActive    PlayerStatus = "ACTIVE"
	PlayerWithdrawn PlayerStatus = "WITHDRAWN"
	PlayerExpelled  PlayerStatus = "EXPELLED"
)

// TournamentStatus is a tournament's lifecycle state.
type TournamentStatus string

const (
	TournamentPending  TournamentStatus = "PENDING"
	TournamentActive   TournamentStatus = "ACTIVE"
	TournamentFinished TournamentStatus = "FINISHED"
)

// RoundStatus is a round's lifecycle state. A round becomes ACTIVE when its
// pairings are accepted and COMPLETED once every pairing has a result.
type RoundStatus string

const (
	RoundPending   RoundStatus = "PENDING"
	RoundActive    RoundStatus = "ACTIVE"
	RoundCompleted RoundStatus = "COMPLETED"
)

// Player is a registry record referenced, not owned, by the engine.
type Player struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Rating     int          `json:"rating"`
	Federation string       `json:"federation,omitempty"`
	Title      string       `json:"title,omitempty"`
	Status     PlayerStatus `json:"status"`
}

// TournamentPlayer wraps a Player with tournament-scoped pairing history.
// Colors and Opponents are append-only, one entry per round the player was
// part of; they are mutated only when a round's pairings are accepted and
// when results are recorded.
type TournamentPlayer struct {
	Player
	StartRank int      `json:"startRank"`
	Score     float64  `json:"score"`
	Colors    []Color  `json:"colors"`
	Opponents []string `json:"opponents"`
	ByeCount  int      `json:"byeCount"`
}

// Pairing is one board of one round. A bye is represented by an empty
// BlackID; the white seat always holds the real player of a bye pairing.
type Pairing struct {
	RoundNumber int    `json:"roundNumber"`
	BoardNumber int    `json:"boardNumber"`
	WhiteID     string `json:"whiteId"`
	BlackID     string `json:"blackId,omitempty"`
	Result      Result `json:"result"`
}

// IsBye reports whether the pairing is a bye rather than a game.
func (p Pairing) IsBye() bool {
	return p.BlackID == ""
}

// Has reports whether the given player sits on either side of the pairing.
func (p Pairing) Has(playerID string) bool {
	return p.WhiteID == playerID || p.BlackID == playerID
}

// Round is the set of pairings for one round number.
type Round struct {
	Number   int         `json:"number"`
	Status   RoundStatus `json:"status"`
	Pairings []Pairing   `json:"pairings"`
}

// Complete reports whether every game in the round has a result. Byes are
// born complete.
func (rd *Round) Complete() bool {
	for _, p := range rd.Pairings {
		if !p.IsBye() && !p.Result.Decided() {
			return false
		}
	}

	return true
}

// Tournament is the state aggregate the pairing engine reads and the result
// recording path writes. It exclusively owns its rounds and pairings;
// players are shared by id with the external registry. The engine assumes it
// is the sole mutator of a Tournament for the duration of one call; callers
// must serialize access per tournament.
type Tournament struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Location    string              `json:"location,omitempty"`
	Format      Format              `json:"format"`
	NumRounds   int                 `json:"numRounds"`
	DoubleCycle bool                `json:"doubleCycle,omitempty"`
	Status      TournamentStatus    `json:"status"`
	Tiebreaks   []TiebreakSystem    `json:"tiebreaks"`
	Players     []*TournamentPlayer `json:"players"`
	Rounds      []Round             `json:"rounds"`
	CurrentRnd  int                 `json:"currentRound"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// NewTournament creates an empty tournament in the PENDING state. numRounds
// may be zero for round robin and knockout formats, in which case Start()
// derives it from the player count.
func NewTournament(id, name string, format Format, numRounds int) *Tournament {
	return &Tournament{
		ID:        id,
		Name:      name,
		Format:    format,
		NumRounds: numRounds,
		Status:    TournamentPending,
		Tiebreaks: DefaultTiebreaks(),
	}
}

// AddPlayer registers a player before the tournament starts.
func (t *Tournament) AddPlayer(p Player) error {
	if t.Status != TournamentPending {
		return fmt.Errorf("cannot add player to %v tournament %v", t.Status,
			t.ID)
	}
	if p.ID == "" {
		return fmt.Errorf("player must have an id")
	}
	if t.PlayerByID(p.ID) != nil {
		return fmt.Errorf("player %v already registered", p.ID)
	}
	if p.Status == "" {
		p.Status = PlayerActive
	}
	t.Players = append(t.Players, &TournamentPlayer{Player: p})

	return nil
}

// Start seeds the field and transitions the tournament to ACTIVE. Starting
// ranks are assigned by rating descending with name then id as deterministic
// tie-breaks.
func (t *Tournament) Start() error {
	if t.Status != TournamentPending {
		return fmt.Errorf("tournament %v already started", t.ID)
	}
	if len(t.Players) < 2 {
		return fmt.Errorf("tournament %v needs at least 2 players", t.ID)
	}

	sort.Slice(t.Players, func(i, j int) bool {
		pi, pj := t.Players[i], t.Players[j]
		if pi.Rating != pj.Rating {
			return pi.Rating > pj.Rating
		}
		if pi.Name != pj.Name {
			return pi.Name < pj.Name
		}
		return pi.ID < pj.ID
	})
	for idx, p := range t.Players {
		p.StartRank = idx + 1
	}

	if t.NumRounds == 0 {
		t.NumRounds = defaultRoundCount(t.Format, len(t.Players),
			t.DoubleCycle)
	}
	t.Status = TournamentActive

	return nil
}

// Finish marks the tournament complete.
func (t *Tournament) Finish() {
	t.Status = TournamentFinished
}

// defaultRoundCount derives the structural round count for formats where it
// follows from the player count.
func defaultRoundCount(format Format, numPlayers int, doubleCycle bool) int {
	switch format {
	case FormatRoundRobin:
		cycle := numPlayers - 1
		if numPlayers%2 == 1 {
			cycle = numPlayers
		}
		if doubleCycle {
			return 2 * cycle
		}
		return cycle
	case FormatKnockout:
		rounds := 0
		for size := 1; size < numPlayers; size *= 2 {
			rounds++
		}
		return rounds
	}

	// Swiss round counts are an organizer decision; default to a sensible
	// small-club value.
	return 5
}

// PlayerByID returns the tournament player with the given id, or nil.
func (t *Tournament) PlayerByID(id string) *TournamentPlayer {
	for _, p := range t.Players {
		if p.ID == id {
			return p
		}
	}

	return nil
}

// ActivePlayers returns the players still eligible for pairing, ordered by
// starting rank.
func (t *Tournament) ActivePlayers() []*TournamentPlayer {
	var active []*TournamentPlayer
	for _, p := range t.Players {
		if p.Status == PlayerActive {
			active = append(active, p)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].StartRank < active[j].StartRank
	})

	return active
}

// Withdraw excludes a player from future rounds while retaining their
// history.
func (t *Tournament) Withdraw(playerID string) error {
	p := t.PlayerByID(playerID)
	if p == nil {
		return fmt.Errorf("unknown player %v", playerID)
	}
	p.Status = PlayerWithdrawn

	return nil
}

// Expel excludes a player from future rounds, marking the removal as
// disciplinary.
func (t *Tournament) Expel(playerID string) error {
	p := t.PlayerByID(playerID)
	if p == nil {
		return fmt.Errorf("unknown player %v", playerID)
	}
	p.Status = PlayerExpelled

	return nil
}

// AddRound accepts a generated round into the tournament, appending each
// player's color and opponent history and crediting byes. This is the
// persistence boundary: GeneratePairings returns a round without touching
// the tournament; nothing changes until the caller accepts it here.
func (t *Tournament) AddRound(rd *Round) error {
	if rd.Number != t.CurrentRnd+1 {
		return fmt.Errorf("round %v out of sequence (current round %v)",
			rd.Number, t.CurrentRnd)
	}

	for _, pairing := range rd.Pairings {
		white := t.PlayerByID(pairing.WhiteID)
		if white == nil {
			return fmt.Errorf("%w: round %v references unknown player %v",
				ErrDataInconsistency, rd.Number, pairing.WhiteID)
		}
		if pairing.IsBye() {
			white.Colors = append(white.Colors, ColorNone)
			white.Opponents = append(white.Opponents, "")
			white.ByeCount++
			white.Score += byePoints
			continue
		}
		black := t.PlayerByID(pairing.BlackID)
		if black == nil {
			return fmt.Errorf("%w: round %v references unknown player %v",
				ErrDataInconsistency, rd.Number, pairing.BlackID)
		}
		white.Colors = append(white.Colors, ColorWhite)
		white.Opponents = append(white.Opponents, black.ID)
		black.Colors = append(black.Colors, ColorBlack)
		black.Opponents = append(black.Opponents, white.ID)
	}

	rd.Status = RoundActive
	t.Rounds = append(t.Rounds, *rd)
	t.CurrentRnd = rd.Number

	return nil
}

// byePoints is the game score credited for a full-point bye.
const byePoints = 1.0

// RecordResult sets the result of one board in the current round, adjusting
// both players' running scores. Re-recording a board replaces the prior
// result (arbiter corrections).
func (t *Tournament) RecordResult(roundNumber, boardNumber int,
	res Result) error {

	rd := t.Round(roundNumber)
	if rd == nil {
		return fmt.Errorf("no such round %v", roundNumber)
	}
	if rd.Status == RoundCompleted {
		return fmt.Errorf("round %v is already completed", roundNumber)
	}

	for idx := range rd.Pairings {
		pairing := &rd.Pairings[idx]
		if pairing.BoardNumber != boardNumber || pairing.IsBye() {
			continue
		}
		white := t.PlayerByID(pairing.WhiteID)
		black := t.PlayerByID(pairing.BlackID)
		if white == nil || black == nil {
			return fmt.Errorf("%w: round %v board %v references unknown player",
				ErrDataInconsistency, roundNumber, boardNumber)
		}
		white.Score += res.WhitePoints() - pairing.Result.WhitePoints()
		black.Score += res.BlackPoints() - pairing.Result.BlackPoints()
		pairing.Result = res

		return nil
	}

	return fmt.Errorf("no game on board %v in round %v", boardNumber,
		roundNumber)
}

// CompleteRound transitions an ACTIVE round to COMPLETED once every game has
// a result.
func (t *Tournament) CompleteRound(roundNumber int) error {
	rd := t.Round(roundNumber)
	if rd == nil {
		return fmt.Errorf("no such round %v", roundNumber)
	}
	if rd.Status == RoundCompleted {
		return nil
	}
	if !rd.Complete() {
		return fmt.Errorf("round %v still has unreported results",
			roundNumber)
	}
	rd.Status = RoundCompleted

	return nil
}

// Round returns the round with the given number, or nil.
func (t *Tournament) Round(number int) *Round {
	for idx := range t.Rounds {
		if t.Rounds[idx].Number == number {
			return &t.Rounds[idx]
		}
	}

	return nil
}

// playedBefore reports whether the two players have already faced each other
// in this tournament.
func playedBefore(a, b *TournamentPlayer) bool {
	for _, opp := range a.Opponents {
		if opp != "" && opp == b.ID {
			return true
		}
	}

	return false
}

// colorBalance is the running difference between games played as white and
// games played as black. Byes do not move the balance.
func colorBalance(p *TournamentPlayer) int {
	balance := 0
	for _, c := range p.Colors {
		switch c {
		case ColorWhite:
			balance++
		case ColorBlack:
			balance--
		}
	}

	return balance
}

// lastBlackRound returns the most recent history index at which the player
// had black, or -1. History indexes align across players because every
// player gains exactly one entry per round they were part of.
func lastBlackRound(p *TournamentPlayer) int {
	for idx := len(p.Colors) - 1; idx >= 0; idx-- {
		if p.Colors[idx] == ColorBlack {
			return idx
		}
	}

	return -1
}

// validate re-checks the structural invariants the engine depends on:
// each player at most once per round, board numbers dense from 1, no
// dangling player references. Violations indicate corrupted upstream state,
// not a normal runtime condition.
func (t *Tournament) validate() error {
	for _, rd := range t.Rounds {
		seen := make(map[string]bool)
		boardSeen := make(map[int]bool)
		boards := 0
		maxBoard := 0
		for _, pairing := range rd.Pairings {
			for _, id := range []string{pairing.WhiteID, pairing.BlackID} {
				if id == "" {
					continue
				}
				if t.PlayerByID(id) == nil {
					return fmt.Errorf(
						"%w: round %v references unknown player %v",
						ErrDataInconsistency, rd.Number, id)
				}
				if seen[id] {
					return fmt.Errorf(
						"%w: player %v appears twice in round %v",
						ErrDataInconsistency, id, rd.Number)
				}
				seen[id] = true
			}
			if !pairing.IsBye() {
				boards++
				if pairing.BoardNumber > maxBoard {
					maxBoard = pairing.BoardNumber
				}
				if pairing.BoardNumber < 1 {
					return fmt.Errorf(
						"%w: round %v has a game without a board number",
						ErrDataInconsistency, rd.Number)
				}
				if boardSeen[pairing.BoardNumber] {
					return fmt.Errorf(
						"%w: round %v reuses board number %v",
						ErrDataInconsistency, rd.Number, pairing.BoardNumber)
				}
				boardSeen[pairing.BoardNumber] = true
			}
		}
		if boards != maxBoard {
			return fmt.Errorf(
				"%w: round %v board numbers are not dense (games=%v max=%v)",
				ErrDataInconsistency, rd.Number, boards, maxBoard)
		}
	}

	return nil
}
