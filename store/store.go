/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package store persists the player registry and tournament records as one
// JSON file per record under a data directory. The pairing engine never
// touches files; it receives fully materialized tournaments loaded here and
// the caller hands new rounds back for saving.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mikeb26/chesstd/engine"
	"github.com/mikeb26/chesstd/internal"
)

// PlayerRecord is a registry entry. Players are shared across tournaments by
// id; the contact fields never leave the registry.
type PlayerRecord struct {
	ID           string              `json:"playerId"`
	FirstName    string              `json:"firstName"`
	LastName     string              `json:"lastName"`
	Rating       int                 `json:"rating"`
	Federation   string              `json:"federation,omitempty"`
	FederationID string              `json:"federationId,omitempty"`
	Title        string              `json:"title,omitempty"`
	Email        string              `json:"email,omitempty"`
	Phone        string              `json:"phone,omitempty"`
	Status       engine.PlayerStatus `json:"status"`
	Tournaments  []string            `json:"tournaments"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// DisplayName returns the player's name in display order.
func (r *PlayerRecord) DisplayName() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

// Player converts the registry record into the reference the engine uses.
func (r *PlayerRecord) Player() engine.Player {
	return engine.Player{
		ID:         r.ID,
		Name:       r.DisplayName(),
		Rating:     r.Rating,
		Federation: r.Federation,
		Title:      r.Title,
		Status:     r.Status,
	}
}

// Store reads and writes registry records under one data directory.
type Store struct {
	dir string
}

// New returns a Store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir resolves the data directory from the environment, falling back
// to ./data.
func DefaultDir() string {
	if dir := os.Getenv(internal.DataDirEnvVar); dir != "" {
		return dir
	}
	return internal.DefaultDataDir
}

func (s *Store) playersDir() string {
	return filepath.Join(s.dir, "players")
}

func (s *Store) tournamentsDir() string {
	return filepath.Join(s.dir, "tournaments")
}

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// NewPlayer creates an unsaved registry record with a fresh id.
func (s *Store) NewPlayer(firstName, lastName string, rating int,
	federation string) *PlayerRecord {

	now := time.Now().UTC()
	return &PlayerRecord{
		ID:         uuid.NewString(),
		FirstName:  firstName,
		LastName:   lastName,
		Rating:     rating,
		Federation: federation,
		Status:     engine.PlayerActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// SavePlayer writes the record, updating its modification timestamp.
func (s *Store) SavePlayer(rec *PlayerRecord) error {
	rec.UpdatedAt = time.Now().UTC()
	return writeJSON(filepath.Join(s.playersDir(), rec.ID+".json"), rec)
}

// LoadPlayer reads one registry record.
func (s *Store) LoadPlayer(id string) (*PlayerRecord, error) {
	var rec PlayerRecord
	if err := readJSON(filepath.Join(s.playersDir(), id+".json"),
		&rec); err != nil {
		return nil, err
	}

	return &rec, nil
}

// DeletePlayer removes a registry record.
func (s *Store) DeletePlayer(id string) error {
	err := os.Remove(filepath.Join(s.playersDir(), id+".json"))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("player %v: %w", id, ErrNotFound)
	}

	return err
}

// ListPlayers returns all registry records sorted by last name.
func (s *Store) ListPlayers() ([]*PlayerRecord, error) {
	var players []*PlayerRecord
	err := eachJSONFile(s.playersDir(), func(path string) error {
		var rec PlayerRecord
		if err := readJSON(path, &rec); err != nil {
			return err
		}
		players = append(players, &rec)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(players, func(i, j int) bool {
		if players[i].LastName != players[j].LastName {
			return players[i].LastName < players[j].LastName
		}
		return players[i].FirstName < players[j].FirstName
	})

	return players, nil
}

// NewTournament creates an unsaved tournament with a fresh id.
func (s *Store) NewTournament(name string, format engine.Format,
	numRounds int) *engine.Tournament {

	t := engine.NewTournament(uuid.NewString(), name, format, numRounds)
	t.CreatedAt = time.Now().UTC()

	return t
}

// SaveTournament writes the tournament aggregate, updating its modification
// timestamp.
func (s *Store) SaveTournament(t *engine.Tournament) error {
	t.UpdatedAt = time.Now().UTC()
	return writeJSON(filepath.Join(s.tournamentsDir(), t.ID+".json"), t)
}

// LoadTournament reads one tournament aggregate.
func (s *Store) LoadTournament(id string) (*engine.Tournament, error) {
	var t engine.Tournament
	if err := readJSON(filepath.Join(s.tournamentsDir(), id+".json"),
		&t); err != nil {
		return nil, err
	}

	return &t, nil
}

// ListTournaments returns all tournaments, most recently created first.
func (s *Store) ListTournaments() ([]*engine.Tournament, error) {
	var tournaments []*engine.Tournament
	err := eachJSONFile(s.tournamentsDir(), func(path string) error {
		var t engine.Tournament
		if err := readJSON(path, &t); err != nil {
			return err
		}
		tournaments = append(tournaments, &t)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(tournaments, func(i, j int) bool {
		return tournaments[i].CreatedAt.After(tournaments[j].CreatedAt)
	})

	return tournaments, nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("unable to create %v: %w", filepath.Dir(path), err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to encode %v: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("unable to write %v: %w", path, err)
	}

	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%v: %w", path, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("unable to read %v: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unable to parse %v: %w", path, err)
	}

	return nil
}

func eachJSONFile(dir string, fn func(path string) error) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("unable to list %v: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if err := fn(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}

	return nil
}
