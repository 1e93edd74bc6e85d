/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mikeb26/chesstd/engine"
	"github.com/mikeb26/chesstd/internal"
	"github.com/mikeb26/chesstd/ratings"
	"github.com/mikeb26/chesstd/s3backup"
	"github.com/mikeb26/chesstd/store"
)

type subCommand string

const (
	createCmd    subCommand = "create"
	newPlayerCmd subCommand = "new-player"
	playersCmd   subCommand = "players"
	addPlayerCmd subCommand = "add-player"
	startCmd     subCommand = "start"
	pairCmd      subCommand = "pair"
	resultCmd    subCommand = "result"
	withdrawCmd  subCommand = "withdraw"
	standingsCmd subCommand = "standings"
	exportCmd    subCommand = "export"
	importCmd    subCommand = "import-ratings"
	backupCmd    subCommand = "backup"
	listCmd      subCommand = "list"
	helpCmd      subCommand = "help"
)

type cmdHandler func(ctx context.Context, st *store.Store,
	args []string) error

var subCmdHdlrs = map[subCommand]cmdHandler{
	createCmd:    createCmdHandler,
	newPlayerCmd: newPlayerCmdHandler,
	playersCmd:   playersCmdHandler,
	addPlayerCmd: addPlayerCmdHandler,
	startCmd:     startCmdHandler,
	pairCmd:      pairCmdHandler,
	resultCmd:    resultCmdHandler,
	withdrawCmd:  withdrawCmdHandler,
	standingsCmd: standingsCmdHandler,
	exportCmd:    exportCmdHandler,
	importCmd:    importRatingsCmdHandler,
	backupCmd:    backupCmdHandler,
	listCmd:      listCmdHandler,
	helpCmd:      helpCmdHandler,
}

const helpText = `chesstd - chess tournament director

usage: chesstd <command> [options]

commands:
  create          create a tournament (-name, -format, -rounds, -double)
  new-player      add a player to the registry (-first, -last, -rating, -fed)
  players         list the player registry
  add-player      register a player in a tournament (-t, -player)
  start           seed the field and activate a tournament (-t)
  pair            generate and accept the next round's pairings (-t)
  result          record a game result (-t, -round, -board, -result)
  withdraw        withdraw a player from future rounds (-t, -player)
  standings       show current standings (-t)
  export          export standings (-t, -format csv|json, -o file)
  import-ratings  import players from a federation rating list (-url)
  backup          back up all data (-dir, -bucket)
  list            list tournaments
  help            show this help

The data directory defaults to ./data and can be overridden with the
CHESSTD_DATA_DIR environment variable. Result tokens: 1-0, 0-1, 1/2-1/2,
+/- (white forfeit win), -/+ (black forfeit win), 0-0 (double forfeit).
`

func main() {
	ctx := context.Background()
	st := store.New(store.DefaultDir())

	sub := helpCmd
	args := []string{}
	if len(os.Args) > 1 {
		sub = subCommand(os.Args[1])
		args = os.Args[2:]
	}
	hdlr, ok := subCmdHdlrs[sub]
	if !ok {
		fmt.Fprintf(os.Stderr, "chesstd: unknown command %q\n\n%v", sub,
			helpText)
		os.Exit(1)
	}

	if err := hdlr(ctx, st, args); err != nil {
		fmt.Fprintf(os.Stderr, "chesstd %v: %v\n", sub, err)
		os.Exit(1)
	}
}

func helpCmdHandler(ctx context.Context, st *store.Store,
	args []string) error {

	fmt.Print(helpText)
	return nil
}

func createCmdHandler(ctx context.Context, st *store.Store,
	args []string) error {

	fs := flag.NewFlagSet("create", flag.ExitOnError)
	name := fs.String("name", "", "tournament name")
	formatName := fs.String("format", "swiss",
		"tournament format (swiss, roundrobin, knockout)")
	rounds := fs.Int("rounds", 0,
		"round count (derived from player count when 0)")
	double := fs.Bool("double", false, "double round robin")
	tiebreaks := fs.String("tiebreaks", "",
		"comma separated tiebreak order (e.g. BUCHHOLZ,SONNEBORN_BERGER)")
	fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("-name is required")
	}
	format, err := engine.ParseFormat(*formatName)
	if err != nil {
		return err
	}

	t := st.NewTournament(*name, format, *rounds)
	t.DoubleCycle = *double
	if *tiebreaks != "" {
		t.Tiebreaks = nil
		for _, sysName := range strings.Split(*tiebreaks, ",") {
			sys, err := engine.ParseTiebreak(strings.TrimSpace(sysName))
			if err != nil {
				return err
			}
			t.Tiebreaks = append(t.Tiebreaks, sys)
		}
	}
	if err := st.SaveTournament(t); err != nil {
		return err
	}
	fmt.Printf("created tournament %v (%v)\n", t.Name, t.ID)

	return nil
}

func newPlayerCmdHandler(ctx context.Context, st *store.Store,
	args []string) error {

	fs := flag.NewFlagSet("new-player", flag.ExitOnError)
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	rating := fs.Int("rating", 0, "rating (0 for unrated)")
	fed := fs.String("fed", "", "federation")
	fs.Parse(args)

	if *first == "" || *last == "" {
		return fmt.Errorf("-first and -last are required")
	}
	rec := st.NewPlayer(*first, *last, *rating, *fed)
	if err := st.SavePlayer(rec); err != nil {
		return err
	}
	fmt.Printf("created player %v (%v)\n", rec.DisplayName(), rec.ID)

	return nil
}

func playersCmdHandler(ctx context.Context, st *store.Store,
	args []string) error {

	players, err := st.ListPlayers()
	if err != nil {
		return err
	}
	for _, rec := range players {
		rating := "unrated"
		if rec.Rating != 0 {
			rating = fmt.Sprintf("%v", rec.Rating)
		}
		fmt.Printf("%v  %v  %v\n", rec.ID, rec.DisplayName(), rating)
	}

	return nil
}

func addPlayerCmdHandler(ctx context.Context, st *store.Store,
	args []string) error {

	fs := flag.NewFlagSet("add-player", flag.ExitOnError)
	tid := fs.String("t", "", "tournament id")
	pid := fs.String("player", "", "player id")
	fs.Parse(args)

	t, err := st.LoadTournament(*tid)
	if err != nil {
		return err
	}
	rec, err := st.LoadPlayer(*pid)
	if err != nil {
		return err
	}
	if err := t.AddPlayer(rec.Player()); err != nil {
		return err
	}
	rec.Tournaments = append(rec.Tournaments, t.ID)
	if err := st.SavePlayer(rec); err != nil {
		return err
	}

	return st.SaveTournament(t)
}

func startCmdHandler(ctx context.Context, st *store.Store,
	args []string) error {

	fs := flag.NewFlagSet("start", flag.ExitOnError)
	tid := fs.String("t", "", "tournament id")
	fs.Parse(args)

	t, err := st.LoadTournament(*tid)
	if err != nil {
		return err
	}
	if err := t.Start(); err != nil {
		return err
	}
	if err := st.SaveTournament(t); err != nil {
		return err
	}
	fmt.Printf("%v started: %v players, %v rounds\n", t.Name,
		len(t.Players), t.NumRounds)

	return nil
}

func pairCmdHandler(ctx context.Context, st *store.Store,
	args []string) error {

	fs := flag.NewFlagSet("pair", flag.ExitOnError)
	tid := fs.String("t", "", "tournament id")
	fs.Parse(args)

	t, err := st.LoadTournament(*tid)
	if err != nil {
		return err
	}
	rd, err := engine.GeneratePairings(t, t.CurrentRnd+1)
	if err != nil {
		return err
	}
	if err := t.AddRound(rd); err != nil {
		return err
	}
	if err := st.SaveTournament(t); err != nil {
		return err
	}
	fmt.Print(buildPairingsOutput(t, rd))

	return nil
}

func resultCmdHandler(ctx context.Context, st *store.Store,
	args []string) error {

	fs := flag.NewFlagSet("result", flag.ExitOnError)
	tid := fs.String("t", "", "tournament id")
	round := fs.Int("round", 0, "round number (defaults to current)")
	board := fs.Int("board", 0, "board number")
	token := fs.String("result", "", "result token")
	fs.Parse(args)

	t, err := st.LoadTournament(*tid)
	if err != nil {
		return err
	}
	if *round == 0 {
		*round = t.CurrentRnd
	}
	res, err := engine.ParseResult(*token)
	if err != nil {
		return err
	}
	if err := t.RecordResult(*round, *board, res); err != nil {
		return err
	}

	rd := t.Round(*round)
	if rd != nil && rd.Complete() {
		if err := t.CompleteRound(*round); err != nil {
			return err
		}
		log.Printf("round %v completed", *round)
		if t.CurrentRnd == t.NumRounds {
			t.Finish()
			log.Printf("tournament %v finished", t.Name)
		}
	}

	return st.SaveTournament(t)
}

func withdrawCmdHandler(ctx context.Context, st *store.Store,
	args []string) error {

	fs := flag.NewFlagSet("withdraw", flag.ExitOnError)
	tid := fs.String("t", "", "tournament id")
	pid := fs.String("player", "", "player id")
	fs.Parse(args)

	t, err := st.LoadTournament(*tid)
	if err != nil {
		return err
	}
	if err := t.Withdraw(*pid); err != nil {
		return err
	}

	return st.SaveTournament(t)
}

func standingsCmdHandler(ctx context.Context, st *store.Store,
	args []string) error {

	fs := flag.NewFlagSet("standings", flag.ExitOnError)
	tid := fs.String("t", "", "tournament id")
	fs.Parse(args)

	t, err := st.LoadTournament(*tid)
	if err != nil {
		return err
	}
	entries, err := engine.BuildStandings(t)
	if err != nil {
		return err
	}
	fmt.Print(buildStandingsOutput(t, entries))

	return nil
}

func exportCmdHandler(ctx context.Context, st *store.Store,
	args []string) error {

	fs := flag.NewFlagSet("export", flag.ExitOnError)
	tid := fs.String("t", "", "tournament id")
	format := fs.String("format", "csv", "export format (csv or json)")
	outPath := fs.String("o", "", "output file (defaults to stdout)")
	fs.Parse(args)

	t, err := st.LoadTournament(*tid)
	if err != nil {
		return err
	}

	out := os.Stdout
	if *outPath != "" {
		out, err = os.Create(*outPath)
		if err != nil {
			return fmt.Errorf("unable to create %v: %w", *outPath, err)
		}
		defer out.Close()
	}

	switch *format {
	case "csv":
		return store.ExportStandingsCSV(t, out)
	case "json":
		return store.ExportReportJSON(t, out)
	}

	return fmt.Errorf("unrecognized export format %q", *format)
}

func importRatingsCmdHandler(ctx context.Context, st *store.Store,
	args []string) error {

	fs := flag.NewFlagSet("import-ratings", flag.ExitOnError)
	url := fs.String("url", "", "rating list URL")
	refresh := fs.Bool("refresh", false,
		"also fetch each player's profile page for official values")
	fs.Parse(args)

	if *url == "" {
		return fmt.Errorf("-url is required")
	}

	client := ratings.NewClient(ctx)
	entries, err := client.FetchList(ctx, *url)
	if err != nil {
		return err
	}
	if *refresh {
		entries, err = client.Refresh(ctx, entries)
		if err != nil {
			return err
		}
	}

	existing, err := st.ListPlayers()
	if err != nil {
		return err
	}
	byFedID := make(map[string]*store.PlayerRecord)
	for _, rec := range existing {
		if rec.FederationID != "" {
			byFedID[rec.FederationID] = rec
		}
	}

	created, updated := 0, 0
	for _, entry := range entries {
		if rec, ok := byFedID[entry.ExternalID]; ok && entry.ExternalID != "" {
			rec.Rating = entry.Rating
			rec.Title = entry.Title
			if err := st.SavePlayer(rec); err != nil {
				return err
			}
			updated++
			continue
		}

		first, last := splitName(entry.Name)
		rec := st.NewPlayer(first, last, entry.Rating, entry.Federation)
		rec.FederationID = entry.ExternalID
		rec.Title = entry.Title
		if err := st.SavePlayer(rec); err != nil {
			return err
		}
		created++
	}
	fmt.Printf("imported %v players (%v new, %v updated)\n",
		created+updated, created, updated)

	return nil
}

func backupCmdHandler(ctx context.Context, st *store.Store,
	args []string) error {

	fs := flag.NewFlagSet("backup", flag.ExitOnError)
	dir := fs.String("dir", "backups", "local backup directory")
	bucket := fs.String("bucket", os.Getenv(internal.BackupBucketEnvVar),
		"S3 bucket for off-site backup (optional)")
	fs.Parse(args)

	dst, err := store.Backup(st, *dir)
	if err != nil {
		return err
	}
	fmt.Printf("backed up to %v\n", dst)

	if *bucket != "" {
		blob := s3backup.New(ctx, *bucket, false, true)
		if err := blob.Init(); err != nil {
			return err
		}
		if err := store.BackupToS3(ctx, st, blob); err != nil {
			return err
		}
		fmt.Printf("uploaded backup to s3://%v\n", *bucket)
	}

	return nil
}

func listCmdHandler(ctx context.Context, st *store.Store,
	args []string) error {

	tournaments, err := st.ListTournaments()
	if err != nil {
		return err
	}
	for _, t := range tournaments {
		fmt.Printf("%v  %v  %v  %v  round %v/%v\n", t.ID, t.Name, t.Format,
			t.Status, t.CurrentRnd, t.NumRounds)
	}

	return nil
}

// splitName splits a display name into first and last, keeping middle names
// with the first name.
func splitName(name string) (string, string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}

	return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1]
}
