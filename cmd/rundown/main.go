package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	"unicode/utf8"

	"streambuddy/internal/database"
	"streambuddy/internal/playlist"
	"streambuddy/internal/rotation"

	"golang.org/x/term"
)

const (
	// Default timeout for loading sources and querying history
	defaultTimeout = 30 * time.Second
	// Width used when stdout is not a terminal
	defaultWidth = 100
	defaultCount = 10
)

type options struct {
	episodes string
	bumpers  string
	dbPath   string
	count    int
}

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	command := os.Args[1]
	opts, err := parseOptions(command, os.Args[2:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	width := terminalWidth()

	switch command {
	case "upcoming":
		err = runUpcoming(ctx, os.Stdout, opts, width)
	case "history":
		err = runHistory(ctx, os.Stdout, opts, width)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", sanitizeCommand(command))
		printUsage(os.Stderr)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseOptions(command string, args []string) (options, error) {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts options
	fs.StringVar(&opts.episodes, "episodes", envOr("STREAMBUDDY_EPISODES", "./episodes"), "episode folder or playlist")
	fs.StringVar(&opts.bumpers, "bumpers", envOr("STREAMBUDDY_BUMPERS", "./bumpers"), "bumper folder, playlist or file")
	fs.StringVar(&opts.dbPath, "db", envOr("STREAMBUDDY_DATABASE_PATH", "./data/streambuddy.db"), "history database")
	fs.IntVar(&opts.count, "n", defaultCount, "number of entries")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.count <= 0 {
		return options{}, fmt.Errorf("-n must be positive, got %d", opts.count)
	}
	return opts, nil
}

// sanitizeCommand replaces anything outside [a-zA-Z0-9_-] with '_'.
func sanitizeCommand(cmd string) string {
	var b strings.Builder
	b.Grow(len(cmd))
	for _, r := range cmd {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "StreamBuddy Rundown")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage: rundown <command> [flags]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  upcoming  - List what plays next")
	fmt.Fprintln(w, "  history   - List recent airings")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -episodes <path>  Episode folder or playlist")
	fmt.Fprintln(w, "  -bumpers <path>   Bumper folder, playlist or file")
	fmt.Fprintln(w, "  -db <path>        History database")
	fmt.Fprintf(w, "  -n <count>        Number of entries (default: %d)\n", defaultCount)
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

// truncate shortens s to at most width runes, ending in "..." when cut.
func truncate(s string, width int) string {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	if width <= 3 {
		return strings.Repeat(".", width)
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// openHistory opens the database only if it already exists, so a missing
// history file is not created by a read-only command.
func openHistory(ctx context.Context, path string) (*database.Database, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return database.New(ctx, path)
}

func runUpcoming(ctx context.Context, w io.Writer, opts options, width int) error {
	state, err := loadState(ctx, opts.episodes, opts.bumpers)
	if err != nil {
		return err
	}

	if db, dbErr := openHistory(ctx, opts.dbPath); dbErr == nil {
		defer db.Close()
		if cursor, ok, loadErr := db.LoadCursor(ctx); loadErr == nil && ok {
			state.ApplyCursor(cursor)
		}
	}

	writeUpcoming(w, state, opts.count, width)
	return nil
}

func loadState(ctx context.Context, episodesPath, bumpersPath string) (rotation.State, error) {
	episodes, err := playlist.Open(episodesPath)
	if err != nil {
		return rotation.State{}, err
	}
	bumpers, err := playlist.Open(bumpersPath)
	if err != nil {
		return rotation.State{}, err
	}

	var state rotation.State
	if state.Episodes, err = episodes.Items(ctx); err != nil {
		return rotation.State{}, err
	}
	if state.Bumpers, err = bumpers.Items(ctx); err != nil {
		return rotation.State{}, err
	}
	return state, nil
}

func writeUpcoming(w io.Writer, state rotation.State, n, width int) {
	if len(state.Episodes) == 0 {
		fmt.Fprintln(w, "No episodes queued.")
		return
	}
	if len(state.Bumpers) == 0 {
		fmt.Fprintln(w, "No bumpers found.")
		return
	}

	fmt.Fprintf(w, "Episode %d of %d\n\n", state.EpisodeIndex+1, len(state.Episodes))
	for i, airing := range state.Upcoming(n) {
		line := fmt.Sprintf("%3d  %-7s  %s", i+1, airing.Kind, airing.Item.Title)
		fmt.Fprintln(w, truncate(line, width))
	}
}

type historyReader interface {
	RecentAirings(ctx context.Context, limit int) ([]database.Airing, error)
}

func runHistory(ctx context.Context, w io.Writer, opts options, width int) error {
	db, err := openHistory(ctx, opts.dbPath)
	if err != nil {
		return fmt.Errorf("history database unavailable: %w", err)
	}
	defer db.Close()

	return writeHistory(ctx, w, db, opts.count, width)
}

func writeHistory(ctx context.Context, w io.Writer, store historyReader, n, width int) error {
	airings, err := store.RecentAirings(ctx, n)
	if err != nil {
		return err
	}
	if len(airings) == 0 {
		fmt.Fprintln(w, "Nothing has aired yet.")
		return nil
	}

	for _, a := range airings {
		status := a.Duration().Round(time.Second).String()
		if a.Error != "" {
			status = "failed"
		}
		line := fmt.Sprintf("%s  %-7s  %8s  %s", a.StartedAt.Local().Format("2006-01-02 15:04"), a.Kind, status, a.Title)
		fmt.Fprintln(w, truncate(line, width))
	}
	return nil
}
