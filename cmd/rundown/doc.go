// Command rundown prints what the stream will play next and what it has
// played recently.
//
// Usage:
//
//	rundown <command> [flags]
//
// Commands:
//
//	upcoming  List the next bumpers and episodes in play order, starting
//	          from the saved rotation position when the history database
//	          has one.
//
//	history   List the most recent airings from the history database.
//
// Flags:
//
//	-episodes  Episode folder or playlist (default from STREAMBUDDY_EPISODES)
//	-bumpers   Bumper folder, playlist or file (default from STREAMBUDDY_BUMPERS)
//	-db        History database (default from STREAMBUDDY_DATABASE_PATH)
//	-n         Number of entries to show
//
// Output is truncated to the terminal width when stdout is a terminal.
package main
