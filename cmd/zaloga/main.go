package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/erazemk/zaloga/internal/service"
	"github.com/erazemk/zaloga/internal/store"
)

const usage = `Usage: zaloga <command> [flags] [args]

Commands:
  init                         create the database files and schema
  events [-name s] [-from d] [-to d]
                               list events, optionally filtered
  items                        list items with last-used info
  history <item-id>            list an item's quantity changes
  adjust [-event id] <item-id> <delta>
                               adjust an item's quantity (records a transaction)
  summary                      show aggregate totals
  logs [-n N]                  show recent activity-log entries
  actor [name]                 show or set the actor recorded in the log

Common flags (before positional arguments):
  -db <path>      inventory database (default: zaloga.sqlite3)
  -logdb <path>   activity-log database (default: zaloga-logs.sqlite3)
`

// actorKey is the settings key holding the default actor name for
// activity-log entries written by this tool.
const actorKey = "actor"

const timeFormat = "2006-01-02 15:04"

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "init":
		cmdInit(args)
	case "events":
		cmdEvents(args)
	case "items":
		cmdItems(args)
	case "history":
		cmdHistory(args)
	case "adjust":
		cmdAdjust(args)
	case "summary":
		cmdSummary(args)
	case "logs":
		cmdLogs(args)
	case "actor":
		cmdActor(args)
	case "-h", "-help", "help":
		fmt.Fprint(os.Stdout, usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n%s", cmd, usage)
		os.Exit(1)
	}
}

// newFlagSet creates a flag set carrying the common database path flags.
func newFlagSet(name string) (*flag.FlagSet, *string, *string) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	dbPath := fs.String("db", "zaloga.sqlite3", "inventory database path")
	logPath := fs.String("logdb", "zaloga-logs.sqlite3", "activity-log database path")
	return fs, dbPath, logPath
}

// openService opens both databases, creating them on first use.
func openService(dbPath, logPath string) *service.Service {
	svc, err := service.Open(dbPath, logPath)
	if err != nil {
		slog.Error("failed to open databases", "error", err)
		os.Exit(1)
	}
	return svc
}

func cmdInit(args []string) {
	fs, dbPath, logPath := newFlagSet("init")
	fs.Parse(args)

	svc := openService(*dbPath, *logPath)
	defer svc.Close()

	fmt.Printf("Inventory database ready: %s\n", *dbPath)
	fmt.Printf("Activity-log database ready: %s\n", *logPath)
}

func cmdEvents(args []string) {
	fs, dbPath, logPath := newFlagSet("events")
	name := fs.String("name", "", "substring of the event name")
	from := fs.String("from", "", "events starting on or after this date")
	to := fs.String("to", "", "events ending on or before this date")
	fs.Parse(args)

	svc := openService(*dbPath, *logPath)
	defer svc.Close()

	ctx := context.Background()
	filter := store.EventFilter{NameContains: *name, StartsOnOrAfter: *from, EndsOnOrBefore: *to}

	events, err := svc.SearchEvents(ctx, filter)
	if err != nil {
		slog.Error("failed to list events", "error", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tLOCATION\tSTART\tEND\tMODIFIED")
	for _, e := range events {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Name, dash(e.Location), dash(e.StartDate), dash(e.EndDate),
			e.LastModified.Format(timeFormat))
	}
	w.Flush()
}

func cmdItems(args []string) {
	fs, dbPath, logPath := newFlagSet("items")
	fs.Parse(args)

	svc := openService(*dbPath, *logPath)
	defer svc.Close()

	summaries, err := svc.ListItemSummaries(context.Background())
	if err != nil {
		slog.Error("failed to list items", "error", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tQTY\tLAST EVENT\tLAST USED")
	for _, s := range summaries {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n",
			s.ID, s.Name, s.Quantity, dash(s.LastEventName), s.LastUsedAt.Format(timeFormat))
	}
	w.Flush()
}

func cmdHistory(args []string) {
	fs, dbPath, logPath := newFlagSet("history")
	fs.Parse(args)

	itemID := parseID(fs, "history <item-id>")

	svc := openService(*dbPath, *logPath)
	defer svc.Close()

	transactions, err := svc.ListTransactions(context.Background(), itemID)
	if err != nil {
		slog.Error("failed to list transactions", "error", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDELTA\tWHEN\tEVENT")
	for _, t := range transactions {
		fmt.Fprintf(w, "%d\t%+d\t%s\t%s\n",
			t.ID, t.Delta, t.Timestamp.Format(timeFormat), dash(t.EventName))
	}
	w.Flush()
}

func cmdAdjust(args []string) {
	fs, dbPath, logPath := newFlagSet("adjust")
	eventID := fs.Int64("event", 0, "event the change happened at")
	fs.Parse(args)

	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: zaloga adjust [-event id] <item-id> <delta>")
		os.Exit(1)
	}
	itemID, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid item id: %s\n", fs.Arg(0))
		os.Exit(1)
	}
	delta, err := strconv.Atoi(fs.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid delta: %s\n", fs.Arg(1))
		os.Exit(1)
	}

	svc := openService(*dbPath, *logPath)
	defer svc.Close()

	ctx := context.Background()
	var event *int64
	if *eventID != 0 {
		event = eventID
	}

	quantity, err := svc.AdjustQuantity(ctx, itemID, delta, event)
	if err != nil {
		slog.Error("failed to adjust quantity", "item", itemID, "error", err)
		os.Exit(1)
	}

	// The frontend records the action after a successful mutation.
	actor, err := svc.Setting(ctx, actorKey)
	if err != nil {
		slog.Error("failed to read actor setting", "error", err)
		os.Exit(1)
	}
	if actor == "" {
		actor = "cli"
	}
	details := fmt.Sprintf("item=%d delta=%+d", itemID, delta)
	if _, err := svc.LogAction(ctx, actor, "adjust_quantity", details); err != nil {
		slog.Error("failed to write activity log", "error", err)
		os.Exit(1)
	}

	fmt.Printf("New quantity: %d\n", quantity)
}

func cmdSummary(args []string) {
	fs, dbPath, logPath := newFlagSet("summary")
	fs.Parse(args)

	svc := openService(*dbPath, *logPath)
	defer svc.Close()

	s, err := svc.Summary(context.Background())
	if err != nil {
		slog.Error("failed to load summary", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Total events: %d\n", s.TotalEvents)
	fmt.Printf("Total item types: %d\n", s.TotalItems)
	fmt.Printf("Total quantity: %d\n", s.TotalQuantity)
	if s.MostStocked != nil {
		fmt.Printf("Most stocked: %s (%d)\n", s.MostStocked.Name, s.MostStocked.Quantity)
	}
	if s.LeastStocked != nil {
		fmt.Printf("Least stocked: %s (%d)\n", s.LeastStocked.Name, s.LeastStocked.Quantity)
	}
	if s.LastModified != nil {
		fmt.Printf("Last modification: %s\n", s.LastModified.Format(timeFormat))
	}
}

func cmdLogs(args []string) {
	fs, dbPath, logPath := newFlagSet("logs")
	limit := fs.Int("n", store.DefaultLogLimit, "maximum number of entries")
	fs.Parse(args)

	svc := openService(*dbPath, *logPath)
	defer svc.Close()

	entries, err := svc.RecentLogs(context.Background(), *limit)
	if err != nil {
		slog.Error("failed to list logs", "error", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tACTOR\tACTION\tDETAILS")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			e.ID, e.Timestamp.Format(timeFormat), e.Actor, e.Action, dash(e.Details))
	}
	w.Flush()
}

func cmdActor(args []string) {
	fs, dbPath, logPath := newFlagSet("actor")
	fs.Parse(args)

	svc := openService(*dbPath, *logPath)
	defer svc.Close()

	ctx := context.Background()
	switch fs.NArg() {
	case 0:
		actor, err := svc.Setting(ctx, actorKey)
		if err != nil {
			slog.Error("failed to read actor setting", "error", err)
			os.Exit(1)
		}
		if actor == "" {
			actor = "cli"
		}
		fmt.Println(actor)
	case 1:
		if err := svc.SetSetting(ctx, actorKey, fs.Arg(0)); err != nil {
			slog.Error("failed to store actor setting", "error", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "usage: zaloga actor [name]")
		os.Exit(1)
	}
}

// parseID reads the single positional id argument of a subcommand.
func parseID(fs *flag.FlagSet, usage string) int64 {
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: zaloga %s\n", usage)
		os.Exit(1)
	}
	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid id: %s\n", fs.Arg(0))
		os.Exit(1)
	}
	return id
}

// dash substitutes a placeholder for empty table cells.
func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
