// Command fintrack is the terminal front-end for the expense ledger. It runs
// in local mode against JSON files under the data directory, or in remote
// mode against the backend when API_BASE_URL is set.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/alert"
	"fintrack/internal/apiclient"
	"fintrack/internal/category"
	"fintrack/internal/config"
	"fintrack/internal/gateway"
	"fintrack/internal/ledger"
	"fintrack/internal/localstore"
	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/report"
	"fintrack/internal/session"
)

const usage = `Usage: fintrack <command> [flags]

Commands:
  add      Record a new expense
  list     List recorded expenses
  update   Replace an existing expense
  delete   Delete an expense by ID
  budget   Manage monthly budget limits (set | unset | list)
  stats    Show spending summary, trend, and budget alerts

Run 'fintrack <command> -h' for command flags.`

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 1 {
		fmt.Println(usage)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	store, err := localstore.New(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open data directory: %w", err)
	}
	l, err := ledger.Open(store)
	if err != nil {
		return fmt.Errorf("failed to open ledger: %w", err)
	}

	sess := session.NewStatic(cfg.APIToken, "")
	var remote *apiclient.Client
	if cfg.APIBaseURL != "" {
		remote = apiclient.New(cfg.APIBaseURL, sess, cfg.RequestTimeout)
	}
	gw := gateway.New(l, remote, sess)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	// Remote mode works off the backend's snapshot, not the local cache.
	if gw.RemoteMode() {
		if err := gw.Refresh(ctx); err != nil {
			return err
		}
	}

	switch args[0] {
	case "add":
		return runAdd(ctx, gw, args[1:])
	case "list":
		return runList(l, args[1:])
	case "update":
		return runUpdate(ctx, gw, l, args[1:])
	case "delete":
		return runDelete(ctx, gw, args[1:])
	case "budget":
		return runBudget(ctx, gw, l, args[1:])
	case "stats":
		return runStats(l, args[1:])
	case "help", "-h", "--help":
		fmt.Println(usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n\n%s", args[0], usage)
	}
}

func runAdd(ctx context.Context, gw *gateway.Gateway, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	amountStr := fs.String("amount", "", "expense amount, e.g. 45.50")
	catStr := fs.String("category", string(category.Other), "expense category")
	dateStr := fs.String("date", time.Now().Format(models.DateLayout), "expense date (YYYY-MM-DD)")
	note := fs.String("note", "", "optional note")
	if err := fs.Parse(args); err != nil {
		return err
	}

	amount, err := decimal.NewFromString(*amountStr)
	if err != nil {
		return fmt.Errorf("invalid amount %q", *amountStr)
	}
	date, err := models.ParseDate(*dateStr)
	if err != nil {
		return err
	}

	created, err := gw.AddExpense(ctx, gateway.Draft{
		Amount:   amount,
		Category: category.Category(*catStr),
		Date:     date,
		Note:     *note,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Recorded %s for %s on %s (id %s)\n", created.Amount, created.Category, created.Date, created.ID)
	return nil
}

func runList(l *ledger.Ledger, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	catStr := fs.String("category", "", "only show this category")
	if err := fs.Parse(args); err != nil {
		return err
	}

	expenses := l.Expenses()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tCATEGORY\tAMOUNT\tNOTE")
	for _, e := range expenses {
		if *catStr != "" && e.Category != category.Category(*catStr) {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.Date, e.Category, e.Amount, e.Note)
	}
	return w.Flush()
}

func runUpdate(ctx context.Context, gw *gateway.Gateway, l *ledger.Ledger, args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	id := fs.String("id", "", "expense ID to update")
	amountStr := fs.String("amount", "", "new amount")
	catStr := fs.String("category", "", "new category")
	dateStr := fs.String("date", "", "new date (YYYY-MM-DD)")
	note := fs.String("note", "", "new note")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("update requires -id")
	}

	var current *models.Expense
	for _, e := range l.Expenses() {
		if e.ID == *id {
			current = &e
			break
		}
	}
	if current == nil {
		return fmt.Errorf("no expense with id %s", *id)
	}

	// An update replaces the record wholesale; unset flags keep the old value.
	next := *current
	if *amountStr != "" {
		amount, err := decimal.NewFromString(*amountStr)
		if err != nil {
			return fmt.Errorf("invalid amount %q", *amountStr)
		}
		next.Amount = amount
	}
	if *catStr != "" {
		next.Category = category.Category(*catStr)
	}
	if *dateStr != "" {
		date, err := models.ParseDate(*dateStr)
		if err != nil {
			return err
		}
		next.Date = date
	}
	if *note != "" {
		next.Note = *note
	}

	updated, err := gw.UpdateExpense(ctx, next)
	if err != nil {
		return err
	}
	fmt.Printf("Updated %s: %s for %s on %s\n", updated.ID, updated.Amount, updated.Category, updated.Date)
	return nil
}

func runDelete(ctx context.Context, gw *gateway.Gateway, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.String("id", "", "expense ID to delete")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("delete requires -id")
	}

	if !*yes && !confirm(fmt.Sprintf("Delete expense %s?", *id)) {
		fmt.Println("Aborted")
		return nil
	}

	if err := gw.DeleteExpense(ctx, *id); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", *id)
	return nil
}

func runBudget(ctx context.Context, gw *gateway.Gateway, l *ledger.Ledger, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: fintrack budget <set|unset|list>")
	}

	switch args[0] {
	case "set":
		fs := flag.NewFlagSet("budget set", flag.ExitOnError)
		catStr := fs.String("category", "", "category to cap")
		amountStr := fs.String("amount", "", "monthly limit")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		limit, err := decimal.NewFromString(*amountStr)
		if err != nil {
			return fmt.Errorf("invalid amount %q", *amountStr)
		}
		if err := gw.SetBudgetLimit(ctx, category.Category(*catStr), limit); err != nil {
			return err
		}
		fmt.Printf("Budget for %s set to %s\n", *catStr, limit)
		return nil
	case "unset":
		fs := flag.NewFlagSet("budget unset", flag.ExitOnError)
		catStr := fs.String("category", "", "category to uncap")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if err := gw.RemoveBudgetLimit(ctx, category.Category(*catStr)); err != nil {
			return err
		}
		fmt.Printf("Budget for %s removed\n", *catStr)
		return nil
	case "list":
		budgets := l.Budgets()
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CATEGORY\tMONTHLY LIMIT")
		for _, cat := range category.All() {
			if limit, ok := budgets[cat]; ok {
				fmt.Fprintf(w, "%s\t%s\n", cat, limit)
			}
		}
		return w.Flush()
	default:
		return fmt.Errorf("unknown budget command %q: want set, unset, or list", args[0])
	}
}

func runStats(l *ledger.Ledger, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	now := time.Now()
	expenses := l.Expenses()
	summary := report.Summarize(expenses, now)
	rows := report.BudgetComparison(expenses, l.Budgets(), now)
	alerts := alert.Evaluate(rows)

	fmt.Printf("This week:  %s\n", summary.WeekTotal)
	fmt.Printf("This month: %s\n", summary.MonthTotal)
	fmt.Printf("This year:  %s (%d expenses)\n\n", summary.YearTotal, summary.ExpenseCount)

	fmt.Println("Monthly trend:")
	for _, p := range report.MonthlyTrend(expenses, now) {
		fmt.Printf("  %s %d: %s\n", p.Label, p.Year, p.Total)
	}

	fmt.Println("\nBudgets (this month):")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  CATEGORY\tLIMIT\tSPENT")
	for _, row := range rows {
		limit := "-"
		if row.Limit.IsPositive() {
			limit = row.Limit.String()
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", row.Category, limit, row.Actual)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(alerts) > 0 {
		fmt.Println("\nAlerts:")
		for _, a := range alerts {
			fmt.Printf("  [%s] %s at %.0f%% of budget (%s of %s)\n", strings.ToUpper(string(a.Level)), a.Category, a.Percentage, a.Spent, a.Limit)
		}
	}
	return nil
}

// confirm prompts on stdin and returns true only for an explicit yes.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
