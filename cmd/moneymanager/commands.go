package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"moneymanager/internal/core"
	"moneymanager/internal/ledger"
	"moneymanager/internal/services"
	"moneymanager/internal/summary"
)

var errUsage = errors.New("invalid usage")

type command struct {
	svc *services.LedgerService
	out io.Writer
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

func (c *command) add(ctx context.Context, args []string) error {
	fs := newFlagSet("add")
	typ := fs.String("type", "", "income or expense")
	amount := fs.String("amount", "", "positive amount")
	category := fs.String("category", "", "category label")
	desc := fs.String("desc", "", "description")
	date := fs.String("date", "", "date as YYYY-MM-DD, default today")
	if err := fs.Parse(args); err != nil {
		return usageError("add: %v", err)
	}

	txType, err := core.ParseTransactionType(*typ)
	if err != nil {
		return err
	}
	amt, err := core.ParseAmount(*amount)
	if err != nil {
		return &core.ValidationError{Field: "amount", Err: err}
	}
	d := ledger.Draft{Description: *desc, Amount: amt, Type: txType, Category: *category}
	if *date != "" {
		d.Date, err = time.ParseInLocation("2006-01-02", *date, time.Local)
		if err != nil {
			return &core.ValidationError{Field: "date", Err: err}
		}
	}

	tx, err := c.svc.AddTransaction(ctx, d)
	if tx.ID == 0 {
		return err
	}
	fmt.Fprintf(c.out, "added %d: %s %s %s (%s)\n", tx.ID, tx.Type, core.FormatAmount(tx.Amount), tx.Description, tx.Category)
	return err
}

func (c *command) remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("rm takes exactly one id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return usageError("rm: invalid id %q", args[0])
	}

	removed, err := c.svc.RemoveTransaction(ctx, id)
	if !removed {
		fmt.Fprintf(c.out, "transaction %d not found\n", id)
		return err
	}
	fmt.Fprintf(c.out, "removed %d\n", id)
	return err
}

func (c *command) applyFilter(name string, args []string) error {
	fs := newFlagSet(name)
	filter := fs.String("filter", string(core.FilterAll), "all, income or expense")
	if err := fs.Parse(args); err != nil {
		return usageError("%s: %v", name, err)
	}
	return c.svc.SetFilter(*filter)
}

func (c *command) list(ctx context.Context, args []string) error {
	if err := c.applyFilter("list", args); err != nil {
		return err
	}
	r := c.svc.Report(ctx)
	if len(r.Transactions) == 0 {
		fmt.Fprintln(c.out, "no transactions")
		return nil
	}

	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTYPE\tAMOUNT\tCATEGORY\tDESCRIPTION")
	for _, tx := range r.Transactions {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			tx.ID, tx.Date.Local().Format("2006-01-02"), tx.Type,
			signed(tx), tx.Category, tx.Description)
	}
	return tw.Flush()
}

func (c *command) summary(ctx context.Context, args []string) error {
	if err := c.applyFilter("summary", args); err != nil {
		return err
	}
	r := c.svc.Report(ctx)

	fmt.Fprintf(c.out, "Income:   %s\n", core.FormatAmount(r.Totals.Income))
	fmt.Fprintf(c.out, "Expenses: %s\n", core.FormatAmount(r.Totals.Expenses))
	fmt.Fprintf(c.out, "Balance:  %s\n", core.FormatAmount(r.Totals.Balance))
	fmt.Fprintf(c.out, "Showing %d of %d transactions (%s)\n", len(r.Transactions), r.Count, r.Filter)

	if err := writeLines(c.out, "By category", r.Categories); err != nil {
		return err
	}
	return writeLines(c.out, "By month", r.Months)
}

func (c *command) info(ctx context.Context) error {
	info, err := c.svc.StorageInfo(ctx)
	if err != nil {
		return err
	}
	if !info.Saved {
		fmt.Fprintln(c.out, "nothing saved yet")
		return nil
	}
	fmt.Fprintf(c.out, "transactions: %d\n", info.Count)
	if info.LastSaved.IsZero() {
		fmt.Fprintln(c.out, "last saved:   unknown")
	} else {
		fmt.Fprintf(c.out, "last saved:   %s\n", info.LastSaved.Local().Format(time.DateTime))
	}
	return nil
}

func writeLines(w io.Writer, title string, lines []summary.Line) error {
	fmt.Fprintf(w, "\n%s\n", title)
	if len(lines) == 0 {
		fmt.Fprintln(w, "  (none)")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, l := range lines {
		fmt.Fprintf(tw, "  %s\t+%s\t-%s\t%s\t%s%%\t\n",
			l.Label, core.FormatAmount(l.Income), core.FormatAmount(l.Expense),
			core.FormatAmount(l.Net), l.Percent.StringFixed(1))
	}
	return tw.Flush()
}

func signed(tx core.Transaction) string {
	if tx.IsIncome() {
		return "+" + core.FormatAmount(tx.Amount)
	}
	return "-" + core.FormatAmount(tx.Amount)
}
