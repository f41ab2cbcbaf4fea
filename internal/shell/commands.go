package shell

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/peterbourgon/ff/v4"
	"github.com/shopspring/decimal"

	"github.com/zombor/printshop-pos/internal/pricing"
	"github.com/zombor/printshop-pos/internal/receipt"
)

var errUsage = errors.New("wrong number of arguments")

type job struct {
	service   pricing.Category
	pages     int
	colored   *bool
	hasImages *bool
}

// jobFlags registers the flags shared by add and preview
func jobFlags(name string) (*ff.FlagSet, *job) {
	fs := ff.NewFlagSet(name)
	j := &job{
		colored:   fs.BoolLong("colored", "pages are printed in color"),
		hasImages: fs.BoolLong("images", "pages contain images"),
	}
	return fs, j
}

func (j *job) parse(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: want CATEGORY PAGES", errUsage)
	}
	c, err := pricing.ParseCategory(args[0])
	if err != nil {
		return err
	}
	pages, err := strconv.Atoi(args[1])
	if err != nil || pages < 1 || pages > maxPages {
		return fmt.Errorf("invalid page count %q: must be between 1 and %d", args[1], maxPages)
	}
	j.service = c
	j.pages = pages
	return nil
}

func (s *Shell) addCommand() *ff.Command {
	fs, j := jobFlags("add")
	return &ff.Command{
		Name:      "add",
		Usage:     "add [--colored] [--images] CATEGORY PAGES",
		ShortHelp: "add a transaction to the current receipt",
		Flags:     fs,
		Exec: func(ctx context.Context, args []string) error {
			if err := j.parse(args); err != nil {
				return err
			}
			t := s.service.AddTransaction(j.service, j.pages, *j.colored, *j.hasImages)
			fmt.Fprintf(s.out, "Added: %s\n", t.Describe())
			fmt.Fprintf(s.out, "Total: %s\n", pricing.FormatCurrency(s.service.CurrentTotal()))
			return nil
		},
	}
}

func (s *Shell) previewCommand() *ff.Command {
	fs, j := jobFlags("preview")
	return &ff.Command{
		Name:      "preview",
		Usage:     "preview [--colored] [--images] CATEGORY PAGES",
		ShortHelp: "show the cost of a transaction without adding it",
		Flags:     fs,
		Exec: func(ctx context.Context, args []string) error {
			if err := j.parse(args); err != nil {
				return err
			}
			p := s.service.Preview(j.service, j.pages, *j.colored, *j.hasImages)
			for _, line := range p.Lines() {
				fmt.Fprintln(s.out, line)
			}
			return nil
		},
	}
}

func (s *Shell) removeCommand() *ff.Command {
	return &ff.Command{
		Name:      "remove",
		Usage:     "remove NUMBER",
		ShortHelp: "remove a transaction by its number in the list",
		Flags:     ff.NewFlagSet("remove"),
		Exec: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("%w: want NUMBER", errUsage)
			}
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid transaction number %q", args[0])
			}
			if !s.service.RemoveTransaction(n - 1) {
				return fmt.Errorf("no transaction #%d", n)
			}
			fmt.Fprintf(s.out, "Removed transaction #%d\n", n)
			fmt.Fprintf(s.out, "Total: %s\n", pricing.FormatCurrency(s.service.CurrentTotal()))
			return nil
		},
	}
}

func (s *Shell) listCommand() *ff.Command {
	return &ff.Command{
		Name:      "list",
		ShortHelp: "list the transactions on the current receipt",
		Flags:     ff.NewFlagSet("list"),
		Exec: func(ctx context.Context, args []string) error {
			transactions := s.service.Transactions()
			if len(transactions) == 0 {
				fmt.Fprintln(s.out, "No transactions.")
				return nil
			}
			for i, t := range transactions {
				fmt.Fprintf(s.out, "%d. %s\n", i+1, t.Describe())
			}
			fmt.Fprintf(s.out, "Total: %s\n", pricing.FormatCurrency(s.service.CurrentTotal()))
			return nil
		},
	}
}

func (s *Shell) totalCommand() *ff.Command {
	return &ff.Command{
		Name:      "total",
		ShortHelp: "show the current total",
		Flags:     ff.NewFlagSet("total"),
		Exec: func(ctx context.Context, args []string) error {
			fmt.Fprintf(s.out, "Total: %s\n", pricing.FormatCurrency(s.service.CurrentTotal()))
			return nil
		},
	}
}

func (s *Shell) clearCommand() *ff.Command {
	return &ff.Command{
		Name:      "clear",
		ShortHelp: "discard every transaction on the current receipt",
		Flags:     ff.NewFlagSet("clear"),
		Exec: func(ctx context.Context, args []string) error {
			n := len(s.service.Transactions())
			s.service.ClearCurrentReceipt()
			fmt.Fprintf(s.out, "Cleared %d transactions.\n", n)
			return nil
		},
	}
}

func (s *Shell) generateCommand() *ff.Command {
	return &ff.Command{
		Name:      "generate",
		ShortHelp: "save the current receipt and start a new one",
		Flags:     ff.NewFlagSet("generate"),
		Exec: func(ctx context.Context, args []string) error {
			total := s.service.CurrentTotal()
			path, err := s.service.GenerateReceipt()
			if errors.Is(err, receipt.ErrEmptyReceipt) {
				return errors.New("please add at least one transaction before generating a receipt")
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(s.out, "Receipt saved: %s\n", path)
			fmt.Fprintf(s.out, "Total: %s\n", pricing.FormatCurrency(total))
			return nil
		},
	}
}

func (s *Shell) pricesCommand() *ff.Command {
	return &ff.Command{
		Name:      "prices",
		ShortHelp: "show the rates of every service",
		Flags:     ff.NewFlagSet("prices"),
		Exec: func(ctx context.Context, args []string) error {
			fmt.Fprintln(s.out, s.service.PricingSummary())
			return nil
		},
	}
}

// parsePrice reads a rate and applies the range operators may enter
func parsePrice(name, raw string, allowZero bool) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s price %q", name, raw)
	}
	if allowZero && d.IsZero() {
		return d, nil
	}
	if !pricing.ValidPrice(d) {
		return decimal.Zero, fmt.Errorf("%s price %s is out of range", name, pricing.FormatCurrency(d))
	}
	return d, nil
}

func (s *Shell) priceCommand() *ff.Command {
	return &ff.Command{
		Name:      "price",
		Usage:     "price CATEGORY MONOCHROME COLORED IMAGE_SURCHARGE",
		ShortHelp: "update and save the rates of a service",
		Flags:     ff.NewFlagSet("price"),
		Exec: func(ctx context.Context, args []string) error {
			if len(args) != 4 {
				return fmt.Errorf("%w: want CATEGORY MONOCHROME COLORED IMAGE_SURCHARGE", errUsage)
			}
			c, err := pricing.ParseCategory(args[0])
			if err != nil {
				return err
			}
			mono, err := parsePrice("monochrome", args[1], false)
			if err != nil {
				return err
			}
			colored, err := parsePrice("colored", args[2], false)
			if err != nil {
				return err
			}
			surcharge, err := parsePrice("image", args[3], true)
			if err != nil {
				return err
			}

			if err := s.service.UpdatePricing(c, mono, colored, surcharge); err != nil {
				return err
			}
			s.service.RecalculateCurrentTransactions()
			fmt.Fprintf(s.out, "Pricing updated for %s\n", c)
			fmt.Fprintf(s.out, "Total: %s\n", pricing.FormatCurrency(s.service.CurrentTotal()))
			return nil
		},
	}
}

func (s *Shell) resetPricesCommand() *ff.Command {
	return &ff.Command{
		Name:      "reset-prices",
		ShortHelp: "restore and save the default rates",
		Flags:     ff.NewFlagSet("reset-prices"),
		Exec: func(ctx context.Context, args []string) error {
			if err := s.service.ResetPricing(); err != nil {
				return err
			}
			s.service.RecalculateCurrentTransactions()
			fmt.Fprintln(s.out, "Prices reset to defaults.")
			fmt.Fprintln(s.out, s.service.PricingSummary())
			return nil
		},
	}
}

func (s *Shell) backupCommand() *ff.Command {
	return &ff.Command{
		Name:      "backup",
		ShortHelp: "copy the price config file aside",
		Flags:     ff.NewFlagSet("backup"),
		Exec: func(ctx context.Context, args []string) error {
			path, err := s.service.BackupPricing()
			if err != nil {
				return err
			}
			if path == "" {
				fmt.Fprintln(s.out, "No price config to back up.")
				return nil
			}
			fmt.Fprintf(s.out, "Price config backed up to %s\n", path)
			return nil
		},
	}
}

func (s *Shell) receiptsCommand() *ff.Command {
	return &ff.Command{
		Name:      "receipts",
		ShortHelp: "list saved receipt files, most recent first",
		Flags:     ff.NewFlagSet("receipts"),
		Exec: func(ctx context.Context, args []string) error {
			paths, err := s.service.ListReceiptFiles()
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				fmt.Fprintln(s.out, "No receipts found.")
				return nil
			}
			for _, p := range paths {
				fmt.Fprintln(s.out, filepath.Base(p))
			}
			return nil
		},
	}
}

func (s *Shell) showCommand() *ff.Command {
	return &ff.Command{
		Name:      "show",
		Usage:     "show FILE",
		ShortHelp: "print a saved receipt",
		Flags:     ff.NewFlagSet("show"),
		Exec: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("%w: want FILE", errUsage)
			}
			data, err := s.service.ReadReceiptFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(s.out, string(data))
			return nil
		},
	}
}

func (s *Shell) historyCommand() *ff.Command {
	return &ff.Command{
		Name:      "history",
		ShortHelp: "list receipts generated in this session",
		Flags:     ff.NewFlagSet("history"),
		Exec: func(ctx context.Context, args []string) error {
			history := s.service.History()
			if len(history) == 0 {
				fmt.Fprintln(s.out, "No receipts generated yet.")
				return nil
			}
			for i, r := range history {
				fmt.Fprintf(s.out, "%d. %s - %d transactions - %s\n",
					i+1, r.Filename(), r.Len(), pricing.FormatCurrency(r.Total()))
			}
			return nil
		},
	}
}

func (s *Shell) summaryCommand() *ff.Command {
	fs := ff.NewFlagSet("summary")
	export := fs.BoolLong("export", "also write the summary to the receipts directory")
	return &ff.Command{
		Name:      "summary",
		Usage:     "summary [--export] [YYYY-MM-DD]",
		ShortHelp: "summarize the receipts generated on a day (default today)",
		Flags:     fs,
		Exec: func(ctx context.Context, args []string) error {
			now := s.now()
			day := now
			switch len(args) {
			case 0:
			case 1:
				d, err := time.ParseInLocation("2006-01-02", args[0], now.Location())
				if err != nil {
					return fmt.Errorf("invalid date %q: want YYYY-MM-DD", args[0])
				}
				day = d
			default:
				return fmt.Errorf("%w: want [YYYY-MM-DD]", errUsage)
			}

			fmt.Fprint(s.out, s.service.DailySummary(day).Text(now))
			if *export {
				path, err := s.service.ExportDailySummary(day)
				if err != nil {
					return err
				}
				fmt.Fprintf(s.out, "Summary saved: %s\n", path)
			}
			return nil
		},
	}
}
