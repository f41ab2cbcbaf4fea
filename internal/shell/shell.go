package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/zombor/printshop-pos/internal/receipt"
)

// maxPages bounds the page count an operator may enter for one transaction
const maxPages = 1000

// Shell reads operator commands line by line and runs them against a Service
type Shell struct {
	service *receipt.Service
	out     io.Writer
	now     func() time.Time

	// Prompt is written before each line is read, if set
	Prompt string
}

// New creates a new Shell writing to out
func New(service *receipt.Service, out io.Writer) *Shell {
	return NewWithClock(service, out, time.Now)
}

// NewWithClock creates a new Shell with a custom clock for testing
func NewWithClock(service *receipt.Service, out io.Writer, now func() time.Time) *Shell {
	return &Shell{
		service: service,
		out:     out,
		now:     now,
	}
}

// Run executes commands from in until it is exhausted or a quit command is read.
// Command errors are reported to the output and do not stop the loop.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		if s.Prompt != "" {
			fmt.Fprint(s.out, s.Prompt)
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			return nil
		}

		quit, err := s.Execute(ctx, scanner.Text())
		if err != nil {
			slog.Debug("Command failed", "line", scanner.Text(), "error", err)
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// Execute runs a single command line and reports whether the shell should stop
func (s *Shell) Execute(ctx context.Context, line string) (bool, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return false, nil
	}

	var quit bool
	root := s.commands(&quit)
	err := root.ParseAndRun(ctx, args)
	if errors.Is(err, ff.ErrHelp) {
		selected := root.GetSelected()
		if selected == nil {
			selected = root
		}
		fmt.Fprintf(s.out, "%s\n", ffhelp.Command(selected))
		return false, nil
	}
	return quit, err
}

// commands builds a fresh command tree; flag values do not carry over between lines
func (s *Shell) commands(quit *bool) *ff.Command {
	root := &ff.Command{
		Name:      "pos",
		Usage:     "COMMAND [FLAGS] [ARGS...]",
		ShortHelp: "print shop point of sale",
		Flags:     ff.NewFlagSet("pos"),
		Exec: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return errors.New("no command given (try help)")
			}
			return fmt.Errorf("unknown command %q (try help)", args[0])
		},
	}

	quitCmd := func(name string) *ff.Command {
		return &ff.Command{
			Name:      name,
			ShortHelp: "leave the shell",
			Flags:     ff.NewFlagSet(name),
			Exec: func(ctx context.Context, args []string) error {
				*quit = true
				return nil
			},
		}
	}

	root.Subcommands = []*ff.Command{
		s.addCommand(),
		s.previewCommand(),
		s.removeCommand(),
		s.listCommand(),
		s.totalCommand(),
		s.clearCommand(),
		s.generateCommand(),
		s.pricesCommand(),
		s.priceCommand(),
		s.resetPricesCommand(),
		s.backupCommand(),
		s.receiptsCommand(),
		s.showCommand(),
		s.historyCommand(),
		s.summaryCommand(),
		{
			Name:      "help",
			ShortHelp: "show available commands",
			Flags:     ff.NewFlagSet("help"),
			Exec: func(ctx context.Context, args []string) error {
				// root is already parsed down to help here
				fmt.Fprintf(s.out, "%s\n", ffhelp.Command(s.commands(new(bool))))
				return nil
			},
		},
		quitCmd("quit"),
		quitCmd("exit"),
	}
	return root
}
