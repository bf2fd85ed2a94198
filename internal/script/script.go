// Package script runs line-oriented allocator command scripts. It backs
// the `memctl run` subcommand and makes batch scenarios reproducible: a
// script is just the sequence of operations a user would have issued
// interactively.
//
// Grammar, one command per line:
//
//	init TOTAL
//	alloc SIZE [first|best|worst]
//	free ID...
//	strategy first|best|worst
//	show
//	frag
//
// Blank lines and lines starting with '#' are ignored. The runner stops at
// the first failing command and reports it with its line number.
package script

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/memkit/memkit/mem/alloc"
)

// Runner executes commands against a single arena. The default placement
// strategy is best-fit until a `strategy` command changes it.
type Runner struct {
	out   io.Writer
	arena *alloc.Arena
	strat alloc.Strategy
	p     *message.Printer
}

func NewRunner(out io.Writer) *Runner {
	return &Runner{
		out:   out,
		strat: alloc.BestFit,
		p:     message.NewPrinter(language.English),
	}
}

// Run executes every command in the input.
func (r *Runner) Run(in io.Reader) error {
	sc := bufio.NewScanner(in)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := r.Exec(line); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	return sc.Err()
}

// Exec executes a single command line.
func (r *Runner) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return fmt.Errorf("empty command")
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "init":
		return r.cmdInit(args)
	case "alloc":
		return r.cmdAlloc(args)
	case "free":
		return r.cmdFree(args)
	case "strategy":
		return r.cmdStrategy(args)
	case "show":
		if err := r.need(); err != nil {
			return err
		}
		r.printLayout()
		return nil
	case "frag":
		if err := r.need(); err != nil {
			return err
		}
		r.p.Fprintf(r.out, "fragmentation: %d\n", r.arena.Fragmentation())
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (r *Runner) cmdInit(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("init wants exactly one argument, got %d", len(args))
	}
	total, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("init: bad total %q", args[0])
	}
	a, err := alloc.New(total)
	if err != nil {
		return err
	}
	r.arena = a
	r.p.Fprintf(r.out, "initialized %d units\n", total)
	r.printLayout()
	return nil
}

func (r *Runner) cmdAlloc(args []string) error {
	if err := r.need(); err != nil {
		return err
	}
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("alloc wants SIZE [STRATEGY], got %d arguments", len(args))
	}
	size, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("alloc: bad size %q", args[0])
	}
	strat := r.strat
	if len(args) == 2 {
		if strat, err = alloc.ParseStrategy(args[1]); err != nil {
			return err
		}
	}
	id, err := r.arena.Alloc(size, strat)
	if err != nil {
		return err
	}
	r.p.Fprintf(r.out, "allocated %d units in block %d (%s-fit)\n", size, id, strat)
	r.printLayout()
	return nil
}

func (r *Runner) cmdFree(args []string) error {
	if err := r.need(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("free wants at least one block id")
	}
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("free: bad block id %q", arg)
		}
		if err := r.arena.Free(id); err != nil {
			return err
		}
		r.p.Fprintf(r.out, "freed block %d\n", id)
	}
	r.printLayout()
	return nil
}

func (r *Runner) cmdStrategy(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("strategy wants exactly one argument")
	}
	strat, err := alloc.ParseStrategy(args[0])
	if err != nil {
		return err
	}
	r.strat = strat
	fmt.Fprintf(r.out, "strategy set to %s-fit\n", strat)
	return nil
}

func (r *Runner) need() error {
	if r.arena == nil {
		return fmt.Errorf("no arena: run `init TOTAL` first")
	}
	return nil
}

// printLayout writes the address-ordered block table, the way the
// interactive tool displays memory after every operation.
func (r *Runner) printLayout() {
	snap := r.arena.Snapshot()
	var allocated int
	fmt.Fprintln(r.out, "--- memory layout ---")
	for _, b := range snap.Blocks {
		status := "allocated"
		if b.Free {
			status = "free"
		} else {
			allocated += b.Size
		}
		r.p.Fprintf(r.out, "  id %-4d | %-9s | size %-8d | addr %d -> %d\n",
			b.ID, status, b.Size, b.Start, b.End()-1)
	}
	r.p.Fprintf(r.out, "allocated: %d\n", allocated)
	r.p.Fprintf(r.out, "free:      %d\n", r.arena.FreeBytes())
	r.p.Fprintf(r.out, "fragmentation: %d\n", r.arena.Fragmentation())
	fmt.Fprintln(r.out, "---------------------")
}
