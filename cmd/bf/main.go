// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/ezrec/bfvm/config"
	"github.com/ezrec/bfvm/emulator"
	"github.com/ezrec/bfvm/machine"
	"github.com/ezrec/bfvm/program"
)

// options are the command line settings.
type options struct {
	config   string
	input    string
	output   string
	list     bool
	settings config.Config
}

// parseArgs parses the command line. Flags override the configuration file.
func parseArgs(name string, args []string) (opts options, source string, err error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)

	var capacity int
	var boundary string
	var dispatch string
	var steps int
	var verbose bool

	flags.StringVar(&opts.config, "c", "", "configuration file (.star or .toml)")
	flags.StringVar(&opts.input, "i", "-", "Program input")
	flags.StringVar(&opts.output, "o", "-", "Program output")
	flags.BoolVar(&opts.list, "l", false, "List instructions, do not execute")
	flags.IntVar(&capacity, "t", machine.TAPE_SIZE, "Tape capacity in cells")
	flags.StringVar(&boundary, "b", machine.POLICY_WRAP.String(), "Boundary policy: wrap, saturate or strict")
	flags.StringVar(&dispatch, "d", machine.DISPATCH_SWITCH.String(), "Dispatch: switch or table")
	flags.IntVar(&steps, "n", emulator.STEP_UNLIMITED, "Step limit, 0 for unlimited")
	flags.BoolVar(&verbose, "v", false, "Verbose mode")

	err = flags.Parse(args)
	if err != nil {
		return
	}

	if flags.NArg() != 1 {
		err = fmt.Errorf("expected one program file, got %v", flags.Args())
		return
	}
	source = flags.Arg(0)

	opts.settings = config.Default()
	if len(opts.config) != 0 {
		opts.settings, err = config.Load(opts.config)
		if err != nil {
			return
		}
	}

	flags.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "t":
			opts.settings.Capacity = capacity
		case "b":
			opts.settings.Boundary, err = machine.ParsePolicy(boundary)
		case "d":
			opts.settings.Dispatch, err = machine.ParseDispatch(dispatch)
		case "n":
			opts.settings.StepLimit = steps
		case "v":
			opts.settings.Verbose = verbose
		}
	})

	return
}

// syntaxError locates a preprocessing error in the source text.
func syntaxError(source string, text []byte, err error) error {
	index, ok := program.ErrorIndex(err)
	if !ok {
		return fmt.Errorf("%v: %w", source, err)
	}

	line, col := program.Position(text, index)
	return fmt.Errorf("%v:%d:%d: %w", source, line, col, err)
}

// list writes the instruction listing of the program.
func list(out io.Writer, prog *program.Program) (err error) {
	for pc, op := range prog.Ops() {
		line, col := prog.Position(pc)
		if target, ok := prog.Jump(pc); ok {
			_, err = fmt.Fprintf(out, "%6d %4d:%-3d %v %d\n", pc, line, col, op, target)
		} else {
			_, err = fmt.Fprintf(out, "%6d %4d:%-3d %v\n", pc, line, col, op)
		}
		if err != nil {
			return
		}
	}

	return
}

// run executes the command, and returns the first error.
func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) (err error) {
	opts, source, err := parseArgs("bf", args)
	if err != nil {
		return
	}

	text, err := os.ReadFile(source)
	if err != nil {
		return
	}

	emu, err := opts.settings.NewEmulator()
	if err != nil {
		return
	}

	err = emu.Load(text)
	if err != nil {
		return syntaxError(source, text, err)
	}

	if opts.input == "-" {
		emu.Console.Input = bufio.NewReader(stdin)
	} else {
		inf, err := os.Open(opts.input)
		if err != nil {
			return err
		}
		defer inf.Close()
		emu.Console.Input = bufio.NewReader(inf)
	}

	var out io.Writer = stdout
	if opts.output != "-" {
		ouf, err := os.Create(opts.output)
		if err != nil {
			return err
		}
		defer ouf.Close()
		out = ouf
	}

	buffered := bufio.NewWriter(out)
	defer func() {
		flush_err := buffered.Flush()
		if err == nil {
			err = flush_err
		}
	}()

	if opts.list {
		return list(buffered, emu.Program)
	}

	emu.Console.Output = buffered

	err = emu.Run(ctx)
	if err != nil {
		var runtimeErr *emulator.ErrRuntime
		if errors.As(err, &runtimeErr) {
			line, col := emu.Program.Position(runtimeErr.Pc)
			err = fmt.Errorf("%v:%d:%d: %w", source, line, col, err)
		}
	}

	return
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
}
