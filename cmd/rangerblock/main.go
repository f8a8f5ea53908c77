package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"rangerblock/config"
	"rangerblock/pkg/apperror"
	"rangerblock/pkg/logger"
)

const (
	exitOK           = 0
	exitFailure      = 1
	exitInvalidInput = 2
)

// command runs one subcommand against a constructed node.
type command struct {
	name  string
	usage string
	run   func(ctx context.Context, n *node, args []string, out io.Writer) error
}

var commands = []command{
	{"identity", "identity [-new] [-username NAME]", runIdentity},
	{"integrity", "integrity", runIntegrity},
	{"sign", "sign MESSAGE", runSign},
	{"token", "token [-verify TOKEN]", runToken},
	{"wallet", "wallet", runWallet},
	{"send", "send -to ADDRESS -amount N [-coin RGD] [-memo TEXT]", runSend},
	{"mine", "mine", runMine},
	{"history", "history [-limit N]", runHistory},
	{"status", "status", runStatus},
	{"package", "package FILE [-out DIR]", runPackage},
	{"extract", "extract PACKAGE [-out DIR]", runExtract},
	{"contract", "contract create|accept|reject|complete|list ...", runContract},
	{"serve", "serve", runServe},
}

// errUsage marks bad command-line input.
var errUsage = errors.New("invalid usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("rangerblock", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", os.Getenv("RBK_CONFIG"), "path to config file")
	if err := fs.Parse(args); err != nil {
		return exitInvalidInput
	}
	if fs.NArg() == 0 {
		printUsage(stderr)
		return exitInvalidInput
	}

	cmd, ok := lookupCommand(fs.Arg(0))
	if !ok {
		printUsage(stderr)
		return exitInvalidInput
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return exitFailure
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	n, err := newNode(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to start node")
		return exitFailure
	}
	defer n.Close()

	if err := cmd.run(ctx, n, fs.Args()[1:], stdout); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(stderr, "usage: rangerblock %s\n", cmd.usage)
			return exitInvalidInput
		}
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			fmt.Fprintf(stderr, "%s: %s\n", appErr.Code, appErr.Message)
		} else {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return exitFailure
	}
	return exitOK
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: rangerblock [-config FILE] COMMAND [ARGS]")
	fmt.Fprintln(w)
	for _, c := range commands {
		fmt.Fprintf(w, "  %s\n", c.usage)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseFlags parses args allowing flags after positional arguments.
func parseFlags(fs *flag.FlagSet, args []string) ([]string, error) {
	fs.SetOutput(io.Discard)
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, fmt.Errorf("%w: %v", errUsage, err)
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}
