package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/phil-mansfield/fakegas/lib"
	"github.com/phil-mansfield/fakegas/lib/convert"
	g_error "github.com/phil-mansfield/fakegas/lib/error"
	"github.com/phil-mansfield/fakegas/lib/logctx"
)

func main() {
	// Parse arguments.
	args, err := lib.ParseCommandLine(os.Args[1:])
	if err != nil { g_error.External("%s", err.Error()) }

	logctx.SetDefaultLogger(logctx.NewConfiguredLogger(
		args.Config.Debug, args.Config.HumanLogs,
	))

	if err := run(args); err != nil { g_error.External("%s", err.Error()) }
}

// run runs the chosen mode.
func run(args *lib.Args) error {
	ctx := logctx.WithLogger(context.Background(), logctx.DefaultLogger())
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if err := lib.SetThreads(args.Threads); err != nil { return err }

	switch args.Mode {
	case lib.HelpMode:
		lib.PrintHelp(os.Stdout)
		return nil
	case lib.ConvertMode:
		return Convert(ctx, args)
	case lib.CheckMode:
		if err := lib.Check(ctx, args); err != nil { return err }
		fmt.Println("No errors detected.")
		return nil
	case lib.InfoMode:
		return lib.Info(ctx, args, os.Stdout)
	}

	g_error.Internal("Mode %s has no handler.", args.Mode)
	return nil
}

// Convert runs fakegas's "convert" mode, which writes a copy of every input
// file with its dark matter relabelled as gas.
func Convert(ctx context.Context, args *lib.Args) error {
	names, err := args.FileNames()
	if err != nil { return err }
	opts, err := args.ConvertOptions()
	if err != nil { return err }

	log := logctx.FromContext(ctx)
	log.Info().Int("files", len(names)).
		Int("workers", opts.Workers).Int("from", opts.Merge.From).
		Int("to", opts.Merge.To).Msg("converting snapshots")
	return convert.Files(ctx, names, opts)
}
