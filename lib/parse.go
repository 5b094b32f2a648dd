package lib

import (
	"flag"
	"fmt"
	"io"

	"github.com/phil-mansfield/fakegas/lib/config"
	"github.com/phil-mansfield/fakegas/lib/convert"
	"github.com/phil-mansfield/fakegas/lib/format"
)

// Args stores everything the user asked for on the command line, after the
// config file and environment have been folded into Config.
type Args struct {
	Mode Mode
	ConfigFile string
	// Input and Snaps are a file format and a sequence format naming extra
	// input files. See lib/format.
	Input, Snaps string
	Threads int
	// Positional holds the file names listed after the flags.
	Positional []string
	Config *config.Config
}

// flagValues holds the value of every flag before it is known which of them
// were actually set.
type flagValues struct {
	configFile, input, snaps string
	threads int

	byteOrder, marker string
	from, to, workers int
	keepGoing, debug, human bool
}

func newFlagSet(name string, v *flagValues) *flag.FlagSet {
	def := config.Default()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	fs.StringVar(&v.configFile, "config", "",
		"gcfg config file with a [fakegas] section.")
	fs.StringVar(&v.input, "input", "", "File format naming input files, " +
		"e.g. 'snapdir_{%03d,snapshot}/snapshot_{%03d,snapshot}.{%d,0..7}'.")
	fs.StringVar(&v.snaps, "snaps", "", "Sequence format of snapshots to " +
		"substitute into -input, e.g. '0..100 - 63'.")
	fs.IntVar(&v.threads, "threads", -1,
		"Number of threads to run on. -1 uses every core.")

	fs.StringVar(&v.byteOrder, "byte-order", def.ByteOrder,
		"Byte order of the snapshot files: native, little, or big.")
	fs.StringVar(&v.marker, "marker", def.Marker,
		"Text inserted into input file names to make output file names.")
	fs.IntVar(&v.from, "from", def.From, "Particle type being relabelled.")
	fs.IntVar(&v.to, "to", def.To, "Particle type it becomes.")
	fs.IntVar(&v.workers, "workers", def.Workers,
		"Number of files converted at the same time.")
	fs.BoolVar(&v.keepGoing, "keep-going", def.KeepGoing,
		"Skip files which fail instead of stopping.")
	fs.BoolVar(&v.debug, "debug", def.Debug, "Log debug messages.")
	fs.BoolVar(&v.human, "human", def.HumanLogs,
		"Log human-readable text instead of JSON.")

	return fs
}

// ParseCommandLine parses the command line arguments, not including the
// program name. Expects that the arguments are presented in the order:
// $ fakegas <mode> [-<flag1> <value1>] [-<flag2> <value2>] [files...]
//
// Settings are layered: defaults, then the -config file, then FAKEGAS_*
// environment variables, then any flags which were explicitly set.
func ParseCommandLine(argv []string) (*Args, error) {
	if len(argv) == 0 {
		return &Args{ Mode: HelpMode, Config: config.Default() }, nil
	}

	mode, err := ParseMode(argv[0])
	if err != nil { return nil, err }

	v := &flagValues{ }
	fs := newFlagSet(mode.String(), v)
	fs.SetOutput(io.Discard)
	if err := fs.Parse(argv[1:]); err != nil {
		return nil, fmt.Errorf("Could not parse the arguments to '%s': %w",
			mode, err)
	}

	cfg := config.Default()
	if v.configFile != "" {
		if err := config.ReadFile(v.configFile, cfg); err != nil {
			return nil, err
		}
	}
	if err := config.ParseEnv(cfg); err != nil { return nil, err }

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "byte-order": cfg.ByteOrder = v.byteOrder
		case "marker": cfg.Marker = v.marker
		case "from": cfg.From = v.from
		case "to": cfg.To = v.to
		case "workers": cfg.Workers = v.workers
		case "keep-going": cfg.KeepGoing = v.keepGoing
		case "debug": cfg.Debug = v.debug
		case "human": cfg.HumanLogs = v.human
		}
	})

	if err := cfg.Validate(); err != nil { return nil, err }

	return &Args{
		Mode: mode, ConfigFile: v.configFile,
		Input: v.input, Snaps: v.snaps, Threads: v.threads,
		Positional: fs.Args(), Config: cfg,
	}, nil
}

// FileNames returns every input file: the positional arguments followed by
// the files named by Input and Snaps.
func (args *Args) FileNames() ([]string, error) {
	names := append([]string{ }, args.Positional...)

	if args.Input != "" {
		snaps := []int{ 0 }
		if args.Snaps != "" {
			var err error
			snaps, err = format.ExpandSnapshotFormat(args.Snaps)
			if err != nil { return nil, err }
		}

		expanded, err := format.ExpandFileFormats(args.Input, snaps)
		if err != nil { return nil, err }
		names = append(names, expanded...)
	} else if args.Snaps != "" {
		return nil, fmt.Errorf("-snaps was set to '%s', but there is no " +
			"-input format to substitute the snapshots into.", args.Snaps)
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("No input files were given to '%s'. List " +
			"them after the flags or set -input.", args.Mode)
	}
	return names, nil
}

// ConvertOptions returns the options passed to lib/convert.
func (args *Args) ConvertOptions() (convert.Options, error) {
	order, err := args.Config.Order()
	if err != nil { return convert.Options{ }, err }
	return convert.Options{
		Order: order,
		Marker: args.Config.Marker,
		Merge: args.Config.Merge(),
		Workers: args.Config.Workers,
		KeepGoing: args.Config.KeepGoing,
	}, nil
}

// PrintHelp writes a description of every mode and flag to w.
func PrintHelp(w io.Writer) {
	fmt.Fprintf(w, `fakegas %s relabels the dark matter in Gadget-2 snapshots as gas.

Usage:
   fakegas <mode> [flags] [files...]

Modes:
   convert   Write a converted copy of every file.
   check     Check that every file is a valid snapshot.
   info      Print the header and a per-type summary of every file.
   help      Print this message.

Flags:
`, Version)
	fs := newFlagSet("fakegas", &flagValues{ })
	fs.SetOutput(w)
	fs.PrintDefaults()
}
