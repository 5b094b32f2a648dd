/*package convert runs the fake-gas pipeline on snapshot files: each file is
read and validated in full, its particles are reclassified, and the result is
written next to the input under a new name.
*/
package convert

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/phil-mansfield/fakegas/lib/logctx"
	"github.com/phil-mansfield/fakegas/lib/reclass"
	"github.com/phil-mansfield/fakegas/lib/snapio"
)

// Options controls how files are converted.
type Options struct {
	// Order is the byte order of both the input and the output files. nil
	// means the native byte order.
	Order binary.ByteOrder
	// Marker is inserted into input names to make output names.
	Marker string
	Merge reclass.Merge
	// Workers is the largest number of files converted at once.
	Workers int
	// KeepGoing converts every file even if some fail.
	KeepGoing bool
}

// DefaultOptions returns the options used by the fakegas command when nothing
// is configured.
func DefaultOptions() Options {
	return Options{
		Order: snapio.SystemByteOrder(),
		Marker: "fakegas",
		Merge: reclass.FakeGas,
		Workers: 1,
	}
}

func (opts Options) order() binary.ByteOrder {
	if opts.Order == nil { return snapio.SystemByteOrder() }
	return opts.Order
}

// OutputName returns the name of the file that the input fileName is
// converted into. The directory is unchanged and "-marker" is inserted into
// the base name before its first '_' (or appended if there is none), so
// "snapdir_005/snapshot_005.3" becomes "snapdir_005/snapshot-fakegas_005.3".
func OutputName(fileName, marker string) (string, error) {
	dir, base := filepath.Split(fileName)
	if base == "" {
		return "", fmt.Errorf("'%s' is a directory, not a file.", fileName)
	}

	var out string
	if i := strings.Index(base, "_"); i >= 0 {
		out = dir + base[:i] + "-" + marker + base[i:]
	} else {
		out = dir + base + "-" + marker
	}

	if marker == "" || out == fileName {
		return "", fmt.Errorf("The output name for '%s' would be the same " +
			"as the input name.", fileName)
	}
	return out, nil
}

// File converts the snapshot file inName and returns the name of the file it
// wrote. The whole input is read and checked before the output is created,
// and no output file is left behind if anything fails.
func File(ctx context.Context, inName string, opts Options) (string, error) {
	if err := opts.Merge.Check(); err != nil { return "", err }
	outName, err := OutputName(inName, opts.Marker)
	if err != nil { return "", err }

	ctx = logctx.WithStr(ctx, "input", inName)
	ctx = logctx.WithStr(ctx, "output", outName)
	log := logctx.FromContext(ctx)

	hd, p, err := snapio.Read(inName, opts.order())
	if err != nil { return "", err }
	log.Debug().Int64("particles", hd.NumPart()).
		Float64("redshift", hd.Redshift).Msg("read snapshot")

	if err := opts.Merge.Fits(hd); err != nil {
		return "", fmt.Errorf("%s: %w", inName, err)
	}
	rep := opts.Merge.Apply(hd, p)
	if rep.MassConflicts > 0 {
		log.Warn().Int("conflicts", rep.MassConflicts).
			Int("to", opts.Merge.To).Float64("mass", hd.Mass[opts.Merge.To]).
			Msg("particle masses will be replaced by the merged type's " +
				"fixed mass")
	}

	if err := snapio.Write(outName, hd, p, opts.order()); err != nil {
		return "", err
	}

	ev := log.Info().Int("moved", rep.Moved)
	if info, err := os.Stat(outName); err == nil {
		ev = ev.Str("size", humanize.Bytes(uint64(info.Size())))
	}
	ev.Msg("converted snapshot")

	return outName, nil
}

// Check reads and validates the snapshot file fileName without writing
// anything.
func Check(
	ctx context.Context, fileName string, order binary.ByteOrder,
) (*snapio.Header, error) {
	if order == nil { order = snapio.SystemByteOrder() }
	hd, _, err := snapio.Read(fileName, order)
	if err != nil { return nil, err }

	log := logctx.FromContext(ctx)
	log.Debug().Str("input", fileName).
		Int64("particles", hd.NumPart()).Msg("snapshot is valid")
	return hd, nil
}

// Files converts every file in fileNames, using up to opts.Workers
// goroutines. Unless opts.KeepGoing is set, the first failure stops any
// conversions which haven't started yet and is returned. With
// opts.KeepGoing, every failure is logged and all of them are returned
// together.
func Files(ctx context.Context, fileNames []string, opts Options) error {
	seen := map[string]bool{ }
	for _, name := range fileNames {
		clean := filepath.Clean(name)
		if seen[clean] {
			return fmt.Errorf("The file '%s' is listed more than once.", name)
		}
		seen[clean] = true
	}

	workers := opts.Workers
	if workers < 1 { workers = 1 }

	log := logctx.FromContext(ctx)
	var (
		mu sync.Mutex
		errs []error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, name := range fileNames {
		name := name
		g.Go(func() error {
			if err := gctx.Err(); err != nil { return nil }

			_, err := File(ctx, name, opts)
			if err == nil { return nil }
			if !opts.KeepGoing { return err }

			log.Error().Err(err).Str("input", name).Msg("skipping snapshot")
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil { return err }
	if err := ctx.Err(); err != nil { return err }
	return errors.Join(errs...)
}
