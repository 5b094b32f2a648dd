package lib

/* info.go contains the core function of fakegas's "info" mode. */

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/phil-mansfield/fakegas/lib/snapio"
	"github.com/phil-mansfield/fakegas/lib/stats"
)

// Info prints the header of every input file to w, followed by a summary of
// each particle type in it. It stops at the first file that can't be read.
func Info(ctx context.Context, args *Args, w io.Writer) error {
	names, err := args.FileNames()
	if err != nil { return err }
	order, err := args.Config.Order()
	if err != nil { return err }

	for _, name := range names {
		hd, p, err := snapio.Read(name, order)
		if err != nil { return err }
		printInfo(w, name, hd, stats.Summarize(hd, p))
	}
	return nil
}

func printInfo(
	w io.Writer, name string, hd *snapio.Header, sum []stats.TypeSummary,
) {
	fmt.Fprintf(w, "# %s\n", name)
	fmt.Fprintf(w, "# z = %.6f, a = %.6f\n", hd.Redshift, hd.ScaleFactor())
	fmt.Fprintf(w, "# L = %g, Om = %g, OL = %g, h100 = %g\n",
		hd.BoxSize, hd.Omega0, hd.OmegaLambda, hd.HubbleParam)
	fmt.Fprintf(w, "# files = %d, particles = %s\n",
		hd.NumFiles, humanize.Comma(hd.NumPart()))
	fmt.Fprintln(w, "# type, npart, npart_total, mass, m_total, " +
		"min(x), max(x), sigma_v")
	for _, s := range sum {
		fmt.Fprintf(w, "%d %10d %12d %.5g %.5g %.5g %.5g %.5g\n",
			s.Type, hd.NPart[s.Type], hd.NPartTotal[s.Type], s.FixedMass,
			s.TotalMass, s.Min, s.Max, s.VelDisp)
	}
}
