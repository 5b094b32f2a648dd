package lib

/* check.go contains the core function of fakegas's "check" mode. */

import (
	"context"
	"errors"

	"github.com/phil-mansfield/fakegas/lib/convert"
	"github.com/phil-mansfield/fakegas/lib/logctx"
)

// Check reads and validates every input file. Every file is checked even if
// an earlier one fails, and the failures are returned together.
func Check(ctx context.Context, args *Args) error {
	names, err := args.FileNames()
	if err != nil { return err }
	order, err := args.Config.Order()
	if err != nil { return err }

	log := logctx.FromContext(ctx)
	errs := []error{ }
	for _, name := range names {
		if _, err := convert.Check(ctx, name, order); err != nil {
			log.Error().Err(err).Str("input", name).Msg("invalid snapshot")
			errs = append(errs, err)
		}
	}

	log.Info().Int("files", len(names)).Int("invalid", len(errs)).
		Msg("checked snapshots")
	return errors.Join(errs...)
}
