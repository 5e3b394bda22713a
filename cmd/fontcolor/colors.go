package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"fontcolor/color"
	"fontcolor/fontcolor"
	"fontcolor/state"
)

func runNormalize(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("normalize")

	args := cmd.Args().Slice()
	if len(args) == 0 {
		return errors.New("no colors have been specified")
	}
	strict := cmd.Bool("strict") || env.Strict()
	resolve := cmd.Bool("resolve")

	var errs error
	out := cmd.Root().Writer
	for _, raw := range args {
		line, err := normalizeColor(raw, strict, resolve)
		if err != nil {
			log.Warn("Invalid color", zap.String("value", raw), zap.Error(err))
			errs = multierr.Append(errs, err)
			continue
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("unable to write output: %w", err)
		}
	}
	return errs
}

// normalizeColor returns normalized value, with resolved hex appended after
// a tab when requested and possible.
func normalizeColor(raw string, strict, resolve bool) (string, error) {
	n := color.Normalize(raw)
	if !strict && !resolve {
		return n, nil
	}
	c, err := color.Parse(raw)
	if err != nil {
		if strict {
			return "", err
		}
		return n, nil
	}
	if hex := c.Hex(); resolve && len(hex) > 0 {
		return n + "\t" + hex, nil
	}
	return n, nil
}

func runPalette(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	opts := fontcolor.NormalizeOptions(env.Cfg.FontColor.Colors)
	if cmd.Bool("sort") {
		opts = fontcolor.SortOptions(opts)
	}
	env.Log.Debug("Palette prepared", zap.Int("colors", len(opts)), zap.Bool("strict", env.Strict()))

	tw := tabwriter.NewWriter(cmd.Root().Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLABEL\tCOLOR\tBORDER")
	for _, o := range opts {
		border := ""
		if o.HasBorder {
			border = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", o.ID, o.Label, o.Model, border)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	return nil
}
