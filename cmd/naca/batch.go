package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/naca456/internal/batch"
)

func batchCmd() *cli.Command {
	var jobs int64

	return &cli.Command{
		Name:      "batch",
		Usage:     "Generate every case of a YAML manifest",
		ArgsUsage: "<manifest.yaml>",
		Flags: commonFlags(
			&cli.Int64Flag{
				Name:        "jobs",
				Aliases:     []string{"j"},
				Usage:       "parallel engine runs (0 = manifest value, then one per CPU)",
				Destination: &jobs,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, cfg, log := setup(ctx, cmd)
			if cmd.Args().Len() != 1 {
				return errors.New("batch: exactly one manifest path is required")
			}
			manifest, err := batch.LoadManifestFile(cmd.Args().First())
			if err != nil {
				return err
			}
			applyBatchConfig(cmd, cfg, &jobs)
			n := int(jobs)
			if !cmd.IsSet("jobs") && manifest.Jobs > 0 {
				n = manifest.Jobs
			}

			eng, err := newEngine(cmd, cfg, log)
			if err != nil {
				return err
			}
			log.Info("batch started", "cases", len(manifest.Cases), "jobs", n)
			outcomes := batch.Run(ctx, eng, manifest.Cases, n)
			if err := writeOutcomes(os.Stdout, outcomes); err != nil {
				return err
			}
			ok, failed := batch.Summary(outcomes)
			log.Info("batch finished", "ok", ok, "failed", failed)
			if failed > 0 {
				return fmt.Errorf("%d of %d cases failed", failed, len(outcomes))
			}
			return nil
		},
	}
}

func writeOutcomes(w io.Writer, outcomes []batch.Outcome) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "#\tNAME\tPOINTS\tXFOIL\tSTATUS")
	for _, o := range outcomes {
		if o.Err != nil {
			_, _ = fmt.Fprintf(tw, "%d\t%s\t-\t-\t%v\n", o.Index+1, o.Params.Name, o.Err)
			continue
		}
		r := o.Result
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%d\t%s\tok\n", o.Index+1, r.Name, r.Airfoil.Len(), r.Files.XFOIL)
	}
	return tw.Flush()
}
