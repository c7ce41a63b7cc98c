package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/naca456/internal/namelist"
)

func fieldsCmd() *cli.Command {
	return &cli.Command{
		Name:  "fields",
		Usage: "List the keys of the &NACA namelist",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return writeFields(os.Stdout, namelist.Fields())
		},
	}
}

func writeFields(w io.Writer, fields []namelist.FieldSpec) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "KEY\tTYPE\tMEANING\tAPPLIES TO")
	for _, f := range fields {
		applies := f.AppliesTo
		if applies == "" {
			applies = "always"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.Key, f.Type, f.Meaning, applies)
	}
	return tw.Flush()
}
