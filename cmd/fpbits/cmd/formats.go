// Copyright 2020 Aleksandr Demakin. All rights reserved.

package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/avdva/fpbits"
)

func newFormatsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the built-in and custom formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := append(fpbits.Builtins(), a.custom...)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSIGN\tEXPONENT\tFRACTION\tBIAS\tTOTAL\t")
			for _, f := range formats {
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t\n", f, f.SignBits(), f.ExponentBits(), f.FractionBits(), f.Bias(), f.TotalBits())
			}
			return w.Flush()
		},
	}
}
