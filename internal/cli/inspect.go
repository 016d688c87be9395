// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ik5/modstems"
)

var errInspect = errors.New("some files could not be inspected")

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>...",
		Short: "Decode written stems and print their properties",
		Long: `Decode each file and print its format, sample rate, channel count,
duration and peak level. Supported: ` + strings.Join(modstems.Decoders().Formats(), ", ") + `.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decoders := modstems.Decoders()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FILE\tFORMAT\tRATE\tCHANNELS\tDURATION\tPEAK")

			failed := false
			for _, path := range args {
				rep, err := modstems.Inspect(a.deps.Fs, decoders, path)
				if err != nil {
					a.log.Error("inspect failed", "file", path, "error", err)
					failed = true
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%v\t%.3f\n",
					rep.Path, rep.Format, rep.SampleRate, rep.Channels, rep.Duration(), rep.Peak)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if failed {
				return errInspect
			}
			return nil
		},
	}
}
