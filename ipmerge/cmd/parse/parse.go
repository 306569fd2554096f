// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package parse

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cilium/ipmerge/pkg/cidr"
	"github.com/cilium/ipmerge/pkg/logging"
	"github.com/cilium/ipmerge/pkg/logging/logfields"
)

const (
	keyAlwaysPrefix = "always-prefix"
	keyVerbose      = "verbose"
)

// New creates a new parse command.
func New() *cobra.Command {
	var alwaysPrefix, verbose bool
	cmd := &cobra.Command{
		Use:   "parse BLOCK...",
		Short: "Validate address blocks and print them in canonical form",
		Long: `Validate address blocks and print them in canonical form, one per line.
Parsing stops at the first invalid block.`,
		Example: `  ipmerge parse 10.0.0.0/8 2001:DB8:0::/32
  ipmerge parse --always-prefix 192.0.2.1`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd.OutOrStdout(), args, alwaysPrefix, verbose)
		},
	}
	flags := cmd.Flags()
	flags.BoolVar(&alwaysPrefix, keyAlwaysPrefix, false, "Print the prefix length of single address blocks")
	flags.BoolVarP(&verbose, keyVerbose, "v", false, "Also print the family and the last address of each block")
	return cmd
}

func runParse(out io.Writer, args []string, alwaysPrefix, verbose bool) error {
	logger := logging.DefaultSlogLogger.With(logfields.LogSubsys, "parse")
	for _, arg := range args {
		b, err := cidr.Parse(arg)
		if err != nil {
			if kind, ok := cidr.KindOf(err); ok {
				return fmt.Errorf("%s: %w", kind, err)
			}
			return err
		}
		logger.Debug("Parsed block",
			logfields.Block, arg,
			logfields.Address, b.Addr(),
			logfields.Prefix, b.Bits(),
			logfields.Family, b.Family(),
		)
		if verbose {
			fmt.Fprintf(out, "%s\t%s\t%s\n", cidr.Format(b, alwaysPrefix), b.Family(), b.Last())
		} else {
			fmt.Fprintln(out, cidr.Format(b, alwaysPrefix))
		}
	}
	return nil
}
