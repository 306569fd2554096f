// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package merge

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cilium/ipmerge/pkg/cidr"
	"github.com/cilium/ipmerge/pkg/defaults"
	"github.com/cilium/ipmerge/pkg/logging"
	"github.com/cilium/ipmerge/pkg/logging/logfields"
	"github.com/cilium/ipmerge/pkg/mergefile"
)

const (
	keyAlwaysPrefix = "always-prefix"
	keyFile         = "file"
	keyOutput       = "output"
)

// ErrNotMergeable is returned when two valid blocks have no single exact
// covering block.
var ErrNotMergeable = errors.New("cannot be merged")

// New creates a new merge command.
func New() *cobra.Command {
	var (
		alwaysPrefix bool
		file         string
		output       string
	)
	cmd := &cobra.Command{
		Use:   "merge (A B | -f FILE)",
		Short: "Merge two address blocks into their covering block",
		Long: `Merge two address blocks into the single block covering exactly both of
them. Blocks merge if they are identical, if one contains the other, or if
they are the two halves of the same parent block.

With --file, every pair of a YAML or JSON batch file is merged and the
results are printed in the format selected with --output.`,
		Example: `  ipmerge merge 10.0.0.0/24 10.0.1.0/24
  ipmerge merge -f pairs.yaml -o json`,
		Args: func(cmd *cobra.Command, args []string) error {
			if file != "" {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if file != "" {
				return runMergeFile(cmd.OutOrStdout(), file, output, alwaysPrefix)
			}
			return runMerge(cmd.OutOrStdout(), args[0], args[1], alwaysPrefix)
		},
	}
	flags := cmd.Flags()
	flags.BoolVar(&alwaysPrefix, keyAlwaysPrefix, false, "Print the prefix length of single address blocks")
	flags.StringVarP(&file, keyFile, "f", "", "Merge the pairs of a YAML or JSON batch file")
	flags.StringVarP(&output, keyOutput, "o", defaults.OutputFormat, "Output format of batch results, yaml or json")
	return cmd
}

func runMerge(out io.Writer, a, b string, alwaysPrefix bool) error {
	logger := logging.DefaultSlogLogger.With(logfields.LogSubsys, "merge")

	blockA, err := cidr.Parse(a)
	if err != nil {
		return err
	}
	blockB, err := cidr.Parse(b)
	if err != nil {
		return err
	}

	merged, c := cidr.MergeWithCase(blockA, blockB)
	logger.Debug("Merged blocks",
		logfields.Blocks, []string{blockA.String(), blockB.String()},
		logfields.MergeCase, c,
	)
	if c == cidr.MergeNone {
		return fmt.Errorf("%s and %s %w", blockA, blockB, ErrNotMergeable)
	}
	fmt.Fprintln(out, cidr.Format(merged, alwaysPrefix))
	return nil
}

func runMergeFile(out io.Writer, path, format string, alwaysPrefix bool) error {
	f, err := mergefile.Load(path)
	if err != nil {
		return err
	}
	data, err := mergefile.Marshal(mergefile.Evaluate(f, alwaysPrefix), format)
	if err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	_, err = out.Write(data)
	return err
}
