// Package cli implements the stigrec command line tool: offline STIG family
// recommendations, effort estimates and STIG document parsing.
package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"srtm-backend/internal/shared/telemetry"
	"srtm-backend/internal/stig/catalog"
)

type options struct {
	catalogFile string
	verbose     bool
}

// NewRootCommand builds the stigrec command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "stigrec",
		Short:         "stigrec - STIG family recommendations for security requirements",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				telemetry.SetOutput(cmd.ErrOrStderr())
			} else {
				telemetry.SetOutput(io.Discard)
			}
		},
	}
	root.PersistentFlags().StringVar(&opts.catalogFile, "catalog", "", "YAML or JSON catalog file (default: built-in catalog)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "write structured logs to stderr")

	root.AddCommand(
		newRecommendCommand(opts),
		newEffortCommand(opts),
		newFamiliesCommand(opts),
		newParseCommand(),
	)
	return root
}

// Execute runs stigrec with os.Args and exits non-zero on failure.
func Execute() {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		cmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}

func (o *options) families() ([]catalog.Family, error) {
	if o.catalogFile == "" {
		return catalog.Builtin(), nil
	}
	doc, err := catalog.LoadFile(o.catalogFile)
	if err != nil {
		return nil, err
	}
	return catalog.Validate(doc.Families)
}
