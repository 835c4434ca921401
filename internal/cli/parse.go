package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"srtm-backend/internal/stig/library"
)

func newParseCommand() *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a STIG XCCDF XML or CSV export into requirement records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			f := library.DetectFormat(data)
			if format != "" {
				if f, err = library.ParseFormat(format); err != nil {
					return err
				}
			}
			reqs, err := library.Parse(f, data)
			if err != nil {
				return err
			}
			if strings.EqualFold(output, "json") {
				return writeJSON(cmd.OutOrStdout(), reqs)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "VULN ID\tSEVERITY\tCONTROLS\tTITLE")
			for _, r := range reqs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.VulnID, r.Severity, strings.Join(r.NISTControls, ","), r.Title)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "xml or csv (default: detect from content)")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table or json")
	return cmd
}
