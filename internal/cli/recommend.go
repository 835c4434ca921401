package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"srtm-backend/internal/stig/recommendations"
)

type runFlags struct {
	input   string
	profile string
	output  string
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "JSON file with requirements and designElements (a workflow export works)")
	cmd.Flags().StringVarP(&f.profile, "profile", "p", "", "scoring profile: validated or standard")
	cmd.Flags().StringVarP(&f.output, "output", "o", "table", "output format: table or json")
}

func (f *runFlags) run(opts *options) ([]recommendations.Recommendation, recommendations.Profile, error) {
	profile, err := recommendations.ProfileByName(f.profile)
	if err != nil {
		return nil, recommendations.Profile{}, err
	}
	families, err := opts.families()
	if err != nil {
		return nil, recommendations.Profile{}, err
	}
	in, err := readInput(f.input)
	if err != nil {
		return nil, recommendations.Profile{}, err
	}
	recs := recommendations.Generate(recommendations.Input{
		Requirements:   in.Requirements,
		DesignElements: in.DesignElements,
		Families:       families,
		Profile:        profile,
	})
	return recs, profile, nil
}

func newRecommendCommand(opts *options) *cobra.Command {
	flags := &runFlags{}
	var reasons bool
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank STIG families for a set of requirements and design elements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, _, err := flags.run(opts)
			if err != nil {
				return err
			}
			switch strings.ToLower(flags.output) {
			case "json":
				return writeJSON(cmd.OutOrStdout(), recs)
			case "table":
				return writeRecommendations(cmd.OutOrStdout(), recs, reasons)
			default:
				return fmt.Errorf("unknown output format %q", flags.output)
			}
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&reasons, "reasons", false, "print the reasoning lines under each family")
	return cmd
}

func newEffortCommand(opts *options) *cobra.Command {
	flags := &runFlags{}
	var selected []string
	cmd := &cobra.Command{
		Use:   "effort",
		Short: "Estimate implementation effort for the recommended STIG families",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, profile, err := flags.run(opts)
			if err != nil {
				return err
			}
			effort := recommendations.EstimateEffort(recommendations.FilterByFamily(recs, selected), profile)
			switch strings.ToLower(flags.output) {
			case "json":
				return writeJSON(cmd.OutOrStdout(), effort)
			case "table":
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "Profile:             %s\n", profile.Name)
				fmt.Fprintf(w, "STIG requirements:   %d\n", effort.TotalRequirements)
				fmt.Fprintf(w, "Estimated hours:     %s\n", strconv.FormatFloat(effort.EstimatedHours, 'f', -1, 64))
				fmt.Fprintf(w, "Estimated days:      %d\n", effort.EstimatedDays)
				fmt.Fprintf(w, "Priorities:          critical=%d high=%d medium=%d low=%d\n",
					effort.PriorityCounts.Critical, effort.PriorityCounts.High, effort.PriorityCounts.Medium, effort.PriorityCounts.Low)
				return nil
			default:
				return fmt.Errorf("unknown output format %q", flags.output)
			}
		},
	}
	flags.register(cmd)
	cmd.Flags().StringSliceVar(&selected, "families", nil, "only count these family ids")
	return cmd
}

func newFamiliesCommand(opts *options) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "families",
		Short: "List the STIG families in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			families, err := opts.families()
			if err != nil {
				return err
			}
			if strings.EqualFold(output, "json") {
				return writeJSON(cmd.OutOrStdout(), families)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tPRIORITY\tREQUIREMENTS\tVERSION")
			for _, f := range families {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", f.ID, f.Name, f.Priority, f.EstimatedRequirements, f.Version)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table or json")
	return cmd
}

func writeRecommendations(w io.Writer, recs []recommendations.Recommendation, reasons bool) error {
	if len(recs) == 0 {
		_, err := fmt.Fprintln(w, "No STIG families matched.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tFAMILY\tSCORE\tCONFIDENCE\tPRIORITY")
	for i, rec := range recs {
		conf := "-"
		if rec.ConfidenceScore != nil {
			conf = fmt.Sprintf("%d%%", *rec.ConfidenceScore)
		}
		fmt.Fprintf(tw, "%d\t%s\t%g\t%s\t%s\n", i+1, rec.Family.ID, rec.RelevanceScore, conf, rec.ImplementationPriority)
		if reasons {
			for _, r := range rec.Reasoning {
				fmt.Fprintf(tw, "\t  %s\t\t\t\n", r)
			}
		}
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
