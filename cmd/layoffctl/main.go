package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ZanzyTHEbar/layoff-o-meter/internal/config"
	"github.com/ZanzyTHEbar/layoff-o-meter/internal/prediction"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// cliOptions holds the values shared by every subcommand
type cliOptions struct {
	cfgFile string
	v       *viper.Viper
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:   "layoffctl",
		Short: "Layoff risk scoring from the command line",
		Long: `layoffctl scores an employee profile with the same engine the
layoff-o-meter API serves, and lists the values the scorer understands.

  layoffctl predict --age 30 --department engineering --job-role "Software Engineer" \
    --salary 80000 --overtime often --rating 5 --tenure 2`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.NewViper(opts.cfgFile)
			if err != nil {
				return err
			}
			opts.v = v
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default ./config.yaml or ./configs/config.yaml)")

	root.AddCommand(newPredictCmd(opts))
	root.AddCommand(newReferenceCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// ── predict ──────────────────────────────────────────────────────────────────

type predictOutput struct {
	Prediction      prediction.PredictionResult `json:"prediction"`
	Recommendations []prediction.Recommendation `json:"recommendations"`
	Outcome         string                      `json:"outcome"`
	Summary         string                      `json:"summary"`
}

func newPredictCmd(opts *cliOptions) *cobra.Command {
	var (
		raw    prediction.RawProfile
		format string
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Score an employee profile and print recommendations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("unknown format %q: use text or json", format)
			}

			if err := opts.v.BindPFlag("prediction.seed", cmd.Flags().Lookup("seed")); err != nil {
				return err
			}
			cfg, err := config.FromViper(opts.v)
			if err != nil {
				return err
			}

			profile, err := prediction.ParseProfile(raw)
			if err != nil {
				return err
			}
			if err := profile.Validate(); err != nil {
				return err
			}

			result := newScorer(cfg.Prediction.Seed).Score(profile)
			out := predictOutput{
				Prediction:      result,
				Recommendations: prediction.Recommend(result),
				Outcome:         result.Outcome(),
				Summary:         result.RiskLevel.Summary(),
			}

			if format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			return printPrediction(cmd.OutOrStdout(), out)
		},
	}

	f := cmd.Flags()
	f.StringVar(&raw.Age, "age", "", "Age in years (18-70)")
	f.StringVar(&raw.Department, "department", "", "Department, e.g. engineering or sales")
	f.StringVar(&raw.JobRole, "job-role", "", "Job title")
	f.StringVar(&raw.Salary, "salary", "", "Annual salary")
	f.StringVar(&raw.Overtime, "overtime", "", "Overtime frequency: never, rarely, sometimes, often or always")
	f.StringVar(&raw.PerformanceRating, "rating", "", "Performance rating (1-5)")
	f.StringVar(&raw.YearsAtCompany, "tenure", "", "Years at the company")
	f.Uint64("seed", 0, "Seed for the score perturbation; 0 draws from the process source")
	f.StringVar(&format, "format", "text", "Output format: text or json")

	for _, name := range []string{"age", "department", "job-role", "salary", "overtime", "rating", "tenure"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newScorer(seed uint64) *prediction.Scorer {
	if seed == 0 {
		return prediction.NewScorer()
	}
	return prediction.NewScorer(prediction.WithRandomSource(prediction.NewSeededSource(seed)))
}

func printPrediction(out io.Writer, p predictOutput) error {
	fmt.Fprintf(out, "Outcome:     %s\n", p.Outcome)
	fmt.Fprintf(out, "Risk level:  %s\n", p.Prediction.RiskLevel)
	fmt.Fprintf(out, "Confidence:  %d%%\n", p.Prediction.Confidence)
	fmt.Fprintf(out, "Summary:     %s\n\n", p.Summary)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FACTOR\tIMPACT\tEFFECT")
	for _, f := range p.Prediction.Factors {
		effect := "increases risk"
		if f.IsPositive {
			effect = "reduces risk"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", f.Name, strconv.FormatFloat(f.Impact, 'f', -1, 64), effect)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(p.Recommendations) == 0 {
		fmt.Fprintln(out, "\nNo recommendations.")
		return nil
	}

	fmt.Fprintln(out)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRIORITY\tRECOMMENDATION\tDETAILS")
	for _, r := range p.Recommendations {
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Priority, r.Title, r.Description)
	}
	return w.Flush()
}

// ── reference ────────────────────────────────────────────────────────────────

func newReferenceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reference",
		Short: "List departments, overtime frequencies, ratings and factor names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			sections := []struct {
				title   string
				choices []prediction.Choice
			}{
				{"DEPARTMENT", prediction.Departments()},
				{"OVERTIME", prediction.OvertimeFrequencies()},
				{"RATING", prediction.PerformanceRatings()},
			}
			for _, s := range sections {
				fmt.Fprintf(w, "%s\tLABEL\n", s.title)
				for _, c := range s.choices {
					fmt.Fprintf(w, "%s\t%s\n", c.Value, c.Label)
				}
				fmt.Fprintln(w)
			}
			fmt.Fprintln(w, "FACTOR")
			for _, name := range prediction.FactorNames() {
				fmt.Fprintln(w, name)
			}
			return w.Flush()
		},
	}
}

// ── version ──────────────────────────────────────────────────────────────────

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "layoffctl %s\n", config.Version)
		},
	}
}
