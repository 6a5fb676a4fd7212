package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"exitplan-backend/internal/advisor"
	openai "exitplan-backend/internal/llm/openai"
	"exitplan-backend/internal/planning"
	"exitplan-backend/internal/recommendations"
	"exitplan-backend/internal/shared/config"
	"exitplan-backend/internal/shared/metrics"
	"exitplan-backend/internal/version"
)

var errNoProvider = errors.New("--enhance requires ADVISOR_PROVIDER and ADVISOR_API_KEY")

type analyzeOutput struct {
	Report          planning.Report                  `json:"report"`
	Recommendations []advisor.EnhancedRecommendation `json:"recommendations"`
	Enhanced        bool                             `json:"enhanced"`
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "exitplanctl",
		Short:         "Exit-planning analysis and advisor enhancement",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.Info())
		},
	}
}

func newAnalyzeCmd() *cobra.Command {
	var (
		profilePath string
		enhance     bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score a business profile and print the exit-planning report as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := readProfile(profilePath)
			if err != nil {
				return err
			}

			settings := advisor.NewSettings(advisor.Disabled())
			if enhance {
				cfg := config.Load()
				if !cfg.AdvisorEnabled() {
					return errNoProvider
				}
				if err := settings.Configure(cfg.AdvisorProvider, cfg.AdvisorOptions()); err != nil {
					return fmt.Errorf("configure advisor: %w", err)
				}
			}

			snapshot := settings.Snapshot()
			svc := &recommendations.Service{
				Settings: settings,
				Enhancer: advisor.NewEnhancer(openai.NewClient(snapshot.Timeout)),
			}
			report, result := svc.Recommend(cmd.Context(), profile)
			return printJSON(cmd.OutOrStdout(), analyzeOutput{
				Report:          report,
				Recommendations: result.Recommendations,
				Enhanced:        result.Outcome == metrics.OutcomeEnhanced,
			})
		},
	}

	cmd.Flags().StringVar(&profilePath, "profile", "", "Path to a business profile JSON file (- for stdin)")
	cmd.Flags().BoolVar(&enhance, "enhance", false, "Enhance recommendations with the provider from ADVISOR_* settings")
	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func readProfile(path string) (planning.Profile, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return planning.Profile{}, fmt.Errorf("read profile: %w", err)
	}
	var profile planning.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return planning.Profile{}, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return profile, nil
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
