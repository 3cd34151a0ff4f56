package cmd

import (
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a one-off skill-gap analysis against a track",
	Long:  "Analyze skills against a track without registering anyone. Nothing is stored.",
	RunE: func(cmd *cobra.Command, args []string) error {
		trackID, _ := cmd.Flags().GetString("track")
		raw, _ := cmd.Flags().GetStringArray("skill")
		skills, err := parseSkills(raw)
		if err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		svc, cfg := newService(cmd, st)

		track, err := svc.Track(cmd.Context(), trackID)
		if err != nil {
			return err
		}

		ctx, cancel := withLLMTimeout(cmd.Context(), cfg)
		defer cancel()

		a, err := svc.Analyze(ctx, *track, skills)
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd.OutOrStdout(), a)
		}
		renderAnalysis(cmd.OutOrStdout(), a)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().String("track", "", "Track ID")
	analyzeCmd.Flags().StringArray("skill", nil, "Skill as Name=Level (0-5), repeatable")
	analyzeCmd.Flags().Bool("json", false, "Print JSON")
	analyzeCmd.MarkFlagRequired("track")
}
