package cmd

import (
	"github.com/spf13/cobra"
)

var perfCmd = &cobra.Command{
	Use:   "perf <intern-id>",
	Short: "Show an intern's performance metrics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		svc := newReadService(st)

		m, err := svc.Performance(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		points, err := svc.MetricHistory(cmd.Context(), args[0], days)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd.OutOrStdout(), map[string]any{"metrics": m, "history": points})
		}
		renderMetrics(cmd.OutOrStdout(), m)
		if len(points) > 0 {
			renderMetricHistory(cmd.OutOrStdout(), points)
		}
		return nil
	},
}

var cohortCmd = &cobra.Command{
	Use:   "cohort",
	Short: "Summarize every intern",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		svc := newReadService(st)

		rows, err := svc.Cohort(cmd.Context())
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd.OutOrStdout(), rows)
		}
		renderCohort(cmd.OutOrStdout(), rows)
		return nil
	},
}

func init() {
	perfCmd.Flags().Int("days", 30, "Days of metric history to show (0 for all)")
	perfCmd.Flags().Bool("json", false, "Print JSON")
	cohortCmd.Flags().Bool("json", false, "Print JSON")
}
