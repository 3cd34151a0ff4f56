package cmd

import (
	"github.com/spf13/cobra"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Generate a quiz for a study task",
	Long: "Generate a multiple-choice quiz for a study task. Save it with --json and " +
		"pass the file to \"session complete --quiz\" along with the answers.",
	RunE: func(cmd *cobra.Command, args []string) error {
		task, _ := cmd.Flags().GetString("task")
		resources, _ := cmd.Flags().GetStringArray("resource")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		svc, cfg := newService(cmd, st)

		ctx, cancel := withLLMTimeout(cmd.Context(), cfg)
		defer cancel()

		items, err := svc.StartQuiz(ctx, task, resources)
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd.OutOrStdout(), items)
		}
		renderQuiz(cmd.OutOrStdout(), items)
		return nil
	},
}

func init() {
	quizCmd.Flags().String("task", "", "What was studied")
	quizCmd.Flags().StringArray("resource", nil, "Resource used, repeatable")
	quizCmd.Flags().Bool("json", false, "Print the quiz as JSON")
	quizCmd.MarkFlagRequired("task")
}
