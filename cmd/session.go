package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/interntrack/interntrack/internal/tracker"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Record and list study sessions",
}

var sessionCompleteCmd = &cobra.Command{
	Use:   "complete <intern-id>",
	Short: "Grade a quiz and record the study session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		task, _ := cmd.Flags().GetString("task")
		resources, _ := cmd.Flags().GetStringArray("resource")
		minutes, _ := cmd.Flags().GetInt("minutes")
		quizPath, _ := cmd.Flags().GetString("quiz")
		rawAnswers, _ := cmd.Flags().GetString("answers")

		if minutes < 0 {
			return fmt.Errorf("--minutes must not be negative")
		}
		items, err := readQuizFile(quizPath)
		if err != nil {
			return err
		}
		answers, err := parseAnswers(rawAnswers)
		if err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		svc, cfg := newService(cmd, st)

		ctx, cancel := withLLMTimeout(cmd.Context(), cfg)
		defer cancel()

		end := time.Now()
		out, err := svc.CompleteSession(ctx, tracker.SessionInput{
			InternID:  args[0],
			Task:      task,
			Resources: resources,
			TimeIn:    end.Add(-time.Duration(minutes) * time.Minute),
			TimeOut:   end,
			Quiz:      items,
			Answers:   answers,
		})
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd.OutOrStdout(), out)
		}
		renderOutcome(cmd.OutOrStdout(), out)
		return nil
	},
}

var sessionListCmd = &cobra.Command{
	Use:   "list <intern-id>",
	Short: "List an intern's sessions, oldest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		svc := newReadService(st)

		list, err := svc.Sessions(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd.OutOrStdout(), list)
		}
		if len(list) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No sessions recorded.")
			return nil
		}
		renderSessions(cmd.OutOrStdout(), list)
		return nil
	},
}

func init() {
	sessionCmd.PersistentFlags().Bool("json", false, "Print JSON")

	sessionCompleteCmd.Flags().String("task", "", "What was studied")
	sessionCompleteCmd.Flags().StringArray("resource", nil, "Resource used, repeatable")
	sessionCompleteCmd.Flags().Int("minutes", 0, "Time spent studying")
	sessionCompleteCmd.Flags().String("quiz", "", "Quiz JSON file written by \"quiz --json\"")
	sessionCompleteCmd.Flags().String("answers", "", "Chosen option per question, comma separated (\"-\" skips)")
	sessionCompleteCmd.MarkFlagRequired("task")
	sessionCompleteCmd.MarkFlagRequired("quiz")

	sessionCmd.AddCommand(sessionCompleteCmd)
	sessionCmd.AddCommand(sessionListCmd)
}
