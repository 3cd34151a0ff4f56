package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var internCmd = &cobra.Command{
	Use:   "intern",
	Short: "Register and manage interns",
}

var internRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register an intern on a track",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		trackID, _ := cmd.Flags().GetString("track")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		svc := newReadService(st)

		in, err := svc.Register(cmd.Context(), name, email, trackID)
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd.OutOrStdout(), in)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (%s)\n", in.Name, in.ID)
		return nil
	},
}

var internListCmd = &cobra.Command{
	Use:   "list",
	Short: "List interns",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		list, err := st.InternRepo().List(cmd.Context())
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd.OutOrStdout(), list)
		}
		if len(list) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No interns registered.")
			return nil
		}
		renderInterns(cmd.OutOrStdout(), list)
		return nil
	},
}

var internShowCmd = &cobra.Command{
	Use:   "show <intern-id>",
	Short: "Show an intern profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		in, err := st.InternRepo().Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd.OutOrStdout(), in)
		}
		renderIntern(cmd.OutOrStdout(), in)
		return nil
	},
}

var internOnboardCmd = &cobra.Command{
	Use:   "onboard <intern-id>",
	Short: "Record skills and run the skill-gap analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		ctx, cancel := withLLMTimeout(cmd.Context(), cfg)
		defer cancel()

		a, err := svc.Onboard(ctx, args[0], skills)
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
	internCmd.PersistentFlags().Bool("json", false, "Print JSON")

	internRegisterCmd.Flags().String("name", "", "Full name")
	internRegisterCmd.Flags().String("email", "", "Email address")
	internRegisterCmd.Flags().String("track", "", "Track ID")
	internRegisterCmd.MarkFlagRequired("name")
	internRegisterCmd.MarkFlagRequired("email")
	internRegisterCmd.MarkFlagRequired("track")

	internOnboardCmd.Flags().StringArray("skill", nil, "Skill as Name=Level (0-5), repeatable")

	internCmd.AddCommand(internRegisterCmd)
	internCmd.AddCommand(internListCmd)
	internCmd.AddCommand(internShowCmd)
	internCmd.AddCommand(internOnboardCmd)
}
