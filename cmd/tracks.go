package cmd

import (
	"github.com/spf13/cobra"
)

var tracksCmd = &cobra.Command{
	Use:   "tracks",
	Short: "Browse the track catalog",
}

var tracksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracks",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		list, err := st.TrackRepo().List(cmd.Context())
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd.OutOrStdout(), list)
		}
		renderTracks(cmd.OutOrStdout(), list)
		return nil
	},
}

var tracksShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a track and its required skills",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		t, err := st.TrackRepo().Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd.OutOrStdout(), t)
		}
		renderTrack(cmd.OutOrStdout(), t)
		return nil
	},
}

func init() {
	tracksCmd.PersistentFlags().Bool("json", false, "Print JSON")

	tracksCmd.AddCommand(tracksListCmd)
	tracksCmd.AddCommand(tracksShowCmd)
}
