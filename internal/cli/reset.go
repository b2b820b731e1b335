package cli

import (
	"github.com/spf13/cobra"

	"github.com/linkvote-app/linkvote/internal/daemon"
)

func init() {
	rootCmd.AddCommand(resetCmd)
}

var resetCmd = &cobra.Command{
	Use:   "reset-votes",
	Short: "Run the daily quota reset once and exit",
	Long: `Search all locked sessions, penalize missed quotas, and zero the
daily vote counters. The serve command runs this automatically each day.`,
	RunE: runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	return d.ResetJob.Run(cmd.Context())
}
