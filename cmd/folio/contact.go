package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/var1d/folio/internal/cli"
	"github.com/var1d/folio/pkg/runner"
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Fill in and send the contact form from the terminal",
	Long: `Opens one contact session and reads commands line by line (type help).
With piped input no prompt is printed and the command waits for the last
delivery before it exits. Ctrl+C leaves; during a delivery the first Ctrl+C
only warns.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, debug, err := setup(cmd)
		if err != nil {
			return err
		}

		signals := runner.NewSignalManager()
		defer signals.Stop()

		stack, err := cli.BuildStack(signals.Context(), cfg, logger, cli.StackOptions{Debug: debug})
		if err != nil {
			return err
		}
		defer stack.Close(context.Background())

		sessionID, _ := cmd.Flags().GetString("session")
		plain, _ := cmd.Flags().GetBool("plain")

		return cli.RunContact(context.Background(), stack, cli.ContactOptions{
			SessionID:   sessionID,
			Interactive: cli.IsTerminal(os.Stdin) && cli.IsTerminal(os.Stdout),
			Plain:       plain,
			Signals:     signals,
		}, os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(contactCmd)
	contactCmd.Flags().StringP("session", "s", "", "Session ID (default: generated)")
	contactCmd.Flags().Bool("plain", false, "Disable colours and markdown rendering")
}
