package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	purgeYes  bool
	purgeKeep []string
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete all remote agents and clear persisted state",
	Long: `Sweep the remote directory and delete every agent except ids given
via --keep. This also removes agents outside the known pool, such as
duplicates left behind by interrupted provisioning.`,
	RunE: runPurge,
}

func init() {
	purgeCmd.Flags().BoolVarP(&purgeYes, "yes", "y", false, "skip the confirmation prompt")
	purgeCmd.Flags().StringArrayVar(&purgeKeep, "keep", nil, "agent id to keep, repeatable")
}

func runPurge(cmd *cobra.Command, args []string) error {
	orch, _, _, err := buildApp()
	if err != nil {
		return err
	}

	if !purgeYes {
		fmt.Print("about to delete all remote agents (except --keep ids), continue? [y/N] ")
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("aborted")
			return nil
		}
	}

	if err := orch.PurgeAgents(cmd.Context(), purgeKeep...); err != nil {
		return err
	}
	fmt.Println("purge complete")
	return nil
}
