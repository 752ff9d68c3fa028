package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Provision or reconnect the full agent pool",
	Long: `Resolve an agent id for every role: reuse persisted ids, discover
existing remote agents by name, and provision whatever is missing. The
resolved mapping is printed and persisted.`,
	RunE: runDeploy,
}

func runDeploy(cmd *cobra.Command, args []string) error {
	orch, _, _, err := buildApp()
	if err != nil {
		return err
	}

	if err := orch.EnsureAgentsDeployed(cmd.Context()); err != nil {
		return err
	}

	for role, id := range orch.AgentIDs() {
		fmt.Printf("%s: %s\n", role, id)
	}
	return nil
}
