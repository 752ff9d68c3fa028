package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/payrouter"
	"github.com/hupe1980/payrouter/core"
)

var (
	askRole         string
	askParams       []string
	askThreadID     string
	askDisableTools bool
)

var askCmd = &cobra.Command{
	Use:   "ask [query]",
	Short: "Route a query to an agent and print the response",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askRole, "role", "", "pin a role instead of classifying (policy_extraction, pay_calculation, analytics)")
	askCmd.Flags().StringArrayVarP(&askParams, "param", "p", nil, "context parameter as key=value, repeatable")
	askCmd.Flags().StringVar(&askThreadID, "thread", "", "reuse an existing thread id")
	askCmd.Flags().BoolVar(&askDisableTools, "no-tools", false, "disable tool invocation for this run")
}

func runAsk(cmd *cobra.Command, args []string) error {
	orch, _, _, err := buildApp()
	if err != nil {
		return err
	}

	params, err := parseParams(askParams)
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	resp := orch.RouteRequest(cmd.Context(), query, func(o *payrouter.RequestOptions) {
		o.Role = core.Role(askRole)
		o.Parameters = params
		o.ThreadID = askThreadID
		o.DisableTools = askDisableTools
	})

	fmt.Printf("routed to: %s (confidence %.2f, source %s)\n",
		resp.Decision.Primary, resp.Decision.Confidence, resp.Decision.Source)
	if !resp.Outcome.OK() {
		return fmt.Errorf("%s: %s", resp.Outcome.Err.Kind, resp.Outcome.Err.Message)
	}
	fmt.Println(resp.Outcome.Result)
	return nil
}

func parseParams(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	params := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, want key=value", pair)
		}
		params[key] = value
	}
	return params, nil
}
