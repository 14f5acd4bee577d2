package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/stratum/internal/hook"
	"github.com/felixgeelhaar/stratum/internal/log"
)

// hookHandler is the shape every hook entry point shares
type hookHandler interface {
	Handle(ctx context.Context, input *hook.Input) *hook.Response
}

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Hook entry points for interactive sessions",
	Long: `Hook entry points speaking the stdin/stdout JSON protocol: each reads
one event payload from stdin and writes one decision to stdout. Wire them
into the session's hook configuration; they are not meant for direct use.`,
}

var hookSessionStartCmd = &cobra.Command{
	Use:   "session-start",
	Short: "Validate the task graph and inject ready tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHook(cmd, hook.NewSessionStartHandler(projectDir(), log.DefaultLogger()))
	},
}

var hookGateCheckCmd = &cobra.Command{
	Use:   "gate-check",
	Short: "Surface cached gate results on prompt submit",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHook(cmd, hook.NewGateCheckHandler(projectDir(), log.DefaultLogger()))
	},
}

var hookSubagentStopCmd = &cobra.Command{
	Use:   "subagent-stop",
	Short: "Require rebased worktree branches before subagents finish",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHook(cmd, hook.NewSubagentStopHandler(log.DefaultLogger()))
	},
}

var hookVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Block session stop until make verify passes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHook(cmd, hook.NewVerifyHandler(projectDir(), log.DefaultLogger()))
	},
}

func runHook(cmd *cobra.Command, handler hookHandler) error {
	input := hook.ReadInput(cmd.InOrStdin())
	response := handler.Handle(cmd.Context(), input)
	return hook.WriteResponse(cmd.OutOrStdout(), response)
}

func init() {
	hookCmd.AddCommand(hookSessionStartCmd, hookGateCheckCmd, hookSubagentStopCmd, hookVerifyCmd)
	rootCmd.AddCommand(hookCmd)
}
