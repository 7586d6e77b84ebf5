package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/telly/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [target] [KEY=VALUE...]",
		Short: "Run a task and its prerequisites",
		Long: "Run a task and its prerequisites. The target defaults to 'default'.\n" +
			"Options may also be given as KEY=VALUE pairs (debug=1, target=9.1, id=<device>)\n" +
			"or through the environment variables of the same name.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, assignments := splitTarget(args)

			opts, err := resolveOptions(cmd.Flags(), assignments)
			if err != nil {
				return err
			}

			outputMode, _ := cmd.Flags().GetString("output-mode")
			ci, _ := cmd.Flags().GetBool("ci")
			if ci {
				outputMode = "linear"
			}

			result, err := c.app.Run(cmd.Context(), target, app.RunOptions{
				Options:    opts,
				OutputMode: outputMode,
			})
			if err != nil {
				return err
			}

			if result != nil && result.DeployedAppPath != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), result.DeployedAppPath)
			}
			return nil
		},
	}

	cmd.Flags().String("target", "", "OS version to simulate (environment: target)")
	cmd.Flags().Bool("debug", false, "Attach the debugger (environment: debug)")
	cmd.Flags().Bool("skip-build", false, "Launch the simulator without building (environment: skip_build)")
	cmd.Flags().String("args", "", "Arguments passed to the application (environment: args)")
	cmd.Flags().String("id", "", "Device identifier (environment: id)")
	cmd.Flags().Bool("install-only", false, "Install on the device without launching (environment: install_only)")
	cmd.Flags().Bool("trace", false, "Verbose deploy tool output (environment: trace)")
	cmd.Flags().BoolP("verbose", "v", false, "Print external commands before running them (environment: verbose)")
	cmd.Flags().StringP("output-mode", "o", "auto", "Output mode: auto, linear, or quiet")
	cmd.Flags().Bool("ci", false, "Use linear output mode (shorthand for --output-mode=linear)")
	return cmd
}

// splitTarget separates the task name from the KEY=VALUE assignments.
// The task name is the first argument without '='.
func splitTarget(args []string) (string, []string) {
	var target string
	assignments := make([]string, 0, len(args))
	for _, arg := range args {
		if target == "" && !strings.Contains(arg, "=") {
			target = arg
			continue
		}
		assignments = append(assignments, arg)
	}
	return target, assignments
}
