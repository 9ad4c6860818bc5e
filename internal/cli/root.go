package cli

import "github.com/spf13/cobra"

const configFlag = "config"

// NewRootCmd builds the publishing-settings root command tree.
func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "publishing-settings",
		Short:         "Render, edit and sanitize the Publishing Settings panel",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().String(configFlag, "", "Path to config file (defaults to $PUBLISHING_SETTINGS_CONFIG)")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newSanitizeCmd())
	cmd.AddCommand(newEditCmd())
	cmd.AddCommand(newVersionCmd(version))

	return cmd
}
