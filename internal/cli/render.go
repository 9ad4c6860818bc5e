package cli

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-publishing/pkg/settings"
)

func newRenderCmd() *cobra.Command {
	var output string
	var field string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the settings page (or one field) as HTML",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFromCommand(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx := cmd.Context()
			stored, err := rt.Store.Load(ctx, rt.Group.OptionKey())
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if field = strings.TrimSpace(field); field != "" {
				err = rt.Group.RenderField(ctx, &buf, field, stored)
			} else {
				err = rt.Group.Render(ctx, &buf, stored, settings.PageOptions{})
			}
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write output %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Settings page written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout if empty)")
	cmd.Flags().StringVar(&field, "field", "", "Render only the control for this field id")

	return cmd
}
