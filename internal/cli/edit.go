package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-publishing/pkg/render"
	"github.com/goliatone/go-publishing/pkg/renderers/tui"
	"github.com/goliatone/go-publishing/pkg/settings"
)

// newPromptDriver is replaced in tests to script answers.
var newPromptDriver func() tui.PromptDriver

func newEditCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the publishing settings interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFromCommand(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			opts := []tui.Option{
				tui.WithOptionKey(rt.Group.OptionKey()),
				tui.WithTheme(tui.Theme{ErrorPrefix: "error: "}),
			}
			if newPromptDriver != nil {
				opts = append(opts, tui.WithPromptDriver(newPromptDriver()))
			}
			editor, err := tui.New(rt.Taxonomy, opts...)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			stored, err := rt.Store.Load(ctx, rt.Group.OptionKey())
			if err != nil {
				return err
			}
			submitted, err := editor.Collect(ctx, rt.Group.Schema(), stored)
			if err != nil {
				if errors.Is(err, tui.ErrAborted) {
					fmt.Fprintln(cmd.ErrOrStderr(), "aborted, nothing saved")
					return nil
				}
				return err
			}

			var notices render.Notices
			sanitized, err := rt.Group.Sanitize(ctx, submitted, &notices)
			if err != nil && !errors.Is(err, settings.ErrUnknownField) {
				return err
			}
			if err := editor.ShowNotices(ctx, notices.Errors()); err != nil {
				return err
			}

			if dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), "dry run, nothing saved")
				return nil
			}
			if err := rt.Store.Save(ctx, rt.Group.OptionKey(), sanitized); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Settings saved.")
			if notices.Len() > 0 {
				return exitCodeError(ExitNotices, fmt.Errorf("saved with %d notice(s)", notices.Len()))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Collect and sanitize without saving")

	return cmd
}
