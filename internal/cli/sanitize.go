package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-publishing/pkg/model"
	"github.com/goliatone/go-publishing/pkg/render"
	"github.com/goliatone/go-publishing/pkg/settings"
	"github.com/goliatone/go-publishing/pkg/store"
)

type sanitizeOutput struct {
	Values  model.Values    `json:"values"`
	Notices []render.Notice `json:"notices"`
}

func newSanitizeCmd() *cobra.Command {
	var input string
	var save bool

	cmd := &cobra.Command{
		Use:   "sanitize",
		Short: "Sanitize a JSON submission read from stdin or --input",
		Long: "Sanitize reads a JSON object of field id to submitted value, applies the " +
			"publishing sanitize rules and prints the sanitized values with any notices. " +
			"It exits with status 2 when notices were registered.",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFromCommand(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			var payload []byte
			if input == "" || input == "-" {
				payload, err = io.ReadAll(cmd.InOrStdin())
			} else {
				payload, err = os.ReadFile(input)
			}
			if err != nil {
				return fmt.Errorf("read submission: %w", err)
			}
			submitted, err := store.Decode(payload)
			if err != nil {
				return fmt.Errorf("decode submission: %w", err)
			}

			ctx := cmd.Context()
			var notices render.Notices
			sanitized, err := rt.Group.Sanitize(ctx, submitted, &notices)
			if err != nil {
				if !errors.Is(err, settings.ErrUnknownField) {
					return err
				}
				rt.Logger.Warn("submission carried unknown fields", "error", err)
			}

			if save {
				if err := rt.Store.Save(ctx, rt.Group.OptionKey(), sanitized); err != nil {
					return err
				}
			}

			out := sanitizeOutput{Values: sanitized, Notices: notices.Errors()}
			if out.Notices == nil {
				out.Notices = []render.Notice{}
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(out); err != nil {
				return fmt.Errorf("encode output: %w", err)
			}

			if notices.Len() > 0 {
				return exitCodeError(ExitNotices, fmt.Errorf("sanitize registered %d notice(s)", notices.Len()))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Submission JSON file (stdin if empty or -)")
	cmd.Flags().BoolVar(&save, "save", false, "Persist the sanitized values")

	return cmd
}
