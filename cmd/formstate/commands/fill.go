package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/formstate"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/renderers/tui"
	"github.com/goliatone/go-formstate/pkg/submission"
	"github.com/goliatone/go-formstate/pkg/theme"
)

func newFillCommand(a *app) *cobra.Command {
	var (
		output      string
		themeName   string
		maxAttempts int
	)

	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill in the practice form interactively",
		Long: `Prompt for every field in form order, submit, and re-prompt only the
fields that failed validation. The submitted record is written to stdout.`,
		Example: `  formstate fill --output pretty`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("output") {
				output = a.cfg.Output
			}
			format, ok := tui.ParseOutputFormat(output)
			if !ok {
				return fmt.Errorf("unknown output format %q", output)
			}
			if !cmd.Flags().Changed("theme") {
				themeName = a.cfg.Theme
			}
			mode, err := theme.ParseMode(themeName)
			if err != nil {
				return err
			}

			terminal := terminalTheme(mode)
			driver := a.driver
			if driver == nil {
				driver = tui.NewSurveyDriver(cmd.ErrOrStderr(), tui.WithErrorIcon(strings.TrimSpace(terminal.ErrorPrefix)))
			}
			submitter := submission.NewLogger(a.log)

			renderer, err := tui.New(
				tui.WithPromptDriver(driver),
				tui.WithOutputFormat(format),
				tui.WithMaxAttempts(maxAttempts),
				tui.WithTheme(terminal),
				tui.WithEngineFactory(func() *formstate.Engine {
					return formstate.New(
						formstate.WithSubmitter(submitter),
						formstate.WithLogger(a.log),
					)
				}),
			)
			if err != nil {
				return err
			}

			out, err := renderer.Render(cmd.Context(), model.PracticeForm(), render.RenderOptions{})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json, form or pretty")
	cmd.Flags().StringVar(&themeName, "theme", "", "message style: light or dark")
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", 0, "stop after this many failed submits (0 = unlimited)")

	return cmd
}

func terminalTheme(mode theme.Mode) tui.Theme {
	if mode == theme.Dark {
		return tui.Theme{InfoPrefix: "» ", ErrorPrefix: "✗ "}
	}
	return tui.Theme{InfoPrefix: "", ErrorPrefix: "error: "}
}
