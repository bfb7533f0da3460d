package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/internal/loader"
	"github.com/goliatone/go-formstate/pkg/formstate"
	"github.com/goliatone/go-formstate/pkg/schema"
)

// ErrInvalidRecord is returned by validate when the record fails a rule.
var ErrInvalidRecord = errors.New("record is invalid")

func newValidateCommand(a *app) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "validate <record.yaml|record.json|url>",
		Short: "Validate a record document against the form rules",
		Long: `Load a record from a file or http(s) URL, check it against the payload
schema and run every validation rule. The error record is printed as JSON;
the command exits non-zero when any rule fails.`,
		Example: `  formstate validate ./record.yaml
  formstate validate https://example.com/record.json --timeout 5s`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := schema.ParseSource(args[0])
			if err != nil {
				return err
			}
			ldr := loader.New(schema.NewLoaderOptions(schema.WithHTTPFallback(timeout)))
			doc, err := ldr.Load(cmd.Context(), src)
			if err != nil {
				return fmt.Errorf("load record: %w", err)
			}
			record, err := doc.Record()
			if err != nil {
				return err
			}

			engine := formstate.New(formstate.WithLogger(a.log))
			engine.Load(record)
			errs := engine.Validate()

			out, err := json.MarshalIndent(errs.Strings(), "", "  ")
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(out)); err != nil {
				return err
			}
			a.log.Debug().Str("source", doc.Location()).Int("errors", len(errs)).Msg("record validated")
			if !errs.Valid() {
				return fmt.Errorf("%w: %d field(s) failed", ErrInvalidRecord, len(errs))
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Timeout for fetching remote records")
	return cmd
}
