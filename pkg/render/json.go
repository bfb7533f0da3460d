package render

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-formstate/pkg/model"
)

// JSONRenderer serialises session state for API clients instead of drawing
// the form.
type JSONRenderer struct {
	Indent bool
}

// Name reports the renderer identifier.
func (JSONRenderer) Name() string {
	return "json"
}

// ContentType reports the media type of Render's output.
func (JSONRenderer) ContentType() string {
	return "application/json"
}

type jsonState struct {
	Form       string            `json:"form"`
	Record     model.Record      `json:"record"`
	Errors     map[string]string `json:"errors"`
	FormErrors []string          `json:"formErrors,omitempty"`
	Notice     string            `json:"notice,omitempty"`
	Theme      string            `json:"theme,omitempty"`
	CanSubmit  bool              `json:"canSubmit"`
	Hidden     map[string]string `json:"hidden,omitempty"`
}

// Render encodes the record, the error record and the notice.
func (r JSONRenderer) Render(ctx context.Context, form model.Form, opts RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	state := jsonState{
		Form:       form.ID,
		Record:     opts.Record,
		Errors:     opts.Errors.Strings(),
		FormErrors: opts.FormErrors,
		Notice:     opts.Notice,
		Theme:      opts.Mode,
		CanSubmit:  opts.CanSubmit,
	}
	if hidden := SortedHiddenFields(opts.Hidden...); len(hidden) > 0 {
		state.Hidden = make(map[string]string, len(hidden))
		for _, h := range hidden {
			state.Hidden[h.Name] = h.Value
		}
	}
	var (
		out []byte
		err error
	)
	if r.Indent {
		out, err = json.MarshalIndent(state, "", "  ")
	} else {
		out, err = json.Marshal(state)
	}
	if err != nil {
		return nil, fmt.Errorf("render: encode json state: %w", err)
	}
	return out, nil
}
