package vanilla

import (
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/theme"
)

// FormMarker is the hidden input posted with the full form. Transports use
// it to tell a whole-form post (where an absent checkbox means unchecked)
// from a single-control edit.
const FormMarker = "_form"

// RatingParam names the value posted by the star buttons.
const RatingParam = "value"

type optionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type starView struct {
	Value  string `json:"value"`
	Filled bool   `json:"filled"`
}

type fieldView struct {
	Name        string       `json:"name"`
	ID          string       `json:"id"`
	ErrorID     string       `json:"error_id"`
	Label       string       `json:"label"`
	Input       string       `json:"input"`
	Type        string       `json:"type"`
	Placeholder string       `json:"placeholder"`
	Help        string       `json:"help"`
	Required    bool         `json:"required"`
	Value       string       `json:"value"`
	Checked     bool         `json:"checked"`
	Min         string       `json:"min"`
	Max         string       `json:"max"`
	Options     []optionView `json:"options"`
	Stars       []starView   `json:"stars"`
	Error       string       `json:"error"`
}

type sectionView struct {
	Title  string      `json:"title"`
	Help   string      `json:"help"`
	Fields []fieldView `json:"fields"`
}

type hiddenView struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type pageView struct {
	Title      string            `json:"title"`
	Subtitle   string            `json:"subtitle"`
	Mode       string            `json:"mode"`
	ThemeLabel string            `json:"theme_label"`
	CSSVars    string            `json:"css_vars"`
	Stylesheet string            `json:"stylesheet"`
	Notice     string            `json:"notice"`
	FormErrors []string          `json:"form_errors"`
	Action     string            `json:"action"`
	Hidden     []hiddenView      `json:"hidden"`
	CanSubmit  bool              `json:"can_submit"`
	Sections   []sectionView     `json:"sections"`
	Classes    map[string]string `json:"classes"`
}

// buildView flattens the form and session state into plain strings and
// booleans. Every displayed value is read from opts.Record.
func buildView(form model.Form, opts render.RenderOptions, classes ChromeClasses, stylesheet string) pageView {
	mode := opts.Mode
	if mode == "" {
		mode = theme.DefaultMode.String()
	}
	label := opts.ThemeLabel
	if label == "" {
		label = theme.Mode(mode).ToggleLabel()
	}
	var cssVars string
	if opts.Theme != nil {
		cssVars = theme.CSSVarsStyle(opts.Theme.CSSVars)
	}

	view := pageView{
		Title:      form.Title,
		Subtitle:   form.Subtitle,
		Mode:       mode,
		ThemeLabel: label,
		CSSVars:    cssVars,
		Stylesheet: stylesheet,
		Notice:     opts.Notice,
		FormErrors: opts.FormErrors,
		Action:     opts.Action,
		CanSubmit:  opts.CanSubmit,
		Classes:    classes.resolve(),
	}
	for _, h := range render.SortedHiddenFields(opts.Hidden...) {
		view.Hidden = append(view.Hidden, hiddenView{Name: h.Name, Value: h.Value})
	}

	record := opts.Record
	for _, section := range form.Sections {
		sv := sectionView{Title: section.Title, Help: section.Help}
		for _, name := range section.Fields {
			field, ok := form.Field(name)
			if !ok {
				continue
			}
			sv.Fields = append(sv.Fields, buildField(field, &record, opts.Errors[name]))
			if name == model.AcceptTerms && sv.Help == "" {
				sv.Help = form.Terms
			}
		}
		view.Sections = append(view.Sections, sv)
	}
	return view
}

func buildField(field model.Field, record *model.Record, message string) fieldView {
	fv := fieldView{
		Name:        string(field.Name),
		ID:          controlID(string(field.Name)),
		ErrorID:     errorID(string(field.Name)),
		Label:       field.Label,
		Input:       field.Input,
		Type:        field.Input,
		Placeholder: field.Placeholder,
		Help:        field.Help,
		Required:    field.Required,
		Error:       message,
	}
	if field.Bounds != nil {
		fv.Min = itoa(field.Bounds.Min)
		fv.Max = itoa(field.Bounds.Max)
	}

	value, _ := record.Get(field.Name)
	switch v := value.(type) {
	case string:
		fv.Value = v
		for _, opt := range field.Options {
			fv.Options = append(fv.Options, optionView{Value: opt.Value, Label: opt.Label, Selected: opt.Value == v})
		}
	case bool:
		fv.Checked = v
	case int:
		fv.Value = itoa(v)
	case model.StringSet:
		for _, opt := range field.Options {
			fv.Options = append(fv.Options, optionView{Value: opt.Value, Label: opt.Label, Selected: v.Has(opt.Value)})
		}
	}

	switch field.Name {
	case model.Password:
		if record.ShowPassword {
			fv.Type = "text"
		}
	case model.Rating:
		for star := 1; star <= model.RatingMax; star++ {
			fv.Stars = append(fv.Stars, starView{Value: itoa(star), Filled: record.Rating >= star})
		}
	}
	return fv
}
