package render

import (
	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// RenderOptions carry the session state a renderer displays. Every input is
// controlled: its displayed value comes from Record, never from leftover
// client state.
type RenderOptions struct {
	// Record holds the current field values.
	Record model.Record
	// Errors holds the inline messages of the latest validation pass.
	Errors validation.ErrorRecord
	// FormErrors lists messages not tied to a field (transport or collaborator
	// failures).
	FormErrors []string
	// Notice is a blocking message such as the submit confirmation.
	Notice string
	// Mode is the session's colour scheme; ThemeLabel captions the toggle.
	Mode       string
	ThemeLabel string
	// Theme carries tokens and CSS variables resolved through go-theme.
	Theme *gotheme.RendererConfig
	// CanSubmit mirrors the terms gate; renderers disable submit otherwise.
	CanSubmit bool
	// Action is the base path form controls post to.
	Action string
	// Hidden lists hidden inputs emitted with every form control.
	Hidden []HiddenField
}
