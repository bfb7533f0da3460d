// Package theme keeps the light/dark scheme as explicit per-session state and
// resolves it through go-theme into the tokens and CSS variables renderers
// apply to the form's root element.
package theme
