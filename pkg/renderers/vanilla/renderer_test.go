package vanilla_test

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/renderers/vanilla"
	"github.com/goliatone/go-formstate/pkg/testsupport"
	"github.com/goliatone/go-formstate/pkg/theme"
	"github.com/goliatone/go-formstate/pkg/validation"
)

func renderPage(t *testing.T, opts render.RenderOptions, options ...vanilla.Option) string {
	t.Helper()
	renderer, err := vanilla.New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), model.PracticeForm(), opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func mustContain(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, html)
		}
	}
}

func mustNotContain(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if strings.Contains(html, fragment) {
			t.Fatalf("expected output not to contain %q", fragment)
		}
	}
}

func TestRenderDefaultRecord(t *testing.T) {
	html := renderPage(t, render.RenderOptions{Record: model.DefaultRecord(), Action: "/form"})

	mustContain(t, html,
		`<html lang="en" data-theme="light">`,
		"Modern Form Design Practice",
		`action="/form/submit"`,
		`<button type="submit" class="fs-submit" disabled>Submit</button>`,
		`name="volume" min="0" max="100" value="50"`,
		"🌙 Dark Mode",
		`<input type="password" id="fs-password" name="password" value=""`,
	)
	mustNotContain(t, html, "fs-star fs-star-filled", `class="fs-error"`)

	if got := strings.Count(html, `class="fs-star"`); got != model.RatingMax {
		t.Fatalf("expected %d empty stars, got %d", model.RatingMax, got)
	}
}

func TestRenderControlledValues(t *testing.T) {
	record := testsupport.ValidRecord()
	record.ShowPassword = true
	record.Interests = model.NewStringSet("Music")
	record.BioDescription = "Hello <b>world</b>"

	html := renderPage(t, render.RenderOptions{Record: record, CanSubmit: true})

	mustContain(t, html,
		`name="fullName" value="Ada Lovelace"`,
		`<input type="text" id="fs-password" name="password" value="longenough1"`,
		`<option value="usa" selected>United States</option>`,
		`name="gender" value="Female" checked`,
		`name="interests" value="Music" checked`,
		`name="acceptTerms" value="on" checked`,
		`<button type="submit" class="fs-submit">Submit</button>`,
		"Hello &lt;b&gt;world&lt;/b&gt;",
	)
	mustNotContain(t, html, `name="interests" value="Travel" checked`, "<b>world</b>")

	if got := strings.Count(html, "fs-star fs-star-filled"); got != 4 {
		t.Fatalf("expected 4 filled stars, got %d", got)
	}
}

func TestRenderInlineErrorsAndNotice(t *testing.T) {
	errs := validation.MustNew().Validate(testsupport.InvalidRecord())
	html := renderPage(t, render.RenderOptions{
		Record:     testsupport.InvalidRecord(),
		Errors:     errs,
		Notice:     "Please fix the errors before submitting",
		FormErrors: []string{"Upstream unavailable"},
	})

	mustContain(t, html,
		`<div class="fs-notice" role="alert">Please fix the errors before submitting</div>`,
		"<li>Upstream unavailable</li>",
		`<p class="fs-error" id="fs-email-error" role="alert">Valid email required</p>`,
		`aria-describedby="fs-email-error"`,
	)
	re := regexp.MustCompile(`class="fs-error"`)
	if got := len(re.FindAllString(html, -1)); got != len(errs) {
		t.Fatalf("expected %d inline errors, got %d", len(errs), got)
	}
}

func TestRenderThemeAndHiddenFields(t *testing.T) {
	sel, err := theme.NewSelector().ForMode(theme.Dark)
	if err != nil {
		t.Fatalf("select theme: %v", err)
	}

	html := renderPage(t, render.RenderOptions{
		Record: model.DefaultRecord(),
		Mode:   theme.Dark.String(),
		Theme:  theme.RendererConfig(sel),
		Hidden: []render.HiddenField{render.CSRFToken("_csrf", "token-1")},
	}, vanilla.WithChromeClasses(vanilla.ChromeClasses{Form: "custom fs-ignored"}), vanilla.WithStylesheet(""))

	mustContain(t, html,
		`data-theme="dark"`,
		"☀️ Light Mode",
		"--background: #0f172a;",
		`<input type="hidden" name="_csrf" value="token-1">`,
		`<main class="custom"`,
	)
	mustNotContain(t, html, "<style>")
}

func TestRenderHonoursContext(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := renderer.Render(ctx, model.PracticeForm(), render.RenderOptions{}); err == nil {
		t.Fatalf("expected context error")
	}
}
