package server

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-formstate/pkg/formstate"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/renderers/vanilla"
	"github.com/goliatone/go-formstate/pkg/schema"
	"github.com/goliatone/go-formstate/pkg/theme"
)

const (
	maxPayloadBytes = 1 << 20
	jsonMediaType   = "application/json"
	// csrfField carries the session token on whole-form posts.
	csrfField = "_csrf"
)

// requestError marks input rejected at the transport boundary.
type requestError struct {
	msg string
}

func (e *requestError) Error() string {
	return e.msg
}

func badRequest(format string, args ...any) error {
	return &requestError{msg: fmt.Sprintf(format, args...)}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	s.renderState(w, r, sess)
}

// edit checks a request against the session and returns the change to
// apply. Nothing may touch the session before the commit runs.
type edit func(r *http.Request, sess *session) (commit func(), err error)

// mutation wraps an edit handler. Posts carrying the whole form are synced
// into the engine first so values typed since the last round trip are kept.
// The sync and the edit are both checked before either is applied, so a
// rejected request leaves the session as it was.
func (s *Server) mutation(prepare edit) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxPayloadBytes)
		if err := r.ParseForm(); err != nil {
			s.writeError(w, r, http.StatusBadRequest, "invalid form payload")
			return
		}

		sess := s.session(w, r)
		sess.mu.Lock()
		defer sess.mu.Unlock()

		if r.PostForm.Has(vanilla.FormMarker) && !validToken(sess, r.PostForm.Get(csrfField)) {
			s.log.Warn().Str("path", r.URL.Path).Msg("form token mismatch")
			s.writeError(w, r, http.StatusForbidden, "invalid form token")
			return
		}

		applySync, err := s.planSync(sess, r.PostForm)
		var commit func()
		if err == nil {
			commit, err = prepare(r, sess)
		}
		if err != nil {
			var reqErr *requestError
			if errors.As(err, &reqErr) {
				s.writeError(w, r, http.StatusBadRequest, reqErr.msg)
				return
			}
			s.log.Error().Err(err).Str("path", r.URL.Path).Msg("mutation failed")
			s.writeError(w, r, http.StatusInternalServerError, "internal error")
			return
		}
		applySync()
		commit()

		if wantsJSON(r) {
			s.renderState(w, r, sess)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	})
}

func (s *Server) applyFieldEdit(r *http.Request, sess *session) (func(), error) {
	name := model.FieldName(strings.TrimSpace(r.PostForm.Get("name")))
	field, ok := s.form.Field(name)
	if !ok {
		return nil, badRequest("unknown field %q", name)
	}
	raw, present := r.PostForm["value"]
	switch {
	case field.Name == model.Rating:
		return ratingEdit(sess, r.PostForm.Get("value"))
	case field.Kind == model.FieldKindSet:
		if err := checkOptions(field, raw); err != nil {
			return nil, err
		}
		return func() { replaceSet(sess, field, raw) }, nil
	}
	value, err := decodeValue(field, raw, present)
	if err != nil {
		return nil, err
	}
	return func() { sess.engine.SetField(name, value) }, nil
}

func (s *Server) applyToggle(r *http.Request, sess *session) (func(), error) {
	group := model.FieldName(strings.TrimSpace(r.PostForm.Get("group")))
	field, ok := s.form.Field(group)
	if !ok || field.Kind != model.FieldKindSet {
		return nil, badRequest("%q is not a choice group", group)
	}
	item := r.PostForm.Get("item")
	if !field.HasOption(item) {
		return nil, badRequest("%q is not an option of %s", item, group)
	}
	return func() { sess.engine.ToggleSetMembership(group, item) }, nil
}

func (s *Server) applyRating(r *http.Request, sess *session) (func(), error) {
	return ratingEdit(sess, r.PostForm.Get(vanilla.RatingParam))
}

func (s *Server) applySubmit(r *http.Request, sess *session) (func(), error) {
	return func() {
		result, err := sess.engine.TrySubmit(r.Context())
		if err != nil {
			s.log.Error().Err(err).Msg("submission failed")
			sess.formErrors = render.MergeFormErrors(sess.formErrors, "Submission failed, please try again")
			return
		}
		sess.notice = result.Notice
	}, nil
}

func (s *Server) applyReset(_ *http.Request, sess *session) (func(), error) {
	return sess.engine.Reset, nil
}

func (s *Server) applyCancel(_ *http.Request, sess *session) (func(), error) {
	return func() { sess.notice = sess.engine.Cancel() }, nil
}

func (s *Server) applyTheme(_ *http.Request, sess *session) (func(), error) {
	return func() { sess.mode = sess.mode.Toggle() }, nil
}

func ratingEdit(sess *session, raw string) (func(), error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value < 1 || value > model.RatingMax {
		return nil, badRequest("rating must be a whole number from 1 to %d", model.RatingMax)
	}
	return func() { sess.engine.SetRating(value) }, nil
}

// planSync decodes the controls of a whole-form post. Only values that
// differ from the record are dispatched, so errors on untouched fields stay
// visible. Rating is posted by its own buttons and is not synced. The
// returned func applies every change; it is a no-op for other posts.
func (s *Server) planSync(sess *session, values url.Values) (func(), error) {
	if !values.Has(vanilla.FormMarker) {
		return func() {}, nil
	}
	var changes []func()
	for _, field := range s.form.Fields {
		if field.Name == model.Rating {
			continue
		}
		raw, present := values[string(field.Name)]
		switch field.Kind {
		case model.FieldKindSet:
			if err := checkOptions(field, raw); err != nil {
				return nil, err
			}
			changes = append(changes, func() { replaceSet(sess, field, raw) })
			continue
		case model.FieldKindText, model.FieldKindNumber:
			// Text and range inputs are always posted; absence means the
			// control was not on the page.
			if !present {
				continue
			}
		}
		value, err := decodeValue(field, raw, present)
		if err != nil {
			return nil, err
		}
		if sameValue(sess.engine.Value(field.Name), value) {
			continue
		}
		name := field.Name
		changes = append(changes, func() { sess.engine.SetField(name, value) })
	}
	return func() {
		for _, change := range changes {
			change()
		}
	}, nil
}

func checkOptions(field model.Field, raw []string) error {
	for _, item := range raw {
		if !field.HasOption(item) {
			return badRequest("%q is not an option of %s", item, field.Name)
		}
	}
	return nil
}

// replaceSet toggles the difference between the current set and the posted
// items, keeping the insertion order of items that stay selected. Items must
// have passed checkOptions.
func replaceSet(sess *session, field model.Field, raw []string) {
	want := make(map[string]struct{}, len(raw))
	for _, item := range raw {
		want[item] = struct{}{}
	}
	current, _ := sess.engine.Value(field.Name).(model.StringSet)
	for _, item := range current.Items() {
		if _, keep := want[item]; !keep {
			sess.engine.ToggleSetMembership(field.Name, item)
		}
	}
	for _, item := range raw {
		if !current.Has(item) {
			sess.engine.ToggleSetMembership(field.Name, item)
			current.Add(item)
		}
	}
}

// decodeValue turns posted strings into the value stored for field,
// rejecting anything the engine would treat as a contract violation.
func decodeValue(field model.Field, raw []string, present bool) (any, error) {
	var first string
	if len(raw) > 0 {
		first = raw[0]
	}

	var value any = first
	switch field.Kind {
	case model.FieldKindText:
		if field.Name != model.Password {
			value = sanitizeText(first)
		}
	case model.FieldKindEnum:
		if first != "" && !field.HasOption(first) {
			return nil, badRequest("%q is not an option of %s", first, field.Name)
		}
	case model.FieldKindBoolean:
		if !present {
			value = false
		}
	case model.FieldKindNumber:
		if !present {
			return nil, badRequest("%s requires a value", field.Name)
		}
	}

	coerced, err := model.Coerce(field.Name, value)
	if err != nil {
		var coerceErr *model.CoercionError
		if errors.As(err, &coerceErr) {
			return nil, badRequest("invalid %s: %s", field.Name, coerceErr.Reason)
		}
		return nil, badRequest("invalid %s", field.Name)
	}
	return coerced, nil
}

func sameValue(current, next any) bool {
	if set, ok := current.(model.StringSet); ok {
		other, ok := next.(model.StringSet)
		return ok && set.Equal(other)
	}
	return current == next
}

func (s *Server) renderOptions(sess *session) render.RenderOptions {
	notice, formErrors := sess.flash()
	opts := render.RenderOptions{
		Record:     sess.engine.Record(),
		Errors:     sess.engine.Errors(),
		FormErrors: formErrors,
		Notice:     notice,
		Mode:       sess.mode.String(),
		ThemeLabel: sess.mode.ToggleLabel(),
		CanSubmit:  sess.engine.CanSubmit(),
		Hidden:     []render.HiddenField{render.CSRFToken(csrfField, sess.csrf)},
	}
	selection, err := s.selector.ForMode(sess.mode)
	if err != nil {
		s.log.Warn().Err(err).Str("mode", sess.mode.String()).Msg("theme selection failed")
		return opts
	}
	opts.Theme = theme.RendererConfig(selection)
	return opts
}

func validToken(sess *session, token string) bool {
	return token != "" && subtle.ConstantTimeCompare([]byte(token), []byte(sess.csrf)) == 1
}

func (s *Server) renderState(w http.ResponseWriter, r *http.Request, sess *session) {
	renderer := s.html
	if wantsJSON(r) {
		if jsonRenderer, err := s.registry.ForContentType(jsonMediaType); err == nil {
			renderer = jsonRenderer
		}
	}

	out, err := renderer.Render(r.Context(), s.form, s.renderOptions(sess))
	if err != nil {
		s.log.Error().Err(err).Str("renderer", renderer.Name()).Msg("render failed")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(out); err != nil {
		s.log.Debug().Err(err).Msg("write response")
	}
}

func (s *Server) handleSchema(w http.ResponseWriter, _ *http.Request) {
	out, err := schema.MarshalIndent()
	if err != nil {
		s.log.Error().Err(err).Msg("encode schema")
		http.Error(w, "encode schema", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", jsonMediaType)
	_, _ = w.Write(out)
}

type validateResponse struct {
	Valid      bool              `json:"valid"`
	Errors     map[string]string `json:"errors"`
	FormErrors []string          `json:"formErrors,omitempty"`
}

// handleValidate checks a JSON record on a throwaway engine. Structural
// problems are reported with 400, rule failures with 200 and valid=false.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, validateResponse{
			Errors:     map[string]string{},
			FormErrors: []string{"request body too large or unreadable"},
		})
		return
	}

	record, err := schema.DecodeRecord(body)
	if err != nil {
		mapping := render.MapErrorPayload(schema.ErrorPayload(err))
		s.writeJSON(w, http.StatusBadRequest, validateResponse{
			Errors:     mapping.Fields.Strings(),
			FormErrors: mapping.Form,
		})
		return
	}

	engine := formstate.New(formstate.WithLogger(s.baseLog))
	engine.Load(record)
	errs := engine.Validate()
	s.writeJSON(w, http.StatusOK, validateResponse{
		Valid:  errs.Valid(),
		Errors: errs.Strings(),
	})
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	if wantsJSON(r) {
		s.writeJSON(w, status, map[string]string{"error": message})
		return
	}
	http.Error(w, message, status)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", jsonMediaType)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Debug().Err(err).Msg("write json response")
	}
}

// wantsJSON reports whether the client asked for the JSON state instead of
// the HTML page.
func wantsJSON(r *http.Request) bool {
	if strings.EqualFold(r.URL.Query().Get("format"), "json") {
		return true
	}
	return strings.Contains(strings.ToLower(r.Header.Get("Accept")), jsonMediaType)
}
