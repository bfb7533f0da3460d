package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-formstate/pkg/formstate"
	"github.com/goliatone/go-formstate/pkg/telemetry"
	"github.com/goliatone/go-formstate/pkg/theme"
)

// session is one visitor's form. mu serialises every engine call.
type session struct {
	mu     sync.Mutex
	engine *formstate.Engine
	mode   theme.Mode
	// notice and formErrors are shown on the next render only.
	notice     string
	formErrors []string
	// csrf must come back with every whole-form post.
	csrf string

	lastSeen time.Time
}

func (s *session) flash() (string, []string) {
	notice, formErrors := s.notice, s.formErrors
	s.notice, s.formErrors = "", nil
	return notice, formErrors
}

type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time
	metrics  *telemetry.Metrics
	factory  func() *session
}

func newSessionStore(ttl time.Duration, now func() time.Time, metrics *telemetry.Metrics, factory func() *session) *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      now,
		metrics:  metrics,
		factory:  factory,
	}
}

// get returns the live session for id and refreshes its idle timer.
func (st *sessionStore) get(id string) (*session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sweepLocked()

	sess, ok := st.sessions[id]
	if !ok {
		return nil, false
	}
	sess.lastSeen = st.now()
	return sess, true
}

func (st *sessionStore) create() (string, *session) {
	id := uuid.NewString()
	sess := st.factory()
	sess.csrf = uuid.NewString()
	st.mu.Lock()
	defer st.mu.Unlock()
	sess.lastSeen = st.now()
	st.sessions[id] = sess
	st.metrics.SetActiveSessions(len(st.sessions))
	return id, sess
}

func (st *sessionStore) len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// sweepLocked drops sessions idle for longer than ttl. A zero ttl keeps
// sessions for the life of the process.
func (st *sessionStore) sweepLocked() {
	if st.ttl <= 0 {
		return
	}
	now := st.now()
	removed := false
	for id, sess := range st.sessions {
		if now.Sub(sess.lastSeen) > st.ttl {
			delete(st.sessions, id)
			removed = true
		}
	}
	if removed {
		st.metrics.SetActiveSessions(len(st.sessions))
	}
}

// session resolves the caller's session from its cookie, starting a new one
// when the cookie is missing or expired.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *session {
	if cookie, err := r.Cookie(s.cfg.CookieName); err == nil {
		if sess, ok := s.sessions.get(cookie.Value); ok {
			return sess
		}
	}
	id, sess := s.sessions.create()
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.log.Debug().Str("session", id).Msg("session started")
	return sess
}
