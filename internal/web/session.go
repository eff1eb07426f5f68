package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/migdash/internal/core"
)

const (
	sessionCookie = "migdash_session"

	// maxSessions caps the store; the least recently seen session is
	// dropped to make room.
	maxSessions = 10000
)

// sessionStore keeps one Selection per browser session. Only sessions that
// changed their selection are stored; the rest use the default. Entries idle
// for longer than ttl are evicted.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	max      int
	done     chan struct{}
	stopOnce sync.Once
}

type session struct {
	selection core.Selection
	lastSeen  time.Time
}

func newSessionStore(ttl time.Duration, max int) *sessionStore {
	st := &sessionStore{
		sessions: make(map[string]*session),
		ttl:      ttl,
		max:      max,
		done:     make(chan struct{}),
	}
	go st.cleanup()
	return st
}

// cleanup evicts idle sessions until stop is called.
func (st *sessionStore) cleanup() {
	ticker := time.NewTicker(st.ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-st.done:
			return
		case <-ticker.C:
			st.evict(time.Now())
		}
	}
}

func (st *sessionStore) evict(now time.Time) {
	st.mu.Lock()
	defer st.mu.Unlock()
	for id, s := range st.sessions {
		if now.Sub(s.lastSeen) > st.ttl {
			delete(st.sessions, id)
		}
	}
}

func (st *sessionStore) stop() {
	st.stopOnce.Do(func() { close(st.done) })
}

// get returns the selection of id and refreshes its idle timer.
func (st *sessionStore) get(id string) (core.Selection, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return core.Selection{}, false
	}
	s.lastSeen = time.Now()
	return s.selection, true
}

func (st *sessionStore) put(id string, sel core.Selection) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok && len(st.sessions) >= st.max {
		st.dropOldest()
	}
	st.sessions[id] = &session{selection: sel, lastSeen: time.Now()}
}

// dropOldest removes the least recently seen session. Callers hold mu.
func (st *sessionStore) dropOldest() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, s := range st.sessions {
		if oldestID == "" || s.lastSeen.Before(oldest) {
			oldestID, oldest = id, s.lastSeen
		}
	}
	delete(st.sessions, oldestID)
}

func (st *sessionStore) count() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// sessionID returns the caller's session id, issuing a new cookie when the
// request has none.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Security.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.cfg.Dashboard.SessionTTL.Seconds()),
	})
	return id
}

// currentSelection returns the session's selection, or the default when the
// session has none stored. A stored selection that no longer validates
// (after a reload, say) falls back to the default too.
func (s *Server) currentSelection(w http.ResponseWriter, r *http.Request) (string, core.Selection) {
	id := s.sessionID(w, r)
	if sel, ok := s.sessions.get(id); ok && s.service.Validate(sel) == nil {
		return id, sel
	}
	return id, s.service.DefaultSelection()
}
