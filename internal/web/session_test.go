package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/JonMunkholm/migdash/internal/chart"
	"github.com/JonMunkholm/migdash/internal/core"
)

func TestSessionStoreEvict(t *testing.T) {
	st := newSessionStore(time.Hour, maxSessions)
	defer st.stop()

	st.put("old", core.Selection{Country: "Germany"})
	st.put("fresh", core.Selection{Country: "Afghanistan"})
	st.sessions["old"].lastSeen = time.Now().Add(-2 * time.Hour)

	st.evict(time.Now())

	if _, ok := st.get("old"); ok {
		t.Error("idle session was not evicted")
	}
	if sel, ok := st.get("fresh"); !ok || sel.Country != "Afghanistan" {
		t.Errorf("fresh session = %+v, %v", sel, ok)
	}
	if st.count() != 1 {
		t.Errorf("count = %d, want 1", st.count())
	}

	st.stop() // second stop is a no-op
}

func TestSessionStoreCap(t *testing.T) {
	st := newSessionStore(time.Hour, 2)
	defer st.stop()

	st.put("a", core.Selection{Country: "Germany"})
	st.put("b", core.Selection{Country: "Germany"})
	st.sessions["a"].lastSeen = time.Now().Add(-time.Minute)
	st.put("c", core.Selection{Country: "Afghanistan"})

	if st.count() != 2 {
		t.Fatalf("count = %d, want 2", st.count())
	}
	if _, ok := st.get("a"); ok {
		t.Error("least recently seen session was kept")
	}

	// Updating an existing session never evicts.
	st.put("b", core.Selection{Country: "Afghanistan"})
	if _, ok := st.get("c"); !ok || st.count() != 2 {
		t.Errorf("update evicted a session, count = %d", st.count())
	}
}

func TestReadsDoNotCreateSessions(t *testing.T) {
	s := newTestServer(t, testConfig())

	for i := 0; i < 5; i++ {
		// A fresh client each time, like one that drops cookies.
		c := &client{t: t, s: s}
		if rec := c.get("/api/summary"); rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		c.get("/")
	}
	if n := s.sessions.count(); n != 0 {
		t.Errorf("sessions = %d after read-only requests, want 0", n)
	}

	c := &client{t: t, s: s}
	c.postJSON("/api/selection", `{"country":"Germany"}`)
	if n := s.sessions.count(); n != 1 {
		t.Errorf("sessions = %d after a selection change, want 1", n)
	}
}

func TestSessionCookieReplacesGarbage(t *testing.T) {
	c := &client{t: t, s: newTestServer(t, testConfig())}
	c.cookie = &http.Cookie{Name: sessionCookie, Value: "not-a-uuid"}

	c.get("/api/selection")
	if c.cookie.Value == "not-a-uuid" {
		t.Fatal("invalid session id was accepted")
	}
	if !c.cookie.HttpOnly || c.cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("cookie flags = %+v", c.cookie)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("check: %w", core.ErrUnknownCountry), http.StatusBadRequest},
		{core.ErrYearOutOfRange, http.StatusBadRequest},
		{core.ErrUnknownVariable, http.StatusBadRequest},
		{core.ErrMalformedSelection, http.StatusBadRequest},
		{core.ErrUnknownPanel, http.StatusNotFound},
		{chart.ErrUnsupported, http.StatusUnprocessableEntity},
		{context.DeadlineExceeded, http.StatusServiceUnavailable},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := statusFor(tt.err); got != tt.want {
				t.Errorf("statusFor = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSelectionInputApply(t *testing.T) {
	base := core.Selection{Country: "Afghanistan", Year: 2017, Variable: core.NormNet}

	in, err := inputFromValues(url.Values{"country": {" Germany "}, "year": {"2012"}})
	if err != nil {
		t.Fatalf("inputFromValues: %v", err)
	}
	got, err := in.apply(base)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	want := core.Selection{Country: "Germany", Year: 2012, Variable: core.NormNet}
	if got != want {
		t.Errorf("apply = %+v, want %+v", got, want)
	}

	if _, err := inputFromValues(url.Values{"year": {"2o17"}}); !errors.Is(err, core.ErrMalformedSelection) {
		t.Errorf("bad year err = %v, want ErrMalformedSelection", err)
	}

	empty, _ := inputFromValues(url.Values{})
	if !empty.empty() {
		t.Error("no values should give an empty input")
	}
}
