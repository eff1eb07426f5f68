package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/JonMunkholm/migdash/internal/core"
)

// maxSelectionBody caps the size of a POSTed selection.
const maxSelectionBody = 4 << 10

// selectionInput carries the optional fields of a selection change.
type selectionInput struct {
	Country  *string `json:"country"`
	Year     *int    `json:"year"`
	Variable *string `json:"variable"`
}

func (in selectionInput) empty() bool {
	return in.Country == nil && in.Year == nil && in.Variable == nil
}

// apply overlays the set fields on base. It does not validate against the
// snapshot; callers run Service.Validate on the result.
func (in selectionInput) apply(base core.Selection) (core.Selection, error) {
	sel := base
	if in.Country != nil {
		sel.Country = strings.TrimSpace(*in.Country)
	}
	if in.Year != nil {
		sel.Year = *in.Year
	}
	if in.Variable != nil {
		v, err := core.ParseMigrationVariable(*in.Variable)
		if err != nil {
			return core.Selection{}, err
		}
		sel.Variable = v
	}
	return sel, nil
}

// inputFromValues reads country, year and variable from query or form values.
func inputFromValues(values url.Values) (selectionInput, error) {
	var in selectionInput
	if v := values.Get("country"); v != "" {
		in.Country = &v
	}
	if v := values.Get("year"); v != "" {
		y, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return selectionInput{}, fmt.Errorf("%w: year %q", core.ErrMalformedSelection, v)
		}
		in.Year = &y
	}
	if v := values.Get("variable"); v != "" {
		in.Variable = &v
	}
	return in, nil
}

// inputFromBody decodes a JSON or form-encoded selection body.
func inputFromBody(w http.ResponseWriter, r *http.Request) (selectionInput, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSelectionBody)

	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var in selectionInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil && err != io.EOF {
			return selectionInput{}, fmt.Errorf("%w: %v", core.ErrMalformedSelection, err)
		}
		return in, nil
	}

	if err := r.ParseForm(); err != nil {
		return selectionInput{}, fmt.Errorf("%w: %v", core.ErrMalformedSelection, err)
	}
	return inputFromValues(r.PostForm)
}

// requestSelection returns the session selection with any query overrides
// applied and validated. When persist is set, a changed selection is stored
// back into the session.
func (s *Server) requestSelection(w http.ResponseWriter, r *http.Request, persist bool) (core.Selection, error) {
	id, sel := s.currentSelection(w, r)

	in, err := inputFromValues(r.URL.Query())
	if err != nil {
		return core.Selection{}, err
	}
	if in.empty() {
		return sel, nil
	}

	sel, err = in.apply(sel)
	if err != nil {
		return core.Selection{}, err
	}
	if err := s.service.Validate(sel); err != nil {
		return core.Selection{}, err
	}
	if persist {
		s.sessions.put(id, sel)
	}
	return sel, nil
}
