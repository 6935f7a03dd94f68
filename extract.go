package reqcheck

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
)

// Raw data extraction for the four request components. Extractors return
// untyped values suitable for feeding to the Engine. A component that is
// simply absent from the request yields an empty map, never an error; the
// schema's own optionality rules decide whether that is acceptable.

// extractBody reads the request body as a JSON object. A configured body
// schema requires a JSON-parseable object body; anything else (no body,
// malformed JSON, or a non-object top-level value) is an extraction failure.
func extractBody(c echo.Context) (map[string]any, *ValidationError) {
	r := c.Request()
	if !requestHasBody(r) {
		return nil, extractionError(ComponentBody, "could not parse request body as JSON")
	}

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil || raw == nil {
		// A top-level null decodes into a nil map without error; it is not
		// an object either.
		return nil, extractionError(ComponentBody, "could not parse request body as JSON")
	}
	return raw, nil
}

// extractQuery returns the query string as a map. Repeated keys collapse to
// a []string under that key; single-valued keys collapse to a plain string.
func extractQuery(c echo.Context) map[string]any {
	return collapseValues(c.QueryParams())
}

// extractPath returns the route's captured path segments as raw strings.
func extractPath(c echo.Context) map[string]string {
	names := c.ParamNames()
	params := make(map[string]string, len(names))
	for _, name := range names {
		params[name] = c.Param(name)
	}
	return params
}

// extractForm returns urlencoded or multipart form fields with the same
// multi-value collapsing as extractQuery. Only body fields are considered;
// query string values never leak into the form component. A request without
// form data yields an empty map.
func extractForm(c echo.Context) map[string]any {
	r := c.Request()
	if strings.HasPrefix(r.Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			return map[string]any{}
		}
	} else if err := r.ParseForm(); err != nil {
		return map[string]any{}
	}
	return collapseValues(r.PostForm)
}

func collapseValues(values url.Values) map[string]any {
	raw := make(map[string]any, len(values))
	for key, vals := range values {
		if len(vals) == 1 {
			raw[key] = vals[0]
			continue
		}
		raw[key] = vals
	}
	return raw
}

// requestHasBody reports whether the request signals a message body via
// Content-Length or Transfer-Encoding (RFC 7230 section 3.3).
func requestHasBody(r *http.Request) bool {
	if r.ContentLength > 0 || len(r.TransferEncoding) > 0 {
		return true
	}
	return r.Header.Get("Transfer-Encoding") != "" || r.Header.Get("Content-Length") != ""
}
