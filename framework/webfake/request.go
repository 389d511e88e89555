package webfake

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Request is the fake request side of a Context. Its cookies and form values
// are plain collections a test can fill before calling the controller.
type Request struct {
	raw           *http.Request
	cookies       *Cookies
	form          url.Values
	authenticated bool
}

func newRequest(raw *http.Request, cookies *Cookies) *Request {
	req := &Request{raw: raw, cookies: cookies, form: url.Values{}}
	for _, c := range raw.Cookies() {
		cookies.Add(c)
	}
	if strings.Contains(raw.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := raw.ParseForm(); err == nil {
			for k, vs := range raw.PostForm {
				req.form[k] = append([]string(nil), vs...)
			}
		}
	}
	return req
}

// Raw returns a copy of the underlying request carrying the current cookies
// and form values.
func (req *Request) Raw() *http.Request {
	raw := req.raw.Clone(req.raw.Context())
	raw.Header.Del("Cookie")
	for _, c := range req.cookies.All() {
		raw.AddCookie(c)
	}

	raw.PostForm = url.Values{}
	raw.Form = url.Values{}
	for k, vs := range req.form {
		raw.PostForm[k] = append([]string(nil), vs...)
		raw.Form[k] = append([]string(nil), vs...)
	}
	for k, vs := range raw.URL.Query() {
		raw.Form[k] = append(raw.Form[k], vs...)
	}
	return raw
}

// Cookies returns the cookie collection shared with the response.
func (req *Request) Cookies() *Cookies { return req.cookies }

// Form returns the posted form values. Add to it to simulate a submitted form.
func (req *Request) Form() url.Values { return req.form }

// IsAuthenticated reports whether Context.Authenticate was called.
func (req *Request) IsAuthenticated() bool { return req.authenticated }

// ── Input ─────────────────────────────────────────────────────────────────────

// Input returns a form value, falling back to the query string.
func (req *Request) Input(key string, fallback ...string) string {
	v := req.form.Get(key)
	if v == "" {
		v = req.raw.URL.Query().Get(key)
	}
	if v == "" && len(fallback) > 0 {
		return fallback[0]
	}
	return v
}

// Query returns a query-string value.
func (req *Request) Query(key string, fallback ...string) string {
	v := req.raw.URL.Query().Get(key)
	if v == "" && len(fallback) > 0 {
		return fallback[0]
	}
	return v
}

// RouteParam returns a chi URL parameter.
func (req *Request) RouteParam(key string) string {
	return chi.URLParam(req.raw, key)
}

func (req *Request) Header(key string) string { return req.raw.Header.Get(key) }

// BearerToken extracts the token from Authorization: Bearer <token>.
func (req *Request) BearerToken() string {
	auth := req.raw.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

func (req *Request) Method() string { return req.raw.Method }

func (req *Request) Path() string { return req.raw.URL.Path }

// ── Binding ───────────────────────────────────────────────────────────────────

// Bind decodes a JSON body into v, or the form values for any other content
// type. Form fields map through json tags.
func (req *Request) Bind(v any) error {
	if strings.Contains(req.raw.Header.Get("Content-Type"), "application/json") {
		return req.bindJSON(v)
	}
	return bindForm(req.form, v)
}

func (req *Request) bindJSON(v any) error {
	body, err := io.ReadAll(req.raw.Body)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return errors.New("webfake: empty request body")
	}
	return json.Unmarshal(body, v)
}

func bindForm(values url.Values, v any) error {
	m := make(map[string]any, len(values))
	for k, vals := range values {
		if len(vals) == 1 {
			m[k] = vals[0]
		} else {
			m[k] = vals
		}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
