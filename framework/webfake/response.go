package webfake

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
)

// Response is the fake response side of a Context, recording everything the
// controller writes.
type Response struct {
	rec     *httptest.ResponseRecorder
	cookies *Cookies
}

func newResponse(cookies *Cookies) *Response {
	return &Response{rec: httptest.NewRecorder(), cookies: cookies}
}

// Writer returns the writer handlers should write to.
func (res *Response) Writer() http.ResponseWriter { return res.rec }

// Recorder exposes the underlying recorder.
func (res *Response) Recorder() *httptest.ResponseRecorder { return res.rec }

// Cookies returns the cookie collection shared with the request.
func (res *Response) Cookies() *Cookies { return res.cookies }

// SetCookie stores c in the shared collection and writes its Set-Cookie
// header.
func (res *Response) SetCookie(c *http.Cookie) {
	res.cookies.Add(c)
	http.SetCookie(res.rec, c)
}

// JSON sends a JSON response.
func (res *Response) JSON(status int, data any) {
	res.rec.Header().Set("Content-Type", "application/json")
	res.rec.WriteHeader(status)
	_ = json.NewEncoder(res.rec).Encode(data)
}

// Success sends 200 JSON: {"data": v}
func (res *Response) Success(v any) {
	res.JSON(http.StatusOK, map[string]any{"data": v})
}

// Error sends {"message": message} with status.
func (res *Response) Error(status int, message string) {
	res.JSON(status, map[string]any{"message": message})
}

// Status returns the written status code (200 if nothing was written).
func (res *Response) Status() int { return res.rec.Code }

func (res *Response) Body() string { return res.rec.Body.String() }

// Decode unmarshals the JSON body into v.
func (res *Response) Decode(v any) error {
	return json.Unmarshal(res.rec.Body.Bytes(), v)
}

// syncCookies copies cookies a handler set through the raw writer into the
// shared collection.
func (res *Response) syncCookies() {
	for _, c := range (&http.Response{Header: res.rec.Header()}).Cookies() {
		res.cookies.Add(c)
	}
}
