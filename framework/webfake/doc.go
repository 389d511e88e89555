// Package webfake resolves HTTP controllers with a fake request context
// attached, for testing handlers without a server.
//
// The fake request and response share one cookie collection, form values are
// a plain url.Values, and the session is an in-memory map:
//
//	ctl, _ := webfake.Resolve[*SampleController](r)
//	ctl.Request().Form().Add("inputName", "value")
//	ctl.ReadFormValue("inputName") // "value"
//
// Route parameters go through chi, either set directly with
// Context.WithRouteParam or parsed from a pattern by Context.Dispatch.
package webfake
