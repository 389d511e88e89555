package webfake

import "net/http"

// Cookies is the cookie collection a fake request and its response share: a
// cookie the handler sets is visible on the request, and the other way round.
type Cookies struct {
	byName map[string]*http.Cookie
	order  []string
}

func newCookies() *Cookies {
	return &Cookies{byName: make(map[string]*http.Cookie)}
}

// Add stores c, replacing any cookie with the same name.
func (c *Cookies) Add(cookie *http.Cookie) {
	if _, ok := c.byName[cookie.Name]; !ok {
		c.order = append(c.order, cookie.Name)
	}
	c.byName[cookie.Name] = cookie
}

// Get returns the cookie called name, or nil.
func (c *Cookies) Get(name string) *http.Cookie { return c.byName[name] }

// Value returns the value of the cookie called name, or "".
func (c *Cookies) Value(name string) string {
	if cookie, ok := c.byName[name]; ok {
		return cookie.Value
	}
	return ""
}

// Has reports whether a cookie called name exists.
func (c *Cookies) Has(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// Remove deletes the cookie called name.
func (c *Cookies) Remove(name string) {
	if _, ok := c.byName[name]; !ok {
		return
	}
	delete(c.byName, name)
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Names returns cookie names in insertion order.
func (c *Cookies) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// All returns the cookies in insertion order.
func (c *Cookies) All() []*http.Cookie {
	out := make([]*http.Cookie, 0, len(c.order))
	for _, n := range c.order {
		out = append(out, c.byName[n])
	}
	return out
}

func (c *Cookies) Len() int { return len(c.order) }
