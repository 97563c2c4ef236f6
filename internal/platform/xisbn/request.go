package xisbn

import (
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Options holds the optional lookup parameters. A nil pointer or nil slice
// means the parameter is absent and is left out of the query string.
type Options struct {
	Method         *string
	ResponseFormat *string
	Library        *string
	Fields         []string
	StartIndex     *string
	ResultCount    *string
	AffiliateID    *string
	Token          *string
	Hash           *string
}

// String returns a pointer to s, for filling Options literals.
func String(s string) *string {
	return &s
}

type param struct {
	key   string
	value string
}

// Request is a validated lookup. It is immutable once returned by NewRequest.
type Request struct {
	identifier string
	params     []param
}

// Identifier returns the ISBN the request is keyed by.
func (r Request) Identifier() string {
	return r.identifier
}

// Query returns the encoded query string without the leading '?'.
func (r Request) Query() string {
	pairs := make([]string, len(r.params))
	for i, p := range r.params {
		pairs[i] = p.key + "=" + p.value
	}
	return strings.Join(pairs, "&")
}

// Param returns the value sent for a wire key such as "fl" or "format".
func (r Request) Param(key string) (string, bool) {
	for _, p := range r.params {
		if p.key == key {
			return p.value, true
		}
	}
	return "", false
}

// URL joins base, the identifier and, when any option is present, the query.
func (r Request) URL(base string) string {
	u := base + r.identifier
	if len(r.params) == 0 {
		return u
	}
	return u + "?" + r.Query()
}

// NewRequest validates identifier and opts with exact option matching.
func NewRequest(identifier string, opts Options) (Request, error) {
	return newRequest(exactValidate, identifier, opts)
}

func newRequest(v *validator.Validate, identifier string, opts Options) (Request, error) {
	if err := v.Var(identifier, "len=10|len=13"); err != nil {
		return Request{}, valueErr("identifier", "identifier must have length 10 or 13")
	}

	req := Request{identifier: identifier}

	enums := []struct {
		field string
		key   string
		value *string
		g     grammar
	}{
		{"method", "method", opts.Method, methodGrammar},
		{"responseFormat", "format", opts.ResponseFormat, formatGrammar},
		{"library", "library", opts.Library, libraryGrammar},
	}
	for _, e := range enums {
		if e.value == nil {
			continue
		}
		if err := v.Var(*e.value, e.g.tag); err != nil {
			return Request{}, valueErr(e.field, e.field+" must match "+e.g.alt)
		}
		req.params = append(req.params, param{e.key, encodeToken(e.g, *e.value)})
	}

	if opts.Fields != nil {
		fl := make([]string, len(opts.Fields))
		for i, f := range opts.Fields {
			if err := v.Var(f, fieldGrammar.tag); err != nil {
				return Request{}, valueErr("fields", "field must match "+fieldGrammar.alt)
			}
			fl[i] = encodeToken(fieldGrammar, f)
		}
		req.params = append(req.params, param{"fl", strings.Join(fl, ",")})
	}

	free := []struct {
		key   string
		value *string
	}{
		{"startIndex", opts.StartIndex},
		{"count", opts.ResultCount},
		{"ai", opts.AffiliateID},
		{"token", opts.Token},
		{"hash", opts.Hash},
	}
	for _, f := range free {
		if f.value == nil {
			continue
		}
		req.params = append(req.params, param{f.key, url.QueryEscape(*f.value)})
	}

	return req, nil
}

// encodeToken keeps known tokens verbatim so "*" and the fl separator stay
// readable. Anything else, only reachable with prefix matching, is escaped.
func encodeToken(g grammar, value string) string {
	if g.exactMember(value) {
		return value
	}
	return url.QueryEscape(value)
}
