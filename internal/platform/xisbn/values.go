package xisbn

import (
	"sort"

	"github.com/go-playground/validator/v10"
)

// valueKeys maps every accepted key of NewRequestFromValues, including the
// wire aliases, to its option name.
var valueKeys = map[string]string{
	"method":         "method",
	"responseFormat": "responseFormat",
	"format":         "responseFormat",
	"library":        "library",
	"fields":         "fields",
	"fl":             "fields",
	"startIndex":     "startIndex",
	"resultCount":    "resultCount",
	"count":          "resultCount",
	"affiliateId":    "affiliateId",
	"ai":             "affiliateId",
	"token":          "token",
	"hash":           "hash",
}

// NewRequestFromValues builds a Request from dynamically typed input such as a
// decoded JSON object. Keys are option names or their wire aliases ("format",
// "fl", "count", "ai"). A nil value is treated as absent. Unknown keys are
// rejected before any option is examined.
func NewRequestFromValues(identifier any, values map[string]any) (Request, error) {
	return newRequestFromValues(exactValidate, identifier, values)
}

func newRequestFromValues(v *validator.Validate, identifier any, values map[string]any) (Request, error) {
	id, ok := identifier.(string)
	if !ok {
		return Request{}, typeErr("identifier", "identifier must be text")
	}
	if err := v.Var(id, "len=10|len=13"); err != nil {
		return Request{}, valueErr("identifier", "identifier must have length 10 or 13")
	}

	opts, err := optionsFromValues(values)
	if err != nil {
		// opts holds the options decoded before the bad one; a grammar
		// violation among them comes first in field order.
		if _, earlier := newRequest(v, id, opts); earlier != nil {
			return Request{}, earlier
		}
		return Request{}, err
	}
	return newRequest(v, id, opts)
}

func optionsFromValues(values map[string]any) (Options, error) {
	named := make(map[string]any, len(values))
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		name, ok := valueKeys[k]
		if !ok {
			return Options{}, valueErr(k, k+" is not a recognized option")
		}
		if values[k] == nil {
			continue
		}
		if _, dup := named[name]; dup {
			return Options{}, valueErr(name, name+" is given more than once")
		}
		named[name] = values[k]
	}

	var opts Options
	var err error
	strs := []struct {
		name string
		dst  **string
	}{
		{"method", &opts.Method},
		{"responseFormat", &opts.ResponseFormat},
		{"library", &opts.Library},
	}
	for _, s := range strs {
		if *s.dst, err = stringValue(named, s.name); err != nil {
			return opts, err
		}
	}

	if raw, ok := named["fields"]; ok {
		fl, err := fieldsValue(raw)
		opts.Fields = fl
		if err != nil {
			return opts, err
		}
	}

	strs = []struct {
		name string
		dst  **string
	}{
		{"startIndex", &opts.StartIndex},
		{"resultCount", &opts.ResultCount},
		{"affiliateId", &opts.AffiliateID},
		{"token", &opts.Token},
		{"hash", &opts.Hash},
	}
	for _, s := range strs {
		if *s.dst, err = stringValue(named, s.name); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

func stringValue(named map[string]any, name string) (*string, error) {
	raw, ok := named[name]
	if !ok {
		return nil, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, typeErr(name, name+" must be text")
	}
	return &s, nil
}

// fieldsValue returns the elements decoded before a non-text one along with
// the type error, so earlier grammar violations can still be reported first.
func fieldsValue(raw any) ([]string, error) {
	switch fl := raw.(type) {
	case string:
		return []string{fl}, nil
	case []string:
		return fl, nil
	case []any:
		out := make([]string, len(fl))
		for i, e := range fl {
			s, ok := e.(string)
			if !ok {
				return out[:i], typeErr("fields", "field must be text")
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, typeErr("fields", "fields must be text or a list of text")
	}
}
