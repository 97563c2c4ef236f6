package xisbn

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	isbn10 = "0596520689"
	isbn13 = "9780596520687"
)

func TestNewRequest_IdentifierLength(t *testing.T) {
	for _, id := range []string{"", "1", "059652068", "05965206891", "978059652068", "97805965206870"} {
		_, err := NewRequest(id, Options{})
		require.Error(t, err, "identifier %q", id)
		assert.True(t, errors.Is(err, ErrValue))
		assert.False(t, errors.Is(err, ErrType))
		assert.Contains(t, err.Error(), "length 10 or 13")
	}

	for _, id := range []string{isbn10, isbn13} {
		req, err := NewRequest(id, Options{})
		require.NoError(t, err)
		assert.Equal(t, id, req.Identifier())
	}
}

func TestNewRequest_NoOptionsHasNoQuery(t *testing.T) {
	req, err := NewRequest(isbn13, Options{})
	require.NoError(t, err)

	assert.Equal(t, "", req.Query())
	assert.Equal(t, DefaultBaseURL+isbn13, req.URL(DefaultBaseURL))
	assert.NotContains(t, req.URL(DefaultBaseURL), "?")
}

func TestNewRequest_EnumValues(t *testing.T) {
	cases := []struct {
		name   string
		tokens []string
		opts   func(string) Options
		key    string
	}{
		{"method", Methods, func(v string) Options { return Options{Method: String(v)} }, "method"},
		{"format", Formats, func(v string) Options { return Options{ResponseFormat: String(v)} }, "format"},
		{"library", Libraries, func(v string) Options { return Options{Library: String(v)} }, "library"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, token := range tc.tokens {
				req, err := NewRequest(isbn13, tc.opts(token))
				require.NoError(t, err, token)
				got, ok := req.Param(tc.key)
				assert.True(t, ok)
				assert.Equal(t, token, got)
			}

			for _, bad := range []string{"", "bogus", "JSON", " xml", tc.tokens[0] + "x"} {
				_, err := NewRequest(isbn13, tc.opts(bad))
				require.Error(t, err, bad)
				assert.True(t, errors.Is(err, ErrValue))
				assert.Contains(t, err.Error(), strings.Join(tc.tokens, "|"))
			}
		})
	}
}

func TestNewRequest_ValidationErrorNamesField(t *testing.T) {
	_, err := NewRequest(isbn13, Options{Library: String("amazon")})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "library", verr.Field)
	assert.Equal(t, ValueError, verr.Kind)
}

func TestNewRequest_FirstViolationWins(t *testing.T) {
	_, err := NewRequest(isbn13, Options{
		Method:  String("nope"),
		Library: String("nope"),
		Fields:  []string{"nope"},
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "method", verr.Field)
}

func TestNewRequest_FieldsJoinedInOrder(t *testing.T) {
	req, err := NewRequest(isbn13, Options{Fields: []string{"year", "title", "author", "*"}})
	require.NoError(t, err)

	fl, ok := req.Param("fl")
	require.True(t, ok)
	assert.Equal(t, "year,title,author,*", fl)
	assert.Equal(t, "fl=year,title,author,*", req.Query())
}

func TestNewRequest_FieldsRejectsWholeListOnBadElement(t *testing.T) {
	_, err := NewRequest(isbn13, Options{Fields: []string{"title", "isbn", "year"}})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValue))
	assert.Contains(t, err.Error(), "originalLang")
}

func TestNewRequest_FixedQueryOrder(t *testing.T) {
	req, err := NewRequest(isbn13, Options{
		Hash:           String("h"),
		Token:          String("t"),
		AffiliateID:    String("a"),
		ResultCount:    String("5"),
		StartIndex:     String("1"),
		Fields:         []string{"title"},
		Library:        String("oca"),
		ResponseFormat: String("json"),
		Method:         String("getEditions"),
	})
	require.NoError(t, err)

	assert.Equal(t,
		"method=getEditions&format=json&library=oca&fl=title&startIndex=1&count=5&ai=a&token=t&hash=h",
		req.Query())
}

func TestNewRequest_MetadataJSON(t *testing.T) {
	req, err := NewRequest(isbn13, Options{
		ResponseFormat: String("json"),
		Method:         String("getMetadata"),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(req.URL(DefaultBaseURL), "?method=getMetadata&format=json"))
}

func TestNewRequest_FreeFormValuesAreEscaped(t *testing.T) {
	req, err := NewRequest(isbn10, Options{Token: String("a&b=c d")})
	require.NoError(t, err)

	raw, _ := req.Param("token")
	assert.Equal(t, "a%26b%3Dc+d", raw)

	q, err := url.ParseQuery(req.Query())
	require.NoError(t, err)
	assert.Equal(t, "a&b=c d", q.Get("token"))
}

func TestNewRequest_EmptyFreeFormValueIsPresent(t *testing.T) {
	req, err := NewRequest(isbn10, Options{StartIndex: String("")})
	require.NoError(t, err)

	assert.Equal(t, "startIndex=", req.Query())
	assert.Equal(t, DefaultBaseURL+isbn10+"?startIndex=", req.URL(DefaultBaseURL))
}

func TestPrefixMatching(t *testing.T) {
	req, err := newRequest(prefixValidate, isbn13, Options{
		ResponseFormat: String("jsonp"),
		Fields:         []string{"title", "yearly"},
	})
	require.NoError(t, err)
	assert.Equal(t, "format=jsonp&fl=title,yearly", req.Query())

	_, err = newRequest(prefixValidate, isbn13, Options{ResponseFormat: String("pjson")})
	assert.True(t, errors.Is(err, ErrValue))

	_, err = NewRequest(isbn13, Options{ResponseFormat: String("jsonp")})
	assert.True(t, errors.Is(err, ErrValue))
}
