package xisbn

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequestFromValues_IdentifierType(t *testing.T) {
	for _, id := range []any{nil, 9780596520687, []byte(isbn13), 1.5, true} {
		_, err := NewRequestFromValues(id, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrType), "%v", id)
		assert.Equal(t, "identifier must be text", err.Error())
	}

	_, err := NewRequestFromValues("123", nil)
	assert.True(t, errors.Is(err, ErrValue))
}

func TestNewRequestFromValues_TypeErrorsNameField(t *testing.T) {
	cases := map[string]map[string]any{
		"method":         {"method": 1},
		"responseFormat": {"format": true},
		"library":        {"library": []string{"oca"}},
		"fields":         {"fl": 3},
		"startIndex":     {"startIndex": 0},
		"resultCount":    {"count": 10.0},
		"affiliateId":    {"ai": map[string]any{}},
		"token":          {"token": 1},
		"hash":           {"hash": false},
	}

	for field, values := range cases {
		t.Run(field, func(t *testing.T) {
			_, err := NewRequestFromValues(isbn13, values)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, TypeError, verr.Kind)
			assert.Equal(t, field, verr.Field)
		})
	}
}

func TestNewRequestFromValues_FieldElementType(t *testing.T) {
	_, err := NewRequestFromValues(isbn13, map[string]any{"fields": []any{"title", 7}})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrType))
	assert.Equal(t, "field must be text", err.Error())
}

func TestNewRequestFromValues_FieldsForms(t *testing.T) {
	req, err := NewRequestFromValues(isbn13, map[string]any{"fields": "*"})
	require.NoError(t, err)
	assert.Equal(t, "fl=*", req.Query())

	req, err = NewRequestFromValues(isbn13, map[string]any{"fl": []any{"lang", "city"}})
	require.NoError(t, err)
	assert.Equal(t, "fl=lang,city", req.Query())

	req, err = NewRequestFromValues(isbn13, map[string]any{"fields": []string{"ed"}})
	require.NoError(t, err)
	assert.Equal(t, "fl=ed", req.Query())
}

func TestNewRequestFromValues_MatchesTypedOptions(t *testing.T) {
	fromValues, err := NewRequestFromValues(isbn13, map[string]any{
		"hash":           "h",
		"responseFormat": "xml",
		"method":         "to10",
		"count":          "3",
		"affiliateId":    "aff",
		"library":        nil,
	})
	require.NoError(t, err)

	typed, err := NewRequest(isbn13, Options{
		Method:         String("to10"),
		ResponseFormat: String("xml"),
		ResultCount:    String("3"),
		AffiliateID:    String("aff"),
		Hash:           String("h"),
	})
	require.NoError(t, err)

	assert.Equal(t, typed, fromValues)
}

func TestNewRequestFromValues_UnknownAndDuplicateKeys(t *testing.T) {
	_, err := NewRequestFromValues(isbn13, map[string]any{"isbn": "x"})
	assert.True(t, errors.Is(err, ErrValue))

	_, err = NewRequestFromValues(isbn13, map[string]any{"format": "xml", "responseFormat": "json"})
	assert.True(t, errors.Is(err, ErrValue))
}

func TestNewRequestFromValues_EarlierValueErrorBeatsLaterTypeError(t *testing.T) {
	_, err := NewRequestFromValues(isbn13, map[string]any{
		"method": "nope",
		"token":  42,
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "method", verr.Field)
	assert.Equal(t, ValueError, verr.Kind)
}

func TestNewRequestFromValues_FieldValueErrorBeforeTypeError(t *testing.T) {
	_, err := NewRequestFromValues(isbn13, map[string]any{"fields": []any{"bogus", 7}})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, ValueError, verr.Kind)
	assert.Equal(t, "fields", verr.Field)
	assert.Contains(t, verr.Message, "originalLang")

	_, err = NewRequestFromValues(isbn13, map[string]any{"fields": []any{"title", 7, "bogus"}})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, TypeError, verr.Kind)
}
