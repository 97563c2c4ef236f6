package xisbn

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	Methods   = []string{"to10", "to13", "fixChecksum", "getMetadata", "getEditions"}
	Formats   = []string{"xml", "html", "json", "python", "ruby", "php", "txt", "csv"}
	Libraries = []string{"ebook", "freeebook", "bookmooch", "paperbackswap", "wikipedia", "oca", "hathi"}
	Fields    = []string{"author", "city", "ed", "form", "lang", "lccn", "oclcnum", "originalLang", "publisher", "title", "url", "year", "*"}
)

// grammar is one closed option set. Both patterns are anchored at the start;
// only exact is anchored at the end.
type grammar struct {
	tag    string
	alt    string
	exact  *regexp.Regexp
	prefix *regexp.Regexp
}

func newGrammar(tag string, tokens []string) grammar {
	quoted := make([]string, len(tokens))
	for i, t := range tokens {
		quoted[i] = regexp.QuoteMeta(t)
	}
	alt := strings.Join(quoted, "|")
	return grammar{
		tag:    tag,
		alt:    strings.Join(tokens, "|"),
		exact:  regexp.MustCompile(`^(?:` + alt + `)$`),
		prefix: regexp.MustCompile(`^(?:` + alt + `)`),
	}
}

var (
	methodGrammar  = newGrammar("xisbn_method", Methods)
	formatGrammar  = newGrammar("xisbn_format", Formats)
	libraryGrammar = newGrammar("xisbn_library", Libraries)
	fieldGrammar   = newGrammar("xisbn_field", Fields)

	grammars = []grammar{methodGrammar, formatGrammar, libraryGrammar, fieldGrammar}
)

var (
	exactValidate  *validator.Validate
	prefixValidate *validator.Validate
)

func init() {
	exactValidate = newValidate(false)
	prefixValidate = newValidate(true)
}

func newValidate(prefix bool) *validator.Validate {
	v := validator.New()
	for _, g := range grammars {
		re := g.exact
		if prefix {
			re = g.prefix
		}
		v.RegisterValidation(g.tag, func(fl validator.FieldLevel) bool {
			return re.MatchString(fl.Field().String())
		})
	}
	return v
}

// exactMember reports whether value is literally one of the grammar's tokens.
func (g grammar) exactMember(value string) bool {
	return g.exact.MatchString(value)
}
