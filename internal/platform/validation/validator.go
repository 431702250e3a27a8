package validation

import (
	"regexp"
	"strings"
	"sync"
	"unicode"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// Tags registered on the shared validator in addition to the built-in ones.
const (
	TagWords        = "words"
	TagNotBlankHead = "notblankhead"
)

// Common tag chains used by roster value types.
const (
	RuleWords   = "required," + TagWords
	RuleAlnum   = "required,alphanum"
	RulePhone   = "required,number,min=3"
	RuleEmail   = "required,email"
	RuleAddress = "required," + TagNotBlankHead
)

var ErrInvalidValue = crerr.New("invalid value")

var wordsPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 ]*$`)

var (
	once     sync.Once
	instance *validator.Validate
)

var customTags = map[string]validator.Func{
	TagWords: func(fl validator.FieldLevel) bool {
		return wordsPattern.MatchString(fl.Field().String())
	},
	TagNotBlankHead: func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return false
		}
		return !unicode.IsSpace([]rune(value)[0])
	},
}

// Default returns the process-wide validator with roster tags registered.
// It panics when a tag cannot be registered.
func Default() *validator.Validate {
	once.Do(func() {
		v, err := newValidator(customTags)
		if err != nil {
			panic(crerr.Wrap(err, "validation"))
		}
		instance = v
	})
	return instance
}

func newValidator(tags map[string]validator.Func) (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return nil, crerr.Wrapf(err, "register tag %q", tag)
		}
	}
	return v, nil
}

// Var validates a single string against rule and wraps failures with the
// field label and offending value.
func Var(label, value, rule string) error {
	if err := Default().Var(value, rule); err != nil {
		return crerr.Wrapf(ErrInvalidValue, "%s %q does not satisfy %s", label, value, describe(rule))
	}
	return nil
}

// Valid reports whether value satisfies rule.
func Valid(value, rule string) bool {
	return Default().Var(value, rule) == nil
}

func describe(rule string) string {
	switch rule {
	case RuleWords:
		return "alphanumeric characters and spaces, starting with an alphanumeric character"
	case RuleAlnum:
		return "alphanumeric characters only"
	case RulePhone:
		return "digits only, at least 3 long"
	case RuleEmail:
		return "local-part@domain format"
	case RuleAddress:
		return "any value not starting with whitespace"
	default:
		return strings.ReplaceAll(rule, ",", " and ")
	}
}
