package validate

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	apperr "campus-lms/backend/pkg/errors"
)

var (
	v          *validator.Validate
	translator ut.Translator

	notBlankTag = "notblank"
	lmsEmailTag = "lms_email"

	// same shape the registration form has always accepted
	emailPattern = regexp.MustCompile(`^[\w.-]+@([\w-]+\.)+[\w-]{2,4}$`)
)

// ErrInvalidInput is the sentinel every validation failure matches
var ErrInvalidInput = apperr.New(apperr.KindValidation, "invalid input")

func init() {
	v = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, translator)

	// report the field name from the `name` tag, falling back to json
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("name"); name != "" {
			return name
		}
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
		if s, ok := fl.Field().Interface().(string); ok {
			return strings.TrimSpace(s) != ""
		}
		return false
	})
	_ = v.RegisterValidation(lmsEmailTag, func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})

	registerFn := func(ut.Translator) error { return nil }
	for _, tag := range []string{notBlankTag, lmsEmailTag} {
		_ = v.RegisterTranslation(tag, translator, registerFn, translateCustom)
	}
}

func translateCustom(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case notBlankTag:
		return fe.Field() + " is required"
	case lmsEmailTag:
		return fe.Field() + " must be a valid email address"
	default:
		return fe.Field() + " is invalid"
	}
}

// Struct validates s and returns a KindValidation *Error listing every failed field
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ErrInvalidInput.Wrap(err)
	}

	out := ErrInvalidInput
	for _, fe := range verrs {
		out = out.WithField(fe.Field(), fe.Translate(translator))
	}
	return out
}
