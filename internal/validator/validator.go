package validator

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	pt_BR_translations "github.com/go-playground/validator/v10/translations/pt_BR"
)

var (
	// trans is the singleton Brazilian Portuguese translator for validation errors.
	trans     ut.Translator
	setupOnce sync.Once
)

// Setup registers the validator with pt-BR translations on Gin's binding engine.
// English is kept as the fallback locale. Safe to call more than once.
func Setup() {
	setupOnce.Do(register)
}

func register() {
	if v, ok := binding.Validator.Engine().(*govalidator.Validate); ok {
		// Use JSON tag name for field names in error messages.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		uni := ut.New(en.New(), pt_BR.New())
		trans, _ = uni.GetTranslator("pt_BR")
		_ = pt_BR_translations.RegisterDefaultTranslations(v, trans)
		_ = v.RegisterTranslation("datetime", trans, registerDatetime, translateDatetime)
	}
}

// dateLayouts maps Go layouts used in datetime tags to the format shown to users.
var dateLayouts = map[string]string{
	"2006-01-02": "AAAA-MM-DD",
}

func registerDatetime(ut ut.Translator) error {
	return ut.Add("datetime", "{0} deve ser uma data válida no formato {1}", true)
}

func translateDatetime(ut ut.Translator, fe govalidator.FieldError) string {
	layout := fe.Param()
	if shown, ok := dateLayouts[layout]; ok {
		layout = shown
	}
	msg, err := ut.T("datetime", fe.Field(), layout)
	if err != nil {
		return fe.Error()
	}
	return msg
}

// TranslateErrors takes a binding/validation error and returns a map of
// field name → human-readable error message. If the error is not a
// validation error, it returns a single-key map with "detail".
func TranslateErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			if trans != nil {
				fields[fe.Field()] = fe.Translate(trans)
			} else {
				fields[fe.Field()] = fe.Error()
			}
		}
		return fields
	}

	// Not a validation error (e.g., JSON syntax error).
	fields["detail"] = err.Error()
	return fields
}

// Bind binds and validates the request body into dst.
// Returns nil on success or a translated field error map on failure.
func Bind(c *gin.Context, dst interface{}) map[string]string {
	if err := c.ShouldBindJSON(dst); err != nil {
		return TranslateErrors(err)
	}
	return nil
}

// BindQuery binds and validates query parameters into dst.
func BindQuery(c *gin.Context, dst interface{}) map[string]string {
	if err := c.ShouldBindQuery(dst); err != nil {
		return TranslateErrors(err)
	}
	return nil
}
