package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"freelahub/internal/pkg/brdoc"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	if err := Register(validate); err != nil {
		panic(err)
	}
}

// Register adds the marketplace tags (cpf, cnpj, tipo) to v and makes field
// errors report json names. It is also applied to gin's binding engine.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	if err := v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
		return brdoc.ValidCPF(fl.Field().String())
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("cnpj", func(fl validator.FieldLevel) bool {
		return brdoc.ValidCNPJ(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("tipo", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "empresa" || s == "freelancer"
	})
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	return Errors(validate.Struct(v))
}

// BindJSON decodes the request body into dst and validates it. It returns
// nil when dst is usable, otherwise the field errors to report.
func BindJSON(c *gin.Context, dst any) map[string]string {
	if err := c.ShouldBindJSON(dst); err != nil {
		return Errors(err)
	}
	trimEmails(reflect.ValueOf(dst))
	return Validate(dst)
}

// trimEmails strips surrounding whitespace from string fields validated as
// emails, including those of embedded structs.
func trimEmails(v reflect.Value) {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f, fv := t.Field(i), v.Field(i)
		if !f.IsExported() {
			continue
		}
		switch {
		case f.Anonymous:
			trimEmails(fv.Addr())
		case fv.Kind() == reflect.String && hasTag(f.Tag.Get("validate"), "email"):
			fv.SetString(strings.TrimSpace(fv.String()))
		}
	}
}

func hasTag(rules, tag string) bool {
	for _, r := range strings.Split(rules, ",") {
		if r == tag {
			return true
		}
	}
	return false
}

// Errors flattens validator errors into field -> message. Non-validation
// errors are reported under "body".
func Errors(err error) map[string]string {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"body": "invalid request body"}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must have at least %s items", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "datetime":
		return "must be a date formatted as " + fe.Param()
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "cpf":
		return "invalid CPF"
	case "cnpj":
		return "invalid CNPJ"
	case "tipo":
		return "must be empresa or freelancer"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return fe.Tag()
	}
}
