package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{6,15}$`)

// CustomerInput campos validables de un cliente.
type CustomerInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Phone    string `json:"phone" validate:"required,phone"`
	Address  string `json:"address" validate:"required,max=200"`
	Platform string `json:"platform" validate:"max=50"`
}

// CustomerValidator valida y normaliza los datos de un cliente. Es seguro para uso concurrente.
type CustomerValidator struct {
	v *validator.Validate
}

// NewCustomerValidator construye el validador con la regla "phone" registrada.
func NewCustomerValidator() *CustomerValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return &CustomerValidator{v: v}
}

// Validate normaliza in y lo valida. Si hay error devuelve un mensaje legible
// y la entrada normalizada no debe usarse.
func (cv *CustomerValidator) Validate(in CustomerInput) (CustomerInput, string) {
	out := CustomerInput{
		Name:     normalizeText(in.Name),
		Phone:    NormalizePhone(in.Phone),
		Address:  normalizeText(in.Address),
		Platform: strings.TrimSpace(in.Platform),
	}
	if err := cv.v.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return out, message(verrs[0])
		}
		return out, err.Error()
	}
	return out, ""
}

// NormalizePhone pliega dígitos de ancho completo y quita separadores comunes.
func NormalizePhone(s string) string {
	s = width.Narrow.String(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '.', '(', ')':
			return -1
		}
		return r
	}, s)
}

func normalizeText(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", fe.Field())
	case "max":
		return fmt.Sprintf("%q must be at most %s characters", fe.Field(), fe.Param())
	case "phone":
		return fmt.Sprintf("%q must be a valid phone number", fe.Field())
	default:
		return fmt.Sprintf("%q is invalid", fe.Field())
	}
}
