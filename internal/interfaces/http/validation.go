package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/ttacon/libphonenumber"
)

// Validator valida los DTO de entrada con sus tags `validate`.
// Registra el tag "phone" (número válido para la región configurada).
type Validator struct {
	v *validator.Validate
}

// NewValidator construye el validador. region es el código ISO por defecto de los teléfonos (ej. "IN").
func NewValidator(region string) *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return ValidPhone(fl.Field().String(), region)
	})
	return &Validator{v: v}
}

// ValidPhone indica si s es un teléfono válido para la región.
func ValidPhone(s, region string) bool {
	p, err := libphonenumber.Parse(s, region)
	if err != nil {
		return false
	}
	return libphonenumber.IsValidNumber(p)
}

// Struct devuelve fieldErrors (campo -> tag) si s no pasa la validación.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errInvalidBody
	}
	out := make(fieldErrors, len(verrs))
	for _, fe := range verrs {
		key := fe.Namespace()
		if i := strings.Index(key, "."); i >= 0 {
			key = key[i+1:]
		}
		out[key] = fe.Tag()
	}
	return out
}

// bindJSON parsea el cuerpo JSON en dst y lo valida.
func bindJSON(c *fiber.Ctx, v *Validator, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return errInvalidBody
	}
	return v.Struct(dst)
}

// bindQuery parsea los query params en dst y los valida.
func bindQuery(c *fiber.Ctx, v *Validator, dst any) error {
	if err := c.QueryParser(dst); err != nil {
		return errInvalidBody
	}
	return v.Struct(dst)
}
