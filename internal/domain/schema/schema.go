// Package schema valida los registros que llegan del backend y los datos que
// captura el usuario. Las violaciones se reportan como *Error con una lista de
// Issue {path, message}; nunca como pánico.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/reciboo-portal/internal/domain"
	"github.com/jhoicas/reciboo-portal/internal/domain/entity"
	"github.com/jhoicas/reciboo-portal/pkg/cfdi"
)

// Issue campo que no cumple el esquema. Path usa los nombres JSON (ej: object.content[0].rfc).
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Error resultado de una validación fallida.
type Error struct {
	Entity string
	Issues []Issue
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		if is.Path == "" {
			parts = append(parts, is.Message)
			continue
		}
		parts = append(parts, is.Path+": "+is.Message)
	}
	return fmt.Sprintf("schema: %s inválido: %s", e.Entity, strings.Join(parts, "; "))
}

// Unwrap permite errors.Is(err, domain.ErrInvalidInput).
func (e *Error) Unwrap() error { return domain.ErrInvalidInput }

// Fields primer mensaje por campo, en el formato que consume el formulario.
func (e *Error) Fields() map[string]string {
	out := make(map[string]string, len(e.Issues))
	for _, is := range e.Issues {
		if _, ok := out[is.Path]; !ok {
			out[is.Path] = is.Message
		}
	}
	return out
}

// AsError extrae un *Error de la cadena de err.
func AsError(err error) (*Error, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	// rfcmx: forma de RFC mexicano, salvo que el pais_clave hermano indique otro país.
	_ = v.RegisterValidation("rfcmx", func(fl validator.FieldLevel) bool {
		if c := fl.Parent().FieldByName("CountryCode"); c.IsValid() && c.Kind() == reflect.String {
			if !(entity.Provider{CountryCode: c.String()}).IsMexican() {
				return true
			}
		}
		return cfdi.ValidateRFC(fl.Field().String()) == nil
	})
	_ = v.RegisterValidation("grstatus", func(fl validator.FieldLevel) bool {
		return entity.GoodsReceiptStatus(fl.Field().String()).IsValid()
	})
	return v
}

// messages mensajes por defecto según la regla incumplida.
func defaultMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo requerido"
	case "email":
		return "email inválido"
	case "rfcmx":
		return "RFC con formato inválido"
	case "grstatus":
		return fmt.Sprintf("estado no válido: se permite %q o %q", entity.GRStatusPending, entity.GRStatusInvoiced)
	case "gt":
		return "debe ser mayor a " + fe.Param()
	case "gte":
		return "debe ser mayor o igual a " + fe.Param()
	case "min":
		return "debe tener al menos " + fe.Param()
	case "oneof":
		return "valor no permitido, opciones: " + fe.Param()
	default:
		return "valor inválido (" + fe.Tag() + ")"
	}
}

// Struct valida v con sus etiquetas `validate`. overrides mapea "campo.regla" a un mensaje propio.
func Struct(name string, v any, overrides map[string]string) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return &Error{Entity: name, Issues: []Issue{{Message: err.Error()}}}
	}
	top := reflect.Indirect(reflect.ValueOf(v)).Type().Name() + "."
	out := &Error{Entity: name}
	for _, fe := range ves {
		path := strings.TrimPrefix(fe.Namespace(), top)
		msg, ok := overrides[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = defaultMessage(fe)
		}
		out.Issues = append(out.Issues, Issue{Path: path, Message: msg})
	}
	return out
}

// decode convierte JSON a T reportando errores de tipo como Issue del campo afectado.
func decode[T any](name string, raw []byte) (T, error) {
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		var te *json.UnmarshalTypeError
		var se *json.SyntaxError
		switch {
		case errors.As(err, &te):
			return out, &Error{Entity: name, Issues: []Issue{{
				Path:    te.Field,
				Message: fmt.Sprintf("se esperaba %s, se recibió %s", te.Type, te.Value),
			}}}
		case errors.As(err, &se):
			return out, &Error{Entity: name, Issues: []Issue{{Message: "JSON mal formado: " + se.Error()}}}
		default:
			return out, &Error{Entity: name, Issues: []Issue{{Message: err.Error()}}}
		}
	}
	return out, nil
}
