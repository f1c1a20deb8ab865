package http

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cilindros-api/internal/domain"
)

const dateLayout = "2006-01-02"

var indexPattern = regexp.MustCompile(`\[(\d+)\]`)

// Mensajes por campo y regla. Las claves usan el nombre JSON del campo sin índice.
var fieldMessages = map[string]string{
	"fecha.required":           "La fecha es obligatoria",
	"fecha.datetime":           "La fecha debe ser válida",
	"fecha.notfuture":          "La fecha no puede ser futura",
	"codcli.required":          "El código del cliente es obligatorio",
	"cilindros.required":       "Debe agregar al menos un cilindro",
	"cilindros.min":            "Debe agregar al menos un cilindro",
	"codigo_articulo.required": "El código del artículo es obligatorio",
	"cantidad.required":        "La cantidad es obligatoria",
	"cantidad.gte":             "La cantidad debe ser mayor a 0",
	"precio_docto.required":    "El precio es obligatorio",
	"costo_promedio.required":  "El costo promedio es obligatorio",
}

var attributeNames = map[string]string{
	"codcli":          "código del cliente",
	"observaciones":   "observaciones",
	"codigo_articulo": "código del artículo",
	"detalle":         "detalle",
	"cantidad":        "cantidad",
	"precio_docto":    "precio",
	"costo_promedio":  "costo promedio",
	"bodega":          "bodega",
}

// RequestValidator valida DTOs con go-playground/validator y traduce los fallos a domain.ValidationError.
type RequestValidator struct {
	validate *validator.Validate
	now      func() time.Time
}

// NewRequestValidator registra los tipos decimal y la regla notfuture (fecha <= hoy).
func NewRequestValidator() *RequestValidator {
	rv := &RequestValidator{validate: validator.New(), now: time.Now}
	rv.validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	rv.validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
		if d, ok := v.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	_ = rv.validate.RegisterValidation("notfuture", rv.notFuture)
	return rv
}

func (rv *RequestValidator) notFuture(fl validator.FieldLevel) bool {
	d, err := time.Parse(dateLayout, strings.TrimSpace(fl.Field().String()))
	if err != nil {
		return false
	}
	today, _ := time.Parse(dateLayout, rv.now().Format(dateLayout))
	return !d.After(today)
}

// Struct devuelve nil o un *domain.ValidationError con los mensajes por campo.
func (rv *RequestValidator) Struct(s interface{}) error {
	err := rv.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := &domain.ValidationError{}
	for _, fe := range fieldErrs {
		out.Add(fieldKey(fe.Namespace()), messageFor(fe))
	}
	return out
}

// fieldKey "CreateMovimientoRequest.cilindros[0].cantidad" -> "cilindros.0.cantidad".
func fieldKey(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		namespace = namespace[i+1:]
	}
	return indexPattern.ReplaceAllString(namespace, ".$1")
}

func messageFor(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	attr := attributeNames[fe.Field()]
	if attr == "" {
		attr = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("El campo %s es obligatorio", attr)
	case "max":
		return fmt.Sprintf("El campo %s no debe superar %s caracteres", attr, fe.Param())
	case "gte":
		return fmt.Sprintf("El campo %s debe ser al menos %s", attr, fe.Param())
	case "lte":
		return fmt.Sprintf("El campo %s no debe ser mayor a %s", attr, fe.Param())
	default:
		return fmt.Sprintf("El campo %s no es válido", attr)
	}
}
