// Package transform rewrites value trees.
package transform

import (
	"fmt"

	"github.com/iancoleman/strcase"

	"github.com/mcncl/jsonkit/internal/errors"
	"github.com/mcncl/jsonkit/internal/models"
)

// KeyStyle names a key case convention.
type KeyStyle string

const (
	KeyStyleNone       KeyStyle = "none"
	KeyStyleSnake      KeyStyle = "snake"
	KeyStyleCamel      KeyStyle = "camel"
	KeyStyleLowerCamel KeyStyle = "lower-camel"
	KeyStyleKebab      KeyStyle = "kebab"
)

// KeyStyles lists the accepted styles.
var KeyStyles = []KeyStyle{KeyStyleNone, KeyStyleSnake, KeyStyleCamel, KeyStyleLowerCamel, KeyStyleKebab}

func (s KeyStyle) converter() (func(string) string, error) {
	switch s {
	case KeyStyleNone, "":
		return nil, nil
	case KeyStyleSnake:
		return strcase.ToSnake, nil
	case KeyStyleCamel:
		return strcase.ToCamel, nil
	case KeyStyleLowerCamel:
		return strcase.ToLowerCamel, nil
	case KeyStyleKebab:
		return strcase.ToKebab, nil
	default:
		return nil, errors.NewTransformError(fmt.Sprintf("unknown key style '%s'", s), errors.ErrInvalidKeyStyle)
	}
}

// RenameKeys returns a copy of v with every object key converted to style.
// When two keys convert to the same name the later member wins. With style
// none, v itself is returned.
func RenameKeys(v models.Value, style KeyStyle) (models.Value, error) {
	convert, err := style.converter()
	if err != nil {
		return nil, err
	}
	if convert == nil {
		return v, nil
	}
	return rename(v, convert), nil
}

func rename(v models.Value, convert func(string) string) models.Value {
	switch tv := v.(type) {
	case *models.Object:
		if tv == nil {
			return tv
		}
		out := models.NewObject()
		for _, m := range tv.Members() {
			out.Set(convert(m.Key), rename(m.Value, convert))
		}
		return out
	case models.Array:
		if tv == nil {
			return tv
		}
		out := make(models.Array, len(tv))
		for i, e := range tv {
			out[i] = rename(e, convert)
		}
		return out
	default:
		return v
	}
}
