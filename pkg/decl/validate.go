package decl

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"tabula/pkg/style"
)

// ErrInvalidDeclaration is returned for declarations that fail validation.
var ErrInvalidDeclaration = errors.New("invalid declaration")

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("color", func(fl validator.FieldLevel) bool {
			_, ok := style.ParseColor(fl.Field().String())
			return ok
		})
		_ = v.RegisterValidation("alignment", func(fl validator.FieldLevel) bool {
			_, err := style.ParseAlignment(fl.Field().String())
			return err == nil
		})
		validate = v
	})
	return validate
}

// Validate checks field constraints of d. Grid-level problems such as
// spans running past the last column are reported by layout placement.
func Validate(d *Declaration) error {
	if d == nil {
		return fmt.Errorf("%w: no declaration", ErrInvalidDeclaration)
	}
	err := validatorInstance().Struct(d)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	problems := make([]string, len(verrs))
	for i, fe := range verrs {
		problems[i] = describe(fe)
	}
	return fmt.Errorf("%w: %s", ErrInvalidDeclaration, strings.Join(problems, "; "))
}

// describe renders a field error with the JSON path of the field, without
// the root type name.
func describe(fe validator.FieldError) string {
	path := fe.Namespace()
	if i := strings.IndexByte(path, '.'); i >= 0 {
		path = path[i+1:]
	}
	if fe.Param() != "" {
		return fmt.Sprintf("%s: %s %s (got %v)", path, fe.ActualTag(), fe.Param(), fe.Value())
	}
	return fmt.Sprintf("%s: %s (got %v)", path, fe.ActualTag(), fe.Value())
}
