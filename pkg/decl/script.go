package decl

import (
	"context"
	"errors"
	"fmt"

	"github.com/dop251/goja"
	"go.uber.org/zap"
)

// ErrNoTable is returned when a script neither calls table() nor ends with
// a declaration object.
var ErrNoTable = errors.New("script did not declare a table")

// Script runs JavaScript table declarations. Besides console, scripts see
// these helpers:
//
//	fixed(w), fit(), proportional(f)       column sizings
//	fitRow(), fixedRow(h), ratio(r, col)   row sizings
//	cell(text, opts)                       a cell; opts may set colSpan, rowSpan, style...
//	image(src, opts)                       an image cell; opts may also set width and height
//	table(decl)                            records the declaration
//
// A script may also end with the declaration object as its last value.
type Script struct {
	name   string
	source string
	logger *zap.Logger
}

// NewScript returns a script; name is used in errors and log fields.
func NewScript(name, source string, logger *zap.Logger) *Script {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Script{name: name, source: source, logger: logger}
}

// Run executes the script in a fresh runtime and returns the validated
// declaration. Cancelling ctx interrupts a running script.
func (s *Script) Run(ctx context.Context) (*Declaration, error) {
	vm := goja.New()
	c := &consoleAPI{logger: s.logger.With(zap.String("script", s.name))}
	c.register(vm)

	var declared goja.Value
	registerHelpers(vm, func(v goja.Value) { declared = v })

	stop := context.AfterFunc(ctx, func() { vm.Interrupt(ctx.Err()) })
	defer stop()

	last, err := vm.RunScript(s.name, s.source)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", s.name, err)
	}
	if declared == nil {
		declared = last
	}
	if declared == nil || goja.IsUndefined(declared) || goja.IsNull(declared) {
		return nil, fmt.Errorf("script %s: %w", s.name, ErrNoTable)
	}
	if _, ok := declared.(*goja.Object); !ok {
		return nil, fmt.Errorf("script %s: %w", s.name, ErrNoTable)
	}

	// Exported values go through JSON so scripts get the same field names
	// and strictness as JSON declarations.
	data, err := strict.Marshal(declared.Export())
	if err != nil {
		return nil, fmt.Errorf("script %s: encoding declaration: %w", s.name, err)
	}
	d, err := ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", s.name, err)
	}
	return d, nil
}

func registerHelpers(vm *goja.Runtime, record func(goja.Value)) {
	set := func(name string, fn interface{}) {
		if err := vm.Set(name, fn); err != nil {
			panic(err) // only fails for invalid names
		}
	}

	set("fixed", func(width float64) map[string]interface{} {
		return map[string]interface{}{"mode": "fixed", "width": width}
	})
	set("fit", func() map[string]interface{} {
		return map[string]interface{}{"mode": "fit"}
	})
	set("proportional", func(call goja.FunctionCall) goja.Value {
		factor := 1.0
		if len(call.Arguments) > 0 && !goja.IsUndefined(call.Argument(0)) {
			factor = call.Argument(0).ToFloat()
		}
		return vm.ToValue(map[string]interface{}{"mode": "proportional", "factor": factor})
	})

	set("fitRow", func() map[string]interface{} {
		return map[string]interface{}{"mode": "fit"}
	})
	set("fixedRow", func(height float64) map[string]interface{} {
		return map[string]interface{}{"mode": "fixed", "height": height}
	})
	set("ratio", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(map[string]interface{}{
			"mode":   "ratio",
			"ratio":  call.Argument(0).ToFloat(),
			"column": call.Argument(1).ToInteger(),
		})
	})

	set("cell", func(call goja.FunctionCall) goja.Value {
		c := map[string]interface{}{}
		if opts, ok := call.Argument(1).Export().(map[string]interface{}); ok {
			for k, v := range opts {
				c[k] = v
			}
		}
		if arg := call.Argument(0); !goja.IsUndefined(arg) && !goja.IsNull(arg) {
			c["text"] = arg.String()
		}
		return vm.ToValue(c)
	})

	set("image", func(call goja.FunctionCall) goja.Value {
		c := map[string]interface{}{}
		if opts, ok := call.Argument(1).Export().(map[string]interface{}); ok {
			for k, v := range opts {
				c[k] = v
			}
		}
		c["image"] = call.Argument(0).String()
		return vm.ToValue(c)
	})

	set("table", func(call goja.FunctionCall) goja.Value {
		record(call.Argument(0))
		return call.Argument(0)
	})
}
