package keymap

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
)

// ApplyOverrides applies keybinding overrides to any keymap struct.
// It uses reflection to map config keys (snake_case) to struct fields (CamelCase).
// Only fields of type key.Binding are processed. Embedded structs are recursively processed.
//
// Example:
//
//	km := KeyMap{Compare: key.NewBinding(...), ...}
//	ApplyOverrides(&km, overrides) // overrides["compare"] -> km.Compare
func ApplyOverrides(km interface{}, overrides Bindings) {
	if len(overrides) == 0 {
		return
	}

	v := reflect.ValueOf(km)
	if v.Kind() != reflect.Ptr {
		return
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return
	}

	applyOverridesRecursive(v, overrides)
}

// applyOverridesRecursive applies overrides to struct fields, recursing into embedded structs.
func applyOverridesRecursive(v reflect.Value, overrides Bindings) {
	t := v.Type()
	bindingType := reflect.TypeOf(key.Binding{})

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.CanSet() {
			continue
		}

		if fieldType.Anonymous && field.Kind() == reflect.Struct {
			applyOverridesRecursive(field, overrides)
			continue
		}

		if fieldType.Type != bindingType {
			continue
		}

		if keys, ok := overrides[camelToSnake(fieldType.Name)]; ok && len(keys) > 0 {
			current := field.Interface().(key.Binding)
			field.Set(reflect.ValueOf(key.NewBinding(
				key.WithKeys(keys...),
				key.WithHelp(keys[0], current.Help().Desc),
			)))
		}
	}
}

// camelToSnake converts a CamelCase string to snake_case.
// Examples: ViewLogs -> view_logs, GoToTop -> go_to_top
func camelToSnake(s string) string {
	var result strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				result.WriteRune('_')
			}
			result.WriteRune(unicode.ToLower(r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
