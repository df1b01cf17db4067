package keymap

import (
	"reflect"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// ViewInfo is one page's bindings as printed by `llmcompare keys`.
type ViewInfo struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Sections    []SectionInfo `json:"sections"`
}

type SectionInfo struct {
	Name     string        `json:"name"`
	Bindings []BindingInfo `json:"bindings"`
}

type BindingInfo struct {
	Keys        []string `json:"keys"`
	Description string   `json:"description"`
	Enabled     bool     `json:"enabled"`
	// ConfigKey is the name accepted under keybindings.global and
	// keybindings.views.<view> in llmcompare.yml.
	ConfigKey string `json:"config_key"`
}

// MakeViewInfo exports the sections of km. Config keys come from the names
// of km's key.Binding fields, matched by help description.
func MakeViewInfo(name, description string, km SectionedKeyMap) ViewInfo {
	fields := make(map[string]string)
	bindingFields(reflect.ValueOf(km), fields)

	info := ViewInfo{Name: name, Description: description}
	for _, s := range km.Sections() {
		si := SectionInfo{Name: s.Name, Bindings: make([]BindingInfo, 0, len(s.Bindings))}
		for _, b := range s.Bindings {
			desc := b.Help().Desc
			cfgKey, ok := fields[desc]
			if !ok {
				cfgKey = strings.NewReplacer(" ", "_", "-", "_").Replace(strings.ToLower(desc))
			}
			si.Bindings = append(si.Bindings, BindingInfo{
				Keys:        b.Keys(),
				Description: desc,
				Enabled:     b.Enabled(),
				ConfigKey:   cfgKey,
			})
		}
		info.Sections = append(info.Sections, si)
	}
	return info
}

var bindingType = reflect.TypeOf(key.Binding{})

// bindingFields walks v, including embedded and nested structs, and records
// the first field name seen for each help description.
func bindingFields(v reflect.Value, out map[string]string) {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < v.NumField(); i++ {
		f, val := v.Type().Field(i), v.Field(i)
		if f.Type != bindingType {
			bindingFields(val, out)
			continue
		}
		if !val.CanInterface() {
			continue
		}
		desc := val.Interface().(key.Binding).Help().Desc
		if _, seen := out[desc]; desc != "" && !seen {
			out[desc] = camelToSnake(f.Name)
		}
	}
}
