// Package inspector is the debug-inspection surface: reflection over
// component fields and a panel of named, writable bindings.
package inspector

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Widget types for presenting fields.
type Widget int

const (
	WidgetAuto Widget = iota
	WidgetLabel
	WidgetAngle
	WidgetBool
	WidgetVector
	WidgetSkip
)

// Field represents a component field with presentation hints.
type Field struct {
	Name    string
	Value   any
	Widget  Widget
	Options map[string]string
}

// String formats the field according to its widget and fmt option.
func (f Field) String() string {
	if f.Widget == WidgetAngle {
		if rad, ok := f.Value.(float64); ok {
			return fmt.Sprintf("%.1fdeg", rad*180/math.Pi)
		}
	}
	return FormatValue(f.Value, f.Options["fmt"])
}

// ParseTag parses an inspect struct tag.
// Format: `inspect:"widget[,option:value...]"`
// Examples:
//
//	`inspect:"angle"`
//	`inspect:"label,fmt:%.3f"`
//	`inspect:"skip"`
func ParseTag(tag string) (Widget, map[string]string) {
	options := make(map[string]string)

	if tag == "" {
		return WidgetAuto, options
	}

	parts := strings.Split(tag, ",")

	var widget Widget
	switch strings.TrimSpace(parts[0]) {
	case "label":
		widget = WidgetLabel
	case "angle":
		widget = WidgetAngle
	case "bool":
		widget = WidgetBool
	case "vector":
		widget = WidgetVector
	case "skip":
		widget = WidgetSkip
	default:
		widget = WidgetAuto
	}

	for _, part := range parts[1:] {
		kv := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(kv) == 2 {
			options[kv[0]] = kv[1]
		}
	}

	return widget, options
}

// ExtractFields uses reflection to extract the exported fields of a
// component struct (or pointer to one).
func ExtractFields(component any) []Field {
	v := reflect.ValueOf(component)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	var fields []Field

	for i := 0; i < v.NumField(); i++ {
		sf := t.Field(i)
		fv := v.Field(i)

		if !sf.IsExported() {
			continue
		}

		widget, options := ParseTag(sf.Tag.Get("inspect"))
		if widget == WidgetSkip {
			continue
		}
		if widget == WidgetAuto {
			widget = autoDetectWidget(fv)
		}

		fields = append(fields, Field{
			Name:    sf.Name,
			Value:   fv.Interface(),
			Widget:  widget,
			Options: options,
		})
	}

	return fields
}

// autoDetectWidget chooses a widget based on the field type.
func autoDetectWidget(v reflect.Value) Widget {
	switch v.Kind() {
	case reflect.Bool:
		return WidgetBool
	case reflect.Array:
		return WidgetVector
	default:
		return WidgetLabel
	}
}

// FormatValue formats a field value as a string. Vectors format each
// component with fmtStr.
func FormatValue(value any, fmtStr string) string {
	if v, ok := value.(mgl64.Vec3); ok {
		if fmtStr == "" {
			fmtStr = "%.2f"
		}
		return fmt.Sprintf("("+fmtStr+", "+fmtStr+", "+fmtStr+")", v[0], v[1], v[2])
	}
	if fmtStr == "" {
		switch v := value.(type) {
		case float32:
			return fmt.Sprintf("%.2f", v)
		case float64:
			return fmt.Sprintf("%.2f", v)
		default:
			return fmt.Sprintf("%v", value)
		}
	}
	return fmt.Sprintf(fmtStr, value)
}

// snakeCase converts a Go field name to a binding path segment.
func snakeCase(name string) string {
	var b strings.Builder
	prevUpper := true
	for _, r := range name {
		upper := r >= 'A' && r <= 'Z'
		if upper {
			if !prevUpper {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		prevUpper = upper
		b.WriteRune(r)
	}
	return b.String()
}
