package inspector

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Widget selects how a field is drawn.
type Widget int

const (
	WidgetAuto Widget = iota
	WidgetLabel
	WidgetBar
	WidgetAngle
	WidgetBool
	WidgetColor
	WidgetSkip
)

var widgetNames = map[string]Widget{
	"label": WidgetLabel,
	"bar":   WidgetBar,
	"angle": WidgetAngle,
	"bool":  WidgetBool,
	"color": WidgetColor,
	"skip":  WidgetSkip,
}

// Field is one exported struct field with its drawing hints.
type Field struct {
	Name    string
	Value   interface{}
	Widget  Widget
	Options map[string]string
}

// ParseTag splits an `inspect:"widget,key:value,..."` tag, for example
// `inspect:"bar,max:8"` or `inspect:"label,fmt:%+.2f"`. Unknown widget
// names fall back to WidgetAuto.
func ParseTag(tag string) (Widget, map[string]string) {
	options := make(map[string]string)
	name, rest, _ := strings.Cut(tag, ",")
	widget := widgetNames[strings.TrimSpace(name)]

	for rest != "" {
		var opt string
		opt, rest, _ = strings.Cut(rest, ",")
		if k, v, ok := strings.Cut(strings.TrimSpace(opt), ":"); ok {
			options[k] = v
		}
	}
	return widget, options
}

// ExtractFields lists the inspectable fields of a struct or struct pointer.
func ExtractFields(component interface{}) []Field {
	v := reflect.Indirect(reflect.ValueOf(component))
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	var fields []Field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		widget, options := ParseTag(sf.Tag.Get("inspect"))
		if widget == WidgetSkip {
			continue
		}
		fv := v.Field(i)
		if widget == WidgetAuto {
			widget = autoDetectWidget(fv)
		}
		fields = append(fields, Field{Name: sf.Name, Value: fv.Interface(), Widget: widget, Options: options})
	}
	return fields
}

// autoDetectWidget picks a widget for an untagged field: bools get a checkbox,
// float arrays a bar group, RGB structs a swatch, the rest a label.
func autoDetectWidget(v reflect.Value) Widget {
	switch v.Kind() {
	case reflect.Bool:
		return WidgetBool
	case reflect.Array, reflect.Slice:
		if _, ok := GetFloatSlice(v.Interface()); ok {
			return WidgetBar
		}
	case reflect.Struct:
		if _, ok := GetColorChannels(v.Interface()); ok {
			return WidgetColor
		}
	}
	return WidgetLabel
}

// FormatValue formats a value with fmtStr, or two decimals for floats when
// fmtStr is empty.
func FormatValue(value interface{}, fmtStr string) string {
	if fmtStr != "" {
		return fmt.Sprintf(fmtStr, value)
	}
	switch value.(type) {
	case float32, float64:
		return fmt.Sprintf("%.2f", value)
	}
	return fmt.Sprint(value)
}

// GetMax reads the max option, 1 when absent or malformed.
func GetMax(options map[string]string) float32 {
	if m, err := strconv.ParseFloat(options["max"], 32); err == nil {
		return float32(m)
	}
	return 1
}

// GetFloatValue converts any numeric kind to float32.
func GetFloatValue(value interface{}) (float32, bool) {
	v := reflect.ValueOf(value)
	switch {
	case !v.IsValid():
		return 0, false
	case v.CanFloat():
		return float32(v.Float()), true
	case v.CanInt():
		return float32(v.Int()), true
	case v.CanUint():
		return float32(v.Uint()), true
	}
	return 0, false
}

// GetFloatSlice converts an array or slice of floats to []float32.
func GetFloatSlice(value interface{}) ([]float32, bool) {
	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Array && v.Kind() != reflect.Slice {
		return nil, false
	}
	out := make([]float32, v.Len())
	for i := range out {
		f, ok := GetFloatValue(v.Index(i).Interface())
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

// GetColorChannels reads the R, G and B fields of a color struct.
func GetColorChannels(value interface{}) ([3]float32, bool) {
	var out [3]float32
	v := reflect.Indirect(reflect.ValueOf(value))
	if v.Kind() != reflect.Struct {
		return out, false
	}
	for i, name := range [3]string{"R", "G", "B"} {
		f := v.FieldByName(name)
		if !f.IsValid() {
			return out, false
		}
		c, ok := GetFloatValue(f.Interface())
		if !ok {
			return out, false
		}
		out[i] = c
	}
	return out, true
}
