package response

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"

	"github.com/tidwall/gjson"
)

var unmarshalerType = reflect.TypeFor[json.Unmarshaler]()

// assign stores the JSON value r into dst. Numbers round into integer
// fields and numeric strings convert to numbers. A value that does not fit
// leaves dst at its zero value instead of failing the document.
func assign(dst reflect.Value, r gjson.Result) {
	if !r.Exists() || r.Type == gjson.Null {
		return
	}
	if dst.CanAddr() && dst.Addr().Type().Implements(unmarshalerType) {
		fresh := reflect.New(dst.Type())
		if err := fresh.Interface().(json.Unmarshaler).UnmarshalJSON([]byte(r.Raw)); err == nil {
			dst.Set(fresh.Elem())
		}
		return
	}

	switch dst.Kind() {
	case reflect.String:
		if r.Type == gjson.String {
			dst.SetString(r.Str)
		}
	case reflect.Bool:
		if r.Type == gjson.True || r.Type == gjson.False {
			dst.SetBool(r.Bool())
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n, ok := number(r); ok {
			i := int64(math.Round(n))
			if !dst.OverflowInt(i) {
				dst.SetInt(i)
			}
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n, ok := number(r); ok && n >= 0 {
			u := uint64(math.Round(n))
			if !dst.OverflowUint(u) {
				dst.SetUint(u)
			}
		}
	case reflect.Float32, reflect.Float64:
		if n, ok := number(r); ok && !dst.OverflowFloat(n) {
			dst.SetFloat(n)
		}
	case reflect.Slice:
		if !r.IsArray() {
			return
		}
		items := r.Array()
		s := reflect.MakeSlice(dst.Type(), len(items), len(items))
		for i, item := range items {
			assign(s.Index(i), item)
		}
		dst.Set(s)
	case reflect.Map:
		if !r.IsObject() || dst.Type().Key().Kind() != reflect.String {
			return
		}
		m := reflect.MakeMap(dst.Type())
		r.ForEach(func(k, v gjson.Result) bool {
			elem := reflect.New(dst.Type().Elem()).Elem()
			assign(elem, v)
			m.SetMapIndex(reflect.ValueOf(k.String()).Convert(dst.Type().Key()), elem)
			return true
		})
		dst.Set(m)
	case reflect.Pointer:
		p := reflect.New(dst.Type().Elem())
		assign(p.Elem(), r)
		dst.Set(p)
	case reflect.Struct:
		if r.IsObject() {
			assignFields(dst, r.Map())
		}
	case reflect.Interface:
		if dst.NumMethod() == 0 {
			if v := r.Value(); v != nil {
				dst.Set(reflect.ValueOf(v))
			}
		}
	}
}

// assignFields fills the exported fields of a struct, matching JSON names
// the way encoding/json does: tag name first, then a case-insensitive match.
func assignFields(dst reflect.Value, obj map[string]gjson.Result) {
	t := dst.Type()
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		tagName, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch {
		case tagName == "-":
			continue
		case tagName != "":
			name = tagName
		case f.Anonymous && f.Type.Kind() == reflect.Struct:
			assignFields(dst.Field(i), obj)
			continue
		}
		if v, ok := lookup(obj, name); ok {
			assign(dst.Field(i), v)
		}
	}
}

func lookup(obj map[string]gjson.Result, name string) (gjson.Result, bool) {
	if v, ok := obj[name]; ok {
		return v, true
	}
	for k, v := range obj {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return gjson.Result{}, false
}

// number reads a JSON number or a numeric string. Words, NaN and
// infinities do not count.
func number(r gjson.Result) (float64, bool) {
	var n float64
	switch r.Type {
	case gjson.Number:
		n = r.Num
	case gjson.String:
		if !gjson.Valid(strings.TrimSpace(r.Str)) {
			return 0, false
		}
		num := gjson.Parse(strings.TrimSpace(r.Str))
		if num.Type != gjson.Number {
			return 0, false
		}
		n = num.Num
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
