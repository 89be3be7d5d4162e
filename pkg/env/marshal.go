package env

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// MarshalEnv renders a config struct as .env file content. Keys come from the
// `env` struct tag (tag options after the comma are ignored); zero-valued
// fields are omitted so unset values keep their defaults at load time.
func MarshalEnv(c any) (string, error) {
	v := reflect.ValueOf(c).Elem()
	t := v.Type()

	var b strings.Builder
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		key, _, _ := strings.Cut(field.Tag.Get("env"), ",")
		if key == "" {
			continue
		}

		val := v.Field(i)
		if val.IsZero() {
			continue
		}

		fmt.Fprintf(&b, "%s=%s\n", key, formatEnvValue(val))
	}

	return b.String(), nil
}

func formatEnvValue(v reflect.Value) string {
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}
