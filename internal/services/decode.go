package services

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"profilecard/internal/apperrors"
	"profilecard/internal/models"

	"github.com/go-viper/mapstructure/v2"
)

var decodeFieldPattern = regexp.MustCompile(`'([^']+)'`)

// decodeInput maps an untyped request body onto a T. Keys match wire names
// exactly and unknown keys are ignored, server-owned keys are dropped and
// scalars are weakly typed ("16" decodes into an int).
func decodeInput[T any](input map[string]any) (*T, error) {
	clean := make(map[string]any, len(input))
	for k, v := range input {
		if slices.Contains(models.ServerKeys, k) {
			continue
		}
		clean[k] = v
	}

	var record T
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &record,
		TagName:          "json",
		WeaklyTypedInput: true,
		Squash:           true,
		DecodeHook:       mapstructure.DecodeHookFuncType(strictScalars),
		MatchName:        func(mapKey, fieldName string) bool { return mapKey == fieldName },
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(clean); err != nil {
		return nil, apperrors.Validation(apperrors.CodeInvalidFieldType, "Invalid field type", decodeFields(err))
	}
	return &record, nil
}

// strictScalars leaves optional (pointer) fields unset for blank strings and
// refuses fractional numbers for integer fields instead of truncating them.
func strictScalars(from, to reflect.Type, data any) (any, error) {
	if s, ok := data.(string); ok && to.Kind() == reflect.Ptr && strings.TrimSpace(s) == "" {
		return nil, nil
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return data, nil
	}
	var f float64
	switch n := data.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	default:
		return data, nil
	}
	if f != math.Trunc(f) {
		return nil, fmt.Errorf("must be a whole number, got %v", f)
	}
	return data, nil
}

// decodeFields keys each line of a mapstructure error by the quoted field it names.
func decodeFields(err error) map[string]string {
	fields := make(map[string]string)
	for _, line := range strings.Split(err.Error(), "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "*"))
		m := decodeFieldPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		fields[m[1]] = line
	}
	if len(fields) == 0 {
		fields["body"] = err.Error()
	}
	return fields
}
