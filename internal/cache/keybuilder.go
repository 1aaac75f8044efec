package cache

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"travel-gateway/internal/interfaces"
	"travel-gateway/internal/models"
	"travel-gateway/internal/utils"
)

// KeyNamespace prefixes every key the gateway writes
const KeyNamespace = "amadeus"

// Ensure KeyBuilderImpl implements interfaces.KeyBuilder
var _ interfaces.KeyBuilder = (*KeyBuilderImpl)(nil)

// KeyBuilderImpl implements the KeyBuilder interface
type KeyBuilderImpl struct{}

// NewKeyBuilder creates a new KeyBuilder instance
func NewKeyBuilder() interfaces.KeyBuilder {
	return &KeyBuilderImpl{}
}

// Prefix returns the key prefix shared by every entry of a resource type
func (kb *KeyBuilderImpl) Prefix(resourceType models.ResourceType) string {
	return fmt.Sprintf("%s:%s:", KeyNamespace, resourceType)
}

// Build creates the canonical key amadeus:<type>:k1=v1&k2=v2.
// Nil values are skipped, names are sorted, and slice values are sorted
// before joining, so parameter order never changes the key. Names and values
// are query-escaped, so a value holding & = or , cannot pose as another pair.
func (kb *KeyBuilderImpl) Build(resourceType models.ResourceType, params map[string]interface{}) string {
	names := make([]string, 0, len(params))
	for name, value := range params {
		if isNil(value) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, url.QueryEscape(name)+"="+formatValue(params[name]))
	}

	return kb.Prefix(resourceType) + strings.Join(pairs, "&")
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// formatValue renders an escaped value; slice items are escaped one by one
// and joined with a literal comma
func formatValue(value interface{}) string {
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return ""
	}

	switch rv.Kind() {
	case reflect.String:
		return url.QueryEscape(rv.String())
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.Slice, reflect.Array:
		items := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			items = append(items, formatValue(rv.Index(i).Interface()))
		}
		sort.Strings(items)
		return strings.Join(items, ",")
	default:
		// Maps and structs: sonic's std config sorts map keys
		encoded, err := utils.Marshal(rv.Interface())
		if err != nil {
			return url.QueryEscape(fmt.Sprintf("%v", rv.Interface()))
		}
		return url.QueryEscape(string(encoded))
	}
}
