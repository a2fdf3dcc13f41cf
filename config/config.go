// Package config provides read access to a tree of configuration values, as
// loaded from YAML or JSON files.
//
// Values are addressed with dotted keys, such as "integrations.gcs". Getters
// come in required and optional flavours: required getters fail when the key
// is absent, optional getters report absence through a boolean. Both fail
// when the value has the wrong type.
package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrMissing is returned by required getters when the key isn't set.
var ErrMissing = errors.New("missing required config value")

// TypeError is returned when a config value doesn't have the expected type.
type TypeError struct {
	Actual   any
	Key      string
	Expected string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("invalid type in config for key %q, got %s, wanted %s",
		e.Key, typeName(e.Actual), e.Expected)
}

// Config is a read-only view of a configuration tree. The zero value and nil
// are both valid, empty configs.
type Config struct {
	data   map[string]any
	prefix string
}

// New returns a Config backed by data. data should not be modified afterwards.
func New(data map[string]any) *Config {
	if data == nil {
		data = map[string]any{}
	}

	return &Config{data: data}
}

// Keys returns the top-level keys, sorted.
func (c *Config) Keys() []string {
	if c == nil {
		return []string{}
	}

	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Has reports whether key is set.
func (c *Config) Has(key string) bool {
	_, ok := c.Get(key)

	return ok
}

// Get returns the raw value at key. Keys may be dotted to address nested
// values.
func (c *Config) Get(key string) (any, bool) {
	if c == nil || key == "" {
		return nil, false
	}

	var cur any = c.data

	for _, part := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}

		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}

	if cur == nil {
		return nil, false
	}

	return cur, true
}

// String returns the string at key, failing if it's absent.
func (c *Config) String(key string) (string, error) {
	s, ok, err := c.OptionalString(key)
	if err != nil {
		return "", err
	}

	if !ok {
		return "", c.missing(key)
	}

	return s, nil
}

// OptionalString returns the string at key, if set.
func (c *Config) OptionalString(key string) (string, bool, error) {
	v, ok := c.Get(key)
	if !ok {
		return "", false, nil
	}

	s, ok := v.(string)
	if !ok {
		return "", false, c.typeError(key, v, "string")
	}

	return s, true, nil
}

// OptionalBool returns the boolean at key, if set. The strings "true" and
// "false" are also accepted, since these commonly arrive through environment
// substitution.
func (c *Config) OptionalBool(key string) (bool, bool, error) {
	v, ok := c.Get(key)
	if !ok {
		return false, false, nil
	}

	switch b := v.(type) {
	case bool:
		return b, true, nil
	case string:
		switch b {
		case "true":
			return true, true, nil
		case "false":
			return false, true, nil
		}
	}

	return false, false, c.typeError(key, v, "boolean")
}

// OptionalStringArray returns the list of strings at key, if set.
func (c *Config) OptionalStringArray(key string) ([]string, bool, error) {
	v, ok := c.Get(key)
	if !ok {
		return nil, false, nil
	}

	items, ok := v.([]any)
	if !ok {
		return nil, false, c.typeError(key, v, "string array")
	}

	out := make([]string, 0, len(items))

	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false, c.typeError(fmt.Sprintf("%s[%d]", key, i), item, "string")
		}

		out = append(out, s)
	}

	return out, true, nil
}

// OptionalConfig returns the object at key as a Config, if set.
func (c *Config) OptionalConfig(key string) (*Config, bool, error) {
	v, ok := c.Get(key)
	if !ok {
		return nil, false, nil
	}

	m, ok := v.(map[string]any)
	if !ok {
		return nil, false, c.typeError(key, v, "object")
	}

	return &Config{data: m, prefix: c.fullKey(key)}, true, nil
}

// OptionalConfigArray returns the list at key as a slice of Configs, if set.
// Every element must be an object.
func (c *Config) OptionalConfigArray(key string) ([]*Config, bool, error) {
	v, ok := c.Get(key)
	if !ok {
		return nil, false, nil
	}

	items, ok := v.([]any)
	if !ok {
		return nil, false, c.typeError(key, v, "object array")
	}

	out := make([]*Config, 0, len(items))

	for i, item := range items {
		elemKey := fmt.Sprintf("%s[%d]", key, i)

		m, ok := item.(map[string]any)
		if !ok {
			return nil, false, c.typeError(elemKey, item, "object")
		}

		out = append(out, &Config{data: m, prefix: c.fullKey(elemKey)})
	}

	return out, true, nil
}

// OptionalArray returns the raw list at key, if set. Unlike
// OptionalConfigArray, elements aren't checked, so that callers can process
// each element independently.
func (c *Config) OptionalArray(key string) ([]any, bool, error) {
	v, ok := c.Get(key)
	if !ok {
		return nil, false, nil
	}

	items, ok := v.([]any)
	if !ok {
		return nil, false, c.typeError(key, v, "array")
	}

	return items, true, nil
}

// Element wraps elem, the i'th element of the list at key (as returned by
// OptionalArray), in a Config. It fails if elem isn't an object.
func (c *Config) Element(key string, i int, elem any) (*Config, error) {
	elemKey := fmt.Sprintf("%s[%d]", key, i)

	m, ok := elem.(map[string]any)
	if !ok {
		return nil, c.typeError(elemKey, elem, "object")
	}

	return &Config{data: m, prefix: c.fullKey(elemKey)}, nil
}

// Prefix returns the dotted key this Config was read from, or "" for the
// root.
func (c *Config) Prefix() string {
	if c == nil {
		return ""
	}

	return c.prefix
}

func (c *Config) fullKey(key string) string {
	if c == nil || c.prefix == "" {
		return key
	}

	return c.prefix + "." + key
}

func (c *Config) missing(key string) error {
	return fmt.Errorf("%w %q", ErrMissing, c.fullKey(key))
}

func (c *Config) typeError(key string, v any, expected string) error {
	return &TypeError{Key: c.fullKey(key), Actual: v, Expected: expected}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int64, uint64, float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
