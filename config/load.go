package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/hairyhenderson/go-urlreader/internal/env"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// LoadFiles reads and merges the given config files from the local
// filesystem. See Load.
func LoadFiles(paths ...string) (*Config, error) {
	rel := make([]string, 0, len(paths))

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}

		rel = append(rel, strings.TrimPrefix(filepath.ToSlash(abs), "/"))
	}

	root := os.DirFS("/")

	return load(root, root, rel...)
}

// Load reads the named files from fsys and deep-merges them in order, values
// from later files overriding earlier ones. Files ending in .json or .jsonc
// are parsed as JSON (comments and trailing commas are permitted), anything
// else as YAML.
//
// Any value may be replaced by a single-key object referencing a secret:
//
//	privateKey:
//	  $env: GCS_PRIVATE_KEY
//	accountKey:
//	  $file: secrets/azure.key
//
// $env reads an environment variable (or, if unset, the file named by the
// same variable suffixed with _FILE). A reference to an unset variable is
// logged as a warning and the value is left out, as if it had never been
// configured. $file reads a file relative to the config file that references
// it.
func Load(fsys fs.FS, paths ...string) (*Config, error) {
	return load(fsys, os.DirFS("/"), paths...)
}

func load(fsys, envfs fs.FS, paths ...string) (*Config, error) {
	merged := map[string]any{}

	for _, p := range paths {
		m, err := loadFile(fsys, envfs, p)
		if err != nil {
			return nil, err
		}

		if err := mergo.Merge(&merged, m, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("merging %s: %w", p, err)
		}
	}

	return New(merged), nil
}

func loadFile(fsys, envfs fs.FS, name string) (map[string]any, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var raw any

	switch strings.ToLower(path.Ext(name)) {
	case ".json", ".jsonc":
		err = json.Unmarshal(jsonc.ToJSON(b), &raw)
	default:
		err = yaml.Unmarshal(b, &raw)
	}

	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}

	if raw == nil {
		return map[string]any{}, nil
	}

	r := &resolver{fsys: fsys, envfs: envfs, dir: path.Dir(name), logger: slog.Default()}

	v, err := r.resolve(raw, "")
	if err != nil {
		return nil, fmt.Errorf("in %s: %w", name, err)
	}

	if v == absent {
		return map[string]any{}, nil
	}

	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("parsing %s: top level must be an object, got %s", name, typeName(v))
	}

	return m, nil
}

type absentValue struct{}

// absent marks a value whose $env reference resolved to nothing. It is
// dropped from the enclosing object or array.
var absent any = absentValue{}

// resolver normalizes decoded values into the types Config expects and
// substitutes $env and $file references.
type resolver struct {
	fsys   fs.FS
	envfs  fs.FS
	logger *slog.Logger
	dir    string
}

func (r *resolver) resolve(v any, key string) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		return r.resolveMap(t, key)
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = val
		}

		return r.resolveMap(m, key)
	case []any:
		out := make([]any, 0, len(t))

		for i, item := range t {
			res, err := r.resolve(item, fmt.Sprintf("%s[%d]", key, i))
			if err != nil {
				return nil, err
			}

			if res == absent {
				continue
			}

			out = append(out, res)
		}

		return out, nil
	default:
		return v, nil
	}
}

func (r *resolver) resolveMap(m map[string]any, key string) (any, error) {
	if len(m) == 1 {
		for k, ref := range m {
			if strings.HasPrefix(k, "$") {
				return r.substitute(k, ref, key)
			}
		}
	}

	out := make(map[string]any, len(m))

	for k, val := range m {
		child := k
		if key != "" {
			child = key + "." + k
		}

		res, err := r.resolve(val, child)
		if err != nil {
			return nil, err
		}

		if res == absent {
			continue
		}

		out[k] = res
	}

	return out, nil
}

func (r *resolver) substitute(kind string, ref any, key string) (any, error) {
	name, ok := ref.(string)
	if !ok || name == "" {
		return nil, fmt.Errorf("%s at %q must be a non-empty string", kind, key)
	}

	switch kind {
	case "$env":
		val := env.GetenvFS(r.envfs, name)
		if val == "" {
			r.logger.Warn("environment variable referenced in config is not set, leaving value out",
				slog.String("variable", name), slog.String("key", key))

			return absent, nil
		}

		return val, nil
	case "$file":
		p := name
		if !path.IsAbs(p) {
			p = path.Join(r.dir, p)
		}

		b, err := fs.ReadFile(r.fsys, strings.TrimPrefix(p, "/"))
		if err != nil {
			return nil, fmt.Errorf("reading file referenced at %q: %w", key, err)
		}

		return strings.TrimRight(string(b), "\r\n"), nil
	default:
		return nil, fmt.Errorf("unknown substitution %s at %q", kind, key)
	}
}
