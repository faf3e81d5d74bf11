package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/five82/anchorpatch/internal/patch"
)

// ErrUnsupportedFormat is returned for rule files that are neither TOML nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported rule file format")

// Config is the loaded rule table.
type Config struct {
	// Path is the resolved rule file, empty when the built-in table is used.
	Path    string
	Rules   []patch.Rule
	Builtin bool
}

const defaultConfigPath = "~/.config/anchorpatch/rules.toml"

type ruleFile struct {
	Rules []ruleEntry `toml:"rule" yaml:"rules"`
}

type ruleEntry struct {
	Name          string   `toml:"name" yaml:"name"`
	Trigger       string   `toml:"trigger" yaml:"trigger"`
	Match         string   `toml:"match" yaml:"match"`
	Action        string   `toml:"action" yaml:"action"`
	Payload       []string `toml:"payload" yaml:"payload"`
	Skip          int      `toml:"skip" yaml:"skip"`
	Boundary      string   `toml:"boundary" yaml:"boundary"`
	BoundaryMatch string   `toml:"boundary_match" yaml:"boundary_match"`
	Anchor        []string `toml:"anchor" yaml:"anchor"`
	Once          bool     `toml:"once" yaml:"once"`
}

// Load reads the rule table at path. An empty path means the default
// location; when no file exists there the built-in rule table is returned.
// An explicit path must exist.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && strings.TrimSpace(path) == "" {
			return Config{Rules: BuiltinRules(), Builtin: true}, nil
		}
		return Config{}, fmt.Errorf("open rules: %w", err)
	}
	defer file.Close()

	rules, err := decode(resolved, file)
	if err != nil {
		return Config{}, fmt.Errorf("parse rules %s: %w", resolved, err)
	}
	if err := patch.Validate(rules); err != nil {
		return Config{}, fmt.Errorf("rules %s: %w", resolved, err)
	}
	return Config{Path: resolved, Rules: rules}, nil
}

func decode(path string, r io.Reader) ([]patch.Rule, error) {
	var raw ruleFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	rules := make([]patch.Rule, 0, len(raw.Rules))
	for _, e := range raw.Rules {
		rules = append(rules, e.rule())
	}
	return rules, nil
}

func (e ruleEntry) rule() patch.Rule {
	r := patch.Rule{
		Name:    strings.TrimSpace(e.Name),
		Trigger: patch.Trigger{Text: e.Trigger, Mode: patch.MatchMode(strings.TrimSpace(e.Match))},
		Action:  patch.Action(strings.TrimSpace(e.Action)),
		Payload: e.Payload,
		Skip:    e.Skip,
		Anchor:  e.Anchor,
		Once:    e.Once,
	}
	if e.Boundary != "" {
		r.Boundary = &patch.Trigger{Text: e.Boundary, Mode: patch.MatchMode(strings.TrimSpace(e.BoundaryMatch))}
	}
	return r
}

// DefaultPath returns the default rule file location.
func DefaultPath() string {
	return defaultConfigPath
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
