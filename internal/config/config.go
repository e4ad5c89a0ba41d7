package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/ashwch/powermenu/internal/action"
	"github.com/ashwch/powermenu/internal/appdirs"
	"github.com/pelletier/go-toml/v2"
)

// FileName is the config file looked up inside the config directory.
const FileName = appdirs.ConfigFileName

const (
	BackendAuto      = "auto"
	BackendBubbleTea = "bubbletea"
	BackendHuh       = "huh"
	BackendTView     = "tview"
	BackendPlain     = "plain"
)

const uiSection = "ui"

// ActionConfig is the resolved command and confirm flag of one action. Shell is set
// when the command was written as a single string and is already a shell line.
type ActionConfig struct {
	Command []string `toml:"command" json:"command"`
	Shell   bool     `toml:"-" json:"shell,omitempty"`
	Confirm bool     `toml:"confirm" json:"confirm"`
}

// ShellLine is the line handed to sh -c. List tokens are double-quoted when needed
// so each one stays a single argument; $VAR inside a token still expands.
func (c ActionConfig) ShellLine() string {
	if c.Shell {
		return strings.Join(c.Command, " ")
	}
	quoted := make([]string, 0, len(c.Command))
	for _, token := range c.Command {
		quoted = append(quoted, quoteToken(token))
	}
	return strings.Join(quoted, " ")
}

var tokenEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`")

func quoteToken(token string) string {
	if token != "" && strings.IndexFunc(token, needsQuoting) < 0 {
		return token
	}
	return `"` + tokenEscaper.Replace(token) + `"`
}

func needsQuoting(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case strings.ContainsRune("-_./:=@%+,", r):
		return false
	default:
		return true
	}
}

type UIConfig struct {
	Backend string `toml:"backend" json:"backend"`
}

type Config struct {
	Lock      ActionConfig `toml:"lock" json:"lock"`
	Logout    ActionConfig `toml:"logout" json:"logout"`
	Poweroff  ActionConfig `toml:"poweroff" json:"poweroff"`
	Reboot    ActionConfig `toml:"reboot" json:"reboot"`
	Suspend   ActionConfig `toml:"suspend" json:"suspend"`
	Hibernate ActionConfig `toml:"hibernate" json:"hibernate"`
	UI        UIConfig     `toml:"ui" json:"ui"`
}

// Issue describes a part of the config file that was ignored in favour of a default.
type Issue struct {
	Section string
	Key     string
	Message string
}

func (i Issue) String() string {
	switch {
	case i.Section == "":
		return i.Message
	case i.Key == "":
		return fmt.Sprintf("[%s]: %s", i.Section, i.Message)
	default:
		return fmt.Sprintf("[%s] %s: %s", i.Section, i.Key, i.Message)
	}
}

func DefaultAction(a action.Action) ActionConfig {
	return ActionConfig{
		Command: a.DefaultCommand(),
		Confirm: a.DefaultConfirm(),
	}
}

func Default() Config {
	var cfg Config
	for _, a := range action.All() {
		*cfg.slot(a) = DefaultAction(a)
	}
	cfg.UI.Backend = BackendAuto
	return cfg
}

// For returns the resolved settings of one action.
func (c Config) For(a action.Action) ActionConfig {
	if slot := c.slot(a); slot != nil {
		return *slot
	}
	return ActionConfig{}
}

func (c *Config) slot(a action.Action) *ActionConfig {
	switch a {
	case action.Lock:
		return &c.Lock
	case action.Logout:
		return &c.Logout
	case action.Poweroff:
		return &c.Poweroff
	case action.Reboot:
		return &c.Reboot
	case action.Suspend:
		return &c.Suspend
	case action.Hibernate:
		return &c.Hibernate
	default:
		return nil
	}
}

// Resolve merges a raw TOML document over the registry defaults. It never fails:
// nil input, unparseable input and malformed fields all fall back to defaults.
func Resolve(data []byte) (Config, []Issue) {
	cfg := Default()
	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}

	raw := map[string]any{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return cfg, []Issue{{Message: fmt.Sprintf("could not parse config, using defaults: %v", err)}}
	}

	var issues []Issue
	for _, name := range sortedKeys(raw) {
		value := raw[name]
		if name == uiSection {
			issues = append(issues, cfg.resolveUI(value)...)
			continue
		}
		a, ok := action.Parse(name)
		if !ok || a.Name() != name {
			issues = append(issues, unknownSection(name))
			continue
		}
		section, ok := value.(map[string]any)
		if !ok {
			issues = append(issues, Issue{Section: name, Message: "expected a table, using defaults"})
			continue
		}
		issues = append(issues, resolveAction(cfg.slot(a), name, section)...)
	}
	return cfg, issues
}

func resolveAction(target *ActionConfig, name string, section map[string]any) []Issue {
	var issues []Issue
	for _, key := range sortedKeys(section) {
		value := section[key]
		switch key {
		case "command":
			command, shell, err := parseCommand(value)
			if err != nil {
				issues = append(issues, Issue{Section: name, Key: key, Message: err.Error() + ", using default"})
				continue
			}
			target.Command = command
			target.Shell = shell
		case "confirm":
			confirm, ok := value.(bool)
			if !ok {
				issues = append(issues, Issue{Section: name, Key: key, Message: fmt.Sprintf("expected boolean, got %T, using default", value)})
				continue
			}
			target.Confirm = confirm
		default:
			issues = append(issues, Issue{Section: name, Key: key, Message: "unknown key"})
		}
	}
	return issues
}

// parseCommand accepts a shell-line string or a non-empty list of argv tokens. shell
// reports which of the two forms value was.
func parseCommand(value any) (command []string, shell bool, err error) {
	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, false, errors.New("command cannot be empty")
		}
		return []string{v}, true, nil
	case []any:
		if len(v) == 0 {
			return nil, false, errors.New("command cannot be empty")
		}
		out := make([]string, 0, len(v))
		for idx, item := range v {
			token, ok := item.(string)
			if !ok {
				return nil, false, fmt.Errorf("command[%d] must be a string, got %T", idx, item)
			}
			if strings.TrimSpace(token) == "" {
				return nil, false, fmt.Errorf("command[%d] cannot be blank", idx)
			}
			out = append(out, token)
		}
		return out, false, nil
	default:
		return nil, false, fmt.Errorf("command must be a string or list of strings, got %T", value)
	}
}

func (c *Config) resolveUI(value any) []Issue {
	section, ok := value.(map[string]any)
	if !ok {
		return []Issue{{Section: uiSection, Message: "expected a table, using defaults"}}
	}
	var issues []Issue
	for _, key := range sortedKeys(section) {
		if key != "backend" {
			issues = append(issues, Issue{Section: uiSection, Key: key, Message: "unknown key"})
			continue
		}
		raw, _ := section[key].(string)
		backend := NormalizeBackend(raw, "")
		if backend == "" {
			issues = append(issues, Issue{Section: uiSection, Key: key, Message: "must be one of auto|bubbletea|huh|tview|plain, using default"})
			continue
		}
		c.UI.Backend = backend
	}
	return issues
}

func unknownSection(name string) Issue {
	known := append(action.Names(), uiSection)
	best := ""
	bestDistance := 3
	for _, candidate := range known {
		distance := levenshtein.ComputeDistance(strings.ToLower(name), candidate)
		if distance < bestDistance {
			best = candidate
			bestDistance = distance
		}
	}
	if best != "" {
		return Issue{Section: name, Message: fmt.Sprintf("unknown section, did you mean [%s]?", best)}
	}
	return Issue{Section: name, Message: "unknown section"}
}

// Load reads FileName from dir. A missing file is not an issue; any other read
// failure is reported and replaced with defaults.
func Load(dir string, logger *slog.Logger) (Config, []Issue) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debug("config file not found, using defaults", slog.String("path", path))
		return Default(), nil
	}
	if err != nil {
		logger.Debug("could not read config file, using defaults", slog.String("path", path), slog.Any("error", err))
		return Default(), []Issue{{Message: fmt.Sprintf("could not read config file: %v", err)}}
	}

	cfg, issues := Resolve(data)
	for _, issue := range issues {
		logger.Debug("config issue", slog.String("path", path), slog.String("issue", issue.String()))
	}
	return cfg, issues
}

// Encode renders cfg as TOML. Shell-line commands are written back as strings so
// a saved file resolves to the same commands.
func Encode(cfg Config) ([]byte, error) {
	doc := map[string]any{
		uiSection: map[string]any{"backend": cfg.UI.Backend},
	}
	for _, a := range action.All() {
		ac := cfg.For(a)
		var command any = ac.Command
		if ac.Shell {
			command = ac.ShellLine()
		}
		doc[a.Name()] = map[string]any{
			"command": command,
			"confirm": ac.Confirm,
		}
	}
	payload, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("could not serialize config: %w", err)
	}
	return payload, nil
}

// Save atomically writes cfg to path.
func Save(path string, cfg Config) error {
	payload, err := Encode(cfg)
	if err != nil {
		return err
	}

	dir, err := appdirs.EnsureConfigDir(filepath.Dir(path))
	if err != nil {
		return err
	}
	tempFile, err := os.CreateTemp(dir, ".powermenu-*.toml")
	if err != nil {
		return fmt.Errorf("could not create temp config file: %w", err)
	}
	tempPath := tempFile.Name()
	cleanup := func() {
		_ = os.Remove(tempPath)
	}

	if _, err := tempFile.Write(payload); err != nil {
		_ = tempFile.Close()
		cleanup()
		return fmt.Errorf("could not write temp config file: %w", err)
	}
	if err := tempFile.Chmod(0o600); err != nil {
		_ = tempFile.Close()
		cleanup()
		return fmt.Errorf("could not secure temp config file permissions: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		cleanup()
		return fmt.Errorf("could not close temp config file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		cleanup()
		return fmt.Errorf("could not atomically replace config file: %w", err)
	}
	return nil
}

func NormalizeBackend(value string, fallback string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case BackendAuto, BackendBubbleTea, BackendHuh, BackendTView, BackendPlain:
		return normalized
	default:
		return strings.ToLower(strings.TrimSpace(fallback))
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
