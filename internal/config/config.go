package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/atomicstack/xorg-choose-window/internal/alphabet"
	"github.com/atomicstack/xorg-choose-window/internal/app"
	"github.com/atomicstack/xorg-choose-window/internal/window"
	"github.com/atomicstack/xorg-choose-window/internal/xserver"
)

const programName = "xorg-choose-window"

// Version is stamped at build time with -ldflags "-X".
var Version = "dev"

// Exit codes from sysexits.h.
const (
	ExitOK       = 0
	ExitUsage    = 64
	ExitSoftware = 70
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envFormat     = "XORG_CHOOSE_WINDOW_FORMAT"
	envFontSize   = "XORG_CHOOSE_WINDOW_FONT_SIZE"
	envFontPath   = "XORG_CHOOSE_WINDOW_FONT_PATH"
	envLogFile    = "XORG_CHOOSE_WINDOW_LOG_FILE"
	envTrace      = "XORG_CHOOSE_WINDOW_TRACE"
	envCharacters = "XORG_CHOOSE_WINDOW_CHARACTERS"
	envEnvFile    = "XORG_CHOOSE_WINDOW_ENV_FILE"
)

var (
	// ErrHelp is returned for -?/--help.
	ErrHelp = errors.New("help requested")
	// ErrUsage is returned for --usage.
	ErrUsage = errors.New("usage requested")
	// ErrVersion is returned for -V/--version.
	ErrVersion = errors.New("version requested")
)

// UsageError marks invalid invocations.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

func usageErrorf(format string, args ...interface{}) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// IsUsageError reports whether err should exit with ExitUsage.
func IsUsageError(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

type options struct {
	blacklist []string
	whitelist []string
	format    string
	fontSize  string
	fontPath  string
	match     string
	display   string
	terminal  bool
	printTree bool
	trace     bool
	logFile   string
	help      bool
	usage     bool
	version   bool
}

func newFlagSet(env map[string]string) (*pflag.FlagSet, *options) {
	o := &options{}
	fs := pflag.NewFlagSet(programName, pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	fs.SortFlags = false

	fs.StringArrayVarP(&o.blacklist, "blacklist", "b", nil, "`WINDOWID` to exclude (repeatable)")
	fs.StringArrayVarP(&o.whitelist, "whitelist", "w", nil, "only choose among these `WINDOWID`s (repeatable)")
	fs.StringVarP(&o.format, "format", "f", envOrDefault(env, envFormat, "decimal"), "output `FORMAT`: decimal or hexadecimal")
	fs.StringVarP(&o.fontSize, "font-size", "s", envOrDefault(env, envFontSize, strconv.Itoa(xserver.DefaultFontSize)), "label font `SIZE` in points")
	fs.StringVarP(&o.fontPath, "font-path", "t", envOrDefault(env, envFontPath, ""), "absolute `PATH` to a TrueType font")
	fs.StringVarP(&o.match, "match", "m", "", "only label windows whose title or class fuzzily matches `PATTERN`")
	fs.StringVar(&o.display, "display", "", "X `DISPLAY` to connect to (defaults to $DISPLAY)")
	fs.BoolVarP(&o.terminal, "terminal", "T", false, "list choices in the terminal instead of drawing overlays")
	fs.BoolVar(&o.printTree, "print-tree", false, "print the label tree to stderr before choosing")
	fs.StringVar(&o.logFile, "log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	fs.BoolVar(&o.trace, "trace", false, "enable verbose JSON trace logging")
	fs.BoolVarP(&o.help, "help", "?", false, "give this help list")
	fs.BoolVar(&o.usage, "usage", false, "give a short usage message")
	fs.BoolVarP(&o.version, "version", "V", false, "print program version")
	return fs, o
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env, err := loadEnv(parseEnv(environ))
	if err != nil {
		return Config{}, err
	}

	fs, o := newFlagSet(env)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return Config{}, ErrHelp
		}
		return Config{}, &UsageError{Err: err}
	}
	switch {
	case o.help:
		return Config{}, ErrHelp
	case o.usage:
		return Config{}, ErrUsage
	case o.version:
		return Config{}, ErrVersion
	}

	trace := o.trace
	if !fs.Changed("trace") {
		if trace, err = envBool(env, envTrace); err != nil {
			return Config{}, err
		}
	}

	positional := fs.Args()
	var chars string
	switch len(positional) {
	case 0:
		chars = strings.TrimSpace(env[envCharacters])
		if chars == "" {
			return Config{}, usageErrorf("missing CHARACTERS argument")
		}
	case 1:
		chars = positional[0]
	default:
		return Config{}, usageErrorf("too many arguments: %s", strings.Join(positional[1:], " "))
	}
	alpha, err := alphabet.Parse(chars)
	if err != nil {
		return Config{}, &UsageError{Err: err}
	}

	blacklist, err := parseWindowIDs(o.blacklist)
	if err != nil {
		return Config{}, err
	}
	whitelist, err := parseWindowIDs(o.whitelist)
	if err != nil {
		return Config{}, err
	}
	format, err := app.ParseFormat(o.format)
	if err != nil {
		return Config{}, &UsageError{Err: err}
	}
	fontSize, err := strconv.Atoi(strings.TrimSpace(o.fontSize))
	if err != nil {
		return Config{}, usageErrorf("invalid value for font size: %s", o.fontSize)
	}

	overlay := xserver.DefaultOverlayOptions()
	overlay.FontSize = float64(fontSize)
	overlay.FontPath = o.fontPath

	cfg := Config{
		App: app.Config{
			Alphabet: alpha,
			Criteria: window.Criteria{
				Blacklist: blacklist,
				Whitelist: whitelist,
				Match:     o.match,
			},
			Format:    format,
			Display:   o.display,
			Overlay:   overlay,
			Terminal:  o.terminal,
			PrintTree: o.printTree,
		},
		Logging: Logging{
			FilePath: o.logFile,
			Trace:    trace,
		},
		Flags: map[string]string{
			"characters": alpha.String(),
			"blacklist":  strings.Join(o.blacklist, ","),
			"whitelist":  strings.Join(o.whitelist, ","),
			"format":     o.format,
			"fontSize":   strconv.Itoa(fontSize),
			"fontPath":   o.fontPath,
			"match":      o.match,
			"display":    o.display,
			"terminal":   strconv.FormatBool(o.terminal),
			"printTree":  strconv.FormatBool(o.printTree),
		},
		Args: append([]string(nil), args...),
	}
	return cfg, nil
}

// parseWindowIDs accepts C integer literals: decimal, 0x hexadecimal or
// leading-zero octal.
func parseWindowIDs(values []string) ([]window.ID, error) {
	ids := make([]window.ID, 0, len(values))
	for _, raw := range values {
		id, err := ParseWindowID(raw)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ParseWindowID parses one window identifier literal.
func ParseWindowID(raw string) (window.ID, error) {
	s := strings.TrimSpace(raw)
	base := 10
	digits := s
	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		base, digits = 16, s[2:]
	case len(s) > 1 && s[0] == '0':
		base, digits = 8, s[1:]
	}
	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil || v == 0 || v > 0xffffffff {
		return 0, usageErrorf("invalid window id: %s", raw)
	}
	return window.ID(v), nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

// envFilePath resolves the optional env file from the process environment.
func envFilePath(env map[string]string) string {
	if p := strings.TrimSpace(env[envEnvFile]); p != "" {
		return p
	}
	if dir := strings.TrimSpace(env["XDG_CONFIG_HOME"]); dir != "" {
		return filepath.Join(dir, programName, "env")
	}
	if home := strings.TrimSpace(env["HOME"]); home != "" {
		return filepath.Join(home, ".config", programName, "env")
	}
	return ""
}

// loadEnv layers the env file beneath the process environment.
func loadEnv(env map[string]string) (map[string]string, error) {
	path := envFilePath(env)
	if path == "" {
		return env, nil
	}
	fileValues, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return env, nil
		}
		return nil, usageErrorf("reading %s: %v", path, err)
	}
	merged := make(map[string]string, len(env)+len(fileValues))
	for k, v := range fileValues {
		merged[k] = v
	}
	for k, v := range env {
		merged[k] = v
	}
	return merged, nil
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func envBool(env map[string]string, key string) (bool, error) {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return false, nil
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, usageErrorf("invalid value for %s: %s", key, v)
	}
	return parsed, nil
}

// HelpText is printed for --help.
func HelpText() string {
	fs, _ := newFlagSet(nil)
	var b strings.Builder
	fmt.Fprintf(&b, "Usage: %s [OPTION...] CHARACTERS\n", programName)
	b.WriteString("Label every visible window with a key sequence built from CHARACTERS and\n")
	b.WriteString("print the id of the window whose sequence is typed.\n\n")
	b.WriteString(fs.FlagUsages())
	b.WriteString("\nCHARACTERS must hold at least two distinct characters from [0-9a-z].\n")
	return b.String()
}

// UsageText is printed for --usage.
func UsageText() string {
	return fmt.Sprintf("Usage: %s [-?TV] [-b WINDOWID] [-w WINDOWID] [-f FORMAT] [-s SIZE]\n"+
		"            [-t PATH] [-m PATTERN] [--display=DISPLAY] [--print-tree]\n"+
		"            [--log-file=PATH] [--trace] [--help] [--usage] [--version]\n"+
		"            CHARACTERS\n", programName)
}

// VersionText is printed for --version.
func VersionText() string {
	return fmt.Sprintf("%s %s\n", programName, Version)
}

// MustLoad returns configuration or exits: informational flags exit 0 after
// printing, invalid invocations exit 64.
func MustLoad() Config {
	cfg, err := Load()
	switch {
	case err == nil:
		return cfg
	case errors.Is(err, ErrHelp):
		fmt.Fprint(os.Stdout, HelpText())
		os.Exit(ExitOK)
	case errors.Is(err, ErrUsage):
		fmt.Fprint(os.Stdout, UsageText())
		os.Exit(ExitOK)
	case errors.Is(err, ErrVersion):
		fmt.Fprint(os.Stdout, VersionText())
		os.Exit(ExitOK)
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", programName, err)
	fmt.Fprintf(os.Stderr, "Try '%s --help' or '%s --usage' for more information.\n", programName, programName)
	os.Exit(ExitUsage)
	return Config{}
}

// Validate performs cross-field checks that flag parsing cannot.
func Validate(cfg Config) error {
	if cfg.App.Alphabet.Len() < alphabet.MinSize {
		return usageErrorf("CHARACTERS must contain at least %d distinct characters", alphabet.MinSize)
	}
	if cfg.App.Overlay.FontSize <= 0 {
		return usageErrorf("font size must be > 0 (got %v)", cfg.App.Overlay.FontSize)
	}
	if p := cfg.App.Overlay.FontPath; p != "" && !filepath.IsAbs(p) {
		return usageErrorf("font path must be absolute: %s", p)
	}
	return nil
}
