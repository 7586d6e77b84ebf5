package commands

import (
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.trai.ch/telly/internal/core/domain"
	"go.trai.ch/zerr"
)

// option binds an operator option to its environment variable and flag.
type option struct {
	key  string
	env  string
	flag string
}

const (
	optTarget      = "target"
	optDebug       = "debug"
	optSkipBuild   = "skip_build"
	optArgs        = "args"
	optID          = "id"
	optInstallOnly = "install_only"
	optTrace       = "trace"
	optVerbose     = "verbose"
	optTmux        = "tmux"
)

var options = []option{
	{key: optTarget, env: "target", flag: "target"},
	{key: optDebug, env: "debug", flag: "debug"},
	{key: optSkipBuild, env: "skip_build", flag: "skip-build"},
	{key: optArgs, env: "args", flag: "args"},
	{key: optID, env: "id", flag: "id"},
	{key: optInstallOnly, env: "install_only", flag: "install-only"},
	{key: optTrace, env: "trace", flag: "trace"},
	{key: optVerbose, env: "verbose", flag: "verbose"},
	{key: optTmux, env: "TMUX"},
}

// resolveOptions merges KEY=VALUE assignments, flags and environment
// variables, in that order of precedence.
func resolveOptions(flags *pflag.FlagSet, assignments []string) (domain.Options, error) {
	v := viper.New()

	known := make(map[string]struct{}, len(options))
	for _, o := range options {
		known[o.key] = struct{}{}
		if err := v.BindEnv(o.key, o.env); err != nil {
			return domain.Options{}, zerr.With(zerr.Wrap(domain.ErrInvalidOption, err.Error()), "option", o.key)
		}
		if o.flag == "" {
			continue
		}
		if f := flags.Lookup(o.flag); f != nil {
			if err := v.BindPFlag(o.key, f); err != nil {
				return domain.Options{}, zerr.With(zerr.Wrap(domain.ErrInvalidOption, err.Error()), "option", o.key)
			}
		}
	}

	for _, assignment := range assignments {
		key, value, ok := strings.Cut(assignment, "=")
		key = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
		if _, isKnown := known[key]; !ok || !isKnown {
			return domain.Options{}, zerr.With(
				zerr.Wrap(domain.ErrInvalidOption, "expected KEY=VALUE with a known key"), "argument", assignment)
		}
		v.Set(key, value)
	}

	appArgs, err := splitArgs(v.GetString(optArgs))
	if err != nil {
		return domain.Options{}, err
	}

	return domain.Options{
		TargetVersion: strings.TrimSpace(v.GetString(optTarget)),
		Debug:         enabled(v.GetString(optDebug)),
		SkipBuild:     enabled(v.GetString(optSkipBuild)),
		AppArgs:       appArgs,
		DeviceID:      strings.TrimSpace(v.GetString(optID)),
		InstallOnly:   enabled(v.GetString(optInstallOnly)),
		Trace:         enabled(v.GetString(optTrace)),
		Verbose:       enabled(v.GetString(optVerbose)),
		Tmux:          v.GetString(optTmux) != "",
	}, nil
}

// splitArgs splits the app arguments with shell quoting rules. Variables
// and command substitutions are left as written.
func splitArgs(value string) ([]string, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	args, err := shellwords.Parse(value)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidOption, err.Error()), "args", value)
	}
	return args, nil
}

// enabled treats anything but an empty value, 0, false or no as true.
func enabled(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "0", "false", "no":
		return false
	default:
		return true
	}
}
