package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/telly/cmd/telly/commands"
	"go.trai.ch/telly/internal/app"
	"go.trai.ch/telly/internal/build"
	"go.trai.ch/telly/internal/core/domain"
)

type mockApp struct {
	runFunc       func(ctx context.Context, target string, opts app.RunOptions) (*app.RunResult, error)
	tasks         []domain.TaskInfo
	installedFunc func(ctx context.Context, deviceID string) (*domain.DeployRecord, error)
	cleaned       bool
}

func (m *mockApp) Run(ctx context.Context, target string, opts app.RunOptions) (*app.RunResult, error) {
	if m.runFunc != nil {
		return m.runFunc(ctx, target, opts)
	}
	return &app.RunResult{}, nil
}

func (m *mockApp) Tasks() []domain.TaskInfo {
	return m.tasks
}

func (m *mockApp) Installed(ctx context.Context, deviceID string) (*domain.DeployRecord, error) {
	if m.installedFunc != nil {
		return m.installedFunc(ctx, deviceID)
	}
	return nil, domain.ErrNoDeployRecord
}

func (m *mockApp) Clean(_ context.Context) error {
	m.cleaned = true
	return nil
}

func runCLI(t *testing.T, a commands.Application, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(a)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func captureRun(target *string, opts *app.RunOptions) *mockApp {
	return &mockApp{
		runFunc: func(_ context.Context, name string, o app.RunOptions) (*app.RunResult, error) {
			*target = name
			*opts = o
			return &app.RunResult{}, nil
		},
	}
}

func TestCommands_Run(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("TMUX", "")

		var target string
		var opts app.RunOptions

		_, err := runCLI(t, captureRun(&target, &opts), "run")

		require.NoError(t, err)
		assert.Empty(t, target)
		assert.Equal(t, domain.Options{}, opts.Options)
		assert.Nil(t, opts.Options.AppArgs)
		assert.Equal(t, "auto", opts.OutputMode)
	})

	t.Run("key value assignments", func(t *testing.T) {
		var target string
		var opts app.RunOptions

		_, err := runCLI(t, captureRun(&target, &opts),
			"run", "simulator", "target=9.1", "debug=1", "skip_build=yes", "args=-a -b")

		require.NoError(t, err)
		assert.Equal(t, "simulator", target)
		assert.Equal(t, "9.1", opts.Options.TargetVersion)
		assert.True(t, opts.Options.Debug)
		assert.True(t, opts.Options.SkipBuild)
		assert.Equal(t, []string{"-a", "-b"}, opts.Options.AppArgs)
	})

	t.Run("quoted app arguments", func(t *testing.T) {
		var target string
		var opts app.RunOptions

		_, err := runCLI(t, captureRun(&target, &opts),
			"run", "simulator", `args=--greeting 'hello world' --name "Apple TV" plain\ word`)

		require.NoError(t, err)
		assert.Equal(t, []string{"--greeting", "hello world", "--name", "Apple TV", "plain word"}, opts.Options.AppArgs)
	})

	t.Run("unbalanced quote in app arguments", func(t *testing.T) {
		_, err := runCLI(t, &mockApp{}, "run", "simulator", `args=--greeting 'hello`)
		require.ErrorIs(t, err, domain.ErrInvalidOption)
	})

	t.Run("flags", func(t *testing.T) {
		var target string
		var opts app.RunOptions

		_, err := runCLI(t, captureRun(&target, &opts),
			"run", "device", "--id", "abc123", "--install-only", "--trace", "--verbose", "--ci")

		require.NoError(t, err)
		assert.Equal(t, "device", target)
		assert.Equal(t, "abc123", opts.Options.DeviceID)
		assert.True(t, opts.Options.InstallOnly)
		assert.True(t, opts.Options.Trace)
		assert.True(t, opts.Options.Verbose)
		assert.Equal(t, "linear", opts.OutputMode)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("debug", "1")
		t.Setenv("id", "from-env")
		t.Setenv("install_only", "no")
		t.Setenv("TMUX", "/tmp/tmux-501/default,123,0")

		var target string
		var opts app.RunOptions

		_, err := runCLI(t, captureRun(&target, &opts), "run", "device")

		require.NoError(t, err)
		assert.True(t, opts.Options.Debug)
		assert.Equal(t, "from-env", opts.Options.DeviceID)
		assert.False(t, opts.Options.InstallOnly)
		assert.True(t, opts.Options.Tmux)
	})

	t.Run("precedence", func(t *testing.T) {
		t.Setenv("id", "from-env")
		t.Setenv("debug", "1")

		var target string
		var opts app.RunOptions

		_, err := runCLI(t, captureRun(&target, &opts), "run", "device", "--id", "from-flag", "id=from-arg", "debug=0")

		require.NoError(t, err)
		assert.Equal(t, "from-arg", opts.Options.DeviceID)
		assert.False(t, opts.Options.Debug)

		_, err = runCLI(t, captureRun(&target, &opts), "run", "device", "--id", "from-flag")

		require.NoError(t, err)
		assert.Equal(t, "from-flag", opts.Options.DeviceID)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := runCLI(t, &mockApp{}, "run", "simulator", "colour=blue")
		require.ErrorIs(t, err, domain.ErrInvalidOption)
	})

	t.Run("prints the installed path", func(t *testing.T) {
		a := &mockApp{
			runFunc: func(context.Context, string, app.RunOptions) (*app.RunResult, error) {
				return &app.RunResult{DeployedAppPath: "/private/var/containers/Hello.app"}, nil
			},
		}

		out, err := runCLI(t, a, "run", "device", "install_only=1")

		require.NoError(t, err)
		assert.Equal(t, "/private/var/containers/Hello.app\n", out)
	})

	t.Run("returns error on run failure", func(t *testing.T) {
		a := &mockApp{
			runFunc: func(context.Context, string, app.RunOptions) (*app.RunResult, error) {
				return nil, errors.New("simulated error")
			},
		}

		_, err := runCLI(t, a, "run", "archive")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_Tasks(t *testing.T) {
	a := &mockApp{tasks: []domain.TaskInfo{
		{Name: "archive", Description: "Create an .ipa archive"},
		{Name: "archive:distribution", Description: "Create an .ipa archive for distribution (AppStore)"},
	}}

	out, err := runCLI(t, a, "tasks")

	require.NoError(t, err)
	assert.Equal(t,
		"telly run archive               # Create an .ipa archive\n"+
			"telly run archive:distribution  # Create an .ipa archive for distribution (AppStore)\n",
		out)
}

func TestCommands_Installed(t *testing.T) {
	var requested string
	a := &mockApp{
		installedFunc: func(_ context.Context, deviceID string) (*domain.DeployRecord, error) {
			requested = deviceID
			return &domain.DeployRecord{AppPath: "/private/var/containers/Hello.app"}, nil
		},
	}

	out, err := runCLI(t, a, "installed", "abc123")

	require.NoError(t, err)
	assert.Equal(t, "abc123", requested)
	assert.Equal(t, "/private/var/containers/Hello.app\n", out)

	_, err = runCLI(t, &mockApp{}, "installed")
	require.ErrorIs(t, err, domain.ErrNoDeployRecord)
}

func TestCommands_Clean(t *testing.T) {
	a := &mockApp{}

	_, err := runCLI(t, a, "clean")

	require.NoError(t, err)
	assert.True(t, a.cleaned)
}

type recordingFormatter struct {
	json bool
}

func (f *recordingFormatter) SetJSON(enable bool) {
	f.json = enable
}

func TestCommands_JSONLogs(t *testing.T) {
	formatter := &recordingFormatter{}
	cli := commands.New(&mockApp{}, commands.WithLogFormatter(formatter))
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
	cli.SetArgs([]string{"clean", "--json"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, formatter.json)

	formatter = &recordingFormatter{}
	cli = commands.New(&mockApp{}, commands.WithLogFormatter(formatter))
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
	cli.SetArgs([]string{"clean"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.False(t, formatter.json)
}

func TestCommands_Version(t *testing.T) {
	out, err := runCLI(t, &mockApp{}, "version")

	require.NoError(t, err)
	assert.Contains(t, out, build.Version)
}
