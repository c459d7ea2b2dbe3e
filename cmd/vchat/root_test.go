package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avitaltamir/vibechat/internal/config"
	"github.com/avitaltamir/vibechat/internal/errors"
	"github.com/avitaltamir/vibechat/internal/state"
	"github.com/avitaltamir/vibechat/internal/theme"
)

func parse(t *testing.T, args ...string) (config.Config, error) {
	t.Helper()
	var f flags
	fs := pflag.NewFlagSet("vchat", pflag.ContinueOnError)
	bindFlags(fs, &f)
	require.NoError(t, fs.Parse(args))
	return loadConfig(fs, f)
}

func TestLoadConfig_Flags(t *testing.T) {
	dir := t.TempDir()
	cfg, err := parse(t, "--state-dir", dir, "--theme", "mono", "--notify", "--bell=false",
		"--double-click", "250ms", "--contacts-percent", "30")
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.StateDir)
	assert.Equal(t, filepath.Join(dir, config.DataFileName), cfg.DataFile)
	assert.Equal(t, "mono", cfg.Theme)
	assert.True(t, cfg.Notify)
	assert.False(t, cfg.Bell)
	assert.Equal(t, 250*time.Millisecond, cfg.DoubleClick)
	assert.Equal(t, 30, cfg.ContactsPercent)
}

func TestLoadConfig_FlagsBeatEnvironment(t *testing.T) {
	t.Setenv(config.EnvStateDir, t.TempDir())
	t.Setenv(config.EnvContactsPercent, "40")

	cfg, err := parse(t, "--contacts-percent", "20")
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.ContactsPercent)
}

func TestLoadConfig_SavedState(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, state.SaveTo(dir, state.State{ContactsPercent: 35, Theme: "lobster"}))

	cfg, err := parse(t, "--state-dir", dir)
	require.NoError(t, err)
	assert.Equal(t, 35, cfg.ContactsPercent)
	assert.Equal(t, "lobster", cfg.Theme)

	cfg, err = parse(t, "--state-dir", dir, "--theme", "mono", "--contacts-percent", "25")
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.ContactsPercent)
	assert.Equal(t, "mono", cfg.Theme)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"percent", []string{"--contacts-percent", "90"}},
		{"double click", []string{"--double-click", "5s"}},
		{"theme", []string{"--theme", " "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(config.EnvStateDir, t.TempDir())
			_, err := parse(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, errors.ExitConfig, errors.ExitCode(err))
		})
	}
}

func TestThemeCmd(t *testing.T) {
	run := func(args ...string) (string, error) {
		cmd := newRootCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs(args)
		err := cmd.Execute()
		return out.String(), err
	}

	out, err := run("theme", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "mono\n")

	out, err = run("theme", "dump", "mono")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "mono.yaml")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o644))

	out, err = run("theme", "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, `theme "mono" is complete`)

	_, err = run("theme", "dump", "nope")
	require.Error(t, err)
	assert.Equal(t, errors.ExitTheme, errors.ExitCode(err))

	require.NoError(t, os.WriteFile(path, []byte("name: broken\n"), 0o644))
	_, err = run("theme", "check", path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.KindTheme))
	_, err = theme.Load(path)
	assert.Error(t, err)
}
