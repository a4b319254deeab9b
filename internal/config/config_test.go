package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	c, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, Config{
		ItemsPerPage:   5,
		MinUID:         1000,
		MaxUID:         65534,
		CommandTimeout: 30 * time.Second,
		LogLevel:       "info",
	}, c)
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	isolate(t)
	path := writeFile(t, "users-manager.yaml", `
items_per_page: 10
min_uid: 2000
command_timeout: 5s
log_level: debug
`)
	t.Setenv("USERS_MANAGER_MAX_UID", "3000")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-file", "", "")
	flags.String("log-level", "", "")
	flags.Bool("sudo", false, "")
	require.NoError(t, flags.Parse([]string{"--sudo", "--log-file", "/tmp/um.log"}))

	c, err := Load(flags, path)
	require.NoError(t, err)
	assert.Equal(t, 10, c.ItemsPerPage)
	assert.Equal(t, 2000, c.MinUID)
	assert.Equal(t, 3000, c.MaxUID)
	assert.Equal(t, 5*time.Second, c.CommandTimeout)
	assert.True(t, c.UseSudo)
	assert.Equal(t, "/tmp/um.log", c.LogFile)
	assert.Equal(t, "debug", c.LogLevel, "unset flag must not override the file")
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(nil, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadLoginDefs(t *testing.T) {
	isolate(t)
	defs := writeFile(t, "login.defs", `# /etc/login.defs
MAIL_DIR        /var/mail
ENV_PATH        PATH=/usr/local/bin:/usr/bin:/bin
USERGROUPS_ENAB yes

UID_MIN                  1500
UID_MAX                 60000
`)
	path := writeFile(t, "users-manager.yaml", "login_defs: "+defs+"\n")

	c, err := Load(nil, path)
	require.NoError(t, err)
	assert.Equal(t, 1500, c.MinUID)
	assert.Equal(t, 60001, c.MaxUID)
}

func TestValidate(t *testing.T) {
	ok := Config{ItemsPerPage: 5, MinUID: 1000, MaxUID: 65534, CommandTimeout: time.Second}
	require.NoError(t, ok.Validate())

	bad := ok
	bad.ItemsPerPage = 0
	assert.Error(t, bad.Validate())

	bad = ok
	bad.MinUID = 70000
	assert.Error(t, bad.Validate())

	bad = ok
	bad.CommandTimeout = 0
	assert.Error(t, bad.Validate())
}
