package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Installer defaults baked in when a build is generated for a specific
// server and room, e.g.
//
//	go build -ldflags "-X github.com/quickr-dev/labctl/internal/config.ServerURL=https://lab.example.edu \
//	  -X github.com/quickr-dev/labctl/internal/config.RoomID=... \
//	  -X github.com/quickr-dev/labctl/internal/config.InstallToken=..."
var (
	ServerURL    = ""
	RoomID       = ""
	InstallToken = ""
	AutoRegister = "true"
)

const (
	BootstrapName = "agent-installer"
	BootstrapType = "yaml"
	EnvPrefix     = "AGENT_INSTALLER"
	AgentDirName  = "ComputerAgent"
)

// Install is the resolved configuration for one installer run.
type Install struct {
	ServerURL    string `mapstructure:"server_url" validate:"required,url"`
	RoomID       string `mapstructure:"room_id"`
	Token        string `mapstructure:"token" validate:"required"`
	AutoRegister bool   `mapstructure:"auto_register"`
	InstallDir   string `mapstructure:"install_dir" validate:"required"`
}

// APIBase is the server's API root. The agent and every installer request use it.
func (c *Install) APIBase() string {
	return strings.TrimRight(c.ServerURL, "/") + "/api"
}

// AgentConfig is the file the installed agent reads on start.
func (c *Install) AgentConfig() AgentConfig {
	return AgentConfig{
		ServerURL:         c.APIBase(),
		RoomID:            c.RoomID,
		InstallationToken: c.Token,
	}
}

// DefaultInstallDir is %ProgramFiles%\ComputerAgent on Windows and
// /opt/ComputerAgent elsewhere.
func DefaultInstallDir() string {
	if runtime.GOOS == "windows" {
		programFiles := os.Getenv("ProgramFiles")
		if programFiles == "" {
			programFiles = `C:\Program Files`
		}
		return filepath.Join(programFiles, AgentDirName)
	}
	return filepath.Join("/opt", AgentDirName)
}

// NewViper returns a viper instance seeded with the build-time defaults and
// wired to AGENT_INSTALLER_* environment variables.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("server_url", ServerURL)
	v.SetDefault("room_id", RoomID)
	v.SetDefault("token", InstallToken)
	v.SetDefault("auto_register", parseBool(AutoRegister, true))
	v.SetDefault("install_dir", DefaultInstallDir())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// BindFlags maps the installer's command line flags onto config keys. Flags
// that are absent from the set are skipped.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for key, flag := range map[string]string{
		"server_url":    "server-url",
		"room_id":       "room-id",
		"token":         "token",
		"auto_register": "auto-register",
		"install_dir":   "install-dir",
	} {
		f := flags.Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag --%s: %w", flag, err)
		}
	}
	return nil
}

// Load resolves the install configuration. An explicit configFile must exist;
// otherwise agent-installer.yaml is looked up next to the executable and in
// the working directory, and its absence is not an error.
func Load(v *viper.Viper, configFile string) (*Install, error) {
	if configFile == "" {
		configFile = findBootstrap(bootstrapDirs()...)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", configFile, err)
		}
	}

	var cfg Install
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func bootstrapDirs() []string {
	var dirs []string
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	}
	return append(dirs, ".")
}

// findBootstrap returns the first agent-installer.yaml found in dirs. Only the
// full file name matches: on unix the installer binary itself is called
// agent-installer.
func findBootstrap(dirs ...string) string {
	name := BootstrapName + "." + BootstrapType
	for _, dir := range dirs {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate checks the install configuration and reports every problem at once.
func Validate(cfg *Install) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "url":
			msgs = append(msgs, fmt.Sprintf("%s must be an absolute URL, got %q", fe.Field(), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid install config: %s", strings.Join(msgs, "; "))
}

func parseBool(s string, fallback bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return b
}
