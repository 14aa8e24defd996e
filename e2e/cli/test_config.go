package e2e_cli

import (
	"sync"

	"github.com/spf13/viper"
)

var (
	e2eConfigOnce sync.Once
	e2eViper      *viper.Viper
)

// e2eConfig reads E2E_* switches from a .env file at the repository root or
// from the environment.
func e2eConfig() *viper.Viper {
	e2eConfigOnce.Do(func() {
		e2eViper = viper.New()

		e2eViper.SetConfigName(".env")
		e2eViper.SetConfigType("env")
		e2eViper.AddConfigPath(".")
		e2eViper.AddConfigPath("../..")

		e2eViper.AutomaticEnv()

		_ = e2eViper.ReadInConfig()
	})

	return e2eViper
}

// e2eEnabled reports whether the E2E_<name> switch is set to a true value.
// The tests it guards change the state of the machine they run on.
func e2eEnabled(name string) bool {
	return e2eConfig().GetBool("E2E_" + name)
}
