// Package config binds CLI flags and environment variables for the
// payments-engine command: verbosity and log output format.
package config

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Settings are the runtime-tunable logging knobs: verbosity and encoding.
type Settings struct {
	Verbosity int
	LogFormat string
}

// Bind registers flags on fs and returns the viper instance bound to them, so
// PAYMENTS_ENGINE_-prefixed environment variables override defaults and
// flags override environment variables.
func Bind(fs *pflag.FlagSet) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("PAYMENTS_ENGINE")
	v.AutomaticEnv()

	fs.CountP("verbose", "v", "increase log verbosity (repeatable)")
	fs.String("log-format", "text", "log output format: text or json")

	v.BindPFlag("verbose", fs.Lookup("verbose"))
	v.BindPFlag("log-format", fs.Lookup("log-format"))

	return v
}

// Load resolves bound values into Settings.
func Load(v *viper.Viper) Settings {
	return Settings{
		Verbosity: v.GetInt("verbose"),
		LogFormat: v.GetString("log-format"),
	}
}
