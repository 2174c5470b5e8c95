// Package config seeds and reads renderer/CLI defaults through viper:
// one SetDefaults call establishes every known key, and a best-effort
// config file read falls back to the defaults on any error rather than
// failing the run.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Key names for every setting this module understands.
const (
	KeyRenderScale           = "render.scale"
	KeyRenderStrokeColor     = "render.strokeColor"
	KeyRenderFillColor       = "render.fillColor"
	KeyRenderBackgroundColor = "render.backgroundColor"
	KeyRenderPadding         = "render.padding"
	KeyRenderUnits           = "render.units"

	KeyCLIVerbose = "cli.verbose"
	KeyCLIOutFile = "cli.outFile"
)

// SetDefaults registers this module's baseline settings on v and points
// it at an optional "gerberts.toml" in the current directory.
func SetDefaults(v *viper.Viper) {
	v.SetConfigName("gerberts")
	v.AddConfigPath(".")
	v.SetConfigType("toml")

	v.SetDefault(KeyRenderScale, 1.0)
	v.SetDefault(KeyRenderStrokeColor, "#000000")
	v.SetDefault(KeyRenderFillColor, "#000000")
	v.SetDefault(KeyRenderBackgroundColor, "none")
	v.SetDefault(KeyRenderPadding, 0.1)
	v.SetDefault(KeyRenderUnits, "mm")

	v.SetDefault(KeyCLIVerbose, false)
	v.SetDefault(KeyCLIOutFile, "out.svg")
}

// New returns a viper.Viper carrying this module's defaults, plus
// whatever a gerberts.toml on disk overrides. A missing or malformed
// config file is not an error: the run proceeds on defaults alone.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	_ = v.ReadInConfig()
	return v
}

// DiagnosticAllCfgPrint prints every resolved setting, one per line.
func DiagnosticAllCfgPrint(v *viper.Viper) {
	for key, val := range v.AllSettings() {
		fmt.Println(key, ":", val)
	}
}
