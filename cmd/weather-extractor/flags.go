// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// envKeyReplacer maps nested keys to variables such as
// WEATHER_EXTRACTOR_OUTPUT_FORMAT.
var envKeyReplacer = strings.NewReplacer(".", "_")

// bindFlag ties a config key to a flag so the flag wins when set.
func bindFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}
