// This file is part of volatile.
//
// volatile is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// volatile is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with volatile.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"errors"
	"path/filepath"
	"runtime"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jetsetilly/volatile/curated"
)

// ConfigFailed is the pattern for errors reading the configuration file.
const ConfigFailed = "volatilegen: configuration: %v"

// the name of the configuration file without extension
const configName = ".volatilegen"

// config is the result of combining flags, environment and configuration file
type config struct {
	types   []string
	output  string
	pkg     string
	table   bool
	arch    string
	graph   string
	verbose bool
	version bool
}

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("volatilegen", pflag.ContinueOnError)
	flags.StringSliceP("type", "t", nil, "struct types to read from Go source")
	flags.StringP("output", "o", "", "output file (default <input>_volatile.go)")
	flags.String("package", "", "package name for code generated from a description file")
	flags.Bool("table", false, "print the offsets and permissions of every accessor")
	flags.String("arch", runtime.GOARCH, "architecture for --table")
	flags.String("graph", "", "write a graphviz dot file of the parsed description")
	flags.String("config", "", "configuration file")
	flags.BoolP("verbose", "v", false, "echo log entries to stderr")
	flags.Bool("version", false, "print version information")
	return flags
}

// loadConfig combines the parsed flags with the environment and configuration
// file. the input argument is used to find the configuration file
func loadConfig(flags *pflag.FlagSet, input string) (config, error) {
	v := viper.New()

	v.SetDefault("arch", runtime.GOARCH)
	v.SetEnvPrefix("VOLATILEGEN")
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return config{}, curated.Errorf(ConfigFailed, err)
	}

	if path, _ := flags.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return config{}, curated.Errorf(ConfigFailed, err)
		}
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		if input != "" {
			v.AddConfigPath(filepath.Dir(input))
		}
		v.AddConfigPath(".")

		// the configuration file is optional
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return config{}, curated.Errorf(ConfigFailed, err)
			}
		}
	}

	return config{
		types:   v.GetStringSlice("type"),
		output:  v.GetString("output"),
		pkg:     v.GetString("package"),
		table:   v.GetBool("table"),
		arch:    v.GetString("arch"),
		graph:   v.GetString("graph"),
		verbose: v.GetBool("verbose"),
		version: v.GetBool("version"),
	}, nil
}
