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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/spf13/pflag"

	"github.com/jetsetilly/volatile/curated"
	"github.com/jetsetilly/volatile/generator"
	"github.com/jetsetilly/volatile/layout"
	"github.com/jetsetilly/volatile/logger"
	"github.com/jetsetilly/volatile/version"
)

// List of error patterns.
const (
	NoInput      = "volatilegen: input file required"
	TooManyInput = "volatilegen: too many input files (%d)"
	NoTypes      = "volatilegen: -t is required for Go source"
	WriteFailed  = "volatilegen: %v"
)

// the suffix added to the input filename to make the default output filename
const outputSuffix = "_volatile.go"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(10)
	}
}

func run(args []string, stdout io.Writer, stderr io.Writer) error {
	flags := newFlags()
	flags.SetOutput(stderr)
	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	var input string
	switch flags.NArg() {
	case 0:
	case 1:
		input = flags.Arg(0)
	default:
		return curated.Errorf(TooManyInput, flags.NArg())
	}

	cfg, err := loadConfig(flags, input)
	if err != nil {
		return err
	}

	if cfg.version {
		fmt.Fprintln(stdout, version.String())
		return nil
	}

	if input == "" {
		return curated.Errorf(NoInput)
	}

	if cfg.verbose {
		logger.SetEcho(logger.NewColorizer(stderr))
		defer logger.SetEcho(nil)
	}

	d, err := read(input, cfg)
	if err != nil {
		return err
	}

	if err := d.Validate(); err != nil {
		return err
	}

	// the inspection flags replace code generation
	if cfg.table || cfg.graph != "" {
		return inspect(d, cfg, stdout)
	}

	out, err := generator.Generate(d, filepath.Base(input))
	if err != nil {
		return err
	}

	output := cfg.output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + outputSuffix
	}

	if err := os.WriteFile(output, out, 0o644); err != nil {
		return curated.Errorf(WriteFailed, err)
	}
	logger.Logf(logger.Allow, "volatilegen", "wrote %s", output)

	return nil
}

// read the layouts from the input file
func read(input string, cfg config) (*layout.Description, error) {
	if strings.EqualFold(filepath.Ext(input), ".go") {
		if len(cfg.types) == 0 {
			return nil, curated.Errorf(NoTypes)
		}
		if cfg.pkg != "" {
			logger.Logf(logger.Allow, "volatilegen", "package %s ignored for Go source", cfg.pkg)
		}
		d, err := layout.ParseSource(input, nil, cfg.types...)
		if err != nil {
			return nil, err
		}
		logger.Logf(logger.Allow, "volatilegen", "read %d layouts from %s", len(d.Layouts), input)
		return d, nil
	}

	d, err := layout.ReadFile(input)
	if err != nil {
		return nil, err
	}
	if cfg.pkg != "" {
		d.Package = cfg.pkg
	}
	logger.Logf(logger.Allow, "volatilegen", "read %d layouts from %s", len(d.Layouts), input)

	return d, nil
}

// inspect prints the accessor table and/or writes the graph of the
// description
func inspect(d *layout.Description, cfg config, stdout io.Writer) error {
	if cfg.table {
		tbl, err := layout.NewTable(d, cfg.arch)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(stdout, tbl.Render()); err != nil {
			return curated.Errorf(WriteFailed, err)
		}
	}

	if cfg.graph != "" {
		if cfg.graph == "-" {
			memviz.Map(stdout, d)
			return nil
		}

		f, err := os.Create(cfg.graph)
		if err != nil {
			return curated.Errorf(WriteFailed, err)
		}
		memviz.Map(f, d)
		if err := f.Close(); err != nil {
			return curated.Errorf(WriteFailed, err)
		}
		logger.Logf(logger.Allow, "volatilegen", "wrote graph to %s", cfg.graph)
	}

	return nil
}
