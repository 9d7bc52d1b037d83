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

// volatilegen creates permission checked accessors for the fields of memory
// layouts. It is intended to be run with go generate:
//
//	//go:generate go run github.com/jetsetilly/volatile/cmd/volatilegen -t DeviceConfig $GOFILE
//
// The input is either a Go source file, in which case the struct types named
// with the -t flag are read, or a layout description file in JSONC, YAML or
// CBOR format.
//
// The output is written to a file named after the input with the suffix
// _volatile.go, unless the -o flag is used.
//
// Usage:
//
//	volatilegen [flags] <file.go|description>
//
// Flags:
//
//	-t, --type       struct types to read from Go source (repeatable)
//	-o, --output     output file
//	    --package    package name for code generated from a description file
//	    --table      print the offsets and permissions of every accessor
//	    --arch       architecture for --table (default is the host)
//	    --graph      write a graphviz dot file of the parsed description
//	    --config     configuration file (default .volatilegen.yaml)
//	-v, --verbose    echo log entries to stderr
//	    --version    print version information
//
// Flags can also be set in a .volatilegen.yaml file in the directory of the
// input file, or in the current directory, and with environment variables
// prefixed with VOLATILEGEN_. For example:
//
//	VOLATILEGEN_PACKAGE=uart volatilegen uart.jsonc
package main
