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

package layout

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/jetsetilly/volatile/curated"
)

// Format of a description file.
type Format int

// List of valid Format values.
const (
	JSONC Format = iota
	YAML
	CBOR
)

func (f Format) String() string {
	switch f {
	case JSONC:
		return "jsonc"
	case YAML:
		return "yaml"
	case CBOR:
		return "cbor"
	}
	return "unknown"
}

// FormatFromFilename returns the format of a description file from the file
// extension.
func FormatFromFilename(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json", ".jsonc":
		return JSONC, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".cbor":
		return CBOR, nil
	}
	return 0, curated.Errorf(UnknownFormat, filename)
}

var (
	cborDec cbor.DecMode
	cborEnc cbor.EncMode
)

func init() {
	var err error

	cborDec, err = cbor.DecOptions{
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		panic("layout: CBOR decoder initialisation failed: " + err.Error())
	}

	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("layout: CBOR encoder initialisation failed: " + err.Error())
	}
}

// Decode a description. Unknown keys in the description are an error. The
// returned description has not been validated.
func Decode(data []byte, format Format) (*Description, error) {
	var d Description

	switch format {
	case JSONC:
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&d); err != nil {
			return nil, curated.Errorf(DecodeError, format, err)
		}
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&d); err != nil {
			return nil, curated.Errorf(DecodeError, format, err)
		}
	case CBOR:
		if err := cborDec.Unmarshal(data, &d); err != nil {
			return nil, curated.Errorf(DecodeError, format, err)
		}
	default:
		return nil, curated.Errorf(UnknownFormat, format)
	}

	return &d, nil
}

// Encode a description. CBOR output uses core deterministic encoding.
func Encode(d *Description, format Format) ([]byte, error) {
	var b []byte
	var err error

	switch format {
	case JSONC:
		b, err = json.MarshalIndent(d, "", "\t")
	case YAML:
		b, err = yaml.Marshal(d)
	case CBOR:
		b, err = cborEnc.Marshal(d)
	default:
		return nil, curated.Errorf(UnknownFormat, format)
	}

	if err != nil {
		return nil, curated.Errorf(DecodeError, format, err)
	}
	return b, nil
}

// ReadFile reads and decodes a description file. The format is decided by the
// file extension.
func ReadFile(filename string) (*Description, error) {
	format, err := FormatFromFilename(filename)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, curated.Errorf(DecodeError, filename, err)
	}

	return Decode(data, format)
}
