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

package layout_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jetsetilly/volatile/curated"
	"github.com/jetsetilly/volatile/layout"
)

const uartJSONC = `{
	// generated into package uart
	"package": "uart",
	"layouts": [
		{
			"name": "Fifo",
			"repr": "host",
			"fields": [
				{ "name": "level", "type": "uint16", "access": "ReadOnly" },
				{ "name": "data", "type": "[8]uint8" },
			],
		},
		{
			"name": "Registers",
			"repr": "host",
			"doc": "Registers of the UART.",
			"fields": [
				/* the status register is read-only */
				{ "name": "status", "type": "uint32", "access": "ReadOnly" },
				{ "name": "control", "type": "uint32" },
				{ "name": "fifo", "type": "Fifo" },
			],
		},
	],
}`

const uartYAML = `
package: uart
layouts:
  - name: Fifo
    repr: host
    fields:
      - {name: level, type: uint16, access: ReadOnly}
      - {name: data, type: "[8]uint8"}
  - name: Registers
    repr: host
    doc: Registers of the UART.
    fields:
      - {name: status, type: uint32, access: ReadOnly}
      - {name: control, type: uint32}
      - {name: fifo, type: Fifo}
`

func expected() *layout.Description {
	d := valid()
	d.Layouts[1].Doc = "Registers of the UART."
	return d
}

func TestDecodeJSONC(t *testing.T) {
	d, err := layout.Decode([]byte(uartJSONC), layout.JSONC)
	require.NoError(t, err)
	assert.Equal(t, expected(), d)
	assert.False(t, d.Declared)
	require.NoError(t, d.Validate())
}

func TestDecodeYAML(t *testing.T) {
	d, err := layout.Decode([]byte(uartYAML), layout.YAML)
	require.NoError(t, err)
	assert.Equal(t, expected(), d)
}

func TestDecodeCBOR(t *testing.T) {
	b, err := layout.Encode(expected(), layout.CBOR)
	require.NoError(t, err)

	d, err := layout.Decode(b, layout.CBOR)
	require.NoError(t, err)
	assert.Equal(t, expected(), d)

	// core deterministic encoding
	c, err := layout.Encode(d, layout.CBOR)
	require.NoError(t, err)
	assert.Equal(t, b, c)
}

func TestDecodeUnknownKey(t *testing.T) {
	_, err := layout.Decode([]byte(`{"package": "p", "layuots": []}`), layout.JSONC)
	assert.True(t, curated.Is(err, layout.DecodeError), err)

	_, err = layout.Decode([]byte("package: p\nlayuots: []\n"), layout.YAML)
	assert.True(t, curated.Is(err, layout.DecodeError), err)

	_, err = layout.Decode([]byte{0xff, 0x00}, layout.CBOR)
	assert.True(t, curated.Is(err, layout.DecodeError), err)

	_, err = layout.Decode(nil, layout.Format(99))
	assert.True(t, curated.Is(err, layout.UnknownFormat), err)
}

func TestFormatFromFilename(t *testing.T) {
	cases := map[string]layout.Format{
		"uart.json":  layout.JSONC,
		"uart.jsonc": layout.JSONC,
		"uart.yaml":  layout.YAML,
		"UART.YML":   layout.YAML,
		"uart.cbor":  layout.CBOR,
	}
	for name, format := range cases {
		f, err := layout.FormatFromFilename(name)
		require.NoError(t, err, name)
		assert.Equal(t, format, f, name)
	}

	_, err := layout.FormatFromFilename("uart.toml")
	assert.True(t, curated.Is(err, layout.UnknownFormat), err)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "uart.yaml")
	require.NoError(t, os.WriteFile(path, []byte(uartYAML), 0o644))

	d, err := layout.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, expected(), d)

	_, err = layout.ReadFile(filepath.Join(dir, "missing.yaml"))
	assert.True(t, curated.Is(err, layout.DecodeError), err)
}
