// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpit(t *testing.T) {
	tests := []struct {
		name   string
		result any
		format string
		want   string
	}{
		{
			name:   "text string",
			result: "hello",
			format: "text",
			want:   "hello\n",
		},
		{
			name:   "text nil",
			result: nil,
			format: "text",
			want:   "\n",
		},
		{
			name:   "text whole float",
			result: float64(42),
			format: "text",
			want:   "42\n",
		},
		{
			name:   "json map",
			result: map[string]any{"a": 1},
			format: "json",
			want:   "{\"a\":1}\n",
		},
		{
			name:   "yaml map",
			result: map[string]any{"a": 1},
			format: "yaml",
			want:   "a: 1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Spit(tt.result, tt.format, &buf)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestInterfaceToString(t *testing.T) {
	assert.Equal(t, "-", InterfaceToString(nil, "-"))
	assert.Equal(t, "x", InterfaceToString("x", "-"))
	assert.Equal(t, "3", InterfaceToString(float64(3), "-"))
	assert.Equal(t, "3.5", InterfaceToString(3.5, "-"))
	assert.Equal(t, "true", InterfaceToString(true, "-"))
}
