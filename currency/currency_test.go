// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		code   string
		locale string
		want   string
	}{
		{name: "default locale", value: 1234.5, code: "USD", want: "1,234.50 USD"},
		{name: "zero german", value: 0, code: "EUR", locale: "de-DE", want: "0,00 EUR"},
		{name: "grouping german", value: 1234.5, code: "EUR", locale: "de-DE", want: "1.234,50 EUR"},
		{name: "rounds to two digits", value: 9.999, code: "USD", want: "10.00 USD"},
		{name: "pads to two digits", value: 7, code: "GBP", want: "7.00 GBP"},
		{name: "negative", value: -12.3, code: "USD", want: "-12.30 USD"},
		{name: "bad locale falls back", value: 1234.5, code: "USD", locale: "no-such-locale!", want: "1,234.50 USD"},
		{name: "empty locale falls back", value: 1.5, code: "CAD", locale: "", want: "1.50 CAD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			if tt.locale == "" {
				got = Format(tt.value, tt.code)
			} else {
				got = Format(tt.value, tt.code, tt.locale)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
