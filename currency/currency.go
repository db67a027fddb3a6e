// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package currency formats monetary amounts for display. The currency code
// is always appended verbatim rather than rendered as a locale-placed
// symbol, so "1,234.50 USD" and "1.234,50 EUR" come out of the same call.
package currency

import (
	"github.com/apex/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale is used when the caller does not supply one, or supplies
// one that cannot be parsed.
const DefaultLocale = "en-US"

// Format renders value with exactly two fraction digits per the locale's
// numeric conventions, followed by a space and the currency code.
func Format(value float64, code string, locale ...string) string {
	loc := DefaultLocale
	if len(locale) > 0 && locale[0] != "" {
		loc = locale[0]
	}

	tag, err := language.Parse(loc)
	if err != nil {
		log.Debugf("unparseable locale %q, falling back to %s", loc, DefaultLocale)
		tag = language.MustParse(DefaultLocale)
	}

	p := message.NewPrinter(tag)
	amount := p.Sprintf("%v", number.Decimal(value,
		number.MinFractionDigits(2), //nolint:mnd
		number.MaxFractionDigits(2), //nolint:mnd
	))

	return amount + " " + code
}
