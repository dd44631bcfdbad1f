// Package presenter renders command results as platform-neutral cards and messages.
package presenter

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Card colours.
const (
	ColorBlue  = 0x3498db
	ColorRed   = 0xe74c3c
	ColorGreen = 0x2ecc71
)

const signature = "Made with <3 by dc!"

// Field is one name/value row of a card.
type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// Card is a titled, coloured block of fields. Chat adapters map it to their
// own rich message type.
type Card struct {
	Author      string  `json:"author,omitempty"`
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	Color       int     `json:"color"`
	Fields      []Field `json:"fields,omitempty"`
	Footer      string  `json:"footer,omitempty"`
}

func (c *Card) add(name, value string, inline bool) {
	c.Fields = append(c.Fields, Field{Name: name, Value: value, Inline: inline})
}

var printer = message.NewPrinter(language.English)

// Coins formats an amount with thousands separators, e.g. "$1,234,567".
func Coins(n int64) string {
	return printer.Sprintf("$%d", n)
}
