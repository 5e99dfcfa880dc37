// Package i18n provides the copy catalog for the web service.
//
// The catalog carries a single English locale; every page resolves its
// strings through a printer from this package.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Default returns the default language tag.
func Default() language.Tag {
	return language.English
}

// Supported returns the list of supported language tags.
func Supported() []language.Tag {
	return []language.Tag{Default()}
}

// Printer returns a message printer for the default language.
func Printer() *message.Printer {
	return message.NewPrinter(Default())
}
