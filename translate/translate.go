// Package translate localises the user-visible strings of the Intcode tools.
package translate

import (
	"sync"

	"github.com/jeandeaual/go-locale"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/message"
)

const fallbackLocale = "en-US"

var (
	printerOnce sync.Once
	printer     *message.Printer
)

// Printer returns the message printer matched to the user's locales.
func Printer() *message.Printer {
	printerOnce.Do(func() {
		locales, err := locale.GetLocales()
		if err != nil {
			logrus.WithField("fallback", fallbackLocale).Debugf("intcode: locale: %v", err)
		}

		if len(locales) == 0 {
			locales = []string{fallbackLocale}
		}

		printer = message.NewPrinter(message.MatchLanguage(locales...))
	})

	return printer
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return Printer().Sprintf(key, args...)
}
