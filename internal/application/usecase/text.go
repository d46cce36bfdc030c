package usecase

import (
	"net/mail"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// clean recorta espacios y normaliza a NFC para que "Categoría" escrito con
// tilde combinada y precompuesta sea el mismo texto.
func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// cleanPtr aplica clean a un campo opcional de un parche.
func cleanPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := clean(*s)
	return &v
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
