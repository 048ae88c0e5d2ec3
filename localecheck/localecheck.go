// Package localecheck validates the locale template variables the
// language-pack scaffolding asks for before generating a new pack
// project: a hyphenated locale code (es-ES) and its underscore
// equivalent (es_ES).
package localecheck

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/xerrors"
)

// FormatError describes a malformed locale pair. Message is the
// operator-facing diagnostic, printed verbatim by the hook binary.
type FormatError struct {
	Message string
}

func (e *FormatError) Error() string { return e.Message }

// Validate checks the locale pair the scaffolding template was given.
// The checks run in a fixed order and the first failure wins; every
// failure is a *FormatError.
func Validate(locale, underscore string) error {
	if !strings.Contains(locale, "-") {
		return &FormatError{Message: "ERROR: `locale` must be 4 letter code, like es-ES.\n" +
			"       See http://www.lingoes.net/en/translator/langcode.htm"}
	}

	normalized, err := normalize(underscore)
	if err != nil || normalized != underscore {
		return &FormatError{Message: fmt.Sprintf("ERROR: Locale %q is invalid!", locale)}
	}

	if strings.Contains(locale, "_") {
		return &FormatError{Message: "ERROR: Locales with language variants must use `-` and not `_`"}
	}

	if strings.Contains(underscore, "-") {
		return &FormatError{Message: "ERROR: `locale_underscore` must use `_` and not `-`"}
	}

	return nil
}

// normalize parses a locale code and rebuilds it as
// <language>_<REGION>. Codes without an explicitly named region (a
// bare "es", or "zh_Hans") do not qualify: the region must come from
// the code itself, not from likely-subtag inference.
func normalize(code string) (string, error) {
	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return "", xerrors.Errorf("parsing locale %q: %w", code, err)
	}

	base, conf := tag.Base()
	if conf != language.Exact {
		return "", xerrors.Errorf("locale %q has no exact base language", code)
	}
	region, conf := tag.Region()
	if conf != language.Exact {
		return "", xerrors.Errorf("locale %q names no region", code)
	}

	return base.String() + "_" + region.String(), nil
}
