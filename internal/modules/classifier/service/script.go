package service

import (
	"slices"
	"unicode"

	"github.com/reshetovitsme/tg-keyword-monitor/internal/modules/classifier/domain"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// ScriptUnknown tags letters that are not part of any Unicode script table.
const ScriptUnknown domain.ScriptTag = "Unknown"

type scriptTable struct {
	tag   domain.ScriptTag
	table *unicode.RangeTable
}

// Spam mostly mixes these, so they are probed before the rest.
var probeFirst = []string{"Latin", "Cyrillic", "Greek"}

var scriptTables = buildScriptTables()

func buildScriptTables() []scriptTable {
	rest := lo.Filter(lo.Keys(unicode.Scripts), func(name string, _ int) bool {
		return !slices.Contains(probeFirst, name)
	})
	slices.Sort(rest)

	return lo.Map(append(slices.Clone(probeFirst), rest...), func(name string, _ int) scriptTable {
		return scriptTable{tag: domain.ScriptTag(name), table: unicode.Scripts[name]}
	})
}

// Script returns the writing system of the letter r. It fails with
// ErrInvalidInput when r is not a letter.
func Script(r rune) (domain.ScriptTag, error) {
	if !unicode.IsLetter(r) {
		return "", oops.With("rune", string(r)).Wrapf(errors.ErrInvalidInput, "script of non-letter %U", r)
	}

	for _, st := range scriptTables {
		if unicode.Is(st.table, r) {
			return st.tag, nil
		}
	}
	return ScriptUnknown, nil
}
