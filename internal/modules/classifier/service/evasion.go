package service

import (
	"unicode"

	"github.com/reshetovitsme/tg-keyword-monitor/internal/modules/classifier/domain"
)

// DetectEvasion reports whether a single run of consecutive letters mixes
// writing systems, e.g. Cyrillic "А" standing in for Latin "A" inside a word.
// Any non-letter ends the run, so separate words in different scripts are fine.
func DetectEvasion(text string) bool {
	var (
		runScript domain.ScriptTag
		inRun     bool
	)

	for _, r := range text {
		if !unicode.IsLetter(r) {
			inRun = false
			continue
		}

		// r is a letter, Script cannot fail here
		tag, _ := Script(r)
		if !inRun {
			runScript, inRun = tag, true
			continue
		}
		if tag != runScript {
			return true
		}
	}

	return false
}
