// Package lang wraps sentence-level language identification behind a
// small interface so the cleaning stages can treat it as an external
// collaborator with a declared failure mode.
package lang

import (
	"errors"
	"strings"

	"github.com/RadhiFadlillah/whatlanggo"
)

// English is the ISO 639-3 code the default classifier emits for English.
const English = "eng"

// ErrUnclassifiable is returned when the input is too short or too
// ambiguous to classify. Callers decide the fallback policy.
var ErrUnclassifiable = errors.New("text is too short or ambiguous to classify")

// Classifier labels a piece of text with a language code, or fails.
// Implementations must be deterministic for reproducible runs.
type Classifier interface {
	Classify(text string) (string, error)
}

// Whatlang classifies text with whatlanggo's trigram model.
type Whatlang struct {
	// MinLength is the shortest input (after trimming) worth handing to
	// the detector; anything shorter fails with ErrUnclassifiable.
	MinLength int
}

func NewWhatlang() *Whatlang {
	return &Whatlang{MinLength: 5}
}

func (w *Whatlang) Classify(text string) (string, error) {
	text = strings.TrimSpace(text)
	if len(text) < w.MinLength {
		return "", ErrUnclassifiable
	}
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return "", ErrUnclassifiable
	}
	code := whatlanggo.LangToString(info.Lang)
	if code == "" {
		return "", ErrUnclassifiable
	}
	return code, nil
}
