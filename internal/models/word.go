package models

import "strings"

// Placeholder marks the missing syllable in a word's incomplete form.
const Placeholder = "_"

// Word is one entry of the static syllable dataset: the complete word, its
// display form with the target syllable blanked out, the syllable itself, and
// an emoji used as the word's picture.
type Word struct {
	Complete   string `json:"complete"`
	Incomplete string `json:"incomplete"`
	Syllable   string `json:"syllable"`
	Image      string `json:"image"`
}

// Consistent reports whether filling the placeholder with the target syllable
// reproduces the complete word.
func (w Word) Consistent() bool {
	if strings.Count(w.Incomplete, Placeholder) != 1 {
		return false
	}
	return strings.Replace(w.Incomplete, Placeholder, w.Syllable, 1) == w.Complete
}

// Display renders the word for the presentation layer: the complete word when
// the answer was right, otherwise the incomplete form with the player's
// current selection (or the placeholder) in the gap.
func (w Word) Display(selected string, correct bool) string {
	if correct {
		return w.Complete
	}
	if selected == "" {
		return w.Incomplete
	}
	return strings.Replace(w.Incomplete, Placeholder, selected, 1)
}
