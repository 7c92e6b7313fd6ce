// Package words holds the static reference data for both mini-games: the
// syllable dataset, the syllable vocabulary the option draw samples from, and
// the word-search board. The data is loaded once and shared read-only.
package words

import "silabas/internal/models"

// syllableWords is the ordered dataset for the syllable game. Each entry
// blanks exactly one syllable of a Spanish word.
var syllableWords = []models.Word{
	{Complete: "KIWI", Incomplete: "_WI", Syllable: "KI", Image: "🥝"},
	{Complete: "KARATE", Incomplete: "_RATE", Syllable: "KA", Image: "🥋"},
	{Complete: "KOALA", Incomplete: "_ALA", Syllable: "KO", Image: "🐨"},
	{Complete: "RANA", Incomplete: "_NA", Syllable: "RA", Image: "🐸"},
	{Complete: "REMO", Incomplete: "_MO", Syllable: "RE", Image: "🚣"},
	{Complete: "RICO", Incomplete: "_CO", Syllable: "RI", Image: "💰"},
	{Complete: "ROSA", Incomplete: "_SA", Syllable: "RO", Image: "🌹"},
	{Complete: "RUTA", Incomplete: "_TA", Syllable: "RU", Image: "🗺️"},
	{Complete: "DADO", Incomplete: "_DO", Syllable: "DA", Image: "🎲"},
	{Complete: "DEDO", Incomplete: "_DO", Syllable: "DE", Image: "👆"},
	{Complete: "DIENTE", Incomplete: "_ENTE", Syllable: "DI", Image: "🦷"},
	{Complete: "DONA", Incomplete: "_NA", Syllable: "DO", Image: "🍩"},
	{Complete: "DUCHA", Incomplete: "_CHA", Syllable: "DU", Image: "🚿"},
	{Complete: "JARRA", Incomplete: "_RRA", Syllable: "JA", Image: "🏺"},
	{Complete: "JEFE", Incomplete: "_FE", Syllable: "JE", Image: "👨‍💼"},
	{Complete: "JIRAFA", Incomplete: "_RAFA", Syllable: "JI", Image: "🦒"},
	{Complete: "JOYA", Incomplete: "_YA", Syllable: "JO", Image: "💎"},
	{Complete: "JUGO", Incomplete: "_GO", Syllable: "JU", Image: "🧃"},
	{Complete: "GATO", Incomplete: "_TO", Syllable: "GA", Image: "🐱"},
	{Complete: "GENTE", Incomplete: "_NTE", Syllable: "GE", Image: "👥"},
	{Complete: "GIGANTE", Incomplete: "_GANTE", Syllable: "GI", Image: "🏔️"},
	{Complete: "GOMA", Incomplete: "_MA", Syllable: "GO", Image: "🔴"},
	{Complete: "GUSANO", Incomplete: "_SANO", Syllable: "GU", Image: "🐛"},
	{Complete: "GRANDE", Incomplete: "_ANDE", Syllable: "GR", Image: "📏"},
	{Complete: "DRAGÓN", Incomplete: "_AGÓN", Syllable: "DR", Image: "🐉"},
}

// syllables is the full vocabulary wrong options are drawn from.
var syllables = []string{
	"KI", "KA", "KO",
	"RA", "RE", "RI", "RO", "RU",
	"DA", "DE", "DI", "DO", "DU",
	"JA", "JE", "JI", "JO", "JU",
	"GA", "GE", "GI", "GO", "GU",
	"GR", "DR",
}

// wordSearchWords are the hidden words of the word-search board.
var wordSearchWords = []string{"GATO", "RANA", "ROSA", "DADO", "JOYA"}

// wordSearchGrid is the 8x8 word-search board.
var wordSearchGrid = [][]string{
	{"G", "A", "T", "O", "X", "R", "A", "N"},
	{"X", "R", "X", "X", "A", "X", "X", "A"},
	{"R", "A", "N", "A", "X", "J", "O", "Y"},
	{"O", "N", "X", "X", "D", "A", "D", "O"},
	{"S", "A", "X", "R", "O", "S", "A", "X"},
	{"A", "X", "G", "A", "T", "O", "X", "X"},
	{"X", "J", "O", "Y", "A", "X", "R", "A"},
	{"R", "A", "N", "A", "X", "X", "X", "X"},
}

// SyllableWords returns a copy of the ordered syllable dataset.
func SyllableWords() []models.Word {
	out := make([]models.Word, len(syllableWords))
	copy(out, syllableWords)
	return out
}

// Syllables returns a copy of the syllable vocabulary.
func Syllables() []string {
	out := make([]string, len(syllables))
	copy(out, syllables)
	return out
}

// WordSearchWords returns a copy of the word-search target list.
func WordSearchWords() []string {
	out := make([]string, len(wordSearchWords))
	copy(out, wordSearchWords)
	return out
}

// WordSearchGrid returns a copy of the word-search board.
func WordSearchGrid() [][]string {
	out := make([][]string, len(wordSearchGrid))
	for i, row := range wordSearchGrid {
		out[i] = make([]string, len(row))
		copy(out[i], row)
	}
	return out
}
