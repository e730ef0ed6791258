package models

// Word represents one record of the word catalog. Its identity is its
// position in the catalog; the fields are display payload only.
type Word struct {
	Word      string        `json:"word" yaml:"word"`
	Phonetics *Phonetics    `json:"phonetics,omitempty" yaml:"phonetics,omitempty"`
	Meaning   string        `json:"meaning" yaml:"meaning"`
	Phrases   []Example     `json:"phrases,omitempty" yaml:"phrases,omitempty"`
	Sentences []Example     `json:"sentences,omitempty" yaml:"sentences,omitempty"`
	Synonyms  []RelatedWord `json:"synonyms,omitempty" yaml:"synonyms,omitempty"`
	Confusing []RelatedWord `json:"confusing,omitempty" yaml:"confusing,omitempty"`
}

// Phonetics holds pronunciations keyed by region
type Phonetics struct {
	US string `json:"us,omitempty" yaml:"us,omitempty"`
	UK string `json:"uk,omitempty" yaml:"uk,omitempty"`
}

// Example is a phrase or sentence with its translation
type Example struct {
	Text        string `json:"en" yaml:"en"`
	Translation string `json:"cn" yaml:"cn"`
}

// RelatedWord is a synonym or a commonly confused word with its translation
type RelatedWord struct {
	Word        string `json:"word" yaml:"word"`
	Translation string `json:"cn" yaml:"cn"`
}

// WordIndexRange is a half-open range [Start, End) of catalog indices
type WordIndexRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of indices in the range
func (r WordIndexRange) Len() int {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// Indices expands the range into an ordered slice
func (r WordIndexRange) Indices() []int {
	out := make([]int, 0, r.Len())
	for i := r.Start; i < r.End; i++ {
		out = append(out, i)
	}
	return out
}

// DayStatus is a dashboard tile
type DayStatus struct {
	Day       int            `json:"day"`
	Range     WordIndexRange `json:"range"`
	Learned   int            `json:"learned"`
	Completed bool           `json:"completed"`
}
