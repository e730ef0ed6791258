package services

import "github.com/lehmann314159/wordtrainer/internal/models"

// Card section keys, in display order
const (
	SectionPhrases   = "phrases"
	SectionSentences = "sentences"
	SectionSynonyms  = "synonyms"
	SectionConfusing = "confusing"
)

// Pronunciation regions
const (
	RegionUS = "us"
	RegionUK = "uk"
)

// Card is a rendering-neutral view of one word
type Card struct {
	Index   int    `json:"index"`
	Word    string `json:"word"`
	Meaning string `json:"meaning"`

	// Pronunciations lists UK before US (card back); FrontPronunciations
	// lists US before UK (test front). Regions without a value are omitted.
	Pronunciations      []Pronunciation `json:"pronunciations"`
	FrontPronunciations []Pronunciation `json:"front_pronunciations"`

	Sections []CardSection `json:"sections"`
}

// Pronunciation is one regional pronunciation
type Pronunciation struct {
	Region string `json:"region"`
	Text   string `json:"text"`
}

// CardSection is one list block of the card. Empty is set when the word has
// no entries, and front ends render it as an explicit "none".
type CardSection struct {
	Key   string     `json:"key"`
	Items []CardItem `json:"items"`
	Empty bool       `json:"empty"`
}

// CardItem is a text with its translation
type CardItem struct {
	Text        string `json:"text"`
	Translation string `json:"translation"`
}

// BuildCard creates the card for the word at index
func BuildCard(index int, w *models.Word) *Card {
	card := &Card{
		Index:               index,
		Word:                w.Word,
		Meaning:             w.Meaning,
		Pronunciations:      []Pronunciation{},
		FrontPronunciations: []Pronunciation{},
	}

	if p := w.Phonetics; p != nil {
		if p.UK != "" {
			card.Pronunciations = append(card.Pronunciations, Pronunciation{Region: RegionUK, Text: p.UK})
		}
		if p.US != "" {
			card.Pronunciations = append(card.Pronunciations, Pronunciation{Region: RegionUS, Text: p.US})
			card.FrontPronunciations = append(card.FrontPronunciations, Pronunciation{Region: RegionUS, Text: p.US})
		}
		if p.UK != "" {
			card.FrontPronunciations = append(card.FrontPronunciations, Pronunciation{Region: RegionUK, Text: p.UK})
		}
	}

	card.Sections = []CardSection{
		exampleSection(SectionPhrases, w.Phrases),
		exampleSection(SectionSentences, w.Sentences),
		relatedSection(SectionSynonyms, w.Synonyms),
		relatedSection(SectionConfusing, w.Confusing),
	}

	return card
}

// Front returns a copy holding only what the test front shows: the headword
// and its pronunciations
func (c *Card) Front() *Card {
	front := &Card{
		Index:               c.Index,
		Word:                c.Word,
		Pronunciations:      []Pronunciation{},
		FrontPronunciations: make([]Pronunciation, len(c.FrontPronunciations)),
		Sections:            []CardSection{},
	}
	copy(front.FrontPronunciations, c.FrontPronunciations)
	return front
}

func exampleSection(key string, examples []models.Example) CardSection {
	s := CardSection{Key: key, Items: make([]CardItem, 0, len(examples))}
	for _, e := range examples {
		s.Items = append(s.Items, CardItem{Text: e.Text, Translation: e.Translation})
	}
	s.Empty = len(s.Items) == 0
	return s
}

func relatedSection(key string, words []models.RelatedWord) CardSection {
	s := CardSection{Key: key, Items: make([]CardItem, 0, len(words))}
	for _, rw := range words {
		s.Items = append(s.Items, CardItem{Text: rw.Word, Translation: rw.Translation})
	}
	s.Empty = len(s.Items) == 0
	return s
}
