package textstat

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kljensen/snowball"
	"golang.org/x/text/unicode/norm"
)

// minTokenRunes is the shortest token kept after splitting.
const minTokenRunes = 3

// Token is a single content word.
type Token struct {
	Stem    string // Snowball English stem, used as the vocabulary key
	Surface string // lower-cased word as it appeared in the text
}

// Tokenizer splits text into stemmed content words.
// The zero value is ready to use and safe for concurrent use.
type Tokenizer struct{}

// Tokens returns the content words of text in order of appearance.
// Stop words, numbers, and tokens shorter than three runes are dropped.
func (Tokenizer) Tokens(text string) []Token {
	text = strings.ToLower(norm.NFC.String(text))
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]Token, 0, len(words))
	for _, w := range words {
		if utf8.RuneCountInString(w) < minTokenRunes || isNumeric(w) || IsStopWord(w) {
			continue
		}
		stem, err := snowball.Stem(w, "english", true)
		if err != nil || stem == "" {
			stem = w
		}
		tokens = append(tokens, Token{Stem: stem, Surface: w})
	}
	return tokens
}

// Stems returns only the stems of text's content words.
func (t Tokenizer) Stems(text string) []string {
	tokens := t.Tokens(text)
	stems := make([]string, len(tokens))
	for i, tok := range tokens {
		stems[i] = tok.Stem
	}
	return stems
}

func isNumeric(w string) bool {
	for _, r := range w {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
