// Package textproc provides the shared tokenization pipeline feeding the
// taxonomy, lexical, and semantic engines.
package textproc

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

// Token is one word-level token with its byte span in the source text.
type Token struct {
	Text  string // lowercased surface form
	Start int
	End   int
}

// noisePattern matches URLs and email addresses, which carry no signal for
// either skill extraction or term weighting.
var noisePattern = regexp.MustCompile(`https?://\S+|www\.\S+|\S+@\S+\.\S+`)

// isWordRune reports whether r can appear inside a token. Besides letters and
// digits this keeps the symbols that occur in real skill names, so "c++",
// "c#", "node.js", and "ci-cd" survive tokenization intact.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' || r == '-'
}

// Tokenize splits text into lowercased tokens with byte offsets into the
// original string. URLs and email addresses are blanked out before scanning so
// offsets stay valid. No stopword or length filtering happens here; callers
// that need scoring terms use Terms instead.
func Tokenize(text string) []Token {
	masked := maskNoise(text)

	var tokens []Token
	start := -1
	for i, r := range masked {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = appendToken(tokens, masked, start, i)
			start = -1
		}
	}
	if start >= 0 {
		tokens = appendToken(tokens, masked, start, len(masked))
	}
	return tokens
}

// appendToken trims stray leading/trailing punctuation from the raw span and
// appends the token if anything is left. Trailing '+' and '#' are kept so
// "c++" and "c#" are preserved.
func appendToken(tokens []Token, text string, start, end int) []Token {
	raw := text[start:end]

	trimmedLeft := strings.TrimLeft(raw, ".-+#")
	start += len(raw) - len(trimmedLeft)
	trimmed := strings.TrimRight(trimmedLeft, ".-")
	end = start + len(trimmed)

	if trimmed == "" {
		return tokens
	}
	return append(tokens, Token{Text: strings.ToLower(trimmed), Start: start, End: end})
}

// maskNoise replaces URL and email matches with spaces of equal length,
// preserving the byte offsets of everything around them.
func maskNoise(text string) string {
	return noisePattern.ReplaceAllStringFunc(text, func(m string) string {
		return strings.Repeat(" ", len(m))
	})
}

// Stem reduces a token to its stem form. Both alias tables and document text
// run through the same stemmer, so plural or inflected surface forms still
// line up during matching.
func Stem(word string) string {
	return english.Stem(word, false)
}

// Terms produces the scoring vocabulary for a text: tokenized, stopwords and
// very short tokens removed, each survivor stemmed. Tokens of length two or
// less are dropped from term weighting only; skill extraction works on the
// unfiltered token stream and is unaffected.
func Terms(text string) []string {
	tokens := Tokenize(text)
	terms := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if len(tok.Text) <= 2 || IsStopword(tok.Text) {
			continue
		}
		terms = append(terms, Stem(tok.Text))
	}
	return terms
}

// NormalizePhrase canonicalizes a multi-word phrase the same way token streams
// are processed: lowercase, tokenize, stem each word, join with single spaces.
// Alias tables are normalized through this at load time so lookups compare
// like with like.
func NormalizePhrase(phrase string) string {
	tokens := Tokenize(phrase)
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		parts = append(parts, Stem(tok.Text))
	}
	return strings.Join(parts, " ")
}
