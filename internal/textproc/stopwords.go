package textproc

import (
	_ "embed"
	"strings"
)

// English stopword list, one word per line. The set matches the common NLTK
// list with apostrophized forms reduced to the fragments the tokenizer
// actually produces.
//
//go:embed stopwords.txt
var stopwordsData string

var stopwords = loadStopwords(stopwordsData)

func loadStopwords(data string) map[string]struct{} {
	set := make(map[string]struct{}, 200)
	for _, line := range strings.Split(data, "\n") {
		word := strings.TrimSpace(line)
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		set[word] = struct{}{}
	}
	return set
}

// IsStopword reports whether the lowercased token is in the embedded English
// stopword list.
func IsStopword(word string) bool {
	_, ok := stopwords[word]
	return ok
}
