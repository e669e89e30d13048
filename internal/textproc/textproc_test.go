package textproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize_BasicSplitAndLowercase(t *testing.T) {
	tokens := Tokenize("Built REST APIs with Python and SQL.")

	texts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		texts = append(texts, tok.Text)
	}
	assert.Equal(t, []string{"built", "rest", "apis", "with", "python", "and", "sql"}, texts)
}

func TestTokenize_PreservesSkillPunctuation(t *testing.T) {
	tokens := Tokenize("Worked in C++, C# and Node.js pipelines")

	texts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		texts = append(texts, tok.Text)
	}
	assert.Contains(t, texts, "c++")
	assert.Contains(t, texts, "c#")
	assert.Contains(t, texts, "node.js")
}

func TestTokenize_OffsetsPointIntoSource(t *testing.T) {
	src := "Expert in Python, SQL"
	tokens := Tokenize(src)

	require.NotEmpty(t, tokens)
	for _, tok := range tokens {
		// lowercased token must match the lowercased source span
		assert.Equal(t, tok.Text, toLowerSpan(src, tok.Start, tok.End))
	}
}

func toLowerSpan(s string, start, end int) string {
	out := []byte(s[start:end])
	for i, c := range out {
		if c >= 'A' && c <= 'Z' {
			out[i] = c + ('a' - 'A')
		}
	}
	return string(out)
}

func TestTokenize_MasksURLsAndEmails(t *testing.T) {
	src := "Contact jane@example.com or see https://github.com/jane for Python work"
	tokens := Tokenize(src)

	for _, tok := range tokens {
		assert.NotContains(t, tok.Text, "@")
		assert.NotContains(t, tok.Text, "github.com")
	}

	// offsets survive masking
	var python *Token
	for i := range tokens {
		if tokens[i].Text == "python" {
			python = &tokens[i]
		}
	}
	require.NotNil(t, python)
	assert.Equal(t, "Python", src[python.Start:python.End])
}

func TestTerms_DropsStopwordsAndShortTokens(t *testing.T) {
	terms := Terms("I am an expert in the Python language")

	assert.NotContains(t, terms, "i")
	assert.NotContains(t, terms, "am")
	assert.NotContains(t, terms, "the")
	assert.NotContains(t, terms, "in")
	assert.Contains(t, terms, "expert")
	assert.Contains(t, terms, "python")
	assert.Contains(t, terms, "languag")
}

func TestStem_InflectedFormsConverge(t *testing.T) {
	assert.Equal(t, Stem("learning"), Stem("learned"))
	assert.Equal(t, Stem("pipelines"), Stem("pipeline"))
	assert.Equal(t, "python", Stem("python"))
}

func TestNormalizePhrase_MatchesTokenPipeline(t *testing.T) {
	assert.Equal(t, NormalizePhrase("Machine Learning"), NormalizePhrase("machine learned"))
	assert.Equal(t, "", NormalizePhrase("   "))
	assert.Equal(t, NormalizePhrase("Node.js"), NormalizePhrase("node.js"))
}

func TestIsStopword(t *testing.T) {
	assert.True(t, IsStopword("the"))
	assert.True(t, IsStopword("with"))
	assert.False(t, IsStopword("python"))
	assert.False(t, IsStopword("sql"))
}
