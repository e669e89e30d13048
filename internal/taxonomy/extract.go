package taxonomy

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-align/internal/textproc"
	"github.com/jonathan/resume-align/internal/types"
)

// Extract scans free text for skill mentions. Tokens are stemmed and matched
// longest-phrase-first, so "machine learning" is captured as one skill before
// either word is considered alone; an overlapping shorter alias inside a
// matched phrase never produces a second mention. Unknown tokens are silently
// dropped, the taxonomy is inherently incomplete.
func (t *Taxonomy) Extract(text string) []types.SkillMention {
	tokens := textproc.Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}

	stems := make([]string, len(tokens))
	for i, tok := range tokens {
		stems[i] = textproc.Stem(tok.Text)
	}

	var mentions []types.SkillMention
	for i := 0; i < len(tokens); {
		window := t.maxAliasWords
		if rem := len(tokens) - i; rem < window {
			window = rem
		}

		matched := 0
		for n := window; n >= 1; n-- {
			phrase := strings.Join(stems[i:i+n], " ")
			id, ok := t.aliasIndex[phrase]
			if !ok {
				continue
			}
			start := tokens[i].Start
			end := tokens[i+n-1].End
			mentions = append(mentions, types.SkillMention{
				Skill:        id,
				Surface:      text[start:end],
				Start:        start,
				End:          end,
				SectionIndex: types.FreeTextSection,
			})
			matched = n
			break
		}

		if matched > 0 {
			i += matched
		} else {
			i++
		}
	}
	return mentions
}

// ExtractFromDocument scans every section body of a document and tags each
// mention with its section index and role. Offsets are relative to the
// section's own text.
func (t *Taxonomy) ExtractFromDocument(doc *types.Document) []types.SkillMention {
	var mentions []types.SkillMention
	for i := range doc.Sections {
		sec := &doc.Sections[i]
		for _, m := range t.Extract(sec.Text()) {
			m.SectionIndex = i
			m.Role = sec.Role
			mentions = append(mentions, m)
		}
	}
	return mentions
}

// ContainsSkill reports whether the canonical skill has at least one mention
// in the given text. Used as the idempotence guard before injecting a skill.
func (t *Taxonomy) ContainsSkill(text, id string) bool {
	for _, m := range t.Extract(text) {
		if m.Skill == id {
			return true
		}
	}
	return false
}

// UniqueSkills reduces mentions to the sorted set of canonical ids.
func UniqueSkills(mentions []types.SkillMention) []string {
	seen := make(map[string]struct{}, len(mentions))
	out := make([]string, 0, len(mentions))
	for _, m := range mentions {
		if _, dup := seen[m.Skill]; dup {
			continue
		}
		seen[m.Skill] = struct{}{}
		out = append(out, m.Skill)
	}
	sort.Strings(out)
	return out
}
