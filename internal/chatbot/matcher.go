package chatbot

import (
	ahocorasick "github.com/cloudflare/ahocorasick"
)

// phraseMatcher finds whole-word phrases in normalized text.
type phraseMatcher struct {
	m *ahocorasick.Matcher
}

func newPhraseMatcher(phrases []string) *phraseMatcher {
	padded := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if n := normalize(p); n != "" {
			padded = append(padded, " "+n+" ")
		}
	}
	return &phraseMatcher{m: ahocorasick.NewStringMatcher(padded)}
}

// contains reports whether any phrase occurs in normalized text.
func (p *phraseMatcher) contains(normalized string) bool {
	return len(p.m.MatchThreadSafe([]byte(" "+normalized+" "))) > 0
}

type faqEntry struct {
	keywords []string
	answer   string
}

// faqMatcher answers when every keyword of an entry starts a word of the
// text. Entries are checked in declaration order.
type faqMatcher struct {
	entries  []faqEntry
	keywords []string
	m        *ahocorasick.Matcher
}

func newFAQMatcher(entries []faqEntry) *faqMatcher {
	f := &faqMatcher{entries: entries}
	seen := make(map[string]bool)
	for _, e := range entries {
		for _, kw := range e.keywords {
			if !seen[kw] {
				seen[kw] = true
				f.keywords = append(f.keywords, kw)
			}
		}
	}
	prefixed := make([]string, len(f.keywords))
	for i, kw := range f.keywords {
		prefixed[i] = " " + kw
	}
	f.m = ahocorasick.NewStringMatcher(prefixed)
	return f
}

func (f *faqMatcher) answer(normalized string) (string, bool) {
	hits := f.m.MatchThreadSafe([]byte(" " + normalized))
	if len(hits) == 0 {
		return "", false
	}
	found := make(map[string]bool, len(hits))
	for _, i := range hits {
		found[f.keywords[i]] = true
	}
	for _, e := range f.entries {
		all := true
		for _, kw := range e.keywords {
			if !found[kw] {
				all = false
				break
			}
		}
		if all {
			return e.answer, true
		}
	}
	return "", false
}
