package chatbot

import (
	"regexp"
	"strings"
)

// extraction is the outcome of running an ordered pattern list.
type extraction struct {
	// matched is true when some pattern recognized the intent.
	matched bool
	// value is the first non-empty capture, if any.
	value string
}

// patternList is tried in order; the first pattern with a non-empty capture
// wins. A match whose captures are all empty still marks the intent.
type patternList []*regexp.Regexp

func (pl patternList) extract(msg string) extraction {
	var out extraction
	for _, p := range pl {
		m := p.FindStringSubmatch(msg)
		if m == nil {
			continue
		}
		out.matched = true
		for _, g := range m[1:] {
			if v := cleanCapture(g); v != "" {
				out.value = v
				return out
			}
		}
	}
	return out
}

func cleanCapture(s string) string {
	return strings.Trim(strings.TrimSpace(s), ".,!?;:")
}

func mustPatterns(exprs ...string) patternList {
	pl := make(patternList, len(exprs))
	for i, e := range exprs {
		pl[i] = regexp.MustCompile(`(?i)` + e)
	}
	return pl
}

// openQuote may precede a captured name.
const openQuote = `["“'‘]?`

// authorPatterns capture a name.
var authorPatterns = mustPatterns(
	`\bposts by\s*`+openQuote+`([a-z ]*)`,
	`\barticles by\s*`+openQuote+`([a-z ]*)`,
	`\bwhat did\s*([a-z ]*?)\s*post\b`,
	`\b([a-z]+)['’]s (?:posts|articles)\b`,
	`\bwritten by\s*`+openQuote+`([a-z ]*)`,
	`\bauthored by\s*`+openQuote+`([a-z ]*)`,
	`\bcontent from\s*`+openQuote+`([a-z ]*)`,
	`\blatest post by\s*`+openQuote+`([a-z ]*)`,
	`\blatest from\s*`+openQuote+`([a-z ]*)`,
	`\bnew post by\s*`+openQuote+`([a-z ]*)`,
	`\bany post by\s*`+openQuote+`([a-z ]*)`,
	`\bhas\s+([a-z][a-z ]*?)\s+posted\b`,
	`\bdid\s+([a-z ]*?)\s*write\b`,
)

// tagPatterns capture a tag first, then a category name.
var tagPatterns = mustPatterns(
	`\b(?:tagged with|has tag|with tag|in tag)\b\s*([a-z0-9\- ]*)`,
	`\b(?:under category|in category|category)\b\s*([a-z0-9\- ]*)`,
)

var (
	// Single quotes must open after whitespace so possessives are skipped.
	quotedPatterns = []*regexp.Regexp{
		regexp.MustCompile(`"([^"]+)"`),
		regexp.MustCompile(`“([^”]+)”`),
		regexp.MustCompile("`([^`]+)`"),
		regexp.MustCompile(`(?:^|\s)'([^']+)'`),
	}
	titleTrigger = regexp.MustCompile("(?i)\\btitled?\\b|\"[^\"]+\"|“[^”]+”|`[^`]+`")
	titleCue     = regexp.MustCompile(`(?i)\btitled?\b`)
)

// titlePatterns capture text that follows a title cue.
var titlePatterns = mustPatterns(
	`\btitled\s*(.*)`,
	`\btitle of\s*(.*)`,
	`\babout\s*(.*)`,
)

// extractTitle prefers quoted text, then the text after a title cue.
func extractTitle(msg string) extraction {
	if !titleTrigger.MatchString(msg) {
		return extraction{}
	}
	for _, p := range quotedPatterns {
		if m := p.FindStringSubmatch(msg); m != nil {
			if v := strings.TrimSpace(m[1]); v != "" {
				return extraction{matched: true, value: v}
			}
		}
	}
	out := titlePatterns.extract(msg)
	out.matched = true
	return out
}

var (
	latestPattern = regexp.MustCompile(`(?i)\b(?:latest|recent|newest|new) (?:posts|articles|stories)\b|` +
		`\blatest trends\b|\bwhat['’]?s new\b|\b(?:latest|recent|newest) news\W*$`)
	topAuthorsPattern = regexp.MustCompile(`(?i)\b(?:top|most active|best) (?:authors|writers|contributors|publishers)\b|` +
		`\bwho (?:has )?posted the most\b|\bmost posts\b`)
)

var topicTriggers = []string{
	"news about", "tell me about", "know about", "update on", "updates on",
	"any article on", "articles on", "information on", "latest on",
}

// topicStopwords cannot stand alone as a news topic.
var topicStopwords = map[string]bool{
	"any": true, "the": true, "some": true, "latest": true, "recent": true,
	"local": true, "today": true, "new": true, "good": true, "bad": true,
}

const minTopicLength = 3

// extractTopic strips a trigger phrase, else takes the word before "news".
func extractTopic(msg string) extraction {
	lower := strings.ToLower(msg)
	for _, trigger := range topicTriggers {
		if _, after, ok := strings.Cut(lower, trigger); ok {
			return extraction{matched: true, value: validTopic(cleanCapture(after))}
		}
	}

	words := strings.FieldsFunc(lower, func(r rune) bool {
		return r == ' ' || r == '?' || r == '!' || r == ',' || r == '.'
	})
	for i, w := range words {
		if w != "news" {
			continue
		}
		if i == 0 {
			return extraction{matched: true}
		}
		return extraction{matched: true, value: validTopic(words[i-1])}
	}
	return extraction{}
}

func validTopic(topic string) string {
	if len(topic) < minTopicLength || topicStopwords[topic] {
		return ""
	}
	return topic
}
