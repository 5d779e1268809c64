package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "cafe deja vu", normalize("  Café, Déjà-Vu!! "))
	assert.Equal(t, "ali s posts", normalize("Ali's posts"))
	assert.Empty(t, normalize(" \t?! "))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcde...", truncate("abcdefghij", 5))
	assert.Equal(t, "ab...", truncate("ab   cdef", 4))
	assert.Equal(t, "ééé...", truncate("éééé", 3))
}

func TestPhraseMatcher_WholeWords(t *testing.T) {
	t.Parallel()

	m := newPhraseMatcher(greetingPhrases)
	tests := []struct {
		msg  string
		want bool
	}{
		{"Hi there", true},
		{"HELLO!", true},
		{"good morning, team", true},
		{"Assalamu Alaikum", true},
		{"what is this", false},
		{"show me the highlights", false},
		{"they said goodbye", false},
		{"good news", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, m.contains(normalize(tt.msg)), tt.msg)
	}
}

func TestFAQMatcher_Conjunctive(t *testing.T) {
	t.Parallel()

	m := newFAQMatcher(faqEntries)

	answer, ok := m.answer(normalize("How do I APPLY to be a Publisher?"))
	assert.True(t, ok)
	assert.Equal(t, faqEntries[0].answer, answer)

	_, ok = m.answer(normalize("who is a publisher"))
	assert.False(t, ok)

	for _, msg := range []string{"news about contact tracing", "show me posts tagged with advertising"} {
		_, ok = m.answer(normalize(msg))
		assert.False(t, ok, msg)
	}

	answer, ok = m.answer(normalize("Can I advertise here?"))
	assert.True(t, ok)
	assert.Equal(t, faqEntries[2].answer, answer)
}

func TestAuthorPatterns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		msg         string
		wantMatched bool
		wantValue   string
	}{
		{"Posts by Ali Khan", true, "Ali Khan"},
		{"show me articles by maria?", true, "maria"},
		{"what did Sara post", true, "Sara"},
		{"Ali's posts", true, "Ali"},
		{"content from Bilal", true, "Bilal"},
		{"has Usman posted", true, "Usman"},
		{`posts by "Ali Khan"`, true, "Ali Khan"},
		{"content from ‘Maria’", true, "Maria"},
		{"who has posted the most", false, ""},
		{"posts by", true, ""},
		{"latest posts", false, ""},
	}
	for _, tt := range tests {
		got := authorPatterns.extract(tt.msg)
		assert.Equal(t, tt.wantMatched, got.matched, tt.msg)
		assert.Equal(t, tt.wantValue, got.value, tt.msg)
	}
}

func TestTagPatterns(t *testing.T) {
	t.Parallel()

	got := tagPatterns.extract("Tagged with tech")
	assert.Equal(t, extraction{matched: true, value: "tech"}, got)

	got = tagPatterns.extract("anything under category local-news?")
	assert.Equal(t, extraction{matched: true, value: "local-news"}, got)

	got = tagPatterns.extract("show categories")
	assert.False(t, got.matched)
}

func TestExtractTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		msg  string
		want extraction
	}{
		{`posts by title "Theft in Sahiwal"`, extraction{matched: true, value: "Theft in Sahiwal"}},
		{"find the post titled `Budget 2026`", extraction{matched: true, value: "Budget 2026"}},
		{"Ali's post titled 'Rain Update'", extraction{matched: true, value: "Rain Update"}},
		{"post titled Flood Relief", extraction{matched: true, value: "Flood Relief"}},
		{"what is the title of Flood Relief", extraction{matched: true, value: "Flood Relief"}},
		{"title please", extraction{matched: true}},
		{"latest posts", extraction{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, extractTitle(tt.msg), tt.msg)
	}
}

func TestExtractTopic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		msg  string
		want extraction
	}{
		{"Tell me about education", extraction{matched: true, value: "education"}},
		{"any news about cricket?", extraction{matched: true, value: "cricket"}},
		{"sports news", extraction{matched: true, value: "sports"}},
		{"any news", extraction{matched: true}},
		{"news", extraction{matched: true}},
		{"tell me about it", extraction{matched: true}},
		{"what do you know about cricket", extraction{matched: true, value: "cricket"}},
		{"how are you", extraction{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, extractTopic(tt.msg), tt.msg)
	}
}

func TestParseMarker(t *testing.T) {
	t.Parallel()

	tests := []struct {
		reply  string
		want   string
		wantOK bool
	}{
		{"[FETCH:latest_posts]", "latest_posts", true},
		{"Sure! [ fetch : Posts-By-Author ] ok", "posts_by_author", true},
		{"[FETCH:top_authors", "top_authors", true},
		{"FETCH latest_posts", "", false},
		{"no marker here", "", false},
	}
	for _, tt := range tests {
		got, ok := parseMarker(tt.reply)
		assert.Equal(t, tt.wantOK, ok, tt.reply)
		assert.Equal(t, tt.want, got, tt.reply)
	}
}

func TestClassifyLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		msg  string
		want Intent
	}{
		{`posts by title "Theft in Sahiwal"`, IntentPostByTitle},
		{"Posts by Ali Khan", IntentPostsByAuthor},
		{"Tagged with tech", IntentPostsByTag},
		{`find "Rain Update"`, IntentPostByTitle},
		{"Show latest posts", IntentLatestPosts},
		{"who are the top authors", IntentTopAuthors},
		{"Tell me about education", IntentNewsTopic},
		{"latest news", IntentLatestPosts},
		{"latest news about cricket", IntentNewsTopic},
		{"who has posted the most?", IntentTopAuthors},
	}
	for _, tt := range tests {
		got, ok := classifyLookup(tt.msg)
		assert.True(t, ok, tt.msg)
		assert.Equal(t, tt.want, got, tt.msg)
	}

	_, ok := classifyLookup("how are you doing")
	assert.False(t, ok)
}

func TestRecentTurns(t *testing.T) {
	t.Parallel()

	history := []Turn{{Text: "1"}, {Text: "2"}, {Text: "3"}}
	assert.Equal(t, history[1:], recentTurns(history, 2))
	assert.Equal(t, history, recentTurns(history, 5))
	assert.Nil(t, recentTurns(history, 0))
}
