package chatbot

import (
	"fmt"
	"regexp"
	"strings"
)

const systemFraming = "You are the assistant of City Insight: Sahiwal Edition, a local news and community platform. " +
	"Respond in a helpful and intelligent way. Give one short, natural-sounding reply, not an essay. " +
	"Keep the tone casual and conversational, like a real person texting. Do not use markdown."

const greetingInstruction = "Respond warmly and enthusiastically in one short, natural reply, like a real person texting. " +
	"Do not list options and do not explain the reply."

// fetchInstruction lists the intents the oracle may ask us to run.
var fetchInstruction = "If the user is asking for posts, authors or news stored on the platform, reply with only " +
	"the marker [FETCH:<intent>] where <intent> is one of: " + strings.Join(fetchIntentNames(), ", ") + "."

// fetchIntents maps marker names to lookups that can re-run on the
// original message.
var fetchIntents = map[string]Intent{
	"latest_posts":    IntentLatestPosts,
	"posts_by_author": IntentPostsByAuthor,
	"posts_by_tag":    IntentPostsByTag,
	"post_by_title":   IntentPostByTitle,
	"top_authors":     IntentTopAuthors,
	"news_topic":      IntentNewsTopic,
}

func fetchIntentNames() []string {
	return []string{"latest_posts", "posts_by_author", "posts_by_tag", "post_by_title", "top_authors", "news_topic"}
}

// markerPattern tolerates spacing, case and a missing closing bracket.
var markerPattern = regexp.MustCompile(`(?i)\[\s*fetch\s*:\s*([a-z_\-]+)`)

// parseMarker returns the normalized intent name of the first marker.
func parseMarker(reply string) (string, bool) {
	m := markerPattern.FindStringSubmatch(reply)
	if m == nil {
		return "", false
	}
	return strings.ReplaceAll(strings.ToLower(m[1]), "-", "_"), true
}

func greetingPrompt(msg string) []string {
	return []string{systemFraming, fmt.Sprintf("The user greeted: %q.", msg), greetingInstruction}
}

func summaryPrompt(topic, excerpts string) []string {
	return []string{
		systemFraming,
		fmt.Sprintf("Summarize these articles about %q for the user:\n\n%s", topic, excerpts),
	}
}

// fallbackPrompt assembles framing, caller, recent turns, the message and
// the marker instructions.
func fallbackPrompt(callerName string, history []Turn, msg string) []string {
	segments := []string{systemFraming}
	if callerName != "" {
		segments = append(segments, fmt.Sprintf("This message is from %s.", callerName))
	}
	if len(history) > 0 {
		var b strings.Builder
		b.WriteString("Earlier in this conversation:")
		for _, t := range history {
			fmt.Fprintf(&b, "\n%s: %s", t.Speaker, t.Text)
		}
		segments = append(segments, b.String())
	}
	segments = append(segments, fmt.Sprintf("User message: %q", msg), fetchInstruction)
	return segments
}

// recentTurns keeps the last n turns.
func recentTurns(history []Turn, n int) []Turn {
	if n <= 0 {
		return nil
	}
	if len(history) > n {
		return history[len(history)-n:]
	}
	return history
}
