// Package chatbot routes a chat message to a greeting, a canned answer, an
// account lookup, a content lookup or the generative oracle.
package chatbot

import (
	"context"
	"time"
)

// Intent names the branch that produced a reply.
type Intent string

const (
	IntentGreeting      Intent = "greeting"
	IntentFAQ           Intent = "faq"
	IntentPlatformInfo  Intent = "platform_info"
	IntentHelp          Intent = "help"
	IntentTime          Intent = "time"
	IntentIdentity      Intent = "identity"
	IntentPostByTitle   Intent = "post_by_title"
	IntentPostsByAuthor Intent = "posts_by_author"
	IntentPostsByTag    Intent = "posts_by_tag"
	IntentLatestPosts   Intent = "latest_posts"
	IntentTopAuthors    Intent = "top_authors"
	IntentNewsTopic     Intent = "news_topic"
	IntentClarify       Intent = "clarify"
	IntentOracle        Intent = "oracle"
	IntentUnknown       Intent = "unknown"
	IntentError         Intent = "error"
)

// Speaker roles recorded in conversation history.
const (
	SpeakerUser      = "user"
	SpeakerAssistant = "assistant"
)

// Turn is one line of earlier conversation.
type Turn struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Request is one inbound chat message.
type Request struct {
	Message  string
	CallerID string
	// History is the most recent conversation, oldest first.
	History []Turn
}

// Reply is the router's answer. Text never contains '*'.
type Reply struct {
	Text   string
	Intent Intent
}

// Account is the caller's stored profile.
type Account struct {
	ID       string
	Name     string
	Email    string
	Role     string
	Verified bool
}

// Author is an account that may own posts.
type Author struct {
	ID   string
	Name string
}

// AuthorCount is an author with the number of posts they own.
type AuthorCount struct {
	Name  string
	Posts int
}

// PostSummary is the read-only view of a post used in replies.
type PostSummary struct {
	ID           string
	Title        string
	Content      string
	AuthorName   string
	CategoryName string
	Tags         []string
	CreatedAt    time.Time
}

// ContentStore looks up posts and authors. Text arguments match
// case-insensitively as substrings.
type ContentStore interface {
	FindAuthorsByName(ctx context.Context, name string) ([]Author, error)
	PostsByAuthors(ctx context.Context, authorIDs []string, limit int) ([]PostSummary, error)
	// PostsByTagOrCategory returns posts whose tags or category name match,
	// each post at most once.
	PostsByTagOrCategory(ctx context.Context, keyword string, limit int) ([]PostSummary, error)
	PostsByTitle(ctx context.Context, title string, limit int) ([]PostSummary, error)
	LatestPosts(ctx context.Context, limit int) ([]PostSummary, error)
	TopAuthors(ctx context.Context, limit int) ([]AuthorCount, error)
	SearchPosts(ctx context.Context, topic string, limit int) ([]PostSummary, error)
}

// AccountStore resolves a caller. FindAccount returns domain.ErrNotFound
// for unknown ids.
type AccountStore interface {
	FindAccount(ctx context.Context, id string) (*Account, error)
}

// Oracle turns prompt segments into free text.
type Oracle interface {
	Generate(ctx context.Context, segments []string) (string, error)
}

const (
	DefaultResultLimit   = 3
	DefaultSnippetLength = 100
	DefaultExcerptLength = 150
	DefaultTopAuthors    = 3
	DefaultOracleTimeout = 12 * time.Second
	DefaultHistoryTurns  = 6
)

// Config tunes reply sizes and oracle use.
type Config struct {
	ResultLimit    int
	SnippetLength  int
	ExcerptLength  int
	TopAuthors     int
	OracleTimeout  time.Duration
	HistoryTurns   int
	OracleGreeting bool
	Location       *time.Location
}

// DefaultConfig returns the stock reply sizes with oracle greetings on.
func DefaultConfig() Config {
	return Config{
		ResultLimit:    DefaultResultLimit,
		SnippetLength:  DefaultSnippetLength,
		ExcerptLength:  DefaultExcerptLength,
		TopAuthors:     DefaultTopAuthors,
		OracleTimeout:  DefaultOracleTimeout,
		HistoryTurns:   DefaultHistoryTurns,
		OracleGreeting: true,
		Location:       time.UTC,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.ResultLimit <= 0 {
		c.ResultLimit = def.ResultLimit
	}
	if c.SnippetLength <= 0 {
		c.SnippetLength = def.SnippetLength
	}
	if c.ExcerptLength <= 0 {
		c.ExcerptLength = def.ExcerptLength
	}
	if c.TopAuthors <= 0 {
		c.TopAuthors = def.TopAuthors
	}
	if c.OracleTimeout <= 0 {
		c.OracleTimeout = def.OracleTimeout
	}
	if c.HistoryTurns < 0 {
		c.HistoryTurns = 0
	}
	if c.Location == nil {
		c.Location = def.Location
	}
	return c
}
