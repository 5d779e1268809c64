package chatbot

import (
	"context"
	"fmt"
	"strings"
)

func (r *Router) postByTitle(ctx context.Context, msg string) (Reply, error) {
	title := extractTitle(msg).value
	if title == "" {
		return Reply{Text: clarifyTitleText, Intent: IntentClarify}, nil
	}
	posts, err := r.content.PostsByTitle(ctx, title, r.cfg.ResultLimit)
	if err != nil {
		return Reply{}, fmt.Errorf("posts by title: %w", err)
	}
	if len(posts) == 0 {
		return Reply{Text: noTitlePostsText(title), Intent: IntentPostByTitle}, nil
	}
	return Reply{Text: formatTitleMatches(capPosts(posts, r.cfg.ResultLimit), r.cfg.SnippetLength), Intent: IntentPostByTitle}, nil
}

func (r *Router) postsByAuthor(ctx context.Context, msg string) (Reply, error) {
	name := authorPatterns.extract(msg).value
	if name == "" {
		return Reply{Text: clarifyAuthorText, Intent: IntentClarify}, nil
	}

	authors, err := r.content.FindAuthorsByName(ctx, name)
	if err != nil {
		return Reply{}, fmt.Errorf("find authors: %w", err)
	}
	if len(authors) == 0 {
		return Reply{Text: authorNotFoundText(name), Intent: IntentPostsByAuthor}, nil
	}

	ids := make([]string, len(authors))
	for i, a := range authors {
		ids[i] = a.ID
	}
	posts, err := r.content.PostsByAuthors(ctx, ids, r.cfg.ResultLimit)
	if err != nil {
		return Reply{}, fmt.Errorf("posts by authors: %w", err)
	}
	if len(posts) == 0 {
		return Reply{Text: noPostsByAuthorText(name), Intent: IntentPostsByAuthor}, nil
	}
	return Reply{Text: formatAuthorPosts(name, capPosts(posts, r.cfg.ResultLimit)), Intent: IntentPostsByAuthor}, nil
}

func (r *Router) postsByTag(ctx context.Context, msg string) (Reply, error) {
	keyword := tagPatterns.extract(msg).value
	if keyword == "" {
		return Reply{Text: clarifyTagText, Intent: IntentClarify}, nil
	}
	posts, err := r.content.PostsByTagOrCategory(ctx, keyword, r.cfg.ResultLimit)
	if err != nil {
		return Reply{}, fmt.Errorf("posts by tag or category: %w", err)
	}
	posts = dedupePosts(posts)
	if len(posts) == 0 {
		return Reply{Text: noTagPostsText(keyword), Intent: IntentPostsByTag}, nil
	}
	return Reply{Text: bulletTitles(capPosts(posts, r.cfg.ResultLimit)), Intent: IntentPostsByTag}, nil
}

func (r *Router) latestPosts(ctx context.Context) (Reply, error) {
	posts, err := r.content.LatestPosts(ctx, r.cfg.ResultLimit)
	if err != nil {
		return Reply{}, fmt.Errorf("latest posts: %w", err)
	}
	if len(posts) == 0 {
		return Reply{Text: noPostsYetText, Intent: IntentLatestPosts}, nil
	}
	return Reply{Text: formatLatest(capPosts(posts, r.cfg.ResultLimit)), Intent: IntentLatestPosts}, nil
}

func (r *Router) topAuthors(ctx context.Context) (Reply, error) {
	authors, err := r.content.TopAuthors(ctx, r.cfg.TopAuthors)
	if err != nil {
		return Reply{}, fmt.Errorf("top authors: %w", err)
	}
	if len(authors) == 0 {
		return Reply{Text: noAuthorsText, Intent: IntentTopAuthors}, nil
	}
	if len(authors) > r.cfg.TopAuthors {
		authors = authors[:r.cfg.TopAuthors]
	}
	return Reply{Text: formatTopAuthors(authors), Intent: IntentTopAuthors}, nil
}

func (r *Router) newsTopic(ctx context.Context, msg string) (Reply, error) {
	topic := extractTopic(msg).value
	if topic == "" {
		return Reply{Text: clarifyTopicText, Intent: IntentClarify}, nil
	}
	posts, err := r.content.SearchPosts(ctx, topic, r.cfg.ResultLimit)
	if err != nil {
		return Reply{}, fmt.Errorf("search posts: %w", err)
	}
	if len(posts) == 0 {
		return Reply{Text: noTopicPostsText(topic), Intent: IntentNewsTopic}, nil
	}
	posts = capPosts(posts, r.cfg.ResultLimit)

	summary, err := r.generate(ctx, summaryPrompt(topic, formatExcerpts(posts, r.cfg.ExcerptLength)))
	if err != nil {
		return Reply{}, fmt.Errorf("summarize %q: %w", topic, err)
	}
	if strings.TrimSpace(summary) == "" {
		return Reply{Text: bulletTitles(posts), Intent: IntentNewsTopic}, nil
	}
	return Reply{Text: strings.TrimSpace(summary), Intent: IntentNewsTopic}, nil
}

func capPosts(posts []PostSummary, limit int) []PostSummary {
	if len(posts) > limit {
		return posts[:limit]
	}
	return posts
}

// dedupePosts keeps the first occurrence of each post id.
func dedupePosts(posts []PostSummary) []PostSummary {
	seen := make(map[string]bool, len(posts))
	out := make([]PostSummary, 0, len(posts))
	for _, p := range posts {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out
}
