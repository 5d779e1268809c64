package chatbot

import (
	"fmt"
	"strings"
)

const (
	// ApologyText is returned with every collaborator failure.
	ApologyText = "Sorry, something went wrong on our side. Please try again in a moment."

	staticGreeting = "Hello! Welcome to City Insight. Ask me about the latest posts, an author, a tag or your account."

	platformInfoText = "City Insight: Sahiwal Edition is your local hub for community news, reviews and updates in Sahiwal. " +
		"Whether you're a reader or a publisher, we help you stay informed!"

	unknownIntentText = "Sorry, I didn't understand what you were looking for. Type \"help\" to see what I can do."

	accountNotFoundText = "Sorry, I couldn't find your user account."

	clarifyAuthorText = "Whose posts would you like to see? Try \"posts by Ali Khan\"."
	clarifyTagText    = "Which tag or category should I look in? Try \"tagged with tech\" or \"category sports\"."
	clarifyTitleText  = "Which post are you looking for? Put the title in quotes, like: title \"Theft in Sahiwal\"."
	clarifyTopicText  = "What topic would you like news about? Try \"news about education\"."

	noPostsYetText  = "There are no posts on the platform yet."
	noAuthorsText   = "No authors have posted yet."
	dateLayout      = "02 Jan 2006"
	clockLayout     = "Monday, 02 January 2006 3:04 PM MST"
	helpMenuHeading = "Here's how I can assist you:"
)

var helpMenuText = strings.Join([]string{
	helpMenuHeading,
	"- Answer questions about City Insight and your account",
	"- Show the latest posts: \"Show latest posts\"",
	"- Find posts by topic: \"Tell me about education\", \"News about sports\"",
	"- Find posts by tag or category: \"Tagged with tech\", \"Category business\"",
	"- Find posts by author: \"Posts by Ali Khan\", \"Content from Maria\"",
	"- Find a post by title: title \"Theft in Sahiwal\"",
	"- List the top authors: \"Top authors\"",
	"- Check your account: \"Am I a publisher?\", \"What is my role?\", \"Who am I?\"",
	"- Platform help: \"How to apply as publisher\", \"How do I contact support?\"",
}, "\n")

var faqEntries = []faqEntry{
	{
		keywords: []string{"apply", "publisher"},
		answer:   "To apply as a publisher, open the navigation bar and click 'Apply Publisher'. We'll review your request soon!",
	},
	{
		keywords: []string{"how", "contact"},
		answer:   contactAnswer,
	},
	{
		keywords: []string{"can", "advertis"},
		answer:   advertiseAnswer,
	},
	{
		keywords: []string{"how", "advertis"},
		answer:   advertiseAnswer,
	},
}

const (
	contactAnswer   = "You can reach us through the Contact page in the navigation bar. We usually reply within 24 hours."
	advertiseAnswer = "Yes! You can publish your ads with us. Submit an ad from the Ads page and our team will review it."
)

var greetingPhrases = []string{
	"hi", "hello", "hey", "greetings", "good morning", "good evening", "salam", "assalamu alaikum",
}

func authorNotFoundText(name string) string {
	return fmt.Sprintf("Couldn't find any author named %q.", name)
}

func noPostsByAuthorText(name string) string {
	return fmt.Sprintf("%s has not posted anything yet.", name)
}

func noTagPostsText(keyword string) string {
	return fmt.Sprintf("No posts found for %q.", keyword)
}

func noTitlePostsText(title string) string {
	return fmt.Sprintf("I couldn't find a post titled %q.", title)
}

func noTopicPostsText(topic string) string {
	return fmt.Sprintf("Sorry, I couldn't find any posts about %q.", topic)
}

func bulletTitles(posts []PostSummary) string {
	lines := make([]string, len(posts))
	for i, p := range posts {
		lines[i] = "• " + p.Title
	}
	return strings.Join(lines, "\n")
}

func formatAuthorPosts(name string, posts []PostSummary) string {
	lines := make([]string, len(posts))
	for i, p := range posts {
		lines[i] = fmt.Sprintf("• %s (by %s)", p.Title, p.AuthorName)
	}
	return fmt.Sprintf("Here are some posts by %s:\n%s", name, strings.Join(lines, "\n"))
}

func formatLatest(posts []PostSummary) string {
	lines := make([]string, len(posts))
	for i, p := range posts {
		line := fmt.Sprintf("• %s by %s", p.Title, p.AuthorName)
		if p.CategoryName != "" {
			line += fmt.Sprintf(" in %s", p.CategoryName)
		}
		lines[i] = line
	}
	return "Here are the latest posts:\n" + strings.Join(lines, "\n")
}

func formatTitleMatches(posts []PostSummary, snippetLen int) string {
	blocks := make([]string, len(posts))
	for i, p := range posts {
		category := p.CategoryName
		if category == "" {
			category = "Uncategorized"
		}
		blocks[i] = fmt.Sprintf("• %s\nAuthor: %s | Category: %s | Published: %s\n%s",
			p.Title, p.AuthorName, category, p.CreatedAt.Format(dateLayout), truncate(p.Content, snippetLen))
	}
	return strings.Join(blocks, "\n\n")
}

func formatTopAuthors(authors []AuthorCount) string {
	lines := make([]string, len(authors))
	for i, a := range authors {
		name := a.Name
		if name == "" {
			name = "Unknown"
		}
		noun := "posts"
		if a.Posts == 1 {
			noun = "post"
		}
		lines[i] = fmt.Sprintf("%d. %s - %d %s", i+1, name, a.Posts, noun)
	}
	return "Top contributing authors:\n" + strings.Join(lines, "\n")
}

func formatExcerpts(posts []PostSummary, excerptLen int) string {
	blocks := make([]string, len(posts))
	for i, p := range posts {
		blocks[i] = fmt.Sprintf("Title: %s\nExcerpt: %s", p.Title, truncate(p.Content, excerptLen))
	}
	return strings.Join(blocks, "\n\n")
}
