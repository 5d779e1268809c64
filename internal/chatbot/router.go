package chatbot

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Arhamsiaf65/CityInsights/infrastructure/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/Arhamsiaf65/CityInsights/internal/chatbot"

var (
	platformPattern = regexp.MustCompile(`(?i)who (?:are|is) (?:you|this)|` +
		`(?:what is|tell me about|explain) (?:city insights?|cia|this platform|this site)|what do you do`)
	helpPattern = regexp.MustCompile(`(?i)^\s*(?:help|menu)\b|what can you do|how can you help|` +
		`^\s*what do you (?:know|offer)\s*\??\s*$|show (?:me )?(?:the )?menu`)
	timePattern = regexp.MustCompile(`(?i)\bwhat time is it\b|\bwhat['’]?s the time\b|\bwhat is the time\b|` +
		`\bcurrent (?:time|date)\b|\bwhat['’]?s the date\b|\bwhat is the date\b|\btoday['’]?s date\b|` +
		`\bwhat day is (?:it|today)\b`)
)

// Option customizes a Router.
type Option func(*Router)

// WithClock sets the clock used for time and date replies.
func WithClock(now func() time.Time) Option {
	return func(r *Router) { r.now = now }
}

// WithTracer overrides the global OpenTelemetry tracer.
func WithTracer(t trace.Tracer) Option {
	return func(r *Router) { r.tracer = t }
}

// WithIntentObserver is called once per reply with the matched intent.
func WithIntentObserver(fn func(Intent)) Option {
	return func(r *Router) { r.observe = fn }
}

// Router classifies messages and builds replies. It holds no per-request
// state and is safe for concurrent use.
type Router struct {
	content   ContentStore
	accounts  AccountStore
	oracle    Oracle
	cfg       Config
	log       logger.Logger
	now       func() time.Time
	tracer    trace.Tracer
	observe   func(Intent)
	greetings *phraseMatcher
	faq       *faqMatcher
}

// NewRouter wires a router to its collaborators.
func NewRouter(content ContentStore, accounts AccountStore, oracle Oracle, cfg Config, log logger.Logger, opts ...Option) *Router {
	r := &Router{
		content:   content,
		accounts:  accounts,
		oracle:    oracle,
		cfg:       cfg.withDefaults(),
		log:       log,
		now:       time.Now,
		tracer:    otel.Tracer(tracerName),
		observe:   func(Intent) {},
		greetings: newPhraseMatcher(greetingPhrases),
		faq:       newFAQMatcher(faqEntries),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reply answers one message. On error the reply carries ApologyText. An
// unknown CallerID only changes the answer to identity questions.
func (r *Router) Reply(ctx context.Context, req Request) (Reply, error) {
	ctx, span := r.tracer.Start(ctx, "chatbot.Reply",
		trace.WithAttributes(attribute.Bool("chat.has_caller", req.CallerID != "")))
	defer span.End()

	reply, err := r.dispatch(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.observe(IntentError)
		return Reply{Text: ApologyText, Intent: IntentError}, err
	}

	reply.Text = stripEmphasis(reply.Text)
	span.SetAttributes(attribute.String("chat.intent", string(reply.Intent)))
	r.observe(reply.Intent)
	return reply, nil
}

func (r *Router) dispatch(ctx context.Context, req Request) (Reply, error) {
	msg := strings.TrimSpace(req.Message)
	normalized := normalize(msg)
	if normalized == "" {
		return r.fallback(ctx, req, msg)
	}

	if r.greetings.contains(normalized) {
		return r.greet(ctx, msg), nil
	}
	if answer, ok := r.faq.answer(normalized); ok {
		return Reply{Text: answer, Intent: IntentFAQ}, nil
	}
	if platformPattern.MatchString(msg) {
		return Reply{Text: platformInfoText, Intent: IntentPlatformInfo}, nil
	}
	if helpPattern.MatchString(msg) {
		return Reply{Text: helpMenuText, Intent: IntentHelp}, nil
	}
	if timePattern.MatchString(msg) {
		now := r.now().In(r.cfg.Location)
		return Reply{Text: "It's currently " + now.Format(clockLayout) + ".", Intent: IntentTime}, nil
	}
	if req.CallerID != "" && isIdentityQuery(msg) {
		return r.identity(ctx, req.CallerID, msg)
	}

	if intent, ok := classifyLookup(msg); ok {
		return r.lookup(ctx, intent, msg)
	}
	return r.fallback(ctx, req, msg)
}

// classifyLookup picks the content intent a message asks for, in priority
// order.
func classifyLookup(msg string) (Intent, bool) {
	switch {
	case titleCue.MatchString(msg):
		return IntentPostByTitle, true
	case authorPatterns.extract(msg).matched:
		return IntentPostsByAuthor, true
	case tagPatterns.extract(msg).matched:
		return IntentPostsByTag, true
	case extractTitle(msg).matched:
		return IntentPostByTitle, true
	case latestPattern.MatchString(msg):
		return IntentLatestPosts, true
	case topAuthorsPattern.MatchString(msg):
		return IntentTopAuthors, true
	case extractTopic(msg).matched:
		return IntentNewsTopic, true
	}
	return "", false
}

func (r *Router) lookup(ctx context.Context, intent Intent, msg string) (Reply, error) {
	switch intent {
	case IntentPostByTitle:
		return r.postByTitle(ctx, msg)
	case IntentPostsByAuthor:
		return r.postsByAuthor(ctx, msg)
	case IntentPostsByTag:
		return r.postsByTag(ctx, msg)
	case IntentLatestPosts:
		return r.latestPosts(ctx)
	case IntentTopAuthors:
		return r.topAuthors(ctx)
	case IntentNewsTopic:
		return r.newsTopic(ctx, msg)
	default:
		return Reply{Text: unknownIntentText, Intent: IntentUnknown}, nil
	}
}

func (r *Router) greet(ctx context.Context, msg string) Reply {
	static := Reply{Text: staticGreeting, Intent: IntentGreeting}
	if !r.cfg.OracleGreeting {
		return static
	}
	text, err := r.generate(ctx, greetingPrompt(msg))
	if err != nil {
		r.log.Warn("Oracle greeting failed, using static greeting", logger.Error(err))
		return static
	}
	if strings.TrimSpace(text) == "" {
		return static
	}
	return Reply{Text: text, Intent: IntentGreeting}
}

func (r *Router) fallback(ctx context.Context, req Request, msg string) (Reply, error) {
	callerName, err := r.callerName(ctx, req.CallerID)
	if err != nil {
		return Reply{}, err
	}

	out, err := r.generate(ctx, fallbackPrompt(callerName, recentTurns(req.History, r.cfg.HistoryTurns), msg))
	if err != nil {
		return Reply{}, fmt.Errorf("oracle fallback: %w", err)
	}

	if name, ok := parseMarker(out); ok {
		intent, known := fetchIntents[name]
		if !known {
			r.log.Debug("Oracle named an unknown intent", logger.String("marker", name))
			return Reply{Text: unknownIntentText, Intent: IntentUnknown}, nil
		}
		return r.lookup(ctx, intent, msg)
	}

	if strings.TrimSpace(stripEmphasis(out)) == "" {
		return Reply{Text: helpMenuText, Intent: IntentHelp}, nil
	}
	return Reply{Text: strings.TrimSpace(out), Intent: IntentOracle}, nil
}

// callerName resolves the caller for prompt personalization. Unknown
// callers are anonymous.
func (r *Router) callerName(ctx context.Context, callerID string) (string, error) {
	if callerID == "" {
		return "", nil
	}
	acct, err := r.findAccount(ctx, callerID)
	if errors.Is(err, errAccountMissing) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return acct.Name, nil
}

func (r *Router) generate(ctx context.Context, segments []string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.OracleTimeout)
	defer cancel()

	ctx, span := r.tracer.Start(ctx, "chatbot.oracle")
	defer span.End()

	out, err := r.oracle.Generate(ctx, segments)
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	return out, nil
}
