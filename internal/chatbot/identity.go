package chatbot

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Arhamsiaf65/CityInsights/internal/domain"
)

var errAccountMissing = errors.New("caller account not found")

type identityCase struct {
	pattern *regexp.Regexp
	answer  func(*Account) string
}

// identityCases are checked in order; the first matching pattern answers.
var identityCases = []identityCase{
	{
		pattern: regexp.MustCompile(`(?i)\bam i (?:a |an )?publisher\b`),
		answer: func(a *Account) string {
			if a.Role == string(domain.RolePublisher) {
				return "Yes, you're a verified publisher!"
			}
			return "You are not a publisher yet. You can apply through your profile."
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)\bam i (?:an? )?admin\b`),
		answer: func(a *Account) string {
			if a.Role == string(domain.RoleAdmin) {
				return "You are an admin of this platform."
			}
			return "You are not an admin."
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)\bam i (?:a )?verified\b|\bis my account verified\b`),
		answer: func(a *Account) string {
			if a.Verified {
				return "Yes, your account is verified."
			}
			return "Your account is not verified yet."
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)\bmy role\b`),
		answer: func(a *Account) string {
			return fmt.Sprintf("Your current role is: %s.", a.Role)
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)\bwho am i\b|\bdo you know me\b|\babout (?:my account|myself|me)\b|\bmy (?:account|profile)\b`),
		answer: func(a *Account) string {
			verified := "No"
			if a.Verified {
				verified = "Yes"
			}
			return strings.Join([]string{
				"Your account details:",
				"Name: " + a.Name,
				"Email: " + a.Email,
				"Role: " + a.Role,
				"Verified: " + verified,
			}, "\n")
		},
	},
}

func isIdentityQuery(msg string) bool {
	for _, c := range identityCases {
		if c.pattern.MatchString(msg) {
			return true
		}
	}
	return false
}

func (r *Router) identity(ctx context.Context, callerID, msg string) (Reply, error) {
	acct, err := r.findAccount(ctx, callerID)
	if errors.Is(err, errAccountMissing) {
		return Reply{Text: accountNotFoundText, Intent: IntentIdentity}, nil
	}
	if err != nil {
		return Reply{}, err
	}
	for _, c := range identityCases {
		if c.pattern.MatchString(msg) {
			return Reply{Text: c.answer(acct), Intent: IntentIdentity}, nil
		}
	}
	return Reply{Text: unknownIntentText, Intent: IntentUnknown}, nil
}

func (r *Router) findAccount(ctx context.Context, id string) (*Account, error) {
	acct, err := r.accounts.FindAccount(ctx, id)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && acct == nil) {
		return nil, errAccountMissing
	}
	if err != nil {
		return nil, fmt.Errorf("resolve caller: %w", err)
	}
	return acct, nil
}
