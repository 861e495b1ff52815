// Package moderation classifies candidate messages against a fixed rule set
// and redacts personally identifiable information from clean messages.
package moderation

import (
	"strings"

	"github.com/blairify/interview-engine/internal/domain"
)

// Classify runs the rule families over a candidate message in priority order
// and returns the first match: language switching, then profanity, then
// disallowed topics, then inappropriate behavior. A message discussing
// penetration testing is exempt from the profanity and behavior families.
//
// Classification is pure: the same message always yields the same outcome.
func Classify(message string) domain.ModerationOutcome {
	normalized := strings.ToLower(strings.TrimSpace(message))
	if normalized == "" {
		return domain.ModerationOutcome{Kind: domain.ModerationClean}
	}

	for i, re := range languageSwitchPatterns {
		if re.MatchString(normalized) {
			return domain.ModerationOutcome{
				Kind: domain.ModerationLanguageSwitch,
				Rule: "language/" + languageSwitchRuleNames[i],
			}
		}
	}

	securityContext := isSecurityPenTestContext(normalized)

	if !securityContext {
		for i, re := range profanityPatterns {
			if re.MatchString(normalized) {
				return domain.ModerationOutcome{
					Kind: domain.ModerationProfanity,
					Rule: "profanity/" + profanityRuleNames[i],
				}
			}
		}
	}

	for i, re := range disallowedTopicPatterns {
		if re.MatchString(normalized) {
			return domain.ModerationOutcome{
				Kind: domain.ModerationDisallowedTopic,
				Rule: "topic/" + disallowedTopicRuleNames[i],
			}
		}
	}

	if !securityContext {
		for i, re := range inappropriateBehaviorPatterns {
			if re.MatchString(normalized) {
				return domain.ModerationOutcome{
					Kind: domain.ModerationInappropriate,
					Rule: "behavior/" + inappropriateRuleNames[i],
				}
			}
		}
	}

	return domain.ModerationOutcome{Kind: domain.ModerationClean}
}
