package analysis

import "regexp"

// captureRole describes how the capture groups of an action item pattern map
// onto the (task, assignee, deadline) fields.
type captureRole int

const (
	roleTask         captureRole = iota // single group: the task text
	roleAssigneeTask                    // group 1 assignee, group 2 task
	roleTaskDeadline                    // group 1 task, group 2 deadline phrase
)

type actionPattern struct {
	re              *regexp.Regexp
	role            captureRole
	defaultPriority string
}

// Action item patterns in match-priority order. Dedup keeps the first
// occurrence, so explicit markers win over looser phrasings.
var actionItemPatterns = []actionPattern{
	{regexp.MustCompile(`(?i)(?:TODO|Action item|Follow up)[:.]?\s*(.+)`), roleTask, "high"},
	{regexp.MustCompile(`(?i)(\w+)\s+(?:will|should|needs? to|has to|must)\s+(.+)`), roleAssigneeTask, "medium"},
	{regexp.MustCompile(`(?i)(?:assign(?:ed)? to|give to)\s+(\w+)[:.]?\s*(.+)`), roleAssigneeTask, "medium"},
	{regexp.MustCompile(`(?i)(@\w+)[:.]?\s+(.+)`), roleAssigneeTask, "medium"},
	{regexp.MustCompile(`(?i)(?:next steps?|action)[:.]?\s*(.+)`), roleTask, "medium"},
	{regexp.MustCompile(`(?i)(?:we need to|let's|going to)\s+(.+)`), roleTask, "low"},
	{regexp.MustCompile(`(?i)(.+?)\s+(?:by|due|before)\s+(\w+day|\d{1,2}/\d{1,2}|\w+\s+\d{1,2})`), roleTaskDeadline, "high"},
}

// Compound subjects like "Alice will finish X" are already covered by the
// modal-verb pattern; the deadline pattern rejects them to avoid doubles.
var compoundTaskVerbs = []string{"will", "should", "need", "must", "assign"}

type decisionPattern struct {
	re     *regexp.Regexp
	status string
}

var decisionPatterns = []decisionPattern{
	{regexp.MustCompile(`(?i)(?:decided|agreed|resolved|concluded)[:.]?\s*(.+)`), "approved"},
	{regexp.MustCompile(`(?i)(?:decision|choice|vote)[:.]?\s*(.+)`), "approved"},
	{regexp.MustCompile(`(?i)(?:approve|approved|accept|accepted|confirm|confirmed)[:.]?\s*(.+)`), "approved"},
	{regexp.MustCompile(`(?i)(?:reject|rejected|deny|denied|decline|declined)[:.]?\s*(.+)`), "rejected"},
	{regexp.MustCompile(`(?i)(?:we will|let's|going to|plan to)[:.]?\s*(.+)`), "approved"},
	{regexp.MustCompile(`(?i)(?:consensus|agreement|unanimously)[:.]?\s*(.+)`), "approved"},
	{regexp.MustCompile(`(?i)(?:table|postpone|defer|delay)[:.]?\s*(.+)`), "deferred"},
}

type riskPattern struct {
	re       *regexp.Regexp
	explicit bool // explicit risk statements always get medium likelihood
}

// Risk captures must start on a word character so leading punctuation or
// stray separators never seed a risk description.
var riskPatterns = []riskPattern{
	{regexp.MustCompile(`(?i)\brisks?\s+(?:that|of|is|:)\s*(\w.+?)(?:[.!?\n]|$)`), true},
	{regexp.MustCompile(`(?i)\bwhat\s+if\s+(\w.+?)(?:[?.!\n]|$)`), false},
	{regexp.MustCompile(`(?i)\b(?:might|could|may)\s+(?:cause|lead to|result in|break|fail)\s+(\w.+?)(?:[.!?\n]|$)`), false},
	{regexp.MustCompile(`(?i)\b(?:concerned?\s+(?:about|that)|worried\s+(?:about|that)|caution[:.]?|warning[:.]?)\s*(\w.+?)(?:[.!?\n]|$)`), false},
	{regexp.MustCompile(`(?i)\b(?:problem|issue|blocker)\s+(?:is|with|:)\s*(\w.+?)(?:[.!?\n]|$)`), false},
}

// Consequence pairs are handled separately: "if we don't X, Y" yields the
// consequence as the risk and the omitted step as context.
var riskConsequencePattern = regexp.MustCompile(`(?i)\bif\s+we\s+(?:don't|do not|fail to)\s+(\w.+?),\s*(\w.+?)(?:[.!?\n]|$)`)

// Risk category keyword lists. Highest overlap wins; business is the
// tiebreak default.
var riskCategoryKeywords = map[string][]string{
	"technical": {
		"integration", "api", "database", "server", "code", "bug", "deploy",
		"deployment", "performance", "latency", "scalability", "infrastructure",
		"migration", "outage", "downtime", "technical", "system", "software",
	},
	"security": {
		"security", "vulnerability", "token", "saml", "sso", "auth",
		"authentication", "authorization", "breach", "encryption", "compliance",
		"credential", "access", "permission", "leak", "exploit",
	},
	"business": {
		"budget", "cost", "revenue", "customer", "client", "deadline",
		"timeline", "contract", "legal", "market", "competitor", "reputation",
		"churn", "adoption", "stakeholder",
	},
}

var (
	riskHighImpactRe   = regexp.MustCompile(`(?i)\b(?:critical|severe|catastrophic|major|significant|serious)\b`)
	riskMediumImpactRe = regexp.MustCompile(`(?i)\b(?:moderate|delay|delayed|slow|degraded)\b`)

	riskHighLikelihoodRe = regexp.MustCompile(`(?i)\b(?:will|definitely|certainly|always)\b`)
	riskLowLikelihoodRe  = regexp.MustCompile(`(?i)\b(?:might|possibly|perhaps|unlikely|rare|rarely)\b`)

	riskMitigationRe = regexp.MustCompile(`(?i)(?:to mitigate|we can|we could|solution[:.]?|to address|workaround[:.]?)\s+([^.!?\n]{10,150})`)
	riskOwnerRes     = []*regexp.Regexp{
		regexp.MustCompile(`([A-Z][a-z]+)\s+will\s+(?:handle|own|take|look into|investigate)`),
		regexp.MustCompile(`(?i)assign(?:ed)?\s+to\s+([A-Z][a-z]+)`),
	}
)

// User story patterns
var (
	storyDirectRe  = regexp.MustCompile(`(?i)as\s+an?\s+(.+?),?\s*i\s+want\s+(?:to\s+)?(.+?),?\s*so\s+that\s+(.+?)(?:[.!\n]|$)`)
	storyMarkerRe  = regexp.MustCompile(`(?i)user\s+stor(?:y|ies)[:.]?\s*(.+)`)
	storyGenericRe = regexp.MustCompile(`(?i)users?\s+(?:should|must|need to)\s+be\s+able\s+to\s+(.+?)(?:[.!\n]|$)`)
)

// storyTemplate maps a common requirement phrasing to a fully formed story.
type storyTemplate struct {
	re       *regexp.Regexp
	story    string
	criteria []string
	priority string
	epic     string
}

var storyTemplates = []storyTemplate{
	{
		re:    regexp.MustCompile(`(?i)(?:graceful(?:ly)?\s+degrad|keep\s+working\s+(?:if|when)|fall\s*back\s+(?:to|when)|continue\s+(?:to\s+)?work(?:ing)?\s+(?:if|when)\s+.*(?:down|unavailable|offline))`),
		story: "As a user, I want the system to degrade gracefully when a dependency is unavailable, so that I can keep working during partial outages",
		criteria: []string{
			"Core features remain usable when the dependency is down",
			"The user sees a clear notice about reduced functionality",
			"Full functionality resumes automatically on recovery",
		},
		priority: "high",
		epic:     "Reliability",
	},
	{
		re:    regexp.MustCompile(`(?i)(?:auto(?:matic(?:ally)?)?[\s-]*(?:provision|create)\s+(?:user\s+)?accounts?|accounts?\s+(?:are|get)\s+created\s+automatically)`),
		story: "As an administrator, I want user accounts to be provisioned automatically on first login, so that I do not have to create them by hand",
		criteria: []string{
			"A new account is created on first successful sign-in",
			"Profile fields are populated from the identity provider",
			"Duplicate accounts are not created for returning users",
		},
		priority: "medium",
		epic:     "Account Management",
	},
	{
		re:    regexp.MustCompile(`(?i)support\s+both\s+\w+\s+and\s+\w+(?:\s+protocols?)?`),
		story: "As an integrator, I want the system to support both protocols side by side, so that existing clients keep working while new ones migrate",
		criteria: []string{
			"Both protocols are accepted on their documented endpoints",
			"Behavior is equivalent across the two protocols",
			"Protocol selection is logged for troubleshooting",
		},
		priority: "medium",
		epic:     "Integrations",
	},
	{
		re:    regexp.MustCompile(`(?i)(?:single\s+sign[\s-]?on|log\s*in\s+with\s+(?:sso|saml|google|okta))`),
		story: "As a user, I want to sign in with single sign-on, so that I do not need a separate password for this system",
		criteria: []string{
			"Sign-in redirects to the configured identity provider",
			"A valid assertion establishes an application session",
			"Failed assertions show an actionable error message",
		},
		priority: "high",
		epic:     "Authentication",
	},
}

// Acceptance criteria synthesized by story keyword category when no curated
// template applies.
var storyCriteriaByCategory = []struct {
	keywords []string
	criteria []string
}{
	{
		keywords: []string{"admin", "administrator", "manage", "configure"},
		criteria: []string{
			"The capability is restricted to administrator roles",
			"Changes are recorded in an audit trail",
			"Invalid configuration is rejected with a clear message",
		},
	},
	{
		keywords: []string{"login", "log in", "sign in", "auth", "password"},
		criteria: []string{
			"Valid credentials establish a session",
			"Invalid credentials show an error without revealing details",
			"Sessions expire after the configured timeout",
		},
	},
	{
		keywords: []string{"api", "endpoint", "integration", "webhook"},
		criteria: []string{
			"The endpoint returns documented status codes",
			"Malformed requests are rejected with a validation error",
			"Responses conform to the published schema",
		},
	},
	{
		keywords: []string{"logout", "log out", "sign out"},
		criteria: []string{
			"Signing out invalidates the current session",
			"Subsequent requests with the old session are rejected",
			"The user is returned to the sign-in page",
		},
	},
	{
		keywords: []string{"fallback", "offline", "degrade", "outage"},
		criteria: []string{
			"The fallback path activates when the primary path fails",
			"The user is informed about reduced functionality",
			"Normal operation resumes without manual intervention",
		},
	},
}

var storyGenericCriteria = []string{
	"The feature works as described for a typical user",
	"Errors are reported with an actionable message",
	"The behavior is covered by automated tests",
}

// Participant extraction patterns
var (
	participantMarkdownBoldRe = regexp.MustCompile(`\*\*([A-Z][a-zA-Z\s.]{1,60}?)\*\*\s*:`)
	participantNameColonRe    = regexp.MustCompile(`(?m)^([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?):\s`)
	participantHTMLBoldRe     = regexp.MustCompile(`<b>\s*([A-Z][a-zA-Z\s.]{1,60}?)\s*</b>\s*:?`)
	participantAngleRe        = regexp.MustCompile(`<([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)>`)
	participantSaidRe         = regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)\s+(?:said|mentioned|asked|replied|responded)`)
	participantFromByRe       = regexp.MustCompile(`(?:from|by)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`)
	participantAttendeesRe    = regexp.MustCompile(`(?im)^(?:attendees|participants|present)[:.]?\s*(.+)$`)
	participantShapeRe        = regexp.MustCompile(`^[A-Z][a-zA-Z\s.]+$`)
)

// participantStoplist filters pronouns, discourse openers, meeting metadata
// words, weekday names, and time zone abbreviations that match the name shape.
var participantStoplist = map[string]struct{}{
	"The": {}, "This": {}, "That": {}, "And": {}, "But": {}, "So": {}, "Or": {},
	"If": {}, "When": {}, "Where": {}, "How": {}, "What": {}, "Why": {},
	"We": {}, "They": {}, "He": {}, "She": {}, "It": {}, "You": {}, "I": {},
	"Attendees": {}, "Participants": {}, "Present": {}, "Summary": {},
	"Agenda": {}, "Notes": {}, "Team": {}, "Meeting": {}, "Everyone": {},
	"Monday": {}, "Tuesday": {}, "Wednesday": {}, "Thursday": {}, "Friday": {},
	"Saturday": {}, "Sunday": {}, "Today": {}, "Tomorrow": {},
	"UTC": {}, "EST": {}, "EDT": {}, "PST": {}, "PDT": {}, "CST": {},
	"CET": {}, "GMT": {}, "IST": {},
}

// Priority keyword sets shared by action items and user stories
var (
	highPriorityKeywords = []string{"urgent", "asap", "immediately", "critical", "must", "required", "deadline", "due"}
	lowPriorityKeywords  = []string{"consider", "maybe", "could", "might", "eventually", "nice to have"}

	storyHighPriorityKeywords = []string{"critical", "must-have", "must have", "required", "blocker"}
	storyLowPriorityKeywords  = []string{"nice-to-have", "nice to have", "optional", "eventually", "someday"}
)

// Decision metadata keyword sets
var (
	highImpactKeywords = []string{"budget", "hire", "fire", "launch", "cancel", "strategic", "critical", "major"}
	lowImpactKeywords  = []string{"minor", "small", "quick", "simple", "temporary"}

	decisionMakerRes = []*regexp.Regexp{
		regexp.MustCompile(`([A-Z][a-z]+)\s+(?:decided|agreed|approved)`),
		regexp.MustCompile(`(?i)(?:decision by|made by)\s+([A-Z][a-z]+)`),
		regexp.MustCompile(`([A-Z][a-z]+):\s*[^.]*(?:decided|agreed)`),
	}
	rationaleRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:because|since|due to|reason)\s+([^.]{10,100})`),
		regexp.MustCompile(`(?i)(?:justification|rationale)[:.]?\s*([^.]{10,100})`),
	}
)

// Noise filter patterns for extracted spans
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(?:um|uh|oh|ah|well|so|like|you know)`),
	regexp.MustCompile(`^(?:yeah|yes|no|okay|right|sure|exactly)`),
	regexp.MustCompile(`^\w{1,2}$`),
	regexp.MustCompile(`^[^\w\s]+$`),
}

var (
	taskPrefixRe     = regexp.MustCompile(`(?i)^(?:that|to|and|but|so|then)\s+`)
	whitespaceRe     = regexp.MustCompile(`\s+`)
	assigneePrefixRe = regexp.MustCompile(`(?i)^(?:@|by|to)\s*`)
	assigneeSuffixRe = regexp.MustCompile(`\s*[:.,;].*$`)

	dueDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:by|due|before)\s+(\w+day)`),
		regexp.MustCompile(`(?i)(?:by|due|before)\s+(\d{1,2}/\d{1,2})`),
		regexp.MustCompile(`(?i)(?:by|due|before)\s+(\w+\s+\d{1,2})`),
	}
)

// Topic identification
var topicStopwords = map[string]struct{}{
	"the": {}, "and": {}, "or": {}, "but": {}, "in": {}, "on": {}, "at": {},
	"to": {}, "for": {}, "of": {}, "with": {}, "by": {}, "from": {}, "up": {},
	"about": {}, "into": {}, "through": {}, "during": {}, "before": {},
	"after": {}, "above": {}, "below": {}, "between": {}, "among": {},
	"within": {}, "without": {}, "said": {}, "says": {}, "mentioned": {},
	"discussed": {}, "talked": {}, "speaking": {}, "think": {}, "feel": {},
	"know": {}, "see": {}, "want": {}, "need": {}, "get": {}, "go": {},
	"come": {}, "yeah": {}, "yes": {}, "okay": {}, "right": {}, "well": {},
	"so": {}, "um": {}, "uh": {}, "like": {},
}

var (
	topicWordRe     = regexp.MustCompile(`\b[A-Za-z]{2,}\b`)
	topicPhrasePats = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b([a-z]+ (?:project|initiative|feature|system|process|strategy|plan|budget|timeline|deadline|meeting|review|update|discussion|decision))\b`),
		regexp.MustCompile(`(?i)\b((?:project|feature|system|api|database|frontend|backend|mobile|web|security|performance|testing|deployment|infrastructure) [a-z]+)\b`),
		regexp.MustCompile(`\b([A-Z][a-z]+ [A-Z][a-z]+)\b`),
	}
)

// Sentiment keyword lists. The classification thresholds are asymmetric:
// positive needs a higher share of sentiment words than negative does.
var (
	positiveKeywords = []string{
		"great", "excellent", "good", "positive", "success", "achieved",
		"accomplished", "agree", "approved", "happy", "pleased", "excited",
	}
	negativeKeywords = []string{
		"problem", "issue", "concern", "difficult", "challenge", "failed",
		"rejected", "disappointed", "frustrated", "worried", "delayed",
	}
	neutralKeywords = []string{
		"discussed", "reviewed", "considered", "noted", "mentioned",
		"presented", "updated", "reported", "planned",
	}
)

// Meeting type inference keyword table
var meetingTypeKeywords = []struct {
	meetingType string
	keywords    []string
}{
	{"standup", []string{"standup", "daily", "scrum", "status update", "what did you work on"}},
	{"planning", []string{"planning", "roadmap", "milestone", "timeline", "sprint planning", "project plan"}},
	{"retrospective", []string{"retrospective", "retro", "what went well", "what could improve", "lessons learned"}},
	{"one_on_one", []string{"1:1", "one on one", "performance", "feedback", "career", "development"}},
	{"all_hands", []string{"all hands", "company update", "quarterly", "town hall", "announcement"}},
	{"client_call", []string{"client", "customer", "stakeholder", "demo", "presentation"}},
	{"interview", []string{"interview", "candidate", "hiring", "recruiting"}},
}
