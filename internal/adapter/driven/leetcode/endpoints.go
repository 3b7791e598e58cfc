package leetcode

import "net/http"

// endpoint describes one of the fixed platform endpoints the client knows
// how to call. The platform rejects state-changing requests whose Referer
// does not match the page the request would originate from in a browser.
type endpoint struct {
	name        string // For logs and error context.
	method      string
	path        string // Relative to the base URL; formatted with ids by callers.
	referer     string // Relative Referer path; empty means the base URL itself.
	contentType string
}

var (
	epProblemList = endpoint{
		name:   "problem-list",
		method: http.MethodGet,
		path:   "/api/problems/%s",
	}
	epGraphQL = endpoint{
		name:        "graphql",
		method:      http.MethodPost,
		path:        "/graphql",
		contentType: "application/json",
	}
	epLoginPage = endpoint{
		name:   "login-page",
		method: http.MethodGet,
		path:   "/accounts/login/",
	}
	epLogin = endpoint{
		name:        "login",
		method:      http.MethodPost,
		path:        "/accounts/login/",
		referer:     "/accounts/login/",
		contentType: "application/x-www-form-urlencoded",
	}
	epSubmit = endpoint{
		name:        "submit",
		method:      http.MethodPost,
		path:        "/problems/%s/submit/",
		referer:     "/problems/%s/",
		contentType: "application/json",
	}
	epCheckSubmission = endpoint{
		name:   "check-submission",
		method: http.MethodGet,
		path:   "/submissions/detail/%d/check/",
	}
)

// GraphQL documents for the fixed query set.
const questionDataQuery = `query questionData($titleSlug: String!) {
	question(titleSlug: $titleSlug) {
		questionId
		questionFrontendId
		title
		titleSlug
		difficulty
		content
		stats
		categoryTitle
		isPaidOnly
		status
		sampleTestCase
		topicTags { slug }
		codeSnippets { lang langSlug code }
	}
}`

const questionOfTodayQuery = `query questionOfToday {
	activeDailyCodingChallengeQuestion {
		question { titleSlug }
	}
}`
