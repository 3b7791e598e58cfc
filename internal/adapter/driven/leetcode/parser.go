package leetcode

import (
	"encoding/json"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/ericfisherdev/ojcli/internal/domain/model"
	"github.com/ericfisherdev/ojcli/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.StatementParser = (*Parser)(nil)

// Parser turns the platform's raw GraphQL payloads into Problem records.
// All failures wrap ErrProtocol: a shape mismatch means this client version
// disagrees with the platform, and retrying cannot fix that.
type Parser struct{}

// NewParser creates a Parser.
func NewParser() *Parser {
	return &Parser{}
}

// question mirrors the subset of the questionData response the client uses.
type question struct {
	QuestionID         string `json:"questionId"`
	QuestionFrontendID string `json:"questionFrontendId"`
	Title              string `json:"title"`
	TitleSlug          string `json:"titleSlug"`
	Difficulty         string `json:"difficulty"`
	Content            string `json:"content"`
	Stats              string `json:"stats"`
	CategoryTitle      string `json:"categoryTitle"`
	IsPaidOnly         bool   `json:"isPaidOnly"`
	Status             string `json:"status"`
	SampleTestCase     string `json:"sampleTestCase"`
	TopicTags          []struct {
		Slug string `json:"slug"`
	} `json:"topicTags"`
	CodeSnippets []codeSnippet `json:"codeSnippets"`
}

type codeSnippet struct {
	Lang     string `json:"lang"`
	LangSlug string `json:"langSlug"`
	Code     string `json:"code"`
}

// ParseProblem parses a raw questionData response. The question subtree is
// retained verbatim as the problem's statement payload so later invocations
// can re-derive snippets and sample input without a network call.
func (p *Parser) ParseProblem(raw []byte) (model.Problem, error) {
	var resp struct {
		Data struct {
			Question json.RawMessage `json:"question"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return model.Problem{}, fmt.Errorf("decode question payload: %w: %w", driven.ErrProtocol, err)
	}
	if len(resp.Data.Question) == 0 || string(resp.Data.Question) == "null" {
		return model.Problem{}, fmt.Errorf("payload has no question: %w", driven.ErrProtocol)
	}

	var q question
	if err := json.Unmarshal(resp.Data.Question, &q); err != nil {
		return model.Problem{}, fmt.Errorf("decode question fields: %w: %w", driven.ErrProtocol, err)
	}

	id, err := strconv.ParseInt(q.QuestionID, 10, 64)
	if err != nil || q.TitleSlug == "" {
		return model.Problem{}, fmt.Errorf("question %q has no usable id: %w", q.TitleSlug, driven.ErrProtocol)
	}
	// Some problems carry non-numeric frontend ids; fall back to the real id.
	frontendID, err := strconv.ParseInt(q.QuestionFrontendID, 10, 64)
	if err != nil {
		frontendID = id
	}

	tags := make([]string, 0, len(q.TopicTags))
	for _, t := range q.TopicTags {
		tags = append(tags, t.Slug)
	}

	return model.Problem{
		ID:         id,
		FrontendID: frontendID,
		Slug:       q.TitleSlug,
		Title:      q.Title,
		Difficulty: model.Difficulty(strings.ToLower(q.Difficulty)),
		Category:   strings.ToLower(q.CategoryTitle),
		Percent:    acceptanceRate(q.Stats),
		Locked:     q.IsPaidOnly,
		Status:     q.Status,
		Statement:  string(resp.Data.Question),
		Tags:       tags,
	}, nil
}

// acceptanceRate extracts the numeric acceptance percentage from the stats
// blob, which is itself a JSON string. Missing or malformed stats are not a
// protocol error; the rate just reads as zero.
func acceptanceRate(stats string) float64 {
	var s struct {
		ACRate string `json:"acRate"`
	}
	if err := json.Unmarshal([]byte(stats), &s); err != nil {
		return 0
	}
	rate, err := strconv.ParseFloat(strings.TrimSuffix(s.ACRate, "%"), 64)
	if err != nil {
		return 0
	}
	return rate
}

// StatementText implements the port method via the package function.
func (p *Parser) StatementText(prob *model.Problem) (string, error) {
	return StatementText(prob)
}

// Snippet implements the port method via the package function.
func (p *Parser) Snippet(prob *model.Problem, langSlug string) (string, error) {
	return CodeSnippet(prob, langSlug)
}

// SampleInput implements the port method via the package function.
func (p *Parser) SampleInput(prob *model.Problem) (string, error) {
	return SampleTestCase(prob)
}

// statementPolicy strips every tag from statement HTML for terminal display.
var statementPolicy = bluemonday.StrictPolicy()

// StatementText renders a cached problem's statement HTML as plain text.
func StatementText(p *model.Problem) (string, error) {
	q, err := decodeStatement(p)
	if err != nil {
		return "", err
	}
	text := statementPolicy.Sanitize(q.Content)
	return strings.TrimSpace(html.UnescapeString(text)), nil
}

// CodeSnippet returns the starter code for the given language slug.
func CodeSnippet(p *model.Problem, langSlug string) (string, error) {
	q, err := decodeStatement(p)
	if err != nil {
		return "", err
	}
	for _, s := range q.CodeSnippets {
		if s.LangSlug == langSlug {
			return s.Code, nil
		}
	}
	return "", fmt.Errorf("problem %q has no snippet for language %q", p.Slug, langSlug)
}

// SampleTestCase returns the problem's sample input.
func SampleTestCase(p *model.Problem) (string, error) {
	q, err := decodeStatement(p)
	if err != nil {
		return "", err
	}
	return q.SampleTestCase, nil
}

func decodeStatement(p *model.Problem) (*question, error) {
	if p.Statement == "" {
		return nil, fmt.Errorf("problem %q has no cached statement", p.Slug)
	}
	var q question
	if err := json.Unmarshal([]byte(p.Statement), &q); err != nil {
		return nil, fmt.Errorf("decode cached statement for %q: %w", p.Slug, err)
	}
	return &q, nil
}

// listResponse mirrors /api/problems/<category>.
type listResponse struct {
	StatStatusPairs []struct {
		Stat struct {
			QuestionID       int64   `json:"question_id"`
			FrontendID       int64   `json:"frontend_question_id"`
			Title            string  `json:"question__title"`
			TitleSlug        string  `json:"question__title_slug"`
			TotalAccepted    float64 `json:"total_acs"`
			TotalSubmissions float64 `json:"total_submitted"`
		} `json:"stat"`
		Status     string `json:"status"`
		Difficulty struct {
			Level int `json:"level"`
		} `json:"difficulty"`
		PaidOnly bool `json:"paid_only"`
		IsFavor  bool `json:"is_favor"`
	} `json:"stat_status_pairs"`
}

// parseProblemList parses a category listing into summary records. Summaries
// carry no statement payload.
func parseProblemList(raw []byte, category string) ([]model.Problem, error) {
	var resp listResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode problem list: %w: %w", driven.ErrProtocol, err)
	}
	if resp.StatStatusPairs == nil {
		return nil, fmt.Errorf("problem list has no entries: %w", driven.ErrProtocol)
	}

	problems := make([]model.Problem, 0, len(resp.StatStatusPairs))
	for _, pair := range resp.StatStatusPairs {
		percent := 0.0
		if pair.Stat.TotalSubmissions > 0 {
			percent = pair.Stat.TotalAccepted / pair.Stat.TotalSubmissions * 100
		}
		problems = append(problems, model.Problem{
			ID:         pair.Stat.QuestionID,
			FrontendID: pair.Stat.FrontendID,
			Slug:       pair.Stat.TitleSlug,
			Title:      pair.Stat.Title,
			Difficulty: model.DifficultyFromLevel(pair.Difficulty.Level),
			Category:   category,
			Percent:    percent,
			Locked:     pair.PaidOnly,
			Starred:    pair.IsFavor,
			Status:     pair.Status,
		})
	}

	return problems, nil
}
