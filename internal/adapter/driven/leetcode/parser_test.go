package leetcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/ojcli/internal/domain/model"
	"github.com/ericfisherdev/ojcli/internal/domain/port/driven"
)

const questionPayload = `{
	"data": {
		"question": {
			"questionId": "1",
			"questionFrontendId": "1",
			"title": "Two Sum",
			"titleSlug": "two-sum",
			"difficulty": "Easy",
			"content": "<p>Given an array of integers <code>nums</code>&hellip;</p>",
			"stats": "{\"acRate\": \"48.5%\"}",
			"categoryTitle": "Algorithms",
			"isPaidOnly": false,
			"status": "notac",
			"sampleTestCase": "[2,7,11,15]\n9",
			"topicTags": [{"slug": "array"}, {"slug": "hash-table"}],
			"codeSnippets": [
				{"lang": "Go", "langSlug": "golang", "code": "func twoSum(nums []int, target int) []int {\n}"}
			]
		}
	}
}`

func TestParser_ParseProblem(t *testing.T) {
	p, err := NewParser().ParseProblem([]byte(questionPayload))
	require.NoError(t, err)

	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "two-sum", p.Slug)
	assert.Equal(t, "Two Sum", p.Title)
	assert.Equal(t, model.DifficultyEasy, p.Difficulty)
	assert.Equal(t, "algorithms", p.Category)
	assert.Equal(t, 48.5, p.Percent)
	assert.Equal(t, []string{"array", "hash-table"}, p.Tags)
	assert.NotEmpty(t, p.Statement)
}

func TestParser_MalformedPayloadIsProtocolError(t *testing.T) {
	cases := map[string]string{
		"not json":        `<html>maintenance page</html>`,
		"null question":   `{"data": {"question": null}}`,
		"missing id":      `{"data": {"question": {"titleSlug": "x"}}}`,
		"non-numeric id":  `{"data": {"question": {"questionId": "abc", "titleSlug": "x"}}}`,
		"empty object":    `{}`,
		"wrong structure": `{"data": {"problems": []}}`,
	}

	parser := NewParser()
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parser.ParseProblem([]byte(payload))
			assert.ErrorIs(t, err, driven.ErrProtocol)
		})
	}
}

func TestStatementText_StripsHTML(t *testing.T) {
	p, err := NewParser().ParseProblem([]byte(questionPayload))
	require.NoError(t, err)

	text, err := StatementText(&p)
	require.NoError(t, err)
	assert.Equal(t, "Given an array of integers nums…", text)
}

func TestCodeSnippet(t *testing.T) {
	p, err := NewParser().ParseProblem([]byte(questionPayload))
	require.NoError(t, err)

	code, err := CodeSnippet(&p, "golang")
	require.NoError(t, err)
	assert.Contains(t, code, "func twoSum")

	_, err = CodeSnippet(&p, "cobol")
	assert.Error(t, err)
}

func TestSampleTestCase(t *testing.T) {
	p, err := NewParser().ParseProblem([]byte(questionPayload))
	require.NoError(t, err)

	sample, err := SampleTestCase(&p)
	require.NoError(t, err)
	assert.Equal(t, "[2,7,11,15]\n9", sample)
}

func TestParseProblemList(t *testing.T) {
	raw := `{
		"stat_status_pairs": [
			{
				"stat": {
					"question_id": 1,
					"frontend_question_id": 1,
					"question__title": "Two Sum",
					"question__title_slug": "two-sum",
					"total_acs": 97,
					"total_submitted": 200
				},
				"status": "ac",
				"difficulty": {"level": 1},
				"paid_only": false,
				"is_favor": true
			}
		]
	}`

	problems, err := parseProblemList([]byte(raw), "algorithms")
	require.NoError(t, err)
	require.Len(t, problems, 1)

	p := problems[0]
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "two-sum", p.Slug)
	assert.Equal(t, model.DifficultyEasy, p.Difficulty)
	assert.InDelta(t, 48.5, p.Percent, 0.01)
	assert.True(t, p.Starred)
	assert.Empty(t, p.Statement)
}

func TestParseProblemList_Malformed(t *testing.T) {
	_, err := parseProblemList([]byte(`{"unexpected": true}`), "algorithms")
	assert.ErrorIs(t, err, driven.ErrProtocol)
}
