// internal/prompt/prompt_test.go
package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testInput() Input {
	return Input{
		Repository:    "payments-api",
		PRNumber:      "42",
		Diff:          "diff --git a/pay.go b/pay.go\n-old\n+new",
		PRDescription: "Switch refunds to the new ledger",
	}
}

func TestReviewInsights(t *testing.T) {
	query := ReviewInsights(testInput())

	assert.Contains(t, query, `"payments-api"`)
	assert.Contains(t, query, "PR #42")
	assert.Contains(t, query, "diff --git a/pay.go b/pay.go")
	assert.Contains(t, query, "Switch refunds to the new ledger")
	assert.Contains(t, query, "what it could break")
}

func TestReviewInsights_NoDescription(t *testing.T) {
	in := testInput()
	in.PRDescription = ""
	query := ReviewInsights(in)

	assert.NotContains(t, query, "Pull request description")
	assert.Contains(t, query, "diff --git")
}

func TestMobileTestCases(t *testing.T) {
	query := MobileTestCases(testInput())

	assert.Contains(t, query, "payments-api")
	assert.Contains(t, query, "#42")
	assert.Contains(t, query, "at least 20 test cases")
	assert.Contains(t, query, "Switch refunds to the new ledger")

	// The example format is embedded verbatim
	assert.Contains(t, query, "Test Case ID: TC-001")
	assert.Contains(t, query, "Expected Result:")
}

func TestTemplates_AreDeterministic(t *testing.T) {
	in := testInput()
	assert.Equal(t, ReviewInsights(in), ReviewInsights(in))
	assert.Equal(t, MobileTestCases(in), MobileTestCases(in))
}

func TestTemplates_EmptyInput(t *testing.T) {
	for name, tmpl := range map[string]Template{
		"review":    ReviewInsights,
		"testcases": MobileTestCases,
	} {
		t.Run(name, func(t *testing.T) {
			query := tmpl(Input{})
			assert.NotEmpty(t, strings.TrimSpace(query))
		})
	}
}
