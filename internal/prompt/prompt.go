// internal/prompt/prompt.go
package prompt

import (
	"fmt"
	"strings"
)

// Input carries the request fields a template may interpolate.
type Input struct {
	Repository    string
	PRNumber      string
	Diff          string
	PRDescription string
}

// Template turns a normalized request into a single query string.
// Each deployment embeds exactly one template; the choice is made at
// construction time, never per request.
type Template func(Input) string

// ReviewInsights is the generic codebase-analysis template: explain what the
// change touches and what it could break.
func ReviewInsights(in Input) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("You are reviewing a pull request for the repository %q (PR #%s).", in.Repository, in.PRNumber))
	parts = append(parts, "Based on the indexed codebase, explain which parts of the system this change touches and what it could break.")

	if in.PRDescription != "" {
		parts = append(parts, fmt.Sprintf("\nPull request description:\n%s", in.PRDescription))
	}

	parts = append(parts, "\nCode diff:")
	parts = append(parts, in.Diff)

	parts = append(parts, "\nInstructions:")
	parts = append(parts, "- Summarize the intent of the change")
	parts = append(parts, "- List the modules, endpoints, or flows most likely affected")
	parts = append(parts, "- Call out risky or backwards-incompatible edits explicitly")
	parts = append(parts, "- If the diff is empty or unclear, say so rather than guessing")

	return strings.Join(parts, "\n")
}

// MobileTestCases is the mobile-app QA template. It embeds the expected case
// format and asks for at least twenty cases covering the diff.
func MobileTestCases(in Input) string {
	var parts []string

	parts = append(parts, "You are a senior mobile QA engineer. Generate detailed manual test cases for the following pull request.")
	parts = append(parts, fmt.Sprintf("\nRepository: %s", in.Repository))
	parts = append(parts, fmt.Sprintf("Pull request: #%s", in.PRNumber))

	if in.PRDescription != "" {
		parts = append(parts, fmt.Sprintf("\nChange description:\n%s", in.PRDescription))
	}

	parts = append(parts, "\nCode diff:")
	parts = append(parts, in.Diff)

	parts = append(parts, "\nUse the indexed app documentation to ground every case in real screens and flows.")
	parts = append(parts, "Produce at least 20 test cases. Format each one exactly like this example:")
	parts = append(parts, testCaseExample)

	parts = append(parts, "\nRequirements:")
	parts = append(parts, "- Cover happy path, edge cases, and error states for every affected screen")
	parts = append(parts, "- Include at least one case for offline behavior and one for interrupted flows")
	parts = append(parts, "- Steps must be concrete enough for a tester who has never seen the change")

	return strings.Join(parts, "\n")
}

const testCaseExample = `Test Case ID: TC-001
Title: Login succeeds with valid credentials
Preconditions: App installed, user account exists
Steps:
  1. Launch the app
  2. Enter a valid email and password
  3. Tap "Sign In"
Expected Result: Home screen is shown within 3 seconds
Priority: High`
