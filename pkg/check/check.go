// Package check verifies a running calcd service against its HTTP contract.
//
// The contract is a fixed, read-only table of cases defined at startup.
// Each case names the request path, the expected outcome, and a
// human-readable description used in failure reports.
package check

// Case is one contract check: issue a GET to Path and compare the outcome.
//
// Exactly one of the three expectations applies: by default the response
// must be a 200 whose "result" field equals Expected; WantGreeting compares
// the greeting mapping instead; WantClientError passes when the service
// answers with a 4xx status.
type Case struct {
	Path        string
	Expected    int64
	Description string

	WantGreeting    bool
	WantClientError bool
}

// DefaultCases returns the fixed contract table. The slice is rebuilt on
// every call; the table itself is never mutated.
func DefaultCases() []Case {
	return []Case{
		{Path: "/", WantGreeting: true, Description: "root greeting"},
		{Path: "/add/2/2", Expected: 4, Description: "addition of 2 and 2"},
		{Path: "/subtract/5/3", Expected: 2, Description: "subtraction of 3 from 5"},
		{Path: "/multiply/2/3", Expected: 6, Description: "multiplication of 2 and 3"},
		{Path: "/add/0/0", Expected: 0, Description: "addition boundary at zero"},
		{Path: "/subtract/0/0", Expected: 0, Description: "subtraction boundary at zero"},
		{Path: "/multiply/0/0", Expected: 0, Description: "multiplication boundary at zero"},
		{Path: "/subtract/3/5", Expected: -2, Description: "subtraction with negative result"},
		{Path: "/add/foo/2", WantClientError: true, Description: "non-integer operand rejected"},
	}
}

// Result is the outcome of one case.
type Result struct {
	Case    Case
	Failure string // empty when the case passed
}

// Passed reports whether the case passed.
func (r Result) Passed() bool {
	return r.Failure == ""
}
