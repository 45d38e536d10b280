package check

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/http"

	"github.com/getcalcd/calcd/pkg/client"
)

// wantGreeting is the exact greeting body the root route must return.
var wantGreeting = map[string]string{"Hello": "World"}

// Runner executes contract cases against a service.
//
// The default mode evaluates every case independently, so one failure never
// hides the rest. Fail-fast mode reproduces the first-generation harness:
// it halts the run at the first failing case.
type Runner struct {
	client   *client.Client
	failFast bool
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithFailFast makes the runner halt at the first failing case.
func WithFailFast() RunnerOption {
	return func(r *Runner) {
		r.failFast = true
	}
}

// NewRunner creates a Runner that checks the service behind c.
func NewRunner(c *client.Client, opts ...RunnerOption) *Runner {
	r := &Runner{client: c}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run evaluates the cases in order and returns one Result per evaluated
// case. Assertion mismatches are recorded per case; a connection-level
// failure (service unreachable) is fatal and aborts the run with an error.
// There are no retries.
func (r *Runner) Run(ctx context.Context, cases []Case) ([]Result, error) {
	results := make([]Result, 0, len(cases))

	for _, tc := range cases {
		failure, err := r.verify(ctx, tc)
		if err != nil {
			return results, fmt.Errorf("service unreachable checking %q: %w", tc.Description, err)
		}

		results = append(results, Result{Case: tc, Failure: failure})
		if failure != "" && r.failFast {
			break
		}
	}

	return results, nil
}

// verify evaluates one case. The returned string describes an assertion
// failure; the returned error is reserved for transport-level failures.
func (r *Runner) verify(ctx context.Context, tc Case) (string, error) {
	switch {
	case tc.WantGreeting:
		greeting, err := r.client.Greeting(ctx)
		if err != nil {
			return "", err
		}
		if !maps.Equal(greeting, wantGreeting) {
			return fmt.Sprintf("got greeting %v, want %v", greeting, wantGreeting), nil
		}
		return "", nil

	case tc.WantClientError:
		status, err := r.client.GetJSON(ctx, tc.Path, nil)
		if err == nil {
			return fmt.Sprintf("got status %d, want a client error", status), nil
		}
		var apiErr *client.APIError
		if !errors.As(err, &apiErr) {
			return "", err // transport failure
		}
		if apiErr.Status < http.StatusBadRequest || apiErr.Status >= http.StatusInternalServerError {
			return fmt.Sprintf("got status %d, want a 4xx client error", apiErr.Status), nil
		}
		return "", nil

	default:
		var body struct {
			Result int64 `json:"result"`
		}
		_, err := r.client.GetJSON(ctx, tc.Path, &body)
		if err != nil {
			var apiErr *client.APIError
			if errors.As(err, &apiErr) {
				return fmt.Sprintf("got status %d (%s), want result %d", apiErr.Status, apiErr.Message, tc.Expected), nil
			}
			return "", err
		}
		if body.Result != tc.Expected {
			return fmt.Sprintf("got result %d, want %d", body.Result, tc.Expected), nil
		}
		return "", nil
	}
}
