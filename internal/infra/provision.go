// Package infra provisions the application's DynamoDB table.
//
// Provisioning is idempotent: the table is created only when it is absent
// from the region's table listing. Nothing here waits for the table to become
// ACTIVE, retries failed calls, or guards against two concurrent runs both
// observing the table as missing; in that case the service rejects the second
// create request and the run reports a failure.
package infra

import "context"

// Outcome is the variant of a provisioning Result.
type Outcome string

// Provisioning outcomes.
const (
	OutcomeAlreadyExists Outcome = "ALREADY_EXISTS"
	OutcomeCreated       Outcome = "CREATED"
	OutcomeFailed        Outcome = "FAILED"
)

// Result contains the result of a provisioning run.
type Result struct {
	Outcome     Outcome
	TableName   string
	Region      string
	TableARN    string // Set when Outcome is OutcomeCreated
	TableStatus string // Status reported by the create response, e.g. CREATING
	Message     string // Set when Outcome is OutcomeFailed
}

func (r *Result) fail(err error) *Result {
	r.Outcome = OutcomeFailed
	r.Message = err.Error()
	return r
}

// Provisioner defines the interface for table provisioning.
type Provisioner interface {
	// EnsureTable creates the table described by spec unless it already exists.
	// On failure it returns both a Result with OutcomeFailed and the error.
	EnsureTable(ctx context.Context, spec *TableSpec, opts ...EnsureOption) (*Result, error)
	// TableExists reports whether a table with the given name is listed in region.
	TableExists(ctx context.Context, region, tableName string) (bool, error)
}

// EnsureOption customises a single EnsureTable call.
type EnsureOption func(*ensureOptions)

type ensureOptions struct {
	onCreate func(spec *TableSpec)
}

// OnCreate registers a callback invoked right before the create request is issued.
func OnCreate(fn func(spec *TableSpec)) EnsureOption {
	return func(o *ensureOptions) {
		o.onCreate = fn
	}
}

func resolveEnsureOptions(opts []EnsureOption) *ensureOptions {
	o := &ensureOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
