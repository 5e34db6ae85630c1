// Package committer collects Spanner mutations into a plan and applies them
// in one call.
//
// Writers build mutations through the m_* model facades, add them to a
// CommitPlan, and hand the plan to a Committer:
//
//	plan := committer.NewPlan()
//	plan.Add(categories.InsertMut(row))
//	plan.AddMultiple(assignmentMuts)
//	return c.Apply(ctx, plan)
//
// Plans larger than a single Spanner commit allows are split with
// ApplyInBatches; each batch is then atomic on its own.
package committer

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
)

// DefaultBatchSize keeps each commit well below Spanner's per-commit mutation limit.
const DefaultBatchSize = 500

// CommitPlan is a typed wrapper around Spanner mutations.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add adds a mutation to the plan.
// Nil mutations are silently ignored for convenience.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// AddMultiple adds multiple mutations to the plan.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// Batches splits the plan into consecutive chunks of at most size mutations.
// A non-positive size yields DefaultBatchSize chunks.
func (cp *CommitPlan) Batches(size int) [][]*spanner.Mutation {
	if size <= 0 {
		size = DefaultBatchSize
	}

	var batches [][]*spanner.Mutation
	for start := 0; start < len(cp.mutations); start += size {
		end := min(start+size, len(cp.mutations))
		batches = append(batches, cp.mutations[start:end])
	}
	return batches
}

// Committer provides transaction execution for CommitPlans.
type Committer struct {
	client *spanner.Client
}

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply executes the CommitPlan atomically within a Spanner transaction.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil // Nothing to commit
	}

	_, err := c.client.Apply(ctx, plan.Mutations())
	if err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}

	return nil
}

// ApplyInBatches commits the plan in chunks of at most size mutations.
// It stops at the first failing batch; earlier batches stay committed.
func (c *Committer) ApplyInBatches(ctx context.Context, plan *CommitPlan, size int) error {
	for i, batch := range plan.Batches(size) {
		if _, err := c.client.Apply(ctx, batch); err != nil {
			return fmt.Errorf("failed to apply batch %d (%d mutations): %w", i+1, len(batch), err)
		}
	}
	return nil
}
