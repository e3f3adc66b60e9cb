package validate

import (
	"context"
	"errors"
	"fmt"

	"curriculum-kit/internal/concurrency"
	"curriculum-kit/internal/domain"
)

type Options struct {
	Workers int
	// SkipReferences disables the userId -> User.id check, for partial snapshots.
	SkipReferences bool
}

// Report holds per-record results in snapshot order plus cross-record problems.
type Report struct {
	Users       []error
	Curriculums []error
	References  []error
}

func (r Report) OK() bool {
	return r.Err() == nil
}

// Err joins every problem in the report; nil when the snapshot is valid.
func (r Report) Err() error {
	var all []error
	all = append(all, r.Users...)
	all = append(all, r.Curriculums...)
	all = append(all, r.References...)
	return errors.Join(all...)
}

// Count is the number of invalid records plus cross-record problems.
func (r Report) Count() int {
	n := len(r.References)
	for _, err := range r.Users {
		if err != nil {
			n++
		}
	}
	for _, err := range r.Curriculums {
		if err != nil {
			n++
		}
	}
	return n
}

// SavedContent validates every record, then id uniqueness and curriculum ownership.
// It only fails early when ctx is done.
func SavedContent(ctx context.Context, sc domain.SavedContent, opts Options) (Report, error) {
	var rep Report

	_, userErrs := concurrency.Map(ctx, sc.Users, opts.Workers, func(ctx context.Context, _ int, u domain.User) (struct{}, error) {
		return struct{}{}, User(u)
	})
	_, currErrs := concurrency.Map(ctx, sc.Curriculums, opts.Workers, func(ctx context.Context, _ int, c domain.Curriculum) (struct{}, error) {
		return struct{}{}, Curriculum(c)
	})
	if err := ctx.Err(); err != nil {
		return Report{}, fmt.Errorf("validate: %w", err)
	}
	rep.Users = userErrs
	rep.Curriculums = currErrs

	users := make(map[string]bool, len(sc.Users))
	for _, u := range sc.Users {
		if blank(u.ID) {
			continue
		}
		if users[u.ID] {
			rep.References = append(rep.References, fieldErr("user", u.ID, "id", ErrDuplicateID))
		}
		users[u.ID] = true
	}

	seen := make(map[string]bool, len(sc.Curriculums))
	for _, c := range sc.Curriculums {
		if !blank(c.ID) {
			if seen[c.ID] {
				rep.References = append(rep.References, fieldErr("curriculum", c.ID, "id", ErrDuplicateID))
			}
			seen[c.ID] = true
		}
		if opts.SkipReferences || blank(c.UserID) {
			continue
		}
		if !users[c.UserID] {
			rep.References = append(rep.References, fieldErr("curriculum", c.ID, "userId",
				fmt.Errorf("%w: user %q", ErrDanglingReference, c.UserID)))
		}
	}

	return rep, nil
}
