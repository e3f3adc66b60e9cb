package reconcile

import (
	"reflect"
	"sort"
	"strings"

	"curriculum-kit/internal/domain"
)

// IDChanges lists ids per kind of change. Every slice is sorted.
type IDChanges struct {
	Created []string `json:"created"`
	Updated []string `json:"updated"`
	Deleted []string `json:"deleted"`
}

func (c IDChanges) Count() int {
	return len(c.Created) + len(c.Updated) + len(c.Deleted)
}

type Changes struct {
	Users       IDChanges `json:"users"`
	Curriculums IDChanges `json:"curriculums"`
}

func (c Changes) Empty() bool {
	return c.Users.Count() == 0 && c.Curriculums.Count() == 0
}

// Diff compares two snapshots by id.
// Returns:
// - created: present in next but not in prev
// - updated: present in both with any field changed (module order included)
// - deleted: present in prev but not in next
//
// Records with a blank id are skipped. With duplicate ids the last record wins.
// A nil list and an empty list compare equal.
func Diff(prev, next domain.SavedContent) Changes {
	return Changes{
		Users: diffByID(
			indexUsers(prev.Users),
			indexUsers(next.Users),
			func(a, b domain.User) bool { return a == b },
		),
		Curriculums: diffByID(
			indexCurriculums(prev.Curriculums),
			indexCurriculums(next.Curriculums),
			func(a, b domain.Curriculum) bool { return reflect.DeepEqual(a.Normalize(), b.Normalize()) },
		),
	}
}

// Select returns the part of next that Diff reported as created or updated,
// in next's order. Users referenced by a selected curriculum are kept too.
func Select(next domain.SavedContent, ch Changes) domain.SavedContent {
	wantC := toSet(ch.Curriculums.Created, ch.Curriculums.Updated)
	wantU := toSet(ch.Users.Created, ch.Users.Updated)

	out := domain.SavedContent{
		Curriculums: []domain.Curriculum{},
		Users:       []domain.User{},
	}
	for _, c := range next.Curriculums {
		if wantC[strings.TrimSpace(c.ID)] {
			out.Curriculums = append(out.Curriculums, c)
			wantU[strings.TrimSpace(c.UserID)] = true
		}
	}
	for _, u := range next.Users {
		if wantU[strings.TrimSpace(u.ID)] {
			out.Users = append(out.Users, u)
		}
	}
	return out
}

func diffByID[T any](prev, next map[string]T, equal func(a, b T) bool) IDChanges {
	out := IDChanges{Created: []string{}, Updated: []string{}, Deleted: []string{}}

	for id, n := range next {
		p, ok := prev[id]
		if !ok {
			out.Created = append(out.Created, id)
			continue
		}
		if !equal(p, n) {
			out.Updated = append(out.Updated, id)
		}
	}
	for id := range prev {
		if _, ok := next[id]; !ok {
			out.Deleted = append(out.Deleted, id)
		}
	}

	sort.Strings(out.Created)
	sort.Strings(out.Updated)
	sort.Strings(out.Deleted)
	return out
}

func indexUsers(in []domain.User) map[string]domain.User {
	out := make(map[string]domain.User, len(in))
	for _, u := range in {
		id := strings.TrimSpace(u.ID)
		if id == "" {
			continue
		}
		out[id] = u
	}
	return out
}

func indexCurriculums(in []domain.Curriculum) map[string]domain.Curriculum {
	out := make(map[string]domain.Curriculum, len(in))
	for _, c := range in {
		id := strings.TrimSpace(c.ID)
		if id == "" {
			continue
		}
		out[id] = c
	}
	return out
}

func toSet(lists ...[]string) map[string]bool {
	out := map[string]bool{}
	for _, l := range lists {
		for _, id := range l {
			out[id] = true
		}
	}
	return out
}
