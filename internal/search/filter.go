// Package search builds the post search query from typed filter
// clauses instead of concatenated SQL strings. Clauses AND together;
// an empty filter matches every visible post.
package search

import (
	"strings"

	"gorm.io/gorm"
)

// MatchMode controls how a category filter combines its forum ids.
type MatchMode string

const (
	// MatchAny keeps posts linked to at least one of the forums.
	MatchAny MatchMode = "any"
	// MatchAll keeps posts linked to every forum in the set.
	MatchAll MatchMode = "all"
)

// ParseMode maps a query parameter to a MatchMode, defaulting to any.
func ParseMode(s string) MatchMode {
	if s == string(MatchAll) {
		return MatchAll
	}
	return MatchAny
}

// Scope names a post column a text search may run over.
const (
	ScopeTitle   = "title"
	ScopeContent = "content"
)

// Clause is one predicate of the search filter.
type Clause interface {
	// SQL returns the WHERE fragment and its arguments.
	SQL() (string, []interface{})
}

// TextClause matches a substring against the selected scopes, OR-ed
// together. A term with no recognized scope matches nothing.
type TextClause struct {
	Term   string
	Scopes []string
}

func (t TextClause) SQL() (string, []interface{}) {
	pattern := "%" + t.Term + "%"

	var parts []string
	var args []interface{}
	for _, scope := range t.Scopes {
		switch scope {
		case ScopeTitle:
			parts = append(parts, "title ILIKE ?")
			args = append(args, pattern)
		case ScopeContent:
			parts = append(parts, "content ILIKE ?")
			args = append(args, pattern)
		}
	}

	if len(parts) == 0 {
		// A search term with nothing to search over cannot match.
		return "1 = 0", nil
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

// CategoryClause restricts posts by their forum links via the bridge
// table. MatchAll verifies the post carries every id with a
// count-distinct subquery.
type CategoryClause struct {
	ForumIDs []uint
	Mode     MatchMode
}

func (cc CategoryClause) SQL() (string, []interface{}) {
	if cc.Mode == MatchAll {
		return "id IN (SELECT post_id FROM post_categories WHERE forum_id IN ? GROUP BY post_id HAVING COUNT(DISTINCT forum_id) = ?)",
			[]interface{}{cc.ForumIDs, len(cc.ForumIDs)}
	}
	return "id IN (SELECT post_id FROM post_categories WHERE forum_id IN ?)",
		[]interface{}{cc.ForumIDs}
}

// Filter is an ordered set of clauses.
type Filter struct {
	clauses []Clause
}

// WithText adds a text clause unless the term is empty.
func (f *Filter) WithText(term string, scopes []string) *Filter {
	if term != "" {
		f.clauses = append(f.clauses, TextClause{Term: term, Scopes: scopes})
	}
	return f
}

// WithCategories adds a category clause unless the id list is empty.
func (f *Filter) WithCategories(forumIDs []uint, mode MatchMode) *Filter {
	if len(forumIDs) > 0 {
		f.clauses = append(f.clauses, CategoryClause{ForumIDs: forumIDs, Mode: mode})
	}
	return f
}

// Clauses exposes the built clause list.
func (f *Filter) Clauses() []Clause {
	return f.clauses
}

// Apply ANDs every clause onto the query.
func (f *Filter) Apply(tx *gorm.DB) *gorm.DB {
	for _, clause := range f.clauses {
		sql, args := clause.SQL()
		tx = tx.Where(sql, args...)
	}
	return tx
}
