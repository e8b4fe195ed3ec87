package search

import (
	"reflect"
	"testing"
)

func TestTextClauseBothScopes(t *testing.T) {
	sql, args := TextClause{Term: "cats", Scopes: []string{ScopeTitle, ScopeContent}}.SQL()

	want := "(title ILIKE ? OR content ILIKE ?)"
	if sql != want {
		t.Errorf("Expected %q, got %q", want, sql)
	}
	if !reflect.DeepEqual(args, []interface{}{"%cats%", "%cats%"}) {
		t.Errorf("Unexpected args: %v", args)
	}
}

func TestTextClauseSingleScope(t *testing.T) {
	sql, args := TextClause{Term: "cats", Scopes: []string{ScopeTitle}}.SQL()

	if sql != "(title ILIKE ?)" {
		t.Errorf("Unexpected sql: %q", sql)
	}
	if len(args) != 1 {
		t.Errorf("Expected 1 arg, got %d", len(args))
	}
}

func TestTextClauseNoScopeMatchesNothing(t *testing.T) {
	sql, args := TextClause{Term: "cats", Scopes: nil}.SQL()

	if sql != "1 = 0" {
		t.Errorf("Expected impossible predicate, got %q", sql)
	}
	if len(args) != 0 {
		t.Errorf("Expected no args, got %v", args)
	}
}

func TestTextClauseIgnoresUnknownScope(t *testing.T) {
	sql, _ := TextClause{Term: "x", Scopes: []string{"author", ScopeTitle}}.SQL()
	if sql != "(title ILIKE ?)" {
		t.Errorf("Unknown scope should be dropped, got %q", sql)
	}
}

func TestCategoryClauseAny(t *testing.T) {
	sql, args := CategoryClause{ForumIDs: []uint{1, 3}, Mode: MatchAny}.SQL()

	want := "id IN (SELECT post_id FROM post_categories WHERE forum_id IN ?)"
	if sql != want {
		t.Errorf("Expected %q, got %q", want, sql)
	}
	if !reflect.DeepEqual(args, []interface{}{[]uint{1, 3}}) {
		t.Errorf("Unexpected args: %v", args)
	}
}

func TestCategoryClauseAllCountsDistinct(t *testing.T) {
	sql, args := CategoryClause{ForumIDs: []uint{1, 2, 3}, Mode: MatchAll}.SQL()

	want := "id IN (SELECT post_id FROM post_categories WHERE forum_id IN ? GROUP BY post_id HAVING COUNT(DISTINCT forum_id) = ?)"
	if sql != want {
		t.Errorf("Expected %q, got %q", want, sql)
	}
	// The HAVING count must equal the number of selected forums.
	if args[1] != 3 {
		t.Errorf("Expected distinct count 3, got %v", args[1])
	}
}

func TestFilterSkipsEmptyInputs(t *testing.T) {
	f := (&Filter{}).
		WithText("", []string{ScopeTitle}).
		WithCategories(nil, MatchAll)

	if len(f.Clauses()) != 0 {
		t.Errorf("Empty term and empty category list must add no clauses, got %d", len(f.Clauses()))
	}
}

func TestFilterCombines(t *testing.T) {
	f := (&Filter{}).
		WithText("go", []string{ScopeTitle, ScopeContent}).
		WithCategories([]uint{7}, MatchAny)

	clauses := f.Clauses()
	if len(clauses) != 2 {
		t.Fatalf("Expected 2 clauses, got %d", len(clauses))
	}
	if _, ok := clauses[0].(TextClause); !ok {
		t.Errorf("First clause should be TextClause, got %T", clauses[0])
	}
	if _, ok := clauses[1].(CategoryClause); !ok {
		t.Errorf("Second clause should be CategoryClause, got %T", clauses[1])
	}
}

func TestParseMode(t *testing.T) {
	if ParseMode("all") != MatchAll {
		t.Error("all should parse to MatchAll")
	}
	if ParseMode("any") != MatchAny {
		t.Error("any should parse to MatchAny")
	}
	if ParseMode("") != MatchAny {
		t.Error("empty mode should default to MatchAny")
	}
	if ParseMode("garbage") != MatchAny {
		t.Error("unknown mode should default to MatchAny")
	}
}
