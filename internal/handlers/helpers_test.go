package handlers

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"forumx/internal/middleware"
	"forumx/internal/models"
	"forumx/internal/search"

	"github.com/gin-gonic/gin"
)

func intPtr(v int) *int { return &v }

func TestResolveVote(t *testing.T) {
	cases := []struct {
		name       string
		existing   *int
		requested  int
		wantAction voteAction
		wantMsg    string
	}{
		{"first upvote", nil, 1, voteInsert, "upvoted"},
		{"first downvote", nil, -1, voteInsert, "downvoted"},
		{"repeat upvote removes", intPtr(1), 1, voteRemove, "vote removed"},
		{"repeat downvote removes", intPtr(-1), -1, voteRemove, "vote removed"},
		{"downvote over upvote switches", intPtr(1), -1, voteSwitch, "changed to downvote"},
		{"upvote over downvote switches", intPtr(-1), 1, voteSwitch, "changed to upvote"},
	}
	for _, tc := range cases {
		action, msg := resolveVote(tc.existing, tc.requested)
		if action != tc.wantAction {
			t.Errorf("%s: action = %v, want %v", tc.name, action, tc.wantAction)
		}
		if msg != tc.wantMsg {
			t.Errorf("%s: message = %q, want %q", tc.name, msg, tc.wantMsg)
		}
	}
}

func TestCommentPreview(t *testing.T) {
	if got := commentPreview("short"); got != "short" {
		t.Errorf("Short comment should pass through, got %q", got)
	}
	if got := commentPreview("exactly12chr"); got != "exactly12chr" {
		t.Errorf("Boundary comment should pass through, got %q", got)
	}
	if got := commentPreview("this is a much longer comment"); got != "this is a mu..." {
		t.Errorf("Long comment preview = %q", got)
	}
	// rune-safe truncation
	if got := commentPreview("ααααααααααααα"); got != "αααααααααααα..." {
		t.Errorf("Multibyte preview = %q", got)
	}
}

func TestSplitRemoteURLs(t *testing.T) {
	got := splitRemoteURLs("https://a.example/x.png, ftp://skip.me\nhttp://b.example/y.jpg junk")
	want := []string{"https://a.example/x.png", "http://b.example/y.jpg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitRemoteURLs = %v, want %v", got, want)
	}
	if got := splitRemoteURLs(""); got != nil {
		t.Errorf("Empty input should yield nil, got %v", got)
	}
}

func TestParseForumIDs(t *testing.T) {
	got := parseForumIDs([]string{"3", "abc", "0", "-1", "7"})
	want := []uint{3, 7}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseForumIDs = %v, want %v", got, want)
	}
}

func TestCanViewPost(t *testing.T) {
	owner := &models.User{ID: 1}
	other := &models.User{ID: 2}
	admin := &models.User{ID: 3, IsAdmin: true}

	published := &models.Post{UserID: 1, Status: models.PostPublished}
	draft := &models.Post{UserID: 1, Status: models.PostDraft}
	removed := &models.Post{UserID: 1, Status: models.PostRemoved}

	if !canViewPost(published, nil) {
		t.Error("Published post should be visible to anonymous viewers")
	}
	if canViewPost(draft, nil) {
		t.Error("Draft should be hidden from anonymous viewers")
	}
	if canViewPost(draft, other) {
		t.Error("Draft should be hidden from other users")
	}
	if !canViewPost(draft, owner) {
		t.Error("Draft should be visible to its owner")
	}
	if !canViewPost(draft, admin) {
		t.Error("Draft should be visible to admins")
	}
	if canViewPost(removed, owner) {
		t.Error("Removed post should be hidden even from its owner")
	}
	if canViewPost(removed, admin) {
		t.Error("Removed post should be hidden even from admins")
	}
}

func TestCanEditPost(t *testing.T) {
	post := &models.Post{UserID: 1}
	if canEditPost(post, nil) {
		t.Error("Anonymous caller cannot edit")
	}
	if !canEditPost(post, &models.User{ID: 1}) {
		t.Error("Owner can edit")
	}
	if canEditPost(post, &models.User{ID: 2}) {
		t.Error("Other users cannot edit")
	}
	if !canEditPost(post, &models.User{ID: 2, IsAdmin: true}) {
		t.Error("Admins can edit")
	}
}

func TestGroupForumsByHeader(t *testing.T) {
	forums := []ForumSummary{
		{Forum: models.Forum{Title: "News", Header: "General"}},
		{Forum: models.Forum{Title: "Off topic", Header: ""}},
		{Forum: models.Forum{Title: "Help", Header: "General"}},
		{Forum: models.Forum{Title: "Events", Header: "Community"}},
	}

	groups := GroupForumsByHeader(forums)
	if len(groups) != 3 {
		t.Fatalf("Expected 3 groups, got %d", len(groups))
	}
	// first-seen header order
	if groups[0].Header != "General" || groups[1].Header != "Other" || groups[2].Header != "Community" {
		t.Errorf("Group order = %q, %q, %q", groups[0].Header, groups[1].Header, groups[2].Header)
	}
	if len(groups[0].Forums) != 2 {
		t.Errorf("General should hold 2 forums, got %d", len(groups[0].Forums))
	}
	if groups[0].Forums[1].Title != "Help" {
		t.Errorf("Forums within a group should keep input order")
	}
}

func TestSearchScopesDefault(t *testing.T) {
	got := searchScopes(nil)
	want := []string{search.ScopeTitle, search.ScopeContent}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Absent scope should default to both columns, got %v", got)
	}

	// A bare term search must produce a real text predicate, not an
	// impossible one.
	sql, _ := search.TextClause{Term: "cats", Scopes: searchScopes(nil)}.SQL()
	if sql == "1 = 0" {
		t.Error("Default scopes should never yield the match-nothing predicate")
	}
	if sql != "(title ILIKE ? OR content ILIKE ?)" {
		t.Errorf("Unexpected default-scope sql: %q", sql)
	}
}

func TestSearchScopesExplicitKept(t *testing.T) {
	got := searchScopes([]string{search.ScopeContent})
	if !reflect.DeepEqual(got, []string{search.ScopeContent}) {
		t.Errorf("Explicit scope should pass through, got %v", got)
	}

	// An explicitly supplied but unrecognized scope still matches
	// nothing; only absence triggers the default.
	sql, _ := search.TextClause{Term: "cats", Scopes: searchScopes([]string{"author"})}.SQL()
	if sql != "1 = 0" {
		t.Errorf("Unknown explicit scope should match nothing, got %q", sql)
	}
}

func TestImageSlots(t *testing.T) {
	cases := []struct {
		existing int
		supplied int
		want     int
	}{
		{0, 7, 5}, // fresh post, over-supplied: capped at 5
		{0, 3, 3},
		{0, 5, 5},
		{3, 7, 2}, // partially full: only the free slots
		{4, 1, 1},
		{5, 1, 0}, // at the cap
		{6, 2, 0}, // already over (legacy rows): nothing fits
	}
	for _, tc := range cases {
		if got := imageSlots(tc.existing, tc.supplied); got != tc.want {
			t.Errorf("imageSlots(%d, %d) = %d, want %d", tc.existing, tc.supplied, got, tc.want)
		}
	}
}

func TestImageSlotsTruncatesSources(t *testing.T) {
	sources := make([]imageSource, 7)
	for i := range sources {
		sources[i] = imageSource{remoteURL: "https://example.com/pic.png"}
	}

	kept := sources[:imageSlots(0, len(sources))]
	if len(kept) != models.MaxImagesPerPost {
		t.Errorf("7 supplied images should truncate to %d, got %d", models.MaxImagesPerPost, len(kept))
	}
}

func TestPlaylistToggleBanned(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/playlist/1/toggle", nil)
	c.Set(middleware.CheckUserKey, &models.User{ID: 1, IsBanned: true})

	NewPlaylistHandler().Toggle(c)

	if w.Code != http.StatusForbidden {
		t.Errorf("Banned user toggle should be 403, got %d", w.Code)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total   int64
		perPage int
		want    int
	}{
		{0, 15, 1},
		{1, 15, 1},
		{15, 15, 1},
		{16, 15, 2},
		{45, 15, 3},
	}
	for _, tc := range cases {
		if got := totalPages(tc.total, tc.perPage); got != tc.want {
			t.Errorf("totalPages(%d, %d) = %d, want %d", tc.total, tc.perPage, got, tc.want)
		}
	}
}
