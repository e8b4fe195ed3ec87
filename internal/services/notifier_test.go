package services

import (
	"testing"

	"forumx/internal/models"
)

func TestShouldNotify(t *testing.T) {
	cases := []struct {
		name      string
		recipient uint
		sender    uint
		typ       models.NotificationType
		want      bool
	}{
		{"comment to other user", 1, 2, models.NotificationTypeComment, true},
		{"comment on own post", 1, 1, models.NotificationTypeComment, false},
		{"request pending to other", 3, 4, models.NotificationTypeRqPending, true},
		{"request pending to self", 3, 3, models.NotificationTypeRqPending, false},
		{"request finish to self", 5, 5, models.NotificationTypeRqFinish, false},
		{"system to self still delivered", 6, 6, models.NotificationTypeSystem, true},
		{"system to other", 6, 7, models.NotificationTypeSystem, true},
	}
	for _, tc := range cases {
		if got := ShouldNotify(tc.recipient, tc.sender, tc.typ); got != tc.want {
			t.Errorf("%s: ShouldNotify = %v, want %v", tc.name, got, tc.want)
		}
	}
}
