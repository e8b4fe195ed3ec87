package utils

import (
	"testing"
	"time"
)

func TestCacheSetGetDelete(t *testing.T) {
	c := GetCache()

	c.Set("k", "v", time.Minute)
	if got := c.Get("k"); got != "v" {
		t.Errorf("Get = %v, want v", got)
	}

	c.Delete("k")
	if got := c.Get("k"); got != nil {
		t.Errorf("Expected nil after delete, got %v", got)
	}
}

func TestCacheExpiry(t *testing.T) {
	c := GetCache()

	c.Set("expiring", 42, 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	if got := c.Get("expiring"); got != nil {
		t.Errorf("Expected nil after TTL, got %v", got)
	}
}
