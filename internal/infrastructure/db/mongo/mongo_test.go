package mongo

import (
	"context"
	"testing"
	"time"
)

func TestConnect_RequiresDatabase(t *testing.T) {
	if _, _, err := Connect(context.Background(), Config{URI: "mongodb://localhost:27017"}); err == nil {
		t.Fatalf("expected error for missing database name")
	}
}

func TestUnixMilliToTime(t *testing.T) {
	if !unixMilliToTime(0).IsZero() {
		t.Fatalf("expected zero time for 0")
	}
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	if got := unixMilliToTime(ts.UnixMilli()); !got.Equal(ts) {
		t.Fatalf("expected %v, got %v", ts, got)
	}
}
