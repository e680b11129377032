package audit

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestMemory_RecentNewestFirst(t *testing.T) {
	m := NewMemory(3)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		if err := m.Record(ctx, Entry{Action: ActionUpdate, ProductID: i}); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := m.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Recent() len = %d, want 3", len(got))
	}
	for i, want := range []int{5, 4, 3} {
		if got[i].ProductID != want {
			t.Errorf("Recent()[%d].ProductID = %d, want %d", i, got[i].ProductID, want)
		}
	}
}

func TestMemory_RecentLimit(t *testing.T) {
	m := NewMemory(10)
	ctx := context.Background()
	m.Record(ctx, Entry{ProductID: 1})
	m.Record(ctx, Entry{ProductID: 2})

	got, _ := m.Recent(ctx, 1)
	if len(got) != 1 || got[0].ProductID != 2 {
		t.Errorf("Recent(1) = %+v, want only product 2", got)
	}

	got, _ = m.Recent(ctx, 50)
	if len(got) != 2 {
		t.Errorf("Recent(50) len = %d, want 2", len(got))
	}
}

func TestMemory_Empty(t *testing.T) {
	got, err := NewMemory(4).Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Recent() = %v, want empty", got)
	}
}

func TestStamp(t *testing.T) {
	ctx := WithMetadata(context.Background(), Metadata{
		RequestID: "req-1",
		IPAddress: "10.0.0.7",
		UserAgent: "test-agent",
	})

	e := Stamp(ctx, Entry{Action: ActionCreate})

	if e.ID == uuid.Nil {
		t.Error("Stamp() left ID unset")
	}
	if e.CreatedAt.IsZero() {
		t.Error("Stamp() left CreatedAt unset")
	}
	if e.RequestID != "req-1" || e.IPAddress != "10.0.0.7" || e.UserAgent != "test-agent" {
		t.Errorf("Stamp() metadata = %q %q %q", e.RequestID, e.IPAddress, e.UserAgent)
	}

	fixed := uuid.New()
	if got := Stamp(ctx, Entry{ID: fixed}); got.ID != fixed {
		t.Errorf("Stamp() replaced existing ID")
	}
}
