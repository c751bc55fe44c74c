package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matzehuels/edgecross/pkg/distribution"
	"github.com/matzehuels/edgecross/pkg/metric"
)

func testResult() *metric.Result {
	d, _ := distribution.Build([]int{0, 1, 1}, 1)
	return &metric.Result{
		Nodes:        4,
		Edges:        3,
		Kind:         "ring",
		Strategy:     "sweep",
		Total:        1,
		Distribution: d,
	}
}

func TestNewRecord(t *testing.T) {
	rec := NewRecord("abc", testResult())
	if !ValidID(rec.ID) {
		t.Errorf("ID %q is not a valid record id", rec.ID)
	}
	if rec.DocHash != "abc" || rec.Total != 1 || rec.Kind != "ring" || rec.Average != 1 {
		t.Errorf("record = %+v", rec)
	}
	if len(rec.CDF) != 2 || rec.CDF[1] != 1 {
		t.Errorf("CDF = %v", rec.CDF)
	}
	if NewRecord("abc", testResult()).ID == rec.ID {
		t.Error("records should get distinct ids")
	}
}

func TestValidID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"6ba7b810-9dad-11d1-80b4-00c04fd430c8", true},
		{"", false},
		{"not-a-uuid", false},
	}
	for _, tt := range tests {
		if got := ValidID(tt.id); got != tt.want {
			t.Errorf("ValidID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		rec := NewRecord("doc", testResult())
		rec.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := s.Save(ctx, rec); err != nil {
			t.Fatalf("Save: %v", err)
		}
		ids = append(ids, rec.ID)
	}

	got, err := s.Get(ctx, ids[1])
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != ids[1] {
		t.Errorf("Get returned %s, want %s", got.ID, ids[1])
	}

	if err := s.Save(ctx, got); err == nil {
		t.Error("saving a duplicate id should fail")
	}

	list, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID != ids[2] || list[1].ID != ids[1] {
		t.Errorf("List(2) = %v, want newest first", list)
	}

	all, _ := s.List(ctx, 0)
	if len(all) != 3 {
		t.Errorf("List(0) returned %d records, want 3", len(all))
	}

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}
