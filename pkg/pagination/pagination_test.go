package pagination

import "testing"

func TestGetOffsetAndLimit(t *testing.T) {
	p := &PageParams{Page: 3, PageSize: 20}
	if p.GetOffset() != 40 {
		t.Fatalf("expected offset 40, got %d", p.GetOffset())
	}
	if p.GetLimit() != 20 {
		t.Fatalf("expected limit 20, got %d", p.GetLimit())
	}
}

func TestNewPageInfo(t *testing.T) {
	info := NewPageInfo(2, 20, 45)
	if info.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", info.TotalPages)
	}
	if !info.HasNext || !info.HasPrev {
		t.Fatalf("page 2 of 3 must have both neighbors")
	}

	last := NewPageInfo(3, 20, 45)
	if last.HasNext {
		t.Fatalf("last page must not have next")
	}

	empty := NewPageInfo(1, 20, 0)
	if empty.TotalPages != 0 || empty.HasNext || empty.HasPrev {
		t.Fatalf("empty result set must have no pages, got %+v", empty)
	}
}
