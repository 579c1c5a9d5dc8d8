package pagination

import "testing"

func TestWindowCumulativeBounds(t *testing.T) {
	total := 47
	for page := 0; page < 5; page++ {
		_, end := Window(total, page, 15)
		want := (page + 1) * 15
		if want > total {
			want = total
		}
		if end != want {
			t.Fatalf("page %d: expected end %d, got %d", page, want, end)
		}
	}
}

func TestWindowNeverDuplicates(t *testing.T) {
	total := 33
	seen := map[int]bool{}
	prevEnd := 0
	for page := 0; page < 4; page++ {
		start, end := Window(total, page, 15)
		if start != 0 {
			t.Fatalf("window must start at 0, got %d", start)
		}
		for i := prevEnd; i < end; i++ {
			if seen[i] {
				t.Fatalf("index %d rendered twice", i)
			}
			seen[i] = true
		}
		prevEnd = end
	}
	if len(seen) != total {
		t.Fatalf("expected %d distinct items, got %d", total, len(seen))
	}
}

func TestHasMore(t *testing.T) {
	if !HasMore(16, 0, 15) {
		t.Fatal("16 items should have a second page")
	}
	if HasMore(15, 0, 15) {
		t.Fatal("15 items fit on one page")
	}
	if HasMore(16, 1, 15) {
		t.Fatal("page 1 exhausts 16 items")
	}
}

func TestNormalize(t *testing.T) {
	if NormalizeSize(0) != DefaultPageSize {
		t.Fatal("zero size should take the default")
	}
	if NormalizeSize(1000) != MaxPageSize {
		t.Fatal("oversized request should be capped")
	}
	if NormalizePage(-3) != 0 {
		t.Fatal("negative page should clamp to 0")
	}
}
