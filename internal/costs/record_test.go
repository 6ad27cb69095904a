package costs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"data/foo.tsp", "foo.tsp"},
		{"foo.tsp", "foo.tsp"},
		{"data/sub/bar.tsp", "sub/bar.tsp"},
		{"mydata/foo.tsp", "mydata/foo.tsp"},
		{"foo/data/x.tsp", "foo/data/x.tsp"},
		{"data/", ""},
		{"", ""},
	}

	for _, tt := range tests {
		got := NormalizeFilename(tt.in)
		if got != tt.want {
			t.Errorf("NormalizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if again := NormalizeFilename(got); again != got {
			t.Errorf("NormalizeFilename not idempotent for %q: %q then %q", tt.in, got, again)
		}
	}
}

func TestNormalizeFilename_StripsOnce(t *testing.T) {
	if got := NormalizeFilename("data/data/foo.tsp"); got != "data/foo.tsp" {
		t.Errorf("expected a single prefix removed, got %q", got)
	}
}

func TestRecordNormalized_LeavesCostsUntouched(t *testing.T) {
	r := fooRecord()
	n := r.Normalized()
	if n.Filename != "foo.tsp" {
		t.Errorf("expected foo.tsp, got %s", n.Filename)
	}
	if r.Filename != "data/foo.tsp" {
		t.Errorf("original record mutated: %s", r.Filename)
	}
	n.Filename = r.Filename
	if diff := cmp.Diff(r, n); diff != "" {
		t.Errorf("costs changed (-want +got):\n%s", diff)
	}
}

func TestRecordConstructive(t *testing.T) {
	want := [Rounds]float64{120.5, 100.2, 95.0}
	if got := fooRecord().Constructive(); got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestDatasetAll_Restartable(t *testing.T) {
	a, b := fooRecord(), fooRecord()
	b.Filename = "data/bar.tsp"
	ds := NewDataset("x.csv", []Record{a, b})

	for pass := 0; pass < 2; pass++ {
		var got []string
		for i, r := range ds.All() {
			if i != len(got) {
				t.Fatalf("pass %d: unexpected index %d", pass, i)
			}
			got = append(got, r.Filename)
		}
		if diff := cmp.Diff([]string{"data/foo.tsp", "data/bar.tsp"}, got); diff != "" {
			t.Errorf("pass %d mismatch (-want +got):\n%s", pass, diff)
		}
	}
}

func TestDatasetAll_StopsEarly(t *testing.T) {
	ds := NewDataset("x.csv", []Record{fooRecord(), fooRecord(), fooRecord()})
	n := 0
	for range ds.All() {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("expected to stop after 2, got %d", n)
	}
}

func TestDatasetNormalize(t *testing.T) {
	ds := NewDataset("x.csv", []Record{fooRecord()})
	norm := ds.Normalize()

	if got := norm.Filenames()[0]; got != "foo.tsp" {
		t.Errorf("expected foo.tsp, got %s", got)
	}
	if got := ds.Filenames()[0]; got != "data/foo.tsp" {
		t.Errorf("source dataset mutated: %s", got)
	}
	if twice := norm.Normalize().Filenames()[0]; twice != "foo.tsp" {
		t.Errorf("normalize not idempotent: %s", twice)
	}
}
