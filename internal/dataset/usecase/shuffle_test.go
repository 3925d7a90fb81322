package usecase

import (
	"context"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shandysiswandi/tweetprep/internal/dataset/entity"
)

func TestShuffleDefaultKeepsMultiset(t *testing.T) {
	uc := New(Dependency{})
	texts := manyTexts(50)
	original := slices.Clone(texts)

	uc.Shuffle(context.Background(), texts)

	sorted := slices.Clone(texts)
	slices.Sort(sorted)
	if diff := cmp.Diff(original, sorted); diff != "" {
		t.Fatalf("multiset changed (-want +got):\n%s", diff)
	}
}

func TestShuffleDefaultVariesOrder(t *testing.T) {
	uc := New(Dependency{})
	original := manyTexts(50)

	// 50! orderings; ten identity draws in a row means no shuffling happened.
	for i := 0; i < 10; i++ {
		texts := slices.Clone(original)
		uc.Shuffle(context.Background(), texts)
		if !slices.Equal(texts, original) {
			return
		}
	}
	t.Fatalf("shuffle never changed the order")
}

func TestShuffleUsesInjectedFunc(t *testing.T) {
	reporter := &testReporter{}
	reverse := func(n int, swap func(i, j int)) {
		for i := 0; i < n/2; i++ {
			swap(i, n-1-i)
		}
	}
	uc := New(Dependency{Shuffle: reverse, Reporter: reporter})

	texts := []string{"a", "b", "c"}
	uc.Shuffle(context.Background(), texts)

	if diff := cmp.Diff([]string{"c", "b", "a"}, texts); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if evs := reporter.Kinds(entity.EventShuffled); len(evs) != 1 || evs[0].Count != 3 {
		t.Fatalf("unexpected shuffle events: %+v", evs)
	}
}

func TestShuffleFirstPositionIsRoughlyUniform(t *testing.T) {
	uc := New(Dependency{})
	const (
		n      = 4
		trials = 4000
	)

	counts := make(map[string]int, n)
	for i := 0; i < trials; i++ {
		texts := []string{"a", "b", "c", "d"}
		uc.Shuffle(context.Background(), texts)
		counts[texts[0]]++
	}

	// Expected 1000 each; 700 is far outside any plausible deviation.
	for _, k := range []string{"a", "b", "c", "d"} {
		if counts[k] < 700 || counts[k] > 1300 {
			t.Fatalf("value %s led %d of %d shuffles: %v", k, counts[k], trials, counts)
		}
	}
}
