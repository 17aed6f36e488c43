package tostring

import (
	"strings"
	"testing"

	"docxtpl/metrics"
)

// unitMeasurer gives every rune a width of one point, so line limits are
// simply character counts.
type unitMeasurer struct{}

func (unitMeasurer) Measure(s string, _ metrics.Style, _ float64) (float64, error) {
	return float64(len([]rune(s))), nil
}

func TestSplitParagraphByUnderscore(t *testing.T) {
	lines, err := SplitParagraphByUnderscore(
		"one two three four", unitMeasurer{}, metrics.Regular, 11, 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"one two", "three", "four"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
	for i := range lines {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestSplitFirstLineNarrower(t *testing.T) {
	lines, err := SplitParagraphByUnderscore(
		"aaa bbb ccc ddd", unitMeasurer{}, metrics.Regular, 11, 3, 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 {
		t.Fatalf("lines = %q", lines)
	}
	if lines[0] != "aaa" {
		t.Errorf("first line = %q", lines[0])
	}
	if lines[1] != "bbb ccc ddd" {
		t.Errorf("rest = %q", lines[1])
	}
}

func TestSplitSingleOversizedWord(t *testing.T) {
	lines, err := SplitParagraphByUnderscore(
		"supercalifragilistic", unitMeasurer{}, metrics.Regular, 11, 5, 5)
	if err != nil {
		t.Fatal(err)
	}
	// A word wider than the ruler still lands on its own line rather than
	// being cut mid-word.
	if len(lines) != 1 || !strings.Contains(lines[0], "supercalifragilistic") {
		t.Errorf("lines = %q", lines)
	}
}
