package deck

import (
	"reflect"
	"testing"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name  string
		expr  string
		total int
		want  []int
	}{
		{"empty selects all", "", 3, []int{1, 2, 3}},
		{"all keyword", "all", 3, []int{1, 2, 3}},
		{"last keyword", "last", 5, []int{5}},
		{"single page", "2", 5, []int{2}},
		{"closed range", "1-3", 5, []int{1, 2, 3}},
		{"open range", "3-", 5, []int{3, 4, 5}},
		{"mixed list", "1-2,4", 5, []int{1, 2, 4}},
		{"spaces tolerated", " 1 - 2 , 4 ", 5, []int{1, 2, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRange(tt.expr, tt.total)
			if err != nil {
				t.Fatalf("ParseRange(%q, %d): %v", tt.expr, tt.total, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseRange(%q, %d) = %v, want %v", tt.expr, tt.total, got, tt.want)
			}
		})
	}
}

func TestParseRange_Invalid(t *testing.T) {
	invalid := []struct {
		expr  string
		total int
	}{
		{"0", 3},
		{"4", 3},
		{"2-1", 3},
		{"abc", 3},
		{"1-9", 3},
	}

	for _, tt := range invalid {
		if _, err := ParseRange(tt.expr, tt.total); err == nil {
			t.Errorf("ParseRange(%q, %d): expected error", tt.expr, tt.total)
		}
	}
}

func TestIsContiguous(t *testing.T) {
	tests := []struct {
		name  string
		pages []int
		want  bool
	}{
		{"empty", nil, false},
		{"single", []int{3}, true},
		{"run", []int{2, 3, 4}, true},
		{"gap", []int{1, 2, 4}, false},
		{"descending", []int{3, 2}, false},
	}

	for _, tt := range tests {
		if got := IsContiguous(tt.pages); got != tt.want {
			t.Errorf("%s: IsContiguous(%v) = %v, want %v", tt.name, tt.pages, got, tt.want)
		}
	}
}
