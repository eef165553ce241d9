package deck

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseRange expands a range expression like "1-3,5" into an ordered list of
// slide numbers. An empty expression or "all" selects every slide. "last"
// selects the final slide.
func ParseRange(expr string, total int) ([]int, error) {
	if total <= 0 {
		return nil, fmt.Errorf("deck has no slides")
	}

	expr = strings.TrimSpace(expr)
	if expr == "" || expr == "all" {
		pages := make([]int, total)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages, nil
	}
	if expr == "last" {
		return []int{total}, nil
	}

	var pages []int
	for _, token := range strings.Split(expr, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		if from, to, ok := strings.Cut(token, "-"); ok {
			lo, err := parsePageNo(from, total)
			if err != nil {
				return nil, err
			}
			hi := total
			if strings.TrimSpace(to) != "" {
				hi, err = parsePageNo(to, total)
				if err != nil {
					return nil, err
				}
			}
			if hi < lo {
				return nil, fmt.Errorf("invalid range %q: end before start", token)
			}
			for n := lo; n <= hi; n++ {
				pages = append(pages, n)
			}
			continue
		}

		n, err := parsePageNo(token, total)
		if err != nil {
			return nil, err
		}
		pages = append(pages, n)
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("range %q selects no slides", expr)
	}
	return pages, nil
}

func parsePageNo(s string, total int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid slide number %q", strings.TrimSpace(s))
	}
	if n < 1 || n > total {
		return 0, fmt.Errorf("slide number %d out of range 1-%d", n, total)
	}
	return n, nil
}

// IsContiguous reports whether pages form an arithmetic progression of step 1.
func IsContiguous(pages []int) bool {
	for i := 1; i < len(pages); i++ {
		if pages[i] != pages[i-1]+1 {
			return false
		}
	}
	return len(pages) > 0
}
