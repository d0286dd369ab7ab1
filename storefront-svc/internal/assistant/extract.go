package assistant

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	digitsPattern = regexp.MustCompile(`\d+`)
	underPattern  = regexp.MustCompile(`under\s*(\d+)`)
)

// quantityIn returns the first run of digits in msg, or 1.
func quantityIn(msg string) int {
	match := digitsPattern.FindString(msg)
	if match == "" {
		return 1
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 1
	}
	return n
}

// priceCeilingIn reads the number after "under", or returns def.
func priceCeilingIn(msg string, def int64) int64 {
	match := underPattern.FindStringSubmatch(msg)
	if match == nil {
		return def
	}
	n, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return def
	}
	return n
}

func containsAny(words ...string) func(string) bool {
	return func(msg string) bool {
		for _, w := range words {
			if strings.Contains(msg, w) {
				return true
			}
		}
		return false
	}
}
