package segment

import (
	"strconv"
	"strings"
)

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
	"sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19, "twenty": 20,
}

// numberWordAlternation lists number words longest first so the regexp
// prefers "seventeen" over "seven".
const numberWordAlternation = "seventeen|thirteen|fourteen|eighteen|nineteen|fifteen|sixteen|" +
	"eleven|twelve|twenty|three|seven|eight|four|five|nine|one|two|six|ten"

var romanValues = map[rune]int{
	'i': 1, 'v': 5, 'x': 10, 'l': 50, 'c': 100, 'd': 500, 'm': 1000,
}

// parseChapterNumber parses arabic numerals, roman numerals, and English
// number words. Returns 0 when s is none of those.
func parseChapterNumber(s string) int {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	if n, ok := numberWords[s]; ok {
		return n
	}
	return parseRoman(s)
}

func parseRoman(s string) int {
	total, prev := 0, 0
	runes := []rune(s)
	for i := len(runes) - 1; i >= 0; i-- {
		v, ok := romanValues[runes[i]]
		if !ok {
			return 0
		}
		if v < prev {
			total -= v
		} else {
			total += v
			prev = v
		}
	}
	return total
}
