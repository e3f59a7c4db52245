package review

import (
	"strings"
	"unicode"
)

const maskRune = '*'

// Mask applies hint-level masking to an answer text. Each run of word
// characters longer than level keeps its first level characters and gets one
// mask character per remaining one; shorter runs stay untouched. Everything
// else (spaces, punctuation, line-break markers) passes through unchanged.
// A negative level disables masking.
//
// Word characters are Unicode letters and digits, which covers the accented
// Latin alphabet the input is written in. The rule is cosmetic, not
// cryptographic.
func Mask(text string, level int) string {
	if level < 0 {
		return text
	}

	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(runes); {
		if !isWordRune(runes[i]) {
			b.WriteRune(runes[i])
			i++
			continue
		}

		j := i
		for j < len(runes) && isWordRune(runes[j]) {
			j++
		}

		word := runes[i:j]
		if len(word) <= level {
			b.WriteString(string(word))
		} else {
			b.WriteString(string(word[:level]))
			for k := level; k < len(word); k++ {
				b.WriteRune(maskRune)
			}
		}
		i = j
	}

	return b.String()
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
