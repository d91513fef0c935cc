package moderation

import "strings"

// Denylist holds normalized single words in a set and multi-word phrases in
// a list. It is immutable once built and safe for concurrent use.
type Denylist struct {
	words   map[string]struct{}
	phrases []string
	// longest single word, in bytes
	maxWordLen int
}

// NewDenylist normalizes every entry. Entries that normalize to one token
// are matched as whole words, the rest as contiguous phrases.
func NewDenylist(entries []string) *Denylist {
	d := &Denylist{words: make(map[string]struct{}, len(entries))}
	seen := make(map[string]struct{})
	for _, entry := range entries {
		n := Normalize(entry)
		if n == "" {
			continue
		}
		if !strings.Contains(n, " ") {
			d.words[n] = struct{}{}
			d.maxWordLen = max(d.maxWordLen, len(n))
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		d.phrases = append(d.phrases, n)
	}
	return d
}

// DefaultDenylist builds the denylist from the built-in word list.
func DefaultDenylist() *Denylist {
	return NewDenylist(defaultDenylist)
}

// Match reports whether text contains a denied word or phrase and returns
// the normalized term that matched.
func (d *Denylist) Match(text string) (string, bool) {
	normalized := Normalize(text)
	if normalized == "" {
		return "", false
	}
	tokens := strings.Split(normalized, " ")

	for _, token := range tokens {
		if _, ok := d.words[token]; ok {
			return token, true
		}
	}

	// "f o r r o" is what "F.O.R.R.O" normalizes to. Sub-runs are tried too
	// so a neighbouring "y" or "a" cannot hide the word.
	for _, joined := range spelledOutWords(tokens, d.maxWordLen) {
		if _, ok := d.words[joined]; ok {
			return joined, true
		}
	}

	for _, phrase := range d.phrases {
		if strings.Contains(normalized, phrase) {
			return phrase, true
		}
	}

	return "", false
}

// Size returns the number of words and phrases loaded.
func (d *Denylist) Size() (words, phrases int) {
	return len(d.words), len(d.phrases)
}

// spelledOutWords joins every contiguous sub-run of two or more
// single-character tokens, up to maxLen characters.
func spelledOutWords(tokens []string, maxLen int) []string {
	var out []string
	emit := func(run []string) {
		for start := range run {
			var joined strings.Builder
			for end := start; end < len(run) && end-start < maxLen; end++ {
				joined.WriteString(run[end])
				if end > start {
					out = append(out, joined.String())
				}
			}
		}
	}

	runStart := -1
	for i, t := range tokens {
		if len(t) == 1 {
			if runStart < 0 {
				runStart = i
			}
			continue
		}
		if runStart >= 0 {
			emit(tokens[runStart:i])
			runStart = -1
		}
	}
	if runStart >= 0 {
		emit(tokens[runStart:])
	}
	return out
}
