// Package hint assigns short keyboard labels to windows.
package hint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bryanchriswhite/FocusHint/internal/config"
)

// Map associates each label with the window it selects. Labels are unique.
type Map map[string]*config.DesktopWindow

// Labels returns the labels in sorted order.
func (m Map) Labels() []string {
	labels := make([]string, 0, len(m))
	for label := range m {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Assign labels windows in order using the characters of alphabet.
//
// Every label has the same length, the smallest that covers all windows, so
// no label is a prefix of another. Labels are generated in alphabet order:
// with "asd" and four windows the labels are aa, as, ad, sa.
func Assign(windows []*config.DesktopWindow, alphabet string) (Map, error) {
	chars := []rune(strings.ToLower(alphabet))
	if len(chars) < 2 {
		return nil, fmt.Errorf("hint alphabet needs at least 2 characters, got %q", alphabet)
	}
	seen := make(map[rune]bool, len(chars))
	for _, r := range chars {
		if !config.IsHintChar(r) {
			return nil, fmt.Errorf("hint alphabet has invalid character %q", r)
		}
		if seen[r] {
			return nil, fmt.Errorf("hint alphabet has duplicate character %q", r)
		}
		seen[r] = true
	}

	hints := make(Map, len(windows))
	if len(windows) == 0 {
		return hints, nil
	}

	length := 1
	for capacity := len(chars); capacity < len(windows); capacity *= len(chars) {
		length++
	}

	digits := make([]int, length)
	label := make([]rune, length)
	for _, w := range windows {
		for i, d := range digits {
			label[i] = chars[d]
		}
		hints[string(label)] = w

		// Increment the rightmost digit, carrying left.
		for i := length - 1; i >= 0; i-- {
			digits[i]++
			if digits[i] < len(chars) {
				break
			}
			digits[i] = 0
		}
	}
	return hints, nil
}
