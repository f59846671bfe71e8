package domain

import "fmt"

// CaptionSuffixLayout formats the optional local time annotation.
const CaptionSuffixLayout = "Jan 2, 2006 3:04 PM MST"

// Caption builds the post text for a percent.
// localTime is appended in parentheses when non-empty.
func Caption(year, percent int, localTime string) string {
	text := fmt.Sprintf("%d is %d%% approved on the banana scale", year, percent)
	if localTime != "" {
		text += " (" + localTime + ")"
	}
	return text
}
