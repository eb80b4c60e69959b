// Package categories assigns each article one label from a fixed closed set.
package categories

import "strings"

// Leagues in priority order; the first keyword found in the text wins.
var Leagues = []string{"NBA", "MLB", "NFL"}

// Default is assigned when no league keyword matches.
const Default = "Sports"

// Categorize is a pure function of the combined text: it always returns
// exactly one of Leagues or Default.
func Categorize(title, description, content string) string {
	searchText := strings.ToLower(title + " " + description + " " + content)
	for _, league := range Leagues {
		if strings.Contains(searchText, strings.ToLower(league)) {
			return league
		}
	}
	return Default
}
