// Package translate maps the household's Dutch grocery vocabulary to the
// English terms the external recipe and chat services expect. The recipe
// search and the chat suggestions share this one table so the two never
// drift apart on vocabulary.
package translate

import "strings"

// Version bumps whenever entries are added or changed, so divergent copies
// can be spotted.
const Version = 2

var dutchToEnglish = map[string]string{
	"aardappel":    "potato",
	"aardappelen":  "potatoes",
	"appel":        "apple",
	"appels":       "apples",
	"brood":        "bread",
	"eieren":       "eggs",
	"kaas":         "cheese",
	"kip":          "chicken",
	"melk":         "milk",
	"paprika":      "bell pepper",
	"pasta":        "pasta",
	"rijst":        "rice",
	"sinaasappel":  "orange",
	"sinaasappels": "oranges",
	"tomaat":       "tomato",
	"tomaten":      "tomatoes",
	"ui":           "onion",
	"uien":         "onions",
	"wortel":       "carrot",
	"wortels":      "carrots",
}

// Term translates a single ingredient word. The input is trimmed and
// lowercased first; unknown words fall back to that normalized form.
func Term(s string) string {
	norm := strings.ToLower(strings.TrimSpace(s))
	if en, ok := dutchToEnglish[norm]; ok {
		return en
	}
	return norm
}

// Products translates each product name and joins them with ", " for use in
// a prompt. Empty names are skipped.
func Products(names []string) string {
	var out []string
	for _, n := range names {
		if t := Term(n); t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, ", ")
}
