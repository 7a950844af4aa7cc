package models

import "regexp"

var customEmojiPattern = regexp.MustCompile(`<a?:[a-zA-Z0-9_]+:[0-9]+>`)

// ExtractEmojis returns every custom emoji markup in text, repeats included,
// in order of appearance.
func ExtractEmojis(text string) []string {
	return customEmojiPattern.FindAllString(text, -1)
}
