package controllers

import (
	"emojicounter/internal/models"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	rankingHeader     = "絵文字の使用回数ランキング:\n"
	msgNoData         = "まだ絵文字が使われていません。"
	msgUnknownGuild   = "エラー: コマンドが使用されたサーバが不明"
	maxDiscordMessage = 2000
)

// FormatRanking renders entries as the ranking reply. Lines are numbered
// from 1 within the requested window.
func FormatRanking(entries []models.Entry) string {
	var b strings.Builder
	b.WriteString(rankingHeader)
	for i, e := range entries {
		fmt.Fprintf(&b, "`%d位` - %s: %d回\n", i+1, e.Emoji, e.Count)
	}
	return b.String()
}

// SplitMessage cuts text into chunks of at most limit runes, preferring line
// boundaries. A single line longer than limit is cut mid-line.
func SplitMessage(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var (
		chunks []string
		cur    strings.Builder
		curLen int
	)
	flush := func() {
		if curLen > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
			curLen = 0
		}
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		n := utf8.RuneCountInString(line)
		if curLen+n <= limit {
			cur.WriteString(line)
			curLen += n
			continue
		}
		flush()
		for n > limit {
			runes := []rune(line)
			chunks = append(chunks, string(runes[:limit]))
			line = string(runes[limit:])
			n -= limit
		}
		cur.WriteString(line)
		curLen = n
	}
	flush()
	return chunks
}
