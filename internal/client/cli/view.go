package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophdiary/internal/models"
)

// getMultiline and getTags are test seams like getSimpleText.
var getMultiline = GetMultiline
var getTags = GetTags

const dateLayout = "2006-01-02 15:04"

func printDiaries(diaries []models.Diary) {
	if len(diaries) == 0 {
		printlnFn("No diaries found")
		return
	}
	for _, d := range diaries {
		printlnFn(formatDiary(d))
	}
}

func formatDiary(d models.Diary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s", d.ID, d.Title)
	if d.IsPrivate {
		b.WriteString(" [private]")
	}
	if !d.CreatedAt.IsZero() {
		fmt.Fprintf(&b, " (%s)", d.CreatedAt.Format(dateLayout))
	}
	if d.Weather != "" || d.Mood != "" {
		fmt.Fprintf(&b, " weather=%s mood=%s", d.Weather, d.Mood)
	}
	if len(d.Tags) > 0 {
		b.WriteString(" #" + strings.Join(d.Tags, " #"))
	}
	return b.String()
}
