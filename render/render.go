// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/standup-spinner/models"
	"github.com/danielhkuo/standup-spinner/twist"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"ordinal": func(i int) string { return humanize.Ordinal(i + 1) },
	"emoji":   emojiOrDefault,
	"avg":     func(f float64) string { return fmt.Sprintf("%.1f", f) },
	"ago":     humanize.Time,
}).ParseFS(templateFS, "templates/*.html"))

// Members writes one checkbox row per member
func Members(w io.Writer, members []models.Member) error {
	return templates.ExecuteTemplate(w, "members.html", members)
}

// Member writes the checkbox row of a single member
func Member(w io.Writer, member models.Member) error {
	return templates.ExecuteTemplate(w, "member", member)
}

// Spin writes the speaking order card
func Spin(w io.Writer, result *models.SpinResult) error {
	return templates.ExecuteTemplate(w, "spin.html", result)
}

type statsView struct {
	Days  int
	Since time.Time
	Stats []models.MemberStats
}

// Stats writes one card per member
func Stats(w io.Writer, days int, since time.Time, stats []models.MemberStats) error {
	return templates.ExecuteTemplate(w, "stats.html", statsView{Days: days, Since: since, Stats: stats})
}

// NoData writes the empty-window notice
func NoData(w io.Writer) error {
	return templates.ExecuteTemplate(w, "nodata.html", nil)
}

func emojiOrDefault(s string) string {
	if s == "" {
		return twist.DefaultEmoji
	}
	return s
}
