package notetex

import (
	"strings"
)

// HeadEntry is one `$key: value` line of the document head.
type HeadEntry struct {
	Key   string
	Value string
}

// head collects document metadata. Known keys override the configured
// defaults; every entry is also kept in order.
type head struct {
	title         string
	author        string
	date          string
	documentClass string
	packages      []string
	entries       []HeadEntry
}

func newHead(cfg config) head {
	h := head{
		title:         cfg.title,
		author:        cfg.author,
		date:          cfg.date,
		documentClass: cfg.documentClass,
	}
	h.packages = append(h.packages, cfg.packages...)
	return h
}

// set records a header token value of the form "key=value".
func (h *head) set(token string) {
	key, value, _ := strings.Cut(token, "=")
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)
	h.entries = append(h.entries, HeadEntry{Key: key, Value: value})
	switch key {
	case "title":
		h.title = value
	case "author":
		h.author = value
	case "date":
		h.date = value
	case "documentclass":
		if value != "" {
			h.documentClass = value
		}
	case "usepackage":
		h.packages = append(h.packages, splitPackages(value)...)
	}
}

// splitPackages accepts "name", "a, b, c" or "[options]name".
func splitPackages(value string) []string {
	if strings.HasPrefix(value, "[") {
		return []string{value}
	}
	var out []string
	for _, name := range strings.Split(value, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func usePackage(pkg string) string {
	if strings.HasPrefix(pkg, "[") {
		if end := strings.IndexByte(pkg, ']'); end > 0 {
			name := strings.TrimSpace(pkg[end+1:])
			return `\usepackage` + pkg[:end+1] + `{` + name + `}`
		}
	}
	return `\usepackage{` + pkg + `}`
}

func isKnownHeadKey(key string) bool {
	switch key {
	case "title", "author", "date", "documentclass", "usepackage":
		return true
	}
	return false
}

// render returns the preamble through \maketitle.
func (h *head) render() string {
	var b strings.Builder
	b.WriteString(`\documentclass{` + h.documentClass + "}\n")
	for _, pkg := range h.packages {
		b.WriteString(usePackage(pkg))
		b.WriteByte('\n')
	}
	for _, e := range h.entries {
		if isKnownHeadKey(e.Key) {
			continue
		}
		b.WriteString("% " + e.Key + ": " + e.Value + "\n")
	}
	b.WriteString(`\title{` + h.title + "}\n")
	b.WriteString(`\author{` + h.author + "}\n")
	b.WriteString(`\date{` + h.date + "}\n")
	b.WriteString(`\begin{document}` + "\n")
	b.WriteString(`\maketitle`)
	return b.String()
}
