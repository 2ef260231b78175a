// Package marketing turns generated text into post and email drafts and prepares
// email campaigns.
package marketing

import (
	"strings"
	"unicode"
)

const (
	labelTitle    = "TITLE:"
	labelContent  = "CONTENT:"
	labelHashtags = "HASHTAGS:"
	labelSubject  = "SUBJECT:"
	labelBody     = "BODY:"
)

type PostDraft struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type EmailDraft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ParsePost extracts TITLE/CONTENT/HASHTAGS sections. A missing or empty CONTENT
// section makes the whole raw text the body; hashtags, when present, are appended after a
// blank line.
func ParsePost(raw string) PostDraft {
	labels := []string{labelTitle, labelContent, labelHashtags}

	title, _ := section(raw, labelTitle, labels, true)
	body, ok := section(raw, labelContent, labels, false)
	if !ok || body == "" {
		body = raw
	}
	if hashtags, _ := section(raw, labelHashtags, labels, false); hashtags != "" {
		body += "\n\n" + hashtags
	}
	return PostDraft{Title: title, Body: body}
}

// ParseEmail extracts SUBJECT/BODY sections; a missing or empty BODY makes the raw
// text the body.
func ParseEmail(raw string) EmailDraft {
	labels := []string{labelSubject, labelBody}

	subject, _ := section(raw, labelSubject, labels, true)
	body, ok := section(raw, labelBody, labels, false)
	if !ok || body == "" {
		body = raw
	}
	return EmailDraft{Subject: subject, Body: body}
}

// section returns the trimmed text after the first occurrence of label. It runs up
// to the nearest following occurrence of any other label, or the end of text.
// Single line sections also stop at the first newline after their leading whitespace.
func section(text, label string, labels []string, singleLine bool) (string, bool) {
	start := strings.Index(text, label)
	if start < 0 {
		return "", false
	}
	rest := text[start+len(label):]
	rest = strings.TrimLeftFunc(rest, unicode.IsSpace)

	end := len(rest)
	for _, other := range labels {
		if other == label {
			continue
		}
		if i := strings.Index(rest, other); i >= 0 && i < end {
			end = i
		}
	}
	if singleLine {
		if i := strings.IndexByte(rest, '\n'); i >= 0 && i < end {
			end = i
		}
	}
	return strings.TrimSpace(rest[:end]), true
}
