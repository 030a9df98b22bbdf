package models

import "strings"

type AnalysisRequest struct {
	URLs       []string
	APIKey     string
	Transcript string
}

// CleanURLs returns the trimmed, non-blank URLs in input order.
func (r AnalysisRequest) CleanURLs() []string {
	return CleanURLs(r.URLs)
}

func (r AnalysisRequest) HasTranscript() bool {
	return strings.TrimSpace(r.Transcript) != ""
}

func CleanURLs(urls []string) []string {
	var out []string
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u != "" {
			out = append(out, u)
		}
	}
	return out
}

// SourceExcerpt is the readable text pulled from one source URL.
type SourceExcerpt struct {
	URL   string
	Title string
	Text  string
}
