package main

import "fmt"

// Source is one entry of the trusted outlet list shown alongside verdicts.
type Source struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// SourceList is an ordered set of trusted sources. The default list is a
// process-wide constant; it is loaded once at startup and never mutated.
type SourceList []Source

// defaultTrustedSources are the Indian outlets and fact-checkers recommended
// to readers regardless of the claim's content.
var defaultTrustedSources = SourceList{
	{Name: "Times of India", URL: "https://timesofindia.indiatimes.com"},
	{Name: "NDTV", URL: "https://www.ndtv.com"},
	{Name: "The Hindu", URL: "https://www.thehindu.com"},
	{Name: "Indian Express", URL: "https://indianexpress.com"},
	{Name: "India Today", URL: "https://www.indiatoday.in"},
	{Name: "Anandabazar Patrika", URL: "https://www.anandabazar.com"},
	{Name: "The Statesman", URL: "https://www.thestatesman.com"},
	{Name: "The Telegraph", URL: "https://www.telegraphindia.com"},
	{Name: "Alt News (Fact-checker)", URL: "https://www.altnews.in"},
	{Name: "Boom Live (Fact-checker)", URL: "https://www.boomlive.in"},
	{Name: "The Quint WebQoof (Fact-checker)", URL: "https://www.thequint.com/news/webqoof"},
}

// Formatted renders each source as "Name - URL" for display and reports.
func (s SourceList) Formatted() []string {
	out := make([]string, 0, len(s))
	for _, src := range s {
		out = append(out, fmt.Sprintf("%s - %s", src.Name, src.URL))
	}
	return out
}

// Top returns the first n sources formatted for display. It returns fewer
// when the list is shorter than n.
func (s SourceList) Top(n int) []string {
	if n > len(s) {
		n = len(s)
	}
	return s[:n].Formatted()
}
