package main

// VerdictStatus is the classification outcome for a news claim.
type VerdictStatus string

const (
	StatusTrue          VerdictStatus = "TRUE"
	StatusFalse         VerdictStatus = "FALSE"
	StatusPartiallyTrue VerdictStatus = "PARTIALLY_TRUE"
	StatusUnverified    VerdictStatus = "UNVERIFIED"
	StatusError         VerdictStatus = "ERROR"
)

// Verdict is the structured result of verifying a single claim.
// A Verdict is created fresh per verification and never mutated afterwards.
type Verdict struct {
	Status     VerdictStatus `json:"status"`
	Confidence int           `json:"confidence"`
	Analysis   string        `json:"analysis"`
	Timestamp  string        `json:"timestamp"`
	Sources    []string      `json:"sources"`
	Success    bool          `json:"success"`
}

// Extraction is the article text pulled out of a URL, plus diagnostics
// about how it was obtained.
type Extraction struct {
	Text      string `json:"text"`
	Title     string `json:"title"`
	Strategy  string `json:"strategy"`
	CharCount int    `json:"chars"`
}
