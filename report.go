package main

import (
	"fmt"
	"time"
)

const reportDisclaimer = "This is an AI-assisted analysis. Always verify with multiple sources."

// VerificationReport is the downloadable JSON snapshot of one verification.
type VerificationReport struct {
	NewsClaim          string        `json:"news_claim"`
	Status             VerdictStatus `json:"status"`
	Confidence         string        `json:"confidence"`
	Analysis           string        `json:"analysis"`
	Timestamp          string        `json:"timestamp"`
	RecommendedSources []string      `json:"recommended_sources"`
	Disclaimer         string        `json:"disclaimer"`
}

// reportEnvelope matches the export format: the report under a single
// "verification_report" key.
type reportEnvelope struct {
	VerificationReport VerificationReport `json:"verification_report"`
}

// buildReport assembles the export document for a claim and its verdict.
// The full trusted-source list is included, not just the verdict's top 4.
func buildReport(claim string, verdict Verdict, sources SourceList) reportEnvelope {
	return reportEnvelope{
		VerificationReport: VerificationReport{
			NewsClaim:          claim,
			Status:             verdict.Status,
			Confidence:         fmt.Sprintf("%d%%", verdict.Confidence),
			Analysis:           verdict.Analysis,
			Timestamp:          verdict.Timestamp,
			RecommendedSources: sources.Formatted(),
			Disclaimer:         reportDisclaimer,
		},
	}
}

// reportFilename names the download after the moment it was generated.
func reportFilename(now time.Time) string {
	return fmt.Sprintf("news_verification_%s.json", now.Format("20060102_150405"))
}
