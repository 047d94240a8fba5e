package main

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// analysisPromptTemplate instructs the model to answer in a fixed labeled
// format so the reply can be scanned for the status and score markers. The
// claim is substituted verbatim; each section label appears exactly once.
const analysisPromptTemplate = `INDIAN NEWS FACT-CHECK ANALYSIS
=====================================

You are an expert Indian news fact-checker with deep knowledge of:
- Indian politics, government, and current affairs
- Indian media landscape and reliable sources
- Indian cultural and social context
- Common misinformation patterns in India

NEWS CLAIM TO ANALYZE:
"%s"

Please provide analysis in this EXACT format:

VERIFICATION_STATUS: [TRUE/FALSE/PARTIALLY_TRUE/UNVERIFIED]
CONFIDENCE_SCORE: [0-100]

DETAILED_ANALYSIS:
[Provide thorough explanation of why this claim is true/false]

INDIAN_CONTEXT:
[Explain relevance to Indian politics, society, current events]

EVIDENCE_CHECK:
[What evidence supports or contradicts this claim]

RECOMMENDED_SOURCES:
[List specific Indian news sources to verify this claim]

RED_FLAGS:
[Any warning signs or suspicious elements in this claim]

CONCLUSION:
[Final assessment with reasoning]
`

const verdictTimeFormat = "2006-01-02 15:04:05"

// statusMatchers are scanned in priority order; the first marker found in
// the reply wins and seeds the default confidence for that status.
var statusMatchers = []struct {
	marker     string
	status     VerdictStatus
	confidence int
}{
	{"VERIFICATION_STATUS: TRUE", StatusTrue, 85},
	{"VERIFICATION_STATUS: FALSE", StatusFalse, 90},
	{"VERIFICATION_STATUS: PARTIALLY_TRUE", StatusPartiallyTrue, 70},
	{"VERIFICATION_STATUS: UNVERIFIED", StatusUnverified, 30},
}

var confidencePattern = regexp.MustCompile(`CONFIDENCE_SCORE:\s*(\d+)`)

// Verifier turns claim text into a Verdict via the model engine. It holds
// no per-call state; one instance serves the whole session.
type Verifier struct {
	engine  *Engine
	sources SourceList
	timeout time.Duration
}

// NewVerifier creates a Verifier bound to an engine and trusted source list.
func NewVerifier(engine *Engine, sources SourceList, timeout time.Duration) *Verifier {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Verifier{engine: engine, sources: sources, timeout: timeout}
}

// buildPrompt renders the analysis prompt with the claim embedded verbatim.
func buildPrompt(claim string) string {
	return fmt.Sprintf(analysisPromptTemplate, claim)
}

// Verify classifies a claim. Every failure mode degrades to an ERROR
// Verdict; this method never panics or returns an error to the caller.
func (v *Verifier) Verify(ctx context.Context, claim string) Verdict {
	if !v.engine.Ready() {
		return v.errorVerdict("AI engine not ready")
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	reply, err := v.engine.Complete(ctx, buildPrompt(claim))
	if err != nil {
		return v.errorVerdict(fmt.Sprintf("Analysis failed: %v", err))
	}
	if strings.TrimSpace(reply) == "" {
		return v.errorVerdict("No response from AI")
	}

	return v.parseResponse(reply)
}

// parseResponse scans the raw model reply for the status and confidence
// markers and reconciles them into a Verdict. The reply text itself is
// passed through unmodified as the analysis.
//
// The confidence floors are intentional policy, not bug fixes: a reply that
// claims TRUE with a very low score is internally inconsistent, and showing
// that low number would mislead more than correcting it.
func (v *Verifier) parseResponse(text string) (verdict Verdict) {
	defer func() {
		if r := recover(); r != nil {
			verdict = v.errorVerdict(fmt.Sprintf("Parse error: %v", r))
		}
	}()

	status := StatusUnverified
	confidence := 30

	for _, m := range statusMatchers {
		if strings.Contains(text, m.marker) {
			status = m.status
			confidence = m.confidence
			break
		}
	}

	if m := confidencePattern.FindStringSubmatch(text); m != nil {
		if extracted, err := strconv.Atoi(m[1]); err == nil {
			if status == StatusUnverified {
				// An unverified claim must never report above 50.
				if extracted > 50 {
					confidence = 50
				} else {
					confidence = extracted
				}
			} else {
				confidence = extracted
			}
		}
	}

	// Enforce logical confidence ranges per status.
	switch {
	case status == StatusUnverified && confidence > 50:
		confidence = 30
	case status == StatusTrue && confidence < 60:
		confidence = 75
	case status == StatusFalse && confidence < 70:
		confidence = 80
	case status == StatusPartiallyTrue && confidence < 50:
		confidence = 65
	}

	return Verdict{
		Status:     status,
		Confidence: confidence,
		Analysis:   text,
		Timestamp:  time.Now().Format(verdictTimeFormat),
		Sources:    v.sources.Top(4),
		Success:    true,
	}
}

// errorVerdict builds the standardized failure Verdict.
func (v *Verifier) errorVerdict(message string) Verdict {
	return Verdict{
		Status:     StatusError,
		Confidence: 0,
		Analysis:   message,
		Timestamp:  time.Now().Format(verdictTimeFormat),
		Sources:    []string{},
		Success:    false,
	}
}
