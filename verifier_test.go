package main

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// stubClient is a canned ModelClient for exercising the verifier and
// engine without network access.
type stubClient struct {
	model string
	reply string
	err   error
	calls int
}

func (s *stubClient) Model() string { return s.model }

func (s *stubClient) Complete(ctx context.Context, prompt string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func testVerifier(client ModelClient) *Verifier {
	engine := &Engine{client: client}
	return NewVerifier(engine, defaultTrustedSources, time.Minute)
}

func TestBuildPrompt(t *testing.T) {
	claim := "PM Modi is the current Prime Minister of India"
	prompt := buildPrompt(claim)

	if !strings.Contains(prompt, `"`+claim+`"`) {
		t.Errorf("prompt does not contain the claim verbatim:\n%s", prompt)
	}

	labels := []string{
		"VERIFICATION_STATUS:",
		"CONFIDENCE_SCORE:",
		"DETAILED_ANALYSIS:",
		"INDIAN_CONTEXT:",
		"EVIDENCE_CHECK:",
		"RECOMMENDED_SOURCES:",
		"RED_FLAGS:",
		"CONCLUSION:",
	}
	for _, label := range labels {
		if n := strings.Count(prompt, label); n != 1 {
			t.Errorf("label %s appears %d times, want 1", label, n)
		}
	}
}

func TestBuildPromptMultilineClaim(t *testing.T) {
	claim := "Line one of a long article.\nLine two with more detail."
	prompt := buildPrompt(claim)
	if !strings.Contains(prompt, claim) {
		t.Error("multi-line claim was not embedded verbatim")
	}
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name           string
		reply          string
		wantStatus     VerdictStatus
		wantConfidence int
	}{
		{
			"true with consistent score",
			"VERIFICATION_STATUS: TRUE\nCONFIDENCE_SCORE: 92\nCONCLUSION: accurate",
			StatusTrue, 92,
		},
		{
			"false seed without score",
			"VERIFICATION_STATUS: FALSE\nCONCLUSION: fabricated",
			StatusFalse, 90,
		},
		{
			"false with low score gets floored",
			"VERIFICATION_STATUS: FALSE\nCONFIDENCE_SCORE: 40",
			StatusFalse, 80,
		},
		{
			"true with low score gets floored",
			"VERIFICATION_STATUS: TRUE\nCONFIDENCE_SCORE: 50",
			StatusTrue, 75,
		},
		{
			"partially true low score gets floored",
			"VERIFICATION_STATUS: PARTIALLY_TRUE\nCONFIDENCE_SCORE: 20",
			StatusPartiallyTrue, 65,
		},
		{
			"partially true seed",
			"VERIFICATION_STATUS: PARTIALLY_TRUE\nsome analysis",
			StatusPartiallyTrue, 70,
		},
		{
			"unverified capped at 50",
			"VERIFICATION_STATUS: UNVERIFIED\nCONFIDENCE_SCORE: 95",
			StatusUnverified, 50,
		},
		{
			"unverified keeps low extracted score",
			"VERIFICATION_STATUS: UNVERIFIED\nCONFIDENCE_SCORE: 20",
			StatusUnverified, 20,
		},
		{
			"unverified seed without score",
			"VERIFICATION_STATUS: UNVERIFIED\nno score here",
			StatusUnverified, 30,
		},
		{
			"no status marker at all",
			"The model rambled without following the format.",
			StatusUnverified, 30,
		},
		{
			"first marker wins over later text",
			"VERIFICATION_STATUS: TRUE\nbut note VERIFICATION_STATUS: FALSE was considered\nCONFIDENCE_SCORE: 88",
			StatusTrue, 88,
		},
		{
			"score with extra whitespace",
			"VERIFICATION_STATUS: TRUE\nCONFIDENCE_SCORE:   77",
			StatusTrue, 77,
		},
	}

	v := testVerifier(&stubClient{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := v.parseResponse(tt.reply)
			if verdict.Status != tt.wantStatus {
				t.Errorf("Status = %s, want %s", verdict.Status, tt.wantStatus)
			}
			if verdict.Confidence != tt.wantConfidence {
				t.Errorf("Confidence = %d, want %d", verdict.Confidence, tt.wantConfidence)
			}
			if !verdict.Success {
				t.Error("Success = false, want true")
			}
			if verdict.Analysis != tt.reply {
				t.Error("Analysis should carry the raw reply unmodified")
			}
			if len(verdict.Sources) != 4 {
				t.Errorf("Sources count = %d, want 4", len(verdict.Sources))
			}
			if verdict.Timestamp == "" {
				t.Error("Timestamp is empty")
			}
		})
	}
}

func TestParseResponseIsStable(t *testing.T) {
	reply := "VERIFICATION_STATUS: FALSE\nCONFIDENCE_SCORE: 95\nCONCLUSION: fake"
	v := testVerifier(&stubClient{})

	first := v.parseResponse(reply)
	second := v.parseResponse(reply)

	if first.Status != second.Status || first.Confidence != second.Confidence {
		t.Errorf("repeated parse diverged: %s/%d vs %s/%d",
			first.Status, first.Confidence, second.Status, second.Confidence)
	}
}

func TestVerifyEngineNotReady(t *testing.T) {
	v := NewVerifier(&Engine{err: ErrNoAPIKey}, defaultTrustedSources, time.Minute)

	verdict := v.Verify(context.Background(), "some claim")
	if verdict.Status != StatusError {
		t.Errorf("Status = %s, want %s", verdict.Status, StatusError)
	}
	if verdict.Success {
		t.Error("Success = true, want false")
	}
	if verdict.Analysis != "AI engine not ready" {
		t.Errorf("Analysis = %q, want %q", verdict.Analysis, "AI engine not ready")
	}
	if verdict.Confidence != 0 {
		t.Errorf("Confidence = %d, want 0", verdict.Confidence)
	}
	if verdict.Sources == nil || len(verdict.Sources) != 0 {
		t.Errorf("Sources = %v, want empty slice", verdict.Sources)
	}
}

func TestVerifyModelFailure(t *testing.T) {
	v := testVerifier(&stubClient{err: errors.New("rate limited")})

	verdict := v.Verify(context.Background(), "some claim")
	if verdict.Status != StatusError {
		t.Errorf("Status = %s, want %s", verdict.Status, StatusError)
	}
	if !strings.HasPrefix(verdict.Analysis, "Analysis failed:") {
		t.Errorf("Analysis = %q, want Analysis failed prefix", verdict.Analysis)
	}
	if !strings.Contains(verdict.Analysis, "rate limited") {
		t.Errorf("Analysis = %q, should include the underlying error", verdict.Analysis)
	}
}

func TestVerifyEmptyReply(t *testing.T) {
	v := testVerifier(&stubClient{reply: "   \n  "})

	verdict := v.Verify(context.Background(), "some claim")
	if verdict.Status != StatusError {
		t.Errorf("Status = %s, want %s", verdict.Status, StatusError)
	}
	if verdict.Analysis != "No response from AI" {
		t.Errorf("Analysis = %q, want %q", verdict.Analysis, "No response from AI")
	}
}

func TestVerifySuccess(t *testing.T) {
	client := &stubClient{reply: "VERIFICATION_STATUS: TRUE\nCONFIDENCE_SCORE: 90\nCONCLUSION: verified"}
	v := testVerifier(client)

	verdict := v.Verify(context.Background(), "PM Modi is the current Prime Minister of India")
	if verdict.Status != StatusTrue {
		t.Errorf("Status = %s, want %s", verdict.Status, StatusTrue)
	}
	if verdict.Confidence != 90 {
		t.Errorf("Confidence = %d, want 90", verdict.Confidence)
	}
	if client.calls != 1 {
		t.Errorf("model called %d times, want 1", client.calls)
	}
}
