package docreview

import (
	"bytes"
	"encoding/json"
	"strings"

	"go.uber.org/zap"
)

// rawResponse defers everything but the three required fields so a malformed
// optional section degrades to its default instead of failing the decode.
type rawResponse struct {
	Intent     string          `json:"prIntent"`
	Overview   string          `json:"changeOverview"`
	KeyRisks   json.RawMessage `json:"keyRisks"`
	Checklist  json.RawMessage `json:"checklist"`
	Suggestion json.RawMessage `json:"prBodySuggestion"`
	Verdict    json.RawMessage `json:"verdict"`
}

type rawVerdict struct {
	Verdict    string          `json:"verdict"`
	Confidence json.RawMessage `json:"confidence"`
	Summary    string          `json:"summary"`
}

// ParseV2Response extracts and validates a structured review from raw model
// text. It returns nil on any failure and never panics or propagates errors:
// no JSON-shaped substring, an undecodable span, or a span missing any of
// prIntent, changeOverview or verdict all yield nil. Every other field is
// defaulted rather than rejected.
func ParseV2Response(raw string, log *zap.Logger) *ReviewOutput {
	if log == nil {
		log = zap.NewNop()
	}

	span, ok := extractJSONObject(raw)
	if !ok {
		log.Warn("no JSON object in model response", zap.Int("responseLen", len(raw)))
		return nil
	}

	var r rawResponse
	if err := json.Unmarshal([]byte(span), &r); err != nil {
		log.Warn("model response is not valid JSON", zap.Error(err))
		return nil
	}

	if r.Intent == "" || r.Overview == "" || !truthy(r.Verdict) {
		log.Warn("model response missing required fields",
			zap.Bool("prIntent", r.Intent != ""),
			zap.Bool("changeOverview", r.Overview != ""),
			zap.Bool("verdict", truthy(r.Verdict)))
		return nil
	}

	out := &ReviewOutput{
		Intent:    r.Intent,
		Overview:  r.Overview,
		KeyRisks:  []RiskItem{},
		Checklist: []ChecklistItem{},
		Suggestion: BodySuggestion{
			Sections: []BodySection{},
		},
		Verdict: parseVerdict(r.Verdict),
	}

	if len(r.KeyRisks) > 0 {
		var risks []RiskItem
		if err := json.Unmarshal(r.KeyRisks, &risks); err == nil && risks != nil {
			out.KeyRisks = risks
		}
	}
	if len(r.Checklist) > 0 {
		var items []ChecklistItem
		if err := json.Unmarshal(r.Checklist, &items); err == nil && items != nil {
			out.Checklist = items
		}
	}
	if len(r.Suggestion) > 0 {
		var sug BodySuggestion
		if err := json.Unmarshal(r.Suggestion, &sug); err == nil && sug.Sections != nil {
			out.Suggestion = sug
		}
	}

	return out
}

// parseVerdict applies the verdict defaults: a missing sub-verdict becomes
// "commented", a missing or non-numeric confidence becomes 0.5, a missing
// summary becomes "".
func parseVerdict(raw json.RawMessage) Verdict {
	v := Verdict{
		Verdict:    VerdictCommented,
		Confidence: 0.5,
	}
	var r rawVerdict
	if err := json.Unmarshal(raw, &r); err != nil {
		return v
	}
	if r.Verdict != "" {
		v.Verdict = r.Verdict
	}
	var conf float64
	if len(r.Confidence) > 0 && json.Unmarshal(r.Confidence, &conf) == nil {
		v.Confidence = conf
	}
	v.Summary = r.Summary
	return v
}

// truthy applies JSON truthiness to a raw value: absent, null, false, zero
// and the empty string are all falsy.
func truthy(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	switch string(t) {
	case "", "null", "false", "0", `""`:
		return false
	}
	return true
}

// extractJSONObject finds the first balanced top-level JSON object in s.
// It tracks bracket depth and string literals so braces inside strings do
// not terminate the span early.
func extractJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
