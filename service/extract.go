package service

import (
	"encoding/json"
	"errors"
	"strings"

	"saylorscope/domain"
)

// ExtractEstimation coerces the model's raw answer into an EstimationResult.
// The answer is treated as untrusted text: despite the prompt instructions the
// model may wrap its JSON in prose, so extraction locates the first balanced
// {...} span and parses only that. Any failure comes back as a parse-kind
// EstimationError carrying the original text verbatim.
func ExtractEstimation(raw string) (domain.EstimationResult, error) {
	span, ok := jsonObjectSpan(raw)
	if !ok {
		return domain.EstimationResult{}, newParseError("no JSON object found in model response", raw, nil)
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(span), &payload); err != nil {
		return domain.EstimationResult{}, newParseError("model response is not valid JSON", raw, err)
	}

	result, err := normalizeEstimation(payload)
	if err != nil {
		return domain.EstimationResult{}, newParseError(err.Error(), raw, nil)
	}
	return result, nil
}

// jsonObjectSpan returns the first balanced outermost {...} span in s. Brace
// characters inside JSON string literals do not affect the depth count.
func jsonObjectSpan(s string) (string, bool) {
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

// normalizeEstimation validates the parsed payload against the fixed output
// shape. A present-but-wrong-typed field is a shape violation; an absent field
// is tolerated unless all three carry no usable signal. Wrong numbers are
// never fixed: a descending range is rejected, not reordered.
func normalizeEstimation(payload map[string]any) (domain.EstimationResult, error) {
	var result domain.EstimationResult

	rawValue, hasValue := payload["value"]
	if hasValue && rawValue != nil {
		n, ok := rawValue.(float64)
		if !ok {
			return result, errors.New("field \"value\" must be a number or null")
		}
		result.Value = &n
	}

	rawRange, hasRange := payload["range"]
	if hasRange && rawRange != nil {
		pair, ok := rawRange.([]any)
		if !ok || len(pair) != 2 {
			return result, errors.New("field \"range\" must be a two-element array or null")
		}
		lo, okLo := pair[0].(float64)
		hi, okHi := pair[1].(float64)
		if !okLo || !okHi {
			return result, errors.New("field \"range\" must contain two numbers")
		}
		if lo > hi {
			return result, errors.New("field \"range\" must be ascending")
		}
		result.Range = &[2]float64{lo, hi}
	}

	rawExplanation, hasExplanation := payload["explanation"]
	if hasExplanation && rawExplanation != nil {
		s, ok := rawExplanation.(string)
		if !ok {
			return result, errors.New("field \"explanation\" must be a string")
		}
		result.Explanation = s
	}

	// A payload with no usable signal is indistinguishable from a parse
	// failure and is treated identically.
	if result.Value == nil && result.Range == nil && result.Explanation == "" {
		return result, errors.New("model response carries no usable fields")
	}
	return result, nil
}
