package gen

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestSanitizeObjectStrictDropsForgedFields(t *testing.T) {
	c := Contract{
		Required: map[string]Kind{
			"name":             KindString,
			"platform":         KindString,
			"niche":            KindString,
			"reason":           KindString,
			"outreach_message": KindString,
		},
		Strict: true,
	}

	raw := json.RawMessage(`{
		"name": "Jane Doe",
		"platform": "instagram",
		"niche": "fitness",
		"reason": "audience overlap",
		"outreach_message": "hello",
		"follower_count": 1200000,
		"engagement_rate": 9.5,
		"verified": true
	}`)

	out, err := SanitizeObject("influencers", raw, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 5 {
		t.Errorf("expected 5 fields, got %d: %v", len(out), out)
	}
	for _, forged := range []string{"follower_count", "engagement_rate", "verified"} {
		if _, ok := out[forged]; ok {
			t.Errorf("forged field %q survived sanitization", forged)
		}
	}
}

func TestSanitizeObjectMissingRequired(t *testing.T) {
	c := Contract{
		Required: map[string]Kind{
			"strengths":     KindStringList,
			"weaknesses":    KindStringList,
			"opportunities": KindStringList,
			"threats":       KindStringList,
		},
	}

	raw := json.RawMessage(`{
		"strengths": ["brand recognition"],
		"weaknesses": ["small team"],
		"opportunities": ["new markets"]
	}`)

	_, err := SanitizeObject("swot", raw, c)
	var sv *SchemaViolationError
	if !errors.As(err, &sv) {
		t.Fatalf("expected SchemaViolationError, got %v", err)
	}
	if len(sv.Fields) != 1 || sv.Fields[0] != "threats" {
		t.Errorf("expected violation on threats, got %v", sv.Fields)
	}
}

func TestSanitizeObjectEmptyListIsViolation(t *testing.T) {
	c := Contract{Required: map[string]Kind{"threats": KindStringList}}

	_, err := SanitizeObject("swot", json.RawMessage(`{"threats": []}`), c)
	var sv *SchemaViolationError
	if !errors.As(err, &sv) {
		t.Fatalf("expected SchemaViolationError, got %v", err)
	}
}

func TestSanitizeObjectMistypedRequired(t *testing.T) {
	c := Contract{Required: map[string]Kind{
		"headline": KindString,
		"hashtags": KindStringList,
	}}

	raw := json.RawMessage(`{"headline": 42, "hashtags": ["#go", 7]}`)
	_, err := SanitizeObject("content", raw, c)
	var sv *SchemaViolationError
	if !errors.As(err, &sv) {
		t.Fatalf("expected SchemaViolationError, got %v", err)
	}
	if len(sv.Fields) != 2 {
		t.Errorf("expected 2 violations, got %v", sv.Fields)
	}
}

func TestSanitizeObjectMalformed(t *testing.T) {
	c := Contract{Required: map[string]Kind{"brand_name": KindString}}

	for _, raw := range []string{`not json at all`, `[1,2,3]`, `"just a string"`} {
		_, err := SanitizeObject("brand", json.RawMessage(raw), c)
		var mr *MalformedResponseError
		if !errors.As(err, &mr) {
			t.Errorf("input %q: expected MalformedResponseError, got %v", raw, err)
		}
	}
}

func TestSanitizeObjectNonStrictKeepsExtras(t *testing.T) {
	c := Contract{
		Required: map[string]Kind{"statement": KindString},
		Optional: map[string]Kind{"market_segment": KindString},
	}

	raw := json.RawMessage(`{"statement": "we lead", "extra": "kept", "market_segment": 5}`)
	out, err := SanitizeObject("positioning", raw, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["extra"] != "kept" {
		t.Errorf("non-strict contract should keep unknown fields")
	}
	if _, ok := out["market_segment"]; ok {
		t.Errorf("mistyped optional field should be dropped, got %v", out["market_segment"])
	}
}

func TestSanitizeMapDoesNotMutateInput(t *testing.T) {
	c := Contract{Required: map[string]Kind{"name": KindString}, Strict: true}

	in := map[string]any{"name": "x", "forged": true}
	if _, err := SanitizeMap("influencers", in, c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := in["forged"]; !ok {
		t.Errorf("input map was mutated")
	}
}
