package extract

import "testing"

func TestDoc(t *testing.T) {
	cases := []struct {
		name  string
		reply string
		ok    bool
	}{
		{"clean json", `{"intent": "weather_query"}`, true},
		{"fenced", "```json\n{\"intent\": \"weather_query\"}\n```", true},
		{"fenced no tag", "```\n{\"a\": 1}\n```", true},
		{"prose wrapped", "Sure! Here is the JSON: {\"a\": 1} Hope that helps.", true},
		{"empty", "", false},
		{"no json at all", "I cannot answer that.", false},
	}

	for _, c := range cases {
		doc, err := Doc(c.reply)
		if c.ok && err != nil {
			t.Errorf("%s: unexpected error: %v", c.name, err)
		}
		if !c.ok && err == nil {
			t.Errorf("%s: expected error, got %v", c.name, doc)
		}
	}
}

func TestFieldAccessors(t *testing.T) {
	doc, err := Doc(`{"intent": "weather_query", "confidence": 0.85, "days": 3, "blank": "  "}`)
	if err != nil {
		t.Fatalf("Doc: %v", err)
	}

	if got := String(doc, "$.intent", "unknown"); got != "weather_query" {
		t.Errorf("String = %q", got)
	}
	if got := String(doc, "$.missing", "unknown"); got != "unknown" {
		t.Errorf("String fallback = %q", got)
	}
	if got := String(doc, "$.blank", "unknown"); got != "unknown" {
		t.Errorf("String blank = %q", got)
	}
	if got := String(doc, "$.days", "unknown"); got != "unknown" {
		t.Errorf("String on number = %q", got)
	}

	if got := Float(doc, "$.confidence", 0.5); got != 0.85 {
		t.Errorf("Float = %v", got)
	}
	if got := Float(doc, "$.missing", 0.5); got != 0.5 {
		t.Errorf("Float fallback = %v", got)
	}
	if got := Float(doc, "$.intent", 0.5); got != 0.5 {
		t.Errorf("Float on string = %v", got)
	}

	if got := Int(doc, "$.days", 7); got != 3 {
		t.Errorf("Int = %d", got)
	}
	if got := Int(doc, "$.confidence", 7); got != 0 {
		t.Errorf("Int truncates = %d", got)
	}
	if got := Int(doc, "$.missing", 7); got != 7 {
		t.Errorf("Int fallback = %d", got)
	}
}
