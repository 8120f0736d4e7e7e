package domain

import (
	"errors"
	"testing"
	"time"
)

func newTestRuntime(t *testing.T, vars Vars) *RuntimeResolver {
	t.Helper()

	r := NewVarResolver(
		WithNow(func() time.Time { return time.Unix(1700000000, 0) }),
		WithUUID(func() (string, error) { return "11111111-2222-3333-4444-555555555555", nil }),
	)
	rt, err := r.NewRuntime(vars)
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}
	return rt
}

func TestResolveString(t *testing.T) {
	rt := newTestRuntime(t, Vars{"city": "London", "model": "llama3.2"})

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"no placeholders", "plain text", "plain text"},
		{"single var", "weather in {{city}}", "weather in London"},
		{"multiple vars", "{{model}} for {{city}}", "llama3.2 for London"},
		{"padded key", "{{ city }}", "London"},
		{"timestamp builtin", "run-{{$timestamp}}", "run-1700000000"},
		{"uuid builtin", "{{$uuid}}", "11111111-2222-3333-4444-555555555555"},
		{"empty", "", ""},
	}

	for _, c := range cases {
		got, err := rt.ResolveString(c.in)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", c.name, err)
			continue
		}
		if got != c.want {
			t.Errorf("%s: got %q, want %q", c.name, got, c.want)
		}
	}
}

func TestResolveStringErrors(t *testing.T) {
	rt := newTestRuntime(t, Vars{"city": "London"})

	if _, err := rt.ResolveString("hello {{nope}}"); !IsKind(err, KindMissingVar) {
		t.Errorf("missing var: got %v", err)
	}
	if _, err := rt.ResolveString("hello {{city"); !IsKind(err, KindInvalidConfig) {
		t.Errorf("unclosed: got %v", err)
	}
	if _, err := rt.ResolveString("hello {{}}"); !IsKind(err, KindInvalidConfig) {
		t.Errorf("empty key: got %v", err)
	}
}

func TestUUIDStableWithinRuntime(t *testing.T) {
	r := NewVarResolver()
	rt, err := r.NewRuntime(nil)
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}

	first, err := rt.ResolveString("{{$uuid}}")
	if err != nil {
		t.Fatalf("ResolveString: %v", err)
	}
	second, err := rt.ResolveString("{{$uuid}}")
	if err != nil {
		t.Fatalf("ResolveString: %v", err)
	}
	if first != second {
		t.Errorf("uuid changed within a session: %q vs %q", first, second)
	}
	if len(first) != 36 {
		t.Errorf("uuid has unexpected length: %q", first)
	}
}

func TestNewRuntimeUUIDFailure(t *testing.T) {
	r := NewVarResolver(WithUUID(func() (string, error) { return "", errors.New("entropy exhausted") }))
	if _, err := r.NewRuntime(nil); !IsKind(err, KindExecution) {
		t.Errorf("got %v", err)
	}
}

func TestResolvePrompts(t *testing.T) {
	rt := newTestRuntime(t, Vars{"city": "Paris"})

	out, err := rt.ResolvePrompts(Prompts{
		System:  "You help with weather in {{city}}.",
		Respond: "Answer for {{city}}.",
	})
	if err != nil {
		t.Fatalf("ResolvePrompts: %v", err)
	}
	if out.System != "You help with weather in Paris." {
		t.Errorf("System = %q", out.System)
	}
	if out.Respond != "Answer for Paris." {
		t.Errorf("Respond = %q", out.Respond)
	}

	if _, err := rt.ResolvePrompts(Prompts{Analyze: "{{missing}}"}); !IsKind(err, KindMissingVar) {
		t.Errorf("got %v", err)
	}
}

func TestResolveVars(t *testing.T) {
	rt := newTestRuntime(t, Vars{"city": "Oslo"})

	out, err := rt.ResolveVars(Vars{"greeting": "hello from {{city}}", "plain": "x"})
	if err != nil {
		t.Fatalf("ResolveVars: %v", err)
	}
	if out["greeting"] != "hello from Oslo" {
		t.Errorf("greeting = %q", out["greeting"])
	}
	if out["plain"] != "x" {
		t.Errorf("plain = %q", out["plain"])
	}
}

func TestRuntimeVarsReturnsCopy(t *testing.T) {
	rt := newTestRuntime(t, Vars{"city": "Rome"})

	v := rt.Vars()
	v["city"] = "mutated"

	if got := rt.Vars()["city"]; got != "Rome" {
		t.Errorf("base vars mutated: %q", got)
	}
}
