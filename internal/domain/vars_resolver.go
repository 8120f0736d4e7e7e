package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// VarResolver resolves {{var}} placeholders in prompts and settings.
// It supports built-ins: {{$timestamp}} and {{$uuid}}.
//
// This lives in domain because it does not depend on YAML/FS/HTTP. Only stdlib.
type VarResolver struct {
	now    func() time.Time
	uuidV4 func() (string, error)
}

// VarResolverOption configures VarResolver.
type VarResolverOption func(*VarResolver)

// WithNow overrides the clock (useful for tests).
func WithNow(now func() time.Time) VarResolverOption {
	return func(r *VarResolver) { r.now = now }
}

// WithUUID overrides UUID generation (useful for tests).
func WithUUID(gen func() (string, error)) VarResolverOption {
	return func(r *VarResolver) { r.uuidV4 = gen }
}

func NewVarResolver(opts ...VarResolverOption) *VarResolver {
	r := &VarResolver{
		now:    time.Now,
		uuidV4: uuidV4,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RuntimeResolver caches built-ins for a single resolution session (one agent run)
// so repeated {{$uuid}} across multiple prompts stays consistent.
type RuntimeResolver struct {
	base     Vars
	builtins Vars
}

func (r *VarResolver) NewRuntime(vars Vars) (*RuntimeResolver, error) {
	ts := strconv.FormatInt(r.now().Unix(), 10)

	u, err := r.uuidV4()
	if err != nil {
		return nil, &OpError{
			Op:   "vars.builtins.uuid",
			Kind: KindExecution,
			Err:  err,
		}
	}

	baseCopy := Vars{}
	for k, v := range vars {
		baseCopy[k] = v
	}

	return &RuntimeResolver{
		base: baseCopy,
		builtins: Vars{
			"$timestamp": ts,
			"$uuid":      u,
		},
	}, nil
}

// ResolveString resolves placeholders in a string.
// Supported tokens: {{city}}, {{model}}, {{$timestamp}}, {{$uuid}}.
func (rr *RuntimeResolver) ResolveString(s string) (string, error) {
	if s == "" {
		return "", nil
	}

	var out strings.Builder
	rest := s
	for {
		start := strings.Index(rest, "{{")
		if start == -1 {
			out.WriteString(rest)
			return out.String(), nil
		}

		out.WriteString(rest[:start])
		rest = rest[start+2:]

		end := strings.Index(rest, "}}")
		if end == -1 {
			return "", &OpError{
				Op:   "vars.resolve",
				Kind: KindInvalidConfig,
				Err:  fmt.Errorf("unclosed placeholder: %w", ErrInvalidConfig),
			}
		}

		key := strings.TrimSpace(rest[:end])
		if key == "" {
			return "", &OpError{
				Op:   "vars.resolve",
				Kind: KindInvalidConfig,
				Err:  fmt.Errorf("empty placeholder: %w", ErrInvalidConfig),
			}
		}

		val, ok := rr.lookup(key)
		if !ok {
			return "", &OpError{
				Op:   "vars.resolve",
				Kind: KindMissingVar,
				Err:  fmt.Errorf("missing variable %q: %w", key, ErrMissingVar),
			}
		}

		out.WriteString(val)
		rest = rest[end+2:]
	}
}

// ResolvePrompts resolves placeholders in every prompt override.
// It returns a copy (does not mutate input).
func (rr *RuntimeResolver) ResolvePrompts(p Prompts) (Prompts, error) {
	out := p

	var err error
	if out.System, err = rr.ResolveString(p.System); err != nil {
		return Prompts{}, wrapField(err, "prompts.system")
	}
	if out.Analyze, err = rr.ResolveString(p.Analyze); err != nil {
		return Prompts{}, wrapField(err, "prompts.analyze")
	}
	if out.Respond, err = rr.ResolveString(p.Respond); err != nil {
		return Prompts{}, wrapField(err, "prompts.respond")
	}
	if out.Reason, err = rr.ResolveString(p.Reason); err != nil {
		return Prompts{}, wrapField(err, "prompts.reason")
	}

	return out, nil
}

// ResolveVars resolves placeholders inside every value of vars.
func (rr *RuntimeResolver) ResolveVars(vars Vars) (Vars, error) {
	out := Vars{}
	for k, v := range vars {
		rv, err := rr.ResolveString(v)
		if err != nil {
			return nil, wrapField(err, "vars."+k)
		}
		out[k] = rv
	}
	return out, nil
}

// Vars exposes a copy of the base vars for this session.
func (rr *RuntimeResolver) Vars() Vars {
	out := Vars{}
	for k, v := range rr.base {
		out[k] = v
	}
	return out
}

func (rr *RuntimeResolver) lookup(key string) (string, bool) {
	if strings.HasPrefix(key, "$") {
		v, ok := rr.builtins[key]
		return v, ok
	}
	v, ok := rr.base[key]
	return v, ok
}

func wrapField(err error, field string) error {
	return fmt.Errorf("%s: %w", field, err)
}

func uuidV4() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80

	dst := make([]byte, 32)
	hex.Encode(dst, b[:])
	return string(dst[0:8]) + "-" + string(dst[8:12]) + "-" + string(dst[12:16]) + "-" + string(dst[16:20]) + "-" + string(dst[20:32]), nil
}
