package odoo

import (
	"context"
	"fmt"
	"sync"
)

func newTestConfig() *Config {
	return &Config{
		URL:            "https://erp.example.com",
		Database:       "erp",
		Username:       "api@example.com",
		Password:       "secret",
		TimeoutSeconds: 5,
	}
}

// kwCall is one decoded execute_kw invocation.
type kwCall struct {
	Model  string
	Method string
	Args   []any
	Kwargs map[string]any
}

// fakeCaller answers common.* directly and object.execute_kw through
// per model.method handlers.
type fakeCaller struct {
	mu sync.Mutex

	authReply  any
	authErr    error
	authCalls  int
	version    any
	versionErr error
	handlers   map[string]func(kwCall) (any, error)
	calls      []kwCall
}

func newFakeCaller() *fakeCaller {
	return &fakeCaller{
		authReply: int64(2),
		version:   map[string]any{"server_version": "17.0"},
		handlers:  map[string]func(kwCall) (any, error){},
	}
}

func (f *fakeCaller) on(modelMethod string, h func(kwCall) (any, error)) *fakeCaller {
	f.handlers[modelMethod] = h
	return f
}

func (f *fakeCaller) reply(modelMethod string, reply any) *fakeCaller {
	return f.on(modelMethod, func(kwCall) (any, error) { return reply, nil })
}

func (f *fakeCaller) Call(_ context.Context, service, method string, args ...any) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch service + "." + method {
	case "common.authenticate":
		f.authCalls++
		if f.authErr != nil {
			return nil, f.authErr
		}
		return f.authReply, nil
	case "common.version":
		return f.version, f.versionErr
	case "object.execute_kw":
		c := kwCall{
			Model:  args[3].(string),
			Method: args[4].(string),
			Args:   args[5].([]any),
			Kwargs: args[6].(map[string]any),
		}
		f.calls = append(f.calls, c)
		h, ok := f.handlers[c.Model+"."+c.Method]
		if !ok {
			return nil, fmt.Errorf("unexpected call %s.%s", c.Model, c.Method)
		}
		return h(c)
	}
	return nil, fmt.Errorf("unexpected service call %s.%s", service, method)
}

func (f *fakeCaller) recorded() []kwCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]kwCall(nil), f.calls...)
}

func (f *fakeCaller) authCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.authCalls
}

func newTestGateway(f *fakeCaller) (*Gateway, *SessionManager) {
	cfg := newTestConfig()
	sessions := NewSessionManager(f, cfg, nil)
	return NewGateway(f, sessions, cfg, nil), sessions
}

func records(recs ...map[string]any) []any {
	out := make([]any, len(recs))
	for i, r := range recs {
		out[i] = r
	}
	return out
}
