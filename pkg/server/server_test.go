package server

import (
	"bytes"
	"testing"

	"github.com/bastiangx/sylcheck/pkg/config"
	"github.com/bastiangx/sylcheck/pkg/spell"
	"github.com/bastiangx/sylcheck/pkg/symbol"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func newChecker(t *testing.T) *spell.Checker {
	t.Helper()
	c := spell.New(symbol.Rune)
	if _, err := c.Load([]string{"དཀོན", "དཀའ", "དཀར", "བ", "བོ", "བར"}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	c.Freeze()
	return c
}

// run feeds requests to a server and returns a decoder over its output,
// positioned after the ready message.
func run(t *testing.T, cfg *config.Config, requests ...any) (*msgpack.Decoder, *Server, error) {
	t.Helper()
	var in bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, req := range requests {
		if raw, ok := req.([]byte); ok {
			in.Write(raw)
			continue
		}
		if err := enc.Encode(req); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}

	var out bytes.Buffer
	srv := NewServerWithIO(newChecker(t), cfg, &in, &out)
	err := srv.Start()

	dec := msgpack.NewDecoder(&out)
	var ready StatusResponse
	if decErr := dec.Decode(&ready); decErr != nil || ready.Status != "ready" {
		t.Fatalf("expected ready status, got %+v (%v)", ready, decErr)
	}
	return dec, srv, err
}

func TestCheckText(t *testing.T) {
	dec, srv, err := run(t, nil, Request{ID: "1", Action: ActionCheck, Text: "བ་བོ་དཀ་དཀར།"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	var resp CheckResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	expected := []TokenResult{{"བ", true}, {"བོ", true}, {"དཀ", false}, {"དཀར", true}}
	if resp.ID != "1" || resp.Count != 4 || resp.Invalid != 1 {
		t.Errorf("unexpected response header %+v", resp)
	}
	for i, r := range expected {
		if i >= len(resp.Results) || resp.Results[i] != r {
			t.Errorf("result %d: expected %+v, got %+v", i, r, resp.Results)
			break
		}
	}
	if srv.Requests() != 1 {
		t.Errorf("expected 1 request served, got %d", srv.Requests())
	}
}

func TestCheckWordsDefaultAction(t *testing.T) {
	dec, _, err := run(t, nil, Request{ID: "w", Words: []string{"དཀའ", "དཀ", ""}})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	var resp CheckResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 3 || resp.Invalid != 2 || !resp.Results[0].Valid {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestComplete(t *testing.T) {
	dec, _, err := run(t, nil,
		Request{ID: "c1", Action: ActionComplete, Prefix: "དཀ", Limit: 2},
		Request{ID: "c2", Prefix: "བ"},
	)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	var first CompleteResponse
	if err := dec.Decode(&first); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if first.Count != 2 || first.Suggestions[0].Rank != 1 || first.Suggestions[1].Rank != 2 {
		t.Errorf("unexpected response %+v", first)
	}

	var second CompleteResponse
	if err := dec.Decode(&second); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if second.ID != "c2" || second.Count != 2 {
		t.Errorf("prefix-only request should complete, got %+v", second)
	}
}

func TestInfo(t *testing.T) {
	dec, _, err := run(t, nil, Request{ID: "i", Action: ActionInfo})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	var resp InfoResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Words != 6 || !resp.Frozen || resp.Mode != "rune" || resp.Status != "ok" {
		t.Errorf("unexpected info %+v", resp)
	}
}

func TestBadRequests(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.MaxTokens = 2
	cfg.Server.MaxWordLen = 4

	dec, _, err := run(t, cfg,
		Request{ID: "a", Action: "fix"},
		Request{ID: "b", Action: ActionCheck},
		Request{ID: "c", Words: []string{"ཀ", "ཁ", "ག"}},
		Request{ID: "d", Words: []string{"བསྒྲུབས"}},
		Request{ID: "e", Action: ActionComplete},
	)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	for _, id := range []string{"a", "b", "c", "d", "e"} {
		var resp ErrorResponse
		if err := dec.Decode(&resp); err != nil {
			t.Fatalf("decode %s: %v", id, err)
		}
		if resp.ID != id || resp.Code != 400 || resp.Error == "" {
			t.Errorf("request %s: unexpected error response %+v", id, resp)
		}
	}
}

func TestMalformedInput(t *testing.T) {
	dec, _, err := run(t, nil, []byte{0xc1})
	if err == nil {
		t.Fatalf("expected decode error")
	}

	var resp ErrorResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != 400 {
		t.Errorf("expected 400, got %+v", resp)
	}
}
