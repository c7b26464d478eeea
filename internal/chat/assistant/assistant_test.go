package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/acai-travel/global-time-agent/internal/chat/model"
	"github.com/google/go-cmp/cmp"
	"github.com/openai/openai-go/v2"
)

type fakeTool struct {
	name string
	out  string
	err  error

	mu   sync.Mutex
	args []string
}

func (f *fakeTool) Name() string        { return f.name }
func (f *fakeTool) Description() string { return "fake " + f.name }
func (f *fakeTool) Parameters() openai.FunctionParameters {
	return openai.FunctionParameters{"type": "object", "properties": map[string]any{}}
}

func (f *fakeTool) Execute(_ context.Context, arguments string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.args = append(f.args, arguments)
	return f.out, f.err
}

type completionRequest struct {
	Model    string           `json:"model"`
	Messages []map[string]any `json:"messages"`
	Tools    []map[string]any `json:"tools"`
}

// fakeCompletions serves the scripted responses in order and records requests.
func fakeCompletions(t *testing.T, responses ...string) (*httptest.Server, *[]completionRequest) {
	t.Helper()
	var (
		mu       sync.Mutex
		requests []completionRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		var req completionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}

		mu.Lock()
		requests = append(requests, req)
		n := len(requests)
		mu.Unlock()

		if n > len(responses) {
			t.Errorf("unexpected completion request #%d", n)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(responses[n-1]))
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

const toolCallResponse = `{
  "id": "chatcmpl-1", "object": "chat.completion", "created": 1, "model": "gpt-4.1",
  "choices": [{"index": 0, "finish_reason": "tool_calls", "message": {
    "role": "assistant", "content": null,
    "tool_calls": [{"id": "call_1", "type": "function",
      "function": {"name": "get_current_time", "arguments": "{\"location\":\"Tokyo\"}"}}]
  }}]
}`

const finalResponse = `{
  "id": "chatcmpl-2", "object": "chat.completion", "created": 2, "model": "gpt-4.1",
  "choices": [{"index": 0, "finish_reason": "stop", "message": {
    "role": "assistant", "content": "It is 3:30 PM in Tokyo."
  }}]
}`

func newTestAssistant(srv *httptest.Server, tools ...Tool) *Assistant {
	return New(Config{BaseURL: srv.URL + "/", APIKey: "test-key"}, tools...)
}

func TestAssistant_Reply(t *testing.T) {
	ctx := context.Background()

	t.Run("runs the tool and returns the final answer", func(t *testing.T) {
		srv, requests := fakeCompletions(t, toolCallResponse, finalResponse)
		clock := &fakeTool{name: "get_current_time", out: `{"status":"success"}`}
		a := newTestAssistant(srv, clock)

		reply, err := a.Reply(ctx, model.NewConversation(model.Message{Role: model.RoleUser, Content: "What time is it in Tokyo?"}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if reply != "It is 3:30 PM in Tokyo." {
			t.Errorf("unexpected reply: %q", reply)
		}

		if diff := cmp.Diff(clock.args, []string{`{"location":"Tokyo"}`}); diff != "" {
			t.Errorf("tool arguments mismatch (-got +want):\n%s", diff)
		}

		if len(*requests) != 2 {
			t.Fatalf("expected 2 completion requests, got %d", len(*requests))
		}
		first := (*requests)[0]
		if first.Model != string(DefaultModel) {
			t.Errorf("expected default model, got %q", first.Model)
		}
		if first.Messages[0]["role"] != "system" || first.Messages[0]["content"] != Instruction {
			t.Errorf("expected instruction as system message, got %v", first.Messages[0])
		}
		if len(first.Tools) != 1 {
			t.Errorf("expected 1 tool definition, got %d", len(first.Tools))
		}

		second := (*requests)[1]
		last := second.Messages[len(second.Messages)-1]
		if last["role"] != "tool" || last["tool_call_id"] != "call_1" || last["content"] != `{"status":"success"}` {
			t.Errorf("expected tool result message, got %v", last)
		}
	})

	t.Run("tool failures are reported to the model", func(t *testing.T) {
		srv, requests := fakeCompletions(t, toolCallResponse, finalResponse)
		a := newTestAssistant(srv, &fakeTool{name: "get_current_time", err: errors.New("boom")})

		if _, err := a.Reply(ctx, model.NewConversation(model.Message{Role: model.RoleUser, Content: "Tokyo?"})); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		second := (*requests)[1]
		last := second.Messages[len(second.Messages)-1]
		if last["content"] != "Tool execution failed: boom" {
			t.Errorf("unexpected tool message: %v", last)
		}
	})

	t.Run("gives up after too many tool rounds", func(t *testing.T) {
		responses := make([]string, maxToolRounds)
		for i := range responses {
			responses[i] = toolCallResponse
		}
		srv, requests := fakeCompletions(t, responses...)
		clock := &fakeTool{name: "get_current_time", out: `{"status":"success"}`}
		a := newTestAssistant(srv, clock)

		_, err := a.Reply(ctx, model.NewConversation(model.Message{Role: model.RoleUser, Content: "Tokyo?"}))
		if err == nil || !strings.Contains(err.Error(), "too many tool calls") {
			t.Fatalf("expected tool round limit error, got %v", err)
		}
		if len(*requests) != maxToolRounds {
			t.Errorf("expected %d completion requests, got %d", maxToolRounds, len(*requests))
		}
		if len(clock.args) != maxToolRounds {
			t.Errorf("expected %d tool executions, got %d", maxToolRounds, len(clock.args))
		}
	})

	t.Run("empty conversation", func(t *testing.T) {
		srv, _ := fakeCompletions(t)
		a := newTestAssistant(srv)

		if _, err := a.Reply(ctx, model.NewConversation()); err == nil {
			t.Fatal("expected error for empty conversation, got nil")
		}
	})

	t.Run("uses configured model", func(t *testing.T) {
		srv, requests := fakeCompletions(t, finalResponse)
		a := New(Config{BaseURL: srv.URL + "/", APIKey: "k", Model: "gemini-2.5-flash"})

		if _, err := a.Reply(ctx, model.NewConversation(model.Message{Role: model.RoleUser, Content: "hi"})); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := (*requests)[0].Model; got != "gemini-2.5-flash" {
			t.Errorf("expected configured model, got %q", got)
		}
		if a.Model() != "gemini-2.5-flash" {
			t.Errorf("Model() = %q", a.Model())
		}
	})
}
