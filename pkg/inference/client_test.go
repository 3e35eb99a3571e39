package inference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "What is Go?", req.Inputs)

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[{"generated_text": "Go is a language."}]`))
	}))
	defer server.Close()

	client := NewClient("test-token", server.URL, time.Second)
	result := client.Generate(context.Background(), "What is Go?")

	assert.Equal(t, Answer{Text: "Go is a language."}, result)
}

func TestGenerate_NonOKStatus(t *testing.T) {
	for _, status := range []int{http.StatusTooManyRequests, http.StatusServiceUnavailable, http.StatusUnauthorized} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			w.Write([]byte(`{"error": "Model is currently loading"}`))
		}))

		result := NewClient("k", server.URL, time.Second).Generate(context.Background(), "q")
		assert.Equal(t, APIError{StatusCode: status}, result)
		server.Close()
	}
}

func TestGenerate_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	result := NewClient("k", url, time.Second).Generate(context.Background(), "q")
	te, ok := result.(TransportError)
	require.True(t, ok, "got %T", result)
	assert.NotEmpty(t, te.Error())
}

func TestGenerate_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	result := NewClient("k", server.URL, 20*time.Millisecond).Generate(context.Background(), "q")
	assert.IsType(t, TransportError{}, result)
}

func TestGenerate_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>oops</html>`))
	}))
	defer server.Close()

	result := NewClient("k", server.URL, time.Second).Generate(context.Background(), "q")
	assert.IsType(t, MalformedResponse{}, result)
}

func TestParseGenerated(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		want      Result
		malformed bool
	}{
		{name: "list takes first element", body: `[{"generated_text":"a"},{"generated_text":"b"}]`, want: Answer{Text: "a"}},
		{name: "single object", body: `{"generated_text":"solo"}`, want: Answer{Text: "solo"}},
		{name: "object without field", body: `{"other":"x"}`, want: Answer{Text: NoAnswer}},
		{name: "empty string is still an answer", body: `{"generated_text":""}`, want: Answer{Text: ""}},
		{name: "empty list", body: `[]`, malformed: true},
		{name: "list element not object", body: `["text"]`, malformed: true},
		{name: "list element without field", body: `[{"other":"x"}]`, malformed: true},
		{name: "number field in list", body: `[{"generated_text":42}]`, malformed: true},
		{name: "null field in object", body: `{"generated_text":null}`, malformed: true},
		{name: "nested object field", body: `{"generated_text":{"text":"x"}}`, malformed: true},
		{name: "bare string", body: `"hello"`, malformed: true},
		{name: "invalid json", body: `{`, malformed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseGenerated([]byte(tt.body))
			if tt.malformed {
				assert.IsType(t, MalformedResponse{}, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResultErrors(t *testing.T) {
	assert.Equal(t, "api status 503", APIError{StatusCode: 503}.Error())
	assert.Equal(t, "malformed response: empty result list", MalformedResponse{Detail: "empty result list"}.Error())
}
