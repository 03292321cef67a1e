package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResult = `{
  "risk_level": "High Risk",
  "risk_class": "high",
  "score": 14,
  "max_score": 20,
  "reasons": ["Suspicious keyword detected: 'otp'", "Suspicious link detected"],
  "recommendation": "Do not click any links.",
  "category_scores": {"urgent": 3, "links": 1, "financial": 1, "threats": 0},
  "timestamp": "2024-01-02 10:11:12"
}`

func TestClient_Analyze(t *testing.T) {
	var gotBody AnalysisRequest
	var gotHeaders http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotHeaders = r.Header.Clone()
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResult))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/analyze", 0, 0, nil)
	res, err := c.Analyze(context.Background(), AnalysisRequest{Message: "send your OTP now"})
	require.NoError(t, err)

	assert.Equal(t, "send your OTP now", gotBody.Message)
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
	assert.NotEmpty(t, gotHeaders.Get("X-Request-ID"))

	assert.Equal(t, "high", res.RiskClass)
	assert.Equal(t, 14.0, res.Score)
	assert.Equal(t, 20.0, res.MaxScore)
	assert.Equal(t, 3, res.CategoryScores["urgent"])
	assert.Equal(t, []string{"Suspicious keyword detected: 'otp'", "Suspicious link detected"}, res.Reasons)
	assert.Equal(t, "2024-01-02 10:11:12", res.Timestamp)
}

func TestClient_NonSuccessStatus(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusInternalServerError, http.StatusServiceUnavailable} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error": "No message provided"}`, status)
		}))

		_, err := NewClient(srv.URL, 0, 0, nil).Analyze(context.Background(), AnalysisRequest{Message: "x"})
		srv.Close()

		var re *ResponseError
		require.True(t, errors.As(err, &re), "status %d", status)
		assert.Equal(t, status, re.StatusCode)
		assert.Contains(t, re.Body, "No message provided")
		assert.True(t, IsAnalysisFailure(err))
	}
}

func TestClient_BadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>oops</html>"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 0, 0, nil).Analyze(context.Background(), AnalysisRequest{Message: "x"})
	var re *ResponseError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, http.StatusOK, re.StatusCode)
}

func TestClient_OversizedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"reasons": ["` + strings.Repeat("a", 200) + `"]}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 0, 64, nil).Analyze(context.Background(), AnalysisRequest{Message: "x"})
	var re *ResponseError
	require.True(t, errors.As(err, &re))
	assert.Contains(t, re.Error(), "exceeds 64 bytes")
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, 0, 0, nil).Analyze(context.Background(), AnalysisRequest{Message: "x"})
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.True(t, IsAnalysisFailure(err))
}

func TestIsAnalysisFailure(t *testing.T) {
	assert.False(t, IsAnalysisFailure(nil))
	assert.False(t, IsAnalysisFailure(errors.New("other")))
	assert.True(t, IsAnalysisFailure(&ResponseError{StatusCode: 500}))
}

func TestFake(t *testing.T) {
	f := &Fake{Result: &AnalysisResult{Score: 3, MaxScore: 20}}
	res, err := f.Analyze(context.Background(), AnalysisRequest{Message: "a"})
	require.NoError(t, err)
	res.Score = 99
	assert.Equal(t, 3.0, f.Result.Score, "callers get a copy")

	f.Err = &TransportError{Err: errors.New("down")}
	_, err = f.Analyze(context.Background(), AnalysisRequest{Message: "b"})
	require.Error(t, err)

	assert.Equal(t, []AnalysisRequest{{Message: "a"}, {Message: "b"}}, f.Requests())
}
