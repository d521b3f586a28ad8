package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cloudwego/eino/compose"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradepulse/tradepulse/config"
	"github.com/tradepulse/tradepulse/internal/orchestration"
	"github.com/tradepulse/tradepulse/internal/processing"
	"github.com/tradepulse/tradepulse/models"
)

type fakeEngine struct {
	snaps  []*models.AnalysisState
	signal *processing.SignalProcessor
}

func (f *fakeEngine) CreateInitialState(ticker, date string) (*models.AnalysisState, error) {
	return models.NewAnalysisState(ticker, date), nil
}

func (f *fakeEngine) GraphArgs() []compose.Option { return nil }

func (f *fakeEngine) Stream(ctx context.Context, init *models.AnalysisState, opts ...compose.Option) (orchestration.SnapshotStream, error) {
	return &fakeStream{snaps: f.snaps}, nil
}

func (f *fakeEngine) ProcessSignal(text string) models.Decision {
	return f.signal.ExtractDecision(text)
}

type fakeStream struct {
	snaps []*models.AnalysisState
	pos   int
}

func (s *fakeStream) Recv() (*models.AnalysisState, error) {
	if s.pos >= len(s.snaps) {
		return nil, io.EOF
	}
	snap := s.snaps[s.pos]
	s.pos++
	return snap, nil
}

func (s *fakeStream) Close() {}

func newTestServer(snaps []*models.AnalysisState) *Server {
	cfg := config.DefaultConfig()
	return New(cfg,
		WithPacing(0),
		WithEngineFactory(func(ctx context.Context, rc *orchestration.RunConfig, cfg *config.Config) (orchestration.Engine, error) {
			return &fakeEngine{snaps: snaps, signal: processing.NewSignalProcessor()}, nil
		}))
}

func analysisBody(t *testing.T) *strings.Reader {
	t.Helper()
	b, err := json.Marshal(models.AnalysisRequest{
		Ticker:        "nvda",
		AnalysisDate:  "2026-05-10",
		Analysts:      []string{"market"},
		ResearchDepth: 1,
		LLMProvider:   "openai",
	})
	require.NoError(t, err)
	return strings.NewReader(string(b))
}

func decodeFrames(t *testing.T, body string) []frame {
	t.Helper()
	var frames []frame
	for _, line := range strings.Split(body, "\n") {
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var f frame
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &f))
		frames = append(frames, f)
	}
	return frames
}

func TestAnalyzeStreamsReportsThenComplete(t *testing.T) {
	snap := models.NewAnalysisState("NVDA", "2026-05-10")
	snap.MarketReport = "momentum favors longs"
	snap.FinalTradeDecision = "FINAL TRANSACTION PROPOSAL: **BUY**"
	srv := newTestServer([]*models.AnalysisState{snap})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyze", analysisBody(t)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	frames := decodeFrames(t, rec.Body.String())
	require.NotEmpty(t, frames)

	last := frames[len(frames)-1]
	assert.Equal(t, "complete", last.Type)
	assert.Equal(t, "BUY", last.Decision)
	assert.Contains(t, last.Report, "momentum favors longs")

	var sawMarket bool
	for _, f := range frames[:len(frames)-1] {
		require.Equal(t, "report", f.Type)
		if f.Field == "market_report" {
			sawMarket = true
			assert.Equal(t, "Market Report", f.Author)
			assert.Equal(t, "momentum favors longs", f.Message)
		}
	}
	assert.True(t, sawMarket)
}

func TestAnalyzeEmptyRunEndsWithErrorFrame(t *testing.T) {
	srv := newTestServer(nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyze", analysisBody(t)))

	require.Equal(t, http.StatusOK, rec.Code)
	frames := decodeFrames(t, rec.Body.String())
	require.Len(t, frames, 1)
	assert.Equal(t, "error", frames[0].Type)
	assert.NotEmpty(t, frames[0].Error)
}

func TestAnalyzeRejectsInvalidRequest(t *testing.T) {
	srv := newTestServer(nil)

	body := strings.NewReader(`{"ticker":"1234","analysis_date":"2026-05-10","analysts":["market"],"research_depth":1}`)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyze", body))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ticker", resp["field"])
}

func TestAnalyzeRejectsMalformedJSON(t *testing.T) {
	srv := newTestServer(nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader("{not json")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
