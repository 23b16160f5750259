package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spacebio/articles-api/services"
	"github.com/spacebio/articles-api/services/rag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAskService struct {
	envelope   *rag.AnswerEnvelope
	err        error
	fact       string
	question   string
	searchMode bool
	askCalls   int
}

func (f *fakeAskService) Ask(_ context.Context, question string, searchMode bool) (*rag.AnswerEnvelope, error) {
	f.askCalls++
	f.question = question
	f.searchMode = searchMode
	if f.err != nil {
		return nil, f.err
	}
	return f.envelope, nil
}

func (f *fakeAskService) FunFact(_ context.Context) string {
	return f.fact
}

func TestHandleAsk(t *testing.T) {
	service := &fakeAskService{
		envelope: &rag.AnswerEnvelope{
			Answer: "Los huesos pierden densidad en microgravedad.\n\n### Referencias\n\n1. **[Bone Loss](https://example.org/bone)**",
			RelatedArticles: []rag.RelatedArticleCard{
				{Title: "Muscle Atrophy", Summary: "Resumen...", Link: "https://example.org/muscle"},
			},
		},
	}
	handler := NewRagHandler(service, zap.NewNop())

	body := `{"question": "  ¿Qué pasa con los huesos?  ", "searchMode": true}`
	req := httptest.NewRequest(http.MethodPost, "/api/rag/ask", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.HandleAsk(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "¿Qué pasa con los huesos?", service.question)
	assert.True(t, service.searchMode)

	var got rag.AnswerEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, service.envelope.Answer, got.Answer)
	require.Len(t, got.RelatedArticles, 1)
	assert.Equal(t, "Muscle Atrophy", got.RelatedArticles[0].Title)
}

func TestHandleAskEmptyRelatedSerializesAsArray(t *testing.T) {
	service := &fakeAskService{
		envelope: &rag.AnswerEnvelope{
			Answer:          rag.NotFoundAnswer,
			RelatedArticles: []rag.RelatedArticleCard{},
		},
	}
	handler := NewRagHandler(service, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/rag/ask", strings.NewReader(`{"question": "nada"}`))
	rec := httptest.NewRecorder()

	handler.HandleAsk(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"relatedArticles":[]`)
}

func TestHandleAskInvalidBody(t *testing.T) {
	service := &fakeAskService{}
	handler := NewRagHandler(service, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/rag/ask", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	handler.HandleAsk(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, service.askCalls)
}

func TestHandleAskMissingQuestion(t *testing.T) {
	service := &fakeAskService{}
	handler := NewRagHandler(service, zap.NewNop())

	for _, body := range []string{`{}`, `{"question": "   "}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/rag/ask", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.HandleAsk(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
	assert.Zero(t, service.askCalls)
}

func TestHandleAskProviderFailure(t *testing.T) {
	service := &fakeAskService{
		err: services.WrapExternal("embedding request failed", assert.AnError),
	}
	handler := NewRagHandler(service, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/rag/ask", strings.NewReader(`{"question": "hola"}`))
	rec := httptest.NewRecorder()

	handler.HandleAsk(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestHandleFunFact(t *testing.T) {
	service := &fakeAskService{fact: rag.FunFactFallback}
	handler := NewRagHandler(service, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/rag/fun-fact", nil)
	rec := httptest.NewRecorder()

	handler.HandleFunFact(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got FunFactResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, rag.FunFactFallback, got.FunFact)
}
