package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"mindease-backend/internal/config"
	"mindease-backend/internal/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngDataURI 生成一张1x1的PNG测试图
func pngDataURI(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func newTestEmotion(t *testing.T, engine http.HandlerFunc) *EmotionService {
	t.Helper()
	ts := httptest.NewServer(engine)
	t.Cleanup(ts.Close)

	return NewEmotionService(config.EngineConfig{
		BaseURL: ts.URL,
		Timeout: 5 * time.Second,
	})
}

func TestAnalyzeForwardsImageToEngine(t *testing.T) {
	svc := newTestEmotion(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/analyze", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.NotEmpty(t, body["image"])
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "emotion": "happy"})
	})

	emotion, err := svc.Analyze(context.Background(), pngDataURI(t))
	require.NoError(t, err)
	assert.Equal(t, "happy", emotion)
}

func TestAnalyzeRejectsInvalidBase64BeforeEngineCall(t *testing.T) {
	var engineCalls atomic.Int64
	svc := newTestEmotion(t, func(w http.ResponseWriter, r *http.Request) {
		engineCalls.Add(1)
	})

	_, err := svc.Analyze(context.Background(), "data:image/png;base64,@@not-base64@@")
	require.Error(t, err)
	assert.Equal(t, errs.KindDecode, errs.From(err).Kind)
	assert.Equal(t, int64(0), engineCalls.Load())
}

func TestAnalyzeRejectsNonImageBytes(t *testing.T) {
	var engineCalls atomic.Int64
	svc := newTestEmotion(t, func(w http.ResponseWriter, r *http.Request) {
		engineCalls.Add(1)
	})

	// base64合法但不是图片字节
	payload := base64.StdEncoding.EncodeToString([]byte("definitely not pixels"))
	_, err := svc.Analyze(context.Background(), "data:image/png;base64,"+payload)
	require.Error(t, err)
	assert.Equal(t, errs.KindDecode, errs.From(err).Kind)
	assert.Equal(t, int64(0), engineCalls.Load())
}

func TestAnalyzeEngineErrorSurfacesAsUpstreamFailure(t *testing.T) {
	svc := newTestEmotion(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "engine exploded"})
	})

	_, err := svc.Analyze(context.Background(), pngDataURI(t))
	require.Error(t, err)
	e := errs.From(err)
	assert.Equal(t, errs.KindUpstream, e.Kind)
	// 引擎内部错误信息不外泄
	assert.Equal(t, msgAnalyzeFailed, e.Message)
}
