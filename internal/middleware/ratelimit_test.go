package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func testRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		GeneralRate:     rate.Limit(1.0), // 1 req/sec
		GeneralBurst:    2,
		WriteRate:       rate.Limit(1.0),
		WriteBurst:      1,
		CleanupInterval: time.Hour,
	}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// バースト上限までは許可され、超過すると429になることを検証
func TestGeneralMiddleware_BurstThenLimited(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig())
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(okHandler())

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/chefs", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want %d", i+1, rec.Code, http.StatusOK)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/chefs", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Retry-After ヘッダーが設定されていません")
	}
}

// ホストごとに独立したリミッターが使われることを検証
func TestGeneralMiddleware_PerHostIsolation(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig())
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(okHandler())

	// ホストAの枠を使い切る
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/chefs", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	// ホストBは影響を受けない
	req := httptest.NewRequest(http.MethodGet, "/api/chefs", nil)
	req.RemoteAddr = "192.0.2.2:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	if rl.GeneralLimiterCount() != 2 {
		t.Errorf("GeneralLimiterCount = %d, want 2", rl.GeneralLimiterCount())
	}
}

// 書き込み系リミッターがAPI全般と独立に動作することを検証
func TestWriteMiddleware_IndependentOfGeneral(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig())
	defer rl.Stop()

	writeHandler := rl.WriteMiddleware()(okHandler())
	generalHandler := rl.GeneralMiddleware()(okHandler())

	// 書き込み系の枠（バースト1）を使い切る
	req := httptest.NewRequest(http.MethodPost, "/api/cooks", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	rec := httptest.NewRecorder()
	writeHandler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/cooks", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	rec = httptest.NewRecorder()
	writeHandler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}

	// API全般のリミッターは消費されていない
	req = httptest.NewRequest(http.MethodGet, "/api/cooks", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	rec = httptest.NewRecorder()
	generalHandler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("general status = %d, want %d", rec.Code, http.StatusOK)
	}
}

// clientKeyがRemoteAddrのホスト部を抽出することを検証
func TestClientKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	if got := clientKey(req); got != "192.0.2.1" {
		t.Errorf("clientKey = %q, want %q", got, "192.0.2.1")
	}

	// ポートなしの場合はそのまま
	req.RemoteAddr = "192.0.2.1"
	if got := clientKey(req); got != "192.0.2.1" {
		t.Errorf("clientKey = %q, want %q", got, "192.0.2.1")
	}
}

// cleanupが期限切れエントリを削除することを検証
func TestRateLimiter_Cleanup(t *testing.T) {
	cfg := testRateLimiterConfig()
	cfg.CleanupInterval = time.Millisecond
	rl := NewRateLimiter(cfg)
	defer rl.Stop()

	rl.getOrCreateGeneralLimiter("192.0.2.1")
	rl.getOrCreateWriteLimiter("192.0.2.1")

	// lastAccessを過去に書き換えてクリーンアップ対象にする
	rl.generalMu.Lock()
	rl.generalLimiters["192.0.2.1"].lastAccess = time.Now().Add(-time.Hour)
	rl.generalMu.Unlock()
	rl.writeMu.Lock()
	rl.writeLimiters["192.0.2.1"].lastAccess = time.Now().Add(-time.Hour)
	rl.writeMu.Unlock()

	rl.cleanup()

	if rl.GeneralLimiterCount() != 0 {
		t.Errorf("GeneralLimiterCount = %d, want 0", rl.GeneralLimiterCount())
	}
	if rl.WriteLimiterCount() != 0 {
		t.Errorf("WriteLimiterCount = %d, want 0", rl.WriteLimiterCount())
	}
}
