package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/chefbook/internal/middleware"
)

// HealthChecker はヘルスチェックでのDB疎通確認のためのインターフェース。
// *sql.DBが満たす。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	HealthChecker     HealthChecker
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter

	// メトリクス公開用ハンドラー（nilの場合は/metricsを公開しない）
	MetricsHandler http.Handler

	// ドメインサービス
	ChefService  ChefServiceInterface
	DishService  DishServiceInterface
	CooksService CooksServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	SecurityHeaders → CORS → RateLimit(General)
//
// /health と /metrics はレート制限の外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	chefHandler := NewChefHandler(deps.ChefService)
	dishHandler := NewDishHandler(deps.DishService)
	cooksHandler := NewCooksHandler(deps.CooksService)

	// --- 運用エンドポイント（レート制限の対象外） ---

	r.Get("/health", healthHandler(deps.HealthChecker))

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	// --- APIルート ---
	// 書き込み系エンドポイントには書き込み専用レート制限を追加する。
	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimiter.GeneralMiddleware())
		writeLimit := deps.RateLimiter.WriteMiddleware()

		// シェフ管理
		r.Route("/api/chefs", func(r chi.Router) {
			r.Get("/", chefHandler.ListChefs)
			r.With(writeLimit).Post("/", chefHandler.CreateChef)

			r.Route("/{name}", func(r chi.Router) {
				r.With(writeLimit).Patch("/", chefHandler.UpdateChef)
				r.With(writeLimit).Delete("/", chefHandler.DeleteChef)
			})
		})

		// 料理管理
		r.Route("/api/dishes", func(r chi.Router) {
			r.Get("/", dishHandler.ListDishes)
			r.With(writeLimit).Post("/", dishHandler.CreateDish)

			r.Route("/{name}", func(r chi.Router) {
				r.With(writeLimit).Patch("/", dishHandler.UpdateDish)
				r.With(writeLimit).Delete("/", dishHandler.DeleteDish)
			})
		})

		// Cooks関係管理
		r.Route("/api/cooks", func(r chi.Router) {
			r.Get("/", cooksHandler.ListCooks)
			r.With(writeLimit).Post("/", cooksHandler.CreateCooks)
			r.With(writeLimit).Delete("/", cooksHandler.DeleteCooks)
			r.With(writeLimit).Put("/swap", cooksHandler.SwapCooks)
		})
	})

	return r
}

// healthHandler はDB疎通を確認するヘルスチェックハンドラーを返す。
func healthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
			defer cancel()

			if err := checker.PingContext(ctx); err != nil {
				slog.Error("health check failed", slog.String("error", err.Error()))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"status":"unhealthy"}`))
				return
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}
}
