// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// サービス層と整合性ガードから利用する。
type MetricsCollector interface {
	RecordChefCreated()
	RecordDishCreated()
	RecordCooksCreated()
	RecordCooksSwapped()
	RecordCascadeRemoved(kind string, count int)
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(method string, duration time.Duration)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	chefCreated    prometheus.Counter
	dishCreated    prometheus.Counter
	cooksCreated   prometheus.Counter
	cooksSwapped   prometheus.Counter
	cascadeRemoved *prometheus.CounterVec
	httpStatus     *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		chefCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chefbook_chef_created_total",
			Help: "作成されたシェフの合計数",
		}),
		dishCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chefbook_dish_created_total",
			Help: "作成された料理の合計数",
		}),
		cooksCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chefbook_cooks_created_total",
			Help: "作成されたCooks関係の合計数",
		}),
		cooksSwapped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chefbook_cooks_swapped_total",
			Help: "付け替えられたCooks関係の合計数",
		}),
		cascadeRemoved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chefbook_cascade_removed_total",
			Help: "エンティティ削除でカスケード削除されたCooks関係の合計数",
		}, []string{"kind"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chefbook_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "chefbook_request_latency_seconds",
			Help:    "HTTPリクエストのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}

	reg.MustRegister(
		c.chefCreated,
		c.dishCreated,
		c.cooksCreated,
		c.cooksSwapped,
		c.cascadeRemoved,
		c.httpStatus,
		c.requestLatency,
	)

	return c
}

// RecordChefCreated はシェフ作成を記録する。
func (c *Collector) RecordChefCreated() {
	c.chefCreated.Inc()
}

// RecordDishCreated は料理作成を記録する。
func (c *Collector) RecordDishCreated() {
	c.dishCreated.Inc()
}

// RecordCooksCreated はCooks関係の作成を記録する。
func (c *Collector) RecordCooksCreated() {
	c.cooksCreated.Inc()
}

// RecordCooksSwapped はCooks関係の付け替えを記録する。
func (c *Collector) RecordCooksSwapped() {
	c.cooksSwapped.Inc()
}

// RecordCascadeRemoved はカスケード削除されたCooks関係の件数を記録する。
// kindは削除起点のエンティティ種別（chef または dish）。
func (c *Collector) RecordCascadeRemoved(kind string, count int) {
	c.cascadeRemoved.WithLabelValues(kind).Add(float64(count))
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency はHTTPリクエストのレイテンシをメソッド別に記録する。
func (c *Collector) RecordRequestLatency(method string, duration time.Duration) {
	c.requestLatency.WithLabelValues(method).Observe(duration.Seconds())
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
