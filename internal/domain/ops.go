package domain

// ServiceMetrics is the operational snapshot returned by the metrics summary
// endpoint. Values come from the Prometheus counters, read back once per call.
type ServiceMetrics struct {
	TotalRequests int64   `json:"totalRequests"`
	ErrorRate     float64 `json:"errorRate"`
	BackendErrors int64   `json:"backendErrors"`
	CacheHitRate  float64 `json:"cacheHitRate"`
	Period        string  `json:"period"`
}
