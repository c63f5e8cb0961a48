package health

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// Redis keys for request counters, written by middleware.HealthMarker.
const (
	KeyReqTotal  = "health:global:req_total"
	KeyReqErrors = "health:global:req_errors"
	KeyResTime   = "health:global:res_time_total"
	KeyResCount  = "health:global:res_count"
	KeyStartTime = "health:global:start_time"
	KeyLastReq   = "health:global:last_request"
	KeyErrorLog  = "health:global:error_log"

	// ErrorLogSize is how many 5xx entries are kept.
	ErrorLogSize = 50
)

// AllKeys lists every counter key, for Reset.
var AllKeys = []string{KeyReqTotal, KeyReqErrors, KeyResTime, KeyResCount, KeyStartTime, KeyLastReq, KeyErrorLog}

// DBPinger is optional for health check. If nil, database is reported as disconnected.
type DBPinger interface {
	PingContext(ctx context.Context) error
}

type Result struct {
	Status       string               `json:"status"`
	Runtime      RuntimeInfo          `json:"runtime"`
	Traffic      TrafficInfo          `json:"traffic"`
	Dependencies map[string]DepStatus `json:"dependencies"`
}

type RuntimeInfo struct {
	UptimeSeconds int64  `json:"uptimeSeconds"`
	HeapMB        int    `json:"heapMB"`
	Goroutines    int    `json:"goroutines"`
	Platform      string `json:"platform"`
	GoVersion     string `json:"goVersion"`
}

type TrafficInfo struct {
	TotalRequests   int         `json:"totalRequests"`
	SuccessCount    int         `json:"successCount"`
	FailedCount     int         `json:"failedCount"`
	SuccessRate     string      `json:"successRate"`
	AvgResponseTime interface{} `json:"avgResponseTime"`
	LastRequest     interface{} `json:"lastRequest"`
}

type DepStatus struct {
	Status string `json:"status"`
	PingMs *int64 `json:"pingMs"`
}

// Collector gathers health data from Redis, the database and HTTP dependencies.
type Collector struct {
	Rdb *redis.Client
	DB  DBPinger
	// Probes maps a dependency name to a URL that should answer any HTTP status.
	Probes map[string]string
	Client *http.Client
}

// Collect runs every check concurrently. Checks never fail the call; they
// report "error", "disconnected" or "unreachable" instead.
func (c *Collector) Collect(ctx context.Context) Result {
	result := Result{Dependencies: make(map[string]DepStatus), Traffic: TrafficInfo{SuccessRate: "100", AvgResponseTime: 0}}
	startTimeMs := time.Now().UnixMilli()
	var mu sync.Mutex
	set := func(name string, st DepStatus) {
		mu.Lock()
		result.Dependencies[name] = st
		mu.Unlock()
	}

	var g errgroup.Group
	g.Go(func() error {
		if c.DB == nil {
			set("database", DepStatus{Status: "disconnected"})
			return nil
		}
		start := time.Now()
		if err := c.DB.PingContext(ctx); err != nil {
			set("database", DepStatus{Status: "error"})
			return nil
		}
		set("database", DepStatus{Status: "connected", PingMs: since(start)})
		return nil
	})
	g.Go(func() error {
		if c.Rdb == nil {
			set("redis", DepStatus{Status: "disconnected"})
			return nil
		}
		start := time.Now()
		if err := c.Rdb.Ping(ctx).Err(); err != nil {
			set("redis", DepStatus{Status: "error"})
			return nil
		}
		set("redis", DepStatus{Status: "connected", PingMs: since(start)})
		traffic, started := c.traffic(ctx, startTimeMs)
		mu.Lock()
		result.Traffic, startTimeMs = traffic, started
		mu.Unlock()
		return nil
	})
	for name, url := range c.Probes {
		name, url := name, url
		g.Go(func() error {
			if ms := c.probe(ctx, url); ms != nil {
				set(name, DepStatus{Status: "reachable", PingMs: ms})
			} else {
				set(name, DepStatus{Status: "unreachable"})
			}
			return nil
		})
	}
	_ = g.Wait()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	uptime := (time.Now().UnixMilli() - startTimeMs) / 1000
	if uptime < 0 {
		uptime = 0
	}
	result.Runtime = RuntimeInfo{
		UptimeSeconds: uptime,
		HeapMB:        int(m.HeapInuse / 1024 / 1024),
		Goroutines:    runtime.NumGoroutine(),
		Platform:      runtime.GOOS + " (" + runtime.GOARCH + ")",
		GoVersion:     runtime.Version(),
	}

	result.Status = "issue"
	if result.Dependencies["database"].Status == "connected" && result.Dependencies["redis"].Status == "connected" {
		result.Status = "ok"
	}
	return result
}

func (c *Collector) traffic(ctx context.Context, startTimeMs int64) (TrafficInfo, int64) {
	stats := TrafficInfo{AvgResponseTime: 0, SuccessRate: "100"}
	vals, err := c.Rdb.MGet(ctx, KeyReqTotal, KeyReqErrors, KeyResTime, KeyResCount, KeyStartTime, KeyLastReq).Result()
	if err != nil {
		return stats, startTimeMs
	}
	str := func(i int) string {
		s, _ := vals[i].(string)
		return s
	}

	if s := str(4); s != "" {
		if t, err := strconv.ParseInt(s, 10, 64); err == nil {
			startTimeMs = t
		}
	} else {
		c.Rdb.Set(ctx, KeyStartTime, startTimeMs, 0)
	}

	stats.TotalRequests, _ = strconv.Atoi(str(0))
	stats.FailedCount, _ = strconv.Atoi(str(1))
	stats.SuccessCount = stats.TotalRequests - stats.FailedCount
	if stats.TotalRequests > 0 {
		stats.SuccessRate = strconv.FormatFloat(float64(stats.SuccessCount)/float64(stats.TotalRequests)*100, 'f', 1, 64)
	}
	timeSum, _ := strconv.ParseFloat(str(2), 64)
	count, _ := strconv.Atoi(str(3))
	if count > 0 {
		stats.AvgResponseTime = strconv.FormatFloat(timeSum/float64(count), 'f', 2, 64)
	}
	if s := str(5); s != "" {
		var last map[string]interface{}
		_ = json.Unmarshal([]byte(s), &last)
		stats.LastRequest = last
	}
	return stats, startTimeMs
}

func (c *Collector) probe(ctx context.Context, url string) *int64 {
	client := c.Client
	if client == nil {
		client = &http.Client{Timeout: 3 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil
	}
	resp.Body.Close()
	return since(start)
}

func since(start time.Time) *int64 {
	ms := time.Since(start).Milliseconds()
	return &ms
}

// Errors returns the most recent 5xx entries, newest first.
func Errors(ctx context.Context, rdb *redis.Client) ([]map[string]interface{}, error) {
	entries, err := rdb.LRange(ctx, KeyErrorLog, 0, ErrorLogSize-1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]map[string]interface{}, 0, len(entries))
	for _, s := range entries {
		var m map[string]interface{}
		if json.Unmarshal([]byte(s), &m) == nil && m != nil {
			out = append(out, m)
		}
	}
	return out, nil
}

// Reset clears the counters and restarts the uptime clock.
func Reset(ctx context.Context, rdb *redis.Client) error {
	if err := rdb.Del(ctx, AllKeys...).Err(); err != nil {
		return err
	}
	return rdb.Set(ctx, KeyStartTime, strconv.FormatInt(time.Now().UnixMilli(), 10), 0).Err()
}
