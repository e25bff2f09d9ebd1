// Package benchmark drives concurrent load against the HTTP API.
package benchmark

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// APIBenchmark fires Requests calls at BaseURL with at most Concurrency in flight
type APIBenchmark struct {
	BaseURL     string
	Concurrency int
	Requests    int
	AuthToken   string
	Client      *http.Client
}

// BenchmarkResult summarises one run
type BenchmarkResult struct {
	URL            string        `json:"url"`
	Method         string        `json:"method"`
	Concurrency    int           `json:"concurrency"`
	TotalRequests  int           `json:"total_requests"`
	SuccessCount   int           `json:"success_count"`
	FailureCount   int           `json:"failure_count"`
	TotalTime      time.Duration `json:"total_time"`
	AverageTime    time.Duration `json:"average_time"`
	MinTime        time.Duration `json:"min_time"`
	MaxTime        time.Duration `json:"max_time"`
	RequestsPerSec float64       `json:"requests_per_sec"`
	StatusCodes    map[int]int   `json:"status_codes"`
	Errors         []string      `json:"errors"`
}

type requestResult struct {
	Duration   time.Duration
	StatusCode int
	Error      error
}

// NewAPIBenchmark creates a runner with a 10s client timeout
func NewAPIBenchmark(baseURL string, concurrency, requests int, authToken string) *APIBenchmark {
	return &APIBenchmark{
		BaseURL:     baseURL,
		Concurrency: concurrency,
		Requests:    requests,
		AuthToken:   authToken,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// RunGET benchmarks a GET endpoint
func (b *APIBenchmark) RunGET(path string) *BenchmarkResult {
	return b.run(http.MethodGet, b.BaseURL+path, nil)
}

// RunPOST benchmarks a POST endpoint, sending the same JSON payload every time
func (b *APIBenchmark) RunPOST(path string, payload interface{}) *BenchmarkResult {
	url := b.BaseURL + path
	body, err := json.Marshal(payload)
	if err != nil {
		return &BenchmarkResult{
			URL:    url,
			Method: http.MethodPost,
			Errors: []string{fmt.Sprintf("encode payload: %v", err)},
		}
	}
	return b.run(http.MethodPost, url, body)
}

func (b *APIBenchmark) run(method, url string, payload []byte) *BenchmarkResult {
	results := make(chan requestResult, b.Requests)
	var wg sync.WaitGroup
	limiter := make(chan struct{}, b.Concurrency)

	startTime := time.Now()
	for i := 0; i < b.Requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			limiter <- struct{}{}
			defer func() { <-limiter }()

			start := time.Now()
			req, err := http.NewRequest(method, url, bytes.NewReader(payload))
			if err != nil {
				results <- requestResult{Error: err}
				return
			}
			req.Header.Set("Content-Type", "application/json")
			if b.AuthToken != "" {
				req.Header.Set("Authorization", "Bearer "+b.AuthToken)
			}

			resp, err := b.Client.Do(req)
			if err != nil {
				results <- requestResult{Error: err}
				return
			}
			resp.Body.Close()

			results <- requestResult{
				Duration:   time.Since(start),
				StatusCode: resp.StatusCode,
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	result := &BenchmarkResult{
		URL:           url,
		Method:        method,
		Concurrency:   b.Concurrency,
		TotalRequests: b.Requests,
		MinTime:       1<<63 - 1,
		StatusCodes:   make(map[int]int),
	}
	var totalTime time.Duration
	for r := range results {
		if r.Error != nil {
			result.FailureCount++
			result.Errors = append(result.Errors, r.Error.Error())
			continue
		}

		totalTime += r.Duration
		if r.Duration < result.MinTime {
			result.MinTime = r.Duration
		}
		if r.Duration > result.MaxTime {
			result.MaxTime = r.Duration
		}

		result.StatusCodes[r.StatusCode]++
		if r.StatusCode >= 200 && r.StatusCode < 300 {
			result.SuccessCount++
		} else {
			result.FailureCount++
		}
	}

	result.TotalTime = time.Since(startTime)
	result.RequestsPerSec = float64(b.Requests) / result.TotalTime.Seconds()
	if done := result.SuccessCount + result.FailureCount; done > 0 {
		result.AverageTime = totalTime / time.Duration(done)
	}
	return result
}

// SuccessRate is the share of 2xx answers in percent
func (r *BenchmarkResult) SuccessRate() float64 {
	if r.TotalRequests == 0 {
		return 0
	}
	return float64(r.SuccessCount) / float64(r.TotalRequests) * 100
}

// Fields renders the result for structured logging
func (r *BenchmarkResult) Fields() logrus.Fields {
	fields := logrus.Fields{
		"url":              r.URL,
		"method":           r.Method,
		"concurrency":      r.Concurrency,
		"total_requests":   r.TotalRequests,
		"success_count":    r.SuccessCount,
		"failure_count":    r.FailureCount,
		"total_time":       r.TotalTime.String(),
		"average_time":     r.AverageTime.String(),
		"min_time":         r.MinTime.String(),
		"max_time":         r.MaxTime.String(),
		"requests_per_sec": fmt.Sprintf("%.2f", r.RequestsPerSec),
		"status_codes":     r.StatusCodes,
	}
	if len(r.Errors) > 0 {
		shown := r.Errors
		if len(shown) > 5 {
			shown = shown[:5]
		}
		fields["errors"] = shown
	}
	return fields
}
