package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"
)

// applyPayload mirrors the /ledger/apply request body
type applyPayload struct {
	UserID         string `json:"userId"`
	Delta          int64  `json:"delta"`
	Reason         string `json:"reason"`
	IdempotencyKey string `json:"idempotencyKey"`
}

// transferPayload mirrors the /ledger/transfer request body
type transferPayload struct {
	SenderID    string `json:"senderId"`
	RecipientID string `json:"recipientId"`
	Amount      int64  `json:"amount"`
	TransferID  string `json:"transferId"`
}

// requestResult contains metrics for a single request
type requestResult struct {
	Success      bool
	Duplicate    bool
	ResponseTime time.Duration
	StatusCode   int
	Error        error
}

// testStats contains aggregated counters across all workers
type testStats struct {
	TotalRequests      int
	SuccessfulRequests int
	FailedRequests     int
	DuplicateReplays   int
	TotalTime          time.Duration
	MinResponseTime    time.Duration
	MaxResponseTime    time.Duration
	TotalResponseTime  time.Duration
	ResponseTimes      []time.Duration
	ErrorCounts        map[string]int
	UserStats          map[string]int
	ScenarioStats      map[string]int
	Lock               sync.Mutex
}

// scenario defines one kind of traffic the test generates
type scenario struct {
	Name     string
	Delta    int64 // ignored for transfers
	Reason   string
	Transfer bool
}

func main() {
	concurrency := flag.Int("c", 5, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 100, "Total number of requests to make")
	userIDsStr := flag.String("u", "alice,bob,carol", "Comma-separated list of user IDs to distribute load across")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	delayMs := flag.Int("delay", 100, "Delay between requests in milliseconds")
	retryRate := flag.Float64("retry", 0.1, "Fraction of requests that reuse a previous idempotency key")
	flag.Parse()

	var userIDs []string
	for _, id := range strings.Split(*userIDsStr, ",") {
		if id = strings.TrimSpace(id); id != "" {
			userIDs = append(userIDs, id)
		}
	}
	if len(userIDs) == 0 {
		userIDs = []string{"alice"}
	}

	scenarios := []scenario{
		{Name: "Reward Small", Delta: 10, Reason: "workout_reward"},
		{Name: "Reward Medium", Delta: 25, Reason: "workout_reward"},
		{Name: "Reward Large", Delta: 50, Reason: "workout_reward"},
		{Name: "Purchase Small", Delta: -15, Reason: "purchase"},
		{Name: "Purchase Large", Delta: -40, Reason: "purchase"},
		{Name: "Transfer", Delta: 20, Transfer: true},
	}

	fmt.Printf("Load testing ledger API across %d users: %v\n", len(userIDs), userIDs)
	fmt.Printf("Scenarios: %d combinations, retry rate %.0f%%\n", len(scenarios), *retryRate*100)
	fmt.Printf("Concurrency: %d goroutines\n", *concurrency)
	fmt.Printf("Total requests: %d\n", *totalRequests)
	fmt.Printf("Delay between requests: %d ms\n", *delayMs)

	stats := &testStats{
		TotalRequests:   *totalRequests,
		MinResponseTime: time.Hour,
		ErrorCounts:     make(map[string]int),
		ResponseTimes:   make([]time.Duration, 0, *totalRequests),
		UserStats:       make(map[string]int),
		ScenarioStats:   make(map[string]int),
	}

	results := make(chan requestResult, *totalRequests)
	jobs := make(chan int, *totalRequests)

	var wg sync.WaitGroup
	fmt.Println("Starting worker goroutines...")
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			worker(workerID, *baseURL, *delayMs, *retryRate, userIDs, scenarios, jobs, results, stats)
		}(i)
	}

	go func() {
		for i := 0; i < *totalRequests; i++ {
			jobs <- i
		}
		close(jobs)
	}()

	go func() {
		for result := range results {
			stats.Lock.Lock()
			if result.Success {
				stats.SuccessfulRequests++
				if result.Duplicate {
					stats.DuplicateReplays++
				}
			} else {
				stats.FailedRequests++
				errMsg := "unknown"
				if result.Error != nil {
					errMsg = result.Error.Error()
				}
				stats.ErrorCounts[errMsg]++
			}

			stats.ResponseTimes = append(stats.ResponseTimes, result.ResponseTime)
			stats.TotalResponseTime += result.ResponseTime

			if result.ResponseTime < stats.MinResponseTime {
				stats.MinResponseTime = result.ResponseTime
			}
			if result.ResponseTime > stats.MaxResponseTime {
				stats.MaxResponseTime = result.ResponseTime
			}
			stats.Lock.Unlock()
		}
	}()

	startTime := time.Now()
	fmt.Println("Test running...")

	ticker := time.NewTicker(1 * time.Second)
	go func() {
		for range ticker.C {
			stats.Lock.Lock()
			completed := stats.SuccessfulRequests + stats.FailedRequests
			if completed > 0 {
				fmt.Printf("Progress: %d/%d requests completed (%.1f%%)\n",
					completed, stats.TotalRequests, float64(completed)/float64(stats.TotalRequests)*100)
			}
			stats.Lock.Unlock()
		}
	}()

	wg.Wait()
	close(results)
	ticker.Stop()

	stats.TotalTime = time.Since(startTime)

	printResults(stats)
}

func worker(id int, baseURL string, delayMs int, retryRate float64, userIDs []string,
	scenarios []scenario, jobs <-chan int, results chan<- requestResult, stats *testStats) {

	client := &http.Client{
		Timeout: 10 * time.Second,
	}

	// Keys this worker already used, reused to exercise the replay path
	var usedKeys []string

	for jobID := range jobs {
		if delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}

		userID := userIDs[rand.Intn(len(userIDs))]
		sc := scenarios[rand.Intn(len(scenarios))]

		stats.Lock.Lock()
		stats.UserStats[userID]++
		stats.ScenarioStats[sc.Name]++
		stats.Lock.Unlock()

		var apiURL string
		var body any
		if sc.Transfer {
			recipient := userIDs[rand.Intn(len(userIDs))]
			if recipient == userID {
				recipient = userIDs[(rand.Intn(len(userIDs))+1)%len(userIDs)]
			}
			apiURL = baseURL + "/ledger/transfer"
			body = transferPayload{
				SenderID:    userID,
				RecipientID: recipient,
				Amount:      sc.Delta,
				TransferID:  fmt.Sprintf("lt-%d-%d", id, jobID),
			}
		} else {
			key := fmt.Sprintf("lt-%d-%d-%d", id, jobID, rand.Intn(1000000))
			if len(usedKeys) > 0 && rand.Float64() < retryRate {
				key = usedKeys[rand.Intn(len(usedKeys))]
			} else {
				usedKeys = append(usedKeys, key)
			}
			apiURL = baseURL + "/ledger/apply"
			body = applyPayload{
				UserID:         userID,
				Delta:          sc.Delta,
				Reason:         sc.Reason,
				IdempotencyKey: key,
			}
		}

		jsonData, err := json.Marshal(body)
		if err != nil {
			results <- requestResult{Success: false, Error: err}
			continue
		}

		req, err := http.NewRequest(http.MethodPost, apiURL, bytes.NewBuffer(jsonData))
		if err != nil {
			results <- requestResult{Success: false, Error: err}
			continue
		}
		req.Header.Set("Content-Type", "application/json")

		startTime := time.Now()
		resp, err := client.Do(req)
		responseTime := time.Since(startTime)

		result := requestResult{
			ResponseTime: responseTime,
		}

		if err != nil {
			result.Success = false
			result.Error = err
		} else {
			result.StatusCode = resp.StatusCode
			result.Success = resp.StatusCode >= 200 && resp.StatusCode < 300

			if result.Success && !sc.Transfer {
				var parsed struct {
					WasDuplicate bool `json:"wasDuplicate"`
				}
				if err := json.NewDecoder(resp.Body).Decode(&parsed); err == nil {
					result.Duplicate = parsed.WasDuplicate
				}
			}
			if !result.Success {
				// Rejected debits are expected traffic, not failures
				if resp.StatusCode == http.StatusBadRequest && sc.Delta < 0 {
					result.Success = true
				} else {
					result.Error = fmt.Errorf("HTTP status code %d", resp.StatusCode)
				}
			}
			resp.Body.Close()
		}

		results <- result
	}
}

func printResults(stats *testStats) {
	rawTps := float64(stats.SuccessfulRequests) / stats.TotalTime.Seconds()
	theoreticalTps := float64(stats.TotalRequests) / stats.TotalTime.Seconds()
	adjustedTps := theoreticalTps * (float64(stats.SuccessfulRequests) / float64(stats.TotalRequests))

	var avgResponseTime time.Duration
	if len(stats.ResponseTimes) > 0 {
		avgResponseTime = stats.TotalResponseTime / time.Duration(len(stats.ResponseTimes))
	}

	var p50, p90, p95, p99 time.Duration
	if len(stats.ResponseTimes) > 0 {
		sortedTimes := make([]time.Duration, len(stats.ResponseTimes))
		copy(sortedTimes, stats.ResponseTimes)
		sort.Slice(sortedTimes, func(i, j int) bool { return sortedTimes[i] < sortedTimes[j] })

		p50 = sortedTimes[len(sortedTimes)*50/100]
		p90 = sortedTimes[len(sortedTimes)*90/100]
		p95 = sortedTimes[len(sortedTimes)*95/100]
		p99 = sortedTimes[len(sortedTimes)*99/100]
	}

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Requests:      %d\n", stats.TotalRequests)
	fmt.Printf("Successful Requests: %d (%.1f%%)\n", stats.SuccessfulRequests,
		float64(stats.SuccessfulRequests)/float64(stats.TotalRequests)*100)
	fmt.Printf("Failed Requests:     %d (%.1f%%)\n", stats.FailedRequests,
		float64(stats.FailedRequests)/float64(stats.TotalRequests)*100)
	fmt.Printf("Duplicate Replays:   %d\n", stats.DuplicateReplays)
	fmt.Printf("Total Test Time:     %.2f seconds\n", stats.TotalTime.Seconds())

	fmt.Println("\n----------------- PERFORMANCE -----------------")
	fmt.Printf("Raw TPS:             %.2f (successful requests / total time)\n", rawTps)
	fmt.Printf("Theoretical TPS:     %.2f (if all requests were successful)\n", theoreticalTps)
	fmt.Printf("Success-adjusted TPS: %.2f (theoretical * success rate)\n", adjustedTps)

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average Response:    %v\n", avgResponseTime)
	fmt.Printf("Minimum Response:    %v\n", stats.MinResponseTime)
	fmt.Printf("Maximum Response:    %v\n", stats.MaxResponseTime)
	fmt.Printf("P50 Response:        %v\n", p50)
	fmt.Printf("P90 Response:        %v\n", p90)
	fmt.Printf("P95 Response:        %v\n", p95)
	fmt.Printf("P99 Response:        %v\n", p99)

	fmt.Println("\n----------------- USER DISTRIBUTION -----------------")
	totalUsers := 0
	for _, count := range stats.UserStats {
		totalUsers += count
	}
	for userID, count := range stats.UserStats {
		if count > 0 {
			fmt.Printf("User %-10s: %d requests (%.1f%%)\n", userID, count,
				float64(count)/float64(totalUsers)*100)
		}
	}

	fmt.Println("\n----------------- SCENARIO DISTRIBUTION -----------------")
	totalScenarios := 0
	for _, count := range stats.ScenarioStats {
		totalScenarios += count
	}
	for name, count := range stats.ScenarioStats {
		if count > 0 {
			fmt.Printf("%-15s: %d requests (%.1f%%)\n", name, count,
				float64(count)/float64(totalScenarios)*100)
		}
	}

	if stats.FailedRequests > 0 {
		fmt.Println("\n----------------- ERROR DISTRIBUTION -----------------")
		for errMsg, count := range stats.ErrorCounts {
			fmt.Printf("%-40s: %d (%.1f%%)\n", errMsg, count,
				float64(count)/float64(stats.TotalRequests)*100)
		}
	}

	fmt.Println("================================================")
}
