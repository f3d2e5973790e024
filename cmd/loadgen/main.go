package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// loadgen fires concurrent order creations at a running order service and
// reports how many were admitted versus rejected.
func main() {
	target := flag.String("target", "http://localhost:8084", "base URL of the order service")
	userID := flag.String("user", "", "buyer user ID to order as")
	productID := flag.String("product", "", "product ID to order")
	total := flag.Int("n", 50, "total number of orders to send")
	concurrency := flag.Int("c", 10, "number of concurrent workers")
	flag.Parse()

	if *userID == "" || *productID == "" {
		log.Fatal("both -user and -product are required")
	}

	body, err := json.Marshal(map[string]any{
		"user_id":     *userID,
		"product_ids": []string{*productID},
	})
	if err != nil {
		log.Fatalf("marshal request: %v", err)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	url := *target + "/api/orders"

	var created atomic.Int32
	var rejected atomic.Int32
	var failed atomic.Int32

	jobs := make(chan struct{})
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				resp, err := client.Post(url, "application/json", bytes.NewReader(body))
				if err != nil {
					failed.Add(1)
					continue
				}
				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()

				switch resp.StatusCode {
				case http.StatusCreated:
					created.Add(1)
				case http.StatusUnprocessableEntity:
					rejected.Add(1)
				default:
					failed.Add(1)
				}
			}
		}()
	}

	for i := 0; i < *total; i++ {
		jobs <- struct{}{}
	}
	close(jobs)
	wg.Wait()
	elapsed := time.Since(start)

	fmt.Println("========== LOAD TEST RESULTS ==========")
	fmt.Printf("Target:           %s\n", url)
	fmt.Printf("Total Requests:   %d\n", *total)
	fmt.Printf("Created:          %d\n", created.Load())
	fmt.Printf("Rejected:         %d\n", rejected.Load())
	fmt.Printf("Failed:           %d\n", failed.Load())
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Printf("Throughput:       %.1f req/s\n", float64(*total)/elapsed.Seconds())
	fmt.Println("=======================================")
}
