//go:build ignore
// +build ignore

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/indicator-dashboard/internal/domain"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	indicators := flag.String("indicators", "GDP,Inflation Rate,Interest Rates", "Comma separated indicators")
	selection := flag.String("selection", "", "Selection label")
	wait := flag.Duration("wait", 60*time.Second, "How long to wait for the job result")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	event := domain.NarrativeJobEvent{
		JobID:      uuid.New(),
		Indicators: strings.Split(*indicators, ","),
		Selection:  *selection,
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// Публикация в стрим
	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamNarrativeRequested,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: %s\n", domain.StreamNarrativeRequested)
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Job ID: %s\n", event.JobID)
	fmt.Printf("   Indicators: %s\n", strings.Join(event.Indicators, ", "))

	// Ожидание результата в кэше задач
	key := "narrative:job:" + event.JobID.String()
	fmt.Printf("\nWaiting for %s...\n", key)

	timeout := time.After(*wait)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("Timeout waiting for job result")
			return
		case <-ticker.C:
			raw, err := client.Get(ctx, key).Bytes()
			if errors.Is(err, redis.Nil) {
				continue
			}
			if err != nil {
				log.Printf("Failed to read job: %v", err)
				continue
			}

			var job domain.NarrativeJob
			if err := json.Unmarshal(raw, &job); err != nil {
				log.Printf("Malformed job record: %v", err)
				continue
			}
			if job.Status == domain.JobPending {
				continue
			}

			pretty, _ := json.MarshalIndent(job, "", "  ")
			fmt.Printf("\nJob finished with status %s\n%s\n", job.Status, pretty)
			return
		}
	}
}
