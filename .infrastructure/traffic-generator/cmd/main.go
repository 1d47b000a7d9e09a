package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Метрики
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "traffic_requests_total",
		Help: "Запросы к fulfillment по шагу сценария и коду ответа",
	}, []string{"step", "code"})

	scenarioDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "traffic_scenario_duration_seconds",
		Help:    "Длительность сценария от оформления до захвата доставки",
		Buckets: []float64{0.05, 0.1, 0.3, 0.5, 1, 2},
	})
)

type generator struct {
	baseURL string
	drivers int
	client  *http.Client
}

func (g *generator) call(step, method, path string, body any) (*http.Response, error) {
	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequest(method, g.baseURL+path, &payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		requestsTotal.WithLabelValues(step, "error").Inc()
		return nil, err
	}
	requestsTotal.WithLabelValues(step, strconv.Itoa(resp.StatusCode)).Inc()
	return resp, nil
}

func (g *generator) seedCatalog() error {
	resp, err := g.call("catalog", http.MethodPut, "/catalog/pharmacies/ph-load", map[string]any{
		"name":    "Нагрузочная аптека",
		"address": "Невский, 1",
	})
	if err != nil {
		return err
	}
	resp.Body.Close()

	resp, err = g.call("catalog", http.MethodPut, "/catalog/medicines/med-load", map[string]any{
		"name":       "Парацетамол",
		"unit_price": "35.00",
	})
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// runScenario оформляет заказ, проводит его через проверку и разыгрывает доставку между курьерами.
func (g *generator) runScenario(iteration int) error {
	start := time.Now()
	defer func() {
		scenarioDuration.Observe(time.Since(start).Seconds())
	}()

	resp, err := g.call("checkout", http.MethodPost, "/orders", map[string]any{
		"patient_id":       fmt.Sprintf("patient-%d", iteration%50),
		"delivery_address": "Литейный, 10",
		"items": []map[string]any{
			{"medicine_id": "med-load", "pharmacy_id": "ph-load", "quantity": 1, "fulfillment_mode": "delivery"},
		},
	})
	if err != nil {
		return err
	}
	var order struct {
		ID string `json:"id"`
	}
	err = json.NewDecoder(resp.Body).Decode(&order)
	resp.Body.Close()
	if err != nil || order.ID == "" {
		return fmt.Errorf("checkout: status %d", resp.StatusCode)
	}

	for _, step := range []string{"start", "accept"} {
		resp, err := g.call("review_"+step, http.MethodPost, "/review/"+order.ID+"/"+step, nil)
		if err != nil {
			return err
		}
		resp.Body.Close()
	}

	// курьеры одновременно пытаются забрать одну доставку, выиграть должен один
	var wg sync.WaitGroup
	for d := 0; d < g.drivers; d++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			driverID := fmt.Sprintf("driver-%d-%d", iteration, d)
			resp, err := g.call("claim", http.MethodPost, "/dispatch/"+order.ID+"/claim", map[string]string{"driver_id": driverID})
			if err == nil {
				resp.Body.Close()
			}
		}()
	}
	wg.Wait()
	return nil
}

func main() {
	baseURL := os.Getenv("FULFILLMENT_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	drivers, err := strconv.Atoi(os.Getenv("TRAFFIC_DRIVERS"))
	if err != nil || drivers < 1 {
		drivers = 3
	}

	g := &generator{
		baseURL: baseURL,
		drivers: drivers,
		client:  &http.Client{Timeout: 5 * time.Second},
	}

	http.Handle("/metrics", promhttp.Handler())
	go http.ListenAndServe(":2112", nil)

	for {
		if err := g.seedCatalog(); err != nil {
			log.Printf("seed catalog: %v", err)
			time.Sleep(5 * time.Second)
			continue
		}
		break
	}

	for i := 0; ; i++ {
		if err := g.runScenario(i); err != nil {
			log.Printf("scenario %d: %v", i, err)
		}
		time.Sleep(time.Second)
	}
}
