package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

var maxNodes int = 2000
var stations int = 8
var httpHostPort string = "127.0.0.1:1080"

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

type node struct {
	station string
	kind    string
	id      string
}

func main() {
	nodes := make([]node, maxNodes)
	for i := 0; i < maxNodes; i++ {
		kind := "esp32"
		if flipCoin() {
			kind = "rpi"
		}
		nodes[i] = node{
			station: fmt.Sprintf("%d", 1+i%stations),
			kind:    kind,
			id:      fmt.Sprintf("N%04d", i),
		}
	}
	fmt.Printf("generated %v node identities across %v stations\n", maxNodes, stations)

	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	startTime := time.Now()
	wg := sync.WaitGroup{}
	for i := 0; i < maxNodes; i++ {
		i := i
		wg.Add(1)
		go func() {
			sendHeartbeat(nodes[i])
			fmt.Printf("\rsent heartbeat for node %v", i)
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime := time.Since(startTime)

	fmt.Printf(
		"\rsent heartbeats for %v nodes: used time=%v seconds, throughput=%v action/second\n",
		maxNodes, usedTime.Seconds(), float64(maxNodes)/usedTime.Seconds(),
	)

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for i := 0; i < maxNodes; i++ {
		i := i
		wg.Add(1)
		go func() {
			for j := 0; j < 3; j++ {
				sendHeartbeat(nodes[i])
				time.Sleep(time.Duration(100+rnd.Int31n(1000)) * time.Millisecond)
			}
			listNodes()
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rdid actions for %v nodes: used time=%v seconds, throughput=%v action/second\n",
		maxNodes, usedTime.Seconds(), float64(maxNodes*4)/usedTime.Seconds(),
	)
}

func flipCoin() bool {
	return rnd.Int31n(100000)%2 == 0
}

func rndFloat64(min, max float64, decimal int) float64 {
	val := min + rnd.Float64()*(max-min)
	multiplier := float64(math.Pow10(decimal))
	return float64(math.Round(float64(val)*float64(multiplier))) / multiplier
}

func sendHeartbeat(n node) {
	payload := map[string]any{
		"station": n.station,
		"kind":    n.kind,
		"id":      n.id,
		"name":    fmt.Sprintf("bench %s", n.id),
		"meta": map[string]any{
			"uptime_s":  rnd.Int31n(100000),
			"battery_v": rndFloat64(3.0, 4.2, 2),
			"free_mb":   rnd.Int31n(32000),
		},
	}

	jsonData, _ := json.Marshal(payload)
	resp, err := http.Post(fmt.Sprintf("http://%s/nodes/update", httpHostPort), "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		fmt.Printf("\nerror: %v\n", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusTooManyRequests {
		fmt.Printf("\nresponse status code unexpected: %v\n", resp.StatusCode)
	}
}

func listNodes() {
	resp, err := http.Get(fmt.Sprintf("http://%s/nodes", httpHostPort))
	if err != nil {
		fmt.Printf("\nerror: %v\n", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("\nresponse status code != 200: %v\n", resp.StatusCode)
	}
}
