// Command voice uploads a 16kHz LINEAR16 clip to /api/chat/voice and
// prints the transcript and answer.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "server base URL")
	path := flag.String("file", "sample/question.wav", "audio clip to upload")
	flag.Parse()

	audio, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("reading audio file: %v", err)
	}
	fmt.Printf("📁 Loaded %s (%d bytes)\n", *path, len(audio))

	req, err := http.NewRequest(http.MethodPost, *baseURL+"/api/chat/voice", bytes.NewReader(audio))
	if err != nil {
		log.Fatalf("creating request: %v", err)
	}
	req.Header.Set("Content-Type", "audio/wav")

	client := &http.Client{Timeout: 60 * time.Second}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("sending request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("reading response: %v", err)
	}

	fmt.Printf("⏱️  %v, status %d\n", time.Since(start).Round(time.Millisecond), resp.StatusCode)
	fmt.Printf("📄 %s\n", body)
	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
}
