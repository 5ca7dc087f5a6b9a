// Command smoke runs a live check of every chat route against a running
// server, printing one line per case.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

type chatResponse struct {
	Response    string `json:"response"`
	NeedsSearch bool   `json:"needs_search"`
	SearchData  *struct {
		Images []struct {
			URL string `json:"url"`
		} `json:"images"`
	} `json:"search_data"`
}

type testCase struct {
	message string
	expect  string // substring of the response; empty means an image in search_data
}

var cases = []testCase{
	{"generate an image of a sunset over mountains", ""},
	{"bitcoin price", "Cryptocurrency Prices"},
	{"research papers on quantum computing", "Research Papers"},
	{"stack overflow python async await", "Programming Questions"},
	{"weather in London", "Temperature:"},
	{"tell me about pikachu pokemon", "Height:"},
	{"show me a dog", ""},
	{"tell me a joke", "😄"},
	{"programming quote", "—"},
	{"what is my ip", "IP Information"},
	{"define serendipity", "serendipity"},
	{"2 + 3 * 4", "14"},
	{"hello", ""},
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "server base URL")
	flag.Parse()

	client := &http.Client{Timeout: 60 * time.Second}
	failed := 0
	for _, tc := range cases {
		start := time.Now()
		resp, err := chat(client, *baseURL, tc.message)
		elapsed := time.Since(start).Round(time.Millisecond)
		if err != nil {
			failed++
			fmt.Printf("❌ %-48s %v\n", tc.message, err)
			continue
		}

		ok := resp.Response != ""
		switch {
		case tc.expect != "":
			ok = strings.Contains(resp.Response, tc.expect)
		case tc.message != "hello":
			ok = resp.SearchData != nil && len(resp.SearchData.Images) > 0
		}
		if !ok {
			failed++
			fmt.Printf("❌ %-48s %s: %.80q\n", tc.message, elapsed, resp.Response)
			continue
		}
		fmt.Printf("✅ %-48s %s\n", tc.message, elapsed)
	}

	if failed > 0 {
		log.Printf("%d of %d cases failed", failed, len(cases))
		os.Exit(1)
	}
}

func chat(client *http.Client, baseURL, message string) (chatResponse, error) {
	body, _ := json.Marshal(map[string]any{"message": message, "conversation_history": []any{}})
	resp, err := client.Post(baseURL+"/api/chat", "application/json", bytes.NewReader(body))
	if err != nil {
		return chatResponse{}, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return chatResponse{}, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return chatResponse{}, fmt.Errorf("status %d: %s", resp.StatusCode, data)
	}

	var out chatResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return chatResponse{}, fmt.Errorf("decoding response: %w", err)
	}
	return out, nil
}
