// Command wschat is an interactive chat client for /api/ws.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gorilla/websocket"
)

type reply struct {
	Type     string `json:"type"`
	Response string `json:"response"`
	AudioURL string `json:"audio_url"`
	Error    string `json:"error"`
}

func main() {
	serverURL := flag.String("url", "ws://localhost:8080/api/ws", "websocket endpoint")
	flag.Parse()

	conn, _, err := websocket.DefaultDialer.Dial(*serverURL, nil)
	if err != nil {
		log.Fatalf("Failed to connect to server: %v", err)
	}
	defer conn.Close()

	go func() {
		for {
			var r reply
			if err := conn.ReadJSON(&r); err != nil {
				log.Println("Error reading message:", err)
				os.Exit(0)
			}
			if r.Type == "error" {
				fmt.Printf("\n! %s\n> ", r.Error)
				continue
			}
			fmt.Printf("\n%s\n", r.Response)
			if r.AudioURL != "" {
				fmt.Printf("🔊 %s\n", r.AudioURL)
			}
			fmt.Print("> ")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
		os.Exit(0)
	}()

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("Chat with Gerch (type 'exit' to quit):")
	fmt.Print("> ")
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "exit" {
			break
		}
		if text == "" {
			fmt.Print("> ")
			continue
		}
		frame, _ := json.Marshal(map[string]string{"message": text})
		if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			log.Println("Error sending message:", err)
			break
		}
	}
}
