package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spacebio/articles-api/services/rag"
)

var (
	serverAddr = flag.String("addr", "http://localhost:3000", "API server base URL")
	searchMode = flag.Bool("search", false, "Enable search mode (include related article cards)")
	timeout    = flag.Duration("timeout", 90*time.Second, "Per-question request timeout")
)

type askRequest struct {
	Question   string `json:"question"`
	SearchMode bool   `json:"searchMode"`
}

func main() {
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Println("\nShutting down...")
		cancel()
		os.Exit(0)
	}()

	client := &http.Client{Timeout: *timeout}

	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
	boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Println(boldGreen("🔭 Space Bioscience Q&A"))
	fmt.Printf("Server: %s\n", boldCyan(*serverAddr))
	if *searchMode {
		fmt.Println("Search mode enabled: related articles will be listed.")
	}
	fmt.Println("Type your question and press Enter. Type 'exit' or press Ctrl+C to quit.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(boldGreen("You: "))
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if strings.ToLower(question) == "exit" {
			break
		}

		envelope, err := ask(ctx, client, *serverAddr, question, *searchMode)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Println("\nMake sure the API server is running.")
			continue
		}

		fmt.Println(boldCyan("Answer:"))
		fmt.Println(envelope.Answer)
		fmt.Println()

		if len(envelope.RelatedArticles) > 0 {
			fmt.Println(yellow("Related articles:"))
			for _, card := range envelope.RelatedArticles {
				fmt.Printf("  - %s\n    %s\n    %s\n", card.Title, card.Summary, card.Link)
			}
			fmt.Println()
		}
	}
}

func ask(ctx context.Context, client *http.Client, addr, question string, searchMode bool) (*rag.AnswerEnvelope, error) {
	body, err := json.Marshal(askRequest{Question: question, SearchMode: searchMode})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, addr+"/api/rag/ask", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Message != "" {
			return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("server returned %d", resp.StatusCode)
	}

	var envelope rag.AnswerEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &envelope, nil
}
