package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"bookshelf/internal/config"
)

type authorPayload struct {
	FName string `json:"fname"`
	LName string `json:"lname"`
}

type bookPayload struct {
	Title       string          `json:"title"`
	PublishedAt string          `json:"publishedAt"`
	Authors     []authorPayload `json:"authors"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	var (
		baseURL = flag.String("url", "http://localhost"+cfg.Addr(), "Base URL of a running API")
		count   = flag.Int("count", 20, "Number of books to create")
	)
	flag.Parse()

	client := &http.Client{Timeout: 5 * time.Second}
	ctx := context.Background()

	log.Printf("Creating %d books against %s...", *count, *baseURL)
	for i := 0; i < *count; i++ {
		if err := postBook(ctx, client, *baseURL, randomBook(i)); err != nil {
			log.Fatalf("Failed to create book %d: %v", i+1, err)
		}
		if (i+1)%10 == 0 {
			log.Printf("Created %d/%d books", i+1, *count)
		}
	}
	log.Printf("Successfully created %d books!", *count)
}

func postBook(ctx context.Context, client *http.Client, baseURL string, b bookPayload) error {
	body, err := json.Marshal(b)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/v1/books", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return nil
}

// randomBook draws authors from a small pool so that some are reused.
func randomBook(i int) bookPayload {
	n := 1 + rand.Intn(2)
	authors := make([]authorPayload, 0, n)
	for j := 0; j < n; j++ {
		authors = append(authors, authorPayload{
			FName: firstNames[rand.Intn(len(firstNames))],
			LName: lastNames[rand.Intn(len(lastNames))],
		})
	}
	return bookPayload{
		Title:       fmt.Sprintf("%s of %s %d", getRandomWord(), getRandomWord(), i+1),
		PublishedAt: strconv.Itoa(1950 + rand.Intn(75)),
		Authors:     authors,
	}
}

var (
	firstNames = []string{"Ada", "Chimamanda", "Haruki", "Isabel", "Ngugi", "Octavia", "Orhan", "Toni"}
	lastNames  = []string{"Adichie", "Allende", "Butler", "Morrison", "Murakami", "Pamuk", "Thiong'o", "Ware"}
)

func getRandomWord() string {
	words := []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Love", "War", "Peace", "Science", "Nature", "Technology", "History", "Future",
		"Past", "Present", "Reality", "Imagination", "Wisdom", "Life", "Death",
		"Light", "Darkness", "World", "Universe", "Time", "Space", "Mind", "Soul",
	}
	return words[rand.Intn(len(words))]
}
