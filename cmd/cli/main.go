package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// Interactive helper to register a site against a running API instance.
func main() {
	api := os.Getenv("API_BASE")
	if api == "" {
		api = "http://localhost:8080"
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Site name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Println("A name is required.")
		return
	}

	fmt.Print("URL for HTTP checks (blank to skip): ")
	rawURL, _ := reader.ReadString('\n')
	rawURL = strings.TrimSpace(rawURL)
	if rawURL != "" && !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}

	fmt.Print("Host/IP for ping checks (blank to skip): ")
	pingHost, _ := reader.ReadString('\n')
	pingHost = strings.TrimSpace(pingHost)

	if rawURL == "" && pingHost == "" {
		fmt.Println("At least one of URL or ping host is required.")
		return
	}

	body, _ := json.Marshal(map[string]any{
		"name":        name,
		"url":         rawURL,
		"ping_host":   pingHost,
		"enable_http": rawURL != "",
		"enable_ping": pingHost != "",
	})
	resp, err := http.Post(api+"/api/sites", "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Println("Error contacting API:", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		fmt.Println("Added! The next monitoring cycle will pick it up.")
	} else {
		fmt.Println("API returned status:", resp.Status)
	}
}
