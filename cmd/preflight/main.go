// Preflight verifies the host can actually run the monitor: a usable
// ping binary, a writable database directory, and notification config.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	if path, err := exec.LookPath("ping"); err != nil {
		fail("ping binary not found on PATH — ICMP checks cannot run.")
	} else {
		ok("ping found at " + path)
	}

	dbPath := strings.TrimSpace(os.Getenv("DATABASE_PATH"))
	if dbPath == "" {
		dbPath = "network_monitor.db"
		warn("DATABASE_PATH empty; default " + dbPath + " will be used.")
	}
	dir := filepath.Dir(dbPath)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		fail("database directory " + dir + " does not exist.")
	}
	probeFile := filepath.Join(dir, ".preflight")
	if f, err := os.Create(probeFile); err != nil {
		fail("database directory " + dir + " is not writable.")
	} else {
		f.Close()
		os.Remove(probeFile)
		ok("database directory writable")
	}

	if strings.TrimSpace(os.Getenv("SLACK_WEBHOOK")) == "" {
		warn("SLACK_WEBHOOK empty — down/recovery notifications disabled.")
	} else {
		ok("SLACK_WEBHOOK present")
	}

	ok("preflight passed")
}
