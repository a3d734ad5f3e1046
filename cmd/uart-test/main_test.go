//go:build !gd32h7

package main

import (
	"strings"
	"testing"
	"time"

	"gd32h7-usart/board"
	"gd32h7-usart/console"
	"gd32h7-usart/platform"
)

func TestResultsReachReport(t *testing.T) {
	var lines []string
	saved := report
	report = func(s string) { lines = append(lines, s) }
	defer func() { report = saved }()

	jumper()
	port, err := console.Configure(platform.Bus(), board.UART1)
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}

	if !integrityTest(port, 256, 64, time.Second) {
		t.Fatalf("integrity failed over the simulated jumper")
	}
	throughput(port, 10*time.Millisecond)

	if len(lines) != 2 {
		t.Fatalf("reported %d lines, want 2: %q", len(lines), lines)
	}
	tx, rx, ok := strings.Cut(strings.TrimPrefix(lines[0], "[uart] integrity: tx="), " rx=")
	if !ok || tx != rx || !strings.HasPrefix(tx, "0x") {
		t.Fatalf("integrity line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "[uart] throughput: ") || !strings.HasSuffix(lines[1], "line max 11520 B/s)") {
		t.Fatalf("throughput line = %q", lines[1])
	}
}
