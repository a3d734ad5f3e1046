package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gd32h7-usart/errcode"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	root := newRootCmd()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRunDefaultTable(t *testing.T) {
	out, err := execute(t, "run", "--message", "hi\r\n")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(out, "# uart1 tx=PA9 rx=PA10\n") {
		t.Fatalf("missing header:\n%s", out)
	}
	if !strings.HasSuffix(out, "hi\r\n") {
		t.Fatalf("message not transmitted:\n%q", out)
	}
}

func TestRunDescriptorLoopback(t *testing.T) {
	out, err := execute(t, "run", "-u", "uart4 UART3 PC10 PC11", "-m", "ping", "--loopback")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "# uart4 tx=PC10 rx=PC11\nping") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, `# rx 4 bytes: "ping"`) {
		t.Fatalf("loopback not read back:\n%s", out)
	}
}

func TestRunBoardFileAndTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	yml := "uarts:\n  - {name: uart2, instance: USART1, tx: PA2, rx: PA3}\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "run", "--board", path, "--trace", "-m", "x")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	// USART1 clock enable in APB1EN, bit 17.
	if !strings.Contains(out, "# W 0x58024440 0x00000000 -> 0x00020000") {
		t.Fatalf("trace lacks the clock enable:\n%s", out)
	}
}

func TestRunUnsupportedInstance(t *testing.T) {
	_, err := execute(t, "run", "-u", "uart1 0x40009000 PA9 PA10")
	if errcode.Of(err) != errcode.Unsupported {
		t.Fatalf("err = %v, want unsupported", err)
	}
}

func TestDecode(t *testing.T) {
	out, err := execute(t, "decode", "PA9", "pb0", "PZ1")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []string{
		"PA9   port=0x58020000 mask=0x00000200",
		"pb0   port=0x58020400 mask=0x00000001",
	}
	for _, w := range want {
		if !strings.Contains(out, w+"\n") {
			t.Fatalf("missing %q in:\n%s", w, out)
		}
	}
	if !strings.Contains(out, "PZ1") || !strings.Contains(out, "not a valid pin") {
		t.Fatalf("invalid pin not flagged:\n%s", out)
	}
}

func TestTable(t *testing.T) {
	out, err := execute(t, "table", "--all")
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	if n := strings.Count(out, "\n"); n != 5 {
		t.Fatalf("%d rows, want 5:\n%s", n, out)
	}
	if !strings.Contains(out, "4 uart5  0x40005000 irq=53 tx=PC12 rx=PD2") {
		t.Fatalf("uart5 row wrong:\n%s", out)
	}

	out, err = execute(t, "table", "--yaml")
	if err != nil {
		t.Fatalf("table --yaml: %v", err)
	}
	if !strings.Contains(out, "instance: USART0") {
		t.Fatalf("yaml output:\n%s", out)
	}
}
