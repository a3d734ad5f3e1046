// uart-test checks the console UART end to end. On the board, jumper TX to
// RX; on a host build the simulator loops the line back itself.
package main

import (
	"context"
	"hash/fnv"
	"time"

	"gd32h7-usart/board"
	"gd32h7-usart/console"
	"gd32h7-usart/platform"
	"gd32h7-usart/x/conv"
	"gd32h7-usart/x/strconvx"
	"gd32h7-usart/x/timex"
)

func main() {
	println("[uart] boot …")
	jumper()

	port, err := console.Init(platform.Bus(), board.Enabled())
	if err != nil {
		println("[uart] FAIL: init:", err.Error())
		return
	}
	u := port.UART()
	println("[uart] up:", u.Name, "tx", u.TX, "rx", u.RX)

	// --- Smoke test ---
	println("[uart] smoke: send 'hello-uart' and verify")
	if got, ok := roundTrip(port, []byte("hello-uart"), time.Second); ok {
		println("[uart] smoke: PASS")
	} else {
		println("[uart] smoke: FAIL; got bytes=", len(got))
	}

	// --- Integrity test (FNV-1a over 4096 bytes, chunk 64) ---
	println("[uart] integrity: 4096 bytes, chunk 64")
	if integrityTest(port, 4096, 64, 5*time.Second) {
		println("[uart] integrity: PASS")
	} else {
		println("[uart] integrity: FAIL")
	}

	// --- Throughput (one byte in flight) ---
	println("[uart] throughput: 2s")
	throughput(port, 2*time.Second)
}

// ---------------- helpers ----------------

// report prints a result line through the runtime, never through the port
// under test.
var report = func(s string) { println(s) }

// roundTrip sends msg a byte at a time and collects each echo. The receiver
// holds one byte, so nothing is sent until the previous byte is back.
func roundTrip(p *console.Port, msg []byte, timeout time.Duration) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	got := make([]byte, 0, len(msg))
	for _, c := range msg {
		if err := p.WriteByteContext(ctx, c); err != nil {
			return got, false
		}
		b, err := readByte(ctx, p)
		if err != nil {
			return got, false
		}
		got = append(got, b)
	}
	return got, string(got) == string(msg)
}

func readByte(ctx context.Context, p *console.Port) (byte, error) {
	for {
		b, err := p.ReadByte()
		if err == nil {
			return b, nil
		}
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		time.Sleep(50 * time.Microsecond)
	}
}

func integrityTest(p *console.Port, total, chunk int, timeout time.Duration) bool {
	txh, rxh := fnv.New32a(), fnv.New32a()
	buf := make([]byte, chunk)
	deadline := time.Now().Add(timeout)
	var seq byte
	for sent := 0; sent < total; sent += chunk {
		for i := range buf {
			buf[i] = seq
			seq++
		}
		_, _ = txh.Write(buf)
		got, ok := roundTrip(p, buf, time.Until(deadline))
		_, _ = rxh.Write(got)
		if !ok {
			println("[uart] integrity: short at", sent+len(got))
			return false
		}
	}
	report("[uart] integrity: tx=" + conv.Addr(txh.Sum32()) + " rx=" + conv.Addr(rxh.Sum32()))
	return txh.Sum32() == rxh.Sum32()
}

func throughput(p *console.Port, d time.Duration) {
	start := time.Now()
	n := 0
	for time.Since(start) < d {
		if _, ok := roundTrip(p, []byte{byte(n)}, 100*time.Millisecond); !ok {
			break
		}
		n++
	}
	el := time.Since(start)
	rate := int64(n) * 1000 / max(el.Milliseconds(), 1)
	report("[uart] throughput: " + strconvx.Itoa(n) + " bytes in " + strconvx.FormatInt(el.Milliseconds(), 10) + "ms (" +
		strconvx.FormatInt(rate, 10) + " B/s, line max " + strconvx.Itoa(int(timex.FrameRate(console.Baud, console.FrameBits))) + " B/s)")
}
