package timex

import (
	"time"

	"gd32h7-usart/x/mathx"
)

// PeriodFromHz returns the period of a freqHz clock.
// freqHz==0 is coerced to 1 to avoid division by zero.
func PeriodFromHz(freqHz uint32) time.Duration {
	if freqHz == 0 {
		freqHz = 1
	}
	return time.Duration(uint64(time.Second) / uint64(freqHz))
}

// FrameTime is the line time of one serial frame of bits (start, data,
// parity and stop bits together) at baud, rounded up to the nanosecond.
func FrameTime(baud uint32, bits int) time.Duration {
	if baud == 0 {
		baud = 1
	}
	return time.Duration(mathx.CeilDiv(uint64(bits)*uint64(time.Second), uint64(baud)))
}

// TransferTime is the line time of n back-to-back frames.
func TransferTime(n int, baud uint32, bits int) time.Duration {
	if baud == 0 {
		baud = 1
	}
	return time.Duration(mathx.CeilDiv(uint64(n)*uint64(bits)*uint64(time.Second), uint64(baud)))
}

// FrameRate is the most frames per second the line can carry.
func FrameRate(baud uint32, bits int) uint32 {
	if bits <= 0 {
		return 0
	}
	return baud / uint32(bits)
}
