package domain

import (
	"crypto/rand"
	"strconv"
	"strings"
	"sync"
	"time"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// IDGenerator mints order and tracking identifiers. Order ids follow the
// historical "ORD-<unix ms>" format; the generator bumps the timestamp when
// two orders land on the same millisecond so ids stay unique and strictly
// time-ordered within a process.
type IDGenerator struct {
	mu     sync.Mutex
	lastMS int64
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

func (g *IDGenerator) NewOrderID() string {
	g.mu.Lock()
	ms := time.Now().UnixMilli()
	if ms <= g.lastMS {
		ms = g.lastMS + 1
	}
	g.lastMS = ms
	g.mu.Unlock()

	return "ORD-" + strconv.FormatInt(ms, 10)
}

// NewTrackingID returns "TRK-" plus eight random upper-case base36 characters.
func (g *IDGenerator) NewTrackingID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken;
		// fall back to the clock rather than abort checkout.
		ns := time.Now().UnixNano()
		for i := range buf {
			buf[i] = byte(ns >> (i * 8))
		}
	}
	out := make([]byte, 8)
	for i, c := range buf {
		out[i] = base36[int(c)%len(base36)]
	}
	return "TRK-" + strings.ToUpper(string(out))
}
