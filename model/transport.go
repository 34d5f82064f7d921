package model

import (
	"fmt"
	"strings"
)

// Transport identifies one of the three independent satellite links carried
// aboard the aircraft.
type Transport string

const (
	TransportX  Transport = "X"
	TransportKa Transport = "Ka"
	TransportKu Transport = "Ku"
)

// Transports returns all transports in canonical order. Everything that
// iterates per-transport output uses this order so results are deterministic.
func Transports() []Transport {
	return []Transport{TransportX, TransportKa, TransportKu}
}

// Valid reports whether t is one of the three known transports.
func (t Transport) Valid() bool {
	switch t {
	case TransportX, TransportKa, TransportKu:
		return true
	}
	return false
}

// ParseTransport maps a string to a Transport, case-insensitively.
func ParseTransport(s string) (Transport, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x", "x-band":
		return TransportX, nil
	case "ka", "ka-band":
		return TransportKa, nil
	case "ku", "ku-band":
		return TransportKu, nil
	default:
		return "", fmt.Errorf("unknown transport %q", s)
	}
}
