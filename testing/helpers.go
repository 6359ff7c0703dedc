// Package testing provides record fixtures and helpers shared by tests.
package testing

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/zoobzio/record"
)

// Point is the two-field record used throughout the examples.
type Point struct {
	X float64 `prop:"x"`
	Y float64 `prop:"y"`
}

// Reading mixes the scalar and slice kinds stores commonly widen or stringify.
type Reading struct {
	Sensor string   `prop:"sensor"`
	Value  float64  `prop:"value"`
	Count  int      `prop:"count"`
	Tags   []string `prop:"tags"`
	Active bool     `prop:"active"`
}

// SampleReading returns a Reading with every field set.
func SampleReading() Reading {
	return Reading{
		Sensor: "thermo-1",
		Value:  21.5,
		Count:  3,
		Tags:   []string{"lab", "north"},
		Active: true,
	}
}

// SKU is a wrapped identifier with no exported fields. It is stored as its
// string form and rebuilt by ParseSKU.
type SKU struct {
	prefix string
	number int
}

// NewSKU returns a SKU.
func NewSKU(prefix string, number int) SKU {
	return SKU{prefix: prefix, number: number}
}

// ParseSKU parses "PREFIX-NUMBER".
func ParseSKU(s string) (SKU, error) {
	prefix, num, ok := strings.Cut(s, "-")
	if !ok || prefix == "" {
		return SKU{}, fmt.Errorf("malformed sku %q", s)
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return SKU{}, fmt.Errorf("malformed sku %q: %w", s, err)
	}
	return SKU{prefix: prefix, number: n}, nil
}

func (s SKU) String() string {
	return s.prefix + "-" + strconv.Itoa(s.number)
}

// LineItem references a SKU.
type LineItem struct {
	SKU      SKU `prop:"sku"`
	Quantity int `prop:"quantity"`
}

// RegisterSKUParser installs ParseSKU as the string parser for SKU.
func RegisterSKUParser() {
	record.RegisterParser(ParseSKU)
}

// Codec returns a codec for T or fails the test.
func Codec[T any](t testing.TB, opts ...record.Option) *record.Codec[T] {
	t.Helper()
	c, err := record.New[T](opts...)
	if err != nil {
		t.Fatalf("record.New[%T]() error: %v", *new(T), err)
	}
	return c
}
