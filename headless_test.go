package backdrop

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRunHeadlessTicks(t *testing.T) {
	r, host, _ := newTestRenderer(t)
	err := RunHeadless(context.Background(), host, HeadlessConfig{Hz: 1000, Ticks: 5})
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if r.Frames() != 5 {
		t.Errorf("Frames() = %d, want 5", r.Frames())
	}
}

func TestRunHeadlessCancel(t *testing.T) {
	_, host, _ := newTestRenderer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := RunHeadless(ctx, host, HeadlessConfig{Hz: 1000})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want DeadlineExceeded", err)
	}
}

func TestRunHeadlessDefaultHz(t *testing.T) {
	_, host, _ := newTestRenderer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := RunHeadless(ctx, host, HeadlessConfig{}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want Canceled", err)
	}
}
