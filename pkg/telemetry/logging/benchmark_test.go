package logging

import (
	"context"
	"io"
	"testing"
)

func BenchmarkLogger_Info_Enabled(b *testing.B) {
	logger, err := New(Config{Level: "info", Format: "json", Writer: io.Discard})
	if err != nil {
		b.Fatalf("Failed to create logger: %v", err)
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		logger.Info("record checked", "index", i, "violations", 0)
	}
}

func BenchmarkLogger_Debug_Disabled(b *testing.B) {
	logger, err := New(Config{Level: "info", Format: "json", Writer: io.Discard})
	if err != nil {
		b.Fatalf("Failed to create logger: %v", err)
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		logger.Debug("record checked", "index", i)
	}
}

func BenchmarkLogger_InfoContext(b *testing.B) {
	logger, err := New(Config{Level: "info", Format: "json", Writer: io.Discard})
	if err != nil {
		b.Fatalf("Failed to create logger: %v", err)
	}
	ctx := WithMode(WithRunID(context.Background(), "run-1"), "publish")

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		logger.InfoContext(ctx, "gate finished", "errors", i)
	}
}
