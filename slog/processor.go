// Package slog decorates pressroom services with structured logging.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/pressroom"
)

var (
	_ pressroom.ContentProcessor = (*LoggingProcessor)(nil)
	_ pressroom.Converter        = (*LoggingConverter)(nil)
)

// LoggingProcessor wraps a ContentProcessor with debug logging.
type LoggingProcessor struct {
	next   pressroom.ContentProcessor
	logger *slog.Logger
}

// NewLoggingProcessor creates a new LoggingProcessor.
func NewLoggingProcessor(next pressroom.ContentProcessor, logger *slog.Logger) *LoggingProcessor {
	return &LoggingProcessor{next: next, logger: logger}
}

// Process delegates to the wrapped processor and logs input size,
// output size and heading count.
func (p *LoggingProcessor) Process(html string) (result pressroom.ProcessingResult) {
	defer func(begin time.Time) {
		p.logger.Debug("process",
			"bytes_in", len(html),
			"bytes_out", len(result.ProcessedContent),
			"headings", len(result.TOCItems),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return p.next.Process(html)
}

// LoggingConverter wraps a Converter with debug logging.
type LoggingConverter struct {
	next   pressroom.Converter
	logger *slog.Logger
}

// NewLoggingConverter creates a new LoggingConverter.
func NewLoggingConverter(next pressroom.Converter, logger *slog.Logger) *LoggingConverter {
	return &LoggingConverter{next: next, logger: logger}
}

// Convert delegates to the wrapped converter and logs the operation.
func (c *LoggingConverter) Convert(html string) (markdown string, err error) {
	defer func(begin time.Time) {
		c.logger.Debug("convert",
			"bytes_in", len(html),
			"bytes_out", len(markdown),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Convert(html)
}
