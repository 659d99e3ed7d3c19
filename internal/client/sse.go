package client

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"loom/internal/config"
	"loom/internal/logging"
	"loom/internal/types"
)

var (
	streamLogger     logging.Logger
	streamLoggerOnce sync.Once
)

// streamLog is gated on the client's resolved debug setting, so the
// debug.stream_debug TOML knob and the LOOM_STREAM_DEBUG env override both
// reach it through Settings.StreamDebugEnabled.
func (c *Client) streamLog() logging.Logger {
	if !c.streamDebug {
		return logging.Nop()
	}
	streamLoggerOnce.Do(func() {
		path, err := config.StreamDebugLogPath()
		if err == nil {
			if logger, ferr := logging.NewFile(path, logging.Debug); ferr == nil {
				streamLogger = logger.With(logging.F("component", "event-stream"))
				return
			}
		}
		streamLogger = logging.New(os.Stderr, logging.Debug).With(logging.F("component", "event-stream"))
	})
	return streamLogger
}

// EventStream opens the persistent session event channel. Decoded events are
// delivered in server order; unknown or malformed payloads are dropped here
// so a transport hiccup never reaches the reducer. The returned cancel func
// tears the stream down; the channel closes when the server ends the stream
// or the context is cancelled.
func (c *Client) EventStream(ctx context.Context, id string) (<-chan types.StreamEvent, func(), error) {
	if err := c.ensureToken(); err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	url := fmt.Sprintf("%s/sessions/%s/events?follow=1", c.baseURL, strings.TrimSpace(id))
	logger := c.streamLog().With(logging.F("session", id))
	logger.Debug("stream open", logging.F("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "text/event-stream")

	// The shared client carries a request timeout; streams must outlive it.
	httpClient := &http.Client{}
	resp, err := httpClient.Do(req)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		cancel()
		logger.Debug("stream rejected", logging.F("status", resp.StatusCode))
		return nil, nil, decodeAPIError(resp)
	}

	ch := make(chan types.StreamEvent, 256)
	go func() {
		defer close(ch)
		defer resp.Body.Close()

		start := time.Now()
		count := 0
		dropped := 0
		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		var dataLines []string

		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				if len(dataLines) == 0 {
					continue
				}
				payload := strings.Join(dataLines, "\n")
				dataLines = dataLines[:0]
				event, ok := types.DecodeStreamEvent([]byte(payload))
				if !ok {
					dropped++
					logger.Debug("stream drop", logging.F("payload", payload))
					continue
				}
				select {
				case ch <- event:
					count++
				case <-ctx.Done():
					return
				}
				continue
			}
			if strings.HasPrefix(line, "data:") {
				dataLines = append(dataLines, strings.TrimSpace(line[len("data:"):]))
			}
		}
		if err := scanner.Err(); err != nil {
			logger.Debug("stream scan error", logging.F("err", err))
		}
		logger.Debug("stream close",
			logging.F("count", count),
			logging.F("dropped", dropped),
			logging.F("dur", time.Since(start)))
	}()

	return ch, cancel, nil
}
