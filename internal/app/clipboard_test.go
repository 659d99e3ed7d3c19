package app

import (
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"loom/internal/session"
	"loom/internal/types"
)

func swapClipboardSeams(t *testing.T) {
	t.Helper()
	origWriteAll := clipboardWriteAll
	origWriteOSC52 := clipboardWriteOSC52
	origOpenTTY := openTTYForWrite
	t.Cleanup(func() {
		clipboardWriteAll = origWriteAll
		clipboardWriteOSC52 = origWriteOSC52
		openTTYForWrite = origOpenTTY
	})
}

func TestCopyTextToClipboardUsesSystemBackend(t *testing.T) {
	swapClipboardSeams(t)

	fallbackCalled := false
	clipboardWriteAll = func(string) error { return nil }
	clipboardWriteOSC52 = func(string) error {
		fallbackCalled = true
		return nil
	}

	method, err := copyTextToClipboard("hello")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if method != clipboardMethodSystem {
		t.Fatalf("expected system method, got %v", method)
	}
	if fallbackCalled {
		t.Fatal("expected no OSC52 fallback call")
	}
}

func TestCopyTextToClipboardFallsBackToOSC52(t *testing.T) {
	swapClipboardSeams(t)

	fallbackCalled := false
	clipboardWriteAll = func(string) error { return errors.New("exit status 1") }
	clipboardWriteOSC52 = func(string) error {
		fallbackCalled = true
		return nil
	}

	method, err := copyTextToClipboard("hello")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if method != clipboardMethodOSC52 {
		t.Fatalf("expected OSC52 method, got %v", method)
	}
	if !fallbackCalled {
		t.Fatal("expected OSC52 fallback call")
	}
}

func TestCopyTextToClipboardHelpfulErrorWhenDisplayMissing(t *testing.T) {
	swapClipboardSeams(t)

	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")
	t.Setenv("TERM", "xterm-256color")

	clipboardWriteAll = func(string) error { return errors.New("exit status 1") }
	clipboardWriteOSC52 = func(string) error { return errors.New("open /dev/tty: no such device") }

	_, err := copyTextToClipboard("hello")
	if err == nil {
		t.Fatal("expected copy error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "no GUI clipboard available") {
		t.Fatalf("expected no-display guidance, got %q", msg)
	}
	if !strings.Contains(msg, "OSC52 fallback failed") {
		t.Fatalf("expected OSC52 fallback details, got %q", msg)
	}
}

func TestWriteOSC52ClipboardReportsTTYError(t *testing.T) {
	swapClipboardSeams(t)
	t.Setenv("LOOM_DISABLE_OSC52", "")
	t.Setenv("TERM", "xterm-256color")
	openTTYForWrite = func() (io.WriteCloser, error) {
		return nil, os.ErrNotExist
	}

	err := writeOSC52Clipboard("hello")
	if err == nil {
		t.Fatal("expected failure without /dev/tty in test process")
	}
	if !strings.Contains(err.Error(), "open /dev/tty") {
		t.Fatalf("expected /dev/tty error, got %q", err.Error())
	}
}

func TestWriteOSC52ClipboardHonorsDisable(t *testing.T) {
	swapClipboardSeams(t)
	t.Setenv("LOOM_DISABLE_OSC52", "1")
	t.Setenv("TERM", "xterm-256color")
	opened := false
	openTTYForWrite = func() (io.WriteCloser, error) {
		opened = true
		return nil, os.ErrNotExist
	}

	if err := writeOSC52Clipboard("hello"); err == nil {
		t.Fatal("disabled OSC52 must report unavailable")
	}
	if opened {
		t.Fatal("disabled OSC52 must not touch the tty")
	}
}

func TestLastAgentReplyTextPicksNewestBubble(t *testing.T) {
	groups := session.GroupMessages([]types.SessionMessage{
		{ID: "m1", Role: types.MessageRoleUser, Content: "question"},
		{ID: "m2", Role: types.MessageRoleTool, Content: "first answer", ResponseID: "r1"},
		{ID: "m3", Role: types.MessageRoleUser, Content: "follow-up"},
		{ID: "m4", Role: types.MessageRoleTool, ToolName: "search", ResponseID: "r2"},
		{ID: "m5", Role: types.MessageRoleTool, Content: "part one", ResponseID: "r2"},
		{ID: "m6", Role: types.MessageRoleTool, Content: "part two", ResponseID: "r2"},
	})

	got := lastAgentReplyText(groups)
	if got != "part one\n\npart two" {
		t.Fatalf("reply text = %q", got)
	}
}

func TestLastAgentReplyTextEmptyCases(t *testing.T) {
	if got := lastAgentReplyText(nil); got != "" {
		t.Fatalf("empty transcript copied %q", got)
	}

	userOnly := session.GroupMessages([]types.SessionMessage{
		{ID: "m1", Role: types.MessageRoleUser, Content: "just me"},
	})
	if got := lastAgentReplyText(userOnly); got != "" {
		t.Fatalf("user-only transcript copied %q", got)
	}

	toolsOnly := session.GroupMessages([]types.SessionMessage{
		{ID: "t1", Role: types.MessageRoleTool, ToolName: "search", ResponseID: "r1"},
	})
	if got := lastAgentReplyText(toolsOnly); got != "" {
		t.Fatalf("tool-only bubble copied %q", got)
	}
}
