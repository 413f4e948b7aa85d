package ui

import "testing"

func TestNewColorConfigFromGlobal(t *testing.T) {
	t.Setenv("TERM", "xterm-256color")
	t.Setenv("NO_COLOR", "")
	InitGlobal(Config{NoColor: true, NoEmoji: true})
	t.Cleanup(func() { InitGlobal(Config{}) })

	c := NewColorConfigFromGlobal()
	if c.Enabled {
		t.Error("colors enabled despite global NoColor")
	}
	if c.EmojiEnabled {
		t.Error("emoji enabled despite global NoEmoji")
	}
}

func TestNewPrinterFromGlobal(t *testing.T) {
	t.Setenv("TERM", "xterm-256color")
	t.Setenv("NO_COLOR", "")
	InitGlobal(Config{NoColor: true})
	t.Cleanup(func() { InitGlobal(Config{}) })

	p := NewPrinterFromGlobal("json")
	if p.format != "json" {
		t.Errorf("format = %q, want json", p.format)
	}
	if p.Colors.Enabled {
		t.Error("printer colors enabled despite global NoColor")
	}
}
