package theme

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/avitaltamir/vibechat/internal/errors"
	"github.com/avitaltamir/vibechat/internal/screen"
)

// ColorPalette holds the 256-colour indices a built-in theme is made from.
type ColorPalette struct {
	// Accent colors
	Primary   int
	Secondary int
	Focus     int
	Warning   int

	// Background colors
	BgPrimary     int
	BgPanel       int
	BgPanelActive int
	BgBar         int

	// Text colors
	TextPrimary   int
	TextSecondary int
	TextMuted     int
	TextDim       int
}

// Preset is a palette plus frame glyphs.
type Preset struct {
	Name       string
	Colors     ColorPalette
	Frame      lipgloss.Border
	FrameFocus lipgloss.Border
}

// Frame glyph sets.
var (
	NeonBorder = lipgloss.Border{
		Top: "━", Bottom: "━", Left: "┃", Right: "┃",
		TopLeft: "┏", TopRight: "┓", BottomLeft: "┗", BottomRight: "┛",
	}

	GlowBorder = lipgloss.Border{
		Top: "─", Bottom: "─", Left: "│", Right: "│",
		TopLeft: "╭", TopRight: "╮", BottomLeft: "╰", BottomRight: "╯",
	}

	DoubleBorder = lipgloss.Border{
		Top: "═", Bottom: "═", Left: "║", Right: "║",
		TopLeft: "╔", TopRight: "╗", BottomLeft: "╚", BottomRight: "╝",
	}

	PlainBorder = lipgloss.Border{
		Top: "-", Bottom: "-", Left: "|", Right: "|",
		TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
	}
)

// DefaultName is the theme used when none is configured.
const DefaultName = "midnight"

// MidnightPreset - Neon pink and cyan on deep purple
func MidnightPreset() Preset {
	return Preset{
		Name: "midnight",
		Colors: ColorPalette{
			Primary:       201,
			Secondary:     51,
			Focus:         199,
			Warning:       226,
			BgPrimary:     53,
			BgPanel:       234,
			BgPanelActive: 237,
			BgBar:         236,
			TextPrimary:   231,
			TextSecondary: 254,
			TextMuted:     245,
			TextDim:       240,
		},
		Frame:      GlowBorder,
		FrameFocus: NeonBorder,
	}
}

// LobsterPreset - Fresh from the seafood shack
func LobsterPreset() Preset {
	return Preset{
		Name: "lobster",
		Colors: ColorPalette{
			Primary:       167,
			Secondary:     80,
			Focus:         215,
			Warning:       186,
			BgPrimary:     17,
			BgPanel:       235,
			BgPanelActive: 24,
			BgBar:         236,
			TextPrimary:   255,
			TextSecondary: 152,
			TextMuted:     66,
			TextDim:       60,
		},
		Frame:      GlowBorder,
		FrameFocus: DoubleBorder,
	}
}

// MonoPreset - eight colours and ASCII frames for bare terminals
func MonoPreset() Preset {
	return Preset{
		Name: "mono",
		Colors: ColorPalette{
			Primary:       15,
			Secondary:     7,
			Focus:         15,
			Warning:       15,
			BgPrimary:     0,
			BgPanel:       -1,
			BgPanelActive: 8,
			BgBar:         8,
			TextPrimary:   7,
			TextSecondary: 7,
			TextMuted:     8,
			TextDim:       8,
		},
		Frame:      PlainBorder,
		FrameFocus: DoubleBorder,
	}
}

var presets = map[string]func() Preset{
	"midnight": MidnightPreset,
	"lobster":  LobsterPreset,
	"mono":     MonoPreset,
}

// Names returns the built-in theme names, sorted.
func Names() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Builtin returns a built-in theme by name.
func Builtin(name string) (*Theme, error) {
	p, ok := presets[name]
	if !ok {
		return nil, errors.E(errors.Op("theme.Builtin"), errors.KindTheme,
			"unknown theme "+name+" (available: "+strings.Join(Names(), ", ")+")")
	}
	return New(Build(p()))
}

// DefaultTheme returns the default built-in theme.
func DefaultTheme() *Theme {
	t, err := Builtin(DefaultName)
	if err != nil {
		panic(err)
	}
	return t
}

// Resolve returns the built-in theme called nameOrPath, or loads it from a
// file when no built-in has that name.
func Resolve(nameOrPath string) (*Theme, error) {
	if nameOrPath == "" {
		return Builtin(DefaultName)
	}
	if _, ok := presets[nameOrPath]; ok {
		return Builtin(nameOrPath)
	}
	return Load(nameOrPath)
}

// Build expands a preset into a complete theme file by walking the schema,
// so every required key gets a value.
func Build(p Preset) File {
	f := File{Name: p.Name, Components: make(map[string]Component, len(schema))}
	for _, key := range PrimaryKeys() {
		spec := schema[key]
		c := Component{Attrs: map[string]AttrSpec{}, Chars: map[string]string{}}
		for _, sub := range spec.attrKeys() {
			c.Attrs[sub] = specOf(p.attr(key, spec, sub))
		}
		for _, sub := range spec.charKeys() {
			c.Chars[sub] = p.glyph(key, spec, sub)
		}
		f.Components[key] = c
	}
	return f
}

func mk(fg, bg int, bold bool) screen.Attr {
	return screen.Attr{Fg: fg, Bg: bg, Bold: bold}
}

func (p Preset) panelBg(key string) int {
	switch key {
	case FileMenu, AccountsMenu, HelpMenu, DialogWindow, MenuItem, Button:
		return p.Colors.BgPanelActive
	case MenuBarItem:
		return p.Colors.BgBar
	}
	return p.Colors.BgPanel
}

func (p Preset) attr(key string, spec componentSpec, sub string) screen.Attr {
	c := p.Colors
	bg := p.panelBg(key)
	switch spec.kind {
	case KindWindow:
		switch sub {
		case "border":
			return mk(c.TextDim, bg, false)
		case "borderFocus":
			return mk(c.Focus, bg, true)
		case "title":
			return mk(c.TextSecondary, bg, false)
		case "titleFocus":
			return mk(c.Primary, bg, true)
		}
		return mk(c.TextPrimary, bg, false)
	case KindBar:
		switch sub {
		case "text":
			return mk(c.TextPrimary, c.BgBar, false)
		case "highlight":
			return mk(c.Primary, c.BgBar, true)
		}
		return mk(c.TextSecondary, c.BgBar, false)
	case KindScrollBar:
		switch sub {
		case "button":
			return mk(c.Secondary, c.BgPanel, false)
		case "handle":
			return mk(c.Primary, c.BgPanel, true)
		case "track":
			return mk(c.TextMuted, c.BgPanel, false)
		}
		return mk(c.TextDim, c.BgPanel, false)
	case KindControl:
		state, part, _ := strings.Cut(sub, ".")
		switch state {
		case "sel":
			a := mk(c.BgPrimary, c.Focus, part == "label" || part == "accel")
			a.Underline = part == "accel"
			if part == "lead" || part == "tail" {
				a = mk(c.Focus, bg, true)
			}
			return a
		case "unsel":
			if part == "accel" {
				a := mk(c.Warning, bg, true)
				a.Underline = true
				return a
			}
			if part == "lead" || part == "tail" {
				return mk(c.TextDim, bg, false)
			}
			return mk(c.TextPrimary, bg, false)
		case "selDisabled":
			return mk(c.TextMuted, c.TextDim, false)
		}
		return mk(c.TextMuted, bg, false)
	case KindItem:
		parts := strings.SplitN(sub, ".", 3)
		role, selected, part := parts[0], parts[1] == "sel", parts[2]
		bg = c.BgPanel
		if selected {
			bg = c.BgPanelActive
		}
		switch part {
		case PartName:
			return mk(c.Primary, bg, selected)
		case PartSender:
			if role == RoleSent {
				return mk(c.Secondary, bg, true)
			}
			return mk(c.Primary, bg, true)
		case PartDetail:
			return mk(c.TextSecondary, bg, false)
		case PartTime:
			return mk(c.TextDim, bg, false)
		case PartUnread:
			return mk(c.Warning, bg, true)
		}
		return mk(c.TextPrimary, bg, false)
	}
	return screen.DefaultAttr
}

var scrollGlyphs = map[string]map[string]string{
	VScrollBar: {"track": "░", "start": "▲", "pageStart": "↟", "pageEnd": "↡", "end": "▼", "handle": "█"},
	HScrollBar: {"track": "░", "start": "◀", "pageStart": "↞", "pageEnd": "↠", "end": "▶", "handle": "█"},
}

func frameGlyph(b lipgloss.Border, k string) string {
	switch k {
	case "tl":
		return b.TopLeft
	case "t":
		return b.Top
	case "tr":
		return b.TopRight
	case "l":
		return b.Left
	case "r":
		return b.Right
	case "bl":
		return b.BottomLeft
	case "b":
		return b.Bottom
	}
	return b.BottomRight
}

func (p Preset) glyph(key string, spec componentSpec, sub string) string {
	switch spec.kind {
	case KindWindow:
		if frame, k, ok := strings.Cut(sub, "."); ok {
			switch frame {
			case "border":
				return frameGlyph(p.Frame, k)
			case "borderFocus":
				return frameGlyph(p.FrameFocus, k)
			case "title":
				if k == "lead" {
					return "["
				}
				return "]"
			}
		}
		return " "
	case KindScrollBar:
		return scrollGlyphs[key][sub]
	case KindControl:
		state, side, _ := strings.Cut(sub, ".")
		switch key {
		case Button:
			if side == "lead" {
				return "["
			}
			return "]"
		case MenuItem:
			if side == "lead" && (state == "sel" || state == "selDisabled") {
				return "▸"
			}
		}
		return " "
	case KindItem:
		if sub == "expanded" {
			return "▾"
		}
		return "▸"
	}
	return " "
}
