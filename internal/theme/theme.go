package theme

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/avitaltamir/vibechat/internal/errors"
	"github.com/avitaltamir/vibechat/internal/screen"
)

// File is the on-disk shape of a theme. JSON files decode through the same
// yaml tags since JSON is valid YAML.
type File struct {
	Name       string               `yaml:"name"`
	Components map[string]Component `yaml:"components"`
}

// Component holds the attributes and glyphs of one primary key.
type Component struct {
	Attrs map[string]AttrSpec `yaml:"attrs"`
	Chars map[string]string   `yaml:"chars"`
}

// AttrSpec is an attribute record as written in a theme file. Every field
// is required, so they are pointers to tell "absent" from "zero".
type AttrSpec struct {
	Fg        *int  `yaml:"fg"`
	Bg        *int  `yaml:"bg"`
	Bold      *bool `yaml:"bold"`
	Underline *bool `yaml:"underline"`
	Reverse   *bool `yaml:"reverse"`
}

func specOf(a screen.Attr) AttrSpec {
	return AttrSpec{Fg: &a.Fg, Bg: &a.Bg, Bold: &a.Bold, Underline: &a.Underline, Reverse: &a.Reverse}
}

func (a AttrSpec) attr() screen.Attr {
	return screen.Attr{Fg: *a.Fg, Bg: *a.Bg, Bold: *a.Bold, Underline: *a.Underline, Reverse: *a.Reverse}
}

// Theme is a validated theme. It is never modified after construction and
// is shared by pointer between every component that renders.
type Theme struct {
	name  string
	file  File
	attrs map[string]map[string]screen.Attr
	chars map[string]map[string]rune
}

// Name returns the theme name.
func (t *Theme) Name() string { return t.name }

// Load reads and validates a theme file.
func Load(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ThemeLoadFailed(path, err)
	}
	t, err := Parse(data)
	if err != nil {
		if errors.Is(err, errors.KindTheme) {
			return nil, err
		}
		return nil, errors.ThemeLoadFailed(path, err)
	}
	return t, nil
}

// Parse decodes and validates theme data.
func Parse(data []byte) (*Theme, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.E(errors.Op("theme.Parse"), errors.KindTheme, "malformed theme", err)
	}
	return New(f)
}

// New validates f and compiles it into a Theme. Nothing is kept on error.
func New(f File) (*Theme, error) {
	if err := Validate(f); err != nil {
		return nil, err
	}
	t := &Theme{
		name:  f.Name,
		file:  f,
		attrs: make(map[string]map[string]screen.Attr, len(schema)),
		chars: make(map[string]map[string]rune, len(schema)),
	}
	for key, c := range f.Components {
		attrs := make(map[string]screen.Attr, len(c.Attrs))
		for sub, a := range c.Attrs {
			attrs[sub] = a.attr()
		}
		chars := make(map[string]rune, len(c.Chars))
		for sub, g := range c.Chars {
			r, _ := utf8.DecodeRuneInString(g)
			chars[sub] = r
		}
		t.attrs[key] = attrs
		t.chars[key] = chars
	}
	return t, nil
}

// Validate checks f against the schema: every primary key, every attribute
// sub-key with all five fields, and every glyph sub-key must be present, and
// colours must be -1..255. The first problem found is returned.
func Validate(f File) error {
	if f.Name == "" {
		return errors.ThemeMissingKey("name")
	}
	for _, key := range PrimaryKeys() {
		spec := schema[key]
		c, ok := f.Components[key]
		if !ok {
			return errors.ThemeMissingKey("components." + key)
		}
		for _, sub := range spec.attrKeys() {
			path := fmt.Sprintf("components.%s.attrs.%s", key, sub)
			a, ok := c.Attrs[sub]
			if !ok {
				return errors.ThemeMissingKey(path)
			}
			if err := validateAttr(path, a); err != nil {
				return err
			}
		}
		for _, sub := range spec.charKeys() {
			path := fmt.Sprintf("components.%s.chars.%s", key, sub)
			g, ok := c.Chars[sub]
			if !ok {
				return errors.ThemeMissingKey(path)
			}
			if utf8.RuneCountInString(g) != 1 || runewidth.StringWidth(g) != 1 {
				return errors.ThemeInvalidValue(path, fmt.Sprintf("glyph %q must be a single one-column character", g))
			}
		}
	}
	return nil
}

func validateAttr(path string, a AttrSpec) error {
	switch {
	case a.Fg == nil:
		return errors.ThemeMissingKey(path + ".fg")
	case a.Bg == nil:
		return errors.ThemeMissingKey(path + ".bg")
	case a.Bold == nil:
		return errors.ThemeMissingKey(path + ".bold")
	case a.Underline == nil:
		return errors.ThemeMissingKey(path + ".underline")
	case a.Reverse == nil:
		return errors.ThemeMissingKey(path + ".reverse")
	}
	if err := validateColour(path+".fg", *a.Fg); err != nil {
		return err
	}
	return validateColour(path+".bg", *a.Bg)
}

func validateColour(path string, c int) error {
	if c < -1 || c > 255 {
		return errors.ThemeInvalidValue(path, fmt.Sprintf("colour %d outside -1..255", c))
	}
	return nil
}

// Dump encodes the theme as YAML.
func Dump(t *Theme) ([]byte, error) {
	return yaml.Marshal(t.file)
}

func (t *Theme) lookup(key string, kind ComponentKind) error {
	spec, ok := schema[key]
	if !ok || spec.kind != kind {
		return errors.ThemeUnknownKey(key)
	}
	if _, ok := t.attrs[key]; !ok {
		return errors.ThemeUnknownKey(key)
	}
	return nil
}

func (t *Theme) border(key, prefix string) lipgloss.Border {
	g := func(k string) string { return string(t.chars[key][prefix+"."+k]) }
	return lipgloss.Border{
		TopLeft: g("tl"), Top: g("t"), TopRight: g("tr"),
		Left: g("l"), Right: g("r"),
		BottomLeft: g("bl"), Bottom: g("b"), BottomRight: g("br"),
	}
}

// WindowLook is the capability record of a window.
type WindowLook struct {
	Bg, Border, BorderFocus, Title, TitleFocus screen.Attr

	BgChar     rune
	Frame      lipgloss.Border
	FrameFocus lipgloss.Border
	TitleLead  rune
	TitleTail  rune
}

// Window returns the look of a window component.
func (t *Theme) Window(key string) (WindowLook, error) {
	if err := t.lookup(key, KindWindow); err != nil {
		return WindowLook{}, err
	}
	a, c := t.attrs[key], t.chars[key]
	return WindowLook{
		Bg:          a["bg"],
		Border:      a["border"],
		BorderFocus: a["borderFocus"],
		Title:       a["title"],
		TitleFocus:  a["titleFocus"],
		BgChar:      c["bg"],
		Frame:       t.border(key, "border"),
		FrameFocus:  t.border(key, "borderFocus"),
		TitleLead:   c["title.lead"],
		TitleTail:   c["title.tail"],
	}, nil
}

// BarLook is the capability record of a one-row bar.
type BarLook struct {
	Bg, Text, Highlight screen.Attr
	BgChar              rune
}

// Bar returns the look of a bar component.
func (t *Theme) Bar(key string) (BarLook, error) {
	if err := t.lookup(key, KindBar); err != nil {
		return BarLook{}, err
	}
	a := t.attrs[key]
	return BarLook{Bg: a["bg"], Text: a["text"], Highlight: a["highlight"], BgChar: t.chars[key]["bg"]}, nil
}

// ScrollBarLook is the capability record of a scrollbar.
type ScrollBarLook struct {
	Track, Button, Handle                         screen.Attr
	TrackDisabled, ButtonDisabled, HandleDisabled screen.Attr

	TrackChar, StartChar, PageStartChar, PageEndChar, EndChar, HandleChar rune
}

// ScrollBar returns the look of a scrollbar component.
func (t *Theme) ScrollBar(key string) (ScrollBarLook, error) {
	if err := t.lookup(key, KindScrollBar); err != nil {
		return ScrollBarLook{}, err
	}
	a, c := t.attrs[key], t.chars[key]
	return ScrollBarLook{
		Track: a["track"], Button: a["button"], Handle: a["handle"],
		TrackDisabled: a["trackDisabled"], ButtonDisabled: a["buttonDisabled"], HandleDisabled: a["handleDisabled"],
		TrackChar: c["track"], StartChar: c["start"], PageStartChar: c["pageStart"],
		PageEndChar: c["pageEnd"], EndChar: c["end"], HandleChar: c["handle"],
	}, nil
}

// ControlLook is one visual set of an interactive control.
type ControlLook struct {
	Label, Accel, Lead, Tail screen.Attr
	LeadChar, TailChar       rune
}

// ControlLooks holds the four visual sets of a control.
type ControlLooks struct {
	sets [2][2]ControlLook
}

// For picks the set for the given selected/enabled state.
func (c ControlLooks) For(selected, enabled bool) ControlLook {
	return c.sets[b2i(selected)][b2i(enabled)]
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Control returns the looks of a control component.
func (t *Theme) Control(key string) (ControlLooks, error) {
	if err := t.lookup(key, KindControl); err != nil {
		return ControlLooks{}, err
	}
	a, c := t.attrs[key], t.chars[key]
	set := func(state string) ControlLook {
		return ControlLook{
			Label: a[state+".label"], Accel: a[state+".accel"],
			Lead: a[state+".lead"], Tail: a[state+".tail"],
			LeadChar: c[state+".lead"], TailChar: c[state+".tail"],
		}
	}
	var looks ControlLooks
	looks.sets[1][1] = set("sel")
	looks.sets[0][1] = set("unsel")
	looks.sets[1][0] = set("selDisabled")
	looks.sets[0][0] = set("unselDisabled")
	return looks, nil
}

type itemKey struct {
	role     string
	selected bool
	part     string
}

// ItemLook is the attribute table of a list item, keyed by
// (role, selected, part).
type ItemLook struct {
	table     map[itemKey]screen.Attr
	Expanded  rune
	Collapsed rune
}

// Attr looks up an item attribute. Unknown combinations use the terminal
// default.
func (l ItemLook) Attr(role string, selected bool, part string) screen.Attr {
	if a, ok := l.table[itemKey{role, selected, part}]; ok {
		return a
	}
	return screen.DefaultAttr
}

// Item returns the look of a list item component.
func (t *Theme) Item(key string) (ItemLook, error) {
	if err := t.lookup(key, KindItem); err != nil {
		return ItemLook{}, err
	}
	spec := schema[key]
	a := t.attrs[key]
	look := ItemLook{
		table:     make(map[itemKey]screen.Attr),
		Expanded:  t.chars[key]["expanded"],
		Collapsed: t.chars[key]["collapsed"],
	}
	for _, role := range spec.roles {
		for _, sel := range []bool{false, true} {
			for _, part := range spec.parts {
				look.table[itemKey{role, sel, part}] = a[itemAttrKey(role, sel, part)]
			}
		}
	}
	return look, nil
}
