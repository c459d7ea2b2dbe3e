package theme

import "sort"

// ComponentKind says which capability record a theme component describes.
type ComponentKind int

const (
	KindWindow ComponentKind = iota
	KindBar
	KindScrollBar
	KindControl
	KindItem
)

func (k ComponentKind) String() string {
	switch k {
	case KindWindow:
		return "window"
	case KindBar:
		return "bar"
	case KindScrollBar:
		return "scrollbar"
	case KindControl:
		return "control"
	case KindItem:
		return "item"
	default:
		return "unknown"
	}
}

// Primary keys referenced by the client.
const (
	ContactsWindow = "contactsWindow"
	MessagesWindow = "messagesWindow"
	TypingWindow   = "typingWindow"
	FileMenu       = "fileMenu"
	AccountsMenu   = "accountsMenu"
	HelpMenu       = "helpMenu"
	DialogWindow   = "dialogWindow"

	MenuBar   = "menuBar"
	StatusBar = "statusBar"

	VScrollBar = "vScrollBar"
	HScrollBar = "hScrollBar"

	MenuBarItem = "menuBarItem"
	MenuItem    = "menuItem"
	Button      = "button"

	ContactItem = "contactItem"
	GroupItem   = "groupItem"
	MessageItem = "messageItem"
)

// Item roles and parts.
const (
	RoleContact  = "contact"
	RoleGroup    = "group"
	RoleSent     = "sent"
	RoleReceived = "received"

	PartBg     = "bg"
	PartName   = "name"
	PartDetail = "detail"
	PartUnread = "unread"
	PartSender = "sender"
	PartTime   = "time"
	PartBody   = "body"
)

type componentSpec struct {
	kind  ComponentKind
	roles []string
	parts []string
}

var schema = map[string]componentSpec{
	ContactsWindow: {kind: KindWindow},
	MessagesWindow: {kind: KindWindow},
	TypingWindow:   {kind: KindWindow},
	FileMenu:       {kind: KindWindow},
	AccountsMenu:   {kind: KindWindow},
	HelpMenu:       {kind: KindWindow},
	DialogWindow:   {kind: KindWindow},

	MenuBar:   {kind: KindBar},
	StatusBar: {kind: KindBar},

	VScrollBar: {kind: KindScrollBar},
	HScrollBar: {kind: KindScrollBar},

	MenuBarItem: {kind: KindControl},
	MenuItem:    {kind: KindControl},
	Button:      {kind: KindControl},

	ContactItem: {kind: KindItem, roles: []string{RoleContact}, parts: []string{PartBg, PartName, PartDetail, PartUnread}},
	GroupItem:   {kind: KindItem, roles: []string{RoleGroup}, parts: []string{PartBg, PartName, PartDetail, PartUnread}},
	MessageItem: {kind: KindItem, roles: []string{RoleSent, RoleReceived}, parts: []string{PartBg, PartSender, PartTime, PartBody}},
}

var frameKeys = []string{"tl", "t", "tr", "l", "r", "bl", "b", "br"}

var controlStates = []string{"sel", "unsel", "selDisabled", "unselDisabled"}

// attrKeys lists the attribute sub-keys a component of this spec must define.
func (c componentSpec) attrKeys() []string {
	switch c.kind {
	case KindWindow:
		return []string{"bg", "border", "borderFocus", "title", "titleFocus"}
	case KindBar:
		return []string{"bg", "text", "highlight"}
	case KindScrollBar:
		return []string{"track", "button", "handle", "trackDisabled", "buttonDisabled", "handleDisabled"}
	case KindControl:
		var keys []string
		for _, s := range controlStates {
			keys = append(keys, s+".label", s+".accel", s+".lead", s+".tail")
		}
		return keys
	case KindItem:
		var keys []string
		for _, role := range c.roles {
			for _, state := range []string{"sel", "unsel"} {
				for _, part := range c.parts {
					keys = append(keys, itemAttrKey(role, state == "sel", part))
				}
			}
		}
		return keys
	}
	return nil
}

// charKeys lists the glyph sub-keys a component of this spec must define.
func (c componentSpec) charKeys() []string {
	switch c.kind {
	case KindWindow:
		keys := []string{"bg"}
		for _, k := range frameKeys {
			keys = append(keys, "border."+k)
		}
		for _, k := range frameKeys {
			keys = append(keys, "borderFocus."+k)
		}
		return append(keys, "title.lead", "title.tail")
	case KindBar:
		return []string{"bg"}
	case KindScrollBar:
		return []string{"track", "start", "pageStart", "pageEnd", "end", "handle"}
	case KindControl:
		var keys []string
		for _, s := range controlStates {
			keys = append(keys, s+".lead", s+".tail")
		}
		return keys
	case KindItem:
		return []string{"expanded", "collapsed"}
	}
	return nil
}

func itemAttrKey(role string, selected bool, part string) string {
	state := "unsel"
	if selected {
		state = "sel"
	}
	return role + "." + state + "." + part
}

// PrimaryKeys returns every component key the schema requires, sorted.
func PrimaryKeys() []string {
	keys := make([]string, 0, len(schema))
	for k := range schema {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
