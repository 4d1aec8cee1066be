package main

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit  key.Binding
	Quit    key.Binding
	UpDown  key.Binding
	Tab     key.Binding
	Vendors key.Binding
	Analyze key.Binding
	Quote   key.Binding
	Logout  key.Binding
	Close   key.Binding
	Switch  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		UpDown:  key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "navigate")),
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Vendors: key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "load vendors")),
		Analyze: key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "analyze script")),
		Quote:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "request quote")),
		Logout:  key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "logout")),
		Close:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Switch:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "login/signup")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Submit, k.Logout, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Tab, k.Submit, k.Logout, k.Quit}}
}

type modalKeyMap struct {
	keyMap
}

func (k modalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Submit, k.Close, k.Quit}
}

func (k modalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Tab, k.Submit, k.Close, k.Quit}}
}
