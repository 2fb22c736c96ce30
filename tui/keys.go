package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding the game screen reacts to. It implements
// help.KeyMap so the footer can list them.
type keyMap struct {
	Play      key.Binding
	Dismiss   key.Binding
	Skill     key.Binding
	UseSkill  key.Binding
	NextSkill key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Spawn     key.Binding
	Console   key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Play: key.NewBinding(
			key.WithKeys("enter", "p"),
			key.WithHelp("enter", "play"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "next page"),
		),
		Skill: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "use skill"),
		),
		UseSkill: key.NewBinding(
			key.WithKeys("f", " "),
			key.WithHelp("f/space", "use selected"),
		),
		NextSkill: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next skill"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "walk up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "walk down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "walk left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "walk right"),
		),
		Spawn: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "spawn enemy"),
		),
		Console: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "console"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Skill, k.UseSkill, k.NextSkill, k.Console, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Skill, k.UseSkill, k.NextSkill},
		{k.Up, k.Down, k.Left, k.Right},
		{k.Dismiss, k.Spawn, k.Console},
		{k.Help, k.Quit},
	}
}
