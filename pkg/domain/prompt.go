package domain

// Prompt is one outbound message to the user. Options, when present, are
// rows of quick-reply labels for transports that can render keyboards; an
// empty Options means free text is expected and any previous keyboard should
// be cleared.
type Prompt struct {
	Text    string     `json:"text"`
	Options [][]string `json:"options,omitempty"`
}

// TextPrompt returns a plain free-text prompt.
func TextPrompt(text string) Prompt {
	return Prompt{Text: text}
}

// ChoicePrompt returns a prompt with quick-reply rows.
func ChoicePrompt(text string, rows ...[]string) Prompt {
	return Prompt{Text: text, Options: rows}
}
