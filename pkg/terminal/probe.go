package terminal

// Capabilities summarises what the presentation needs from the terminal.
type Capabilities struct {
	Term      Terminal
	Preview   Protocol
	Size      Size
	TrueColor bool
	SSH       bool
}

// Probe inspects the environment and the controlling terminal. preview is
// the configured preview setting ("auto", "kitty", "none", ...).
func Probe(preview string) Capabilities {
	term := Detect()
	ssh := isSSH()
	return Capabilities{
		Term:      term,
		Preview:   ParseProtocol(preview, term, ssh),
		Size:      GetSize(),
		TrueColor: term.TrueColor() || trueColorEnv(),
		SSH:       ssh,
	}
}
