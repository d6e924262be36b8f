package terminal

import "strings"

// Protocol is the inline image protocol used to preview an exported PNG.
type Protocol int

const (
	ProtocolNone Protocol = iota
	ProtocolKitty
	ProtocolITerm2
	ProtocolSixel
	ProtocolHalfblocks
)

var protocolNames = [...]string{
	ProtocolNone:       "none",
	ProtocolKitty:      "kitty",
	ProtocolITerm2:     "iterm2",
	ProtocolSixel:      "sixel",
	ProtocolHalfblocks: "halfblocks",
}

func (p Protocol) String() string {
	if int(p) >= 0 && int(p) < len(protocolNames) {
		return protocolNames[p]
	}
	return "unknown"
}

// SelectProtocol picks the preview protocol for term. Over SSH every
// graphics protocol degrades to half blocks, which only need true colour.
func SelectProtocol(term Terminal, ssh bool) Protocol {
	var p Protocol
	switch term {
	case TermGhostty, TermKitty, TermWezTerm:
		p = ProtocolKitty
	case TermITerm2:
		p = ProtocolITerm2
	default:
		p = ProtocolHalfblocks
	}
	if ssh && p != ProtocolHalfblocks {
		return ProtocolHalfblocks
	}
	return p
}

// ParseProtocol resolves a preview setting. "auto" and the empty string
// defer to detection; unknown values also fall back to detection.
func ParseProtocol(setting string, term Terminal, ssh bool) Protocol {
	switch strings.ToLower(strings.TrimSpace(setting)) {
	case "kitty":
		return ProtocolKitty
	case "iterm2":
		return ProtocolITerm2
	case "sixel":
		return ProtocolSixel
	case "halfblocks", "unicode":
		return ProtocolHalfblocks
	case "none", "off":
		return ProtocolNone
	}
	return SelectProtocol(term, ssh)
}
