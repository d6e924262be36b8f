//go:build unix

package terminal

import "golang.org/x/sys/unix"

// winsize reads TIOCGWINSZ from fd. Pixel sizes are zero on terminals that
// do not report them.
func winsize(fd uintptr) (Size, bool) {
	ws, err := unix.IoctlGetWinsize(int(fd), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return Size{}, false
	}
	s := Size{Cols: int(ws.Col), Rows: int(ws.Row)}
	if ws.Xpixel > 0 && ws.Ypixel > 0 {
		s.CellW = int(ws.Xpixel) / s.Cols
		s.CellH = int(ws.Ypixel) / s.Rows
	}
	return s, true
}
