package session

import "fmt"

// ANSI colors for the conventional reply prefixes: green for success, red
// for errors, yellow for notices, magenta framing for listings.
const (
	colorReset   = "\x1b[0m"
	colorRed     = "\x1b[31m"
	colorGreen   = "\x1b[32m"
	colorYellow  = "\x1b[33m"
	colorMagenta = "\x1b[35m"
)

const blockRule = "-----------------"

func (s *Session) sendError(format string, args ...any) error {
	return s.w.WriteLine(colorRed + "*** " + fmt.Sprintf(format, args...) + colorReset)
}

func (s *Session) sendOK(format string, args ...any) error {
	return s.w.WriteLine(colorGreen + "*** " + fmt.Sprintf(format, args...) + colorReset)
}

func (s *Session) sendNotice(format string, args ...any) error {
	return s.w.WriteLine(colorYellow + "*** " + fmt.Sprintf(format, args...) + colorReset)
}

// sendBlock writes a framed listing: a rule, a **header**, the lines, and a
// closing rule.
func (s *Session) sendBlock(header string, lines []string) error {
	if err := s.w.WriteLine(colorMagenta + blockRule); err != nil {
		return err
	}
	if err := s.w.WriteLine("**" + header + "**"); err != nil {
		return err
	}
	for _, line := range lines {
		if err := s.w.WriteLine(line); err != nil {
			return err
		}
	}
	return s.w.WriteLine(blockRule + colorReset)
}
