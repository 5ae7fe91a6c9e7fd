package sysprefs

import (
	"fmt"
	"strings"
)

// FourCC is a four-character code packed big-endian into 32 bits, the form
// Apple event keywords and enumerators take on the wire.
type FourCC uint32

// NewFourCC packs four bytes into a code.
func NewFourCC(b [4]byte) FourCC {
	return FourCC(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]))
}

// ParseFourCC packs a four-byte string such as "ask " (trailing spaces are
// significant).
func ParseFourCC(s string) (FourCC, error) {
	if len(s) != 4 {
		return 0, fmt.Errorf("invalid four-character code %q: need exactly 4 bytes, got %d", s, len(s))
	}
	return NewFourCC([4]byte{s[0], s[1], s[2], s[3]}), nil
}

// Bytes returns the code's bytes in wire order.
func (c FourCC) Bytes() [4]byte {
	return [4]byte{byte(c >> 24), byte(c >> 16), byte(c >> 8), byte(c)}
}

// String returns the four characters, e.g. "lwst".
func (c FourCC) String() string {
	b := c.Bytes()
	return string(b[:])
}

// SaveOption tells a close or quit command what to do with unsaved changes.
type SaveOption FourCC

const (
	SaveYes SaveOption = 0x79657320 // 'yes '
	SaveNo  SaveOption = 0x6e6f2020 // 'no  '
	SaveAsk SaveOption = 0x61736b20 // 'ask '
)

// SaveOptions lists every declared save option.
var SaveOptions = []SaveOption{SaveYes, SaveNo, SaveAsk}

// Code returns the wire code.
func (o SaveOption) Code() FourCC { return FourCC(o) }

// Keyword returns the scripting keyword for the option.
func (o SaveOption) Keyword() (string, bool) {
	switch o {
	case SaveYes:
		return "yes", true
	case SaveNo:
		return "no", true
	case SaveAsk:
		return "ask", true
	}
	return "", false
}

func (o SaveOption) String() string {
	if k, ok := o.Keyword(); ok {
		return k
	}
	return fmt.Sprintf("SaveOption(%q)", FourCC(o).String())
}

// ParseSaveOption accepts a keyword ("yes", "no", "ask") or a four-character
// code ("ask ").
func ParseSaveOption(s string) (SaveOption, error) {
	for _, o := range SaveOptions {
		k, _ := o.Keyword()
		if strings.EqualFold(strings.TrimSpace(s), k) || s == o.Code().String() {
			return o, nil
		}
	}
	return 0, fmt.Errorf("unknown save option: %q (expected yes, no, or ask)", s)
}

// PrintErrorHandling selects how printing errors are reported.
type PrintErrorHandling FourCC

const (
	PrintStandard PrintErrorHandling = 0x6c777374 // 'lwst'
	PrintDetailed PrintErrorHandling = 0x6c776474 // 'lwdt'
)

// PrintErrorHandlings lists every declared print error handling mode.
var PrintErrorHandlings = []PrintErrorHandling{PrintStandard, PrintDetailed}

// Code returns the wire code.
func (h PrintErrorHandling) Code() FourCC { return FourCC(h) }

// Keyword returns the scripting keyword for the mode.
func (h PrintErrorHandling) Keyword() (string, bool) {
	switch h {
	case PrintStandard:
		return "standard", true
	case PrintDetailed:
		return "detailed", true
	}
	return "", false
}

func (h PrintErrorHandling) String() string {
	if k, ok := h.Keyword(); ok {
		return k
	}
	return fmt.Sprintf("PrintErrorHandling(%q)", FourCC(h).String())
}

// ParsePrintErrorHandling accepts "standard", "detailed", "lwst" or "lwdt".
func ParsePrintErrorHandling(s string) (PrintErrorHandling, error) {
	for _, h := range PrintErrorHandlings {
		k, _ := h.Keyword()
		if strings.EqualFold(strings.TrimSpace(s), k) || s == h.Code().String() {
			return h, nil
		}
	}
	return 0, fmt.Errorf("unknown print error handling: %q (expected standard or detailed)", s)
}
