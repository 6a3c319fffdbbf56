package layers

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
)

var ErrInvalidRichText = errors.New("layers: contents are not RTF")

var rtfHeader = []byte(`{\rtf`)

// RichText is the plain text and base font of a text layer.
type RichText struct {
	Text string
	Font Font
}

// EncodeRichText renders rt as RTF and returns it base64 encoded.
func EncodeRichText(rt RichText) []byte {
	raw := renderRTF(rt)
	out := make([]byte, base64.StdEncoding.EncodedLen(len(raw)))
	base64.StdEncoding.Encode(out, raw)
	return out
}

// DecodeRichText reverses EncodeRichText. Raw RTF, as written by older
// documents, is accepted as well. Empty input decodes to empty text.
func DecodeRichText(data []byte) (RichText, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return RichText{}, nil
	}
	if !bytes.HasPrefix(data, rtfHeader) {
		decoded := make([]byte, base64.StdEncoding.DecodedLen(len(data)))
		n, err := base64.StdEncoding.Decode(decoded, data)
		if err != nil {
			return RichText{}, fmt.Errorf("%w: %v", ErrInvalidRichText, err)
		}
		data = decoded[:n]
	}
	return parseRTF(data)
}

func renderRTF(rt RichText) []byte {
	var b bytes.Buffer
	b.WriteString(`{\rtf1\ansi\ansicpg1252\deff0{\fonttbl{\f0\fnil `)
	writeRTFText(&b, rt.Font.Name)
	b.WriteString(`;}}`)
	b.WriteString(`\f0\fs`)
	b.WriteString(strconv.Itoa(int(math.Round(float64(rt.Font.Size) * 2))))
	b.WriteByte(' ')
	writeRTFText(&b, rt.Text)
	b.WriteByte('}')
	return b.Bytes()
}

func writeRTFText(b *bytes.Buffer, s string) {
	for _, r := range s {
		switch {
		case r == '\\' || r == '{' || r == '}':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString("\\par\n")
		case r == '\t':
			b.WriteString(`\tab `)
		case r < 0x80:
			b.WriteRune(r)
		default:
			for _, unit := range utf16.Encode([]rune{r}) {
				fmt.Fprintf(b, `\u%d?`, int16(unit))
			}
		}
	}
}

// destinations whose text is not document content
var skippedDestinations = map[string]bool{
	"colortbl":         true,
	"expandedcolortbl": true,
	"stylesheet":       true,
	"info":             true,
	"pict":             true,
	"header":           true,
	"footer":           true,
}

type rtfState struct {
	out          strings.Builder
	depth        int
	skipDepth    int
	fontDepth    int
	fontIndex    int
	fontName     strings.Builder
	fonts        map[int]string
	currentFont  int
	size         float32
	ucSkip       int
	skipFallback int
	highSurr     rune
}

func (s *rtfState) emit(r rune) {
	if s.skipDepth >= 0 {
		return
	}
	if s.skipFallback > 0 {
		s.skipFallback--
		return
	}
	if s.fontDepth >= 0 {
		if r == ';' {
			s.fonts[s.fontIndex] = strings.TrimSpace(s.fontName.String())
			s.fontName.Reset()
			return
		}
		s.fontName.WriteRune(r)
		return
	}
	s.out.WriteRune(r)
}

func (s *rtfState) emitUnicode(param int) {
	r := rune(param)
	if r < 0 {
		r += 65536
	}
	switch {
	case utf16.IsSurrogate(r) && s.highSurr == 0:
		s.highSurr = r
	case utf16.IsSurrogate(r):
		s.emit(utf16.DecodeRune(s.highSurr, r))
		s.highSurr = 0
	default:
		s.emit(r)
	}
	if s.skipDepth < 0 {
		s.skipFallback = s.ucSkip
	}
}

func (s *rtfState) control(word string, param int, hasParam bool) {
	switch word {
	case "fonttbl":
		s.fontDepth = s.depth
	case "f":
		if s.fontDepth >= 0 {
			s.fontIndex = param
		} else {
			s.currentFont = param
		}
	case "fs":
		if hasParam {
			s.size = float32(param) / 2
		}
	case "par", "line":
		s.emit('\n')
	case "tab":
		s.emit('\t')
	case "u":
		s.emitUnicode(param)
	case "uc":
		s.ucSkip = param
	default:
		if skippedDestinations[word] && s.skipDepth < 0 {
			s.skipDepth = s.depth
		}
	}
}

func parseRTF(data []byte) (RichText, error) {
	if !bytes.HasPrefix(data, rtfHeader) {
		return RichText{}, ErrInvalidRichText
	}
	s := &rtfState{skipDepth: -1, fontDepth: -1, fonts: map[int]string{}, size: 12, ucSkip: 1}

	for i := 0; i < len(data); {
		ch := data[i]
		switch ch {
		case '{':
			s.depth++
			i++
		case '}':
			if s.depth == s.skipDepth {
				s.skipDepth = -1
			}
			if s.depth == s.fontDepth {
				s.fontDepth = -1
			}
			s.depth--
			i++
		case '\r', '\n':
			i++
		case '\\':
			i++
			if i >= len(data) {
				return RichText{}, fmt.Errorf("%w: trailing backslash", ErrInvalidRichText)
			}
			c := data[i]
			switch {
			case isRTFLetter(c):
				start := i
				for i < len(data) && isRTFLetter(data[i]) {
					i++
				}
				word := string(data[start:i])
				param, hasParam := 0, false
				if i < len(data) && (data[i] == '-' || isRTFDigit(data[i])) {
					numStart := i
					i++
					for i < len(data) && isRTFDigit(data[i]) {
						i++
					}
					param, _ = strconv.Atoi(string(data[numStart:i]))
					hasParam = true
				}
				if i < len(data) && data[i] == ' ' {
					i++
				}
				s.control(word, param, hasParam)
			case c == '\'':
				if i+2 >= len(data) {
					return RichText{}, fmt.Errorf("%w: truncated hex escape", ErrInvalidRichText)
				}
				v, err := strconv.ParseUint(string(data[i+1:i+3]), 16, 8)
				if err != nil {
					return RichText{}, fmt.Errorf("%w: bad hex escape", ErrInvalidRichText)
				}
				s.emit(rune(v))
				i += 3
			case c == '*':
				if s.skipDepth < 0 {
					s.skipDepth = s.depth
				}
				i++
			case c == '~':
				s.emit('\u00a0')
				i++
			case c == '\\' || c == '{' || c == '}':
				s.emit(rune(c))
				i++
			default:
				i++
			}
		default:
			s.emit(rune(ch))
			i++
		}
	}
	if s.depth != 0 {
		return RichText{}, fmt.Errorf("%w: unbalanced groups", ErrInvalidRichText)
	}

	return RichText{
		Text: s.out.String(),
		Font: Font{Name: s.fonts[s.currentFont], Size: s.size},
	}, nil
}

func isRTFLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isRTFDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
