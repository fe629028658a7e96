package history

import (
	"bytes"
	"regexp"
	"strings"
)

// zshMeta marks a metafied byte in zsh history files; the byte after it is
// stored XOR'd with 0x20.
const zshMeta = 0x83

var (
	// zsh EXTENDED_HISTORY prefix ": <start>:<elapsed>;"
	zshTimestamp = regexp.MustCompile(`^: \d{10}:\d;`)
	// bash HISTTIMEFORMAT marker line "#<unix seconds>"
	bashTimestamp = regexp.MustCompile(`^#\d{9,}$`)
)

// Decoder turns the raw bytes of a history file into commands in
// chronological order.
type Decoder interface {
	Decode(raw []byte) []string
	// DecodeLine decodes a single physical line of the file. It reports false
	// when the line does not hold a command.
	DecodeLine(line []byte) (string, bool)
}

// DecoderFor returns the decoder matching the shell's history format.
func DecoderFor(shell Shell) Decoder {
	if shell == Zsh {
		return ZshDecoder{}
	}
	return PlainDecoder{}
}

// PlainDecoder reads bash style histories: one command per line.
type PlainDecoder struct{}

// Decode implements Decoder.
func (d PlainDecoder) Decode(raw []byte) []string {
	return decodeLines(bytes.Split(raw, []byte{'\n'}), d.DecodeLine)
}

// DecodeLine implements Decoder.
func (PlainDecoder) DecodeLine(line []byte) (string, bool) {
	cmd := toCommand(line)
	if cmd == "" || isBashTimestamp(line) {
		return "", false
	}
	return cmd, true
}

// ZshDecoder reads zsh histories, which are metafied and may carry
// extended history timestamps.
type ZshDecoder struct{}

// Decode implements Decoder. The whole buffer is unmetafied before it is
// split into lines.
func (ZshDecoder) Decode(raw []byte) []string {
	lines := bytes.Split(Unmetafy(raw), []byte{'\n'})
	return decodeLines(lines, func(line []byte) (string, bool) {
		cmd := StripTimestamp(toCommand(line))
		return cmd, cmd != ""
	})
}

// DecodeLine implements Decoder.
func (ZshDecoder) DecodeLine(line []byte) (string, bool) {
	cmd := StripTimestamp(toCommand(Unmetafy(line)))
	return cmd, cmd != ""
}

// Unmetafy reverses zsh's metafication in a single forward pass. A meta byte
// is dropped and the byte following it is XOR'd with 0x20. A trailing meta
// byte with nothing after it is dropped.
func Unmetafy(raw []byte) []byte {
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] == zshMeta {
			i++
			if i < len(raw) {
				out = append(out, raw[i]^0x20)
			}
			continue
		}
		out = append(out, raw[i])
	}
	return out
}

// StripTimestamp removes a leading zsh extended history prefix.
func StripTimestamp(line string) string {
	return zshTimestamp.ReplaceAllString(line, "")
}

func isBashTimestamp(line []byte) bool {
	return bashTimestamp.Match(bytes.TrimSuffix(line, []byte{'\r'}))
}

func toCommand(line []byte) string {
	return strings.ToValidUTF8(strings.TrimSuffix(string(line), "\r"), "�")
}

func decodeLines(lines [][]byte, decode func([]byte) (string, bool)) []string {
	commands := make([]string, 0, len(lines))
	for _, line := range lines {
		if cmd, ok := decode(line); ok {
			commands = append(commands, cmd)
		}
	}
	return commands
}
