package colour

import "strings"

// Code is a literal ANSI escape sequence, or one of the sentinel values.
type Code string

// Sentinel codes carry meaning for the colorizer and are never written out.
const (
	Previous  Code = "previous"
	Unchanged Code = "unchanged"
)

// Reset is the sequence every wrapped span is terminated with.
const Reset Code = "\x1b[0m"

var table = map[string]Code{
	"none":      "",
	"default":   Reset,
	"bold":      "\x1b[1m",
	"underline": "\x1b[4m",
	"blink":     "\x1b[5m",
	"reverse":   "\x1b[7m",
	"concealed": "\x1b[8m",

	"black":   "\x1b[30m",
	"red":     "\x1b[31m",
	"green":   "\x1b[32m",
	"yellow":  "\x1b[33m",
	"blue":    "\x1b[34m",
	"magenta": "\x1b[35m",
	"cyan":    "\x1b[36m",
	"white":   "\x1b[37m",

	"on_black":   "\x1b[40m",
	"on_red":     "\x1b[41m",
	"on_green":   "\x1b[42m",
	"on_yellow":  "\x1b[43m",
	"on_blue":    "\x1b[44m",
	"on_magenta": "\x1b[45m",
	"on_cyan":    "\x1b[46m",
	"on_white":   "\x1b[47m",

	"beep":      "\a",
	"previous":  Previous,
	"unchanged": Unchanged,

	// not supported by every terminal
	"dark":          "\x1b[2m",
	"italic":        "\x1b[3m",
	"rapidblink":    "\x1b[6m",
	"strikethrough": "\x1b[9m",

	// aixterm bright codes, prefixed with the standard code so terminals
	// without aixterm support still get the base colour
	"bright_black":   "\x1b[30;90m",
	"bright_red":     "\x1b[31;91m",
	"bright_green":   "\x1b[32;92m",
	"bright_yellow":  "\x1b[33;93m",
	"bright_blue":    "\x1b[34;94m",
	"bright_magenta": "\x1b[35;95m",
	"bright_cyan":    "\x1b[36;96m",
	"bright_white":   "\x1b[37;97m",

	"on_bright_black":   "\x1b[40;100m",
	"on_bright_red":     "\x1b[41;101m",
	"on_bright_green":   "\x1b[42;102m",
	"on_bright_yellow":  "\x1b[43;103m",
	"on_bright_blue":    "\x1b[44;104m",
	"on_bright_magenta": "\x1b[45;105m",
	"on_bright_cyan":    "\x1b[46;106m",
	"on_bright_white":   "\x1b[47;107m",
}

// aliases accepted in rule files that differ only in spelling
var aliases = map[string]string{
	"rapid-blink": "rapidblink",
	"rapid_blink": "rapidblink",
}

// Resolve maps a colour or style name to its escape sequence. Unknown names
// resolve to Reset.
func Resolve(name string) Code {
	code, _ := Lookup(name)
	return code
}

// Lookup is Resolve that also reports whether the name was known.
func Lookup(name string) (Code, bool) {
	if alias, ok := aliases[name]; ok {
		name = alias
	}
	code, ok := table[name]
	if !ok {
		return Reset, false
	}
	return code, true
}

// Names returns every name Resolve knows, in no particular order.
func Names() []string {
	names := make([]string, 0, len(table)+len(aliases))
	for name := range table {
		names = append(names, name)
	}
	for alias := range aliases {
		names = append(names, alias)
	}
	return names
}

// ParseList resolves a colours value such as "red bold,on_blue". Groups are
// split on commas, tokens on whitespace; empty tokens are dropped and the
// result is flattened in order.
func ParseList(raw string) []Code {
	var codes []Code
	for _, group := range strings.Split(raw, ",") {
		for _, token := range strings.Fields(group) {
			codes = append(codes, Resolve(token))
		}
	}
	return codes
}

// UnknownNames returns the tokens of raw that Resolve does not recognise.
func UnknownNames(raw string) []string {
	var unknown []string
	for _, group := range strings.Split(raw, ",") {
		for _, token := range strings.Fields(group) {
			if _, ok := Lookup(token); !ok {
				unknown = append(unknown, token)
			}
		}
	}
	return unknown
}

// IsSentinel reports whether c is a marker rather than styling.
func (c Code) IsSentinel() bool {
	return c == Previous || c == Unchanged
}

// Wrap surrounds text with c and a trailing Reset.
func Wrap(text string, c Code) string {
	return string(c) + text + string(Reset)
}
