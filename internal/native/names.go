package native

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/roach88/bindgen/internal/ident"
	"github.com/roach88/bindgen/internal/idl"
)

var wordSep = regexp.MustCompile(`[^A-Za-z0-9]+`)

func words(s string) []string {
	var out []string
	for _, w := range wordSep.Split(s, -1) {
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

func leadingDigit(s string) string {
	if s != "" && s[0] >= '0' && s[0] <= '9' {
		return "_" + s
	}
	return s
}

// pascalCase turns "hello_world" into "HelloWorld".
func pascalCase(s string) string {
	var b strings.Builder
	for _, w := range words(s) {
		b.WriteString(upperFirst(w))
	}
	if b.Len() == 0 {
		return "Service"
	}
	return leadingDigit(b.String())
}

// camelCase turns "hello_world" into "helloWorld".
func camelCase(s string) string {
	return leadingDigit(lowerFirst(pascalCase(s)))
}

// ServiceInterfaceName names the interface of the actor.
func ServiceInterfaceName(service string) string {
	return camelCase(service) + "Interface"
}

// ServiceClassName names the wrapper class of the actor.
func ServiceClassName(service string) string {
	return pascalCase(service)
}

// DeclarationsModule is the import path of the runtime description,
// relative to the wrapper.
func DeclarationsModule(service string) string {
	return "./declarations/" + service + ".did"
}

func typeName(name string) string {
	return ident.TypeScript.Escape(name)
}

func methodName(name string) string {
	return ident.TypeScript.Escape(name)
}

// fieldName is the property key of a field on the native side.
func fieldName(l idl.Label) string {
	if name, ok := l.Name(); ok {
		return ident.TypeScript.Escape(name)
	}
	return wireFieldName(l)
}

// wireFieldName is the property key the runtime decoder produces.
func wireFieldName(l idl.Label) string {
	if name, ok := l.Name(); ok {
		return name
	}
	return "_" + strconv.FormatUint(uint64(l.Number()), 10) + "_"
}

func sanitizeIdent(s string) string {
	return leadingDigit(strings.Join(words(s), "_"))
}
