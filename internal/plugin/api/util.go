package api

import (
	"strings"
	"unicode"

	lua "github.com/yuin/gopher-lua"

	luart "github.com/dshills/ropeview/internal/plugin/lua"
)

// UtilModuleName is the require name of the util module.
const UtilModuleName = "util"

// UtilModule provides string helpers. Every text argument may be a Lua
// string or a rope; ropes are resolved first.
type UtilModule struct{}

// NewUtilModule creates a new util module.
func NewUtilModule() *UtilModule {
	return &UtilModule{}
}

// Name returns the module name.
func (m *UtilModule) Name() string {
	return UtilModuleName
}

// Loader builds the module table.
func (m *UtilModule) Loader(L *lua.LState) *lua.LTable {
	mod := L.NewTable()

	L.SetField(mod, "split", L.NewFunction(m.split))
	L.SetField(mod, "lines", L.NewFunction(m.lines))
	L.SetField(mod, "join", L.NewFunction(m.join))
	L.SetField(mod, "trim", L.NewFunction(m.trim))
	L.SetField(mod, "trim_left", L.NewFunction(m.trimLeft))
	L.SetField(mod, "trim_right", L.NewFunction(m.trimRight))
	L.SetField(mod, "contains", L.NewFunction(m.contains))
	L.SetField(mod, "escape_pattern", L.NewFunction(m.escapePattern))

	return mod
}

// checkText returns argument n as text, resolving ropes.
func checkText(L *lua.LState, n int) string {
	lv := L.Get(n)
	if s, ok := lv.(lua.LString); ok {
		return string(s)
	}
	if v, ok := luart.ToView(lv); ok {
		text, err := v.Text()
		if err != nil {
			luart.RaiseViewError(L, "util", err)
			return ""
		}
		return text
	}
	L.TypeError(n, lua.LTString)
	return ""
}

func pushStrings(L *lua.LState, parts []string) {
	tbl := L.CreateTable(len(parts), 0)
	for i, part := range parts {
		tbl.RawSetInt(i+1, lua.LString(part))
	}
	L.Push(tbl)
}

// split(text, sep) -> {parts}
func (m *UtilModule) split(L *lua.LState) int {
	text := checkText(L, 1)
	sep := L.CheckString(2)
	pushStrings(L, strings.Split(text, sep))
	return 1
}

// lines(text) -> {lines}
// Lines break on "\n" and drop it, so "a\n" yields {"a", ""}. The count
// matches rope-len-lines; unlike rope->line, no entry keeps its newline.
func (m *UtilModule) lines(L *lua.LState) int {
	pushStrings(L, strings.Split(checkText(L, 1), "\n"))
	return 1
}

// join(tbl, sep) -> string
// Joins the array part of tbl in order, applying __tostring to ropes.
func (m *UtilModule) join(L *lua.LState) int {
	tbl := L.CheckTable(1)
	sep := L.OptString(2, "")

	n := tbl.Len()
	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		parts = append(parts, L.ToStringMeta(tbl.RawGetInt(i)).String())
	}

	L.Push(lua.LString(strings.Join(parts, sep)))
	return 1
}

// trim(text) -> string
func (m *UtilModule) trim(L *lua.LState) int {
	L.Push(lua.LString(strings.TrimSpace(checkText(L, 1))))
	return 1
}

// trim_left(text) -> string
func (m *UtilModule) trimLeft(L *lua.LState) int {
	L.Push(lua.LString(strings.TrimLeftFunc(checkText(L, 1), unicode.IsSpace)))
	return 1
}

// trim_right(text) -> string
func (m *UtilModule) trimRight(L *lua.LState) int {
	L.Push(lua.LString(strings.TrimRightFunc(checkText(L, 1), unicode.IsSpace)))
	return 1
}

// contains(text, substr) -> bool
func (m *UtilModule) contains(L *lua.LState) int {
	text := checkText(L, 1)
	L.Push(lua.LBool(strings.Contains(text, checkText(L, 2))))
	return 1
}

// luaPatternEscaper escapes the Lua pattern magic characters ^$()%.[]*+-?
var luaPatternEscaper = strings.NewReplacer(
	"%", "%%", "^", "%^", "$", "%$", "(", "%(", ")", "%)", ".", "%.",
	"[", "%[", "]", "%]", "*", "%*", "+", "%+", "-", "%-", "?", "%?",
)

// escape_pattern(text) -> string
func (m *UtilModule) escapePattern(L *lua.LState) int {
	L.Push(lua.LString(luaPatternEscaper.Replace(checkText(L, 1))))
	return 1
}
