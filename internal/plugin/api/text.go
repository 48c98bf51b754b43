package api

import (
	lua "github.com/yuin/gopher-lua"

	luart "github.com/dshills/ropeview/internal/plugin/lua"
	"github.com/dshills/ropeview/internal/view"
)

// TextModuleName is the require name of the text module.
const TextModuleName = "text"

// binding is one named entry of the text module dispatch table.
type binding struct {
	name string
	fn   lua.LGFunction
}

// textBindings is the external contract of the text module. Names and
// argument order must not change.
var textBindings = []binding{
	{"string->rope", fromString},
	{"rope->slice", slice},
	{"rope-char->byte", charToByte},
	{"rope->byte-slice", byteSlice},
	{"rope->line", line},
	{"rope->string", toString},
	{"rope-len-chars", lenChars},
	{"rope-char-ref", charRef},
	{"rope-len-lines", lenLines},
	{"rope-starts-with?", startsWith},
	{"rope-ends-with?", endsWith},
	{"rope-trim-start", trimStart},

	{"rope-trimmed-starts-with?", trimmedStartsWith},
	{"rope-len-bytes", lenBytes},
	{"rope-width", width},
	{"rope-len-graphemes", lenGraphemes},
	{"rope-equal?", equal},
}

// TextModule implements the text module.
type TextModule struct{}

// NewTextModule creates a new text module.
func NewTextModule() *TextModule {
	return &TextModule{}
}

// Name returns the module name.
func (m *TextModule) Name() string {
	return TextModuleName
}

// Loader builds the module table.
func (m *TextModule) Loader(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	for _, b := range textBindings {
		L.SetField(mod, b.name, L.NewFunction(b.fn))
	}
	return mod
}

// BindingNames returns the exposed names in registration order.
func BindingNames() []string {
	names := make([]string, len(textBindings))
	for i, b := range textBindings {
		names[i] = b.name
	}
	return names
}

// string->rope(text) -> rope
func fromString(L *lua.LState) int {
	luart.PushView(L, view.FromString(L.CheckString(1)))
	return 1
}

// rope->slice(rope, lower, upper) -> rope
func slice(L *lua.LState) int {
	luart.PushView(L, luart.CheckView(L, 1).Slice(L.CheckInt(2), L.CheckInt(3)))
	return 1
}

// rope-char->byte(rope, pos) -> number
func charToByte(L *lua.LState) int {
	n, err := luart.CheckView(L, 1).CharToByte(L.CheckInt(2))
	return pushInt(L, "rope-char->byte", n, err)
}

// rope->byte-slice(rope, lower, upper) -> rope
func byteSlice(L *lua.LState) int {
	luart.PushView(L, luart.CheckView(L, 1).ByteSlice(L.CheckInt(2), L.CheckInt(3)))
	return 1
}

// rope->line(rope, index) -> rope
func line(L *lua.LState) int {
	luart.PushView(L, luart.CheckView(L, 1).Line(L.CheckInt(2)))
	return 1
}

// rope->string(rope) -> string
func toString(L *lua.LState) int {
	text, err := luart.CheckView(L, 1).Text()
	if err != nil {
		luart.RaiseViewError(L, "rope->string", err)
		return 0
	}
	L.Push(lua.LString(text))
	return 1
}

// rope-len-chars(rope) -> number
func lenChars(L *lua.LState) int {
	n, err := luart.CheckView(L, 1).LenChars()
	return pushInt(L, "rope-len-chars", n, err)
}

// rope-char-ref(rope, index) -> string | nil
func charRef(L *lua.LState) int {
	r, ok, err := luart.CheckView(L, 1).CharAt(L.CheckInt(2))
	if err != nil {
		luart.RaiseViewError(L, "rope-char-ref", err)
		return 0
	}
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(string(r)))
	return 1
}

// rope-len-lines(rope) -> number
func lenLines(L *lua.LState) int {
	n, err := luart.CheckView(L, 1).LenLines()
	return pushInt(L, "rope-len-lines", n, err)
}

// rope-starts-with?(rope, pattern) -> bool
func startsWith(L *lua.LState) int {
	ok, err := luart.CheckView(L, 1).HasPrefix(L.CheckString(2))
	return pushBool(L, "rope-starts-with?", ok, err)
}

// rope-ends-with?(rope, pattern) -> bool
func endsWith(L *lua.LState) int {
	ok, err := luart.CheckView(L, 1).HasSuffix(L.CheckString(2))
	return pushBool(L, "rope-ends-with?", ok, err)
}

// rope-trim-start(rope) -> rope
func trimStart(L *lua.LState) int {
	v, err := luart.CheckView(L, 1).TrimStart()
	if err != nil {
		luart.RaiseViewError(L, "rope-trim-start", err)
		return 0
	}
	luart.PushView(L, v)
	return 1
}

// rope-trimmed-starts-with?(rope, pattern) -> bool
func trimmedStartsWith(L *lua.LState) int {
	ok, err := luart.CheckView(L, 1).TrimmedHasPrefix(L.CheckString(2))
	return pushBool(L, "rope-trimmed-starts-with?", ok, err)
}

// rope-len-bytes(rope) -> number
func lenBytes(L *lua.LState) int {
	n, err := luart.CheckView(L, 1).LenBytes()
	return pushInt(L, "rope-len-bytes", n, err)
}

// rope-width(rope) -> number
func width(L *lua.LState) int {
	n, err := luart.CheckView(L, 1).Width()
	return pushInt(L, "rope-width", n, err)
}

// rope-len-graphemes(rope) -> number
func lenGraphemes(L *lua.LState) int {
	n, err := luart.CheckView(L, 1).LenGraphemes()
	return pushInt(L, "rope-len-graphemes", n, err)
}

// rope-equal?(rope, other) -> bool
// other may be a rope or a string; anything else is not equal.
func equal(L *lua.LState) int {
	L.Push(lua.LBool(luart.EqualValue(luart.CheckView(L, 1), L.CheckAny(2))))
	return 1
}

func pushInt(L *lua.LState, name string, n int, err error) int {
	if err != nil {
		luart.RaiseViewError(L, name, err)
		return 0
	}
	L.Push(lua.LNumber(n))
	return 1
}

func pushBool(L *lua.LState, name string, ok bool, err error) int {
	if err != nil {
		luart.RaiseViewError(L, name, err)
		return 0
	}
	L.Push(lua.LBool(ok))
	return 1
}
