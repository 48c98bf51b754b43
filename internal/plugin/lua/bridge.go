package lua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/ropeview/internal/view"
)

// ViewTypeName is the metatable name of view handles.
const ViewTypeName = "rope"

// RegisterViewType installs the view handle metatable. NewState calls it;
// it is exported for callers that build their own LState.
func RegisterViewType(L *lua.LState) {
	mt := L.NewTypeMetatable(ViewTypeName)
	L.SetField(mt, "__name", lua.LString(ViewTypeName))
	L.SetField(mt, "__metatable", lua.LString(ViewTypeName))
	L.SetField(mt, "__eq", L.NewFunction(viewEq))
	L.SetField(mt, "__tostring", L.NewFunction(viewToString))
	L.SetField(mt, "__len", L.NewFunction(viewLen))
}

// PushView pushes v onto the stack as an opaque handle.
func PushView(L *lua.LState, v view.View) {
	L.Push(NewViewValue(L, v))
}

// NewViewValue wraps v in a userdata carrying the view metatable.
func NewViewValue(L *lua.LState, v view.View) *lua.LUserData {
	ud := L.NewUserData()
	ud.Value = v
	L.SetMetatable(ud, L.GetTypeMetatable(ViewTypeName))
	return ud
}

// CheckView returns the view handle at stack position n, raising an argument
// error if the value is not a view.
func CheckView(L *lua.LState, n int) view.View {
	ud := L.CheckUserData(n)
	if v, ok := ud.Value.(view.View); ok {
		return v
	}
	L.ArgError(n, "rope expected")
	return view.View{}
}

// ToView extracts a view from a Lua value.
func ToView(lv lua.LValue) (view.View, bool) {
	ud, ok := lv.(*lua.LUserData)
	if !ok {
		return view.View{}, false
	}
	v, ok := ud.Value.(view.View)
	return v, ok
}

// EqualValue compares a view against a Lua value: another view or a string
// compare by content, anything else is not equal.
func EqualValue(v view.View, other lua.LValue) bool {
	switch o := other.(type) {
	case lua.LString:
		return view.Equal(v, string(o))
	case *lua.LUserData:
		if ov, ok := o.Value.(view.View); ok {
			return view.Equal(v, ov)
		}
	}
	return false
}

// RaiseViewError raises err as a Lua error tagged with the binding name.
func RaiseViewError(L *lua.LState, name string, err error) {
	L.RaiseError("%s: %v", name, err)
}

func viewEq(L *lua.LState) int {
	v, ok := ToView(L.Get(1))
	L.Push(lua.LBool(ok && EqualValue(v, L.Get(2))))
	return 1
}

func viewToString(L *lua.LState) int {
	text, err := CheckView(L, 1).Text()
	if err != nil {
		RaiseViewError(L, "tostring", err)
		return 0
	}
	L.Push(lua.LString(text))
	return 1
}

func viewLen(L *lua.LState) int {
	n, err := CheckView(L, 1).LenChars()
	if err != nil {
		RaiseViewError(L, "len", err)
		return 0
	}
	L.Push(lua.LNumber(n))
	return 1
}
