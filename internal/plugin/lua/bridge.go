package lua

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/blockedit/internal/engine/block"
)

// Bridge converts values between Go and Lua. Block trees cross the
// boundary as plain tables with id/type/properties/children keys, the
// same shape the JSON encoding uses.
type Bridge struct {
	L *lua.LState
}

// NewBridge creates a Bridge for the given Lua state.
func NewBridge(L *lua.LState) *Bridge {
	return &Bridge{L: L}
}

// ToGoValue converts a Lua value to a Go value. Tables with contiguous
// integer keys become []any, other tables become map[string]any.
// Circular tables are cut at the revisit.
func (b *Bridge) ToGoValue(lv lua.LValue) any {
	return b.toGoValue(lv, make(map[*lua.LTable]bool))
}

func (b *Bridge) toGoValue(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if visited[v] {
			return nil
		}
		visited[v] = true
		return b.tableToGo(v, visited)
	case *lua.LUserData:
		return v.Value
	default:
		return nil
	}
}

func (b *Bridge) tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	isArray := true
	maxN, count := 0, 0
	t.ForEach(func(k, _ lua.LValue) {
		count++
		kn, ok := k.(lua.LNumber)
		if !ok || float64(kn) != float64(int(kn)) || int(kn) < 1 {
			isArray = false
			return
		}
		if int(kn) > maxN {
			maxN = int(kn)
		}
	})

	if isArray && count == maxN && maxN > 0 {
		arr := make([]any, maxN)
		for i := 1; i <= maxN; i++ {
			arr[i-1] = b.toGoValue(t.RawGetInt(i), visited)
		}
		return arr
	}

	m := make(map[string]any)
	t.ForEach(func(k, v lua.LValue) {
		m[k.String()] = b.toGoValue(v, visited)
	})
	return m
}

// ToLuaValue converts a Go value to a Lua value. Unsupported types
// become nil rather than userdata; scripts only ever see plain data.
func (b *Bridge) ToLuaValue(v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	case []any:
		t := b.L.NewTable()
		for i, e := range val {
			t.RawSetInt(i+1, b.ToLuaValue(e))
		}
		return t
	case []string:
		t := b.L.NewTable()
		for i, s := range val {
			t.RawSetInt(i+1, lua.LString(s))
		}
		return t
	case map[string]any:
		t := b.L.NewTable()
		for k, e := range val {
			t.RawSetString(k, b.ToLuaValue(e))
		}
		return t
	case lua.LValue:
		return val
	default:
		return lua.LNil
	}
}

// BlockToTable converts a block subtree to a Lua table.
func (b *Bridge) BlockToTable(blk *block.Block) *lua.LTable {
	t := b.L.NewTable()
	t.RawSetString("id", lua.LString(blk.ID))
	t.RawSetString("type", lua.LString(blk.Type))
	if blk.Properties != nil {
		t.RawSetString("properties", b.ToLuaValue(blk.Properties))
	}
	if blk.Children != nil {
		children := b.L.NewTable()
		for i, c := range blk.Children {
			children.RawSetInt(i+1, b.BlockToTable(c))
		}
		t.RawSetString("children", children)
	}
	return t
}

// TableToBlock converts a Lua table to a block subtree. The type key
// is required; id, properties and children are optional.
func (b *Bridge) TableToBlock(t *lua.LTable) (*block.Block, error) {
	typ, ok := t.RawGetString("type").(lua.LString)
	if !ok || typ == "" {
		return nil, fmt.Errorf("block table missing type")
	}

	blk := &block.Block{Type: string(typ)}
	if id, ok := t.RawGetString("id").(lua.LString); ok {
		blk.ID = string(id)
	}
	if props, ok := t.RawGetString("properties").(*lua.LTable); ok {
		if m, ok := b.ToGoValue(props).(map[string]any); ok {
			blk.Properties = m
		}
	}
	if children, ok := t.RawGetString("children").(*lua.LTable); ok {
		blk.Children = []*block.Block{}
		var convErr error
		children.ForEach(func(_, v lua.LValue) {
			if convErr != nil {
				return
			}
			ct, ok := v.(*lua.LTable)
			if !ok {
				convErr = fmt.Errorf("block children must be tables")
				return
			}
			child, err := b.TableToBlock(ct)
			if err != nil {
				convErr = err
				return
			}
			blk.Children = append(blk.Children, child)
		})
		if convErr != nil {
			return nil, convErr
		}
	}
	return blk, nil
}

// DocumentToTable converts a document to a Lua table with a blocks
// array and a meta map.
func (b *Bridge) DocumentToTable(doc *block.Document) *lua.LTable {
	t := b.L.NewTable()
	blocks := b.L.NewTable()
	for i, blk := range doc.Blocks {
		blocks.RawSetInt(i+1, b.BlockToTable(blk))
	}
	t.RawSetString("blocks", blocks)
	if doc.Meta != nil {
		t.RawSetString("meta", b.ToLuaValue(doc.Meta))
	}
	return t
}
