package dump

import (
	"strings"

	"github.com/signadot/jkc/wire"

	"github.com/fatih/color"
)

type ColorAttr int

const (
	ValueColor ColorAttr = iota
	KeyColor
	SepColor
	IndexColor
)

type Colorable struct {
	Type wire.Type
	Attr ColorAttr
}

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	able := Colorable{Attr: ValueColor}

	able.Type = wire.Int
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	able.Type = wire.Float
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	able.Type = wire.Null
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()
	able.Type = wire.Bool
	colors.Map[able] = color.CyanString
	able.Type = wire.String
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()

	colors.Map[Colorable{Type: wire.Int, Attr: KeyColor}] = color.RGB(128, 168, 196).SprintfFunc()
	colors.Map[Colorable{Type: wire.Boundary, Attr: SepColor}] = color.RGB(196, 128, 128).SprintfFunc()
	colors.Map[Colorable{Type: wire.Boundary, Attr: IndexColor}] = color.RGB(74, 92, 138).SprintfFunc()
	colors.Map[Colorable{Type: wire.DictionaryStart, Attr: SepColor}] = color.RGB(196, 168, 128).SprintfFunc()
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.ReplaceAll(v, "%", "%%"))
		}
	}
	return colors
}

func (c *Colors) Color(t wire.Type, attr ColorAttr) func(string, ...any) string {
	if c == nil {
		return colorDefault
	}
	f, ok := c.Map[Colorable{Type: t, Attr: attr}]
	if ok {
		return f
	}
	return c.Default
}

func colorDefault(v string, _ ...any) string {
	return v
}
