package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/rawview/rawview/bind"
	"github.com/rawview/rawview/marshal"
	"github.com/rawview/rawview/memsource"
	"github.com/rawview/rawview/view"
)

func main() {
	var (
		file        = flag.String("file", "", "Path to the raw snapshot file")
		base        = flag.Uint64("base", 0, "Byte offset of the structure within the file")
		setSpec     = flag.String("set", "", "Field edits to apply (field=value,field2=value2)")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose diagnostics")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Usage: structview -file <snapshot.bin> [-base N] [-set field=value,...]")
		fmt.Fprintln(os.Stderr, "       structview -file <snapshot.bin> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			bind.SetLogger(logger)
			defer logger.Sync()
		}
	}

	if *interactive {
		if err := runInteractive(*file, *base); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*file, *base, *setSpec); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// playerRaw is the sample layout the tool inspects: a 48-byte structure
// with a fixed-width name, two scalars, a color and a position vector.
type playerRaw struct {
	Name   string       `raw:"@0x00,size=16"`
	Health float32      `raw:"@0x10"`
	Ammo   uint32       `raw:"@0x14"`
	Tint   marshal.RGB  `raw:"@0x18"`
	Pos    marshal.Vec3 `raw:"@0x24"`
}

var playerLayout = bind.MustLayoutOf(playerRaw{})

// Player mirrors playerRaw through the view engine.
type Player struct {
	view.Node
	Name   string       `bind:"name"`
	Health float32      `bind:"health"`
	Ammo   uint32       `bind:"ammo"`
	Tint   marshal.RGB  `bind:"tint"`
	Pos    marshal.Vec3 `bind:"pos"`
}

func (*Player) RawLayout() *bind.Layout { return playerLayout }

func run(file string, base uint64, setSpec string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	src := memsource.NewBufferSource(0, data)

	snapshot, err := memsource.Fetch(src, base, nil, playerLayout.Size)
	if err != nil {
		return fmt.Errorf("fetch snapshot: %w", err)
	}

	p := &Player{}
	if err := view.Attach(p, view.WithSource(src), view.WithBase(base)); err != nil {
		return fmt.Errorf("attach: %w", err)
	}
	if err := p.SetModel(snapshot); err != nil {
		return fmt.Errorf("set model: %w", err)
	}

	fmt.Printf("Snapshot: %s\n", file)
	fmt.Printf("Layout: %s (%d bytes at offset %#x)\n\n", playerLayout.Name, playerLayout.Size, base)
	dumpFields(playerLayout, p.ModelBytes(), "")

	if setSpec == "" {
		return nil
	}

	for _, edit := range strings.Split(setSpec, ",") {
		name, value, found := strings.Cut(edit, "=")
		if !found {
			return fmt.Errorf("edit %q is not field=value", edit)
		}
		if err := applyEdit(p, name, value); err != nil {
			return err
		}
	}

	if err := memsource.Commit(src, base, nil, p.ModelBytes()); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	if err := os.WriteFile(file, src.Bytes(), 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	fmt.Println("\nAfter edits:")
	dumpFields(playerLayout, p.ModelBytes(), "")
	return nil
}

func dumpFields(l *bind.Layout, model []byte, indent string) {
	for _, f := range l.Fields() {
		switch {
		case f.Nested != nil:
			fmt.Printf("%s%-8s @%#04x %s\n", indent, f.Name, f.Offset, f.Nested.Name)
			dumpFields(f.Nested, model[f.Offset:f.Offset+f.Nested.Size], indent+"  ")
		case len(f.Steps) > 0:
			fmt.Printf("%s%-8s @%#04x %-6s (indirect: %v)\n", indent, f.Name, f.Offset, f.Kind, f.Steps)
		default:
			window := model[f.Offset : f.Offset+f.WireSize()]
			fmt.Printf("%s%-8s @%#04x %-6s = %s\n",
				indent, f.Name, f.Offset, f.Kind, formatValue(f.Marshaler.Decode(window)))
		}
	}
}

// applyEdit encodes a parsed value into the field's window and pushes the
// modified snapshot back through the engine so the view stays in sync.
func applyEdit(p *Player, name, value string) error {
	f, ok := playerLayout.Field(name)
	if !ok {
		return fmt.Errorf("layout declares no field %q", name)
	}
	if f.Nested != nil || len(f.Steps) > 0 {
		return fmt.Errorf("field %q is not directly editable", name)
	}

	v, err := parseValue(f.Kind, value)
	if err != nil {
		return fmt.Errorf("field %q: %w", name, err)
	}

	model := p.ModelBytes()
	f.Marshaler.Encode(v, model[f.Offset:f.Offset+f.WireSize()])
	return p.SetModel(model)
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return strconv.Quote(val)
	case []byte:
		return fmt.Sprintf("% X", val)
	case marshal.RGB:
		return fmt.Sprintf("%g,%g,%g", val.R, val.G, val.B)
	case marshal.Vec2:
		return fmt.Sprintf("%g,%g", val.X, val.Y)
	case marshal.Vec3:
		return fmt.Sprintf("%g,%g,%g", val.X, val.Y, val.Z)
	case marshal.Vec4:
		return fmt.Sprintf("%g,%g,%g,%g", val.X, val.Y, val.Z, val.W)
	case marshal.Quat:
		return fmt.Sprintf("%g,%g,%g,%g", val.X, val.Y, val.Z, val.W)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func parseValue(kind marshal.Kind, s string) (any, error) {
	switch kind {
	case marshal.KindBool:
		return s == "true" || s == "1", nil
	case marshal.KindU8:
		v, err := strconv.ParseUint(s, 0, 8)
		return uint8(v), err
	case marshal.KindS8:
		v, err := strconv.ParseInt(s, 0, 8)
		return int8(v), err
	case marshal.KindU16:
		v, err := strconv.ParseUint(s, 0, 16)
		return uint16(v), err
	case marshal.KindS16:
		v, err := strconv.ParseInt(s, 0, 16)
		return int16(v), err
	case marshal.KindU32:
		v, err := strconv.ParseUint(s, 0, 32)
		return uint32(v), err
	case marshal.KindS32:
		v, err := strconv.ParseInt(s, 0, 32)
		return int32(v), err
	case marshal.KindU64:
		return strconv.ParseUint(s, 0, 64)
	case marshal.KindS64:
		return strconv.ParseInt(s, 0, 64)
	case marshal.KindF32:
		v, err := strconv.ParseFloat(s, 32)
		return float32(v), err
	case marshal.KindF64:
		return strconv.ParseFloat(s, 64)
	case marshal.KindEnum:
		v, err := strconv.ParseUint(s, 0, 32)
		return marshal.Enum(v), err
	case marshal.KindString:
		return s, nil
	case marshal.KindRGB:
		fs, err := parseFloats(s, 3)
		if err != nil {
			return nil, err
		}
		return marshal.RGB{R: fs[0], G: fs[1], B: fs[2]}, nil
	case marshal.KindVec2:
		fs, err := parseFloats(s, 2)
		if err != nil {
			return nil, err
		}
		return marshal.Vec2{X: fs[0], Y: fs[1]}, nil
	case marshal.KindVec3:
		fs, err := parseFloats(s, 3)
		if err != nil {
			return nil, err
		}
		return marshal.Vec3{X: fs[0], Y: fs[1], Z: fs[2]}, nil
	case marshal.KindVec4:
		fs, err := parseFloats(s, 4)
		if err != nil {
			return nil, err
		}
		return marshal.Vec4{X: fs[0], Y: fs[1], Z: fs[2], W: fs[3]}, nil
	case marshal.KindQuat:
		fs, err := parseFloats(s, 4)
		if err != nil {
			return nil, err
		}
		return marshal.Quat{X: fs[0], Y: fs[1], Z: fs[2], W: fs[3]}, nil
	default:
		return nil, fmt.Errorf("cannot parse %s values", kind)
	}
}

func parseFloats(s string, n int) ([]float32, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma-separated components, got %d", n, len(parts))
	}
	out := make([]float32, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(v)
	}
	return out, nil
}
