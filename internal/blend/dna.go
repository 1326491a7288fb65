package blend

import (
	"encoding/binary"
	"strings"
)

// DNA is the SDNA catalogue stored in the DNA1 block. Every versioned
// struct Blender writes is described here, which is what lets a single
// reader cope with files saved by different Blender releases: field
// offsets are computed from the catalogue, never hard-coded.
type DNA struct {
	Names   []string
	Types   []string
	Lens    []int
	Structs []StructDef

	byType  map[string]int
	ptrSize int
}

// StructDef describes one struct: its type index and its fields with
// precomputed byte offsets.
type StructDef struct {
	Type   int
	Size   int
	Fields []FieldDef
}

// FieldDef is a single struct member.
type FieldDef struct {
	Type   int
	Name   int
	Offset int
	Size   int
}

func parseDNA(data []byte, order binary.ByteOrder, ptrSize int) (*DNA, error) {
	r := &dnaReader{data: data, order: order}

	if r.literal() != "SDNA" || r.literal() != "NAME" {
		return nil, formatErrf("bad SDNA header")
	}
	d := &DNA{ptrSize: ptrSize, byType: make(map[string]int)}

	nameCount := r.int32()
	for i := 0; i < nameCount; i++ {
		d.Names = append(d.Names, r.cstring())
	}
	r.align4()

	if r.literal() != "TYPE" {
		return nil, formatErrf("SDNA: expected TYPE")
	}
	typeCount := r.int32()
	for i := 0; i < typeCount; i++ {
		d.Types = append(d.Types, r.cstring())
	}
	r.align4()

	if r.literal() != "TLEN" {
		return nil, formatErrf("SDNA: expected TLEN")
	}
	for i := 0; i < typeCount; i++ {
		d.Lens = append(d.Lens, r.int16())
	}
	r.align4()

	if r.literal() != "STRC" {
		return nil, formatErrf("SDNA: expected STRC")
	}
	structCount := r.int32()
	for i := 0; i < structCount; i++ {
		s := StructDef{Type: r.int16()}
		fieldCount := r.int16()
		off := 0
		for j := 0; j < fieldCount; j++ {
			fd := FieldDef{Type: r.int16(), Name: r.int16(), Offset: off}
			if fd.Type >= len(d.Types) || fd.Name >= len(d.Names) {
				return nil, formatErrf("SDNA: field index out of range")
			}
			fd.Size = d.fieldSize(d.Names[fd.Name], d.Lens[fd.Type])
			off += fd.Size
			s.Fields = append(s.Fields, fd)
		}
		s.Size = off
		d.Structs = append(d.Structs, s)
		d.byType[d.Types[s.Type]] = i
	}
	if r.failed {
		return nil, formatErrf("truncated SDNA")
	}
	return d, nil
}

// fieldSize computes the stored size of one field from its decorated
// name: "*next" is a pointer, "co[3]" an array, "(*poin)()" a function
// pointer. Array dimensions multiply.
func (d *DNA) fieldSize(name string, typeLen int) int {
	base := typeLen
	if strings.HasPrefix(name, "*") || strings.HasPrefix(name, "(*") {
		base = d.ptrSize
	}
	size := base
	for i := strings.IndexByte(name, '['); i >= 0; i = strings.IndexByte(name, '[') {
		j := strings.IndexByte(name, ']')
		if j < i {
			break
		}
		n := 0
		for _, c := range name[i+1 : j] {
			if c < '0' || c > '9' {
				n = 0
				break
			}
			n = n*10 + int(c-'0')
		}
		if n > 0 {
			size *= n
		}
		name = name[j+1:]
	}
	return size
}

// StructByName looks up a struct definition by its type name.
func (d *DNA) StructByName(name string) (StructDef, bool) {
	i, ok := d.byType[name]
	if !ok {
		return StructDef{}, false
	}
	return d.Structs[i], true
}

// Field finds a struct member by its undecorated name, so "name"
// matches the stored "name[66]" and "mvert" matches "*mvert".
func (d *DNA) Field(s StructDef, name string) (FieldDef, bool) {
	for _, fd := range s.Fields {
		if baseName(d.Names[fd.Name]) == name {
			return fd, true
		}
	}
	return FieldDef{}, false
}

func baseName(decorated string) string {
	s := strings.TrimLeft(decorated, "*(")
	if i := strings.IndexAny(s, "[)"); i >= 0 {
		s = s[:i]
	}
	return s
}

// dnaReader is a cursor over the DNA1 payload. Out-of-range reads set
// failed instead of panicking; the caller checks once at the end.
type dnaReader struct {
	data   []byte
	off    int
	order  binary.ByteOrder
	failed bool
}

func (r *dnaReader) literal() string {
	if r.off+4 > len(r.data) {
		r.failed = true
		return ""
	}
	s := string(r.data[r.off : r.off+4])
	r.off += 4
	return s
}

func (r *dnaReader) int32() int {
	if r.off+4 > len(r.data) {
		r.failed = true
		return 0
	}
	v := int(r.order.Uint32(r.data[r.off:]))
	r.off += 4
	return v
}

func (r *dnaReader) int16() int {
	if r.off+2 > len(r.data) {
		r.failed = true
		return 0
	}
	v := int(r.order.Uint16(r.data[r.off:]))
	r.off += 2
	return v
}

func (r *dnaReader) cstring() string {
	start := r.off
	for r.off < len(r.data) && r.data[r.off] != 0 {
		r.off++
	}
	if r.off >= len(r.data) {
		r.failed = true
		return ""
	}
	s := string(r.data[start:r.off])
	r.off++ // NUL
	return s
}

func (r *dnaReader) align4() {
	if rem := r.off % 4; rem != 0 {
		r.off += 4 - rem
	}
}
