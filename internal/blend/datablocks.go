package blend

import (
	"math"
	"strings"
)

// Every datablock struct (Object, Mesh, Material, ...) embeds an ID as
// its first member, and ID.name carries the user-visible name behind a
// two-character type prefix: "OBCube", "MECube", "MABlue".

// StripIDPrefix removes the two-character datablock prefix from an ID
// name, but only when the name actually starts with that code.
func StripIDPrefix(name, code string) string {
	if len(code) == 2 && strings.HasPrefix(name, code) {
		return name[2:]
	}
	return name
}

// idName reads the ID.name of a datablock stored with the given struct
// type. The prefix is kept.
func (f *File) idName(b *Block, structName string) (string, error) {
	s, ok := f.dna.StructByName(structName)
	if !ok {
		return "", formatErrf("no %s struct in DNA", structName)
	}
	idField, ok := f.dna.Field(s, "id")
	if !ok {
		return "", formatErrf("%s has no id field", structName)
	}
	idStruct, ok := f.dna.StructByName("ID")
	if !ok {
		return "", formatErrf("no ID struct in DNA")
	}
	nameField, ok := f.dna.Field(idStruct, "name")
	if !ok {
		return "", formatErrf("ID has no name field")
	}
	off := idField.Offset + nameField.Offset
	if off+nameField.Size > len(b.Data) {
		return "", formatErrf("%s block too small for its ID", structName)
	}
	return cstring(b.Data[off : off+nameField.Size]), nil
}

// ListObjects returns the names of all top-level objects in the file,
// in declaration order, with the "OB" prefix stripped.
func (f *File) ListObjects() ([]string, error) {
	var names []string
	for _, b := range f.BlocksWithCode(CodeObject) {
		name, err := f.idName(b, "Object")
		if err != nil {
			return nil, err
		}
		names = append(names, StripIDPrefix(name, CodeObject))
	}
	return names, nil
}

// MeshData is mesh geometry extracted for previewing: vertex positions
// and polygons as vertex index rings.
type MeshData struct {
	Name  string
	Verts [][3]float64
	Polys [][]int
}

// Mesh extracts the geometry of the mesh datablock with the given name
// (without the "ME" prefix). It understands the MVert/MLoop/MPoly
// layout used by Blender 2.63 through 2.9x; anything else is a
// FormatError so the caller can fall back to a placeholder.
func (f *File) Mesh(name string) (*MeshData, error) {
	for _, b := range f.BlocksWithCode(CodeMesh) {
		idn, err := f.idName(b, "Mesh")
		if err != nil {
			return nil, err
		}
		if StripIDPrefix(idn, CodeMesh) != name {
			continue
		}
		return f.meshGeometry(b, name)
	}
	return nil, formatErrf("no mesh named %q", name)
}

func (f *File) meshGeometry(b *Block, name string) (*MeshData, error) {
	meshStruct, ok := f.dna.StructByName("Mesh")
	if !ok {
		return nil, formatErrf("no Mesh struct in DNA")
	}

	totVert, err := f.intField(meshStruct, b.Data, "totvert")
	if err != nil {
		return nil, err
	}
	totLoop, err := f.intField(meshStruct, b.Data, "totloop")
	if err != nil {
		return nil, err
	}
	totPoly, err := f.intField(meshStruct, b.Data, "totpoly")
	if err != nil {
		return nil, err
	}

	vertBlock, err := f.pointedBlock(meshStruct, b.Data, "mvert")
	if err != nil {
		return nil, err
	}
	loopBlock, err := f.pointedBlock(meshStruct, b.Data, "mloop")
	if err != nil {
		return nil, err
	}
	polyBlock, err := f.pointedBlock(meshStruct, b.Data, "mpoly")
	if err != nil {
		return nil, err
	}

	md := &MeshData{Name: name}

	// Vertices: MVert.co[3] floats, one MVert per stride.
	mvert, ok := f.dna.StructByName("MVert")
	if !ok {
		return nil, formatErrf("no MVert struct in DNA")
	}
	co, ok := f.dna.Field(mvert, "co")
	if !ok {
		return nil, formatErrf("MVert has no co field")
	}
	stride := f.dna.Lens[mvert.Type]
	if totVert*stride > len(vertBlock.Data) {
		return nil, formatErrf("mesh %q vertex data truncated", name)
	}
	for i := 0; i < totVert; i++ {
		base := i*stride + co.Offset
		md.Verts = append(md.Verts, [3]float64{
			float64(f.float32At(vertBlock.Data, base)),
			float64(f.float32At(vertBlock.Data, base+4)),
			float64(f.float32At(vertBlock.Data, base+8)),
		})
	}

	// Loops: MLoop.v, the vertex index of each face corner.
	mloop, ok := f.dna.StructByName("MLoop")
	if !ok {
		return nil, formatErrf("no MLoop struct in DNA")
	}
	vField, ok := f.dna.Field(mloop, "v")
	if !ok {
		return nil, formatErrf("MLoop has no v field")
	}
	loopStride := f.dna.Lens[mloop.Type]
	if totLoop*loopStride > len(loopBlock.Data) {
		return nil, formatErrf("mesh %q loop data truncated", name)
	}
	loops := make([]int, totLoop)
	for i := 0; i < totLoop; i++ {
		loops[i] = int(f.order.Uint32(loopBlock.Data[i*loopStride+vField.Offset:]))
	}

	// Polygons: MPoly.loopstart / MPoly.totloop index into the loops.
	mpoly, ok := f.dna.StructByName("MPoly")
	if !ok {
		return nil, formatErrf("no MPoly struct in DNA")
	}
	startField, ok := f.dna.Field(mpoly, "loopstart")
	if !ok {
		return nil, formatErrf("MPoly has no loopstart field")
	}
	lenField, ok := f.dna.Field(mpoly, "totloop")
	if !ok {
		return nil, formatErrf("MPoly has no totloop field")
	}
	polyStride := f.dna.Lens[mpoly.Type]
	if totPoly*polyStride > len(polyBlock.Data) {
		return nil, formatErrf("mesh %q polygon data truncated", name)
	}
	for i := 0; i < totPoly; i++ {
		start := int(int32(f.order.Uint32(polyBlock.Data[i*polyStride+startField.Offset:])))
		n := int(int32(f.order.Uint32(polyBlock.Data[i*polyStride+lenField.Offset:])))
		if start < 0 || n < 3 || start+n > len(loops) {
			return nil, formatErrf("mesh %q polygon %d out of range", name, i)
		}
		poly := make([]int, n)
		for j := 0; j < n; j++ {
			v := loops[start+j]
			if v < 0 || v >= len(md.Verts) {
				return nil, formatErrf("mesh %q loop index out of range", name)
			}
			poly[j] = v
		}
		md.Polys = append(md.Polys, poly)
	}

	return md, nil
}

// MaterialColor returns the diffuse r, g, b of the material datablock
// with the given name (without the "MA" prefix).
func (f *File) MaterialColor(name string) (r, g, b float64, err error) {
	matStruct, ok := f.dna.StructByName("Material")
	if !ok {
		return 0, 0, 0, formatErrf("no Material struct in DNA")
	}
	for _, blk := range f.BlocksWithCode(CodeMaterial) {
		idn, err := f.idName(blk, "Material")
		if err != nil {
			return 0, 0, 0, err
		}
		if StripIDPrefix(idn, CodeMaterial) != name {
			continue
		}
		var rgb [3]float64
		for i, field := range []string{"r", "g", "b"} {
			fd, ok := f.dna.Field(matStruct, field)
			if !ok || fd.Offset+4 > len(blk.Data) {
				return 0, 0, 0, formatErrf("material %q has no %s channel", name, field)
			}
			rgb[i] = float64(f.float32At(blk.Data, fd.Offset))
		}
		return rgb[0], rgb[1], rgb[2], nil
	}
	return 0, 0, 0, formatErrf("no material named %q", name)
}

// intField reads a 4-byte int struct member from a datablock.
func (f *File) intField(s StructDef, data []byte, name string) (int, error) {
	fd, ok := f.dna.Field(s, name)
	if !ok {
		return 0, formatErrf("%s: no such field %q", f.dna.Types[s.Type], name)
	}
	if fd.Offset+4 > len(data) {
		return 0, formatErrf("field %q out of range", name)
	}
	return int(int32(f.order.Uint32(data[fd.Offset:]))), nil
}

// pointedBlock resolves a pointer struct member through the old-address
// block index.
func (f *File) pointedBlock(s StructDef, data []byte, name string) (*Block, error) {
	fd, ok := f.dna.Field(s, name)
	if !ok {
		return nil, formatErrf("%s: no such field %q", f.dna.Types[s.Type], name)
	}
	if fd.Offset+f.ptrSize > len(data) {
		return nil, formatErrf("field %q out of range", name)
	}
	addr := f.readPtr(data[fd.Offset:])
	b := f.blockByAddr(addr)
	if b == nil {
		return nil, formatErrf("dangling %q pointer", name)
	}
	return b, nil
}

func (f *File) float32At(data []byte, off int) float32 {
	return math.Float32frombits(f.order.Uint32(data[off:]))
}

func cstring(data []byte) string {
	for i, c := range data {
		if c == 0 {
			return string(data[:i])
		}
	}
	return string(data)
}
