// Package blend reads the Blender .blend container format: the file
// header, the block stream, and the embedded SDNA catalogue that
// describes every struct stored in the file. It knows just enough to
// enumerate named datablocks and pull vertex/polygon data out of
// meshes for previewing; it is not a general Blender importer.
package blend

import (
	"encoding/binary"
	"fmt"
	"os"
)

const headerSize = 12

// Well-known block codes. Datablock codes are two characters padded
// with NULs ("OB\x00\x00"); service blocks use all four ("DNA1").
const (
	CodeObject   = "OB"
	CodeMesh     = "ME"
	CodeMaterial = "MA"
	codeDNA      = "DNA1"
	codeEnd      = "ENDB"
)

// FormatError reports a malformed or unsupported .blend file.
type FormatError struct {
	Msg string
}

func (e *FormatError) Error() string {
	return "blend: " + e.Msg
}

func formatErrf(format string, args ...any) error {
	return &FormatError{Msg: fmt.Sprintf(format, args...)}
}

// Block is a single file block. Data aliases the file buffer and must
// not be mutated.
type Block struct {
	Code      string
	Data      []byte
	OldAddr   uint64
	SDNAIndex int
	Count     int
}

// File is a parsed .blend container.
type File struct {
	Version string
	ptrSize int
	order   binary.ByteOrder
	blocks  []*Block
	byAddr  map[uint64]*Block
	dna     *DNA
}

// Open reads and parses the .blend file at path.
func Open(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("blend: open %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return f, nil
}

// Parse parses an in-memory .blend file.
func Parse(data []byte) (*File, error) {
	if len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b {
		return nil, formatErrf("compressed .blend files are not supported")
	}
	if len(data) < headerSize || string(data[:7]) != "BLENDER" {
		return nil, formatErrf("not a .blend file")
	}

	f := &File{byAddr: make(map[uint64]*Block)}

	switch data[7] {
	case '_':
		f.ptrSize = 4
	case '-':
		f.ptrSize = 8
	default:
		return nil, formatErrf("bad pointer-size flag %q", data[7])
	}
	switch data[8] {
	case 'v':
		f.order = binary.LittleEndian
	case 'V':
		f.order = binary.BigEndian
	default:
		return nil, formatErrf("bad endianness flag %q", data[8])
	}
	f.Version = string(data[9:12])

	if err := f.readBlocks(data[headerSize:]); err != nil {
		return nil, err
	}
	return f, nil
}

// readBlocks walks the block stream until ENDB.
func (f *File) readBlocks(data []byte) error {
	blockHeader := 4 + 4 + f.ptrSize + 4 + 4
	off := 0
	for {
		if off+4 > len(data) {
			return formatErrf("truncated block stream")
		}
		code := trimCode(data[off : off+4])
		if code == codeEnd {
			break
		}
		if off+blockHeader > len(data) {
			return formatErrf("truncated header for block %q", code)
		}
		p := off + 4
		size := int(f.order.Uint32(data[p : p+4]))
		p += 4
		addr := f.readPtr(data[p:])
		p += f.ptrSize
		sdna := int(f.order.Uint32(data[p : p+4]))
		p += 4
		count := int(f.order.Uint32(data[p : p+4]))
		p += 4

		if size < 0 || p+size > len(data) {
			return formatErrf("block %q overruns file", code)
		}

		b := &Block{
			Code:      code,
			Data:      data[p : p+size],
			OldAddr:   addr,
			SDNAIndex: sdna,
			Count:     count,
		}
		f.blocks = append(f.blocks, b)
		if addr != 0 {
			f.byAddr[addr] = b
		}
		if code == codeDNA {
			dna, err := parseDNA(b.Data, f.order, f.ptrSize)
			if err != nil {
				return err
			}
			f.dna = dna
		}
		off = p + size
	}
	if f.dna == nil {
		return formatErrf("missing DNA1 block")
	}
	return nil
}

func (f *File) readPtr(data []byte) uint64 {
	if f.ptrSize == 4 {
		return uint64(f.order.Uint32(data))
	}
	return f.order.Uint64(data)
}

// BlocksWithCode returns all blocks with the given code in file order.
func (f *File) BlocksWithCode(code string) []*Block {
	var out []*Block
	for _, b := range f.blocks {
		if b.Code == code {
			out = append(out, b)
		}
	}
	return out
}

func (f *File) blockByAddr(addr uint64) *Block {
	if addr == 0 {
		return nil
	}
	return f.byAddr[addr]
}

// trimCode drops NUL padding from a 4-byte block code.
func trimCode(raw []byte) string {
	end := len(raw)
	for end > 0 && raw[end-1] == 0 {
		end--
	}
	return string(raw[:end])
}
