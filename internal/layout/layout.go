package layout

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/gagliardetto/solana-go"
)

var (
	// ErrTooShort is returned when a buffer is shorter than the layout's minimum length.
	ErrTooShort = errors.New("buffer too short")
	// ErrMismatch is returned when a field does not hold the expected bytes.
	ErrMismatch = errors.New("field mismatch")
	// ErrUnknownField is returned when a field name is not part of the layout.
	ErrUnknownField = errors.New("unknown field")
)

// Kind describes how a field is decoded.
type Kind uint8

const (
	KindBytes Kind = iota + 1
	KindUint8
	KindBool
	KindUint32
	KindUint64
	KindInt64
	KindPublicKey
	// KindSkip reserves bytes that are part of the record but never decoded.
	KindSkip
)

func (k Kind) String() string {
	switch k {
	case KindBytes:
		return "bytes"
	case KindUint8:
		return "u8"
	case KindBool:
		return "bool"
	case KindUint32:
		return "u32"
	case KindUint64:
		return "u64"
	case KindInt64:
		return "i64"
	case KindPublicKey:
		return "pubkey"
	case KindSkip:
		return "skip"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// fixedWidth returns the width implied by the kind, or 0 when any width is allowed.
func (k Kind) fixedWidth() int {
	switch k {
	case KindUint8, KindBool:
		return 1
	case KindUint32:
		return 4
	case KindUint64, KindInt64:
		return 8
	case KindPublicKey:
		return AddressLength
	default:
		return 0
	}
}

// Field is one entry of a layout table.
type Field struct {
	Name   string
	Offset int
	Width  int
	Kind   Kind
}

func (f Field) end() int {
	return f.Offset + f.Width
}

// Layout is a validated, immutable field table for one account schema version.
type Layout struct {
	name      string
	version   int
	fields    []Field
	index     map[string]Field
	minLength int
}

// New validates the field table and returns a Layout.
func New(name string, version int, fields ...Field) (*Layout, error) {
	if name == "" {
		return nil, fmt.Errorf("layout name is required")
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("layout %s: no fields", name)
	}

	sorted := make([]Field, len(fields))
	copy(sorted, fields)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Offset < sorted[j].Offset })

	index := make(map[string]Field, len(sorted))
	minLength := 0
	for i, f := range sorted {
		if f.Name == "" {
			return nil, fmt.Errorf("layout %s: field at offset %d has no name", name, f.Offset)
		}
		if _, dup := index[f.Name]; dup {
			return nil, fmt.Errorf("layout %s: duplicate field %q", name, f.Name)
		}
		if f.Offset < 0 || f.Width <= 0 {
			return nil, fmt.Errorf("layout %s: field %q has invalid offset %d or width %d", name, f.Name, f.Offset, f.Width)
		}
		if f.Kind < KindBytes || f.Kind > KindSkip {
			return nil, fmt.Errorf("layout %s: field %q has unsupported kind %s", name, f.Name, f.Kind)
		}
		if w := f.Kind.fixedWidth(); w != 0 && w != f.Width {
			return nil, fmt.Errorf("layout %s: field %q kind %s needs width %d, got %d", name, f.Name, f.Kind, w, f.Width)
		}
		if i > 0 && sorted[i-1].end() > f.Offset {
			return nil, fmt.Errorf("layout %s: field %q overlaps %q", name, f.Name, sorted[i-1].Name)
		}
		index[f.Name] = f
		if f.end() > minLength {
			minLength = f.end()
		}
	}

	return &Layout{
		name:      name,
		version:   version,
		fields:    sorted,
		index:     index,
		minLength: minLength,
	}, nil
}

// MustNew is New for package-level tables; it panics on an invalid table.
func MustNew(name string, version int, fields ...Field) *Layout {
	l, err := New(name, version, fields...)
	if err != nil {
		panic(err)
	}
	return l
}

func (l *Layout) Name() string { return l.name }

func (l *Layout) Version() int { return l.version }

// MinLength is the smallest buffer that holds every field.
func (l *Layout) MinLength() int { return l.minLength }

// Field looks up a field by name.
func (l *Layout) Field(name string) (Field, bool) {
	f, ok := l.index[name]
	return f, ok
}

// Fields returns the table ordered by offset.
func (l *Layout) Fields() []Field {
	out := make([]Field, len(l.fields))
	copy(out, l.fields)
	return out
}

// Offset returns the offset of a named field and panics if it does not exist.
func (l *Layout) Offset(name string) int {
	f, ok := l.index[name]
	if !ok {
		panic(fmt.Sprintf("layout %s: %v %q", l.name, ErrUnknownField, name))
	}
	return f.Offset
}

// NewReader returns a Reader over buf. A buffer shorter than MinLength
// puts the reader in the error state immediately.
func (l *Layout) NewReader(buf []byte) *Reader {
	r := &Reader{layout: l, buf: buf}
	if len(buf) < l.minLength {
		r.err = fmt.Errorf("%s v%d: %w: length %d, need %d", l.name, l.version, ErrTooShort, len(buf), l.minLength)
	}
	return r
}

// Reader decodes named fields from one buffer. The first error sticks:
// later reads return zero values and Err reports it.
type Reader struct {
	layout *Layout
	buf    []byte
	err    error
}

// Err returns the first error encountered.
func (r *Reader) Err() error { return r.err }

func (r *Reader) field(name string, kind Kind) (Field, bool) {
	if r.err != nil {
		return Field{}, false
	}
	f, ok := r.layout.index[name]
	if !ok {
		r.err = fmt.Errorf("%s v%d: %w %q", r.layout.name, r.layout.version, ErrUnknownField, name)
		return Field{}, false
	}
	if f.Kind != kind {
		r.err = fmt.Errorf("%s v%d: field %q is %s, read as %s", r.layout.name, r.layout.version, name, f.Kind, kind)
		return Field{}, false
	}
	return f, true
}

func (r *Reader) fail(name string, err error) {
	r.err = fmt.Errorf("%s v%d: field %q: %w", r.layout.name, r.layout.version, name, err)
}

func (r *Reader) Uint8(name string) uint8 {
	f, ok := r.field(name, KindUint8)
	if !ok {
		return 0
	}
	v, err := ReadUint8(r.buf, f.Offset)
	if err != nil {
		r.fail(name, err)
	}
	return v
}

func (r *Reader) Bool(name string) bool {
	f, ok := r.field(name, KindBool)
	if !ok {
		return false
	}
	v, err := ReadBool(r.buf, f.Offset)
	if err != nil {
		r.fail(name, err)
	}
	return v
}

func (r *Reader) Uint32(name string) uint32 {
	f, ok := r.field(name, KindUint32)
	if !ok {
		return 0
	}
	v, err := ReadUint32LE(r.buf, f.Offset)
	if err != nil {
		r.fail(name, err)
	}
	return v
}

func (r *Reader) Uint64(name string) uint64 {
	f, ok := r.field(name, KindUint64)
	if !ok {
		return 0
	}
	v, err := ReadUint64LE(r.buf, f.Offset)
	if err != nil {
		r.fail(name, err)
	}
	return v
}

// Int64 reads a two's-complement little-endian 64-bit integer.
func (r *Reader) Int64(name string) int64 {
	f, ok := r.field(name, KindInt64)
	if !ok {
		return 0
	}
	v, err := ReadUint64LE(r.buf, f.Offset)
	if err != nil {
		r.fail(name, err)
	}
	return int64(v)
}

func (r *Reader) PublicKey(name string) solana.PublicKey {
	f, ok := r.field(name, KindPublicKey)
	if !ok {
		return solana.PublicKey{}
	}
	v, err := ReadPublicKey(r.buf, f.Offset)
	if err != nil {
		r.fail(name, err)
	}
	return v
}

func (r *Reader) Bytes(name string) []byte {
	f, ok := r.field(name, KindBytes)
	if !ok {
		return nil
	}
	v, err := ReadBytes(r.buf, f.Offset, f.Width)
	if err != nil {
		r.fail(name, err)
	}
	return v
}

// Expect checks that a bytes or pubkey field equals want.
func (r *Reader) Expect(name string, want []byte) {
	if r.err != nil {
		return
	}
	f, ok := r.layout.index[name]
	if !ok {
		r.err = fmt.Errorf("%s v%d: %w %q", r.layout.name, r.layout.version, ErrUnknownField, name)
		return
	}
	got, err := ReadBytes(r.buf, f.Offset, f.Width)
	if err != nil {
		r.fail(name, err)
		return
	}
	if !bytes.Equal(got, want) {
		r.fail(name, fmt.Errorf("%w: got %s, want %s", ErrMismatch, EncodeBase58(got), EncodeBase58(want)))
	}
}
