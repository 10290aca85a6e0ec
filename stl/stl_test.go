package stl

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestWriter(t *testing.T) {
	tri := Tri{N: [3]float32{0, 0, 1}, V1: [3]float32{0, 0, 0}, V2: [3]float32{1, 0, 0}, V3: [3]float32{0, 1, 0}}

	tests := []struct {
		name string
		tris []Tri
	}{
		{
			name: "no triangles",
		},
		{
			name: "three triangles",
			tris: []Tri{tri, tri, tri},
		},
	}

	for i, tt := range tests {
		t.Run(fmt.Sprintf("test #%v: %v", i, tt.name), func(t *testing.T) {
			out := &fakeFile{}
			c, err := NewClient(out, "sprite")
			if err != nil {
				t.Fatalf("NewClient: %v", err)
			}

			for i, tri := range tt.tris {
				if err := c.Write(&tri); err != nil {
					t.Fatalf("c.Write: i=%v, %v", i, err)
				}
			}
			if err := c.Close(); err != nil {
				t.Fatalf("c.Close: %v", err)
			}

			if out.closes != 1 {
				t.Errorf("expected 1 close, got %v", out.closes)
			}
			if out.seeks != 1 {
				t.Errorf("expected 1 seek, got %v", out.seeks)
			}
			if out.writes != len(tt.tris)+2 { // +1 for the header, +1 for the final count
				t.Errorf("expected %v writes, got %v", len(tt.tris)+2, out.writes)
			}
			if c.Count() != len(tt.tris) {
				t.Errorf("Count = %v, want %v", c.Count(), len(tt.tris))
			}

			// 80-byte header, then the patched count.
			data := out.buf.Bytes()
			if want := headerSize + 4 + 50*len(tt.tris); len(data) != want {
				t.Fatalf("file size = %v, want %v", len(data), want)
			}
			if !bytes.HasPrefix(data, []byte("sprite")) {
				t.Errorf("header = %q", data[:16])
			}
			if got := binary.LittleEndian.Uint32(data[headerSize:]); int(got) != len(tt.tris) {
				t.Errorf("header count = %v, want %v", got, len(tt.tris))
			}
		})
	}
}

func TestWriterErrorDoesNotBlock(t *testing.T) {
	out := &fakeFile{failAfter: 1}
	c, err := NewClient(out, "")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	tri := Tri{}
	for i := 0; i < 2*bufSize; i++ {
		c.Write(&tri)
	}
	if err := c.Close(); err == nil {
		t.Errorf("expected a write error")
	}
	if out.closes != 1 {
		t.Errorf("expected 1 close, got %v", out.closes)
	}
}

// fakeFile records calls and keeps the bytes at the current offset.
type fakeFile struct {
	closes int
	seeks  int
	writes int

	failAfter int
	buf       bytes.Buffer
	off       int
}

func (f *fakeFile) Close() error {
	f.closes++
	return nil
}

func (f *fakeFile) Seek(offset int64, whence int) (int64, error) {
	f.seeks++
	if whence != io.SeekStart {
		return 0, errors.New("unsupported whence")
	}
	f.off = int(offset)
	return offset, nil
}

func (f *fakeFile) Write(p []byte) (n int, err error) {
	f.writes++
	if f.failAfter > 0 && f.writes > f.failAfter {
		return 0, errors.New("disk full")
	}
	b := f.buf.Bytes()
	if f.off < len(b) {
		n = copy(b[f.off:], p)
	}
	f.buf.Write(p[n:])
	f.off += len(p)
	return len(p), nil
}
