// Package stl provides a streaming binary STL file writer used to export
// sprite meshes as thin slabs for inspection in any 3D viewer.
package stl

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sync"
)

const (
	headerSize = 80
	bufSize    = 4096
)

// Client is a streaming binary STL file writer client.
type Client struct {
	wg sync.WaitGroup // ensures file is closed
	ch chan Tri

	mu    sync.RWMutex
	err   error
	count uint32
}

// Tri represents an STL triangle.
type Tri struct {
	// Normal plus three vertex triplets: [3]float{x,y,z}
	N, V1, V2, V3 [3]float32
	_             uint16 // unused attribute byte count
}

// WriteSeekCloser is the destination of a Client.
type WriteSeekCloser interface {
	io.Writer
	io.Seeker
	io.Closer
}

// New creates filename and returns a streaming writer for it. name is
// stored in the 80-byte header.
func New(filename, name string) (*Client, error) {
	out, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	c, err := NewClient(out, name)
	if err != nil {
		out.Close()
		return nil, err
	}
	return c, nil
}

// NewClient writes the header to out and starts streaming triangles to it.
// out is closed by Close.
func NewClient(out WriteSeekCloser, name string) (*Client, error) {
	header := struct {
		Name  [headerSize]uint8
		Count uint32 // overwritten on Close
	}{}
	copy(header.Name[:], name)
	if err := binary.Write(out, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("error writing header: %w", err)
	}

	c := &Client{ch: make(chan Tri, bufSize)}
	c.start(out)
	return c, nil
}

func (c *Client) start(out WriteSeekCloser) {
	c.wg.Add(1)
	go func() {
		count, err := writer(out, c.ch)
		c.mu.Lock()
		c.err, c.count = err, count
		c.mu.Unlock()
		c.wg.Done()
	}()
}

// Write queues a triangle. It returns the first error seen by the
// background writer, if any.
func (c *Client) Write(t *Tri) error {
	c.ch <- *t
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// Close finalizes the triangle count and closes the output.
func (c *Client) Close() error {
	close(c.ch)
	c.wg.Wait()
	return c.err
}

// Count returns the number of triangles written. Valid after Close.
func (c *Client) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return int(c.count)
}

// writer drains ch into out. After a write error it keeps draining so
// callers never block, then closes out.
func writer(out WriteSeekCloser, ch <-chan Tri) (uint32, error) {
	var count uint32
	var werr error
	for t := range ch {
		if werr != nil {
			continue
		}
		if err := binary.Write(out, binary.LittleEndian, &t); err != nil {
			werr = fmt.Errorf("write triangle %#v: %w", t, err)
			continue
		}
		count++
	}

	if werr == nil {
		if _, err := out.Seek(headerSize, io.SeekStart); err != nil {
			werr = fmt.Errorf("seek: %w", err)
		} else if err := binary.Write(out, binary.LittleEndian, &count); err != nil {
			werr = fmt.Errorf("write count %v: %w", count, err)
		}
	}

	if err := out.Close(); err != nil && werr == nil {
		werr = fmt.Errorf("close: %w", err)
	}
	return count, werr
}
