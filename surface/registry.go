// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/gogpu/tinydisplay/pixel"
)

// Options describes the display a factory should open.
type Options struct {
	Width, Height int

	// Transport carries window commands and pixel data for sinks without
	// a frame buffer. Frame buffer sinks ignore it.
	Transport io.Writer
}

// SinkFactory opens a display.
type SinkFactory func(opts Options) (Sink, error)

// RegistryEntry is a named display driver. Panels probe their bus in
// Available; host-only sinks are always available.
type RegistryEntry struct {
	Name      string
	Priority  int // panel drivers 100, frame buffers 5-10, raw transports 1
	Factory   SinkFactory
	Available func() bool
}

// Registry maps driver names to sink factories. A driver package adds
// itself from init:
//
//	surface.Register("ssd1306", 100, openSSD1306, i2cPresent)
//
// and a command picks it by name, or takes the best one present:
//
//	s, err := surface.NewSink(surface.Options{Width: 128, Height: 64})
//
// Every sink a registry hands out has passed Check.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

var drivers = NewRegistry()

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*RegistryEntry)}
}

// Register adds a driver to the process registry. A nil available means
// always present. The name replaces any earlier entry.
func Register(name string, priority int, factory SinkFactory, available func() bool) {
	drivers.Register(name, priority, factory, available)
}

// NewSink opens the best driver present in the process registry.
func NewSink(opts Options) (Sink, error) {
	return drivers.NewSink(opts)
}

// NewSinkByName opens the named driver from the process registry.
func NewSinkByName(name string, opts Options) (Sink, error) {
	return drivers.NewSinkByName(name, opts)
}

// Register adds or replaces a driver.
func (r *Registry) Register(name string, priority int, factory SinkFactory, available func() bool) {
	if available == nil {
		available = func() bool { return true }
	}
	r.mu.Lock()
	r.entries[name] = &RegistryEntry{Name: name, Priority: priority, Factory: factory, Available: available}
	r.mu.Unlock()
}

// Unregister removes a driver.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	delete(r.entries, name)
	r.mu.Unlock()
}

// Get returns a copy of the named entry.
func (r *Registry) Get(name string) (*RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	c := *e
	return &c, true
}

// List returns every driver name, preferred first.
func (r *Registry) List() []string { return r.ranked(false) }

// Available returns the names of drivers whose hardware is present,
// preferred first.
func (r *Registry) Available() []string { return r.ranked(true) }

// ranked orders drivers by descending priority, then by name.
func (r *Registry) ranked(present bool) []string {
	r.mu.RLock()
	entries := make([]*RegistryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	slices.SortFunc(entries, func(a, b *RegistryEntry) int {
		if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	var names []string
	for _, e := range entries {
		if !present || e.Available() {
			names = append(names, e.Name)
		}
	}
	return names
}

// NewSink opens drivers in preference order and returns the first that
// succeeds. With none present it returns ErrNoSinkAvailable; when all
// fail, the last error.
func (r *Registry) NewSink(opts Options) (Sink, error) {
	err := ErrNoSinkAvailable
	for _, name := range r.Available() {
		var s Sink
		if s, err = r.NewSinkByName(name, opts); err == nil {
			return s, nil
		}
	}
	return nil, err
}

// NewSinkByName opens one driver and checks the sink it returns.
func (r *Registry) NewSinkByName(name string, opts Options) (Sink, error) {
	e, ok := r.Get(name)
	if !ok {
		return nil, &SinkNotFoundError{Name: name}
	}
	if !e.Available() {
		return nil, &SinkUnavailableError{Name: name}
	}
	s, err := e.Factory(opts)
	if err != nil {
		return nil, err
	}
	if err := Check(s); err != nil {
		return nil, fmt.Errorf("surface: %s: %w", name, err)
	}
	return s, nil
}

// SinkNotFoundError reports an unknown driver name.
type SinkNotFoundError struct {
	Name string
}

func (e *SinkNotFoundError) Error() string {
	return "surface: sink not found: " + e.Name
}

// SinkUnavailableError reports a driver whose hardware is absent.
type SinkUnavailableError struct {
	Name string
}

func (e *SinkUnavailableError) Error() string {
	return "surface: sink unavailable: " + e.Name
}

var errNoTransport = errors.New("surface: stream sink requires a transport")

func init() {
	Register("framebuffer", 10, func(opts Options) (Sink, error) {
		return NewFrameBuffer(opts.Width, opts.Height, pixel.FormatRGB565), nil
	}, nil)
	Register("framebuffer-mono", 5, func(opts Options) (Sink, error) {
		return NewFrameBuffer(opts.Width, opts.Height, pixel.FormatMono), nil
	}, nil)
	Register("stream", 1, func(opts Options) (Sink, error) {
		if opts.Transport == nil {
			return nil, errNoTransport
		}
		return NewStreamDisplay(opts.Transport, opts.Width, opts.Height), nil
	}, nil)
}
