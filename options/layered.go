package options

import (
	"fmt"
	"strings"
)

// Layer is one named source of option key-value pairs. Registration
// order is significant: it breaks ties between layers not listed in the
// priority order.
type Layer struct {
	Name   string
	Values map[string]any
}

// Layered combines several named option layers into one effective
// mapping according to an explicit priority order. Apart from the layer
// handling it behaves like a normal Options.
type Layered struct {
	Options

	layers   []Layer
	priority []string
}

// NewLayered builds a Layered from the given layers, in registration
// order. Layer names must be unique. WithPriority sets the initial
// priority order; an unknown name there fails with ErrUnknownLayer.
//
// As with New, the returned Layered remains inspectable when err is a
// validation failure: it holds the merged, unconverted values.
func NewLayered(layers []Layer, opts ...Option) (*Layered, error) {
	s := newSettings(opts)

	l := &Layered{
		Options: Options{
			defaults:   deepCopyMap(s.defaults),
			validators: s.validators,
			convertors: s.convertors,
			required:   s.required,
		},
		layers: make([]Layer, len(layers)),
	}
	copy(l.layers, layers)

	seen := make(map[string]bool, len(layers))
	for _, layer := range layers {
		if seen[layer.Name] {
			return nil, fmt.Errorf("duplicate layer %q", layer.Name)
		}
		seen[layer.Name] = true
	}

	return l, l.SetPriority(s.priority...)
}

// Priority returns the current priority order, most significant first.
func (l *Layered) Priority() []string {
	out := make([]string, len(l.priority))
	copy(out, l.priority)
	return out
}

// LayerNames returns the registered layer names in registration order.
func (l *Layered) LayerNames() []string {
	names := make([]string, len(l.layers))
	for i, layer := range l.layers {
		names[i] = layer.Name
	}
	return names
}

// SetPriority replaces the priority order and recomputes the effective
// mapping, then re-validates and re-converts it.
//
// Every name must be a registered layer; otherwise SetPriority fails
// with ErrUnknownLayer and the previous effective mapping is left
// unchanged.
func (l *Layered) SetPriority(names ...string) error {
	for _, name := range names {
		if !l.hasLayer(name) {
			return fmt.Errorf("%w: priority must be one of: %s; got %q",
				ErrUnknownLayer, strings.Join(l.LayerNames(), ", "), name)
		}
	}

	l.priority = make([]string, len(names))
	copy(l.priority, names)

	return l.recompute()
}

// AddLayer registers a layer and recomputes the effective mapping. A
// layer with the same name is replaced in place, keeping its
// registration position.
func (l *Layered) AddLayer(name string, values map[string]any) error {
	for i := range l.layers {
		if l.layers[i].Name == name {
			l.layers[i].Values = values
			return l.recompute()
		}
	}
	l.layers = append(l.layers, Layer{Name: name, Values: values})
	return l.recompute()
}

// recompute rebuilds the effective mapping from scratch:
//
//  1. a deep copy of the defaults,
//  2. layers outside the priority order, in reverse registration order,
//  3. layers in the priority order, in reverse priority order, so the
//     first-listed name is applied last and wins.
//
// The result is then validated and converted. On a validation failure
// the effective mapping keeps the merged, unconverted values.
func (l *Layered) recompute() error {
	effective := deepCopyMap(l.defaults)

	for i := len(l.layers) - 1; i >= 0; i-- {
		layer := l.layers[i]
		if l.inPriority(layer.Name) {
			continue
		}
		for key, val := range layer.Values {
			effective[key] = val
		}
	}

	for i := len(l.priority) - 1; i >= 0; i-- {
		for key, val := range l.layer(l.priority[i]).Values {
			effective[key] = val
		}
	}

	l.effective = effective

	if err := l.Validate(); err != nil {
		return err
	}
	return l.convert()
}

func (l *Layered) hasLayer(name string) bool {
	for _, layer := range l.layers {
		if layer.Name == name {
			return true
		}
	}
	return false
}

func (l *Layered) layer(name string) Layer {
	for _, layer := range l.layers {
		if layer.Name == name {
			return layer
		}
	}
	return Layer{}
}

func (l *Layered) inPriority(name string) bool {
	for _, p := range l.priority {
		if p == name {
			return true
		}
	}
	return false
}
