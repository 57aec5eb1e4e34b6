// Package options merges layered plugin option dictionaries into a single
// effective view, then validates and converts the merged values.
//
// A documentation-toolchain plugin typically receives its options from
// several places at once: global defaults, the project config file, a
// per-tag override, command-line switches. Each of those is a Layer — a
// named key-value mapping. Layered combines them according to an explicit
// priority order and exposes the merged result through a dictionary-like
// read interface with typed getters.
//
// Quick start:
//
//	combined, err := options.NewLayered(
//	    []options.Layer{
//	        {Name: "file", Values: map[string]any{"caption": "Diagram", "as_image": "yes"}},
//	        {Name: "tag", Values: map[string]any{"caption": "Figure 1"}},
//	    },
//	    options.WithDefaults(map[string]any{"as_image": false}),
//	    options.WithConvertors(map[string]options.Convertor{"as_image": options.ToBool}),
//	    options.WithPriority("tag", "file"),
//	)
//	if err != nil {
//	    return err
//	}
//	caption, _ := combined.String("caption") // "Figure 1"
//
// Merge rules, for any key defined in more than one layer:
//
//  1. Defaults lose to every layer.
//  2. Layers listed in the priority order win over unlisted layers, and
//     among themselves the first-listed name wins.
//  3. Unlisted layers are applied in reverse registration order, so the
//     earlier-registered layer wins ties. This tie-break is deliberate
//     and relied upon by callers that register their most specific
//     source first.
//
// The effective mapping is recomputed from scratch whenever a layer is
// added or the priority changes; it is never patched incrementally.
// Validators run against the merged result, then convertors rewrite
// values in place. Set bypasses the layers and re-runs validation only —
// it does not re-merge and does not re-convert.
//
// Instances are not safe for unsynchronized concurrent mutation. Callers
// that share an instance across goroutines must serialize access
// themselves.
package options
