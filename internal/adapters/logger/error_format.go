package logger

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// messager matches the Message method of zerr.Error, which reports the
// message of one link without the rest of the chain.
type messager interface {
	Message() string
}

type metadataCarrier interface {
	Metadata() map[string]any
}

// errorEntry is one link of an error chain.
type errorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries flattens err into one entry per link. Joined errors
// contribute their links in order. Links without a message (metadata
// wrappers) lend their metadata to the next link.
func collectErrorEntries(err error) []errorEntry {
	var entries []errorEntry
	var pending map[string]any

	var walk func(e error)
	walk = func(e error) {
		for e != nil {
			if joined, ok := e.(interface{ Unwrap() []error }); ok {
				for _, inner := range joined.Unwrap() {
					walk(inner)
				}
				return
			}

			m, ok := e.(messager)
			if !ok {
				entries = append(entries, errorEntry{Message: e.Error(), Metadata: pending})
				pending = nil
				return
			}

			var meta map[string]any
			if mc, ok := e.(metadataCarrier); ok {
				meta = mc.Metadata()
			}

			if m.Message() == "" {
				if len(meta) > 0 {
					if pending == nil {
						pending = make(map[string]any)
					}
					maps.Copy(pending, meta)
				}
			} else {
				if pending != nil {
					if meta == nil {
						meta = make(map[string]any)
					}
					maps.Copy(meta, pending)
					pending = nil
				}
				entries = append(entries, errorEntry{Message: m.Message(), Metadata: meta})
			}

			e = errors.Unwrap(e)
		}
	}

	walk(err)
	return entries
}

// formatErrorEntries renders entries as an "Error:" headline followed by a
// "Caused by:" list. Metadata is printed under its entry, sorted by key.
func formatErrorEntries(entries []errorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		var head, indent string
		if i == 0 {
			head, indent = "Error: ", "       "
		} else {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			head, indent = "    → ", "      "
		}

		lines = append(lines, head+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}
		for _, key := range slices.Sorted(maps.Keys(entry.Metadata)) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, key, entry.Metadata[key]))
		}
	}

	return strings.Join(lines, "\n")
}
