package main

import (
	"fmt"
	"io"

	"github.com/oy3o/cnwire/hash"
	"github.com/oy3o/cnwire/storage"
)

func dumpSection(w io.Writer, s *storage.Section, indent string) {
	s.Range(func(name string, e storage.Entry) bool {
		dumpEntry(w, name, e, indent)
		return true
	})
}

func dumpEntry(w io.Writer, name string, e storage.Entry, indent string) {
	switch v := e.(type) {
	case *storage.Section:
		fmt.Fprintf(w, "%s%s: section\n", indent, name)
		dumpSection(w, v, indent+"  ")
	case storage.Array:
		fmt.Fprintf(w, "%s%s: array<%s>[%d]\n", indent, name, v.Elem, len(v.Entries))
		for i, el := range v.Entries {
			dumpEntry(w, fmt.Sprintf("[%d]", i), el, indent+"  ")
		}
	case storage.Buf:
		var h hash.Hash256
		if h.UnmarshalEntry(v) == nil {
			fmt.Fprintf(w, "%s%s: hash = %s\n", indent, name, h)
			return
		}
		fmt.Fprintf(w, "%s%s: buf = %x\n", indent, name, []byte(v))
	default:
		fmt.Fprintf(w, "%s%s: %s = %v\n", indent, name, e.Kind(), e)
	}
}
