// Package loader resolves internal class names to decoded classfile.Class
// values against a JAR's contents, caching each decode and remembering
// lookups that found nothing so repeated misses don't re-scan the archive.
package loader

import (
	"archive/zip"
	"io"

	"github.com/swenson/guicelint/classfile"
	"github.com/swenson/guicelint/trace"
)

// Context is a single archive's class loader, a value scoped to one
// analysis run rather than a package-level global — this analyzer has no
// concept of multiple loader namespaces or a bootstrap/app split, so one
// flat cache per archive is sufficient; see DESIGN.md, Open Question 2.
type Context struct {
	zr *zip.Reader

	cache   map[string]*classfile.Class
	missing map[string]bool // internal names confirmed absent from the archive
}

// New wraps zr for class lookups.
func New(zr *zip.Reader) *Context {
	return &Context{
		zr:      zr,
		cache:   make(map[string]*classfile.Class),
		missing: make(map[string]bool),
	}
}

// Load decodes and returns the class with the given internal name (e.g.
// "com/example/FooModule"), or ok=false if the archive has no
// corresponding .class entry or it failed to decode. Lookups are memoized
// in both directions: found classes across calls, and entries confirmed
// absent, so resolver loops that repeatedly probe supertypes do not re-walk
// the zip's file list.
func (c *Context) Load(internalName string) (*classfile.Class, bool) {
	if cls, ok := c.cache[internalName]; ok {
		return cls, true
	}
	if c.missing[internalName] {
		return nil, false
	}

	entryName := internalName + ".class"
	for _, f := range c.zr.File {
		if f.Name != entryName {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			trace.Warning("loader: opening " + entryName + ": " + err.Error())
			c.missing[internalName] = true
			return nil, false
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			trace.Warning("loader: reading " + entryName + ": " + err.Error())
			c.missing[internalName] = true
			return nil, false
		}
		cls, err := classfile.Parse(data)
		if err != nil {
			trace.Warning("loader: decoding " + entryName + ": " + err.Error())
			c.missing[internalName] = true
			return nil, false
		}
		c.cache[internalName] = cls
		return cls, true
	}

	c.missing[internalName] = true
	return nil, false
}
