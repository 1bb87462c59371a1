package procpool

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/calvinalkan/jsonkit/internal/fs"
	"github.com/calvinalkan/jsonkit/pkg/jsondoc"
)

const filePerm = 0o644

// Serve runs the worker side of the pool protocol: read one task per line
// from r, perform it against fsys, write one reply per line to w, in order.
// Returns nil when r reaches EOF (the parent closed the pipe).
//
// A task that fails (missing file, malformed content, unwritable target)
// produces an ok=false reply and the loop continues; only a broken pipe or
// a malformed task line ends the worker.
func Serve(r io.Reader, w io.Writer, fsys fs.FS) error {
	if fsys == nil {
		fsys = fs.NewReal()
	}

	dec := json.NewDecoder(r)
	enc := json.NewEncoder(w)

	for {
		var t task

		err := dec.Decode(&t)
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("read task: %w", err)
		}

		if err := enc.Encode(perform(t, fsys)); err != nil {
			return fmt.Errorf("write reply: %w", err)
		}
	}
}

func perform(t task, fsys fs.FS) reply {
	switch t.Op {
	case opLoad:
		return performLoad(t, fsys)
	case opSave:
		return performSave(t, fsys)
	default:
		return reply{Path: t.Path}
	}
}

func performLoad(t task, fsys fs.FS) reply {
	data, err := fsys.ReadFile(t.Path)
	if err != nil {
		return reply{Path: t.Path}
	}

	if !jsondoc.ValidBytes(data) {
		return reply{Path: t.Path}
	}

	// Already validated JSON text; forward it verbatim, the parent
	// decodes once.
	return reply{Path: t.Path, OK: true, Doc: json.RawMessage(data)}
}

func performSave(t task, fsys fs.FS) reply {
	var doc any
	if err := json.Unmarshal(t.Doc, &doc); err != nil {
		return reply{Path: t.Path}
	}

	opts := jsondoc.Options{Indent: t.Indent, EscapeHTML: t.EscapeHTML}

	data, err := jsondoc.Encode(doc, opts)
	if err != nil {
		return reply{Path: t.Path}
	}

	if err := fsys.WriteFileAtomic(t.Path, data, os.FileMode(filePerm)); err != nil {
		return reply{Path: t.Path}
	}

	return reply{Path: t.Path, OK: true}
}
