// Package procpool runs batch JSON I/O on a bounded pool of worker
// processes.
//
// Processes buy crash isolation, not parallelism: goroutines already
// parallelize CPU-bound decode/encode work, so the pool exists for callers
// who want a misbehaving document (or a codec bug) contained in a child
// process. Each unit of work crosses the process boundary as a single line
// of JSON, which enforces the plain-serializable-payload constraint by
// construction: no shared memory, threads, or open handles can cross.
//
// The reference behavior creates and tears down a pool per call ([Load],
// [Save]); callers who want to amortize process startup manage a [Pool]
// themselves.
//
// Per-item failure policy matches package batch: swallowed at the item
// boundary, surfaced only as a failed item or an omitted success path.
// Pool setup failure (a worker that cannot be spawned) propagates.
package procpool

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/calvinalkan/jsonkit/pkg/batch"
	"github.com/calvinalkan/jsonkit/pkg/jsondoc"
)

// DefaultWorkers is the pool width when Options.Workers is unset.
const DefaultWorkers = 4

// Protocol ops.
const (
	opLoad = "load"
	opSave = "save"
)

var errWorkerDown = errors.New("worker unavailable")

// task is one unit of work sent to a worker, one JSON object per line.
type task struct {
	Op         string          `json:"op"`
	Path       string          `json:"path"`
	Doc        json.RawMessage `json:"doc,omitempty"`
	Indent     int             `json:"indent,omitempty"`
	EscapeHTML bool            `json:"escape_html,omitempty"`
}

// reply is the worker's answer, a stream of JSON objects in the same
// order as the tasks it received.
type reply struct {
	Path string          `json:"path"`
	OK   bool            `json:"ok"`
	Doc  json.RawMessage `json:"doc,omitempty"`
}

// Options configures a pool.
type Options struct {
	// Workers is the number of worker processes.
	Workers int

	// Command is the worker argv. Empty means re-exec the running
	// binary with a single "worker" argument, which the jk CLI routes
	// to [Serve].
	Command []string

	// Encode configures document serialization for saves.
	Encode jsondoc.Options

	// Logger, when set, receives a debug line for every swallowed
	// per-item failure and every worker death.
	Logger *log.Logger
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}

	return DefaultWorkers
}

func (o Options) command() ([]string, error) {
	if len(o.Command) > 0 {
		return o.Command, nil
	}

	self, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("resolve worker executable: %w", err)
	}

	return []string{self, "worker"}, nil
}

func (o Options) logFailure(op, path string, err error) {
	if o.Logger != nil {
		o.Logger.Debug("item failed", "op", op, "path", path, "err", err)
	}
}

// worker is one child process plus its pipes.
type worker struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
	out   *json.Decoder
	dead  bool
}

// Pool is a fixed set of worker processes. Not safe for concurrent batch
// calls; one batch at a time, like the strategy it mirrors.
type Pool struct {
	opts    Options
	workers []*worker
}

// Start spawns the worker processes. If any worker fails to start, the
// ones already running are torn down and the error propagates: pool setup
// failure is the one error a batch caller sees.
func Start(opts Options) (*Pool, error) {
	argv, err := opts.command()
	if err != nil {
		return nil, err
	}

	pool := &Pool{opts: opts}

	for i := range opts.workers() {
		w, spawnErr := spawn(argv)
		if spawnErr != nil {
			pool.Close()

			return nil, fmt.Errorf("spawn worker %d: %w", i, spawnErr)
		}

		pool.workers = append(pool.workers, w)
	}

	return pool, nil
}

func spawn(argv []string) (*worker, error) {
	cmd := exec.Command(argv[0], argv[1:]...) //nolint:gosec // worker argv is caller-controlled by design
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	return &worker{
		cmd:   cmd,
		stdin: stdin,
		out:   json.NewDecoder(bufio.NewReaderSize(stdout, 64<<10)),
	}, nil
}

// Close shuts the workers down by closing their stdin and waiting for
// exit. Safe to call more than once.
func (p *Pool) Close() {
	for _, w := range p.workers {
		if w.stdin != nil {
			_ = w.stdin.Close()
			w.stdin = nil
		}
	}

	for _, w := range p.workers {
		if w.cmd != nil {
			_ = w.cmd.Wait()
			w.cmd = nil
		}
	}
}

// roundTrip sends one task and reads one reply. A pipe failure in either
// direction marks the worker dead; every task it is handed afterwards
// fails immediately, keeping batch progress on the surviving workers.
func (w *worker) roundTrip(t task) (reply, error) {
	if w.dead {
		return reply{}, errWorkerDown
	}

	line, err := json.Marshal(t)
	if err != nil {
		return reply{}, err
	}

	line = append(line, '\n')

	if _, err := w.stdin.Write(line); err != nil {
		w.dead = true

		return reply{}, fmt.Errorf("%w: %w", errWorkerDown, err)
	}

	var rep reply
	if err := w.out.Decode(&rep); err != nil {
		w.dead = true

		return reply{}, fmt.Errorf("%w: %w", errWorkerDown, err)
	}

	return rep, nil
}

// Load reads and decodes every path across the pool and returns a map with
// exactly one item per input path.
func (p *Pool) Load(paths []string) map[string]batch.Item {
	tasks := make([]task, len(paths))
	for i, path := range paths {
		tasks[i] = task{Op: opLoad, Path: path}
	}

	results := make(map[string]batch.Item, len(paths))

	for rep := range p.dispatch(tasks) {
		if !rep.ok {
			results[rep.path] = batch.Item{Err: rep.err}

			continue
		}

		var doc any
		if err := json.Unmarshal(rep.doc, &doc); err != nil {
			p.opts.logFailure(opLoad, rep.path, err)
			results[rep.path] = batch.Item{Err: err}

			continue
		}

		results[rep.path] = batch.Item{Doc: doc}
	}

	return results
}

// Save encodes and writes every entry across the pool and returns the
// paths that were written, in completion order.
//
// An entry whose document cannot cross the process boundary (unencodable
// value) fails like any other item.
func (p *Pool) Save(entries []batch.Entry) []string {
	tasks := make([]task, 0, len(entries))

	var saved []string

	for _, entry := range entries {
		raw, err := json.Marshal(entry.Doc)
		if err != nil {
			p.opts.logFailure(opSave, entry.Path, err)

			continue
		}

		tasks = append(tasks, task{
			Op:         opSave,
			Path:       entry.Path,
			Doc:        raw,
			Indent:     p.opts.Encode.Indent,
			EscapeHTML: p.opts.Encode.EscapeHTML,
		})
	}

	for rep := range p.dispatch(tasks) {
		if rep.ok {
			saved = append(saved, rep.path)
		}
	}

	return saved
}

type outcome struct {
	path string
	ok   bool
	doc  json.RawMessage
	err  error
}

// dispatch fans tasks out over the workers (one goroutine per worker, each
// driving its process sequentially) and fans replies in on the returned
// channel, which closes when every task has an outcome.
//
// A worker that dies fails only its in-flight item and then stops pulling
// from the queue, so remaining queued items go to the surviving workers.
// Only when every worker is gone do the still-queued items fail, which
// keeps dispatch from hanging on a fully dead pool.
func (p *Pool) dispatch(tasks []task) <-chan outcome {
	jobs := make(chan task)
	outcomes := make(chan outcome)

	var wg sync.WaitGroup
	for _, w := range p.workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for t := range jobs {
				rep, err := w.roundTrip(t)
				if err != nil {
					p.opts.logFailure(t.Op, t.Path, err)
					outcomes <- outcome{path: t.Path, err: err}

					if errors.Is(err, errWorkerDown) {
						return
					}

					continue
				}

				var repErr error
				if !rep.OK {
					repErr = fmt.Errorf("%s %s failed in worker", t.Op, t.Path)
				}

				outcomes <- outcome{path: rep.Path, ok: rep.OK, doc: rep.Doc, err: repErr}
			}
		}()
	}

	allDead := make(chan struct{})

	go func() {
		wg.Wait()
		close(allDead)
	}()

	go func() {
		for _, t := range tasks {
			select {
			case jobs <- t:
			case <-allDead:
				p.opts.logFailure(t.Op, t.Path, errWorkerDown)
				outcomes <- outcome{path: t.Path, err: errWorkerDown}
			}
		}

		close(jobs)
		<-allDead
		close(outcomes)
	}()

	return outcomes
}

// Load creates a pool, loads every path, and tears the pool down.
// The only error is pool setup failure; per-item failures are in the map.
func Load(paths []string, opts Options) (map[string]batch.Item, error) {
	pool, err := Start(opts)
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	return pool.Load(paths), nil
}

// Save creates a pool, saves every entry, and tears the pool down.
// The only error is pool setup failure; failed entries are omitted from
// the success list.
func Save(entries []batch.Entry, opts Options) ([]string, error) {
	pool, err := Start(opts)
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	return pool.Save(entries), nil
}
