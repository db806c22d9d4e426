package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/benedikt-wueller/sixpack"
	"github.com/benedikt-wueller/sixpack/xlog"
)

// signalHandler establishes the signal handler for interrupts and
// handles it in its own go routine. The returned quit channel must be
// closed to terminate the signal handler go routine.
func signalHandler(w *writer) chan<- struct{} {
	quit := make(chan struct{})
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt)
	go func() {
		select {
		case <-quit:
			signal.Stop(sigch)
			return
		case <-sigch:
			w.removeTmpFile()
			os.Exit(7)
		}
	}()
	return quit
}

// targetName returns the name of the decompressed file.
func targetName(path string) (target string, err error) {
	if path == "-" {
		panic("path name - not supported")
	}
	if len(path) == 0 {
		return "", errors.New("empty file name not supported")
	}
	if !strings.HasSuffix(path, sixExt) {
		return "", &userPathError{Path: path,
			Err: errors.New("unknown suffix -- ignored")}
	}
	target = path[:len(path)-len(sixExt)]
	if len(target) == 0 || strings.HasSuffix(target, "/") {
		return "", fmt.Errorf("file name %s has no base part", path)
	}
	return target, nil
}

// tmpName converts the path string into a temporary name.
func tmpName(path string) string {
	return path + ".decompress"
}

// writer writes the decompressed data into a temporary file that is
// renamed to the target on success.
type writer struct {
	f       *os.File
	name    string
	success bool
}

// newWriter creates a new file writer.
func newWriter(path string, perm os.FileMode, opts *options,
) (w *writer, err error) {
	w = &writer{name: path}
	if opts.stdout || path == "-" {
		w.f = os.Stdout
		w.name = "-"
		return w, nil
	}
	name, err := targetName(path)
	if err != nil {
		return nil, err
	}
	if _, err = os.Stat(name); !os.IsNotExist(err) {
		if !opts.force {
			return nil, &userPathError{
				Path: name,
				Err:  errors.New("file exists")}
		}
		if err = os.Remove(name); err != nil {
			return nil, err
		}
	}
	tmp := tmpName(name)
	if w.f, err = os.OpenFile(tmp,
		os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm); err != nil {
		return nil, err
	}
	w.name = name
	return w, nil
}

func (w *writer) Write(p []byte) (n int, err error) {
	return w.f.Write(p)
}

var errInval = errors.New("invalid value")

// Close closes the writer. A successful writer renames the temporary
// file, otherwise the temporary file is removed.
func (w *writer) Close() error {
	var err error

	if w.f == nil {
		return errInval
	}
	defer func() { w.f = nil }()

	if w.f == os.Stdout {
		return nil
	}
	if !w.success {
		if err = w.f.Close(); err != nil {
			return err
		}
		return os.Remove(w.f.Name())
	}
	if err = w.f.Close(); err != nil {
		return err
	}
	return os.Rename(w.f.Name(), w.name)
}

// removeTmpFile removes the temporary file for the writer. It is used
// by the signal handler goroutine.
func (w *writer) removeTmpFile() {
	if f := w.f; f != nil && f != os.Stdout {
		os.Remove(f.Name())
	}
}

// SetSuccess sets the success variable to true.
func (w *writer) SetSuccess() { w.success = true }

// reader is used as a file reader.
type reader struct {
	f *os.File
	io.Reader
	success bool
	keep    bool
}

// errNoRegular indicates that a file is not regular.
var errNoRegular = errors.New("no regular file")

// specialBits contain the special bits, which are not supported.
const specialBits = os.ModeSetuid | os.ModeSetgid | os.ModeSticky

// openFile opens the given path with the given options.
func openFile(path string, opts *options) (f *os.File, err error) {
	if path == "-" {
		return os.Stdin, nil
	}
	fi, err := os.Lstat(path)
	if err != nil {
		return nil, err
	}
	fm := fi.Mode()
	if !fm.IsRegular() {
		if !opts.force || fm&os.ModeSymlink == 0 {
			return nil, &userPathError{Path: path,
				Err: errNoRegular}
		}
	}
	if f, err = os.Open(path); err != nil {
		return nil, err
	}
	if fi, err = f.Stat(); err != nil {
		f.Close()
		return nil, err
	}
	fm = fi.Mode()
	if !fm.IsRegular() {
		f.Close()
		return nil, &userPathError{Path: path, Err: errNoRegular}
	}
	if fm&specialBits != 0 && !opts.force {
		f.Close()
		return nil, &userPathError{Path: path,
			Err: errors.New("setuid, setgid and/or sticky bit set")}
	}
	return f, nil
}

// newReader creates a new reader for files.
func newReader(path string, opts *options) (r *reader, err error) {
	f, err := openFile(path, opts)
	if err != nil {
		return nil, err
	}
	r = &reader{
		f:      f,
		Reader: f,
		keep:   opts.keep || opts.stdout || opts.test,
	}
	return r, nil
}

// Close closes the reader. The input file is removed if the reader has
// been successful and the file is not kept.
func (r *reader) Close() error {
	if r.f == nil {
		return errInval
	}
	defer func() { r.f = nil }()
	if r.f == os.Stdin {
		return nil
	}
	if err := r.f.Close(); err != nil {
		return err
	}
	if r.keep || !r.success {
		return nil
	}
	return os.Remove(r.f.Name())
}

func (r *reader) SetSuccess() { r.success = true }

func (r *reader) Perm() os.FileMode {
	const defaultPerm os.FileMode = 0666

	fi, err := r.f.Stat()
	if err != nil {
		return defaultPerm
	}

	return fi.Mode() & defaultPerm
}

// userPathError represents a path error presentable to a user. In
// difference to os.PathError it removes the information of the
// operation returning the error.
type userPathError struct {
	Path string
	Err  error
}

// Error provides the error string for the path error.
func (e *userPathError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *userPathError) Unwrap() error { return e.Err }

// userError converts a path error into an error message that doesn't
// contain the operation that failed.
func userError(err error) error {
	var pe *os.PathError
	if !errors.As(err, &pe) {
		return err
	}
	return &userPathError{Path: pe.Path, Err: pe.Err}
}

func printErr(err error) {
	if err != nil {
		xlog.Warn(userError(err))
	}
}

// processFile decompresses the file with the given path applying the
// provided options.
func processFile(path string, opts *options, c *sixpack.Cache) (err error) {
	if path != "-" && !opts.stdout && !opts.test {
		// check the name before anything is read
		if _, err = targetName(path); err != nil {
			printErr(err)
			return err
		}
	}
	r, err := newReader(path, opts)
	if err != nil {
		printErr(err)
		return err
	}
	defer r.Close()
	p, err := io.ReadAll(r)
	if err != nil {
		printErr(err)
		return err
	}
	out, err := c.Decompress(p)
	if err != nil {
		err = &userPathError{Path: path, Err: err}
		printErr(err)
		return err
	}
	digest := xxhash.Sum64(out)
	if opts.test {
		if opts.verbose {
			log.Printf("%s: ok, %d -> %d bytes, xxhash64 %016x",
				path, len(p), len(out), digest)
		}
		return nil
	}

	w, err := newWriter(path, r.Perm(), opts)
	if err != nil {
		printErr(err)
		return err
	}
	defer w.Close()
	quitSignalHandler := signalHandler(w)
	if _, err = w.Write(out); err != nil {
		close(quitSignalHandler)
		printErr(err)
		return err
	}
	close(quitSignalHandler)
	w.SetSuccess()
	if err = w.Close(); err != nil {
		printErr(err)
		return err
	}
	r.SetSuccess()
	if err = r.Close(); err != nil {
		printErr(err)
		return err
	}
	if opts.verbose {
		log.Printf("%s: %d -> %d bytes, xxhash64 %016x",
			path, len(p), len(out), digest)
	}
	return nil
}
