// Command sixpack decompresses files in the SixPack format.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/kr/pretty"
	"github.com/ogier/pflag"

	"github.com/benedikt-wueller/sixpack"
	"github.com/benedikt-wueller/sixpack/xlog"
)

const (
	version  = "0.1"
	sixExt   = ".6pk"
	usageStr = `Usage: sixpack [OPTION]... [FILE]...
Decompress FILEs in the SixPack format (by default, in place).

  -c, --stdout      write to standard output and don't delete input files
  -f, --force       force overwrite of output file
  -h, --help        give this help
  -k, --keep        keep (don't delete) input files
  -q, --quiet       suppress all warnings
  -t, --test        test compressed file integrity
  -v, --verbose     verbose mode
  -V, --version     display version string
      --debug       print decoder debug information
      --max-char n  highest symbol of the Huffman alphabet (default 628)
      --max-freq n  weight that triggers rescaling (default 2000)

With no file, or when FILE is -, read standard input. FILE arguments may
contain glob patterns; ** matches any number of directories.
`
)

func usage(w io.Writer) {
	fmt.Fprint(w, usageStr)
}

// options collects the command line options.
type options struct {
	stdout  bool
	force   bool
	keep    bool
	test    bool
	verbose bool
}

// expandArgs replaces arguments containing glob meta characters by the
// matching paths. Patterns without matches are reported and dropped.
func expandArgs(args []string) []string {
	var paths []string
	for _, arg := range args {
		if arg == "-" || !strings.ContainsAny(arg, "*?[{") {
			paths = append(paths, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			xlog.Warnf("%s: %s", arg, err)
			continue
		}
		if len(matches) == 0 {
			xlog.Warnf("%s: no match", arg)
			continue
		}
		paths = append(paths, matches...)
	}
	return paths
}

func main() {
	// setup logger
	cmdName := filepath.Base(os.Args[0])
	log.SetPrefix(fmt.Sprintf("%s: ", cmdName))
	log.SetFlags(0)
	xlog.SetOutput(os.Stderr, fmt.Sprintf("%s: ", cmdName))

	// initialize flags
	pflag.CommandLine = pflag.NewFlagSet(cmdName, pflag.ExitOnError)
	pflag.SetInterspersed(true)
	pflag.Usage = func() { usage(os.Stderr); os.Exit(1) }
	var (
		help    = pflag.BoolP("help", "h", false, "")
		stdout  = pflag.BoolP("stdout", "c", false, "")
		force   = pflag.BoolP("force", "f", false, "")
		keep    = pflag.BoolP("keep", "k", false, "")
		quiet   = pflag.BoolP("quiet", "q", false, "")
		test    = pflag.BoolP("test", "t", false, "")
		verbose = pflag.BoolP("verbose", "v", false, "")
		vers    = pflag.BoolP("version", "V", false, "")
		debug   = pflag.Bool("debug", false, "")
		maxChar = pflag.Int("max-char", sixpack.DefaultMaxChar, "")
		maxFreq = pflag.Int("max-freq", sixpack.DefaultMaxFrequency, "")
	)
	pflag.Parse()

	if *help {
		usage(os.Stdout)
		os.Exit(0)
	}
	if *vers {
		fmt.Printf("%s %s\n", cmdName, version)
		os.Exit(0)
	}
	xlog.SetQuiet(*quiet && !*verbose)
	if *debug {
		sixpack.DebugOn(os.Stderr)
	}

	cfg := sixpack.Config{MaxChar: *maxChar, MaxFrequency: *maxFreq}
	d, err := cfg.NewDecompressor()
	if err != nil {
		log.Fatal(err)
	}
	if *verbose {
		log.Printf("configuration %# v", pretty.Formatter(d.Config()))
	}
	opts := &options{
		stdout:  *stdout,
		force:   *force,
		keep:    *keep,
		test:    *test,
		verbose: *verbose,
	}

	args := pflag.Args()
	if len(args) == 0 {
		args = []string{"-"}
	}
	paths := expandArgs(args)

	c := sixpack.NewCache(d, len(paths))
	exit := 0
	for _, path := range paths {
		if err := processFile(path, opts, c); err != nil {
			exit = 1
		}
	}
	os.Exit(exit)
}
