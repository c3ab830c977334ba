package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/notetex"
	"pkt.systems/version"
)

var log = logrus.WithField("subsys", "notetex")

var errNotOverwritten = errors.New("output exists; use -w/--overwrite")

func init() {
	version.SetDefaultModule("pkt.systems/notetex")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var (
		outPath     string
		overwrite   bool
		help        bool
		showVersion bool
		watchMode   bool
		debug       bool
		configPath  string
		wrapWidth   int
		title       string
		author      string
	)

	flags := pflag.NewFlagSet("notetex", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")
	flags.BoolVarP(&overwrite, "overwrite", "w", false, "Overwrite the output file if it exists")
	flags.BoolVarP(&help, "help", "h", false, "Show this help")
	flags.BoolVarP(&showVersion, "version", "v", false, "Print version and exit")
	flags.BoolVar(&watchMode, "watch", false, "Re-convert whenever the input file changes (needs -o)")
	flags.BoolVar(&debug, "debug", false, "Verbose logging")
	flags.StringVar(&configPath, "config", "", "YAML config file (default "+defaultConfigPath()+")")
	flags.IntVar(&wrapWidth, "wrap", 0, "Wrap body lines to this many columns (0 disables)")
	flags.StringVar(&title, "title", "", "Default title when the document head sets none")
	flags.StringVar(&author, "author", "", "Default author when the document head sets none")
	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: notetex <input> [flags]\n")
		fmt.Fprintln(stderr, "\nConverts notes markup to LaTeX. Input may be a path, file:// or http(s):// URL.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return 1
	}
	if help {
		flags.Usage()
		return 0
	}
	if showVersion {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return 0
	}

	logrus.SetOutput(stderr)
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	rest := flags.Args()
	if len(rest) != 1 {
		flags.Usage()
		return 1
	}
	input := rest[0]

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	if flags.Changed("wrap") {
		cfg.Wrap = wrapWidth
	}
	if title != "" {
		cfg.Title = title
	}
	if author != "" {
		cfg.Author = author
	}
	opts := append(cfg.options(), notetex.WithWarningHandler(func(err error) {
		log.WithError(err).Warn("Document has an unterminated block")
	}))

	if outPath != "" {
		outPath = normalizePath(outPath)
		if err := checkOutput(outPath, overwrite, stdin, stderr); err != nil {
			fmt.Fprintf(stderr, "output: %v\n", err)
			return 1
		}
	}

	convert := func() error {
		return convertInput(ctx, input, outPath, stdout, opts)
	}
	if err := convert(); err != nil {
		fmt.Fprintf(stderr, "convert: %v\n", err)
		return 1
	}
	if !watchMode {
		return 0
	}

	if outPath == "" {
		fmt.Fprintln(stderr, "watch: -o/--output is required")
		return 1
	}
	path, ok := localPath(input)
	if !ok {
		fmt.Fprintln(stderr, "watch: input must be a local file")
		return 1
	}
	w, err := newInputWatcher(path)
	if err != nil {
		fmt.Fprintf(stderr, "watch: %v\n", err)
		return 1
	}
	log.WithField("path", path).Info("Watching for changes")
	if err := w.run(ctx, convert); err != nil {
		fmt.Fprintf(stderr, "watch: %v\n", err)
		return 1
	}
	return 0
}

// convertInput runs one full conversion with a fresh parser. Output files
// are only written once the conversion succeeded.
func convertInput(ctx context.Context, input, outPath string, stdout io.Writer, opts []notetex.Option) error {
	var out bytes.Buffer
	if u, err := url.Parse(input); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		if err := notetex.HTTPConvert(ctx, notetex.HTTPConvertRequest{URL: input, Client: httpClient, Writer: &out, Options: opts}); err != nil {
			return err
		}
	} else {
		path, _ := localPath(input)
		f, err := openFile(path)
		if err != nil {
			return err
		}
		err = notetex.Convert(notetex.ConvertRequest{Reader: f, Writer: &out, Options: opts})
		_ = f.Close()
		if err != nil {
			return err
		}
	}
	if outPath == "" {
		_, err := stdout.Write(out.Bytes())
		return err
	}
	return writeOutput(outPath, out.Bytes())
}

// localPath resolves a plain path or file:// URL.
func localPath(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return normalizePath(path), true
		case "http", "https":
			return "", false
		}
	}
	return normalizePath(raw), true
}

func openFile(path string) (*os.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: is a directory", path)
	}
	return os.Open(path)
}

// checkOutput refuses directories and, without overwrite, existing files.
// On a terminal the user is asked instead.
func checkOutput(path string, overwrite bool, stdin io.Reader, prompt io.Writer) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s: is a directory", path)
	}
	if overwrite {
		return nil
	}
	if !isTerminal(stdin) {
		return errors.Wrap(errNotOverwritten, path)
	}
	fmt.Fprintf(prompt, "%s exists, overwrite? [y/N] ", path)
	answer, _ := bufio.NewReader(stdin).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return nil
	}
	return errors.Wrap(errNotOverwritten, path)
}

func writeOutput(path string, data []byte) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

var httpClient = &http.Client{Timeout: 30 * time.Second}
