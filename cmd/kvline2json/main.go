// Command kvline2json converts single-line key-value records to compact
// JSON, one object per line. Input comes from files named on the command
// line, or stdin when none are given. Types are inferred from the token
// shape: quoted values stay strings, bare values become numbers, booleans
// or null when re-rendering them would reproduce the token exactly.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	stakkerlog "github.com/uazu/stakker-log"
	"github.com/uazu/stakker-log/internal/lineparse"
)

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "kvline2json: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand(out, errw io.Writer) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:           "kvline2json [file ...]",
		Short:         "convert single-line key-value records to JSON",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(out, errw, args, strict)
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "stop at the first malformed line instead of skipping it")
	return cmd
}

func run(out, errw io.Writer, files []string, strict bool) error {
	if len(files) == 0 {
		return convert(os.Stdin, "stdin", out, errw, strict)
	}
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		err = convert(f, path, out, errw, strict)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// convert reads key-value lines from r and writes one JSON object per line
// to out. Malformed lines are reported to errw and skipped unless strict is
// set, in which case the first one aborts the conversion. Blank lines are
// passed through as empty objects so line counts stay aligned.
func convert(r io.Reader, name string, out, errw io.Writer, strict bool) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	w := bufio.NewWriter(out)
	var buf []byte
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		nodes, err := lineparse.Parse(scanner.Text())
		if err != nil {
			if strict {
				return fmt.Errorf("%s:%d: %w", name, lineNo, err)
			}
			fmt.Fprintf(errw, "kvline2json: %s:%d: %v\n", name, lineNo, err)
			continue
		}
		buf = buf[:0]
		buf = append(buf, '{')
		buf = stakkerlog.AppendJSON(buf, lineparse.Scan(nodes), "", "")
		buf = append(buf, '}', '\n')
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("%s: write: %w", name, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%s: read: %w", name, err)
	}
	return w.Flush()
}
