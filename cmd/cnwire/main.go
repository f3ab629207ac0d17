// cnwire decodes hex-encoded cryptonote wire values and prints them.
//
// The input is taken from the first argument or, when none is given, from
// stdin. --kind selects the decoder; the default "auto" sniffs the portable
// storage signature and otherwise decodes a transaction output.
package main

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	codec "github.com/oy3o/cnwire"
	"github.com/oy3o/cnwire/hash"
	"github.com/oy3o/cnwire/storage"
	"github.com/oy3o/cnwire/transaction"
)

const (
	kindAuto    = "auto"
	kindTxOut   = "txout"
	kindTarget  = "target"
	kindHash    = "hash"
	kindStorage = "storage"
)

type options struct {
	kind     string
	verbose  bool
	maxInput int64
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var opts options
	flagSet := pflag.NewFlagSet("cnwire", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&opts.kind, "kind", "k", kindAuto, "value to decode: auto, txout, target, hash or storage")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log decoding details to stderr")
	flagSet.Int64Var(&opts.maxInput, "max-input", 1<<20, "maximum decoded input size in bytes")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	var src io.Reader = stdin
	if flagSet.NArg() > 0 {
		src = strings.NewReader(strings.Join(flagSet.Args(), ""))
	}
	text, err := codec.ReadAllLimited(src, 2*opts.maxInput+2)
	if err != nil {
		return err
	}
	text = bytes.TrimSpace(text)
	logger.Debug("read input", "hex_chars", len(text))
	if len(text)%2 != 0 {
		return fmt.Errorf("invalid hex input: %w", hex.ErrLength)
	}

	input := codec.PeekReader(hex.NewDecoder(bytes.NewReader(text)))
	kind := opts.kind
	if kind == kindAuto {
		head, _ := input.Peek(9)
		kind = kindTxOut
		if storage.HasSignature(head) {
			kind = kindStorage
		}
		logger.Debug("detected input kind", "kind", kind)
	}

	return decode(kind, input, stdout, logger)
}

func decode(kind string, input *codec.PeekableReader, stdout io.Writer, logger *slog.Logger) error {
	if kind == kindStorage {
		data, err := codec.ReadAllLimited(input, 1<<30)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		root, err := storage.Unmarshal(data)
		if err != nil {
			return err
		}
		logger.Debug("decoded storage", "entries", root.Len(), "bytes", len(data))
		dumpSection(stdout, root, "")
		return nil
	}

	r, err := codec.NewReader(input)
	if err != nil {
		return err
	}
	switch kind {
	case kindTxOut:
		out, err := transaction.DecodeTxOut(r)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "amount=%d target=%s\n", out.Amount, out.Target)
	case kindTarget:
		target, err := transaction.DecodeTxOutTarget(r)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, target)
	case kindHash:
		h, err := hash.DecodeBlob(r)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, h)
	default:
		return fmt.Errorf("unknown kind %q", kind)
	}
	logger.Debug("decoded value", "kind", kind, "bytes", r.Count())

	if rest, _ := io.Copy(io.Discard, r); rest > 0 {
		logger.Warn("ignoring trailing bytes", "count", rest)
	}
	return nil
}
