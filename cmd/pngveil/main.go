// pngveil embeds, extracts, and strips secret messages carried in ancillary
// PNG chunks.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/pngveil/pngveil/internal/secret"
	"github.com/pngveil/pngveil/pngveil"
)

const usage = `Usage: pngveil <command> [arguments]

Commands:
  encode <in.png> <type> <message> [-o out.png] [-p passphrase]
      Embed a message as a chunk of the given 4-letter type. The chunk is
      inserted before IEND when the file has one. Writes back in place
      unless -o is given. With -p, the message is sealed with the
      passphrase first.
  decode <in.png> <type> [-p passphrase]
      Print the message stored in the first chunk of the given type.
  remove <in.png> <type>
      Strip the first chunk of the given type and rewrite the file.
  print <in.png>
      Dump every chunk (lengths, types, data as hex, CRCs).
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "encode":
		err = cmdEncode(os.Args[2:])
	case "decode":
		err = cmdDecode(os.Args[2:])
	case "remove":
		err = cmdRemove(os.Args[2:])
	case "print":
		err = cmdPrint(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "pngveil %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

func cmdEncode(args []string) error {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	out := fs.String("o", "", "output path (default: rewrite input)")
	passphrase := fs.String("p", "", "seal the message with this passphrase")
	path, rest, err := parseArgs(fs, args, 3, "<in.png> <type> <message>")
	if err != nil {
		return err
	}
	typeStr, message := rest[0], rest[1]

	f, err := loadFile(path)
	if err != nil {
		return err
	}

	typ, err := pngveil.ParseChunkType(typeStr)
	if err != nil {
		return err
	}

	payload := []byte(message)
	if *passphrase != "" {
		if payload, err = secret.Seal(payload, *passphrase); err != nil {
			return err
		}
	}

	// Keep IEND last when the input has one; a chunkless or truncated
	// carrier just gets the chunk appended.
	end, endErr := f.RemoveChunk("IEND")
	f.AppendChunk(pngveil.NewChunk(typ, payload))
	if endErr == nil {
		f.AppendChunk(end)
	}

	dest := path
	if *out != "" {
		dest = *out
	}
	return os.WriteFile(dest, f.Bytes(), 0644)
}

func cmdDecode(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	passphrase := fs.String("p", "", "passphrase for a sealed message")
	path, rest, err := parseArgs(fs, args, 2, "<in.png> <type>")
	if err != nil {
		return err
	}

	f, err := loadFile(path)
	if err != nil {
		return err
	}

	chunk, ok := f.ChunkByType(rest[0])
	if !ok {
		return fmt.Errorf("%q: %w", rest[0], pngveil.ErrChunkNotFound)
	}

	var msg string
	if *passphrase != "" {
		data, err := secret.Open(chunk.Data(), *passphrase)
		if err != nil {
			return err
		}
		if !utf8.Valid(data) {
			return pngveil.ErrInvalidText
		}
		msg = string(data)
	} else {
		if secret.IsSealed(chunk.Data()) {
			return errors.New("message is sealed; supply -p <passphrase>")
		}
		if msg, err = chunk.Text(); err != nil {
			return err
		}
	}
	fmt.Println(msg)
	return nil
}

func cmdRemove(args []string) error {
	fs := flag.NewFlagSet("remove", flag.ExitOnError)
	path, rest, err := parseArgs(fs, args, 2, "<in.png> <type>")
	if err != nil {
		return err
	}

	f, err := loadFile(path)
	if err != nil {
		return err
	}
	if _, err := f.RemoveChunk(rest[0]); err != nil {
		return err
	}
	return os.WriteFile(path, f.Bytes(), 0644)
}

func cmdPrint(args []string) error {
	fs := flag.NewFlagSet("print", flag.ExitOnError)
	path, _, err := parseArgs(fs, args, 1, "<in.png>")
	if err != nil {
		return err
	}

	f, err := loadFile(path)
	if err != nil {
		return err
	}
	fmt.Print(f)
	return nil
}

// parseArgs parses flags that may follow the positional arguments and
// checks the positional count. It returns the first positional (the input
// path) and the rest.
func parseArgs(fs *flag.FlagSet, args []string, positional int, usage string) (string, []string, error) {
	if len(args) < positional {
		return "", nil, fmt.Errorf("expected %s", usage)
	}
	if err := fs.Parse(args[positional:]); err != nil {
		return "", nil, err
	}
	if fs.NArg() != 0 {
		return "", nil, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	return args[0], args[1:positional], nil
}

func loadFile(path string) (*pngveil.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := pngveil.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}
