// stegegg — hide data in the pixel LSBs of PNG/BMP images at key-derived
// positions.
//
// Usage:
//
//	stegegg [options] <input> <output>
//	stegegg -x [options] <input> <output>
//	stegegg capacity <image>...
//	stegegg cover -o <file> [options]
//	stegegg serve [--port 8080]
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/mr152here/stegegg/clients/server"
	"github.com/mr152here/stegegg/pkg/config"
	"github.com/mr152here/stegegg/pkg/generator"
	"github.com/mr152here/stegegg/pkg/imageio"
	"github.com/mr152here/stegegg/pkg/source"
	"github.com/mr152here/stegegg/pkg/steg"
)

const version = "0.1.0"

func main() {
	startLogging()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "capacity":
		err = runCapacity(os.Args[2:])
	case "cover":
		err = runCover(os.Args[2:])
	case "init":
		err = runInit(os.Args[2:])
	case "serve":
		err = runServe(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		// Default: embed/extract mode (all flags on root).
		err = run(os.Args[1:])
	}
	if err != nil {
		fatal(err)
	}
}

// options holds the flags of the default embed/extract mode.
type options struct {
	key         string
	keyFile     string
	promptKey   bool
	normalize   bool
	message     string
	messageSet  bool
	messageFile string
	extract     bool
	bmp         bool
	debug       bool
	configPath  string
	help        bool
	input       string
	output      string
}

func parseOptions(args []string) (*options, error) {
	fs := flag.NewFlagSet("stegegg", flag.ContinueOnError)
	fs.Usage = printUsage

	var o options
	fs.StringVar(&o.key, "k", "", "Key for embedding or extracting data")
	fs.StringVar(&o.key, "key", "", "Key for embedding or extracting data")
	fs.StringVar(&o.keyFile, "K", "", "Key file for embedding or extracting data")
	fs.StringVar(&o.keyFile, "key-file", "", "Key file for embedding or extracting data")
	fs.BoolVar(&o.promptKey, "p", false, "Read the key from the terminal")
	fs.BoolVar(&o.promptKey, "prompt-key", false, "Read the key from the terminal")
	fs.BoolVar(&o.normalize, "nfc", false, "NFC-normalise inline and prompted keys")
	fs.StringVar(&o.message, "m", "", "Data / message to hide into the image")
	fs.StringVar(&o.message, "message", "", "Data / message to hide into the image")
	fs.StringVar(&o.messageFile, "M", "", "File with data / message to hide into the image")
	fs.StringVar(&o.messageFile, "message-file", "", "File with data / message to hide into the image")
	fs.BoolVar(&o.extract, "x", false, "Extract message from the image")
	fs.BoolVar(&o.extract, "extract", false, "Extract message from the image")
	fs.BoolVar(&o.bmp, "b", false, "Output image in BMP format instead of PNG")
	fs.BoolVar(&o.bmp, "bmp", false, "Output image in BMP format instead of PNG")
	fs.BoolVar(&o.debug, "d", false, "Debug logging")
	fs.BoolVar(&o.debug, "debug", false, "Debug logging")
	fs.StringVar(&o.configPath, "config", "", "Path to config YAML")
	fs.BoolVar(&o.help, "h", false, "Print this help and exit")
	fs.BoolVar(&o.help, "help", false, "Print this help and exit")

	// Options may follow the positional arguments.
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		if fs.NArg() == 0 {
			break
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "m" || f.Name == "message" {
			o.messageSet = true
		}
	})

	if len(positional) > 0 {
		o.input = positional[0]
	}
	if len(positional) > 1 {
		o.output = positional[1]
	}
	if len(positional) > 2 {
		return nil, fmt.Errorf("unexpected argument %q", positional[2])
	}
	return &o, nil
}

func run(args []string) error {
	o, err := parseOptions(args)
	if err != nil {
		return err
	}
	if o.help {
		printUsage()
		return nil
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	setLogLevel(cfg.LogLevel)
	if o.debug {
		setLogLevel("debug")
	}

	keyFile := o.keyFile
	if o.key == "" && keyFile == "" && !o.promptKey {
		keyFile = cfg.KeyFile
	}
	key, err := source.Key(source.KeyOptions{
		Inline:    o.key,
		File:      keyFile,
		Prompt:    o.promptKey,
		Normalize: o.normalize || cfg.NormalizeKey,
	})
	if err != nil {
		return err
	}

	if o.input == "" {
		return errors.New("input file not specified")
	}
	if o.output == "" {
		return errors.New("output file not specified")
	}

	canvas, format, err := imageio.Load(o.input)
	if err != nil {
		return err
	}
	log.Debugf("loaded %s (%s, %dx%d, %d hiding spots)", o.input, format, canvas.Width(), canvas.Height(), steg.Spots(canvas))

	if o.extract {
		return extract(canvas, key, o.output)
	}

	var inline *string
	if o.messageSet {
		inline = &o.message
	}
	msg, err := source.Message(inline, o.messageFile)
	if err != nil {
		if errors.Is(err, source.ErrNoMessage) {
			return fmt.Errorf("%w: please specify it with -m or -M parameter", err)
		}
		return err
	}

	out, err := imageio.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	if o.bmp {
		out = imageio.BMP
	}
	return embed(canvas, key, msg, o.output, out)
}

func embed(canvas *imageio.Canvas, key, msg []byte, output string, f imageio.Format) error {
	if err := steg.Hide(key, msg, canvas); err != nil {
		return err
	}
	if err := imageio.Save(output, canvas, f); err != nil {
		return fmt.Errorf("error accessing the file '%s': %w", output, err)
	}
	fmt.Printf("Message hidden in the '%s'.\n", output)
	return nil
}

func extract(canvas *imageio.Canvas, key []byte, output string) error {
	msg, err := steg.Reveal(key, canvas)
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, msg, 0644); err != nil {
		return fmt.Errorf("error accessing the file '%s': %w", output, err)
	}
	fmt.Printf("%d bytes written to '%s'\n", len(msg), output)
	return nil
}

func runCapacity(args []string) error {
	if len(args) == 0 {
		return errors.New("capacity needs at least one image")
	}
	for _, path := range args {
		c, format, err := imageio.Load(path)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s %dx%d, %d hiding spots, up to %d bytes\n",
			path, format, c.Width(), c.Height(), steg.Spots(c), steg.Capacity(c))
	}
	return nil
}

func runCover(args []string) error {
	fs := flag.NewFlagSet("cover", flag.ExitOnError)

	var (
		output  string
		cfg     generator.Config
		noise   string
		fontArg string
	)
	fs.StringVar(&output, "o", "", "Output file path (.png or .bmp)")
	fs.StringVar(&output, "output", "", "Output file path (.png or .bmp)")
	fs.IntVar(&cfg.Width, "w", generator.DefaultWidth, "Width in pixels")
	fs.IntVar(&cfg.Width, "width", generator.DefaultWidth, "Width in pixels")
	fs.IntVar(&cfg.Height, "height", generator.DefaultHeight, "Height in pixels")
	fs.StringVar(&cfg.Color, "color", "random", "Background color: hex or 'random'")
	fs.StringVar(&noise, "noise", "", "Fill with noise derived from this seed")
	fs.StringVar(&cfg.Caption, "caption", "", "Caption text")
	fs.StringVar(&fontArg, "font", "", "Caption font (TTF/OTF)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if output == "" {
		return errors.New("output file is required (-o)")
	}
	cfg.Noise = noise != ""
	cfg.Seed = noise
	cfg.FontPath = fontArg

	if err := generator.Generate(output, cfg); err != nil {
		return err
	}
	fmt.Printf("Done: %s\n", output)
	return nil
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	var (
		path  string
		force bool
	)
	fs.StringVar(&path, "config", config.DefaultPath(), "Where to write the default config")
	fs.BoolVar(&force, "force", false, "Overwrite an existing config")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if path == "" {
		return errors.New("no config directory available, pass --config")
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(path, config.Default()); err != nil {
		return err
	}
	fmt.Printf("Created %s\n", path)
	return nil
}

func runServe(args []string) error {
	path := ""
	for i, a := range args {
		if a == "--config" && i+1 < len(args) {
			path = args[i+1]
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	setLogLevel(cfg.LogLevel)
	return server.RunServe(args, cfg.Serve)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Printf(`stegegg v%s

USAGE:
    stegegg [options] <input> <output>
    stegegg -x [options] <input> <output>
    stegegg capacity <image>...
    stegegg cover -o <file> [options]
    stegegg init [--config <path>] [--force]
    stegegg serve [--port 8080] [--config <path>]

OPTIONS:
    -k, --key <key>              Key for embedding or extracting data
    -K, --key-file <path>        Key file for embedding or extracting data
    -p, --prompt-key             Read the key from the terminal
        --nfc                    NFC-normalise inline and prompted keys
    -m, --message <text>         Data / message to hide into the image
    -M, --message-file <path>    File with data / message to hide into the image
    -x, --extract                Extract message from the image. Requires correct key
    -b, --bmp                    Output image in BMP format instead of default PNG
                                 (BMP output drops transparency)
    -d, --debug                  Debug logging
        --config <path>          Config YAML (default: %s)
    -h, --help                   Print this help and exit

COVER:
    -o, --output <path>          Output file (.png or .bmp)
    -w, --width <px>             Width in pixels (default: %d)
        --height <px>            Height in pixels (default: %d)
        --color <hex>            Background color or 'random' (default: random)
        --noise <seed>           Pseudo-random pixels from seed instead of a color
        --caption <text>         Caption text near the bottom edge
        --font <path>            Caption font (default: Go Regular)

EXAMPLES:
    stegegg -k secret -m "meet at noon" cover.png out.png
    stegegg -x -k secret out.png message.txt
    stegegg -K key.bin -M archive.zip -b cover.png out.bmp
    stegegg capacity cover.png
    stegegg cover -o cover.png --noise my-seed --caption "holiday"
`, version, config.DefaultPath(), generator.DefaultWidth, generator.DefaultHeight)
}
