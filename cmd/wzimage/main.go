// Command wzimage builds, extracts and debugs a single WZ image file.
// Canvas pixel and Sound audio bytes are forwarded as opaque payloads;
// decoding them into PNG/WAV is left to an external collaborator.
package main

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/gowz/wz/keystream"
	"github.com/gowz/wz/maptree"
	"github.com/gowz/wz/wzimage"
	"github.com/gowz/wz/xmlbridge"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	file    string
	create  bool
	extract bool
	debug   bool
	verbose bool
	keySel  string
}

func parseFlags() (options, error) {
	var o options
	flag.StringVarP(&o.file, "file", "f", "", "image file (required)")
	flag.BoolVarP(&o.create, "create", "c", false, "build an image from an XML view")
	flag.BoolVarP(&o.extract, "extract", "x", false, "extract to an XML view plus sidecar payload files")
	flag.BoolVarP(&o.debug, "debug", "d", false, "print the property tree")
	flag.BoolVarP(&o.verbose, "verbose", "v", false, "enable verbose logging")
	flag.StringVarP(&o.keySel, "key", "k", "gms", "keystream selector: gms, kms, none")
	flag.Parse()

	if o.file == "" {
		return o, errors.New("wzimage: -f FILE is required")
	}
	return o, nil
}

func run() error {
	o, err := parseFlags()
	if err != nil {
		return err
	}

	logrus.SetLevel(logrus.WarnLevel)
	if o.verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	switch {
	case o.create:
		return createImage(o.file, o.keySel)
	case o.extract:
		return extractImage(o.file, o.keySel)
	case o.debug:
		return debugImage(o.file, o.keySel)
	default:
		return errors.New("wzimage: exactly one of -c, -x, -d is required")
	}
}

// createImage builds an Image from the XML view at <file-without-ext>.xml,
// the counterpart extractImage writes. Canvas/Sound payload bytes are left
// empty: wiring sidecar PNG/WAV files back in is the XML document owner's
// responsibility.
func createImage(path, keySel string) error {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	raw, err := os.ReadFile(base + ".xml")
	if err != nil {
		return errors.Wrap(err, "wzimage: read xml")
	}

	var el xmlbridge.Element
	if err := xml.Unmarshal(raw, &el); err != nil {
		return errors.Wrap(err, "wzimage: parse xml")
	}
	tree, err := xmlbridge.ToTree(el)
	if err != nil {
		return err
	}

	ks, err := keystream.ForSelector(keystream.Selector(keySel))
	if err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "wzimage: create")
	}
	defer out.Close()
	return wzimage.Encode(out, ks, tree)
}

func openImage(path, keySel string) (*wzimage.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "wzimage")
	}
	defer f.Close()

	ks, err := keystream.ForSelector(keystream.Selector(keySel))
	if err != nil {
		return nil, err
	}
	return wzimage.Decode(f, ks)
}

func debugImage(path, keySel string) error {
	tree, err := openImage(path, keySel)
	if err != nil {
		return err
	}
	return tree.RootCursor().Walk(func(c *maptree.Cursor[wzimage.Property]) error {
		p := c.Get()
		fmt.Printf("%-48s %s\n", strings.Join(c.Pwd(), "/"), p.Kind)
		return nil
	})
}

func extractImage(path, keySel string) error {
	tree, err := openImage(path, keySel)
	if err != nil {
		return err
	}

	el, err := xmlbridge.FromTree(tree)
	if err != nil {
		return err
	}
	out, err := xml.MarshalIndent(el, "", "  ")
	if err != nil {
		return errors.Wrap(err, "wzimage: marshal xml")
	}

	base := strings.TrimSuffix(path, filepath.Ext(path))
	if err := os.WriteFile(base+".xml", out, 0o644); err != nil {
		return errors.Wrap(err, "wzimage: write xml")
	}

	payloadDir := base + "_payloads"
	if err := os.MkdirAll(payloadDir, 0o755); err != nil {
		return errors.Wrap(err, "wzimage: extract")
	}
	return tree.RootCursor().Walk(func(c *maptree.Cursor[wzimage.Property]) error {
		p := c.Get()
		name := strings.Join(c.Pwd()[1:], "_")
		switch p.Kind {
		case wzimage.KindCanvas:
			if len(p.Canvas.Compressed) == 0 {
				return nil
			}
			dest := filepath.Join(payloadDir, name+".canvas.raw")
			logrus.WithField("path", dest).Debug("extracting canvas payload")
			return errors.Wrap(os.WriteFile(dest, p.Canvas.Compressed, 0o644), "wzimage: extract canvas")
		case wzimage.KindSound:
			dest := filepath.Join(payloadDir, name+".sound.raw")
			logrus.WithField("path", dest).Debug("extracting sound payload")
			return errors.Wrap(os.WriteFile(dest, p.Sound.Audio, 0o644), "wzimage: extract sound")
		default:
			return nil
		}
	})
}
