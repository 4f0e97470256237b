// Command wzarchive creates, lists, extracts and debugs WZ archive files.
package main

import (
	"encoding/xml"
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/gowz/wz/archive"
	"github.com/gowz/wz/keystream"
	"github.com/gowz/wz/maptree"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	file       string
	create     bool
	list       bool
	extract    bool
	debug      bool
	listFile   bool
	xmlView    bool
	verbose    bool
	keySel     string
	version    int
	createArgs []string
}

func parseFlags() (options, error) {
	var o options
	flag.StringVarP(&o.file, "file", "f", "", "archive file (required)")
	flag.BoolVarP(&o.create, "create", "c", false, "create an archive from a directory")
	flag.BoolVarP(&o.list, "list", "t", false, "list archive contents")
	flag.BoolVarP(&o.extract, "extract", "x", false, "extract archive contents to disk")
	flag.BoolVarP(&o.debug, "debug", "d", false, "print the directory tree with offsets and checksums")
	flag.BoolVarP(&o.listFile, "listfile", "L", false, "decode a list-file")
	flag.BoolVarP(&o.xmlView, "xml", "S", false, "produce an XML view of the directory tree")
	flag.BoolVarP(&o.verbose, "verbose", "v", false, "enable verbose logging")
	flag.StringVarP(&o.keySel, "key", "k", "gms", "keystream selector: gms, kms, none")
	flag.IntVarP(&o.version, "version", "m", 0, "force version, else bruteforce on read")
	flag.Parse()
	o.createArgs = flag.Args()

	if o.file == "" {
		return o, errors.New("wzarchive: -f FILE is required")
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

	selector := keystream.Selector(o.keySel)

	switch {
	case o.create:
		if o.version == 0 || len(o.createArgs) != 1 {
			return errors.New("wzarchive: -c requires -m VERSION and a source directory argument")
		}
		return createArchive(o.file, o.createArgs[0], o.version, selector)
	case o.list:
		return listArchive(o.file, selector, o.version)
	case o.extract:
		return extractArchive(o.file, selector, o.version)
	case o.debug:
		return debugArchive(o.file, selector, o.version)
	case o.listFile:
		return decodeListFile(o.file, selector)
	case o.xmlView:
		return xmlArchive(o.file, selector, o.version)
	default:
		return errors.New("wzarchive: exactly one of -c, -t, -x, -d, -L, -S is required")
	}
}

func openArchive(path string, sel keystream.Selector, version int) (*os.File, *archive.Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "wzarchive")
	}
	root := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	a, err := archive.Open(f, root, archive.OpenOptions{Selector: sel, ForcedVersion: version})
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	logrus.WithField("version_key", a.VersionKey).Debug("resolved archive version key")
	return f, a, nil
}

func listArchive(path string, sel keystream.Selector, version int) error {
	f, a, err := openArchive(path, sel, version)
	if err != nil {
		return err
	}
	defer f.Close()

	return a.Tree.RootCursor().Walk(func(c *maptree.Cursor[archive.Content]) error {
		fmt.Println(strings.Join(c.Pwd(), "/"))
		return nil
	})
}

func debugArchive(path string, sel keystream.Selector, version int) error {
	f, a, err := openArchive(path, sel, version)
	if err != nil {
		return err
	}
	defer f.Close()

	return a.Tree.RootCursor().Walk(func(c *maptree.Cursor[archive.Content]) error {
		content := c.Get()
		line := fmt.Sprintf("%-48s %-8s size=%-10d checksum=%-10d offset=%d",
			strings.Join(c.Pwd(), "/"), content.Kind, content.Size, content.Checksum, content.Offset)
		if content.Kind == archive.KindImage {
			data, err := a.ReadImage(content)
			if err != nil {
				return err
			}
			line += fmt.Sprintf(" crc32=%08x", crc32.ChecksumIEEE(data))
		}
		fmt.Println(line)
		return nil
	})
}

func extractArchive(path string, sel keystream.Selector, version int) error {
	f, a, err := openArchive(path, sel, version)
	if err != nil {
		return err
	}
	defer f.Close()

	outDir := strings.TrimSuffix(path, filepath.Ext(path)) + "_extracted"
	return a.Tree.RootCursor().Walk(func(c *maptree.Cursor[archive.Content]) error {
		content := c.Get()
		if content.Kind != archive.KindImage {
			return nil
		}
		dest := filepath.Join(append([]string{outDir}, c.Pwd()[1:]...)...)
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return errors.Wrap(err, "wzarchive: extract")
		}
		data, err := a.ReadImage(content)
		if err != nil {
			return err
		}
		logrus.WithField("path", dest).Debug("extracting image")
		return errors.Wrap(os.WriteFile(dest, data, 0o644), "wzarchive: extract")
	})
}

func decodeListFile(path string, sel keystream.Selector) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "wzarchive")
	}
	defer f.Close()

	ks, err := keystream.ForSelector(sel)
	if err != nil {
		return err
	}
	entries, err := archive.DecodeListFile(f, ks)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Println(e)
	}
	return nil
}

// xmlEntry is the structural (Package/Image, no property contents) view
// of the directory tree produced by -S.
type xmlEntry struct {
	XMLName  xml.Name
	Name     string     `xml:"name,attr"`
	Size     int32      `xml:"size,attr,omitempty"`
	Children []xmlEntry `xml:",omitempty"`
}

func xmlArchive(path string, sel keystream.Selector, version int) error {
	f, a, err := openArchive(path, sel, version)
	if err != nil {
		return err
	}
	defer f.Close()

	root := buildXMLEntry(a.Tree.RootCursor())
	out, err := xml.MarshalIndent(root, "", "  ")
	if err != nil {
		return errors.Wrap(err, "wzarchive: marshal xml")
	}
	fmt.Println(string(out))
	return nil
}

func buildXMLEntry(c *maptree.Cursor[archive.Content]) xmlEntry {
	content := c.Get()
	tag := "package"
	if content.Kind == archive.KindImage {
		tag = "image"
	}
	e := xmlEntry{XMLName: xml.Name{Local: tag}, Name: c.Name(), Size: content.Size}
	for _, name := range c.List() {
		_ = c.MoveTo(name)
		e.Children = append(e.Children, buildXMLEntry(c))
		_ = c.Parent()
	}
	return e
}

func createArchive(archivePath, sourceDir string, version int, sel keystream.Selector) error {
	root := strings.TrimSuffix(filepath.Base(archivePath), filepath.Ext(archivePath))
	b := archive.NewBuilder(root)
	if err := addDir(b.Root(), sourceDir); err != nil {
		return err
	}

	out, err := os.Create(archivePath)
	if err != nil {
		return errors.Wrap(err, "wzarchive: create")
	}
	defer out.Close()

	_, err = archive.Write(out, b.Tree(), archive.WriteOptions{Version: version, Selector: sel})
	return err
}

func addDir(c *maptree.CursorMut[archive.Content], dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrap(err, "wzarchive: read directory")
	}
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if err := archive.AddPackage(c, entry.Name()); err != nil {
				return err
			}
			if err := c.MoveTo(entry.Name()); err != nil {
				return err
			}
			if err := addDir(c, full); err != nil {
				return err
			}
			if err := c.Parent(); err != nil {
				return err
			}
			continue
		}

		data, err := os.ReadFile(full)
		if err != nil {
			return errors.Wrap(err, "wzarchive: read file")
		}
		logrus.WithField("path", full).Debug("adding image")
		if err := archive.AddImage(c, entry.Name(), &bytesProvider{data: data}); err != nil {
			return err
		}
	}
	return nil
}
