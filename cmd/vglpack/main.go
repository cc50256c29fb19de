// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/devblok/vglh/asset/kar"
	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"
)

func init() {
	currentUserName = "unknown"
	if u, err := user.Current(); err == nil && u.Username != "" {
		currentUserName = u.Username
	}
}

var (
	currentUserName string
	author          = flag.String("author", "", "Set the author of the package when compressing, defaults to the current user")
	version         = flag.Int64("version", 1, "Archive version number to create it with")
	extract         = flag.String("e", "", "Extract the archive given")
	compress        = flag.String("c", "", "Compress the given file/folder")
	list            = flag.String("l", "", "List the files in the archive given")
	dstFile         = flag.String("f", "out.kar", "Destination file when compressing")
	dstDir          = flag.String("d", ".", "Destination directory when extracting")
	silent          = flag.Bool("s", false, "Silent")
)

var errOneOperation = errors.New("only one operation at a time")

func main() {
	flag.Parse()

	ops := 0
	for _, op := range []string{*extract, *compress, *list} {
		if op != "" {
			ops++
		}
	}
	switch {
	case ops > 1:
		log.Fatal(errOneOperation)
	case *compress != "":
		name := *author
		if name == "" {
			name = currentUserName
		}
		header := kar.Header{
			Author:      name,
			DateCreated: time.Now().Unix(),
			Version:     *version,
		}
		if err := compressFiles(*compress, *dstFile, header, *silent); err != nil {
			log.Fatal(err)
		}
	case *extract != "":
		if err := extractFiles(*extract, *dstDir, *silent); err != nil {
			log.Fatal(err)
		}
	case *list != "":
		if err := listFiles(*list, os.Stdout); err != nil {
			log.Fatal(err)
		}
	default:
		flag.PrintDefaults()
	}
}

func newBar(max int, description string, silent bool) *progressbar.ProgressBar {
	if silent {
		return progressbar.DefaultSilent(int64(max), description)
	}
	return progressbar.Default(int64(max), description)
}

// compressFiles packs every file under src into a new archive at dst.
// Files are named by their slash separated path relative to src.
func compressFiles(src, dst string, header kar.Header, silent bool) error {
	if _, err := os.Stat(dst); err == nil {
		return errors.New("destination file exists, will not overwrite")
	}

	var filesToCompress []string
	if err := filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		filesToCompress = append(filesToCompress, path)
		return nil
	}); err != nil {
		return err
	}

	base := src
	if info, err := os.Stat(src); err == nil && !info.IsDir() {
		base = filepath.Dir(src)
	}

	karBuilder, err := kar.NewBuilder(header)
	if err != nil {
		return err
	}
	defer karBuilder.Close()

	bar := newBar(len(filesToCompress), "compressing", silent)
	for _, ftc := range filesToCompress {
		rel, err := filepath.Rel(base, ftc)
		if err != nil {
			return err
		}
		if err := addFile(karBuilder, filepath.ToSlash(rel), ftc); err != nil {
			return err
		}
		bar.Add(1)
	}
	bar.Finish()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	written, err := karBuilder.WriteTo(out)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dst)
		return err
	}

	log.WithFields(log.Fields{
		"files":   len(filesToCompress),
		"written": written,
		"archive": dst,
	}).Info("archive created")
	return nil
}

func addFile(b *kar.Builder, name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return b.Add(name, f)
}

// extractFiles writes every file of the archive at src under dir
func extractFiles(src, dir string, silent bool) error {
	ar, err := kar.OpenFile(src)
	if err != nil {
		return err
	}
	defer ar.Close()

	names := ar.Names()
	bar := newBar(len(names), "extracting", silent)
	for _, name := range names {
		if err := extractFile(ar, name, dir); err != nil {
			return err
		}
		bar.Add(1)
	}
	return bar.Finish()
}

func extractFile(ar *kar.Archive, name, dir string) error {
	local := filepath.FromSlash(name)
	if !filepath.IsLocal(local) {
		return fmt.Errorf("refusing to extract %q outside of %s", name, dir)
	}
	path := filepath.Join(dir, local)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	r, err := ar.Open(name)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	_, err = io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

func listFiles(src string, w io.Writer) error {
	ar, err := kar.OpenFile(src)
	if err != nil {
		return err
	}
	defer ar.Close()

	header := ar.Header()
	fmt.Fprintf(w, "author: %s, version: %d, created: %s\n",
		header.Author, header.Version, time.Unix(header.DateCreated, 0).UTC().Format(time.RFC3339))
	for _, e := range header.Index {
		fmt.Fprintf(w, "%10d %10d %s\n", e.Size, e.CompressedSize, e.Name)
	}
	return nil
}
