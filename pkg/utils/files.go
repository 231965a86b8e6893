package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/bodgit/sevenzip"
)

// ErrEmptyArchive is returned when an archive holds no file.
var ErrEmptyArchive = errors.New("utils: archive is empty")

// LoadFile loads the given file and performs decompression if necessary.
// The compression is determined by the file extension: .gz, .br, .zip
// and .7z are supported, archives yield their first file. Any other
// file is returned as is.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	data, err = Decompress(strings.ToLower(filepath.Ext(filename)), data)
	if err != nil {
		return nil, fmt.Errorf("utils: loading %s: %w", filename, err)
	}
	return data, nil
}

// Decompress decodes data according to the file extension ext.
func Decompress(ext string, data []byte) ([]byte, error) {
	var decoder io.Reader
	switch ext {
	case ".gz":
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		decoder = r
	case ".br":
		decoder = brotli.NewReader(bytes.NewReader(data))
	case ".zip":
		r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, err
		}
		if len(r.File) == 0 {
			return nil, ErrEmptyArchive
		}

		// read the first file in the zip file
		f, err := r.File[0].Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		decoder = f
	case ".7z":
		r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, err
		}
		if len(r.File) == 0 {
			return nil, ErrEmptyArchive
		}

		// read the first file in the archive
		f, err := r.File[0].Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		decoder = f
	default:
		// return the data as is
		return data, nil
	}

	return io.ReadAll(decoder)
}
