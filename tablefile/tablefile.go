// Package tablefile stores a wordle.PairTable on disk so a later run over
// the same dictionary can skip the n*n build.
package tablefile

import (
	"bufio"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"slices"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/powellquiring/wordle-entropy/wordle"
)

// Version is bumped whenever the file layout or pattern codes change.
const Version = 2

// sampleRows is how many secret rows Read recomputes on load.
const sampleRows = 8

type file struct {
	Version    int      `msgpack:"v"`
	WordLength int      `msgpack:"l"`
	Words      []string `msgpack:"w"`
	Codes      []byte   `msgpack:"c"`
	Checksum   uint32   `msgpack:"s"` // crc32 IEEE of Codes
}

// Write encodes the table together with the dictionary it was built from.
func Write(w io.Writer, d *wordle.Dictionary, t *wordle.PairTable) error {
	if t.Len() != d.Len() {
		return fmt.Errorf("table has %d words, dictionary %d: %w", t.Len(), d.Len(), wordle.ErrTableMismatch)
	}
	bw := bufio.NewWriter(w)
	err := msgpack.NewEncoder(bw).Encode(&file{
		Version:    Version,
		WordLength: wordle.WordLength,
		Words:      d.Strings(),
		Codes:      t.Codes(),
		Checksum:   crc32.ChecksumIEEE(t.Codes()),
	})
	if err != nil {
		return fmt.Errorf("encode pair table: %w", err)
	}
	return bw.Flush()
}

// Read decodes a table and checks that it was written for exactly the words
// of d, in the same order. The codes must match the stored checksum, the
// diagonal must be all correct, and a sample of rows is recomputed.
func Read(r io.Reader, d *wordle.Dictionary) (*wordle.PairTable, error) {
	var f file
	if err := msgpack.NewDecoder(bufio.NewReader(r)).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode pair table: %w", err)
	}
	if f.Version != Version || f.WordLength != wordle.WordLength {
		return nil, fmt.Errorf("pair table version %d length %d, want %d and %d: %w",
			f.Version, f.WordLength, Version, wordle.WordLength, wordle.ErrTableMismatch)
	}
	if !slices.Equal(f.Words, d.Strings()) {
		return nil, fmt.Errorf("pair table built for a different word list: %w", wordle.ErrTableMismatch)
	}
	if sum := crc32.ChecksumIEEE(f.Codes); sum != f.Checksum {
		return nil, fmt.Errorf("pair table checksum %08x, stored %08x: %w", sum, f.Checksum, wordle.ErrTableMismatch)
	}
	t, err := wordle.NewPairTable(len(f.Words), f.Codes)
	if err != nil {
		return nil, err
	}
	if err := t.VerifyDiagonal(); err != nil {
		return nil, err
	}
	if err := t.VerifyRows(d, sampledRows(t.Len())); err != nil {
		return nil, err
	}
	return t, nil
}

// sampledRows spreads up to sampleRows rows evenly over n, first and last
// included.
func sampledRows(n int) []int {
	if n <= sampleRows {
		rows := make([]int, n)
		for i := range rows {
			rows[i] = i
		}
		return rows
	}
	rows := make([]int, sampleRows)
	for i := range rows {
		rows[i] = i * (n - 1) / (sampleRows - 1)
	}
	return rows
}

func Save(path string, d *wordle.Dictionary, t *wordle.PairTable) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := Write(f, d, t); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// Load reads path; a missing file is reported with os.ErrNotExist.
func Load(path string, d *wordle.Dictionary) (*wordle.PairTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Read(f, d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
