package asdf

import (
	"crypto/md5"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/skyfield-labs/corefmt/ir"
)

// BlockMagic is the 4-byte marker that opens every raw ASDF binary block,
// per the ASDF standard's block format.
var BlockMagic = [4]byte{0xd3, 'B', 'L', 'K'}

// ErrCompressedBlock is returned when a block's compression field names an
// algorithm. Block compression is not supported: WriteBlock never emits a
// compressed block and ReadBlock refuses to decompress one it encounters.
var ErrCompressedBlock = errors.New("asdf: compressed blocks are not supported")

// flags, compression, allocated size, used size, data size, md5 checksum
const blockHeaderSize = 4 + 4 + 8 + 8 + 8 + 16

// WriteBlock writes one raw block (header + payload) for data to w.
func WriteBlock(w io.Writer, data []byte) error {
	header := make([]byte, blockHeaderSize)
	binary.BigEndian.PutUint32(header[0:4], 0) // flags
	copy(header[4:8], "    ")                  // compression: none
	binary.BigEndian.PutUint64(header[8:16], uint64(len(data)))
	binary.BigEndian.PutUint64(header[16:24], uint64(len(data)))
	binary.BigEndian.PutUint64(header[24:32], uint64(len(data)))
	sum := md5.Sum(data)
	copy(header[32:48], sum[:])

	if _, err := w.Write(BlockMagic[:]); err != nil {
		return err
	}
	var sizeBuf [2]byte
	binary.BigEndian.PutUint16(sizeBuf[:], uint16(len(header)))
	if _, err := w.Write(sizeBuf[:]); err != nil {
		return err
	}
	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}

// ReadBlock reads one raw block from r. io.EOF (unwrapped) signals no more
// blocks remain.
func ReadBlock(r io.Reader) ([]byte, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, err
	}
	if magic != BlockMagic {
		return nil, fmt.Errorf("asdf: bad block magic %x", magic)
	}
	var sizeBuf [2]byte
	if _, err := io.ReadFull(r, sizeBuf[:]); err != nil {
		return nil, err
	}
	header := make([]byte, binary.BigEndian.Uint16(sizeBuf[:]))
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}
	if len(header) < blockHeaderSize {
		return nil, fmt.Errorf("asdf: block header too short (%d bytes)", len(header))
	}
	compression := header[4:8]
	if string(compression) != "    " && string(compression) != "\x00\x00\x00\x00" {
		return nil, ErrCompressedBlock
	}
	dataSize := binary.BigEndian.Uint64(header[24:32])
	data := make([]byte, dataSize)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}
	return data, nil
}

// WriteBlocks writes every block in store, in order, to w.
func WriteBlocks(w io.Writer, store *ir.BlockStore) error {
	for _, b := range store.Blocks() {
		if err := WriteBlock(w, b); err != nil {
			return err
		}
	}
	return nil
}

// ReadBlocks reads raw blocks from r until EOF and returns a populated
// BlockStore in file order, to hand to SinkTree before the tree itself is
// parsed.
func ReadBlocks(r io.Reader) (*ir.BlockStore, error) {
	var blocks [][]byte
	for {
		b, err := ReadBlock(r)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return ir.NewBlockStoreFrom(blocks), nil
}
