package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/iov-one/weave-treasury/app"
	"github.com/iov-one/weave-treasury/errors"
)

const txExt = ".tx"

// submitted disambiguates files written within the same nanosecond.
var submitted uint64

// mempool is a directory of serialized transactions, each in its own file.
// Files are processed in name order, which is the submission order.
type mempool struct {
	dir   string
	codec *app.TxCodec
}

// pendingTx is a transaction file found in the mempool. Err is set if the
// file cannot be decoded.
type pendingTx struct {
	Path string
	Tx   *app.Tx
	Err  error
}

func newMempool(dir string, codec *app.TxCodec) (*mempool, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return &mempool{dir: dir, codec: codec}, nil
}

// Submit writes tx into the mempool and returns the file path.
func (m *mempool) Submit(tx *app.Tx) (string, error) {
	raw, err := m.codec.EncodeTx(tx)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("%020d-%06d%s", time.Now().UnixNano(), atomic.AddUint64(&submitted, 1), txExt)
	tmp := filepath.Join(m.dir, "."+name)
	if err := ioutil.WriteFile(tmp, raw, 0600); err != nil {
		return "", errors.Wrap(errors.ErrInput, err.Error())
	}
	// Rename is atomic, so a running node never reads a partial file.
	path := filepath.Join(m.dir, name)
	if err := os.Rename(tmp, path); err != nil {
		return "", errors.Wrap(errors.ErrInput, err.Error())
	}
	return path, nil
}

// Pending returns all transactions waiting for a block.
func (m *mempool) Pending() ([]pendingTx, error) {
	files, err := ioutil.ReadDir(m.dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	var names []string
	for _, f := range files {
		if f.IsDir() || strings.HasPrefix(f.Name(), ".") || filepath.Ext(f.Name()) != txExt {
			continue
		}
		names = append(names, f.Name())
	}
	sort.Strings(names)

	pending := make([]pendingTx, 0, len(names))
	for _, name := range names {
		path := filepath.Join(m.dir, name)
		p := pendingTx{Path: path}
		raw, err := ioutil.ReadFile(path)
		if err != nil {
			p.Err = errors.Wrap(errors.ErrInput, err.Error())
		} else {
			p.Tx, p.Err = m.codec.DecodeTx(raw)
		}
		pending = append(pending, p)
	}
	return pending, nil
}

// Remove deletes processed transaction files.
func (m *mempool) Remove(paths ...string) error {
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return errors.Wrap(errors.ErrInput, err.Error())
		}
	}
	return nil
}
