package weave

import (
	"reflect"
	"testing"

	"github.com/iov-one/weave-treasury/errors"
)

type optsRecorder struct {
	key  string
	seen *[]string
	err  error
}

func (o optsRecorder) FromGenesis(opts Options, kv KVStore) error {
	var val string
	if err := opts.ReadOptions(o.key, &val); err != nil {
		return err
	}
	*o.seen = append(*o.seen, val)
	return o.err
}

func TestChainInitializers(t *testing.T) {
	opts := Options{
		"first":  []byte(`"one"`),
		"second": []byte(`"two"`),
	}

	var seen []string
	inits := ChainInitializers{
		optsRecorder{key: "first", seen: &seen},
		optsRecorder{key: "missing", seen: &seen},
		optsRecorder{key: "second", seen: &seen, err: errors.ErrState},
		optsRecorder{key: "first", seen: &seen},
	}
	err := inits.FromGenesis(opts, nil)
	if !errors.ErrState.Is(err) {
		t.Fatalf("want state error, got %v", err)
	}
	want := []string{"one", "", "two"}
	if len(seen) != len(want) {
		t.Fatalf("want %q, got %q", want, seen)
	}
	for i := range want {
		if want[i] != seen[i] {
			t.Fatalf("want %q, got %q", want, seen)
		}
	}
}

func TestReadOptionsInvalidJSON(t *testing.T) {
	opts := Options{"bad": []byte(`{`)}
	var val map[string]string
	if err := opts.ReadOptions("bad", &val); err == nil {
		t.Fatal("want error")
	}
}

func TestLoadMsg(t *testing.T) {
	cases := map[string]struct {
		Tx      Tx
		Dest    interface{}
		WantMsg Msg
		WantErr *errors.Error
	}{
		"success": {
			Tx:      &txMock{msg: &msgMock{ID: 4219}},
			Dest:    &msgMock{},
			WantMsg: &msgMock{ID: 4219},
		},
		"transaction contains a nil message": {
			Tx:      &txMock{msg: nil},
			Dest:    &msgMock{},
			WantErr: errors.ErrState,
		},
		"transaction fails to return a message": {
			Tx:      &txMock{err: errors.ErrMsg},
			Dest:    &msgMock{},
			WantErr: errors.ErrMsg,
		},
		"invalid destination message, not a pointer": {
			Tx:      &txMock{msg: &msgMock{ID: 81421}},
			Dest:    msgMock{},
			WantErr: errors.ErrType,
		},
		"invalid destination message, wrong message type": {
			Tx:      &txMock{msg: &msgMock{ID: 94151}},
			Dest:    &otherMsgMock{},
			WantErr: errors.ErrType,
		},
		"invalid destination message, nil interface": {
			Tx:      &txMock{msg: &msgMock{ID: 45192}},
			Dest:    Msg(nil),
			WantErr: errors.ErrType,
		},
		"invalid destination message, unaddressable": {
			Tx:      &txMock{msg: &msgMock{ID: 91841231}},
			Dest:    (*msgMock)(nil),
			WantErr: errors.ErrType,
		},
		"invalid message in transaction, failed validation": {
			Tx:      &txMock{msg: &msgMock{ID: 5, Err: errors.ErrInput}},
			Dest:    &msgMock{},
			WantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := LoadMsg(tc.Tx, tc.Dest); !tc.WantErr.Is(err) {
				t.Fatalf("want %q error, got %q", tc.WantErr, err)
			}
			if tc.WantErr == nil && !reflect.DeepEqual(tc.WantMsg, tc.Dest) {
				t.Fatalf("want %+v, got %+v", tc.WantMsg, tc.Dest)
			}
		})
	}
}

type txMock struct {
	msg Msg
	err error
}

func (tx *txMock) GetMsg() (Msg, error) { return tx.msg, tx.err }

type msgMock struct {
	ID  int
	Err error
}

func (m *msgMock) Path() string    { return "mock/msg" }
func (m *msgMock) Validate() error { return m.Err }

type otherMsgMock struct{}

func (m *otherMsgMock) Path() string    { return "mock/other" }
func (m *otherMsgMock) Validate() error { return nil }
