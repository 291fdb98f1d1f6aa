package gconf

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/weave-treasury"
	"github.com/iov-one/weave-treasury/errors"
	"github.com/iov-one/weave-treasury/store"
	"github.com/iov-one/weave-treasury/weavetest"
	"github.com/iov-one/weave-treasury/weavetest/assert"
)

func TestSaveLoad(t *testing.T) {
	admin := weavetest.NewCondition().Address()

	cases := map[string]struct {
		Conf        *myconfig
		WantSaveErr *errors.Error
	}{
		"all fields": {
			Conf: &myconfig{Admin: admin, Num: 852151421, Str: "foobar", Pct: 42},
		},
		"zero values": {
			Conf: &myconfig{Admin: admin},
		},
		"invalid address cannot be saved": {
			Conf:        &myconfig{Admin: weave.Address("too short")},
			WantSaveErr: errors.ErrInput,
		},
		"invalid percent cannot be saved": {
			Conf:        &myconfig{Admin: admin, Pct: 101},
			WantSaveErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if err := Save(db, "mypkg", tc.Conf); !tc.WantSaveErr.Is(err) {
				t.Fatalf("unexpected save error: %s", err)
			}
			if tc.WantSaveErr != nil {
				return
			}

			var got myconfig
			if err := Load(db, "mypkg", &got); err != nil {
				t.Fatalf("cannot load configuration: %s", err)
			}
			assert.Equal(t, tc.Conf, &got)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	var c myconfig
	err := Load(store.MemStore(), "mypkg", &c)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestInitConfig(t *testing.T) {
	admin := weavetest.NewCondition().Address()

	cases := map[string]struct {
		Genesis string
		WantErr *errors.Error
		Want    *myconfig
	}{
		"valid configuration": {
			Genesis: `{"conf": {"mypkg": {"Admin": "` + admin.String() + `", "Num": 7, "Pct": 30}}}`,
			Want:    &myconfig{Admin: admin, Num: 7, Pct: 30},
		},
		"missing configuration": {
			Genesis: `{"conf": {"otherpkg": {}}}`,
			WantErr: errors.ErrNotFound,
		},
		"invalid configuration": {
			Genesis: `{"conf": {"mypkg": {"Num": 7}}}`,
			WantErr: errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts weave.Options
			if err := json.Unmarshal([]byte(tc.Genesis), &opts); err != nil {
				t.Fatalf("cannot parse genesis: %s", err)
			}
			db := store.MemStore()
			var c myconfig
			if err := InitConfig(db, opts, "mypkg", &c); !tc.WantErr.Is(err) {
				t.Fatalf("unexpected error: %s", err)
			}
			if tc.Want == nil {
				return
			}
			var got myconfig
			assert.Nil(t, Load(db, "mypkg", &got))
			assert.Equal(t, tc.Want, &got)
		})
	}
}

type myconfig struct {
	Admin weave.Address
	Num   int64
	Str   string
	Pct   weave.Percent
}

func (c *myconfig) GetAdmin() weave.Address    { return c.Admin }
func (c *myconfig) Marshal() ([]byte, error)   { return json.Marshal(c) }
func (c *myconfig) Unmarshal(raw []byte) error { return json.Unmarshal(raw, c) }

func (c *myconfig) Validate() error {
	if err := c.Admin.Validate(); err != nil {
		return errors.Wrap(err, "admin")
	}
	return c.Pct.Validate()
}
