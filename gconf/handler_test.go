package gconf

import (
	"context"
	"testing"

	"github.com/iov-one/weave-treasury"
	"github.com/iov-one/weave-treasury/errors"
	"github.com/iov-one/weave-treasury/store"
	"github.com/iov-one/weave-treasury/weavetest"
	"github.com/iov-one/weave-treasury/weavetest/assert"
)

func TestUpdateConfigurationHandler(t *testing.T) {
	cond := weavetest.NewCondition()

	cases := map[string]struct {
		// If Init is provided, initialize the database before running
		// handler code. This should represent the configuration's
		// initial state. Use nil to not provide initial state.
		Init ValidMarshaler

		Msg            weave.Msg
		MsgConditions  []weave.Condition
		WantCheckErr   *errors.Error
		WantDeliverErr *errors.Error

		// When not nil database state will be tested to contain the
		// exact version of the configuration.
		WantConfig *myconfig
	}{
		"success": {
			Init: &myconfig{Admin: cond.Address(), Num: 5125, Str: "foobar", Pct: 10},
			Msg: &myconfigMsg{
				Patch: &myconfig{Admin: cond.Address(), Num: 333, Str: "boing!", Pct: 20},
			},
			MsgConditions: []weave.Condition{cond},
			WantConfig:    &myconfig{Admin: cond.Address(), Num: 333, Str: "boing!", Pct: 20},
		},
		"message must be signed by the configuration admin": {
			Init: &myconfig{Admin: cond.Address(), Num: 5125, Str: "foobar", Pct: 10},
			Msg: &myconfigMsg{
				Patch: &myconfig{Num: 1},
			},
			MsgConditions: []weave.Condition{
				// A random condition, for sure not the same as the Admin.
				weavetest.NewCondition(),
			},
			WantCheckErr:   errors.ErrUnauthorized,
			WantDeliverErr: errors.ErrUnauthorized,
		},
		"zero values are not updating the configuration": {
			Init: &myconfig{Admin: cond.Address(), Num: 5125, Str: "foobar", Pct: 10},
			Msg: &myconfigMsg{
				Patch: &myconfig{Num: 0, Str: "", Pct: 33},
			},
			MsgConditions: []weave.Condition{cond},
			WantConfig:    &myconfig{Admin: cond.Address(), Num: 5125, Str: "foobar", Pct: 33},
		},
		"invalid configuration is not accepted": {
			Init: &myconfig{Admin: cond.Address(), Num: 5125, Str: "foobar", Pct: 10},
			Msg: &myconfigMsg{
				Patch: &myconfig{Pct: 140},
			},
			MsgConditions:  []weave.Condition{cond},
			WantCheckErr:   errors.ErrInput,
			WantDeliverErr: errors.ErrInput,
		},
		"configuration must exist": {
			Msg: &myconfigMsg{
				Patch: &myconfig{Num: 1},
			},
			MsgConditions:  []weave.Condition{cond},
			WantCheckErr:   errors.ErrNotFound,
			WantDeliverErr: errors.ErrNotFound,
		},
		"patch is required": {
			Init:           &myconfig{Admin: cond.Address(), Num: 5125, Str: "foobar", Pct: 10},
			Msg:            &myconfigMsg{},
			MsgConditions:  []weave.Condition{cond},
			WantCheckErr:   errors.ErrState,
			WantDeliverErr: errors.ErrState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()

			if tc.Init != nil {
				if err := Save(db, "mypkg", tc.Init); err != nil {
					t.Fatalf("cannot save initial configuration: %s", err)
				}
			}

			var c myconfig
			auth := &weavetest.CtxAuth{Key: "auth"}
			handler := NewUpdateConfigurationHandler("mypkg", &c, auth)

			ctx := weave.WithHeight(context.Background(), 999)
			ctx = weave.WithChainID(ctx, "mychain-123")
			ctx = auth.SetConditions(ctx, tc.MsgConditions...)

			tx := &weavetest.Tx{Msg: tc.Msg}

			cache := db.CacheWrap()
			if _, err := handler.Check(ctx, cache, tx); !tc.WantCheckErr.Is(err) {
				t.Fatal(err)
			}
			cache.Discard()

			if _, err := handler.Deliver(ctx, db, tx); !tc.WantDeliverErr.Is(err) {
				t.Fatal(err)
			}

			if tc.WantConfig != nil {
				var got myconfig
				if err := Load(db, "mypkg", &got); err != nil {
					t.Fatalf("cannot load configuration from the database: %s", err)
				}
				assert.Equal(t, tc.WantConfig, &got)
			}
		})
	}
}

type myconfigMsg struct {
	Patch *myconfig
}

var _ weave.Msg = (*myconfigMsg)(nil)

func (msg *myconfigMsg) Path() string { return "myconfig" }

func (msg *myconfigMsg) Validate() error {
	if msg.Patch == nil {
		return nil
	}
	return msg.Patch.Pct.Validate()
}
