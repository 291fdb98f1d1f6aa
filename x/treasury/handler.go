package treasury

import (
	"github.com/iov-one/weave-treasury"
	"github.com/iov-one/weave-treasury/errors"
	"github.com/iov-one/weave-treasury/gconf"
	"github.com/iov-one/weave-treasury/x"
)

// RegisterRoutes registers handlers for treasury message processing.
func RegisterRoutes(r weave.Registry, auth x.Authenticator) {
	bucket := NewBucket()
	r.Handle(pathAddRecipientMsg, &addRecipientHandler{auth: auth, bucket: bucket})
	r.Handle(pathRemoveRecipientMsg, &removeRecipientHandler{auth: auth, bucket: bucket})
	r.Handle(pathUpdateRecipientMsg, &updateRecipientHandler{auth: auth, bucket: bucket})
	r.Handle(pathSetMintingIntervalMsg, &setMintingIntervalHandler{auth: auth, bucket: bucket})
	r.Handle(pathSetCurrentPayoutMsg, &setCurrentPayoutHandler{auth: auth, bucket: bucket})
	r.Handle(pathUpdateConfigurationMsg, gconf.NewUpdateConfigurationHandler(PackageName, &Configuration{}, auth))
}

// authorize loads the configuration and ensures the admin signed the
// transaction.
func authorize(ctx weave.Context, db weave.ReadOnlyKVStore, auth x.Authenticator) (*Configuration, error) {
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, err
	}
	if !auth.HasAddress(ctx, conf.Admin) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "admin signature required")
	}
	return conf, nil
}

// ledgerChange is a ledger operation requested by a message.
type ledgerChange func(*Ledger) ([]Event, error)

// applyLedgerChange runs the change against the stored ledger. The ledger is
// written only if persist is true.
func applyLedgerChange(db weave.KVStore, bucket Bucket, conf *Configuration, change ledgerChange, persist bool) ([]Event, error) {
	ledger, err := bucket.Ledger(db, conf.MaxRecipientPct)
	if err != nil {
		return nil, err
	}
	events, err := change(ledger)
	if err != nil {
		return nil, err
	}
	if persist {
		if err := bucket.SaveLedger(db, ledger); err != nil {
			return nil, errors.Wrap(err, "cannot save ledger")
		}
	}
	return events, nil
}

type addRecipientHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

func (h *addRecipientHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.apply(ctx, db, tx, false); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (h *addRecipientHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	events, err := h.apply(ctx, db, tx, true)
	if err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Tags: Tags(events...)}, nil
}

func (h *addRecipientHandler) apply(ctx weave.Context, db weave.KVStore, tx weave.Tx, persist bool) ([]Event, error) {
	var msg AddRecipientMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := authorize(ctx, db, h.auth)
	if err != nil {
		return nil, err
	}
	return applyLedgerChange(db, h.bucket, conf, func(l *Ledger) ([]Event, error) {
		return l.Add(msg.Recipient, msg.Percent)
	}, persist)
}

type removeRecipientHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

func (h *removeRecipientHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.apply(ctx, db, tx, false); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (h *removeRecipientHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	events, err := h.apply(ctx, db, tx, true)
	if err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Tags: Tags(events...)}, nil
}

func (h *removeRecipientHandler) apply(ctx weave.Context, db weave.KVStore, tx weave.Tx, persist bool) ([]Event, error) {
	var msg RemoveRecipientMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := authorize(ctx, db, h.auth)
	if err != nil {
		return nil, err
	}
	return applyLedgerChange(db, h.bucket, conf, func(l *Ledger) ([]Event, error) {
		return l.Remove(msg.Recipient)
	}, persist)
}

type updateRecipientHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

func (h *updateRecipientHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.apply(ctx, db, tx, false); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (h *updateRecipientHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	events, err := h.apply(ctx, db, tx, true)
	if err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Tags: Tags(events...)}, nil
}

func (h *updateRecipientHandler) apply(ctx weave.Context, db weave.KVStore, tx weave.Tx, persist bool) ([]Event, error) {
	var msg UpdateRecipientMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := authorize(ctx, db, h.auth)
	if err != nil {
		return nil, err
	}
	return applyLedgerChange(db, h.bucket, conf, func(l *Ledger) ([]Event, error) {
		return l.Update(msg.Recipient, msg.Percent)
	}, persist)
}

type setMintingIntervalHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

func (h *setMintingIntervalHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (h *setMintingIntervalHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, params, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	params.MintingInterval = msg.Interval
	if err := h.bucket.SaveParams(db, params); err != nil {
		return nil, errors.Wrap(err, "cannot save params")
	}
	return &weave.DeliverResult{Tags: MintingIntervalUpdated{Interval: msg.Interval}.Tags()}, nil
}

func (h *setMintingIntervalHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*SetMintingIntervalMsg, *MintingParams, error) {
	var msg SetMintingIntervalMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if _, err := authorize(ctx, db, h.auth); err != nil {
		return nil, nil, err
	}
	params, err := h.bucket.Params(db)
	if err != nil {
		return nil, nil, err
	}
	return &msg, params, nil
}

type setCurrentPayoutHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

func (h *setCurrentPayoutHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (h *setCurrentPayoutHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, params, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	params.CurrentPayout = msg.Amount
	if err := h.bucket.SaveParams(db, params); err != nil {
		return nil, errors.Wrap(err, "cannot save params")
	}
	return &weave.DeliverResult{Tags: PayoutUpdated{Amount: msg.Amount}.Tags()}, nil
}

func (h *setCurrentPayoutHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*SetCurrentPayoutMsg, *MintingParams, error) {
	var msg SetCurrentPayoutMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if _, err := authorize(ctx, db, h.auth); err != nil {
		return nil, nil, err
	}
	params, err := h.bucket.Params(db)
	if err != nil {
		return nil, nil, err
	}
	return &msg, params, nil
}
