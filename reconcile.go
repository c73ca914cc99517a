package lingo

import (
	"bytes"
	"context"

	"github.com/agentstation/lingo/pkg/batch"
	"github.com/agentstation/lingo/pkg/codec"
	"github.com/agentstation/lingo/pkg/errors"
	"github.com/agentstation/lingo/pkg/reconciler"
	"github.com/agentstation/lingo/pkg/tree"
)

// Reconciler reconciles without touching any file.
type Reconciler interface {
	// Reconcile rebuilds target in the shape of reference.
	Reconcile(target, reference *tree.Node) (*reconciler.Result, error)

	// ReconcileFiles reads both documents and returns the encoded result in
	// the target's format. Nothing is written.
	ReconcileFiles(ctx context.Context, reference, target string) (*batch.Record, error)
}

// Reconcile implements Reconciler.
func (c *client) Reconcile(target, reference *tree.Node) (*reconciler.Result, error) {
	return c.reconciler.Tree(context.Background(), target, reference)
}

// ReconcileFiles implements Reconciler.
func (c *client) ReconcileFiles(ctx context.Context, reference, target string) (*batch.Record, error) {
	ref, _, _, err := c.load(ctx, reference)
	if err != nil {
		return nil, err
	}
	tgt, raw, tc, err := c.load(ctx, target)
	if err != nil {
		return nil, err
	}

	res, err := c.reconciler.Tree(ctx, tgt, ref)
	if err != nil {
		return nil, err
	}
	content, err := tc.Encode(res.Tree)
	if err != nil {
		return nil, errors.WrapParse(tc.Format().String(), target, err)
	}

	return &batch.Record{
		Target:  batch.NewTarget(target, ""),
		Format:  tc.Format(),
		Content: content,
		Result:  res,
		Changed: !bytes.Equal(content, raw),
	}, nil
}

func (c *client) load(ctx context.Context, path string) (*tree.Node, []byte, codec.Codec, error) {
	cd, err := codec.ForPath(path)
	if err != nil {
		return nil, nil, nil, errors.NewReadError(path, err)
	}
	data, err := c.options.storage.ReadFile(ctx, path)
	if err != nil {
		return nil, nil, nil, errors.NewReadError(path, err)
	}
	n, err := cd.Decode(data)
	if err != nil {
		return nil, nil, nil, errors.NewReadError(path, err)
	}
	return n, data, cd, nil
}
