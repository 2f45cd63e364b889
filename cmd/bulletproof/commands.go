// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"filippo.io/edwards25519"
	"github.com/dusk-network/dusk-bulletproofs/pkg/api"
	cfg "github.com/dusk-network/dusk-bulletproofs/pkg/config"
	"github.com/dusk-network/dusk-bulletproofs/pkg/crypto/curve"
	"github.com/dusk-network/dusk-bulletproofs/pkg/crypto/rangeproof"
	"github.com/dusk-network/dusk-bulletproofs/pkg/crypto/rangeproof/multiexp"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

// ErrProofRejected is returned by verify when the batch does not verify.
var ErrProofRejected = errors.New("range proof rejected")

func proveAction(ctx *cli.Context) error {
	amounts, err := parseAmounts(ctx.StringSlice(AmountFlag.Name))
	if err != nil {
		return err
	}

	blinds, err := parseBlinds(ctx.StringSlice(BlindFlag.Name), len(amounts))
	if err != nil {
		return err
	}

	p, err := rangeproof.Prove(amounts, blinds)
	if err != nil {
		return err
	}

	bs, err := p.MarshalBinary()
	if err != nil {
		return err
	}

	w := ctx.App.Writer
	_, _ = fmt.Fprintf(w, "proof: %x\n", bs)

	if ctx.Bool(StoreFlag.Name) {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer func() {
			_ = store.Close()
		}()

		id, err := store.Put(p)
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintf(w, "id: %x\n", id)
	}

	commits, err := p.Commitments()
	if err != nil {
		return err
	}

	for i := range commits {
		_, _ = fmt.Fprintf(w, "commitment[%d]: %s\n", i, curve.PointKey(commits[i]))
		_, _ = fmt.Fprintf(w, "blind[%d]: %s\n", i, blinds[i])
	}

	return nil
}

func verifyAction(ctx *cli.Context) error {
	proofs, err := loadProofs(ctx)
	if err != nil {
		return err
	}

	if len(proofs) == 0 {
		return errors.New("nothing to verify")
	}

	valid := rangeproof.VerifyBatch(proofs)
	_, _ = fmt.Fprintf(ctx.App.Writer, "valid: %t\namounts: %d\n", valid, rangeproof.NAmountsBatch(proofs))

	if !valid {
		return ErrProofRejected
	}

	return nil
}

func inspectAction(ctx *cli.Context) error {
	proofs, err := loadProofs(ctx)
	if err != nil {
		return err
	}

	if len(proofs) != 1 {
		return errors.Errorf("expected one proof, got %d", len(proofs))
	}

	printProof(ctx.App.Writer, proofs[0])
	return nil
}

func listAction(ctx *cli.Context) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	ids, err := store.List()
	if err != nil {
		return err
	}

	for _, id := range ids {
		_, _ = fmt.Fprintf(ctx.App.Writer, "%x\n", id)
	}

	return nil
}

func benchAction(ctx *cli.Context) error {
	n := ctx.Int(TermsFlag.Name)
	rounds := ctx.Int(RoundsFlag.Name)
	if n < 1 || rounds < 1 {
		return errors.New("terms and rounds must be positive")
	}

	terms, err := benchTerms(n)
	if err != nil {
		return err
	}

	algorithms := []struct {
		name string
		run  func([]multiexp.Term) (*edwards25519.Point, error)
	}{
		{"bos-coster", multiexp.BosCosterRobust},
		{"straus", func(t []multiexp.Term) (*edwards25519.Point, error) { return multiexp.Straus(t, nil, 0) }},
		{"pippenger", func(t []multiexp.Term) (*edwards25519.Point, error) { return multiexp.Pippenger(t, nil, 0) }},
	}

	tw := tabwriter.NewWriter(ctx.App.Writer, 0, 8, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "algorithm\tterms\tper run\n")

	var first *edwards25519.Point
	for _, a := range algorithms {
		start := time.Now()

		var res *edwards25519.Point
		for i := 0; i < rounds; i++ {
			if res, err = a.run(terms); err != nil {
				return errors.Wrap(err, a.name)
			}
		}

		elapsed := time.Since(start) / time.Duration(rounds)

		if first == nil {
			first = res
		} else if first.Equal(res) != 1 {
			return errors.Errorf("%s disagrees with %s", a.name, algorithms[0].name)
		}

		_, _ = fmt.Fprintf(tw, "%s\t%d\t%v\n", a.name, n, elapsed)
	}

	return tw.Flush()
}

func serveAction(ctx *cli.Context) error {
	c := cfg.Get().API
	if !c.Enabled {
		return errors.New("api is disabled in the configuration")
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	srv, err := api.NewHTTPServer(store)
	if err != nil {
		return err
	}

	return srv.Start()
}

// loadProofs collects the proofs given as hex arguments and the stored proofs
// named by --id.
func loadProofs(ctx *cli.Context) ([]*rangeproof.Proof, error) {
	var proofs []*rangeproof.Proof
	for i, h := range ctx.Args() {
		bs, err := hex.DecodeString(h)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %d", i)
		}

		p := new(rangeproof.Proof)
		if err := p.UnmarshalBinary(bs); err != nil {
			return nil, errors.Wrapf(err, "argument %d", i)
		}

		proofs = append(proofs, p)
	}

	ids := ctx.StringSlice(IDFlag.Name)
	if len(ids) == 0 {
		return proofs, nil
	}

	store, err := openStore()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = store.Close()
	}()

	for _, h := range ids {
		id, err := hex.DecodeString(h)
		if err != nil {
			return nil, errors.Wrapf(err, "id %s", h)
		}

		p, err := store.Get(id)
		if err != nil {
			return nil, errors.Wrapf(err, "id %s", h)
		}

		proofs = append(proofs, p)
	}

	return proofs, nil
}

func parseAmounts(args []string) ([]uint64, error) {
	if len(args) == 0 {
		return nil, errors.New("at least one --amount is required")
	}

	if limit := cfg.Get().Prover.MaxRequestValues; len(args) > limit {
		return nil, errors.Errorf("at most %d amounts per proof", limit)
	}

	amounts := make([]uint64, len(args))
	for i, a := range args {
		v, err := strconv.ParseUint(a, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "amount %d", i)
		}

		amounts[i] = v
	}

	return amounts, nil
}

func parseBlinds(args []string, n int) ([]curve.Key, error) {
	blinds := make([]curve.Key, n)
	if len(args) == 0 {
		for i := range blinds {
			s, err := curve.RandomScalar()
			if err != nil {
				return nil, err
			}

			blinds[i] = curve.ScalarKey(s)
		}

		return blinds, nil
	}

	if len(args) != n {
		return nil, errors.Errorf("%d blinds for %d amounts", len(args), n)
	}

	for i, a := range args {
		k, err := curve.KeyFromHex(a)
		if err != nil {
			return nil, errors.Wrapf(err, "blind %d", i)
		}

		blinds[i] = k
	}

	return blinds, nil
}

func benchTerms(n int) ([]multiexp.Term, error) {
	scalars, err := curve.RandomScalars(2 * n)
	if err != nil {
		return nil, err
	}

	terms := make([]multiexp.Term, n)
	for i := range terms {
		terms[i] = multiexp.Term{
			Scalar: scalars[i],
			Point:  new(edwards25519.Point).ScalarBaseMult(scalars[n+i]),
		}
	}

	return terms, nil
}

func printProof(w io.Writer, p *rangeproof.Proof) {
	keys := func(name string, ks []curve.Key) {
		for i := range ks {
			_, _ = fmt.Fprintf(w, "%s[%d]: %s\n", name, i, ks[i])
		}
	}

	_, _ = fmt.Fprintf(w, "rounds: %d\n", p.Rounds())
	_, _ = fmt.Fprintf(w, "amounts: %d\n", rangeproof.NAmounts(p))
	_, _ = fmt.Fprintf(w, "max amounts: %d\n", rangeproof.NMaxAmounts(p))
	keys("V", p.V)

	for _, f := range []struct {
		name string
		k    curve.Key
	}{
		{"A", p.A}, {"S", p.S}, {"T1", p.T1}, {"T2", p.T2},
		{"taux", p.Taux}, {"mu", p.Mu},
	} {
		_, _ = fmt.Fprintf(w, "%s: %s\n", f.name, f.k)
	}

	keys("L", p.L)
	keys("R", p.R)
	_, _ = fmt.Fprintf(w, "a: %s\nb: %s\nt: %s\n", p.Ap, p.Bp, p.T)
}
