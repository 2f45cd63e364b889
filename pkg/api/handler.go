// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package api

import (
	"encoding/hex"
	"fmt"
	"net/http"

	cfg "github.com/dusk-network/dusk-bulletproofs/pkg/config"
	"github.com/dusk-network/dusk-bulletproofs/pkg/crypto/curve"
	"github.com/dusk-network/dusk-bulletproofs/pkg/crypto/rangeproof"
	"github.com/dusk-network/dusk-bulletproofs/pkg/database"
	"github.com/go-chi/render"
)

// maxBodySize caps request bodies. A verify request of the largest allowed
// batch of maximal proofs fits comfortably.
const maxBodySize = 1 << 20

// ProveRequest asks for a proof over Amounts. Blinds are hex encoded scalars;
// when omitted, random ones are drawn and returned.
type ProveRequest struct {
	Amounts []uint64 `json:"amounts"`
	Blinds  []string `json:"blinds,omitempty"`
}

// ProveResponse carries the hex encoded proof and, when stored, its ID.
type ProveResponse struct {
	ID     string   `json:"id,omitempty"`
	Proof  string   `json:"proof"`
	Blinds []string `json:"blinds"`
}

// VerifyRequest holds hex encoded proofs to verify as one batch.
type VerifyRequest struct {
	Proofs []string `json:"proofs"`
}

// VerifyResponse is the batch verdict.
type VerifyResponse struct {
	Valid   bool `json:"valid"`
	Amounts int  `json:"amounts"`
}

// Prove handles POST /bulletproof/prove.
func (s *Server) Prove(w http.ResponseWriter, r *http.Request) {
	var req ProveRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		badRequest(w, "Unmarshal request: %v", err)
		return
	}

	limit := cfg.Get().Prover.MaxRequestValues
	if len(req.Amounts) == 0 || len(req.Amounts) > limit {
		badRequest(w, "expected 1 to %d amounts, got %d", limit, len(req.Amounts))
		return
	}

	blinds, err := parseBlinds(req.Blinds, len(req.Amounts))
	if err != nil {
		badRequest(w, "blinds: %v", err)
		return
	}

	p, err := rangeproof.Prove(req.Amounts, blinds)
	if err != nil {
		badRequest(w, "prove: %v", err)
		return
	}

	bs, err := p.MarshalBinary()
	if err != nil {
		log.WithError(err).Error("could not encode proof")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	res := ProveResponse{Proof: hex.EncodeToString(bs)}
	for i := range blinds {
		res.Blinds = append(res.Blinds, blinds[i].String())
	}

	if s.store != nil {
		id, err := s.store.Put(p)
		if err != nil {
			log.WithError(err).Error("could not store proof")
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		res.ID = hex.EncodeToString(id)
	}

	log.WithField("amounts", len(req.Amounts)).WithField("id", res.ID).Debug("proof created")
	render.JSON(w, r, res)
}

// Verify handles POST /bulletproof/verify.
func (s *Server) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		badRequest(w, "Unmarshal request: %v", err)
		return
	}

	limit := cfg.Get().API.MaxBatch
	if len(req.Proofs) == 0 || len(req.Proofs) > limit {
		badRequest(w, "expected 1 to %d proofs, got %d", limit, len(req.Proofs))
		return
	}

	proofs := make([]*rangeproof.Proof, len(req.Proofs))
	for i, h := range req.Proofs {
		p, err := decodeProof(h)
		if err != nil {
			badRequest(w, "proof %d: %v", i, err)
			return
		}

		proofs[i] = p
	}

	res := VerifyResponse{
		Valid:   rangeproof.VerifyBatch(proofs),
		Amounts: rangeproof.NAmountsBatch(proofs),
	}

	render.JSON(w, r, res)
}

// GetProof handles GET /bulletproof/{id}.
func (s *Server) GetProof(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "no proof store configured", http.StatusNotFound)
		return
	}

	id, err := hex.DecodeString(r.URL.Query().Get(":id"))
	if err != nil || len(id) != 32 {
		badRequest(w, "invalid id")
		return
	}

	p, err := s.store.Get(id)
	if err == database.ErrNotFound {
		http.Error(w, "proof not found", http.StatusNotFound)
		return
	}

	if err != nil {
		log.WithError(err).Error("could not read proof")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	bs, err := p.MarshalBinary()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"id":      hex.EncodeToString(id),
		"proof":   hex.EncodeToString(bs),
		"amounts": rangeproof.NAmounts(p),
	})
}

func decodeProof(h string) (*rangeproof.Proof, error) {
	bs, err := hex.DecodeString(h)
	if err != nil {
		return nil, err
	}

	p := new(rangeproof.Proof)
	if err := p.UnmarshalBinary(bs); err != nil {
		return nil, err
	}

	return p, nil
}

func parseBlinds(blinds []string, n int) ([]curve.Key, error) {
	if len(blinds) == 0 {
		res := make([]curve.Key, n)
		for i := range res {
			s, err := curve.RandomScalar()
			if err != nil {
				return nil, err
			}
			res[i] = curve.ScalarKey(s)
		}
		return res, nil
	}

	if len(blinds) != n {
		return nil, fmt.Errorf("%d blinds for %d amounts", len(blinds), n)
	}

	res := make([]curve.Key, n)
	for i := range blinds {
		k, err := curve.KeyFromHex(blinds[i])
		if err != nil {
			return nil, err
		}

		if !k.IsReduced() {
			return nil, curve.ErrNonCanonicalScalar
		}

		res[i] = k
	}

	return res, nil
}

func badRequest(w http.ResponseWriter, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	log.Debug(msg)
	http.Error(w, msg, http.StatusBadRequest)
}
