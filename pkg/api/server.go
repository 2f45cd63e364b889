// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

// Package api serves range proof generation, verification and lookup over
// HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	cfg "github.com/dusk-network/dusk-bulletproofs/pkg/config"
	"github.com/dusk-network/dusk-bulletproofs/pkg/crypto/rangeproof"
	"github.com/dusk-network/dusk-bulletproofs/pkg/crypto/rangeproof/generators"
	"github.com/pkg/errors"

	"github.com/etherlabsio/healthcheck"
	"github.com/facebookgo/grace/gracehttp"
	"github.com/gorilla/pat"
	"golang.org/x/time/rate"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("package", "api")

// ProofStore is the part of database.ProofStore the API needs.
type ProofStore interface {
	Put(p *rangeproof.Proof) ([]byte, error)
	Get(id []byte) (*rangeproof.Proof, error)
	Has(id []byte) (bool, error)
}

// Server defines the HTTP server of the API
type Server struct {
	// store is optional. Without it proofs are not persisted.
	store   ProofStore
	limiter *rate.Limiter

	Server *http.Server
}

// NewHTTPServer return pointer to new created server object
func NewHTTPServer(store ProofStore) (*Server, error) {
	c := cfg.Get().API
	if c.RateLimit <= 0 || c.Burst <= 0 {
		return nil, errors.Errorf("invalid rate limit %v with burst %d", c.RateLimit, c.Burst)
	}

	srv := Server{
		store:   store,
		limiter: rate.NewLimiter(rate.Limit(c.RateLimit), c.Burst),
	}

	srv.Server = &http.Server{
		Addr:              c.Address,
		Handler:           srv.InitRouting(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &srv, nil
}

// Start will start and and listen the *http.Server
func (s *Server) Start() error {
	log.WithField("address", s.Server.Addr).Info("Starting API server")

	//enable graceful shutdown
	return gracehttp.Serve(s.Server)
}

// InitRouting registers every route.
func (s *Server) InitRouting() *pat.Router {
	r := pat.New()

	r.Handle("/healthcheck", healthcheck.Handler(
		// WithTimeout allows you to set a max overall timeout.
		healthcheck.WithTimeout(5*time.Second),

		healthcheck.WithChecker(
			"generators", healthcheck.CheckerFunc(
				func(ctx context.Context) error {
					if _, err := generators.Get().Gi(0); err != nil {
						return err
					}
					return nil
				},
			),
		),

		healthcheck.WithChecker(
			"store", healthcheck.CheckerFunc(
				func(ctx context.Context) error {
					if s.store == nil {
						return nil
					}
					_, err := s.store.Has(make([]byte, 32))
					return err
				},
			),
		),
	))

	r.Post("/bulletproof/prove", s.limit(s.Prove))
	r.Post("/bulletproof/verify", s.limit(s.Verify))
	r.Get("/bulletproof/{id}", s.GetProof)

	return r
}

// limit rejects requests above the configured rate.
func (s *Server) limit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next(w, r)
	}
}
