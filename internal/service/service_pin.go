// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/guardian-alarm/internal/config"
	"github.com/MKhiriev/guardian-alarm/internal/logger"
	"github.com/MKhiriev/guardian-alarm/internal/store"
	"github.com/MKhiriev/guardian-alarm/internal/utils"
	"github.com/MKhiriev/guardian-alarm/internal/validators"
	"github.com/MKhiriev/guardian-alarm/models"
)

// pinService is the concrete implementation of PinService. The deployment
// holds exactly one guardian PIN, stored as a salted PBKDF2-SHA256 digest;
// the plaintext is discarded right after hashing.
type pinService struct {
	pinRepository store.PinRepository

	gate      *accessGate
	validator validators.Validator
	grants    *verifyGrants

	// kdfIterations is the PBKDF2 iteration count used when deriving
	// digests. It must stay constant for the lifetime of a stored PIN.
	kdfIterations int

	// mu serializes set against verify so a verify never observes a
	// half-written digest/salt pair.
	mu sync.Mutex

	logger *logger.Logger
}

// NewPinService constructs a PinService wired to the given repository. A
// zero iteration count in cfg falls back to the package default.
func NewPinService(pinRepository store.PinRepository, cfg config.App, gate *accessGate, grants *verifyGrants, logger *logger.Logger) PinService {
	iterations := cfg.PinKDFIterations
	if iterations <= 0 {
		iterations = utils.DefaultPinKDFIterations
	}

	return &pinService{
		pinRepository: pinRepository,
		gate:          gate,
		validator:     validators.NewInputValidator(),
		grants:        grants,
		kdfIterations: iterations,
		logger:        logger,
	}
}

// SetGuardianPin derives a fresh salt and digest for pin and overwrites any
// prior PIN in a single upsert, so the vault never holds zero or two PINs.
// Admin only.
func (p *pinService) SetGuardianPin(ctx context.Context, caller, pin string) error {
	log := logger.FromContext(ctx)

	if err := p.gate.Authorize(ctx, caller, OpSetPin); err != nil {
		return err
	}

	if err := p.validator.Validate(ctx, validators.Pin(pin)); err != nil {
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	salt, err := utils.NewPinSalt()
	if err != nil {
		log.Err(err).Msg("pin salt generation failed")
		return fmt.Errorf("pin salt generation failed: %w", err)
	}

	stored := models.GuardianPin{
		Hash: utils.DerivePinHash(pin, salt, p.kdfIterations),
		Salt: salt,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.pinRepository.SetPin(ctx, stored); err != nil {
		log.Err(err).Msg("pin upsert failed")
		return fmt.Errorf("pin upsert failed: %w", err)
	}

	return nil
}

// VerifyGuardianPin compares a candidate against the stored digest in
// constant time. It returns false both on mismatch and when no PIN was ever
// set, without distinguishing the two, so the response never leaks vault
// configuration state.
//
// A successful verification records a one-shot acknowledge grant for the
// caller; a failed one clears any grant the caller held.
func (p *pinService) VerifyGuardianPin(ctx context.Context, caller, pin string) (bool, error) {
	log := logger.FromContext(ctx)

	if err := p.gate.Authorize(ctx, caller, OpVerifyPin); err != nil {
		return false, err
	}

	p.mu.Lock()
	stored, err := p.pinRepository.GetPin(ctx)
	p.mu.Unlock()

	if err != nil {
		if errors.Is(err, store.ErrPinNotSet) {
			p.grants.Revoke(caller)
			return false, nil
		}
		log.Err(err).Msg("pin lookup failed")
		return false, fmt.Errorf("pin lookup failed: %w", err)
	}

	candidate := utils.DerivePinHash(pin, stored.Salt, p.kdfIterations)
	if !utils.ComparePinHash(stored.Hash, candidate) {
		p.grants.Revoke(caller)
		return false, nil
	}

	p.grants.Grant(caller)
	return true, nil
}
