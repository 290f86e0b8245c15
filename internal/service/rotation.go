// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"
	"sync"
)

// RotationState is a step of the interactive key rotation flow.
type RotationState int

const (
	// RotationStable means no rotation has been requested.
	RotationStable RotationState = iota

	// RotationConfirming means the user asked to rotate and must confirm
	// that every existing item will become unreadable.
	RotationConfirming

	// RotationRotated means the key was replaced. Terminal.
	RotationRotated
)

func (s RotationState) String() string {
	switch s {
	case RotationStable:
		return "stable"
	case RotationConfirming:
		return "confirming"
	case RotationRotated:
		return "rotated"
	default:
		return fmt.Sprintf("RotationState(%d)", int(s))
	}
}

// Rotation guards the destructive key rotation behind an explicit
// confirmation step:
//
//	Stable --Begin--> Confirming --Confirm--> Rotated
//	                  Confirming --Abort----> Stable
//
// Any other step returns [ErrInvalidRotationTransition]. The zero value is
// ready to use.
type Rotation struct {
	mu    sync.Mutex
	state RotationState
}

// State returns the current step.
func (r *Rotation) State() RotationState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Begin moves Stable to Confirming.
func (r *Rotation) Begin() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != RotationStable {
		return fmt.Errorf("%w: begin from %s", ErrInvalidRotationTransition, r.state)
	}
	r.state = RotationConfirming
	return nil
}

// Abort moves Confirming back to Stable.
func (r *Rotation) Abort() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != RotationConfirming {
		return fmt.Errorf("%w: abort from %s", ErrInvalidRotationTransition, r.state)
	}
	r.state = RotationStable
	return nil
}

// Confirm runs rotate and, if it succeeds, moves Confirming to Rotated.
// When rotate fails the state stays Confirming so the user can retry or
// abort.
func (r *Rotation) Confirm(rotate func() error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != RotationConfirming {
		return fmt.Errorf("%w: confirm from %s", ErrInvalidRotationTransition, r.state)
	}
	if err := rotate(); err != nil {
		return err
	}
	r.state = RotationRotated
	return nil
}
