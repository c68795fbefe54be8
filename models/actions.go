// models/actions.go
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ActionKind 回合动作类型
type ActionKind string

const (
	ActionSendEmployeeForTraining ActionKind = "SendEmployeeForTraining"
	ActionParticipateInProject    ActionKind = "ParticipateInProject"
	ActionEnrollEmployee          ActionKind = "EnrollEmployee"
	ActionFireAnEmployee          ActionKind = "FireAnEmployee"
	ActionConfirmRound            ActionKind = "ConfirmRound"
)

var (
	// ErrInvalidActionKind is returned when the kind tag is not one of the
	// known action kinds.
	ErrInvalidActionKind = errors.New("invalid action kind")
	// ErrPayloadMismatch is returned when the payload blob does not match the
	// shape the kind requires.
	ErrPayloadMismatch = errors.New("action payload mismatch")
)

// TrainingPayload References the employee to send for training.
type TrainingPayload struct {
	EmployeeID uint `json:"employee_id"`
}

// ProjectPayload references the project to participate in.
type ProjectPayload struct {
	ProjectID uint `json:"project_id"`
}

// FirePayload references the employee to fire.
type FirePayload struct {
	EmployeeID uint `json:"employee_id"`
}

// RoundAction is one typed intent submitted by one player within a round.
// Kind selects which reference field carries the payload; EnrollEmployee and
// ConfirmRound carry none.
type RoundAction struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	RoundID    uint       `gorm:"index;not null" json:"round_id"`
	PlayerID   uint       `gorm:"index;not null" json:"player_id"`
	Kind       ActionKind `gorm:"not null" json:"kind"`
	EmployeeID uint       `json:"employee_id,omitempty"`
	ProjectID  uint       `json:"project_id,omitempty"`
}

// DecodeAction is the validation boundary between wire input and the
// orchestrator. Given an action-kind tag, the acting player and an untyped
// payload blob it produces a concrete typed action, or fails with
// ErrInvalidActionKind / ErrPayloadMismatch. It has no other state.
func DecodeAction(kind ActionKind, playerID uint, raw []byte) (RoundAction, error) {
	action := RoundAction{PlayerID: playerID, Kind: kind}

	switch kind {
	case ActionSendEmployeeForTraining:
		var p TrainingPayload
		if err := strictUnmarshal(raw, &p); err != nil {
			return RoundAction{}, err
		}
		if p.EmployeeID == 0 {
			return RoundAction{}, fmt.Errorf("%w: %s requires employee_id", ErrPayloadMismatch, kind)
		}
		action.EmployeeID = p.EmployeeID

	case ActionFireAnEmployee:
		var p FirePayload
		if err := strictUnmarshal(raw, &p); err != nil {
			return RoundAction{}, err
		}
		if p.EmployeeID == 0 {
			return RoundAction{}, fmt.Errorf("%w: %s requires employee_id", ErrPayloadMismatch, kind)
		}
		action.EmployeeID = p.EmployeeID

	case ActionParticipateInProject:
		var p ProjectPayload
		if err := strictUnmarshal(raw, &p); err != nil {
			return RoundAction{}, err
		}
		if p.ProjectID == 0 {
			return RoundAction{}, fmt.Errorf("%w: %s requires project_id", ErrPayloadMismatch, kind)
		}
		action.ProjectID = p.ProjectID

	case ActionEnrollEmployee, ActionConfirmRound:
		// No payload. An empty object or nothing at all is accepted,
		// anything carrying fields is not.
		var p struct{}
		if err := strictUnmarshal(raw, &p); err != nil {
			return RoundAction{}, err
		}

	default:
		return RoundAction{}, fmt.Errorf("%w: %q", ErrInvalidActionKind, kind)
	}

	return action, nil
}

// strictUnmarshal rejects unknown fields so a payload for the wrong kind
// cannot silently decode into the zero value of another.
func strictUnmarshal(raw []byte, v interface{}) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = []byte("{}")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrPayloadMismatch, err)
	}
	return nil
}
