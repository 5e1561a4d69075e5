package progressgrp

import (
	"github.com/ardanlabs/learnchain/business/sys/validate"
	"github.com/ardanlabs/learnchain/foundation/ledger/database"
	"github.com/ardanlabs/learnchain/foundation/ledger/state"
)

// The operation fields are pointers so a missing key can be told apart
// from an empty value, which the ledger accepts.

type register struct {
	Username *string `json:"username" validate:"required"`
}

// Validate checks the data in the model is considered clean.
func (m register) Validate() error {
	return validate.Check(m)
}

type lesson struct {
	LessonID *string `json:"lessonId" validate:"required"`
}

// Validate checks the data in the model is considered clean.
func (m lesson) Validate() error {
	return validate.Check(m)
}

type step struct {
	StepID   *string `json:"stepId" validate:"required"`
	CourseID *string `json:"courseId" validate:"required"`
}

// Validate checks the data in the model is considered clean.
func (m step) Validate() error {
	return validate.Check(m)
}

type totalSteps struct {
	CourseID   *string `json:"courseId" validate:"required"`
	TotalSteps *uint64 `json:"totalSteps" validate:"required"`
}

// Validate checks the data in the model is considered clean.
func (m totalSteps) Validate() error {
	return validate.Check(m)
}

// =============================================================================

type receipt struct {
	Success bool `json:"success"`
	state.Receipt
}

type completed struct {
	IsCompleted bool `json:"isCompleted"`
}

type percentage struct {
	Percentage uint64 `json:"percentage,string"`
}

type owner struct {
	Owner database.Address `json:"owner"`
	Name  string           `json:"name"`
}

type entry struct {
	Number     uint64           `json:"number,string"`
	Hash       string           `json:"hash"`
	PrevHash   string           `json:"prevHash"`
	TimeStamp  uint64           `json:"timestamp,string"`
	Caller     database.Address `json:"caller"`
	CallerName string           `json:"callerName"`
	Op         database.Op      `json:"op"`
	Username   string           `json:"username,omitempty"`
	LessonID   string           `json:"lessonId,omitempty"`
	StepID     string           `json:"stepId,omitempty"`
	CourseID   string           `json:"courseId,omitempty"`
	TotalSteps uint64           `json:"totalSteps,omitempty,string"`
}
