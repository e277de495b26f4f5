package idgen

import (
	"github.com/google/uuid"
)

// ID prefixes for different models
const (
	PrefixAnimal      = "anm_"
	PrefixKennel      = "ken_"
	PrefixTask        = "tsk_"
	PrefixFeedingPlan = "fpl_"
	PrefixReservation = "res_"
	PrefixMedical     = "med_"
	PrefixUser        = "usr_"
	PrefixOrg         = "org_"
)

// NewAnimal generates a new animal ID with anm_ prefix
func NewAnimal() string {
	return PrefixAnimal + uuid.New().String()
}

// NewKennel generates a new kennel ID with ken_ prefix
func NewKennel() string {
	return PrefixKennel + uuid.New().String()
}

// NewTask generates a new task ID with tsk_ prefix
func NewTask() string {
	return PrefixTask + uuid.New().String()
}

// NewFeedingPlan generates a new feeding plan ID with fpl_ prefix
func NewFeedingPlan() string {
	return PrefixFeedingPlan + uuid.New().String()
}

// NewReservation generates a new hotel reservation ID with res_ prefix
func NewReservation() string {
	return PrefixReservation + uuid.New().String()
}

// NewMedicalRecord generates a new medical record ID with med_ prefix
func NewMedicalRecord() string {
	return PrefixMedical + uuid.New().String()
}

// New generates a generic UUID without prefix (for internal use only)
func New() string {
	return uuid.New().String()
}
