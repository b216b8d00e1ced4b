package matching

import "time"

// RequirementLevel is the priority tier of a shift requirement
type RequirementLevel string

const (
	LevelMustHave  RequirementLevel = "must_have"
	LevelPreferred RequirementLevel = "preferred"
	LevelOptional  RequirementLevel = "optional"
)

// IsValid reports whether the level is one of the known tiers
func (l RequirementLevel) IsValid() bool {
	switch l {
	case LevelMustHave, LevelPreferred, LevelOptional:
		return true
	}
	return false
}

// RequirementType distinguishes certification requirements from training requirements
type RequirementType string

const (
	RequirementCertification RequirementType = "certification"
	RequirementTraining      RequirementType = "training"
)

// TrainingStatus is a worker's progress through a training course
type TrainingStatus string

const (
	TrainingCompleted  TrainingStatus = "completed"
	TrainingInProgress TrainingStatus = "in_progress"
	TrainingNotStarted TrainingStatus = "not_started"
)

// Requirement is a named certification or training a participant needs.
// Names are matched against worker records by exact, case-sensitive equality.
type Requirement struct {
	ID    string           `json:"requirement_id,omitempty" yaml:"id,omitempty"`
	Type  RequirementType  `json:"requirement_type,omitempty" yaml:"type,omitempty" validate:"omitempty,oneof=certification training"`
	Name  string           `json:"name" yaml:"name" validate:"required"`
	Level RequirementLevel `json:"level" yaml:"level" validate:"omitempty,oneof=must_have preferred optional"`
}

// level returns the requirement tier, treating an unset level as optional
func (r Requirement) level() RequirementLevel {
	if r.Level == "" {
		return LevelOptional
	}
	return r.Level
}

// appliesTo reports whether the requirement belongs in a list of the given type.
// Untyped requirements belong to whichever list they were supplied in.
func (r Requirement) appliesTo(t RequirementType) bool {
	return r.Type == "" || r.Type == t
}

// Certification held by a worker
type Certification struct {
	ID         string     `json:"certification_id,omitempty" yaml:"id,omitempty"`
	Name       string     `json:"name" yaml:"name" validate:"required"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty" yaml:"expiryDate,omitempty"`
	IsValid    bool       `json:"is_valid" yaml:"isValid"`
}

// heldAt reports whether the certification is valid and unexpired at the given time
func (c Certification) heldAt(at time.Time) bool {
	if !c.IsValid {
		return false
	}
	if c.ExpiryDate != nil && c.ExpiryDate.Before(at) {
		return false
	}
	return true
}

// Training record for a worker
type Training struct {
	ID            string         `json:"training_id,omitempty" yaml:"id,omitempty"`
	Name          string         `json:"name" yaml:"name" validate:"required"`
	CompletedDate *time.Time     `json:"completed_date,omitempty" yaml:"completedDate,omitempty"`
	Status        TrainingStatus `json:"status" yaml:"status" validate:"required,oneof=completed in_progress not_started"`
}

// Coordinate is a latitude/longitude pair in decimal degrees
type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" yaml:"lng" validate:"gte=-180,lte=180"`
}

// WorkerProfile describes a candidate worker. The ranking engine never mutates it.
type WorkerProfile struct {
	ID               string          `json:"worker_id" yaml:"id" validate:"required"`
	FullName         string          `json:"full_name" yaml:"fullName"`
	Certifications   []Certification `json:"certifications" yaml:"certifications" validate:"dive"`
	Trainings        []Training      `json:"trainings" yaml:"trainings" validate:"dive"`
	ExperienceHours  float64         `json:"experience_hours" yaml:"experienceHours" validate:"gte=0"`
	HourlyRate       float64         `json:"hourly_rate" yaml:"hourlyRate" validate:"gte=0"`
	Location         *Coordinate     `json:"location,omitempty" yaml:"location,omitempty"`
	Available        bool            `json:"available" yaml:"available"`
	Level            int             `json:"worker_level" yaml:"level" validate:"omitempty,min=1,max=4"`
	PreviousShiftEnd *time.Time      `json:"previous_shift_end,omitempty" yaml:"previousShiftEnd,omitempty"`
}

// ShiftRequirement describes the shift being filled and what the participant needs
type ShiftRequirement struct {
	ShiftID                string        `json:"shift_id" yaml:"shiftID" validate:"required"`
	ParticipantID          string        `json:"participant_id" yaml:"participantID"`
	ParticipantLocation    Coordinate    `json:"participant_location" yaml:"participantLocation"`
	RequiredCertifications []Requirement `json:"required_certifications" yaml:"requiredCertifications" validate:"dive"`
	RequiredTrainings      []Requirement `json:"required_trainings" yaml:"requiredTrainings" validate:"dive"`
	Start                  time.Time     `json:"shift_start" yaml:"start" validate:"required"`
	End                    time.Time     `json:"shift_end" yaml:"end" validate:"required,gtfield=Start"`
	BudgetLimit            *float64      `json:"budget_limit,omitempty" yaml:"budgetLimit,omitempty" validate:"omitempty,gt=0"`
}

// DurationHours returns the shift length in hours
func (s ShiftRequirement) DurationHours() float64 {
	return s.End.Sub(s.Start).Hours()
}

// MatchResult is the scored outcome for one worker
type MatchResult struct {
	WorkerID   string  `json:"worker_id"`
	FullName   string  `json:"full_name"`
	TotalScore float64 `json:"total_score"`

	// Rank is 1-based among ranked workers, 0 for excluded workers appended unranked
	Rank int `json:"rank"`

	CertificationScore float64 `json:"certification_score"`
	TrainingScore      float64 `json:"training_score"`
	ExperienceScore    float64 `json:"experience_score"`
	DistanceScore      float64 `json:"distance_score"`
	CostScore          float64 `json:"cost_score"`

	HourlyRate float64 `json:"hourly_rate"`

	// DistanceKm is nil when the worker has no location
	DistanceKm *float64 `json:"estimated_distance_km,omitempty"`

	Warnings        []string `json:"compliance_warnings"`
	Errors          []string `json:"compliance_errors"`
	Excluded        bool     `json:"is_excluded"`
	ExclusionReason string   `json:"exclusion_reason,omitempty"`
}

// RankingResult is the outcome of ranking a worker list against a shift
type RankingResult struct {
	ShiftID         string        `json:"shift_id"`
	TotalCandidates int           `json:"total_candidates"`
	EligibleWorkers int           `json:"eligible_workers"`
	Matches         []MatchResult `json:"ranked_matches"`
	Weights         Weights       `json:"weights"`
	MaxDistanceKm   float64       `json:"max_distance_km"`
}
