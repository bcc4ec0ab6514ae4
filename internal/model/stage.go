package model

// ClinicalStage is the dementia stage vocabulary used in clinical records
type ClinicalStage string

const (
	ClinicalMild     ClinicalStage = "mild"
	ClinicalModerate ClinicalStage = "moderate"
	ClinicalSevere   ClinicalStage = "severe"
)

// TrainingStage is the dementia stage vocabulary used for caregiver
// training guidance. It is deliberately distinct from ClinicalStage:
// clinical records say mild/moderate/severe, training content is written
// in terms of early/moderate/late.
type TrainingStage string

const (
	StageEarly    TrainingStage = "early"
	StageModerate TrainingStage = "moderate"
	StageLate     TrainingStage = "late"
)

// TrainingStageForClinical maps a clinical stage onto the training
// vocabulary. Unknown values default to moderate, matching the original
// behavior when no stage is recorded.
func TrainingStageForClinical(stage ClinicalStage) TrainingStage {
	switch stage {
	case ClinicalMild:
		return StageEarly
	case ClinicalSevere:
		return StageLate
	default:
		return StageModerate
	}
}

// ParseTrainingStage normalizes a user-supplied stage string. Anything
// unrecognized falls back to moderate rather than failing.
func ParseTrainingStage(s string) TrainingStage {
	switch TrainingStage(s) {
	case StageEarly, StageModerate, StageLate:
		return TrainingStage(s)
	}
	return StageModerate
}
