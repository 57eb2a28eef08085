package domain

import (
	"fmt"
	"strings"
)

// Diagnosis enumerates classroom problem categories as they appear in the
// "Classroom Problem Types" report column.
type Diagnosis string

const (
	DiagnosisAudio          Diagnosis = "Audio"
	DiagnosisCables         Diagnosis = "Cables"
	DiagnosisComputer       Diagnosis = "Computer"
	DiagnosisDisplay        Diagnosis = "Display"
	DiagnosisDocumentCamera Diagnosis = "Document Camera"
	DiagnosisMicrophone     Diagnosis = "Microphone"
	DiagnosisNetwork        Diagnosis = "Network"
	DiagnosisProjector      Diagnosis = "Projector"
	DiagnosisTouchPanel     Diagnosis = "Touch Panel"
	DiagnosisOther          Diagnosis = "Other"
)

// DiagnosisDelimiter separates values in a multi-valued problem-types cell.
const DiagnosisDelimiter = ", "

var knownDiagnoses = map[string]Diagnosis{
	string(DiagnosisAudio):          DiagnosisAudio,
	string(DiagnosisCables):         DiagnosisCables,
	string(DiagnosisComputer):       DiagnosisComputer,
	string(DiagnosisDisplay):        DiagnosisDisplay,
	string(DiagnosisDocumentCamera): DiagnosisDocumentCamera,
	string(DiagnosisMicrophone):     DiagnosisMicrophone,
	string(DiagnosisNetwork):        DiagnosisNetwork,
	string(DiagnosisProjector):      DiagnosisProjector,
	string(DiagnosisTouchPanel):     DiagnosisTouchPanel,
	string(DiagnosisOther):          DiagnosisOther,
}

// ParseDiagnosis maps a raw token to its Diagnosis value.
func ParseDiagnosis(token string) (Diagnosis, error) {
	if d, ok := knownDiagnoses[token]; ok {
		return d, nil
	}
	return "", fmt.Errorf("unknown classroom problem type %q", token)
}

// ParseDiagnoses splits a multi-valued cell and maps every token. The first
// unrecognized token fails the whole cell.
func ParseDiagnoses(cell string) ([]Diagnosis, error) {
	if cell == "" {
		return nil, nil
	}
	tokens := strings.Split(cell, DiagnosisDelimiter)
	diagnoses := make([]Diagnosis, 0, len(tokens))
	for _, token := range tokens {
		d, err := ParseDiagnosis(token)
		if err != nil {
			return nil, err
		}
		diagnoses = append(diagnoses, d)
	}
	return diagnoses, nil
}

// JoinDiagnoses renders a diagnosis list back to its report cell form.
func JoinDiagnoses(diagnoses []Diagnosis) string {
	parts := make([]string, 0, len(diagnoses))
	for _, d := range diagnoses {
		parts = append(parts, string(d))
	}
	return strings.Join(parts, DiagnosisDelimiter)
}
