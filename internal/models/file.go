package models

import "io"

// DocumentRole tags which side of the comparison a file belongs to. The
// values are sent verbatim as the backend's docType form field.
type DocumentRole string

const (
	RoleRFP      DocumentRole = "RFP"
	RoleProposal DocumentRole = "Proposal"
)

// CandidateFile is one user-selected document pending upload. It is created
// on selection and replaced wholesale on re-selection, never mutated.
type CandidateFile struct {
	Name    string
	Size    int64
	Content io.Reader
}
