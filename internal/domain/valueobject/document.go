package valueobject

// DocumentKind names one of the document slots on a loan request.
type DocumentKind string

const (
	DocumentProfilePhoto DocumentKind = "profilePhoto"
	DocumentCNICFront    DocumentKind = "cnicFront"
	DocumentCNICBack     DocumentKind = "cnicBack"
	DocumentSalarySheet  DocumentKind = "salarySheet"
	DocumentStatement    DocumentKind = "statement"
)

// UploadableDocuments are the slots an applicant fills by upload, in form order.
var UploadableDocuments = []DocumentKind{
	DocumentProfilePhoto,
	DocumentCNICFront,
	DocumentCNICBack,
}

// Documents holds the stored reference path for each slot. Empty means absent.
type Documents struct {
	ProfilePhoto string
	CNICFront    string
	CNICBack     string
	SalarySheet  string
	Statement    string
}

// DocumentUpdate is a partial update with one optional slot per kind.
// Nil slots leave the current reference untouched.
type DocumentUpdate struct {
	ProfilePhoto *string
	CNICFront    *string
	CNICBack     *string
	SalarySheet  *string
	Statement    *string
}

// Set fills the slot for kind. Unknown kinds are reported as false.
func (u *DocumentUpdate) Set(kind DocumentKind, ref string) bool {
	switch kind {
	case DocumentProfilePhoto:
		u.ProfilePhoto = &ref
	case DocumentCNICFront:
		u.CNICFront = &ref
	case DocumentCNICBack:
		u.CNICBack = &ref
	case DocumentSalarySheet:
		u.SalarySheet = &ref
	case DocumentStatement:
		u.Statement = &ref
	default:
		return false
	}
	return true
}

// IsEmpty reports whether the update carries no slot at all.
func (u DocumentUpdate) IsEmpty() bool {
	return u.ProfilePhoto == nil && u.CNICFront == nil && u.CNICBack == nil &&
		u.SalarySheet == nil && u.Statement == nil
}

// Apply returns d with every provided slot replaced.
func (d Documents) Apply(u DocumentUpdate) Documents {
	next := d
	if u.ProfilePhoto != nil {
		next.ProfilePhoto = *u.ProfilePhoto
	}
	if u.CNICFront != nil {
		next.CNICFront = *u.CNICFront
	}
	if u.CNICBack != nil {
		next.CNICBack = *u.CNICBack
	}
	if u.SalarySheet != nil {
		next.SalarySheet = *u.SalarySheet
	}
	if u.Statement != nil {
		next.Statement = *u.Statement
	}
	return next
}
