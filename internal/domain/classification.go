package domain

// ClassificationKind tags the outcome of the keyword phase.
type ClassificationKind string

const (
	// ClassSpecialty routes to a single named technician.
	ClassSpecialty ClassificationKind = "specialty"
	// ClassRotation routes to the least-loaded of an ordered technician list.
	ClassRotation ClassificationKind = "rotation"
	// ClassMention never assigns; the technician is only referenced in notes.
	ClassMention ClassificationKind = "mention"
	// ClassGeneral means no keyword group matched.
	ClassGeneral ClassificationKind = "general"
)

// Classification is the tagged result of matching ticket text against the
// assignment rule table. Exactly one of TechEmail / TechEmails is set for
// specialty-or-mention / rotation results.
type Classification struct {
	Kind       ClassificationKind
	TechEmail  string
	TechEmails []string
}

// General is the zero-match classification.
func General() Classification {
	return Classification{Kind: ClassGeneral}
}

// Specialty routes the ticket to one technician.
func Specialty(email string) Classification {
	return Classification{Kind: ClassSpecialty, TechEmail: email}
}

// Rotation routes the ticket to the least-loaded of the listed technicians.
func Rotation(emails []string) Classification {
	return Classification{Kind: ClassRotation, TechEmails: emails}
}

// Mention flags the ticket for a note reference without assignment.
func Mention(email string) Classification {
	return Classification{Kind: ClassMention, TechEmail: email}
}
