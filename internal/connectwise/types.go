package connectwise

// Wire shapes for the ConnectWise Manage REST API (v4_6_release, 3.0).
// Only the fields the pipelines consume are mapped.

type nameRef struct {
	Name string `json:"name"`
}

type idRef struct {
	ID int `json:"id"`
}

type wireTicket struct {
	ID                 int     `json:"id"`
	Summary            string  `json:"summary"`
	InitialDescription string  `json:"initialDescription"`
	Priority           nameRef `json:"priority"`
	Board              nameRef `json:"board"`
	Company            nameRef `json:"company"`
	Status             nameRef `json:"status"`
	Owner              *idRef  `json:"owner"`
}

type wireMember struct {
	ID           int    `json:"id"`
	EmailAddress string `json:"emailAddress"`
	FullName     string `json:"fullName"`
}

type wireNote struct {
	Text                  string `json:"text"`
	DetailDescriptionFlag bool   `json:"detailDescriptionFlag"`
	InternalAnalysisFlag  bool   `json:"internalAnalysisFlag"`
	ResolutionFlag        bool   `json:"resolutionFlag"`
	CustomerUpdatedFlag   bool   `json:"customerUpdatedFlag"`
}

type ownerPatch struct {
	Owner idRef `json:"owner"`
}

type statusPatch struct {
	Status nameRef `json:"status"`
}
