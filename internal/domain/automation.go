package domain

// AutomationType enumerates the remediations the VIP pipeline can perform.
type AutomationType string

const (
	AutomationPasswordReset   AutomationType = "password_reset"
	AutomationAccountCreation AutomationType = "account_creation"
	AutomationAccountDisable  AutomationType = "account_disable"
)

// Extracted field keys produced by the field extractor.
const (
	FieldUsername     = "username"
	FieldDomain       = "domain"
	FieldEmployeeName = "employee_name"
	FieldDepartment   = "department"
	FieldEmail        = "email"
	FieldReason       = "reason"
)

// AutomationRule gates one automation type behind a keyword set and a
// minimum urgency. Keywords are matched in declared order.
type AutomationRule struct {
	Type              AutomationType
	Keywords          []string
	AutoResolve       bool
	PriorityThreshold TicketPriority
}

// AutomationDecision is a full rule match ready for execution.
type AutomationDecision struct {
	Type       AutomationType
	Rule       AutomationRule
	Confidence float64
	Fields     map[string]string
}
