package model

import "time"

// ParticipantRole classifies a meeting participant's decision influence.
type ParticipantRole string

const (
	RoleDecisionMaker ParticipantRole = "decision_maker"
	RoleChampion      ParticipantRole = "champion"
	RoleInfluencer    ParticipantRole = "influencer"
	RoleEndUser       ParticipantRole = "end_user"
	RoleBlocker       ParticipantRole = "blocker"
)

// Participant is a person present in a customer meeting.
type Participant struct {
	Name  string          `json:"name"`
	Title string          `json:"title"`
	Email string          `json:"email,omitempty"`
	Role  ParticipantRole `json:"role,omitempty"` // free text when not one of the known roles
}

// Meeting is a single recorded customer conversation.
type Meeting struct {
	Date         time.Time     `json:"date"`
	Participants []Participant `json:"participants"`
	Transcript   string        `json:"transcript"`
	Duration     int           `json:"duration_minutes"`
	Topics       []string      `json:"topics"`
}

// EmailRecord is one email exchanged with the customer.
type EmailRecord struct {
	Date    time.Time `json:"date"`
	From    string    `json:"from"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
}

// TicketRecord is one support ticket filed by the customer.
type TicketRecord struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
}

// ProductUsage summarizes telemetry for the customer's account.
type ProductUsage struct {
	TotalSessions      int       `json:"total_sessions"`
	AvgSessionDuration float64   `json:"avg_session_duration"`
	FeaturesUsed       []string  `json:"features_used"`
	LastActivity       time.Time `json:"last_activity"`
}

// CRMData is the current CRM state for the account, fetched upstream.
type CRMData struct {
	AccountID   string  `json:"account_id"`
	Stage       string  `json:"stage"`
	Value       float64 `json:"value"`
	Probability float64 `json:"probability"`
}

// CustomerData is the full raw input bundle for one company. CompanyName is
// the only field guaranteed non-empty; every collection may be empty.
type CustomerData struct {
	CompanyName    string         `json:"company_name"`
	Meetings       []Meeting      `json:"meetings"`
	Emails         []EmailRecord  `json:"emails"`
	SupportTickets []TicketRecord `json:"support_tickets"`
	ProductUsage   ProductUsage   `json:"product_usage"`
	CRMData        CRMData        `json:"crm_data"`
}

// Participants returns every participant referenced across the customer's
// meetings, in meeting order.
func (c CustomerData) Participants() []Participant {
	var out []Participant
	for _, m := range c.Meetings {
		out = append(out, m.Participants...)
	}
	return out
}
