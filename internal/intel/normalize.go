package intel

import "github.com/sells-group/intel-engine/internal/model"

// NormalizeCustomerData returns a copy of data in which every nil collection
// is replaced with an empty one, so downstream stages can iterate
// unconditionally. The caller's value is never mutated. Absence of data is a
// valid, expected case and produces no error.
func NormalizeCustomerData(data model.CustomerData) model.CustomerData {
	out := data

	if out.Meetings == nil {
		out.Meetings = []model.Meeting{}
	} else {
		meetings := make([]model.Meeting, len(out.Meetings))
		copy(meetings, out.Meetings)
		for i := range meetings {
			if meetings[i].Participants == nil {
				meetings[i].Participants = []model.Participant{}
			}
			if meetings[i].Topics == nil {
				meetings[i].Topics = []string{}
			}
		}
		out.Meetings = meetings
	}

	if out.Emails == nil {
		out.Emails = []model.EmailRecord{}
	}
	if out.SupportTickets == nil {
		out.SupportTickets = []model.TicketRecord{}
	}
	if out.ProductUsage.FeaturesUsed == nil {
		out.ProductUsage.FeaturesUsed = []string{}
	}

	return out
}
