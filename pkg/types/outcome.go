package types

// Status is the terminal state of one processed child ticket.
type Status string

const (
	StatusCompleted         Status = "completed"
	StatusNoData            Status = "no_data"
	StatusMalformed         Status = "malformed"
	StatusMailFailed        Status = "mail_failed"
	StatusAttachmentFailed  Status = "attachment_failed"
	StatusFieldUpdateFailed Status = "field_update_failed"
	StatusFailed            Status = "failed"
)

// Outcome reports what happened to a ticket. Err is set whenever a step
// failed, including a failed no-results comment on a NoData ticket.
type Outcome struct {
	Key    string
	Status Status
	Err    error
}

// Summary counts outcomes across a run.
type Summary struct {
	Parents       int
	FailedParents int
	Children      int
	Outcomes      map[Status]int
	Results       int
}

func (s *Summary) Add(o Outcome) {
	if s.Outcomes == nil {
		s.Outcomes = map[Status]int{}
	}
	s.Children++
	s.Outcomes[o.Status]++
}
