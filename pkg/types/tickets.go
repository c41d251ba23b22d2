package types

import "time"

// TicketRef is a ticket as returned by a tracker search.
type TicketRef struct {
	ID  string
	Key string
}

type Comment struct {
	ID   string
	Body string
}

// TicketDetail is the subset of a tracker issue the workflow reads.
type TicketDetail struct {
	ID            string
	Key           string
	Summary       string
	Reporter      string
	ParentKey     string
	ParentSummary string
	DueDate       time.Time
	Comments      []Comment
}

// Query selects tickets. Parent searches use IssueType, Statuses and
// SummaryText; child searches use ParentKey and Statuses.
type Query struct {
	Project     string
	IssueType   string
	Statuses    []string
	SummaryText string
	ParentKey   string
}

// StatsRecord is the vendor statistics block found in a marker comment.
type StatsRecord struct {
	Raw     string
	Metrics map[string]string
}

// RunResult maps a child ticket key to the metrics extracted from it.
type RunResult map[string]map[string]string

type Message struct {
	Subject string
	From    string
	To      []string
	Body    string
}
