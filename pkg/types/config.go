package types

import "time"

type Config struct {
	JiraURL          string   `mapstructure:"jira_url"`
	JiraUsername     string   `mapstructure:"jira_username"`
	JiraToken        string   `mapstructure:"jira_token"`
	JiraProject      string   `mapstructure:"jira_project"`
	JiraTransitionID string   `mapstructure:"jira_transition_id"`
	JiraDueDateField string   `mapstructure:"jira_due_date_field"`
	JiraMaxResults   int      `mapstructure:"jira_max_results"`
	ParentType       string   `mapstructure:"jql_parent_type"`
	ParentStatus     []string `mapstructure:"jql_parent_status"`
	ParentText       string   `mapstructure:"jql_parent_text"`
	ChildStatus      []string `mapstructure:"jql_child_status"`

	ResultsPath string `mapstructure:"results_json_path"`
	ResultsName string `mapstructure:"results_json_name"`

	EmailTo   []string `mapstructure:"email_to"`
	EmailFrom string   `mapstructure:"email_from"`
	SMTPHost  string   `mapstructure:"smtp_host"`
	SMTPPort  int      `mapstructure:"smtp_port"`
	SMTPTLS   bool     `mapstructure:"smtp_tls"`

	AttachmentExtensions []string `mapstructure:"attachment_extensions"`
	NoResultsComment     string   `mapstructure:"no_results_comment"`

	AppName          string        `mapstructure:"app_name"`
	LogPath          string        `mapstructure:"log_path"`
	LogLevel         string        `mapstructure:"log_level"`
	LogRetentionDays int           `mapstructure:"log_retention_days"`
	Schedule         string        `mapstructure:"schedule"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout"`
}

// ParentQuery builds the parent-ticket search from configuration.
func (c *Config) ParentQuery() Query {
	return Query{
		Project:     c.JiraProject,
		IssueType:   c.ParentType,
		Statuses:    c.ParentStatus,
		SummaryText: c.ParentText,
	}
}
