// Package configure loads the automation settings from file and environment.
package configure

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/du0ngtrunghieu/ttd-attach/pkg/types"
)

var (
	ErrMissingConfig = errors.New("missing required setting")
	ErrInvalidConfig = errors.New("invalid setting")
)

const EnvPrefix = "TTD_ATTACH"

// Default values; the Jira ones match the Data License board.
const (
	DefaultProject          = "CAM"
	DefaultTransitionID     = "471"
	DefaultDueDateField     = "duedate"
	DefaultMaxResults       = 500
	DefaultNoResultsComment = "Could not find any api results for this run."
	DefaultSMTPPort         = 25
	DefaultAppName          = "ttd_attach"
	DefaultLogPath          = "logs"
	DefaultLogLevel         = "info"
	DefaultRetentionDays    = 30
	DefaultSchedule         = "0 14 * * 3-5"
	DefaultRequestTimeout   = "60s"
)

// ReadConfig fills config from the YAML file at path (optional when empty),
// then from TTD_ATTACH_* environment variables.
func ReadConfig(path string, config *types.Config) error {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ParentStatus = splitList(config.ParentStatus)
	config.ChildStatus = splitList(config.ChildStatus)
	config.EmailTo = splitList(config.EmailTo)
	config.AttachmentExtensions = splitList(config.AttachmentExtensions)

	if err := Validate(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("jira_url", "")
	v.SetDefault("jira_username", "")
	v.SetDefault("jira_token", "")
	v.SetDefault("jira_project", DefaultProject)
	v.SetDefault("jira_transition_id", DefaultTransitionID)
	v.SetDefault("jira_due_date_field", DefaultDueDateField)
	v.SetDefault("jira_max_results", DefaultMaxResults)
	v.SetDefault("jql_parent_type", "")
	v.SetDefault("jql_parent_status", []string{})
	v.SetDefault("jql_parent_text", "")
	v.SetDefault("jql_child_status", []string{})

	v.SetDefault("results_json_path", "logs/Results")
	v.SetDefault("results_json_name", DefaultAppName)

	v.SetDefault("email_to", []string{})
	v.SetDefault("email_from", "")
	v.SetDefault("smtp_host", "localhost")
	v.SetDefault("smtp_port", DefaultSMTPPort)
	v.SetDefault("smtp_tls", false)

	v.SetDefault("attachment_extensions", []string{".txt"})
	v.SetDefault("no_results_comment", DefaultNoResultsComment)

	v.SetDefault("app_name", DefaultAppName)
	v.SetDefault("log_path", DefaultLogPath)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_retention_days", DefaultRetentionDays)
	v.SetDefault("schedule", DefaultSchedule)
	v.SetDefault("request_timeout", DefaultRequestTimeout)
}

// splitList flattens comma-separated entries, which is how list values
// arrive from the environment.
func splitList(in []string) []string {
	out := []string{}
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func Validate(config *types.Config) error {
	required := []struct {
		name  string
		value string
	}{
		{"jira_url", config.JiraURL},
		{"jira_username", config.JiraUsername},
		{"jira_token", config.JiraToken},
		{"jql_parent_type", config.ParentType},
		{"jql_parent_text", config.ParentText},
		{"email_from", config.EmailFrom},
		{"smtp_host", config.SMTPHost},
		{"results_json_path", config.ResultsPath},
		{"results_json_name", config.ResultsName},
		{"jira_transition_id", config.JiraTransitionID},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingConfig, r.name)
		}
	}

	if len(config.ParentStatus) == 0 {
		return fmt.Errorf("%w: jql_parent_status", ErrMissingConfig)
	}
	if len(config.ChildStatus) == 0 {
		return fmt.Errorf("%w: jql_child_status", ErrMissingConfig)
	}
	if len(config.EmailTo) == 0 {
		return fmt.Errorf("%w: email_to", ErrMissingConfig)
	}

	if config.SMTPPort <= 0 || config.SMTPPort > 65535 {
		return fmt.Errorf("%w: smtp_port %d", ErrInvalidConfig, config.SMTPPort)
	}
	// Today's run log is the duplicate-run guard; a zero-day sweep would delete it.
	if config.LogRetentionDays < 1 {
		return fmt.Errorf("%w: log_retention_days %d", ErrInvalidConfig, config.LogRetentionDays)
	}
	if config.JiraMaxResults <= 0 {
		return fmt.Errorf("%w: jira_max_results %d", ErrInvalidConfig, config.JiraMaxResults)
	}

	return nil
}
