package attach

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/andygrunwald/go-jira"

	"github.com/du0ngtrunghieu/ttd-attach/pkg/helper"
	"github.com/du0ngtrunghieu/ttd-attach/pkg/types"
)

const defaultMaxResults = 500

// Jira implements Tracker on top of the Jira REST API v2.
type Jira struct {
	endpoint   string
	userName   string
	maxResults int
	client     *jira.Client
}

func NewJira(endpoint string, userName string, apiToken string, maxResults int, timeout time.Duration) (*Jira, error) {
	tp := jira.BasicAuthTransport{
		Username: userName,
		Password: apiToken,
	}

	httpClient := tp.Client()
	httpClient.Timeout = timeout

	client, err := jira.NewClient(httpClient, endpoint)
	if err != nil {
		return nil, fmt.Errorf("create jira client: %w", err)
	}

	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	return &Jira{
		endpoint:   endpoint,
		userName:   userName,
		maxResults: maxResults,
		client:     client,
	}, nil
}

func (j *Jira) SearchTickets(ctx context.Context, query types.Query) ([]types.TicketRef, error) {
	jql := helper.BuildJQL(query)

	ticketList := []types.TicketRef{}
	startAt := 0
	for {
		issues, resp, err := j.client.Issue.SearchWithContext(ctx, jql, &jira.SearchOptions{
			StartAt:    startAt,
			MaxResults: j.maxResults,
			Fields:     []string{"summary"},
		})
		if err != nil {
			return nil, fmt.Errorf("search %q: %w", jql, err)
		}

		for _, issue := range issues {
			ticketList = append(ticketList, types.TicketRef{ID: issue.ID, Key: issue.Key})
		}

		startAt += len(issues)
		if len(issues) == 0 || resp == nil || startAt >= resp.Total {
			break
		}
	}

	return ticketList, nil
}

func (j *Jira) GetTicket(ctx context.Context, key string) (*types.TicketDetail, error) {
	issue, _, err := j.client.Issue.GetWithContext(ctx, key, nil)
	if err != nil {
		return nil, fmt.Errorf("get issue %s: %w", key, err)
	}

	detail := &types.TicketDetail{ID: issue.ID, Key: issue.Key}
	if issue.Fields == nil {
		return detail, nil
	}

	detail.Summary = issue.Fields.Summary
	detail.DueDate = time.Time(issue.Fields.Duedate)

	if r := issue.Fields.Reporter; r != nil {
		detail.Reporter = r.Key
		if detail.Reporter == "" {
			detail.Reporter = r.Name
		}
		if detail.Reporter == "" {
			detail.Reporter = r.AccountID
		}
	}

	if issue.Fields.Comments != nil {
		for _, c := range issue.Fields.Comments.Comments {
			if c == nil {
				continue
			}
			detail.Comments = append(detail.Comments, types.Comment{ID: c.ID, Body: c.Body})
		}
	}

	// The parent link only carries id and key; the summary needs its own read.
	if p := issue.Fields.Parent; p != nil && p.Key != "" {
		detail.ParentKey = p.Key
		parent, _, err := j.client.Issue.GetWithContext(ctx, p.Key, &jira.GetQueryOptions{Fields: "summary"})
		if err != nil {
			return nil, fmt.Errorf("get parent %s of %s: %w", p.Key, key, err)
		}
		if parent.Fields != nil {
			detail.ParentSummary = parent.Fields.Summary
		}
	}

	return detail, nil
}

func (j *Jira) AddAttachment(ctx context.Context, key string, payload []byte, filename string) error {
	_, _, err := j.client.Issue.PostAttachmentWithContext(ctx, key, bytes.NewReader(payload), filename)
	if err != nil {
		return fmt.Errorf("attach %s to %s: %w", filename, key, err)
	}
	return nil
}

func (j *Jira) AddComment(ctx context.Context, key string, body string) error {
	_, _, err := j.client.Issue.AddCommentWithContext(ctx, key, &jira.Comment{Body: body})
	if err != nil {
		return fmt.Errorf("comment on %s: %w", key, err)
	}
	return nil
}

func (j *Jira) UpdateField(ctx context.Context, key string, field string, value any) error {
	update := map[string]interface{}{
		"fields": map[string]interface{}{
			field: value,
		},
	}
	_, err := j.client.Issue.UpdateIssueWithContext(ctx, key, update)
	if err != nil {
		return fmt.Errorf("update %s on %s: %w", field, key, err)
	}
	return nil
}

func (j *Jira) Transition(ctx context.Context, key string, transitionID string) error {
	_, err := j.client.Issue.DoTransitionWithContext(ctx, key, transitionID)
	if err != nil {
		return fmt.Errorf("transition %s with %s: %w", key, transitionID, err)
	}
	return nil
}
