package projection

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"jobtailor/internal/model"
)

// ToolExecution is the latest event for one (step, tool, args) group.
type ToolExecution struct {
	Key    string
	Label  string
	Latest model.ApplicationEvent
}

// ToolActivity partitions the deduplicated tool executions for the activity
// feed: running first-class, completed (succeeded or failed) second.
type ToolActivity struct {
	Running   []ToolExecution
	Completed []ToolExecution
}

// DedupeToolExecutions groups tool.execution events by their composite
// (step, tool_name, args summary) key and keeps only the latest event per
// group, judged by created_at with arrival order breaking ties (the last
// arrival wins; a missing timestamp sorts as zero). The surviving entries are
// split into running and completed, each sorted newest first.
func DedupeToolExecutions(events []model.ApplicationEvent) ToolActivity {
	latest := make(map[string]ToolExecution)
	order := make([]string, 0)

	for i := range events {
		e := events[i]
		if e.EventName != model.EventToolExecution {
			continue
		}
		key := e.Step + "|" + e.ToolName + "|" + e.ArgsSummary()
		existing, seen := latest[key]
		if !seen {
			order = append(order, key)
		}
		if !seen || !e.Timestamp().Before(existing.Latest.Timestamp()) {
			latest[key] = ToolExecution{
				Key:    key,
				Label:  executionLabel(&e),
				Latest: e,
			}
		}
	}

	var activity ToolActivity
	for _, key := range order {
		entry := latest[key]
		switch entry.Latest.Status {
		case model.StatusStarted:
			activity.Running = append(activity.Running, entry)
		case model.StatusSucceeded, model.StatusFailed:
			activity.Completed = append(activity.Completed, entry)
		}
	}
	sortNewestFirst(activity.Running)
	sortNewestFirst(activity.Completed)
	return activity
}

func sortNewestFirst(entries []ToolExecution) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Latest.Timestamp().After(entries[j].Latest.Timestamp())
	})
}

func executionLabel(e *model.ApplicationEvent) string {
	if e.Message != "" {
		return e.Message
	}
	if e.ToolName != "" {
		return "Executing " + e.ToolName
	}
	return "Tool execution"
}

var toolDisplayNames = map[string]string{
	"company_discovery_tool": "Company Discovery",
	"tavily_tool":            "Web Search",
	"scraping_tool":          "Content Scraping",
}

var titleCaser = cases.Title(language.English)

// ToolDisplayName maps the backend's tool identifiers to friendly names,
// title-casing unknown ones.
func ToolDisplayName(toolName string) string {
	if toolName == "" {
		return "Tool execution"
	}
	if name, ok := toolDisplayNames[toolName]; ok {
		return name
	}
	return titleCaser.String(strings.ReplaceAll(toolName, "_", " "))
}

// ActivityMessage builds the feed line for a tool event when the backend did
// not supply one.
func ActivityMessage(e *model.ApplicationEvent) string {
	if e.Message != "" {
		return e.Message
	}
	tool := ToolDisplayName(e.ToolName)
	switch e.Status {
	case model.StatusStarted:
		return "Starting " + tool + "..."
	case model.StatusSucceeded:
		return tool + " completed successfully"
	case model.StatusFailed:
		return tool + " failed to complete"
	default:
		return tool + " execution"
	}
}
