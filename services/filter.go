package services

import (
	"sort"
	"strings"

	"agencydash/dto"
	"agencydash/model"
)

const UnknownClient = "Unknown Client"

type TaskFilter struct {
	Month      string
	Status     string
	Search     string
	Department string
	AssignedTo string
	ClientID   string
}

func TaskFilterFromQuery(q dto.TaskQuery) TaskFilter {
	return TaskFilter{
		Month:      q.Month,
		Status:     q.Status,
		Search:     q.Search,
		Department: q.Department,
		AssignedTo: q.AssignedTo,
		ClientID:   q.ClientID,
	}
}

// FilterTasks applies the predicate chain and drops deleted tasks.
func FilterTasks(tasks []model.Task, f TaskFilter) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Deleted {
			continue
		}
		if f.Month != "" && !MatchesMonth(f.Month, t.PostDate, t.Deadline) {
			continue
		}
		if f.Status != "" && !statusEquals(t.Status, f.Status) {
			continue
		}
		if f.Department != "" && !MatchesDepartment(t.Department, f.Department) {
			continue
		}
		if f.AssignedTo != "" && !strings.EqualFold(strings.TrimSpace(t.AssignedTo), strings.TrimSpace(f.AssignedTo)) {
			continue
		}
		if f.ClientID != "" && t.ClientID != f.ClientID {
			continue
		}
		if f.Search != "" && !containsFold(f.Search, t.TaskName, t.ClientName, t.AssignedTo, t.Description, t.Department) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// MatchesMonth reports whether any of dates falls in month. month is
// either "2006-01" or a plain substring such as "May"; parsable dates are
// also compared by their normalized month key.
func MatchesMonth(month string, dates ...string) bool {
	month = strings.TrimSpace(month)
	for _, d := range dates {
		if d == "" {
			continue
		}
		if strings.Contains(strings.ToLower(d), strings.ToLower(month)) {
			return true
		}
		if key := model.MonthKey(d); key != "" && key == month {
			return true
		}
		if t, ok := model.ParseDate(d); ok && strings.EqualFold(t.Month().String(), month) {
			return true
		}
	}
	return false
}

func statusEquals(a, b string) bool {
	ca, okA := model.CanonicalStatus(a)
	cb, okB := model.CanonicalStatus(b)
	if okA && okB {
		return ca == cb
	}
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func containsFold(needle string, haystack ...string) bool {
	needle = strings.ToLower(strings.TrimSpace(needle))
	for _, h := range haystack {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}

type ClientFilter struct {
	Stage      string
	Status     string
	Search     string
	AssignedTo string
}

func ClientFilterFromQuery(q dto.ClientQuery) ClientFilter {
	return ClientFilter{Stage: q.Stage, Status: q.Status, Search: q.Search, AssignedTo: q.AssignedTo}
}

// FilterClients applies the client predicate chain and drops deleted clients.
func FilterClients(clients []model.Client, f ClientFilter) []model.Client {
	out := make([]model.Client, 0, len(clients))
	for _, c := range clients {
		if c.Deleted {
			continue
		}
		if f.Stage != "" && model.StageIndex(c.Stage) != model.StageIndex(f.Stage) {
			continue
		}
		if f.Status != "" && !strings.EqualFold(c.Status, f.Status) {
			continue
		}
		if f.AssignedTo != "" && !strings.EqualFold(c.AssignedToEmployee, strings.TrimSpace(f.AssignedTo)) {
			continue
		}
		if f.Search != "" && !containsFold(f.Search, c.ClientName, c.ClientID, c.ContactPerson, c.Email, c.Phone) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// ResolveClientName names the client a task belongs to, preferring the
// client record linked by ID.
func ResolveClientName(t model.Task, byID map[string]model.Client) string {
	if c, ok := byID[t.ClientID]; ok && t.ClientID != "" && c.ClientName != "" {
		return c.ClientName
	}
	if name := strings.TrimSpace(t.ClientName); name != "" {
		return name
	}
	return UnknownClient
}

// IndexClients maps both the document ID and the business clientId to
// each live client. Deleted clients are left out.
func IndexClients(clients []model.Client) map[string]model.Client {
	byID := make(map[string]model.Client, len(clients)*2)
	for _, c := range clients {
		if c.Deleted {
			continue
		}
		if c.ClientID != "" {
			byID[c.ClientID] = c
		}
		byID[c.ID] = c
	}
	return byID
}

// GroupTasksByClient groups tasks under their client name. Groups are
// sorted by name with Unknown Client last; tasks keep their order.
func GroupTasksByClient(tasks []model.Task, clients []model.Client) []dto.ClientTaskGroup {
	byID := IndexClients(clients)
	index := map[string]int{}
	groups := []dto.ClientTaskGroup{}

	for _, t := range tasks {
		name := ResolveClientName(t, byID)
		key := strings.ToLower(name)
		i, ok := index[key]
		if !ok {
			group := dto.ClientTaskGroup{ClientName: name}
			if c, found := byID[t.ClientID]; found && t.ClientID != "" {
				group.ClientID = c.ClientID
			}
			groups = append(groups, group)
			i = len(groups) - 1
			index[key] = i
		}
		t.ClientName = name
		groups[i].Tasks = append(groups[i].Tasks, t)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if (groups[i].ClientName == UnknownClient) != (groups[j].ClientName == UnknownClient) {
			return groups[j].ClientName == UnknownClient
		}
		return strings.ToLower(groups[i].ClientName) < strings.ToLower(groups[j].ClientName)
	})
	return groups
}
