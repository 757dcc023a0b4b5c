package search

import (
	"context"
	"fmt"
	"strings"

	"pocket-crm/internal/common/models"
	"pocket-crm/internal/features/contact"
	"pocket-crm/internal/features/deal"
	"pocket-crm/internal/features/lead"
)

// MinQueryLength is the shortest query that reaches the record stores.
const MinQueryLength = 2

// perModule caps the hits returned for each record kind.
const perModule = 5

type SearchResult struct {
	Module      models.Module `json:"module"`
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Link        string        `json:"link"`
}

type ContactSearcher interface {
	ListContacts(ctx context.Context, page models.Page) (*models.PagedResult[contact.Contact], error)
}

type LeadSearcher interface {
	ListLeads(ctx context.Context, page models.Page, status string) (*models.PagedResult[lead.Lead], error)
}

type DealSearcher interface {
	ListDeals(ctx context.Context, page models.Page, stage string) (*models.PagedResult[deal.Deal], error)
}

type SearchService interface {
	GlobalSearch(ctx context.Context, query string) ([]SearchResult, error)
}

type SearchServiceImpl struct {
	Contacts ContactSearcher
	Leads    LeadSearcher
	Deals    DealSearcher
}

func NewSearchService(contacts ContactSearcher, leads LeadSearcher, deals DealSearcher) SearchService {
	return &SearchServiceImpl{
		Contacts: contacts,
		Leads:    leads,
		Deals:    deals,
	}
}

// GlobalSearch matches query against contacts, leads and deals, newest first
// within each kind.
func (s *SearchServiceImpl) GlobalSearch(ctx context.Context, query string) ([]SearchResult, error) {
	results := []SearchResult{}
	query = strings.TrimSpace(query)
	if len(query) < MinQueryLength {
		return results, nil
	}
	page := models.Page{Page: 1, Limit: perModule, Search: query}

	contacts, err := s.Contacts.ListContacts(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("search contacts: %w", err)
	}
	for _, c := range contacts.Data {
		results = append(results, result(models.ContactRef(c.ID), c.Name, join(c.Mobile, c.Company)))
	}

	leads, err := s.Leads.ListLeads(ctx, page, "")
	if err != nil {
		return nil, fmt.Errorf("search leads: %w", err)
	}
	for _, l := range leads.Data {
		results = append(results, result(models.LeadRef(l.ID), l.Name, join(l.Status, l.Mobile)))
	}

	deals, err := s.Deals.ListDeals(ctx, page, "")
	if err != nil {
		return nil, fmt.Errorf("search deals: %w", err)
	}
	for _, d := range deals.Data {
		results = append(results, result(models.DealRef(d.ID), d.Title, join(d.Stage, amount(d.Amount))))
	}

	return results, nil
}

func result(ref models.RecordRef, title, description string) SearchResult {
	return SearchResult{
		Module:      ref.Module,
		ID:          ref.RecordID.Hex(),
		Title:       title,
		Description: description,
		Link:        fmt.Sprintf("/api/%ss/%s", strings.ToLower(string(ref.Module)), ref.RecordID.Hex()),
	}
}

func amount(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *v)
}

func join(parts ...string) string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " · ")
}
