package export

import (
	"pocket-crm/internal/features/contact"
	"pocket-crm/internal/features/deal"
	"pocket-crm/internal/features/lead"
)

var contactColumns = []column[contact.Contact]{
	{"Name", func(c *contact.Contact) interface{} { return c.Name }},
	{"Mobile", func(c *contact.Contact) interface{} { return c.Mobile }},
	{"Email", func(c *contact.Contact) interface{} { return c.Email }},
	{"Company", func(c *contact.Contact) interface{} { return c.Company }},
	{"Address", func(c *contact.Contact) interface{} { return c.Address }},
	{"City", func(c *contact.Contact) interface{} { return c.City }},
	{"State", func(c *contact.Contact) interface{} { return c.State }},
	{"Country", func(c *contact.Contact) interface{} { return c.Country }},
	{"Created At", func(c *contact.Contact) interface{} { return formatTime(c.CreatedAt) }},
}

var leadColumns = []column[lead.Lead]{
	{"Name", func(l *lead.Lead) interface{} { return l.Name }},
	{"Email", func(l *lead.Lead) interface{} { return l.Email }},
	{"Mobile", func(l *lead.Lead) interface{} { return l.Mobile }},
	{"WhatsApp", func(l *lead.Lead) interface{} { return l.WhatsApp }},
	{"Status", func(l *lead.Lead) interface{} { return l.Status }},
	{"Lead Source", func(l *lead.Lead) interface{} { return l.LeadSource }},
	{"Converted", func(l *lead.Lead) interface{} { return l.IsConverted }},
	{"Created At", func(l *lead.Lead) interface{} { return formatTime(l.CreatedAt) }},
}

var dealColumns = []column[deal.Deal]{
	{"Title", func(d *deal.Deal) interface{} { return d.Title }},
	{"Amount", func(d *deal.Deal) interface{} { return deal.Optional(d.Amount) }},
	{"Stage", func(d *deal.Deal) interface{} { return d.Stage }},
	{"Probability", func(d *deal.Deal) interface{} { return deal.Optional(d.Probability) }},
	{"Closing Date", func(d *deal.Deal) interface{} { return formatTimePtr(d.ClosingDate) }},
	{"Description", func(d *deal.Deal) interface{} { return d.Description }},
	{"Created At", func(d *deal.Deal) interface{} { return formatTime(d.CreatedAt) }},
}

// contactFields maps normalized import headers to contact setters.
var contactFields = map[string]func(c *contact.Contact, v string){
	"name":    func(c *contact.Contact, v string) { c.Name = v },
	"mobile":  func(c *contact.Contact, v string) { c.Mobile = v },
	"phone":   func(c *contact.Contact, v string) { c.Mobile = v },
	"email":   func(c *contact.Contact, v string) { c.Email = v },
	"company": func(c *contact.Contact, v string) { c.Company = v },
	"address": func(c *contact.Contact, v string) { c.Address = v },
	"city":    func(c *contact.Contact, v string) { c.City = v },
	"state":   func(c *contact.Contact, v string) { c.State = v },
	"country": func(c *contact.Contact, v string) { c.Country = v },
}
