package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"pocket-crm/internal/common/models"
	"pocket-crm/internal/database"
	"pocket-crm/internal/features/audit"
	"pocket-crm/internal/features/contact"
	"pocket-crm/internal/features/customfield"
	"pocket-crm/internal/features/deal"
	"pocket-crm/internal/features/followup"
	"pocket-crm/internal/features/lead"
	"pocket-crm/internal/features/reminder"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// deferredScheduler leaves reminders to the API server, which loads every
// pending follow-up when it starts.
type deferredScheduler struct{}

func (deferredScheduler) Schedule(job reminder.Job) []reminder.Fire { return nil }
func (deferredScheduler) Cancel(followUpID primitive.ObjectID)      {}

// services is the record stack the seeder writes through.
type services struct {
	fields    customfield.CustomFieldService
	contacts  contact.ContactService
	leads     lead.LeadService
	deals     deal.DealService
	followUps followup.FollowUpService
}

func newServices(db *database.MongodbDB, log *zap.Logger) *services {
	auditService := audit.NewAuditService(audit.NewAuditRepository(db), log)

	contactRepo := contact.NewContactRepository(db)
	leadRepo := lead.NewLeadRepository(db)
	dealRepo := deal.NewDealRepository(db)
	fields := customfield.NewCustomFieldService(customfield.NewCustomFieldRepository(db), customfield.SlotStores{
		models.ModuleContact: contactRepo,
		models.ModuleLead:    leadRepo,
		models.ModuleDeal:    dealRepo,
	}, auditService, log)

	contacts := contact.NewContactService(contactRepo, fields, auditService, log)
	deals := deal.NewDealService(dealRepo, fields, auditService, log)
	return &services{
		fields:    fields,
		contacts:  contacts,
		deals:     deals,
		leads:     lead.NewLeadService(leadRepo, fields, contacts, deals, auditService, log),
		followUps: followup.NewFollowUpService(followup.NewFollowUpRepository(db), deferredScheduler{}, auditService, log),
	}
}

func seedCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo contacts, leads, deals and follow-ups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDatabase(ctx, func(db *database.MongodbDB, log *zap.Logger) error {
				s := newServices(db, log)
				existing, err := s.contacts.ListContacts(ctx, models.Page{Page: 1, Limit: 1})
				if err != nil {
					return err
				}
				if existing.Total > 0 && !force {
					return fmt.Errorf("database already holds %d contacts; pass --force to seed anyway", existing.Total)
				}
				return seedDemoData(ctx, s, cmd.OutOrStdout())
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Seed even when contacts already exist")
	return cmd
}

func seedDemoData(ctx context.Context, s *services, out io.Writer) error {
	fmt.Fprintln(out, "Seeding demo data...")

	industry := &customfield.CustomField{
		Module:    models.ModuleContact,
		FieldName: "Industry",
		FieldType: customfield.FieldTypeDropdown,
		Options:   []string{"Retail", "Manufacturing", "Services"},
	}
	budget := &customfield.CustomField{Module: models.ModuleLead, FieldName: "Budget", FieldType: customfield.FieldTypeNumber}
	for _, f := range []*customfield.CustomField{industry, budget} {
		if err := s.fields.CreateCustomField(ctx, f); err != nil {
			return fmt.Errorf("custom field %s: %w", f.FieldName, err)
		}
		fmt.Fprintf(out, "Created custom field %s.%s -> %s\n", f.Module, f.FieldName, f.ColumnName)
	}
	industrySlot, _ := industry.Slot()
	budgetSlot, _ := budget.Slot()

	contacts := []contact.Contact{
		{Name: "Asha Patel", Mobile: "+91 98200 11111", Email: "asha@patelstores.in", Company: "Patel Stores", City: "Mumbai", Country: "India"},
		{Name: "Marco Rossi", Mobile: "+39 333 555 0101", Company: "Rossi Meccanica", City: "Turin", Country: "Italy"},
		{Name: "Grace Okafor", Mobile: "+234 803 000 1234", Email: "grace@okaforconsult.ng", City: "Lagos", Country: "Nigeria"},
	}
	for i, industryName := range []string{"Retail", "Manufacturing", "Services"} {
		contacts[i].Slots.Set(industrySlot, industryName)
	}
	for i := range contacts {
		if err := s.contacts.CreateContact(ctx, &contacts[i]); err != nil {
			return fmt.Errorf("contact %s: %w", contacts[i].Name, err)
		}
		fmt.Fprintf(out, "Created contact %s\n", contacts[i].Name)
	}

	leads := []lead.Lead{
		{Name: "Ravi Kumar", Mobile: "+91 99300 22222", LeadSource: "Referral", Status: lead.StatusQualified},
		{Name: "Sofia Lindqvist", Email: "sofia@lindqvist.se", WhatsApp: "+46 70 123 4567", LeadSource: "Website"},
		{Name: "Tom Becker", Mobile: "+49 151 2345 6789", LeadSource: "Walk-in", Status: lead.StatusContacted},
	}
	for i, amount := range []string{"250000", "40000", "15000"} {
		leads[i].Slots.Set(budgetSlot, amount)
	}
	for i := range leads {
		if err := s.leads.CreateLead(ctx, &leads[i]); err != nil {
			return fmt.Errorf("lead %s: %w", leads[i].Name, err)
		}
		fmt.Fprintf(out, "Created lead %s\n", leads[i].Name)
	}

	fitOut, fitOutOdds := 250000.0, 60
	converted, err := s.leads.ConvertLeadToDeal(ctx, leads[0].ID, lead.ConvertRequest{
		CreateContact: true,
		DealTitle:     "Kumar warehouse fit-out",
		Amount:        &fitOut,
		Stage:         deal.StageProposal,
		Probability:   &fitOutOdds,
	})
	if err != nil {
		return fmt.Errorf("convert %s: %w", leads[0].Name, err)
	}
	fmt.Fprintf(out, "Converted lead %s into deal %q\n", leads[0].Name, converted.Deal.Title)

	closing := time.Now().AddDate(0, 1, 0)
	maintenance, maintenanceOdds := 18000.0, 75
	extra := &deal.Deal{
		Title:       "Rossi annual maintenance",
		Amount:      &maintenance,
		Stage:       deal.StageNegotiation,
		Probability: &maintenanceOdds,
		ClosingDate: &closing,
		ContactID:   &contacts[1].ID,
	}
	if err := s.deals.CreateDeal(ctx, extra); err != nil {
		return fmt.Errorf("deal %s: %w", extra.Title, err)
	}
	fmt.Fprintf(out, "Created deal %q\n", extra.Title)

	tomorrow := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	nextWeek := tomorrow.AddDate(0, 0, 6)
	followUps := []followup.FollowUp{
		{Ref: models.DealRef(converted.Deal.ID), DueAt: &tomorrow, Type: "Call", Priority: "High", Stage: "Pending", ReminderMinutes: 15, Notes: "Walk through the proposal"},
		{Ref: models.LeadRef(leads[1].ID), DueAt: &nextWeek, Type: "WhatsApp", Stage: "Pending", ReminderMinutes: 60, Notes: "Share the brochure"},
	}
	for i := range followUps {
		if _, err := s.followUps.CreateFollowUp(ctx, &followUps[i]); err != nil {
			return fmt.Errorf("follow-up %d: %w", i+1, err)
		}
	}
	fmt.Fprintf(out, "Created %d follow-ups\n", len(followUps))

	fmt.Fprintln(out, "Demo data seeded.")
	return nil
}
