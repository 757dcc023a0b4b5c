package export

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"pocket-crm/internal/common/models"
	"pocket-crm/internal/features/audit"
	"pocket-crm/internal/features/contact"
	"pocket-crm/internal/features/customfield"
	"pocket-crm/internal/features/deal"
	"pocket-crm/internal/features/lead"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type ContactStore interface {
	ListAll(ctx context.Context) ([]contact.Contact, error)
}

type LeadStore interface {
	ListAll(ctx context.Context) ([]lead.Lead, error)
}

type DealStore interface {
	ListAll(ctx context.Context) ([]deal.Deal, error)
}

type FieldCatalog interface {
	FieldsBySlot(ctx context.Context, module models.Module) ([]customfield.CustomField, error)
}

type ContactCreator interface {
	CreateContact(ctx context.Context, c *contact.Contact) error
}

type ExportService interface {
	Export(ctx context.Context, module models.Module) (*excelize.File, error)
	ImportContacts(ctx context.Context, r io.Reader, filename string) (*ImportResult, error)
}

type ExportServiceImpl struct {
	Contacts       ContactStore
	Leads          LeadStore
	Deals          DealStore
	Fields         FieldCatalog
	ContactCreator ContactCreator
	AuditService   audit.AuditService
	Logger         *zap.Logger
}

func NewExportService(contacts ContactStore, leads LeadStore, deals DealStore, fields FieldCatalog, creator ContactCreator, auditService audit.AuditService, logger *zap.Logger) ExportService {
	return &ExportServiceImpl{
		Contacts:       contacts,
		Leads:          leads,
		Deals:          deals,
		Fields:         fields,
		ContactCreator: creator,
		AuditService:   auditService,
		Logger:         logger,
	}
}

// Export writes every record of module to a workbook: the fixed columns, then
// one column per live custom field in slot order.
func (s *ExportServiceImpl) Export(ctx context.Context, module models.Module) (*excelize.File, error) {
	fields, err := s.Fields.FieldsBySlot(ctx, module)
	if err != nil {
		return nil, err
	}

	var headers []string
	var rows [][]interface{}
	switch module {
	case models.ModuleContact:
		items, err := s.Contacts.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		headers, rows = tabulate(contactColumns, items, fields, func(c *contact.Contact) *models.SlotValues { return &c.Slots })
	case models.ModuleLead:
		items, err := s.Leads.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		headers, rows = tabulate(leadColumns, items, fields, func(l *lead.Lead) *models.SlotValues { return &l.Slots })
	case models.ModuleDeal:
		items, err := s.Deals.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		headers, rows = tabulate(dealColumns, items, fields, func(d *deal.Deal) *models.SlotValues { return &d.Slots })
	default:
		return nil, fmt.Errorf("unknown module %q: %w", module, models.ErrValidation)
	}

	f, err := writeSheet(string(module)+"s", headers, rows)
	if err != nil {
		return nil, err
	}
	s.Logger.Info("export generated", zap.String("module", string(module)), zap.Int("rows", len(rows)))
	return f, nil
}

func tabulate[T any](columns []column[T], items []T, fields []customfield.CustomField, slots func(*T) *models.SlotValues) ([]string, [][]interface{}) {
	headers := make([]string, 0, len(columns)+len(fields))
	for _, c := range columns {
		headers = append(headers, c.header)
	}
	for _, f := range fields {
		headers = append(headers, f.FieldName)
	}

	rows := make([][]interface{}, 0, len(items))
	for i := range items {
		item := &items[i]
		row := make([]interface{}, 0, len(headers))
		for _, c := range columns {
			row = append(row, c.value(item))
		}
		values := slots(item)
		for _, f := range fields {
			slot, err := f.Slot()
			if err != nil {
				row = append(row, "")
				continue
			}
			v, _ := values.Get(slot)
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	return headers, rows
}

func writeSheet(name string, headers []string, rows [][]interface{}) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return nil, err
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if len(headers) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		if err := f.SetCellStyle(name, "A1", last, style); err != nil {
			return nil, err
		}
	}

	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(name, cell, &rows[i]); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// ImportContacts creates one contact per data row of a csv or xlsx file. The
// header row maps columns to contact fields or custom field names, case
// insensitively; unknown columns are ignored. Rows that fail validation are
// reported and skipped.
func (s *ExportServiceImpl) ImportContacts(ctx context.Context, r io.Reader, filename string) (*ImportResult, error) {
	var table [][]string
	var err error
	switch lower := strings.ToLower(filename); {
	case strings.HasSuffix(lower, ".csv"):
		table, err = readCSV(r)
	case strings.HasSuffix(lower, ".xlsx"):
		table, err = readExcel(r)
	default:
		return nil, models.Invalid("file", "must be a .csv or .xlsx file")
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}
	if len(table) == 0 {
		return nil, models.Invalid("file", "is empty")
	}

	fields, err := s.Fields.FieldsBySlot(ctx, models.ModuleContact)
	if err != nil {
		return nil, err
	}
	setters := mapHeaders(table[0], fields)

	result := &ImportResult{Module: models.ModuleContact, Errors: []RowError{}}
	for i, row := range table[1:] {
		if blank(row) {
			continue
		}
		result.Rows++

		var c contact.Contact
		for col, value := range row {
			if col < len(setters) && setters[col] != nil {
				setters[col](&c, strings.TrimSpace(value))
			}
		}
		if err := s.ContactCreator.CreateContact(ctx, &c); err != nil {
			if !errors.Is(err, models.ErrValidation) {
				return result, fmt.Errorf("row %d: %w", i+2, err)
			}
			result.Errors = append(result.Errors, RowError{Row: i + 2, Message: err.Error()})
			continue
		}
		result.Created++
	}

	_ = s.AuditService.LogChange(ctx, models.AuditActionImport, string(models.ModuleContact), "", map[string]models.Change{
		"file":    {New: filename},
		"created": {New: result.Created},
		"failed":  {New: len(result.Errors)},
	})
	s.Logger.Info("contacts imported",
		zap.String("file", filename),
		zap.Int("created", result.Created),
		zap.Int("failed", len(result.Errors)),
	)
	return result, nil
}

func mapHeaders(headers []string, fields []customfield.CustomField) []func(*contact.Contact, string) {
	custom := make(map[string]customfield.CustomField, len(fields))
	for _, f := range fields {
		custom[strings.ToLower(f.FieldName)] = f
	}

	setters := make([]func(*contact.Contact, string), len(headers))
	for i, h := range headers {
		key := strings.ToLower(strings.TrimSpace(h))
		if set, ok := contactFields[key]; ok {
			setters[i] = set
			continue
		}
		if f, ok := custom[key]; ok {
			slot, err := f.Slot()
			if err != nil {
				continue
			}
			setters[i] = func(c *contact.Contact, v string) {
				if v != "" {
					c.Slots.Set(slot, v)
				}
			}
		}
	}
	return setters
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return reader.ReadAll()
}

func readExcel(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}
	return f.GetRows(sheets[0])
}
