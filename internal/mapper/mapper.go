package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/meridiancg/backoffice-api/internal/domain"
)

const (
	timestampFormat = "2006-01-02T15:04:05Z"
	dateFormat      = "2006-01-02"
)

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateFormat)
	return &s
}

func formatTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(timestampFormat)
	return &s
}

// ToAccountDTO converts Account to AccountDTO
func ToAccountDTO(account *domain.Account) domain.AccountDTO {
	return domain.AccountDTO{
		ID:            account.ID,
		CompanyName:   account.CompanyName,
		Type:          account.Type,
		Website:       account.Website,
		Phone:         account.Phone,
		AddressLine1:  account.AddressLine1,
		AddressLine2:  account.AddressLine2,
		City:          account.City,
		State:         account.State,
		PostalCode:    account.PostalCode,
		Country:       account.Country,
		Notes:         account.Notes,
		BillingTermID: account.BillingTermID,
		IsActive:      account.IsActive,
		CreatedAt:     account.CreatedAt.Format(timestampFormat),
		UpdatedAt:     account.UpdatedAt.Format(timestampFormat),
	}
}

// ToAccountWithDetailsDTO converts Account with preloaded relations
func ToAccountWithDetailsDTO(account *domain.Account) domain.AccountWithDetailsDTO {
	dto := domain.AccountWithDetailsDTO{
		AccountDTO: ToAccountDTO(account),
	}
	for i := range account.Contacts {
		dto.Contacts = append(dto.Contacts, ToContactDTO(&account.Contacts[i]))
	}
	for i := range account.Opportunities {
		dto.Opportunities = append(dto.Opportunities, ToOpportunityDTO(&account.Opportunities[i], false))
	}
	return dto
}

// ToContactDTO converts Contact to ContactDTO
func ToContactDTO(contact *domain.Contact) domain.ContactDTO {
	dto := domain.ContactDTO{
		ID:        contact.ID,
		AccountID: contact.AccountID,
		FirstName: contact.FirstName,
		LastName:  contact.LastName,
		FullName:  contact.FullName(),
		Email:     contact.Email,
		Phone:     contact.Phone,
		Title:     contact.Title,
		Notes:     contact.Notes,
		IsActive:  contact.IsActive,
		CreatedAt: contact.CreatedAt.Format(timestampFormat),
		UpdatedAt: contact.UpdatedAt.Format(timestampFormat),
	}
	if contact.Account != nil {
		dto.AccountName = contact.Account.CompanyName
	}
	return dto
}

// ToBillingTermDTO converts BillingTerm to BillingTermDTO
func ToBillingTermDTO(term *domain.BillingTerm) domain.BillingTermDTO {
	return domain.BillingTermDTO{
		ID:           term.ID,
		Code:         term.Code,
		Description:  term.Description,
		DaysUntilDue: term.DaysUntilDue,
		SortOrder:    term.SortOrder,
		IsActive:     term.IsActive,
		CreatedAt:    term.CreatedAt.Format(timestampFormat),
		UpdatedAt:    term.UpdatedAt.Format(timestampFormat),
	}
}

// ToRoleDTO converts Role to RoleDTO
func ToRoleDTO(role *domain.Role) domain.RoleDTO {
	dto := domain.RoleDTO{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		IsActive:    role.IsActive,
		CreatedAt:   role.CreatedAt.Format(timestampFormat),
		UpdatedAt:   role.UpdatedAt.Format(timestampFormat),
	}
	for i := range role.Rates {
		dto.Rates = append(dto.Rates, ToRoleRateDTO(&role.Rates[i]))
	}
	return dto
}

// ToRoleRateDTO converts RoleRate to RoleRateDTO
func ToRoleRateDTO(rate *domain.RoleRate) domain.RoleRateDTO {
	dto := domain.RoleRateDTO{
		ID:               rate.ID,
		RoleID:           rate.RoleID,
		DeliveryCenterID: rate.DeliveryCenterID,
		Currency:         rate.Currency,
		HourlyRate:       rate.HourlyRate,
		EffectiveDate:    formatDate(rate.EffectiveDate),
		CreatedAt:        rate.CreatedAt.Format(timestampFormat),
		UpdatedAt:        rate.UpdatedAt.Format(timestampFormat),
	}
	if rate.DeliveryCenter != nil {
		dto.DeliveryCenterCode = rate.DeliveryCenter.Code
	}
	return dto
}

// ToDeliveryCenterDTO converts DeliveryCenter to DeliveryCenterDTO
func ToDeliveryCenterDTO(dc *domain.DeliveryCenter) domain.DeliveryCenterDTO {
	dto := domain.DeliveryCenterDTO{
		ID:              dc.ID,
		Code:            dc.Code,
		Name:            dc.Name,
		Region:          dc.Region,
		DefaultCurrency: dc.DefaultCurrency,
		IsActive:        dc.IsActive,
		CreatedAt:       dc.CreatedAt.Format(timestampFormat),
		UpdatedAt:       dc.UpdatedAt.Format(timestampFormat),
	}
	for i := range dc.Approvers {
		dto.Approvers = append(dto.Approvers, ToDeliveryCenterApproverDTO(&dc.Approvers[i]))
	}
	return dto
}

// ToDeliveryCenterApproverDTO converts DeliveryCenterApprover to its DTO
func ToDeliveryCenterApproverDTO(approver *domain.DeliveryCenterApprover) domain.DeliveryCenterApproverDTO {
	dto := domain.DeliveryCenterApproverDTO{
		ID:               approver.ID,
		DeliveryCenterID: approver.DeliveryCenterID,
		EmployeeID:       approver.EmployeeID,
	}
	if approver.Employee != nil {
		dto.EmployeeName = approver.Employee.FullName()
	}
	return dto
}

// ToEmployeeDTO converts Employee to EmployeeDTO. The password hash never
// leaves the service layer.
func ToEmployeeDTO(employee *domain.Employee) domain.EmployeeDTO {
	return domain.EmployeeDTO{
		ID:               employee.ID,
		FirstName:        employee.FirstName,
		LastName:         employee.LastName,
		FullName:         employee.FullName(),
		Email:            employee.Email,
		Status:           employee.Status,
		Title:            employee.Title,
		InternalCostRate: employee.InternalCostRate,
		InternalBillRate: employee.InternalBillRate,
		ExternalBillRate: employee.ExternalBillRate,
		DeliveryCenterID: employee.DeliveryCenterID,
		CalendarCode:     employee.CalendarCode,
		Skills:           employee.Skills,
		IsAdmin:          employee.IsAdmin,
		HireDate:         formatDate(employee.HireDate),
		CreatedAt:        employee.CreatedAt.Format(timestampFormat),
		UpdatedAt:        employee.UpdatedAt.Format(timestampFormat),
	}
}

// ToCalendarDayDTO converts CalendarDay to CalendarDayDTO
func ToCalendarDayDTO(day *domain.CalendarDay) domain.CalendarDayDTO {
	return domain.CalendarDayDTO{
		ID:              day.ID,
		CalendarCode:    day.CalendarCode,
		Date:            day.Date.Format(dateFormat),
		IsHoliday:       day.IsHoliday,
		HolidayName:     day.HolidayName,
		FinancialPeriod: day.FinancialPeriod,
		WorkingHours:    day.WorkingHours,
	}
}

// ToCurrencyRateDTO converts CurrencyRate to CurrencyRateDTO
func ToCurrencyRateDTO(rate *domain.CurrencyRate) domain.CurrencyRateDTO {
	return domain.CurrencyRateDTO{
		ID:            rate.ID,
		FromCurrency:  rate.FromCurrency,
		ToCurrency:    rate.ToCurrency,
		Rate:          rate.Rate,
		EffectiveDate: rate.EffectiveDate.Format(dateFormat),
		Source:        rate.Source,
		CreatedAt:     rate.CreatedAt.Format(timestampFormat),
		UpdatedAt:     rate.UpdatedAt.Format(timestampFormat),
	}
}

// ToOpportunityDTO converts Opportunity to OpportunityDTO
func ToOpportunityDTO(opp *domain.Opportunity, isLocked bool) domain.OpportunityDTO {
	dto := domain.OpportunityDTO{
		ID:              opp.ID,
		AccountID:       opp.AccountID,
		Name:            opp.Name,
		Description:     opp.Description,
		Stage:           opp.Stage,
		OwnerEmployeeID: opp.OwnerEmployeeID,
		Currency:        opp.Currency,
		StartDate:       formatDate(opp.StartDate),
		EndDate:         formatDate(opp.EndDate),
		IsLocked:        isLocked,
		CreatedAt:       opp.CreatedAt.Format(timestampFormat),
		UpdatedAt:       opp.UpdatedAt.Format(timestampFormat),
	}
	if opp.Account != nil {
		dto.AccountName = opp.Account.CompanyName
	}
	return dto
}

// ToReleaseDTO converts Release to ReleaseDTO
func ToReleaseDTO(release *domain.Release) domain.ReleaseDTO {
	return domain.ReleaseDTO{
		ID:            release.ID,
		OpportunityID: release.OpportunityID,
		Name:          release.Name,
		Version:       release.Version,
		Status:        release.Status,
		StartDate:     formatDate(release.StartDate),
		EndDate:       formatDate(release.EndDate),
		CreatedAt:     release.CreatedAt.Format(timestampFormat),
		UpdatedAt:     release.UpdatedAt.Format(timestampFormat),
	}
}

// ToEmployeeEngagementDTO converts EmployeeEngagement to its DTO
func ToEmployeeEngagementDTO(eng *domain.EmployeeEngagement) domain.EmployeeEngagementDTO {
	dto := domain.EmployeeEngagementDTO{
		ID:            eng.ID,
		OpportunityID: eng.OpportunityID,
		EmployeeID:    eng.EmployeeID,
		RoleID:        eng.RoleID,
		CreatedAt:     eng.CreatedAt.Format(timestampFormat),
	}
	if eng.Employee != nil {
		dto.EmployeeName = eng.Employee.FullName()
	}
	if eng.Role != nil {
		dto.RoleName = eng.Role.Name
	}
	return dto
}

// ToEngagementTimesheetApproverDTO converts EngagementTimesheetApprover to its DTO
func ToEngagementTimesheetApproverDTO(approver *domain.EngagementTimesheetApprover) domain.EngagementTimesheetApproverDTO {
	dto := domain.EngagementTimesheetApproverDTO{
		ID:            approver.ID,
		OpportunityID: approver.OpportunityID,
		EmployeeID:    approver.EmployeeID,
		CreatedAt:     approver.CreatedAt.Format(timestampFormat),
	}
	if approver.Employee != nil {
		dto.EmployeeName = approver.Employee.FullName()
	}
	return dto
}

// ToEstimateDTO converts Estimate to EstimateDTO
func ToEstimateDTO(estimate *domain.Estimate) domain.EstimateDTO {
	dto := domain.EstimateDTO{
		ID:            estimate.ID,
		OpportunityID: estimate.OpportunityID,
		Name:          estimate.Name,
		Status:        estimate.Status,
		Currency:      estimate.Currency,
		StartDate:     formatDate(estimate.StartDate),
		Notes:         estimate.Notes,
		CreatedAt:     estimate.CreatedAt.Format(timestampFormat),
		UpdatedAt:     estimate.UpdatedAt.Format(timestampFormat),
	}
	for i := range estimate.Phases {
		dto.Phases = append(dto.Phases, ToEstimatePhaseDTO(&estimate.Phases[i]))
	}
	return dto
}

// ToEstimatePhaseDTO converts EstimatePhase to EstimatePhaseDTO
func ToEstimatePhaseDTO(phase *domain.EstimatePhase) domain.EstimatePhaseDTO {
	dto := domain.EstimatePhaseDTO{
		ID:          phase.ID,
		EstimateID:  phase.EstimateID,
		Name:        phase.Name,
		RowOrder:    phase.RowOrder,
		DurationWks: phase.DurationWks,
	}
	for i := range phase.LineItems {
		dto.LineItems = append(dto.LineItems, ToEstimateLineItemDTO(&phase.LineItems[i]))
	}
	return dto
}

// ToEstimateLineItemDTO converts EstimateLineItem to its DTO
func ToEstimateLineItemDTO(item *domain.EstimateLineItem) domain.EstimateLineItemDTO {
	dto := domain.EstimateLineItemDTO{
		ID:               item.ID,
		PhaseID:          item.PhaseID,
		RoleID:           item.RoleID,
		DeliveryCenterID: item.DeliveryCenterID,
		Description:      item.Description,
		RowOrder:         item.RowOrder,
		HourlyRate:       item.HourlyRate,
		TotalHours:       item.TotalHours,
		TotalAmount:      item.HourlyRate.Mul(item.TotalHours),
	}
	if item.Role != nil {
		dto.RoleName = item.Role.Name
	}
	for _, wh := range item.WeeklyHours {
		dto.WeeklyHours = append(dto.WeeklyHours, domain.WeeklyHoursDTO{
			WeekStartDate: wh.WeekStartDate.Format(dateFormat),
			Hours:         wh.Hours,
		})
	}
	return dto
}

// ToQuoteDTO converts Quote to QuoteDTO
func ToQuoteDTO(quote *domain.Quote) domain.QuoteDTO {
	dto := domain.QuoteDTO{
		ID:               quote.ID,
		OpportunityID:    quote.OpportunityID,
		SourceEstimateID: quote.SourceEstimateID,
		DisplayName:      quote.DisplayName,
		Version:          quote.Version,
		Status:           quote.Status,
		ApprovalStatus:   quote.ApprovalStatus,
		Currency:         quote.Currency,
		QuoteDate:        formatDate(quote.QuoteDate),
		ValidUntil:       formatDate(quote.ValidUntil),
		DiscountPercent:  quote.DiscountPercent,
		Notes:            quote.Notes,
		CreatedAt:        quote.CreatedAt.Format(timestampFormat),
		UpdatedAt:        quote.UpdatedAt.Format(timestampFormat),
	}
	for i := range quote.Phases {
		dto.Phases = append(dto.Phases, ToQuotePhaseDTO(&quote.Phases[i]))
	}
	for i := range quote.PaymentTriggers {
		dto.PaymentTriggers = append(dto.PaymentTriggers, ToQuotePaymentTriggerDTO(&quote.PaymentTriggers[i]))
	}
	for i := range quote.VariableComps {
		dto.VariableComps = append(dto.VariableComps, ToQuoteVariableCompensationDTO(&quote.VariableComps[i]))
	}
	return dto
}

// ToQuotePhaseDTO converts QuotePhase to QuotePhaseDTO
func ToQuotePhaseDTO(phase *domain.QuotePhase) domain.QuotePhaseDTO {
	dto := domain.QuotePhaseDTO{
		ID:          phase.ID,
		QuoteID:     phase.QuoteID,
		Name:        phase.Name,
		RowOrder:    phase.RowOrder,
		DurationWks: phase.DurationWks,
	}
	for i := range phase.LineItems {
		dto.LineItems = append(dto.LineItems, ToQuoteLineItemDTO(&phase.LineItems[i]))
	}
	return dto
}

// ToQuoteLineItemDTO converts QuoteLineItem to its DTO
func ToQuoteLineItemDTO(item *domain.QuoteLineItem) domain.QuoteLineItemDTO {
	dto := domain.QuoteLineItemDTO{
		ID:               item.ID,
		PhaseID:          item.PhaseID,
		RoleID:           item.RoleID,
		DeliveryCenterID: item.DeliveryCenterID,
		Description:      item.Description,
		RowOrder:         item.RowOrder,
		HourlyRate:       item.HourlyRate,
		TotalHours:       item.TotalHours,
		TotalAmount:      item.HourlyRate.Mul(item.TotalHours),
	}
	if item.Role != nil {
		dto.RoleName = item.Role.Name
	}
	for _, wh := range item.WeeklyHours {
		dto.WeeklyHours = append(dto.WeeklyHours, domain.WeeklyHoursDTO{
			WeekStartDate: wh.WeekStartDate.Format(dateFormat),
			Hours:         wh.Hours,
		})
	}
	return dto
}

// ToQuotePaymentTriggerDTO converts QuotePaymentTrigger to its DTO
func ToQuotePaymentTriggerDTO(trigger *domain.QuotePaymentTrigger) domain.QuotePaymentTriggerDTO {
	return domain.QuotePaymentTriggerDTO{
		ID:          trigger.ID,
		QuoteID:     trigger.QuoteID,
		Description: trigger.Description,
		RowOrder:    trigger.RowOrder,
		Amount:      trigger.Amount,
		DueDate:     formatDate(trigger.DueDate),
	}
}

// ToQuoteVariableCompensationDTO converts QuoteVariableCompensation to its DTO
func ToQuoteVariableCompensationDTO(comp *domain.QuoteVariableCompensation) domain.QuoteVariableCompensationDTO {
	return domain.QuoteVariableCompensationDTO{
		ID:          comp.ID,
		QuoteID:     comp.QuoteID,
		Description: comp.Description,
		RowOrder:    comp.RowOrder,
		Percent:     comp.Percent,
		CapAmount:   comp.CapAmount,
	}
}

// ToDocumentDTO converts Document to DocumentDTO
func ToDocumentDTO(doc *domain.Document) domain.DocumentDTO {
	return domain.DocumentDTO{
		ID:           doc.ID,
		QuoteID:      doc.QuoteID,
		FileName:     doc.FileName,
		ContentType:  doc.ContentType,
		SizeBytes:    doc.SizeBytes,
		UploadedByID: doc.UploadedByID,
		CreatedAt:    doc.CreatedAt.Format(timestampFormat),
	}
}

// ToTimesheetDTO converts Timesheet to TimesheetDTO
func ToTimesheetDTO(timesheet *domain.Timesheet) domain.TimesheetDTO {
	total := decimal.Zero
	for _, e := range timesheet.Entries {
		total = total.Add(e.Hours)
	}

	dto := domain.TimesheetDTO{
		ID:            timesheet.ID,
		EmployeeID:    timesheet.EmployeeID,
		WeekStartDate: timesheet.WeekStartDate.Format(dateFormat),
		Status:        timesheet.Status,
		TotalHours:    total,
		SubmittedAt:   formatTimestamp(timesheet.SubmittedAt),
		DecidedAt:     formatTimestamp(timesheet.DecidedAt),
		DecidedByID:   timesheet.DecidedByID,
	}
	if timesheet.Employee != nil {
		dto.EmployeeName = timesheet.Employee.FullName()
	}
	for i := range timesheet.Entries {
		dto.Entries = append(dto.Entries, ToTimesheetEntryDTO(&timesheet.Entries[i]))
	}
	for i := range timesheet.StatusHistory {
		dto.StatusHistory = append(dto.StatusHistory, ToTimesheetStatusHistoryDTO(&timesheet.StatusHistory[i]))
	}
	return dto
}

// ToTimesheetEntryDTO converts TimesheetEntry to its DTO
func ToTimesheetEntryDTO(entry *domain.TimesheetEntry) domain.TimesheetEntryDTO {
	dto := domain.TimesheetEntryDTO{
		ID:            entry.ID,
		TimesheetID:   entry.TimesheetID,
		OpportunityID: entry.OpportunityID,
		EntryDate:     entry.EntryDate.Format(dateFormat),
		Hours:         entry.Hours,
		RowOrder:      entry.RowOrder,
		Note:          entry.Note,
	}
	if entry.Opportunity != nil {
		dto.OpportunityName = entry.Opportunity.Name
	}
	return dto
}

// ToTimesheetStatusHistoryDTO converts TimesheetStatusHistory to its DTO
func ToTimesheetStatusHistoryDTO(history *domain.TimesheetStatusHistory) domain.TimesheetStatusHistoryDTO {
	return domain.TimesheetStatusHistoryDTO{
		ID:          history.ID,
		FromStatus:  history.FromStatus,
		ToStatus:    history.ToStatus,
		ChangedByID: history.ChangedByID,
		Comment:     history.Comment,
		ChangedAt:   history.ChangedAt.UTC().Format(timestampFormat),
	}
}
