package telegram

import (
	"fmt"
	"strings"

	"github.com/DmtrPpl/vat-bot/internal/domain"
	"github.com/DmtrPpl/vat-bot/internal/usecase"
)

const helpText = `Send one transaction per line:
  +1000 eur sold site
  -200 internet без ПДВ
  +5000 з ПДВ consulting 2024-05-01

A leading + is income, - is an expense. Add "з ПДВ" / "без ПДВ" (or
"with VAT" / "without VAT") to pin the VAT treatment.

Commands:
  /balance            current month and year totals
  /month [YYYY-MM]    totals for a month
  /year [YYYY]        totals for a year
  /rate <percent>     set the VAT rate
  /currency <code>    set the default currency
  /reset              clear the ledger (settings are kept)`

const formatHint = `I could not find a transaction in that message.
Lines must start with + or - and an amount, for example:
  +1000 eur sold site
  -200 internet без ПДВ`

func formatIngestResult(result *usecase.IngestResult) string {
	var sb strings.Builder

	if len(result.Entries) == 1 {
		sb.WriteString("Recorded 1 entry:\n")
	} else {
		fmt.Fprintf(&sb, "Recorded %d entries:\n", len(result.Entries))
	}
	for _, e := range result.Entries {
		sb.WriteString(formatEntry(e))
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "\nMonth %s\n%s", result.MonthPeriod, formatSummary(result.Month))
	fmt.Fprintf(&sb, "\n\nYear %s\n%s", result.YearPeriod, formatSummary(result.Year))
	return sb.String()
}

func formatBalance(report *usecase.BalanceReport) string {
	return fmt.Sprintf("Month %s\n%s\n\nYear %s\n%s\n\nCurrency %s, VAT rate %s%%",
		report.MonthPeriod, formatSummary(report.Month),
		report.YearPeriod, formatSummary(report.Year),
		report.Settings.DefaultCurrency, report.Settings.VATRatePercent.String())
}

func formatEntry(e *domain.Entry) string {
	sign := "+"
	if e.Type == domain.EntryTypeExpense {
		sign = "-"
	}
	line := fmt.Sprintf("%s%s %s gross (net %s, VAT %s) %s, %s",
		sign, e.Gross.StringFixed(2), e.Currency,
		e.Net.StringFixed(2), e.VAT.StringFixed(2),
		e.Category, e.Date)
	if e.Description != "" {
		line += ": " + e.Description
	}
	return line
}

func formatSummary(s domain.PeriodSummary) string {
	return fmt.Sprintf(
		"  income gross:   %s\n"+
			"  expense gross:  %s\n"+
			"  profit gross:   %s\n"+
			"  VAT collected:  %s\n"+
			"  VAT deductible: %s\n"+
			"  VAT due:        %s\n"+
			"  net after VAT:  %s",
		s.IncomeGross.StringFixed(2),
		s.ExpenseGross.StringFixed(2),
		s.ProfitGross.StringFixed(2),
		s.IncomeVAT.StringFixed(2),
		s.ExpenseVAT.StringFixed(2),
		s.VATDue.StringFixed(2),
		s.NetAfterVAT.StringFixed(2),
	)
}
