// Package processor runs the cleaning pipeline over raw export rows
package processor

import (
	"strings"

	"github.com/Ramsey-B/wisteria/pkg/cleaning"
	"github.com/Ramsey-B/wisteria/pkg/models"
)

// notesHeading delimits relocated fragments from the original notes text.
const notesHeading = "【データ整備で退避した内容】"

// CleanRow turns one raw export row into a structured customer record. It
// never rejects a row: every anomaly degrades to a recorded issue plus notes
// relocation, so exactly one CleanedCustomer comes out for any input.
func CleanRow(raw models.RawRecord) models.CleanedCustomer {
	customer := models.CleanedCustomer{
		CustomerID: raw.Get(models.FieldCustomerID),
		MemberType: raw.Get(models.FieldMemberType),
		Name:       raw.Get(models.FieldName),
		Kana:       raw.Get(models.FieldKana),
		Gender:     raw.Get(models.FieldGender),
		BirthDate:  raw.Get(models.FieldBirthDate),

		Phone:  cleaning.CleanPhoneNumber(raw.Get(models.FieldPhone)),
		Mobile: cleaning.CleanPhoneNumber(raw.Get(models.FieldMobile)),
		Email:  cleaning.CleanEmail(raw.Get(models.FieldEmail)),

		Address: cleaning.CleanAddress(
			raw.Get(models.FieldPostalCode),
			raw.Get(models.FieldPrefecture),
			raw.Get(models.FieldCity),
			raw.Get(models.FieldTown),
			raw.Get(models.FieldStreetNumber),
			raw.Get(models.FieldBuilding),
		),

		UserChangeInfo: models.UserChangeInfo{
			ChangedBy: raw.Get(models.FieldChangedBy),
			ChangedAt: raw.Get(models.FieldChangedAt),
		},
		Needs: models.Needs{
			Ceremony: raw.Get(models.FieldNeedCeremony),
			Flowers:  raw.Get(models.FieldNeedFlowers),
			Other:    raw.Get(models.FieldNeedOther),
		},
		InquiryCount: raw.Get(models.FieldInquiryCount),
		RegisteredAt: raw.Get(models.FieldRegisteredAt),
		UpdatedAt:    raw.Get(models.FieldUpdatedAt),
	}

	// The contact address reference can only resolve after the applicant's
	// own address is cleaned.
	contactAddress, isReference := cleaning.ResolveAddressReference(
		raw.Get(models.FieldContactAddress), customer.Address.FullAddress)

	customer.MemorialContact = models.MemorialContact{
		Name:               raw.Get(models.FieldContactName),
		Kana:               raw.Get(models.FieldContactKana),
		Relationship:       raw.Get(models.FieldContactRelationship),
		Phone:              cleaning.CleanPhoneNumber(raw.Get(models.FieldContactPhone)),
		Mobile:             cleaning.CleanPhoneNumber(raw.Get(models.FieldContactMobile)),
		Address:            contactAddress,
		AddressIsReference: isReference,
	}

	customer.Notes = assembleNotes(raw[models.FieldNotes], collectFragments(&customer))

	issues := collectRowIssues(&customer)
	customer.CleaningReport = models.CleaningReport{
		IssueCount: len(issues),
		Issues:     issues,
	}

	return customer
}

// collectFragments gathers relocated text in field order, labeled with the
// source column it came from.
func collectFragments(c *models.CleanedCustomer) []string {
	type moved struct {
		label string
		text  string
	}
	fields := []moved{
		{models.FieldPhone, c.Phone.MovedToNotes},
		{models.FieldMobile, c.Mobile.MovedToNotes},
		{models.FieldEmail, c.Email.MovedToNotes},
		{models.FieldPostalCode, c.Address.PostalCode.MovedToNotes},
		{models.FieldContactPhone, c.MemorialContact.Phone.MovedToNotes},
		{models.FieldContactMobile, c.MemorialContact.Mobile.MovedToNotes},
	}

	var fragments []string
	for _, f := range fields {
		if f.text != "" {
			fragments = append(fragments, f.label+": "+f.text)
		}
	}
	return fragments
}

// assembleNotes appends relocated fragments under the fixed heading. The
// original notes text remains byte-for-byte recoverable as a prefix.
func assembleNotes(original string, fragments []string) string {
	if len(fragments) == 0 {
		return original
	}
	notes := original
	if notes != "" {
		notes += "\n\n"
	}
	return notes + notesHeading + "\n" + strings.Join(fragments, "\n")
}

// collectRowIssues aggregates every sub-issue list in encounter order.
func collectRowIssues(c *models.CleanedCustomer) []string {
	var issues []string
	issues = append(issues, c.Phone.Issues...)
	issues = append(issues, c.Mobile.Issues...)
	issues = append(issues, c.Email.Issues...)
	issues = append(issues, c.Address.Issues...)
	issues = append(issues, c.MemorialContact.Phone.Issues...)
	issues = append(issues, c.MemorialContact.Mobile.Issues...)
	return issues
}
