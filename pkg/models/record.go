package models

import "strings"

// RawRecord is one row of the legacy CRM export as handed over by the CSV
// collaborator. Column headers from the source system are used as opaque
// string keys; the engine never mutates a RawRecord.
type RawRecord map[string]string

// Source column keys. The export headers are in the source language and are
// treated as plain strings everywhere; these constants exist so the engine
// and its tests agree on spelling.
const (
	FieldCustomerID = "顧客番号"
	FieldMemberType = "会員種別"
	FieldName       = "氏名"
	FieldKana       = "フリガナ"
	FieldGender     = "性別"
	FieldBirthDate  = "生年月日"

	FieldPhone  = "電話番号"
	FieldMobile = "携帯番号"
	FieldEmail  = "メールアドレス"

	FieldPostalCode   = "郵便番号"
	FieldPrefecture   = "都道府県"
	FieldCity         = "市区町村"
	FieldTown         = "町名"
	FieldStreetNumber = "番地"
	FieldBuilding     = "建物名"

	// Responsible-contact block ("memorial contact"): the person named as the
	// point of contact for after-the-fact arrangements.
	FieldContactName         = "手配責任者氏名"
	FieldContactKana         = "手配責任者フリガナ"
	FieldContactRelationship = "続柄"
	FieldContactPhone        = "手配責任者電話番号"
	FieldContactMobile       = "手配責任者携帯番号"
	FieldContactAddress      = "手配責任者住所"

	FieldNeedCeremony = "施行希望"
	FieldNeedFlowers  = "供花希望"
	FieldNeedOther    = "その他要望"

	FieldNotes = "備考"

	FieldChangedBy    = "変更者"
	FieldChangedAt    = "変更日時"
	FieldInquiryCount = "問い合わせ回数"
	FieldRegisteredAt = "登録日"
	FieldUpdatedAt    = "更新日"
)

// Get returns the trimmed value for a column, or "" when the column is absent.
func (r RawRecord) Get(key string) string {
	return strings.TrimSpace(r[key])
}
